package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRoutingRequest(t *testing.T) {
	okBefore := testutil.ToFloat64(RoutingRequestsTotal.WithLabelValues("walking", StatusOK))
	errBefore := testutil.ToFloat64(RoutingRequestsTotal.WithLabelValues("walking", StatusError))

	ObserveRoutingRequest("walking", time.Now(), nil)
	ObserveRoutingRequest("walking", time.Now(), errors.New("timeout"))
	ObserveRoutingRequest("walking", time.Now(), nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(RoutingRequestsTotal.WithLabelValues("walking", StatusOK)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(RoutingRequestsTotal.WithLabelValues("walking", StatusError)))
}

func TestObserveEstimation(t *testing.T) {
	before := testutil.ToFloat64(EstimationsTotal.WithLabelValues("cycle", StatusOK))
	failedBefore := testutil.ToFloat64(EstimationsTotal.WithLabelValues("cycle", StatusError))

	ObserveEstimation("cycle", 0, nil)
	ObserveEstimation("cycle", 0, errors.New("no route"))

	assert.Equal(t, before+1, testutil.ToFloat64(EstimationsTotal.WithLabelValues("cycle", StatusOK)))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(EstimationsTotal.WithLabelValues("cycle", StatusError)))
}
