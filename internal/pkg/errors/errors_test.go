package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WithDetailsDoesNotMutateShared(t *testing.T) {
	detailed := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "origin"})

	assert.Equal(t, "origin", detailed.Details["field"])
	assert.Nil(t, ErrInvalidRequest.Details)
	assert.Equal(t, http.StatusBadRequest, detailed.StatusCode)
}

func TestAppError_Wrap(t *testing.T) {
	cause := stderrors.New("dial tcp: timeout")
	err := fmt.Errorf("measure route: %w", ErrRoutingProvider.Wrap(cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrRoutingProvider)
	assert.NotErrorIs(t, err, ErrRouteNotFound)
	assert.Contains(t, err.Error(), "ROUTING_PROVIDER_ERROR")

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, appErr.StatusCode)
}

func TestAs_NotAppError(t *testing.T) {
	_, ok := As(stderrors.New("plain"))
	assert.False(t, ok)
}
