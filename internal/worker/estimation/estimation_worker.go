package estimation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/domain/repository"
	apperrors "github.com/commute-emissions/internal/pkg/errors"
	"github.com/commute-emissions/internal/pkg/metrics"
	"github.com/commute-emissions/internal/pkg/validator"
	"github.com/commute-emissions/internal/usecase"
	"github.com/commute-emissions/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	emptyQueueSleep  = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep       = time.Second            // пауза после ошибки чтения
	retryBackoff     = 200 * time.Millisecond // базовая пауза между повторами провайдера
	batchConcurrency = 4                      // параллельные расчёты внутри batch
)

// Значения label status метрики StreamMessagesTotal
const (
	statusMalformed    = "malformed"
	statusPublishError = "publish_error"
)

// EstimationWorker читает запросы на расчёт из stream:emission:request
// и публикует результаты в stream:emission:done
type EstimationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	estimationUC *usecase.EstimationUseCase
	batchSize    int
	maxRetries   int
}

// NewEstimationWorker создает новый EstimationWorker
func NewEstimationWorker(
	streamRepo repository.StreamRepository,
	estimationUC *usecase.EstimationUseCase,
	consumerGroup string,
	batchSize int,
	maxRetries int,
	logger *zap.Logger,
) *EstimationWorker {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &EstimationWorker{
		BaseWorker:   worker.NewBaseWorker("emission-estimation", consumerGroup, logger),
		streamRepo:   streamRepo,
		estimationUC: estimationUC,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *EstimationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting EstimationWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamEmissionRequest, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.processBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
			continue
		}

		if processed == 0 {
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// processBatch читает и обрабатывает batch сообщений.
// Возвращает количество прочитанных сообщений.
func (w *EstimationWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx,
		domain.StreamEmissionRequest, w.ConsumerGroup(), w.ConsumerName(), w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	acked := make([]string, len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, msg := range messages {
		i, msg := i, msg
		g.Go(func() error {
			if w.handleMessage(gctx, msg) {
				acked[i] = msg.ID
			}
			return nil
		})
	}
	_ = g.Wait()

	ids := make([]string, 0, len(acked))
	for _, id := range acked {
		if id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamEmissionRequest, w.ConsumerGroup(), ids); err != nil {
			logger.Error("Failed to ack messages", zap.Error(err))
		}
	}

	return len(messages), nil
}

// handleMessage обрабатывает одно сообщение и возвращает true, если его
// можно подтвердить. Ошибка расчёта публикуется как событие и тоже
// подтверждается, битое сообщение подтверждается без публикации.
func (w *EstimationWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) bool {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	event, err := parseMessage(msg)
	if err != nil {
		logger.Warn("Failed to parse message, skipping", zap.Error(err))
		metrics.StreamMessagesTotal.WithLabelValues(domain.StreamEmissionRequest, statusMalformed).Inc()
		return true
	}

	done := w.estimate(ctx, event)

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamEmissionDone, done); err != nil {
		logger.Error("Failed to publish done event",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		metrics.StreamMessagesTotal.WithLabelValues(domain.StreamEmissionRequest, statusPublishError).Inc()
		return false
	}

	status := metrics.StatusOK
	if done.Failed() {
		status = metrics.StatusError
	}
	metrics.StreamMessagesTotal.WithLabelValues(domain.StreamEmissionRequest, status).Inc()

	return true
}

// estimate выполняет расчёт, повторяя его при сбоях провайдера
func (w *EstimationWorker) estimate(ctx context.Context, event *domain.EstimationRequestEvent) *domain.EstimationDoneEvent {
	done := &domain.EstimationDoneEvent{
		RequestID: event.RequestID,
		Kind:      event.Kind,
	}

	origin := domain.Location(event.Origin)
	destination := domain.Location(event.Destination)

	for attempt := 0; ; attempt++ {
		resp, err := w.estimationUC.Estimate(ctx, origin, destination, event.TransportParams())
		if err == nil {
			result := resp.EmissionResult()
			done.Kind = resp.Kind
			done.TransitMode = resp.TransitMode
			done.Result = &result
			return done
		}

		if isRetryable(err) && attempt < w.maxRetries && w.Pause(ctx, retryBackoff*time.Duration(attempt+1)) {
			w.Logger().Warn("Retrying estimation",
				zap.String("request_id", event.RequestID.String()),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		done.Error = err.Error()
		if appErr, ok := apperrors.As(err); ok {
			done.ErrorCode = appErr.Code
		}
		return done
	}
}

// isRetryable - повторяются только сбои провайдера
func isRetryable(err error) bool {
	return errors.Is(err, apperrors.ErrRoutingProvider)
}

// parseMessage парсит и валидирует сообщение из стрима
func parseMessage(msg domain.StreamMessage) (*domain.EstimationRequestEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.EstimationRequestEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if err := validator.Validate(&event); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}

	return &event, nil
}
