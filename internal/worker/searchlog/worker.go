package searchlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/domain/repository"
	"github.com/venue-compass/internal/pkg/debounce"
	"github.com/venue-compass/internal/usecase"
	"github.com/venue-compass/internal/worker"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second            // пауза при ошибке
	retrySleep      = 200 * time.Millisecond // пауза между попытками вставки
	refreshTimeout  = 10 * time.Second
)

// Worker переносит события поиска из стрима в журнал и обновляет
// кеш статистики. Пересчет статистики дебаунсится, чтобы серия
// пачек подряд не дергала агрегацию на каждую.
type Worker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	searchLogRepo repository.SearchLogRepository
	statsUC       *usecase.StatsUseCase
	consumerName  string
	batchSize     int
	maxRetries    int
	refresher     *debounce.Debouncer
}

// New создает новый Worker журнала поисков
func New(
	streamRepo repository.StreamRepository,
	searchLogRepo repository.SearchLogRepository,
	statsUC *usecase.StatsUseCase,
	consumerGroup string,
	batchSize int,
	maxRetries int,
	statsDebounceWait time.Duration,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Worker{
		BaseWorker:    worker.NewBaseWorker("search-log", consumerGroup, logger),
		streamRepo:    streamRepo,
		searchLogRepo: searchLogRepo,
		statsUC:       statsUC,
		consumerName:  consumerName,
		batchSize:     batchSize,
		maxRetries:    maxRetries,
		refresher:     debounce.New(statsDebounceWait),
	}
}

// Start запускает воркер
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting search log worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamSearchLog, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	defer w.refresher.Cancel()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(errorSleep)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает пачку событий поиска.
// Возвращает количество обработанных сообщений.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamSearchLog,
		w.ConsumerGroup(),
		w.consumerName,
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	events := make([]*domain.SearchEvent, 0, len(messages))
	messageIDs := make([]string, 0, len(messages))

	for _, msg := range messages {
		var event domain.SearchEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			logger.Warn("Failed to parse search event, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamSearchLog, w.ConsumerGroup(), msg.ID)
			continue
		}
		events = append(events, &event)
		messageIDs = append(messageIDs, msg.ID)
	}

	if len(events) == 0 {
		return 0, nil
	}

	if err := w.insertWithRetry(ctx, events); err != nil {
		// Без ACK - сообщения будут перечитаны
		return 0, fmt.Errorf("failed to insert events: %w", err)
	}

	for _, id := range messageIDs {
		if err := w.streamRepo.AckMessage(ctx, domain.StreamSearchLog, w.ConsumerGroup(), id); err != nil {
			logger.Warn("Failed to ack message", zap.String("message_id", id), zap.Error(err))
		}
	}

	logger.Info("Search events stored", zap.Int("count", len(events)))

	w.refresher.Schedule(func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if _, err := w.statsUC.Refresh(refreshCtx); err != nil {
			logger.Warn("Failed to refresh stats cache", zap.Error(err))
		}
	})

	return len(events), nil
}

// insertWithRetry повторяет вставку пачки до maxRetries раз,
// чтобы переживать короткие сбои БД без перечитывания стрима
func (w *Worker) insertWithRetry(ctx context.Context, events []*domain.SearchEvent) error {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if lastErr = w.searchLogRepo.InsertEvents(ctx, events); lastErr == nil {
			return nil
		}
		w.Logger().Warn("Failed to insert events",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", w.maxRetries),
			zap.Error(lastErr))
		if attempt < w.maxRetries {
			time.Sleep(retrySleep)
		}
	}
	return lastErr
}
