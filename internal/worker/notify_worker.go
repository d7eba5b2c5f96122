package worker

import (
	"context"
	"time"

	"arenda/internal/domain"
	"arenda/internal/metrics"
	"arenda/internal/models"

	"github.com/rs/zerolog"
)

// NotifyWorker drains the outbox and delivers each task through the
// notifier. Enqueued tasks go through a fast in-memory channel; the DB
// poll picks up anything the channel missed, including retries.
//
// Delivery is at-least-once: a task sitting in the channel can also be
// returned by a poll before it is marked done, so a notification may be
// sent twice. Consumers must tolerate duplicates.
type NotifyWorker struct {
	repo         domain.Repository
	notifier     domain.Notifier
	retryPolicy  RetryPolicy
	queue        chan models.OutboxTask
	pollInterval time.Duration
	batchSize    int
	logger       *zerolog.Logger
}

func NewNotifyWorker(repo domain.Repository, notifier domain.Notifier, retry RetryPolicy, pollInterval time.Duration, batchSize int, logger *zerolog.Logger) *NotifyWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 1 * time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 20
	}

	return &NotifyWorker{
		repo:         repo,
		notifier:     notifier,
		retryPolicy:  retry,
		queue:        make(chan models.OutboxTask, models.OutboxQueueSize),
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Enqueue persists the event in the outbox and schedules fast delivery.
func (w *NotifyWorker) Enqueue(ctx context.Context, eventType string, payload []byte) error {
	task := models.OutboxTask{
		EventType: eventType,
		Payload:   payload,
		Status:    models.TaskStatusPending,
	}
	if err := w.repo.CreateOutboxTask(ctx, &task); err != nil {
		return err
	}

	select {
	case w.queue <- task:
	default:
		// Queue full; the polling loop will pick the task up.
		w.logger.Warn().Int64("task_id", task.ID).Msg("notify queue full, deferring to poll")
	}
	return nil
}

// Start launches the main loop; stops when ctx is done.
func (w *NotifyWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("notify worker started")
	defer w.logger.Info().Msg("notify worker stopped")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-w.queue:
			w.processTask(ctx, &task)
		case <-ticker.C:
			w.drainPending(ctx)
		}
	}
}

func (w *NotifyWorker) drainPending(ctx context.Context) {
	tasks, err := w.repo.GetPendingOutboxTasks(ctx, w.batchSize)
	if err != nil {
		w.logger.Error().Err(err).Msg("fetch pending outbox tasks")
		return
	}
	for i := range tasks {
		w.processTask(ctx, &tasks[i])
	}
}

func (w *NotifyWorker) processTask(ctx context.Context, task *models.OutboxTask) {
	if err := w.notifier.Notify(task.EventType, task.Payload); err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}

	if err := w.repo.MarkOutboxTaskDone(ctx, task.ID); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("mark outbox task done")
	}
	metrics.IncNotification("delivered")
}

func (w *NotifyWorker) retryOrFail(ctx context.Context, task *models.OutboxTask, cause error) {
	attempt := task.RetryCount + 1
	if attempt >= w.retryPolicy.MaxRetries {
		if err := w.repo.MarkOutboxTaskFailed(ctx, task.ID, cause.Error(), time.Time{}, true); err != nil {
			w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("mark outbox task dead")
		}
		w.logger.Error().Err(cause).Int64("task_id", task.ID).Str("event_type", task.EventType).Msg("notification moved to dead letter")
		metrics.IncNotification("dead")
		return
	}

	nextTime := time.Now().Add(w.retryPolicy.NextDelay(attempt))
	if err := w.repo.MarkOutboxTaskFailed(ctx, task.ID, cause.Error(), nextTime, false); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("mark outbox task retry")
	}
	metrics.IncNotification("retry")
}
