package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"kyc-gateway/internal/platform/kafka"
)

// Worker drains the publisher's inbox into the store and, when configured,
// onto the kafka audit topic. Sink failures are logged and skipped; the audit
// trail is best-effort and must never wedge the request path.
type Worker struct {
	store    Store
	producer *kafka.Producer
	inbox    <-chan Event
	logger   *slog.Logger
}

func NewWorker(store Store, producer *kafka.Producer, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{
		store:    store,
		producer: producer,
		inbox:    inbox,
		logger:   logger,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to persist audit event",
					"error", err,
					"action", string(event.Action),
				)
			}
			if w.producer != nil {
				w.publish(ctx, event)
			}
		}
	}
}

func (w *Worker) publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to encode audit event", "error", err)
		return
	}
	if err := w.producer.Publish(ctx, event.UserID, payload); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish audit event",
			"error", err,
			"action", string(event.Action),
		)
	}
}
