package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// RedisOutbox pushes mail jobs as JSON onto a Redis list. The external mailer
// pops from the other end.
type RedisOutbox struct {
	client redis.Cmdable
	queue  string
}

// NewRedisOutbox creates a notifier writing to queue.
func NewRedisOutbox(client redis.Cmdable, queue string) *RedisOutbox {
	return &RedisOutbox{client: client, queue: queue}
}

var _ portssvc.Notifier = (*RedisOutbox)(nil)

// Enqueue appends job to the queue.
func (o *RedisOutbox) Enqueue(ctx context.Context, job domain.MailJob) error {
	if len(job.Recipients) == 0 {
		return fmt.Errorf("mail job %s for %s has no recipients", job.Kind, job.ReferenceID)
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode mail job: %w", err)
	}
	if err := o.client.RPush(ctx, o.queue, payload).Err(); err != nil {
		return fmt.Errorf("failed to push mail job to %s: %w", o.queue, err)
	}
	middleware.GetLoggerFromCtx(ctx).Debug("Mail job enqueued",
		slog.String("kind", string(job.Kind)),
		slog.String("reference_id", job.ReferenceID),
		slog.Int("recipients", len(job.Recipients)))
	return nil
}

// LogNotifier only logs mail jobs. It is used when no Redis is configured.
type LogNotifier struct{}

var _ portssvc.Notifier = LogNotifier{}

func (LogNotifier) Enqueue(ctx context.Context, job domain.MailJob) error {
	middleware.GetLoggerFromCtx(ctx).Info("Mail job (no outbox configured)",
		slog.String("kind", string(job.Kind)),
		slog.String("subject", job.Subject),
		slog.String("reference_id", job.ReferenceID),
		slog.Any("recipients", job.Recipients))
	return nil
}
