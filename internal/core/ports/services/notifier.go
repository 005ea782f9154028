package services

import (
	"context"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
)

// Notifier hands mail jobs to the outbox consumed by the external mailer.
type Notifier interface {
	Enqueue(ctx context.Context, job domain.MailJob) error
}
