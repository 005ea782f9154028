package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/expense_ledger/internal/models"
	"github.com/SscSPs/expense_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSubscriptionRepository implements portsrepo.SubscriptionRepositoryFacade using pgxpool.
type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(pool *pgxpool.Pool) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, organization_id, expense_account_id, name, category,
	amount, currency, conversion_rate, base_currency_amount,
	renewal_date, renewal_frequency, custom_interval_days, anchor_day, reminder_days,
	next_reminder_date, last_reminder_date, last_reminder_cycle, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSubscription(row rowScanner) (domain.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID, &m.OrganizationID, &m.ExpenseAccountID, &m.Name, &m.Category,
		&m.Amount, &m.Currency, &m.ConversionRate, &m.BaseCurrencyAmount,
		&m.RenewalDate, &m.RenewalFrequency, &m.CustomIntervalDays, &m.AnchorDay, &m.ReminderDays,
		&m.NextReminderDate, &m.LastReminderDate, &m.LastReminderCycle, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return mapping.ToDomainSubscription(m), err
}

func (r *PgxSubscriptionRepository) querySubscriptions(ctx context.Context, query string, args ...any) ([]domain.Subscription, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list subscriptions", err)
	}
	defer rows.Close()

	subs := []domain.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan subscription", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating subscriptions", err)
	}
	return subs, nil
}

// SaveSubscription persists a new subscription.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, sub domain.Subscription) error {
	m := mapping.ToModelSubscription(sub)
	query := `INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);`
	_, err := r.Pool.Exec(ctx, query,
		m.SubscriptionID, m.OrganizationID, m.ExpenseAccountID, m.Name, m.Category,
		m.Amount, m.Currency, m.ConversionRate, m.BaseCurrencyAmount,
		m.RenewalDate, m.RenewalFrequency, m.CustomIntervalDays, m.AnchorDay, m.ReminderDays,
		m.NextReminderDate, m.LastReminderDate, m.LastReminderCycle, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert subscription "+m.SubscriptionID, err)
	}
	return nil
}

// FindSubscriptionByID retrieves a subscription scoped to its organization.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, organizationID, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE organization_id = $1 AND subscription_id = $2;`
	sub, err := scanSubscription(r.Pool.QueryRow(ctx, query, organizationID, subscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("subscription " + subscriptionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find subscription", err)
	}
	return &sub, nil
}

// ListSubscriptions retrieves all subscriptions of an organization.
func (r *PgxSubscriptionRepository) ListSubscriptions(ctx context.Context, organizationID string) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE organization_id = $1 ORDER BY renewal_date, name;`
	return r.querySubscriptions(ctx, query, organizationID)
}

// ListDueSubscriptions retrieves ACTIVE subscriptions whose reminder date has been reached.
func (r *PgxSubscriptionRepository) ListDueSubscriptions(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE status = $1 AND next_reminder_date <= $2
		ORDER BY next_reminder_date, subscription_id;`
	return r.querySubscriptions(ctx, query, string(domain.SubscriptionActive), now)
}

// UpdateSubscriptionLocked locks the subscription row, applies fn and, when fn
// reports a change, writes the subscription and inserts its reminders. The
// unique (subscription_id, cycle_date, recipient_email) index drops reminders
// another run already inserted; only the rows actually inserted are returned.
func (r *PgxSubscriptionRepository) UpdateSubscriptionLocked(ctx context.Context, organizationID, subscriptionID string, fn portsrepo.SubscriptionMutation) (*domain.Subscription, []domain.SubscriptionReminder, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE organization_id = $1 AND subscription_id = $2 FOR UPDATE;`
	sub, err := scanSubscription(tx.QueryRow(ctx, query, organizationID, subscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFoundError("subscription " + subscriptionID)
		}
		return nil, nil, apperrors.NewAppError(500, "failed to lock subscription", err)
	}

	before := sub
	reminders, changed, err := fn(&sub)
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		return &before, nil, nil
	}

	m := mapping.ToModelSubscription(sub)
	_, err = tx.Exec(ctx, `
		UPDATE subscriptions
		SET renewal_date = $1, next_reminder_date = $2, last_reminder_date = $3, last_reminder_cycle = $4,
		    status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE subscription_id = $8;`,
		m.RenewalDate, m.NextReminderDate, m.LastReminderDate, m.LastReminderCycle,
		m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.SubscriptionID,
	)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to update subscription "+subscriptionID, err)
	}

	inserted := make([]domain.SubscriptionReminder, 0, len(reminders))
	for _, reminder := range reminders {
		rm := mapping.ToModelSubscriptionReminder(reminder)
		var id string
		err := tx.QueryRow(ctx, `
			INSERT INTO subscription_reminders (
				reminder_id, subscription_id, organization_id, cycle_date, recipient_email, created_at
			) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (subscription_id, cycle_date, recipient_email) DO NOTHING
			RETURNING reminder_id;`,
			rm.ReminderID, rm.SubscriptionID, rm.OrganizationID, rm.CycleDate, rm.RecipientEmail, rm.CreatedAt,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to insert subscription reminder", err)
		}
		inserted = append(inserted, reminder)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &sub, inserted, nil
}

// MarkRemindersDispatched stamps dispatched_at on the given reminders.
func (r *PgxSubscriptionRepository) MarkRemindersDispatched(ctx context.Context, reminderIDs []string, at time.Time) error {
	if len(reminderIDs) == 0 {
		return nil
	}
	_, err := r.Pool.Exec(ctx,
		`UPDATE subscription_reminders SET dispatched_at = $1 WHERE reminder_id = ANY($2) AND dispatched_at IS NULL;`,
		at, reminderIDs,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark reminders dispatched", err)
	}
	return nil
}
