package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/expense_ledger/internal/models"
	"github.com/SscSPs/expense_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCurrencyRateRepository implements portsrepo.CurrencyRateRepositoryFacade using pgxpool.
type PgxCurrencyRateRepository struct {
	BaseRepository
}

func newPgxCurrencyRateRepository(pool *pgxpool.Pool) portsrepo.CurrencyRateRepositoryFacade {
	return &PgxCurrencyRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRateRepositoryFacade = (*PgxCurrencyRateRepository)(nil)

const currencyRateColumns = `organization_id, to_currency, rate, symbol, symbol_position, thousands_separator, decimal_separator,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCurrencyRate(row rowScanner) (domain.CurrencyRate, error) {
	var m models.CurrencyRate
	err := row.Scan(
		&m.OrganizationID, &m.ToCurrency, &m.Rate, &m.Symbol, &m.SymbolPosition,
		&m.ThousandsSeparator, &m.DecimalSeparator,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return mapping.ToDomainCurrencyRate(m), err
}

// ListRates retrieves every rate of an organization ordered by currency.
func (r *PgxCurrencyRateRepository) ListRates(ctx context.Context, organizationID string) ([]domain.CurrencyRate, error) {
	query := `SELECT ` + currencyRateColumns + ` FROM currency_rates WHERE organization_id = $1 ORDER BY to_currency;`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list currency rates", err)
	}
	defer rows.Close()

	rates := []domain.CurrencyRate{}
	for rows.Next() {
		rate, err := scanCurrencyRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency rate", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency rates", err)
	}
	return rates, nil
}

// FindRate retrieves the rate for one currency.
func (r *PgxCurrencyRateRepository) FindRate(ctx context.Context, organizationID, currency string) (*domain.CurrencyRate, error) {
	query := `SELECT ` + currencyRateColumns + ` FROM currency_rates WHERE organization_id = $1 AND to_currency = $2;`
	rate, err := scanCurrencyRate(r.Pool.QueryRow(ctx, query, organizationID, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency rate for " + currency)
		}
		return nil, apperrors.NewAppError(500, "failed to find currency rate", err)
	}
	return &rate, nil
}

// UpsertRate inserts the rate or replaces the one stored for the same currency.
func (r *PgxCurrencyRateRepository) UpsertRate(ctx context.Context, rate domain.CurrencyRate) error {
	m := mapping.ToModelCurrencyRate(rate)
	query := `
		INSERT INTO currency_rates (
			organization_id, to_currency, rate, symbol, symbol_position, thousands_separator, decimal_separator,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (organization_id, to_currency) DO UPDATE SET
			rate = EXCLUDED.rate,
			symbol = EXCLUDED.symbol,
			symbol_position = EXCLUDED.symbol_position,
			thousands_separator = EXCLUDED.thousands_separator,
			decimal_separator = EXCLUDED.decimal_separator,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID, m.ToCurrency, m.Rate, m.Symbol, m.SymbolPosition, m.ThousandsSeparator, m.DecimalSeparator,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert currency rate", err)
	}
	return nil
}

// DeleteRate removes the rate for one currency.
func (r *PgxCurrencyRateRepository) DeleteRate(ctx context.Context, organizationID, currency string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM currency_rates WHERE organization_id = $1 AND to_currency = $2;`, organizationID, currency)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete currency rate", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("currency rate for " + currency)
	}
	return nil
}
