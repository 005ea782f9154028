package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_ledger/internal/apperrors"
	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/SscSPs/expense_ledger/internal/utils/conversion"
	"github.com/google/uuid"
)

// expenseService records one-off expenses against expense accounts.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	accountRepo portsrepo.ExpenseAccountReader
	rates       portssvc.RateTableProvider
}

// ExpenseServiceOption is a functional option for configuring the expense service
type ExpenseServiceOption func(*expenseService)

// WithExpenseAuthorizer sets the organization authorizer for the expense service.
func WithExpenseAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ExpenseServiceOption {
	return func(s *expenseService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, accountRepo portsrepo.ExpenseAccountReader, rates portssvc.RateTableProvider, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
		rates:       rates,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records an expense and snapshots its base currency amount.
func (s *expenseService) CreateExpense(ctx context.Context, organizationID string, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.Contributors...); err != nil {
		return nil, err
	}

	account, err := findAccount(ctx, s.accountRepo, organizationID, req.ExpenseAccountID)
	if err != nil {
		return nil, err
	}

	table, err := s.rates.RateTable(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	res, err := conversion.ResolveEntry(req.ToMoneyInput(), account.Currency, table)
	if err != nil {
		s.LogWarn(ctx, "Failed to resolve expense amount",
			slog.String("currency", req.Currency),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:        uuid.NewString(),
		OrganizationID:   organizationID,
		ExpenseAccountID: account.ExpenseAccountID,
		Category:         req.Category,
		Description:      req.Description,
		ExpenseDate:      req.ExpenseDate,
		MoneyEntry:       res.Entry,
		AuditFields:      domain.NewAuditFields(userID, now),
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("account_id", account.ExpenseAccountID),
		slog.String("base_amount", expense.BaseCurrencyAmount.String()))
	return &expense, nil
}

// ListExpenses lists expenses, optionally for one account and a date range.
// The To date is inclusive.
func (s *expenseService) ListExpenses(ctx context.Context, organizationID string, params dto.ListExpensesParams, userID string) ([]domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}

	filter := portsrepo.ExpenseFilter{OrganizationID: organizationID, From: params.From}
	if params.AccountID != "" {
		filter.AccountIDs = []string{params.AccountID}
	}
	if !params.To.IsZero() {
		filter.To = params.To.AddDate(0, 0, 1)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && !filter.From.Before(filter.To) {
		return nil, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// findAccount loads an expense account scoped to the organization.
func findAccount(ctx context.Context, repo portsrepo.ExpenseAccountReader, organizationID, accountID string) (*domain.ExpenseAccount, error) {
	account, err := repo.FindExpenseAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: expense account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load expense account %s: %w", accountID, err)
	}
	return account, nil
}
