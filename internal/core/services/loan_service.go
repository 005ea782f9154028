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

// loanService maintains loan balances in each loan's account currency.
type loanService struct {
	BaseService
	loanRepo    portsrepo.LoanRepositoryFacade
	accountRepo portsrepo.ExpenseAccountRepositoryFacade
	rates       portssvc.RateTableProvider
}

// LoanServiceOption is a functional option for configuring the loan service
type LoanServiceOption func(*loanService)

// WithLoanAuthorizer sets the organization authorizer for the loan service.
func WithLoanAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) LoanServiceOption {
	return func(s *loanService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewLoanService creates a new loan service.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, accountRepo portsrepo.ExpenseAccountRepositoryFacade, rates portssvc.RateTableProvider, options ...LoanServiceOption) portssvc.LoanSvcFacade {
	svc := &loanService{
		loanRepo:    loanRepo,
		accountRepo: accountRepo,
		rates:       rates,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// CreateStandaloneLoan books a loan to a team member associated with the account.
func (s *loanService) CreateStandaloneLoan(ctx context.Context, organizationID string, req dto.CreateLoanRequest, userID string) (*domain.Loan, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.LedgerManagers...); err != nil {
		return nil, err
	}

	account, err := findAccount(ctx, s.accountRepo, organizationID, req.BusinessID)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.FindTeamMemberByID(ctx, organizationID, req.TeamMemberID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: team member %s", apperrors.ErrNotFound, req.TeamMemberID)
		}
		return nil, fmt.Errorf("failed to load team member %s: %w", req.TeamMemberID, err)
	}
	associated, err := s.accountRepo.IsTeamMemberOnAccount(ctx, req.TeamMemberID, account.ExpenseAccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check team member association",
			slog.String("team_member_id", req.TeamMemberID),
			slog.String("account_id", account.ExpenseAccountID))
		return nil, fmt.Errorf("failed to check team member association: %w", err)
	}
	if !associated {
		return nil, fmt.Errorf("%w: team member %s is not associated with account %s", apperrors.ErrValidation, req.TeamMemberID, account.ExpenseAccountID)
	}

	table, err := s.rates.RateTable(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	res, err := conversion.ResolveEntry(req.ToMoneyInput(), account.Currency, table)
	if err != nil {
		s.LogWarn(ctx, "Failed to resolve loan amount",
			slog.String("currency", req.Currency),
			slog.String("error", err.Error()))
		return nil, err
	}
	principal := res.LedgerAmount()
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: loan amount rounds to zero in %s", apperrors.ErrValidation, account.Currency)
	}

	now := time.Now()
	loan := domain.Loan{
		LoanID:          uuid.NewString(),
		OrganizationID:  organizationID,
		BusinessID:      account.ExpenseAccountID,
		TeamMemberID:    req.TeamMemberID,
		AccountCurrency: account.Currency,
		PrincipalAmount: principal,
		CurrentBalance:  principal,
		Original:        res.Entry,
		LoanDate:        req.LoanDate,
		Notes:           req.Notes,
		Status:          domain.LoanActive,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "Failed to save loan", slog.String("loan_id", loan.LoanID))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	s.LogInfo(ctx, "Loan created",
		slog.String("loan_id", loan.LoanID),
		slog.String("account_id", loan.BusinessID),
		slog.String("principal", loan.PrincipalAmount.String()),
		slog.String("currency", loan.AccountCurrency))
	return &loan, nil
}

// RecordLoanPayment converts the payment to the loan's account currency and
// applies it while the loan row is locked.
func (s *loanService) RecordLoanPayment(ctx context.Context, organizationID, loanID string, req dto.RecordLoanPaymentRequest, userID string) (*domain.Loan, *domain.LoanPayment, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.LedgerManagers...); err != nil {
		return nil, nil, err
	}

	loan, err := s.findLoan(ctx, organizationID, loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.Status != domain.LoanActive {
		return nil, nil, fmt.Errorf("%w: loan %s is %s", apperrors.ErrInvalidState, loanID, loan.Status)
	}

	table, err := s.rates.RateTable(ctx, organizationID)
	if err != nil {
		return nil, nil, err
	}
	res, err := conversion.ResolveEntry(req.ToMoneyInput(), loan.AccountCurrency, table)
	if err != nil {
		s.LogWarn(ctx, "Failed to resolve payment amount",
			slog.String("loan_id", loanID),
			slog.String("error", err.Error()))
		return nil, nil, err
	}
	amount := res.LedgerAmount()
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: payment rounds to zero in %s", apperrors.ErrValidation, loan.AccountCurrency)
	}

	now := time.Now()
	updated, payment, err := s.loanRepo.UpdateLoanLocked(ctx, organizationID, loanID, func(locked *domain.Loan) (*domain.LoanPayment, error) {
		if locked.Status != domain.LoanActive {
			return nil, fmt.Errorf("%w: loan %s is %s", apperrors.ErrInvalidState, loanID, locked.Status)
		}
		if !locked.CanAcceptPayment(amount) {
			return nil, fmt.Errorf("%w: payment %s %s exceeds balance %s", apperrors.ErrInsufficientBalance, amount.StringFixed(conversion.LedgerScale), locked.AccountCurrency, locked.CurrentBalance.StringFixed(conversion.LedgerScale))
		}
		locked.ApplyPayment(amount, userID, now)
		return &domain.LoanPayment{
			LoanPaymentID: uuid.NewString(),
			LoanID:        locked.LoanID,
			Amount:        amount,
			Original:      res.Entry,
			PaymentDate:   req.PaymentDate,
			RecordedBy:    userID,
			CreatedAt:     now,
		}, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) || errors.Is(err, apperrors.ErrInvalidState) {
			s.LogWarn(ctx, "Loan payment rejected", slog.String("loan_id", loanID), slog.String("error", err.Error()))
			return nil, nil, err
		}
		s.LogError(ctx, err, "Failed to record loan payment", slog.String("loan_id", loanID))
		return nil, nil, fmt.Errorf("failed to record loan payment: %w", err)
	}

	s.LogInfo(ctx, "Loan payment recorded",
		slog.String("loan_id", loanID),
		slog.String("amount", amount.String()),
		slog.String("balance", updated.CurrentBalance.String()),
		slog.String("status", string(updated.Status)))
	return updated, payment, nil
}

// CancelLoan moves an ACTIVE loan to CANCELLED. Payments are kept.
func (s *loanService) CancelLoan(ctx context.Context, organizationID, loanID, userID string) (*domain.Loan, error) {
	return s.transition(ctx, organizationID, loanID, userID, domain.LoanCancelled)
}

// MarkLoanDefaulted moves an ACTIVE loan to DEFAULTED.
func (s *loanService) MarkLoanDefaulted(ctx context.Context, organizationID, loanID, userID string) (*domain.Loan, error) {
	return s.transition(ctx, organizationID, loanID, userID, domain.LoanDefaulted)
}

func (s *loanService) transition(ctx context.Context, organizationID, loanID, userID string, target domain.LoanStatus) (*domain.Loan, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.LedgerManagers...); err != nil {
		return nil, err
	}

	now := time.Now()
	updated, _, err := s.loanRepo.UpdateLoanLocked(ctx, organizationID, loanID, func(locked *domain.Loan) (*domain.LoanPayment, error) {
		if locked.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: loan %s is already %s", apperrors.ErrInvalidState, loanID, locked.Status)
		}
		locked.Status = target
		locked.Touch(userID, now)
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		if errors.Is(err, apperrors.ErrInvalidState) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update loan status", slog.String("loan_id", loanID), slog.String("target", string(target)))
		return nil, fmt.Errorf("failed to update loan status: %w", err)
	}

	s.LogInfo(ctx, "Loan status changed", slog.String("loan_id", loanID), slog.String("status", string(target)))
	return updated, nil
}

// GetLoan retrieves a loan.
func (s *loanService) GetLoan(ctx context.Context, organizationID, loanID, userID string) (*domain.Loan, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	return s.findLoan(ctx, organizationID, loanID)
}

// ListLoans lists loans, optionally for one account.
func (s *loanService) ListLoans(ctx context.Context, organizationID, accountID, userID string) ([]domain.Loan, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.ListLoans(ctx, organizationID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	if loans == nil {
		return []domain.Loan{}, nil
	}
	return loans, nil
}

// ListLoanPayments lists the payment history of a loan.
func (s *loanService) ListLoanPayments(ctx context.Context, organizationID, loanID, userID string) ([]domain.LoanPayment, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.AnyMember...); err != nil {
		return nil, err
	}
	if _, err := s.findLoan(ctx, organizationID, loanID); err != nil {
		return nil, err
	}
	payments, err := s.loanRepo.ListLoanPayments(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loan payments", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to list loan payments: %w", err)
	}
	if payments == nil {
		return []domain.LoanPayment{}, nil
	}
	return payments, nil
}

func (s *loanService) findLoan(ctx context.Context, organizationID, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, organizationID, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		s.LogError(ctx, err, "Failed to load loan", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to load loan %s: %w", loanID, err)
	}
	return loan, nil
}
