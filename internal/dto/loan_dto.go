package dto

import (
	"time"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the body for booking a standalone loan.
type CreateLoanRequest struct {
	TeamMemberID string    `json:"teamMemberID" binding:"required"`
	BusinessID   string    `json:"businessID" binding:"required"` // expense account the loan is paid from
	LoanDate     time.Time `json:"loanDate" binding:"required"`
	Notes        string    `json:"notes" binding:"max=1000"`
	MoneyInputRequest
}

// RecordLoanPaymentRequest defines the body for paying down a loan.
type RecordLoanPaymentRequest struct {
	PaymentDate time.Time `json:"paymentDate" binding:"required"`
	MoneyInputRequest
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID          string             `json:"loanID"`
	BusinessID      string             `json:"businessID"`
	TeamMemberID    string             `json:"teamMemberID"`
	AccountCurrency string             `json:"accountCurrency"`
	PrincipalAmount decimal.Decimal    `json:"principalAmount"`
	CurrentBalance  decimal.Decimal    `json:"currentBalance"`
	Original        MoneyEntryResponse `json:"original"`
	LoanDate        time.Time          `json:"loanDate"`
	Notes           string             `json:"notes"`
	Status          domain.LoanStatus  `json:"status"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse DTO.
func ToLoanResponse(l domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:          l.LoanID,
		BusinessID:      l.BusinessID,
		TeamMemberID:    l.TeamMemberID,
		AccountCurrency: l.AccountCurrency,
		PrincipalAmount: l.PrincipalAmount,
		CurrentBalance:  l.CurrentBalance,
		Original:        ToMoneyEntryResponse(l.Original),
		LoanDate:        l.LoanDate,
		Notes:           l.Notes,
		Status:          l.Status,
		LastUpdatedAt:   l.LastUpdatedAt,
	}
}

// ToLoanResponses converts a slice of domain.Loan.
func ToLoanResponses(loans []domain.Loan) []LoanResponse {
	responses := make([]LoanResponse, len(loans))
	for i, l := range loans {
		responses[i] = ToLoanResponse(l)
	}
	return responses
}

// LoanPaymentResponse defines the data returned for a loan payment.
type LoanPaymentResponse struct {
	LoanPaymentID string             `json:"loanPaymentID"`
	LoanID        string             `json:"loanID"`
	Amount        decimal.Decimal    `json:"amount"`
	Original      MoneyEntryResponse `json:"original"`
	PaymentDate   time.Time          `json:"paymentDate"`
	RecordedBy    string             `json:"recordedBy"`
}

// ToLoanPaymentResponse converts a domain.LoanPayment to LoanPaymentResponse DTO.
func ToLoanPaymentResponse(p domain.LoanPayment) LoanPaymentResponse {
	return LoanPaymentResponse{
		LoanPaymentID: p.LoanPaymentID,
		LoanID:        p.LoanID,
		Amount:        p.Amount,
		Original:      ToMoneyEntryResponse(p.Original),
		PaymentDate:   p.PaymentDate,
		RecordedBy:    p.RecordedBy,
	}
}

// ToLoanPaymentResponses converts a slice of domain.LoanPayment.
func ToLoanPaymentResponses(payments []domain.LoanPayment) []LoanPaymentResponse {
	responses := make([]LoanPaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToLoanPaymentResponse(p)
	}
	return responses
}

// RecordLoanPaymentResponse returns the updated loan with the appended payment.
type RecordLoanPaymentResponse struct {
	Loan    LoanResponse        `json:"loan"`
	Payment LoanPaymentResponse `json:"payment"`
}
