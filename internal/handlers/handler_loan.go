package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/expense_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/SscSPs/expense_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loans.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

// RegisterLoanRoutes registers loan routes on an organization-scoped group.
func RegisterLoanRoutes(org *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := &loanHandler{loanService: loanService}

	loans := org.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:loanID", h.getLoan)
		loans.POST("/:loanID/payments", h.recordPayment)
		loans.GET("/:loanID/payments", h.listPayments)
		loans.POST("/:loanID/cancel", h.cancelLoan)
		loans.POST("/:loanID/default", h.markDefaulted)
	}
}

// createLoan godoc
// @Summary Book a standalone loan
// @Description Lends money from an expense account to a team member associated with it. Requires OWNER or ADMIN.
// @Tags loans
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param loan body dto.CreateLoanRequest true "Loan"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Invalid input or missing rate"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account or team member not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateLoanRequest
	if !bindJSON(c, &req) {
		return
	}

	loan, err := h.loanService.CreateStandaloneLoan(c.Request.Context(), c.Param("organizationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create loan")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Loan created",
		slog.String("loan_id", loan.LoanID), slog.String("principal", loan.PrincipalAmount.String()))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(*loan))
}

// listLoans godoc
// @Summary List loans
// @Tags loans
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param accountID query string false "Expense account filter"
// @Success 200 {array} dto.LoanResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	loans, err := h.loanService.ListLoans(c.Request.Context(), c.Param("organizationID"), c.Query("accountID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	loan, err := h.loanService.GetLoan(c.Request.Context(), c.Param("organizationID"), c.Param("loanID"), userID)
	if err != nil {
		respondError(c, err, "Failed to get loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(*loan))
}

// recordPayment godoc
// @Summary Record a loan payment
// @Description Converts the payment to the account currency and reduces the balance atomically. Requires OWNER or ADMIN.
// @Tags loans
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param loanID path string true "Loan ID"
// @Param payment body dto.RecordLoanPaymentRequest true "Payment"
// @Success 201 {object} dto.RecordLoanPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or missing rate"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 409 {object} map[string]string "Payment exceeds balance or loan is not active"
// @Security BearerAuth
// @Router /organizations/{organizationID}/loans/{loanID}/payments [post]
func (h *loanHandler) recordPayment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.RecordLoanPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	loan, payment, err := h.loanService.RecordLoanPayment(c.Request.Context(), c.Param("organizationID"), c.Param("loanID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record loan payment")
		return
	}
	c.JSON(http.StatusCreated, dto.RecordLoanPaymentResponse{
		Loan:    dto.ToLoanResponse(*loan),
		Payment: dto.ToLoanPaymentResponse(*payment),
	})
}

// listPayments godoc
// @Summary List loan payments
// @Tags loans
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param loanID path string true "Loan ID"
// @Success 200 {array} dto.LoanPaymentResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/loans/{loanID}/payments [get]
func (h *loanHandler) listPayments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	payments, err := h.loanService.ListLoanPayments(c.Request.Context(), c.Param("organizationID"), c.Param("loanID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list loan payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanPaymentResponses(payments))
}

// cancelLoan godoc
// @Summary Cancel a loan
// @Tags loans
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 409 {object} map[string]string "Loan is not active"
// @Security BearerAuth
// @Router /organizations/{organizationID}/loans/{loanID}/cancel [post]
func (h *loanHandler) cancelLoan(c *gin.Context) {
	h.transition(c, domain.LoanCancelled)
}

// markDefaulted godoc
// @Summary Mark a loan as defaulted
// @Tags loans
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 409 {object} map[string]string "Loan is not active"
// @Security BearerAuth
// @Router /organizations/{organizationID}/loans/{loanID}/default [post]
func (h *loanHandler) markDefaulted(c *gin.Context) {
	h.transition(c, domain.LoanDefaulted)
}

func (h *loanHandler) transition(c *gin.Context, target domain.LoanStatus) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orgID, loanID := c.Param("organizationID"), c.Param("loanID")

	var (
		loan *domain.Loan
		err  error
	)
	if target == domain.LoanCancelled {
		loan, err = h.loanService.CancelLoan(c.Request.Context(), orgID, loanID, userID)
	} else {
		loan, err = h.loanService.MarkLoanDefaulted(c.Request.Context(), orgID, loanID, userID)
	}
	if err != nil {
		respondError(c, err, "Failed to update loan status")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(*loan))
}
