package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for reports and account summaries.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
	now           func() time.Time
}

// RegisterReportRoutes registers report and summary routes on an organization-scoped group.
func RegisterReportRoutes(org *gin.RouterGroup, reportService portssvc.ReportSvcFacade, now func() time.Time) {
	h := &reportHandler{reportService: reportService, now: now}

	reports := org.Group("/reports")
	{
		reports.POST("", h.generateReport)
		reports.GET("", h.listReports)
		reports.GET("/:reportID", h.getReport)
	}
	org.GET("/accounts/:accountID/summary", h.accountSummary)
}

// generateReport godoc
// @Summary Generate a custom report
// @Description Converts every expense dated in [periodStart, periodEnd) to the report currency and stores a snapshot.
// @Description periodEnd is exclusive: a January report ends on February 1.
// @Tags reports
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param report body dto.GenerateReportRequest true "Report parameters"
// @Success 201 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid period or missing rate"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/reports [post]
func (h *reportHandler) generateReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.GenerateReportRequest
	if !bindJSON(c, &req) {
		return
	}

	report, err := h.reportService.GenerateCustomReport(c.Request.Context(), c.Param("organizationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to generate report")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReportResponse(*report))
}

// listReports godoc
// @Summary List reports
// @Tags reports
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {array} dto.ReportResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/reports [get]
func (h *reportHandler) listReports(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	reports, err := h.reportService.ListReports(c.Request.Context(), c.Param("organizationID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list reports")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponses(reports))
}

// getReport godoc
// @Summary Get a report
// @Tags reports
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param reportID path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} map[string]string "Report not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/reports/{reportID} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	report, err := h.reportService.GetReport(c.Request.Context(), c.Param("organizationID"), c.Param("reportID"), userID)
	if err != nil {
		respondError(c, err, "Failed to get report")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(*report))
}

// accountSummary godoc
// @Summary Summarize an expense account
// @Description Last 30 days, current month and outstanding loans in the account's currency
// @Tags reports
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param accountID path string true "Expense account ID"
// @Success 200 {object} dto.AccountSummaryResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/accounts/{accountID}/summary [get]
func (h *reportHandler) accountSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	summary, err := h.reportService.GetAccountSummary(c.Request.Context(), c.Param("organizationID"), c.Param("accountID"), userID, h.now())
	if err != nil {
		respondError(c, err, "Failed to summarize account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountSummaryResponse(*summary))
}
