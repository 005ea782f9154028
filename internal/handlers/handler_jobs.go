package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/SscSPs/expense_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	jobSubscriptionReminders = "subscription-reminders"
	jobMonthlyReports        = "monthly-reports"
)

// jobsHandler exposes the batch jobs to the external scheduler.
type jobsHandler struct {
	reminders portssvc.SubscriptionReminderJob
	reports   portssvc.MonthlyReportJob
	now       func() time.Time
}

// RegisterJobRoutes registers the internal job endpoints on a token-guarded group.
func RegisterJobRoutes(jobs *gin.RouterGroup, reminders portssvc.SubscriptionReminderJob, reports portssvc.MonthlyReportJob, now func() time.Time) {
	h := &jobsHandler{reminders: reminders, reports: reports, now: now}

	jobs.POST("/"+jobSubscriptionReminders, h.runReminders)
	jobs.POST("/"+jobMonthlyReports, h.runMonthlyReports)
}

// jobTime returns the optional ?at=RFC3339 override, or the current time.
func (h *jobsHandler) jobTime(c *gin.Context) (time.Time, bool) {
	raw := c.Query("at")
	if raw == "" {
		return h.now(), true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' parameter, expected RFC3339"})
		return time.Time{}, false
	}
	return at, true
}

// runReminders godoc
// @Summary Process subscription reminders
// @Tags jobs
// @Produce json
// @Param X-Job-Token header string true "Job token"
// @Param at query string false "Evaluation time (RFC3339)"
// @Success 200 {object} dto.JobRunResponse
// @Failure 401 {object} map[string]string "Invalid job token"
// @Router /internal/jobs/subscription-reminders [post]
func (h *jobsHandler) runReminders(c *gin.Context) {
	now, ok := h.jobTime(c)
	if !ok {
		return
	}
	sent, err := h.reminders.ProcessSubscriptionReminders(c.Request.Context(), now)
	if err != nil {
		respondError(c, err, "Subscription reminder job failed")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Subscription reminder job finished", slog.Int("reminders_sent", sent))
	c.JSON(http.StatusOK, dto.JobRunResponse{Job: jobSubscriptionReminders, Processed: sent, RanAt: now})
}

// runMonthlyReports godoc
// @Summary Generate last month's reports
// @Tags jobs
// @Produce json
// @Param X-Job-Token header string true "Job token"
// @Param at query string false "Evaluation time (RFC3339)"
// @Success 200 {object} dto.JobRunResponse
// @Failure 401 {object} map[string]string "Invalid job token"
// @Router /internal/jobs/monthly-reports [post]
func (h *jobsHandler) runMonthlyReports(c *gin.Context) {
	now, ok := h.jobTime(c)
	if !ok {
		return
	}
	generated, err := h.reports.GenerateMonthlyReports(c.Request.Context(), now)
	if err != nil {
		respondError(c, err, "Monthly report job failed")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Monthly report job finished", slog.Int("reports_generated", generated))
	c.JSON(http.StatusOK, dto.JobRunResponse{Job: jobMonthlyReports, Processed: generated, RanAt: now})
}
