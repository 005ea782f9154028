package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/SscSPs/expense_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyRateHandler handles HTTP requests for the rate table and conversions.
type currencyRateHandler struct {
	rateService portssvc.CurrencyRateSvcFacade
}

func newCurrencyRateHandler(rs portssvc.CurrencyRateSvcFacade) *currencyRateHandler {
	return &currencyRateHandler{rateService: rs}
}

// RegisterCurrencyRateRoutes registers rate table and conversion routes on an
// organization-scoped group.
func RegisterCurrencyRateRoutes(org *gin.RouterGroup, rateService portssvc.CurrencyRateSvcFacade) {
	h := newCurrencyRateHandler(rateService)

	org.POST("/conversions", h.convert)

	rates := org.Group("/currency-rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/:currency", h.getRate)
		rates.PUT("/:currency", h.upsertRate)
		rates.DELETE("/:currency", h.deleteRate)
	}
}

// convert godoc
// @Summary Convert an amount
// @Description Converts an amount between two currencies through the organization's base currency
// @Tags currency rates
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param conversion body dto.ConvertRequest true "Conversion request"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input or missing rate"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organizationID}/conversions [post]
func (h *currencyRateHandler) convert(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ConvertRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.rateService.Convert(c.Request.Context(), c.Param("organizationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listRates godoc
// @Summary List currency rates
// @Description Lists the organization's rate table. Each rate is the number of currency units one base unit buys.
// @Tags currency rates
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {array} dto.CurrencyRateResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organizationID}/currency-rates [get]
func (h *currencyRateHandler) listRates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rates, err := h.rateService.ListRates(c.Request.Context(), c.Param("organizationID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list currency rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyRateResponse(rates))
}

// getRate godoc
// @Summary Get a currency rate
// @Tags currency rates
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param currency path string true "Currency code"
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 404 {object} map[string]string "Rate not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/currency-rates/{currency} [get]
func (h *currencyRateHandler) getRate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rate, err := h.rateService.GetRate(c.Request.Context(), c.Param("organizationID"), c.Param("currency"), userID)
	if err != nil {
		respondError(c, err, "Failed to get currency rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(*rate))
}

// upsertRate godoc
// @Summary Create or replace a currency rate
// @Description Requires OWNER or ADMIN. Already recorded entries keep their own snapshot.
// @Tags currency rates
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param currency path string true "Currency code"
// @Param rate body dto.UpsertCurrencyRateRequest true "Rate"
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 400 {object} map[string]string "Invalid rate"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organizationID}/currency-rates/{currency} [put]
func (h *currencyRateHandler) upsertRate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpsertCurrencyRateRequest
	if !bindJSON(c, &req) {
		return
	}

	currency := strings.ToUpper(c.Param("currency"))
	rate, err := h.rateService.UpsertRate(c.Request.Context(), c.Param("organizationID"), currency, req, userID)
	if err != nil {
		respondError(c, err, "Failed to save currency rate")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Currency rate saved",
		slog.String("currency", rate.ToCurrency), slog.String("rate", rate.Rate.String()))
	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(*rate))
}

// deleteRate godoc
// @Summary Delete a currency rate
// @Tags currency rates
// @Param organizationID path string true "Organization ID"
// @Param currency path string true "Currency code"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Rate not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/currency-rates/{currency} [delete]
func (h *currencyRateHandler) deleteRate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.rateService.DeleteRate(c.Request.Context(), c.Param("organizationID"), c.Param("currency"), userID); err != nil {
		respondError(c, err, "Failed to delete currency rate")
		return
	}
	c.Status(http.StatusNoContent)
}
