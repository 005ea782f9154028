package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/expense_ledger/internal/core/ports/services"
	"github.com/SscSPs/expense_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// subscriptionHandler handles HTTP requests related to subscriptions.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

// RegisterSubscriptionRoutes registers subscription routes on an organization-scoped group.
func RegisterSubscriptionRoutes(org *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade) {
	h := &subscriptionHandler{subscriptionService: subscriptionService}

	subs := org.Group("/subscriptions")
	{
		subs.POST("", h.createSubscription)
		subs.GET("", h.listSubscriptions)
		subs.GET("/:subscriptionID", h.getSubscription)
		subs.PATCH("/:subscriptionID/status", h.updateStatus)
	}
}

// createSubscription godoc
// @Summary Register a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param subscription body dto.CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid schedule or missing rate"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{organizationID}/subscriptions [post]
func (h *subscriptionHandler) createSubscription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSubscriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), c.Param("organizationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create subscription")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(*sub))
}

// listSubscriptions godoc
// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Success 200 {array} dto.SubscriptionResponse
// @Security BearerAuth
// @Router /organizations/{organizationID}/subscriptions [get]
func (h *subscriptionHandler) listSubscriptions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	subs, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), c.Param("organizationID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list subscriptions")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponses(subs))
}

// getSubscription godoc
// @Summary Get a subscription
// @Tags subscriptions
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param subscriptionID path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/subscriptions/{subscriptionID} [get]
func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), c.Param("organizationID"), c.Param("subscriptionID"), userID)
	if err != nil {
		respondError(c, err, "Failed to get subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(*sub))
}

// updateStatus godoc
// @Summary Pause, resume or cancel a subscription
// @Description Requires OWNER or ADMIN. A cancelled subscription cannot be reactivated.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param organizationID path string true "Organization ID"
// @Param subscriptionID path string true "Subscription ID"
// @Param status body dto.UpdateSubscriptionStatusRequest true "New status"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /organizations/{organizationID}/subscriptions/{subscriptionID}/status [patch]
func (h *subscriptionHandler) updateStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSubscriptionStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, err := h.subscriptionService.UpdateSubscriptionStatus(c.Request.Context(), c.Param("organizationID"), c.Param("subscriptionID"), req.Status, userID)
	if err != nil {
		respondError(c, err, "Failed to update subscription status")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(*sub))
}
