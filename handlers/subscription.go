package handlers

import (
	"net/http"

	"mindhaven/models"
	"mindhaven/services/subscription"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscriptionHandler exposes the subscription lifecycle to clients.
type SubscriptionHandler struct {
	Svc subscription.LifecycleService
}

func NewSubscriptionHandler(svc subscription.LifecycleService) *SubscriptionHandler {
	return &SubscriptionHandler{Svc: svc}
}

// CreateSubscription handles POST /api/subscriptions.
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var body struct {
		ProgramID string `json:"programId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		getLogger(c).Error("CreateSubscription: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	sub, err := h.Svc.CreateSubscription(c.Request.Context(), currentUserID(c), body.ProgramID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// CompleteSetup handles POST /api/subscriptions/:id/complete-setup.
func (h *SubscriptionHandler) CompleteSetup(c *gin.Context) {
	var body struct {
		Preferences map[string]string `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	sub, err := h.ownSubscription(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	updated, err := h.Svc.CompleteSetup(c.Request.Context(), sub.ID, body.Preferences)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Pause handles POST /api/subscriptions/:id/pause.
func (h *SubscriptionHandler) Pause(c *gin.Context) {
	sub, err := h.ownSubscription(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := h.Svc.Pause(c.Request.Context(), sub.ID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": sub.ID, "status": "paused"})
}

// Cancel handles POST /api/subscriptions/:id/cancel.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	sub, err := h.ownSubscription(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := h.Svc.Cancel(c.Request.Context(), sub.ID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": sub.ID, "status": "cancelled"})
}

// ListMine handles GET /api/subscriptions.
func (h *SubscriptionHandler) ListMine(c *gin.Context) {
	subs, err := h.Svc.GetForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// GetSubscription handles GET /api/subscriptions/:id.
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sub, err := h.ownSubscription(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ownSubscription loads the path subscription and verifies it belongs to
// the authenticated user.
func (h *SubscriptionHandler) ownSubscription(c *gin.Context) (*models.Subscription, error) {
	sub, err := h.Svc.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if sub.UserID != currentUserID(c) {
		return nil, utils.NewAuthorizationError("subscription belongs to another user")
	}
	return sub, nil
}
