package handlers

import (
	"net/http"

	"mindhaven/services/admin"
	"mindhaven/services/subscription"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the administrator dashboard surface.
type AdminHandler struct {
	Svc  admin.AdminService
	Subs subscription.LifecycleService
}

func NewAdminHandler(svc admin.AdminService, subs subscription.LifecycleService) *AdminHandler {
	return &AdminHandler{Svc: svc, Subs: subs}
}

// SystemStatus handles GET /api/admin/status.
func (h *AdminHandler) SystemStatus(c *gin.Context) {
	settings, err := h.Svc.SystemStatus(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListClients handles GET /api/admin/clients.
func (h *AdminHandler) ListClients(c *gin.Context) {
	clients, err := h.Svc.ListClients(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// ListPractitioners handles GET /api/admin/practitioners.
func (h *AdminHandler) ListPractitioners(c *gin.Context) {
	practitioners, err := h.Svc.ListPractitioners(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, practitioners)
}

// ListSubscriptions handles GET /api/admin/subscriptions.
func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.Svc.ListSubscriptions(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// AssignPractitioner handles POST /api/admin/subscriptions/:id/practitioner.
func (h *AdminHandler) AssignPractitioner(c *gin.Context) {
	var body struct {
		PractitionerID string `json:"practitionerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if err := h.Subs.AssignPractitioner(c.Request.Context(), c.Param("id"), body.PractitionerID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "practitionerId": body.PractitionerID})
}
