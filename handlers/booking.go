package handlers

import (
	"net/http"

	"mindhaven/models"
	"mindhaven/services/booking"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes appointment requests and admin review actions.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// RequestBooking handles POST /api/bookings.
func (h *BookingHandler) RequestBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Error("RequestBooking: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	b, err := h.Svc.RequestBooking(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking handles GET /api/bookings/:id. Clients see their own
// bookings; admins see any.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if role, _ := c.Get("userRole"); role != "admin" && b.UserID != currentUserID(c) {
		utils.RespondError(c, utils.NewAuthorizationError("booking belongs to another user"))
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookings handles GET /api/bookings?status= (admin).
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Svc.ListBookings(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ConfirmBooking handles POST /api/bookings/:id/confirm (admin).
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var decision models.AdminDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	decision.AdminID = currentUserID(c)

	b, err := h.Svc.ConfirmBooking(c.Request.Context(), c.Param("id"), decision)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RejectBooking handles POST /api/bookings/:id/reject (admin).
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	var decision models.AdminDecision
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	decision.AdminID = currentUserID(c)

	b, err := h.Svc.RejectBooking(c.Request.Context(), c.Param("id"), decision)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles POST /api/bookings/:id/cancel (admin).
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.Svc.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": "cancelled"})
}

// CompleteBooking handles POST /api/bookings/:id/complete (admin).
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	if err := h.Svc.CompleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": "completed"})
}
