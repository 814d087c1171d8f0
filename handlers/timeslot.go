package handlers

import (
	"net/http"

	timeslotRepo "mindhaven/database/repository/timeslot"
	"mindhaven/models"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TimeSlotHandler exposes the appointment calendar: clients read open
// slots, administrators publish and retire them.
type TimeSlotHandler struct {
	Repo timeslotRepo.TimeSlotRepository
}

func NewTimeSlotHandler(repo timeslotRepo.TimeSlotRepository) *TimeSlotHandler {
	return &TimeSlotHandler{Repo: repo}
}

// ListAvailable handles GET /api/slots?date=YYYY-MM-DD.
func (h *TimeSlotHandler) ListAvailable(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	slots, err := h.Repo.GetAvailableByDate(c.Request.Context(), date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// CreateSlots handles POST /api/slots (admin). Publishes a batch of open
// slots for a date.
func (h *TimeSlotHandler) CreateSlots(c *gin.Context) {
	var body struct {
		Slots []models.TimeSlot `json:"slots" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		getLogger(c).Error("CreateSlots: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	ids, err := h.Repo.CreateMany(c.Request.Context(), body.Slots)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ids": ids})
}

// DeleteSlot handles DELETE /api/slots/:id (admin). A booked slot cannot
// be deleted.
func (h *TimeSlotHandler) DeleteSlot(c *gin.Context) {
	if err := h.Repo.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "deleted": true})
}
