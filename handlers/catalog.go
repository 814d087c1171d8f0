package handlers

import (
	"net/http"

	"mindhaven/models"
	"mindhaven/services/catalog"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the wellness program catalog.
type CatalogHandler struct {
	Svc catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

// ListPrograms handles GET /api/programs. Public listing returns active
// programs only; administrators pass ?all=true for the full catalog.
func (h *CatalogHandler) ListPrograms(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	programs, err := h.Svc.ListPrograms(c.Request.Context(), activeOnly)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// GetProgram handles GET /api/programs/:id.
func (h *CatalogHandler) GetProgram(c *gin.Context) {
	program, err := h.Svc.GetProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// CreateProgram handles POST /api/programs (admin).
func (h *CatalogHandler) CreateProgram(c *gin.Context) {
	var program models.Program
	if err := c.ShouldBindJSON(&program); err != nil {
		getLogger(c).Error("CreateProgram: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	created, err := h.Svc.CreateProgram(c.Request.Context(), &program)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProgram handles PUT /api/programs/:id (admin).
func (h *CatalogHandler) UpdateProgram(c *gin.Context) {
	var program models.Program
	if err := c.ShouldBindJSON(&program); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	program.ID = c.Param("id")

	if err := h.Svc.UpdateProgram(c.Request.Context(), &program); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// SetProgramActive handles PATCH /api/programs/:id/active (admin).
func (h *CatalogHandler) SetProgramActive(c *gin.Context) {
	var body struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if err := h.Svc.SetProgramActive(c.Request.Context(), c.Param("id"), *body.Active); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "active": *body.Active})
}
