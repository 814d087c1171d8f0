package handlers

import (
	"net/http"

	"mindhaven/models"
	"mindhaven/services/user"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes registration, authentication and profile endpoints.
type UserHandler struct {
	Svc user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Error("Register: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Credential failures read as 401 here, not the generic 403.
		if utils.StatusForError(err) == http.StatusForbidden {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/users/logout.
func (h *UserHandler) Logout(c *gin.Context) {
	token, _ := c.Get("authToken")
	tokenString, _ := token.(string)
	if err := h.Svc.Logout(c.Request.Context(), tokenString); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// VerifyEmail handles POST /api/users/verify-otp.
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	var body struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if err := h.Svc.VerifyEmail(c.Request.Context(), currentUserID(c), body.Code); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"emailVerified": true})
}

// ResendVerification handles POST /api/users/resend-verification.
func (h *UserHandler) ResendVerification(c *gin.Context) {
	if err := h.Svc.ResendVerification(c.Request.Context(), currentUserID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
}

// RequestPasswordReset handles POST /api/users/reset-password/request.
func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if err := h.Svc.RequestPasswordReset(c.Request.Context(), body.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset code has been sent"})
}

// ResetPassword handles POST /api/users/reset-password.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var body struct {
		Email       string `json:"email" binding:"required,email"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if err := h.Svc.ResetPassword(c.Request.Context(), body.Email, body.Code, body.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// GetProfile handles GET /api/users/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateFCMToken handles PUT /api/users/fcm-token.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if err := h.Svc.UpdateFCMToken(c.Request.Context(), currentUserID(c), body.Token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "device token updated"})
}
