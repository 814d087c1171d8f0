package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the login session lifetime.
const TokenTTL = 72 * time.Hour

// Register creates a new client account and emails a verification code.
// The account is usable immediately; verification only gates the
// email-verified badge on the profile.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, utils.NewValidationError("email is required")
	}
	if len(req.Password) < 8 {
		return nil, utils.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         models.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.sendVerificationEmail(ctx, u); err != nil {
		utils.GetLogger().Warn("failed to send verification email",
			zap.String("userId", u.ID), zap.Error(err))
	}
	return u, nil
}

// Login verifies credentials and issues a session token. The token's hash
// is cached so that logout can revoke it before expiry.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewAuthorizationError("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, utils.NewAuthorizationError("invalid email or password")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	key := utils.AuthCachePrefix + utils.HashToken(token)
	if err := utils.GetAuthCacheClient().Set(ctx, key, u.ID, TokenTTL).Err(); err != nil {
		return nil, utils.NewStorageError("cache session", err)
	}

	return &models.AuthResponse{
		ID:            u.ID,
		Token:         token,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}, nil
}

// Logout revokes the presented session token.
func (s *DefaultUserService) Logout(ctx context.Context, token string) error {
	key := utils.AuthCachePrefix + utils.HashToken(token)
	if err := utils.GetAuthCacheClient().Del(ctx, key).Err(); err != nil {
		return utils.NewStorageError("revoke session", err)
	}
	return nil
}

func (s *DefaultUserService) sendVerificationEmail(ctx context.Context, u *models.User) error {
	code, err := utils.IssueOTP(ctx, utils.VerifyOTPPrefix, u.ID)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your MindHaven verification code is <b>%s</b>. It expires in 10 minutes.</p>",
		u.FirstName, code)
	return s.Mailer.SendEmail(u.Email, "Verify your MindHaven email", body)
}

// VerifyEmail consumes a verification code and marks the account verified.
func (s *DefaultUserService) VerifyEmail(ctx context.Context, userID, code string) error {
	if err := utils.CheckOTP(ctx, utils.VerifyOTPPrefix, userID, code); err != nil {
		return err
	}
	return s.Repo.UpdateFields(ctx, userID, map[string]interface{}{
		"email_verified": true,
	})
}

// ResendVerification issues a fresh code for an unverified account.
func (s *DefaultUserService) ResendVerification(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return utils.NewValidationError("email is already verified")
	}
	return s.sendVerificationEmail(ctx, u)
}

// RequestPasswordReset emails a reset code. The response is identical
// whether or not the email exists; account presence is never disclosed.
func (s *DefaultUserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Debug("password reset for unknown email", zap.String("email", email))
		return nil
	}
	code, err := utils.IssueOTP(ctx, utils.ResetOTPPrefix, u.ID)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your MindHaven password reset code is <b>%s</b>. It expires in 10 minutes.</p>",
		u.FirstName, code)
	return s.Mailer.SendEmail(u.Email, "Reset your MindHaven password", body)
}

// ResetPassword consumes a reset code and replaces the password hash.
func (s *DefaultUserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if len(newPassword) < 8 {
		return utils.NewValidationError("password must be at least 8 characters")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return utils.NewValidationError("reset code expired or not found")
	}
	if err := utils.CheckOTP(ctx, utils.ResetOTPPrefix, u.ID, code); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.Repo.UpdateFields(ctx, u.ID, map[string]interface{}{
		"password_hash": string(hash),
	})
}
