package user

import (
	"context"

	userRepo "mindhaven/database/repository/user"
	"mindhaven/models"
)

// UserService manages platform accounts: registration, credential auth,
// email verification and password recovery.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, userID, code string) error
	ResendVerification(ctx context.Context, userID string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
}

// Mailer sends transactional account email. Satisfied by the
// notification service.
type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Mailer Mailer
}
