package notification

import (
	"context"

	userRepo "mindhaven/database/repository/user"
	"mindhaven/models"
)

// NotificationService delivers a payload to a user over every channel
// their account supports. Channel failures are independent; a dead FCM
// token never blocks the email and vice versa.
type NotificationService interface {
	Deliver(ctx context.Context, payload models.NotificationPayload) error
	SendEmail(to, subject, htmlBody string) error
	SendPush(ctx context.Context, fcmToken, title, body string, data map[string]string) error
}

// DefaultNotificationService implements NotificationService over FCM push
// and SMTP email.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

// NewNotificationService constructs a notification service.
func NewNotificationService(users userRepo.UserRepository) NotificationService {
	return &DefaultNotificationService{Users: users}
}
