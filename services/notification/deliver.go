package notification

import (
	"context"
	"fmt"

	"mindhaven/models"
	"mindhaven/utils"

	"go.uber.org/zap"
)

// Deliver resolves the recipient and pushes the payload over every channel
// available on their account. A partial failure returns an error so the
// task queue can retry, but every channel is attempted.
func (s *DefaultNotificationService) Deliver(ctx context.Context, payload models.NotificationPayload) error {
	email := payload.Email
	fcmToken := ""

	if u, err := s.Users.GetByID(ctx, payload.UserID); err == nil {
		if email == "" {
			email = u.Email
		}
		fcmToken = u.FCMToken
	} else {
		utils.GetLogger().Warn("notification recipient lookup failed",
			zap.String("userId", payload.UserID), zap.Error(err))
	}

	var pushErr, emailErr error

	if fcmToken != "" {
		if pushErr = s.SendPush(ctx, fcmToken, payload.Title, payload.Body, payload.Data); pushErr != nil {
			utils.GetLogger().Warn("push delivery failed",
				zap.String("userId", payload.UserID), zap.Error(pushErr))
		}
	}

	if email != "" {
		body := payload.EmailHTML
		if body == "" {
			body = fmt.Sprintf("<p>%s</p>", payload.Body)
		}
		if emailErr = s.SendEmail(email, payload.Title, body); emailErr != nil {
			utils.GetLogger().Warn("email delivery failed",
				zap.String("userId", payload.UserID), zap.Error(emailErr))
		}
	}

	if emailErr != nil {
		return emailErr
	}
	return pushErr
}
