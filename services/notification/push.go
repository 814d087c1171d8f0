package notification

import (
	"context"
	"errors"

	"mindhaven/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// SendPush dispatches an FCM data message to a single device token.
func (s *DefaultNotificationService) SendPush(ctx context.Context, fcmToken, title, body string, data map[string]string) error {
	if fcmToken == "" {
		return errors.New("no device token registered")
	}
	if utils.FCMClient == nil {
		return errors.New("messaging client not initialized")
	}

	msg := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	id, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return err
	}
	utils.GetLogger().Debug("push notification sent",
		zap.String("messageId", id))
	return nil
}
