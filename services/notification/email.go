package notification

import (
	"mindhaven/config"
	"mindhaven/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SendEmail delivers an HTML email over the configured SMTP relay.
func (s *DefaultNotificationService) SendEmail(to, subject, htmlBody string) error {
	cfg := config.AppConfig

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		utils.GetLogger().Error("failed to send email",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return err
	}
	return nil
}
