package channels

import (
	"context"
	"fmt"

	"meta_content/config"
	"meta_content/internal/logger"

	"gopkg.in/gomail.v2"
)

// SendEmail gửi nội dung cadence qua SMTP (delivery method "email").
func SendEmail(ctx context.Context, cfg *config.Configuration, recipient string, subject string, content string) error {
	log := logger.GetAppLogger()

	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP host is not configured")
	}

	htmlContent := "<div style='white-space:pre-wrap;font-family:sans-serif;'>" + content + "</div>"

	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.SMTPFrom)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlContent)

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		log.WithError(err).WithField("recipient", recipient).Error("📧 [EMAIL] Lỗi khi gửi email")
		return err
	}

	log.WithField("recipient", recipient).Info("📧 [EMAIL] Gửi email thành công")
	return nil
}
