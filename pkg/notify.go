package pkg

import (
	"academy-platform/pkg/logger"

	"github.com/resend/resend-go/v2"
	"github.com/spf13/viper"
)

// SendNotificationEmail delivers an HTML notification through Resend. The
// sender address comes from NOTIFY_FROM_EMAIL so every locale mails from the
// same domain.
func SendNotificationEmail(to, subject, html string) error {
	log := logger.Get().WithComponent("notify")

	apiKey := viper.GetString("RESEND_API")

	var param resend.SendEmailRequest
	param.From = viper.GetString("NOTIFY_FROM_EMAIL")
	param.To = []string{to}
	param.Subject = subject
	param.Html = html

	client := resend.NewClient(apiKey)

	sent, err := client.Emails.Send(&param)
	if err != nil {
		log.Error("Failed to send notification email", err, logger.Email(to))
		return err
	}

	log.Info("Notification email sent", logger.String("resend_id", sent.Id), logger.Email(to))

	return nil
}
