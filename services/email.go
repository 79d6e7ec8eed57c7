package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"law_shop_app_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using the Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In test mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email in a goroutine so handlers never block on
// the email provider. Failures are logged only.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}

func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode - not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n%s\n%s", email.TextBody, separator)
}

// BuildIntakeConfirmationEmail acknowledges a public consultation request
func BuildIntakeConfirmationEmail(toEmail, firstName string) *Email {
	text := fmt.Sprintf(
		"Hi %s,\n\nWe received your consultation request. An attorney will review your information and reach out shortly. You can book a consultation time at your convenience using our scheduling link.\n\nThe Law Shop",
		firstName,
	)
	return &Email{
		To:       []string{toEmail},
		Subject:  "We received your consultation request",
		TextBody: text,
	}
}

// BuildBookingConfirmationEmail confirms a consultation booking picked up
// from the scheduling webhook
func BuildBookingConfirmationEmail(toEmail, firstName string, startTime time.Time) *Email {
	text := fmt.Sprintf(
		"Hi %s,\n\nYour consultation is confirmed for %s.\n\nIf you need to reschedule, use the link in your booking confirmation.\n\nThe Law Shop",
		firstName,
		startTime.Format("Monday, January 2, 2006 at 3:04 PM MST"),
	)
	return &Email{
		To:       []string{toEmail},
		Subject:  "Your consultation is confirmed",
		TextBody: text,
	}
}
