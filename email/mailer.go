// Package email delivers transactional mail through SendGrid. Every
// send is fire-and-forget from the caller's perspective: failures are
// returned for logging but never fail the surrounding request.
package email

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Mailer struct {
	apiKey   string
	from     string
	fromName string
	log      zerolog.Logger
}

func NewMailer(apiKey, from, fromName string, log zerolog.Logger) *Mailer {
	return &Mailer{apiKey: apiKey, from: from, fromName: fromName, log: log}
}

func (m *Mailer) send(to, subject, html string) error {
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.from),
		subject,
		mail.NewEmail("", to),
		"",
		html,
	)

	resp, err := sendgrid.NewSendClient(m.apiKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		m.log.Error().Int("status", resp.StatusCode).Str("body", resp.Body).Msg("sendgrid rejected message")
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

func (m *Mailer) SendOTP(to, name, code string) error {
	html, err := render(otpTemplate, templateData{Name: name, Code: code})
	if err != nil {
		return err
	}
	return m.send(to, "Your verification code", html)
}

func (m *Mailer) SendWelcome(to, name string) error {
	html, err := render(welcomeTemplate, templateData{Name: name})
	if err != nil {
		return err
	}
	return m.send(to, "Welcome aboard", html)
}

func (m *Mailer) SendPasswordReset(to, name, code string) error {
	html, err := render(passwordResetTemplate, templateData{Name: name, Code: code})
	if err != nil {
		return err
	}
	return m.send(to, "Password reset code", html)
}

func (m *Mailer) SendOrderConfirmation(to, name, orderNumber string, total float64) error {
	html, err := render(orderConfirmationTemplate, templateData{
		Name:        name,
		OrderNumber: orderNumber,
		Total:       fmt.Sprintf("%.2f", total),
	})
	if err != nil {
		return err
	}
	return m.send(to, fmt.Sprintf("Order %s received", orderNumber), html)
}

func (m *Mailer) SendProfileUpdated(to, name string) error {
	html, err := render(profileUpdatedTemplate, templateData{Name: name})
	if err != nil {
		return err
	}
	return m.send(to, "Your profile was updated", html)
}

func (m *Mailer) SendAdminApproval(to, name string, approved bool) error {
	tmpl := adminRejectedTemplate
	subject := "Admin access update"
	if approved {
		tmpl = adminApprovedTemplate
		subject = "Admin access granted"
	}
	html, err := render(tmpl, templateData{Name: name})
	if err != nil {
		return err
	}
	return m.send(to, subject, html)
}
