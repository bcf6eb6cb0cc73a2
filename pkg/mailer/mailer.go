// Package mailer sends notification emails over SMTP. The default
// configuration targets Mailtrap (smtp.mailtrap.io), which is useful for
// development and testing environments; point Host/Port at a real relay for
// production.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends emails through one SMTP account.
type Mailer struct {
	host   string
	port   string
	user   string
	pass   string
	sender string
}

// NewMailerConfig contains options for creating a new Mailer. Host and Port
// default to the Mailtrap sandbox when empty.
type NewMailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// NewMailer creates a new Mailer. Username, Password and Sender are required.
func NewMailer(cfg NewMailerConfig) (*Mailer, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("SMTP username and password must be provided")
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("sender email address cannot be empty")
	}
	host := cfg.Host
	if host == "" {
		host = "smtp.mailtrap.io"
	}
	port := cfg.Port
	if port == "" {
		port = "2525"
	}
	return &Mailer{
		host:   host,
		port:   port,
		user:   cfg.Username,
		pass:   cfg.Password,
		sender: cfg.Sender,
	}, nil
}

// Send delivers one email. The body may be plain text or HTML; the
// Content-Type header is inferred from basic HTML tags (<html>, <p>).
func (m *Mailer) Send(recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}

	contentType := "text/plain; charset=UTF-8"
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", recipient, m.sender, subject, contentType, body))

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.sender, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
