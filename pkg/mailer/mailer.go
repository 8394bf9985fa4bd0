// Package mailer delivers the emails drained from the email queue over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// SMTPMailer sends HTML mail through a single SMTP server.
type SMTPMailer struct {
	cfg  Config
	auth smtp.Auth
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		cfg:  cfg,
		auth: smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host),
	}
}

// Send delivers a single HTML email.
func (m *SMTPMailer) Send(to, subject, html string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)

	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := smtp.SendMail(addr, m.auth, m.cfg.From, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
