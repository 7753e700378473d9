package mailer

import (
	"fmt"
	"net/smtp"

	"alumniportal/pkg/config"
)

// Mailer delivers one-time passwords to account owners.
type Mailer interface {
	SendOTP(to, code string) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendOTP(to, code string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your password reset code\r\n\r\n"+
			"Your one-time password is %s. It expires shortly; do not share it.\r\n",
		m.cfg.From, to, code,
	))

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send OTP mail: %w", err)
	}
	return nil
}
