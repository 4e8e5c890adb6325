package mailer

import (
	"crypto/tls"
	"fmt"
	"net/mail"
	"net/smtp"

	"gobarber/config"
)

// Mailer sends a single outbound email.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail over implicit-TLS SMTP (port 465 style).
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer builds a mailer from the application configuration.
func NewSMTPMailer() *SMTPMailer {
	cfg := config.AppConfig
	return &SMTPMailer{
		host:     cfg.MailHost,
		port:     cfg.MailPort,
		username: cfg.MailUser,
		password: cfg.MailPass,
		from:     cfg.MailFrom,
	}
}

// Send delivers an HTML email to a single recipient. The to argument may
// carry a display name ("Name <addr>"); the envelope uses the bare address.
func (m *SMTPMailer) Send(to, subject, body string) error {
	rcpt, err := mail.ParseAddress(to)
	if err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to, err)
	}

	msg := []byte(
		fmt.Sprintf("From: %s\r\n", m.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := m.host + ":" + m.port

	tlsConfig := &tls.Config{
		ServerName: m.host,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(m.username); err != nil {
		return err
	}
	if err := client.Rcpt(rcpt.Address); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return nil
}
