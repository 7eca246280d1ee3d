// Package mailer sends transactional and promotional email over SMTP.
// The Sender interface is what the rest of the system depends on; the
// SMTP implementation is constructed once in main and injected.
//
// When transport credentials are absent the mailer short-circuits with
// ErrNotConfigured instead of failing: email is always best-effort
// relative to the operation that triggered it, and a committed order is
// never rolled back or blocked because mail could not be sent.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/tech-up/commerce-api/internal/config"
)

// ErrNotConfigured is returned when MAIL_USER/MAIL_PASS are missing.
var ErrNotConfigured = errors.New("mailer not configured")

// Attachment is a binary file attached to a message, held in memory.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outbound email.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers messages. Implementations must not retry; a transient
// failure is reported once to the caller.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTP sends mail through a single SMTP account (the store's address is
// also the From header).
type SMTP struct {
	cfg config.MailConfig
	log zerolog.Logger
}

// New returns an SMTP sender using the given transport configuration.
func New(cfg config.MailConfig, log zerolog.Logger) *SMTP {
	if cfg.User == "" || cfg.Pass == "" {
		log.Warn().Msg("MAIL_USER/MAIL_PASS missing, outbound email disabled")
	}
	return &SMTP{cfg: cfg, log: log}
}

// Send delivers one message, honouring context cancellation between the
// dial and the send.
func (s *SMTP) Send(ctx context.Context, m Message) error {
	if s.cfg.User == "" || s.cfg.Pass == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("Tech-Up <%s>", s.cfg.User))
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)
	for _, a := range m.Attachments {
		content := a.Content
		msg.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", m.To, err)
	}
	s.log.Info().Str("to", m.To).Str("subject", m.Subject).Msg("email sent")
	return nil
}

// AdminAddress returns the configured admin notification address, falling
// back to the transport account itself.
func (s *SMTP) AdminAddress() string {
	if s.cfg.AdminEmail != "" {
		return s.cfg.AdminEmail
	}
	return s.cfg.User
}
