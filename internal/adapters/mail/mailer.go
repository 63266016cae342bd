// Package mail delivers rendered HR notifications.
package mail

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"hr-selfservice/internal/config"
	"hr-selfservice/internal/core/domain"
	"hr-selfservice/internal/core/services"

	"github.com/sirupsen/logrus"
	gomail "github.com/wneessen/go-mail"
)

// SMTPMailer sends mail through the configured SMTP relay
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer creates an SMTP mailer
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one message
func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) error {
	if len(email.To) == 0 {
		return errors.New("no recipients")
	}

	msg := gomail.NewMsg()
	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}
	if err := msg.From(from); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	if len(email.Cc) > 0 {
		if err := msg.Cc(email.Cc...); err != nil {
			return fmt.Errorf("invalid cc: %w", err)
		}
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, email.HTML)

	client, err := m.client()
	if err != nil {
		return err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) client() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.User),
		gomail.WithPassword(m.cfg.Password),
	}
	if m.cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return client, nil
}

// LogMailer logs messages instead of sending them. It is used when SMTP is not configured.
type LogMailer struct {
	mu   sync.Mutex
	sent []domain.Email
}

// NewLogMailer creates a log-only mailer
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Send records and logs the message
func (m *LogMailer) Send(_ context.Context, email domain.Email) error {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"to":      email.To,
		"cc":      email.Cc,
		"subject": email.Subject,
	}).Info("📭 Mail disabled, message logged only")
	return nil
}

// Sent returns the messages recorded so far
func (m *LogMailer) Sent() []domain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Email, len(m.sent))
	copy(out, m.sent)
	return out
}

// New picks the SMTP mailer when configured and the log mailer otherwise
func New(cfg config.MailConfig) services.Mailer {
	if cfg.Enabled() {
		logrus.WithField("host", cfg.Host).Info("📧 SMTP mailer enabled")
		return NewSMTPMailer(cfg)
	}
	logrus.Warn("⚠️ SMTP not configured, emails will only be logged")
	return NewLogMailer()
}
