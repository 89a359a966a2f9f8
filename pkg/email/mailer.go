// Package email sends operational notifications over SMTP.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/campusbridge/campusbridge/pkg/models"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
)

// Notifier delivers inquiry notifications. Delivery is best effort;
// callers log failures and move on.
type Notifier interface {
	NotifyInquiry(inquiry *models.Inquiry) error
}

// Config holds SMTP settings. To is the admin inbox that receives
// inquiry notifications.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Mailer is the gomail-backed Notifier.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
	log    logger.Logger
}

// NewMailer validates the config and returns a Mailer.
func NewMailer(cfg Config, log logger.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.From == "" || cfg.To == "" {
		return nil, fmt.Errorf("smtp from and to addresses are required")
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
		log:    log,
	}, nil
}

// NotifyInquiry mails the inquiry to the configured admin inbox.
func (m *Mailer) NotifyInquiry(inquiry *models.Inquiry) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("New inquiry from %s (%s)", inquiry.Name, inquiry.Sector))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\nSector: %s\n\n%s\n",
		inquiry.Name, inquiry.Email, inquiry.Sector, inquiry.Message,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send inquiry notification: %w", err)
	}
	return nil
}
