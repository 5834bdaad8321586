package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// sendFunc delivers a prepared message, swapped out in tests
type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   sendFunc
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// buildReport prepares the narrative report message
func (s *Sender) buildReport(to, name, narrative string, generatedAt time.Time) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your Financial Report for %s", generatedAt.Format("January 2, 2006"))

	greeting := "there"
	if name != "" {
		greeting = name
	}
	body := fmt.Sprintf("Dear %s,\n\n", greeting)
	body += "Here is your personalised financial report.\n\n"
	body += narrative
	body += "\n\nBest regards,\nFinance Advisor"
	e.Text = []byte(body)
	return e
}

// SendNarrativeReport emails a narrative report to the user
func (s *Sender) SendNarrativeReport(to, name, narrative string, generatedAt time.Time) error {
	e := s.buildReport(to, name, narrative, generatedAt)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
