package email

import (
	"errors"
	"io"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSender(send sendFunc) *Sender {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(&config.Config{
		SMTPHost:    "smtp.example.com",
		SMTPPort:    "2525",
		SenderEmail: "advisor@example.com",
	}, log)
	s.send = send
	return s
}

func TestSendNarrativeReport(t *testing.T) {
	var sent *email.Email
	var sentAddr string
	s := newTestSender(func(e *email.Email, addr string, _ smtp.Auth) error {
		sent, sentAddr = e, addr
		return nil
	})

	at := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SendNarrativeReport("user@example.com", "Asha", "Net Worth Analysis:\n...", at))

	require.NotNil(t, sent)
	assert.Equal(t, "smtp.example.com:2525", sentAddr)
	assert.Equal(t, []string{"user@example.com"}, sent.To)
	assert.Equal(t, "advisor@example.com", sent.From)
	assert.Equal(t, "Your Financial Report for June 10, 2024", sent.Subject)
	assert.True(t, strings.HasPrefix(string(sent.Text), "Dear Asha,\n\n"))
	assert.Contains(t, string(sent.Text), "Net Worth Analysis:")
}

func TestSendNarrativeReportFailure(t *testing.T) {
	s := newTestSender(func(*email.Email, string, smtp.Auth) error {
		return errors.New("connection refused")
	})
	err := s.SendNarrativeReport("user@example.com", "", "text", time.Now())
	assert.ErrorContains(t, err, "connection refused")
}
