package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moments/internal/models/response_models"
	"moments/pkg/utils"
)

type capturedMail struct {
	to  []string
	msg string
}

func newTestMailService(t *testing.T, cfg SMTPConfig, sendErr error) (*smtpMailService, *capturedMail) {
	t.Helper()
	svc, err := NewSMTPMailService(cfg)
	require.NoError(t, err)

	captured := &capturedMail{}
	s := svc.(*smtpMailService)
	s.now = func() time.Time { return time.Date(2025, 6, 7, 10, 0, 0, 0, time.UTC) }
	s.transport = func(_ context.Context, _ SMTPConfig, to []string, msg []byte) error {
		captured.to = to
		captured.msg = string(msg)
		return sendErr
	}
	return s, captured
}

var mailConfig = SMTPConfig{
	Host:       "smtp.example.com",
	Port:       587,
	Username:   "ayoub@example.com",
	Password:   "app-password",
	FromName:   "Moments",
	Recipients: []string{"ayoub@example.com", "medina@example.com"},
}

func TestSendActivityMailRendersActivity(t *testing.T) {
	svc, captured := newTestMailService(t, mailConfig, nil)

	detail, err := svc.Notify(context.Background(), response_models.ActivityResponse{
		Title:        "Hike",
		Description:  "Sunrise walk",
		Address:      "Mont Royal",
		Labels:       []string{"outdoor", "sport"},
		Date:         "2025-06-07",
		AyoubRating:  8,
		MedinaRating: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, "email sent to 2 recipients", detail)

	assert.Equal(t, mailConfig.Recipients, captured.to)
	assert.Contains(t, captured.msg, "Subject: New Activity Added: Hike")
	assert.Contains(t, captured.msg, "To: ayoub@example.com, medina@example.com")
	assert.Contains(t, captured.msg, "From: Moments <ayoub@example.com>")
	assert.Contains(t, captured.msg, "Labels: outdoor, sport")
	assert.Contains(t, captured.msg, "Saturday, June 7, 2025")
	assert.Contains(t, captured.msg, "Ayoub 8/10")
	assert.Contains(t, captured.msg, "Location: Mont Royal")
}

func TestSendActivityMailEscapesHTML(t *testing.T) {
	svc, captured := newTestMailService(t, mailConfig, nil)

	require.NoError(t, svc.SendActivityMail(context.Background(), response_models.ActivityResponse{Title: "<b>Party</b>"}))
	assert.Contains(t, captured.msg, "&lt;b&gt;Party&lt;/b&gt;")
}

func TestSendActivityMailDisabledWithoutCredentials(t *testing.T) {
	cfg := mailConfig
	cfg.Password = ""
	svc, captured := newTestMailService(t, cfg, nil)

	err := svc.SendActivityMail(context.Background(), response_models.ActivityResponse{Title: "Hike"})
	require.ErrorIs(t, err, utils.ErrChannelDisabled)
	assert.Empty(t, captured.msg)
}

func TestSendActivityMailPropagatesTransportError(t *testing.T) {
	svc, _ := newTestMailService(t, mailConfig, errors.New("dial tcp: i/o timeout"))

	err := svc.SendActivityMail(context.Background(), response_models.ActivityResponse{Title: "Hike"})
	require.EqualError(t, err, "dial tcp: i/o timeout")
}

func TestFromHeaderEncodesNonASCIIName(t *testing.T) {
	cfg := mailConfig
	cfg.FromName = "Médina"
	svc, _ := newTestMailService(t, cfg, nil)

	assert.Equal(t, "=?UTF-8?b?TcOpZGluYQ==?= <ayoub@example.com>", svc.formatFromHeader())
}
