package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "SMS_RECIPIENTS", "NOTIFY_ON_CREATE", "EMAIL_USER", "EMAIL_PASS", "TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_PHONE_NUMBER"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, StorageSQLite, cfg.StorageDriver)
	require.Equal(t, defaultSMSRecipients, cfg.SMSRecipients)
	require.True(t, cfg.NotifyOnCreate)
	require.False(t, cfg.EmailEnabled())
	require.False(t, cfg.SMSEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("SMS_RECIPIENTS", " +1555 , ,+1666")
	t.Setenv("NOTIFY_ON_CREATE", "false")
	t.Setenv("ROOM_TTL", "90m")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("EMAIL_USER", "me@example.com")
	t.Setenv("EMAIL_PASS", "app-password")

	cfg := Load()
	require.Equal(t, StorageMemory, cfg.StorageDriver)
	require.Equal(t, []string{"+1555", "+1666"}, cfg.SMSRecipients)
	require.False(t, cfg.NotifyOnCreate)
	require.Equal(t, 90*time.Minute, cfg.RoomTTL)
	require.Equal(t, 587, cfg.SMTPPort)
	require.True(t, cfg.EmailEnabled())
}

func TestCheckJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "development")
	require.NoError(t, Load().CheckJWTSecret())

	t.Setenv("APP_ENV", "production")
	cfg := Load()
	require.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	require.Error(t, cfg.CheckJWTSecret())

	t.Setenv("JWT_SECRET", "a-long-private-value")
	require.NoError(t, Load().CheckJWTSecret())
}
