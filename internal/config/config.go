// Package config centralises configuration parsing for the moments service.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

// DefaultJWTSecret is the development fallback for JWT_SECRET. It is public,
// so production refuses to start with it.
const DefaultJWTSecret = "dev-secret-change-me"

// defaultSMSRecipients is the fixed recipient list used when SMS_RECIPIENTS is unset.
var defaultSMSRecipients = []string{"+15149988996", "+14385062821"}

// Config captures runtime configuration values.
type Config struct {
	Port   string
	AppEnv string

	StorageDriver string
	PostgresURL   string
	SQLitePath    string

	EmailUser   string
	EmailPass   string
	FriendEmail string
	SMTPHost    string
	SMTPPort    int

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
	SMSRecipients     []string

	NotifyOnCreate   bool
	NotifyQueueSize  int
	NotifyTimeout    time.Duration
	JWTSecret        string
	SessionTTL       time.Duration
	AyoubPassword    string
	MedinaPassword   string
	RequireSession   bool
	MapEnabled       bool
	NominatimURL     string
	GeocodeTimeout   time.Duration
	GeocodeUserAgent string
	RedisAddr        string
	GeocodeCacheTTL  time.Duration
	RoomTTL          time.Duration
	CORSOrigins      []string
}

// Load reads .env (when present) and the environment into Config.
func Load() Config {
	// A missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	return Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),
		PostgresURL:   getEnv("POSTGRES_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "moments.db"),

		EmailUser:   getEnv("EMAIL_USER", ""),
		EmailPass:   getEnv("EMAIL_PASS", ""),
		FriendEmail: getEnv("FRIEND_EMAIL", ""),
		SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    getIntEnv("SMTP_PORT", 587),

		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		SMSRecipients:     getListEnv("SMS_RECIPIENTS", defaultSMSRecipients),

		NotifyOnCreate:   getBoolEnv("NOTIFY_ON_CREATE", true),
		NotifyQueueSize:  getIntEnv("NOTIFY_QUEUE_SIZE", 32),
		NotifyTimeout:    getDurationEnv("NOTIFY_TIMEOUT", 30*time.Second),
		JWTSecret:        getEnv("JWT_SECRET", DefaultJWTSecret),
		SessionTTL:       getDurationEnv("SESSION_TTL", 30*24*time.Hour),
		AyoubPassword:    getEnv("AYOUB_PASSWORD", ""),
		MedinaPassword:   getEnv("MEDINA_PASSWORD", ""),
		RequireSession:   getBoolEnv("REQUIRE_SESSION", false),
		MapEnabled:       getBoolEnv("MAP_ENABLED", true),
		NominatimURL:     getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		GeocodeTimeout:   getDurationEnv("GEOCODE_TIMEOUT", 10*time.Second),
		GeocodeUserAgent: getEnv("GEOCODE_USER_AGENT", "moments-app/1.0"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		GeocodeCacheTTL:  getDurationEnv("GEOCODE_CACHE_TTL", 7*24*time.Hour),
		RoomTTL:          getDurationEnv("ROOM_TTL", 6*time.Hour),
		CORSOrigins:      getListEnv("CORS_ORIGINS", nil),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// CheckJWTSecret rejects a missing or development JWT secret in production.
func (c Config) CheckJWTSecret() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a private value when APP_ENV=production")
	}
	return nil
}

// EmailEnabled reports whether every email credential is present.
func (c Config) EmailEnabled() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}

// SMSEnabled reports whether every SMS credential is present.
func (c Config) SMSEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getListEnv(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return splitAndTrim(value)
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
