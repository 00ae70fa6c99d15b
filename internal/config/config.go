package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath      string
	HistoryWindowDays int
	Timezone          string

	// LLM enrichment (optional; planning works without it)
	GeminiAPIKey string
	GroqAPIKey   string

	// Recipe blog ingestion source (optional)
	BlogURL        string
	BlogContentKey string
	BlogAdminKey   string

	// Email delivery
	EmailSenderMode string // local|smtp
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPass        string
	SMTPUseTLS      bool
	EmailFrom       string
	EmailTo         string

	// Telegram delivery (optional)
	TelegramBotToken       string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config from environment variables. A .env file in
// the working directory is loaded first when present. Only the database path
// is required up front; optional subsystems (LLM, SMTP, Telegram) validate
// their own settings at the point of use.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:      getenvDefault("NIGELA_DB_PATH", "data/nigela.db"),
		Timezone:          getenvDefault("TIMEZONE", "Asia/Kolkata"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		BlogURL:           os.Getenv("BLOG_API_URL"),
		BlogContentKey:    os.Getenv("BLOG_CONTENT_API_KEY"),
		BlogAdminKey:      os.Getenv("BLOG_ADMIN_API_KEY"),
		EmailSenderMode:   getenvDefault("EMAIL_SENDER_MODE", "local"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		EmailFrom:         getenvDefault("EMAIL_FROM", "Nigela <noreply@example.com>"),
		EmailTo:           strings.TrimSpace(os.Getenv("EMAIL_TO")),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.BlogAdminKey == "" {
		// Fallback to content key if only one is provided
		cfg.BlogAdminKey = cfg.BlogContentKey
	}

	window, err := intFromEnv("HISTORY_WINDOW_DAYS", 14)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		return nil, fmt.Errorf("HISTORY_WINDOW_DAYS must be positive, got %d", window)
	}
	cfg.HistoryWindowDays = window

	port, err := intFromEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = port
	cfg.SMTPUseTLS = getenvDefault("SMTP_USE_TLS", "true") == "true"

	for _, raw := range strings.Split(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", raw, err)
		}
		cfg.TelegramAllowedUserIDs = append(cfg.TelegramAllowedUserIDs, id)
	}

	return cfg, nil
}

// Location resolves the configured timezone. "today" and "tomorrow" are
// resolved in this location, so the nightly run flips dates on household
// time, not server time. An unknown zone falls back to the system location.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// EmailConfigured reports whether SMTP delivery is fully set up.
func (c *Config) EmailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != "" && c.EmailTo != ""
}

// Recipients splits EMAIL_TO into individual addresses.
func (c *Config) Recipients() []string {
	var out []string
	for _, r := range strings.Split(c.EmailTo, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
