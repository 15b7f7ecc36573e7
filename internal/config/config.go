package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"
)

type Config struct {
	Addr        string // API bind address
	LogDir      string // logs directory
	ServiceName string // reported by GET /

	// Cooldown between notifications
	Cooldown time.Duration

	// Probe tuning
	ProbeStrategy string // "api" | "page" | "auto"
	ProbeTimeout  time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration

	// Strategy A: structured search endpoint
	ToursAPIURL    string
	TourCategoryID string
	GroupSize      string

	// Strategy B: page heuristic
	ToursPageURL string
	TourLabel    string
	PageSettle   time.Duration

	// Notification channels: "call" | "sms" | "both"
	NotifyChannel string
	NotifyTimeout time.Duration

	// Provider settings; absence degrades notifiers to no-op failure.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	NotifyTo         string

	// Optional in-process polling, cron spec or "@every ..." descriptor.
	PollSpec string

	// Per-IP rate limit on the HTTP surface; 0 disables.
	RateRPM   int
	RateBurst int
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	name := os.Getenv("SERVICE_NAME")
	if name == "" {
		name = "tour-notifier"
	}

	strategy := os.Getenv("PROBE_STRATEGY")
	switch strategy {
	case "api", "page", "auto":
	default:
		strategy = "api"
	}

	channel := os.Getenv("NOTIFY_CHANNEL")
	switch channel {
	case "call", "sms", "both":
	default:
		channel = "call"
	}

	categoryID := os.Getenv("TOUR_CATEGORY_ID")
	if categoryID == "" {
		categoryID = "1" // educational group tour
	}
	groupSize := os.Getenv("GROUP_SIZE")
	if groupSize == "" {
		groupSize = "40"
	}
	tourLabel := os.Getenv("TOUR_LABEL")
	if tourLabel == "" {
		tourLabel = "Educational"
	}

	return Config{
		Addr:        addr,
		LogDir:      logDir,
		ServiceName: name,

		Cooldown: envDurationSec("COOLDOWN_SECONDS", 1800),

		ProbeStrategy: strategy,
		ProbeTimeout:  envDurationMS("PROBE_TIMEOUT_MS", 15_000),
		RetryAttempts: envInt("RETRY_ATTEMPTS", 1),
		RetryBackoff:  envDurationMS("RETRY_BACKOFF_MS", 300),

		ToursAPIURL:    os.Getenv("TOURS_API_URL"),
		TourCategoryID: categoryID,
		GroupSize:      groupSize,

		ToursPageURL: os.Getenv("TOURS_PAGE_URL"),
		TourLabel:    tourLabel,
		PageSettle:   envDurationMS("PAGE_SETTLE_MS", 2_000),

		NotifyChannel: channel,
		NotifyTimeout: envDurationMS("NOTIFY_TIMEOUT_MS", 30_000),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_PHONE_NUMBER"),
		NotifyTo:         os.Getenv("YOUR_PHONE_NUMBER"),

		PollSpec: os.Getenv("POLL_SPEC"),

		RateRPM:   envInt("RATE_RPM", 0),
		RateBurst: envInt("RATE_BURST", 10),
	}
}

// Validate reports everything wrong with the configuration at once.
// Missing Twilio settings are not fatal at startup (the notifier degrades
// to failure), so callers typically log the combined error as a warning.
func (c Config) Validate() error {
	var err error
	if c.TwilioAccountSID == "" {
		err = multierr.Append(err, errors.New("TWILIO_ACCOUNT_SID not set"))
	}
	if c.TwilioAuthToken == "" {
		err = multierr.Append(err, errors.New("TWILIO_AUTH_TOKEN not set"))
	}
	if c.TwilioFrom == "" {
		err = multierr.Append(err, errors.New("TWILIO_PHONE_NUMBER not set"))
	}
	if c.NotifyTo == "" {
		err = multierr.Append(err, errors.New("YOUR_PHONE_NUMBER not set"))
	}
	switch c.ProbeStrategy {
	case "api", "auto":
		if c.ToursAPIURL == "" {
			err = multierr.Append(err, errors.New("TOURS_API_URL not set"))
		}
		if c.ProbeStrategy == "auto" && c.ToursPageURL == "" {
			err = multierr.Append(err, errors.New("TOURS_PAGE_URL not set"))
		}
	case "page":
		if c.ToursPageURL == "" {
			err = multierr.Append(err, errors.New("TOURS_PAGE_URL not set"))
		}
	}
	return err
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envDurationMS(key string, defMS int) time.Duration {
	return time.Duration(envInt(key, defMS)) * time.Millisecond
}

func envDurationSec(key string, defSec int) time.Duration {
	return time.Duration(envInt(key, defSec)) * time.Second
}
