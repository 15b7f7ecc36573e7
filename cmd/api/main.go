package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"tournotify/internal/check"
	"tournotify/internal/config"
	"tournotify/internal/cooldown"
	"tournotify/internal/httpapi"
	"tournotify/internal/logging"
	"tournotify/internal/notify"
	"tournotify/internal/probe"
	"tournotify/internal/repo/memory"
	"tournotify/internal/scheduler"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Incomplete config is not fatal: probing still works and the
	// notifier degrades to reporting failure.
	if verr := cfg.Validate(); verr != nil {
		logger.Warn("config_incomplete", zap.Error(verr))
	}

	twilio := notify.TwilioConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		From:       cfg.TwilioFrom,
		To:         cfg.NotifyTo,
	}
	voice := notify.NewVoice(logger, twilio, cfg.NotifyTimeout)
	sms := notify.NewSMS(logger, twilio, cfg.NotifyTimeout)

	var alerts notify.Alerts
	if cfg.NotifyChannel == "call" || cfg.NotifyChannel == "both" {
		alerts = append(alerts, notify.Alert{Notifier: voice, Message: notify.VoiceAlert})
	}
	if cfg.NotifyChannel == "sms" || cfg.NotifyChannel == "both" {
		alerts = append(alerts, notify.Alert{Notifier: sms, Message: notify.SMSAlert})
	}

	store := memory.New()
	gate := cooldown.NewGate(cfg.Cooldown)
	orch := check.New(logger, buildProber(cfg, logger), gate, alerts, store)
	orch.NotifyTimeout = cfg.NotifyTimeout

	poller := scheduler.New(logger, orch, cfg.PollSpec, cfg.ProbeTimeout+cfg.NotifyTimeout)
	if err := poller.Start(); err != nil {
		log.Fatal(err)
	}
	defer poller.Stop()

	api := httpapi.NewServer(logger, orch, voice, sms, store, cfg.ServiceName)

	logger.Info("api_listen",
		zap.String("addr", cfg.Addr),
		zap.String("strategy", cfg.ProbeStrategy),
		zap.String("channel", cfg.NotifyChannel),
		zap.Duration("cooldown", cfg.Cooldown),
	)
	if err := http.ListenAndServe(cfg.Addr, api.Router(cfg.RateRPM, cfg.RateBurst)); err != nil {
		log.Fatal(err)
	}
}

func buildProber(cfg config.Config, logger *zap.Logger) probe.Prober {
	api := probe.NewAPIProber(logger, cfg.ToursAPIURL, cfg.TourCategoryID, cfg.GroupSize, cfg.ProbeTimeout)
	page := probe.NewPageProber(logger, cfg.ToursPageURL, cfg.TourLabel, cfg.GroupSize, cfg.PageSettle, cfg.ProbeTimeout)

	var p probe.Prober
	switch cfg.ProbeStrategy {
	case "page":
		p = page
	case "auto":
		p = &probe.FallbackProber{Primary: api, Secondary: page}
	default:
		p = api
	}
	if cfg.RetryAttempts > 1 {
		p = &probe.RetryProber{Inner: p, Attempts: cfg.RetryAttempts, Backoff: cfg.RetryBackoff}
	}
	return p
}
