// One-shot mode for local testing: run a single check (and notify when
// tours are found), or place a test call/text with --test-call/--test-sms.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"tournotify/internal/config"
	"tournotify/internal/notify"
	"tournotify/internal/probe"
)

func main() {
	testCall := flag.Bool("test-call", false, "place a test call and exit")
	testSMS := flag.Bool("test-sms", false, "send a test text and exit")
	flag.Parse()

	cfg := config.FromEnv()
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	twilio := notify.TwilioConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		From:       cfg.TwilioFrom,
		To:         cfg.NotifyTo,
	}
	ctx := context.Background()

	switch {
	case *testCall:
		exitBySent(notify.NewVoice(logger, twilio, cfg.NotifyTimeout).Notify(ctx, notify.VoiceTestMessage))
	case *testSMS:
		exitBySent(notify.NewSMS(logger, twilio, cfg.NotifyTimeout).Notify(ctx, notify.SMSTestMessage))
	}

	var p probe.Prober
	if cfg.ProbeStrategy == "page" {
		p = probe.NewPageProber(logger, cfg.ToursPageURL, cfg.TourLabel, cfg.GroupSize, cfg.PageSettle, cfg.ProbeTimeout)
	} else {
		p = probe.NewAPIProber(logger, cfg.ToursAPIURL, cfg.TourCategoryID, cfg.GroupSize, cfg.ProbeTimeout)
	}

	fmt.Println("Running a one-time tour check...")
	res := p.Probe(ctx)
	fmt.Printf("Result: found=%v, message=%s\n", res.Found, res.Message)

	if !res.Found {
		fmt.Println("No tours found at this time.")
		return
	}

	fmt.Println("Tours found! Notifying...")
	var sent bool
	switch cfg.NotifyChannel {
	case "sms":
		sent = notify.NewSMS(logger, twilio, cfg.NotifyTimeout).Notify(ctx, notify.SMSAlert)
	default:
		sent = notify.NewVoice(logger, twilio, cfg.NotifyTimeout).Notify(ctx, notify.VoiceAlert)
	}
	if !sent {
		fmt.Println("Notification failed; check the Twilio environment variables.")
		os.Exit(1)
	}
}

func exitBySent(sent bool) {
	if sent {
		fmt.Println("Test notification dispatched.")
		os.Exit(0)
	}
	fmt.Println("Test notification failed.")
	os.Exit(1)
}
