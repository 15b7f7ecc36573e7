// Package notify dispatches outbound alerts through a telephony provider.
// Notifiers never propagate errors to callers: a failed dispatch is logged
// and reported as false.
package notify

import "context"

// Notifier delivers one message through an external channel.
// True means the provider accepted the dispatch.
type Notifier interface {
	Notify(ctx context.Context, message string) bool
}

// Alert binds a notifier to the fixed wording used for availability alerts
// on that channel. Wording differs per channel (spoken vs. texted) but the
// semantic content is the same.
type Alert struct {
	Notifier Notifier
	Message  string
}

func (a Alert) Send(ctx context.Context) bool {
	return a.Notifier.Notify(ctx, a.Message)
}

// Alerts fans out to every configured channel. It reports true if any
// channel accepted the dispatch.
type Alerts []Alert

func (as Alerts) Send(ctx context.Context) bool {
	sent := false
	for _, a := range as {
		if a.Notifier == nil {
			continue
		}
		if a.Send(ctx) {
			sent = true
		}
	}
	return sent
}

// Canned alert wording per channel.
const (
	VoiceAlert = "Hi! Educational group tour dates are now available! " +
		"Go to the tours page and book immediately. Good luck!"
	SMSAlert = "Tour alert: educational group tour dates are now available. " +
		"Go to the tours page and book immediately."

	VoiceTestMessage = "This is a test call from your tour notifier. " +
		"If you hear this, notifications are working!"
	SMSTestMessage = "Test message from your tour notifier. " +
		"If you can read this, notifications are working."
)
