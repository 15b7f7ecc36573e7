package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/jsonx"
)

const twilioAPIBase = "https://api.twilio.com"

// TwilioConfig carries the four provider settings. All four are required;
// with any missing, notifiers fail immediately without a network call.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string // sender number
	To         string // recipient number
}

func (c TwilioConfig) complete() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != "" && c.To != ""
}

// twilioClient posts form-encoded requests to the Twilio REST API.
type twilioClient struct {
	cfg    TwilioConfig
	base   string
	client *http.Client
	log    *zap.Logger
}

func newTwilioClient(log *zap.Logger, cfg TwilioConfig, timeout time.Duration) twilioClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return twilioClient{
		cfg:    cfg,
		base:   twilioAPIBase,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Message string `json:"message"`
}

// post sends one form to resource ("Calls" or "Messages") and returns the
// dispatch SID.
func (t twilioClient) post(ctx context.Context, resource string, form url.Values) (string, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/%s.json", t.base, t.cfg.AccountSID, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.cfg.AccountSID, t.cfg.AuthToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", err
	}
	var tr twilioResponse
	_ = jsonx.Unmarshal(raw, &tr)

	if resp.StatusCode/100 != 2 {
		if tr.Message != "" {
			return "", fmt.Errorf("twilio %s: %s", resp.Status, tr.Message)
		}
		return "", fmt.Errorf("twilio %s", resp.Status)
	}
	return tr.SID, nil
}

// Voice places a call that reads the message aloud via inline TwiML.
type Voice struct {
	twilioClient
}

func NewVoice(log *zap.Logger, cfg TwilioConfig, timeout time.Duration) *Voice {
	return &Voice{twilioClient: newTwilioClient(log, cfg, timeout)}
}

func (v *Voice) Notify(ctx context.Context, message string) bool {
	if !v.cfg.complete() {
		v.log.Error("twilio_config_missing", zap.String("channel", "call"))
		return false
	}
	twiml := fmt.Sprintf(`<Response><Say voice="alice" loop="2">%s</Say></Response>`, xmlEscape(message))
	sid, err := v.post(ctx, "Calls", url.Values{
		"Twiml": {twiml},
		"From":  {v.cfg.From},
		"To":    {v.cfg.To},
	})
	if err != nil {
		v.log.Error("call_failed", zap.Error(err))
		return false
	}
	v.log.Info("call_placed", zap.String("sid", sid))
	return true
}

// SMS sends the message as a text.
type SMS struct {
	twilioClient
}

func NewSMS(log *zap.Logger, cfg TwilioConfig, timeout time.Duration) *SMS {
	return &SMS{twilioClient: newTwilioClient(log, cfg, timeout)}
}

func (s *SMS) Notify(ctx context.Context, message string) bool {
	if !s.cfg.complete() {
		s.log.Error("twilio_config_missing", zap.String("channel", "sms"))
		return false
	}
	sid, err := s.post(ctx, "Messages", url.Values{
		"Body": {message},
		"From": {s.cfg.From},
		"To":   {s.cfg.To},
	})
	if err != nil {
		s.log.Error("sms_failed", zap.Error(err))
		return false
	}
	s.log.Info("sms_sent", zap.String("sid", sid))
	return true
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
