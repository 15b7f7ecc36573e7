package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/domain"
	"tournotify/internal/notify"
	"tournotify/internal/repo/memory"
)

// ---- fakes ----

type fakeRunner struct {
	out domain.Outcome
}

func (f *fakeRunner) Run(ctx context.Context) domain.Outcome { return f.out }

type fakeNotifier struct {
	ok    bool
	calls int
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) bool {
	f.calls++
	return f.ok
}

func setup(t *testing.T, runner CheckRunner, voice, sms *fakeNotifier) *httptest.Server {
	t.Helper()
	store := memory.New()
	var v, s2 notify.Notifier
	if voice != nil {
		v = voice
	}
	if sms != nil {
		s2 = sms
	}
	srv := NewServer(zap.NewNop(), runner, v, s2, store, "tour-notifier")
	ts := httptest.NewServer(srv.Router(0, 0))
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, body
}

// ---- tests ----

func TestRoot_Health(t *testing.T) {
	ts := setup(t, &fakeRunner{}, nil, nil)
	code, body := getJSON(t, ts.URL+"/")
	if code != 200 || body["status"] != "ok" || body["service"] != "tour-notifier" {
		t.Fatalf("unexpected health response: %d %+v", code, body)
	}
}

func TestCheck_MirrorsOutcome(t *testing.T) {
	now := time.Now().UTC()

	cases := []struct {
		name string
		out  domain.Outcome
		want map[string]any
	}{
		{
			name: "skipped",
			out:  domain.Skipped(now, "cooldown"),
			want: map[string]any{"status": "skipped", "reason": "cooldown"},
		},
		{
			name: "found",
			out:  domain.Found(now, "2 tour date(s) available!", true),
			want: map[string]any{"status": "found", "message": "2 tour date(s) available!", "notify_sent": true},
		},
		{
			name: "not_found",
			out:  domain.NotFound(now, "No tours available"),
			want: map[string]any{"status": "not_found", "message": "No tours available"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := setup(t, &fakeRunner{out: tc.out}, nil, nil)
			code, body := getJSON(t, ts.URL+"/check")
			if code != 200 {
				t.Fatalf("/check must always answer 200, got %d", code)
			}
			for k, want := range tc.want {
				if body[k] != want {
					t.Fatalf("body[%q] = %v, want %v (full: %+v)", k, body[k], want, body)
				}
			}
			if tc.out.Status != domain.StatusFound {
				if _, present := body["notify_sent"]; present {
					t.Fatalf("notify_sent leaked into %s response: %+v", tc.name, body)
				}
			}
		})
	}
}

func TestCheck_PostAlsoAccepted(t *testing.T) {
	ts := setup(t, &fakeRunner{out: domain.NotFound(time.Now().UTC(), "No tours available")}, nil, nil)
	resp, err := http.Post(ts.URL+"/check", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestTestCall_SentAndFailed(t *testing.T) {
	voice := &fakeNotifier{ok: true}
	ts := setup(t, &fakeRunner{}, voice, nil)

	code, body := getJSON(t, ts.URL+"/test-call")
	if code != 200 || body["status"] != "sent" {
		t.Fatalf("want sent/200, got %d %+v", code, body)
	}
	if voice.calls != 1 {
		t.Fatalf("want one notify call, got %d", voice.calls)
	}

	voice.ok = false
	code, body = getJSON(t, ts.URL+"/test-call")
	if code != 500 || body["status"] != "failed" {
		t.Fatalf("want failed/500, got %d %+v", code, body)
	}
}

func TestTestSMS_UnconfiguredChannelFails(t *testing.T) {
	ts := setup(t, &fakeRunner{}, nil, nil)
	code, body := getJSON(t, ts.URL+"/test-sms")
	if code != 500 || body["status"] != "failed" {
		t.Fatalf("unconfigured channel: want failed/500, got %d %+v", code, body)
	}
}

func TestHistory_ReturnsRecordedOutcomes(t *testing.T) {
	store := memory.New()
	now := time.Now().UTC()
	_ = store.Append(context.Background(), domain.NotFound(now, "No tours available"))
	_ = store.Append(context.Background(), domain.Found(now, "1 tour date(s) available!", true))

	srv := NewServer(zap.NewNop(), &fakeRunner{}, nil, nil, store, "tour-notifier")
	ts := httptest.NewServer(srv.Router(0, 0))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/history?limit=1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0]["status"] != "found" {
		t.Fatalf("want newest row only, got %+v", rows)
	}
}
