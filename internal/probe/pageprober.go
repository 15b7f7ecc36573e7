package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/domain"
)

// Strategy B: heuristic scrape of the booking page. Fetch the page, pick
// the tour-type option whose label contains a known substring, submit the
// booking form with the visitor count, wait a fixed settle delay, then
// classify the resulting page text. Deliberately not a real browser.

var (
	optionPattern = regexp.MustCompile(`(?is)<option\b[^>]*value="([^"]*)"[^>]*>(.*?)</option>`)
	formPattern   = regexp.MustCompile(`(?is)<form\b[^>]*action="([^"]*)"`)
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
)

type PageProber struct {
	PageURL     string
	TourLabel   string // option label substring to select, e.g. "Educational"
	GroupSize   string
	SettleDelay time.Duration
	UserAgent   string
	Client      *http.Client
	Logger      *zap.Logger
}

func NewPageProber(logger *zap.Logger, pageURL, tourLabel, groupSize string, settle, timeout time.Duration) *PageProber {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &PageProber{
		PageURL:     pageURL,
		TourLabel:   tourLabel,
		GroupSize:   groupSize,
		SettleDelay: settle,
		UserAgent:   defaultUserAgent,
		Client:      &http.Client{Timeout: timeout},
		Logger:      logger,
	}
}

func (p *PageProber) Probe(ctx context.Context) domain.ProbeResult {
	p.Logger.Info("scraping_tours_page", zap.String("url", p.PageURL))

	page, err := p.fetch(ctx, http.MethodGet, p.PageURL, nil)
	if err != nil {
		return p.fail(err)
	}

	action, optionValue := p.discoverForm(page)
	if optionValue != "" {
		form := url.Values{
			"tour_type":  {optionValue},
			"group_size": {p.GroupSize},
		}
		page, err = p.fetch(ctx, http.MethodPost, action, form)
		if err != nil {
			return p.fail(err)
		}
	}

	// Let the backend settle before trusting the rendered result.
	if p.SettleDelay > 0 {
		select {
		case <-ctx.Done():
			return p.fail(ctx.Err())
		case <-time.After(p.SettleDelay):
		}
	}

	verdict := Classify(page)
	p.Logger.Info("page_classified",
		zap.Bool("found", verdict.Found),
		zap.String("evidence", verdict.Evidence),
	)
	return domain.ProbeResult{Found: verdict.Found, Message: verdict.Evidence}
}

// discoverForm returns the form action (absolute) and the value of the
// first option whose visible label contains TourLabel. Empty option value
// means the page has no matching form and classification proceeds on the
// landing page itself.
func (p *PageProber) discoverForm(page string) (action, optionValue string) {
	action = p.PageURL
	if m := formPattern.FindStringSubmatch(page); m != nil && m[1] != "" {
		if abs, err := resolveRef(p.PageURL, m[1]); err == nil {
			action = abs
		}
	}
	want := strings.ToLower(p.TourLabel)
	for _, m := range optionPattern.FindAllStringSubmatch(page, -1) {
		label := strings.ToLower(strings.TrimSpace(tagPattern.ReplaceAllString(m[2], "")))
		if want != "" && strings.Contains(label, want) {
			return action, m[1]
		}
	}
	return action, ""
}

func (p *PageProber) fetch(ctx context.Context, method, target string, form url.Values) (string, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", p.UserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (p *PageProber) fail(err error) domain.ProbeResult {
	p.Logger.Error("tours_page_error", zap.Error(err))
	return errResult(err)
}

func resolveRef(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}
