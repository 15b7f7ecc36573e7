package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/domain"
	"tournotify/internal/jsonx"
)

// Strategy A: one structured request to the tour search endpoint.
// Availability is present iff the returned tour list is non-empty.

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const maxResponseBytes = 1 << 20

type APIProber struct {
	URL        string
	CategoryID string
	GroupSize  string
	UserAgent  string
	Client     *http.Client
	Logger     *zap.Logger
}

func NewAPIProber(logger *zap.Logger, url, categoryID, groupSize string, timeout time.Duration) *APIProber {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &APIProber{
		URL:        url,
		CategoryID: categoryID,
		GroupSize:  groupSize,
		UserAgent:  defaultUserAgent,
		Client:     &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

type searchRequest struct {
	CategoryID           string  `json:"category_id"`
	GroupSize            string  `json:"group_size"`
	PendingReservationID *string `json:"pendingReservationId"`
}

type searchResponse struct {
	PublicTours []map[string]any `json:"public_tours"`
}

func (p *APIProber) Probe(ctx context.Context) domain.ProbeResult {
	p.Logger.Info("querying_tours_api", zap.String("url", p.URL))

	body, err := jsonx.Marshal(searchRequest{
		CategoryID: p.CategoryID,
		GroupSize:  p.GroupSize,
	})
	if err != nil {
		return p.fail(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return p.fail(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return p.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return p.fail(fmt.Errorf("unexpected status %s", resp.Status))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return p.fail(err)
	}
	var sr searchResponse
	if err := jsonx.Unmarshal(raw, &sr); err != nil {
		return p.fail(err)
	}

	if n := len(sr.PublicTours); n > 0 {
		return domain.ProbeResult{Found: true, Message: fmt.Sprintf("%d tour date(s) available!", n)}
	}
	return domain.ProbeResult{Found: false, Message: "No tours available"}
}

func (p *APIProber) fail(err error) domain.ProbeResult {
	p.Logger.Error("tours_api_error", zap.Error(err))
	return errResult(err)
}
