// Package nasa adapts the NeoWs REST API to the ports.Feed interface.
package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"neowatch/internal/domain"
	"neowatch/internal/ports"
)

var upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "neowatch_upstream_requests_total",
	Help: "Requests issued to the NeoWs feed by endpoint and outcome.",
}, []string{"endpoint", "outcome"})

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ ports.Feed = (*Client)(nil)

// New builds a feed client. timeout bounds every upstream call; its expiry
// surfaces as an UpstreamError like any other network failure.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// feedResponse is the envelope NeoWs wraps around per-day collections.
type feedResponse struct {
	ElementCount     int                           `json:"element_count"`
	NearEarthObjects map[string][]domain.NeoRecord `json:"near_earth_objects"`
}

func (c *Client) Range(ctx context.Context, startDate, endDate string) (map[string][]domain.NeoRecord, error) {
	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	body, err := c.get(ctx, "/feed", q, "feed")
	if err != nil {
		return nil, err
	}
	var fr feedResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, &domain.UpstreamError{Err: fmt.Errorf("decode feed: %w", err)}
	}
	return fr.NearEarthObjects, nil
}

func (c *Client) Lookup(ctx context.Context, id string) (domain.NeoRecord, error) {
	body, err := c.get(ctx, "/neo/"+url.PathEscape(id), nil, "lookup")
	if err != nil {
		return domain.NeoRecord{}, err
	}
	var rec domain.NeoRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return domain.NeoRecord{}, &domain.UpstreamError{Err: fmt.Errorf("decode neo %s: %w", id, err)}
	}
	return rec, nil
}

func (c *Client) Stats(ctx context.Context) (json.RawMessage, error) {
	body, err := c.get(ctx, "/stats", nil, "stats")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// get performs one authenticated GET. A 404 becomes domain.ErrNotFound (the
// feed reports unknown ids that way); any other non-200 or transport failure
// becomes an UpstreamError.
func (c *Client) get(ctx context.Context, path string, q url.Values, endpoint string) ([]byte, error) {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, &domain.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		upstreamRequests.WithLabelValues(endpoint, "not_found").Inc()
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	default:
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		slog.Warn("upstream returned non-success status", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, &domain.UpstreamError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, &domain.UpstreamError{Err: fmt.Errorf("read body: %w", err)}
	}
	upstreamRequests.WithLabelValues(endpoint, "ok").Inc()
	return body, nil
}
