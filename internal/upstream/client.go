package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"roblox-pass-proxy/internal/metrics"
)

// Client issues single JSON GET requests against mirror endpoints. It does
// not retry; retry and fallback policy belongs to the adapters that own the
// endpoint lists.
type Client struct {
	http      *http.Client
	userAgent string
	timeout   time.Duration
}

// Config holds upstream client settings.
type Config struct {
	// Timeout bounds each individual request, connect included.
	Timeout time.Duration

	// UserAgent is sent on every request so mirrors can identify us.
	UserAgent string
}

// New creates an upstream client with a tuned transport shared by all
// adapters.
func New(cfg Config) *Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		http:      &http.Client{Transport: transport},
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
	}
}

// GetJSON performs one GET against rawURL and decodes the body into out.
// Failures are typed: *HTTPError for non-2xx statuses, *NetworkError for
// transport failures, *ParseError for undecodable bodies.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(hostOf(rawURL), metrics.OutcomeNetworkError).Inc()
		return &NetworkError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(hostOf(rawURL), metrics.OutcomeNetworkError).Inc()
		return &NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		metrics.UpstreamRequests.WithLabelValues(hostOf(rawURL), metrics.OutcomeHTTPError).Inc()
		return &HTTPError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequests.WithLabelValues(hostOf(rawURL), metrics.OutcomeParseError).Inc()
		return &ParseError{URL: rawURL, Err: err}
	}

	metrics.UpstreamRequests.WithLabelValues(hostOf(rawURL), metrics.OutcomeOK).Inc()
	return nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
