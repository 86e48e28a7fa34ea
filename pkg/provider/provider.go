// Package provider implements the client adapters for the external TikTok
// data sources: the official API, the TikAPI managed service, and the
// unofficial scraper sidecar.
//
// Adapters are thin request/response wrappers: one outbound call per
// invocation with a fixed timeout, no retries, and payloads passed through
// unmodified. The payload shape differs between sources; callers inspect the
// source tag on the resolved result to interpret it.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Source identifiers as they appear in API responses.
const (
	SourceOfficial   = "official"
	SourceTikAPI     = "tikapi"
	SourceUnofficial = "unofficial"
)

// DefaultTimeout is the fixed per-attempt timeout applied uniformly to all
// provider calls.
const DefaultTimeout = 20 * time.Second

// Provider is a single external data source. Configured reports whether the
// adapter has the credentials it needs; unconfigured providers are skipped
// by the resolver, never attempted.
type Provider interface {
	Source() string
	Configured() bool

	SearchUser(ctx context.Context, username string, count int) (json.RawMessage, error)
	VideoStats(ctx context.Context, videoID string) (json.RawMessage, error)
	TrendingHashtags(ctx context.Context, count int) (json.RawMessage, error)
}

// doJSON performs a GET against a provider endpoint and returns the raw JSON
// body. Non-2xx statuses and unreadable or invalid bodies become classified
// *Error values.
func doJSON(ctx context.Context, client *http.Client, source, rawURL string, params url.Values, headers map[string]string) (json.RawMessage, error) {
	u := rawURL
	if len(params) > 0 {
		u = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		providerErrorsTotal.WithLabelValues(source, string(ErrorClassNetwork)).Inc()
		providerRequestsTotal.WithLabelValues(source, "network_error").Inc()
		return nil, &Error{Provider: source, Class: ErrorClassNetwork, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	providerRequestDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	providerRequestsTotal.WithLabelValues(source, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		class := classifyStatus(resp.StatusCode)
		providerErrorsTotal.WithLabelValues(source, string(class)).Inc()
		return nil, &Error{Provider: source, StatusCode: resp.StatusCode, Class: class, Message: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		providerErrorsTotal.WithLabelValues(source, string(ErrorClassNetwork)).Inc()
		return nil, &Error{Provider: source, StatusCode: resp.StatusCode, Class: ErrorClassNetwork, Message: "read response body", Err: err}
	}

	if !json.Valid(body) {
		providerErrorsTotal.WithLabelValues(source, string(ErrorClassNetwork)).Inc()
		return nil, &Error{Provider: source, StatusCode: resp.StatusCode, Class: ErrorClassNetwork, Message: "malformed JSON response"}
	}

	return json.RawMessage(body), nil
}
