package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Official calls the vendor's first-party data API on the
// open.tiktokapis.com v2 surface. Authentication is the client key header;
// the secret is required for configuration but exchanged out of band by the
// vendor's client registration, not sent per request.
type Official struct {
	host         string
	clientKey    string
	clientSecret string
	httpClient   *http.Client
}

// NewOfficial creates the official API adapter. The adapter reports itself
// unconfigured until both key and secret are present.
func NewOfficial(host, clientKey, clientSecret string, timeout time.Duration) *Official {
	if host == "" {
		host = "https://open.tiktokapis.com"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Official{
		host:         strings.TrimRight(host, "/"),
		clientKey:    clientKey,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (o *Official) Source() string { return SourceOfficial }

func (o *Official) Configured() bool {
	return o.clientKey != "" && o.clientSecret != ""
}

// SearchUser returns profile plus recent videos for a username.
func (o *Official) SearchUser(ctx context.Context, username string, count int) (json.RawMessage, error) {
	if !o.Configured() {
		return nil, ErrNotConfigured
	}
	params := url.Values{
		"username": []string{username},
		"count":    []string{strconv.Itoa(count)},
	}
	return o.get(ctx, "/v2/user/search", params)
}

// VideoStats returns metrics for a video by id.
func (o *Official) VideoStats(ctx context.Context, videoID string) (json.RawMessage, error) {
	if !o.Configured() {
		return nil, ErrNotConfigured
	}
	params := url.Values{"item_id": []string{videoID}}
	return o.get(ctx, "/v2/video/query", params)
}

// TrendingHashtags returns the current trending hashtags.
func (o *Official) TrendingHashtags(ctx context.Context, count int) (json.RawMessage, error) {
	if !o.Configured() {
		return nil, ErrNotConfigured
	}
	params := url.Values{"count": []string{strconv.Itoa(count)}}
	return o.get(ctx, "/v2/discover/hashtags", params)
}

func (o *Official) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	headers := map[string]string{"x-client-key": o.clientKey}
	return doJSON(ctx, o.httpClient, SourceOfficial, o.host+path, params, headers)
}
