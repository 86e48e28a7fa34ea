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

// TikAPI calls the managed third-party proxy service reselling access to
// vendor data. Authentication is a single account key in the X-API-KEY
// header.
type TikAPI struct {
	host       string
	apiKey     string
	httpClient *http.Client
}

// NewTikAPI creates the managed provider adapter.
func NewTikAPI(host, apiKey string, timeout time.Duration) *TikAPI {
	if host == "" {
		host = "https://api.tikapi.io"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TikAPI{
		host:       strings.TrimRight(host, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (t *TikAPI) Source() string { return SourceTikAPI }

func (t *TikAPI) Configured() bool { return t.apiKey != "" }

// SearchUser returns profile plus recent videos for a username.
func (t *TikAPI) SearchUser(ctx context.Context, username string, count int) (json.RawMessage, error) {
	if !t.Configured() {
		return nil, ErrNotConfigured
	}
	params := url.Values{
		"username": []string{username},
		"count":    []string{strconv.Itoa(count)},
	}
	return t.get(ctx, "/public/check", params)
}

// VideoStats returns metrics for a video by id.
func (t *TikAPI) VideoStats(ctx context.Context, videoID string) (json.RawMessage, error) {
	if !t.Configured() {
		return nil, ErrNotConfigured
	}
	params := url.Values{"id": []string{videoID}}
	return t.get(ctx, "/public/video", params)
}

// TrendingHashtags returns the current trending hashtags.
func (t *TikAPI) TrendingHashtags(ctx context.Context, count int) (json.RawMessage, error) {
	if !t.Configured() {
		return nil, ErrNotConfigured
	}
	params := url.Values{"count": []string{strconv.Itoa(count)}}
	return t.get(ctx, "/public/explore", params)
}

func (t *TikAPI) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	headers := map[string]string{"X-API-KEY": t.apiKey}
	return doJSON(ctx, t.httpClient, SourceTikAPI, t.host+path, params, headers)
}
