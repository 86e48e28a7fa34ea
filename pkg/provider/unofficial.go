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

// Unofficial talks to a locally run scraper sidecar over HTTP. The sidecar
// wraps a community scraping library and is an opaque collaborator; the
// adapter is only enabled when the operator explicitly opts in.
type Unofficial struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
}

// NewUnofficial creates the sidecar adapter. enabled=false keeps the
// adapter present but permanently skipped.
func NewUnofficial(baseURL string, enabled bool, timeout time.Duration) *Unofficial {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Unofficial{
		baseURL:    strings.TrimRight(baseURL, "/"),
		enabled:    enabled,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (u *Unofficial) Source() string { return SourceUnofficial }

func (u *Unofficial) Configured() bool { return u.enabled && u.baseURL != "" }

// SearchUser returns profile plus recent videos for a username.
func (u *Unofficial) SearchUser(ctx context.Context, username string, count int) (json.RawMessage, error) {
	if !u.Configured() {
		return nil, ErrNotConfigured
	}
	params := url.Values{"count": []string{strconv.Itoa(count)}}
	return doJSON(ctx, u.httpClient, SourceUnofficial,
		u.baseURL+"/api/user/"+url.PathEscape(username), params, nil)
}

// VideoStats returns metrics for a video by id.
func (u *Unofficial) VideoStats(ctx context.Context, videoID string) (json.RawMessage, error) {
	if !u.Configured() {
		return nil, ErrNotConfigured
	}
	return doJSON(ctx, u.httpClient, SourceUnofficial,
		u.baseURL+"/api/video/"+url.PathEscape(videoID), nil, nil)
}

// TrendingHashtags returns the current trending hashtags.
func (u *Unofficial) TrendingHashtags(ctx context.Context, count int) (json.RawMessage, error) {
	if !u.Configured() {
		return nil, ErrNotConfigured
	}
	params := url.Values{"count": []string{strconv.Itoa(count)}}
	return doJSON(ctx, u.httpClient, SourceUnofficial, u.baseURL+"/api/trending", params, nil)
}
