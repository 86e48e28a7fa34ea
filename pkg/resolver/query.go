package resolver

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Kind identifies the type of data a query asks for.
type Kind string

const (
	KindUserLookup       Kind = "search_user"
	KindVideoStats       Kind = "video_stats"
	KindTrendingHashtags Kind = "trending_hashtags"
)

// TTLs by data volatility. Video stats move fast, profile and trending
// data less so.
const (
	ShortTTL  = 30 * time.Second
	MediumTTL = 120 * time.Second
)

const (
	DefaultUserVideoCount = 5
	DefaultHashtagCount   = 20
)

// Query is a normalized request for TikTok data. Construct queries through
// the constructors so equivalent requests share a cache key.
type Query struct {
	Kind   Kind
	Params map[string]string
}

// UserLookup builds a profile query. Usernames are case-insensitive on the
// platform, so normalization folds case before the cache key is derived.
func UserLookup(username string, count int) Query {
	if count < 1 {
		count = DefaultUserVideoCount
	}
	return Query{
		Kind: KindUserLookup,
		Params: map[string]string{
			"username": strings.ToLower(strings.TrimSpace(username)),
			"count":    fmt.Sprintf("%d", count),
		},
	}
}

// VideoStats builds a per-video metrics query.
func VideoStats(videoID string) Query {
	return Query{
		Kind: KindVideoStats,
		Params: map[string]string{
			"video_id": strings.TrimSpace(videoID),
		},
	}
}

// TrendingHashtags builds a trending hashtag list query.
func TrendingHashtags(count int) Query {
	if count < 1 {
		count = DefaultHashtagCount
	}
	return Query{
		Kind: KindTrendingHashtags,
		Params: map[string]string{
			"count": fmt.Sprintf("%d", count),
		},
	}
}

// TTL returns how long a resolved result for this query stays fresh.
func (q Query) TTL() time.Duration {
	switch q.Kind {
	case KindVideoStats:
		return ShortTTL
	default:
		return MediumTTL
	}
}

// Username returns the normalized username for user lookups, or "".
func (q Query) Username() string {
	return q.Params["username"]
}

// CacheKey returns a deterministic key for the query. Params are sorted so
// equal queries always map to the same key regardless of construction order.
func (q Query) CacheKey() string {
	keys := make([]string, 0, len(q.Params))
	for k := range q.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("tikiq:")
	sb.WriteString(string(q.Kind))
	for _, k := range keys {
		sb.WriteString(":")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(q.Params[k])
	}
	return sb.String()
}
