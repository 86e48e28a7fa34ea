// Command tikiq serves a TikTok data proxy with a small HTML dashboard.
// Queries are resolved through a provider cascade (official API, TikAPI,
// optional unofficial sidecar) and cached with per-kind TTLs.
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shwzss/TikIQ/pkg/cache"
	"github.com/shwzss/TikIQ/pkg/config"
	"github.com/shwzss/TikIQ/pkg/health"
	"github.com/shwzss/TikIQ/pkg/logging"
	"github.com/shwzss/TikIQ/pkg/provider"
	"github.com/shwzss/TikIQ/pkg/resolver"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.Setup(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	store := buildStore(&cfg, logger)
	defer store.Close()

	tracker := health.NewTracker(cfg.FailureThreshold, cfg.FailureCooldown, logger)
	providers := buildProviders(&cfg)

	base := resolver.New(cfg.ResolveTimeout, tracker, logger, providers...)
	cached := resolver.NewCached(base, store, logger)

	srv := newServer(&cfg, cached, store, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().
		Str("addr", addr).
		Bool("official_configured", cfg.HasOfficialCredentials()).
		Bool("tikapi_configured", cfg.HasTikAPIKey()).
		Bool("unofficial_enabled", cfg.UseUnofficial).
		Msg("Starting tikiq server")

	if err := http.ListenAndServe(addr, srv); err != nil {
		logger.Fatal().Err(err).Msg("Server exited")
	}
}

// buildProviders assembles the cascade in priority order. The unofficial
// sidecar only joins the cascade when the operator opts in.
func buildProviders(cfg *config.Config) []provider.Provider {
	providers := []provider.Provider{
		provider.NewOfficial(cfg.OfficialHost, cfg.ClientKey, cfg.ClientSecret, cfg.ProviderTimeout),
		provider.NewTikAPI(cfg.TikAPIHost, cfg.TikAPIKey, cfg.ProviderTimeout),
	}
	if cfg.UseUnofficial {
		providers = append(providers, provider.NewUnofficial(cfg.UnofficialURL, true, cfg.ProviderTimeout))
	}
	return providers
}

func buildStore(cfg *config.Config, logger zerolog.Logger) cache.Store {
	if cfg.RedisURL == "" {
		logger.Info().Msg("Using in-memory cache")
		return cache.NewMemoryStore(time.Minute)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid REDIS_URL")
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", opts.Addr).Msg("Redis unreachable")
	}

	logger.Info().Str("addr", opts.Addr).Msg("Using Redis cache")
	return cache.NewRedisStore(client)
}

// newServer wires the route table. Registered here rather than in main so
// tests can stand up the full mux.
func newServer(cfg *config.Config, qr resolver.QueryResolver, store cache.Store, logger zerolog.Logger) http.Handler {
	h := &handlers{cfg: cfg, resolver: qr, store: store, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /dashboard/{username}", h.dashboard)
	mux.HandleFunc("GET /api/search_user", h.searchUser)
	mux.HandleFunc("GET /api/video_stats", h.videoStats)
	mux.HandleFunc("GET /api/trending_hashtags", h.trendingHashtags)
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /ready", h.ready)
	mux.HandleFunc("GET /debug/config", h.debugConfig)
	mux.Handle("GET /metrics", promhttp.Handler())

	return requestLogger(logger)(mux)
}
