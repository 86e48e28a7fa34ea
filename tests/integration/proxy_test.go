package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shwzss/TikIQ/internal/testutil"
	"github.com/shwzss/TikIQ/pkg/cache"
	"github.com/shwzss/TikIQ/pkg/health"
	"github.com/shwzss/TikIQ/pkg/provider"
	"github.com/shwzss/TikIQ/pkg/resolver"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

// newCascade builds a cached resolver over the given mock upstreams with a
// Redis-backed store.
func newCascade(store cache.Store, official, tikapi *testutil.MockUpstream) *resolver.CachedResolver {
	logger := zerolog.Nop()
	tracker := health.NewTracker(5, 30*time.Second, logger)

	providers := []provider.Provider{
		provider.NewOfficial(official.URL(), "test-key", "test-secret", 5*time.Second),
		provider.NewTikAPI(tikapi.URL(), "tikapi-key", 5*time.Second),
	}

	base := resolver.New(30*time.Second, tracker, logger, providers...)
	return resolver.NewCached(base, store, logger)
}

func TestFullResolveFlowWithRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	store := cache.NewRedisStore(redisClient)

	official := testutil.NewMockUpstream()
	defer official.Close()
	tikapi := testutil.NewMockUpstream()
	defer tikapi.Close()

	official.SetResponse("/v2/user/search", testutil.NewJSONResponse(map[string]interface{}{
		"user": map[string]interface{}{"username": "charli", "followers": 150000000},
	}))

	cr := newCascade(store, official, tikapi)
	ctx := context.Background()
	q := resolver.UserLookup("charli", 5)

	first, err := cr.Resolve(ctx, q)
	if err != nil {
		t.Fatalf("First Resolve failed: %v", err)
	}
	if first.Source != provider.SourceOfficial {
		t.Errorf("Source = %q, want official", first.Source)
	}

	second, err := cr.Resolve(ctx, q)
	if err != nil {
		t.Fatalf("Second Resolve failed: %v", err)
	}
	if second.Source != first.Source {
		t.Errorf("Cached source differs: %q vs %q", second.Source, first.Source)
	}
	if got := official.RequestCount("/v2/user/search"); got != 1 {
		t.Errorf("Upstream requests = %d, second resolve should hit the cache", got)
	}
	if got := official.LastHeader("/v2/user/search", "x-client-key"); got != "test-key" {
		t.Errorf("x-client-key = %q, want test-key", got)
	}
}

func TestFallbackToSecondProvider(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	store := cache.NewRedisStore(redisClient)

	official := testutil.NewMockUpstream()
	defer official.Close()
	tikapi := testutil.NewMockUpstream()
	defer tikapi.Close()

	official.SetResponse("/v2/video/query", testutil.NewServerErrorResponse())
	tikapi.SetResponse("/public/video", testutil.NewJSONResponse(map[string]interface{}{
		"itemInfo": map[string]interface{}{"stats": map[string]int{"playCount": 1000}},
	}))

	cr := newCascade(store, official, tikapi)

	outcome, err := cr.Resolve(context.Background(), resolver.VideoStats("abc123"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if outcome.Source != provider.SourceTikAPI {
		t.Errorf("Source = %q, want tikapi", outcome.Source)
	}
	if got := official.RequestCount("/v2/video/query"); got != 1 {
		t.Errorf("Official requests = %d, want 1 failed attempt", got)
	}
	if got := tikapi.LastHeader("/public/video", "X-API-KEY"); got != "tikapi-key" {
		t.Errorf("X-API-KEY = %q, want tikapi-key", got)
	}
}

func TestUnavailabilityIsCachedInRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	store := cache.NewRedisStore(redisClient)

	official := testutil.NewMockUpstream()
	defer official.Close()
	tikapi := testutil.NewMockUpstream()
	defer tikapi.Close()

	official.SetResponse("/v2/discover/hashtags", testutil.NewServerErrorResponse())
	tikapi.SetResponse("/public/explore", testutil.NewRateLimitResponse())

	cr := newCascade(store, official, tikapi)
	ctx := context.Background()
	q := resolver.TrendingHashtags(20)

	_, err1 := cr.Resolve(ctx, q)
	_, err2 := cr.Resolve(ctx, q)

	var noSource *resolver.NoSourceError
	if !errors.As(err1, &noSource) || !errors.As(err2, &noSource) {
		t.Fatalf("Expected NoSourceError twice, got %v / %v", err1, err2)
	}
	if got := official.RequestCount("/v2/discover/hashtags"); got != 1 {
		t.Errorf("Official requests = %d, exhaustion should be cached", got)
	}
	if got := tikapi.RequestCount("/public/explore"); got != 1 {
		t.Errorf("TikAPI requests = %d, exhaustion should be cached", got)
	}
}
