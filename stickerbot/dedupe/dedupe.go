// Package dedupe drops webhook messages that were already handled. The Cloud
// API retries deliveries it considers unacknowledged, so the same message id
// can arrive more than once.
package dedupe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"

	"github.com/silenole/stickerbot/stickerbot/config"
)

type Deduper interface {
	// Seen marks id as handled and reports whether it already was.
	Seen(ctx context.Context, id string) (bool, error)
	Close() error
}

// Memory keeps recent ids in a bounded LRU.
type Memory struct {
	mu     sync.Mutex
	cache  *lru.Cache
	window time.Duration
	now    func() time.Time
}

func NewMemory(size int, window time.Duration) (*Memory, error) {
	if size <= 0 {
		size = config.DedupeCacheSize
	}
	if window <= 0 {
		window = config.DedupeWindow
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create dedupe cache: %w", err)
	}
	return &Memory{cache: cache, window: window, now: time.Now}, nil
}

func (m *Memory) Seen(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if v, ok := m.cache.Get(id); ok {
		if now.Before(v.(time.Time)) {
			return true, nil
		}
	}
	m.cache.Add(id, now.Add(m.window))
	return false, nil
}

func (m *Memory) Close() error {
	m.cache.Purge()
	return nil
}

// Redis shares seen ids between replicas. When Redis is unreachable it
// falls back to the local cache so messages keep flowing.
type Redis struct {
	client   *redis.Client
	window   time.Duration
	prefix   string
	fallback *Memory
}

func NewRedis(url string, window time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 2 * time.Second
	}
	opts.MaxRetries = -1

	if window <= 0 {
		window = config.DedupeWindow
	}
	fallback, err := NewMemory(config.DedupeCacheSize, window)
	if err != nil {
		return nil, err
	}

	return &Redis{
		client:   redis.NewClient(opts),
		window:   window,
		prefix:   "stickerbot:wamid:",
		fallback: fallback,
	}, nil
}

func (r *Redis) Seen(ctx context.Context, id string) (bool, error) {
	fresh, err := r.client.SetNX(ctx, r.prefix+id, 1, r.window).Result()
	if err != nil {
		slog.Warn("Redis dedupe unavailable, using local cache",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return r.fallback.Seen(ctx, id)
	}
	// keep the local cache warm for outages
	_, _ = r.fallback.Seen(ctx, id)
	return !fresh, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	_ = r.fallback.Close()
	return r.client.Close()
}

// New returns a Redis deduper when url is set, otherwise an in-memory one.
func New(url string, window time.Duration) (Deduper, error) {
	if url == "" {
		return NewMemory(config.DedupeCacheSize, window)
	}
	return NewRedis(url, window)
}
