// Package cache provides an in-process key-value cache backed by ristretto,
// with lifecycle-managed shutdown.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/JaimeStill/promptlib/pkg/lifecycle"
)

// System is a byte-oriented cache. Implementations are safe for concurrent use.
type System interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
	// Start registers a shutdown hook that releases cache resources.
	Start(lc *lifecycle.Coordinator) error
}

type ristrettoCache struct {
	c      *ristretto.Cache[string, []byte]
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a cache from cfg. When caching is disabled a no-op System is
// returned so callers never need a nil check.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "cache")

	if !cfg.Enabled {
		logger.Info("cache disabled")
		return noop{}, nil
	}

	maxCost := cfg.MaxCostBytes()
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: max(maxCost/100*10, 1000),
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &ristrettoCache{
		c:      c,
		ttl:    cfg.TTLDuration(),
		logger: logger,
	}, nil
}

func (r *ristrettoCache) Get(_ context.Context, key string) ([]byte, bool) {
	return r.c.Get(key)
}

// Set stores value and waits for the write buffer to drain so the entry is
// visible to the next Get.
func (r *ristrettoCache) Set(_ context.Context, key string, value []byte) {
	if !r.c.SetWithTTL(key, value, int64(len(value)), r.ttl) {
		r.logger.Debug("cache set dropped", "key", key)
		return
	}
	r.c.Wait()
}

func (r *ristrettoCache) Delete(_ context.Context, key string) {
	r.c.Del(key)
}

func (r *ristrettoCache) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		r.c.Close()
		r.logger.Info("cache closed")
	})
	return nil
}

type noop struct{}

func (noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noop) Set(context.Context, string, []byte)        {}
func (noop) Delete(context.Context, string)             {}
func (noop) Start(*lifecycle.Coordinator) error         { return nil }

// GetJSON reads key and decodes it into a T. A miss or an undecodable entry
// reports false.
func GetJSON[T any](ctx context.Context, c System, key string) (T, bool) {
	var zero T
	data, ok := c.Get(ctx, key)
	if !ok {
		return zero, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, false
	}
	return v, true
}

// SetJSON encodes v and stores it under key. Encoding failures skip the write.
func SetJSON[T any](ctx context.Context, c System, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, data)
}
