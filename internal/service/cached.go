package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rajgarments/storefront/internal/storage/cache"
)

// loadTimeout bounds a shared load once it is detached from its callers.
const loadTimeout = 10 * time.Second

// readThrough serves cache-aside reads. Concurrent misses for the same key
// share one load. Cache failures are logged and the load result is used.
type readThrough struct {
	cache  cache.Cache
	group  singleflight.Group
	logger *slog.Logger
}

func newReadThrough(c cache.Cache, logger *slog.Logger) *readThrough {
	if c == nil {
		c = cache.Noop{}
	}
	return &readThrough{
		cache:  c,
		logger: logger,
	}
}

func cachedRead[T any](
	ctx context.Context,
	rt *readThrough,
	key string,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	hit, err := rt.cache.Get(ctx, key, &cached)
	if err != nil {
		rt.logger.WarnContext(ctx, "cache get failed", slog.String("key", key), slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	// The load outlives any single caller: a caller that gives up must not
	// fail the others waiting on the same key.
	ch := rt.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		loaded, err := load(loadCtx)
		if err != nil {
			return nil, err
		}

		if err := rt.cache.Set(loadCtx, key, loaded); err != nil {
			rt.logger.WarnContext(loadCtx, "cache set failed", slog.String("key", key), slog.Any("error", err))
		}

		return loaded, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
