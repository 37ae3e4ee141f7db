package cache

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Open returns the cache named by target:
//
//   - "" or "none": a [NullCache]
//   - "redis://..." or "rediss://...": a [RedisCache]
//   - "mongodb://..." or "mongodb+srv://...": a [MongoCache]
//   - anything else: a [FileCache] rooted at that directory
func Open(ctx context.Context, target string) (Cache, error) {
	switch {
	case target == "" || target == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		opts, err := redis.ParseURL(target)
		if err != nil {
			return nil, err
		}
		cfg := DefaultRedisConfig()
		cfg.Addr, cfg.Password, cfg.DB = opts.Addr, opts.Password, opts.DB
		return NewRedisCache(ctx, cfg)
	case strings.HasPrefix(target, "mongodb://"), strings.HasPrefix(target, "mongodb+srv://"):
		cfg := DefaultMongoConfig()
		cfg.URI = target
		return NewMongoCache(ctx, cfg)
	default:
		return NewFileCache(target)
	}
}
