package rates

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	customError "github.com/homebond/bond-engine/pkg/errors"
)

const cacheKey = "rates:prime:current"

// CachedSource keeps the upstream rate in Redis for a bounded time and falls
// back to a configured static value when both the cache and the upstream
// fetch fail. Calculators never see a missing rate.
type CachedSource struct {
	redis    *redis.Client
	upstream Source
	fallback Source
	ttl      time.Duration
}

func NewCachedSource(redisClient *redis.Client, upstream, fallback Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		redis:    redisClient,
		upstream: upstream,
		fallback: fallback,
		ttl:      ttl,
	}
}

func (s *CachedSource) Current(ctx context.Context) (PrimeRate, error) {
	cached, err := s.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var rate PrimeRate
		if err := json.Unmarshal([]byte(cached), &rate); err == nil {
			return rate, nil
		}
		// Unparseable cache entry: drop it and fetch fresh.
		s.redis.Del(ctx, cacheKey)
	}

	rate, err := s.Refresh(ctx)
	if err == nil {
		return rate, nil
	}

	log.Printf("prime rate fetch failed, using fallback: %v", err)
	return s.fallback.Current(ctx)
}

// Refresh fetches the upstream rate and replaces the cached value. The
// scheduler calls this on its own cadence; Current calls it on cache misses.
func (s *CachedSource) Refresh(ctx context.Context) (PrimeRate, error) {
	rate, err := s.upstream.Current(ctx)
	if err != nil {
		return PrimeRate{}, err
	}

	payload, err := json.Marshal(rate)
	if err != nil {
		return PrimeRate{}, customError.WrapCacheError(err)
	}

	if err := s.redis.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
		// A failed cache write still leaves us with a good rate.
		log.Printf("failed to cache prime rate: %v", err)
	}

	return rate, nil
}
