package metrics

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/google/uuid"
)

// Cached memoizes metric calculations per fund for a short TTL so a
// burst of calculation queries doesn't hammer the collaborator.
// Failures are never cached.
type Cached struct {
	inner Service
	cache *gocache.Cache
}

var _ Service = &Cached{}

func NewCached(inner Service, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cached{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cached) CalculateAllMetrics(ctx context.Context, fundID uuid.UUID) (map[string]float64, error) {
	key := fundID.String()
	if cached, found := c.cache.Get(key); found {
		return cached.(map[string]float64), nil
	}

	result, err := c.inner.CalculateAllMetrics(ctx, fundID)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(key, result)
	return result, nil
}
