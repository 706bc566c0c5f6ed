package predict

import (
	"context"
	"time"

	"partyPredictor/pkg/metrics"
	"partyPredictor/pkg/nn"

	gocache "github.com/patrickmn/go-cache"
)

// ModelCache keeps decoded networks keyed by artifact name. Entries expire
// after ttl and Flush drops them all, so a replaced artifact on disk is
// picked up at the latest one ttl later or right after a flush.
type ModelCache struct {
	repo  ModelRepository
	cache *gocache.Cache
}

var _ ModelRepository = (*ModelCache)(nil)

func NewModelCache(repo ModelRepository, ttl time.Duration) *ModelCache {
	return &ModelCache{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *ModelCache) LoadModel(ctx context.Context, artifactName string) (*nn.Network, error) {
	if v, found := c.cache.Get(artifactName); found {
		metrics.ModelCacheLookups.WithLabelValues("hit").Inc()
		return v.(*nn.Network), nil
	}
	metrics.ModelCacheLookups.WithLabelValues("miss").Inc()

	network, err := c.repo.LoadModel(ctx, artifactName)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(artifactName, network)
	return network, nil
}

// Flush evicts every cached network and reports how many were held.
func (c *ModelCache) Flush() int {
	n := c.cache.ItemCount()
	c.cache.Flush()
	return n
}
