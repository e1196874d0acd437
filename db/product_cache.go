package db

import (
	"context"
	"encoding/json"
	"shop/entities"
	"shop/observability"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	productsCacheKey = "products"
	productsCacheTTL = 5 * time.Minute
)

// CachedProductRepository serves product listings from Redis and falls
// back to the underlying repository on a miss. Price lookups always hit
// the database so checkouts see prices at transaction time.
type CachedProductRepository struct {
	ProductRepository

	rdb *redis.Client
}

func NewCachedProductRepository(repo ProductRepository, rdb *redis.Client) CachedProductRepository {
	if rdb == nil {
		panic("redis client is nil")
	}
	return CachedProductRepository{
		ProductRepository: repo,
		rdb:               rdb,
	}
}

func (cr CachedProductRepository) Get(ctx context.Context) ([]entities.Product, error) {
	cached, err := cr.rdb.Get(ctx, productsCacheKey).Bytes()
	if err == nil {
		var products []entities.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products, nil
		}
		// stale or corrupted entry, fall through to the database
	}

	products, err := cr.ProductRepository.Get(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return nil, err
	}

	if err := cr.rdb.Set(ctx, productsCacheKey, payload, productsCacheTTL).Err(); err != nil {
		observability.FromContext(ctx).WithError(err).Warn("could not cache product listing")
	}

	return products, nil
}
