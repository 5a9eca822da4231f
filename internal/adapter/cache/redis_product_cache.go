package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/tn0901/shop-api/internal/entity"
	"github.com/tn0901/shop-api/internal/usecase"
)

// RedisProductCache is a read-through cache in front of the product repo.
// Cache failures degrade to the database; they never fail the request.
type RedisProductCache struct {
	rdb  *redis.Client
	ttl  time.Duration
	next usecase.ProductRepo
}

func NewRedisProductCache(rdb *redis.Client, ttl time.Duration, next usecase.ProductRepo) *RedisProductCache {
	return &RedisProductCache{rdb: rdb, ttl: ttl, next: next}
}

func key(id string) string { return "product:" + id }

func (c *RedisProductCache) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if raw, err := c.rdb.Get(ctx, key(id)).Bytes(); err == nil {
		var p domain.Product
		if json.Unmarshal(raw, &p) == nil {
			return &p, nil
		}
	}

	p, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(p); err == nil {
		_ = c.rdb.Set(ctx, key(id), raw, c.ttl).Err()
	}
	return p, nil
}

func (c *RedisProductCache) Update(ctx context.Context, p *domain.Product) error {
	if err := c.next.Update(ctx, p); err != nil {
		return err
	}
	_ = c.rdb.Del(ctx, key(p.ID)).Err()
	return nil
}

func (c *RedisProductCache) Delete(ctx context.Context, id string) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	_ = c.rdb.Del(ctx, key(id)).Err()
	return nil
}

func (c *RedisProductCache) Create(ctx context.Context, p *domain.Product) error {
	return c.next.Create(ctx, p)
}

func (c *RedisProductCache) GetAll(ctx context.Context) ([]domain.Product, error) {
	return c.next.GetAll(ctx)
}

func (c *RedisProductCache) Count(ctx context.Context) (int64, error) {
	return c.next.Count(ctx)
}

var _ usecase.ProductRepo = (*RedisProductCache)(nil)
