package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"shop-service/internal/entity"
)

// ProductCache stores product rows in redis as JSON under "product:<id>".
type ProductCache struct {
	rdb *redis.Client
}

func NewProductCache(rdb *redis.Client) *ProductCache {
	return &ProductCache{rdb: rdb}
}

func productKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

// GetProduct returns (nil, nil) on a cache miss.
func (c *ProductCache) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	data, err := c.rdb.Get(ctx, productKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var product entity.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *ProductCache) SetProduct(ctx context.Context, product *entity.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, productKey(product.ID), data, 0).Err()
}

func (c *ProductCache) DelProduct(ctx context.Context, id int) error {
	return c.rdb.Del(ctx, productKey(id)).Err()
}
