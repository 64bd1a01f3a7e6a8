package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cmlabs-hris/personnel-web/internal/domain/equipment"
)

const CategoryCacheKey = "personnel:equipment:categories"

// CategoryCache shares the equipment category list between console replicas.
type CategoryCache struct {
	rdb redis.Cmdable
}

func NewCategoryCache(rdb redis.Cmdable) *CategoryCache {
	return &CategoryCache{rdb: rdb}
}

// Get returns ok=false on a cache miss.
func (c *CategoryCache) Get(ctx context.Context) ([]equipment.Category, bool, error) {
	raw, err := c.rdb.Get(ctx, CategoryCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read category cache: %w", err)
	}

	var cats []equipment.Category
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return nil, false, fmt.Errorf("decode category cache: %w", err)
	}
	return cats, true, nil
}

func (c *CategoryCache) Set(ctx context.Context, cats []equipment.Category, ttl time.Duration) error {
	payload, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("encode category cache: %w", err)
	}
	if err := c.rdb.Set(ctx, CategoryCacheKey, string(payload), ttl).Err(); err != nil {
		return fmt.Errorf("write category cache: %w", err)
	}
	return nil
}
