/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/blnkfinance/fxrecon/config"
	redis_db "github.com/blnkfinance/fxrecon/internal/redis-db"
	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

// Cache interface provides the basic operations for a cache system.
type Cache interface {
	// Set stores a value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Get decodes the value stored under key into data, which must be a pointer.
	// A miss is not an error; data is left untouched.
	Get(ctx context.Context, key string, data interface{}) error

	// Delete removes the value stored under key.
	Delete(ctx context.Context, key string) error
}

// RedisCache implements Cache on Redis with a local TinyLFU layer in front of it.
type RedisCache struct {
	cache *cache.Cache
}

// NewCache creates a RedisCache from the loaded configuration.
func NewCache() (Cache, error) {
	cfg, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Dns == "" {
		return nil, errors.New("redis DNS is not configured")
	}

	client, err := redis_db.NewRedisClient([]string{cfg.Redis.Dns}, cfg.Redis.SkipTLSVerify)
	if err != nil {
		return nil, err
	}
	return NewRedisCache(client.Client()), nil
}

// cacheSize defines the size of the local cache (in number of entries) used alongside Redis.
const cacheSize = 10000

// NewRedisCache wraps an existing Redis client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	c := cache.New(&cache.Options{
		Redis:      client,
		LocalCache: cache.NewTinyLFU(cacheSize, 1*time.Minute),
	})
	return &RedisCache{cache: c}
}

func (r *RedisCache) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	return r.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: data,
		TTL:   ttl,
	})
}

func (r *RedisCache) Get(ctx context.Context, key string, data interface{}) error {
	err := r.cache.Get(ctx, key, data)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.cache.Delete(ctx, key)
}
