// Copyright 2022 The xrocket Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

// Type is redis type identifier.
const Type = "redis"

// Config contains Redis cache configuration.
type Config struct {
	Addresses    []string      `fig:"addresses" default:"[localhost:6379]"`
	Username     string        `fig:"username"`
	Password     string        `fig:"password"`
	DB           int           `fig:"db"`
	DialTimeout  time.Duration `fig:"dial_timeout" default:"3s"`
	ReadTimeout  time.Duration `fig:"read_timeout" default:"5s"`
	WriteTimeout time.Duration `fig:"write_timeout" default:"5s"`
	TTL          time.Duration `fig:"ttl" default:"24h"`
}

// Cache is Redis cache implementation.
// Namespaces are stored as Redis hashes and spread across configured instances using a consistent hash.
type Cache struct {
	shards []*redis.Client
	ttl    time.Duration
}

// New creates and returns an initialized Redis Cache instance.
func New(cfg Config) *Cache {
	shards := make([]*redis.Client, 0, len(cfg.Addresses))
	for _, addr := range cfg.Addresses {
		shards = append(shards, redis.NewClient(&redis.Options{
			Addr:         addr,
			Username:     cfg.Username,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}))
	}
	return newCache(cfg.TTL, shards...)
}

func newCache(ttl time.Duration, shards ...*redis.Client) *Cache {
	return &Cache{shards: shards, ttl: ttl}
}

// Type satisfies Cache interface.
func (c *Cache) Type() string { return Type }

// Get satisfies Cache interface.
func (c *Cache) Get(ctx context.Context, ns, key string) ([]byte, error) {
	b, err := c.shard(ns).HGet(ctx, ns, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

// Put satisfies Cache interface.
// Every write refreshes namespace expiration.
func (c *Cache) Put(ctx context.Context, ns, key string, val []byte) error {
	cl := c.shard(ns)
	if err := cl.HSet(ctx, ns, key, val).Err(); err != nil {
		return err
	}
	return cl.Expire(ctx, ns, c.ttl).Err()
}

// Del satisfies Cache interface.
func (c *Cache) Del(ctx context.Context, ns string, keys ...string) error {
	return c.shard(ns).HDel(ctx, ns, keys...).Err()
}

// Start satisfies Cache interface.
func (c *Cache) Start(ctx context.Context) error {
	if len(c.shards) == 0 {
		return errors.New("rediscache: no addresses configured")
	}
	g, gCtx := errgroup.WithContext(ctx)
	for _, cl := range c.shards {
		cl := cl
		g.Go(func() error {
			if err := cl.Ping(gCtx).Err(); err != nil {
				return fmt.Errorf("rediscache: %s unreachable: %w", cl.Options().Addr, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Stop satisfies Cache interface.
func (c *Cache) Stop(_ context.Context) error {
	var firstErr error
	for _, cl := range c.shards {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Cache) shard(ns string) *redis.Client {
	if len(c.shards) == 1 {
		return c.shards[0]
	}
	return c.shards[jumpHash(xxhash.Sum64String(ns), len(c.shards))]
}

// jumpHash maps key into one of numBuckets buckets moving as few keys as possible when bucket count changes.
// See https://arxiv.org/abs/1406.2294.
func jumpHash(key uint64, numBuckets int) int32 {
	b, j := int64(-1), int64(0)
	for j < int64(numBuckets) {
		b = j
		key = key*2862933555777941757 + 1
		j = int64(float64(b+1) * (float64(int64(1)<<31) / float64((key>>33)+1)))
	}
	return int32(b)
}
