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

package cachedrepository

import (
	"context"
	"encoding"
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	rediscache "github.com/jackal-xmpp/xrocket/pkg/storage/cached/redis"
	"github.com/jackal-xmpp/xrocket/pkg/storage/repository"
)

// Config contains cached repository configuration.
type Config struct {
	Type  string            `fig:"type"`
	Redis rediscache.Config `fig:"redis"`
}

// Cache defines cache store interface.
// Values are grouped into namespaces, so that all keys related to the same entity live together.
type Cache interface {
	// Type identifies underlying cache store type.
	Type() string

	// Get retrieves a namespace key value. Missing keys return a nil value.
	Get(ctx context.Context, ns, key string) ([]byte, error)

	// Put stores a namespace key value.
	Put(ctx context.Context, ns, key string, val []byte) error

	// Del removes a set of namespace keys.
	Del(ctx context.Context, ns string, keys ...string) error

	// Start starts Cache component.
	Start(ctx context.Context) error

	// Stop stops Cache component.
	Stop(ctx context.Context) error
}

type codec interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// Repository is a read-through cached repository.Repository implementation.
type Repository struct {
	rep    repository.Repository
	cache  Cache
	logger kitlog.Logger
}

// New returns a new initialized cached Repository instance.
func New(cfg Config, rep repository.Repository, logger kitlog.Logger) (*Repository, error) {
	if cfg.Type != rediscache.Type {
		return nil, fmt.Errorf("cachedrepository: unrecognized repository cache type: %s", cfg.Type)
	}
	return newRepository(rediscache.New(cfg.Redis), rep, logger), nil
}

func newRepository(c Cache, rep repository.Repository, logger kitlog.Logger) *Repository {
	return &Repository{
		rep:    rep,
		cache:  c,
		logger: logger,
	}
}

// Start starts cached repository component.
func (r *Repository) Start(ctx context.Context) error {
	if err := r.cache.Start(ctx); err != nil {
		return err
	}
	level.Info(r.logger).Log("msg", "started cached repository", "type", r.cache.Type())
	return r.rep.Start(ctx)
}

// Stop stops cached repository component.
func (r *Repository) Stop(ctx context.Context) error {
	if err := r.cache.Stop(ctx); err != nil {
		return err
	}
	level.Info(r.logger).Log("msg", "stopped cached repository", "type", r.cache.Type())
	return r.rep.Stop(ctx)
}

// load decodes a cached value into v, reporting whether it was found.
// Cache failures are logged and treated as a miss.
func (r *Repository) load(ctx context.Context, ns, key string, v codec) bool {
	b, err := r.cache.Get(ctx, ns, key)
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to read from cache", "ns", ns, "key", key, "err", err)
		return false
	}
	if b == nil {
		return false
	}
	if err := v.UnmarshalBinary(b); err != nil {
		level.Warn(r.logger).Log("msg", "failed to decode cached value", "ns", ns, "key", key, "err", err)
		return false
	}
	return true
}

func (r *Repository) store(ctx context.Context, ns, key string, v codec) {
	b, err := v.MarshalBinary()
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to encode cache value", "ns", ns, "key", key, "err", err)
		return
	}
	if err := r.cache.Put(ctx, ns, key, b); err != nil {
		level.Warn(r.logger).Log("msg", "failed to write into cache", "ns", ns, "key", key, "err", err)
	}
}

// invalidate must succeed before the underlying store is modified, otherwise a stale value could outlive the write.
func (r *Repository) invalidate(ctx context.Context, ns string, keys ...string) error {
	if err := r.cache.Del(ctx, ns, keys...); err != nil {
		return fmt.Errorf("cachedrepository: failed to invalidate %s: %w", ns, err)
	}
	return nil
}
