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

package boltdb

import (
	"context"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	bolt "go.etcd.io/bbolt"
)

var (
	usersBucket          = []byte("users")
	rosterItemsBucket    = []byte("roster_items")
	rosterVersionsBucket = []byte("roster_versions")
)

// Config contains BoltDB configuration value.
type Config struct {
	Path string `fig:"path" default:".xrocket.db"`
}

// Repository represents a BoltDB repository implementation.
type Repository struct {
	cfg    Config
	db     *bolt.DB
	logger kitlog.Logger
}

// New creates and returns an initialized BoltDB Repository instance.
func New(cfg Config, logger kitlog.Logger) *Repository {
	return &Repository{
		cfg:    cfg,
		logger: logger,
	}
}

// Start opens the database file and makes sure all top-level buckets exist.
func (r *Repository) Start(_ context.Context) error {
	db, err := bolt.Open(r.cfg.Path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return err
	}
	if err := createBuckets(db); err != nil {
		_ = db.Close()
		return err
	}
	r.db = db

	level.Info(r.logger).Log("msg", "opened BoltDB repository", "path", r.cfg.Path)
	return nil
}

// Stop closes BoltDB database.
func (r *Repository) Stop(_ context.Context) error {
	if err := r.db.Close(); err != nil {
		return err
	}
	level.Info(r.logger).Log("msg", "closed BoltDB repository", "path", r.cfg.Path)
	return nil
}

func createBuckets(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{usersBucket, rosterItemsBucket, rosterVersionsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
}
