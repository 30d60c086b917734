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

package storage

import (
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/jackal-xmpp/xrocket/pkg/storage/boltdb"
	cachedrepository "github.com/jackal-xmpp/xrocket/pkg/storage/cached"
	measuredrepository "github.com/jackal-xmpp/xrocket/pkg/storage/measured"
	pgsqlrepository "github.com/jackal-xmpp/xrocket/pkg/storage/pgsql"
	"github.com/jackal-xmpp/xrocket/pkg/storage/repository"
)

const (
	boltDBRepositoryType = "boltdb"
	pgSQLRepositoryType  = "pgsql"
)

// Config contains repository configuration.
type Config struct {
	Type   string                  `fig:"type" default:"boltdb"`
	BoltDB boltdb.Config           `fig:"boltdb"`
	PgSQL  pgsqlrepository.Config  `fig:"pgsql"`
	Cache  cachedrepository.Config `fig:"cache"`
}

// New returns an initialized repository given a configuration.
// Returned repository is always measured and, when a cache type is configured, cached.
func New(cfg Config, logger kitlog.Logger) (repository.Repository, error) {
	var rep repository.Repository

	switch cfg.Type {
	case boltDBRepositoryType:
		rep = boltdb.New(cfg.BoltDB, logger)
	case pgSQLRepositoryType:
		rep = pgsqlrepository.New(cfg.PgSQL, logger)
	default:
		return nil, fmt.Errorf("storage: unrecognized repository type: %s", cfg.Type)
	}
	rep = measuredrepository.New(rep)

	if len(cfg.Cache.Type) == 0 {
		return rep, nil
	}
	cached, err := cachedrepository.New(cfg.Cache, rep, logger)
	if err != nil {
		return nil, err
	}
	return cached, nil
}
