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

package pgsqlrepository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	_ "github.com/lib/pq" // PostgreSQL driver
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// conn is satisfied by both *sql.DB and *sql.Tx.
type conn interface {
	sq.BaseRunner
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Config contains PgSQL configuration value.
type Config struct {
	Host            string        `fig:"host" default:"localhost:5432"`
	User            string        `fig:"user"`
	Password        string        `fig:"password"`
	Database        string        `fig:"database" default:"xrocket"`
	SSLMode         string        `fig:"ssl_mode" default:"disable"`
	MaxOpenConns    int           `fig:"max_open_conns"`
	MaxIdleConns    int           `fig:"max_idle_conns"`
	ConnMaxLifetime time.Duration `fig:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `fig:"conn_max_idle_time"`
}

func (cfg Config) dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s", cfg.User, cfg.Password, cfg.Host, cfg.Database, cfg.SSLMode)
}

// Repository represents a PgSQL repository implementation.
type Repository struct {
	cfg    Config
	db     *sql.DB
	logger kitlog.Logger
}

// New creates and returns an initialized PgSQL Repository instance.
func New(cfg Config, logger kitlog.Logger) *Repository {
	return &Repository{
		cfg:    cfg,
		logger: logger,
	}
}

// Start opens the connection pool and verifies database is reachable.
func (r *Repository) Start(ctx context.Context) error {
	db, err := sql.Open("postgres", r.cfg.dsn())
	if err != nil {
		return fmt.Errorf("pgsqlrepository: failed to start PgSQL connection: %v", err)
	}
	db.SetMaxIdleConns(r.cfg.MaxIdleConns)
	db.SetMaxOpenConns(r.cfg.MaxOpenConns)
	db.SetConnMaxIdleTime(r.cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(r.cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("pgsqlrepository: unable to verify PgSQL connection: %v", err)
	}
	r.db = db

	level.Info(r.logger).Log("msg", "dialed PgSQL connection", "host", r.cfg.Host)
	return nil
}

// Stop closes PgSQL database and prevents new queries from starting.
func (r *Repository) Stop(_ context.Context) error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("pgsqlrepository: failed to close PgSQL connection: %v", err)
	}
	level.Info(r.logger).Log("msg", "closed PgSQL connection", "host", r.cfg.Host)
	return nil
}

func (r *Repository) inTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			level.Warn(r.logger).Log("msg", "failed to rollback PgSQL transaction", "err", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (r *Repository) closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		level.Warn(r.logger).Log("msg", "failed to close SQL rows", "err", err)
	}
}
