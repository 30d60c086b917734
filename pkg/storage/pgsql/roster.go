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

	sq "github.com/Masterminds/squirrel"
	rostermodel "github.com/jackal-xmpp/xrocket/pkg/model/roster"
	"github.com/lib/pq"
)

const (
	rosterVersionsTableName = "roster_versions"
	rosterItemsTableName    = "roster_items"
)

var rosterItemColumns = []string{"username", "jid", "name", "subscription", "groups", "ask"}

// FetchRosterVersion satisfies repository.Roster interface.
func (r *Repository) FetchRosterVersion(ctx context.Context, username string) (int, error) {
	var ver int
	err := sq.Select("ver").
		From(rosterVersionsTableName).
		Where(sq.Eq{"username": username}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&ver)

	switch err {
	case nil:
		return ver, nil
	case sql.ErrNoRows:
		return 0, nil
	default:
		return 0, err
	}
}

// FetchRosterItems satisfies repository.Roster interface.
func (r *Repository) FetchRosterItems(ctx context.Context, username string) ([]*rostermodel.Item, error) {
	rows, err := sq.Select(rosterItemColumns...).
		From(rosterItemsTableName).
		Where(sq.Eq{"username": username}).
		OrderBy("created_at").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer r.closeRows(rows)

	var ret []*rostermodel.Item
	for rows.Next() {
		var ri rostermodel.Item
		if err := scanRosterItem(rows, &ri); err != nil {
			return nil, err
		}
		ret = append(ret, &ri)
	}
	return ret, rows.Err()
}

// FetchRosterItem satisfies repository.Roster interface.
func (r *Repository) FetchRosterItem(ctx context.Context, username, jid string) (*rostermodel.Item, error) {
	row := sq.Select(rosterItemColumns...).
		From(rosterItemsTableName).
		Where(sq.And{sq.Eq{"username": username}, sq.Eq{"jid": jid}}).
		RunWith(r.db).
		QueryRowContext(ctx)

	var ri rostermodel.Item
	switch err := scanRosterItem(row, &ri); err {
	case nil:
		return &ri, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, err
	}
}

// UpsertRosterItem satisfies repository.Roster interface.
func (r *Repository) UpsertRosterItem(ctx context.Context, ri *rostermodel.Item) (ver int, err error) {
	err = r.inTransaction(ctx, func(tx *sql.Tx) error {
		_, err := sq.Insert(rosterItemsTableName).
			Columns(rosterItemColumns...).
			Values(ri.Username, ri.JID, ri.Name, ri.Subscription, pq.Array(ri.Groups), ri.Ask).
			Suffix("ON CONFLICT (username, jid) DO UPDATE SET name = EXCLUDED.name, subscription = EXCLUDED.subscription, groups = EXCLUDED.groups, ask = EXCLUDED.ask").
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		ver, err = touchRosterVersion(ctx, tx, ri.Username)
		return err
	})
	return
}

// DeleteRosterItem satisfies repository.Roster interface.
func (r *Repository) DeleteRosterItem(ctx context.Context, username, jid string) (ver int, err error) {
	err = r.inTransaction(ctx, func(tx *sql.Tx) error {
		_, err := sq.Delete(rosterItemsTableName).
			Where(sq.And{sq.Eq{"username": username}, sq.Eq{"jid": jid}}).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		ver, err = touchRosterVersion(ctx, tx, username)
		return err
	})
	return
}

func touchRosterVersion(ctx context.Context, c conn, username string) (int, error) {
	var ver int
	err := sq.Insert(rosterVersionsTableName).
		Columns("username").
		Values(username).
		Suffix("ON CONFLICT (username) DO UPDATE SET ver = roster_versions.ver + 1 RETURNING ver").
		RunWith(c).
		QueryRowContext(ctx).
		Scan(&ver)
	return ver, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRosterItem(s rowScanner, ri *rostermodel.Item) error {
	return s.Scan(&ri.Username, &ri.JID, &ri.Name, &ri.Subscription, pq.Array(&ri.Groups), &ri.Ask)
}
