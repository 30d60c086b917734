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
	"encoding/binary"

	rostermodel "github.com/jackal-xmpp/xrocket/pkg/model/roster"
	bolt "go.etcd.io/bbolt"
)

// FetchRosterVersion satisfies repository.Roster interface.
func (r *Repository) FetchRosterVersion(_ context.Context, username string) (ver int, err error) {
	err = r.db.View(func(tx *bolt.Tx) error {
		ver = rosterVersion(tx, username)
		return nil
	})
	return
}

// FetchRosterItems satisfies repository.Roster interface.
func (r *Repository) FetchRosterItems(_ context.Context, username string) ([]*rostermodel.Item, error) {
	var items []*rostermodel.Item

	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(rosterItemsBucket).Bucket([]byte(username))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var ri rostermodel.Item
			if err := ri.UnmarshalBinary(v); err != nil {
				return err
			}
			items = append(items, &ri)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FetchRosterItem satisfies repository.Roster interface.
func (r *Repository) FetchRosterItem(_ context.Context, username, jid string) (*rostermodel.Item, error) {
	var ri *rostermodel.Item

	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(rosterItemsBucket).Bucket([]byte(username))
		if b == nil {
			return nil
		}
		v := b.Get([]byte(jid))
		if v == nil {
			return nil
		}
		ri = &rostermodel.Item{}
		return ri.UnmarshalBinary(v)
	})
	if err != nil {
		return nil, err
	}
	return ri, nil
}

// UpsertRosterItem satisfies repository.Roster interface.
func (r *Repository) UpsertRosterItem(_ context.Context, ri *rostermodel.Item) (ver int, err error) {
	v, err := ri.MarshalBinary()
	if err != nil {
		return 0, err
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(rosterItemsBucket).CreateBucketIfNotExists([]byte(ri.Username))
		if err != nil {
			return err
		}
		if err := b.Put([]byte(ri.JID), v); err != nil {
			return err
		}
		ver, err = bumpRosterVersion(tx, ri.Username)
		return err
	})
	return
}

// DeleteRosterItem satisfies repository.Roster interface.
func (r *Repository) DeleteRosterItem(_ context.Context, username, jid string) (ver int, err error) {
	err = r.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(rosterItemsBucket).Bucket([]byte(username)); b != nil {
			if err := b.Delete([]byte(jid)); err != nil {
				return err
			}
		}
		ver, err = bumpRosterVersion(tx, username)
		return err
	})
	return
}

func rosterVersion(tx *bolt.Tx, username string) int {
	v := tx.Bucket(rosterVersionsBucket).Get([]byte(username))
	if len(v) != 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(v))
}

func bumpRosterVersion(tx *bolt.Tx, username string) (int, error) {
	ver := rosterVersion(tx, username) + 1

	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(ver))
	if err := tx.Bucket(rosterVersionsBucket).Put([]byte(username), b[:]); err != nil {
		return 0, err
	}
	return ver, nil
}
