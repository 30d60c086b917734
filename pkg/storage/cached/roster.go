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
	"strconv"

	rostermodel "github.com/jackal-xmpp/xrocket/pkg/model/roster"
)

const (
	rosterVersionKey = "ver"
	rosterItemsKey   = "items"
)

type rosterVersion int

func (v *rosterVersion) MarshalBinary() ([]byte, error) {
	return strconv.AppendInt(nil, int64(*v), 10), nil
}

func (v *rosterVersion) UnmarshalBinary(data []byte) error {
	i, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*v = rosterVersion(i)
	return nil
}

// FetchRosterVersion satisfies repository.Roster interface.
func (r *Repository) FetchRosterVersion(ctx context.Context, username string) (int, error) {
	ns := rosterNS(username)

	var ver rosterVersion
	if r.load(ctx, ns, rosterVersionKey, &ver) {
		return int(ver), nil
	}
	v, err := r.rep.FetchRosterVersion(ctx, username)
	if err != nil {
		return 0, err
	}
	ver = rosterVersion(v)
	r.store(ctx, ns, rosterVersionKey, &ver)
	return v, nil
}

// FetchRosterItems satisfies repository.Roster interface.
func (r *Repository) FetchRosterItems(ctx context.Context, username string) ([]*rostermodel.Item, error) {
	ns := rosterNS(username)

	var items rostermodel.Items
	if r.load(ctx, ns, rosterItemsKey, &items) {
		return items, nil
	}
	items, err := r.rep.FetchRosterItems(ctx, username)
	if err != nil {
		return nil, err
	}
	r.store(ctx, ns, rosterItemsKey, &items)
	return items, nil
}

// FetchRosterItem satisfies repository.Roster interface.
func (r *Repository) FetchRosterItem(ctx context.Context, username, jid string) (*rostermodel.Item, error) {
	ns := rosterNS(username)
	key := rosterItemKey(jid)

	var ri rostermodel.Item
	if r.load(ctx, ns, key, &ri) {
		return &ri, nil
	}
	itm, err := r.rep.FetchRosterItem(ctx, username, jid)
	if err != nil || itm == nil {
		return itm, err
	}
	r.store(ctx, ns, key, itm)
	return itm, nil
}

// UpsertRosterItem satisfies repository.Roster interface.
func (r *Repository) UpsertRosterItem(ctx context.Context, ri *rostermodel.Item) (int, error) {
	if err := r.invalidate(ctx, rosterNS(ri.Username), rosterVersionKey, rosterItemsKey, rosterItemKey(ri.JID)); err != nil {
		return 0, err
	}
	ver, err := r.rep.UpsertRosterItem(ctx, ri)
	if err != nil {
		return 0, err
	}
	r.storeVersion(ctx, ri.Username, ver)
	return ver, nil
}

// DeleteRosterItem satisfies repository.Roster interface.
func (r *Repository) DeleteRosterItem(ctx context.Context, username, jid string) (int, error) {
	if err := r.invalidate(ctx, rosterNS(username), rosterVersionKey, rosterItemsKey, rosterItemKey(jid)); err != nil {
		return 0, err
	}
	ver, err := r.rep.DeleteRosterItem(ctx, username, jid)
	if err != nil {
		return 0, err
	}
	r.storeVersion(ctx, username, ver)
	return ver, nil
}

func (r *Repository) storeVersion(ctx context.Context, username string, ver int) {
	rv := rosterVersion(ver)
	r.store(ctx, rosterNS(username), rosterVersionKey, &rv)
}

func rosterNS(username string) string {
	return "ros:" + username
}

func rosterItemKey(jid string) string {
	return "itm:" + jid
}
