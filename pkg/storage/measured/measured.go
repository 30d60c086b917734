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

package measuredrepository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackal-xmpp/xrocket/pkg/instance"
	rostermodel "github.com/jackal-xmpp/xrocket/pkg/model/roster"
	usermodel "github.com/jackal-xmpp/xrocket/pkg/model/user"
	"github.com/jackal-xmpp/xrocket/pkg/storage/repository"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	userEntity   = "user"
	rosterEntity = "roster"
)

const (
	upsertOp = "upsert"
	fetchOp  = "fetch"
	deleteOp = "delete"
)

// Repository wraps a repository.Repository reporting every operation outcome and latency.
type Repository struct {
	rep repository.Repository
}

// New returns a new initialized measured Repository.
func New(rep repository.Repository) *Repository {
	return &Repository{rep: rep}
}

// Start initializes repository.
func (m *Repository) Start(ctx context.Context) error {
	return m.rep.Start(ctx)
}

// Stop releases all underlying repository resources.
func (m *Repository) Stop(ctx context.Context) error {
	return m.rep.Stop(ctx)
}

// UpsertUser satisfies repository.User interface.
func (m *Repository) UpsertUser(ctx context.Context, user *usermodel.User) error {
	return measure(userEntity, upsertOp, func() error {
		return m.rep.UpsertUser(ctx, user)
	})
}

// FetchUser satisfies repository.User interface.
func (m *Repository) FetchUser(ctx context.Context, username string) (usr *usermodel.User, err error) {
	err = measure(userEntity, fetchOp, func() error {
		usr, err = m.rep.FetchUser(ctx, username)
		return err
	})
	return
}

// FetchRosterVersion satisfies repository.Roster interface.
func (m *Repository) FetchRosterVersion(ctx context.Context, username string) (ver int, err error) {
	err = measure(rosterEntity, fetchOp, func() error {
		ver, err = m.rep.FetchRosterVersion(ctx, username)
		return err
	})
	return
}

// FetchRosterItems satisfies repository.Roster interface.
func (m *Repository) FetchRosterItems(ctx context.Context, username string) (items []*rostermodel.Item, err error) {
	err = measure(rosterEntity, fetchOp, func() error {
		items, err = m.rep.FetchRosterItems(ctx, username)
		return err
	})
	return
}

// FetchRosterItem satisfies repository.Roster interface.
func (m *Repository) FetchRosterItem(ctx context.Context, username, jid string) (ri *rostermodel.Item, err error) {
	err = measure(rosterEntity, fetchOp, func() error {
		ri, err = m.rep.FetchRosterItem(ctx, username, jid)
		return err
	})
	return
}

// UpsertRosterItem satisfies repository.Roster interface.
func (m *Repository) UpsertRosterItem(ctx context.Context, ri *rostermodel.Item) (ver int, err error) {
	err = measure(rosterEntity, upsertOp, func() error {
		ver, err = m.rep.UpsertRosterItem(ctx, ri)
		return err
	})
	return
}

// DeleteRosterItem satisfies repository.Roster interface.
func (m *Repository) DeleteRosterItem(ctx context.Context, username, jid string) (ver int, err error) {
	err = measure(rosterEntity, deleteOp, func() error {
		ver, err = m.rep.DeleteRosterItem(ctx, username, jid)
		return err
	})
	return
}

func measure(entity, op string, fn func() error) error {
	t0 := time.Now()
	err := fn()
	d := time.Since(t0).Seconds()

	repOperations.With(prometheus.Labels{
		"instance": instance.ID(),
		"entity":   entity,
		"op":       op,
		"success":  strconv.FormatBool(err == nil),
	}).Inc()
	repOperationDuration.With(prometheus.Labels{
		"instance": instance.ID(),
		"entity":   entity,
		"op":       op,
	}).Observe(d)
	return err
}
