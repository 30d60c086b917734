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

package repository

import (
	"context"

	rostermodel "github.com/jackal-xmpp/xrocket/pkg/model/roster"
	usermodel "github.com/jackal-xmpp/xrocket/pkg/model/user"
)

// Repository represents the storage used by the server.
type Repository interface {
	User
	Roster

	// Start initializes repository.
	Start(ctx context.Context) error

	// Stop releases all underlying repository resources.
	Stop(ctx context.Context) error
}

// User defines the user account operations needed for authentication.
type User interface {
	// UpsertUser stores a user account, replacing any previous credentials.
	UpsertUser(ctx context.Context, user *usermodel.User) error

	// FetchUser returns username account or nil if there's none.
	FetchUser(ctx context.Context, username string) (*usermodel.User, error)
}

// Roster defines roster repository operations.
//
// Every write bumps the owner roster version within the same transaction,
// so that a version always identifies a single roster state.
type Roster interface {
	// FetchRosterVersion returns username roster version. Zero means no roster write ever happened.
	FetchRosterVersion(ctx context.Context, username string) (int, error)

	// FetchRosterItems returns every username roster item.
	FetchRosterItems(ctx context.Context, username string) ([]*rostermodel.Item, error)

	// FetchRosterItem returns username roster item for jid, or nil if there's none.
	FetchRosterItem(ctx context.Context, username, jid string) (*rostermodel.Item, error)

	// UpsertRosterItem stores ri and returns the new owner roster version.
	UpsertRosterItem(ctx context.Context, ri *rostermodel.Item) (int, error)

	// DeleteRosterItem removes username roster item for jid and returns the new roster version.
	DeleteRosterItem(ctx context.Context, username, jid string) (int, error)
}
