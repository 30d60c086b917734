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
	usermodel "github.com/jackal-xmpp/xrocket/pkg/model/user"
)

const usersTableName = "users"

var userColumns = []string{"username", "h_sha_256", "salt", "iteration_count"}

// UpsertUser satisfies repository.User interface.
func (r *Repository) UpsertUser(ctx context.Context, user *usermodel.User) error {
	_, err := sq.Insert(usersTableName).
		Columns(userColumns...).
		Values(user.Username, user.Password.SHA256, user.Password.Salt, user.Password.IterationCount).
		Suffix("ON CONFLICT (username) DO UPDATE SET h_sha_256 = EXCLUDED.h_sha_256, salt = EXCLUDED.salt, iteration_count = EXCLUDED.iteration_count").
		RunWith(r.db).
		ExecContext(ctx)
	return err
}

// FetchUser satisfies repository.User interface.
func (r *Repository) FetchUser(ctx context.Context, username string) (*usermodel.User, error) {
	var usr usermodel.User

	err := sq.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"username": username}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&usr.Username, &usr.Password.SHA256, &usr.Password.Salt, &usr.Password.IterationCount)

	switch err {
	case nil:
		return &usr, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, err
	}
}
