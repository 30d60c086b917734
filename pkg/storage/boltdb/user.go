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

	usermodel "github.com/jackal-xmpp/xrocket/pkg/model/user"
	bolt "go.etcd.io/bbolt"
)

// UpsertUser satisfies repository.User interface.
func (r *Repository) UpsertUser(_ context.Context, user *usermodel.User) error {
	b, err := user.MarshalBinary()
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(usersBucket).Put([]byte(user.Username), b)
	})
}

// FetchUser satisfies repository.User interface.
func (r *Repository) FetchUser(_ context.Context, username string) (*usermodel.User, error) {
	var usr *usermodel.User

	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket).Get([]byte(username))
		if b == nil {
			return nil
		}
		usr = &usermodel.User{}
		return usr.UnmarshalBinary(b)
	})
	if err != nil {
		return nil, err
	}
	return usr, nil
}
