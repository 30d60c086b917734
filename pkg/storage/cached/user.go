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

	usermodel "github.com/jackal-xmpp/xrocket/pkg/model/user"
)

const userKey = "usr"

// UpsertUser satisfies repository.User interface.
func (r *Repository) UpsertUser(ctx context.Context, user *usermodel.User) error {
	if err := r.invalidate(ctx, userNS(user.Username), userKey); err != nil {
		return err
	}
	return r.rep.UpsertUser(ctx, user)
}

// FetchUser satisfies repository.User interface.
func (r *Repository) FetchUser(ctx context.Context, username string) (*usermodel.User, error) {
	ns := userNS(username)

	var usr usermodel.User
	if r.load(ctx, ns, userKey, &usr) {
		return &usr, nil
	}
	u, err := r.rep.FetchUser(ctx, username)
	if err != nil || u == nil {
		return u, err
	}
	r.store(ctx, ns, userKey, u)
	return u, nil
}

func userNS(username string) string {
	return "usr:" + username
}
