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

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

var (
	// ErrInvalidCredentials will be returned by Authenticate when provided credentials do not match.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrMissingCredentials will be returned by Authenticate when username or password are not provided.
	ErrMissingCredentials = errors.New("auth: missing username or password")

	// ErrUserNotFound will be returned by Authenticate when the user does not exist.
	ErrUserNotFound = errors.New("auth: user not found")
)

const (
	usernameKey = "username"
	jidKey      = "jid"
	passwordKey = "password"
)

// Options contains the values an authentication attempt is made with.
type Options struct {
	JID        string
	Username   string
	Password   string
	SASLMech   string
	Attributes map[string]string
}

// WipePassword removes password from options.
func (o *Options) WipePassword() {
	o.Password = ""
	delete(o.Attributes, passwordKey)
}

// Merge copies credential fields into o. Password fields are never copied.
func (o *Options) Merge(creds Credentials) {
	for k, v := range creds {
		switch k {
		case passwordKey:
			continue
		case usernameKey:
			o.Username = v
		case jidKey:
			o.JID = v
		}
		if o.Attributes == nil {
			o.Attributes = make(map[string]string)
		}
		o.Attributes[k] = v
	}
}

// ResolveUsername returns options username, falling back to JID node part.
func (o *Options) ResolveUsername() string {
	if len(o.Username) > 0 {
		return o.Username
	}
	if len(o.JID) == 0 {
		return ""
	}
	j, err := jid.NewWithString(o.JID, false)
	if err != nil {
		return ""
	}
	return j.Node()
}

// Credentials contains the fields returned by a successful authentication.
type Credentials map[string]string

// Authenticator defines a pluggable credential verifier.
//
// Implementations must wipe options password before returning, regardless the result.
type Authenticator interface {
	// Name returns authenticator name.
	Name() string

	// Match tells whether or not the authenticator handles mech SASL mechanism.
	Match(mech string) bool

	// Authenticate verifies opts credentials.
	Authenticate(ctx context.Context, opts *Options) (Credentials, error)
}

func matchMechanism(mech string, mechs ...string) bool {
	for _, m := range mechs {
		if strings.EqualFold(m, mech) {
			return true
		}
	}
	return false
}
