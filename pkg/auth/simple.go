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
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"io/ioutil"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	usermodel "github.com/jackal-xmpp/xrocket/pkg/model/user"
	"github.com/jackal-xmpp/xrocket/pkg/storage/repository"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/secure/precis"
	"gopkg.in/yaml.v2"
)

const (
	simpleName = "simple"

	saltLen   = 16
	derKeyLen = 32
)

// SimpleConfig contains simple authenticator configuration.
type SimpleConfig struct {
	UsersFile      string `fig:"users_file"`
	IterationCount int    `fig:"iteration_count" default:"4096"`
}

// Simple authenticates users against the repository stored password hashes.
type Simple struct {
	cfg    SimpleConfig
	rep    repository.User
	logger kitlog.Logger
}

// NewSimple returns a new repository backed authenticator.
func NewSimple(cfg SimpleConfig, rep repository.User, logger kitlog.Logger) *Simple {
	if cfg.IterationCount <= 0 {
		cfg.IterationCount = 4096
	}
	return &Simple{
		cfg:    cfg,
		rep:    rep,
		logger: logger,
	}
}

// Name satisfies Authenticator interface.
func (s *Simple) Name() string { return simpleName }

// Match satisfies Authenticator interface.
func (s *Simple) Match(mech string) bool {
	return matchMechanism(mech, "PLAIN")
}

// Authenticate satisfies Authenticator interface.
func (s *Simple) Authenticate(ctx context.Context, opts *Options) (Credentials, error) {
	defer opts.WipePassword()

	username, password, err := normalizeCredentials(opts.ResolveUsername(), opts.Password)
	if err != nil {
		return nil, err
	}
	usr, err := s.rep.FetchUser(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "auth: failed to fetch user")
	}
	if usr == nil {
		return nil, ErrUserNotFound
	}
	salt, err := base64.RawStdEncoding.DecodeString(usr.Password.Salt)
	if err != nil {
		return nil, errors.Wrap(err, "auth: malformed stored salt")
	}
	stored, err := base64.RawStdEncoding.DecodeString(usr.Password.SHA256)
	if err != nil {
		return nil, errors.Wrap(err, "auth: malformed stored password")
	}
	derived := pbkdf2.Key([]byte(password), salt, usr.Password.IterationCount, derKeyLen, sha256.New)
	if subtle.ConstantTimeCompare(derived, stored) != 1 {
		return nil, ErrInvalidCredentials
	}
	return Credentials{usernameKey: username}, nil
}

// AddUser stores a new user deriving its password hash.
func (s *Simple) AddUser(ctx context.Context, username, password string) error {
	username, password, err := normalizeCredentials(username, password)
	if err != nil {
		return err
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	usr := &usermodel.User{Username: username}
	usr.Password.Salt = base64.RawStdEncoding.EncodeToString(salt)
	usr.Password.IterationCount = s.cfg.IterationCount
	usr.Password.SHA256 = base64.RawStdEncoding.EncodeToString(
		pbkdf2.Key([]byte(password), salt, s.cfg.IterationCount, derKeyLen, sha256.New),
	)
	return s.rep.UpsertUser(ctx, usr)
}

type usersFile struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"users"`
}

// LoadUsersFile stores every user declared in configured users file.
func (s *Simple) LoadUsersFile(ctx context.Context) error {
	if len(s.cfg.UsersFile) == 0 {
		return nil
	}
	b, err := ioutil.ReadFile(s.cfg.UsersFile)
	if err != nil {
		return err
	}
	var uf usersFile
	if err := yaml.Unmarshal(b, &uf); err != nil {
		return errors.Wrap(err, "auth: malformed users file")
	}
	for _, u := range uf.Users {
		if err := s.AddUser(ctx, u.Username, u.Password); err != nil {
			return errors.Wrapf(err, "auth: failed to add user %s", u.Username)
		}
	}
	level.Info(s.logger).Log("msg", "loaded users file", "path", s.cfg.UsersFile, "count", len(uf.Users))
	return nil
}

func normalizeCredentials(username, password string) (string, string, error) {
	if len(username) == 0 || len(password) == 0 {
		return "", "", ErrMissingCredentials
	}
	u, err := precis.UsernameCaseMapped.String(username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	p, err := precis.OpaqueString.String(password)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	return u, p, nil
}
