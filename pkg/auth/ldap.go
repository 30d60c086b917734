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
	"fmt"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
)

const ldapName = "ldap"

// LDAPConfig contains LDAP authenticator configuration.
type LDAPConfig struct {
	Addr           string        `fig:"addr"`
	BindDN         string        `fig:"bind_dn"`
	BindPassword   string        `fig:"bind_password"`
	BaseDN         string        `fig:"base_dn"`
	Filter         string        `fig:"filter" default:"(uid=%s)"`
	UserAttributes []string      `fig:"user_attributes"`
	Timeout        time.Duration `fig:"timeout" default:"5s"`
}

type ldapDialFn func(addr string, timeout time.Duration) (ldapConn, error)

type ldapResult struct {
	creds Credentials
	err   error
}

// LDAP authenticates users performing a search and bind against a directory server.
type LDAP struct {
	cfg    LDAPConfig
	dialFn ldapDialFn
	cb     *gobreaker.CircuitBreaker
	logger kitlog.Logger
}

// NewLDAP returns a new LDAP authenticator.
func NewLDAP(cfg LDAPConfig, logger kitlog.Logger) *LDAP {
	return &LDAP{
		cfg:    cfg,
		dialFn: dialLDAP,
		cb:     gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: ldapName}),
		logger: logger,
	}
}

// Name satisfies Authenticator interface.
func (l *LDAP) Name() string { return ldapName }

// Match satisfies Authenticator interface.
func (l *LDAP) Match(mech string) bool {
	return matchMechanism(mech, "PLAIN")
}

// Authenticate satisfies Authenticator interface.
func (l *LDAP) Authenticate(_ context.Context, opts *Options) (Credentials, error) {
	defer opts.WipePassword()

	username := opts.ResolveUsername()
	password := opts.Password
	if len(username) == 0 || len(password) == 0 {
		return nil, ErrMissingCredentials
	}
	// invalid credentials are reported through the result and never count as breaker failures
	res, err := l.cb.Execute(func() (interface{}, error) {
		return l.searchAndBind(username, password)
	})
	if err != nil {
		return nil, err
	}
	lr := res.(*ldapResult)
	return lr.creds, lr.err
}

func (l *LDAP) searchAndBind(username, password string) (*ldapResult, error) {
	conn, err := l.dialFn(l.cfg.Addr, l.cfg.Timeout)
	if err != nil {
		return nil, errors.Wrap(err, "auth: ldap dial")
	}
	defer conn.Close()

	if len(l.cfg.BindDN) > 0 {
		if err := conn.Bind(l.cfg.BindDN, l.cfg.BindPassword); err != nil {
			return nil, errors.Wrap(err, "auth: ldap service bind")
		}
	}
	attrs := append([]string{"dn"}, l.cfg.UserAttributes...)
	req := ldap.NewSearchRequest(
		l.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		fmt.Sprintf(l.cfg.Filter, ldap.EscapeFilter(username)),
		attrs,
		nil,
	)
	sr, err := conn.Search(req)
	if err != nil {
		return nil, errors.Wrap(err, "auth: ldap search")
	}
	switch len(sr.Entries) {
	case 0:
		return &ldapResult{err: ErrUserNotFound}, nil
	case 1:
		break
	default:
		level.Warn(l.logger).Log("msg", "ambiguous ldap search result", "username", username, "entries", len(sr.Entries))
		return &ldapResult{err: ErrInvalidCredentials}, nil
	}
	entry := sr.Entries[0]

	if err := conn.Bind(entry.DN, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return &ldapResult{err: ErrInvalidCredentials}, nil
		}
		return nil, errors.Wrap(err, "auth: ldap user bind")
	}
	creds := Credentials{usernameKey: username, "dn": entry.DN}
	for _, attr := range l.cfg.UserAttributes {
		if v := entry.GetAttributeValue(attr); len(v) > 0 {
			creds[attr] = v
		}
	}
	return &ldapResult{creds: creds}, nil
}

type ldapConnAdapter struct {
	conn *ldap.Conn
}

func dialLDAP(addr string, timeout time.Duration) (ldapConn, error) {
	conn, err := ldap.DialURL(addr)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		conn.SetTimeout(timeout)
	}
	return &ldapConnAdapter{conn: conn}, nil
}

func (c *ldapConnAdapter) Bind(username, password string) error {
	return c.conn.Bind(username, password)
}

func (c *ldapConnAdapter) Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error) {
	return c.conn.Search(searchRequest)
}

func (c *ldapConnAdapter) Close() {
	c.conn.Close()
}
