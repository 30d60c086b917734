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
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

const (
	oauth2Name = "oauth2"

	// OAuth2Mechanism is the SASL mechanism name used to carry bearer tokens.
	OAuth2Mechanism = "X-OAUTH2"
)

// OAuth2Config contains OAuth2 authenticator configuration.
type OAuth2Config struct {
	UserInfoURL   string        `fig:"userinfo_url"`
	UsernameClaim string        `fig:"username_claim" default:"preferred_username"`
	Timeout       time.Duration `fig:"timeout" default:"5s"`
}

// OAuth2 validates bearer tokens against an OAuth2 user info endpoint.
// The access token is carried in options password field.
type OAuth2 struct {
	cfg    OAuth2Config
	cb     *gobreaker.CircuitBreaker
	logger kitlog.Logger
}

// NewOAuth2 returns a new OAuth2 authenticator.
func NewOAuth2(cfg OAuth2Config, logger kitlog.Logger) *OAuth2 {
	if len(cfg.UsernameClaim) == 0 {
		cfg.UsernameClaim = "preferred_username"
	}
	return &OAuth2{
		cfg:    cfg,
		cb:     gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: oauth2Name}),
		logger: logger,
	}
}

// Name satisfies Authenticator interface.
func (o *OAuth2) Name() string { return oauth2Name }

// Match satisfies Authenticator interface.
func (o *OAuth2) Match(mech string) bool {
	return matchMechanism(mech, OAuth2Mechanism)
}

// Authenticate satisfies Authenticator interface.
func (o *OAuth2) Authenticate(ctx context.Context, opts *Options) (Credentials, error) {
	defer opts.WipePassword()

	token := opts.Password
	if len(token) == 0 {
		return nil, ErrMissingCredentials
	}
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}
	res, err := o.cb.Execute(func() (interface{}, error) {
		return o.fetchUserInfo(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	claims := res.(map[string]interface{})
	if claims == nil {
		return nil, ErrInvalidCredentials
	}
	claimed, _ := claims[o.cfg.UsernameClaim].(string)
	if len(claimed) == 0 {
		level.Warn(o.logger).Log("msg", "missing username claim", "claim", o.cfg.UsernameClaim)
		return nil, ErrInvalidCredentials
	}
	username := opts.ResolveUsername()
	if len(username) > 0 && username != claimed {
		return nil, ErrInvalidCredentials
	}
	creds := Credentials{usernameKey: claimed}
	if email, ok := claims["email"].(string); ok {
		creds["email"] = email
	}
	return creds, nil
}

// fetchUserInfo returns a nil map when token is rejected by the provider.
func (o *OAuth2) fetchUserInfo(ctx context.Context, token string) (map[string]interface{}, error) {
	cl := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.cfg.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "auth: oauth2 user info request")
	}
	defer func() {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		break
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, nil
	default:
		return nil, fmt.Errorf("auth: oauth2 user info unexpected status code: %d", resp.StatusCode)
	}
	var claims map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, errors.Wrap(err, "auth: oauth2 malformed user info")
	}
	if claims == nil {
		claims = map[string]interface{}{}
	}
	return claims, nil
}
