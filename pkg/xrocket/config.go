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

package xrocket

import (
	"path/filepath"

	"github.com/jackal-xmpp/xrocket/pkg/auth"
	"github.com/jackal-xmpp/xrocket/pkg/bosh"
	"github.com/jackal-xmpp/xrocket/pkg/c2s"
	"github.com/jackal-xmpp/xrocket/pkg/host"
	"github.com/jackal-xmpp/xrocket/pkg/log"
	"github.com/jackal-xmpp/xrocket/pkg/module/xep0092"
	"github.com/jackal-xmpp/xrocket/pkg/module/xep0199"
	"github.com/jackal-xmpp/xrocket/pkg/storage"
	"github.com/kkyr/fig"
)

// AuthConfig contains authentication backends configuration.
// LDAP and OAuth2 backends are enabled whenever their endpoint is set.
type AuthConfig struct {
	Simple auth.SimpleConfig `fig:"simple"`
	LDAP   auth.LDAPConfig   `fig:"ldap"`
	OAuth2 auth.OAuth2Config `fig:"oauth2"`
}

// ModulesConfig contains modules configuration.
type ModulesConfig struct {
	// Enabled defines total set of enabled modules
	Enabled []string `fig:"enabled"`

	// XEP-0092: Software Version
	Version xep0092.Config `fig:"version"`

	// XEP-0199: XMPP Ping
	Ping xep0199.Config `fig:"ping"`
}

// Config contains xrocket server configuration.
type Config struct {
	Logger log.Config `fig:"logger"`

	HTTPPort int `fig:"http_port" default:"6060"`

	Hosts   host.Configs   `fig:"hosts"`
	Storage storage.Config `fig:"storage"`
	Auth    AuthConfig     `fig:"auth"`

	C2S     c2s.Config    `fig:"c2s"`
	BOSH    bosh.Config   `fig:"bosh"`
	Modules ModulesConfig `fig:"modules"`
}

func loadConfig(configFile string) (*Config, error) {
	var cfg Config
	file := filepath.Base(configFile)
	dir := filepath.Dir(configFile)

	err := fig.Load(&cfg, fig.File(file), fig.Dirs(dir))
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
