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

package bosh

import "time"

// Config contains BOSH front configuration.
type Config struct {
	// Path is the HTTP path the front is served at.
	Path string `fig:"path" default:"/http-bind"`

	// MaxWait is the upper bound for the wait value requested by clients.
	MaxWait time.Duration `fig:"max_wait" default:"60s"`

	// MaxHold is the upper bound for the hold value requested by clients.
	MaxHold int `fig:"max_hold" default:"1"`

	// Inactivity is the amount of time a session may stay without held requests before being retired.
	Inactivity time.Duration `fig:"inactivity" default:"60s"`

	// MaxRequestSize limits the size of an incoming request body.
	MaxRequestSize int `fig:"max_request_size" default:"65536"`

	// AllowedOrigin is the value sent within Access-Control-Allow-Origin header.
	AllowedOrigin string `fig:"allowed_origin" default:"*"`
}

type sessionConfig struct {
	wait       time.Duration
	hold       int
	inactivity time.Duration
}

func (cfg Config) sessionConfig(b *body) sessionConfig {
	sc := sessionConfig{
		wait:       cfg.MaxWait,
		hold:       cfg.MaxHold,
		inactivity: cfg.Inactivity,
	}
	if b.wait > 0 && b.wait < cfg.MaxWait {
		sc.wait = b.wait
	}
	if b.hold >= 0 && b.hold < cfg.MaxHold {
		sc.hold = b.hold
	}
	return sc
}
