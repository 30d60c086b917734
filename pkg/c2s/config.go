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

package c2s

import "time"

// Config contains C2S configuration.
type Config struct {
	// Listeners contains socket listeners configuration.
	Listeners ListenersConfig `fig:"listeners"`

	// WebSocket contains websocket endpoint configuration.
	WebSocket WebSocketConfig `fig:"websocket"`

	// Stream contains the configuration shared by every inbound stream.
	Stream StreamConfig `fig:"stream"`
}

// ListenersConfig defines a set of C2S listener configurations.
type ListenersConfig []ListenerConfig

// ListenerConfig contains a C2S socket listener configuration.
type ListenerConfig struct {
	// BindAddr defines listener incoming connections address.
	BindAddr string `fig:"bind_addr"`

	// Port defines listener incoming connections port.
	Port int `fig:"port" default:"5222"`

	// MaxConnections limits simultaneously accepted connections. Zero means no limit.
	MaxConnections int `fig:"max_connections"`

	// ConnectTimeout defines connection timeout.
	ConnectTimeout time.Duration `fig:"conn_timeout" default:"3s"`

	// KeepAliveTimeout defines the maximum amount of time that an inactive connection
	// would be considered alive.
	KeepAliveTimeout time.Duration `fig:"keep_alive_timeout" default:"3m"`
}

// WebSocketConfig contains C2S websocket endpoint configuration.
type WebSocketConfig struct {
	// Path is the HTTP path websocket upgrades are served at.
	Path string `fig:"path" default:"/xmpp-websocket"`

	// KeepAliveTimeout defines the maximum amount of time that an inactive connection
	// would be considered alive.
	KeepAliveTimeout time.Duration `fig:"keep_alive_timeout" default:"3m"`

	// AllowedOrigins contains the accepted Origin header values. Empty means any.
	AllowedOrigins []string `fig:"allowed_origins"`
}

// StreamConfig contains C2S stream configuration.
type StreamConfig struct {
	// SASL contains authentication related configuration.
	SASL struct {
		// Mechanisms contains enabled SASL mechanisms.
		Mechanisms []string `fig:"mechanisms" default:"[PLAIN, X-OAUTH2]"`
	} `fig:"sasl"`

	// MaxStanzaSize is the maximum size an incoming stanza may have.
	MaxStanzaSize int `fig:"max_stanza_size" default:"32768"`

	// MaxAuthFailures is the number of failed authentication attempts after which a stream is disconnected.
	MaxAuthFailures int `fig:"max_auth_failures" default:"5"`

	// AuthenticateTimeout defines authentication timeout.
	AuthenticateTimeout time.Duration `fig:"auth_timeout" default:"10s"`

	// RequestTimeout defines C2S stream request timeout.
	RequestTimeout time.Duration `fig:"req_timeout" default:"15s"`

	// RateLimit contains incoming traffic shaping configuration.
	RateLimit struct {
		// BytesPerSecond is the sustained read rate. Zero disables rate limiting.
		BytesPerSecond int `fig:"bytes_per_second"`

		// Burst is the maximum number of bytes read at once.
		Burst int `fig:"burst"`
	} `fig:"rate_limit"`
}
