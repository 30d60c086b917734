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

import (
	"net/http"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"
	"github.com/jackal-xmpp/xrocket/pkg/transport"
)

const xmppSubprotocol = "xmpp"

// WebSocketListener upgrades incoming HTTP requests into C2S websocket streams.
type WebSocketListener struct {
	cfg      WebSocketConfig
	srv      connServer
	upgrader *websocket.Upgrader
	logger   kitlog.Logger
}

// NewWebSocketListener returns a new C2S websocket listener.
func NewWebSocketListener(cfg WebSocketConfig, srv connServer, logger kitlog.Logger) *WebSocketListener {
	l := &WebSocketListener{
		cfg:    cfg,
		srv:    srv,
		logger: logger,
	}
	l.upgrader = &websocket.Upgrader{
		Subprotocols: []string{xmppSubprotocol},
		CheckOrigin:  l.checkOrigin,
	}
	return l
}

// Path returns the HTTP path the listener should be mounted at.
func (l *WebSocketListener) Path() string {
	return l.cfg.Path
}

// ServeHTTP satisfies http.Handler interface.
func (l *WebSocketListener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if !hasXMPPSubprotocol(r) {
		http.Error(w, "xmpp subprotocol required", http.StatusBadRequest)
		return
	}
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		level.Warn(l.logger).Log("msg", "failed to upgrade websocket connection", "err", err)
		return
	}
	level.Debug(l.logger).Log("msg", "received C2S websocket connection", "remote_address", conn.RemoteAddr().String())

	l.srv.Serve(transport.NewWebSocketTransport(conn, l.cfg.KeepAliveTimeout))
}

func (l *WebSocketListener) checkOrigin(r *http.Request) bool {
	if len(l.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, o := range l.cfg.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

func hasXMPPSubprotocol(r *http.Request) bool {
	for _, p := range websocket.Subprotocols(r) {
		if p == xmppSubprotocol {
			return true
		}
	}
	return false
}
