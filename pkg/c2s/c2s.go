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
	"context"

	kitlog "github.com/go-kit/log"
	"github.com/jackal-xmpp/xrocket/pkg/host"
	"golang.org/x/sync/errgroup"
)

// C2S groups every client facing front sharing a single incoming connection hub.
type C2S struct {
	hub       *InHub
	listeners []*SocketListener
	ws        *WebSocketListener
}

// New returns a new C2S instance.
func New(cfg Config, hosts *host.Hosts, router *Router, logger kitlog.Logger) *C2S {
	hub := NewInHub(cfg.Stream, hosts, router, logger)

	c := &C2S{
		hub: hub,
		ws:  NewWebSocketListener(cfg.WebSocket, hub, logger),
	}
	for _, lnCfg := range cfg.Listeners {
		c.listeners = append(c.listeners, NewSocketListener(lnCfg, hub, logger))
	}
	return c
}

// Hub returns the incoming connection hub.
func (c *C2S) Hub() *InHub {
	return c.hub
}

// WebSocket returns the websocket front.
func (c *C2S) WebSocket() *WebSocketListener {
	return c.ws
}

// Start starts the connection hub and every socket listener.
func (c *C2S) Start(ctx context.Context) error {
	if err := c.hub.Start(ctx); err != nil {
		return err
	}
	eGroup, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < len(c.listeners); i++ {
		ln := c.listeners[i]
		eGroup.Go(func() error {
			return ln.Start(egCtx)
		})
	}
	return eGroup.Wait()
}

// Stop stops accepting new connections and disconnects every active stream.
func (c *C2S) Stop(ctx context.Context) error {
	eGroup, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < len(c.listeners); i++ {
		ln := c.listeners[i]
		eGroup.Go(func() error {
			return ln.Stop(egCtx)
		})
	}
	if err := eGroup.Wait(); err != nil {
		return err
	}
	return c.hub.Stop(ctx)
}
