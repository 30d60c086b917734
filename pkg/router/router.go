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

package router

import (
	"context"
	"sync"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

// Listener receives router events.
type Listener interface {
	// Connect is invoked once an address becomes available.
	Connect(ctx context.Context, j *jid.JID)

	// Stanza is invoked for every stanza flowing downstream.
	Stanza(ctx context.Context, stanza stravaganza.Stanza)

	// Disconnect is invoked once an address is gone.
	Disconnect(ctx context.Context, j *jid.JID)
}

// Sender defines the outbound side of a router.
type Sender interface {
	// Send delivers a stanza towards its destination.
	Send(ctx context.Context, stanza stravaganza.Stanza) error
}

// Node represents a pipeline router.
type Node interface {
	Listener
	Sender

	// Subscribe registers l to receive this node's events.
	Subscribe(l Listener)

	// Bind makes every Send call to be delegated to up.
	Bind(up Node)

	// Upstream returns the node Send is delegated to, if any.
	Upstream() Node
}

// Core implements the event emitting part of a router.
// Concrete routers embed it and override the methods they need to.
type Core struct {
	mu        sync.RWMutex
	listeners []Listener
	upstream  Node
}

// Subscribe registers a listener. Subscribing the same listener twice has no effect.
// Listener dynamic type must be comparable.
func (c *Core) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.listeners {
		if existing == l {
			return
		}
	}
	c.listeners = append(c.listeners, l)
}

// Bind sets upstream node.
func (c *Core) Bind(up Node) {
	c.mu.Lock()
	c.upstream = up
	c.mu.Unlock()
}

// Upstream returns upstream node.
func (c *Core) Upstream() Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.upstream
}

// Connect emits a connect event.
func (c *Core) Connect(ctx context.Context, j *jid.JID) {
	for _, l := range c.snapshot() {
		l.Connect(ctx, j)
	}
}

// Stanza emits a stanza event.
func (c *Core) Stanza(ctx context.Context, stanza stravaganza.Stanza) {
	for _, l := range c.snapshot() {
		l.Stanza(ctx, stanza)
	}
}

// Disconnect emits a disconnect event.
func (c *Core) Disconnect(ctx context.Context, j *jid.JID) {
	for _, l := range c.snapshot() {
		l.Disconnect(ctx, j)
	}
}

// Send delegates to upstream node. It's a no-op if no upstream was bound.
func (c *Core) Send(ctx context.Context, stanza stravaganza.Stanza) error {
	up := c.Upstream()
	if up == nil {
		return nil
	}
	return up.Send(ctx, stanza)
}

func (c *Core) snapshot() []Listener {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ls := make([]Listener, len(c.listeners))
	copy(ls, c.listeners)
	return ls
}

// Chain wires down after up: down receives up's events and down's Send is delegated to up.
// It returns down, so that chains can be built fluently.
func Chain(up, down Node) (Node, error) {
	for n := up; n != nil; n = n.Upstream() {
		if n == down {
			return nil, ErrCyclicChain
		}
	}
	down.Bind(up)
	up.Subscribe(down)
	return down, nil
}
