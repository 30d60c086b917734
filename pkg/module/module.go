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

package module

import (
	"context"
	"errors"
	"sync"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/xrocket/pkg/router"
	xmpputil "github.com/jackal-xmpp/xrocket/pkg/util/xmpp"
)

// ErrNotBound is returned when a module tries to send a stanza before being bound to a router.
var ErrNotBound = errors.New("module: not bound")

// IQProcessor represents an iq processor module type.
type IQProcessor interface {
	// MatchesNamespace tells whether iq child namespace corresponds to this module.
	// The serverTarget parameter will be true in case iq target is a server entity.
	MatchesNamespace(namespace string, serverTarget bool) bool

	// ProcessIQ will be invoked whenever iq stanza should be processed by this module.
	ProcessIQ(ctx context.Context, iq *stravaganza.IQ) error
}

// Base contains the sender binding shared by every module.
type Base struct {
	mu     sync.RWMutex
	sender router.Sender
}

// Bind sets the sender used to emit stanzas.
func (b *Base) Bind(sender router.Sender) {
	b.mu.Lock()
	b.sender = sender
	b.mu.Unlock()
}

// Send emits stanza through the bound sender.
func (b *Base) Send(ctx context.Context, stanza stravaganza.Stanza) error {
	b.mu.RLock()
	sender := b.sender
	b.mu.RUnlock()

	if sender == nil {
		return ErrNotBound
	}
	return sender.Send(ctx, stanza)
}

// IsModuleIQ returns true in case stanza is a get or set iq addressed to the server or to a bare account address.
func IsModuleIQ(stanza stravaganza.Stanza) bool {
	iq, ok := stanza.(*stravaganza.IQ)
	if !ok || !(iq.IsGet() || iq.IsSet()) {
		return false
	}
	toJID := iq.ToJID()
	if toJID == nil || len(toJID.Resource()) > 0 {
		return false
	}
	return iq.ChildrenCount() > 0
}

// MatchesIQ tells whether stanza is a module iq whose payload namespace is accepted by p.
func MatchesIQ(stanza stravaganza.Stanza, p IQProcessor) bool {
	if !IsModuleIQ(stanza) {
		return false
	}
	ns := stanza.AllChildren()[0].Attribute(stravaganza.Namespace)
	return p.MatchesNamespace(ns, xmpputil.IsServerAddressed(stanza))
}

// ProcessIQ hands stanza over to p. It reports the stanza as handled whenever it is an iq.
func ProcessIQ(ctx context.Context, stanza stravaganza.Stanza, p IQProcessor) (bool, error) {
	iq, ok := stanza.(*stravaganza.IQ)
	if !ok {
		return false, nil
	}
	return true, p.ProcessIQ(ctx, iq)
}
