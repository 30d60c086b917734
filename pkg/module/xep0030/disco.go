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

package xep0030

import (
	"context"
	"sort"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/jackal-xmpp/xrocket/pkg/module"
	xmpputil "github.com/jackal-xmpp/xrocket/pkg/util/xmpp"
)

const (
	discoInfoNamespace  = "http://jabber.org/protocol/disco#info"
	discoItemsNamespace = "http://jabber.org/protocol/disco#items"
)

const (
	// ModuleName represents disco module name.
	ModuleName = "disco"

	// XEPNumber represents disco XEP number.
	XEPNumber = "0030"
)

// Identity represents a disco entity identity.
type Identity struct {
	Category string
	Type     string
	Name     string
}

var (
	serverIdentity  = Identity{Category: "server", Type: "im", Name: "xrocket"}
	accountIdentity = Identity{Category: "account", Type: "registered"}
)

// Disco represents a disco info (XEP-0030) module type.
type Disco struct {
	module.Base

	logger kitlog.Logger

	mu        sync.RWMutex
	providers []featureProvider
}

// New returns a new initialized disco module instance.
func New(logger kitlog.Logger) *Disco {
	return &Disco{logger: logger}
}

// RegisterProvider adds a source of server disco features.
func (d *Disco) RegisterProvider(fp featureProvider) {
	d.mu.Lock()
	d.providers = append(d.providers, fp)
	d.mu.Unlock()
}

// Name returns disco module name.
func (d *Disco) Name() string { return ModuleName }

// Features returns disco features.
func (d *Disco) Features() []string {
	return []string{discoInfoNamespace, discoItemsNamespace}
}

// Initialize initializes disco module.
func (d *Disco) Initialize(_ context.Context) error {
	level.Info(d.logger).Log("msg", "initialized disco module", "xep", XEPNumber)
	return nil
}

// Match tells whether stanza is a disco request addressed to the server or to an account.
func (d *Disco) Match(stanza stravaganza.Stanza) bool {
	return module.MatchesIQ(stanza, d)
}

// Handle processes a disco request.
func (d *Disco) Handle(ctx context.Context, stanza stravaganza.Stanza) (bool, error) {
	return module.ProcessIQ(ctx, stanza, d)
}

// MatchesNamespace tells whether namespace matches disco module.
func (d *Disco) MatchesNamespace(namespace string, _ bool) bool {
	return namespace == discoInfoNamespace || namespace == discoItemsNamespace
}

// ProcessIQ process a disco iq.
func (d *Disco) ProcessIQ(ctx context.Context, iq *stravaganza.IQ) error {
	switch {
	case iq.IsGet():
		return d.getDisco(ctx, iq)
	case iq.IsSet():
		return d.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.Forbidden))
	}
	return nil
}

func (d *Disco) getDisco(ctx context.Context, iq *stravaganza.IQ) error {
	q := iq.Child("query")
	if q == nil {
		return d.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.BadRequest))
	}
	if node := q.Attribute("node"); len(node) > 0 {
		return d.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.ItemNotFound))
	}
	serverTarget := xmpputil.IsServerAddressed(iq)
	if !serverTarget && !isAccountOwner(iq.FromJID(), iq.ToJID()) {
		return d.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.SubscriptionRequired))
	}
	switch q.Attribute(stravaganza.Namespace) {
	case discoInfoNamespace:
		identity, features := accountIdentity, d.Features()
		if serverTarget {
			identity, features = serverIdentity, d.serverFeatures()
		}
		return d.Send(ctx, xmpputil.MakeResultIQ(iq, infoQuery(identity, features)))

	case discoItemsNamespace:
		qb := stravaganza.NewBuilder("query").
			WithAttribute(stravaganza.Namespace, discoItemsNamespace)
		return d.Send(ctx, xmpputil.MakeResultIQ(iq, qb.Build()))

	default:
		return d.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.BadRequest))
	}
}

func (d *Disco) serverFeatures() []string {
	d.mu.RLock()
	providers := make([]featureProvider, len(d.providers))
	copy(providers, d.providers)
	d.mu.RUnlock()

	set := map[string]struct{}{
		discoInfoNamespace:  {},
		discoItemsNamespace: {},
	}
	for _, fp := range providers {
		for _, f := range fp.Features() {
			set[f] = struct{}{}
		}
	}
	ret := make([]string, 0, len(set))
	for f := range set {
		ret = append(ret, f)
	}
	sort.Strings(ret)
	return ret
}

func infoQuery(identity Identity, features []string) stravaganza.Element {
	sb := stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, discoInfoNamespace)

	identityB := stravaganza.NewBuilder("identity")
	identityB.WithAttribute("category", identity.Category)
	if len(identity.Type) > 0 {
		identityB.WithAttribute("type", identity.Type)
	}
	if len(identity.Name) > 0 {
		identityB.WithAttribute("name", identity.Name)
	}
	sb.WithChild(identityB.Build())

	for _, feature := range features {
		sb.WithChild(
			stravaganza.NewBuilder("feature").
				WithAttribute("var", feature).
				Build(),
		)
	}
	return sb.Build()
}

func isAccountOwner(fromJID, toJID *jid.JID) bool {
	if fromJID == nil || toJID == nil {
		return false
	}
	return fromJID.ToBareJID().String() == toJID.ToBareJID().String()
}
