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

package roster

import (
	"context"
	"fmt"
	"strconv"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	rostermodel "github.com/jackal-xmpp/xrocket/pkg/model/roster"
	"github.com/jackal-xmpp/xrocket/pkg/module"
	"github.com/jackal-xmpp/xrocket/pkg/storage/repository"
	xmpputil "github.com/jackal-xmpp/xrocket/pkg/util/xmpp"
)

const rosterNamespace = "jabber:iq:roster"

const (
	// ModuleName represents roster module name.
	ModuleName = "roster"
)

// Roster represents a roster module type.
type Roster struct {
	module.Base

	rep     repository.Roster
	clients clientsProvider
	logger  kitlog.Logger
}

// New returns a new initialized Roster instance.
func New(rep repository.Roster, clients clientsProvider, logger kitlog.Logger) *Roster {
	return &Roster{
		rep:     rep,
		clients: clients,
		logger:  logger,
	}
}

// Name returns roster module name.
func (r *Roster) Name() string { return ModuleName }

// Initialize initializes roster module.
func (r *Roster) Initialize(_ context.Context) error {
	level.Info(r.logger).Log("msg", "initialized roster module", "xep", "roster")
	return nil
}

// Match tells whether stanza is a roster request.
func (r *Roster) Match(stanza stravaganza.Stanza) bool {
	return module.MatchesIQ(stanza, r)
}

// Handle processes a roster request.
func (r *Roster) Handle(ctx context.Context, stanza stravaganza.Stanza) (bool, error) {
	return module.ProcessIQ(ctx, stanza, r)
}

// MatchesNamespace tells whether namespace matches roster module.
func (r *Roster) MatchesNamespace(namespace string, serverTarget bool) bool {
	if serverTarget {
		return false
	}
	return namespace == rosterNamespace
}

// ProcessIQ process a roster iq.
func (r *Roster) ProcessIQ(ctx context.Context, iq *stravaganza.IQ) error {
	fromJID := iq.FromJID()
	if fromJID == nil || fromJID.ToBareJID().String() != iq.ToJID().ToBareJID().String() {
		return r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.Forbidden))
	}
	switch {
	case iq.IsGet():
		return r.sendRoster(ctx, iq)
	case iq.IsSet():
		return r.updateRoster(ctx, iq)
	}
	return nil
}

func (r *Roster) sendRoster(ctx context.Context, iq *stravaganza.IQ) error {
	q := iq.ChildNamespace("query", rosterNamespace)
	if q == nil || q.ChildrenCount() > 0 {
		return r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.BadRequest))
	}
	usrJID := iq.FromJID()

	// check against current roster version
	ver, err := r.rep.FetchRosterVersion(ctx, usrJID.Node())
	if err != nil {
		_ = r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.InternalServerError))
		return err
	}
	// return empty response in case version matches...
	if ver > 0 && ver == parseVer(q.Attribute("ver")) {
		return r.Send(ctx, xmpputil.MakeResultIQ(iq, nil))
	}
	// ...return whole roster otherwise
	items, err := r.rep.FetchRosterItems(ctx, usrJID.Node())
	if err != nil {
		_ = r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.InternalServerError))
		return err
	}
	sb := stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, rosterNamespace).
		WithAttribute("ver", formatVer(ver))
	for _, item := range items {
		sb.WithChild(item.Element())
	}
	if err := r.Send(ctx, xmpputil.MakeResultIQ(iq, sb.Build())); err != nil {
		return err
	}
	level.Debug(r.logger).Log("msg", "fetched user roster", "jid", usrJID.String(), "items", len(items), "xep", "roster")
	return nil
}

func (r *Roster) updateRoster(ctx context.Context, iq *stravaganza.IQ) error {
	q := iq.ChildNamespace("query", rosterNamespace)
	if q == nil {
		return r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.BadRequest))
	}
	items := q.Children("item")
	if len(items) != 1 {
		return r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.BadRequest))
	}
	ri, err := rostermodel.NewItem(items[0])
	if err != nil {
		return r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.BadRequest))
	}
	usrJID := iq.FromJID().ToBareJID()
	ri.Username = usrJID.Node()

	switch ri.Subscription {
	case rostermodel.SubscriptionRemove:
		found, err := r.removeItem(ctx, ri, usrJID)
		if err != nil {
			_ = r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.InternalServerError))
			return err
		}
		if !found {
			return r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.ItemNotFound))
		}
	default:
		if err := r.updateItem(ctx, ri, usrJID); err != nil {
			_ = r.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.InternalServerError))
			return err
		}
	}
	return r.Send(ctx, xmpputil.MakeResultIQ(iq, nil))
}

func (r *Roster) updateItem(ctx context.Context, ri *rostermodel.Item, usrJID *jid.JID) error {
	usrRi, err := r.rep.FetchRosterItem(ctx, ri.Username, ri.JID)
	if err != nil {
		return err
	}
	if usrRi != nil {
		// update roster item
		if len(ri.Name) > 0 {
			usrRi.Name = ri.Name
		}
		usrRi.Groups = ri.Groups
	} else {
		usrRi = &rostermodel.Item{
			Username:     ri.Username,
			JID:          ri.JID,
			Name:         ri.Name,
			Subscription: rostermodel.SubscriptionNone,
			Groups:       ri.Groups,
		}
	}
	ver, err := r.rep.UpsertRosterItem(ctx, usrRi)
	if err != nil {
		return err
	}
	r.pushItem(ctx, usrJID, usrRi, ver)

	level.Info(r.logger).Log("msg", "updated roster", "jid", ri.JID, "username", ri.Username, "xep", "roster")
	return nil
}

func (r *Roster) removeItem(ctx context.Context, ri *rostermodel.Item, usrJID *jid.JID) (bool, error) {
	usrRi, err := r.rep.FetchRosterItem(ctx, ri.Username, ri.JID)
	if err != nil {
		return false, err
	}
	if usrRi == nil {
		return false, nil
	}
	ver, err := r.rep.DeleteRosterItem(ctx, ri.Username, ri.JID)
	if err != nil {
		return false, err
	}
	usrRi.Subscription = rostermodel.SubscriptionRemove
	usrRi.Ask = false
	r.pushItem(ctx, usrJID, usrRi, ver)

	level.Info(r.logger).Log("msg", "removed roster item", "jid", ri.JID, "username", ri.Username, "xep", "roster")
	return true, nil
}

func (r *Roster) pushItem(ctx context.Context, usrJID *jid.JID, ri *rostermodel.Item, ver int) {
	for _, clientJID := range r.clients.ConnectedClientsForJID(usrJID) {
		pushIQ := xmpputil.MakePush(uuid.New().String(), usrJID, clientJID,
			stravaganza.NewBuilder("query").
				WithAttribute(stravaganza.Namespace, rosterNamespace).
				WithAttribute("ver", formatVer(ver)).
				WithChild(ri.Element()).
				Build(),
		)
		if err := r.Send(ctx, pushIQ); err != nil {
			level.Warn(r.logger).Log("msg", "failed to push roster item", "jid", clientJID.String(), "err", err, "xep", "roster")
		}
	}
}

func formatVer(ver int) string {
	return fmt.Sprintf("v%d", ver)
}

func parseVer(ver string) int {
	if len(ver) > 0 && ver[0] == 'v' {
		v, _ := strconv.Atoi(ver[1:])
		return v
	}
	return 0
}
