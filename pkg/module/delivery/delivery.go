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

// Package delivery implements instant message delivery between local users.
package delivery

import (
	"context"
	"errors"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/xrocket/pkg/module"
	"github.com/jackal-xmpp/xrocket/pkg/router"
	xmpputil "github.com/jackal-xmpp/xrocket/pkg/util/xmpp"
)

// ModuleName represents delivery module name.
const ModuleName = "delivery"

// Delivery forwards user addressed stanzas to their destination.
//
// It is meant to be registered last, acting as a fallback for get and set iqs
// no other module did handle.
type Delivery struct {
	module.Base

	clients clientsProvider
	logger  kitlog.Logger
}

// New returns a new initialized Delivery instance.
func New(clients clientsProvider, logger kitlog.Logger) *Delivery {
	return &Delivery{
		clients: clients,
		logger:  logger,
	}
}

// Name returns delivery module name.
func (d *Delivery) Name() string { return ModuleName }

// Initialize initializes delivery module.
func (d *Delivery) Initialize(_ context.Context) error {
	level.Info(d.logger).Log("msg", "initialized delivery module")
	return nil
}

// Match tells whether stanza is addressed to a user or is an unanswered request.
func (d *Delivery) Match(stanza stravaganza.Stanza) bool {
	toJID := stanza.ToJID()
	if toJID == nil {
		return false
	}
	return len(toJID.Node()) > 0 || module.IsModuleIQ(stanza)
}

// Handle delivers stanza to its destination, bouncing it back in case it can't be delivered.
func (d *Delivery) Handle(ctx context.Context, stanza stravaganza.Stanza) (bool, error) {
	if module.IsModuleIQ(stanza) {
		// no other module answered this request
		return true, d.Send(ctx, xmpputil.MakeErrorStanza(stanza, stanzaerror.ServiceUnavailable))
	}
	toJID := stanza.ToJID()
	if len(d.clients.ConnectedClientsForJID(toJID)) == 0 {
		return true, d.bounce(ctx, stanza)
	}
	err := d.Send(ctx, stanza)
	switch {
	case err == nil:
		return true, nil

	case errors.Is(err, router.ErrResourceNotFound):
		if _, ok := stanza.(*stravaganza.Message); ok {
			// deliver to any available resource
			return true, d.Send(ctx, xmpputil.WithAddresses(stanza, nil, toJID.ToBareJID()))
		}
		return true, d.bounce(ctx, stanza)

	case errors.Is(err, router.ErrUserNotAvailable):
		return true, d.bounce(ctx, stanza)

	default:
		return false, err
	}
}

func (d *Delivery) bounce(ctx context.Context, stanza stravaganza.Stanza) error {
	if !isBounceable(stanza) {
		level.Debug(d.logger).Log("msg", "dropped undeliverable stanza",
			"name", stanza.Name(), "to", stanza.Attribute(stravaganza.To),
		)
		return nil
	}
	level.Debug(d.logger).Log("msg", "bounced undeliverable stanza",
		"name", stanza.Name(), "to", stanza.Attribute(stravaganza.To),
	)
	return d.Send(ctx, xmpputil.MakeErrorStanza(stanza, stanzaerror.ServiceUnavailable))
}

func isBounceable(stanza stravaganza.Stanza) bool {
	switch st := stanza.(type) {
	case *stravaganza.Message:
		return st.Attribute(stravaganza.Type) != stravaganza.ErrorType
	case *stravaganza.IQ:
		return st.IsGet() || st.IsSet()
	}
	return false
}
