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

package xmpputil

import (
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

// MakeResultIQ creates a new result stanza derived from iq.
func MakeResultIQ(iq *stravaganza.IQ, queryChild stravaganza.Element) *stravaganza.IQ {
	b := iq.ResultBuilder()
	if queryChild != nil {
		b.WithChild(queryChild)
	}
	resIQ, _ := b.BuildIQ()
	return resIQ
}

// MakeErrorStanza creates an error stanza using errReason as reason.
func MakeErrorStanza(stanza stravaganza.Stanza, errReason stanzaerror.Reason) stravaganza.Stanza {
	errStanza, _ := stanzaerror.E(errReason, stanza).Stanza(false)
	return errStanza
}

// MakePush creates a set iq addressed to toJID carrying child as its only element.
func MakePush(id string, fromJID, toJID *jid.JID, child stravaganza.Element) *stravaganza.IQ {
	iq, _ := stravaganza.NewIQBuilder().
		WithAttribute(stravaganza.ID, id).
		WithAttribute(stravaganza.From, fromJID.String()).
		WithAttribute(stravaganza.To, toJID.String()).
		WithAttribute(stravaganza.Type, stravaganza.SetType).
		WithChild(child).
		BuildIQ()
	return iq
}

// WithAddresses returns a copy of stanza with from and to attributes replaced.
func WithAddresses(stanza stravaganza.Stanza, fromJID, toJID *jid.JID) stravaganza.Stanza {
	b := stravaganza.NewBuilderFromElement(stanza)
	if fromJID != nil {
		b.WithAttribute(stravaganza.From, fromJID.String())
	}
	if toJID != nil {
		b.WithAttribute(stravaganza.To, toJID.String())
	}
	st, err := b.BuildStanza()
	if err != nil {
		return stanza
	}
	return st
}

// IsServerAddressed tells whether stanza is addressed to the bare server domain.
func IsServerAddressed(stanza stravaganza.Stanza) bool {
	toJID := stanza.ToJID()
	return toJID != nil && len(toJID.Node()) == 0 && len(toJID.Resource()) == 0
}
