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

package rostermodel

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
)

// roster item subscription values
const (
	SubscriptionNone   = "none"
	SubscriptionFrom   = "from"
	SubscriptionTo     = "to"
	SubscriptionBoth   = "both"
	SubscriptionRemove = "remove"
)

// Item represents a roster item storage entity.
type Item struct {
	Username     string   `json:"username"`
	JID          string   `json:"jid"`
	Name         string   `json:"name,omitempty"`
	Subscription string   `json:"subscription"`
	Ask          bool     `json:"ask,omitempty"`
	Groups       []string `json:"groups,omitempty"`
}

// NewItem parses an XML element returning a derived roster item instance.
func NewItem(elem stravaganza.Element) (*Item, error) {
	if elem.Name() != "item" {
		return nil, fmt.Errorf("rostermodel: invalid item element name: %s", elem.Name())
	}
	jidStr := elem.Attribute("jid")
	if len(jidStr) == 0 {
		return nil, errors.New("rostermodel: item 'jid' attribute is required")
	}
	j, err := jid.NewWithString(jidStr, false)
	if err != nil {
		return nil, err
	}
	ri := &Item{
		JID:          j.ToBareJID().String(),
		Name:         elem.Attribute("name"),
		Subscription: SubscriptionNone,
	}
	switch subscription := elem.Attribute("subscription"); subscription {
	case "":
		break
	case SubscriptionBoth, SubscriptionFrom, SubscriptionTo, SubscriptionNone, SubscriptionRemove:
		ri.Subscription = subscription
	default:
		return nil, fmt.Errorf("rostermodel: unrecognized 'subscription' enum type: %s", subscription)
	}
	switch ask := elem.Attribute("ask"); ask {
	case "":
		break
	case "subscribe":
		ri.Ask = true
	default:
		return nil, fmt.Errorf("rostermodel: unrecognized 'ask' enum type: %s", ask)
	}
	for _, group := range elem.Children("group") {
		if len(group.Text()) > 0 {
			ri.Groups = append(ri.Groups, group.Text())
		}
	}
	return ri, nil
}

// Element returns a roster item XML element representation.
func (ri *Item) Element() stravaganza.Element {
	b := stravaganza.NewBuilder("item").
		WithAttribute("jid", ri.JID)
	if len(ri.Name) > 0 {
		b.WithAttribute("name", ri.Name)
	}
	if len(ri.Subscription) > 0 {
		b.WithAttribute("subscription", ri.Subscription)
	}
	if ri.Ask {
		b.WithAttribute("ask", "subscribe")
	}
	for _, group := range ri.Groups {
		b.WithChild(stravaganza.NewBuilder("group").WithText(group).Build())
	}
	return b.Build()
}

// ContactJID parses and returns roster item contact JID.
func (ri *Item) ContactJID() *jid.JID {
	j, _ := jid.NewWithString(ri.JID, true)
	return j
}

// MarshalBinary satisfies encoding.BinaryMarshaler interface.
func (ri *Item) MarshalBinary() ([]byte, error) {
	return json.Marshal(ri)
}

// UnmarshalBinary satisfies encoding.BinaryUnmarshaler interface.
func (ri *Item) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, ri)
}

// Items represents a set of roster items.
type Items []*Item

// MarshalBinary satisfies encoding.BinaryMarshaler interface.
func (is Items) MarshalBinary() ([]byte, error) {
	return json.Marshal(is)
}

// UnmarshalBinary satisfies encoding.BinaryUnmarshaler interface.
func (is *Items) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, is)
}
