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

package component

import (
	"context"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/xrocket/pkg/router"
)

// Handler represents a protocol extension handler.
type Handler interface {
	// Name returns handler name.
	Name() string

	// Match tells whether or not stanza should be handled by this handler.
	Match(stanza stravaganza.Stanza) bool

	// Handle processes a matched stanza. The returned boolean reports whether
	// the stanza was actually handled.
	Handle(ctx context.Context, stanza stravaganza.Stanza) (bool, error)

	// Initialize is called once, before the handler receives any stanza.
	Initialize(ctx context.Context) error

	// Bind sets the sender used by the handler to emit stanzas.
	Bind(sender router.Sender)
}

// FeatureProvider is implemented by handlers advertising service discovery features.
type FeatureProvider interface {
	// Features returns the set of disco features supported by the handler.
	Features() []string
}
