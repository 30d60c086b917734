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

	"github.com/jackal-xmpp/stravaganza/v2"
	streamerror "github.com/jackal-xmpp/stravaganza/v2/errors/stream"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/jackal-xmpp/xrocket/pkg/auth"
)

// Stream represents a client stream as seen by the connection router.
type Stream interface {
	// ID returns stream identifier.
	ID() string

	// JID returns the address bound to the stream.
	JID() *jid.JID

	// SetHandler installs the handler stream lifecycle events are reported to.
	SetHandler(h StreamHandler)

	// SendElement writes an element to the stream.
	SendElement(elem stravaganza.Element) <-chan error

	// Disconnect closes the stream sending streamErr beforehand.
	Disconnect(streamErr *streamerror.Error) <-chan error
}

// StreamHandler receives stream lifecycle events.
type StreamHandler interface {
	// Authenticate is invoked once a client requests authentication.
	Authenticate(ctx context.Context, opts *auth.Options) error

	// Register is invoked when a client requests in-band registration.
	Register(ctx context.Context, opts *auth.Options) error

	// Online is invoked once a stream has bound its resource.
	Online(ctx context.Context, stm Stream)

	// Stanza is invoked for every stanza received from a bound stream.
	Stanza(ctx context.Context, stm Stream, stanza stravaganza.Stanza)

	// Close is invoked once a stream has been disconnected.
	Close(ctx context.Context, stm Stream)
}
