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
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/jackal-xmpp/xrocket/pkg/auth"
	"github.com/jackal-xmpp/xrocket/pkg/router"
	"github.com/jackal-xmpp/xrocket/pkg/transport"
)

//go:generate moq -out stream.mock_test.go . c2sStream:streamMock
type c2sStream interface {
	Stream
}

//go:generate moq -out stream_handler.mock_test.go . c2sStreamHandler:streamHandlerMock
type c2sStreamHandler interface {
	StreamHandler
}

//go:generate moq -out transport.mock_test.go . c2sTransport:transportMock
type c2sTransport interface {
	transport.Transport
}

//go:generate moq -out authenticator.mock_test.go . c2sAuthenticator:authenticatorMock
type c2sAuthenticator interface {
	auth.Authenticator
}

//go:generate moq -out listener.mock_test.go . c2sListener:listenerMock
type c2sListener interface {
	router.Listener
}

//go:generate moq -out hosts.mock_test.go . hosts
type hosts interface {
	IsLocalHost(h string) bool
	DefaultHostName() string
}

//go:generate moq -out auth_methods.mock_test.go . authMethods
type authMethods interface {
	FindAuthMethod(mech string) []auth.Authenticator
}

//go:generate moq -out stream_router.mock_test.go . streamRouter
type streamRouter interface {
	authMethods
	RegisterStream(stm Stream)
}

//go:generate moq -out session.mock_test.go . session
type session interface {
	SetFromJID(ssJID *jid.JID)

	Send(ctx context.Context, element stravaganza.Element) error
	Receive() (stravaganza.Element, error)

	OpenStream(ctx context.Context, featuresElem stravaganza.Element) error
	Close(ctx context.Context) error

	Reset(tr transport.Transport) error
}
