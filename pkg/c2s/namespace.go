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

const (
	streamNamespace   = "http://etherx.jabber.org/streams"
	saslNamespace     = "urn:ietf:params:xml:ns:xmpp-sasl"
	bindNamespace     = "urn:ietf:params:xml:ns:xmpp-bind"
	sessionNamespace  = "urn:ietf:params:xml:ns:xmpp-session"
	stanzasNamespace  = "urn:ietf:params:xml:ns:xmpp-stanzas"
	registerNamespace = "jabber:iq:register"
	iqAuthNamespace   = "jabber:iq:auth"
)
