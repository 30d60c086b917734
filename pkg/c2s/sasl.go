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
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/xrocket/pkg/auth"
)

const (
	plainMechanism  = "PLAIN"
	oauth2Mechanism = auth.OAuth2Mechanism
)

// saslCondition represents a SASL failure condition.
type saslCondition string

const (
	saslAborted           saslCondition = "aborted"
	saslIncorrectEncoding saslCondition = "incorrect-encoding"
	saslInvalidMechanism  saslCondition = "invalid-mechanism"
	saslMalformedRequest  saslCondition = "malformed-request"
	saslNotAuthorized     saslCondition = "not-authorized"
	saslTemporaryFailure  saslCondition = "temporary-auth-failure"
)

func (c saslCondition) Error() string {
	return "c2s: sasl " + string(c)
}

func (c saslCondition) failure() stravaganza.Element {
	return stravaganza.NewBuilder("failure").
		WithAttribute(stravaganza.Namespace, saslNamespace).
		WithChild(stravaganza.NewBuilder(string(c)).Build()).
		Build()
}

func saslSuccess() stravaganza.Element {
	return stravaganza.NewBuilder("success").
		WithAttribute(stravaganza.Namespace, saslNamespace).
		Build()
}

// decodeSASLAuth extracts authentication options from an initial <auth/> element.
func decodeSASLAuth(elem stravaganza.Element) (*auth.Options, error) {
	mech := strings.ToUpper(elem.Attribute("mechanism"))
	if len(mech) == 0 {
		return nil, saslInvalidMechanism
	}
	payload := strings.TrimSpace(elem.Text())
	if len(payload) == 0 || payload == "=" {
		return nil, saslMalformedRequest
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, saslIncorrectEncoding
	}
	switch mech {
	case plainMechanism:
		return decodePlain(b)
	case oauth2Mechanism:
		return decodeOAuth2(b)
	default:
		return nil, saslInvalidMechanism
	}
}

// authzid NUL authcid NUL passwd
func decodePlain(b []byte) (*auth.Options, error) {
	parts := bytes.Split(b, []byte{0})
	if len(parts) != 3 {
		return nil, saslMalformedRequest
	}
	authzid, authcid, passwd := string(parts[0]), string(parts[1]), string(parts[2])
	if len(authcid) == 0 || len(passwd) == 0 {
		return nil, saslMalformedRequest
	}
	return &auth.Options{
		JID:      authzid,
		Username: authcid,
		Password: passwd,
		SASLMech: plainMechanism,
	}, nil
}

// [authzid] NUL [username] NUL token
func decodeOAuth2(b []byte) (*auth.Options, error) {
	parts := bytes.Split(b, []byte{0})
	if len(parts) != 3 {
		return nil, saslMalformedRequest
	}
	token := string(parts[2])
	if len(token) == 0 {
		return nil, saslMalformedRequest
	}
	return &auth.Options{
		JID:      string(parts[0]),
		Username: string(parts[1]),
		Password: token,
		SASLMech: oauth2Mechanism,
	}, nil
}
