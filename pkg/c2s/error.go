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
	"errors"
	"fmt"
	"strconv"

	"github.com/jackal-xmpp/stravaganza/v2"
)

var (
	// ErrUserNotFound is returned by Authenticate when no authenticator can process the request.
	ErrUserNotFound = errors.New("c2s: user not found")

	// ErrNotAuthorized is returned by Authenticate when the selected authenticator rejects the request.
	ErrNotAuthorized = errors.New("c2s: not authorized")
)

// RegisterError represents an in-band registration failure.
type RegisterError struct {
	Code      int
	Type      string
	Condition string
}

// Error satisfies error interface.
func (e *RegisterError) Error() string {
	return fmt.Sprintf("c2s: registration failed: %s (%d)", e.Condition, e.Code)
}

// Element returns the stanza error element derived from e.
func (e *RegisterError) Element() stravaganza.Element {
	return stravaganza.NewBuilder("error").
		WithAttribute("code", strconv.Itoa(e.Code)).
		WithAttribute(stravaganza.Type, e.Type).
		WithChild(
			stravaganza.NewBuilder(e.Condition).
				WithAttribute(stravaganza.Namespace, stanzasNamespace).
				Build(),
		).
		Build()
}

var errRegistrationNotAllowed = &RegisterError{
	Code:      405,
	Type:      "abort",
	Condition: "not-allowed",
}
