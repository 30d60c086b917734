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

package transport

import (
	"io"
	"time"

	"golang.org/x/time/rate"
)

// Type is an enum type representing the transport type.
type Type int

const (
	// Socket represents a socket transport type.
	Socket Type = iota + 1

	// WebSocket represents a websocket transport type.
	WebSocket

	// BOSH represents a HTTP long polling transport type.
	BOSH
)

// String returns Type string representation.
func (tt Type) String() string {
	switch tt {
	case Socket:
		return "socket"
	case WebSocket:
		return "websocket"
	case BOSH:
		return "bosh"
	}
	return ""
}

// Transport represents a stream transport mechanism.
//
// Read side also implements io.ByteReader, so that a stream parser can be
// replaced on restart without losing buffered input.
type Transport interface {
	io.ReadWriteCloser
	io.ByteReader

	// Type returns transport type value.
	Type() Type

	// WriteString writes a raw string to the transport.
	WriteString(s string) (n int, err error)

	// Flush writes any buffered data to the underlying peer.
	// Message oriented transports deliver every flushed chunk as a single message.
	Flush() error

	// SetWriteDeadline sets the deadline for future write calls.
	SetWriteDeadline(d time.Time) error

	// SetReadRateLimiter sets transport read rate limiter.
	SetReadRateLimiter(rLim *rate.Limiter) error

	// RemoteAddr returns the remote peer address.
	RemoteAddr() string
}
