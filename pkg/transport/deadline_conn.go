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
	"net"
	"time"
)

// deadlineConn arms a read deadline before every read.
// First read uses connTimeout, subsequent ones use keepAlive.
type deadlineConn struct {
	net.Conn
	connTimeout time.Duration
	keepAlive   time.Duration
	connected   bool
}

func newDeadlineConn(conn net.Conn, connTimeout, keepAlive time.Duration) net.Conn {
	if connTimeout == 0 && keepAlive == 0 {
		return conn
	}
	return &deadlineConn{
		Conn:        conn,
		connTimeout: connTimeout,
		keepAlive:   keepAlive,
	}
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	timeout := c.keepAlive
	if !c.connected {
		timeout = c.connTimeout
	}
	if timeout > 0 {
		_ = c.Conn.SetReadDeadline(time.Now().Add(timeout))
	} else {
		_ = c.Conn.SetReadDeadline(time.Time{})
	}
	n, err := c.Conn.Read(b)
	if n > 0 {
		c.connected = true
	}
	return n, err
}
