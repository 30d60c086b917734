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
	"bufio"
	"net"
	"time"

	"github.com/jackal-xmpp/xrocket/pkg/util/ratelimiter"
	"golang.org/x/time/rate"
)

const (
	readBuffSize  = 4096
	writeBuffSize = 4096
)

// SocketConfig contains socket transport configuration.
type SocketConfig struct {
	// ConnectTimeout bounds the wait for the first incoming bytes.
	ConnectTimeout time.Duration

	// KeepAlive bounds the wait between subsequent reads.
	KeepAlive time.Duration
}

type socketTransport struct {
	conn net.Conn
	lr   *ratelimiter.Reader
	br   *bufio.Reader
	bw   *bufio.Writer
}

// NewSocketTransport creates a socket class stream transport.
func NewSocketTransport(conn net.Conn, cfg SocketConfig) Transport {
	lr := ratelimiter.NewReader(newDeadlineConn(conn, cfg.ConnectTimeout, cfg.KeepAlive), nil)
	return &socketTransport{
		conn: conn,
		lr:   lr,
		br:   bufio.NewReaderSize(lr, readBuffSize),
		bw:   bufio.NewWriterSize(conn, writeBuffSize),
	}
}

func (s *socketTransport) Read(p []byte) (n int, err error) {
	return s.br.Read(p)
}

func (s *socketTransport) ReadByte() (byte, error) {
	return s.br.ReadByte()
}

func (s *socketTransport) Write(p []byte) (n int, err error) {
	return s.bw.Write(p)
}

func (s *socketTransport) WriteString(str string) (int, error) {
	return s.bw.WriteString(str)
}

func (s *socketTransport) Close() error {
	return s.conn.Close()
}

func (s *socketTransport) Type() Type {
	return Socket
}

func (s *socketTransport) Flush() error {
	return s.bw.Flush()
}

func (s *socketTransport) SetWriteDeadline(d time.Time) error {
	return s.conn.SetWriteDeadline(d)
}

func (s *socketTransport) SetReadRateLimiter(rLim *rate.Limiter) error {
	s.lr.SetLimiter(rLim)
	return nil
}

func (s *socketTransport) RemoteAddr() string {
	if addr := s.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
