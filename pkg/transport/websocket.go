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
	"bytes"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackal-xmpp/xrocket/pkg/util/ratelimiter"
	"golang.org/x/time/rate"
)

// WebSocketConn represents a websocket connection interface.
type WebSocketConn interface {
	NextReader() (messageType int, r io.Reader, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	RemoteAddr() net.Addr
	Close() error
}

type webSocketTransport struct {
	conn      WebSocketConn
	keepAlive time.Duration
	lr        *ratelimiter.Reader
	br        *bufio.Reader

	mu   sync.Mutex
	wBuf bytes.Buffer
}

// NewWebSocketTransport creates a websocket class stream transport.
// Every flushed chunk is delivered to the peer as a single text message.
func NewWebSocketTransport(conn WebSocketConn, keepAlive time.Duration) Transport {
	wst := &webSocketTransport{
		conn:      conn,
		keepAlive: keepAlive,
	}
	wst.lr = ratelimiter.NewReader(&messageReader{conn: conn, keepAlive: keepAlive}, nil)
	wst.br = bufio.NewReaderSize(wst.lr, readBuffSize)
	return wst
}

func (w *webSocketTransport) Read(p []byte) (n int, err error) {
	return w.br.Read(p)
}

func (w *webSocketTransport) ReadByte() (byte, error) {
	return w.br.ReadByte()
}

func (w *webSocketTransport) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wBuf.Write(p)
}

func (w *webSocketTransport) WriteString(str string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wBuf.WriteString(str)
}

func (w *webSocketTransport) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.wBuf.Len() == 0 {
		return nil
	}
	defer w.wBuf.Reset()
	return w.conn.WriteMessage(websocket.TextMessage, w.wBuf.Bytes())
}

func (w *webSocketTransport) Close() error {
	return w.conn.Close()
}

func (w *webSocketTransport) Type() Type {
	return WebSocket
}

func (w *webSocketTransport) SetWriteDeadline(d time.Time) error {
	return w.conn.SetWriteDeadline(d)
}

func (w *webSocketTransport) SetReadRateLimiter(rLim *rate.Limiter) error {
	w.lr.SetLimiter(rLim)
	return nil
}

func (w *webSocketTransport) RemoteAddr() string {
	if addr := w.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

// messageReader concatenates incoming websocket messages into a single byte stream.
type messageReader struct {
	conn      WebSocketConn
	keepAlive time.Duration
	r         io.Reader
}

func (mr *messageReader) Read(p []byte) (int, error) {
	for {
		if mr.r == nil {
			if mr.keepAlive > 0 {
				_ = mr.conn.SetReadDeadline(time.Now().Add(mr.keepAlive))
			}
			_, r, err := mr.conn.NextReader()
			if err != nil {
				return 0, err
			}
			mr.r = r
		}
		n, err := mr.r.Read(p)
		if err == io.EOF {
			mr.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}
