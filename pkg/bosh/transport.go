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

package bosh

import (
	"bufio"
	"bytes"
	"sync"
	"time"

	"github.com/jackal-xmpp/xrocket/pkg/transport"
	"github.com/jackal-xmpp/xrocket/pkg/util/ratelimiter"
	"golang.org/x/time/rate"
)

const readBuffSize = 4096

type boshTransport struct {
	s  *Session
	lr *ratelimiter.Reader
	br *bufio.Reader

	mu sync.Mutex
	wb bytes.Buffer
}

func newTransport(s *Session) transport.Transport {
	lr := ratelimiter.NewReader(s.in, nil)
	return &boshTransport{
		s:  s,
		lr: lr,
		br: bufio.NewReaderSize(lr, readBuffSize),
	}
}

func (t *boshTransport) Read(p []byte) (n int, err error) {
	return t.br.Read(p)
}

func (t *boshTransport) ReadByte() (byte, error) {
	return t.br.ReadByte()
}

func (t *boshTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wb.Write(p)
}

func (t *boshTransport) WriteString(str string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wb.WriteString(str)
}

// Flush hands every buffered write to the session as a single body fragment.
func (t *boshTransport) Flush() error {
	t.mu.Lock()
	if t.wb.Len() == 0 {
		t.mu.Unlock()
		return nil
	}
	fragment := make([]byte, t.wb.Len())
	copy(fragment, t.wb.Bytes())
	t.wb.Reset()
	t.mu.Unlock()

	return t.s.push(fragment)
}

func (t *boshTransport) Close() error {
	return t.s.Close()
}

func (t *boshTransport) Type() transport.Type {
	return transport.BOSH
}

func (t *boshTransport) SetWriteDeadline(_ time.Time) error {
	return nil
}

func (t *boshTransport) SetReadRateLimiter(rLim *rate.Limiter) error {
	t.lr.SetLimiter(rLim)
	return nil
}

func (t *boshTransport) RemoteAddr() string {
	return t.s.remoteAddr
}
