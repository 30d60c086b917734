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
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	// ErrSessionNotFound is returned when a request refers to an unknown session.
	ErrSessionNotFound = errors.New("bosh: session not found")

	// ErrSessionTimeout is returned to the stream reader once a session has been retired due to inactivity.
	ErrSessionTimeout = errors.New("bosh: session timeout")

	// ErrSessionClosed is returned when trying to write to an already closed session.
	ErrSessionClosed = errors.New("bosh: session closed")
)

const requestReplacedMsg = "Request replaced by same RID"

type response struct {
	status  int
	payload []byte
}

type request struct {
	rid    int64
	body   *body
	respCh chan response
	waitTm *time.Timer
	done   bool
}

func newRequest(b *body) *request {
	return &request{
		rid:    b.rid,
		body:   b,
		respCh: make(chan response, 1),
	}
}

// respond must be called with session lock held.
func (r *request) respond(resp response) {
	if r.done {
		return
	}
	r.done = true
	if r.waitTm != nil {
		r.waitTm.Stop()
	}
	r.respCh <- resp
}

// Session multiplexes a single XML stream over a sequence of HTTP request/response pairs.
//
// Inbound payloads are applied in rid order, regardless of the order in which requests arrive.
// Outbound data is paired with the oldest held request.
type Session struct {
	sid        string
	domain     string
	cfg        sessionConfig
	remoteAddr string
	onClose    func(s *Session)
	logger     kitlog.Logger

	in *pipe

	mu          sync.Mutex
	nextRID     int64
	inQueue     map[int64]*request
	outQueue    []*request
	stanzaQueue [][]byte
	started     bool
	created     bool
	closed      bool
	idleTm      *time.Timer
	idleGen     uint64
}

func newSession(
	sid string,
	domain string,
	cfg sessionConfig,
	firstRID int64,
	remoteAddr string,
	onClose func(s *Session),
	logger kitlog.Logger,
) *Session {
	s := &Session{
		sid:        sid,
		domain:     domain,
		cfg:        cfg,
		remoteAddr: remoteAddr,
		onClose:    onClose,
		logger:     logger,
		in:         newPipe(),
		nextRID:    firstRID,
		inQueue:    make(map[int64]*request),
	}
	s.mu.Lock()
	s.updateIdleTimer()
	s.mu.Unlock()
	return s
}

// SID returns session identifier.
func (s *Session) SID() string { return s.sid }

// Handle enqueues a request carrying b and blocks until its response is ready.
// A zero status response is returned when ctx is done before that.
func (s *Session) Handle(ctx context.Context, b *body) response {
	req := newRequest(b)

	s.mu.Lock()
	s.enqueue(req)
	s.mu.Unlock()

	select {
	case resp := <-req.respCh:
		return resp

	case <-ctx.Done():
		s.mu.Lock()
		s.abandon(req)
		s.mu.Unlock()

		// response may have been produced in the meantime
		select {
		case resp := <-req.respCh:
			return resp
		default:
			return response{}
		}
	}
}

// Close terminates the session answering every held request.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.terminate(io.EOF)
	return nil
}

func (s *Session) push(fragment []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.stanzaQueue = append(s.stanzaQueue, fragment)
	s.workOutQueue()
	s.updateIdleTimer()
	return nil
}

func (s *Session) enqueue(req *request) {
	if s.closed {
		req.respond(s.bodyResponse(nil, true))
		return
	}
	switch {
	case req.rid < s.nextRID:
		// already processed, answered through the regular response path
		s.hold(req)

	case req.rid >= s.nextRID+s.maxRequests():
		req.respond(response{
			status:  http.StatusBadRequest,
			payload: []byte("bosh: rid out of window: " + strconv.FormatInt(req.rid, 10)),
		})
		return

	default:
		if prev, ok := s.inQueue[req.rid]; ok {
			prev.respond(response{status: http.StatusForbidden, payload: []byte(requestReplacedMsg)})
		}
		s.inQueue[req.rid] = req
		s.workInQueue()
		if s.closed {
			return
		}
	}
	s.workOutQueue()

	// every accepted request restarts the inactivity countdown
	s.stopIdleTimer()
	s.updateIdleTimer()
}

func (s *Session) workInQueue() {
	for {
		req, ok := s.inQueue[s.nextRID]
		if !ok {
			return
		}
		delete(s.inQueue, s.nextRID)
		s.nextRID++

		s.process(req)
		if s.closed {
			return
		}
	}
}

func (s *Session) process(req *request) {
	b := req.body
	if !s.started || b.restart {
		s.started = true
		to := b.to
		if len(to) == 0 {
			to = s.domain
		}
		s.in.WriteString(streamOpen(to, b.lang))
	}
	for _, child := range b.elem.AllChildren() {
		buf := &bytes.Buffer{}
		if err := child.ToXML(buf, true); err != nil {
			level.Warn(s.logger).Log("msg", "failed to encode inbound element", "sid", s.sid, "name", child.Name(), "err", err)
			continue
		}
		s.in.WriteString(buf.String())
	}
	if b.terminate {
		s.in.WriteString(streamClose)
		if !req.done {
			s.outQueue = append(s.outQueue, req)
		}
		s.terminate(io.EOF)
		return
	}
	s.hold(req)
}

func (s *Session) hold(req *request) {
	if req.done {
		return
	}
	s.outQueue = append(s.outQueue, req)
	req.waitTm = time.AfterFunc(s.cfg.wait, func() {
		s.waitTimeout(req)
	})
}

func (s *Session) workOutQueue() {
	if len(s.outQueue) > 0 && len(s.stanzaQueue) > 0 {
		req := s.popHeld()
		req.respond(s.bodyResponse(s.stanzaQueue, false))
		s.stanzaQueue = nil
	}
	for len(s.outQueue) > s.cfg.hold {
		req := s.popHeld()
		req.respond(s.bodyResponse(nil, false))
	}
}

func (s *Session) popHeld() *request {
	req := s.outQueue[0]
	s.outQueue[0] = nil
	s.outQueue = s.outQueue[1:]
	return req
}

func (s *Session) waitTimeout(req *request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.done || !s.removeHeld(req) {
		return
	}
	req.respond(s.bodyResponse(nil, false))
	s.updateIdleTimer()
}

func (s *Session) abandon(req *request) {
	if req.done {
		return
	}
	s.removeHeld(req)
	req.done = true
	if req.waitTm != nil {
		req.waitTm.Stop()
	}
	s.updateIdleTimer()
}

func (s *Session) removeHeld(req *request) bool {
	for i, r := range s.outQueue {
		if r == req {
			s.outQueue = append(s.outQueue[:i], s.outQueue[i+1:]...)
			return true
		}
	}
	return false
}

// updateIdleTimer arms the inactivity timer while no request is held.
// A running timer is left untouched.
func (s *Session) updateIdleTimer() {
	if s.closed || len(s.outQueue) > 0 {
		s.stopIdleTimer()
		return
	}
	if s.idleTm == nil {
		gen := s.idleGen
		s.idleTm = time.AfterFunc(s.cfg.inactivity, func() {
			s.idleTimeout(gen)
		})
	}
}

func (s *Session) stopIdleTimer() {
	if s.idleTm != nil {
		s.idleTm.Stop()
		s.idleTm = nil
	}
	// invalidates a callback already fired but still waiting for the lock
	s.idleGen++
}

func (s *Session) idleTimeout(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.idleGen || len(s.outQueue) > 0 {
		return
	}
	level.Info(s.logger).Log("msg", "BOSH session timeout", "sid", s.sid)
	reportSessionTimeout()

	s.terminate(ErrSessionTimeout)
}

// terminate must be called with session lock held.
func (s *Session) terminate(readErr error) {
	s.closed = true
	s.stopIdleTimer()
	for i, req := range s.outQueue {
		var fragments [][]byte
		if i == 0 {
			fragments = s.stanzaQueue
		}
		req.respond(s.bodyResponse(fragments, true))
	}
	for _, req := range s.inQueue {
		req.respond(s.bodyResponse(nil, true))
	}
	s.outQueue = nil
	s.stanzaQueue = nil
	s.inQueue = make(map[int64]*request)

	s.in.CloseWithError(readErr)

	if s.onClose != nil {
		s.onClose(s)
	}
}

func (s *Session) maxRequests() int64 {
	if s.cfg.hold < 1 {
		return 2
	}
	return int64(s.cfg.hold) + 1
}

func (s *Session) bodyResponse(fragments [][]byte, terminate bool) response {
	attrs := []attr{{label: "sid", value: s.sid}}
	if !s.created {
		s.created = true
		attrs = append(attrs,
			attr{label: "wait", value: strconv.Itoa(int(s.cfg.wait / time.Second))},
			attr{label: "hold", value: strconv.Itoa(s.cfg.hold)},
			attr{label: "requests", value: strconv.FormatInt(s.maxRequests(), 10)},
			attr{label: "inactivity", value: strconv.Itoa(int(s.cfg.inactivity / time.Second))},
			attr{label: "ver", value: boshVersion},
			attr{label: "from", value: s.domain},
			attr{label: "authid", value: s.sid},
			attr{label: "xmlns:xmpp", value: xboshNamespace},
			attr{label: "xmlns:stream", value: streamNamespace},
			attr{label: "xmpp:version", value: "1.0"},
			attr{label: "xmpp:restartlogic", value: "true"},
		)
	}
	if terminate {
		attrs = append(attrs, attr{label: "type", value: terminateType})
	}
	return response{
		status:  http.StatusOK,
		payload: encodeBody(attrs, fragments),
	}
}
