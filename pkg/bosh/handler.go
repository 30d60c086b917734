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
	"errors"
	"io"
	"net/http"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

const maxSIDAttempts = 5

// Handler serves the BOSH front over HTTP.
type Handler struct {
	cfg    Config
	domain string
	srv    connServer
	logger kitlog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewHandler returns a new initialized BOSH handler.
// Every created session is handed to srv as a stream transport.
func NewHandler(cfg Config, domain string, srv connServer, logger kitlog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		domain:   domain,
		srv:      srv,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Path returns the HTTP path the handler should be mounted at.
func (h *Handler) Path() string { return h.cfg.Path }

// SessionCount returns the number of active sessions.
func (h *Handler) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// ServeHTTP satisfies http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
		break
	default:
		h.writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}
	b, err := parseBody(io.LimitReader(r.Body, int64(h.cfg.MaxRequestSize)), h.cfg.MaxRequestSize)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var s *Session
	if len(b.sid) == 0 {
		s, err = h.createSession(b, r.RemoteAddr)
		if err != nil {
			level.Error(h.logger).Log("msg", "failed to create BOSH session", "err", err)
			h.writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
	} else {
		s = h.session(b.sid)
		if s == nil {
			h.writeError(w, http.StatusNotFound, "BOSH session not found")
			return
		}
	}
	resp := s.Handle(r.Context(), b)
	switch resp.status {
	case 0:
		level.Debug(h.logger).Log("msg", "BOSH request abandoned by peer", "sid", s.SID(), "rid", b.rid)
		return

	case http.StatusOK:
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(resp.payload)
		reportRequest(http.StatusOK)

	default:
		h.writeError(w, resp.status, string(resp.payload))
	}
}

func (h *Handler) createSession(b *body, remoteAddr string) (*Session, error) {
	domain := b.to
	if len(domain) == 0 {
		domain = h.domain
	}
	h.mu.Lock()
	var sid string
	for i := 0; i < maxSIDAttempts; i++ {
		candidate := uuid.New().String()
		if _, ok := h.sessions[candidate]; !ok {
			sid = candidate
			break
		}
	}
	if len(sid) == 0 {
		h.mu.Unlock()
		return nil, errors.New("bosh: unable to allocate session identifier")
	}
	s := newSession(sid, domain, h.cfg.sessionConfig(b), b.rid, remoteAddr, h.removeSession, h.logger)
	h.sessions[sid] = s
	h.mu.Unlock()

	reportSessionCreated()
	level.Info(h.logger).Log("msg", "BOSH session created", "sid", sid, "remote_address", remoteAddr)

	h.srv.Serve(newTransport(s))
	return s, nil
}

func (h *Handler) session(sid string) *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessions[sid]
}

func (h *Handler) removeSession(s *Session) {
	h.mu.Lock()
	_, ok := h.sessions[s.SID()]
	delete(h.sessions, s.SID())
	h.mu.Unlock()

	if ok {
		reportSessionClosed()
		level.Info(h.logger).Log("msg", "BOSH session closed", "sid", s.SID())
	}
}

func (h *Handler) setCORSHeaders(w http.ResponseWriter) {
	hdr := w.Header()
	hdr.Set("Access-Control-Allow-Origin", h.cfg.AllowedOrigin)
	hdr.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	hdr.Set("Access-Control-Allow-Headers", "Content-Type")
	hdr.Set("Access-Control-Max-Age", "86400")
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
	reportRequest(status)
}
