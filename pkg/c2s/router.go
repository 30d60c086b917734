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
	"context"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	streamerror "github.com/jackal-xmpp/stravaganza/v2/errors/stream"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/jackal-xmpp/xrocket/pkg/auth"
	"github.com/jackal-xmpp/xrocket/pkg/router"
)

// Router keeps track of every bound client stream and delivers stanzas addressed to them.
//
// Stanzas received from clients are forwarded downstream to every subscribed listener,
// while Send is used by downstream routers to reach local clients.
type Router struct {
	router.Core

	mu       sync.RWMutex
	sessions map[string]map[string]Stream

	authMu      sync.RWMutex
	authMethods []auth.Authenticator

	logger kitlog.Logger
}

// NewRouter returns an initialized connection router.
func NewRouter(logger kitlog.Logger) *Router {
	return &Router{
		sessions: make(map[string]map[string]Stream),
		logger:   logger,
	}
}

// AddAuthMethod appends an authentication method. Methods are looked up in registration order.
func (r *Router) AddAuthMethod(m auth.Authenticator) {
	r.authMu.Lock()
	r.authMethods = append(r.authMethods, m)
	r.authMu.Unlock()
}

// FindAuthMethod returns all registered methods matching mech, in registration order.
func (r *Router) FindAuthMethod(mech string) []auth.Authenticator {
	r.authMu.RLock()
	defer r.authMu.RUnlock()

	var ret []auth.Authenticator
	for _, m := range r.authMethods {
		if m.Match(mech) {
			ret = append(ret, m)
		}
	}
	return ret
}

// Authenticate verifies opts credentials against the first authentication method matching opts.SASLMech.
func (r *Router) Authenticate(ctx context.Context, opts *auth.Options) (err error) {
	defer opts.WipePassword()
	defer func() {
		if rec := recover(); rec != nil {
			level.Error(r.logger).Log("msg", "authentication panicked", "mech", opts.SASLMech, "panic", rec)
			err = ErrUserNotFound
		}
	}()
	candidates := r.FindAuthMethod(opts.SASLMech)
	if len(candidates) == 0 {
		return ErrUserNotFound
	}
	am := candidates[0]

	creds, aErr := am.Authenticate(ctx, opts)
	if aErr != nil {
		level.Info(r.logger).Log("msg", "authentication failed",
			"method", am.Name(), "mech", opts.SASLMech, "err", aErr,
		)
		return ErrNotAuthorized
	}
	opts.Merge(creds)
	return nil
}

// Register handles in-band registration requests. Registration is not supported.
func (r *Router) Register(_ context.Context, _ *auth.Options) error {
	return errRegistrationNotAllowed
}

// RegisterRoute binds stm to j, replacing any stream previously bound to the same address.
func (r *Router) RegisterRoute(j *jid.JID, stm Stream) {
	bare, res := j.ToBareJID().String(), j.Resource()

	r.mu.Lock()
	rs := r.sessions[bare]
	if rs == nil {
		rs = make(map[string]Stream)
		r.sessions[bare] = rs
	}
	_, replaced := rs[res]
	rs[res] = stm
	r.mu.Unlock()

	if !replaced {
		reportRouteRegistered()
	}
}

// UnregisterRoute removes j route. Unknown addresses are ignored.
func (r *Router) UnregisterRoute(j *jid.JID) {
	bare, res := j.ToBareJID().String(), j.Resource()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[bare][res]; ok {
		r.deleteRoute(bare, res)
	}
}

// ConnectedClientsForJID returns the full addresses of every stream bound to j bare address.
func (r *Router) ConnectedClientsForJID(j *jid.JID) []*jid.JID {
	bare := j.ToBareJID().String()

	r.mu.RLock()
	defer r.mu.RUnlock()

	rs := r.sessions[bare]
	ret := make([]*jid.JID, 0, len(rs))
	for _, stm := range rs {
		ret = append(ret, stm.JID())
	}
	return ret
}

// Send delivers stanza to the local streams its destination address resolves to.
func (r *Router) Send(_ context.Context, stanza stravaganza.Stanza) error {
	toJID := stanza.ToJID()
	if toJID == nil {
		return router.ErrUserNotAvailable
	}
	streams, err := r.resolve(toJID)
	if err != nil {
		level.Debug(r.logger).Log("msg", "no route to destination", "to", toJID.String(), "err", err)
		return err
	}
	for _, stm := range streams {
		r.deliver(stm, stanza)
	}
	return nil
}

// DisconnectClient disconnects the stream bound to full address j using streamErr.
// It reports whether such a stream was found.
func (r *Router) DisconnectClient(j *jid.JID, streamErr *streamerror.Error) bool {
	r.mu.RLock()
	stm, ok := r.sessions[j.ToBareJID().String()][j.Resource()]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	errCh := stm.Disconnect(streamErr)
	go func() {
		if err := <-errCh; err != nil {
			level.Warn(r.logger).Log("msg", "failed to disconnect stream", "id", stm.ID(), "err", err)
		}
	}()
	return true
}

// VerifyStanza checks that stanza sender matches stm bound address and forwards it downstream.
// A mismatch is reported but does not prevent forwarding.
func (r *Router) VerifyStanza(ctx context.Context, stm Stream, stanza stravaganza.Stanza) {
	if j := stm.JID(); j != nil {
		fromJID := stanza.FromJID()
		if fromJID == nil || fromJID.String() != j.String() {
			var from string
			if fromJID != nil {
				from = fromJID.String()
			}
			level.Warn(r.logger).Log("msg", "invalid-from", "id", stm.ID(), "jid", j.String(), "from", from)
			reportInvalidFrom()
		}
	}
	r.Stanza(ctx, stanza)
}

// RegisterStream attaches the router to stm lifecycle events.
func (r *Router) RegisterStream(stm Stream) {
	stm.SetHandler(&streamHandler{r: r})
}

func (r *Router) resolve(toJID *jid.JID) ([]Stream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs := r.sessions[toJID.ToBareJID().String()]
	if len(rs) == 0 {
		return nil, router.ErrUserNotAvailable
	}
	if res := toJID.Resource(); len(res) > 0 {
		stm, ok := rs[res]
		if !ok {
			return nil, router.ErrResourceNotFound
		}
		return []Stream{stm}, nil
	}
	ret := make([]Stream, 0, len(rs))
	for _, stm := range rs {
		ret = append(ret, stm)
	}
	return ret, nil
}

func (r *Router) deliver(stm Stream, stanza stravaganza.Stanza) {
	errCh := stm.SendElement(stanza)
	go func() {
		if err := <-errCh; err != nil {
			level.Warn(r.logger).Log("msg", "failed to deliver stanza", "id", stm.ID(), "err", err)
		}
	}()
}

// unregisterStream removes j route only if it still points to stm.
func (r *Router) unregisterStream(j *jid.JID, stm Stream) bool {
	bare, res := j.ToBareJID().String(), j.Resource()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessions[bare][res] != stm {
		return false
	}
	r.deleteRoute(bare, res)
	return true
}

func (r *Router) deleteRoute(bare, res string) {
	rs := r.sessions[bare]
	delete(rs, res)
	if len(rs) == 0 {
		delete(r.sessions, bare)
	}
	reportRouteUnregistered()
}

type streamHandler struct {
	r *Router
}

func (h *streamHandler) Authenticate(ctx context.Context, opts *auth.Options) error {
	return h.r.Authenticate(ctx, opts)
}

func (h *streamHandler) Register(ctx context.Context, opts *auth.Options) error {
	return h.r.Register(ctx, opts)
}

func (h *streamHandler) Online(ctx context.Context, stm Stream) {
	j := stm.JID()
	h.r.RegisterRoute(j, stm)
	h.r.Connect(ctx, j)
}

func (h *streamHandler) Stanza(ctx context.Context, stm Stream, stanza stravaganza.Stanza) {
	h.r.VerifyStanza(ctx, stm, stanza)
}

func (h *streamHandler) Close(ctx context.Context, stm Stream) {
	j := stm.JID()
	if j == nil || len(j.Resource()) == 0 {
		return // never went online
	}
	if !h.r.unregisterStream(j, stm) {
		return // replaced by a newer stream
	}
	h.r.Disconnect(ctx, j)
}
