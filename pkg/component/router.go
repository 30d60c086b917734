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

package component

import (
	"context"
	"fmt"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/xrocket/pkg/router"
)

// DispatchStrategy defines how a stanza is dispatched across registered handlers.
type DispatchStrategy int

const (
	// DispatchAll offers the stanza to every registered handler.
	DispatchAll DispatchStrategy = iota

	// DispatchFirstMatch stops as soon as a handler matches and handles the stanza.
	DispatchFirstMatch
)

// String satisfies fmt.Stringer interface.
func (s DispatchStrategy) String() string {
	switch s {
	case DispatchAll:
		return "all"
	case DispatchFirstMatch:
		return "first_match"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Router dispatches stanzas received from its upstream router to an ordered list of handlers.
type Router struct {
	router.Core

	strategy DispatchStrategy

	mu       sync.RWMutex
	handlers []Handler
	names    map[string]struct{}

	logger kitlog.Logger
}

// NewRouter returns a new component router using strategy to dispatch stanzas.
func NewRouter(strategy DispatchStrategy, logger kitlog.Logger) *Router {
	return &Router{
		strategy: strategy,
		names:    make(map[string]struct{}),
		logger:   logger,
	}
}

// Register binds h to the router, initializes it and appends it to the handler list.
// Registering a handler name twice has no effect.
func (r *Router) Register(ctx context.Context, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[h.Name()]; ok {
		return nil
	}
	h.Bind(r)
	if err := h.Initialize(ctx); err != nil {
		return fmt.Errorf("component: failed to initialize %s handler: %w", h.Name(), err)
	}
	r.names[h.Name()] = struct{}{}
	r.handlers = append(r.handlers, h)

	level.Info(r.logger).Log("msg", "registered handler", "name", h.Name(), "strategy", r.strategy)
	return nil
}

// Handlers returns registered handlers in registration order.
func (r *Router) Handlers() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ret := make([]Handler, len(r.handlers))
	copy(ret, r.handlers)
	return ret
}

// Stanza emits stanza to every subscribed listener and then dispatches it to the registered handlers.
func (r *Router) Stanza(ctx context.Context, stanza stravaganza.Stanza) {
	r.Core.Stanza(ctx, stanza)

	var handled bool
	for _, h := range r.Handlers() {
		ok := r.dispatch(ctx, h, stanza)
		handled = handled || ok
		if ok && r.strategy == DispatchFirstMatch {
			break
		}
	}
	if !handled {
		level.Error(r.logger).Log("msg", "unhandled stanza",
			"name", stanza.Name(), "id", stanza.Attribute(stravaganza.ID),
			"from", stanza.Attribute(stravaganza.From), "to", stanza.Attribute(stravaganza.To),
		)
	}
}

func (r *Router) dispatch(ctx context.Context, h Handler, stanza stravaganza.Stanza) (handled bool) {
	defer func() {
		if rec := recover(); rec != nil {
			level.Error(r.logger).Log("msg", "handler panicked", "name", h.Name(), "panic", rec)
			reportHandlerDispatch(h.Name(), outcomePanic, 0)
			handled = false
		}
	}()
	if !h.Match(stanza) {
		return false
	}
	t0 := time.Now()
	ok, err := h.Handle(ctx, stanza)
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to handle stanza", "name", h.Name(), "err", err)
		reportHandlerDispatch(h.Name(), outcomeError, time.Since(t0))
		return false
	}
	if ok {
		reportHandlerDispatch(h.Name(), outcomeHandled, time.Since(t0))
	}
	return ok
}
