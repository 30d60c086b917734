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

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/xrocket/pkg/router"
)

// Component is a handler bound to a domain, delegating stanzas to its child modules.
type Component struct {
	domain string
	mods   []Handler
	set    *moduleSet
}

// moduleSet is the module list shared by every component built from it.
// Each module is bound and initialized once regardless of how many components hold it.
type moduleSet struct {
	mu          sync.Mutex
	mods        []Handler
	initialized []bool
	bound       bool
}

// NewComponent returns a component bound to domain.
func NewComponent(domain string, mods ...Handler) *Component {
	return NewComponents([]string{domain}, mods...)[0]
}

// NewComponents returns one component per domain, all of them sharing mods.
func NewComponents(domains []string, mods ...Handler) []*Component {
	set := &moduleSet{
		mods:        mods,
		initialized: make([]bool, len(mods)),
	}
	comps := make([]*Component, 0, len(domains))
	for _, domain := range domains {
		comps = append(comps, &Component{domain: domain, mods: mods, set: set})
	}
	return comps
}

// Name returns component name.
func (c *Component) Name() string { return "component:" + c.domain }

// Domain returns the domain the component is bound to.
func (c *Component) Domain() string { return c.domain }

// Modules returns component child modules.
func (c *Component) Modules() []Handler { return c.mods }

// Match tells whether stanza is addressed to component domain and any child module matches it.
func (c *Component) Match(stanza stravaganza.Stanza) bool {
	toJID := stanza.ToJID()
	if toJID == nil || toJID.Domain() != c.domain {
		return false
	}
	return c.matching(stanza) != nil
}

// Handle delegates stanza to the first matching child module.
func (c *Component) Handle(ctx context.Context, stanza stravaganza.Stanza) (bool, error) {
	mod := c.matching(stanza)
	if mod == nil {
		return false, nil
	}
	return mod.Handle(ctx, stanza)
}

// Initialize initializes every child module not yet initialized through a sibling component.
func (c *Component) Initialize(ctx context.Context) error {
	return c.set.initialize(ctx)
}

// Bind binds every child module to sender. Subsequent calls over shared modules are ignored.
func (c *Component) Bind(sender router.Sender) {
	c.set.bind(sender)
}

// Features returns the aggregated disco features of every child module.
func (c *Component) Features() []string {
	var ret []string
	seen := make(map[string]struct{})
	for _, mod := range c.mods {
		fp, ok := mod.(FeatureProvider)
		if !ok {
			continue
		}
		for _, f := range fp.Features() {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			ret = append(ret, f)
		}
	}
	return ret
}

func (c *Component) matching(stanza stravaganza.Stanza) Handler {
	for _, mod := range c.mods {
		if mod.Match(stanza) {
			return mod
		}
	}
	return nil
}

func (ms *moduleSet) initialize(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for i, mod := range ms.mods {
		if ms.initialized[i] {
			continue
		}
		if err := mod.Initialize(ctx); err != nil {
			return fmt.Errorf("component: %s module: %w", mod.Name(), err)
		}
		ms.initialized[i] = true
	}
	return nil
}

func (ms *moduleSet) bind(sender router.Sender) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.bound {
		return
	}
	for _, mod := range ms.mods {
		mod.Bind(sender)
	}
	ms.bound = true
}
