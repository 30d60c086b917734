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

package host

import (
	"sort"
	"strings"
	"sync"
)

const defaultDomain = "localhost"

// Configs contains a set of host configurations.
type Configs []Config

// Config contains host configuration parameters.
type Config struct {
	Domain string `fig:"domain"`
}

// Hosts type represents all local domains set.
type Hosts struct {
	mu          sync.RWMutex
	defaultHost string
	hosts       map[string]struct{}
}

// NewHosts creates and initializes a Hosts instance.
// The first configured domain becomes the default one.
func NewHosts(cfg Configs) *Hosts {
	hs := &Hosts{
		hosts: make(map[string]struct{}),
	}
	if len(cfg) == 0 {
		hs.RegisterDefaultHost(defaultDomain)
		return hs
	}
	for i, c := range cfg {
		if i == 0 {
			hs.RegisterDefaultHost(c.Domain)
			continue
		}
		hs.RegisterHost(c.Domain)
	}
	return hs
}

// RegisterDefaultHost registers default host value.
func (hs *Hosts) RegisterDefaultHost(h string) {
	h = strings.ToLower(h)

	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.defaultHost = h
	hs.hosts[h] = struct{}{}
}

// RegisterHost registers a host value.
func (hs *Hosts) RegisterHost(h string) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.hosts[strings.ToLower(h)] = struct{}{}
}

// DefaultHostName returns default host name value.
func (hs *Hosts) DefaultHostName() string {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.defaultHost
}

// IsLocalHost tells whether or not h value corresponds to a local host.
func (hs *Hosts) IsLocalHost(h string) bool {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	_, ok := hs.hosts[strings.ToLower(h)]
	return ok
}

// HostNames returns the sorted list of all registered local hosts.
func (hs *Hosts) HostNames() []string {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	ret := make([]string, 0, len(hs.hosts))
	for n := range hs.hosts {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}
