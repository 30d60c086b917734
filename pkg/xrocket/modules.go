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

package xrocket

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/xrocket/pkg/component"
	"github.com/jackal-xmpp/xrocket/pkg/module/delivery"
	"github.com/jackal-xmpp/xrocket/pkg/module/roster"
	"github.com/jackal-xmpp/xrocket/pkg/module/xep0030"
	"github.com/jackal-xmpp/xrocket/pkg/module/xep0092"
	"github.com/jackal-xmpp/xrocket/pkg/module/xep0199"
)

var modFns = map[string]func(s *Server, cfg ModulesConfig) component.Handler{
	// Roster
	// (https://xmpp.org/rfcs/rfc6121.html#roster)
	roster.ModuleName: func(s *Server, _ ModulesConfig) component.Handler {
		return roster.New(s.rep, s.c2sRouter, s.logger)
	},
	// XEP-0030: Service Discovery
	// (https://xmpp.org/extensions/xep-0030.html)
	xep0030.ModuleName: func(s *Server, _ ModulesConfig) component.Handler {
		return xep0030.New(s.logger)
	},
	// XEP-0092: Software Version
	// (https://xmpp.org/extensions/xep-0092.html)
	xep0092.ModuleName: func(s *Server, cfg ModulesConfig) component.Handler {
		return xep0092.New(cfg.Version, s.logger)
	},
	// XEP-0199: XMPP Ping
	// (https://xmpp.org/extensions/xep-0199.html)
	xep0199.ModuleName: func(s *Server, cfg ModulesConfig) component.Handler {
		return xep0199.New(cfg.Ping, s.c2sRouter, s.logger)
	},
	// IM delivery
	// (https://xmpp.org/rfcs/rfc6121.html#rules)
	delivery.ModuleName: func(s *Server, _ ModulesConfig) component.Handler {
		return delivery.New(s.c2sRouter, s.logger)
	},
}

var defaultModules = []string{
	roster.ModuleName,
	xep0030.ModuleName,
	xep0092.ModuleName,
	xep0199.ModuleName,
	delivery.ModuleName,
}

func (s *Server) initModules(cfg ModulesConfig) error {
	enabled := cfg.Enabled
	if len(enabled) == 0 {
		enabled = defaultModules
	}
	var mods []component.Handler
	var deliveryMod component.Handler

	for _, mName := range enabled {
		fn, ok := modFns[mName]
		if !ok {
			return fmt.Errorf("xrocket: unrecognized module name: %s", mName)
		}
		mod := fn(s, cfg)

		switch m := mod.(type) {
		case *delivery.Delivery:
			// catch-all responder, always evaluated last
			deliveryMod = m
			continue

		case *xep0199.Ping:
			s.compRouter.Subscribe(m)
		}
		mods = append(mods, mod)
	}
	if deliveryMod != nil {
		mods = append(mods, deliveryMod)
	}

	// one component per local domain, all of them sharing the same modules
	s.comps = component.NewComponents(s.hosts.HostNames(), mods...)
	for _, mod := range mods {
		disco, ok := mod.(*xep0030.Disco)
		if !ok {
			continue
		}
		for _, comp := range s.comps {
			disco.RegisterProvider(comp)
		}
	}
	s.registerStarter(starterFunc(s.registerComponents))
	return nil
}

func (s *Server) registerComponents(ctx context.Context) error {
	for _, comp := range s.comps {
		if err := s.compRouter.Register(ctx, comp); err != nil {
			return err
		}
		level.Info(s.logger).Log("msg", "registered domain component",
			"domain", comp.Domain(),
			"modules", len(comp.Modules()),
		)
	}
	return nil
}
