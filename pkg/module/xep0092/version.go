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

package xep0092

import (
	"context"
	"os/exec"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	"github.com/jackal-xmpp/xrocket/pkg/module"
	xmpputil "github.com/jackal-xmpp/xrocket/pkg/util/xmpp"
	"github.com/jackal-xmpp/xrocket/pkg/version"
)

const versionNamespace = "jabber:iq:version"

const softwareName = "xrocket"

var getOSInfo = func(ctx context.Context) string {
	out, _ := exec.CommandContext(ctx, "uname", "-rs").Output()
	return strings.TrimSpace(string(out))
}

const (
	// ModuleName represents version module name.
	ModuleName = "version"

	// XEPNumber represents version XEP number.
	XEPNumber = "0092"
)

// Config contains version module configuration options.
type Config struct {
	// ShowOS reveals host operating system in version responses.
	ShowOS bool `fig:"show_os"`
}

// Version represents a version (XEP-0092) module type.
type Version struct {
	module.Base

	cfg    Config
	osInfo string
	logger kitlog.Logger
}

// New returns a new initialized version instance.
func New(cfg Config, logger kitlog.Logger) *Version {
	return &Version{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns version module name.
func (v *Version) Name() string { return ModuleName }

// Features returns version disco features.
func (v *Version) Features() []string { return []string{versionNamespace} }

// Initialize initializes version module.
func (v *Version) Initialize(ctx context.Context) error {
	if v.cfg.ShowOS {
		v.osInfo = getOSInfo(ctx)
	}
	level.Info(v.logger).Log("msg", "initialized version module", "xep", XEPNumber)
	return nil
}

// Match tells whether stanza is a software version request addressed to the server.
func (v *Version) Match(stanza stravaganza.Stanza) bool {
	return module.MatchesIQ(stanza, v)
}

// Handle processes a software version request.
func (v *Version) Handle(ctx context.Context, stanza stravaganza.Stanza) (bool, error) {
	return module.ProcessIQ(ctx, stanza, v)
}

// MatchesNamespace tells whether namespace matches version module.
func (v *Version) MatchesNamespace(namespace string, serverTarget bool) bool {
	if !serverTarget {
		return false
	}
	return namespace == versionNamespace
}

// ProcessIQ process a version iq.
func (v *Version) ProcessIQ(ctx context.Context, iq *stravaganza.IQ) error {
	if !iq.IsGet() {
		return v.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.Forbidden))
	}
	return v.getVersion(ctx, iq)
}

func (v *Version) getVersion(ctx context.Context, iq *stravaganza.IQ) error {
	q := iq.ChildNamespace("query", versionNamespace)
	if q == nil || q.ChildrenCount() > 0 {
		return v.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.BadRequest))
	}
	if err := v.Send(ctx, xmpputil.MakeResultIQ(iq, v.softwareInfo())); err != nil {
		return err
	}
	level.Debug(v.logger).Log("msg", "sent software version", "jid", iq.FromJID().String(), "xep", XEPNumber)
	return nil
}

func (v *Version) softwareInfo() stravaganza.Element {
	children := []stravaganza.Element{
		stravaganza.NewBuilder("name").WithText(softwareName).Build(),
		stravaganza.NewBuilder("version").WithText(version.Version.Number()).Build(),
	}
	if len(v.osInfo) > 0 {
		children = append(children, stravaganza.NewBuilder("os").WithText(v.osInfo).Build())
	}
	return stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, versionNamespace).
		WithChildren(children...).
		Build()
}
