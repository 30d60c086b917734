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

package xep0199

import (
	"context"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	streamerror "github.com/jackal-xmpp/stravaganza/v2/errors/stream"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/jackal-xmpp/xrocket/pkg/module"
	xmpputil "github.com/jackal-xmpp/xrocket/pkg/util/xmpp"
)

const pingNamespace = "urn:xmpp:ping"

const (
	// ModuleName represents ping module name.
	ModuleName = "ping"

	// XEPNumber represents ping XEP number.
	XEPNumber = "0199"
)

const (
	modRequestTimeout = time.Second * 5

	killAction = "kill"
)

// Config contains ping module configuration options.
type Config struct {
	// SendPings tells whether or not server pings should be sent.
	SendPings bool `fig:"send_pings"`

	// Interval tells how long a client may stay idle before being pinged.
	Interval time.Duration `fig:"interval" default:"1m"`

	// AckTimeout tells how long should we wait until considering a client to be disconnected.
	AckTimeout time.Duration `fig:"ack_timeout" default:"32s"`

	// TimeoutAction specifies the action to be taken when a client is considered as disconnected.
	TimeoutAction string `fig:"timeout_action" default:"none"`
}

// Ping represents ping (XEP-0199) module type.
//
// Besides answering pings addressed to the server, it can be subscribed to a router
// to keep track of connected clients and ping them after a period of inactivity.
type Ping struct {
	module.Base

	cfg          Config
	disconnector clientDisconnector
	logger       kitlog.Logger

	mu         sync.Mutex
	pingTimers map[string]*time.Timer
	ackTimers  map[string]*time.Timer
	pendingIDs map[string]string
}

// New returns a new initialized ping instance.
func New(cfg Config, disconnector clientDisconnector, logger kitlog.Logger) *Ping {
	return &Ping{
		cfg:          cfg,
		disconnector: disconnector,
		logger:       logger,
		pingTimers:   make(map[string]*time.Timer),
		ackTimers:    make(map[string]*time.Timer),
		pendingIDs:   make(map[string]string),
	}
}

// Name returns ping module name.
func (p *Ping) Name() string { return ModuleName }

// Features returns ping disco features.
func (p *Ping) Features() []string { return []string{pingNamespace} }

// Initialize initializes ping module.
func (p *Ping) Initialize(_ context.Context) error {
	level.Info(p.logger).Log("msg", "initialized ping module", "xep", XEPNumber, "send_pings", p.cfg.SendPings)
	return nil
}

// Match tells whether stanza is a ping request or the answer to a server ping.
func (p *Ping) Match(stanza stravaganza.Stanza) bool {
	return module.MatchesIQ(stanza, p) || p.isPong(stanza)
}

// Handle processes a matched stanza.
func (p *Ping) Handle(ctx context.Context, stanza stravaganza.Stanza) (bool, error) {
	if p.isPong(stanza) {
		p.cancelAckTimer(stanza.FromJID(), stanza.Attribute(stravaganza.ID))
		return true, nil
	}
	return module.ProcessIQ(ctx, stanza, p)
}

// MatchesNamespace tells whether namespace matches ping module.
func (p *Ping) MatchesNamespace(namespace string, _ bool) bool {
	return namespace == pingNamespace
}

// ProcessIQ process a ping iq.
func (p *Ping) ProcessIQ(ctx context.Context, iq *stravaganza.IQ) error {
	switch {
	case isPingIQ(iq):
		return p.Send(ctx, xmpputil.MakeResultIQ(iq, nil))
	default:
		return p.Send(ctx, xmpputil.MakeErrorStanza(iq, stanzaerror.BadRequest))
	}
}

// Connect schedules the first ping for a newly available client.
func (p *Ping) Connect(_ context.Context, j *jid.JID) {
	if !p.cfg.SendPings || j == nil {
		return
	}
	p.schedulePing(j)
}

// Stanza postpones the next ping to a client whenever it shows some activity.
func (p *Ping) Stanza(_ context.Context, stanza stravaganza.Stanza) {
	if !p.cfg.SendPings {
		return
	}
	fromJID := stanza.FromJID()
	if fromJID == nil || !fromJID.IsFull() {
		return
	}
	p.mu.Lock()
	_, ok := p.pingTimers[fromJID.String()]
	p.mu.Unlock()
	if !ok {
		return
	}
	p.schedulePing(fromJID)
}

// Disconnect stops tracking a client.
func (p *Ping) Disconnect(_ context.Context, j *jid.JID) {
	if j == nil {
		return
	}
	p.cancelTimers(j)
}

func (p *Ping) isPong(stanza stravaganza.Stanza) bool {
	iq, ok := stanza.(*stravaganza.IQ)
	if !ok || !(iq.IsResult() || iq.IsError()) {
		return false
	}
	fromJID := iq.FromJID()
	if fromJID == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.pendingIDs[fromJID.String()]
	return ok && id == iq.Attribute(stravaganza.ID)
}

func (p *Ping) schedulePing(jd *jid.JID) {
	jk := jd.String()

	p.mu.Lock()
	if tm := p.pingTimers[jk]; tm != nil {
		tm.Stop()
	}
	p.pingTimers[jk] = time.AfterFunc(p.cfg.Interval, func() {
		p.sendPing(jd)
	})
	p.mu.Unlock()
}

func (p *Ping) sendPing(jd *jid.JID) {
	pingID := uuid.New().String()

	iq, _ := stravaganza.NewIQBuilder().
		WithAttribute(stravaganza.ID, pingID).
		WithAttribute(stravaganza.Type, stravaganza.GetType).
		WithAttribute(stravaganza.From, jd.Domain()).
		WithAttribute(stravaganza.To, jd.String()).
		WithChild(
			stravaganza.NewBuilder("ping").
				WithAttribute(stravaganza.Namespace, pingNamespace).
				Build(),
		).
		BuildIQ()

	// schedule ack timeout
	jk := jd.String()
	p.mu.Lock()
	if _, ok := p.pingTimers[jk]; !ok {
		p.mu.Unlock()
		return // already gone
	}
	if tm := p.ackTimers[jk]; tm != nil {
		tm.Stop()
	}
	p.pendingIDs[jk] = pingID
	p.ackTimers[jk] = time.AfterFunc(p.cfg.AckTimeout, func() {
		p.timeout(jd)
	})
	p.mu.Unlock()

	// send ping IQ
	ctx, cancel := context.WithTimeout(context.Background(), modRequestTimeout)
	defer cancel()

	if err := p.Send(ctx, iq); err != nil {
		level.Warn(p.logger).Log("msg", "failed to send ping", "jid", jk, "err", err, "xep", XEPNumber)
		return
	}
	level.Debug(p.logger).Log("msg", "sent ping", "jid", jk, "xep", XEPNumber)
}

func (p *Ping) timeout(jd *jid.JID) {
	jk := jd.String()

	p.mu.Lock()
	delete(p.pendingIDs, jk)
	delete(p.ackTimers, jk)
	p.mu.Unlock()

	// perform timeout action
	switch p.cfg.TimeoutAction {
	case killAction:
		if p.disconnector != nil {
			p.disconnector.DisconnectClient(jd, streamerror.E(streamerror.ConnectionTimeout))
		}
	default:
		p.schedulePing(jd)
	}
	level.Info(p.logger).Log("msg", "ping timeout", "jid", jk, "action", p.cfg.TimeoutAction, "xep", XEPNumber)
}

func (p *Ping) cancelAckTimer(jd *jid.JID, id string) {
	jk := jd.String()

	p.mu.Lock()
	if p.pendingIDs[jk] == id {
		if tm := p.ackTimers[jk]; tm != nil {
			tm.Stop()
		}
		delete(p.ackTimers, jk)
		delete(p.pendingIDs, jk)
	}
	_, tracked := p.pingTimers[jk]
	p.mu.Unlock()

	if tracked {
		p.schedulePing(jd)
	}
}

func (p *Ping) cancelTimers(jd *jid.JID) {
	jk := jd.String()

	p.mu.Lock()
	if tm := p.pingTimers[jk]; tm != nil {
		tm.Stop()
	}
	if tm := p.ackTimers[jk]; tm != nil {
		tm.Stop()
	}
	delete(p.pingTimers, jk)
	delete(p.ackTimers, jk)
	delete(p.pendingIDs, jk)
	p.mu.Unlock()
}

func isPingIQ(iq *stravaganza.IQ) bool {
	return iq.IsGet() && iq.ChildNamespace("ping", pingNamespace) != nil
}
