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
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/jackal-xmpp/runqueue/v2"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	streamerror "github.com/jackal-xmpp/stravaganza/v2/errors/stream"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	"github.com/jackal-xmpp/xrocket/pkg/auth"
	"github.com/jackal-xmpp/xrocket/pkg/host"
	xmppparser "github.com/jackal-xmpp/xrocket/pkg/parser"
	xmppsession "github.com/jackal-xmpp/xrocket/pkg/session"
	"github.com/jackal-xmpp/xrocket/pkg/transport"
	xmpputil "github.com/jackal-xmpp/xrocket/pkg/util/xmpp"
)

type state uint32

const (
	inConnecting state = iota
	inConnected
	inAuthenticating
	inAuthenticated
	inBinded
	inDisconnected
	inTerminated
)

var errStreamTerminated = errors.New("c2s: stream terminated")

type inCfg struct {
	mechanisms          []string
	maxStanzaSize       int
	maxAuthFailures     int
	authenticateTimeout time.Duration
	reqTimeout          time.Duration
}

func inCfgFromStreamConfig(cfg StreamConfig) inCfg {
	ic := inCfg{
		mechanisms:          cfg.SASL.Mechanisms,
		maxStanzaSize:       cfg.MaxStanzaSize,
		maxAuthFailures:     cfg.MaxAuthFailures,
		authenticateTimeout: cfg.AuthenticateTimeout,
		reqTimeout:          cfg.RequestTimeout,
	}
	if ic.maxAuthFailures <= 0 {
		ic.maxAuthFailures = 5
	}
	if ic.authenticateTimeout <= 0 {
		ic.authenticateTimeout = time.Second * 10
	}
	if ic.reqTimeout <= 0 {
		ic.reqTimeout = time.Second * 15
	}
	return ic
}

type inC2S struct {
	id          string
	cfg         inCfg
	tr          transport.Transport
	session     session
	hosts       hosts
	authMethods authMethods
	logger      kitlog.Logger
	rq          *runqueue.RunQueue
	authTm      *time.Timer
	doneCh      chan struct{}
	authDoneCh  chan struct{}

	// accessed from the run queue only
	authFailures   int
	authSeq        uint64
	authenticated  bool
	sessionStarted bool

	mu    sync.RWMutex
	state state
	jd    *jid.JID
	hdl   StreamHandler
}

func newInC2S(
	cfg inCfg,
	tr transport.Transport,
	hosts *host.Hosts,
	authMethods authMethods,
	logger kitlog.Logger,
) *inC2S {
	id := nextStreamID()

	sLogger := kitlog.With(logger, "id", id)
	session := xmppsession.New(
		id,
		tr,
		hosts,
		xmppsession.Config{
			MaxStanzaSize: cfg.maxStanzaSize,
		},
		sLogger,
	)
	return &inC2S{
		id:          id,
		cfg:         cfg,
		tr:          tr,
		session:     session,
		hosts:       hosts,
		authMethods: authMethods,
		logger:      sLogger,
		rq:          runqueue.New(id),
		doneCh:      make(chan struct{}),
		state:       inConnecting,
	}
}

func (s *inC2S) ID() string {
	return s.id
}

func (s *inC2S) JID() *jid.JID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jd
}

func (s *inC2S) Domain() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if jd := s.jd; jd != nil {
		return jd.Domain()
	}
	return ""
}

func (s *inC2S) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if jd := s.jd; jd != nil {
		return jd.Node()
	}
	return ""
}

func (s *inC2S) SetHandler(h StreamHandler) {
	s.mu.Lock()
	s.hdl = h
	s.mu.Unlock()
}

func (s *inC2S) SendElement(elem stravaganza.Element) <-chan error {
	errCh := make(chan error, 1)
	s.rq.Run(func() {
		if s.getState() == inTerminated {
			errCh <- errStreamTerminated
			return
		}
		ctx, cancel := s.requestContext()
		defer cancel()
		errCh <- s.sendElement(ctx, elem)
	})
	return errCh
}

func (s *inC2S) Disconnect(streamErr *streamerror.Error) <-chan error {
	errCh := make(chan error, 1)
	s.rq.Run(func() {
		ctx, cancel := s.requestContext()
		defer cancel()
		errCh <- s.disconnect(ctx, streamErr)
	})
	return errCh
}

func (s *inC2S) Done() <-chan struct{} {
	return s.doneCh
}

func (s *inC2S) start() {
	reportConnectionRegistered(s.tr.Type().String())
	level.Debug(s.logger).Log("msg", "C2S stream connected", "transport", s.tr.Type().String(), "remote_addr", s.tr.RemoteAddr())

	s.readLoop()
}

func (s *inC2S) readLoop() {
	s.restartSession()

	s.authTm = time.AfterFunc(s.cfg.authenticateTimeout, s.authTimeout)
	defer s.authTm.Stop()

	for {
		elem, sErr := s.session.Receive()

		// process result and update state accordingly
		authDoneCh := s.handleSessionResult(elem, sErr)

		// stream restarts after authentication, so that nothing
		// is read until the in-flight attempt resolves
		if authDoneCh != nil {
			select {
			case <-authDoneCh:
			case <-s.doneCh:
			}
		}
		switch s.getState() {
		case inDisconnected, inTerminated:
			return
		}
	}
}

func (s *inC2S) handleSessionResult(elem stravaganza.Element, sErr error) (authDoneCh <-chan struct{}) {
	handledCh := make(chan struct{})
	s.rq.Run(func() {
		defer close(handledCh)

		ctx, cancel := s.requestContext()
		defer cancel()

		switch {
		case sErr == nil && elem != nil:
			if err := s.handleElement(ctx, elem); err != nil {
				level.Warn(s.logger).Log("msg", "failed to process incoming C2S session element", "err", err)
			}

		case sErr != nil:
			s.handleSessionError(ctx, sErr)
		}
		if s.getState() == inAuthenticating {
			authDoneCh = s.authDoneCh
		}
	})
	<-handledCh
	return authDoneCh
}

func (s *inC2S) authTimeout() {
	s.rq.Run(func() {
		if s.authenticated {
			return
		}
		ctx, cancel := s.requestContext()
		defer cancel()
		_ = s.disconnect(ctx, streamerror.E(streamerror.ConnectionTimeout))
	})
}

func (s *inC2S) handleElement(ctx context.Context, elem stravaganza.Element) error {
	var err error

	t0 := time.Now()
	switch s.getState() {
	case inConnecting:
		err = s.handleConnecting(ctx, elem)
	case inConnected:
		err = s.handleConnected(ctx, elem)
	case inAuthenticated:
		err = s.handleAuthenticated(ctx, elem)
	case inBinded:
		err = s.handleBinded(ctx, elem)
	}
	reportIncomingRequest(
		elem.Name(),
		elem.Attribute(stravaganza.Type),
		time.Since(t0).Seconds(),
	)
	return err
}

func (s *inC2S) handleConnecting(ctx context.Context, elem stravaganza.Element) error {
	// assign stream domain if not set yet
	if len(s.Domain()) == 0 {
		domain := elem.Attribute(stravaganza.To)
		if len(domain) == 0 {
			domain = s.hosts.DefaultHostName()
		}
		j, err := jid.New("", domain, "", false)
		if err != nil {
			return s.disconnect(ctx, streamerror.E(streamerror.HostUnknown))
		}
		s.setJID(j)
	}
	s.session.SetFromJID(s.JID())

	fb := stravaganza.NewBuilder("stream:features").
		WithAttribute(stravaganza.StreamNamespace, streamNamespace).
		WithAttribute(stravaganza.Version, "1.0")

	if !s.authenticated {
		fb.WithChildren(s.unauthenticatedFeatures()...)
		s.setState(inConnected)
	} else {
		fb.WithChildren(s.authenticatedFeatures()...)
		s.setState(inAuthenticated)
	}
	return s.session.OpenStream(ctx, fb.Build())
}

func (s *inC2S) handleConnected(ctx context.Context, elem stravaganza.Element) error {
	switch elem.Name() {
	case "auth":
		return s.startAuthentication(ctx, elem)

	case "abort":
		if elem.Attribute(stravaganza.Namespace) != saslNamespace {
			return s.disconnect(ctx, streamerror.E(streamerror.InvalidNamespace))
		}
		return s.sendElement(ctx, saslAborted.failure())

	case "iq":
		iq, ok := elem.(*stravaganza.IQ)
		if !ok {
			return s.disconnect(ctx, streamerror.E(streamerror.UnsupportedStanzaType))
		}
		if iq.ChildNamespace("query", iqAuthNamespace) != nil {
			// do not allow non-SASL authentication
			return s.sendElement(ctx, stanzaerror.E(stanzaerror.ServiceUnavailable, iq).Element())
		}
		if iq.ChildNamespace("query", registerNamespace) != nil {
			return s.register(ctx, iq)
		}
		return s.disconnect(ctx, streamerror.E(streamerror.NotAuthorized))

	case "message", "presence":
		return s.disconnect(ctx, streamerror.E(streamerror.NotAuthorized))

	default:
		return s.disconnect(ctx, streamerror.E(streamerror.UnsupportedStanzaType))
	}
}

func (s *inC2S) handleAuthenticated(ctx context.Context, elem stravaganza.Element) error {
	switch iq := elem.(type) {
	case *stravaganza.IQ:
		return s.bindResource(ctx, iq)
	default:
		return s.disconnect(ctx, streamerror.E(streamerror.UnsupportedStanzaType))
	}
}

func (s *inC2S) handleBinded(ctx context.Context, elem stravaganza.Element) error {
	switch stanza := elem.(type) {
	case stravaganza.Stanza:
		return s.processStanza(ctx, stanza)

	default:
		return s.disconnect(ctx, streamerror.E(streamerror.UnsupportedStanzaType))
	}
}

func (s *inC2S) processStanza(ctx context.Context, stanza stravaganza.Stanza) error {
	if iq, ok := stanza.(*stravaganza.IQ); ok {
		if iq.IsSet() && iq.ChildNamespace("session", sessionNamespace) != nil {
			if !s.sessionStarted {
				s.sessionStarted = true
				return s.sendElement(ctx, iq.ResultBuilder().Build())
			}
			return s.sendElement(ctx, stanzaerror.E(stanzaerror.NotAllowed, iq).Element())
		}
		if iq.ChildNamespace("query", registerNamespace) != nil && xmpputil.IsServerAddressed(iq) {
			return s.register(ctx, iq)
		}
	}
	if hdl := s.handler(); hdl != nil {
		hdl.Stanza(ctx, s, stanza)
	}
	return nil
}

func (s *inC2S) handleSessionError(ctx context.Context, err error) {
	switch err := err.(type) {
	case *streamerror.Error:
		if err.Err != nil {
			level.Debug(s.logger).Log("msg", "C2S session error", "err", err.Err)
		}
		_ = s.disconnect(ctx, err)

	case *stanzaerror.Error:
		_ = s.sendElement(ctx, err.Element())

	default:
		if errors.Is(err, xmppparser.ErrStreamClosedByPeer) {
			_ = s.session.Close(ctx)
		} else if !errors.Is(err, io.EOF) {
			level.Debug(s.logger).Log("msg", "C2S stream closed", "err", err)
		}
		_ = s.close(ctx)
	}
}

func (s *inC2S) unauthenticatedFeatures() []stravaganza.Element {
	var features []stravaganza.Element

	sb := stravaganza.NewBuilder("mechanisms").
		WithAttribute(stravaganza.Namespace, saslNamespace)

	var offered int
	for _, mech := range s.cfg.mechanisms {
		if len(s.authMethods.FindAuthMethod(mech)) == 0 {
			continue // no backend available
		}
		sb.WithChild(
			stravaganza.NewBuilder("mechanism").
				WithText(strings.ToUpper(mech)).
				Build(),
		)
		offered++
	}
	if offered > 0 {
		features = append(features, sb.Build())
	}
	return features
}

func (s *inC2S) authenticatedFeatures() []stravaganza.Element {
	bindElem := stravaganza.NewBuilder("bind").
		WithAttribute(stravaganza.Namespace, bindNamespace).
		WithChild(stravaganza.NewBuilder("required").Build()).
		Build()

	// [rfc6121] offer session feature for backward compatibility
	sessElem := stravaganza.NewBuilder("session").
		WithAttribute(stravaganza.Namespace, sessionNamespace).
		WithChild(stravaganza.NewBuilder("optional").Build()).
		Build()

	return []stravaganza.Element{bindElem, sessElem}
}

func (s *inC2S) isMechanismOffered(mech string) bool {
	for _, m := range s.cfg.mechanisms {
		if strings.EqualFold(m, mech) {
			return len(s.authMethods.FindAuthMethod(mech)) > 0
		}
	}
	return false
}

func (s *inC2S) startAuthentication(ctx context.Context, elem stravaganza.Element) error {
	if elem.Attribute(stravaganza.Namespace) != saslNamespace {
		return s.disconnect(ctx, streamerror.E(streamerror.InvalidNamespace))
	}
	if !s.isMechanismOffered(elem.Attribute("mechanism")) {
		return s.sendElement(ctx, saslInvalidMechanism.failure())
	}
	opts, err := decodeSASLAuth(elem)
	if err != nil {
		return s.failAuthentication(ctx, err)
	}
	hdl := s.handler()
	if hdl == nil {
		return s.sendElement(ctx, saslTemporaryFailure.failure())
	}
	s.setState(inAuthenticating)

	s.authSeq++
	seq := s.authSeq
	authDoneCh := make(chan struct{})
	s.authDoneCh = authDoneCh

	go func() {
		defer close(authDoneCh)

		authCtx, cancel := s.requestContext()
		aErr := hdl.Authenticate(authCtx, opts)
		cancel()

		doneCh := make(chan struct{})
		s.rq.Run(func() {
			defer close(doneCh)

			// stream may have moved on while authenticating
			if s.getState() != inAuthenticating || s.authSeq != seq {
				level.Debug(s.logger).Log("msg", "discarded stale authentication result")
				return
			}
			fnCtx, fnCancel := s.requestContext()
			defer fnCancel()

			if err := s.finishAuthentication(fnCtx, opts, aErr); err != nil {
				level.Warn(s.logger).Log("msg", "failed to finish authentication", "err", err)
			}
		})
		<-doneCh
	}()
	return nil
}

func (s *inC2S) finishAuthentication(ctx context.Context, opts *auth.Options, authErr error) error {
	if authErr != nil {
		reportAuthentication(opts.SASLMech, false)
		level.Info(s.logger).Log("msg", "C2S authentication failed", "mech", opts.SASLMech, "err", authErr)
		return s.failAuthentication(ctx, saslNotAuthorized)
	}
	username := opts.ResolveUsername()

	j, err := jid.New(username, s.Domain(), "", false)
	if err != nil {
		reportAuthentication(opts.SASLMech, false)
		return s.failAuthentication(ctx, saslNotAuthorized)
	}
	reportAuthentication(opts.SASLMech, true)

	s.setJID(j)
	s.authenticated = true
	if s.authTm != nil {
		s.authTm.Stop()
	}

	if err := s.sendElement(ctx, saslSuccess()); err != nil {
		return err
	}
	level.Info(s.logger).Log("msg", "authenticated C2S stream", "username", username, "mech", opts.SASLMech)

	s.restartSession()
	return nil
}

func (s *inC2S) failAuthentication(ctx context.Context, err error) error {
	cond, ok := err.(saslCondition)
	if !ok {
		cond = saslTemporaryFailure
	}
	s.authFailures++
	if s.authFailures >= s.cfg.maxAuthFailures {
		return s.disconnect(ctx, streamerror.E(streamerror.PolicyViolation))
	}
	s.setState(inConnected)
	return s.sendElement(ctx, cond.failure())
}

func (s *inC2S) register(ctx context.Context, iq *stravaganza.IQ) error {
	hdl := s.handler()
	if hdl == nil {
		return s.sendElement(ctx, stanzaerror.E(stanzaerror.ServiceUnavailable, iq).Element())
	}
	opts := &auth.Options{Username: s.Username()}
	if q := iq.ChildNamespace("query", registerNamespace); q != nil {
		if u := q.Child("username"); u != nil {
			opts.Username = u.Text()
		}
		if p := q.Child("password"); p != nil {
			opts.Password = p.Text()
		}
	}
	err := hdl.Register(ctx, opts)
	opts.WipePassword()

	switch err := err.(type) {
	case nil:
		return s.sendElement(ctx, xmpputil.MakeResultIQ(iq, nil))
	case *RegisterError:
		return s.sendElement(ctx, registerErrorIQ(iq, err))
	default:
		level.Warn(s.logger).Log("msg", "registration failed", "err", err)
		return s.sendElement(ctx, stanzaerror.E(stanzaerror.InternalServerError, iq).Element())
	}
}

func (s *inC2S) bindResource(ctx context.Context, iq *stravaganza.IQ) error {
	bind := iq.ChildNamespace("bind", bindNamespace)
	if !iq.IsSet() || bind == nil {
		return s.sendElement(ctx, stanzaerror.E(stanzaerror.NotAllowed, iq).Element())
	}
	var res string
	if resElem := bind.Child("resource"); resElem != nil {
		res = strings.TrimSpace(resElem.Text())
	}
	if len(res) == 0 {
		res = uuid.New().String() // server generated
	}
	userJID, err := jid.New(s.Username(), s.Domain(), res, false)
	if err != nil {
		return s.sendElement(ctx, stanzaerror.E(stanzaerror.BadRequest, iq).Element())
	}
	s.setJID(userJID)
	s.session.SetFromJID(userJID)
	s.setState(inBinded)

	// notify successful binding
	resIQ := xmpputil.MakeResultIQ(iq,
		stravaganza.NewBuilder("bind").
			WithAttribute(stravaganza.Namespace, bindNamespace).
			WithChild(
				stravaganza.NewBuilder("jid").
					WithText(userJID.String()).
					Build(),
			).
			Build(),
	)
	if err := s.sendElement(ctx, resIQ); err != nil {
		return err
	}
	level.Info(s.logger).Log("msg", "binded C2S stream", "jid", userJID.String())

	if hdl := s.handler(); hdl != nil {
		hdl.Online(ctx, s)
	}
	return nil
}

func (s *inC2S) disconnect(ctx context.Context, streamErr *streamerror.Error) error {
	switch s.getState() {
	case inDisconnected, inTerminated:
		return nil
	case inConnecting:
		_ = s.session.OpenStream(ctx, nil)
	}
	if streamErr != nil {
		if err := s.sendElement(ctx, streamErr.Element()); err != nil {
			level.Debug(s.logger).Log("msg", "failed to send stream error", "err", err)
		}
	}
	_ = s.session.Close(ctx)

	return s.close(ctx)
}

func (s *inC2S) close(ctx context.Context) error {
	switch s.getState() {
	case inDisconnected, inTerminated:
		return nil
	}
	wasBinded := s.getState() == inBinded
	s.setState(inDisconnected)

	if s.authTm != nil {
		s.authTm.Stop()
	}
	if hdl := s.handler(); hdl != nil && wasBinded {
		hdl.Close(ctx, s)
	}
	return s.terminate()
}

func (s *inC2S) terminate() error {
	reportConnectionUnregistered(s.tr.Type().String())

	// close underlying transport
	err := s.tr.Close()

	close(s.doneCh) // signal termination
	s.setState(inTerminated)

	level.Debug(s.logger).Log("msg", "C2S stream terminated")
	return err
}

func (s *inC2S) restartSession() {
	_ = s.session.Reset(s.tr)
	s.setState(inConnecting)
}

func (s *inC2S) sendElement(ctx context.Context, elem stravaganza.Element) error {
	err := s.session.Send(ctx, elem)

	reportOutgoingRequest(
		elem.Name(),
		elem.Attribute(stravaganza.Type),
	)
	return err
}

func (s *inC2S) handler() StreamHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hdl
}

func (s *inC2S) setJID(jd *jid.JID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jd = jd
}

func (s *inC2S) setState(state state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *inC2S) getState() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *inC2S) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.cfg.reqTimeout)
}

func registerErrorIQ(iq *stravaganza.IQ, regErr *RegisterError) stravaganza.Element {
	b := stravaganza.NewBuilderFromElement(iq).
		WithAttribute(stravaganza.Type, stravaganza.ErrorType).
		WithChild(regErr.Element())
	if from := iq.Attribute(stravaganza.From); len(from) > 0 {
		b.WithAttribute(stravaganza.To, from)
	}
	if to := iq.Attribute(stravaganza.To); len(to) > 0 {
		b.WithAttribute(stravaganza.From, to)
	}
	return b.Build()
}

var currentID uint64

func nextStreamID() string {
	return fmt.Sprintf("c2s:%d", atomic.AddUint64(&currentID, 1))
}
