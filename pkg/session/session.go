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

package session

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jackal-xmpp/stravaganza/v2"
	stanzaerror "github.com/jackal-xmpp/stravaganza/v2/errors/stanza"
	streamerror "github.com/jackal-xmpp/stravaganza/v2/errors/stream"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	xmppparser "github.com/jackal-xmpp/xrocket/pkg/parser"
	"github.com/jackal-xmpp/xrocket/pkg/transport"
	"github.com/jackal-xmpp/xrocket/pkg/util/ratelimiter"
)

const envLogStanzas = "XROCKET_LOG_STANZAS"

var logStanzas bool

func init() {
	logStanzas = os.Getenv(envLogStanzas) == "on"
}

const (
	jabberClientNamespace = "jabber:client"
	streamNamespace       = "http://etherx.jabber.org/streams"
	framingNamespace      = "urn:ietf:params:xml:ns:xmpp-framing"
	xmppErrorsNamespace   = "urn:xmpp:errors"
)

var (
	errAlreadyOpened        = errors.New("session: already opened")
	errAlreadyClosed        = errors.New("session: already closed")
	errUnsupportedTransport = errors.New("session: unsupported transport type")
)

// Config structure is used to establish XMPP session configuration.
type Config struct {
	// MaxStanzaSize defines the maximum stanza size that can be read from the session transport.
	MaxStanzaSize int
}

// Session represents a client XMPP session.
type Session struct {
	id     string
	cfg    Config
	hosts  hosts
	tr     transport.Transport
	pr     xmppParser
	logger kitlog.Logger

	streamID string
	jd       jid.JID
	opened   bool
	started  bool
}

// New creates a new session instance.
func New(identifier string, tr transport.Transport, hosts hosts, cfg Config, logger kitlog.Logger) *Session {
	return &Session{
		id:       identifier,
		cfg:      cfg,
		hosts:    hosts,
		tr:       tr,
		pr:       newParser(tr, cfg.MaxStanzaSize),
		logger:   logger,
		streamID: uuid.New().String(),
	}
}

// StreamID returns session stream identifier.
func (ss *Session) StreamID() string {
	return ss.streamID
}

// SetFromJID updates current session from JID.
func (ss *Session) SetFromJID(jd *jid.JID) {
	ss.jd = *jd
}

// OpenStream opens the outgoing stream and sends featuresElem right after it.
func (ss *Session) OpenStream(ctx context.Context, featuresElem stravaganza.Element) error {
	if ss.opened {
		return errAlreadyOpened
	}
	buf := &strings.Builder{}

	switch ss.tr.Type() {
	case transport.Socket:
		buf.WriteString(`<?xml version='1.0'?>`)
		openElem := stravaganza.NewBuilder("stream:stream").
			WithAttribute(stravaganza.Namespace, jabberClientNamespace).
			WithAttribute(stravaganza.StreamNamespace, streamNamespace).
			WithAttribute(stravaganza.Version, "1.0").
			WithAttribute(stravaganza.From, ss.jd.Domain()).
			WithAttribute(stravaganza.ID, ss.streamID).
			WithAttribute(stravaganza.Language, "en").
			Build()
		if err := openElem.ToXML(buf, false); err != nil {
			return err
		}
		if featuresElem != nil {
			if err := featuresElem.ToXML(buf, true); err != nil {
				return err
			}
		}
		if err := ss.sendString(ctx, buf.String()); err != nil {
			return err
		}

	case transport.WebSocket:
		openElem := stravaganza.NewBuilder("open").
			WithAttribute(stravaganza.Namespace, framingNamespace).
			WithAttribute(stravaganza.Version, "1.0").
			WithAttribute(stravaganza.From, ss.jd.Domain()).
			WithAttribute(stravaganza.ID, ss.streamID).
			WithAttribute(stravaganza.Language, "en").
			Build()
		if err := ss.Send(ctx, openElem); err != nil {
			return err
		}
		if featuresElem != nil {
			if err := ss.Send(ctx, featuresElem); err != nil {
				return err
			}
		}

	case transport.BOSH:
		// stream attributes travel within the session creation response
		if featuresElem != nil {
			if err := ss.Send(ctx, featuresElem); err != nil {
				return err
			}
		}

	default:
		return errUnsupportedTransport
	}
	ss.opened = true
	return nil
}

// Close closes session sending the proper XMPP payload.
func (ss *Session) Close(ctx context.Context) error {
	if !ss.opened {
		return errAlreadyClosed
	}
	var err error
	switch ss.tr.Type() {
	case transport.Socket:
		err = ss.sendString(ctx, "</stream:stream>")

	case transport.WebSocket:
		err = ss.Send(ctx, stravaganza.NewBuilder("close").
			WithAttribute(stravaganza.Namespace, framingNamespace).
			Build(),
		)
	}
	if err != nil {
		return err
	}
	ss.opened = false
	ss.started = false
	return nil
}

// Send writes an XML element to the underlying session transport.
func (ss *Session) Send(ctx context.Context, elem stravaganza.Element) error {
	if logStanzas {
		level.Debug(ss.logger).Log("msg", fmt.Sprintf("SND(%s): %v", ss.id, elem))
	}
	ss.setWriteDeadline(ctx)
	if err := elem.ToXML(ss.tr, true); err != nil {
		return err
	}
	return ss.tr.Flush()
}

// Receive returns next incoming session element.
// A nil element with a nil error means the incoming element must be ignored.
func (ss *Session) Receive() (stravaganza.Element, error) {
	elem, err := ss.pr.Parse()
	if err != nil {
		return nil, mapErrorToSessionError(err)
	}
	if elem == nil {
		return nil, nil
	}
	if logStanzas {
		level.Debug(ss.logger).Log("msg", fmt.Sprintf("RCV(%s): %v", ss.id, elem))
	}
	if elem.Name() == "stream:error" {
		return nil, nil
	}
	if !ss.started {
		if err := ss.validateStreamElement(elem); err != nil {
			return nil, err
		}
		ss.started = true
		return elem, nil
	}
	if ss.tr.Type() == transport.WebSocket && elem.Name() == "close" && elem.Attribute(stravaganza.Namespace) == framingNamespace {
		return nil, xmppparser.ErrStreamClosedByPeer
	}
	if !stravaganza.IsStanza(elem) {
		return elem, nil
	}
	return ss.buildStanza(elem)
}

// Reset resets session internal state to handle a stream restart.
func (ss *Session) Reset(tr transport.Transport) error {
	ss.streamID = uuid.New().String()
	ss.tr = tr
	ss.pr = newParser(tr, ss.cfg.MaxStanzaSize)
	ss.opened = false
	ss.started = false
	return nil
}

func (ss *Session) sendString(ctx context.Context, str string) error {
	if logStanzas {
		level.Debug(ss.logger).Log("msg", fmt.Sprintf("SND(%s): %v", ss.id, str))
	}
	ss.setWriteDeadline(ctx)
	if _, err := ss.tr.WriteString(str); err != nil {
		return err
	}
	return ss.tr.Flush()
}

func (ss *Session) validateStreamElement(elem stravaganza.Element) error {
	switch ss.tr.Type() {
	case transport.WebSocket:
		if elem.Name() != "open" {
			return streamerror.E(streamerror.UnsupportedStanzaType)
		}
		if elem.Attribute(stravaganza.Namespace) != framingNamespace {
			return streamerror.E(streamerror.InvalidNamespace)
		}
	default:
		if elem.Name() != "stream:stream" {
			return streamerror.E(streamerror.UnsupportedStanzaType)
		}
		ns := elem.Attribute(stravaganza.Namespace)
		streamNs := elem.Attribute(stravaganza.StreamNamespace)
		if ns != jabberClientNamespace || streamNs != streamNamespace {
			return streamerror.E(streamerror.InvalidNamespace)
		}
	}
	to := elem.Attribute(stravaganza.To)
	if len(to) > 0 && !ss.hosts.IsLocalHost(to) {
		return streamerror.E(streamerror.HostUnknown)
	}
	if elem.Attribute(stravaganza.Version) != "1.0" {
		return streamerror.E(streamerror.UnsupportedVersion)
	}
	return nil
}

func (ss *Session) buildStanza(elem stravaganza.Element) (stravaganza.Stanza, error) {
	ns := elem.Attribute(stravaganza.Namespace)
	if len(ns) > 0 && ns != jabberClientNamespace {
		return nil, streamerror.E(streamerror.InvalidNamespace)
	}
	fromJID, toJID, err := ss.extractAddresses(elem)
	if err != nil {
		return nil, err
	}
	sb := stravaganza.NewBuilderFromElement(elem).
		WithAttribute(stravaganza.From, fromJID.String()).
		WithAttribute(stravaganza.To, toJID.String()).
		WithoutAttribute(stravaganza.Namespace)

	var stanza stravaganza.Stanza
	switch elem.Name() {
	case "iq":
		stanza, err = sb.BuildIQ()
	case "presence":
		stanza, err = sb.BuildPresence()
	case "message":
		stanza, err = sb.BuildMessage()
	default:
		return nil, streamerror.E(streamerror.UnsupportedStanzaType)
	}
	if err != nil {
		return nil, stanzaerror.E(stanzaerror.BadRequest, elem)
	}
	return stanza, nil
}

// extractAddresses keeps a well-formed client provided 'from' value, so that
// sender verification can be performed later on by the connection router.
func (ss *Session) extractAddresses(elem stravaganza.Element) (fromJID *jid.JID, toJID *jid.JID, err error) {
	fromJID = &ss.jd
	if from := elem.Attribute(stravaganza.From); len(from) > 0 {
		if j, err := jid.NewWithString(from, false); err == nil {
			fromJID = j
		}
	}
	to := elem.Attribute(stravaganza.To)
	if len(to) > 0 {
		toJID, err = jid.NewWithString(to, false)
		if err != nil {
			return nil, nil, stanzaerror.E(stanzaerror.JIDMalformed, elem)
		}
		return fromJID, toJID, nil
	}
	if len(ss.jd.Node()) > 0 {
		return fromJID, ss.jd.ToBareJID(), nil
	}
	toJID, _ = jid.NewWithString(ss.hosts.DefaultHostName(), true)
	return fromJID, toJID, nil
}

func (ss *Session) setWriteDeadline(ctx context.Context) {
	d, ok := ctx.Deadline()
	if !ok {
		return
	}
	_ = ss.tr.SetWriteDeadline(d)
}

func newParser(tr transport.Transport, maxStanzaSize int) *xmppparser.Parser {
	pm := xmppparser.SocketStream
	if tr.Type() == transport.WebSocket {
		pm = xmppparser.DefaultMode
	}
	return xmppparser.New(tr, pm, maxStanzaSize)
}

func mapErrorToSessionError(err error) error {
	switch {
	case errors.Is(err, ratelimiter.ErrReadLimitExceeded):
		return policyViolation(err, "rate-limit-exceeded")

	case errors.Is(err, xmppparser.ErrTooLargeStanza):
		return policyViolation(err, "stanza-too-big")

	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		return io.EOF
	}
	switch err := err.(type) {
	case *xml.SyntaxError:
		se := streamerror.E(streamerror.InvalidXML)
		se.Err = err
		return se

	case net.Error:
		if !err.Timeout() {
			return err
		}
		se := streamerror.E(streamerror.ConnectionTimeout)
		se.Err = err
		return se

	default:
		return err
	}
}

func policyViolation(err error, appCondition string) *streamerror.Error {
	se := streamerror.E(streamerror.PolicyViolation)
	se.Err = err
	se.ApplicationElement = stravaganza.NewBuilder(appCondition).
		WithAttribute(stravaganza.Namespace, xmppErrorsNamespace).
		Build()
	return se
}
