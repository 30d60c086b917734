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
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jackal-xmpp/stravaganza/v2"
	xmppparser "github.com/jackal-xmpp/xrocket/pkg/parser"
)

const (
	httpBindNamespace     = "http://jabber.org/protocol/httpbind"
	xboshNamespace        = "urn:xmpp:xbosh"
	streamNamespace       = "http://etherx.jabber.org/streams"
	jabberClientNamespace = "jabber:client"
	boshVersion           = "1.11"
)

const terminateType = "terminate"

var errInvalidBody = errors.New("bosh: invalid body")

type body struct {
	elem stravaganza.Element

	rid       int64
	sid       string
	to        string
	lang      string
	wait      time.Duration
	hold      int
	restart   bool
	terminate bool
}

func parseBody(r io.Reader, maxSize int) (*body, error) {
	elem, err := xmppparser.New(r, xmppparser.DefaultMode, maxSize).Parse()
	if err != nil {
		return nil, err
	}
	if elem.Name() != "body" || elem.Attribute(stravaganza.Namespace) != httpBindNamespace {
		return nil, errInvalidBody
	}
	rid, err := strconv.ParseInt(elem.Attribute("rid"), 10, 64)
	if err != nil || rid <= 0 {
		return nil, fmt.Errorf("bosh: invalid rid: %q", elem.Attribute("rid"))
	}
	b := &body{
		elem:      elem,
		rid:       rid,
		sid:       elem.Attribute("sid"),
		to:        elem.Attribute(stravaganza.To),
		lang:      elem.Attribute(stravaganza.Language),
		hold:      -1,
		restart:   elem.Attribute("xmpp:restart") == "true",
		terminate: elem.Attribute(stravaganza.Type) == terminateType,
	}
	if w := elem.Attribute("wait"); len(w) > 0 {
		secs, err := strconv.Atoi(w)
		if err != nil || secs < 0 {
			return nil, fmt.Errorf("bosh: invalid wait: %q", w)
		}
		b.wait = time.Duration(secs) * time.Second
	}
	if h := elem.Attribute("hold"); len(h) > 0 {
		hold, err := strconv.Atoi(h)
		if err != nil || hold < 0 {
			return nil, fmt.Errorf("bosh: invalid hold: %q", h)
		}
		b.hold = hold
	}
	return b, nil
}

// streamOpen returns the stream header fed to the stream parser on session creation and restarts.
func streamOpen(to, lang string) string {
	sb := &strings.Builder{}
	sb.WriteString(`<stream:stream xmlns="`)
	sb.WriteString(jabberClientNamespace)
	sb.WriteString(`" xmlns:stream="`)
	sb.WriteString(streamNamespace)
	sb.WriteString(`" version="1.0"`)
	if len(to) > 0 {
		writeAttr(sb, "to", to)
	}
	if len(lang) > 0 {
		writeAttr(sb, "xml:lang", lang)
	}
	sb.WriteString(">")
	return sb.String()
}

const streamClose = "</stream:stream>"

type attr struct {
	label string
	value string
}

// encodeBody serializes a response body wrapping already encoded payload fragments.
func encodeBody(attrs []attr, fragments [][]byte) []byte {
	sb := &strings.Builder{}
	sb.WriteString(`<body xmlns="`)
	sb.WriteString(httpBindNamespace)
	sb.WriteString(`"`)
	for _, a := range attrs {
		writeAttr(sb, a.label, a.value)
	}
	if len(fragments) == 0 {
		sb.WriteString("/>")
		return []byte(sb.String())
	}
	sb.WriteString(">")
	for _, f := range fragments {
		sb.Write(f)
	}
	sb.WriteString("</body>")
	return []byte(sb.String())
}

func writeAttr(sb *strings.Builder, label, value string) {
	sb.WriteString(" ")
	sb.WriteString(label)
	sb.WriteString(`="`)
	sb.WriteString(escapeAttr(value))
	sb.WriteString(`"`)
}

var attrEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&apos;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
