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

package xmppparser

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/jackal-xmpp/stravaganza/v2"
)

// ParsingMode defines the way in which special parsed element
// should be considered or not according to the reader nature.
type ParsingMode int

const (
	// DefaultMode treats incoming elements as provided from raw byte reader.
	DefaultMode = ParsingMode(iota)

	// SocketStream treats incoming elements as provided from a socket transport,
	// where <stream:stream> opening and closing tags are delivered on their own.
	SocketStream
)

const streamName = "stream"

var (
	// ErrTooLargeStanza will be returned by Parse when the size of the incoming stanza is too large.
	ErrTooLargeStanza = errors.New("parser: too large stanza")

	// ErrStreamClosedByPeer will be returned by Parse when stream closed element is parsed.
	ErrStreamClosedByPeer = errors.New("parser: stream closed by peer")
)

// Parser parses arbitrary XML input and builds stravaganza elements out of it.
type Parser struct {
	mode          ParsingMode
	dec           *xml.Decoder
	stack         []*stravaganza.Builder
	rootOffset    int64
	maxStanzaSize int64
}

// New creates an empty Parser instance.
// If reader implements io.ByteReader no extra buffering is done, so that
// a new parser may take over the same reader without losing unread input.
func New(reader io.Reader, mode ParsingMode, maxStanzaSize int) *Parser {
	if _, ok := reader.(io.ByteReader); !ok {
		reader = bufio.NewReader(reader)
	}
	return &Parser{
		mode:          mode,
		dec:           xml.NewDecoder(reader),
		maxStanzaSize: int64(maxStanzaSize),
	}
}

// Parse blocks until next root level XML element is available and returns it.
func (p *Parser) Parse() (stravaganza.Element, error) {
	for {
		t, err := p.dec.RawToken()
		if err != nil {
			return nil, err
		}
		if len(p.stack) > 0 && p.maxStanzaSize > 0 && p.dec.InputOffset()-p.rootOffset > p.maxStanzaSize {
			return nil, ErrTooLargeStanza
		}
		switch tk := t.(type) {
		case xml.StartElement:
			if p.mode == SocketStream && isStreamName(tk.Name) {
				return newBuilder(tk).Build(), nil
			}
			if len(p.stack) == 0 {
				p.rootOffset = p.dec.InputOffset()
			}
			p.stack = append(p.stack, newBuilder(tk))

		case xml.CharData:
			if len(p.stack) > 0 {
				top := len(p.stack) - 1
				p.stack[top] = p.stack[top].WithText(string(tk))
			}

		case xml.EndElement:
			if p.mode == SocketStream && isStreamName(tk.Name) {
				return nil, ErrStreamClosedByPeer
			}
			elem, err := p.closeElement(tk)
			if err != nil {
				return nil, err
			}
			if elem != nil {
				return elem, nil
			}
		}
	}
}

func (p *Parser) closeElement(t xml.EndElement) (stravaganza.Element, error) {
	name := xmlName(t.Name)
	if len(p.stack) == 0 {
		return nil, errUnexpectedEnd(name)
	}
	top := len(p.stack) - 1
	elem := p.stack[top].Build()
	if elem.Name() != name {
		return nil, errUnexpectedEnd(name)
	}
	p.stack = p.stack[:top]
	if len(p.stack) == 0 {
		return elem, nil
	}
	p.stack[top-1] = p.stack[top-1].WithChild(elem)
	return nil, nil
}

func newBuilder(t xml.StartElement) *stravaganza.Builder {
	attrs := make([]stravaganza.Attribute, 0, len(t.Attr))
	for _, a := range t.Attr {
		attrs = append(attrs, stravaganza.Attribute{Label: xmlName(a.Name), Value: a.Value})
	}
	return stravaganza.NewBuilder(xmlName(t.Name)).WithAttributes(attrs...)
}

func isStreamName(n xml.Name) bool {
	return n.Space == streamName && n.Local == streamName
}

func xmlName(n xml.Name) string {
	if len(n.Space) > 0 {
		return fmt.Sprintf("%s:%s", n.Space, n.Local)
	}
	return n.Local
}

func errUnexpectedEnd(name string) error {
	return fmt.Errorf("parser: unexpected end element </%s>", name)
}
