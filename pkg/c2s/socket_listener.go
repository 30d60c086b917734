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
	"net"
	"strconv"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/xrocket/pkg/transport"
	"golang.org/x/net/netutil"
)

const listenKeepAlive = time.Second * 15

type connServer interface {
	Serve(tr transport.Transport)
}

// SocketListener represents a C2S socket listener type.
type SocketListener struct {
	addr          string
	cfg           ListenerConfig
	srv           connServer
	logger        kitlog.Logger
	connHandlerFn func(conn net.Conn)

	ln     net.Listener
	active uint32
}

// NewSocketListener returns a new C2S socket listener.
func NewSocketListener(cfg ListenerConfig, srv connServer, logger kitlog.Logger) *SocketListener {
	ln := &SocketListener{
		addr:   getAddress(cfg.BindAddr, cfg.Port),
		cfg:    cfg,
		srv:    srv,
		logger: logger,
	}
	ln.connHandlerFn = ln.handleConn
	return ln
}

// Addr returns listener network address.
func (l *SocketListener) Addr() string {
	if l.ln != nil {
		return l.ln.Addr().String()
	}
	return l.addr
}

// Start starts listening on the TCP network address bindAddr to handle incoming C2S connections.
func (l *SocketListener) Start(ctx context.Context) error {
	lc := net.ListenConfig{
		KeepAlive: listenKeepAlive,
	}
	ln, err := lc.Listen(ctx, "tcp", l.addr)
	if err != nil {
		return err
	}
	if l.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, l.cfg.MaxConnections)
	}
	l.ln = ln
	atomic.StoreUint32(&l.active, 1)

	go func() {
		for atomic.LoadUint32(&l.active) == 1 {
			conn, err := l.ln.Accept()
			if err != nil {
				continue
			}
			level.Debug(l.logger).Log("msg", "received C2S incoming connection",
				"bind_addr", l.addr,
				"remote_address", conn.RemoteAddr().String(),
			)
			go l.connHandlerFn(conn)
		}
	}()
	level.Info(l.logger).Log("msg", "accepting C2S socket connections", "bind_addr", l.Addr())
	return nil
}

// Stop stops handling incoming C2S connections and closes underlying TCP listener.
func (l *SocketListener) Stop(_ context.Context) error {
	atomic.StoreUint32(&l.active, 0)
	if err := l.ln.Close(); err != nil {
		return err
	}
	level.Info(l.logger).Log("msg", "stopped C2S socket listener", "bind_addr", l.addr)
	return nil
}

func (l *SocketListener) handleConn(conn net.Conn) {
	tr := transport.NewSocketTransport(conn, transport.SocketConfig{
		ConnectTimeout: l.cfg.ConnectTimeout,
		KeepAlive:      l.cfg.KeepAliveTimeout,
	})
	l.srv.Serve(tr)
}

func getAddress(bindAddr string, port int) string {
	return bindAddr + ":" + strconv.Itoa(port)
}
