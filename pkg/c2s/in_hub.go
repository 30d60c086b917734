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
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	streamerror "github.com/jackal-xmpp/stravaganza/v2/errors/stream"
	"github.com/jackal-xmpp/xrocket/pkg/host"
	"github.com/jackal-xmpp/xrocket/pkg/instance"
	"github.com/jackal-xmpp/xrocket/pkg/transport"
	"github.com/jackal-xmpp/xrocket/pkg/util/ratelimiter"
	"github.com/prometheus/client_golang/prometheus"
)

const reportTotalConnectionsInterval = time.Second * 30

var c2sIncomingTotalConnections = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "xrocket",
		Subsystem: "c2s",
		Name:      "incoming_total_connections",
		Help:      "Total incoming C2S connections.",
	},
	[]string{"instance"},
)

func init() {
	prometheus.MustRegister(c2sIncomingTotalConnections)
}

// InHub represents a C2S incoming connection hub.
// Every transport front (socket, websocket and BOSH) hands its accepted transports to the hub.
type InHub struct {
	cfg    StreamConfig
	hosts  *host.Hosts
	router streamRouter
	logger kitlog.Logger

	mu      sync.RWMutex
	streams map[string]*inC2S
	doneCh  chan chan struct{}
}

// NewInHub creates and initializes a new InHub instance.
func NewInHub(cfg StreamConfig, hosts *host.Hosts, router streamRouter, logger kitlog.Logger) *InHub {
	return &InHub{
		cfg:     cfg,
		hosts:   hosts,
		router:  router,
		logger:  logger,
		streams: make(map[string]*inC2S),
		doneCh:  make(chan chan struct{}),
	}
}

// Serve starts a new C2S stream over tr. It returns immediately.
func (h *InHub) Serve(tr transport.Transport) {
	if bps := h.cfg.RateLimit.BytesPerSecond; bps > 0 {
		if err := tr.SetReadRateLimiter(ratelimiter.NewLimiter(bps, h.cfg.RateLimit.Burst)); err != nil {
			level.Warn(h.logger).Log("msg", "failed to set C2S read rate limiter", "err", err)
		}
	}
	stm := newInC2S(inCfgFromStreamConfig(h.cfg), tr, h.hosts, h.router, h.logger)
	h.router.RegisterStream(stm)

	h.register(stm)
	go func() {
		defer h.unregister(stm)
		stm.start()
	}()
}

// Start starts InHub instance.
func (h *InHub) Start(_ context.Context) error {
	go h.reportMetrics()
	level.Info(h.logger).Log("msg", "started C2S in hub")
	return nil
}

// Stop disconnects every active stream and waits for them to terminate.
func (h *InHub) Stop(ctx context.Context) error {
	// stop metrics reporting
	ch := make(chan struct{})
	h.doneCh <- ch
	<-ch

	var streams []*inC2S
	h.mu.RLock()
	for _, stm := range h.streams {
		streams = append(streams, stm)
	}
	h.mu.RUnlock()

	// perform stream disconnection
	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	for _, s := range streams {
		wg.Add(1)
		go func(stm *inC2S) {
			defer wg.Done()
			_ = stm.Disconnect(streamerror.E(streamerror.SystemShutdown))
			select {
			case <-stm.Done():
				break
			case <-ctx.Done():
				select {
				case errCh <- ctx.Err():
				default:
				}
			}
		}(s)
	}
	wg.Wait()

	var err error
	select {
	case err = <-errCh:
		break
	default:
		break
	}
	level.Info(h.logger).Log("msg", "stopped C2S in hub")
	return err
}

func (h *InHub) register(stm *inC2S) {
	h.mu.Lock()
	h.streams[stm.ID()] = stm
	h.mu.Unlock()
}

func (h *InHub) unregister(stm *inC2S) {
	h.mu.Lock()
	delete(h.streams, stm.ID())
	h.mu.Unlock()
}

func (h *InHub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams)
}

func (h *InHub) reportMetrics() {
	tc := time.NewTicker(reportTotalConnectionsInterval)
	defer tc.Stop()

	for {
		select {
		case <-tc.C:
			c2sIncomingTotalConnections.With(prometheus.Labels{
				"instance": instance.ID(),
			}).Set(float64(h.count()))

		case ch := <-h.doneCh:
			close(ch)
			return
		}
	}
}
