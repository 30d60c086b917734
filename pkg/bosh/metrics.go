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
	"strconv"

	"github.com/jackal-xmpp/xrocket/pkg/instance"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	boshSessions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "xrocket",
			Subsystem: "bosh",
			Name:      "sessions",
			Help:      "Current number of active BOSH sessions.",
		},
		[]string{"instance"},
	)
	boshRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xrocket",
			Subsystem: "bosh",
			Name:      "requests_total",
			Help:      "The total number of handled BOSH requests.",
		},
		[]string{"instance", "status"},
	)
	boshSessionTimeouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xrocket",
			Subsystem: "bosh",
			Name:      "session_timeouts_total",
			Help:      "The total number of sessions retired due to inactivity.",
		},
		[]string{"instance"},
	)
)

func init() {
	prometheus.MustRegister(boshSessions)
	prometheus.MustRegister(boshRequests)
	prometheus.MustRegister(boshSessionTimeouts)
}

func reportSessionCreated() {
	boshSessions.With(prometheus.Labels{"instance": instance.ID()}).Inc()
}

func reportSessionClosed() {
	boshSessions.With(prometheus.Labels{"instance": instance.ID()}).Dec()
}

func reportRequest(status int) {
	boshRequests.With(prometheus.Labels{
		"instance": instance.ID(),
		"status":   strconv.Itoa(status),
	}).Inc()
}

func reportSessionTimeout() {
	boshSessionTimeouts.With(prometheus.Labels{"instance": instance.ID()}).Inc()
}
