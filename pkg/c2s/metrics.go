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
	"strconv"

	"github.com/jackal-xmpp/xrocket/pkg/instance"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	c2sConnectionRegistered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xrocket",
			Subsystem: "c2s",
			Name:      "connection_registered",
			Help:      "The total number of register operations.",
		},
		[]string{"instance", "transport"},
	)
	c2sConnectionUnregistered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xrocket",
			Subsystem: "c2s",
			Name:      "connection_unregistered",
			Help:      "The total number of unregister operations.",
		},
		[]string{"instance", "transport"},
	)
	c2sRoutes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "xrocket",
			Subsystem: "c2s",
			Name:      "routes",
			Help:      "Current number of bound client routes.",
		},
		[]string{"instance"},
	)
	c2sInvalidFrom = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xrocket",
			Subsystem: "c2s",
			Name:      "invalid_from_total",
			Help:      "The total number of stanzas whose sender did not match the stream address.",
		},
		[]string{"instance"},
	)
	c2sAuthentications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xrocket",
			Subsystem: "c2s",
			Name:      "authentications_total",
			Help:      "The total number of authentication attempts.",
		},
		[]string{"instance", "mechanism", "success"},
	)
	c2sOutgoingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xrocket",
			Subsystem: "c2s",
			Name:      "outgoing_requests_total",
			Help:      "The total number of outgoing stanza requests.",
		},
		[]string{"instance", "name", "type"},
	)
	c2sIncomingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xrocket",
			Subsystem: "c2s",
			Name:      "incoming_requests_total",
			Help:      "The total number of incoming stanza requests.",
		},
		[]string{"instance", "name", "type"},
	)
	c2sIncomingRequestDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "xrocket",
			Subsystem: "c2s",
			Name:      "incoming_requests_duration_bucket",
			Help:      "Bucketed histogram of incoming stanza requests duration.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 24),
		},
		[]string{"instance", "name", "type"},
	)
)

func init() {
	prometheus.MustRegister(c2sConnectionRegistered)
	prometheus.MustRegister(c2sConnectionUnregistered)
	prometheus.MustRegister(c2sRoutes)
	prometheus.MustRegister(c2sInvalidFrom)
	prometheus.MustRegister(c2sAuthentications)
	prometheus.MustRegister(c2sOutgoingRequests)
	prometheus.MustRegister(c2sIncomingRequests)
	prometheus.MustRegister(c2sIncomingRequestDurationBucket)
}

func reportConnectionRegistered(transport string) {
	c2sConnectionRegistered.With(prometheus.Labels{
		"instance":  instance.ID(),
		"transport": transport,
	}).Inc()
}

func reportConnectionUnregistered(transport string) {
	c2sConnectionUnregistered.With(prometheus.Labels{
		"instance":  instance.ID(),
		"transport": transport,
	}).Inc()
}

func reportRouteRegistered() {
	c2sRoutes.With(prometheus.Labels{"instance": instance.ID()}).Inc()
}

func reportRouteUnregistered() {
	c2sRoutes.With(prometheus.Labels{"instance": instance.ID()}).Dec()
}

func reportInvalidFrom() {
	c2sInvalidFrom.With(prometheus.Labels{"instance": instance.ID()}).Inc()
}

func reportAuthentication(mechanism string, success bool) {
	c2sAuthentications.With(prometheus.Labels{
		"instance":  instance.ID(),
		"mechanism": mechanism,
		"success":   strconv.FormatBool(success),
	}).Inc()
}

func reportOutgoingRequest(name, typ string) {
	metricLabel := prometheus.Labels{
		"instance": instance.ID(),
		"name":     name,
		"type":     typ,
	}
	c2sOutgoingRequests.With(metricLabel).Inc()
}

func reportIncomingRequest(name, typ string, durationInSecs float64) {
	metricLabel := prometheus.Labels{
		"instance": instance.ID(),
		"name":     name,
		"type":     typ,
	}
	c2sIncomingRequests.With(metricLabel).Inc()
	c2sIncomingRequestDurationBucket.With(metricLabel).Observe(durationInSecs)
}
