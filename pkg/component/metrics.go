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

package component

import (
	"time"

	"github.com/jackal-xmpp/xrocket/pkg/instance"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeHandled = "handled"
	outcomeError   = "error"
	outcomePanic   = "panic"
)

var (
	handlerDispatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xrocket",
		Subsystem: "component",
		Name:      "handler_dispatches_total",
		Help:      "The total number of stanzas dispatched to a handler.",
	}, []string{"instance", "handler", "outcome"})

	handlerDurationBucket = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "xrocket",
		Subsystem: "component",
		Name:      "handler_duration_bucket",
		Help:      "Bucketed histogram of handler processing time.",
		Buckets:   prometheus.ExponentialBuckets(0.00025, 2, 16),
	}, []string{"instance", "handler"})
)

func init() {
	prometheus.MustRegister(handlerDispatches)
	prometheus.MustRegister(handlerDurationBucket)
}

func reportHandlerDispatch(name, outcome string, d time.Duration) {
	handlerDispatches.WithLabelValues(instance.ID(), name, outcome).Inc()
	if outcome == outcomeHandled {
		handlerDurationBucket.WithLabelValues(instance.ID(), name).Observe(d.Seconds())
	}
}
