/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package interceptor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dirpx.dev/apx/apis"
)

// Metrics is an interceptor recording call counts and latencies per
// proxied method. One Metrics instance may be shared across any number
// of configurations registered against the same Registerer.
type Metrics struct {
	// calls counts proxied calls. Labels: method, status (ok|error).
	calls *prometheus.CounterVec
	// duration observes call latency in seconds. Labels: method.
	duration *prometheus.HistogramVec
}

// Ensure Metrics implements apis.Interceptor.
var _ apis.Interceptor = (*Metrics)(nil)

// NewMetrics registers the call vectors with reg under the given
// namespace and returns the interceptor. A nil reg uses the default
// registerer.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "calls_total",
			Help:      "Total calls dispatched through a proxy",
		}, []string{"method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "proxy",
			Name:      "call_duration_seconds",
			Help:      "Proxied call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Invoke times the rest of the chain plus the target call.
func (x *Metrics) Invoke(inv apis.Invocation) ([]any, error) {
	m := inv.Method()
	start := time.Now()
	results, err := inv.Proceed()
	x.duration.WithLabelValues(m.Name).Observe(time.Since(start).Seconds())

	status := "ok"
	if err != nil {
		status = "error"
	}
	x.calls.WithLabelValues(m.Name, status).Inc()
	return results, err
}
