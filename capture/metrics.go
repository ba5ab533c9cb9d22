// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schmidtw/lis2dh-monitor/sensor"
)

// MetricsOpts configures the capture metrics.
type MetricsOpts struct {
	// The Namespace of the metrics
	Namespace string

	// Registerer the metrics are registered with.  Nothing is registered
	// when it is nil.
	Registerer prometheus.Registerer

	// Rate, when set, reports the data ready rate in Hz.
	Rate func() float64
}

// Metrics are the collectors updated while capturing.
type Metrics struct {
	triggers prometheus.Counter
	failures *prometheus.CounterVec
	values   *prometheus.GaugeVec
}

// NewMetrics makes and registers the capture metrics.
func NewMetrics(opts MetricsOpts) (*Metrics, error) {
	m := Metrics{
		triggers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Subsystem: "physical",
			Name:      "data_ready_total",
			Help:      "Data ready notifications delivered by the sensor.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Subsystem: "physical",
			Name:      "sample_errors_total",
			Help:      "Failed or overrun sample fetches and failed channel reads.",
		}, []string{"op", "channel"}),
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: opts.Namespace,
			Subsystem: "physical",
			Name:      "sample_value",
			Help:      "Last reported reading per channel axis.",
		}, []string{"channel"}),
	}

	if opts.Registerer == nil {
		return &m, nil
	}

	collectors := []prometheus.Collector{m.triggers, m.failures, m.values}
	if opts.Rate != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: opts.Namespace,
			Subsystem: "physical",
			Name:      "data_ready_rate_hz",
			Help:      "Data ready notifications per second over the last second.",
		}, opts.Rate))
	}

	for _, c := range collectors {
		if err := opts.Registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return &m, nil
}

func (m *Metrics) trigger() {
	if m != nil {
		m.triggers.Inc()
	}
}

func (m *Metrics) failure(op string, ch sensor.Channel) {
	if m != nil {
		m.failures.WithLabelValues(op, ch.String()).Inc()
	}
}

func (m *Metrics) publish(vals map[sensor.Channel]sensor.Value) {
	if m == nil {
		return
	}
	for ch, v := range vals {
		m.values.WithLabelValues(ch.String()).Set(v.Float64())
	}
}
