// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"io"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// UseClock provides a way to set the clock used.  This is used for testing.
func UseClock(c clock.Clock) Option {
	return optionFunc(func(l *Loop) error {
		l.clock = c
		return nil
	})
}

// UseWriter sets where reports are printed.  The default is os.Stdout.
func UseWriter(w io.Writer) Option {
	return optionFunc(func(l *Loop) error {
		l.out = w
		return nil
	})
}

// UseLogger sets the logger.
func UseLogger(log *zap.Logger) Option {
	return optionFunc(func(l *Loop) error {
		if log != nil {
			l.logger = log
		}
		return nil
	})
}

// UseMetrics counts the reports and source failures.  New fails if the
// counters cannot be registered.
func UseMetrics(namespace string, reg prometheus.Registerer) Option {
	return optionFunc(func(l *Loop) error {
		l.reports = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "cycles_total",
			Help:      "Reports printed to the console.",
		})
		l.failures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "failures_total",
			Help:      "Reports where the sample could not be updated.",
		})
		if reg == nil {
			return nil
		}
		return multierr.Combine(
			reg.Register(l.reports),
			reg.Register(l.failures),
		)
	})
}

type optionFunc func(*Loop) error

func (f optionFunc) apply(l *Loop) error {
	return f(l)
}
