// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schmidtw/lis2dh-monitor/capture"
	"github.com/schmidtw/lis2dh-monitor/ratemeter"
	"github.com/schmidtw/lis2dh-monitor/report"
	"github.com/schmidtw/lis2dh-monitor/sensor"
	"github.com/schmidtw/lis2dh-monitor/views"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/physic"
)

var errNotBound = errors.New("capture is not bound")

func provideMetrics() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// binding is the capture source once the device is bound.  Binding happens
// when the application starts, after the devices are started.
type binding struct {
	m   sync.Mutex
	src capture.Source
}

func (b *binding) set(src capture.Source) {
	b.m.Lock()
	defer b.m.Unlock()
	b.src = src
}

func (b *binding) Report(w io.Writer, cycle uint64) error {
	b.m.Lock()
	src := b.src
	b.m.Unlock()

	if src == nil {
		return errNotBound
	}
	return src.Report(w, cycle)
}

type SourceIn struct {
	fx.In

	LC       fx.Lifecycle
	Config   capture.Config
	Meter    ratemeter.Config
	Registry *sensor.Registry
	Metrics  *prometheus.Registry
	Logger   *zap.Logger
}

func provideSource(in SourceIn) (*binding, error) {
	meter, err := ratemeter.New("data_ready", in.Meter)
	if err != nil {
		return nil, err
	}

	metrics, err := capture.NewMetrics(capture.MetricsOpts{
		Namespace:  metricsNS,
		Registerer: in.Metrics,
		Rate: func() float64 {
			return float64(meter.Rate(time.Second)) / float64(physic.Hertz)
		},
	})
	if err != nil {
		return nil, err
	}

	var b binding
	in.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			src, err := capture.Bind(in.Registry, in.Config, capture.Deps{
				Logger:  in.Logger,
				Metrics: metrics,
				Meter:   meter,
			})
			if err != nil {
				return err
			}
			b.set(src)
			return nil
		},
	})

	return &b, nil
}

type ReportIn struct {
	fx.In

	LC      fx.Lifecycle
	Config  report.Config
	Source  *binding
	Metrics *prometheus.Registry
	Logger  *zap.Logger
}

func provideReport(in ReportIn) (*report.Loop, error) {
	l, err := report.New(in.Config, in.Source,
		report.UseLogger(in.Logger),
		report.UseMetrics(metricsNS, in.Metrics),
	)
	if err != nil {
		return nil, err
	}

	in.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return l.Start(context.Background())
		},
		OnStop: l.Stop,
	})
	return l, nil
}

func provideHandler(loop *report.Loop, cfg capture.Config, rcfg report.Config, reg *prometheus.Registry) (http.Handler, error) {
	label := cfg.Label
	if label == "" {
		label = "LIS2DH"
	}
	mode, err := capture.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	return views.Handler(loop, views.Opts{
		Label:   label,
		Mode:    mode.String(),
		Refresh: rcfg.Period,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}
