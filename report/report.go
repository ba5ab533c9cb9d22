// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package report prints the latest sensor sample to the console on a fixed
// period.
package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	// Header starts every report.
	Header = "LIS2DH sensor samples:\n\n"

	// clearScreen moves the cursor home and erases the terminal.
	clearScreen = "\x1b[H\x1b[2J"

	defaultPeriod = 2 * time.Second
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	errAlreadyStarted   = errors.New("already started")
)

// Source writes the body of one report.
type Source interface {
	Report(w io.Writer, cycle uint64) error
}

// Config provides the report loop configuration options.
type Config struct {
	// Period between reports.  Defaults to 2s.
	Period time.Duration

	// Clear repaints the terminal before each report.
	Clear bool
}

type Option interface {
	apply(l *Loop) error
}

// Loop prints a report every period until it is stopped.
type Loop struct {
	period time.Duration
	clear  bool
	src    Source
	out    io.Writer
	clock  clock.Clock
	logger *zap.Logger
	cycles atomic.Uint64

	m    sync.Mutex
	last string

	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	reports  prometheus.Counter
	failures prometheus.Counter
}

// New makes a report loop that prints what src provides.
func New(cfg Config, src Source, opts ...Option) (*Loop, error) {
	if src == nil || cfg.Period < 0 {
		return nil, ErrInvalidParameter
	}
	if cfg.Period == 0 {
		cfg.Period = defaultPeriod
	}

	l := Loop{
		period: cfg.Period,
		clear:  cfg.Clear,
		src:    src,
		out:    os.Stdout,
		clock:  clock.New(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(&l); err != nil {
			return nil, err
		}
	}

	return &l, nil
}

// Start prints the first report right away and then one every period.
func (l *Loop) Start(ctx context.Context) error {
	l.m.Lock()
	defer l.m.Unlock()

	if l.cancel != nil {
		return errAlreadyStarted
	}

	ctx, l.cancel = context.WithCancel(ctx)
	ticker := l.clock.Ticker(l.period)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer ticker.Stop()

		for {
			l.Cycle()
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	l.logger.Info("report loop started", zap.Duration("period", l.period))
	return nil
}

// Stop ends the loop and waits for the report in progress.
func (l *Loop) Stop(context.Context) error {
	l.m.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.m.Unlock()

	if cancel != nil {
		cancel()
		l.wg.Wait()
		l.logger.Info("report loop stopped", zap.Uint64("cycles", l.Cycles()))
	}
	return nil
}

// Cycle prints one report.  Source errors are logged and printed as part of
// the report; the loop keeps going.
func (l *Loop) Cycle() {
	cycle := l.cycles.Inc()

	var buf bytes.Buffer
	if l.clear {
		buf.WriteString(clearScreen)
	}
	buf.WriteString(Header)

	if err := l.src.Report(&buf, cycle); err != nil {
		if l.failures != nil {
			l.failures.Inc()
		}
		l.logger.Debug("report source failed",
			zap.Uint64("cycle", cycle),
			zap.Error(err))
	}

	if _, err := l.out.Write(buf.Bytes()); err != nil {
		l.logger.Warn("unable to write the report", zap.Error(err))
	}
	if l.reports != nil {
		l.reports.Inc()
	}

	text := buf.String()
	if l.clear {
		text = text[len(clearScreen):]
	}

	l.m.Lock()
	l.last = text
	l.m.Unlock()
}

// Cycles returns the number of reports printed.
func (l *Loop) Cycles() uint64 {
	return l.cycles.Load()
}

// Last returns the text of the most recent report without terminal control
// sequences.
func (l *Loop) Last() string {
	l.m.Lock()
	defer l.m.Unlock()

	return l.last
}
