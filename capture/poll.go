// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/schmidtw/lis2dh-monitor/sensor"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Reading is the result of one poll.
type Reading struct {
	Count   uint64
	Uptime  time.Duration
	Overrun bool
	Accel   [3]sensor.Value
}

func (r Reading) String() string {
	return r.format(false)
}

func (r Reading) format(markOverrun bool) string {
	mark := ""
	if markOverrun && r.Overrun {
		mark = "[OVERRUN] "
	}
	return fmt.Sprintf("#%d @ %d ms: %sx %f , y %f , z %f",
		r.Count, r.Uptime.Milliseconds(), mark,
		r.Accel[0].Float64(), r.Accel[1].Float64(), r.Accel[2].Float64())
}

// Poller fetches and reads the accelerometer inline with the report loop.
type Poller struct {
	dev         sensor.Device
	clock       clock.Clock
	start       time.Time
	markOverrun bool
	count       atomic.Uint64
	last        Slot[Reading]
	metrics     *Metrics
	logger      *zap.Logger
}

// PollerOpts configures a Poller.
type PollerOpts struct {
	Device      sensor.Device
	Clock       clock.Clock
	MarkOverrun bool
	Metrics     *Metrics
	Logger      *zap.Logger
}

// NewPoller makes a Poller.  Uptime is measured from this call.
func NewPoller(opts PollerOpts) *Poller {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Poller{
		dev:         opts.Device,
		clock:       opts.Clock,
		start:       opts.Clock.Now(),
		markOverrun: opts.MarkOverrun,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
	}
}

// Poll fetches a whole device sample and reads the accelerometer.  An overrun
// is noted in the reading and does not stop the read.
func (p *Poller) Poll() (Reading, error) {
	r := Reading{
		Count:  p.count.Inc(),
		Uptime: p.clock.Since(p.start),
	}

	err := p.dev.SampleFetch()
	if errors.Is(err, sensor.ErrOverrun) {
		r.Overrun = true
		err = nil
	}
	if err != nil {
		p.metrics.failure("fetch", sensor.All)
		return r, err
	}

	vals, err := p.dev.ChannelGet(sensor.AccelXYZ)
	if err == nil && len(vals) != len(r.Accel) {
		err = fmt.Errorf("%w: %s returned %d values", sensor.ErrInvalidValue, sensor.AccelXYZ, len(vals))
	}
	if err != nil {
		p.metrics.failure("read", sensor.AccelXYZ)
		return r, err
	}

	copy(r.Accel[:], vals)

	p.last.Request()
	p.last.Offer(r)
	p.metrics.publish(map[sensor.Channel]sensor.Value{
		sensor.AccelX: r.Accel[0],
		sensor.AccelY: r.Accel[1],
		sensor.AccelZ: r.Accel[2],
	})
	return r, nil
}

// Last returns the last successful reading.
func (p *Poller) Last() Reading {
	return p.last.Latest()
}

// Report polls the device and writes the reading, or the failure.
func (p *Poller) Report(w io.Writer, _ uint64) error {
	r, err := p.Poll()
	if err != nil {
		p.logger.Warn("sample update failed",
			zap.Uint64("count", r.Count),
			zap.Error(err))
		if _, werr := fmt.Fprintf(w, "ERROR: Update failed: %v\n", err); werr != nil {
			return werr
		}
		return err
	}

	_, err = fmt.Fprintln(w, r.format(p.markOverrun))
	return err
}
