// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"io"

	"github.com/schmidtw/lis2dh-monitor/ratemeter"
	"github.com/schmidtw/lis2dh-monitor/sensor"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Trigger captures samples from a device's data ready callback and hands
// them to the report loop through a Slot.
type Trigger struct {
	groups  Groups
	slot    Slot[Snapshot]
	count   atomic.Uint64
	meter   *ratemeter.Meter
	metrics *Metrics
	logger  *zap.Logger
}

// TriggerOpts configures a Trigger.
type TriggerOpts struct {
	Groups  Groups
	Meter   *ratemeter.Meter
	Metrics *Metrics
	Logger  *zap.Logger
}

// NewTrigger makes a Trigger.  The first report shows zeros until a sample is
// captured.
func NewTrigger(opts TriggerOpts) *Trigger {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Trigger{
		groups:  opts.Groups | Accel,
		meter:   opts.Meter,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
}

// Handle is the sensor.Handler for data ready.  It reads every tracked group
// and fills the slot when the report loop asked for a sample.
func (t *Trigger) Handle(dev sensor.Device, _ sensor.Trigger) {
	t.count.Inc()
	t.metrics.trigger()
	if t.meter != nil {
		t.meter.Pulse()
	}

	var s Snapshot
	var err error

	if err = t.read(dev, sensor.AccelXYZ, s.Accel[:]); err != nil {
		return
	}

	if t.groups.Has(Gyro) {
		if err = t.read(dev, sensor.GyroXYZ, s.Gyro[:]); err != nil {
			return
		}
	}

	if t.groups.Has(Magn) {
		if err = t.read(dev, sensor.MagnXYZ, s.Magn[:]); err != nil {
			return
		}
	}

	if t.groups.Has(PressTemp) {
		var pt [2]sensor.Value
		if err = t.read(dev, sensor.Press, pt[:1]); err != nil {
			return
		}
		if err = t.read(dev, sensor.AmbientTemp, pt[1:]); err != nil {
			return
		}
		s.Press, s.Temp = pt[0], pt[1]
	}

	if t.slot.Offer(s) {
		t.metrics.publish(s.values(t.groups))
	}
}

// read fetches ch and copies its values into out.  The data behind an
// overrun is still read.
func (t *Trigger) read(dev sensor.Device, ch sensor.Channel, out []sensor.Value) error {
	err := dev.SampleFetchChannel(ch)
	if errors.Is(err, sensor.ErrOverrun) {
		t.metrics.failure("overrun", ch)
		err = nil
	}
	if err != nil {
		t.metrics.failure("fetch", ch)
		t.logger.Warn("sample fetch failed",
			zap.String("channel", ch.String()),
			zap.Error(err))
		return err
	}

	vals, err := dev.ChannelGet(ch)
	if err == nil && len(vals) != len(out) {
		err = fmt.Errorf("%w: %s returned %d values", sensor.ErrInvalidValue, ch, len(vals))
	}
	if err != nil {
		t.metrics.failure("read", ch)
		t.logger.Warn("channel read failed",
			zap.String("channel", ch.String()),
			zap.Error(err))
		return err
	}

	copy(out, vals)
	return nil
}

// Count returns the number of data ready notifications handled.
func (t *Trigger) Count() uint64 {
	return t.count.Load()
}

// Snapshot returns the last captured snapshot.
func (t *Trigger) Snapshot() Snapshot {
	return t.slot.Latest()
}

// Report writes the last captured snapshot and the counters, then asks for a
// fresh snapshot.
func (t *Trigger) Report(w io.Writer, cycle uint64) error {
	for _, line := range t.slot.Latest().Lines(t.groups) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "- (%d) (trig_cnt: %d)\n\n", cycle, t.Count()); err != nil {
		return err
	}

	t.slot.Request()
	return nil
}
