// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package sim provides a sensor.Device that serves configured readings.  It
// stands in for the hardware on development hosts and in tests.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/schmidtw/lis2dh-monitor/sensor"
	"github.com/schmidtw/lis2dh-monitor/units"
	"periph.io/x/conn/v3/physic"
)

var (
	errAlreadyStarted = errors.New("already started")
	errAxisCount      = errors.New("three axes are required")
)

const maxFrequency = 5376 * physic.Hertz

// Config provides the simulated device configuration options.  Channel groups
// left empty are not provided by the device.
type Config struct {
	Label string

	// Accel lists the x, y, z acceleration, for example ["0g", "0g", "1g"].
	Accel []string

	// Gyro lists the x, y, z angular rate, for example ["0dps", "0dps", "0dps"].
	Gyro []string

	// Magn lists the x, y, z field strength, for example ["0.2gauss", ...].
	Magn []string

	Press string
	Temp  string

	// OverrunEvery makes every Nth whole device fetch report an overrun.
	OverrunEvery int
}

type Option interface {
	apply(d *Device)
}

// Device is a simulated sensor.
type Device struct {
	m        sync.Mutex
	label    string
	clock    clock.Clock
	overrun  int
	fetches  int
	odr      map[sensor.Channel]physic.Frequency
	values   map[sensor.Channel]sensor.Value
	latched  map[sensor.Channel]sensor.Value
	failures map[sensor.Channel]error
	handler  sensor.Handler
	trigger  sensor.Trigger
	retune   chan physic.Frequency
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

var (
	_ sensor.Device    = (*Device)(nil)
	_ sensor.Triggerer = (*Device)(nil)
	_ sensor.Starter   = (*Device)(nil)
)

// New makes a simulated device from the configuration.
func New(cfg Config, opts ...Option) (*Device, error) {
	if cfg.Label == "" {
		cfg.Label = "LIS2DH"
	}
	if len(cfg.Accel) == 0 {
		cfg.Accel = []string{"0g", "0g", "1g"}
	}

	d := Device{
		label:    cfg.Label,
		clock:    clock.New(),
		overrun:  cfg.OverrunEvery,
		odr:      make(map[sensor.Channel]physic.Frequency),
		values:   make(map[sensor.Channel]sensor.Value),
		latched:  make(map[sensor.Channel]sensor.Value),
		failures: make(map[sensor.Channel]error),
		retune:   make(chan physic.Frequency, 1),
	}

	err := d.axes(sensor.AccelXYZ, cfg.Accel, func(s string) (float64, error) {
		a, err := units.ParseAcceleration(s)
		return float64(a), err
	})
	if err != nil {
		return nil, err
	}

	err = d.axes(sensor.GyroXYZ, cfg.Gyro, func(s string) (float64, error) {
		r, err := units.ParseAngularRate(s)
		return float64(r), err
	})
	if err != nil {
		return nil, err
	}

	err = d.axes(sensor.MagnXYZ, cfg.Magn, func(s string) (float64, error) {
		m, err := units.ParseMagneticField(s)
		return float64(m), err
	})
	if err != nil {
		return nil, err
	}

	if cfg.Press != "" {
		p, err := units.ParsePressure(cfg.Press)
		if err != nil {
			return nil, err
		}
		d.values[sensor.Press] = sensor.FromFloat64(float64(p))
	}

	if cfg.Temp != "" {
		t, err := units.ParseTemperature(cfg.Temp)
		if err != nil {
			return nil, err
		}
		d.values[sensor.AmbientTemp] = sensor.FromFloat64(float64(t))
	}

	for _, opt := range opts {
		opt.apply(&d)
	}

	return &d, nil
}

func (d *Device) axes(group sensor.Channel, in []string, parse func(string) (float64, error)) error {
	if len(in) == 0 {
		return nil
	}
	if len(in) != 3 {
		return fmt.Errorf("%w: %s has %d", errAxisCount, group, len(in))
	}

	for i, ch := range group.Axes() {
		f, err := parse(in[i])
		if err != nil {
			return err
		}
		d.values[ch] = sensor.FromFloat64(f)
	}
	return nil
}

// Name returns the label of the device.
func (d *Device) Name() string {
	return d.label
}

// AttrSet supports the sampling frequency of the accelerometer and gyroscope.
func (d *Device) AttrSet(ch sensor.Channel, attr sensor.Attribute, v sensor.Value) error {
	d.m.Lock()
	defer d.m.Unlock()

	if attr != sensor.SamplingFrequency {
		return fmt.Errorf("%w: %s", sensor.ErrNotSupported, attr)
	}

	if ch != sensor.AccelXYZ && ch != sensor.GyroXYZ {
		return fmt.Errorf("%w: %s of %s", sensor.ErrNotSupported, attr, ch)
	}
	if !d.provides(ch) {
		return fmt.Errorf("%w: %s", sensor.ErrNotSupported, ch)
	}

	f := v.Frequency()
	if f <= 0 || f > maxFrequency {
		return fmt.Errorf("%w: %s", sensor.ErrInvalidValue, f)
	}

	d.odr[ch] = f

	if ch == sensor.AccelXYZ && d.cancel != nil {
		select {
		case <-d.retune:
		default:
		}
		d.retune <- f
	}
	return nil
}

// SampleFetch latches every channel the device provides.
func (d *Device) SampleFetch() error {
	d.m.Lock()
	defer d.m.Unlock()

	if err := d.failures[sensor.All]; err != nil {
		return err
	}

	for ch, v := range d.values {
		d.latched[ch] = v
	}

	d.fetches++
	if d.overrun > 0 && d.fetches%d.overrun == 0 {
		return sensor.ErrOverrun
	}
	return nil
}

// SampleFetchChannel latches the group ch belongs to.
func (d *Device) SampleFetchChannel(ch sensor.Channel) error {
	if ch == sensor.All {
		return d.SampleFetch()
	}

	d.m.Lock()
	defer d.m.Unlock()

	group := ch.Group()
	if !d.provides(group) {
		return fmt.Errorf("%w: %s", sensor.ErrNotSupported, ch)
	}
	if err := d.failures[group]; err != nil {
		return err
	}

	for _, axis := range group.Axes() {
		d.latched[axis] = d.values[axis]
	}
	return nil
}

// ChannelGet returns the latched values of ch.
func (d *Device) ChannelGet(ch sensor.Channel) ([]sensor.Value, error) {
	d.m.Lock()
	defer d.m.Unlock()

	if !d.provides(ch.Group()) {
		return nil, fmt.Errorf("%w: %s", sensor.ErrNotSupported, ch)
	}

	axes := ch.Axes()
	out := make([]sensor.Value, 0, len(axes))
	for _, axis := range axes {
		v, ok := d.latched[axis]
		if !ok {
			return nil, fmt.Errorf("%w: %s", sensor.ErrNotReady, axis)
		}
		out = append(out, v)
	}
	return out, nil
}

// TriggerSet registers the data ready handler of the accelerometer.  A nil
// handler disables the trigger.
func (d *Device) TriggerSet(trig sensor.Trigger, h sensor.Handler) error {
	if trig.Type != sensor.DataReady || trig.Channel != sensor.AccelXYZ {
		return fmt.Errorf("%w: %s on %s", sensor.ErrNotSupported, trig.Type, trig.Channel)
	}

	d.m.Lock()
	defer d.m.Unlock()

	d.trigger = trig
	d.handler = h
	return nil
}

// Start runs the data ready ticker at the accelerometer sampling frequency.
// Later changes to the sampling frequency retune the ticker.
func (d *Device) Start(ctx context.Context) error {
	d.m.Lock()
	defer d.m.Unlock()

	if d.cancel != nil {
		return errAlreadyStarted
	}

	odr := d.odr[sensor.AccelXYZ]
	if odr == 0 {
		odr = 10 * physic.Hertz
	}

	ctx, d.cancel = context.WithCancel(ctx)
	ticker := d.clock.Ticker(odr.Period())

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case f := <-d.retune:
				ticker.Reset(f.Period())
			case <-ticker.C:
				d.Fire()
			}
		}
	}()

	return nil
}

// Stop halts the data ready ticker.
func (d *Device) Stop(context.Context) error {
	d.m.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.m.Unlock()

	if cancel != nil {
		cancel()
		d.wg.Wait()
	}
	return nil
}

// Fire calls the registered data ready handler, if any, on the calling
// goroutine.
func (d *Device) Fire() {
	d.m.Lock()
	h, trig := d.handler, d.trigger
	d.m.Unlock()

	if h != nil {
		h(d, trig)
	}
}

// Set replaces the readings served for ch, one value per axis.
func (d *Device) Set(ch sensor.Channel, vals ...sensor.Value) error {
	d.m.Lock()
	defer d.m.Unlock()

	axes := ch.Axes()
	if len(axes) != len(vals) {
		return fmt.Errorf("%w: %s has %d", errAxisCount, ch, len(vals))
	}
	for i, axis := range axes {
		d.values[axis] = vals[i]
	}
	return nil
}

// Fail makes fetches of ch return err until Fail is called with a nil error.
// Use sensor.All to fail whole device fetches.
func (d *Device) Fail(ch sensor.Channel, err error) {
	d.m.Lock()
	defer d.m.Unlock()

	if err == nil {
		delete(d.failures, ch.Group())
		return
	}
	d.failures[ch.Group()] = err
}

// SamplingFrequency returns the configured sampling frequency of ch.
func (d *Device) SamplingFrequency(ch sensor.Channel) physic.Frequency {
	d.m.Lock()
	defer d.m.Unlock()

	return d.odr[ch]
}

func (d *Device) provides(ch sensor.Channel) bool {
	_, ok := d.values[ch.Axes()[0]]
	return ok
}

// UseClock provides a way to set the clock used.  This is used for testing.
func UseClock(c clock.Clock) Option {
	return &clockOption{clk: c}
}

type clockOption struct {
	clk clock.Clock
}

func (c clockOption) apply(d *Device) {
	d.clock = c.clk
}
