// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package lis2dh drives an ST LIS2DH/LIS3DH accelerometer on an I2C bus.
package lis2dh

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/schmidtw/lis2dh-monitor/drdy"
	"github.com/schmidtw/lis2dh-monitor/sensor"
	"github.com/schmidtw/lis2dh-monitor/units"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/mmr"
	"periph.io/x/conn/v3/physic"
)

var (
	errAlreadyStarted = errors.New("already started")
	errWrongDevice    = errors.New("unexpected WHO_AM_I")
	errFullScale      = errors.New("full scale must be 2, 4, 8 or 16 g")
)

// Config provides the driver configuration options.
type Config struct {
	// Label is the name the device is looked up by.
	Label string

	// I2cFile names the bus, "" picks the first one available.
	I2cFile string

	// Address is the 7 bit I2C address, 0x18 or 0x19.
	Address uint16

	// SamplingFrequency is the output data rate used until it is changed
	// through AttrSet.
	SamplingFrequency physic.Frequency

	// FullScale is the measurement range in g.
	FullScale int

	// DataReady describes how the INT1 line is wired.  Without it the device
	// can only be polled.
	DataReady *drdy.Config
}

type busWrapper interface {
	Open(string) error
	Close() error
	Connect(uint16) (conn.Conn, error)
}

type lineWatcher interface {
	Start(context.Context, func()) error
	Stop(context.Context)
}

// Device is an LIS2DH accelerometer.
type Device struct {
	m       sync.Mutex
	config  Config
	started bool

	ioWrapper busWrapper
	watcher   lineWatcher
	regs      *mmr.Dev8

	odr     physic.Frequency
	scale   float64
	fetched bool
	latched [3]sensor.Value

	trigger sensor.Trigger
	handler sensor.Handler
}

var (
	_ sensor.Device    = (*Device)(nil)
	_ sensor.Triggerer = (*Device)(nil)
	_ sensor.Starter   = (*Device)(nil)
)

// New validates the configuration and makes a device.  The bus is not
// touched until Start.
func New(cfg Config) (*Device, error) {
	if cfg.Label == "" {
		cfg.Label = "LIS2DH"
	}
	if cfg.Address == 0 {
		cfg.Address = DefaultAddress
	}
	if cfg.SamplingFrequency == 0 {
		cfg.SamplingFrequency = 100 * physic.Hertz
	}
	if _, ok := odrTable[cfg.SamplingFrequency]; !ok {
		return nil, fmt.Errorf("%w: %s", sensor.ErrInvalidValue, cfg.SamplingFrequency)
	}
	if cfg.FullScale == 0 {
		cfg.FullScale = 2
	}
	fs, ok := fullScaleTable[cfg.FullScale]
	if !ok {
		return nil, errFullScale
	}

	d := Device{
		config:    cfg,
		ioWrapper: &hwWrapper{},
		odr:       cfg.SamplingFrequency,
		scale:     fs.sensitivity * units.StandardGravity / 1000,
	}

	if cfg.DataReady != nil {
		w, err := drdy.New(*cfg.DataReady)
		if err != nil {
			return nil, err
		}
		d.watcher = w
	}

	return &d, nil
}

// Name returns the label of the device.
func (d *Device) Name() string {
	return d.config.Label
}

// Start opens the bus, checks the chip identity and configures the
// accelerometer for high resolution output at the configured rate.
func (d *Device) Start(ctx context.Context) (err error) {
	d.m.Lock()
	defer d.m.Unlock()

	if d.started {
		return errAlreadyStarted
	}

	if err = d.ioWrapper.Open(d.config.I2cFile); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = d.ioWrapper.Close()
			d.regs = nil
		}
	}()

	c, err := d.ioWrapper.Connect(d.config.Address)
	if err != nil {
		return err
	}
	d.regs = &mmr.Dev8{Conn: c, Order: binary.LittleEndian}

	id, err := d.regs.ReadUint8(regWhoAmI)
	if err != nil {
		return err
	}
	if id != whoAmIValue {
		return fmt.Errorf("%w: 0x%02x", errWrongDevice, id)
	}

	fs := fullScaleTable[d.config.FullScale]
	ctrl4 := uint8(ctrl4BDU|ctrl4HighResBit) | fs.bits<<ctrl4FSShift
	if err = d.regs.WriteUint8(regCtrl4, ctrl4); err != nil {
		return err
	}

	if err = d.writeODR(d.odr); err != nil {
		return err
	}

	if d.watcher != nil {
		if err = d.watcher.Start(ctx, d.dataReady); err != nil {
			return err
		}
	}

	d.started = true
	return nil
}

// Stop powers the accelerometer down and releases the bus.
func (d *Device) Stop(ctx context.Context) (err error) {
	d.m.Lock()
	started := d.started
	d.started = false
	d.m.Unlock()

	if !started {
		return nil
	}

	// The watcher callback takes the lock, so it is stopped without it.
	if d.watcher != nil {
		d.watcher.Stop(ctx)
	}

	d.m.Lock()
	defer d.m.Unlock()

	err = multierr.Append(err, d.regs.WriteUint8(regCtrl1, 0))
	err = multierr.Append(err, d.ioWrapper.Close())
	d.regs = nil
	return err
}

// AttrSet supports the sampling frequency and the full scale of the
// accelerometer.  The full scale is given in m/s2.
func (d *Device) AttrSet(ch sensor.Channel, attr sensor.Attribute, v sensor.Value) error {
	if ch != sensor.AccelXYZ {
		return fmt.Errorf("%w: %s of %s", sensor.ErrNotSupported, attr, ch)
	}

	d.m.Lock()
	defer d.m.Unlock()

	if !d.started {
		return sensor.ErrNotReady
	}

	switch attr {
	case sensor.SamplingFrequency:
		f := v.Frequency()
		if _, ok := odrTable[f]; !ok {
			return fmt.Errorf("%w: %s", sensor.ErrInvalidValue, f)
		}
		if err := d.writeODR(f); err != nil {
			return err
		}
		d.odr = f
		return nil

	case sensor.FullScale:
		g := int(math.Round(v.Float64() / units.StandardGravity))
		fs, ok := fullScaleTable[g]
		if !ok {
			return fmt.Errorf("%w: %v", sensor.ErrInvalidValue, errFullScale)
		}
		ctrl4, err := d.regs.ReadUint8(regCtrl4)
		if err != nil {
			return err
		}
		ctrl4 = ctrl4&^ctrl4FSMask | fs.bits<<ctrl4FSShift
		if err := d.regs.WriteUint8(regCtrl4, ctrl4); err != nil {
			return err
		}
		d.scale = fs.sensitivity * units.StandardGravity / 1000
		return nil
	}

	return fmt.Errorf("%w: %s", sensor.ErrNotSupported, attr)
}

// SampleFetch latches the acceleration.  When samples were overwritten before
// being read the fresh data is still latched and sensor.ErrOverrun returned.
func (d *Device) SampleFetch() error {
	return d.SampleFetchChannel(sensor.AccelXYZ)
}

// SampleFetchChannel latches the acceleration, the only group the chip has.
func (d *Device) SampleFetchChannel(ch sensor.Channel) error {
	if ch != sensor.All && ch.Group() != sensor.AccelXYZ {
		return fmt.Errorf("%w: %s", sensor.ErrNotSupported, ch)
	}

	d.m.Lock()
	defer d.m.Unlock()

	if !d.started {
		return sensor.ErrNotReady
	}

	status, err := d.regs.ReadUint8(regStatus)
	if err != nil {
		return err
	}

	var raw [6]byte
	if err := d.regs.Tx([]byte{regOutXL | autoIncrAdd}, raw[:]); err != nil {
		return err
	}

	for i := range d.latched {
		// 12 bit left justified
		digits := int16(binary.LittleEndian.Uint16(raw[2*i:])) >> 4
		d.latched[i] = sensor.FromFloat64(float64(digits) * d.scale)
	}
	d.fetched = true

	if status&statusZYXOR != 0 {
		return sensor.ErrOverrun
	}
	return nil
}

// ChannelGet returns the latched acceleration in m/s2.
func (d *Device) ChannelGet(ch sensor.Channel) ([]sensor.Value, error) {
	if ch.Group() != sensor.AccelXYZ {
		return nil, fmt.Errorf("%w: %s", sensor.ErrNotSupported, ch)
	}

	d.m.Lock()
	defer d.m.Unlock()

	if !d.fetched {
		return nil, sensor.ErrNotReady
	}

	switch ch {
	case sensor.AccelX:
		return []sensor.Value{d.latched[0]}, nil
	case sensor.AccelY:
		return []sensor.Value{d.latched[1]}, nil
	case sensor.AccelZ:
		return []sensor.Value{d.latched[2]}, nil
	}
	return []sensor.Value{d.latched[0], d.latched[1], d.latched[2]}, nil
}

// TriggerSet routes data ready to INT1 and registers h.  A nil handler
// disables the interrupt.
func (d *Device) TriggerSet(trig sensor.Trigger, h sensor.Handler) error {
	if trig.Type != sensor.DataReady || trig.Channel != sensor.AccelXYZ {
		return fmt.Errorf("%w: %s on %s", sensor.ErrNotSupported, trig.Type, trig.Channel)
	}

	d.m.Lock()
	defer d.m.Unlock()

	if d.watcher == nil {
		return fmt.Errorf("%w: no data ready line", sensor.ErrNotSupported)
	}
	if !d.started {
		return sensor.ErrNotReady
	}

	var ctrl3 uint8
	if h != nil {
		ctrl3 = ctrl3I1ZYXDA
	}
	if err := d.regs.WriteUint8(regCtrl3, ctrl3); err != nil {
		return err
	}

	d.trigger = trig
	d.handler = h
	return nil
}

func (d *Device) dataReady() {
	d.m.Lock()
	h, trig := d.handler, d.trigger
	d.m.Unlock()

	if h != nil {
		h(d, trig)
	}
}

func (d *Device) writeODR(f physic.Frequency) error {
	return d.regs.WriteUint8(regCtrl1, odrTable[f]<<ctrl1ODRShift|ctrl1XYZEnable)
}
