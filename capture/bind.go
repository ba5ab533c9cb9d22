// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"
	"github.com/schmidtw/lis2dh-monitor/ratemeter"
	"github.com/schmidtw/lis2dh-monitor/sensor"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/physic"
)

const defaultSamplingFrequency = 100 * physic.Hertz

// Config provides the capture configuration options.
type Config struct {
	// Label of the device to capture from.  Defaults to "LIS2DH".
	Label string

	// Mode is "trigger" or "poll".
	Mode string

	// Channels lists the groups reported in addition to "accel": "gyro",
	// "magn" and "press_temp".
	Channels []string

	// SamplingFrequency applied to the accelerometer and, when reported, the
	// gyroscope.  Defaults to 100Hz.
	SamplingFrequency physic.Frequency

	Poll PollConfig
}

// PollConfig holds the options that only apply to the poll mode.
type PollConfig struct {
	// MarkOverrun prefixes readings fetched with an overrun with [OVERRUN].
	MarkOverrun bool
}

// Source writes one cycle of the report.
type Source interface {
	Report(w io.Writer, cycle uint64) error
}

// Finder looks up a device by label.
type Finder interface {
	Lookup(label string) (sensor.Device, error)
}

// Deps are the optional collaborators of the capture source.
type Deps struct {
	Logger  *zap.Logger
	Metrics *Metrics
	Meter   *ratemeter.Meter
	Clock   clock.Clock
}

// Bind looks up the configured device, applies the sampling frequency,
// registers the data ready handler in trigger mode and latches the first
// sample.  Any failure is logged and returned; nothing is retried.
func Bind(f Finder, cfg Config, deps Deps) (Source, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.Label == "" {
		cfg.Label = "LIS2DH"
	}
	if cfg.SamplingFrequency == 0 {
		cfg.SamplingFrequency = defaultSamplingFrequency
	}

	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	groups, err := ParseGroups(cfg.Channels)
	if err != nil {
		return nil, err
	}

	log := deps.Logger.With(zap.String("label", cfg.Label),
		zap.Stringer("mode", mode),
		zap.Stringer("channels", groups))

	dev, err := f.Lookup(cfg.Label)
	if err != nil {
		log.Error("Could not get LIS2DH device", zap.Error(err))
		return nil, err
	}

	odr := sensor.FromFrequency(cfg.SamplingFrequency)
	if err = dev.AttrSet(sensor.AccelXYZ, sensor.SamplingFrequency, odr); err != nil {
		log.Error("Cannot set sampling frequency for accelerometer.", zap.Error(err))
		return nil, err
	}

	if groups.Has(Gyro) {
		if err = dev.AttrSet(sensor.GyroXYZ, sensor.SamplingFrequency, odr); err != nil {
			log.Error("Cannot set sampling frequency for gyro.", zap.Error(err))
			return nil, err
		}
	}

	var src Source
	switch mode {
	case ModeTrigger:
		t := NewTrigger(TriggerOpts{
			Groups:  groups,
			Meter:   deps.Meter,
			Metrics: deps.Metrics,
			Logger:  deps.Logger,
		})

		err = fmt.Errorf("%w: %s", sensor.ErrNotSupported, sensor.DataReady)
		if tr, ok := dev.(sensor.Triggerer); ok {
			err = tr.TriggerSet(sensor.Trigger{
				Type:    sensor.DataReady,
				Channel: sensor.AccelXYZ,
			}, t.Handle)
		}
		if err != nil {
			log.Error("Could not set sensor type and channel", zap.Error(err))
			return nil, err
		}
		src = t
	case ModePoll:
		src = NewPoller(PollerOpts{
			Device:      dev,
			Clock:       deps.Clock,
			MarkOverrun: cfg.Poll.MarkOverrun,
			Metrics:     deps.Metrics,
			Logger:      deps.Logger,
		})
	}

	if err = dev.SampleFetch(); err != nil && !errors.Is(err, sensor.ErrOverrun) {
		log.Error("Sensor sample update error", zap.Error(err))
		return nil, err
	}

	log.Info("capture bound",
		zap.Stringer("sampling_frequency", cfg.SamplingFrequency))
	return src, nil
}
