// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/schmidtw/lis2dh-monitor/sensor"
	"github.com/schmidtw/lis2dh-monitor/sensor/lis2dh"
	"github.com/schmidtw/lis2dh-monitor/sensor/sim"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var errUnknownDriver = errors.New("unknown driver")

// DeviceConfig selects a driver and carries its options.
type DeviceConfig struct {
	// Driver is "lis2dh" or "sim".
	Driver string

	LIS2DH lis2dh.Config
	Sim    sim.Config
}

func newDevice(cfg DeviceConfig) (sensor.Device, error) {
	switch cfg.Driver {
	case "", "lis2dh":
		return lis2dh.New(cfg.LIS2DH)
	case "sim":
		return sim.New(cfg.Sim)
	}
	return nil, fmt.Errorf("%w: '%s'", errUnknownDriver, cfg.Driver)
}

type RegistryIn struct {
	fx.In

	LC      fx.Lifecycle
	Devices map[string]DeviceConfig
	Logger  *zap.Logger
}

// provideRegistry makes every configured device and ties the ones that own
// hardware to the lifecycle.  Devices start before anything is bound to them
// and stop after.
func provideRegistry(in RegistryIn) (*sensor.Registry, error) {
	names := make([]string, 0, len(in.Devices))
	for name := range in.Devices {
		names = append(names, name)
	}
	sort.Strings(names)

	reg, err := sensor.NewRegistry()
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		cfg := in.Devices[name]
		dev, err := newDevice(cfg)
		if err != nil {
			return nil, fmt.Errorf("device '%s': %w", name, err)
		}
		if err = reg.Register(dev); err != nil {
			return nil, err
		}

		logger := in.Logger.With(zap.String("device", name),
			zap.String("driver", cfg.Driver),
			zap.String("label", dev.Name()))
		logger.Info("device configured")

		if s, ok := dev.(sensor.Starter); ok {
			in.LC.Append(fx.Hook{
				OnStart: func(context.Context) error {
					// The start context ends once startup completes.
					if err := s.Start(context.Background()); err != nil {
						logger.Error("device failed to start", zap.Error(err))
						return err
					}
					return nil
				},
				OnStop: func(ctx context.Context) error {
					logger.Info("stopping device")
					return s.Stop(ctx)
				},
			})
		}
	}

	return reg, nil
}
