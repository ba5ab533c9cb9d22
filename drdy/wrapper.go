// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package drdy

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/tca95xx"
	"periph.io/x/host/v3"
)

type hwWrapper struct {
	m   sync.Mutex
	bus i2c.BusCloser
	dev *tca95xx.Dev
}

func (h *hwWrapper) Open(c Config) (gpio.PinIn, error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus != nil {
		return nil, errAlreadyStarted
	}

	if _, err := host.Init(); err != nil {
		return nil, err
	}

	if !c.sampled() {
		p := gpioreg.ByName(c.Pin)
		if p == nil {
			return nil, fmt.Errorf("unknown pin '%s'", c.Pin)
		}
		return p, nil
	}

	bus, err := i2creg.Open(c.I2cFile)
	if err != nil {
		return nil, err
	}

	dev, err := tca95xx.New(bus, tca95xx.TCA9535, uint16(c.ExpanderI2CAddress))
	if err != nil {
		_ = bus.Close()
		return nil, err
	}

	h.bus = bus
	h.dev = dev

	bitMap := inputToBitMap[c.ExpanderInput]
	return dev.Pins[bitMap.port][bitMap.bit], nil
}

func (h *hwWrapper) Close() (err error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.dev != nil {
		err = multierr.Append(err, h.dev.Close())
		h.dev = nil
	}

	if h.bus != nil {
		err = multierr.Append(err, h.bus.Close())
		h.bus = nil
	}

	return err
}
