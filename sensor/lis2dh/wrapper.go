// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package lis2dh

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

type hwWrapper struct {
	m   sync.Mutex
	bus i2c.BusCloser
}

func (h *hwWrapper) Open(file string) (err error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus != nil {
		return errAlreadyStarted
	}

	if _, err := host.Init(); err != nil {
		return err
	}

	h.bus, err = i2creg.Open(file)
	return err
}

func (h *hwWrapper) Close() (err error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus == nil {
		return nil
	}

	err = h.bus.Close()
	h.bus = nil
	return err
}

func (h *hwWrapper) Connect(addr uint16) (conn.Conn, error) {
	h.m.Lock()
	defer h.m.Unlock()

	if h.bus == nil {
		return nil, fmt.Errorf("invalid state")
	}

	return &i2c.Dev{Bus: h.bus, Addr: addr}, nil
}
