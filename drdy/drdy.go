// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package drdy watches a sensor's data ready interrupt line and calls back
// each time the sensor reports fresh data.
package drdy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

var (
	errSampleRateTooFast = errors.New("sample rate too fast")
	errAlreadyStarted    = errors.New("already started")
	errNoLine            = errors.New("exactly one of pin or expander input is required")
	errUnknownInput      = errors.New("unknown expander input")
)

var (
	// This is for SequentMicrosystems.com 16 Opto-Isolated Inputs Hat v1.0 board.
	inputToBitMap = map[int]inputPinPortMap{
		16: {port: 0, bit: 0},
		15: {port: 0, bit: 1},
		14: {port: 0, bit: 2},
		13: {port: 0, bit: 3},
		12: {port: 0, bit: 4},
		11: {port: 0, bit: 5},
		10: {port: 0, bit: 6},
		9:  {port: 0, bit: 7},
		8:  {port: 1, bit: 0},
		7:  {port: 1, bit: 1},
		6:  {port: 1, bit: 2},
		5:  {port: 1, bit: 3},
		4:  {port: 1, bit: 4},
		3:  {port: 1, bit: 5},
		2:  {port: 1, bit: 6},
		1:  {port: 1, bit: 7},
	}
)

type inputPinPortMap struct {
	port int
	bit  int
}

// Config describes where the data ready line is wired.  Either Pin names a
// host GPIO, which is watched with edge interrupts, or ExpanderInput names an
// input of a TCA9535 expander, which is sampled at SamplingRate.
type Config struct {
	Pin string

	I2cFile            string
	ExpanderI2CAddress int
	ExpanderInput      int
	SamplingRate       physic.Frequency

	// EdgeTimeout bounds each wait for an edge so Stop is noticed.
	EdgeTimeout time.Duration
}

func (c Config) sampled() bool {
	return c.Pin == ""
}

type Watcher struct {
	m      sync.Mutex
	config Config
	cancel context.CancelFunc

	ioWrapper lineWrapper
	wg        sync.WaitGroup
}

type lineWrapper interface {
	Open(Config) (gpio.PinIn, error)
	Close() error
}

// New validates the configuration and makes a watcher.
func New(c Config) (*Watcher, error) {
	if (c.Pin == "") == (c.ExpanderInput == 0) {
		return nil, errNoLine
	}

	if c.sampled() {
		if _, ok := inputToBitMap[c.ExpanderInput]; !ok {
			return nil, fmt.Errorf("%w: %d", errUnknownInput, c.ExpanderInput)
		}
		if c.SamplingRate == 0 {
			c.SamplingRate = physic.KiloHertz
		}
		if c.SamplingRate > physic.Hertz*10000 {
			return nil, errSampleRateTooFast
		}
	}

	if c.EdgeTimeout <= 0 {
		c.EdgeTimeout = 100 * time.Millisecond
	}

	return &Watcher{
		config:    c,
		ioWrapper: &hwWrapper{},
	}, nil
}

// Start opens the line and calls notify from a dedicated goroutine each time
// the sensor signals data ready.
func (w *Watcher) Start(ctx context.Context, notify func()) error {
	w.m.Lock()
	defer w.m.Unlock()

	if w.cancel != nil {
		return errAlreadyStarted
	}

	pin, err := w.ioWrapper.Open(w.config)
	if err != nil {
		return err
	}

	edge := gpio.RisingEdge
	if w.config.sampled() {
		edge = gpio.NoEdge
	}

	if err := pin.In(gpio.PullNoChange, edge); err != nil {
		_ = w.ioWrapper.Close()
		return err
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	if w.config.sampled() {
		go w.sample(ctx, pin, notify)
	} else {
		go w.wait(ctx, pin, notify)
	}

	return nil
}

// Stop halts the watcher and releases the line.
func (w *Watcher) Stop(ctx context.Context) {
	w.m.Lock()
	defer w.m.Unlock()

	if w.cancel != nil {
		w.cancel()
		w.wg.Wait()
		w.cancel = nil
	}

	_ = w.ioWrapper.Close()
}

// wait blocks on edge interrupts.  A line that is already high when the
// watcher starts would never produce an edge, so it is reported once up front.
func (w *Watcher) wait(ctx context.Context, pin gpio.PinIn, notify func()) {
	defer w.wg.Done()

	if pin.Read() == gpio.High {
		notify()
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if pin.WaitForEdge(w.config.EdgeTimeout) {
			notify()
		}
	}
}

// sample polls the line.  The sensor holds the line high until the data is
// read, so every high sample is reported.
func (w *Watcher) sample(ctx context.Context, pin gpio.PinIn, notify func()) {
	defer w.wg.Done()

	sampleTicker := time.NewTicker(w.config.SamplingRate.Period())
	defer sampleTicker.Stop()

	for {
		select {
		case <-sampleTicker.C:
			if pin.Read() == gpio.High {
				notify()
			}
		case <-ctx.Done():
			return
		}
	}
}
