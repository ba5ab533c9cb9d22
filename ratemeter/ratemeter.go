// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package ratemeter measures how often an event happens over a trailing
// window, such as the rate a sensor delivers data ready notifications.
package ratemeter

import (
	"container/list"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"periph.io/x/conn/v3/physic"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Config provides the meter configuration options.
type Config struct {
	MaxEventCount int `yaml:"max_event_count"`
}

type Option interface {
	apply(m *Meter)
}

type Meter struct {
	name          string
	mutex         sync.Mutex
	clock         clock.Clock
	total         uint64
	maxEventCount int
	events        list.List
}

// New makes a new meter.
func New(name string, cfg Config, opts ...Option) (*Meter, error) {
	if cfg.MaxEventCount < 0 {
		return nil, ErrInvalidParameter
	}
	if cfg.MaxEventCount == 0 {
		cfg.MaxEventCount = 1000
	}

	m := Meter{
		name:          name,
		clock:         clock.New(),
		maxEventCount: cfg.MaxEventCount,
	}

	m.events.Init()

	for _, opt := range opts {
		opt.apply(&m)
	}

	return &m, nil
}

// Pulse records one event at the present time.
func (m *Meter) Pulse() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.total++

	now := m.clock.Now()
	m.events.PushFront(now)

	for m.events.Len() > m.maxEventCount {
		m.events.Remove(m.events.Back())
	}
}

// Rate returns the event frequency observed over the trailing duration.
// Only the most recent MaxEventCount events are considered.
func (m *Meter) Rate(over time.Duration) physic.Frequency {
	if over <= 0 {
		return 0
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	until := m.clock.Now().Add(-1 * over)

	var pulses int64
	for event := m.events.Front(); event != nil; event = event.Next() {
		t := event.Value.(time.Time)
		if !until.Before(t) {
			break
		}
		pulses++
	}

	return physic.Frequency(float64(pulses) / over.Seconds() * float64(physic.Hertz))
}

// Total returns the number of events seen since the meter was made.
func (m *Meter) Total() uint64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.total
}

func (m *Meter) String() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return fmt.Sprintf("%s:%d", m.name, m.total)
}

// UseClock provides a way to set the clock used.  This is used for testing.
func UseClock(c clock.Clock) Option {
	return &clockOption{clk: c}
}

type clockOption struct {
	clk clock.Clock
}

func (c clockOption) apply(m *Meter) {
	m.clock = c.clk
}
