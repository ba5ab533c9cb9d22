// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package lis2dh

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"
	"periph.io/x/conn/v3"
)

var errBus = errors.New("bus error")

type mockWrapper struct {
	mock.Mock
}

func (m *mockWrapper) Open(file string) (err error) {
	a := m.Called(file)
	return a.Error(0)
}

func (m *mockWrapper) Close() (err error) {
	a := m.Called()
	return a.Error(0)
}

func (m *mockWrapper) Connect(addr uint16) (conn.Conn, error) {
	a := m.Called(addr)
	c, _ := a.Get(0).(conn.Conn)
	return c, a.Error(1)
}

type mockWatcher struct {
	mock.Mock
	notify func()
}

func (m *mockWatcher) Start(ctx context.Context, notify func()) error {
	m.notify = notify
	a := m.Called(ctx, notify)
	return a.Error(0)
}

func (m *mockWatcher) Stop(ctx context.Context) {
	m.Called(ctx)
}

// fakeChip emulates the register file of the accelerometer behind a
// half-duplex connection.
type fakeChip struct {
	m      sync.Mutex
	regs   [128]byte
	writes map[uint8][]uint8
	fail   bool
}

func newFakeChip() *fakeChip {
	f := &fakeChip{
		writes: make(map[uint8][]uint8),
	}
	f.regs[regWhoAmI] = whoAmIValue
	return f
}

func (f *fakeChip) String() string {
	return "fake"
}

func (f *fakeChip) Duplex() conn.Duplex {
	return conn.Half
}

func (f *fakeChip) Tx(w, r []byte) error {
	f.m.Lock()
	defer f.m.Unlock()

	if f.fail {
		return errBus
	}
	if len(w) == 0 {
		return errors.New("no register")
	}

	reg := w[0] &^ autoIncrAdd
	if len(w) == 2 && len(r) == 0 {
		f.regs[reg] = w[1]
		f.writes[reg] = append(f.writes[reg], w[1])
		return nil
	}

	for i := range r {
		r[i] = f.regs[int(reg)+i]
	}
	return nil
}

func (f *fakeChip) setAxes(x, y, z int16) {
	f.m.Lock()
	defer f.m.Unlock()

	for i, v := range []int16{x, y, z} {
		u := uint16(v)
		f.regs[regOutXL+2*i] = byte(u)
		f.regs[regOutXL+2*i+1] = byte(u >> 8)
	}
}

func (f *fakeChip) set(reg, v uint8) {
	f.m.Lock()
	defer f.m.Unlock()

	f.regs[reg] = v
}

func (f *fakeChip) last(reg uint8) (uint8, bool) {
	f.m.Lock()
	defer f.m.Unlock()

	w := f.writes[reg]
	if len(w) == 0 {
		return 0, false
	}
	return w[len(w)-1], true
}
