// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package drdy

import (
	"time"

	"github.com/stretchr/testify/mock"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

type mockWrapper struct {
	mock.Mock
}

func (m *mockWrapper) Open(c Config) (gpio.PinIn, error) {
	a := m.Called(c)
	p, _ := a.Get(0).(gpio.PinIn)
	return p, a.Error(1)
}

func (m *mockWrapper) Close() (err error) {
	a := m.Called()
	return a.Error(0)
}

// Mocking gpio.PinIO

type mockPinIO struct {
	mock.Mock
}

func (m *mockPinIO) Name() string {
	a := m.Called()
	return a.String(0)
}

func (m *mockPinIO) String() string {
	a := m.Called()
	return a.String(0)
}

func (m *mockPinIO) Number() int {
	a := m.Called()
	return a.Int(0)
}

func (m *mockPinIO) Function() string {
	a := m.Called()
	return a.String(0)
}

func (m *mockPinIO) In(pull gpio.Pull, edge gpio.Edge) error {
	a := m.Called(pull, edge)
	return a.Error(0)
}

func (m *mockPinIO) Read() gpio.Level {
	a := m.Called()
	return a.Get(0).(gpio.Level)
}

func (m *mockPinIO) WaitForEdge(timeout time.Duration) bool {
	a := m.Called(timeout)
	return a.Bool(0)
}

func (m *mockPinIO) Pull() gpio.Pull {
	a := m.Called()
	return a.Get(0).(gpio.Pull)
}

func (m *mockPinIO) DefaultPull() gpio.Pull {
	a := m.Called()
	return a.Get(0).(gpio.Pull)
}

func (m *mockPinIO) Out(l gpio.Level) error {
	a := m.Called(l)
	return a.Error(0)
}

func (m *mockPinIO) PWM(duty gpio.Duty, f physic.Frequency) error {
	a := m.Called(duty, f)
	return a.Error(0)
}

func (m *mockPinIO) Halt() error {
	a := m.Called()
	return a.Error(0)
}
