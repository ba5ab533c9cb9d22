// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"github.com/schmidtw/lis2dh-monitor/sensor"
	"github.com/stretchr/testify/mock"
)

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) Lookup(label string) (sensor.Device, error) {
	a := m.Called(label)
	d, _ := a.Get(0).(sensor.Device)
	return d, a.Error(1)
}

// mockDevice cannot deliver triggers.
type mockDevice struct {
	mock.Mock
}

func (m *mockDevice) Name() string {
	a := m.Called()
	return a.String(0)
}

func (m *mockDevice) AttrSet(ch sensor.Channel, attr sensor.Attribute, v sensor.Value) error {
	a := m.Called(ch, attr, v)
	return a.Error(0)
}

func (m *mockDevice) SampleFetch() error {
	a := m.Called()
	return a.Error(0)
}

func (m *mockDevice) SampleFetchChannel(ch sensor.Channel) error {
	a := m.Called(ch)
	return a.Error(0)
}

func (m *mockDevice) ChannelGet(ch sensor.Channel) ([]sensor.Value, error) {
	a := m.Called(ch)
	v, _ := a.Get(0).([]sensor.Value)
	return v, a.Error(1)
}

type mockTriggerDevice struct {
	mockDevice
}

func (m *mockTriggerDevice) TriggerSet(trig sensor.Trigger, h sensor.Handler) error {
	a := m.Called(trig, h)
	return a.Error(0)
}
