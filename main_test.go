// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/goschtalt/goschtalt"
	"github.com/schmidtw/lis2dh-monitor/capture"
	"github.com/schmidtw/lis2dh-monitor/report"
	"github.com/schmidtw/lis2dh-monitor/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/physic"
)

func TestFrequencyHook(t *testing.T) {
	tests := []struct {
		description string
		from        any
		to          reflect.Type
		expected    any
		expectedErr bool
	}{
		{
			description: "hertz",
			from:        "100Hz",
			to:          frequencyType,
			expected:    100 * physic.Hertz,
		}, {
			description: "kilohertz",
			from:        "1.344kHz",
			to:          frequencyType,
			expected:    1344 * physic.Hertz,
		}, {
			description: "not a frequency",
			from:        "100Hz",
			to:          reflect.TypeOf(""),
			expected:    "100Hz",
		}, {
			description: "not a string",
			from:        100,
			to:          frequencyType,
			expected:    100,
		}, {
			description: "invalid",
			from:        "fast",
			to:          frequencyType,
			expectedErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			got, err := frequencyHook(reflect.TypeOf(tc.from), tc.to, tc.from)
			if tc.expectedErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expected, got)
		})
	}
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lis2dh.yml")
	require.NoError(t, os.WriteFile(file, []byte(`
capture:
  mode: poll
  channels: [ gyro, press_temp ]
  sampling_frequency: 400Hz
report:
  period: 500ms
`), 0o600))

	tests := []struct {
		description string
		cli         CLI
		mode        string
		channels    []string
		freq        physic.Frequency
		period      time.Duration
		driver      string
		expectedErr error
	}{
		{
			description: "defaults",
			mode:        "trigger",
			channels:    []string{},
			freq:        100 * physic.Hertz,
			period:      2 * time.Second,
			driver:      "lis2dh",
		}, {
			description: "development",
			cli:         CLI{Dev: true},
			mode:        "trigger",
			channels:    []string{},
			freq:        100 * physic.Hertz,
			period:      2 * time.Second,
			driver:      "sim",
		}, {
			description: "file and mode override",
			cli:         CLI{Files: []string{file}, Mode: "trigger"},
			mode:        "trigger",
			channels:    []string{"gyro", "press_temp"},
			freq:        400 * physic.Hertz,
			period:      500 * time.Millisecond,
			driver:      "lis2dh",
		}, {
			description: "directory",
			cli:         CLI{Files: []string{dir}},
			mode:        "poll",
			channels:    []string{"gyro", "press_temp"},
			freq:        400 * physic.Hertz,
			period:      500 * time.Millisecond,
			driver:      "lis2dh",
		}, {
			description: "missing file",
			cli:         CLI{Files: []string{filepath.Join(dir, "missing.yml")}},
			expectedErr: errConfigPath,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			gs, err := provideConfig(&tc.cli)
			if tc.expectedErr != nil {
				assert.ErrorIs(err, tc.expectedErr)
				return
			}
			require.NoError(err)

			c, err := provideCaptureConfig(&tc.cli, gs)
			require.NoError(err)
			assert.Equal(tc.mode, c.Mode)
			assert.ElementsMatch(tc.channels, c.Channels)
			assert.Equal(tc.freq, c.SamplingFrequency)

			r, err := goschtalt.Unmarshal[report.Config](gs, "report")
			require.NoError(err)
			assert.Equal(tc.period, r.Period)

			devs, err := goschtalt.Unmarshal[map[string]DeviceConfig](gs, "devices")
			require.NoError(err)
			require.Contains(devs, "main")
			assert.Equal(tc.driver, devs["main"].Driver)
		})
	}
}

func TestProvideRegistry(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	lc := fxtest.NewLifecycle(t)
	reg, err := provideRegistry(RegistryIn{
		LC: lc,
		Devices: map[string]DeviceConfig{
			"main": {Driver: "sim"},
		},
		Logger: zap.NewNop(),
	})
	require.NoError(err)
	assert.Equal([]string{"LIS2DH"}, reg.Labels())

	lc.RequireStart()
	lc.RequireStop()

	_, err = provideRegistry(RegistryIn{
		LC: fxtest.NewLifecycle(t),
		Devices: map[string]DeviceConfig{
			"main": {Driver: "spi"},
		},
		Logger: zap.NewNop(),
	})
	assert.ErrorIs(err, errUnknownDriver)

	_, err = provideRegistry(RegistryIn{
		LC: fxtest.NewLifecycle(t),
		Devices: map[string]DeviceConfig{
			"a": {Driver: "sim"},
			"b": {Driver: "sim"},
		},
		Logger: zap.NewNop(),
	})
	assert.ErrorIs(err, sensor.ErrDuplicateLabel)
}

func TestBinding(t *testing.T) {
	assert := assert.New(t)

	var b binding
	assert.ErrorIs(b.Report(nil, 1), errNotBound)

	lc := fxtest.NewLifecycle(t)
	reg, err := provideRegistry(RegistryIn{
		LC:      lc,
		Devices: map[string]DeviceConfig{"main": {Driver: "sim"}},
		Logger:  zap.NewNop(),
	})
	require.NoError(t, err)

	metrics, err := provideMetrics()
	require.NoError(t, err)

	src, err := provideSource(SourceIn{
		LC:       lc,
		Config:   capture.Config{Mode: "poll"},
		Registry: reg,
		Metrics:  metrics,
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)

	lc.RequireStart()
	defer lc.RequireStop()

	var out syncBuffer
	assert.NoError(src.Report(&out, 1))
	assert.Contains(out.String(), "#1 @ ")
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "quiet.yml")
	require.NoError(t, os.WriteFile(file, []byte(`
http:
  address: ""
`), 0o600))

	app, err := newApp([]string{"--dev", "-f", file})
	require.NoError(t, err)
	require.NotNil(t, app)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, app.Start(ctx))
	require.NoError(t, app.Stop(ctx))
}

func TestAppStartupAborts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "unknown.yml")
	require.NoError(t, os.WriteFile(file, []byte(`
capture:
  label: ACCEL_0
http:
  address: ""
`), 0o600))

	app, err := newApp([]string{"--dev", "-f", file})
	require.NoError(t, err)
	require.NotNil(t, app)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = app.Start(ctx)
	assert.ErrorIs(t, err, sensor.ErrNotFound)
	_ = app.Stop(ctx)
}
