// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/schmidtw/lis2dh-monitor/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll(t *testing.T) {
	accel := []sensor.Value{
		sensor.FromFloat64(0.25),
		sensor.FromFloat64(-0.5),
		sensor.FromFloat64(9.75),
	}

	tests := []struct {
		description string
		fetchErr    error
		getErr      error
		markOverrun bool
		skipGet     bool
		expectedErr error
		expected    string
	}{
		{
			description: "normal",
			expected:    "#1 @ 1500 ms: x 0.250000 , y -0.500000 , z 9.750000\n",
		}, {
			description: "overrun is tolerated",
			fetchErr:    sensor.ErrOverrun,
			expected:    "#1 @ 1500 ms: x 0.250000 , y -0.500000 , z 9.750000\n",
		}, {
			description: "wrapped overrun is marked",
			fetchErr:    fmt.Errorf("%w: status", sensor.ErrOverrun),
			markOverrun: true,
			expected:    "#1 @ 1500 ms: [OVERRUN] x 0.250000 , y -0.500000 , z 9.750000\n",
		}, {
			description: "other fetch errors skip the read",
			fetchErr:    errBoom,
			skipGet:     true,
			expectedErr: errBoom,
			expected:    "ERROR: Update failed: boom\n",
		}, {
			description: "read error",
			getErr:      sensor.ErrNotReady,
			expectedErr: sensor.ErrNotReady,
			expected:    "ERROR: Update failed: not ready\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			clk := clock.NewMock()
			dev := new(mockDevice)
			dev.On("SampleFetch").Return(tc.fetchErr).Once()
			if !tc.skipGet {
				var vals []sensor.Value
				if tc.getErr == nil {
					vals = accel
				}
				dev.On("ChannelGet", sensor.AccelXYZ).Return(vals, tc.getErr).Once()
			}

			p := NewPoller(PollerOpts{
				Device:      dev,
				Clock:       clk,
				MarkOverrun: tc.markOverrun,
			})
			clk.Add(1500 * time.Millisecond)

			var buf bytes.Buffer
			err := p.Report(&buf, 1)
			if tc.expectedErr != nil {
				assert.ErrorIs(err, tc.expectedErr)
				assert.Equal(Reading{}, p.Last())
			} else {
				assert.NoError(err)
				assert.Equal(uint64(1), p.Last().Count)
			}
			assert.Equal(tc.expected, buf.String())

			dev.AssertExpectations(t)
			if tc.skipGet {
				dev.AssertNotCalled(t, "ChannelGet", sensor.AccelXYZ)
			}
		})
	}
}

func TestPollCounts(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dev := newSim(t)
	require.NoError(dev.Set(sensor.AccelXYZ,
		sensor.FromFloat64(1), sensor.FromFloat64(2), sensor.FromFloat64(3)))

	clk := clock.NewMock()
	p := NewPoller(PollerOpts{Device: dev, Clock: clk})

	for i := 1; i <= 3; i++ {
		clk.Add(2 * time.Second)
		r, err := p.Poll()
		require.NoError(err)
		assert.Equal(uint64(i), r.Count)
		assert.Equal(time.Duration(i)*2*time.Second, r.Uptime)
		assert.False(r.Overrun)
	}
	assert.Equal("#3 @ 6000 ms: x 1.000000 , y 2.000000 , z 3.000000", p.Last().String())
}
