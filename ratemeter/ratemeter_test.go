// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package ratemeter

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

func TestNew(t *testing.T) {
	tests := []struct {
		description    string
		cfg            Config
		pulses         int
		pulsePeriod    time.Duration
		expectListSize int
		total          uint64
		str            string
		over           time.Duration
		after          time.Duration
		rate           physic.Frequency
		expectedErr    error
	}{
		{
			description:    "basic test",
			pulses:         105,
			pulsePeriod:    10 * time.Millisecond,
			expectListSize: 105,
			total:          105,
			str:            "name:105",
			over:           time.Second,
			rate:           100 * physic.Hertz,
		}, {
			description: "event list is bounded, rate is limited by it",
			cfg: Config{
				MaxEventCount: 10,
			},
			pulses:         15,
			pulsePeriod:    100 * time.Millisecond,
			expectListSize: 10,
			total:          15,
			str:            "name:15",
			over:           2 * time.Second,
			rate:           5 * physic.Hertz,
		}, {
			description:    "nothing recent, get back a rate of 0",
			pulses:         15,
			pulsePeriod:    time.Second,
			expectListSize: 15,
			total:          15,
			str:            "name:15",
			over:           5 * time.Second,
			after:          5 * time.Minute,
		}, {
			description:    "a zero window is a rate of 0",
			pulses:         3,
			pulsePeriod:    time.Second,
			expectListSize: 3,
			total:          3,
			str:            "name:3",
		}, {
			description: "check the error condition",
			cfg: Config{
				MaxEventCount: -1,
			},
			expectedErr: ErrInvalidParameter,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mclock := clock.NewMock()

			m, err := New("name", tc.cfg, UseClock(mclock))

			if tc.expectedErr != nil {
				assert.ErrorIs(err, tc.expectedErr)
				assert.Nil(m)
				return
			}

			require.NotNil(m)

			for i := 0; i < tc.pulses; i++ {
				mclock.Add(tc.pulsePeriod)
				m.Pulse()
			}
			mclock.Add(tc.after)

			assert.Equal(tc.expectListSize, m.events.Len())
			assert.Equal(tc.total, m.Total())
			assert.Equal(tc.str, m.String())
			assert.Equal(tc.rate, m.Rate(tc.over))
		})
	}
}
