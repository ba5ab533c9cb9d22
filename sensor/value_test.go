// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package sensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/physic"
)

func TestValueFloat64(t *testing.T) {
	tests := []struct {
		description string
		in          Value
		expect      float64
		str         string
	}{
		{
			description: "zero",
			str:         "0.000000",
		}, {
			description: "integer only",
			in:          Value{Val1: 9},
			expect:      9.0,
			str:         "9.000000",
		}, {
			description: "fraction only",
			in:          Value{Val2: 500000},
			expect:      0.5,
			str:         "0.500000",
		}, {
			description: "negative",
			in:          Value{Val1: -1, Val2: -250000},
			expect:      -1.25,
			str:         "-1.250000",
		}, {
			description: "smallest fraction",
			in:          Value{Val1: 3, Val2: 1},
			expect:      3.000001,
			str:         "3.000001",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			assert.InDelta(tc.expect, tc.in.Float64(), 1e-9)
			assert.Equal(tc.str, tc.in.String())
		})
	}
}

func TestValueFloat64Property(t *testing.T) {
	assert := assert.New(t)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		v := Value{
			Val1: r.Int31n(2000) - 1000,
			Val2: r.Int31n(Micro),
		}
		want := float64(v.Val1) + float64(v.Val2)/1000000
		assert.InDelta(want, v.Float64(), 1e-9, "%#v", v)
	}
}

func TestFromFloat64(t *testing.T) {
	tests := []struct {
		description string
		in          float64
		expect      Value
	}{
		{
			description: "zero",
		}, {
			description: "positive",
			in:          9.80665,
			expect:      Value{Val1: 9, Val2: 806650},
		}, {
			description: "negative",
			in:          -0.5,
			expect:      Value{Val1: 0, Val2: -500000},
		}, {
			description: "negative with integer part",
			in:          -2.000001,
			expect:      Value{Val1: -2, Val2: -1},
		}, {
			description: "rounds to the nearest millionth",
			in:          1.0000004,
			expect:      Value{Val1: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			got := FromFloat64(tc.in)
			assert.Equal(tc.expect, got)
			assert.InDelta(tc.in, got.Float64(), 1e-6)
		})
	}
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		description string
		in          physic.Frequency
		expect      Value
	}{
		{
			description: "100Hz",
			in:          100 * physic.Hertz,
			expect:      Value{Val1: 100},
		}, {
			description: "fractional",
			in:          1*physic.Hertz + 500*physic.MilliHertz,
			expect:      Value{Val1: 1, Val2: 500000},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			v := FromFrequency(tc.in)
			assert.Equal(tc.expect, v)
			assert.Equal(tc.in, v.Frequency())
		})
	}
}
