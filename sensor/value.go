// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package sensor

import (
	"fmt"
	"math"

	"periph.io/x/conn/v3/physic"
)

// Micro is the number of fractional units in one whole unit of a Value.
const Micro = 1000000

// Value is a fixed point reading.  Val1 is the integer part and Val2 is the
// fractional part in millionths.  For negative readings both parts carry the
// sign, so -0.5 is {0, -500000}.
type Value struct {
	Val1 int32
	Val2 int32
}

// FromFloat64 converts f into a normalized Value, rounding to the nearest
// millionth.
func FromFloat64(f float64) Value {
	micro := math.Round(f * Micro)
	return Value{
		Val1: int32(micro / Micro),
		Val2: int32(math.Mod(micro, Micro)),
	}
}

// Float64 returns the reading as a floating point number.
func (v Value) Float64() float64 {
	return float64(v.Val1) + float64(v.Val2)/Micro
}

// String returns the reading formatted the way the console report does.
func (v Value) String() string {
	return fmt.Sprintf("%f", v.Float64())
}

// FromFrequency converts a frequency into a Value in Hz.
func FromFrequency(f physic.Frequency) Value {
	return Value{
		Val1: int32(f / physic.Hertz),
		Val2: int32((f % physic.Hertz) / physic.MicroHertz),
	}
}

// Frequency interprets the Value as a frequency in Hz.
func (v Value) Frequency() physic.Frequency {
	return physic.Frequency(v.Val1)*physic.Hertz +
		physic.Frequency(v.Val2)*physic.MicroHertz
}
