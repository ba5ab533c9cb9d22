// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package units

import (
	"fmt"
	"math"
)

// StandardGravity is the acceleration of a free falling object at sea level.
const StandardGravity = 9.80665

// Acceleration is a measurement of acceleration stored as a float64 in m/s2.
type Acceleration float64

// ParseAcceleration sets the acceleration based on the string provided.  Both
// a number and units are required.
func ParseAcceleration(s string) (Acceleration, error) {
	n, err := parse(s, []suffix{
		{suffix: "m/s^2", scale: 1.0},
		{suffix: "m/s2", scale: 1.0},
		{suffix: "mg", scale: StandardGravity / 1000.0},
		{suffix: "g", scale: StandardGravity},
	})
	return Acceleration(n), err
}

// G returns the acceleration as a multiple of standard gravity.
func (a Acceleration) G() float64 {
	return float64(a) / StandardGravity
}

// String returns the acceleration formatted as a string in m/s2.
func (a Acceleration) String() string {
	return fmt.Sprintf("%.3fm/s2", a)
}

// AngularRate is a measurement of rotational speed stored as a float64 in
// degrees per second.
type AngularRate float64

// ParseAngularRate sets the angular rate based on the string provided.  Both
// a number and units are required.
func ParseAngularRate(s string) (AngularRate, error) {
	n, err := parse(s, []suffix{
		{suffix: "rad/s", scale: 180.0 / math.Pi},
		{suffix: "deg/s", scale: 1.0},
		{suffix: "dps", scale: 1.0},
		{suffix: "rpm", scale: 6.0},
	})
	return AngularRate(n), err
}

// RadiansPerSecond returns the angular rate in rad/s.
func (r AngularRate) RadiansPerSecond() float64 {
	return float64(r) * math.Pi / 180.0
}

// String returns the angular rate formatted as a string in dps.
func (r AngularRate) String() string {
	return fmt.Sprintf("%.3fdps", r)
}

// MagneticField is a measurement of magnetic flux density stored as a float64
// in gauss.
type MagneticField float64

// ParseMagneticField sets the field strength based on the string provided.
// Both a number and units are required.
func ParseMagneticField(s string) (MagneticField, error) {
	n, err := parse(s, []suffix{
		{suffix: "mgauss", scale: 0.001},
		{suffix: "gauss", scale: 1.0},
		{suffix: "ut", scale: 0.01},
		{suffix: "nt", scale: 0.00001},
	})
	return MagneticField(n), err
}

// Microtesla returns the field strength in uT.
func (m MagneticField) Microtesla() float64 {
	return float64(m) * 100.0
}

// String returns the field strength formatted as a string in gauss.
func (m MagneticField) String() string {
	return fmt.Sprintf("%.3fgauss", m)
}
