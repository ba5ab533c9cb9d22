// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package units

import "fmt"

// Pressure is a measurement of pressure stored as a float64 in kPa.
type Pressure float64

// ParsePressure sets the pressure based on the string provided.  Both a number
// and units are required.
func ParsePressure(s string) (Pressure, error) {
	n, err := parse(s, []suffix{
		{suffix: "kpa", scale: 1.0},
		{suffix: "hpa", scale: 0.1},
		{suffix: "mbar", scale: 0.1},
		{suffix: "pa", scale: 0.001},
		{suffix: "bar", scale: 100.0},
		{suffix: "psi", scale: 6.894757},
	})
	return Pressure(n), err
}

// Hectopascals returns the pressure in hPa.
func (p Pressure) Hectopascals() float64 {
	return float64(p) * 10.0
}

// String returns the pressure formatted as a string in kPa.
func (p Pressure) String() string {
	return fmt.Sprintf("%.3fkPa", p)
}

// Temperature is a measurement of temperature stored as a float64 in degrees
// Celsius.
type Temperature float64

// ParseTemperature sets the temperature based on the string provided.  Both a
// number and units are required.
func ParseTemperature(s string) (Temperature, error) {
	n, err := parse(s, []suffix{
		{suffix: "c", scale: 1.0},
		{suffix: "f", scale: 5.0 / 9.0, offset: -32.0 * 5.0 / 9.0},
		{suffix: "k", scale: 1.0, offset: -273.15},
	})
	return Temperature(n), err
}

// Fahrenheit returns the temperature in degrees F.
func (t Temperature) Fahrenheit() float64 {
	return float64(t)*9/5 + 32.0
}

// String returns the temperature formatted as a string in degrees C.
func (t Temperature) String() string {
	return fmt.Sprintf("%.3fC", t)
}
