// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"fmt"

	"github.com/schmidtw/lis2dh-monitor/sensor"
)

// Snapshot holds one reading per tracked axis.
type Snapshot struct {
	Accel [3]sensor.Value
	Gyro  [3]sensor.Value
	Magn  [3]sensor.Value
	Press sensor.Value
	Temp  sensor.Value
}

// Lines formats the groups of the snapshot for the console.
func (s Snapshot) Lines(g Groups) []string {
	lines := make([]string, 0, 4)

	lines = append(lines, fmt.Sprintf("accel (%f %f %f) m/s2",
		s.Accel[0].Float64(), s.Accel[1].Float64(), s.Accel[2].Float64()))

	if g.Has(Gyro) {
		lines = append(lines, fmt.Sprintf("gyro (%f %f %f) dps",
			s.Gyro[0].Float64(), s.Gyro[1].Float64(), s.Gyro[2].Float64()))
	}

	if g.Has(Magn) {
		lines = append(lines, fmt.Sprintf("magn (%f %f %f) gauss",
			s.Magn[0].Float64(), s.Magn[1].Float64(), s.Magn[2].Float64()))
	}

	if g.Has(PressTemp) {
		lines = append(lines, fmt.Sprintf("press (%f) kPa - temp (%f) deg",
			s.Press.Float64(), s.Temp.Float64()))
	}

	return lines
}

// values returns every tracked reading keyed by its channel.
func (s Snapshot) values(g Groups) map[sensor.Channel]sensor.Value {
	out := make(map[sensor.Channel]sensor.Value, 11)

	for i, ch := range sensor.AccelXYZ.Axes() {
		out[ch] = s.Accel[i]
	}
	if g.Has(Gyro) {
		for i, ch := range sensor.GyroXYZ.Axes() {
			out[ch] = s.Gyro[i]
		}
	}
	if g.Has(Magn) {
		for i, ch := range sensor.MagnXYZ.Axes() {
			out[ch] = s.Magn[i]
		}
	}
	if g.Has(PressTemp) {
		out[sensor.Press] = s.Press
		out[sensor.AmbientTemp] = s.Temp
	}

	return out
}
