// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package sensor

import "fmt"

// Channel identifies a physical quantity, or a group of axes of one, that a
// device exposes.
type Channel int

const (
	AccelX Channel = iota
	AccelY
	AccelZ
	AccelXYZ
	GyroX
	GyroY
	GyroZ
	GyroXYZ
	MagnX
	MagnY
	MagnZ
	MagnXYZ
	Press
	AmbientTemp

	// All addresses every channel of a device.
	All
)

var channelNames = [...]string{
	AccelX:      "accel_x",
	AccelY:      "accel_y",
	AccelZ:      "accel_z",
	AccelXYZ:    "accel_xyz",
	GyroX:       "gyro_x",
	GyroY:       "gyro_y",
	GyroZ:       "gyro_z",
	GyroXYZ:     "gyro_xyz",
	MagnX:       "magn_x",
	MagnY:       "magn_y",
	MagnZ:       "magn_z",
	MagnXYZ:     "magn_xyz",
	Press:       "press",
	AmbientTemp: "ambient_temp",
	All:         "all",
}

func (c Channel) String() string {
	if c >= 0 && int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// Axes returns the single axis channels that make up c.  A single axis
// channel returns itself.
func (c Channel) Axes() []Channel {
	switch c {
	case AccelXYZ:
		return []Channel{AccelX, AccelY, AccelZ}
	case GyroXYZ:
		return []Channel{GyroX, GyroY, GyroZ}
	case MagnXYZ:
		return []Channel{MagnX, MagnY, MagnZ}
	case All:
		return []Channel{
			AccelX, AccelY, AccelZ,
			GyroX, GyroY, GyroZ,
			MagnX, MagnY, MagnZ,
			Press, AmbientTemp,
		}
	}
	return []Channel{c}
}

// Group returns the multi axis channel c belongs to, or c itself.
func (c Channel) Group() Channel {
	switch c {
	case AccelX, AccelY, AccelZ:
		return AccelXYZ
	case GyroX, GyroY, GyroZ:
		return GyroXYZ
	case MagnX, MagnY, MagnZ:
		return MagnXYZ
	}
	return c
}

// Attribute is a configurable property of a channel.
type Attribute int

const (
	SamplingFrequency Attribute = iota
	FullScale
)

func (a Attribute) String() string {
	switch a {
	case SamplingFrequency:
		return "sampling_frequency"
	case FullScale:
		return "full_scale"
	}
	return fmt.Sprintf("attribute(%d)", int(a))
}

// TriggerType is the kind of event a device can notify about.
type TriggerType int

const (
	DataReady TriggerType = iota
)

func (t TriggerType) String() string {
	if t == DataReady {
		return "data_ready"
	}
	return fmt.Sprintf("trigger(%d)", int(t))
}

// Trigger names the event and the channel it is raised for.
type Trigger struct {
	Type    TriggerType
	Channel Channel
}
