// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package sensor

import "context"

// Device is a sensor driver.  SampleFetch latches fresh readings from the
// hardware and ChannelGet returns the latched readings, one Value per axis.
type Device interface {
	// Name returns the label the device is bound to.
	Name() string

	// AttrSet configures an attribute of a channel.
	AttrSet(ch Channel, attr Attribute, v Value) error

	// SampleFetch latches every channel.
	SampleFetch() error

	// SampleFetchChannel latches a single channel or channel group.
	SampleFetchChannel(ch Channel) error

	// ChannelGet returns the latched values of a channel, one per axis.
	ChannelGet(ch Channel) ([]Value, error)
}

// Handler is called by a device when a trigger fires.  It runs on the
// device's goroutine and must not block.
type Handler func(dev Device, trig Trigger)

// Triggerer is implemented by devices that can notify about new data.
type Triggerer interface {
	// TriggerSet registers h for trig.  Only one handler per trigger is kept.
	TriggerSet(trig Trigger, h Handler) error
}

// Starter is implemented by devices that own hardware resources or
// goroutines.
type Starter interface {
	Start(context.Context) error
	Stop(context.Context) error
}
