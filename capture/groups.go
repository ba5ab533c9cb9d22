// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMode  = errors.New("invalid mode")
	ErrInvalidGroup = errors.New("invalid channel group")
)

// Mode selects how samples are captured.
type Mode int

const (
	// ModeTrigger captures from the device's data ready callback.
	ModeTrigger Mode = iota

	// ModePoll fetches inline from the report loop.
	ModePoll
)

// ParseMode accepts "trigger" or "poll".  An empty string is trigger.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "trigger":
		return ModeTrigger, nil
	case "poll", "polling":
		return ModePoll, nil
	}
	return ModeTrigger, fmt.Errorf("%w: '%s'", ErrInvalidMode, s)
}

func (m Mode) String() string {
	if m == ModePoll {
		return "poll"
	}
	return "trigger"
}

// Groups is the set of channel groups that are captured and reported.
type Groups uint8

const (
	Accel Groups = 1 << iota
	Gyro
	Magn
	PressTemp
)

var groupNames = []struct {
	g    Groups
	name string
}{
	{g: Accel, name: "accel"},
	{g: Gyro, name: "gyro"},
	{g: Magn, name: "magn"},
	{g: PressTemp, name: "press_temp"},
}

// ParseGroups converts a list of group names into Groups.  The acceleration
// group is always included.
func ParseGroups(names []string) (Groups, error) {
	g := Accel

outer:
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, known := range groupNames {
			if known.name == name {
				g |= known.g
				continue outer
			}
		}
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidGroup, name)
	}

	return g, nil
}

// Has reports if every group in x is part of g.
func (g Groups) Has(x Groups) bool {
	return g&x == x
}

func (g Groups) String() string {
	names := make([]string, 0, len(groupNames))
	for _, known := range groupNames {
		if g.Has(known.g) {
			names = append(names, known.name)
		}
	}
	return strings.Join(names, ",")
}
