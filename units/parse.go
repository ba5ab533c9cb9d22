// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package units

import (
	"fmt"
	"strconv"
	"strings"
)

// suffix describes one accepted unit spelling and how to convert a number
// in that unit into the base unit of the quantity.
type suffix struct {
	suffix string
	scale  float64
	offset float64
}

// parse finds the first matching suffix in the list and converts the number
// in front of it into the base unit.  Longer suffixes must appear before any
// shorter suffix they end with.
func parse(s string, list []suffix) (float64, error) {
	known := make([]string, 0, len(list))
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)

	for _, unit := range list {
		if strings.HasSuffix(lower, unit.suffix) {
			num := trimmed[:len(trimmed)-len(unit.suffix)]

			n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
			if err != nil {
				return 0.0, fmt.Errorf("%w: '%s' %v", ErrInvalidUnit, num, err)
			}
			return n*unit.scale + unit.offset, nil
		}
		known = append(known, unit.suffix)
	}

	return 0.0, fmt.Errorf("%w: unknown unit for '%s' valid: %s",
		ErrInvalidUnit, s, strings.Join(known, ", "))
}
