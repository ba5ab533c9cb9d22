// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package sensor

import "errors"

var (
	// ErrNotFound is returned when no device is bound to a label.
	ErrNotFound = errors.New("device not found")

	// ErrNotSupported is returned when a device does not provide the
	// requested channel, attribute or trigger.
	ErrNotSupported = errors.New("not supported")

	// ErrOverrun is returned by a fetch when new samples overwrote unread
	// ones.  The fetched data is still valid.
	ErrOverrun = errors.New("sample overrun")

	// ErrInvalidValue is returned when an attribute value is out of range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotReady is returned when a channel is read before it was fetched.
	ErrNotReady = errors.New("not ready")

	// ErrDuplicateLabel is returned when a label is registered twice.
	ErrDuplicateLabel = errors.New("duplicate label")
)
