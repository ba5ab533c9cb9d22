// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package capture

import "sync"

// Slot hands the latest value from a producer to a consumer.  The consumer
// asks for a value with Request and the producer's next Offer fills the slot
// and clears the request.  Offers made without a request are dropped, so at
// most one value is ever pending and the producer never blocks.
type Slot[T any] struct {
	m         sync.Mutex
	requested bool
	latest    T
}

// Request asks for the next offered value.
func (s *Slot[T]) Request() {
	s.m.Lock()
	defer s.m.Unlock()

	s.requested = true
}

// Requested reports if a request is pending.
func (s *Slot[T]) Requested() bool {
	s.m.Lock()
	defer s.m.Unlock()

	return s.requested
}

// Offer stores v if a request is pending and reports if it did.
func (s *Slot[T]) Offer(v T) bool {
	s.m.Lock()
	defer s.m.Unlock()

	if !s.requested {
		return false
	}
	s.latest = v
	s.requested = false
	return true
}

// Latest returns the most recently stored value.
func (s *Slot[T]) Latest() T {
	s.m.Lock()
	defer s.m.Unlock()

	return s.latest
}
