// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package sensor

import (
	"fmt"
	"sort"
	"sync"
)

// Registry binds devices to their labels.
type Registry struct {
	m       sync.Mutex
	devices map[string]Device
}

// NewRegistry creates a registry holding the devices provided.
func NewRegistry(devs ...Device) (*Registry, error) {
	r := Registry{
		devices: make(map[string]Device, len(devs)),
	}

	for _, d := range devs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}

	return &r, nil
}

// Register binds d to d.Name().
func (r *Registry) Register(d Device) error {
	r.m.Lock()
	defer r.m.Unlock()

	if r.devices == nil {
		r.devices = make(map[string]Device)
	}

	if _, found := r.devices[d.Name()]; found {
		return fmt.Errorf("%w: '%s'", ErrDuplicateLabel, d.Name())
	}
	r.devices[d.Name()] = d
	return nil
}

// Lookup returns the device bound to label.
func (r *Registry) Lookup(label string) (Device, error) {
	r.m.Lock()
	defer r.m.Unlock()

	d, ok := r.devices[label]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, label)
	}
	return d, nil
}

// Labels returns the sorted list of bound labels.
func (r *Registry) Labels() []string {
	r.m.Lock()
	defer r.m.Unlock()

	labels := make([]string, 0, len(r.devices))
	for k := range r.devices {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return labels
}
