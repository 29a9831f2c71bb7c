// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hal

import (
	"fmt"
	"sync"

	"github.com/gogpu/forge/types"
)

var (
	// backendsMu protects the backends map.
	backendsMu sync.RWMutex

	// backends stores registered device factories by variant.
	backends = make(map[types.BackendVariant]func() Device)
)

// Register registers a device factory for a backend variant.
// This is typically called from init() functions in backend packages.
// Registering the same variant twice replaces the previous registration.
func Register(variant types.BackendVariant, factory func() Device) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[variant] = factory
}

// New creates a device of the given variant.
// Returns ErrBackendNotFound if no backend is registered for it.
func New(variant types.BackendVariant) (Device, error) {
	backendsMu.RLock()
	factory, ok := backends[variant]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotFound, variant)
	}
	return factory(), nil
}

// Available returns all registered backend variants.
// The order is non-deterministic.
func Available() []types.BackendVariant {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	result := make([]types.BackendVariant, 0, len(backends))
	for v := range backends {
		result = append(result, v)
	}
	return result
}
