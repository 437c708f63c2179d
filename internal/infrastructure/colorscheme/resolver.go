package colorscheme

import (
	"sort"
	"strings"
	"sync"
)

const (
	// sourceFallback indicates no detector provided the preference.
	sourceFallback = "fallback"
	// sourceConfig indicates the preference came from user config.
	sourceConfig = "config"
)

// ConfigProvider provides access to the color scheme configuration.
type ConfigProvider interface {
	// GetColorScheme returns the configured color scheme preference.
	// Expected values: "default", "prefer-dark", "prefer-light", "dark", "light"
	GetColorScheme() string
}

// callbackWrapper wraps a callback function to enable pointer comparison
// for removal.
type callbackWrapper struct {
	fn func(Preference)
}

// Resolver resolves the effective system color-scheme preference from a
// chain of detectors, respecting an explicit config override.
type Resolver struct {
	mu        sync.RWMutex
	config    ConfigProvider
	detectors []Detector
	current   Preference
	callbacks []*callbackWrapper
}

// NewResolver creates a new color scheme resolver. The config provider
// is consulted for explicit user preferences before any detector runs.
func NewResolver(config ConfigProvider) *Resolver {
	return &Resolver{
		config: config,
		current: Preference{
			PrefersDark: true, // Default to dark until first Resolve()
			Source:      sourceFallback,
		},
	}
}

// RegisterDetector adds a detector to the chain. Safe to call at any
// time; the resolver re-evaluates on the next Resolve or Refresh.
func (r *Resolver) RegisterDetector(detector Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = append(r.detectors, detector)
}

// Resolve returns the current color scheme preference without updating
// the tracked state or notifying callbacks.
func (r *Resolver) Resolve() Preference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveLocked()
}

// Current returns the preference established by the last Refresh.
func (r *Resolver) Current() Preference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Refresh re-evaluates the preference and notifies callbacks when the
// dark/light outcome changed. Returns the new preference.
func (r *Resolver) Refresh() Preference {
	r.mu.Lock()
	newPref := r.resolveLocked()
	changed := newPref.PrefersDark != r.current.PrefersDark
	r.current = newPref

	var callbacks []*callbackWrapper
	if changed {
		callbacks = make([]*callbackWrapper, len(r.callbacks))
		copy(callbacks, r.callbacks)
	}
	r.mu.Unlock()

	// Invoke callbacks outside the lock.
	for _, cb := range callbacks {
		cb.fn(newPref)
	}
	return newPref
}

// OnChange registers a callback invoked when Refresh results in a
// different preference. Returns a function that unregisters exactly this
// callback.
func (r *Resolver) OnChange(callback func(Preference)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	wrapper := &callbackWrapper{fn: callback}
	r.callbacks = append(r.callbacks, wrapper)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, cb := range r.callbacks {
			if cb == wrapper {
				r.callbacks = append(r.callbacks[:i], r.callbacks[i+1:]...)
				return
			}
		}
	}
}

// resolveLocked performs the actual resolution. Caller must hold at
// least a read lock.
func (r *Resolver) resolveLocked() Preference {
	// Check config for explicit override first
	if r.config != nil {
		switch strings.ToLower(r.config.GetColorScheme()) {
		case "prefer-dark", "dark":
			return Preference{PrefersDark: true, Source: sourceConfig}
		case "prefer-light", "light":
			return Preference{PrefersDark: false, Source: sourceConfig}
			// "default" or empty falls through to detector chain
		}
	}

	// Sort detectors by priority (highest first)
	sorted := make([]Detector, len(r.detectors))
	copy(sorted, r.detectors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	for _, detector := range sorted {
		if !detector.Available() {
			continue
		}
		if prefersDark, ok := detector.Detect(); ok {
			return Preference{PrefersDark: prefersDark, Source: detector.Name()}
		}
	}

	// Fallback to dark mode if all detectors fail
	return Preference{PrefersDark: true, Source: sourceFallback}
}

// NewDefaultResolver builds a resolver with the standard detector chain.
func NewDefaultResolver(config ConfigProvider) (*Resolver, *SettingsDetector) {
	r := NewResolver(config)
	settings := NewSettingsDetector()
	r.RegisterDetector(NewGsettingsDetector())
	r.RegisterDetector(NewEnvDetector())
	r.RegisterDetector(settings)
	return r, settings
}
