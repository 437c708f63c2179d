// Package colorscheme detects the system color-scheme preference and
// exposes it as live prefers-dark / prefers-light feeds.
package colorscheme

// Preference is a resolved system color-scheme preference.
type Preference struct {
	// PrefersDark indicates whether dark mode is preferred.
	PrefersDark bool

	// Source identifies which detector provided this preference.
	Source string
}

// Detector detects the system's color scheme preference. Multiple
// detectors can be registered with different priorities.
type Detector interface {
	// Name returns a human-readable name for this detector.
	Name() string

	// Priority returns the detector's priority. Higher values are
	// checked first. Recommended ranges:
	//   - 50+: desktop settings daemons (gsettings)
	//   - 20+: environment variables
	//   - 10+: settings files
	Priority() int

	// Available returns true if this detector can be used on the
	// current system.
	Available() bool

	// Detect returns the detected preference and whether detection
	// succeeded.
	Detect() (prefersDark bool, ok bool)
}
