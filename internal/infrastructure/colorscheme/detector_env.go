package colorscheme

import (
	"os"
	"strings"
)

const (
	detectorNameEnv = "GTK_THEME"
	priorityEnv     = 20
)

// EnvDetector detects color scheme from the GTK_THEME environment
// variable, for users who set their theme explicitly.
type EnvDetector struct{}

// NewEnvDetector creates a new environment variable-based detector.
func NewEnvDetector() *EnvDetector {
	return &EnvDetector{}
}

// Name implements Detector.
func (*EnvDetector) Name() string {
	return detectorNameEnv
}

// Priority implements Detector.
func (*EnvDetector) Priority() int {
	return priorityEnv
}

// Available implements Detector.
func (*EnvDetector) Available() bool {
	return os.Getenv("GTK_THEME") != ""
}

// Detect implements Detector.
// A GTK_THEME containing "dark" (case-insensitive) means dark mode.
func (*EnvDetector) Detect() (prefersDark, ok bool) {
	gtkTheme := os.Getenv("GTK_THEME")
	if gtkTheme == "" {
		return false, false
	}

	prefersDark = strings.Contains(strings.ToLower(gtkTheme), "dark")
	return prefersDark, true
}
