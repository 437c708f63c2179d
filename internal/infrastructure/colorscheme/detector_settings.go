package colorscheme

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const (
	detectorNameSettings = "settings.ini"
	prioritySettings     = 10
)

// SettingsDetector reads the GTK settings.ini files. It is the lowest
// priority detector but its files are watchable, which makes it the
// change-notification anchor for the Monitor.
type SettingsDetector struct {
	paths []string
}

// NewSettingsDetector creates a detector over the default GTK settings
// file locations (gtk-4.0 first, then gtk-3.0).
func NewSettingsDetector() *SettingsDetector {
	return &SettingsDetector{paths: defaultSettingsPaths()}
}

func defaultSettingsPaths() []string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		configHome = filepath.Join(home, ".config")
	}
	return []string{
		filepath.Join(configHome, "gtk-4.0", "settings.ini"),
		filepath.Join(configHome, "gtk-3.0", "settings.ini"),
	}
}

// Name implements Detector.
func (*SettingsDetector) Name() string {
	return detectorNameSettings
}

// Priority implements Detector.
func (*SettingsDetector) Priority() int {
	return prioritySettings
}

// Available implements Detector.
// Returns true if at least one settings file exists.
func (d *SettingsDetector) Available() bool {
	for _, path := range d.paths {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// Paths returns the settings file locations, for file watching.
func (d *SettingsDetector) Paths() []string {
	return d.paths
}

// Detect implements Detector.
// Honors gtk-application-prefer-dark-theme and falls back to a theme
// name containing "dark".
func (d *SettingsDetector) Detect() (prefersDark, ok bool) {
	for _, path := range d.paths {
		if dark, found := parseSettingsFile(path); found {
			return dark, true
		}
	}
	return false, false
}

func parseSettingsFile(path string) (prefersDark, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return false, false
	}
	defer func() { _ = f.Close() }()

	var themeDark, themeFound bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "gtk-application-prefer-dark-theme":
			switch strings.ToLower(value) {
			case "1", "true":
				return true, true
			case "0", "false":
				return false, true
			}
		case "gtk-theme-name":
			themeFound = true
			themeDark = strings.Contains(strings.ToLower(value), "dark")
		}
	}
	if scanner.Err() != nil {
		return false, false
	}
	return themeDark, themeFound
}
