package colorscheme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonitor_PollRefreshes(t *testing.T) {
	resolver := NewResolver(nil)
	detector := &mockDetector{
		name: "test", priority: 50, available: true, prefersDark: false, detectOk: true,
	}
	resolver.RegisterDetector(detector)

	m := NewMonitor(resolver, nil, 20*time.Millisecond)
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	// Start performs the initial refresh.
	require.False(t, resolver.Current().PrefersDark)

	detector.prefersDark = true
	require.Eventually(t, func() bool {
		return resolver.Current().PrefersDark
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMonitor_WatchesSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte("gtk-application-prefer-dark-theme=0\n"), 0o644))

	resolver := NewResolver(nil)
	resolver.RegisterDetector(&SettingsDetector{paths: []string{path}})

	// Long poll interval: only the file watcher can deliver the change
	// in time.
	m := NewMonitor(resolver, []string{path}, time.Hour)
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop()

	require.False(t, resolver.Current().PrefersDark)

	require.NoError(t, os.WriteFile(path, []byte("gtk-application-prefer-dark-theme=1\n"), 0o644))

	require.Eventually(t, func() bool {
		return resolver.Current().PrefersDark
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMonitor_StopIdempotent(t *testing.T) {
	m := NewMonitor(NewResolver(nil), nil, time.Minute)
	require.NoError(t, m.Start(context.Background()))

	m.Stop()
	m.Stop()

	// Restart works after a full stop.
	require.NoError(t, m.Start(context.Background()))
	m.Stop()
}
