package colorscheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dimmer/pkg/darkmode"
)

func TestFeeds_MirrorResolver(t *testing.T) {
	resolver := NewResolver(nil)
	detector := &mockDetector{
		name: "test", priority: 50, available: true, prefersDark: true, detectOk: true,
	}
	resolver.RegisterDetector(detector)
	resolver.Refresh()

	dark, light := NewFeeds(resolver)

	assert.True(t, dark.Matches())
	assert.False(t, light.Matches())

	detector.prefersDark = false
	resolver.Refresh()

	assert.False(t, dark.Matches())
	assert.True(t, light.Matches())
}

func TestFeeds_SubscribeAndUnsubscribe(t *testing.T) {
	resolver := NewResolver(nil)
	detector := &mockDetector{
		name: "test", priority: 50, available: true, prefersDark: true, detectOk: true,
	}
	resolver.RegisterDetector(detector)
	resolver.Refresh()

	dark, light := NewFeeds(resolver)

	var darkMatches, lightMatches []bool
	removeDark := dark.Subscribe(func(m bool) { darkMatches = append(darkMatches, m) })
	light.Subscribe(func(m bool) { lightMatches = append(lightMatches, m) })

	detector.prefersDark = false
	resolver.Refresh()

	require.Equal(t, []bool{false}, darkMatches)
	require.Equal(t, []bool{true}, lightMatches)

	// Removing the dark subscriber leaves the light one untouched.
	removeDark()

	detector.prefersDark = true
	resolver.Refresh()

	assert.Equal(t, []bool{false}, darkMatches)
	assert.Equal(t, []bool{true, false}, lightMatches)
}

func TestFeeds_ImplementPreferenceFeed(t *testing.T) {
	dark, light := NewFeeds(NewResolver(nil))

	var _ darkmode.PreferenceFeed = dark
	var _ darkmode.PreferenceFeed = light
	require.NotNil(t, dark)
	require.NotNil(t, light)
}
