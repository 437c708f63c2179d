package darkmode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistedKey(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		id    string
		want  string
	}{
		{name: "root scope no id", scope: "/", id: "", want: "dark-mode-state@/"},
		{name: "root scope with id", scope: "/", id: "sidebar", want: "dark-mode-state@/#sidebar"},
		{name: "nested scope", scope: "/docs/guide", id: "", want: "dark-mode-state@/docs/guide"},
		{name: "nested scope with id", scope: "/docs/guide", id: "toc", want: "dark-mode-state@/docs/guide#toc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PersistedKey(tt.scope, tt.id))
			// Deterministic: same inputs, same key.
			assert.Equal(t, PersistedKey(tt.scope, tt.id), PersistedKey(tt.scope, tt.id))
		})
	}
}

func TestClampTimeout(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{name: "zero resolves to default", in: 0, want: DefaultLongPressTimeout},
		{name: "negative resolves to default", in: -time.Second, want: DefaultLongPressTimeout},
		{name: "below minimum clamps up", in: 200 * time.Millisecond, want: MinLongPressTimeout},
		{name: "above maximum clamps down", in: time.Minute, want: MaxLongPressTimeout},
		{name: "in range passes through", in: 3 * time.Second, want: 3 * time.Second},
		{name: "minimum passes through", in: MinLongPressTimeout, want: MinLongPressTimeout},
		{name: "maximum passes through", in: MaxLongPressTimeout, want: MaxLongPressTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampTimeout(tt.in))
		})
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "  \t ", want: ""},
		{name: "plain token", in: "sidebar", want: "sidebar"},
		{name: "padded token", in: "  sidebar  ", want: "sidebar"},
		{name: "multiple tokens keep first", in: "main panel", want: "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeID(tt.in))
		})
	}
}

func TestDeriveScope(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{name: "empty location", location: "", want: "/"},
		{name: "bare path", location: "/docs/guide", want: "/docs/guide"},
		{name: "full url", location: "https://example.com/docs/guide", want: "/docs/guide"},
		{name: "url without path", location: "https://example.com", want: "/"},
		{name: "unparsable", location: "http://bad host/x", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveScope(tt.location))
		})
	}
}

func TestNew_OptionNormalization(t *testing.T) {
	surface := &fakeSurface{doc: &bareDocument{}, location: "https://example.com/docs/page"}

	c, err := New(surface, Options{
		ID:               "  side panel ",
		LongPressTimeout: 100 * time.Millisecond,
		FeedCache:        NewFeedCache(),
	})
	require.NoError(t, err)

	assert.Equal(t, "side", c.ID())
	assert.Equal(t, "/docs/page", c.Scope())
	assert.Equal(t, "dark-mode-state@/docs/page#side", c.PersistedKey())
	assert.Equal(t, MinLongPressTimeout, c.LongPressTimeout())
	assert.Same(t, surface, c.Container())
}

func TestNew_ExplicitScopeWins(t *testing.T) {
	surface := &fakeSurface{doc: &bareDocument{}, location: "/elsewhere"}

	c, err := New(surface, Options{Scope: "/pinned", FeedCache: NewFeedCache()})
	require.NoError(t, err)

	assert.Equal(t, "/pinned", c.Scope())
	assert.Equal(t, "dark-mode-state@/pinned", c.PersistedKey())
}
