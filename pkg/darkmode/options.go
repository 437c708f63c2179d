package darkmode

import (
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Long-press timer bounds. Configured timeouts are clamped into
// [MinLongPressTimeout, MaxLongPressTimeout]; an unset timeout resolves to
// DefaultLongPressTimeout.
const (
	DefaultLongPressTimeout = 2 * time.Second
	MinLongPressTimeout     = 1500 * time.Millisecond
	MaxLongPressTimeout     = 10 * time.Second
)

const (
	// keyPrefix namespaces persisted values in the shared store.
	keyPrefix = "dark-mode-state@"
	// DefaultScope is used when no scope is configured and none can be
	// derived from the surface location.
	DefaultScope = "/"
)

// Options configures a Controller. The zero value is valid: memory-only
// persistence, scope derived from the surface, default long-press timeout.
type Options struct {
	// ID disambiguates multiple controllers sharing a scope. Normalized
	// to its first whitespace-separated token; empty means no ID.
	ID string

	// Scope is the path-like persistence namespace. Derived from the
	// surface location when empty.
	Scope string

	// Store is the persistence handle. Nil means memory-only operation.
	Store Store

	// LongPressTimeout is how long a press must be held to classify as a
	// long press. Clamped into [MinLongPressTimeout, MaxLongPressTimeout];
	// zero or negative resolves to DefaultLongPressTimeout.
	LongPressTimeout time.Duration

	// FeedCache overrides the process-wide preference feed cache.
	FeedCache *FeedCache

	// Host probes the host environment. Nil is treated as live.
	Host Host

	// Logger receives controller diagnostics. Nil disables logging.
	Logger *zerolog.Logger
}

// PersistedKey returns the storage key for a scope and ID pair. It is a
// pure function of its inputs: "dark-mode-state@" + scope, with "#" + id
// appended when id is non-empty.
func PersistedKey(scope, id string) string {
	key := keyPrefix + scope
	if id != "" {
		key += "#" + id
	}
	return key
}

// normalizeID reduces an ID to a single non-empty token, or "".
func normalizeID(id string) string {
	fields := strings.Fields(id)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// clampTimeout resolves the configured long-press timeout.
func clampTimeout(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultLongPressTimeout
	case d < MinLongPressTimeout:
		return MinLongPressTimeout
	case d > MaxLongPressTimeout:
		return MaxLongPressTimeout
	default:
		return d
	}
}

// deriveScope extracts the path portion of a surface location. Falls back
// to DefaultScope when the location has no usable path.
func deriveScope(location string) string {
	if location == "" {
		return DefaultScope
	}
	u, err := url.Parse(location)
	if err != nil || u.Path == "" {
		return DefaultScope
	}
	return u.Path
}

// resolveLogger returns the configured logger or a disabled one.
func resolveLogger(logger *zerolog.Logger) zerolog.Logger {
	if logger == nil {
		return zerolog.Nop()
	}
	return *logger
}
