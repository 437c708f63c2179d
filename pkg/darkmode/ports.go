package darkmode

// Media queries used to obtain the two system color-scheme feeds.
const (
	QueryPrefersDark  = "(prefers-color-scheme: dark)"
	QueryPrefersLight = "(prefers-color-scheme: light)"
)

// Element is anything that can be the target of a pointer event.
// Implementations must be comparable; the gesture classifier matches the
// press target against the release target by equality.
type Element interface {
	// Owner returns the document context that owns this element.
	// A nil owner means the element is detached from any context.
	Owner() Document
}

// Document is an owning context: the document-like scope that owns a set
// of elements. A pointer press may start in one document and end in
// another (a nested frame), so the controller installs release listeners
// on every document it observes. Implementations must be comparable; the
// listener registry and the feed cache key on document identity.
type Document interface {
	// OnRelease installs a context-wide release-phase listener that fires
	// for every pointer-up in the document, regardless of target. The
	// returned function removes exactly this listener.
	OnRelease(fn func(target Element)) (remove func())
}

// Surface is the visual container a Controller binds to. Exactly one of
// the two mutually exclusive scheme markers is present on the surface at
// all times after first resolution.
type Surface interface {
	Element

	// Location returns a path-like location for the surface, used to
	// derive the persistence scope when none is configured.
	Location() string

	// ApplyScheme sets the dark marker and removes the light marker, or
	// the reverse. Applying the current scheme again is a no-op.
	ApplyScheme(dark bool)

	// Dark reports whether the dark marker is currently applied.
	Dark() bool

	// OnPress installs a pointer-down listener scoped to the surface.
	// The returned function removes exactly this listener.
	OnPress(fn func(target Element)) (remove func())
}

// PreferenceFeed is a live boolean-valued feed for one media condition,
// such as the system's prefers-dark signal.
type PreferenceFeed interface {
	// Matches reports the current state of the condition.
	Matches() bool

	// Subscribe registers a listener invoked whenever the condition
	// changes. The returned function removes exactly this listener and
	// never touches listeners registered by other subscribers.
	Subscribe(fn func(matches bool)) (remove func())
}

// MediaQuerier is an optional Document capability for obtaining live
// media-condition feeds. Documents that do not implement it get an empty
// feed set and the controller operates from persisted state only.
type MediaQuerier interface {
	// MatchMedia returns a live feed for the given media query.
	MatchMedia(query string) (PreferenceFeed, error)
}

// Store is a synchronous string-keyed persistence handle. The controller
// treats every error as "store unavailable" and degrades to memory-only
// operation; it never surfaces storage failures to callers.
type Store interface {
	// Get returns the stored value for key. ok is false when the key is
	// absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// Host reports whether a live host environment is present. When a
// controller is constructed without a usable surface, a live host makes
// that a fatal error while a non-live host (tests, mocked environments)
// yields an inert placeholder controller instead.
type Host interface {
	Live() bool
}
