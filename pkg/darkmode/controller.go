package darkmode

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Mode is the persisted tri-state preference, independent of the
// momentarily applied visuals.
type Mode string

const (
	// ModeAuto follows the system color-scheme preference.
	ModeAuto Mode = "auto"
	// ModeEnabled forces the dark scheme.
	ModeEnabled Mode = "enabled"
	// ModeDisabled forces the light scheme.
	ModeDisabled Mode = "disabled"
)

// SystemPreference is the last observed system color-scheme signal,
// independent of mode.
type SystemPreference string

const (
	PreferenceUnknown SystemPreference = "unknown"
	PreferenceDark    SystemPreference = "dark"
	PreferenceLight   SystemPreference = "light"
)

var (
	// ErrNoSurface is returned when a controller is constructed without a
	// usable surface in a live host environment.
	ErrNoSurface = errors.New("darkmode: no usable surface")

	// ErrUnbound is returned when the gesture handler or a toggle
	// operation is invoked on a detached controller.
	ErrUnbound = errors.New("darkmode: controller is detached")
)

// toggleRequest selects how a toggle resolves its target scheme.
type toggleRequest int

const (
	toggleInvert toggleRequest = iota // invert the surface's current marker
	toggleOn                         // force dark
	toggleOff                        // force light
	toggleAuto                       // resolve from the system preference
)

// Controller manages the dark mode preference for one bound surface.
// All state transitions run on event callbacks and toggle calls; a mutex
// serializes them, since the long-press timer fires on its own goroutine.
type Controller struct {
	mu sync.Mutex

	surface   Surface
	store     Store
	feeds     FeedSet
	log       zerolog.Logger
	id        string
	scope     string
	key       string
	longPress time.Duration

	mode          Mode
	system        SystemPreference
	lastPersisted string

	gesture     gestureState
	removePress func()
	unsubscribe []func()

	inert    bool
	detached bool
}

// New binds a controller to surface and resolves its initial state from
// the persisted value and the system preference feeds.
//
// Without a usable surface, New fails with ErrNoSurface in a live host
// environment; when opts.Host reports a non-live environment it returns
// an inert placeholder controller whose operations are no-ops.
func New(surface Surface, opts Options) (*Controller, error) {
	log := resolveLogger(opts.Logger)

	if surface == nil || surface.Owner() == nil {
		if opts.Host != nil && !opts.Host.Live() {
			log.Debug().Msg("no live host, constructing inert controller")
			return &Controller{
				inert:     true,
				mode:      ModeAuto,
				system:    PreferenceUnknown,
				scope:     DefaultScope,
				longPress: clampTimeout(opts.LongPressTimeout),
				log:       log,
			}, nil
		}
		return nil, ErrNoSurface
	}

	scope := opts.Scope
	if scope == "" {
		scope = deriveScope(surface.Location())
	}
	id := normalizeID(opts.ID)

	c := &Controller{
		surface:   surface,
		store:     opts.Store,
		id:        id,
		scope:     scope,
		key:       PersistedKey(scope, id),
		longPress: clampTimeout(opts.LongPressTimeout),
		mode:      ModeAuto,
		system:    PreferenceUnknown,
		log:       log.With().Str("component", "darkmode").Str("key", PersistedKey(scope, id)).Logger(),
	}

	cache := opts.FeedCache
	if cache == nil {
		cache = DefaultFeedCache
	}
	c.feeds = cache.Get(surface.Owner())

	c.mu.Lock()
	c.initState()
	c.mu.Unlock()

	c.subscribeFeeds()
	c.removePress = surface.OnPress(func(target Element) {
		_ = c.HandleEvent(Event{Kind: EventPress, Target: target})
	})

	return c, nil
}

// initState resolves the initial mode: a persisted "enabled" or
// "disabled" wins; anything else (absent, malformed, store unavailable)
// resolves to auto with the effective scheme taken from the system
// preference, persisting "auto" when a store is present.
// Caller must hold the mutex.
func (c *Controller) initState() {
	var persisted string
	var found bool

	if c.store != nil {
		value, ok, err := c.store.Get(c.key)
		if err != nil {
			c.log.Debug().Err(err).Msg("preference store unavailable")
			c.store = nil
		} else if ok {
			persisted, found = value, true
		}
	}

	switch {
	case found && persisted == string(ModeEnabled):
		c.mode = ModeEnabled
		c.lastPersisted = persisted
		c.applyScheme(true)
	case found && persisted == string(ModeDisabled):
		c.mode = ModeDisabled
		c.lastPersisted = persisted
		c.applyScheme(false)
	default:
		c.mode = ModeAuto
		if found {
			c.lastPersisted = persisted
		}
		c.applyScheme(c.autoDark())
		c.persist(string(ModeAuto))
	}
}

// subscribeFeeds registers on both preference feeds so that scheme
// changes re-apply visuals while the mode is auto. Only positive matches
// are forwarded; the feed that stopped matching is implied by the one
// that started.
func (c *Controller) subscribeFeeds() {
	if feed := c.feeds.PrefersDark; feed != nil {
		c.unsubscribe = append(c.unsubscribe, feed.Subscribe(func(matches bool) {
			if matches {
				_ = c.HandleEvent(Event{Kind: EventSchemeChange, Dark: true})
			}
		}))
	}
	if feed := c.feeds.PrefersLight; feed != nil {
		c.unsubscribe = append(c.unsubscribe, feed.Subscribe(func(matches bool) {
			if matches {
				_ = c.HandleEvent(Event{Kind: EventSchemeChange, Dark: false})
			}
		}))
	}
}

// Enable forces the dark scheme and persists mode "enabled".
func (c *Controller) Enable() error { return c.request(toggleOn) }

// Disable forces the light scheme and persists mode "disabled".
func (c *Controller) Disable() error { return c.request(toggleOff) }

// Toggle inverts the currently applied scheme as a manual override.
func (c *Controller) Toggle() error { return c.request(toggleInvert) }

// Auto reverts to automatic, system-driven mode.
func (c *Controller) Auto() error { return c.request(toggleAuto) }

func (c *Controller) request(req toggleRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert {
		return nil
	}
	if c.detached {
		return ErrUnbound
	}
	c.toggleLocked(req, false)
	return nil
}

// toggleLocked is the single mutation point for mode, system preference,
// persistence and visuals. Caller must hold the mutex.
//
// An auto-driven boolean request records the observed system preference
// and returns early unless the mode is auto: a forced mode ignores system
// changes until the user reverts.
func (c *Controller) toggleLocked(req toggleRequest, autoDriven bool) {
	if autoDriven {
		switch req {
		case toggleOn:
			c.system = PreferenceDark
		case toggleOff:
			c.system = PreferenceLight
		}
		if c.mode != ModeAuto {
			return
		}
	}

	var dark bool
	switch req {
	case toggleOn:
		dark = true
	case toggleOff:
		dark = false
	case toggleAuto:
		dark = c.autoDark()
	case toggleInvert:
		dark = !c.surface.Dark()
	}

	switch {
	case req == toggleAuto || autoDriven:
		c.setMode(ModeAuto)
	case dark:
		c.setMode(ModeEnabled)
	default:
		c.setMode(ModeDisabled)
	}

	c.applyScheme(dark)
}

// autoDark resolves the effective scheme for automatic mode: dark unless
// light is explicitly and exclusively preferred.
func (c *Controller) autoDark() bool {
	if c.feeds.PrefersDark != nil && c.feeds.PrefersDark.Matches() {
		return true
	}
	if c.feeds.PrefersLight == nil {
		return true
	}
	return !c.feeds.PrefersLight.Matches()
}

// setMode records the mode and persists it. Persistence is a set
// operation: rewriting an unchanged value is skipped.
func (c *Controller) setMode(mode Mode) {
	c.mode = mode
	c.persist(string(mode))
}

func (c *Controller) persist(value string) {
	if c.store == nil || value == c.lastPersisted {
		return
	}
	if err := c.store.Set(c.key, value); err != nil {
		c.log.Debug().Err(err).Msg("preference write dropped")
		return
	}
	c.lastPersisted = value
}

func (c *Controller) applyScheme(dark bool) {
	c.surface.ApplyScheme(dark)
	c.log.Debug().Bool("dark", dark).Str("mode", string(c.mode)).Msg("scheme applied")
}

// Detach removes every listener the controller installed: the press
// listener on the surface, the release listener on each registered
// document, and both preference feed subscriptions. It cancels any
// pending long-press timer. A second call is a no-op.
func (c *Controller) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert || c.detached {
		return
	}
	c.detached = true

	c.clearCapture()
	if c.removePress != nil {
		c.removePress()
		c.removePress = nil
	}
	for doc, remove := range c.gesture.contexts {
		remove()
		delete(c.gesture.contexts, doc)
	}
	for _, remove := range c.unsubscribe {
		remove()
	}
	c.unsubscribe = nil

	c.log.Debug().Msg("controller detached")
}

// Mode returns the persisted tri-state preference.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SystemPreference returns the last observed system color-scheme signal.
func (c *Controller) SystemPreference() SystemPreference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.system
}

// ID returns the normalized namespace disambiguator, possibly empty.
func (c *Controller) ID() string { return c.id }

// Scope returns the path-like persistence namespace.
func (c *Controller) Scope() string { return c.scope }

// PersistedKey returns the storage key this controller reads and writes.
func (c *Controller) PersistedKey() string { return c.key }

// Container returns the bound surface; nil for an inert controller.
func (c *Controller) Container() Surface { return c.surface }

// LongPressTimeout returns the effective, clamped long-press timeout.
func (c *Controller) LongPressTimeout() time.Duration { return c.longPress }
