package colorscheme

// Feed adapts the resolver into one live boolean feed: either the
// prefers-dark view or its prefers-light inverse. Both views share the
// resolver's callback list, so subscribers never disturb each other.
type Feed struct {
	resolver *Resolver
	dark     bool
}

// NewFeeds returns the prefers-dark and prefers-light feeds over one
// resolver.
func NewFeeds(resolver *Resolver) (prefersDark, prefersLight *Feed) {
	return &Feed{resolver: resolver, dark: true},
		&Feed{resolver: resolver, dark: false}
}

// Matches reports the current state of this feed's condition.
func (f *Feed) Matches() bool {
	pref := f.resolver.Current()
	if f.dark {
		return pref.PrefersDark
	}
	return !pref.PrefersDark
}

// Subscribe registers a listener invoked on every preference change.
// The returned function removes exactly this listener.
func (f *Feed) Subscribe(fn func(matches bool)) func() {
	return f.resolver.OnChange(func(pref Preference) {
		if f.dark {
			fn(pref.PrefersDark)
		} else {
			fn(!pref.PrefersDark)
		}
	})
}
