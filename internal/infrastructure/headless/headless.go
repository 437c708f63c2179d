// Package headless provides in-process implementations of the dark mode
// surface and document ports. The CLI binds a controller to them; tests
// drive pointer events through them directly.
package headless

import (
	"fmt"
	"sync"

	"github.com/bnema/dimmer/pkg/darkmode"
)

// Document is an owning context backed by a pair of preference feeds.
// It implements darkmode.Document and darkmode.MediaQuerier.
type Document struct {
	mu       sync.Mutex
	dark     darkmode.PreferenceFeed
	light    darkmode.PreferenceFeed
	releases []*func(darkmode.Element)
}

// NewDocument creates a document whose media queries resolve to the
// given feeds. Either feed may be nil, in which case the matching query
// fails.
func NewDocument(dark, light darkmode.PreferenceFeed) *Document {
	return &Document{dark: dark, light: light}
}

// OnRelease implements darkmode.Document.
func (d *Document) OnRelease(fn func(target darkmode.Element)) (remove func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ptr := &fn
	d.releases = append(d.releases, ptr)
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, p := range d.releases {
			if p == ptr {
				d.releases = append(d.releases[:i], d.releases[i+1:]...)
				return
			}
		}
	}
}

// MatchMedia implements darkmode.MediaQuerier for the two color-scheme
// queries.
func (d *Document) MatchMedia(query string) (darkmode.PreferenceFeed, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var feed darkmode.PreferenceFeed
	switch query {
	case darkmode.QueryPrefersDark:
		feed = d.dark
	case darkmode.QueryPrefersLight:
		feed = d.light
	default:
		return nil, fmt.Errorf("unsupported media query: %q", query)
	}
	if feed == nil {
		return nil, fmt.Errorf("no feed for media query: %q", query)
	}
	return feed, nil
}

// Release dispatches a pointer-up for target to every release listener.
func (d *Document) Release(target darkmode.Element) {
	d.mu.Lock()
	listeners := make([]*func(darkmode.Element), len(d.releases))
	copy(listeners, d.releases)
	d.mu.Unlock()

	for _, fn := range listeners {
		(*fn)(target)
	}
}

// Surface is a headless visual container. The scheme markers are plain
// booleans; ApplyScheme keeps them mutually exclusive.
type Surface struct {
	doc      *Document
	location string

	mu      sync.Mutex
	dark    bool
	light   bool
	presses []*func(darkmode.Element)
}

// NewSurface creates a surface owned by doc with the given location.
func NewSurface(doc *Document, location string) *Surface {
	return &Surface{doc: doc, location: location, light: true}
}

// Owner implements darkmode.Element.
func (s *Surface) Owner() darkmode.Document {
	if s.doc == nil {
		return nil
	}
	return s.doc
}

// Location implements darkmode.Surface.
func (s *Surface) Location() string { return s.location }

// ApplyScheme implements darkmode.Surface.
func (s *Surface) ApplyScheme(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = dark
	s.light = !dark
}

// Dark implements darkmode.Surface.
func (s *Surface) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Light reports whether the light marker is applied. The two markers
// are mutually exclusive once a scheme has been applied.
func (s *Surface) Light() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.light
}

// OnPress implements darkmode.Surface.
func (s *Surface) OnPress(fn func(target darkmode.Element)) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ptr := &fn
	s.presses = append(s.presses, ptr)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, p := range s.presses {
			if p == ptr {
				s.presses = append(s.presses[:i], s.presses[i+1:]...)
				return
			}
		}
	}
}

// Press dispatches a pointer-down on the surface itself.
func (s *Surface) Press() {
	s.mu.Lock()
	listeners := make([]*func(darkmode.Element), len(s.presses))
	copy(listeners, s.presses)
	s.mu.Unlock()

	for _, fn := range listeners {
		(*fn)(s)
	}
}

// Host reports host liveness for controller construction.
type Host struct {
	Present bool
}

// Live implements darkmode.Host.
func (h Host) Live() bool { return h.Present }
