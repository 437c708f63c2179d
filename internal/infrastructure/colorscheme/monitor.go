package colorscheme

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/dimmer/internal/logging"
)

// Monitor keeps a resolver fresh: it refreshes on file-system events
// from the GTK settings files and on a coarse poll ticker, which covers
// detectors (gsettings, environment) that have nothing to watch.
type Monitor struct {
	resolver *Resolver
	paths    map[string]struct{}
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewMonitor creates a monitor over the given settings file paths.
// interval is the fallback poll interval; it must be positive.
func NewMonitor(resolver *Resolver, paths []string, interval time.Duration) *Monitor {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return &Monitor{
		resolver: resolver,
		paths:    set,
		interval: interval,
	}
}

// Start begins watching and polling. It performs an initial Refresh so
// the resolver's tracked state is populated before any subscriber looks
// at it. Degrades to poll-only operation when the file watcher cannot
// be created.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done != nil {
		return nil // already running
	}

	log := logging.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn().Err(err).Msg("settings watcher unavailable, polling only")
		watcher = nil
	} else {
		// Watch parent directories: editors and settings daemons
		// replace the files rather than rewriting them in place.
		dirs := make(map[string]struct{})
		for path := range m.paths {
			dirs[filepath.Dir(path)] = struct{}{}
		}
		for dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				log.Debug().Err(err).Str("dir", dir).Msg("cannot watch settings directory")
			}
		}
	}
	m.watcher = watcher

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	m.resolver.Refresh()

	go m.run(runCtx)
	return nil
}

// Stop halts watching and polling. Idempotent.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (m *Monitor) run(ctx context.Context) {
	log := logging.FromContext(ctx)

	m.mu.Lock()
	watcher, done := m.watcher, m.done
	m.mu.Unlock()

	defer close(done)
	if watcher != nil {
		defer func() { _ = watcher.Close() }()
	}

	var events <-chan fsnotify.Event
	var errors <-chan error
	if watcher != nil {
		events = watcher.Events
		errors = watcher.Errors
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if _, watched := m.paths[event.Name]; !watched {
				continue
			}
			log.Debug().Str("op", event.Op.String()).Str("file", event.Name).Msg("settings change detected")
			m.resolver.Refresh()
		case err, ok := <-errors:
			if !ok {
				errors = nil
				continue
			}
			log.Debug().Err(err).Msg("settings watcher error")
		case <-ticker.C:
			m.resolver.Refresh()
		}
	}
}
