package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/dimmer/internal/infrastructure/colorscheme"
	"github.com/bnema/dimmer/internal/infrastructure/headless"
	"github.com/bnema/dimmer/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dimmer/internal/logging"
	"github.com/bnema/dimmer/pkg/darkmode"
)

// NewWatchCmd creates the watch command. It binds a controller to a
// headless surface and follows the system preference until interrupted.
func NewWatchCmd() *cobra.Command {
	var location, id string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the system preference and keep the persisted mode applied",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer closeApp(app)

			ctx, stop := signal.NotifyContext(app.Ctx(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			log := logging.FromContext(ctx)

			resolver, settings := colorscheme.NewDefaultResolver(app.Config.DarkMode)
			prefersDark, prefersLight := colorscheme.NewFeeds(resolver)

			doc := headless.NewDocument(prefersDark, prefersLight)
			surface := headless.NewSurface(doc, location)

			controller, err := darkmode.New(surface, darkmode.Options{
				ID:               id,
				Scope:            app.Config.DarkMode.Scope,
				Store:            sqlite.NewStore(ctx, app.Prefs),
				LongPressTimeout: app.Config.DarkMode.LongPressTimeout,
				FeedCache:        darkmode.NewFeedCache(),
				Logger:           log,
			})
			if err != nil {
				return fmt.Errorf("bind controller: %w", err)
			}
			defer controller.Detach()

			monitor := colorscheme.NewMonitor(resolver, settings.Paths(), app.Config.DarkMode.PollInterval)
			if err := monitor.Start(ctx); err != nil {
				return fmt.Errorf("start monitor: %w", err)
			}
			defer monitor.Stop()

			removeLog := resolver.OnChange(func(pref colorscheme.Preference) {
				log.Info().
					Bool("prefers_dark", pref.PrefersDark).
					Str("source", pref.Source).
					Bool("surface_dark", surface.Dark()).
					Msg("system preference changed")
			})
			defer removeLog()

			fmt.Printf("watching %s (mode %s, dark %v); press Ctrl+C to stop\n",
				controller.PersistedKey(), controller.Mode(), surface.Dark())

			<-ctx.Done()
			log.Info().Msg("shutting down")
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "/", "Surface location used to derive the scope")
	cmd.Flags().StringVar(&id, "id", "", "Controller ID within the scope")
	return cmd
}
