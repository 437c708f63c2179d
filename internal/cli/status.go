package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dimmer/internal/infrastructure/colorscheme"
	"github.com/bnema/dimmer/pkg/darkmode"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var scope, id string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the detected system preference and the persisted mode",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer closeApp(app)

			resolver, _ := colorscheme.NewDefaultResolver(app.Config.DarkMode)
			pref := resolver.Resolve()

			scheme := "light"
			if pref.PrefersDark {
				scheme = "dark"
			}
			fmt.Printf("system preference: %s (source: %s)\n", scheme, pref.Source)

			key := app.PersistedKey(scope, id)
			value, ok, err := app.Prefs.Get(app.Ctx(), key)
			if err != nil {
				return fmt.Errorf("read preference: %w", err)
			}
			mode := string(darkmode.ModeAuto)
			if ok {
				mode = value
			}
			fmt.Printf("persisted mode:    %s (key: %s)\n", mode, key)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Persistence scope (default from config)")
	cmd.Flags().StringVar(&id, "id", "", "Controller ID within the scope")
	return cmd
}
