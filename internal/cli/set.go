package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bnema/dimmer/pkg/darkmode"
)

// NewSetCmd creates the set command.
func NewSetCmd() *cobra.Command {
	var scope, id string

	cmd := &cobra.Command{
		Use:       "set {auto|enabled|disabled}",
		Short:     "Persist the dark mode preference for a scope",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(darkmode.ModeAuto), string(darkmode.ModeEnabled), string(darkmode.ModeDisabled)},
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer closeApp(app)

			key := app.PersistedKey(scope, id)
			if err := app.Prefs.Set(app.Ctx(), key, args[0]); err != nil {
				return fmt.Errorf("write preference: %w", err)
			}
			fmt.Printf("%s = %s\n", key, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Persistence scope (default from config)")
	cmd.Flags().StringVar(&id, "id", "", "Controller ID within the scope")
	return cmd
}

// NewClearCmd creates the clear command.
func NewClearCmd() *cobra.Command {
	var scope, id string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the persisted preference for a scope",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer closeApp(app)

			key := app.PersistedKey(scope, id)
			if err := app.Prefs.Delete(app.Ctx(), key); err != nil {
				return fmt.Errorf("delete preference: %w", err)
			}
			fmt.Printf("cleared %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Persistence scope (default from config)")
	cmd.Flags().StringVar(&id, "id", "", "Controller ID within the scope")
	return cmd
}

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every persisted preference",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer closeApp(app)

			all, err := app.Prefs.All(app.Ctx())
			if err != nil {
				return fmt.Errorf("list preferences: %w", err)
			}
			if len(all) == 0 {
				fmt.Println("no persisted preferences")
				return nil
			}
			keys := make([]string, 0, len(all))
			for key := range all {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Printf("%s = %s\n", key, all[key])
			}
			return nil
		},
	}
}
