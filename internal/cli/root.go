package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for dimmer.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dimmer",
		Short: "Tri-state dark mode controller for the desktop",
		Long: `Dimmer tracks the system color-scheme preference and manages a
persisted dark mode preference per scope: automatic, forced dark, or
forced light.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("dimmer %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", buildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewSetCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewClearCmd())
	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}

// closeApp reports close failures without masking the command error.
func closeApp(app *App) {
	if err := app.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
	}
}
