package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/ada/internal/config"
	"github.com/theirongolddev/ada/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	vals := tui.SetupValues{
		Endpoint: cfg.Advisor.Endpoint,
		Theme:    cfg.Appearance.Theme,
	}
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	if err := tui.SaveSetup(vals); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `ada auth set` to store an API key for `ada serve` and --local.")
	fmt.Println("  Run `ada setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
