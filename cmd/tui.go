package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/ada/internal/config"
	"github.com/theirongolddev/ada/internal/tui"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive advisor",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	asker, backend, cleanup, err := newAsker(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	exportDir, _ := os.Getwd()
	app := tui.NewApp(tui.Options{
		Asker:     asker,
		Timeout:   cfg.Timeout(),
		ExportDir: exportDir,
		Backend:   backend,
		Endpoint:  cfg.Advisor.Endpoint,
		FirstRun:  !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
