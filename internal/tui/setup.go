package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/ada/internal/config"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

// SetupValues holds the choices made in the first-run wizard.
type SetupValues struct {
	Endpoint string
	Theme    string
}

// NewSetupForm builds the first-run wizard. Answers are written into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to ada").
				Description("A terminal financial advisor.\nAnswer two questions to get started."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Advisor endpoint").
				Description("URL of the advisor's /ask endpoint.\nRun `ada serve` to host one locally.").
				Placeholder(config.DefaultConfig().Advisor.Endpoint).
				Value(&vals.Endpoint).
				Validate(validateEndpoint),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateEndpoint(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("enter an http(s) URL")
	}
	return nil
}

// SaveSetup merges the wizard answers into the config file and applies the theme.
func SaveSetup(vals SetupValues) error {
	cfg, err := config.LoadFile()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if ep := strings.TrimSpace(vals.Endpoint); ep != "" {
		cfg.Advisor.Endpoint = ep
	}
	if vals.Theme != "" {
		cfg.Appearance.Theme = vals.Theme
		theme.SetActive(vals.Theme)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}
