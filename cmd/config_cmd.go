package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ada/internal/auth"
	"github.com/theirongolddev/ada/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Advisor]")
	fmt.Printf("    Endpoint: %s\n", cfg.Advisor.Endpoint)
	fmt.Printf("    Timeout:  %s\n", cfg.Timeout())
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:         %s\n", cfg.Server.Addr)
	fmt.Printf("    Allowed origins: %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	fmt.Printf("    History size:    %d\n", cfg.Server.HistorySize)
	fmt.Println()

	fmt.Println("  [LLM]")
	fmt.Printf("    Base URL: %s\n", cfg.LLM.BaseURL)
	fmt.Printf("    Model:    %s", cfg.LLM.Model)
	if cfg.LLM.Provider != "" {
		fmt.Printf(" (provider %s)", cfg.LLM.Provider)
	}
	fmt.Println()
	fmt.Printf("    Sampling: max_tokens=%d temperature=%.2f top_p=%.2f\n",
		cfg.LLM.MaxTokens, cfg.LLM.Temperature, cfg.LLM.TopP)
	if key, source, err := auth.LoadAPIKey(cfg.LLM.APIKey); err == nil {
		fmt.Printf("    API key:  %s (%s)\n", config.MaskKey(key), source)
	} else {
		fmt.Println("    API key:  not configured")
	}
	fmt.Println()

	fmt.Println("  [Cache]")
	if cfg.Cache.Enabled {
		fmt.Printf("    Path: %s\n", cachePath(cfg))
		if ttl := cfg.CacheTTL(); ttl > 0 {
			fmt.Printf("    TTL:  %s\n", ttl)
		} else {
			fmt.Println("    TTL:  never expires")
		}
	} else {
		fmt.Println("    Disabled")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `ada setup` to reconfigure.")
	return nil
}
