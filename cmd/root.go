// Package cmd implements the ada CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ada/internal/advisor"
	"github.com/theirongolddev/ada/internal/auth"
	"github.com/theirongolddev/ada/internal/config"
	"github.com/theirongolddev/ada/internal/llm"
	"github.com/theirongolddev/ada/internal/store"
)

var (
	flagEndpoint string
	flagLocal    bool
	flagQuiet    bool
	flagNoCache  bool
)

var rootCmd = &cobra.Command{
	Use:   "ada",
	Short: "Terminal financial advisor",
	Long:  "Ask budgeting and investing questions, and project the growth of a monthly investment.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagEndpoint, "endpoint", "e", "", "Advisor /ask URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagLocal, "local", false, "Answer in-process with the configured LLM instead of calling an endpoint")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite answer cache")
}

// loadConfig loads config.toml with env overrides, then applies persistent flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagEndpoint != "" {
		cfg.Advisor.Endpoint = flagEndpoint
	}
	if flagNoCache {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// newAsker returns the advisor the interactive commands talk to, a label
// describing it, and a cleanup func the caller must run.
func newAsker(cfg config.Config) (advisor.Asker, string, func(), error) {
	if !flagLocal {
		c := advisor.NewClient(cfg.Advisor.Endpoint, cfg.Timeout())
		return c, c.Endpoint(), func() {}, nil
	}

	local, modelID, cleanup, err := newLocalAdvisor(cfg)
	if err != nil {
		return nil, "", nil, err
	}
	return local, "local " + modelID, cleanup, nil
}

// newLocalAdvisor wires the LLM client and, when enabled, the answer cache.
func newLocalAdvisor(cfg config.Config) (*advisor.Local, string, func(), error) {
	key, _, err := auth.LoadAPIKey(cfg.LLM.APIKey)
	if err != nil {
		return nil, "", nil, err
	}

	client := llm.NewClient(cfg.LLM.BaseURL, key, llm.Options{
		Model:       cfg.LLM.Model,
		Provider:    cfg.LLM.Provider,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		TopP:        cfg.LLM.TopP,
	})

	cleanup := func() {}
	var cache advisor.Cache
	if cfg.Cache.Enabled {
		c, err := store.Open(cachePath(cfg), cfg.CacheTTL())
		if err != nil {
			// Cache open failed, answer without it
			progress("  Answer cache unavailable: %v\n", err)
		} else {
			if n, err := c.Prune(); err == nil && n > 0 {
				progress("  Pruned %d expired answers\n", n)
			}
			cache = c
			cleanup = func() { _ = c.Close() }
		}
	}

	return advisor.NewLocal(client, cache, cfg.LLM.SystemPrompt), client.ModelID(), cleanup, nil
}

// progress writes to stderr unless --quiet.
func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
