package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ada/internal/config"
	"github.com/theirongolddev/ada/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local answer cache",
	RunE:  runCacheStats,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired answers",
	RunE:  runCachePrune,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cache database",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cachePruneCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func cachePath(cfg config.Config) string {
	if cfg.Cache.Path != "" {
		return cfg.Cache.Path
	}
	return store.DefaultPath()
}

func openCache() (*store.Cache, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	path := cachePath(cfg)
	c, err := store.Open(path, cfg.CacheTTL())
	if err != nil {
		return nil, path, fmt.Errorf("opening cache: %w", err)
	}
	return c, path, nil
}

func runCacheStats(_ *cobra.Command, _ []string) error {
	c, path, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	st, err := c.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("  Cache: %s\n", path)
	fmt.Printf("  Answers: %d\n", st.Entries)
	fmt.Printf("  Hits:    %d\n", st.Hits)
	return nil
}

func runCachePrune(_ *cobra.Command, _ []string) error {
	c, _, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	n, err := c.Prune()
	if err != nil {
		return err
	}
	fmt.Printf("  Pruned %d expired answers\n", n)
	return nil
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cachePath(cfg)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing cache: %w", err)
	}
	fmt.Printf("  Removed %s\n", path)
	return nil
}
