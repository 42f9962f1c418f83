package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/theirongolddev/ada/internal/auth"
	"github.com/theirongolddev/ada/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the LLM API key used by serve and --local",
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API key in the system keyring",
	RunE:  runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key is loaded from",
	RunE:  runAuthStatus,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the API key from the system keyring",
	RunE:  runAuthClear,
}

func init() {
	authCmd.AddCommand(authSetCmd, authStatusCmd, authClearCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(_ *cobra.Command, _ []string) error {
	key, err := readSecret("  API key: ")
	if err != nil {
		return err
	}
	if err := auth.SaveAPIKey(key); err != nil {
		return err
	}
	fmt.Printf("  Stored %s in the system keyring\n", config.MaskKey(strings.TrimSpace(key)))
	return nil
}

// readSecret reads a line without echo from a terminal, or plainly from a pipe.
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // stdin fd fits in int
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading key: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading key: %w", err)
	}
	return line, nil
}

func runAuthStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, source, err := auth.LoadAPIKey(cfg.LLM.APIKey)
	if errors.Is(err, auth.ErrNoAPIKey) {
		fmt.Println("  API key: not configured")
		fmt.Println("  Set HF_API_KEY or run `ada auth set`.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("  API key: %s\n", config.MaskKey(key))
	fmt.Printf("  Source:  %s\n", source)
	return nil
}

func runAuthClear(_ *cobra.Command, _ []string) error {
	if err := auth.DeleteAPIKey(); err != nil {
		return err
	}
	fmt.Println("  Removed API key from the system keyring")
	return nil
}
