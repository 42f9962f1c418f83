// Package auth resolves the LLM API key used by `ada serve` and `--local`.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	defaultSecretService = "ada"
	defaultSecretUser    = "hf_api_key"

	// EnvAPIKey is the environment variable checked before the keyring.
	EnvAPIKey = "HF_API_KEY"
)

// Source names where a key was found.
type Source string

// Key sources, in precedence order.
const (
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceConfig  Source = "config"
	SourceNone    Source = "none"
)

// ErrNoAPIKey is returned when no source provides a key.
var ErrNoAPIKey = errors.New("no API key configured (set HF_API_KEY or run `ada auth set`)")

var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// LoadAPIKey returns the API key and where it came from.
//
// Order of precedence:
// 1) HF_API_KEY environment variable.
// 2) OS keyring item (service "ada", account "hf_api_key").
// 3) configKey, the llm.api_key value from config.toml.
func LoadAPIKey(configKey string) (string, Source, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, SourceEnv, nil
	}

	key, err := loadFromKeyring()
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return "", SourceNone, err
	}
	if key != "" {
		return key, SourceKeyring, nil
	}

	if key := strings.TrimSpace(configKey); key != "" {
		return key, SourceConfig, nil
	}
	return "", SourceNone, ErrNoAPIKey
}

// SaveAPIKey stores the key in the system credential store.
func SaveAPIKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return errors.New("API key cannot be empty")
	}

	service, account := keyringItem()
	if err := keyringSet(service, account, trimmed); err != nil {
		return fmt.Errorf("failed to store keyring item service=%q account=%q: %w", service, account, err)
	}
	return nil
}

// DeleteAPIKey removes the stored key. A missing item is not an error.
func DeleteAPIKey() error {
	service, account := keyringItem()
	if err := keyringDelete(service, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete keyring item service=%q account=%q: %w", service, account, err)
	}
	return nil
}

func loadFromKeyring() (string, error) {
	service, account := keyringItem()
	secret, err := keyringGet(service, account)
	if err != nil {
		return "", fmt.Errorf("failed to read keyring item service=%q account=%q: %w", service, account, err)
	}
	return strings.TrimSpace(secret), nil
}

func keyringItem() (string, string) {
	return envOrDefault("ADA_KEYRING_SERVICE", defaultSecretService),
		envOrDefault("ADA_KEYRING_ACCOUNT", defaultSecretUser)
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
