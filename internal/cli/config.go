package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/evcraddock/delc/internal/deletion"
)

const defaultServerURL = "http://localhost:5000"

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	Session   string `yaml:"session,omitempty"`
	Locale    string `yaml:"locale,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "delc", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// getServerURL returns the server URL from env var, config, or default.
func getServerURL() string {
	if v := os.Getenv("DELC_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}

// getSession returns the session cookie from env var or config.
func getSession() string {
	if v := os.Getenv("DELC_SESSION"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		return cfg.Session
	}
	return ""
}

// getLocale returns the message locale from the --locale flag, env var,
// or config. Empty means the default. An unsupported locale is reported
// and replaced by the default.
func getLocale() string {
	v := lookupLocale()
	if v != "" && !deletion.Supported(v) {
		slog.Warn("unsupported locale, using default",
			"locale", v, "supported", deletion.Locales(), "default", deletion.DefaultLocale)
		return deletion.DefaultLocale
	}
	return v
}

func lookupLocale() string {
	if flagLocale != "" {
		return flagLocale
	}
	if v := os.Getenv("DELC_LOCALE"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		return cfg.Locale
	}
	return ""
}
