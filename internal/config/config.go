// Package config loads and persists loanbot configuration from a TOML file
// in the XDG config directory. Secrets can come from environment variables
// instead of the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all loanbot configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Sheets  SheetsConfig  `toml:"sheets"`
	Google  GoogleConfig  `toml:"google"`
	Twilio  TwilioConfig  `toml:"twilio"`
	Daemon  DaemonConfig  `toml:"daemon"`
}

// GeneralConfig holds the payment parameters.
type GeneralConfig struct {
	// MonthlyBudget is the total committed across all loans each cycle.
	MonthlyBudget float64 `toml:"monthly_budget"`
	// PhoneNumber is the SMS destination in E.164 form.
	PhoneNumber string `toml:"phone_number,omitempty"`
}

// SheetsConfig identifies the loan ledger spreadsheet and its tracked cells.
type SheetsConfig struct {
	SpreadsheetID string `toml:"spreadsheet_id,omitempty"`
	// LoanRange covers the loan table including its header row.
	LoanRange        string `toml:"loan_range"`
	CurrentTotalCell string `toml:"current_total_cell"`
	LastTotalCell    string `toml:"last_total_cell"`
}

// GoogleConfig holds service-account credentials for the Sheets API.
type GoogleConfig struct {
	ClientEmail string `toml:"client_email,omitempty"`
	PrivateKey  string `toml:"private_key,omitempty"`
}

// TwilioConfig holds SMS delivery credentials.
type TwilioConfig struct {
	AccountSID string `toml:"account_sid,omitempty"`
	AuthToken  string `toml:"auth_token,omitempty"`
	FromNumber string `toml:"from_number,omitempty"`
}

// DaemonConfig holds recurring-run settings.
type DaemonConfig struct {
	// Schedule is a cron expression; the default runs weekly.
	Schedule string `toml:"schedule"`
	Addr     string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			MonthlyBudget: 3000,
		},
		Sheets: SheetsConfig{
			LoanRange:        "A1:E14",
			CurrentTotalCell: "B20",
			LastTotalCell:    "B21",
		},
		Daemon: DaemonConfig{
			Schedule: "@weekly",
			Addr:     "127.0.0.1:8790",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "loanbot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "loanbot")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk. The file is user-only since it can hold
// credentials.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// GetGoogleClientEmail returns the service-account email from env var or
// config, in that order.
func GetGoogleClientEmail(cfg Config) string {
	if v := os.Getenv("GOOGLE_CLIENT_EMAIL"); v != "" {
		return v
	}
	return cfg.Google.ClientEmail
}

// GetGooglePrivateKey returns the service-account private key PEM from env
// var or config, in that order.
func GetGooglePrivateKey(cfg Config) string {
	if v := os.Getenv("GOOGLE_PRIVATE_KEY"); v != "" {
		return v
	}
	return cfg.Google.PrivateKey
}

// GetTwilioAccountSID returns the Twilio account SID from env var or config.
func GetTwilioAccountSID(cfg Config) string {
	if v := os.Getenv("TWILIO_ACCOUNT_SID"); v != "" {
		return v
	}
	return cfg.Twilio.AccountSID
}

// GetTwilioAuthToken returns the Twilio auth token from env var or config.
func GetTwilioAuthToken(cfg Config) string {
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		return v
	}
	return cfg.Twilio.AuthToken
}

// GetTwilioFromNumber returns the sending phone number from env var or
// config.
func GetTwilioFromNumber(cfg Config) string {
	if v := os.Getenv("TWILIO_NUMBER"); v != "" {
		return v
	}
	return cfg.Twilio.FromNumber
}
