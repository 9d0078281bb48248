package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvFile     = "SPENDLOG_FILE"
	EnvBudget   = "SPENDLOG_BUDGET"
	EnvLogLevel = "SPENDLOG_LOG_LEVEL"
)

// Config represents spendlog.yaml.
type Config struct {
	Ledger     LedgerConfig `yaml:"ledger"`
	Budget     BudgetConfig `yaml:"budget"`
	Categories []string     `yaml:"categories"`
	Log        LogConfig    `yaml:"log"`
	Git        GitConfig    `yaml:"git"`
}

// LedgerConfig locates the expense file.
type LedgerConfig struct {
	File string `yaml:"file"` // relative paths resolve against the config file's directory
}

// BudgetConfig holds the spending budget used by budget summaries.
type BudgetConfig struct {
	Total    decimal.Decimal `yaml:"total"`
	Currency string          `yaml:"currency"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GitConfig controls committing the expense file after each change.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{File: "expenses.csv"},
		Budget: BudgetConfig{
			Total:    decimal.NewFromInt(10000),
			Currency: "₹",
		},
		Categories: DefaultCategories(),
		Log:        LogConfig{Level: "info"},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "spendlog",
			AuthorEmail: "spendlog@localhost",
		},
	}
}

// DefaultCategories returns the suggested categories offered when adding an
// expense. Any other category text is accepted as well.
func DefaultCategories() []string {
	return []string{"Food", "Transport", "Rent", "Bills", "Other"}
}

// Load reads a config file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads the config at path, falling back to Default when the
// file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error. Variables already set are kept.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from SPENDLOG_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvFile); v != "" {
		// Relative to the working directory, like --file.
		abs, err := filepath.Abs(v)
		if err != nil {
			return fmt.Errorf("resolving %s %q: %w", EnvFile, v, err)
		}
		c.Ledger.File = abs
	}
	if v := os.Getenv(EnvBudget); v != "" {
		total, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvBudget, v, err)
		}
		c.Budget.Total = total
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}

// LedgerPath returns the expense file path, resolving a relative path
// against configDir. Only a path from the config file itself can be
// relative here; overrides are made absolute first.
func (c *Config) LedgerPath(configDir string) string {
	if filepath.IsAbs(c.Ledger.File) {
		return c.Ledger.File
	}
	return filepath.Join(configDir, c.Ledger.File)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Ledger.File) == "" {
		problems = append(problems, "ledger file cannot be empty")
	}
	if c.Budget.Total.IsNegative() {
		problems = append(problems, fmt.Sprintf("budget total %s must not be negative", c.Budget.Total))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}
	if c.Git.AutoCommit && (c.Git.AuthorName == "" || c.Git.AuthorEmail == "") {
		problems = append(problems, "git author name and email are required when auto_commit is on")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
