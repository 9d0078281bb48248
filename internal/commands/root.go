package commands

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spendlog-dev/spendlog/internal/buildinfo"
	"github.com/spendlog-dev/spendlog/internal/config"
	"github.com/spendlog-dev/spendlog/internal/gitops"
	"github.com/spendlog-dev/spendlog/internal/ledger"
)

// app carries what every subcommand needs. Flags are bound in
// NewRootCommand; the rest is filled in by setup before a subcommand runs.
type app struct {
	configPath string
	file       string
	logLevel   string

	cfg    *config.Config
	store  *ledger.Store
	logger *log.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "spendlog",
		Short:   "Personal expense tracker backed by a CSV file",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "spendlog.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&a.file, "file", "", "expense CSV file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		usesLedger(newInitCommand(a)),
		usesLedger(newAddCommand(a)),
		usesLedger(newListCommand(a)),
		usesLedger(newDeleteCommand(a)),
		usesLedger(newSummaryCommand(a)),
		usesLedger(newImportCommand(a)),
		newCategoriesCommand(a),
	)

	return rootCmd
}

// annotationLedger marks commands that read or write the expense file.
const annotationLedger = "spendlog.ledger"

// usesLedger marks cmd and its subcommands so setup creates the expense
// file before they run. Other commands never touch it.
func usesLedger(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationLedger] = "true"
	for _, sub := range cmd.Commands() {
		usesLedger(sub)
	}
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	configPath, err := filepath.Abs(a.configPath)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}
	a.configPath = configPath

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if a.file != "" {
		abs, err := filepath.Abs(a.file)
		if err != nil {
			return fmt.Errorf("resolving expense file path: %w", err)
		}
		cfg.Ledger.File = abs
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := log.ParseLevel(cfg.Log.Level) // checked by Validate
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "spendlog",
		Level:  level,
	})

	a.store = ledger.NewStore(cfg.LedgerPath(filepath.Dir(configPath)))
	a.logger.Debug("using expense file", "path", a.store.Path(), "config", configPath)

	if cmd.Annotations[annotationLedger] == "" {
		return nil
	}
	if err := a.store.Init(); err != nil {
		return fmt.Errorf("initializing expense file: %w", err)
	}
	return nil
}

// commit records the expense file in git when auto-commit is on. Failures
// are logged, never returned.
func (a *app) commit(message string) {
	if !a.cfg.Git.AutoCommit {
		return
	}

	dir := filepath.Dir(a.store.Path())
	if !gitops.IsRepo(dir) {
		a.logger.Debug("skipping auto-commit, not a git repository", "dir", dir)
		return
	}

	author := gitops.Author{Name: a.cfg.Git.AuthorName, Email: a.cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(dir, message, author, filepath.Base(a.store.Path()))
	if err != nil {
		a.logger.Warn("auto-commit failed", "err", err)
		return
	}
	a.logger.Debug("committed expense file", "hash", hash, "message", message)
}
