package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spendlog-dev/spendlog/internal/config"
	"github.com/spendlog-dev/spendlog/internal/gitops"
)

func newInitCommand(a *app) *cobra.Command {
	var withGit bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the config and expense files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, withGit)
		},
	}

	cmd.Flags().BoolVar(&withGit, "git", false, "track the expense file in git and commit every change")

	return cmd
}

func (a *app) runInit(cmd *cobra.Command, withGit bool) error {
	out := cmd.OutOrStdout()

	// The expense file itself was created by setup.
	if _, err := os.Stat(a.configPath); errors.Is(err, fs.ErrNotExist) {
		cfg := config.Default()
		cfg.Git.AutoCommit = withGit
		if err := config.Save(a.configPath, cfg); err != nil {
			return err
		}
		a.cfg.Git.AutoCommit = withGit
		fmt.Fprintf(out, "Wrote config %s\n", a.configPath)
	} else if err != nil {
		return fmt.Errorf("checking config: %w", err)
	} else if withGit && !a.cfg.Git.AutoCommit {
		if err := enableAutoCommit(a.configPath); err != nil {
			return err
		}
		a.cfg.Git.AutoCommit = true
		fmt.Fprintf(out, "Enabled auto-commit in %s\n", a.configPath)
	}

	if withGit {
		dir := filepath.Dir(a.store.Path())
		if !gitops.IsRepo(dir) {
			if err := gitops.Init(dir); err != nil {
				return err
			}
			a.logger.Info("initialized git repository", "dir", dir)
		}
		author := gitops.Author{Name: a.cfg.Git.AuthorName, Email: a.cfg.Git.AuthorEmail}
		if hash, err := gitops.Commit(dir, "init: expense file", author, filepath.Base(a.store.Path())); err != nil {
			a.logger.Warn("initial commit failed", "err", err)
		} else {
			a.logger.Debug("initial commit", "hash", hash)
		}
	}

	fmt.Fprintf(out, "Expense file ready at %s\n", a.store.Path())
	return nil
}

// enableAutoCommit turns on git.auto_commit in the config file at path. The
// file is reloaded so env and flag overrides are not written back.
func enableAutoCommit(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.Git.AutoCommit = true
	return config.Save(path, cfg)
}
