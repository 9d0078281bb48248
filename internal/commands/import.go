package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spendlog-dev/spendlog/internal/importer"
)

func newImportCommand(a *app) *cobra.Command {
	var format string
	registry := importer.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Append every expense from another CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			expenses, err := registry.ParseFile(path, format)
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), warn("Nothing to import."))
				return nil
			}
			if err := a.store.AppendAll(expenses); err != nil {
				return err
			}
			a.logger.Debug("imported expenses", "file", path, "format", format, "count", len(expenses))
			a.commit("import: " + filepath.Base(path))

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses from %s.\n", len(expenses), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "spendlog", "input format: "+strings.Join(registry.Formats(), ", "))

	return cmd
}
