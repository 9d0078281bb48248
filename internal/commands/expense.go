package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendlog-dev/spendlog/internal/ledger"
	"github.com/spendlog-dev/spendlog/internal/model"
)

const dateFormat = "2006-01-02"

func newAddCommand(a *app) *cobra.Command {
	var category, date string

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseExpense(date, category, args[0])
			if err != nil {
				return err
			}
			if err := a.store.Append(e); err != nil {
				return err
			}
			a.logger.Debug("appended expense", "date", e.Date, "category", e.Category, "amount", ledger.FormatAmount(e.Amount))
			a.commit(fmt.Sprintf("add: %s %s %s", e.Date, e.Category, ledger.FormatAmount(e.Amount)))

			fmt.Fprintf(cmd.OutOrStdout(), "Expense added: %s %s %s\n", e.Date, e.Category, money(a.cfg.Budget.Currency, e.Amount))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "expense category (see 'spendlog categories')")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVarP(&date, "date", "d", "", "expense date (default today, YYYY-MM-DD)")

	return cmd
}

// parseExpense rejects what the store itself accepts without checking: a
// negative or non-numeric amount and an empty category. The date is kept as
// typed.
func parseExpense(date, category, amount string) (model.Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return model.Expense{}, errors.New("category cannot be empty")
	}

	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return model.Expense{}, fmt.Errorf("invalid amount %q: must be a number", amount)
	}
	if d.IsNegative() {
		return model.Expense{}, fmt.Errorf("invalid amount %q: must not be negative", amount)
	}

	if date == "" {
		date = time.Now().Format(dateFormat)
	}

	return model.Expense{Date: date, Category: category, Amount: d}, nil
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all expenses with their row numbers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expenses, err := a.store.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				fmt.Fprintln(out, warn("No expenses recorded."))
				return nil
			}
			fmt.Fprintln(out, expenseTable(expenses, a.cfg.Budget.Currency))
			return nil
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <row>",
		Aliases: []string{"rm"},
		Short:   "Delete the expense at a row number shown by list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row %q: must be a whole number", args[0])
			}
			if err := a.store.DeleteAt(position); err != nil {
				return err
			}
			a.logger.Debug("deleted expense", "row", position)
			a.commit(fmt.Sprintf("delete: row %d", position))

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted row %d.\n", position)
			return nil
		},
	}
}

func newCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show suggested expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range a.cfg.Categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
