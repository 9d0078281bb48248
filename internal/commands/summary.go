package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendlog-dev/spendlog/internal/summary"
)

func newSummaryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize expenses",
	}
	cmd.AddCommand(
		newCategorySummaryCommand(a),
		newMonthSummaryCommand(a),
		newBudgetSummaryCommand(a),
	)
	return cmd
}

func newCategorySummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "category",
		Short: "Total spent per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expenses, err := a.store.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				fmt.Fprintln(out, warn("No expenses to show."))
				return nil
			}
			fmt.Fprint(out, barChart("Category-wise Summary", summary.ByCategory(expenses), a.cfg.Budget.Currency))
			return nil
		},
	}
}

func newMonthSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Total spent per month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expenses, err := a.store.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				fmt.Fprintln(out, warn("No data available."))
				return nil
			}
			totals, err := summary.ByMonth(expenses)
			if err != nil {
				return fmt.Errorf("monthly summary: %w", err)
			}
			fmt.Fprint(out, barChart("Monthly Summary", totals, a.cfg.Budget.Currency))
			return nil
		},
	}
}

func newBudgetSummaryCommand(a *app) *cobra.Command {
	var budget string

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Compare total spending with the budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			total := a.cfg.Budget.Total
			if budget != "" {
				d, err := decimal.NewFromString(strings.TrimSpace(budget))
				if err != nil || d.IsNegative() {
					return fmt.Errorf("invalid budget %q: must be a non-negative number", budget)
				}
				total = d
			}

			expenses, err := a.store.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				fmt.Fprintln(out, warn("Add some expenses first."))
				return nil
			}
			fmt.Fprint(out, budgetReport(summary.Budget(expenses, total), a.cfg.Budget.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "", "total budget (default from config)")

	return cmd
}
