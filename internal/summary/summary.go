package summary

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendlog-dev/spendlog/internal/model"
)

// ErrUnparsableDate is returned by ByMonth when an expense date cannot be
// read as a calendar date.
var ErrUnparsableDate = errors.New("unparsable date")

// Total is the summed amount for one grouping key.
type Total struct {
	Key    string
	Amount decimal.Decimal
}

// Totals is a list of group totals sorted by key.
type Totals []Total

// Map returns the totals keyed by group.
func (ts Totals) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(ts))
	for _, t := range ts {
		m[t.Key] = t.Amount
	}
	return m
}

// Max returns the largest amount, or zero for no totals.
func (ts Totals) Max() decimal.Decimal {
	top := decimal.Zero
	for _, t := range ts {
		if t.Amount.GreaterThan(top) {
			top = t.Amount
		}
	}
	return top
}

// ByCategory sums amounts per category. Categories match on exact,
// case-sensitive text.
func ByCategory(expenses []model.Expense) Totals {
	keys := make([]string, len(expenses))
	for i, e := range expenses {
		keys[i] = e.Category
	}
	return group(expenses, keys)
}

// ByMonth sums amounts per YYYY-MM month derived from each expense date.
// It fails on the first date that does not parse.
func ByMonth(expenses []model.Expense) (Totals, error) {
	keys := make([]string, len(expenses))
	for i, e := range expenses {
		month, err := ParseMonth(e.Date)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		keys[i] = month
	}

	return group(expenses, keys), nil
}

// group sums expenses[i].Amount under keys[i].
func group(expenses []model.Expense, keys []string) Totals {
	sums := make(map[string]decimal.Decimal)
	for i, e := range expenses {
		sums[keys[i]] = sums[keys[i]].Add(e.Amount)
	}

	totals := make(Totals, 0, len(sums))
	for k, amount := range sums {
		totals = append(totals, Total{Key: k, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Key < totals[j].Key })
	return totals
}

// BudgetSummary compares total spending with a budget.
type BudgetSummary struct {
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal // negative when overspent
}

// Overspent reports whether spending exceeds the budget.
func (b BudgetSummary) Overspent() bool {
	return b.Remaining.IsNegative()
}

// Budget sums every amount and subtracts it from totalBudget.
func Budget(expenses []model.Expense, totalBudget decimal.Decimal) BudgetSummary {
	spent := decimal.Zero
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}
	return BudgetSummary{
		Budget:    totalBudget,
		Spent:     spent,
		Remaining: totalBudget.Sub(spent),
	}
}
