package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/spendlog-dev/spendlog/internal/ledger"
	"github.com/spendlog-dev/spendlog/internal/model"
	"github.com/spendlog-dev/spendlog/internal/summary"
)

const barWidth = 40

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	overStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true)
)

func money(currency string, d decimal.Decimal) string {
	return currency + ledger.FormatAmount(d)
}

func warn(msg string) string {
	return warnStyle.Render(msg)
}

// expenseTable renders expenses with their zero-based row numbers, the
// handle delete takes.
func expenseTable(expenses []model.Expense, currency string) string {
	rows := make([][]string, len(expenses))
	for i, e := range expenses {
		rows[i] = []string{strconv.Itoa(i), e.Date, e.Category, money(currency, e.Amount)}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Date", "Category", "Amount").
		Rows(rows...).
		Render()
}

// barChart renders one horizontal bar per total, scaled to the largest.
func barChart(title string, totals summary.Totals, currency string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	labelWidth := 0
	for _, t := range totals {
		if w := lipgloss.Width(t.Key); w > labelWidth {
			labelWidth = w
		}
	}

	top := totals.Max()
	for _, t := range totals {
		label := t.Key + strings.Repeat(" ", labelWidth-lipgloss.Width(t.Key))
		fmt.Fprintf(&b, "%s  %s %s\n", label, barStyle.Render(bar(t.Amount, top)), money(currency, t.Amount))
	}
	return b.String()
}

func bar(amount, top decimal.Decimal) string {
	if !top.IsPositive() || !amount.IsPositive() {
		return ""
	}
	n := int(amount.Div(top).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func budgetReport(b summary.BudgetSummary, currency string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Budget and Balance"))
	sb.WriteString("\n")

	remaining := money(currency, b.Remaining)
	if b.Overspent() {
		remaining = overStyle.Render(remaining + " (over budget)")
	}

	metrics := []struct{ label, value string }{
		{"Total Budget", money(currency, b.Budget)},
		{"Total Spent", money(currency, b.Spent)},
		{"Remaining Balance", remaining},
	}
	for _, m := range metrics {
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", m.label+":")), m.value)
	}
	return sb.String()
}
