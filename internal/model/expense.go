package model

import "github.com/shopspring/decimal"

// Expense is a single row in the expense file.
type Expense struct {
	Date     string // free text as entered; parsed only when aggregating by month
	Category string
	Amount   decimal.Decimal
}
