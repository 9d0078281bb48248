package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendlog-dev/spendlog/internal/model"
)

// Header is the CSV header of the expense file.
const Header = "Date,Category,Amount"

const (
	numFields   = 3
	colDate     = 0
	colCategory = 1
	colAmount   = 2
)

// ReadExpenses reads every expense from an expense CSV reader.
// An empty input yields no expenses and no error.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expense CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	if got := strings.Join(records[0], ","); got != Header {
		return nil, fmt.Errorf("unexpected header %q, want %q", got, Header)
	}

	expenses := make([]model.Expense, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteExpenses writes the header followed by one row per expense.
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colDate] = e.Date
	row[colCategory] = e.Category
	row[colAmount] = FormatAmount(e.Amount)
	return row
}

// FormatAmount writes an amount with at least two decimal places and never
// drops digits beyond them.
func FormatAmount(d decimal.Decimal) string {
	places := int32(2)
	if exp := d.Exponent(); -exp > places {
		places = -exp
	}
	return d.StringFixed(places)
}

// UnmarshalExpense converts a CSV row to an Expense. Date and category are
// taken verbatim.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	raw := strings.TrimSpace(record[colAmount])
	if raw == "" {
		return model.Expense{}, errors.New("missing amount")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Expense{
		Date:     record[colDate],
		Category: record[colCategory],
		Amount:   amount,
	}, nil
}
