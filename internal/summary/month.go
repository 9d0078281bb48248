package summary

import (
	"fmt"
	"strings"
	"time"
)

const monthFormat = "2006-01"

// dateLayouts are tried in order when reading a free-text expense date.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	monthFormat,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseMonth returns the YYYY-MM month of a free-text date.
func ParseMonth(date string) (string, error) {
	s := strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(monthFormat), nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnparsableDate, date)
}
