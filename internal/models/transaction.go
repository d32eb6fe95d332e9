package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger row as delivered by the backend
// transaction table. Records are immutable once fetched; the order the
// backend delivered them in is preserved for display.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"transaction_amount"`
	Balance     decimal.Decimal `json:"balance"`
	Tag         string          `json:"tag"`
}

// dayLayouts are the date-only formats the backend is known to emit.
var dayLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// Day returns the calendar-day component of the record's date string.
// Timestamps carry the time of day after a space separator; that part
// is discarded.
func (t Transaction) Day() string {
	day, _, _ := strings.Cut(t.Date, " ")
	return day
}

// DayTime parses the calendar day into a time.Time so days can be
// ordered by date value rather than lexicographically. The zero time is
// returned for dates in no known layout, which sorts them first.
func (t Transaction) DayTime() time.Time {
	day := t.Day()
	for _, layout := range dayLayouts {
		if parsed, err := time.Parse(layout, day); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// IsIncome reports whether the record is a strictly positive inflow.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the record is a strictly negative outflow.
// Zero-amount records are neither income nor expense.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}
