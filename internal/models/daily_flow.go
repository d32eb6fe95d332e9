package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyFlow summarizes one calendar day of transactions for the flow
// chart: income above the zero baseline, expenses below it. Derived
// in-process, never persisted.
type DailyFlow struct {
	Day          string          `json:"date"`
	IncomeTotal  decimal.Decimal `json:"positive"`
	ExpenseTotal decimal.Decimal `json:"negative"`
	Tags         []string        `json:"tags"`

	// DayTime is the parsed calendar day used for chronological sorting.
	DayTime time.Time `json:"-"`
}

// CategoryShare is one slice of the expense-distribution chart: a net
// spending category and the absolute magnitude of its spend.
type CategoryShare struct {
	Name      string          `json:"name"`
	Magnitude decimal.Decimal `json:"value"`
}
