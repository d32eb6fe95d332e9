package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// StatMetrics is the numeric block shared by every precomputed stat the
// backend serves. The core treats these as opaque backend output except
// where chart inputs are derived from them.
type StatMetrics struct {
	Mean  decimal.Decimal `json:"mean"`
	Max   decimal.Decimal `json:"max"`
	Min   decimal.Decimal `json:"min"`
	Sum   decimal.Decimal `json:"sum"`
	Std   StdDev          `json:"std"`
	Count int64           `json:"count"`
}

// CategoryStat aggregates all transactions sharing one category tag.
type CategoryStat struct {
	Tag string `json:"tag"`
	StatMetrics
}

// DescriptionStat aggregates transactions sharing a frequent description.
type DescriptionStat struct {
	Description string `json:"description"`
	StatMetrics
}

// PeriodStat aggregates transactions over a calendar period. The backend
// labels monthly rows with "month" and weekly rows with "week"; only one
// of the two is populated per row.
type PeriodStat struct {
	Month string `json:"month,omitempty"`
	Week  string `json:"week,omitempty"`
	StatMetrics
}

// Label returns whichever period label the backend populated.
func (p PeriodStat) Label() string {
	if p.Month != "" {
		return p.Month
	}
	return p.Week
}

// BaseInsights is the aggregate-stats payload for one account holder.
type BaseInsights struct {
	FrequentDescriptions []DescriptionStat `json:"frequent_descriptions"`
	Tags                 []CategoryStat    `json:"tags"`
	Monthly              []PeriodStat      `json:"monthly"`
	Weekly               []PeriodStat      `json:"weekly"`
}

/// InsightSummary holds the headline totals derived from category stats:
// all sums combined, positive sums only, and negative sums only.
type InsightSummary struct {
	TotalSum   decimal.Decimal `json:"total_sum"`
	IncomeSum  decimal.Decimal `json:"income_sum"`
	ExpenseSum decimal.Decimal `json:"expense_sum"`
}

// Summary folds the category stats into the three headline totals.
func (b BaseInsights) Summary() InsightSummary {
	summary := InsightSummary{
		TotalSum:   decimal.Zero,
		IncomeSum:  decimal.Zero,
		ExpenseSum: decimal.Zero,
	}

	for _, tag := range b.Tags {
		summary.TotalSum = summary.TotalSum.Add(tag.Sum)
		if tag.Sum.IsPositive() {
			summary.IncomeSum = summary.IncomeSum.Add(tag.Sum)
		}
		if tag.Sum.IsNegative() {
			summary.ExpenseSum = summary.ExpenseSum.Add(tag.Sum)
		}
	}

	return summary
}

// StdDev is a standard deviation that may be missing: single-sample
// groups have no defined deviation and the backend serializes that as
// NaN or null depending on its JSON encoder. Both decode to an invalid
// StdDev rather than a decode failure.
type StdDev struct {
	Value float64
	Valid bool
}

var nanToken = []byte("NaN")

func (s *StdDev) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" || bytes.Equal(data, nanToken) {
		*s = StdDev{}
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		*s = StdDev{}
		return nil
	}

	*s = StdDev{Value: value, Valid: true}
	return nil
}

func (s StdDev) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(s.Value, 'f', -1, 64)), nil
}
