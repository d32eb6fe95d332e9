// Package aggregate derives presentation-ready structures from fetched
// records. Every function is pure and deterministic: identical input
// yields identical output, so the package tests need no network.
package aggregate

import (
	"sort"
	"strings"

	"github.com/MGabeD/chrysus/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopCategories is the number of slices the expense-distribution
// chart shows when the caller does not say otherwise.
const DefaultTopCategories = 8

// GroupByDay folds transactions into per-calendar-day flow summaries.
// Input order is irrelevant. Strictly positive amounts accumulate into
// the day's income, the absolute value of strictly negative amounts into
// its expense magnitude; exact zeros touch neither. The expense total is
// negated on output so a diverging bar chart can plot it below the zero
// baseline. Days come back ascending by date value, one entry per day.
func GroupByDay(transactions []models.Transaction) []models.DailyFlow {
	type accumulator struct {
		income  decimal.Decimal
		expense decimal.Decimal
		tags    map[string]struct{}
		order   []string
	}

	groups := make(map[string]*accumulator)
	for _, txn := range transactions {
		day := txn.Day()
		group, ok := groups[day]
		if !ok {
			group = &accumulator{
				income:  decimal.Zero,
				expense: decimal.Zero,
				tags:    make(map[string]struct{}),
			}
			groups[day] = group
		}

		if txn.IsIncome() {
			group.income = group.income.Add(txn.Amount)
		}
		if txn.IsExpense() {
			group.expense = group.expense.Add(txn.Amount.Abs())
		}
		if _, seen := group.tags[txn.Tag]; !seen {
			group.tags[txn.Tag] = struct{}{}
			group.order = append(group.order, txn.Tag)
		}
	}

	flows := make([]models.DailyFlow, 0, len(groups))
	for day, group := range groups {
		flows = append(flows, models.DailyFlow{
			Day:          day,
			IncomeTotal:  group.income,
			ExpenseTotal: group.expense.Neg(),
			Tags:         group.order,
			DayTime:      (models.Transaction{Date: day}).DayTime(),
		})
	}

	// Date-value comparison, not string comparison: "2024-02-01" must
	// sort after "2024-01-05" in every date layout the backend emits.
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].DayTime.Equal(flows[j].DayTime) {
			return flows[i].Day < flows[j].Day
		}
		return flows[i].DayTime.Before(flows[j].DayTime)
	})

	return flows
}

// TopExpenseCategories ranks net spending categories by the absolute
// magnitude of their sum and keeps the first n. Categories with a
// non-negative sum are excluded entirely. Ties keep input order (stable
// sort). Categories beyond n are dropped, not merged into an "other"
// bucket.
func TopExpenseCategories(stats []models.CategoryStat, n int) []models.CategoryShare {
	if n <= 0 {
		n = DefaultTopCategories
	}

	shares := make([]models.CategoryShare, 0, len(stats))
	for _, stat := range stats {
		if !stat.Sum.IsNegative() {
			continue
		}
		shares = append(shares, models.CategoryShare{
			Name:      stat.Tag,
			Magnitude: stat.Sum.Abs(),
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Magnitude.GreaterThan(shares[j].Magnitude)
	})

	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// FilterTransactions keeps records whose description or tag contains
// the query, case-insensitively. The empty query matches everything.
// Relative order is preserved and the input is never mutated.
func FilterTransactions(transactions []models.Transaction, query string) []models.Transaction {
	if query == "" {
		return transactions
	}

	needle := strings.ToLower(query)
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if strings.Contains(strings.ToLower(txn.Description), needle) ||
			strings.Contains(strings.ToLower(txn.Tag), needle) {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}
