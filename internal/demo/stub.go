// Package demo is an in-process stand-in for the analysis backend,
// generating plausible holders, ledgers, and statistics so the
// dashboard can run without the remote service.
package demo

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MGabeD/chrysus/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

var spendTags = []string{
	"GROCERIES", "DINING", "TRANSPORTATION", "ENTERTAINMENT", "SHOPPING", "UTILITIES", "FEES",
}

// Stub implements the backend contract against generated data. It is
// keyed by holder name like the real service.
type Stub struct {
	mu      sync.Mutex
	faker   *gofakeit.Faker
	ledgers map[string][]models.Transaction
	order   []string
}

func NewStub(holderCount int, seed uint64) *Stub {
	s := &Stub{
		faker:   gofakeit.New(seed),
		ledgers: make(map[string][]models.Transaction),
	}
	for i := 0; i < holderCount; i++ {
		s.addHolder(s.faker.Name())
	}
	return s
}

func (s *Stub) addHolder(name string) {
	if _, exists := s.ledgers[name]; exists {
		return
	}
	s.ledgers[name] = s.generateLedger()
	s.order = append(s.order, name)
}

// generateLedger produces about three months of history: bi-weekly
// salary credits and a few debits per day, with a running balance.
func (s *Stub) generateLedger() []models.Transaction {
	start := time.Now().AddDate(0, -3, 0)
	balance := decimal.NewFromInt(int64(s.faker.Number(2000, 8000)))
	salary := decimal.NewFromInt(int64(s.faker.Number(2200, 4800)))

	var ledger []models.Transaction
	for day := 0; day < 90; day++ {
		date := start.AddDate(0, 0, day)

		if day%14 == 0 {
			balance = balance.Add(salary)
			ledger = append(ledger, models.Transaction{
				Date:        date.Format("2006-01-02") + " 09:00:00",
				Description: "Direct Deposit - " + s.faker.Company(),
				Amount:      salary,
				Balance:     balance,
				Tag:         "INCOME",
			})
		}

		for n := 0; n < s.faker.Number(0, 3); n++ {
			amount := decimal.NewFromFloat(s.faker.Float64Range(4, 220)).Round(2)
			balance = balance.Sub(amount)
			tag := spendTags[s.faker.Number(0, len(spendTags)-1)]
			ledger = append(ledger, models.Transaction{
				Date:        date.Format("2006-01-02") + fmt.Sprintf(" %02d:00:00", s.faker.Number(8, 21)),
				Description: s.faker.Company(),
				Amount:      amount.Neg(),
				Balance:     balance,
				Tag:         tag,
			})
		}
	}
	return ledger
}

func (s *Stub) ledger(holder string) ([]models.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger, ok := s.ledgers[holder]
	return ledger, ok
}

func (s *Stub) ListHolders(_ context.Context) ([]models.AccountHolder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.RosterFromNames(s.order), nil
}

func (s *Stub) TransactionTable(_ context.Context, holder string) ([]models.Transaction, error) {
	ledger, ok := s.ledger(holder)
	if !ok {
		return []models.Transaction{}, nil
	}
	return ledger, nil
}

func (s *Stub) BaseInsights(_ context.Context, holder string) (*models.BaseInsights, error) {
	ledger, _ := s.ledger(holder)

	insights := &models.BaseInsights{
		FrequentDescriptions: []models.DescriptionStat{},
		Tags:                 []models.CategoryStat{},
		Monthly:              []models.PeriodStat{},
		Weekly:               []models.PeriodStat{},
	}

	for label, metrics := range groupMetrics(ledger, func(t models.Transaction) string { return t.Tag }) {
		insights.Tags = append(insights.Tags, models.CategoryStat{Tag: label, StatMetrics: metrics})
	}
	sort.Slice(insights.Tags, func(i, j int) bool { return insights.Tags[i].Tag < insights.Tags[j].Tag })

	for label, metrics := range groupMetrics(ledger, func(t models.Transaction) string {
		return t.Day()[:7]
	}) {
		insights.Monthly = append(insights.Monthly, models.PeriodStat{Month: label, StatMetrics: metrics})
	}
	sort.Slice(insights.Monthly, func(i, j int) bool { return insights.Monthly[i].Month < insights.Monthly[j].Month })

	for label, metrics := range groupMetrics(ledger, weekLabel) {
		insights.Weekly = append(insights.Weekly, models.PeriodStat{Week: label, StatMetrics: metrics})
	}
	sort.Slice(insights.Weekly, func(i, j int) bool { return insights.Weekly[i].Week < insights.Weekly[j].Week })

	descriptions := groupMetrics(ledger, func(t models.Transaction) string { return t.Description })
	for label, metrics := range descriptions {
		if metrics.Count < 3 {
			continue
		}
		insights.FrequentDescriptions = append(insights.FrequentDescriptions,
			models.DescriptionStat{Description: label, StatMetrics: metrics})
	}
	sort.Slice(insights.FrequentDescriptions, func(i, j int) bool {
		return insights.FrequentDescriptions[i].Count > insights.FrequentDescriptions[j].Count
	})

	return insights, nil
}

// weekLabel buckets a transaction into its ISO week, e.g. "2025-W07".
func weekLabel(t models.Transaction) string {
	year, week := t.DayTime().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// groupMetrics folds a ledger into per-label stat metrics the way the
// real backend's pandas describe() output looks.
func groupMetrics(ledger []models.Transaction, key func(models.Transaction) string) map[string]models.StatMetrics {
	amounts := make(map[string][]decimal.Decimal)
	for _, txn := range ledger {
		label := key(txn)
		amounts[label] = append(amounts[label], txn.Amount)
	}

	metrics := make(map[string]models.StatMetrics, len(amounts))
	for label, values := range amounts {
		metrics[label] = describe(values)
	}
	return metrics
}

func describe(values []decimal.Decimal) models.StatMetrics {
	if len(values) == 0 {
		return models.StatMetrics{}
	}

	sum := decimal.Zero
	min := values[0]
	max := values[0]
	for _, v := range values {
		sum = sum.Add(v)
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}
	count := int64(len(values))
	mean := sum.Div(decimal.NewFromInt(count))

	std := models.StdDev{}
	if count > 1 {
		meanFloat, _ := mean.Float64()
		var variance float64
		for _, v := range values {
			f, _ := v.Float64()
			variance += (f - meanFloat) * (f - meanFloat)
		}
		std = models.StdDev{Value: math.Sqrt(variance / float64(count-1)), Valid: true}
	}

	return models.StatMetrics{
		Mean:  mean.Round(2),
		Max:   max,
		Min:   min,
		Sum:   sum,
		Std:   std,
		Count: count,
	}
}

func (s *Stub) DescriptiveTables(_ context.Context, holder string) ([]models.DescriptiveTable, error) {
	ledger, _ := s.ledger(holder)
	if len(ledger) == 0 {
		return []models.DescriptiveTable{}, nil
	}

	last := ledger[len(ledger)-1]
	overview := models.DescriptiveTable{
		Title: "Account Overview",
		Data: []models.TableRow{
			{
				"holder":          holder,
				"transactions":    float64(len(ledger)),
				"closing_balance": models.FormatAmount(last.Balance),
				"first_activity":  ledger[0].Day(),
				"last_activity":   last.Day(),
			},
		},
	}
	return []models.DescriptiveTable{overview}, nil
}

func (s *Stub) Recommendation(_ context.Context, holder string) (*models.Recommendation, error) {
	ledger, _ := s.ledger(holder)
	if len(ledger) == 0 {
		return nil, fmt.Errorf("no processed statements for %s", holder)
	}

	closing := ledger[len(ledger)-1].Balance
	verdict := "Accept"
	if closing.IsNegative() {
		verdict = "Reject"
	}

	return &models.Recommendation{
		Recommendation: verdict,
		Reasoning:      fmt.Sprintf("Closing balance of %s over %d transactions.", models.FormatAmount(closing), len(ledger)),
		Strengths:      "* Regular salary deposits\n* Consistent activity",
		Weaknesses:     "* Discretionary spending varies week to week",
		Evidence:       fmt.Sprintf("%d ledger rows spanning %s to %s", len(ledger), ledger[0].Day(), ledger[len(ledger)-1].Day()),
	}, nil
}

// UploadPDF registers a new holder named after the uploaded file and
// generates a ledger for it, mimicking a successful parse.
func (s *Stub) UploadPDF(_ context.Context, filename string, file io.Reader) error {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".pdf")
	name = strings.ReplaceAll(name, "_", " ")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addHolder(name)
	return nil
}
