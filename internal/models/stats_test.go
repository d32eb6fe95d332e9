package models_test

import (
	"encoding/json"
	"testing"

	"github.com/MGabeD/chrysus/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdDev_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected models.StdDev
	}{
		{"number", "12.5", models.StdDev{Value: 12.5, Valid: true}},
		{"zero", "0", models.StdDev{Value: 0, Valid: true}},
		{"null", "null", models.StdDev{}},
		{"bare NaN token", "NaN", models.StdDev{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var std models.StdDev
			require.NoError(t, std.UnmarshalJSON([]byte(tt.raw)))
			assert.Equal(t, tt.expected, std)
		})
	}
}

func TestStdDev_DecodesInsideMetricsBlock(t *testing.T) {
	raw := `{"mean": 10.5, "max": 50, "min": -20, "sum": 42, "std": null, "count": 4}`

	var metrics models.StatMetrics
	require.NoError(t, json.Unmarshal([]byte(raw), &metrics))

	assert.False(t, metrics.Std.Valid)
	assert.Equal(t, int64(4), metrics.Count)
	assert.True(t, metrics.Sum.Equal(decimal.NewFromInt(42)))
}

func TestStdDev_MarshalsInvalidAsNull(t *testing.T) {
	data, err := json.Marshal(models.StdDev{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(models.StdDev{Value: 3.25, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "3.25", string(data))
}

func TestBaseInsights_Summary(t *testing.T) {
	insights := models.BaseInsights{
		Tags: []models.CategoryStat{
			{Tag: "INCOME", StatMetrics: models.StatMetrics{Sum: decimal.NewFromInt(3000)}},
			{Tag: "GROCERIES", StatMetrics: models.StatMetrics{Sum: decimal.NewFromInt(-400)}},
			{Tag: "DINING", StatMetrics: models.StatMetrics{Sum: decimal.NewFromInt(-100)}},
			{Tag: "DORMANT", StatMetrics: models.StatMetrics{Sum: decimal.Zero}},
		},
	}

	summary := insights.Summary()

	assert.True(t, summary.TotalSum.Equal(decimal.NewFromInt(2500)), "total %s", summary.TotalSum)
	assert.True(t, summary.IncomeSum.Equal(decimal.NewFromInt(3000)), "income %s", summary.IncomeSum)
	assert.True(t, summary.ExpenseSum.Equal(decimal.NewFromInt(-500)), "expense %s", summary.ExpenseSum)
}

func TestBaseInsights_Summary_EmptyTags(t *testing.T) {
	summary := models.BaseInsights{}.Summary()

	assert.True(t, summary.TotalSum.IsZero())
	assert.True(t, summary.IncomeSum.IsZero())
	assert.True(t, summary.ExpenseSum.IsZero())
}

func TestPeriodStat_Label(t *testing.T) {
	assert.Equal(t, "2024-01", models.PeriodStat{Month: "2024-01"}.Label())
	assert.Equal(t, "2024-W03", models.PeriodStat{Week: "2024-W03"}.Label())
}
