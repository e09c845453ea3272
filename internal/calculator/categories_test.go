package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spend(category string, amount float64, at time.Time) models.Transaction {
	return models.Transaction{
		Type:         models.TransactionSplit,
		Total:        amount * 2,
		Payer:        models.SelfID,
		Participants: []models.Participant{{ID: models.SelfID, Amount: amount}, {ID: "bob", Amount: amount}},
		Category:     category,
		CreatedAt:    at,
	}
}

func TestNormalizeCategory(t *testing.T) {
	for _, in := range []string{"Food", " food ", "FOOD", "\tFoOd\n"} {
		assert.Equal(t, "food", NormalizeCategory(in), in)
	}
	assert.Equal(t, UncategorizedKey, NormalizeCategory("   "))
}

func TestSelfShare(t *testing.T) {
	withShare := models.Transaction{Total: 30, Participants: []models.Participant{{ID: models.SelfID, Amount: 10}}}
	withoutShare := models.Transaction{Total: 30, Participants: []models.Participant{{ID: "bob", Amount: 30}}}

	assert.Equal(t, 10.0, SelfShare(withShare))
	assert.Equal(t, 30.0, SelfShare(withoutShare))
	assert.Equal(t, 0.0, SelfShare(models.Transaction{}))
}

func TestComputeCategoryTotals(t *testing.T) {
	var zero time.Time
	txs := []models.Transaction{
		spend("Food", 40, zero),
		spend(" food", 10, zero),
		spend("Drinks", 12, zero),
		spend("", 12, zero),
		spend("Travel", 50, zero),
		{Type: models.TransactionSettlement, Payer: "bob", Total: 99, Category: "Food"},
	}

	totals := ComputeCategoryTotals(txs)

	assert.Equal(t, []models.CategoryTotal{
		{Category: "food", Label: "Food", Amount: 50},
		{Category: "travel", Label: "Travel", Amount: 50},
		{Category: "drinks", Label: "Drinks", Amount: 12},
		{Category: UncategorizedKey, Label: UncategorizedLabel, Amount: 12},
	}, totals)
}

func TestComputeMonthlyTrend(t *testing.T) {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		spend("Food", 10, time.Date(2026, time.October, 2, 9, 0, 0, 0, time.UTC)),
		spend("Food", 20, time.Date(2026, time.August, 15, 9, 0, 0, 0, time.UTC)),
		spend("Bars", 5.5, time.Date(2026, time.August, 31, 23, 0, 0, 0, time.UTC)),
		spend("Food", 100, time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)),
		spend("Food", 70, time.Date(2026, time.November, 1, 9, 0, 0, 0, time.UTC)),
		spend("Food", 70, time.Time{}),
		{Type: models.TransactionSettlement, Payer: "bob", Total: 40, CreatedAt: now},
	}

	trend := ComputeMonthlyTrend(txs, 3, now)

	assert.Equal(t, []models.MonthlyAmount{
		{Month: "2026-08", Amount: 25.5},
		{Month: "2026-09", Amount: 0},
		{Month: "2026-10", Amount: 10},
	}, trend)
}

func TestComputeMonthlyTrend_CrossesYear(t *testing.T) {
	now := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	trend := ComputeMonthlyTrend(nil, 3, now)

	require.Len(t, trend, 3)
	assert.Equal(t, "2025-11", trend[0].Month)
	assert.Equal(t, "2025-12", trend[1].Month)
	assert.Equal(t, "2026-01", trend[2].Month)
}

func TestComputeMonthlyTrend_NoMonths(t *testing.T) {
	assert.Empty(t, ComputeMonthlyTrend(nil, 0, time.Now()))
	assert.Empty(t, ComputeMonthlyTrend(nil, -2, time.Now()))
}

func TestComputeBudgetStatus(t *testing.T) {
	now := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)

	budget := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		spent  float64
		budget *float64
		want   string
	}{
		{"well under", 10, budget(100), models.StatusOnTrack},
		{"just under warning", 89.99, budget(100), models.StatusOnTrack},
		{"exactly ninety percent", 90, budget(100), models.StatusWarning},
		{"at budget", 100, budget(100), models.StatusWarning},
		{"over", 100.01, budget(100), models.StatusOver},
		{"no budget no spend", 0, nil, models.StatusOnTrack},
		{"no budget with spend", 1, nil, models.StatusOver},
		{"zero budget no spend", 0, budget(0), models.StatusOnTrack},
		{"zero budget with spend", 5, budget(0), models.StatusOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []models.Transaction{
				spend("Food", tt.spent, thisMonth),
				spend("Food", 500, lastMonth),
			}

			status := ComputeBudgetStatus(txs, tt.budget, now)

			assert.Equal(t, tt.want, status.Status)
			assert.Equal(t, tt.spent, status.Spent)
		})
	}
}

func TestComputeBudgetStatus_Remaining(t *testing.T) {
	now := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	monthly := 200.0

	status := ComputeBudgetStatus([]models.Transaction{spend("Food", 45.25, now)}, &monthly, now)

	require.NotNil(t, status.Budget)
	require.NotNil(t, status.Remaining)
	assert.Equal(t, 200.0, *status.Budget)
	assert.Equal(t, 154.75, *status.Remaining)
}
