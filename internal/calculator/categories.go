// Package calculator holds the pure aggregation functions behind the ledger:
// balances, debt simplification, category totals, monthly trends, budget
// status and per-category budget aggregates.
//
// Every function is deterministic in its inputs and never mutates them.
// Monetary outputs are rounded to cents at the end; intermediate sums are
// exact decimals.
package calculator

import (
	"sort"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

const (
	// UncategorizedKey buckets transactions with a blank category.
	UncategorizedKey   = "uncategorized"
	UncategorizedLabel = "Uncategorized"

	// MonthFormat is the layout of MonthlyAmount.Month.
	MonthFormat = "2006-01"

	// warningRatio is the share of the budget at which status turns to warning.
	warningRatio = 0.9
)

// NormalizeCategory trims and case-folds a category so "Food", " food " and
// "FOOD" share one key. Blank categories map to UncategorizedKey.
func NormalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return UncategorizedKey
	}
	return cases.Fold().String(trimmed)
}

// categoryKey returns the normalized key and display label for a raw category.
func categoryKey(raw string) (key, label string) {
	label = strings.TrimSpace(raw)
	if label == "" {
		return UncategorizedKey, UncategorizedLabel
	}
	return NormalizeCategory(label), label
}

// SelfShare returns the user's share of a transaction, falling back to the
// total when the record carries no explicit share for the user.
func SelfShare(tx models.Transaction) float64 {
	if amount, ok := tx.Share(models.SelfID); ok {
		return money.Sanitize(amount)
	}
	return money.Sanitize(tx.Total)
}

// spendByCategory sums the user's share per normalized category.
// Settlements move money between people and are not spend.
func spendByCategory(txs []models.Transaction) (map[string]decimal.Decimal, map[string]string) {
	spend := make(map[string]decimal.Decimal)
	labels := make(map[string]string)
	for _, tx := range txs {
		if tx.IsSettlement() {
			continue
		}
		key, label := categoryKey(tx.Category)
		if _, ok := labels[key]; !ok {
			labels[key] = label
		}
		spend[key] = spend[key].Add(money.Dec(SelfShare(tx)))
	}
	return spend, labels
}

// ComputeCategoryTotals returns the user's spend per category, largest first,
// ties broken by category ascending.
func ComputeCategoryTotals(txs []models.Transaction) []models.CategoryTotal {
	spend, labels := spendByCategory(txs)

	totals := make([]models.CategoryTotal, 0, len(spend))
	for key, sum := range spend {
		totals = append(totals, models.CategoryTotal{
			Category: key,
			Label:    labels[key],
			Amount:   money.RoundDec(sum),
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount != totals[j].Amount {
			return totals[i].Amount > totals[j].Amount
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// monthStart returns midnight on the first day of t's month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// monthIndex returns how many calendar months t lies after start.
func monthIndex(start, t time.Time) int {
	return (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
}

// ComputeMonthlyTrend buckets the user's spend into the monthCount calendar
// months ending with now's month, oldest first. Months without activity are
// zero. Transactions without a date never fall inside the window.
func ComputeMonthlyTrend(txs []models.Transaction, monthCount int, now time.Time) []models.MonthlyAmount {
	if monthCount <= 0 {
		return []models.MonthlyAmount{}
	}

	start := monthStart(now).AddDate(0, -(monthCount - 1), 0)
	buckets := make([]decimal.Decimal, monthCount)
	for _, tx := range txs {
		if tx.IsSettlement() || tx.CreatedAt.IsZero() {
			continue
		}
		idx := monthIndex(start, tx.CreatedAt.In(now.Location()))
		if idx < 0 || idx >= monthCount {
			continue
		}
		buckets[idx] = buckets[idx].Add(money.Dec(SelfShare(tx)))
	}

	trend := make([]models.MonthlyAmount, monthCount)
	for i, sum := range buckets {
		trend[i] = models.MonthlyAmount{
			Month:  start.AddDate(0, i, 0).Format(MonthFormat),
			Amount: money.RoundDec(sum),
		}
	}
	return trend
}

// CurrentMonthSpend sums the user's spend in now's calendar month.
func CurrentMonthSpend(txs []models.Transaction, now time.Time) decimal.Decimal {
	start := monthStart(now)
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsSettlement() || tx.CreatedAt.IsZero() {
			continue
		}
		if monthIndex(start, tx.CreatedAt.In(now.Location())) != 0 {
			continue
		}
		total = total.Add(money.Dec(SelfShare(tx)))
	}
	return total
}

// ComputeBudgetStatus compares this month's spend to the monthly budget.
//
//   - over:     spend > budget
//   - warning:  spend >= 90% of budget
//   - on track: otherwise
//
// Without a positive budget the status is on track only while nothing has
// been spent.
func ComputeBudgetStatus(txs []models.Transaction, monthlyBudget *float64, now time.Time) models.BudgetStatus {
	spent := CurrentMonthSpend(txs, now).Round(money.Places)
	status := models.BudgetStatus{Spent: spent.InexactFloat64()}

	if monthlyBudget == nil || money.Sanitize(*monthlyBudget) <= 0 {
		if monthlyBudget != nil {
			status.Budget = money.Ptr(0)
			status.Remaining = money.Ptr(money.RoundDec(spent.Neg()))
		}
		if spent.IsZero() {
			status.Status = models.StatusOnTrack
		} else {
			status.Status = models.StatusOver
		}
		return status
	}

	budget := money.Dec(*monthlyBudget).Round(money.Places)
	status.Budget = money.Ptr(budget.InexactFloat64())
	status.Remaining = money.Ptr(money.RoundDec(budget.Sub(spent)))

	switch {
	case spent.GreaterThan(budget):
		status.Status = models.StatusOver
	case spent.GreaterThanOrEqual(budget.Mul(decimal.NewFromFloat(warningRatio))):
		status.Status = models.StatusWarning
	default:
		status.Status = models.StatusOnTrack
	}
	return status
}
