package calculator

import (
	"sort"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/shopspring/decimal"
)

// ComputeBudgetAggregates builds one aggregate for every category that has a
// budget or recorded spend, ordered by category ascending.
//
// Remaining and Utilization stay nil without a budget. A category is over
// budget only when a budget exists and spend strictly exceeds it.
func ComputeBudgetAggregates(txs []models.Transaction, budgets map[string]float64) []models.BudgetAggregate {
	spend, labels := spendByCategory(txs)

	normalized := make(map[string]decimal.Decimal, len(budgets))
	for category, amount := range budgets {
		normalized[NormalizeCategory(category)] = money.Dec(amount).Round(money.Places)
	}

	keys := make([]string, 0, len(spend)+len(normalized))
	for key := range spend {
		keys = append(keys, key)
	}
	for key := range normalized {
		if _, ok := spend[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	aggregates := make([]models.BudgetAggregate, 0, len(keys))
	for _, key := range keys {
		spent := spend[key].Round(money.Places)
		agg := models.BudgetAggregate{
			Category: key,
			Label:    key,
			Spent:    spent.InexactFloat64(),
		}
		if label, ok := labels[key]; ok {
			agg.Label = label
		}

		if budget, ok := normalized[key]; ok {
			agg.Budget = money.Ptr(budget.InexactFloat64())
			agg.Remaining = money.Ptr(money.RoundDec(budget.Sub(spent)))
			agg.IsOverBudget = spent.GreaterThan(budget)
			if budget.IsPositive() {
				agg.Utilization = money.Ptr(spent.Div(budget).InexactFloat64())
			}
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates
}

// ComputeBudgetTotals sums aggregates that carry a budget. Categories with
// spend but no budget contribute to nothing.
func ComputeBudgetTotals(aggregates []models.BudgetAggregate) models.BudgetTotals {
	budgeted := decimal.Zero
	spent := decimal.Zero
	over := decimal.Zero

	for _, agg := range aggregates {
		if agg.Budget == nil {
			continue
		}
		b := money.Dec(*agg.Budget)
		s := money.Dec(agg.Spent)
		budgeted = budgeted.Add(b)
		spent = spent.Add(s)
		if agg.IsOverBudget {
			over = over.Add(s.Sub(b))
		}
	}

	return models.BudgetTotals{
		TotalBudgeted:           money.RoundDec(budgeted),
		TotalSpentAgainstBudget: money.RoundDec(spent),
		TotalRemaining:          money.RoundDec(budgeted.Sub(spent)),
		TotalOverBudget:         money.RoundDec(over),
	}
}
