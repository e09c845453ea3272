package ledger

import (
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

// StateView is the persisted snapshot together with the balances derived
// from it, read under one lock.
type StateView struct {
	models.PersistedState
	Balances map[string]float64
}

// Dashboard bundles every derived view of one snapshot.
type Dashboard struct {
	BudgetAggregates []models.BudgetAggregate
	BudgetTotals     models.BudgetTotals
	CategoryTotals   []models.CategoryTotal
	MonthlyTrend     []models.MonthlyAmount
	BudgetStatus     models.BudgetStatus
	Balances         []models.BalanceSummary
	SettleUp         []models.DebtEdge

	// NetBalance is the sum of all balances: positive when friends owe the
	// user overall.
	NetBalance float64
}

// StateView returns a consistent copy of the state and its balances.
func (s *Store) StateView() StateView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateView()
}

// Dashboard computes every derived view from the same snapshot, with a
// monthCount-month trend.
func (s *Store) Dashboard(monthCount int) Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	aggregates := calculator.ComputeBudgetAggregates(s.transactions, s.budgets)
	ranked := calculator.RankBalances(s.balances, s.friends)

	amounts := make([]float64, len(ranked))
	for i, b := range ranked {
		amounts[i] = b.Amount
	}

	return Dashboard{
		BudgetAggregates: aggregates,
		BudgetTotals:     calculator.ComputeBudgetTotals(aggregates),
		CategoryTotals:   calculator.ComputeCategoryTotals(s.transactions),
		MonthlyTrend:     calculator.ComputeMonthlyTrend(s.transactions, monthCount, now),
		BudgetStatus:     calculator.ComputeBudgetStatus(s.transactions, s.prefs.MonthlyBudget, now),
		Balances:         ranked,
		SettleUp:         calculator.SimplifyDebts(s.transactions),
		NetBalance:       money.RoundDec(money.Sum(amounts...)),
	}
}

// BudgetAggregates returns one aggregate per category with a budget or spend.
func (s *Store) BudgetAggregates() []models.BudgetAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.ComputeBudgetAggregates(s.transactions, s.budgets)
}

// BudgetTotals sums the budgeted categories.
func (s *Store) BudgetTotals() models.BudgetTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.ComputeBudgetTotals(calculator.ComputeBudgetAggregates(s.transactions, s.budgets))
}

// CategoryTotals returns the user's spend per category, largest first.
func (s *Store) CategoryTotals() []models.CategoryTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.ComputeCategoryTotals(s.transactions)
}

// MonthlyTrend returns spend for the last monthCount months, oldest first.
func (s *Store) MonthlyTrend(monthCount int) []models.MonthlyAmount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.ComputeMonthlyTrend(s.transactions, monthCount, s.now())
}

// BudgetStatus compares this month's spend with the monthly budget.
func (s *Store) BudgetStatus() models.BudgetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.ComputeBudgetStatus(s.transactions, s.prefs.MonthlyBudget, s.now())
}

// RankedBalances returns non-zero balances, largest first.
func (s *Store) RankedBalances() []models.BalanceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.RankBalances(s.balances, s.friends)
}

// SettleUp suggests the fewest payments that clear every debt.
func (s *Store) SettleUp() []models.DebtEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calculator.SimplifyDebts(s.transactions)
}
