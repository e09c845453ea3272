// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Friend: someone the user shares expenses with
//   - Transaction: a split expense or a settlement, with per-participant amounts
//   - Budgets: normalized category key to monthly cap
//   - PersistedState: the JSON snapshot written to the storage backend
//
// Derived shapes (BudgetAggregate, BudgetTotals, CategoryTotal, MonthlyAmount,
// BudgetStatus, BalanceSummary, DebtEdge) are produced by the calculator
// package and never stored.
//
// # Identity
//
// The user is always the participant with ID SelfID ("you"). Friends are
// referenced by ID strings from transactions and balances; there are no
// pointers between models.
package models
