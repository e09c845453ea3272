package service

import "github.com/mmynk/splitledger/internal/models"

type GetStateRequest struct{}

type GetStateResponse struct {
	Friends      []models.Friend      `json:"friends"`
	Transactions []models.Transaction `json:"transactions"`
	Budgets      map[string]float64   `json:"budgets"`
	Preferences  models.Preferences   `json:"preferences"`
	Balances     map[string]float64   `json:"balances"`
}

type SetTransactionsRequest struct {
	Transactions []models.Transaction `json:"transactions"`
}

type SetTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Balances     map[string]float64   `json:"balances"`
}

type AddTransactionRequest struct {
	Transaction models.Transaction `json:"transaction"`
}

type UpdateTransactionRequest struct {
	Transaction models.Transaction `json:"transaction"`
}

// TransactionResponse returns a transaction as stored.
type TransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	ID string `json:"id"`
}

type DeleteTransactionResponse struct{}

// SplitItem is one line on a bill. Participants lists who shared it.
type SplitItem struct {
	Description    string   `json:"description"`
	Amount         float64  `json:"amount"`
	ParticipantIDs []string `json:"participantIds"`
}

// CreateSplitRequest describes a bill to split. Without items the total is
// split equally; with items, tax (Total - Subtotal) is shared in proportion
// to each person's subtotal. An empty Payer means the user paid.
type CreateSplitRequest struct {
	Description    string      `json:"description"`
	Category       string      `json:"category"`
	Payer          string      `json:"payer"`
	Total          float64     `json:"total"`
	Subtotal       float64     `json:"subtotal"`
	Items          []SplitItem `json:"items"`
	ParticipantIDs []string    `json:"participantIds"`
}

// PersonItem is one person's portion of a single item.
type PersonItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// PersonSplit is one person's computed share before cent rounding.
type PersonSplit struct {
	Subtotal float64      `json:"subtotal"`
	Tax      float64      `json:"tax"`
	Total    float64      `json:"total"`
	Items    []PersonItem `json:"items"`
}

type CreateSplitResponse struct {
	Transaction models.Transaction     `json:"transaction"`
	Splits      map[string]PersonSplit `json:"splits"`
}

type AddFriendRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AddFriendResponse struct {
	Friend models.Friend `json:"friend"`
}

type RemoveFriendRequest struct {
	ID string `json:"id"`
}

type RemoveFriendResponse struct{}

// SetCategoryBudgetRequest sets a budget. A negative amount removes it.
type SetCategoryBudgetRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type SetCategoryBudgetResponse struct {
	Budgets map[string]float64 `json:"budgets"`
}

// SetMonthlyBudgetRequest sets the monthly budget. Null clears it.
type SetMonthlyBudgetRequest struct {
	Amount *float64 `json:"amount"`
}

type SetMonthlyBudgetResponse struct {
	Status models.BudgetStatus `json:"status"`
}

// GetDashboardRequest selects the trend window. Zero means DefaultTrendMonths.
type GetDashboardRequest struct {
	Months int `json:"months"`
}

type GetDashboardResponse struct {
	BudgetAggregates []models.BudgetAggregate `json:"budgetAggregates"`
	BudgetTotals     models.BudgetTotals      `json:"budgetTotals"`
	CategoryTotals   []models.CategoryTotal   `json:"categoryTotals"`
	MonthlyTrend     []models.MonthlyAmount   `json:"monthlyTrend"`
	BudgetStatus     models.BudgetStatus      `json:"budgetStatus"`
	Balances         []models.BalanceSummary  `json:"balances"`
	SettleUp         []models.DebtEdge        `json:"settleUp"`

	// NetBalance is what friends owe the user overall; negative when the
	// user owes. NetBalanceDisplay is the same amount formatted in euros.
	NetBalance        float64 `json:"netBalance"`
	NetBalanceDisplay string  `json:"netBalanceDisplay"`
}

// ResetRequest clears the ledger. Hard also deletes the persisted snapshot;
// otherwise the store reloads from storage.
type ResetRequest struct {
	Hard bool `json:"hard"`
}

type ResetResponse struct {
	Phase string `json:"phase"`
}
