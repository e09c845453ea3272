package models

// Budget status values reported by BudgetStatus.Status.
const (
	StatusOnTrack = "on track"
	StatusWarning = "warning"
	StatusOver    = "over"
)

// BudgetAggregate is the per-category budget view.
//
// Budget, Remaining and Utilization are nil when the category has spend but
// no budget.
type BudgetAggregate struct {
	// Category is the normalized key (trimmed, lower-case).
	Category string `json:"category"`

	// Label is the first spelling seen in transactions, or the key itself.
	Label string `json:"label"`

	Budget       *float64 `json:"budget"`
	Spent        float64  `json:"spent"`
	Remaining    *float64 `json:"remaining"`
	IsOverBudget bool     `json:"isOverBudget"`
	Utilization  *float64 `json:"utilization"`
}

// BudgetTotals sums the budgeted categories only.
type BudgetTotals struct {
	TotalBudgeted           float64 `json:"totalBudgeted"`
	TotalSpentAgainstBudget float64 `json:"totalSpentAgainstBudget"`
	TotalRemaining          float64 `json:"totalRemaining"`
	TotalOverBudget         float64 `json:"totalOverBudget"`
}

// CategoryTotal is the user's spend in one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
}

// MonthlyAmount is the user's spend in one calendar month ("2006-01").
type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// BudgetStatus compares the current month's spend to the monthly budget.
type BudgetStatus struct {
	Status    string   `json:"status"`
	Spent     float64  `json:"spent"`
	Budget    *float64 `json:"budget"`
	Remaining *float64 `json:"remaining"`
}
