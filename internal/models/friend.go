package models

// SelfID is the participant ID that denotes the user in payers,
// participants, and balance computations.
const SelfID = "you"

// Friend is a person the user splits expenses with.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format when generated).
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Email is optional.
	Email string `json:"email,omitempty"`
}

// BalanceSummary is one friend's net balance, ready for display.
type BalanceSummary struct {
	FriendID string  `json:"friendId"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"` // Positive = friend owes the user
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string  `json:"from"` // Person who owes
	To     string  `json:"to"`   // Person who is owed
	Amount float64 `json:"amount"`
}
