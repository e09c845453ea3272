package models

// Preferences are user settings persisted with the snapshot.
type Preferences struct {
	// MonthlyBudget is the overall monthly cap; nil means none.
	MonthlyBudget *float64 `json:"monthlyBudget,omitempty"`

	// Currency is a display hint only (e.g. "EUR").
	Currency string `json:"currency,omitempty"`
}

// PersistedState is the JSON snapshot stored under a single key.
// There is no version field; decoding relies on tolerant field defaults.
type PersistedState struct {
	Transactions []Transaction      `json:"transactions"`
	Budgets      map[string]float64 `json:"budgets"`
	Friends      []Friend           `json:"friends"`
	Preferences  Preferences        `json:"preferences"`
}
