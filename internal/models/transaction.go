package models

import (
	"encoding/json"
	"math"
	"time"
)

// TransactionType distinguishes expenses from balance-clearing payments.
type TransactionType string

const (
	// TransactionSplit is an expense divided among participants.
	TransactionSplit TransactionType = "split"

	// TransactionSettlement records a payment that clears a balance.
	TransactionSettlement TransactionType = "settlement"
)

// Transaction is a split expense or a settlement.
//
// Records may come from less-trusted call sites, so every field is optional
// on the wire: missing amounts decode as 0 and a missing CreatedAt stays the
// zero time.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format when generated).
	ID string `json:"id"`

	// Type is "split" or "settlement". Empty is treated as "split".
	Type TransactionType `json:"type"`

	// Description is a free-form note such as "Dinner at Luigi's".
	Description string `json:"description,omitempty"`

	// Total is the full amount paid by Payer.
	Total float64 `json:"total"`

	// Payer is the friend ID that paid, or SelfID.
	Payer string `json:"payer"`

	// Participants hold each person's share, in entry order.
	// For settlements they hold the amount each recipient received.
	Participants []Participant `json:"participants"`

	// Category is a free-form label used for budgeting. Optional.
	Category string `json:"category,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Participant is one person's share of a transaction.
type Participant struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

// IsSettlement reports whether the transaction clears a balance rather than
// recording new spend.
func (t Transaction) IsSettlement() bool {
	return t.Type == TransactionSettlement
}

// Share returns the amount owed by the participant with the given ID.
func (t Transaction) Share(id string) (float64, bool) {
	for _, p := range t.Participants {
		if p.ID == id {
			return p.Amount, true
		}
	}
	return 0, false
}

// Clone returns a deep copy so callers cannot mutate store-owned slices.
func (t Transaction) Clone() Transaction {
	c := t
	if t.Participants != nil {
		c.Participants = append([]Participant(nil), t.Participants...)
	}
	return c
}

// dateLayouts are accepted for CreatedAt/UpdatedAt besides RFC 3339.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON decodes a transaction, tolerating malformed dates.
// Timestamps may be RFC 3339, a date-only string, or Unix milliseconds;
// anything else (including "" and null) decodes as the zero time.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	var raw struct {
		plain
		CreatedAt json.RawMessage `json:"createdAt"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Transaction(raw.plain)
	t.CreatedAt = parseTimestamp(raw.CreatedAt)
	t.UpdatedAt = parseTimestamp(raw.UpdatedAt)
	return nil
}

func parseTimestamp(raw json.RawMessage) time.Time {
	if len(raw) == 0 {
		return time.Time{}
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		if math.IsNaN(ms) || math.IsInf(ms, 0) {
			return time.Time{}
		}
		return time.UnixMilli(int64(ms)).UTC()
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
