package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/shopspring/decimal"
)

var (
	ErrZeroSubtotal      = errors.New("subtotal cannot be zero")
	ErrNoParticipants    = errors.New("must have at least one participant")
	ErrUnknownAssignment = errors.New("item assigned to a non-participant")
)

// PersonItem is one person's share of a single item.
type PersonItem struct {
	Description string
	Amount      float64
}

// PersonSplit represents the calculated split for one person
type PersonSplit struct {
	Subtotal float64
	Tax      float64
	Total    float64
	Items    []PersonItem
}

// Item represents a single item on the bill
type Item struct {
	Description  string
	Amount       float64
	Participants []string
}

// CalculateSplit computes how much each person owes including proportional tax
// Based on the algorithm: person_total = person_subtotal × (1 + (total_tax / bill_subtotal))
func CalculateSplit(items []Item, billTotal float64, billSubtotal float64, participants []string) (map[string]*PersonSplit, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if billSubtotal == 0 && len(items) > 0 {
		return nil, ErrZeroSubtotal
	}

	tax := billTotal - billSubtotal
	splits := make(map[string]*PersonSplit, len(participants))
	for _, p := range participants {
		splits[p] = &PersonSplit{}
	}

	// If no items, split total equally among all participants
	if len(items) == 0 {
		n := float64(len(participants))
		for _, split := range splits {
			split.Subtotal = billSubtotal / n
			split.Tax = tax / n
			split.Total = billTotal / n
		}
		return splits, nil
	}

	for _, item := range items {
		if len(item.Participants) == 0 {
			continue
		}

		perPersonAmount := item.Amount / float64(len(item.Participants))
		for _, person := range item.Participants {
			split, ok := splits[person]
			if !ok {
				return nil, fmt.Errorf("%w: %q on %q", ErrUnknownAssignment, person, item.Description)
			}
			split.Subtotal += perPersonAmount
			split.Items = append(split.Items, PersonItem{
				Description: item.Description,
				Amount:      perPersonAmount,
			})
		}
	}

	for _, split := range splits {
		split.Tax = split.Subtotal * (tax / billSubtotal)
		split.Total = split.Subtotal + split.Tax
	}

	return splits, nil
}

// BuildParticipants turns calculated splits into participant shares rounded
// to cents. Leftover cents from rounding go to participants in order, so the
// shares always add up to billTotal.
func BuildParticipants(splits map[string]*PersonSplit, order []string, billTotal float64) []models.Participant {
	if len(order) == 0 {
		return nil
	}

	hundred := decimal.NewFromInt(100)
	cents := make([]int64, len(order))
	var sum int64
	for i, id := range order {
		if split, ok := splits[id]; ok {
			cents[i] = money.Dec(split.Total).Mul(hundred).Round(0).IntPart()
		}
		sum += cents[i]
	}

	diff := money.Dec(billTotal).Mul(hundred).Round(0).IntPart() - sum
	n := int64(len(order))
	q, r := diff/n, diff%n
	step := int64(1)
	if r < 0 {
		step, r = -1, -r
	}
	for i := range cents {
		cents[i] += q
		if int64(i) < r {
			cents[i] += step
		}
	}

	out := make([]models.Participant, len(order))
	for i, id := range order {
		out[i] = models.Participant{
			ID:     id,
			Amount: decimal.New(cents[i], -money.Places).InexactFloat64(),
		}
	}
	return out
}
