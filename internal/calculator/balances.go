package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/shopspring/decimal"
)

// effectiveParticipants returns the shares that move money between people.
// A settlement recorded without participants is a payment of the full total
// from a friend to the user.
func effectiveParticipants(tx models.Transaction) []models.Participant {
	if len(tx.Participants) > 0 || !tx.IsSettlement() {
		return tx.Participants
	}
	if tx.Payer == "" || tx.Payer == models.SelfID {
		return nil
	}
	return []models.Participant{{ID: models.SelfID, Amount: tx.Total}}
}

// ComputeBalances derives the user's balance with every friend.
// Positive = friend owes the user, negative = user owes friend.
//
// Splits and settlements follow the same rule:
// - user paid: each friend's share is added to that friend
// - friend paid: the user's share is subtracted from that friend
// Shares between two friends do not involve the user and are ignored.
func ComputeBalances(txs []models.Transaction) map[string]float64 {
	sums := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if tx.Payer == "" {
			continue
		}
		for _, p := range effectiveParticipants(tx) {
			if p.ID == "" {
				continue
			}
			switch {
			case tx.Payer == models.SelfID && p.ID != models.SelfID:
				sums[p.ID] = sums[p.ID].Add(money.Dec(p.Amount))
			case tx.Payer != models.SelfID && p.ID == models.SelfID:
				sums[tx.Payer] = sums[tx.Payer].Sub(money.Dec(p.Amount))
			}
		}
	}

	balances := make(map[string]float64, len(sums))
	for id, sum := range sums {
		balances[id] = money.RoundDec(sum)
	}
	return balances
}

// RankBalances returns the non-zero balances ordered by absolute amount,
// largest first, ties broken by name. Friends missing from the list are
// labelled with their ID.
func RankBalances(balances map[string]float64, friends []models.Friend) []models.BalanceSummary {
	names := make(map[string]string, len(friends))
	for _, f := range friends {
		names[f.ID] = f.Name
	}

	ranked := make([]models.BalanceSummary, 0, len(balances))
	for id, amount := range balances {
		amount = money.Round(amount)
		if amount == 0 {
			continue
		}
		name, ok := names[id]
		if !ok || name == "" {
			name = id
		}
		ranked = append(ranked, models.BalanceSummary{FriendID: id, Name: name, Amount: amount})
	}

	sort.Slice(ranked, func(i, j int) bool {
		ai, aj := math.Abs(ranked[i].Amount), math.Abs(ranked[j].Amount)
		if ai != aj {
			return ai > aj
		}
		if ranked[i].Name != ranked[j].Name {
			return ranked[i].Name < ranked[j].Name
		}
		return ranked[i].FriendID < ranked[j].FriendID
	})
	return ranked
}

// memberNet tracks one person's net position in cents.
type memberNet struct {
	name  string
	cents int64 // Positive = owed money, Negative = owes money
}

// SimplifyDebts computes the smallest set of payments that settles everyone,
// friend-to-friend shares included.
//
// Algorithm:
// - For each split: the payer is credited every other participant's share
// - For each settlement: the payer is credited, the receiver debited
// - Debt matrix: simplified using greedy matching, largest first
func SimplifyDebts(txs []models.Transaction) []models.DebtEdge {
	hundred := decimal.NewFromInt(100)
	net := make(map[string]int64)

	for _, tx := range txs {
		if tx.Payer == "" {
			continue
		}
		for _, p := range effectiveParticipants(tx) {
			if p.ID == "" || p.ID == tx.Payer {
				continue
			}
			c := money.Dec(p.Amount).Mul(hundred).Round(0).IntPart()
			net[tx.Payer] += c
			net[p.ID] -= c
		}
	}

	var creditors, debtors []memberNet
	for name, c := range net {
		if c > 0 {
			creditors = append(creditors, memberNet{name: name, cents: c})
		} else if c < 0 {
			debtors = append(debtors, memberNet{name: name, cents: -c})
		}
	}
	byAmount := func(s []memberNet) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].cents != s[j].cents {
				return s[i].cents > s[j].cents
			}
			return s[i].name < s[j].name
		})
	}
	byAmount(creditors)
	byAmount(debtors)

	// Greedy algorithm: match largest debts with largest credits
	var edges []models.DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].cents
		if creditors[j].cents < amount {
			amount = creditors[j].cents
		}

		edges = append(edges, models.DebtEdge{
			From:   debtors[i].name,
			To:     creditors[j].name,
			Amount: decimal.New(amount, -money.Places).InexactFloat64(),
		})

		debtors[i].cents -= amount
		creditors[j].cents -= amount
		if debtors[i].cents == 0 {
			i++
		}
		if creditors[j].cents == 0 {
			j++
		}
	}

	return edges
}
