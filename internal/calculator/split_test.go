package calculator

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestCalculateSplit(t *testing.T) {
	tests := []struct {
		name         string
		items        []Item
		billTotal    float64
		billSubtotal float64
		participants []string
		wantErr      error
		validateFunc func(t *testing.T, splits map[string]*PersonSplit)
	}{
		{
			name: "simple two-person split with tax",
			items: []Item{
				{Description: "Pizza", Amount: 20.0, Participants: []string{"you", "bob"}},
				{Description: "Salad", Amount: 10.0, Participants: []string{"you"}},
			},
			billTotal:    33.0,
			billSubtotal: 30.0,
			participants: []string{"you", "bob"},
			validateFunc: func(t *testing.T, splits map[string]*PersonSplit) {
				// you: subtotal = 10 + 10 = 20, tax = 20 * (3/30) = 2, total = 22
				// bob: subtotal = 10, tax = 10 * (3/30) = 1, total = 11
				you := splits["you"]
				if math.Abs(you.Subtotal-20.0) > 0.01 {
					t.Errorf("you subtotal = %v, want 20.0", you.Subtotal)
				}
				if math.Abs(you.Tax-2.0) > 0.01 {
					t.Errorf("you tax = %v, want 2.0", you.Tax)
				}
				if math.Abs(you.Total-22.0) > 0.01 {
					t.Errorf("you total = %v, want 22.0", you.Total)
				}
				if len(you.Items) != 2 {
					t.Errorf("you items = %d, want 2", len(you.Items))
				}

				bob := splits["bob"]
				if math.Abs(bob.Subtotal-10.0) > 0.01 {
					t.Errorf("bob subtotal = %v, want 10.0", bob.Subtotal)
				}
				if math.Abs(bob.Total-11.0) > 0.01 {
					t.Errorf("bob total = %v, want 11.0", bob.Total)
				}
			},
		},
		{
			name:         "zero subtotal with items should error",
			items:        []Item{{Description: "Item", Amount: 10.0, Participants: []string{"you"}}},
			billTotal:    10.0,
			billSubtotal: 0.0,
			participants: []string{"you"},
			wantErr:      ErrZeroSubtotal,
		},
		{
			name:         "no participants should error",
			items:        []Item{{Description: "Item", Amount: 10.0, Participants: []string{"you"}}},
			billTotal:    10.0,
			billSubtotal: 10.0,
			participants: []string{},
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "item assigned to stranger should error",
			items:        []Item{{Description: "Item", Amount: 10.0, Participants: []string{"mallory"}}},
			billTotal:    10.0,
			billSubtotal: 10.0,
			participants: []string{"you"},
			wantErr:      ErrUnknownAssignment,
		},
		{
			name:         "no items - split equally among participants",
			items:        []Item{},
			billTotal:    33.0,
			billSubtotal: 30.0,
			participants: []string{"you", "bob"},
			validateFunc: func(t *testing.T, splits map[string]*PersonSplit) {
				for _, person := range []string{"you", "bob"} {
					split := splits[person]
					if math.Abs(split.Subtotal-15.0) > 0.01 {
						t.Errorf("%s subtotal = %v, want 15.0", person, split.Subtotal)
					}
					if math.Abs(split.Tax-1.5) > 0.01 {
						t.Errorf("%s tax = %v, want 1.5", person, split.Tax)
					}
					if math.Abs(split.Total-16.5) > 0.01 {
						t.Errorf("%s total = %v, want 16.5", person, split.Total)
					}
				}
			},
		},
		{
			name:         "no items and no subtotal splits the total",
			items:        nil,
			billTotal:    90.0,
			billSubtotal: 0,
			participants: []string{"you", "bob", "carol"},
			validateFunc: func(t *testing.T, splits map[string]*PersonSplit) {
				for _, person := range []string{"you", "bob", "carol"} {
					if math.Abs(splits[person].Total-30.0) > 0.01 {
						t.Errorf("%s total = %v, want 30.0", person, splits[person].Total)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := CalculateSplit(tt.items, tt.billTotal, tt.billSubtotal, tt.participants)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CalculateSplit() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestBuildParticipants(t *testing.T) {
	order := []string{"you", "bob", "carol"}
	splits, err := CalculateSplit(nil, 100, 100, order)
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}

	participants := BuildParticipants(splits, order, 100)
	if len(participants) != 3 {
		t.Fatalf("participants = %d, want 3", len(participants))
	}

	// 33.33 * 3 = 99.99, the spare cent goes to the first participant
	want := []float64{33.34, 33.33, 33.33}
	for i, p := range participants {
		if p.ID != order[i] {
			t.Errorf("participant %d id = %s, want %s", i, p.ID, order[i])
		}
		if p.Amount != want[i] {
			t.Errorf("participant %s amount = %v, want %v", p.ID, p.Amount, want[i])
		}
	}
}

func TestBuildParticipants_Empty(t *testing.T) {
	if got := BuildParticipants(nil, nil, 10); got != nil {
		t.Errorf("BuildParticipants() = %v, want nil", got)
	}
}

func TestBuildParticipants_LargeRemainder(t *testing.T) {
	order := []string{"you", "bob"}
	// An item nobody shares leaves every computed total at zero
	splits, err := CalculateSplit([]Item{{Description: "Orphan", Amount: 1e8}}, 1e8, 1e8, order)
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}

	done := make(chan []float64, 1)
	go func() {
		participants := BuildParticipants(splits, order, 1e8)
		amounts := make([]float64, len(participants))
		for i, p := range participants {
			amounts[i] = p.Amount
		}
		done <- amounts
	}()

	select {
	case amounts := <-done:
		want := []float64{5e7, 5e7}
		for i := range want {
			if amounts[i] != want[i] {
				t.Errorf("participant %d amount = %v, want %v", i, amounts[i], want[i])
			}
		}
	case <-time.After(time.Second):
		t.Fatal("BuildParticipants did not return within 1s")
	}
}

func TestBuildParticipants_NegativeRemainder(t *testing.T) {
	order := []string{"you", "bob", "carol"}
	splits := map[string]*PersonSplit{
		"you":   {Total: 5},
		"bob":   {Total: 5},
		"carol": {Total: 5},
	}

	tests := []struct {
		name  string
		total float64
		want  []float64
	}{
		{"one cent short", 14.99, []float64{4.99, 5, 5}},
		{"several units short", 10.01, []float64{3.33, 3.34, 3.34}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants := BuildParticipants(splits, order, tt.total)
			for i, p := range participants {
				if p.Amount != tt.want[i] {
					t.Errorf("participant %s amount = %v, want %v", p.ID, p.Amount, tt.want[i])
				}
			}
		})
	}
}
