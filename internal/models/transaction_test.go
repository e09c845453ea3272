package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_UnmarshalDates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `"2024-05-01T08:30:00Z"`, time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC)},
		{"date only", `"2024-05-01"`, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{"unix millis", `1714552200000`, time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC)},
		{"empty string", `""`, time.Time{}},
		{"garbage", `"yesterday"`, time.Time{}},
		{"null", `null`, time.Time{}},
		{"object", `{}`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tx Transaction
			raw := `{"id":"t1","total":12.5,"payer":"you","participants":[{"id":"you","amount":12.5}],"createdAt":` + tt.raw + `}`
			require.NoError(t, json.Unmarshal([]byte(raw), &tx))

			assert.Equal(t, "t1", tx.ID)
			assert.Equal(t, 12.5, tx.Total)
			assert.Equal(t, []Participant{{ID: SelfID, Amount: 12.5}}, tx.Participants)
			assert.True(t, tt.want.Equal(tx.CreatedAt), "createdAt = %v, want %v", tx.CreatedAt, tt.want)
			assert.True(t, tx.UpdatedAt.IsZero())
		})
	}
}

func TestTransaction_JSONRoundTrip(t *testing.T) {
	in := Transaction{
		ID:        "t1",
		Type:      TransactionSettlement,
		Total:     10,
		Payer:     "bob",
		CreatedAt: time.Date(2024, time.June, 2, 14, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Transaction
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestTransaction_UnmarshalRejectsWrongTypes(t *testing.T) {
	var tx Transaction
	assert.Error(t, json.Unmarshal([]byte(`{"id":"t1","total":"lots"}`), &tx))
}
