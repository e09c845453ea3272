package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
)

// DefaultStateKey is the storage key the snapshot lives under.
const DefaultStateKey = "splitledger.transactions.v1"

var errNotObject = errors.New("snapshot is not a JSON object")

// Persister reads and writes the ledger snapshot under one fixed key.
// It owns the key's lifecycle but never the in-memory state.
type Persister struct {
	mu      sync.RWMutex
	backend storage.Backend
	key     string
	logger  *slog.Logger
}

// NewPersister returns a persister writing to backend under key.
// An empty key selects DefaultStateKey.
func NewPersister(backend storage.Backend, key string, logger *slog.Logger) *Persister {
	if key == "" {
		key = DefaultStateKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Persister{
		backend: backend,
		key:     key,
		logger:  logger.With("component", "persister"),
	}
}

// SetStorage swaps the backend. Subsequent reads and writes use the new one.
func (p *Persister) SetStorage(backend storage.Backend) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backend = backend
}

// Storage returns the active backend.
func (p *Persister) Storage() storage.Backend {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.backend
}

// Key returns the storage key.
func (p *Persister) Key() string {
	return p.key
}

// Load reads and decodes the snapshot. Missing or unreadable snapshots and
// payloads that are not a JSON object yield nil: absent state is never an
// error for callers. Malformed entries inside an object are dropped.
func (p *Persister) Load(ctx context.Context) *models.PersistedState {
	backend := p.Storage()
	if backend == nil {
		return nil
	}

	raw, ok, err := backend.Get(ctx, p.key)
	if err != nil {
		p.logger.Warn("Failed to read snapshot", "key", p.key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	state, skipped, err := decodeState([]byte(raw))
	if err != nil {
		p.logger.Warn("Discarding unreadable snapshot", "key", p.key, "error", err)
		return nil
	}
	if skipped > 0 {
		p.logger.Warn("Dropped malformed snapshot entries", "key", p.key, "skipped", skipped)
	}
	return state
}

// LastWritten reports when the snapshot was last written, for backends that
// keep write times. ok is false otherwise or when no snapshot exists.
func (p *Persister) LastWritten(ctx context.Context) (ts time.Time, ok bool) {
	backend, isTimestamped := p.Storage().(storage.Timestamped)
	if !isTimestamped {
		return time.Time{}, false
	}
	unix, err := backend.UpdatedAt(ctx, p.key)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}

// Save encodes state and writes it, returning the number of bytes written.
func (p *Persister) Save(ctx context.Context, state models.PersistedState) (int, error) {
	backend := p.Storage()
	if backend == nil {
		return 0, errors.New("no storage backend configured")
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := backend.Set(ctx, p.key, string(raw)); err != nil {
		return 0, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return len(raw), nil
}

// Clear removes the snapshot. In-memory state is untouched.
func (p *Persister) Clear(ctx context.Context) error {
	backend := p.Storage()
	if backend == nil {
		return nil
	}
	if err := backend.Remove(ctx, p.key); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

// decodeState parses a snapshot, requiring a JSON object at the top level.
// Each section decodes on its own and each transaction record on its own, so
// one malformed entry costs only that entry. skipped reports how many
// sections or records were dropped.
func decodeState(raw []byte) (state *models.PersistedState, skipped int, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, 0, err
	}
	if fields == nil {
		return nil, 0, errNotObject
	}

	state = &models.PersistedState{}

	if data, ok := fields["transactions"]; ok {
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			skipped++
		}
		for _, record := range records {
			var tx models.Transaction
			if err := json.Unmarshal(record, &tx); err != nil {
				skipped++
				continue
			}
			state.Transactions = append(state.Transactions, tx)
		}
	}

	if data, ok := fields["budgets"]; ok {
		if err := json.Unmarshal(data, &state.Budgets); err != nil {
			state.Budgets = nil
			skipped++
		}
	}

	if data, ok := fields["friends"]; ok {
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			skipped++
		}
		for _, record := range records {
			var f models.Friend
			if err := json.Unmarshal(record, &f); err != nil || f.ID == "" {
				skipped++
				continue
			}
			state.Friends = append(state.Friends, f)
		}
	}

	if data, ok := fields["preferences"]; ok {
		if err := json.Unmarshal(data, &state.Preferences); err != nil {
			state.Preferences = models.Preferences{}
			skipped++
		}
	}

	state.Budgets = normalizeBudgets(state.Budgets)
	return state, skipped, nil
}

// normalizeBudgets re-keys budgets by normalized category and drops entries
// that could not have been written by SetCategoryBudget.
func normalizeBudgets(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for category, amount := range in {
		if !validAmount(amount) {
			continue
		}
		out[calculator.NormalizeCategory(category)] = money.Round(amount)
	}
	return out
}

// validAmount reports whether amount may be stored as a budget.
func validAmount(amount float64) bool {
	return amount >= 0 && money.Sanitize(amount) == amount
}
