// Package ledger is the single source of truth for friends, transactions,
// budgets and preferences. Every mutation recomputes balances and writes a
// snapshot through a Persister before returning.
//
// Persistence lifecycle:
//
//	Uninitialized -> Loaded -> Mutated -> Persisted -> Mutated -> ...
//
// Reset returns the store to Uninitialized and then Loaded.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("transaction already exists")
	ErrFriendNotFound       = errors.New("friend not found")
	ErrInvalidFriend        = errors.New("friend name is required")
)

// Phase is the store's position in the persistence lifecycle.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoaded
	PhaseMutated
	PhasePersisted
)

func (p Phase) String() string {
	switch p {
	case PhaseLoaded:
		return "loaded"
	case PhaseMutated:
		return "mutated"
	case PhasePersisted:
		return "persisted"
	default:
		return "uninitialized"
	}
}

// Store holds the ledger snapshot. It is safe for concurrent use; each call
// runs to completion under the store's lock, so readers never observe a
// half-applied mutation.
type Store struct {
	mu        sync.RWMutex
	persister *Persister
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	newID     func() string

	phase        Phase
	friends      []models.Friend
	transactions []models.Transaction
	budgets      map[string]float64
	prefs        models.Preferences
	balances     map[string]float64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock sets the time source used for timestamps and current-month views.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithIDGenerator overrides UUID generation for new friends and transactions.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an uninitialized store. Call Load before serving reads.
func New(persister *Persister, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		logger:    slog.Default(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "ledger")
	s.clear()
	return s
}

// Persister returns the persistence adapter backing the store.
func (s *Store) Persister() *Persister {
	return s.persister
}

// Phase reports where the store is in the persistence lifecycle.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Load replaces in-memory state with the persisted snapshot, if any.
// It reports whether a snapshot was restored.
func (s *Store) Load(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Reset clears in-memory state. A hard reset also removes the persisted
// snapshot and leaves the store empty; otherwise the store reloads whatever
// is persisted.
func (s *Store) Reset(ctx context.Context, hard bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	if !hard {
		s.load(ctx)
		return nil
	}

	s.phase = PhaseLoaded
	if err := s.persister.Clear(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("Hard reset could not clear snapshot", "error", err)
		return err
	}
	s.logger.Info("Ledger hard reset")
	return nil
}

// SetTransactions replaces every transaction and returns the resulting
// state. Records are sanitized rather than rejected; a record reusing an
// earlier record's ID gets a fresh one.
func (s *Store) SetTransactions(ctx context.Context, txs []models.Transaction) StateView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = s.sanitizeAll(txs)
	s.commit(ctx, "set_transactions")
	return s.stateView()
}

// AddTransaction appends a transaction and returns it as stored. A missing
// CreatedAt is set to the current time. An ID already in the ledger is
// rejected with ErrDuplicateTransaction.
func (s *Store) AddTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID != "" && s.indexOfTransaction(tx.ID) >= 0 {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateTransaction, tx.ID)
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.now()
	}
	stored := s.sanitize(tx)
	s.transactions = append(s.transactions, stored)
	s.commit(ctx, "add_transaction")
	return stored.Clone(), nil
}

// UpdateTransaction replaces the transaction with the same ID. CreatedAt is
// kept when the update omits it; UpdatedAt is always set to now.
func (s *Store) UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfTransaction(tx.ID)
	if idx < 0 {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, tx.ID)
	}

	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.transactions[idx].CreatedAt
	}
	tx.UpdatedAt = s.now()
	s.transactions[idx] = s.sanitize(tx)
	s.commit(ctx, "update_transaction")
	return s.transactions[idx].Clone(), nil
}

// DeleteTransaction removes the transaction with the given ID.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfTransaction(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	s.commit(ctx, "delete_transaction")
	return nil
}

// AddFriend creates a friend with a generated ID.
func (s *Store) AddFriend(ctx context.Context, name, email string) (models.Friend, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Friend{}, ErrInvalidFriend
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	friend := models.Friend{ID: s.newID(), Name: name, Email: strings.TrimSpace(email)}
	s.friends = append(s.friends, friend)
	s.commit(ctx, "add_friend")
	return friend, nil
}

// RemoveFriend deletes a friend from the list. Transactions referencing the
// friend are kept, so their balance stays visible under the raw ID.
func (s *Store) RemoveFriend(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.friends {
		if f.ID == id {
			s.friends = append(s.friends[:i], s.friends[i+1:]...)
			s.commit(ctx, "remove_friend")
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrFriendNotFound, id)
}

// SetCategoryBudget stores a budget for the normalized category rounded to
// cents. A negative (or non-finite) amount removes the budget.
func (s *Store) SetCategoryBudget(ctx context.Context, category string, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := calculator.NormalizeCategory(category)
	if validAmount(amount) {
		s.budgets[key] = money.Round(amount)
	} else {
		delete(s.budgets, key)
	}
	s.commit(ctx, "set_category_budget")
}

// SetMonthlyBudget sets the overall monthly budget. Nil or negative clears it.
func (s *Store) SetMonthlyBudget(ctx context.Context, amount *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount == nil || !validAmount(*amount) {
		s.prefs.MonthlyBudget = nil
	} else {
		s.prefs.MonthlyBudget = money.Ptr(money.Round(*amount))
	}
	s.commit(ctx, "set_monthly_budget")
}

// Friends returns a copy of the friend list.
func (s *Store) Friends() []models.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Friend{}, s.friends...)
}

// Transactions returns a deep copy of the transactions in stored order.
func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactionsCopy()
}

// Balances returns a copy of the derived balance map.
func (s *Store) Balances() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balancesCopy()
}

// Budgets returns a copy of the normalized category budgets.
func (s *Store) Budgets() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgetsCopy()
}

// BudgetForCategory looks a budget up case-insensitively. ok is false when
// no budget is set, which is distinct from a zero budget.
func (s *Store) BudgetForCategory(category string) (amount float64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	amount, ok = s.budgets[calculator.NormalizeCategory(category)]
	return amount, ok
}

// MonthlyBudget returns the overall monthly budget, or nil when unset.
func (s *Store) MonthlyBudget() *float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.prefs.MonthlyBudget == nil {
		return nil
	}
	return money.Ptr(*s.prefs.MonthlyBudget)
}

// Snapshot returns a copy of the state that would be persisted.
func (s *Store) Snapshot() models.PersistedState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// clear empties in-memory state and marks the store uninitialized.
func (s *Store) clear() {
	s.phase = PhaseUninitialized
	s.friends = nil
	s.transactions = nil
	s.budgets = make(map[string]float64)
	s.prefs = models.Preferences{}
	s.balances = make(map[string]float64)
}

// load restores the persisted snapshot. Callers hold the write lock.
func (s *Store) load(ctx context.Context) bool {
	state := s.persister.Load(ctx)
	s.clear()
	s.phase = PhaseLoaded
	if state == nil {
		s.logger.Debug("No persisted ledger state")
		return false
	}

	s.friends = append([]models.Friend(nil), state.Friends...)
	s.transactions = s.sanitizeAll(state.Transactions)
	s.budgets = state.Budgets
	s.prefs = state.Preferences
	if s.prefs.MonthlyBudget != nil && !validAmount(*s.prefs.MonthlyBudget) {
		s.prefs.MonthlyBudget = nil
	}
	s.balances = calculator.ComputeBalances(s.transactions)

	attrs := []any{
		"transactions", len(s.transactions),
		"friends", len(s.friends),
		"budgets", len(s.budgets),
	}
	if written, ok := s.persister.LastWritten(ctx); ok {
		attrs = append(attrs, "snapshot_age", s.now().Sub(written).Round(time.Second))
	}
	s.logger.Info("Ledger state restored", attrs...)
	return true
}

// commit recomputes derived state and writes the snapshot. Write failures
// are logged and counted; the in-memory mutation stands regardless. The
// write ignores ctx cancellation. Callers hold the write lock.
func (s *Store) commit(ctx context.Context, op string) {
	s.balances = calculator.ComputeBalances(s.transactions)
	s.phase = PhaseMutated
	if s.metrics != nil {
		s.metrics.Mutations.WithLabelValues(op).Inc()
	}

	n, err := s.persister.Save(context.WithoutCancel(ctx), s.snapshot())
	if err != nil {
		s.logger.Warn("Failed to persist ledger state", "op", op, "error", err)
		if s.metrics != nil {
			s.metrics.PersistWrites.WithLabelValues(metrics.ResultError).Inc()
		}
		return
	}

	s.phase = PhasePersisted
	s.logger.Debug("Ledger state persisted", "op", op, "bytes", n)
	if s.metrics != nil {
		s.metrics.PersistWrites.WithLabelValues(metrics.ResultOK).Inc()
		s.metrics.SnapshotBytes.Set(float64(n))
	}
}

// sanitizeAll sanitizes txs in order, replacing blank and repeated IDs so
// every stored transaction is addressable.
func (s *Store) sanitizeAll(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	seen := make(map[string]bool, len(txs))
	for _, tx := range txs {
		if seen[tx.ID] {
			s.logger.Warn("Replacing duplicate transaction id", "transaction_id", tx.ID)
			tx.ID = ""
		}
		tx = s.sanitize(tx)
		seen[tx.ID] = true
		out = append(out, tx)
	}
	return out
}

// sanitize fills defaults so malformed records never break aggregation.
func (s *Store) sanitize(tx models.Transaction) models.Transaction {
	tx = tx.Clone()
	if tx.ID == "" {
		tx.ID = s.newID()
	}
	if tx.Type == "" {
		tx.Type = models.TransactionSplit
	}
	tx.Total = money.Sanitize(tx.Total)
	for i := range tx.Participants {
		tx.Participants[i].Amount = money.Sanitize(tx.Participants[i].Amount)
	}
	if tx.UpdatedAt.IsZero() {
		tx.UpdatedAt = tx.CreatedAt
	}
	return tx
}

func (s *Store) indexOfTransaction(id string) int {
	for i, tx := range s.transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) transactionsCopy() []models.Transaction {
	out := make([]models.Transaction, len(s.transactions))
	for i, tx := range s.transactions {
		out[i] = tx.Clone()
	}
	return out
}

func (s *Store) balancesCopy() map[string]float64 {
	out := make(map[string]float64, len(s.balances))
	for id, amount := range s.balances {
		out[id] = amount
	}
	return out
}

func (s *Store) stateView() StateView {
	return StateView{PersistedState: s.snapshot(), Balances: s.balancesCopy()}
}

func (s *Store) budgetsCopy() map[string]float64 {
	out := make(map[string]float64, len(s.budgets))
	for k, v := range s.budgets {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() models.PersistedState {
	prefs := s.prefs
	if prefs.MonthlyBudget != nil {
		prefs.MonthlyBudget = money.Ptr(*prefs.MonthlyBudget)
	}
	return models.PersistedState{
		Transactions: s.transactionsCopy(),
		Budgets:      s.budgetsCopy(),
		Friends:      append([]models.Friend{}, s.friends...),
		Preferences:  prefs,
	}
}
