package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

const (
	// DefaultTrendMonths is the dashboard trend window when none is requested.
	DefaultTrendMonths = 6
	maxTrendMonths     = 60
)

var errInvalidRequest = errors.New("invalid request")

// LedgerService implements the Connect LedgerService on top of a ledger.Store.
type LedgerService struct {
	store  *ledger.Store
	logger *slog.Logger
}

// NewLedgerService creates a new LedgerService backed by store.
func NewLedgerService(store *ledger.Store, logger *slog.Logger) *LedgerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerService{store: store, logger: logger.With("component", "service")}
}

// toConnectError maps ledger and calculator errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrFriendNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrDuplicateTransaction):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ledger.ErrInvalidFriend),
		errors.Is(err, errInvalidRequest),
		errors.Is(err, calculator.ErrNoParticipants),
		errors.Is(err, calculator.ErrZeroSubtotal),
		errors.Is(err, calculator.ErrUnknownAssignment):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// GetState returns the full ledger snapshot with derived balances.
func (s *LedgerService) GetState(ctx context.Context, req *connect.Request[GetStateRequest]) (*connect.Response[GetStateResponse], error) {
	view := s.store.StateView()
	return connect.NewResponse(&GetStateResponse{
		Friends:      view.Friends,
		Transactions: view.Transactions,
		Budgets:      view.Budgets,
		Preferences:  view.Preferences,
		Balances:     view.Balances,
	}), nil
}

// SetTransactions replaces every transaction.
func (s *LedgerService) SetTransactions(ctx context.Context, req *connect.Request[SetTransactionsRequest]) (*connect.Response[SetTransactionsResponse], error) {
	view := s.store.SetTransactions(ctx, req.Msg.Transactions)
	return connect.NewResponse(&SetTransactionsResponse{
		Transactions: view.Transactions,
		Balances:     view.Balances,
	}), nil
}

// AddTransaction appends a single transaction.
func (s *LedgerService) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[TransactionResponse], error) {
	tx, err := s.store.AddTransaction(ctx, req.Msg.Transaction)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Transaction added", "transaction_id", tx.ID, "type", tx.Type, "total", tx.Total)
	return connect.NewResponse(&TransactionResponse{Transaction: tx}), nil
}

// UpdateTransaction replaces an existing transaction by ID.
func (s *LedgerService) UpdateTransaction(ctx context.Context, req *connect.Request[UpdateTransactionRequest]) (*connect.Response[TransactionResponse], error) {
	if req.Msg.Transaction.ID == "" {
		return nil, toConnectError(fmt.Errorf("%w: transaction id is required", errInvalidRequest))
	}
	tx, err := s.store.UpdateTransaction(ctx, req.Msg.Transaction)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Transaction updated", "transaction_id", tx.ID)
	return connect.NewResponse(&TransactionResponse{Transaction: tx}), nil
}

// DeleteTransaction removes a transaction by ID.
func (s *LedgerService) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	if err := s.store.DeleteTransaction(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Transaction deleted", "transaction_id", req.Msg.ID)
	return connect.NewResponse(&DeleteTransactionResponse{}), nil
}

// validatePayer checks that the payer is one of the participants.
func validatePayer(payer string, participants []string) error {
	for _, p := range participants {
		if p == payer {
			return nil
		}
	}
	return fmt.Errorf("%w: payer %q must be one of the participants", errInvalidRequest, payer)
}

// validateParticipants rejects blank and duplicate participant IDs.
func validateParticipants(participants []string) error {
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p == "" {
			return fmt.Errorf("%w: participant id is required", errInvalidRequest)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate participant %q", errInvalidRequest, p)
		}
		seen[p] = true
	}
	return nil
}

// validateItems checks that every item is shared by someone, carries a
// finite non-negative amount, and that item amounts add up to the subtotal.
func validateItems(items []SplitItem, subtotal float64) error {
	if len(items) == 0 {
		return nil
	}
	if !isFinite(subtotal) {
		return fmt.Errorf("%w: subtotal must be finite", errInvalidRequest)
	}

	amounts := make([]float64, len(items))
	for i, item := range items {
		if len(item.ParticipantIDs) == 0 {
			return fmt.Errorf("%w: item %q has no participants", errInvalidRequest, item.Description)
		}
		if !isFinite(item.Amount) || item.Amount < 0 {
			return fmt.Errorf("%w: item %q amount must be a non-negative number", errInvalidRequest, item.Description)
		}
		amounts[i] = item.Amount
	}

	sum := money.Sum(amounts...).Round(money.Places)
	if !sum.Equal(money.Dec(subtotal).Round(money.Places)) {
		return fmt.Errorf("%w: items add up to %s, subtotal is %.2f", errInvalidRequest, sum.StringFixed(money.Places), subtotal)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CreateSplit computes each participant's share of a bill and records the
// result as a split transaction.
func (s *LedgerService) CreateSplit(ctx context.Context, req *connect.Request[CreateSplitRequest]) (*connect.Response[CreateSplitResponse], error) {
	msg := req.Msg
	if !isFinite(msg.Total) || msg.Total <= 0 {
		return nil, toConnectError(fmt.Errorf("%w: total must be positive", errInvalidRequest))
	}
	if err := validateParticipants(msg.ParticipantIDs); err != nil {
		return nil, toConnectError(err)
	}

	payer := msg.Payer
	if payer == "" {
		payer = models.SelfID
	}
	if err := validatePayer(payer, msg.ParticipantIDs); err != nil {
		return nil, toConnectError(err)
	}

	subtotal := msg.Subtotal
	if subtotal == 0 && len(msg.Items) == 0 {
		subtotal = msg.Total
	}
	if err := validateItems(msg.Items, subtotal); err != nil {
		return nil, toConnectError(err)
	}

	items := make([]calculator.Item, len(msg.Items))
	for i, item := range msg.Items {
		s.logger.Debug("Processing item",
			"index", i+1,
			"description", item.Description,
			"amount", item.Amount,
			"participants", item.ParticipantIDs,
		)
		items[i] = calculator.Item{
			Description:  item.Description,
			Amount:       item.Amount,
			Participants: item.ParticipantIDs,
		}
	}

	splits, err := calculator.CalculateSplit(items, msg.Total, subtotal, msg.ParticipantIDs)
	if err != nil {
		s.logger.Warn("CreateSplit failed", "error", err)
		return nil, toConnectError(err)
	}

	tx, err := s.store.AddTransaction(ctx, models.Transaction{
		Type:         models.TransactionSplit,
		Description:  msg.Description,
		Total:        money.Round(msg.Total),
		Payer:        payer,
		Participants: calculator.BuildParticipants(splits, msg.ParticipantIDs, msg.Total),
		Category:     msg.Category,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make(map[string]PersonSplit, len(splits))
	for person, split := range splits {
		personItems := make([]PersonItem, len(split.Items))
		for i, item := range split.Items {
			personItems[i] = PersonItem{Description: item.Description, Amount: item.Amount}
		}
		out[person] = PersonSplit{
			Subtotal: split.Subtotal,
			Tax:      split.Tax,
			Total:    split.Total,
			Items:    personItems,
		}
	}

	s.logger.Info("Split created",
		"transaction_id", tx.ID,
		"payer", payer,
		"participants", len(msg.ParticipantIDs),
		"total", tx.Total,
	)
	return connect.NewResponse(&CreateSplitResponse{Transaction: tx, Splits: out}), nil
}

// AddFriend adds a friend with a generated ID.
func (s *LedgerService) AddFriend(ctx context.Context, req *connect.Request[AddFriendRequest]) (*connect.Response[AddFriendResponse], error) {
	friend, err := s.store.AddFriend(ctx, req.Msg.Name, req.Msg.Email)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Friend added", "friend_id", friend.ID)
	return connect.NewResponse(&AddFriendResponse{Friend: friend}), nil
}

// RemoveFriend removes a friend by ID.
func (s *LedgerService) RemoveFriend(ctx context.Context, req *connect.Request[RemoveFriendRequest]) (*connect.Response[RemoveFriendResponse], error) {
	if err := s.store.RemoveFriend(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Friend removed", "friend_id", req.Msg.ID)
	return connect.NewResponse(&RemoveFriendResponse{}), nil
}

// SetCategoryBudget sets or removes a category budget.
func (s *LedgerService) SetCategoryBudget(ctx context.Context, req *connect.Request[SetCategoryBudgetRequest]) (*connect.Response[SetCategoryBudgetResponse], error) {
	s.store.SetCategoryBudget(ctx, req.Msg.Category, req.Msg.Amount)
	return connect.NewResponse(&SetCategoryBudgetResponse{Budgets: s.store.Budgets()}), nil
}

// SetMonthlyBudget sets or clears the overall monthly budget.
func (s *LedgerService) SetMonthlyBudget(ctx context.Context, req *connect.Request[SetMonthlyBudgetRequest]) (*connect.Response[SetMonthlyBudgetResponse], error) {
	s.store.SetMonthlyBudget(ctx, req.Msg.Amount)
	return connect.NewResponse(&SetMonthlyBudgetResponse{Status: s.store.BudgetStatus()}), nil
}

// GetDashboard returns every derived view in one call.
func (s *LedgerService) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	months := req.Msg.Months
	switch {
	case months < 0 || months > maxTrendMonths:
		return nil, toConnectError(fmt.Errorf("%w: months must be between 0 and %d", errInvalidRequest, maxTrendMonths))
	case months == 0:
		months = DefaultTrendMonths
	}

	d := s.store.Dashboard(months)
	return connect.NewResponse(&GetDashboardResponse{
		BudgetAggregates:  d.BudgetAggregates,
		BudgetTotals:      d.BudgetTotals,
		CategoryTotals:    d.CategoryTotals,
		MonthlyTrend:      d.MonthlyTrend,
		BudgetStatus:      d.BudgetStatus,
		Balances:          d.Balances,
		SettleUp:          d.SettleUp,
		NetBalance:        d.NetBalance,
		NetBalanceDisplay: money.FormatEUR(d.NetBalance),
	}), nil
}

// Reset clears the ledger, optionally deleting the persisted snapshot.
func (s *LedgerService) Reset(ctx context.Context, req *connect.Request[ResetRequest]) (*connect.Response[ResetResponse], error) {
	if err := s.store.Reset(ctx, req.Msg.Hard); err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Ledger reset", "hard", req.Msg.Hard)
	return connect.NewResponse(&ResetResponse{Phase: s.store.Phase().String()}), nil
}
