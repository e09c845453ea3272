package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the service.
const LedgerServiceName = "splitledger.v1.LedgerService"

// Procedure paths, one per RPC.
const (
	LedgerServiceGetStateProcedure          = "/" + LedgerServiceName + "/GetState"
	LedgerServiceSetTransactionsProcedure   = "/" + LedgerServiceName + "/SetTransactions"
	LedgerServiceAddTransactionProcedure    = "/" + LedgerServiceName + "/AddTransaction"
	LedgerServiceUpdateTransactionProcedure = "/" + LedgerServiceName + "/UpdateTransaction"
	LedgerServiceDeleteTransactionProcedure = "/" + LedgerServiceName + "/DeleteTransaction"
	LedgerServiceCreateSplitProcedure       = "/" + LedgerServiceName + "/CreateSplit"
	LedgerServiceAddFriendProcedure         = "/" + LedgerServiceName + "/AddFriend"
	LedgerServiceRemoveFriendProcedure      = "/" + LedgerServiceName + "/RemoveFriend"
	LedgerServiceSetCategoryBudgetProcedure = "/" + LedgerServiceName + "/SetCategoryBudget"
	LedgerServiceSetMonthlyBudgetProcedure  = "/" + LedgerServiceName + "/SetMonthlyBudget"
	LedgerServiceGetDashboardProcedure      = "/" + LedgerServiceName + "/GetDashboard"
	LedgerServiceResetProcedure             = "/" + LedgerServiceName + "/Reset"
)

// NewLedgerServiceHandler builds an HTTP handler serving every procedure of
// svc. It returns the path to mount it on.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(LedgerServiceGetStateProcedure, connect.NewUnaryHandler(LedgerServiceGetStateProcedure, svc.GetState, opts...))
	mux.Handle(LedgerServiceSetTransactionsProcedure, connect.NewUnaryHandler(LedgerServiceSetTransactionsProcedure, svc.SetTransactions, opts...))
	mux.Handle(LedgerServiceAddTransactionProcedure, connect.NewUnaryHandler(LedgerServiceAddTransactionProcedure, svc.AddTransaction, opts...))
	mux.Handle(LedgerServiceUpdateTransactionProcedure, connect.NewUnaryHandler(LedgerServiceUpdateTransactionProcedure, svc.UpdateTransaction, opts...))
	mux.Handle(LedgerServiceDeleteTransactionProcedure, connect.NewUnaryHandler(LedgerServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...))
	mux.Handle(LedgerServiceCreateSplitProcedure, connect.NewUnaryHandler(LedgerServiceCreateSplitProcedure, svc.CreateSplit, opts...))
	mux.Handle(LedgerServiceAddFriendProcedure, connect.NewUnaryHandler(LedgerServiceAddFriendProcedure, svc.AddFriend, opts...))
	mux.Handle(LedgerServiceRemoveFriendProcedure, connect.NewUnaryHandler(LedgerServiceRemoveFriendProcedure, svc.RemoveFriend, opts...))
	mux.Handle(LedgerServiceSetCategoryBudgetProcedure, connect.NewUnaryHandler(LedgerServiceSetCategoryBudgetProcedure, svc.SetCategoryBudget, opts...))
	mux.Handle(LedgerServiceSetMonthlyBudgetProcedure, connect.NewUnaryHandler(LedgerServiceSetMonthlyBudgetProcedure, svc.SetMonthlyBudget, opts...))
	mux.Handle(LedgerServiceGetDashboardProcedure, connect.NewUnaryHandler(LedgerServiceGetDashboardProcedure, svc.GetDashboard, opts...))
	mux.Handle(LedgerServiceResetProcedure, connect.NewUnaryHandler(LedgerServiceResetProcedure, svc.Reset, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient is a typed client for the LedgerService.
type LedgerServiceClient struct {
	getState          *connect.Client[GetStateRequest, GetStateResponse]
	setTransactions   *connect.Client[SetTransactionsRequest, SetTransactionsResponse]
	addTransaction    *connect.Client[AddTransactionRequest, TransactionResponse]
	updateTransaction *connect.Client[UpdateTransactionRequest, TransactionResponse]
	deleteTransaction *connect.Client[DeleteTransactionRequest, DeleteTransactionResponse]
	createSplit       *connect.Client[CreateSplitRequest, CreateSplitResponse]
	addFriend         *connect.Client[AddFriendRequest, AddFriendResponse]
	removeFriend      *connect.Client[RemoveFriendRequest, RemoveFriendResponse]
	setCategoryBudget *connect.Client[SetCategoryBudgetRequest, SetCategoryBudgetResponse]
	setMonthlyBudget  *connect.Client[SetMonthlyBudgetRequest, SetMonthlyBudgetResponse]
	getDashboard      *connect.Client[GetDashboardRequest, GetDashboardResponse]
	reset             *connect.Client[ResetRequest, ResetResponse]
}

// NewLedgerServiceClient constructs a client for the service at baseURL
// (for example, http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &LedgerServiceClient{
		getState:          connect.NewClient[GetStateRequest, GetStateResponse](httpClient, baseURL+LedgerServiceGetStateProcedure, opts...),
		setTransactions:   connect.NewClient[SetTransactionsRequest, SetTransactionsResponse](httpClient, baseURL+LedgerServiceSetTransactionsProcedure, opts...),
		addTransaction:    connect.NewClient[AddTransactionRequest, TransactionResponse](httpClient, baseURL+LedgerServiceAddTransactionProcedure, opts...),
		updateTransaction: connect.NewClient[UpdateTransactionRequest, TransactionResponse](httpClient, baseURL+LedgerServiceUpdateTransactionProcedure, opts...),
		deleteTransaction: connect.NewClient[DeleteTransactionRequest, DeleteTransactionResponse](httpClient, baseURL+LedgerServiceDeleteTransactionProcedure, opts...),
		createSplit:       connect.NewClient[CreateSplitRequest, CreateSplitResponse](httpClient, baseURL+LedgerServiceCreateSplitProcedure, opts...),
		addFriend:         connect.NewClient[AddFriendRequest, AddFriendResponse](httpClient, baseURL+LedgerServiceAddFriendProcedure, opts...),
		removeFriend:      connect.NewClient[RemoveFriendRequest, RemoveFriendResponse](httpClient, baseURL+LedgerServiceRemoveFriendProcedure, opts...),
		setCategoryBudget: connect.NewClient[SetCategoryBudgetRequest, SetCategoryBudgetResponse](httpClient, baseURL+LedgerServiceSetCategoryBudgetProcedure, opts...),
		setMonthlyBudget:  connect.NewClient[SetMonthlyBudgetRequest, SetMonthlyBudgetResponse](httpClient, baseURL+LedgerServiceSetMonthlyBudgetProcedure, opts...),
		getDashboard:      connect.NewClient[GetDashboardRequest, GetDashboardResponse](httpClient, baseURL+LedgerServiceGetDashboardProcedure, opts...),
		reset:             connect.NewClient[ResetRequest, ResetResponse](httpClient, baseURL+LedgerServiceResetProcedure, opts...),
	}
}

func (c *LedgerServiceClient) GetState(ctx context.Context, req *connect.Request[GetStateRequest]) (*connect.Response[GetStateResponse], error) {
	return c.getState.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetTransactions(ctx context.Context, req *connect.Request[SetTransactionsRequest]) (*connect.Response[SetTransactionsResponse], error) {
	return c.setTransactions.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddTransaction(ctx context.Context, req *connect.Request[AddTransactionRequest]) (*connect.Response[TransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) UpdateTransaction(ctx context.Context, req *connect.Request[UpdateTransactionRequest]) (*connect.Response[TransactionResponse], error) {
	return c.updateTransaction.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) CreateSplit(ctx context.Context, req *connect.Request[CreateSplitRequest]) (*connect.Response[CreateSplitResponse], error) {
	return c.createSplit.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddFriend(ctx context.Context, req *connect.Request[AddFriendRequest]) (*connect.Response[AddFriendResponse], error) {
	return c.addFriend.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RemoveFriend(ctx context.Context, req *connect.Request[RemoveFriendRequest]) (*connect.Response[RemoveFriendResponse], error) {
	return c.removeFriend.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetCategoryBudget(ctx context.Context, req *connect.Request[SetCategoryBudgetRequest]) (*connect.Response[SetCategoryBudgetResponse], error) {
	return c.setCategoryBudget.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SetMonthlyBudget(ctx context.Context, req *connect.Request[SetMonthlyBudgetRequest]) (*connect.Response[SetMonthlyBudgetResponse], error) {
	return c.setMonthlyBudget.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) Reset(ctx context.Context, req *connect.Request[ResetRequest]) (*connect.Response[ResetResponse], error) {
	return c.reset.CallUnary(ctx, req)
}
