package tx_test

import (
	"context"

	"github.com/tessellated-io/walletbridge/cosmos/rpc"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// mockRpcClient is a hand-rolled RpcClient for offline tests. Unset fields produce
// zero values, captured fields record the last call.
type mockRpcClient struct {
	account authtypes.AccountI

	simulatedGasUsed uint64

	broadcastResult    *rpc.BroadcastResult
	broadcastErr       error
	capturedBroadcast  []byte
	broadcastCallCount int

	txStatus    *txtypes.GetTxResponse
	txStatusErr error

	nodeInfo *rpc.NodeInfo
}

var _ rpc.RpcClient = (*mockRpcClient)(nil)

func (m *mockRpcClient) Account(ctx context.Context, address string) (authtypes.AccountI, error) {
	return m.account, nil
}

func (m *mockRpcClient) Simulate(ctx context.Context, txBytes []byte) (*txtypes.SimulateResponse, error) {
	return &txtypes.SimulateResponse{
		GasInfo: &sdk.GasInfo{GasUsed: m.simulatedGasUsed},
	}, nil
}

func (m *mockRpcClient) GetTxStatus(ctx context.Context, txHash string) (*txtypes.GetTxResponse, error) {
	return m.txStatus, m.txStatusErr
}

func (m *mockRpcClient) GetBalance(ctx context.Context, address, denom string) (*sdk.Coin, error) {
	coin := sdk.NewCoin(denom, sdk.NewInt(1000000))
	return &coin, nil
}

func (m *mockRpcClient) GetDenomMetadata(ctx context.Context, denom string) (*banktypes.Metadata, error) {
	return &banktypes.Metadata{Base: denom}, nil
}

func (m *mockRpcClient) Broadcast(ctx context.Context, txBytes []byte) (*rpc.BroadcastResult, error) {
	m.capturedBroadcast = txBytes
	m.broadcastCallCount++
	return m.broadcastResult, m.broadcastErr
}

func (m *mockRpcClient) ABCIInfo(ctx context.Context) (*rpc.NodeInfo, error) {
	return m.nodeInfo, nil
}
