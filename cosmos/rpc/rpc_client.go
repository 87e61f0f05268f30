package rpc

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// RpcClient handles the node RPCs the send pipeline needs. Queries travel over gRPC,
// broadcast and the node info probe travel over CometBFT JSON-RPC.
type RpcClient interface {
	Account(ctx context.Context, address string) (authtypes.AccountI, error)
	Simulate(ctx context.Context, txBytes []byte) (*txtypes.SimulateResponse, error)
	GetTxStatus(ctx context.Context, txHash string) (*txtypes.GetTxResponse, error)

	GetBalance(ctx context.Context, address, denom string) (*sdk.Coin, error)
	GetDenomMetadata(ctx context.Context, denom string) (*banktypes.Metadata, error)

	Broadcast(ctx context.Context, txBytes []byte) (*BroadcastResult, error)
	ABCIInfo(ctx context.Context) (*NodeInfo, error)
}
