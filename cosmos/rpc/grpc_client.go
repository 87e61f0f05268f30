package rpc

import (
	"context"
	"fmt"

	"github.com/tessellated-io/walletbridge/cosmos/util"
	"github.com/tessellated-io/walletbridge/grpc"
	"github.com/tessellated-io/walletbridge/log"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// Page size to use for paginated queries
const pageSize = 100

// client is the default RpcClient: gRPC for state queries, CometBFT JSON-RPC for
// broadcast and node info.
type client struct {
	cdc *codec.ProtoCodec

	authClient authtypes.QueryClient
	bankClient banktypes.QueryClient
	txClient   txtypes.ServiceClient

	comet *CometClient

	logger *log.Logger
}

// A page of data that came back from an RPC query
type paginatedRpcResponse[dataType any] struct {
	data    []dataType
	nextKey []byte
}

var _ RpcClient = (*client)(nil)

// NewRpcClient makes a new RpcClient from a node's gRPC and JSON-RPC endpoints.
func NewRpcClient(nodeGrpcUri, nodeRpcUrl string, cdc *codec.ProtoCodec, logger *log.Logger) (RpcClient, error) {
	conn, err := grpc.GetGrpcConnection(nodeGrpcUri)
	if err != nil {
		logger.Error("unable to connect to gRPC", "grpc_url", nodeGrpcUri)
		return nil, err
	}

	return &client{
		cdc: cdc,

		authClient: authtypes.NewQueryClient(conn),
		bankClient: banktypes.NewQueryClient(conn),
		txClient:   txtypes.NewServiceClient(conn),

		comet: NewCometClient(nodeRpcUrl, logger),

		logger: logger,
	}, nil
}

func (r *client) Account(ctx context.Context, address string) (authtypes.AccountI, error) {
	request := &authtypes.QueryAccountRequest{Address: address}
	res, err := r.authClient.Account(ctx, request)
	if err != nil {
		return nil, err
	}

	var account authtypes.AccountI
	if err := r.cdc.UnpackAny(res.Account, &account); err != nil {
		return nil, err
	}

	return account, nil
}

func (r *client) Simulate(ctx context.Context, txBytes []byte) (*txtypes.SimulateResponse, error) {
	request := &txtypes.SimulateRequest{
		TxBytes: txBytes,
	}
	return r.txClient.Simulate(ctx, request)
}

func (r *client) GetTxStatus(ctx context.Context, txHash string) (*txtypes.GetTxResponse, error) {
	request := &txtypes.GetTxRequest{Hash: txHash}
	return r.txClient.GetTx(ctx, request)
}

func (r *client) GetBalance(ctx context.Context, address, denom string) (*sdk.Coin, error) {
	getBalancesFunc := func(ctx context.Context, pageKey []byte) (*paginatedRpcResponse[sdk.Coin], error) {
		pagination := &query.PageRequest{
			Key:   pageKey,
			Limit: pageSize,
		}

		request := &banktypes.QueryAllBalancesRequest{
			Address:    address,
			Pagination: pagination,
		}

		response, err := r.bankClient.AllBalances(ctx, request)
		if err != nil {
			return nil, err
		}

		return &paginatedRpcResponse[sdk.Coin]{
			data:    response.Balances,
			nextKey: response.Pagination.NextKey,
		}, nil
	}

	balances, err := retrievePaginatedData(ctx, r, "balances", getBalancesFunc)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("retrieved balances", "num_balances", len(balances), "address", address, "denom", denom)

	return util.ExtractCoin(denom, balances)
}

func (r *client) GetDenomMetadata(ctx context.Context, denom string) (*banktypes.Metadata, error) {
	request := &banktypes.QueryDenomMetadataRequest{
		Denom: denom,
	}
	response, err := r.bankClient.DenomMetadata(ctx, request)
	if err != nil {
		return nil, err
	}

	return &response.Metadata, nil
}

func (r *client) Broadcast(ctx context.Context, txBytes []byte) (*BroadcastResult, error) {
	return r.comet.BroadcastTxSync(ctx, txBytes)
}

func (r *client) ABCIInfo(ctx context.Context) (*NodeInfo, error) {
	return r.comet.ABCIInfo(ctx)
}

// Pagination
// NOTE: Implemented as a private standalone func since go doesn't support generics on struct methods.
func retrievePaginatedData[DataType any](
	ctx context.Context,
	r *client,
	noun string,
	retrievePageFn func(
		ctx context.Context,
		nextKey []byte,
	) (*paginatedRpcResponse[DataType], error),
) ([]DataType, error) {
	data := []DataType{}

	var nextKey []byte
	for {
		rpcResponse, err := retrievePageFn(ctx, nextKey)
		if err != nil {
			return nil, err
		}

		data = append(data, rpcResponse.data...)
		r.logger.Debug(fmt.Sprintf("fetched page of %s", noun), "num_in_page", len(rpcResponse.data), "total_fetched", len(data))

		if len(rpcResponse.nextKey) == 0 {
			break
		}
		nextKey = rpcResponse.nextKey
	}

	return data, nil
}
