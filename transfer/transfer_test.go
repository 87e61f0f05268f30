package transfer_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellated-io/walletbridge/chains"
	"github.com/tessellated-io/walletbridge/cosmos/registry"
	"github.com/tessellated-io/walletbridge/cosmos/rpc"
	cosmosutil "github.com/tessellated-io/walletbridge/cosmos/util"
	"github.com/tessellated-io/walletbridge/crypto"
	"github.com/tessellated-io/walletbridge/log"
	"github.com/tessellated-io/walletbridge/transfer"
	"github.com/tessellated-io/walletbridge/wallet"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// mockRpcClient satisfies rpc.RpcClient without any network.
type mockRpcClient struct {
	account authtypes.AccountI

	simulatedGasUsed uint64

	broadcastResult    *rpc.BroadcastResult
	broadcastErr       error
	capturedBroadcast  []byte
	broadcastCallCount int

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
	return nil, errors.New("not implemented")
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

func testLogger() *log.Logger {
	return log.NewWriterLogger("error", &bytes.Buffer{}, []string{})
}

func nolusTestnet() *chains.ChainData {
	return chains.NewOfflineChainRegistry().ChainNameToData["nolustestnet"]
}

func testRecipient(t *testing.T, tag string) string {
	t.Helper()

	addressBytes := make([]byte, 20)
	copy(addressBytes, tag)
	encoded, err := crypto.Bech32Address(addressBytes, "nolus")
	require.NoError(t, err)
	return encoded
}

// testSender wires a Sender over the mock with an installed phantom wallet.
func testSender(t *testing.T, mock *mockRpcClient) (*transfer.Sender, wallet.Provider) {
	t.Helper()

	seed := make([]byte, 32)
	copy(seed, "transfer test seed")
	phantom := wallet.NewPhantom(seed, nil)

	registry := wallet.NewRegistry(testLogger())
	registry.Install(phantom)

	sender, err := transfer.NewSenderWithClient(nolusTestnet(), mock, 0.025, 1.2, "", registry, testLogger())
	require.NoError(t, err)

	return sender, phantom
}

// connectAndSeedAccount connects the wallet and points the mock at its account.
func connectAndSeedAccount(t *testing.T, mock *mockRpcClient, sender *transfer.Sender, provider wallet.Provider) {
	t.Helper()

	connection, err := sender.Connect(context.Background(), provider.Name())
	require.NoError(t, err)
	require.NotEmpty(t, connection.Address)

	address := sdk.AccAddress(provider.GetPublicKey().Address())
	mock.account = authtypes.NewBaseAccount(address, provider.GetPublicKey(), 1, 0)
}

func TestSendTransaction_Success(t *testing.T) {
	mock := &mockRpcClient{
		simulatedGasUsed: 80000,
		broadcastResult:  &rpc.BroadcastResult{Code: 0, TxHash: "DEADBEEF"},
	}
	sender, phantom := testSender(t, mock)
	connectAndSeedAccount(t, mock, sender, phantom)

	recipient := testRecipient(t, "alice")
	result := sender.SendTransaction(context.Background(), wallet.Phantom, recipient, sdk.NewInt64Coin("unls", 2500))

	require.NoError(t, result.Err)
	assert.True(t, result.Success)
	assert.Equal(t, "DEADBEEF", result.TxHash)
	assert.Equal(t, 1, mock.broadcastCallCount)

	// The broadcast bytes decode into a single MsgSend to the recipient.
	txConfig := authtx.NewTxConfig(cosmosutil.NewProtoCodec(), authtx.DefaultSignModes)
	decoded, err := txConfig.TxDecoder()(mock.capturedBroadcast)
	require.NoError(t, err)

	messages := decoded.GetMsgs()
	require.Len(t, messages, 1)

	msgSend := messages[0].(*banktypes.MsgSend)
	assert.Equal(t, recipient, msgSend.ToAddress)
	assert.Equal(t, "2500unls", msgSend.Amount.String())
}

func TestSendTransaction_FailedBroadcastIsNotAnError(t *testing.T) {
	mock := &mockRpcClient{
		simulatedGasUsed: 80000,
		broadcastResult:  &rpc.BroadcastResult{Code: 13, Codespace: "sdk", Log: "insufficient fees"},
	}
	sender, phantom := testSender(t, mock)
	connectAndSeedAccount(t, mock, sender, phantom)

	result := sender.SendTransaction(context.Background(), wallet.Phantom, testRecipient(t, "bob"), sdk.NewInt64Coin("unls", 100))

	require.NoError(t, result.Err)
	assert.False(t, result.Success)
	assert.Equal(t, uint32(13), result.Code)
	assert.Equal(t, "sdk", result.Codespace)
	assert.Equal(t, "insufficient fees", result.RawLog)
}

func TestSendTransaction_RequiresConnection(t *testing.T) {
	mock := &mockRpcClient{simulatedGasUsed: 80000}
	sender, phantom := testSender(t, mock)

	// Account state exists but the wallet never connected.
	address := sdk.AccAddress(phantom.GetPublicKey().Address())
	mock.account = authtypes.NewBaseAccount(address, phantom.GetPublicKey(), 1, 0)

	result := sender.SendTransaction(context.Background(), wallet.Phantom, testRecipient(t, "carol"), sdk.NewInt64Coin("unls", 100))

	assert.ErrorIs(t, result.Err, wallet.ErrNotConnected)
	assert.Equal(t, 0, mock.broadcastCallCount)
}

func TestSendTransaction_MissingWallet(t *testing.T) {
	mock := &mockRpcClient{}
	sender, _ := testSender(t, mock)

	result := sender.SendTransaction(context.Background(), wallet.MetaMask, testRecipient(t, "dave"), sdk.NewInt64Coin("unls", 100))

	assert.ErrorIs(t, result.Err, wallet.ErrWalletNotFound)
}

func TestSendTransaction_RejectsZeroAmount(t *testing.T) {
	mock := &mockRpcClient{}
	sender, phantom := testSender(t, mock)
	connectAndSeedAccount(t, mock, sender, phantom)

	result := sender.SendTransaction(context.Background(), wallet.Phantom, testRecipient(t, "erin"), sdk.NewInt64Coin("unls", 0))

	assert.ErrorIs(t, result.Err, transfer.ErrInvalidAmount)
	assert.Equal(t, 0, mock.broadcastCallCount)
}

func TestSendTransaction_RejectsWrongPrefix(t *testing.T) {
	mock := &mockRpcClient{}
	sender, phantom := testSender(t, mock)
	connectAndSeedAccount(t, mock, sender, phantom)

	wrongPrefix := phantom.GetAddress("neutron")
	result := sender.SendTransaction(context.Background(), wallet.Phantom, wrongPrefix, sdk.NewInt64Coin("unls", 100))

	assert.ErrorIs(t, result.Err, transfer.ErrInvalidRecipient)
}

func TestSendToMany_Batches(t *testing.T) {
	mock := &mockRpcClient{
		simulatedGasUsed: 80000,
		broadcastResult:  &rpc.BroadcastResult{Code: 0, TxHash: "AA"},
	}
	sender, phantom := testSender(t, mock)
	connectAndSeedAccount(t, mock, sender, phantom)

	recipients := []string{
		testRecipient(t, "r1"),
		testRecipient(t, "r2"),
		testRecipient(t, "r3"),
		testRecipient(t, "r4"),
		testRecipient(t, "r5"),
	}

	results, err := sender.SendToMany(context.Background(), wallet.Phantom, recipients, sdk.NewInt64Coin("unls", 10), 2)
	require.NoError(t, err)

	// 2 + 2 + 1
	require.Len(t, results, 3)
	assert.Equal(t, 3, mock.broadcastCallCount)
	for _, result := range results {
		assert.True(t, result.Success)
	}

	// The final envelope carries the single remaining message.
	txConfig := authtx.NewTxConfig(cosmosutil.NewProtoCodec(), authtx.DefaultSignModes)
	decoded, err := txConfig.TxDecoder()(mock.capturedBroadcast)
	require.NoError(t, err)
	assert.Len(t, decoded.GetMsgs(), 1)
}

func TestSendToMany_NoRecipients(t *testing.T) {
	mock := &mockRpcClient{}
	sender, _ := testSender(t, mock)

	_, err := sender.SendToMany(context.Background(), wallet.Phantom, []string{}, sdk.NewInt64Coin("unls", 10), 2)
	assert.ErrorIs(t, err, transfer.ErrNoRecipients)
}

func TestTestTransaction(t *testing.T) {
	mock := &mockRpcClient{
		nodeInfo: &rpc.NodeInfo{Data: "nolus", Version: "0.37.2", LastBlockHeight: "123456"},
	}
	sender, _ := testSender(t, mock)

	nodeInfo, err := sender.TestTransaction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nolus", nodeInfo.Data)
	assert.Equal(t, "123456", nodeInfo.LastBlockHeight)
}

func TestCheckWallet(t *testing.T) {
	mock := &mockRpcClient{}
	sender, phantom := testSender(t, mock)

	status := sender.CheckWallet(wallet.Phantom)
	assert.True(t, status.Installed)
	assert.False(t, status.Connected)

	_, err := phantom.Connect(context.Background())
	require.NoError(t, err)

	status = sender.CheckWallet(wallet.Phantom)
	assert.True(t, status.Connected)

	status = sender.CheckWallet(wallet.Solflare)
	assert.False(t, status.Installed)
}

const testChainJson = `{
	"chain_name": "evmostestnet",
	"chain_id": "evmos_9000-4",
	"bech32_prefix": "evmos",
	"fees": {
		"fee_tokens": [{"denom": "atevmos", "fixed_min_gas_price": 0.002}]
	},
	"staking": {
		"staking_tokens": [{"denom": "atevmos"}]
	},
	"apis": {
		"rpc": [{"address": "https://evmos-testnet-rpc.polkachu.com", "provider": "Polkachu"}],
		"grpc": [{"address": "evmos-testnet-grpc.polkachu.com:13490", "provider": "Polkachu"}]
	}
}`

const testAssetListJson = `{
	"chain_name": "evmostestnet",
	"assets": [{
		"base": "atevmos",
		"display": "tevmos",
		"symbol": "TEVMOS",
		"denom_units": [
			{"denom": "atevmos", "exponent": 0},
			{"denom": "tevmos", "exponent": 18}
		]
	}]
}`

func testRegistryClient(baseUrl string) registry.ChainRegistryClient {
	return registry.NewChainRegistryClient(testLogger(), baseUrl, 1, time.Millisecond)
}

func TestResolveChainData_KnownChainSkipsRegistry(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.NotFound(w, r)
	}))
	defer server.Close()

	chainData, err := transfer.ResolveChainData(context.Background(), "nolustestnet", testRegistryClient(server.URL), testLogger())
	require.NoError(t, err)

	assert.Equal(t, "rila-3", chainData.ChainID)
	assert.Equal(t, "nolus", chainData.AccountPrefix)
	assert.Equal(t, 0.025, chainData.MinGasPrice)
	assert.Equal(t, 0, requests)
}

func TestResolveChainData_FallsBackToRegistry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/evmostestnet/chain.json"):
			_, _ = w.Write([]byte(testChainJson))
		case strings.HasSuffix(r.URL.Path, "/evmostestnet/assetlist.json"):
			_, _ = w.Write([]byte(testAssetListJson))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	chainData, err := transfer.ResolveChainData(context.Background(), "evmostestnet", testRegistryClient(server.URL), testLogger())
	require.NoError(t, err)

	assert.Equal(t, "evmostestnet", chainData.ChainName)
	assert.Equal(t, "evmos_9000-4", chainData.ChainID)
	assert.Equal(t, "evmos", chainData.AccountPrefix)
	assert.Equal(t, "atevmos", chainData.NativeToken)
	assert.Equal(t, 18, chainData.NativeTokenDecimals)
	assert.Equal(t, 0.002, chainData.MinGasPrice)
	assert.Equal(t, "evmos-testnet-grpc.polkachu.com:13490", chainData.GrpcUrl)
	assert.Equal(t, "https://evmos-testnet-rpc.polkachu.com", chainData.RpcUrl)
}

func TestResolveChainData_MissingAssetListDefaultsDecimals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/evmostestnet/chain.json") {
			_, _ = w.Write([]byte(testChainJson))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	chainData, err := transfer.ResolveChainData(context.Background(), "evmostestnet", testRegistryClient(server.URL), testLogger())
	require.NoError(t, err)
	assert.Equal(t, 6, chainData.NativeTokenDecimals)
}

func TestResolveChainData_UnknownChain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	_, err := transfer.ResolveChainData(context.Background(), "atlantis", testRegistryClient(server.URL), testLogger())
	assert.ErrorIs(t, err, transfer.ErrUnknownChain)
}

func TestZeroGasPriceUsesChainMinimum(t *testing.T) {
	mock := &mockRpcClient{
		simulatedGasUsed: 80000,
		broadcastResult:  &rpc.BroadcastResult{Code: 0, TxHash: "AA"},
	}

	seed := make([]byte, 32)
	copy(seed, "transfer test seed")
	phantom := wallet.NewPhantom(seed, nil)

	walletRegistry := wallet.NewRegistry(testLogger())
	walletRegistry.Install(phantom)

	sender, err := transfer.NewSenderWithClient(nolusTestnet(), mock, 0, 1.2, "", walletRegistry, testLogger())
	require.NoError(t, err)
	connectAndSeedAccount(t, mock, sender, phantom)

	result := sender.SendTransaction(context.Background(), wallet.Phantom, testRecipient(t, "frank"), sdk.NewInt64Coin("unls", 100))
	require.NoError(t, result.Err)

	txConfig := authtx.NewTxConfig(cosmosutil.NewProtoCodec(), authtx.DefaultSignModes)
	decoded, err := txConfig.TxDecoder()(mock.capturedBroadcast)
	require.NoError(t, err)

	// Fee is priced at the chain's 0.025 minimum: int64(0.025 * 96000) + 1.
	feeTx := decoded.(sdk.FeeTx)
	assert.Equal(t, "2401unls", feeTx.GetFee().String())
}

func TestBalance(t *testing.T) {
	mock := &mockRpcClient{}
	sender, _ := testSender(t, mock)

	balance, metadata, err := sender.Balance(context.Background(), wallet.Phantom)
	require.NoError(t, err)

	assert.Equal(t, "1000000unls", balance.String())
	require.NotNil(t, metadata)
	assert.Equal(t, "unls", metadata.Base)
}

func TestBalance_MissingWallet(t *testing.T) {
	mock := &mockRpcClient{}
	sender, _ := testSender(t, mock)

	_, _, err := sender.Balance(context.Background(), wallet.MetaMask)
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestConnect_RejectedApproval(t *testing.T) {
	rejection := errors.New("user dismissed the prompt")
	declined := wallet.NewSolflare(nil, func(ctx context.Context, walletName string) error {
		return rejection
	})

	registry := wallet.NewRegistry(testLogger())
	registry.Install(declined)

	sender, err := transfer.NewSenderWithClient(nolusTestnet(), &mockRpcClient{}, 0.025, 1.2, "", registry, testLogger())
	require.NoError(t, err)

	_, err = sender.Connect(context.Background(), wallet.Solflare)
	require.Error(t, err)

	var rejected *wallet.RejectedError
	assert.True(t, errors.As(err, &rejected))
}
