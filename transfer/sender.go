package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/tessellated-io/walletbridge/arrays"
	"github.com/tessellated-io/walletbridge/chains"
	"github.com/tessellated-io/walletbridge/cosmos/registry"
	"github.com/tessellated-io/walletbridge/cosmos/rpc"
	"github.com/tessellated-io/walletbridge/cosmos/tx"
	cosmosutil "github.com/tessellated-io/walletbridge/cosmos/util"
	"github.com/tessellated-io/walletbridge/log"
	"github.com/tessellated-io/walletbridge/util"
	"github.com/tessellated-io/walletbridge/wallet"

	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// DefaultChainRegistryBaseUrl serves raw chain-registry JSON for chains outside the
// known set.
const DefaultChainRegistryBaseUrl = "https://raw.githubusercontent.com/cosmos/chain-registry/master"

const (
	defaultRegistryAttempts = 3
	defaultRegistryDelay    = 500 * time.Millisecond
)

// Sender runs the wallet-to-chain transfer flow end to end: detect and connect a
// wallet, derive the sender address, fetch account state, assemble and sign a bank
// send, and broadcast it. Each send is a single attempt with no retries.
type Sender struct {
	chain *chains.ChainData

	walletRegistry *wallet.Registry
	rpcClient      rpc.RpcClient
	gasManager     tx.GasManager
	txConfig       client.TxConfig

	memo string

	logger *log.Logger
}

// NewSender creates a Sender for a chain by name, dialing the chain's endpoints.
// Chains outside the known set are resolved against the public chain registry. Empty
// overrides use the chain's default endpoints.
func NewSender(
	ctx context.Context,
	chainName string,
	grpcEndpointOverride string,
	rpcEndpointOverride string,
	gasPrice float64,
	gasFactor float64,
	memo string,
	walletRegistry *wallet.Registry,
	logger *log.Logger,
) (*Sender, error) {
	registryClient := registry.NewChainRegistryClient(logger, DefaultChainRegistryBaseUrl, defaultRegistryAttempts, defaultRegistryDelay)
	return NewSenderWithChainRegistry(ctx, chainName, grpcEndpointOverride, rpcEndpointOverride, gasPrice, gasFactor, memo, registryClient, walletRegistry, logger)
}

// NewSenderWithChainRegistry creates a Sender, resolving unknown chain names through
// the given registry client.
func NewSenderWithChainRegistry(
	ctx context.Context,
	chainName string,
	grpcEndpointOverride string,
	rpcEndpointOverride string,
	gasPrice float64,
	gasFactor float64,
	memo string,
	registryClient registry.ChainRegistryClient,
	walletRegistry *wallet.Registry,
	logger *log.Logger,
) (*Sender, error) {
	chainData, err := ResolveChainData(ctx, chainName, registryClient, logger)
	if err != nil {
		return nil, err
	}

	if grpcEndpointOverride != "" {
		chainData.GrpcUrl = grpcEndpointOverride
	}
	if rpcEndpointOverride != "" {
		chainData.RpcUrl = rpcEndpointOverride
	}

	rpcClient, err := rpc.NewRpcClient(chainData.GrpcUrl, chainData.RpcUrl, cosmosutil.NewProtoCodec(), logger)
	if err != nil {
		return nil, err
	}

	return NewSenderWithClient(chainData, rpcClient, gasPrice, gasFactor, memo, walletRegistry, logger)
}

// ResolveChainData resolves a chain name to chain data. Known chains resolve without
// any network access. Anything else is looked up in the hosted chain registry, with
// the fee token's base denom as the native token.
func ResolveChainData(ctx context.Context, chainName string, registryClient registry.ChainRegistryClient, logger *log.Logger) (*chains.ChainData, error) {
	if chainData, found := chains.NewOfflineChainRegistry().ChainNameToData[chainName]; found {
		return chainData, nil
	}

	logger.Info("chain is not in the known set, consulting the chain registry", "chain_name", chainName)

	chainInfo, err := registryClient.ChainInfo(ctx, chainName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnknownChain, chainName, err.Error())
	}

	feeDenom, err := chainInfo.FeeDenom()
	if err != nil {
		return nil, err
	}

	grpcEndpoint, err := chainInfo.GrpcEndpoint()
	if err != nil {
		return nil, err
	}

	rpcEndpoint, err := chainInfo.RpcEndpoint()
	if err != nil {
		return nil, err
	}

	minGasPrice, err := chainInfo.MinGasFee()
	if err != nil {
		return nil, err
	}

	// Decimals come from the asset list's display unit. Chains that don't publish one
	// get the common six.
	decimals := 6
	assetList, err := registryClient.AssetList(ctx, chainName)
	if err == nil {
		if asset, assetErr := assetList.ExtractAssetByBaseSymbol(feeDenom); assetErr == nil {
			if denomUnit, unitErr := asset.ExtractDenomByUnit(asset.Display); unitErr == nil {
				decimals = denomUnit.Exponent
			}
		}
	} else {
		logger.Debug("no asset list for chain, assuming 6 decimals", "chain_name", chainName, "error", err.Error())
	}

	return &chains.ChainData{
		ChainName:     chainName,
		ChainID:       chainInfo.ChainID,
		AccountPrefix: chainInfo.Bech32Prefix,

		NativeToken:         feeDenom,
		NativeTokenDecimals: decimals,

		MinGasPrice: minGasPrice,

		GrpcUrl: grpcEndpoint,
		RpcUrl:  rpcEndpoint,
	}, nil
}

// NewSenderWithClient creates a Sender over an existing RPC client.
func NewSenderWithClient(
	chainData *chains.ChainData,
	rpcClient rpc.RpcClient,
	gasPrice float64,
	gasFactor float64,
	memo string,
	walletRegistry *wallet.Registry,
	logger *log.Logger,
) (*Sender, error) {
	if gasPrice <= 0 {
		gasPrice = chainData.MinGasPrice
	}

	gasPriceProvider, err := tx.NewInMemoryGasPriceProvider()
	if err != nil {
		return nil, err
	}

	gasManager, err := tx.NewGeometricGasManager(0.01, 0.5, gasPriceProvider, logger)
	if err != nil {
		return nil, err
	}

	err = gasManager.InitializeChain(chainData.ChainName, gasPrice, gasFactor)
	if err != nil {
		return nil, err
	}

	return &Sender{
		chain: chainData,

		walletRegistry: walletRegistry,
		rpcClient:      rpcClient,
		gasManager:     gasManager,
		txConfig:       authtx.NewTxConfig(cosmosutil.NewProtoCodec(), authtx.DefaultSignModes),

		memo: memo,

		logger: logger.ApplyPrefix(fmt.Sprintf("🚀 %s", chainData.ChainName)),
	}, nil
}

// Connect detects the named wallet, runs the connection approval, and derives the
// chain's bech32 address from the session public key.
func (s *Sender) Connect(ctx context.Context, walletName string) (*Connection, error) {
	provider, err := s.walletRegistry.Detect(walletName)
	if err != nil {
		return nil, err
	}

	session, err := provider.Connect(ctx)
	if err != nil {
		s.logger.Error("wallet connection failed", "wallet", walletName, "error", err.Error())
		return nil, err
	}

	address := provider.GetAddress(s.chain.AccountPrefix)
	s.logger.Info("🔗 wallet connected", "wallet", session.Wallet, "address", address)

	return &Connection{
		Wallet:  session.Wallet,
		Address: address,
	}, nil
}

// SendTransaction sends a single bank transfer. All failures, including panics from
// deep inside codec plumbing, come back inside the Result.
func (s *Sender) SendTransaction(ctx context.Context, walletName, toAddress string, amount sdk.Coin) (result *Result) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err := util.InterfaceToError(recovered)
			s.logger.Error("recovered from panic during send", "error", err.Error())
			result = &Result{Err: err}
		}
	}()

	result = s.send(ctx, walletName, []string{toAddress}, amount)
	return result
}

// SendToMany sends the same amount to every recipient, batching recipients into
// envelopes of at most batchSize messages. One Result is returned per envelope.
func (s *Sender) SendToMany(ctx context.Context, walletName string, recipients []string, amount sdk.Coin, batchSize int) ([]*Result, error) {
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	if batchSize < 1 {
		batchSize = 1
	}

	batches := arrays.Batch(recipients, batchSize)
	s.logger.Info("sending to many recipients", "num_recipients", len(recipients), "num_batches", len(batches))

	results := make([]*Result, 0, len(batches))
	for _, batch := range batches {
		result := func() (result *Result) {
			defer func() {
				if recovered := recover(); recovered != nil {
					err := util.InterfaceToError(recovered)
					s.logger.Error("recovered from panic during send", "error", err.Error())
					result = &Result{Err: err}
				}
			}()
			return s.send(ctx, walletName, batch, amount)
		}()
		results = append(results, result)
	}

	return results, nil
}

// TestTransaction probes the node's JSON-RPC endpoint without putting anything on
// chain.
func (s *Sender) TestTransaction(ctx context.Context) (*rpc.NodeInfo, error) {
	nodeInfo, err := s.rpcClient.ABCIInfo(ctx)
	if err != nil {
		s.logger.Error("connectivity probe failed", "error", err.Error())
		return nil, err
	}

	s.logger.Info("✅ node is reachable", "network", nodeInfo.Data, "version", nodeInfo.Version, "last_block_height", nodeInfo.LastBlockHeight)
	return nodeInfo, nil
}

// Balance fetches the wallet's native token balance, along with the denom's metadata
// when the chain publishes it. Missing metadata is not an error.
func (s *Sender) Balance(ctx context.Context, walletName string) (*sdk.Coin, *banktypes.Metadata, error) {
	provider, err := s.walletRegistry.Detect(walletName)
	if err != nil {
		return nil, nil, err
	}

	address := provider.GetAddress(s.chain.AccountPrefix)
	balance, err := s.rpcClient.GetBalance(ctx, address, s.chain.NativeToken)
	if err != nil {
		s.logger.Error("balance query failed", "address", address, "error", err.Error())
		return nil, nil, err
	}

	metadata, err := s.rpcClient.GetDenomMetadata(ctx, s.chain.NativeToken)
	if err != nil {
		s.logger.Debug("no metadata published for denom", "denom", s.chain.NativeToken, "error", err.Error())
		metadata = nil
	}

	s.logger.Info("💰 fetched balance", "address", address, "balance", balance.String())
	return balance, metadata, nil
}

// CheckWallet reports install and connection state for a wallet name.
func (s *Sender) CheckWallet(name string) *WalletStatus {
	provider, err := s.walletRegistry.Detect(name)
	if err != nil {
		return &WalletStatus{Wallet: name}
	}

	return &WalletStatus{
		Wallet:    name,
		Installed: true,
		Connected: provider.IsConnected(),
	}
}

func (s *Sender) send(ctx context.Context, walletName string, recipients []string, amount sdk.Coin) *Result {
	if amount.IsNil() || !amount.IsValid() || amount.IsZero() {
		return &Result{Err: ErrInvalidAmount}
	}

	for _, recipient := range recipients {
		if err := s.validateRecipient(recipient); err != nil {
			return &Result{Err: err}
		}
	}

	provider, err := s.walletRegistry.Detect(walletName)
	if err != nil {
		return &Result{Err: err}
	}

	fromAddress := provider.GetAddress(s.chain.AccountPrefix)
	messages := arrays.Map(recipients, func(recipient string) sdk.Msg {
		return &banktypes.MsgSend{
			FromAddress: fromAddress,
			ToAddress:   recipient,
			Amount:      sdk.NewCoins(amount),
		}
	})

	broadcaster, err := s.broadcasterForWallet(provider)
	if err != nil {
		return &Result{Err: err}
	}

	broadcastResult, err := broadcaster.SignAndBroadcast(ctx, messages)
	if err != nil {
		s.logger.Error("send failed before broadcast", "wallet", walletName, "error", err.Error())
		return &Result{Err: err}
	}

	return &Result{
		Success:   broadcastResult.IsSuccess(),
		TxHash:    broadcastResult.TxHash,
		Code:      broadcastResult.Code,
		Codespace: broadcastResult.Codespace,
		RawLog:    broadcastResult.Log,
	}
}

// broadcasterForWallet wires up the signing pipeline. MetaMask signs an EIP-191
// document; every other wallet signs canonical protobuf bytes.
func (s *Sender) broadcasterForWallet(provider wallet.Provider) (*tx.Broadcaster, error) {
	simulationManager, err := tx.NewSimulationManager(s.rpcClient, s.txConfig)
	if err != nil {
		return nil, err
	}

	var txProvider tx.TxProvider
	if provider.Name() == wallet.MetaMask {
		txProvider, err = tx.NewEip191TxProvider(provider, s.chain.ChainID, s.chain.NativeToken, s.memo, s.logger, simulationManager, s.txConfig)
	} else {
		txProvider, err = tx.NewTxProvider(provider, s.chain.ChainID, s.chain.NativeToken, s.memo, s.logger, simulationManager, s.txConfig)
	}
	if err != nil {
		return nil, err
	}

	signingMetadataProvider, err := tx.NewSigningMetadataProvider(s.chain.ChainID, s.rpcClient)
	if err != nil {
		return nil, err
	}

	return tx.NewBroadcaster(s.chain.ChainName, s.chain.AccountPrefix, provider, s.gasManager, s.logger, s.rpcClient, signingMetadataProvider, txProvider)
}

func (s *Sender) validateRecipient(recipient string) error {
	hrp, _, err := bech32.DecodeAndConvert(recipient)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecipient, recipient)
	}
	if hrp != s.chain.AccountPrefix {
		return fmt.Errorf("%w: expected prefix %s, got %s", ErrInvalidRecipient, s.chain.AccountPrefix, hrp)
	}
	return nil
}
