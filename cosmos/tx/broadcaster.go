package tx

import (
	"context"
	"errors"

	"github.com/tessellated-io/walletbridge/cosmos/rpc"
	"github.com/tessellated-io/walletbridge/crypto"
	"github.com/tessellated-io/walletbridge/log"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Broadcaster runs one sign-and-broadcast pass: fetch signing metadata, formulate and
// sign the envelope, submit it, and interpret the result code. Every run is
// all-or-nothing; there is no retry or inclusion polling.
type Broadcaster struct {
	chainName    string
	bech32Prefix string

	signer                  crypto.BytesSigner
	gasManager              GasManager
	logger                  *log.Logger
	rpcClient               rpc.RpcClient
	signingMetadataProvider *SigningMetadataProvider
	txProvider              TxProvider
}

func NewBroadcaster(
	chainName string,
	bech32Prefix string,
	signer crypto.BytesSigner,
	gasManager GasManager,
	logger *log.Logger,
	rpcClient rpc.RpcClient,
	signingMetadataProvider *SigningMetadataProvider,
	txProvider TxProvider,
) (*Broadcaster, error) {
	return &Broadcaster{
		chainName:    chainName,
		bech32Prefix: bech32Prefix,

		signer:                  signer,
		gasManager:              gasManager,
		logger:                  logger,
		rpcClient:               rpcClient,
		signingMetadataProvider: signingMetadataProvider,
		txProvider:              txProvider,
	}, nil
}

// SignAndBroadcast signs the messages and submits them, returning the interpreted
// broadcast result. A non-zero result code is returned as a result, not an error;
// transport failures are errors.
func (b *Broadcaster) SignAndBroadcast(ctx context.Context, msgs []sdk.Msg) (*rpc.BroadcastResult, error) {
	logger := b.logger.With("chain_name", b.chainName)

	// Gas price and factor are needed to formulate the envelope
	gasPrice, err := b.gasManager.GetGasPrice(b.chainName)
	if err != nil {
		return nil, err
	}

	gasFactor, err := b.gasManager.GetGasFactor(b.chainName)
	if err != nil {
		return nil, err
	}

	// Fetch the signer's account state, fresh for every send
	senderAddress := b.signer.GetAddress(b.bech32Prefix)
	signingMetadata, err := b.signingMetadataProvider.SigningMetadataForAccount(ctx, senderAddress)
	if err != nil {
		return nil, err
	}
	logger.Debug("fetched signing metadata", "address", senderAddress, "account_number", signingMetadata.AccountNumber(), "sequence", signingMetadata.Sequence())

	// Formulate and sign the envelope
	signedTx, gasWanted, err := b.txProvider.ProvideTx(ctx, gasPrice, gasFactor, msgs, signingMetadata)
	if err != nil {
		return nil, err
	}

	// Submit
	result, err := b.rpcClient.Broadcast(ctx, signedTx)
	if err != nil {
		return nil, err
	}
	logger.Info("📣 attempted to broadcast transaction", "tx_hash", result.TxHash, "code", result.Code, "codespace", result.Codespace, "log", result.Log, "gas_price", gasPrice, "gas_wanted", gasWanted)

	// Let the gas manager learn from failures. Successful broadcasts settle later.
	if !result.IsSuccess() {
		gasManagementErr := b.gasManager.ManageFailingBroadcastResult(b.chainName, result)
		if gasManagementErr != nil {
			logger.Warn("failed to adjust gas due to broadcast result", "error", gasManagementErr)
		}
	}

	return result, nil
}

// CheckConfirmed makes a single query for a settled transaction. It returns
// ErrTxNotFound when the chain has not included the transaction, an error carrying the
// raw log when it settled with a non-zero code, and nil on success.
func (b *Broadcaster) CheckConfirmed(ctx context.Context, txHash string) error {
	logger := b.logger.With("chain_name", b.chainName, "tx_hash", txHash)

	txStatus, err := b.rpcClient.GetTxStatus(ctx, txHash)
	if err != nil {
		grpcErr, ok := status.FromError(err)
		if ok && grpcErr.Code() == codes.NotFound {
			logger.Debug("tx not included in chain")
			return ErrTxNotFound
		}

		logger.Debug("error querying tx status", "error", err.Error())
		return err
	}

	gasManagementErr := b.gasManager.ManageIncludedTransactionStatus(b.chainName, txStatus)
	if gasManagementErr != nil {
		logger.Warn("failed to adjust gas due to tx status", "error", gasManagementErr)
	}

	if txStatus.TxResponse.Code != 0 {
		logger.Error("transaction landed on chain but failed", "code", txStatus.TxResponse.Code, "codespace", txStatus.TxResponse.Codespace)
		return errors.New(txStatus.TxResponse.RawLog)
	}

	logger.Info("transaction sent and landed on chain, successfully.")
	return nil
}
