package tx

import (
	"context"

	"github.com/tessellated-io/walletbridge/crypto"
	"github.com/tessellated-io/walletbridge/log"

	"github.com/cosmos/cosmos-sdk/client"
	cosmostx "github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
)

// TxProvider assembles, signs and encodes a transaction envelope. Implementations
// differ only in the signing payload: canonical protobuf bytes (SIGN_MODE_DIRECT) or a
// hand-serialized JSON document (EIP-191).
type TxProvider interface {
	// ProvideTx returns signed transaction bytes and the gas limit that was set.
	ProvideTx(ctx context.Context, gasPrice float64, gasFactor float64, messages []sdk.Msg, metadata *SigningMetadata) ([]byte, uint64, error)
}

// directTxProvider signs canonical protobuf sign bytes.
type directTxProvider struct {
	bytesSigner crypto.BytesSigner
	feeDenom    string
	memo        string

	logger            *log.Logger
	simulationManager SimulationManager

	txConfig  client.TxConfig
	txFactory cosmostx.Factory
}

var _ TxProvider = (*directTxProvider)(nil)

func NewTxProvider(
	bytesSigner crypto.BytesSigner,
	chainID string,
	feeDenom string,
	memo string,
	logger *log.Logger,
	simulationManager SimulationManager,
	txConfig client.TxConfig,
) (TxProvider, error) {
	txFactory := cosmostx.Factory{}.WithChainID(chainID).WithTxConfig(txConfig)

	return &directTxProvider{
		bytesSigner: bytesSigner,
		feeDenom:    feeDenom,
		memo:        memo,

		logger:            logger,
		simulationManager: simulationManager,

		txConfig:  txConfig,
		txFactory: txFactory,
	}, nil
}

func (txp *directTxProvider) ProvideTx(ctx context.Context, gasPrice float64, gasFactor float64, messages []sdk.Msg, metadata *SigningMetadata) ([]byte, uint64, error) {
	if len(messages) == 0 {
		return nil, 0, ErrNoMessages
	}

	// Build a transaction
	txb, err := txp.txFactory.BuildUnsignedTx(messages...)
	if err != nil {
		return nil, 0, err
	}
	txb.SetMemo(txp.memo)

	// A placeholder signature with the right sequence must be present for simulation.
	signatureProto := signing.SignatureV2{
		PubKey: txp.bytesSigner.GetPublicKey(),
		Data: &signing.SingleSignatureData{
			SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
			Signature: nil,
		},
		Sequence: metadata.Sequence(),
	}
	err = txb.SetSignatures(signatureProto)
	if err != nil {
		return nil, 0, err
	}

	// Simulate the tx
	simulationResult, err := txp.simulationManager.SimulateTx(ctx, txb.GetTx(), gasFactor)
	if err != nil {
		return nil, 0, err
	}
	gasLimit := simulationResult.GasRecommendation
	txp.logger.Debug("simulated gas", "gas_units", gasLimit)
	txb.SetGasLimit(gasLimit)

	fee := feeFromGas(gasPrice, gasLimit, txp.feeDenom)
	txb.SetFeeAmount(fee)

	// Shim metadata into the format the SDK wants
	signerData := authsigning.SignerData{
		ChainID:       metadata.ChainID(),
		Sequence:      metadata.Sequence(),
		AccountNumber: metadata.AccountNumber(),
	}

	// Encode to bytes to sign
	signMode := signing.SignMode_SIGN_MODE_DIRECT
	unsignedTxBytes, err := txp.txConfig.SignModeHandler().GetSignBytes(signMode, signerData, txb.GetTx())
	if err != nil {
		return nil, 0, err
	}

	// Sign the bytes
	signatureBytes, err := txp.bytesSigner.SignBytes(unsignedTxBytes)
	if err != nil {
		return nil, 0, err
	}

	// Reconstruct the signature proto
	signatureData := &signing.SingleSignatureData{
		SignMode:  signMode,
		Signature: signatureBytes,
	}
	signatureProto = signing.SignatureV2{
		PubKey:   txp.bytesSigner.GetPublicKey(),
		Data:     signatureData,
		Sequence: metadata.Sequence(),
	}
	err = txb.SetSignatures(signatureProto)
	if err != nil {
		return nil, 0, err
	}

	// Encode to bytes
	encoder := txp.txConfig.TxEncoder()
	signedTxBytes, err := encoder(txb.GetTx())
	if err != nil {
		return nil, 0, err
	}

	return signedTxBytes, gasLimit, nil
}

// feeFromGas computes the fee coins: ceil of price * limit, plus one to stay above the
// node's minimum when the product is exact.
func feeFromGas(gasPrice float64, gasLimit uint64, feeDenom string) []sdk.Coin {
	return []sdk.Coin{
		{
			Denom:  feeDenom,
			Amount: sdk.NewInt(int64(gasPrice*float64(gasLimit)) + 1),
		},
	}
}
