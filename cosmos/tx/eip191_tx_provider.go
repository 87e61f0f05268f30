package tx

import (
	"context"

	"github.com/tessellated-io/walletbridge/crypto"
	"github.com/tessellated-io/walletbridge/log"

	"github.com/cosmos/cosmos-sdk/client"
	cosmostx "github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	"github.com/cosmos/cosmos-sdk/x/auth/migrations/legacytx"
)

// eip191TxProvider signs a hand-serialized amino JSON document rather than protobuf
// sign bytes. The signer is expected to apply the EIP-191 personal-message prefix
// itself, the way MetaMask's personal_sign does. Works against chains that accept
// SIGN_MODE_EIP_191.
type eip191TxProvider struct {
	bytesSigner crypto.BytesSigner
	chainID     string
	feeDenom    string
	memo        string

	logger            *log.Logger
	simulationManager SimulationManager

	txConfig  client.TxConfig
	txFactory cosmostx.Factory
}

var _ TxProvider = (*eip191TxProvider)(nil)

func NewEip191TxProvider(
	bytesSigner crypto.BytesSigner,
	chainID string,
	feeDenom string,
	memo string,
	logger *log.Logger,
	simulationManager SimulationManager,
	txConfig client.TxConfig,
) (TxProvider, error) {
	txFactory := cosmostx.Factory{}.WithChainID(chainID).WithTxConfig(txConfig)

	return &eip191TxProvider{
		bytesSigner: bytesSigner,
		chainID:     chainID,
		feeDenom:    feeDenom,
		memo:        memo,

		logger:            logger,
		simulationManager: simulationManager,

		txConfig:  txConfig,
		txFactory: txFactory,
	}, nil
}

func (txp *eip191TxProvider) ProvideTx(ctx context.Context, gasPrice float64, gasFactor float64, messages []sdk.Msg, metadata *SigningMetadata) ([]byte, uint64, error) {
	if len(messages) == 0 {
		return nil, 0, ErrNoMessages
	}

	txb, err := txp.txFactory.BuildUnsignedTx(messages...)
	if err != nil {
		return nil, 0, err
	}
	txb.SetMemo(txp.memo)

	signatureProto := signing.SignatureV2{
		PubKey: txp.bytesSigner.GetPublicKey(),
		Data: &signing.SingleSignatureData{
			SignMode:  signing.SignMode_SIGN_MODE_EIP_191,
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

	// The signing payload is the legacy amino JSON document with sorted keys. The
	// wallet prefixes and hashes it; the chain's EIP-191 handler reconstructs the same
	// document to verify.
	stdFee := legacytx.StdFee{
		Amount: fee,
		Gas:    gasLimit,
	}
	signDocBytes := legacytx.StdSignBytes(
		txp.chainID,
		metadata.AccountNumber(),
		metadata.Sequence(),
		0,
		stdFee,
		messages,
		txp.memo,
		nil,
	)

	signatureBytes, err := txp.bytesSigner.SignBytes(signDocBytes)
	if err != nil {
		return nil, 0, err
	}

	signatureData := &signing.SingleSignatureData{
		SignMode:  signing.SignMode_SIGN_MODE_EIP_191,
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

	encoder := txp.txConfig.TxEncoder()
	signedTxBytes, err := encoder(txb.GetTx())
	if err != nil {
		return nil, 0, err
	}

	return signedTxBytes, gasLimit, nil
}
