package tx

import (
	"context"

	"github.com/tessellated-io/walletbridge/cosmos/rpc"
)

// SigningMetadataProvider fetches the account number and sequence for an address. The
// sequence is never cached; the chain's next expected value is authoritative.
type SigningMetadataProvider struct {
	chainID string

	rpcClient rpc.RpcClient
}

func NewSigningMetadataProvider(chainID string, rpcClient rpc.RpcClient) (*SigningMetadataProvider, error) {
	return &SigningMetadataProvider{
		chainID: chainID,

		rpcClient: rpcClient,
	}, nil
}

func (smp *SigningMetadataProvider) SigningMetadataForAccount(ctx context.Context, address string) (*SigningMetadata, error) {
	account, err := smp.rpcClient.Account(ctx, address)
	if err != nil {
		return nil, err
	}

	return &SigningMetadata{
		address:       address,
		chainID:       smp.chainID,
		accountNumber: account.GetAccountNumber(),
		sequence:      account.GetSequence(),
	}, nil
}
