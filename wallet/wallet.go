package wallet

import (
	"context"

	"github.com/tessellated-io/walletbridge/crypto"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
)

// Well known wallet names, matching the globals the browser variants hang off of.
const (
	Phantom  = "phantom"
	Solflare = "solflare"
	MetaMask = "metamask"
	Local    = "local"
)

// ApprovalFunc is consulted when a wallet connection is requested. Returning an error
// models the user rejecting the connection prompt. A nil ApprovalFunc always approves.
type ApprovalFunc func(ctx context.Context, walletName string) error

// Session is the ephemeral state handed back by a successful connection. It lives only
// as long as the provider stays connected.
type Session struct {
	Wallet    string
	PublicKey cryptotypes.PubKey
}

// Provider models a wallet extension: it can be connected, disconnected, and once
// connected produces signatures over payload bytes. Signing semantics are provider
// specific: ed25519 wallets sign the raw payload, MetaMask signs the EIP-191 prefixed
// keccak digest.
type Provider interface {
	crypto.BytesSigner

	Name() string
	Connect(ctx context.Context) (*Session, error)
	Disconnect()
	IsConnected() bool
}

// approveConnection runs the approval hook, translating a rejection into the uniform error.
func approveConnection(ctx context.Context, approve ApprovalFunc, walletName string) error {
	if approve == nil {
		return nil
	}

	if err := approve(ctx, walletName); err != nil {
		return &RejectedError{Wallet: walletName, Reason: err}
	}
	return nil
}
