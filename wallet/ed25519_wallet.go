package wallet

import (
	"context"

	"github.com/tessellated-io/walletbridge/crypto"

	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
)

// ed25519Wallet is the shared implementation behind the Solana-style wallets. Both
// Phantom and Solflare hold an ed25519 key and sign raw payload bytes, the way their
// signMessage APIs do. Addresses follow the truncated SHA-256 convention for ed25519
// keys on cosmos chains.
type ed25519Wallet struct {
	name    string
	approve ApprovalFunc

	privateKey *ed25519.PrivKey
	connected  bool
}

var _ Provider = (*ed25519Wallet)(nil)

func newEd25519Wallet(name string, seed []byte, approve ApprovalFunc) *ed25519Wallet {
	var privateKey *ed25519.PrivKey
	if len(seed) == 0 {
		privateKey = ed25519.GenPrivKey()
	} else {
		privateKey = ed25519.GenPrivKeyFromSecret(seed)
	}

	return &ed25519Wallet{
		name:    name,
		approve: approve,

		privateKey: privateKey,
	}
}

func (w *ed25519Wallet) Name() string {
	return w.name
}

func (w *ed25519Wallet) Connect(ctx context.Context) (*Session, error) {
	if err := approveConnection(ctx, w.approve, w.name); err != nil {
		return nil, err
	}

	w.connected = true
	return &Session{
		Wallet:    w.name,
		PublicKey: w.privateKey.PubKey(),
	}, nil
}

func (w *ed25519Wallet) Disconnect() {
	w.connected = false
}

func (w *ed25519Wallet) IsConnected() bool {
	return w.connected
}

func (w *ed25519Wallet) GetAddress(prefix string) string {
	encoded, _ := crypto.Bech32AddressForKey(w.privateKey.PubKey(), prefix)
	return encoded
}

func (w *ed25519Wallet) SignBytes(bytesToSign []byte) ([]byte, error) {
	if !w.connected {
		return nil, ErrNotConnected
	}
	return w.privateKey.Sign(bytesToSign)
}

func (w *ed25519Wallet) GetPublicKey() cryptotypes.PubKey {
	return w.privateKey.PubKey()
}
