package wallet

import (
	"context"

	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/tessellated-io/walletbridge/crypto"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
)

// localWallet is a soft wallet backed by a mnemonic derived key pair. Useful for
// scripting sends without any extension analog in the loop.
type localWallet struct {
	approve ApprovalFunc

	keyPair   *crypto.KeyPair
	connected bool
}

var _ Provider = (*localWallet)(nil)

// NewLocal creates a soft wallet from a BIP-39 mnemonic with the given coin type.
func NewLocal(mnemonic string, coinType uint32, approve ApprovalFunc) (Provider, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	return &localWallet{
		approve: approve,
		keyPair: crypto.NewKeyPairFromMnemonic(mnemonic, coinType),
	}, nil
}

// GenerateMnemonic produces a new 24 word mnemonic for a soft wallet.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func (w *localWallet) Name() string {
	return Local
}

func (w *localWallet) Connect(ctx context.Context) (*Session, error) {
	if err := approveConnection(ctx, w.approve, Local); err != nil {
		return nil, err
	}

	w.connected = true
	return &Session{
		Wallet:    Local,
		PublicKey: w.keyPair.GetPublicKey(),
	}, nil
}

func (w *localWallet) Disconnect() {
	w.connected = false
}

func (w *localWallet) IsConnected() bool {
	return w.connected
}

func (w *localWallet) GetAddress(prefix string) string {
	return w.keyPair.GetAddress(prefix)
}

func (w *localWallet) SignBytes(bytesToSign []byte) ([]byte, error) {
	if !w.connected {
		return nil, ErrNotConnected
	}
	return w.keyPair.SignBytes(bytesToSign)
}

func (w *localWallet) GetPublicKey() cryptotypes.PubKey {
	return w.keyPair.GetPublicKey()
}
