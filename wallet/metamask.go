package wallet

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/tessellated-io/walletbridge/coding"
	"github.com/tessellated-io/walletbridge/crypto"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
)

// metaMaskWallet holds a secp256k1 key and signs the way personal_sign does: the
// payload is wrapped with the EIP-191 prefix, keccak-256 hashed, and signed. The
// recovery byte is stripped so the signature fits the 64 byte R||S layout cosmos
// verifiers expect.
type metaMaskWallet struct {
	approve ApprovalFunc

	privateKey *ecdsa.PrivateKey
	connected  bool
}

var _ Provider = (*metaMaskWallet)(nil)

// NewMetaMask creates a MetaMask provider with a freshly generated key.
func NewMetaMask(approve ApprovalFunc) (Provider, error) {
	privateKey, err := gethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	return &metaMaskWallet{
		approve:    approve,
		privateKey: privateKey,
	}, nil
}

// NewMetaMaskFromHex creates a MetaMask provider from a hex encoded private key, with
// or without a 0x prefix.
func NewMetaMaskFromHex(privateKeyHex string, approve ApprovalFunc) (Provider, error) {
	keyBytes, err := coding.DecodeHex(privateKeyHex)
	if err != nil {
		return nil, err
	}

	privateKey, err := gethcrypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, err
	}

	return &metaMaskWallet{
		approve:    approve,
		privateKey: privateKey,
	}, nil
}

func (w *metaMaskWallet) Name() string {
	return MetaMask
}

func (w *metaMaskWallet) Connect(ctx context.Context) (*Session, error) {
	if err := approveConnection(ctx, w.approve, MetaMask); err != nil {
		return nil, err
	}

	w.connected = true
	return &Session{
		Wallet:    MetaMask,
		PublicKey: w.GetPublicKey(),
	}, nil
}

func (w *metaMaskWallet) Disconnect() {
	w.connected = false
}

func (w *metaMaskWallet) IsConnected() bool {
	return w.connected
}

// GetAddress derives the eth-flavored bech32 address: keccak over the decompressed key.
func (w *metaMaskWallet) GetAddress(prefix string) string {
	compressed := gethcrypto.CompressPubkey(&w.privateKey.PublicKey)
	addressBytes, err := crypto.EthAddressBytes(compressed)
	if err != nil {
		return ""
	}

	encoded, _ := crypto.Bech32Address(addressBytes, prefix)
	return encoded
}

// EthAddress reports the familiar 0x address for display alongside the bech32 form.
func (w *metaMaskWallet) EthAddress() common.Address {
	return gethcrypto.PubkeyToAddress(w.privateKey.PublicKey)
}

func (w *metaMaskWallet) SignBytes(bytesToSign []byte) ([]byte, error) {
	if !w.connected {
		return nil, ErrNotConnected
	}

	digest := accounts.TextHash(bytesToSign)
	signature, err := gethcrypto.Sign(digest, w.privateKey)
	if err != nil {
		return nil, err
	}

	// Drop the recovery id
	return signature[:64], nil
}

func (w *metaMaskWallet) GetPublicKey() cryptotypes.PubKey {
	compressed := gethcrypto.CompressPubkey(&w.privateKey.PublicKey)
	return &secp256k1.PubKey{Key: compressed}
}
