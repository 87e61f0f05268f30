package crypto

import cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

// BytesSigner is anything that can produce a signature over raw bytes and report the
// key material needed to place that signature in a transaction. Wallet providers and
// soft key pairs both satisfy it.
type BytesSigner interface {
	GetAddress(prefix string) string
	SignBytes(bytesToSign []byte) ([]byte, error)
	GetPublicKey() cryptotypes.PubKey
}
