package crypto

import (
	"crypto/sha256"

	btcec "github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"golang.org/x/crypto/sha3"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// Account addresses are 20 bytes on every chain this library talks to.
const addressLength = 20

// Hash160AddressBytes derives address bytes for a secp256k1 key the cosmos way:
// RIPEMD-160 over SHA-256 of the compressed public key.
func Hash160AddressBytes(compressedPublicKey []byte) []byte {
	return btcutil.Hash160(compressedPublicKey)
}

// TruncatedSha256AddressBytes derives address bytes for an ed25519 key: the first 20
// bytes of SHA-256 of the public key.
func TruncatedSha256AddressBytes(publicKey []byte) []byte {
	sum := sha256.Sum256(publicKey)
	return sum[:addressLength]
}

// EthAddressBytes derives eth-style address bytes from a compressed secp256k1 public
// key: keccak-256 over the decompressed key, keeping the trailing 20 bytes.
func EthAddressBytes(compressedPublicKey []byte) ([]byte, error) {
	parsed, err := btcec.ParsePubKey(compressedPublicKey)
	if err != nil {
		return nil, err
	}
	decompressed := parsed.SerializeUncompressed()

	hash := sha3.NewLegacyKeccak256()
	hash.Write(decompressed[1:]) // Remove the prefix byte from the uncompressed public key
	return hash.Sum(nil)[12:], nil
}

// Bech32Address encodes raw address bytes with a chain specific prefix.
func Bech32Address(addressBytes []byte, prefix string) (string, error) {
	return bech32.ConvertAndEncode(prefix, addressBytes)
}

// Bech32AddressForKey derives the conventional address for a cosmos key type. The SDK
// key types already encode the per-algorithm convention: hash160 for secp256k1,
// truncated SHA-256 for ed25519.
func Bech32AddressForKey(publicKey cryptotypes.PubKey, prefix string) (string, error) {
	return bech32.ConvertAndEncode(prefix, publicKey.Address())
}
