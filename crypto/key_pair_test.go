package crypto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/walletbridge/crypto"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestKeyPair_Deterministic(t *testing.T) {
	first := crypto.NewCosmosKeyPairFromMnemonic(testMnemonic)
	second := crypto.NewCosmosKeyPairFromMnemonic(testMnemonic)

	assert.Equal(t, first.GetAddress("cosmos"), second.GetAddress("cosmos"))
	assert.Equal(t, first.GetPublicKey().Bytes(), second.GetPublicKey().Bytes())
}

func TestKeyPair_CoinTypeChangesAddress(t *testing.T) {
	cosmosKey := crypto.NewKeyPairFromMnemonic(testMnemonic, 118)
	otherKey := crypto.NewKeyPairFromMnemonic(testMnemonic, 564)

	assert.NotEqual(t, cosmosKey.GetAddress("cosmos"), otherKey.GetAddress("cosmos"))
}

func TestKeyPair_AddressPrefix(t *testing.T) {
	keyPair := crypto.NewCosmosKeyPairFromMnemonic(testMnemonic)

	assert.True(t, strings.HasPrefix(keyPair.GetAddress("nolus"), "nolus1"))
	assert.True(t, strings.HasPrefix(keyPair.GetAddress("neutron"), "neutron1"))
}

func TestKeyPair_SignatureVerifies(t *testing.T) {
	keyPair := crypto.NewCosmosKeyPairFromMnemonic(testMnemonic)

	message := []byte("canonical sign doc bytes")
	signature, err := keyPair.SignBytes(message)
	require.NoError(t, err)

	assert.True(t, keyPair.GetPublicKey().VerifySignature(message, signature))
}
