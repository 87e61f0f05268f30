package tx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellated-io/walletbridge/cosmos/rpc"
	"github.com/tessellated-io/walletbridge/cosmos/tx"
	"github.com/tessellated-io/walletbridge/log"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

func testLogger() *log.Logger {
	return log.NewWriterLogger("error", &bytes.Buffer{}, []string{})
}

func TestInMemoryGasPriceProvider(t *testing.T) {
	provider, err := tx.NewInMemoryGasPriceProvider()
	require.NoError(t, err)

	_, err = provider.GetGasPrice("nolustestnet")
	assert.ErrorIs(t, err, tx.ErrNoGasPrice)

	_, err = provider.GetGasFactor("nolustestnet")
	assert.ErrorIs(t, err, tx.ErrNoGasFactor)

	require.NoError(t, provider.SetGasPrice("nolustestnet", 0.025))
	require.NoError(t, provider.SetGasFactor("nolustestnet", 1.2))

	price, err := provider.GetGasPrice("nolustestnet")
	require.NoError(t, err)
	assert.Equal(t, 0.025, price)

	factor, err := provider.GetGasFactor("nolustestnet")
	require.NoError(t, err)
	assert.Equal(t, 1.2, factor)

	hasPrice, err := provider.HasGasPrice("nolustestnet")
	require.NoError(t, err)
	assert.True(t, hasPrice)

	hasPrice, err = provider.HasGasPrice("neutrontestnet")
	require.NoError(t, err)
	assert.False(t, hasPrice)
}

func TestGeometricGasManager_RejectsBadScaleFactor(t *testing.T) {
	provider, err := tx.NewInMemoryGasPriceProvider()
	require.NoError(t, err)

	_, err = tx.NewGeometricGasManager(0.001, 1.5, provider, testLogger())
	assert.Error(t, err)
}

func TestGeometricGasManager_UninitializedDefaults(t *testing.T) {
	provider, err := tx.NewInMemoryGasPriceProvider()
	require.NoError(t, err)

	manager, err := tx.NewGeometricGasManager(0.001, 0.5, provider, testLogger())
	require.NoError(t, err)

	price, err := manager.GetGasPrice("unknown-chain")
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)

	factor, err := manager.GetGasFactor("unknown-chain")
	require.NoError(t, err)
	assert.Equal(t, 1.2, factor)
}

func TestGeometricGasManager_InitializeIsIdempotent(t *testing.T) {
	provider, err := tx.NewInMemoryGasPriceProvider()
	require.NoError(t, err)

	manager, err := tx.NewGeometricGasManager(0.001, 0.5, provider, testLogger())
	require.NoError(t, err)

	require.NoError(t, manager.InitializeChain("pion-1", 0.02, 1.3))
	require.NoError(t, manager.InitializeChain("pion-1", 99.0, 9.0))

	price, err := manager.GetGasPrice("pion-1")
	require.NoError(t, err)
	assert.Equal(t, 0.02, price)
}

func TestGeometricGasManager_RaisesPriceOnGasFailure(t *testing.T) {
	provider, err := tx.NewInMemoryGasPriceProvider()
	require.NoError(t, err)

	manager, err := tx.NewGeometricGasManager(0.001, 0.5, provider, testLogger())
	require.NoError(t, err)
	require.NoError(t, manager.InitializeChain("pion-1", 0.02, 1.2))

	failing := &rpc.BroadcastResult{Code: 13, Codespace: "sdk", Log: "insufficient fees"}
	require.NoError(t, manager.ManageFailingBroadcastResult("pion-1", failing))

	raised, err := manager.GetGasPrice("pion-1")
	require.NoError(t, err)
	assert.Greater(t, raised, 0.02)

	// A second consecutive failure raises by a larger step.
	require.NoError(t, manager.ManageFailingBroadcastResult("pion-1", failing))
	raisedAgain, err := manager.GetGasPrice("pion-1")
	require.NoError(t, err)
	assert.Greater(t, raisedAgain-raised, raised-0.02)
}

func TestGeometricGasManager_IgnoresNonGasFailures(t *testing.T) {
	provider, err := tx.NewInMemoryGasPriceProvider()
	require.NoError(t, err)

	manager, err := tx.NewGeometricGasManager(0.001, 0.5, provider, testLogger())
	require.NoError(t, err)
	require.NoError(t, manager.InitializeChain("pion-1", 0.02, 1.2))

	failing := &rpc.BroadcastResult{Code: 5, Codespace: "sdk", Log: "insufficient funds"}
	require.NoError(t, manager.ManageFailingBroadcastResult("pion-1", failing))

	price, err := manager.GetGasPrice("pion-1")
	require.NoError(t, err)
	assert.Equal(t, 0.02, price)
}

func TestGeometricGasManager_LowersPriceAfterSuccessStreak(t *testing.T) {
	provider, err := tx.NewInMemoryGasPriceProvider()
	require.NoError(t, err)

	manager, err := tx.NewGeometricGasManager(0.001, 0.5, provider, testLogger())
	require.NoError(t, err)
	require.NoError(t, manager.InitializeChain("pion-1", 0.02, 1.2))

	success := &txtypes.GetTxResponse{TxResponse: &sdk.TxResponse{Code: 0}}
	for i := 0; i < 5; i++ {
		require.NoError(t, manager.ManageIncludedTransactionStatus("pion-1", success))
	}

	lowered, err := manager.GetGasPrice("pion-1")
	require.NoError(t, err)
	assert.InDelta(t, 0.019, lowered, 1e-9)
}

func TestIsGasRelatedError(t *testing.T) {
	cases := []struct {
		codespace string
		code      uint32
		expected  bool
	}{
		{"sdk", 13, true},
		{"sdk", 11, true},
		{"gaia", 4, true},
		{"sdk", 5, false},
		{"wasm", 13, false},
		{"", 0, false},
	}

	for _, testCase := range cases {
		assert.Equal(t, testCase.expected, tx.IsGasRelatedError(testCase.codespace, testCase.code), "codespace=%s code=%d", testCase.codespace, testCase.code)
	}
}
