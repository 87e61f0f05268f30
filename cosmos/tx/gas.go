package tx

import (
	"sync"

	"github.com/tessellated-io/walletbridge/cosmos/rpc"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// GasManager interprets tx results and adjusts suggested gas prices. It never resends
// anything; it only changes what the next send will pay.
type GasManager interface {
	// InitializeChain seeds a price and factor for a chain. Re-initialization is a no-op.
	InitializeChain(chainName string, gasPrice float64, gasFactor float64) error

	// GetGasPrice returns the suggested gas price for the chain.
	GetGasPrice(chainName string) (float64, error)

	// GetGasFactor returns the simulation multiplier for the chain.
	GetGasFactor(chainName string) (float64, error)

	// ManageFailingBroadcastResult updates prices given a failed broadcast result.
	// Calling with a successful result is a no-op.
	ManageFailingBroadcastResult(chainName string, broadcastResult *rpc.BroadcastResult) error

	// ManageIncludedTransactionStatus updates prices once a transaction has settled on
	// chain, successfully or not.
	ManageIncludedTransactionStatus(chainName string, txStatus *txtypes.GetTxResponse) error
}

// GasPriceProvider is a simple KV store for gas prices and factors.
type GasPriceProvider interface {
	HasGasPrice(chainName string) (bool, error)
	GetGasPrice(chainName string) (float64, error)
	SetGasPrice(chainName string, gasPrice float64) error

	HasGasFactor(chainName string) (bool, error)
	GetGasFactor(chainName string) (float64, error)
	SetGasFactor(chainName string, gasFactor float64) error
}

// InMemoryGasPriceProvider stores gas prices in memory.
type InMemoryGasPriceProvider struct {
	prices  map[string]float64
	factors map[string]float64

	lock *sync.Mutex
}

var _ GasPriceProvider = (*InMemoryGasPriceProvider)(nil)

func NewInMemoryGasPriceProvider() (GasPriceProvider, error) {
	provider := &InMemoryGasPriceProvider{
		prices:  make(map[string]float64),
		factors: make(map[string]float64),

		lock: &sync.Mutex{},
	}
	return provider, nil
}

func (gp *InMemoryGasPriceProvider) HasGasPrice(chainName string) (bool, error) {
	gp.lock.Lock()
	defer gp.lock.Unlock()

	_, found := gp.prices[chainName]
	return found, nil
}

func (gp *InMemoryGasPriceProvider) GetGasPrice(chainName string) (float64, error) {
	gp.lock.Lock()
	defer gp.lock.Unlock()

	gasPrice, found := gp.prices[chainName]
	if !found {
		return 0, ErrNoGasPrice
	}

	return gasPrice, nil
}

func (gp *InMemoryGasPriceProvider) SetGasPrice(chainName string, gasPrice float64) error {
	gp.lock.Lock()
	defer gp.lock.Unlock()

	gp.prices[chainName] = gasPrice
	return nil
}

func (gp *InMemoryGasPriceProvider) HasGasFactor(chainName string) (bool, error) {
	gp.lock.Lock()
	defer gp.lock.Unlock()

	_, found := gp.factors[chainName]
	return found, nil
}

func (gp *InMemoryGasPriceProvider) GetGasFactor(chainName string) (float64, error) {
	gp.lock.Lock()
	defer gp.lock.Unlock()

	gasFactor, found := gp.factors[chainName]
	if !found {
		return 0, ErrNoGasFactor
	}

	return gasFactor, nil
}

func (gp *InMemoryGasPriceProvider) SetGasFactor(chainName string, gasFactor float64) error {
	gp.lock.Lock()
	defer gp.lock.Unlock()

	gp.factors[chainName] = gasFactor
	return nil
}

// IsGasRelatedError reports whether a codespace and code pair had to do with gas.
func IsGasRelatedError(codespace string, code uint32) bool {
	return IsGasPriceError(codespace, code) || isGasAmountError(codespace, code)
}

// IsGasPriceError reports whether the error is related to too small of a gas price.
func IsGasPriceError(codespace string, code uint32) bool {
	return (codespace == "sdk" && code == 13) || (codespace == "gaia" && code == 4)
}

// isGasAmountError reports whether the error is related to too few gas units.
func isGasAmountError(codespace string, code uint32) bool {
	return (codespace == "sdk" && code == 11)
}
