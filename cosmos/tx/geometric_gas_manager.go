package tx

import (
	"fmt"
	"math"
	"sync"

	"github.com/tessellated-io/walletbridge/cosmos/rpc"
	"github.com/tessellated-io/walletbridge/log"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// Gas factor to use when none is configured for a chain.
const defaultGasFactor = 1.2

// Gas manager that adjusts prices geometrically.
//
// Rough algorithm:
//   - Given some number of consecutive successes, decrement price by a step size.
//     Formula: price_new = price_old - step_size
//   - Given a failure, increase step sizes exponentially.
//     Formula: price_new = price_old + (step_size * (1 + scale_factor)^(consecutive_failures))
type geometricGasManager struct {
	// Parameters
	stepSize    float64
	scaleFactor float64

	// State
	consecutiveSuccesses map[string]int
	consecutiveFailures  map[string]int
	lock                 *sync.Mutex

	// Core Services
	gasPriceProvider GasPriceProvider
	logger           *log.Logger
}

var _ GasManager = (*geometricGasManager)(nil)

func NewGeometricGasManager(
	stepSize float64,
	scaleFactor float64,
	gasPriceProvider GasPriceProvider,
	logger *log.Logger,
) (GasManager, error) {
	if scaleFactor < 0 || scaleFactor >= 1 {
		return nil, fmt.Errorf("invalid scale factor: %f. Must conform to: 0 <= scale_factor < 1", scaleFactor)
	}
	gasLogger := logger.ApplyPrefix("⛽️ ")

	gasManager := &geometricGasManager{
		stepSize:    stepSize,
		scaleFactor: scaleFactor,

		consecutiveSuccesses: make(map[string]int),
		consecutiveFailures:  make(map[string]int),
		lock:                 &sync.Mutex{},

		gasPriceProvider: gasPriceProvider,
		logger:           gasLogger,
	}

	return gasManager, nil
}

// InitializeChain seeds a price and factor. If already initialized, this is a no-op.
func (g *geometricGasManager) InitializeChain(chainName string, gasPrice float64, gasFactor float64) error {
	hasPrice, err := g.gasPriceProvider.HasGasPrice(chainName)
	if err != nil {
		return err
	}

	if hasPrice {
		g.logger.Warn("requested initialization of previously initialized chain. this is a no-op.", "chain_name", chainName)
		return nil
	}

	if err := g.gasPriceProvider.SetGasPrice(chainName, gasPrice); err != nil {
		return err
	}
	return g.gasPriceProvider.SetGasFactor(chainName, gasFactor)
}

func (g *geometricGasManager) GetGasPrice(chainName string) (float64, error) {
	gasPrice, err := g.gasPriceProvider.GetGasPrice(chainName)
	if err == ErrNoGasPrice {
		g.logger.Warn("no price found for chain, setting gas to be zero", "chain_name", chainName)
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return gasPrice, nil
}

func (g *geometricGasManager) GetGasFactor(chainName string) (float64, error) {
	gasFactor, err := g.gasPriceProvider.GetGasFactor(chainName)
	if err == ErrNoGasFactor {
		g.logger.Warn("no gas factor found for chain, using default", "chain_name", chainName, "default", defaultGasFactor)
		return defaultGasFactor, nil
	} else if err != nil {
		return 0, err
	}
	return gasFactor, nil
}

// Feedback methods
//
// Call exactly one of these after you know whether the last provided gas price was
// high enough: either after a broadcast that failed, or after the transaction settled.

func (g *geometricGasManager) ManageFailingBroadcastResult(chainName string, broadcastResult *rpc.BroadcastResult) error {
	if broadcastResult == nil {
		return fmt.Errorf("received nil broadcast result")
	}

	if broadcastResult.IsSuccess() {
		// Nothing to learn yet, wait for the settled status.
		return nil
	}

	if IsGasRelatedError(broadcastResult.Codespace, broadcastResult.Code) {
		return g.trackFailure(chainName)
	}
	return nil
}

func (g *geometricGasManager) ManageIncludedTransactionStatus(chainName string, txStatus *txtypes.GetTxResponse) error {
	if txStatus == nil || txStatus.TxResponse == nil {
		return fmt.Errorf("received nil tx status")
	}

	code := txStatus.TxResponse.Code
	codespace := txStatus.TxResponse.Codespace

	if code == 0 {
		return g.trackSuccess(chainName)
	}
	if IsGasRelatedError(codespace, code) {
		return g.trackFailure(chainName)
	}
	return nil
}

// Helpers - state tracking

func (g *geometricGasManager) trackFailure(chainName string) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.consecutiveSuccesses[chainName] = 0
	g.consecutiveFailures[chainName]++

	return g.adjustPrice(chainName)
}

func (g *geometricGasManager) trackSuccess(chainName string) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.consecutiveSuccesses[chainName]++
	g.consecutiveFailures[chainName] = 0

	return g.adjustPrice(chainName)
}

// Helpers - price adjustment

func (g *geometricGasManager) adjustPrice(chainName string) error {
	successes := g.consecutiveSuccesses[chainName]
	failures := g.consecutiveFailures[chainName]

	// Do nothing if we don't have a failure or a long enough run of successes
	if failures == 0 && successes < 5 {
		return nil
	}

	oldPrice, err := g.gasPriceProvider.GetGasPrice(chainName)
	if err != nil {
		return err
	}

	newPrice := oldPrice
	if failures > 0 {
		// Failures increasing. Scale price up according to consecutive failures
		scaledStepSize := g.stepSize * math.Pow((1+g.scaleFactor), float64(failures))
		newPrice = oldPrice + scaledStepSize
	} else {
		// Successes increasing, test a decrease of one step
		newPrice = oldPrice - g.stepSize
		if newPrice < 0 {
			newPrice = 0
		}
		g.consecutiveSuccesses[chainName] = 0
	}

	err = g.gasPriceProvider.SetGasPrice(chainName, newPrice)
	if err != nil {
		return err
	}

	g.logger.Info("adjusted gas price in response to feedback", "chain_name", chainName, "old_gas_price", oldPrice, "new_gas_price", newPrice, "consecutive_successes", successes, "consecutive_failures", failures)
	return nil
}
