package tx

import "errors"

var (
	ErrNoGasPrice  = errors.New("no known gas price")
	ErrNoGasFactor = errors.New("no known gas factor")
	ErrNoMessages  = errors.New("no messages to sign")
	ErrTxNotFound  = errors.New("transaction not found on chain")
)
