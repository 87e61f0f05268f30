package wallet

import (
	"errors"
	"fmt"
)

var (
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrNotConnected    = errors.New("wallet is not connected")
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

// RejectedError indicates the user (or the approval hook standing in for them) declined
// a connection request.
type RejectedError struct {
	Wallet string
	Reason error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("connection to %s rejected: %v", e.Wallet, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return e.Reason
}
