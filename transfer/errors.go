package transfer

import "errors"

var ErrUnknownChain = errors.New("unknown chain name")
var ErrInvalidAmount = errors.New("transfer amount must be a positive whole number of base units")
var ErrInvalidRecipient = errors.New("recipient is not a valid bech32 address for this chain")
var ErrNoRecipients = errors.New("no recipients given")
