package transfer

// Result is the outcome of a single send attempt. A transaction that was assembled and
// submitted but rejected by the node carries the node's code and log; a failure before
// broadcast carries only Err.
type Result struct {
	Success bool

	TxHash    string
	Code      uint32
	Codespace string
	RawLog    string

	Err error
}

// WalletStatus reports whether a wallet is installed and currently connected.
type WalletStatus struct {
	Wallet    string
	Installed bool
	Connected bool
}

// Connection is the outcome of connecting a wallet: the session plus the bech32 address
// derived from the session's public key.
type Connection struct {
	Wallet  string
	Address string
}
