package rpc

// BroadcastResult is the interpreted outcome of a broadcast_tx_sync call. Code zero
// means the node's CheckTx accepted the transaction; anything else carries the
// codespace, code and log the chain returned.
type BroadcastResult struct {
	Code      uint32
	Codespace string
	TxHash    string
	Log       string
}

// IsSuccess reports whether CheckTx accepted the transaction.
func (br *BroadcastResult) IsSuccess() bool {
	return br.Code == 0
}

// NodeInfo is the abci_info response, used to probe node connectivity before sending.
type NodeInfo struct {
	Data            string
	Version         string
	LastBlockHeight string
}
