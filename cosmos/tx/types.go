package tx

type SimulationResult struct {
	GasRecommendation uint64
}

// SigningMetadata is the per-send account state fetched fresh from the chain before
// every transaction.
type SigningMetadata struct {
	address       string
	chainID       string
	accountNumber uint64
	sequence      uint64
}

func (sm *SigningMetadata) Address() string {
	return sm.address
}

func (sm *SigningMetadata) ChainID() string {
	return sm.chainID
}

func (sm *SigningMetadata) AccountNumber() uint64 {
	return sm.accountNumber
}

func (sm *SigningMetadata) Sequence() uint64 {
	return sm.sequence
}
