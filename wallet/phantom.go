package wallet

// NewPhantom creates a Phantom provider from a 32 byte seed. An empty seed generates a
// fresh key.
func NewPhantom(seed []byte, approve ApprovalFunc) Provider {
	return newEd25519Wallet(Phantom, seed, approve)
}
