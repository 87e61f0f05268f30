package wallet

// NewSolflare creates a Solflare provider from a 32 byte seed. An empty seed generates
// a fresh key.
func NewSolflare(seed []byte, approve ApprovalFunc) Provider {
	return newEd25519Wallet(Solflare, seed, approve)
}
