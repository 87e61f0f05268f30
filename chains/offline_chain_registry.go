package chains

// OfflineChainRegistry provides chain data for the networks this library sends on,
// without requiring a round trip to a hosted registry. Entries cover the testnets the
// wallet flows target plus their mainnets.
type OfflineChainRegistry struct {
	ChainIDToData       map[string]*ChainData
	ChainNameToData     map[string]*ChainData
	AccountPrefixToData map[string]*ChainData
}

func NewOfflineChainRegistry() *OfflineChainRegistry {
	chainRegistry := &OfflineChainRegistry{
		ChainIDToData:       make(map[string]*ChainData),
		ChainNameToData:     make(map[string]*ChainData),
		AccountPrefixToData: make(map[string]*ChainData),
	}

	chainRegistry.addToRegistry("nolustestnet", "rila-3", "nolus", "unls", 6, 0.025, "rila-net.nolus.io:9090", "https://rila-net.nolus.io:26657")
	chainRegistry.addToRegistry("nolus", "pirin-1", "nolus", "unls", 6, 0.025, "pirin-cl.nolus.network:9090", "https://pirin-cl.nolus.network:26657")
	chainRegistry.addToRegistry("neutrontestnet", "pion-1", "neutron", "untrn", 6, 0.02, "grpc-falcron.pion-1.ntrn.tech:80", "https://rpc-falcron.pion-1.ntrn.tech")
	chainRegistry.addToRegistry("neutron", "neutron-1", "neutron", "untrn", 6, 0.0053, "grpc-kralum.neutron-1.neutron.org:80", "https://rpc-kralum.neutron-1.neutron.org")

	return chainRegistry
}

func (cr *OfflineChainRegistry) addToRegistry(
	chainName string,
	chainID string,
	accountPrefix string,
	nativeToken string,
	nativeTokenDecimals int,
	minGasPrice float64,
	grpcUrl string,
	rpcUrl string,
) {
	chainData := &ChainData{
		ChainID:       chainID,
		ChainName:     chainName,
		AccountPrefix: accountPrefix,

		NativeToken:         nativeToken,
		NativeTokenDecimals: nativeTokenDecimals,

		MinGasPrice: minGasPrice,

		GrpcUrl: grpcUrl,
		RpcUrl:  rpcUrl,
	}

	cr.ChainNameToData[chainName] = chainData
	cr.ChainIDToData[chainID] = chainData
	cr.AccountPrefixToData[accountPrefix] = chainData
}
