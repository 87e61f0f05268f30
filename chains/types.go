package chains

type ChainData struct {
	ChainName     string
	ChainID       string
	AccountPrefix string

	GrpcUrl string
	RpcUrl  string

	NativeToken         string
	NativeTokenDecimals int

	MinGasPrice float64
}
