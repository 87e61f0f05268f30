package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/tessellated-io/walletbridge/log"
)

// Config is the on-disk configuration for walletbridge.
type Config struct {
	LogLevel string `yaml:"log_level" comment:"Log level for output. One of: debug, info, warn, error."`

	ChainName string `yaml:"chain_name" comment:"Chain to send on. Known names: nolustestnet, nolus, neutrontestnet, neutron. Endpoint overrides below take precedence."`

	GrpcEndpoint string `yaml:"grpc_endpoint" comment:"Optional gRPC endpoint override for account queries and simulation. Leave blank to use the known endpoint for the chain."`
	RpcEndpoint  string `yaml:"rpc_endpoint" comment:"Optional CometBFT JSON-RPC endpoint override for broadcasting. Leave blank to use the known endpoint for the chain."`

	Wallet string `yaml:"wallet" comment:"Wallet used to sign. One of: phantom, solflare, metamask, local. The local wallet requires a mnemonic; generate one with 'walletbridge keygen'."`

	Mnemonic         string `yaml:"mnemonic" comment:"BIP-39 mnemonic for the local wallet. Required when wallet is 'local'."`
	WalletSeedHex    string `yaml:"wallet_seed_hex" comment:"Optional hex seed for phantom/solflare key derivation. Leave blank for an ephemeral key."`
	EthPrivateKeyHex string `yaml:"eth_private_key_hex" comment:"Optional hex secp256k1 private key for metamask. Leave blank for an ephemeral key."`

	GasPrice  float64 `yaml:"gas_price" comment:"Starting gas price, denominated in the chain's fee token. Zero uses the chain's known minimum."`
	GasFactor float64 `yaml:"gas_factor" comment:"Multiplier applied to simulated gas. 1.2 gives 20% headroom."`

	Memo string `yaml:"memo" comment:"Memo attached to every transaction."`
}

// NewDefaultConfig returns a config pointed at the Nolus testnet. The default wallet
// is phantom because it needs no key material in the config.
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: "info",

		ChainName: "nolustestnet",

		Wallet: "phantom",

		GasPrice:  0.025,
		GasFactor: 1.2,

		Memo: "",
	}
}

// GetConfig loads and validates a config file.
func GetConfig(filename string) (*Config, error) {
	expanded, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// WriteDefaultConfig writes a commented default config, creating the directory if
// needed. Existing files are never overwritten.
func WriteDefaultConfig(configurationDirectory, filename string, logger *log.Logger) error {
	if err := CreateDirectoryIfNeeded(configurationDirectory, logger); err != nil {
		return err
	}

	header := "Configuration for walletbridge"
	return WriteYamlWithComments(NewDefaultConfig(), header, filename, logger)
}

func (c *Config) Validate() error {
	if c.ChainName == "" {
		return fmt.Errorf("config: chain_name is required")
	}

	if c.Wallet == "" {
		return fmt.Errorf("config: wallet is required")
	}

	if c.Wallet == "local" && c.Mnemonic == "" {
		return fmt.Errorf("config: wallet 'local' requires a mnemonic; generate one with 'walletbridge keygen'")
	}

	if c.GasFactor < 1.0 {
		return fmt.Errorf("config: gas_factor must be at least 1.0, got %f", c.GasFactor)
	}

	if c.GasPrice < 0 {
		return fmt.Errorf("config: gas_price must not be negative, got %f", c.GasPrice)
	}

	return nil
}
