package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessellated-io/walletbridge/chains"
	"github.com/tessellated-io/walletbridge/coding"
	"github.com/tessellated-io/walletbridge/config"
	"github.com/tessellated-io/walletbridge/cosmos/registry"
	"github.com/tessellated-io/walletbridge/log"
	"github.com/tessellated-io/walletbridge/transfer"
	"github.com/tessellated-io/walletbridge/util"
	"github.com/tessellated-io/walletbridge/wallet"
)

const (
	defaultConfigDirectory = "~/.walletbridge"
	defaultConfigFile      = "~/.walletbridge/config.yml"
)

var configFile string

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "walletbridge",
		Short: "Send wallet-signed bank transfers on Cosmos chains",
		Long: `walletbridge connects a wallet, derives the chain address from its public key,
and sends bank transfers signed by that wallet.

Wallets mirror their browser extension counterparts: phantom and solflare hold
ed25519 keys and sign raw payloads, metamask holds a secp256k1 key and signs
EIP-191 personal messages, and local is a soft wallet from a BIP-39 mnemonic.

Run 'walletbridge init' to write a starter config.`,
		SilenceUsage: true,
	}

	root.AddCommand(initCmd())
	root.AddCommand(walletsCmd())
	root.AddCommand(connectCmd())
	root.AddCommand(sendCmd())
	root.AddCommand(balanceCmd())
	root.AddCommand(testCmd())
	root.AddCommand(keygenCmd())

	root.PersistentFlags().StringVar(&configFile, "config", defaultConfigFile, "path to the config file")

	return root
}

// Execute runs the CLI, converting panics from deep inside sdk plumbing into errors.
func Execute() (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = util.InterfaceToError(recovered)
			fmt.Printf("fatal: %v\n", err)
		}
	}()

	return rootCmd().Execute()
}

// loadConfigAndLogger reads the config file and builds a logger at its level.
func loadConfigAndLogger() (*config.Config, *log.Logger, error) {
	cfg, err := config.GetConfig(configFile)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log.NewLogger(cfg.LogLevel), nil
}

// buildRegistry installs every wallet the config can back with key material.
func buildRegistry(cfg *config.Config, logger *log.Logger) (*wallet.Registry, error) {
	registry := wallet.NewRegistry(logger)

	var seed []byte
	if cfg.WalletSeedHex != "" {
		var err error
		seed, err = coding.DecodeHex(cfg.WalletSeedHex)
		if err != nil {
			return nil, fmt.Errorf("bad wallet_seed_hex: %w", err)
		}
	}
	registry.Install(wallet.NewPhantom(seed, nil))
	registry.Install(wallet.NewSolflare(seed, nil))

	var metaMask wallet.Provider
	var err error
	if cfg.EthPrivateKeyHex != "" {
		metaMask, err = wallet.NewMetaMaskFromHex(cfg.EthPrivateKeyHex, nil)
	} else {
		metaMask, err = wallet.NewMetaMask(nil)
	}
	if err != nil {
		return nil, err
	}
	registry.Install(metaMask)

	if cfg.Mnemonic != "" {
		local, err := wallet.NewLocal(cfg.Mnemonic, 118, nil)
		if err != nil {
			return nil, err
		}
		registry.Install(local)
	}

	return registry, nil
}

// buildSender dials the configured chain and wires the full transfer pipeline.
func buildSender(ctx context.Context, cfg *config.Config, logger *log.Logger) (*transfer.Sender, *wallet.Registry, error) {
	walletRegistry, err := buildRegistry(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	sender, err := transfer.NewSender(
		ctx,
		cfg.ChainName,
		cfg.GrpcEndpoint,
		cfg.RpcEndpoint,
		cfg.GasPrice,
		cfg.GasFactor,
		cfg.Memo,
		walletRegistry,
		logger,
	)
	if err != nil {
		return nil, nil, err
	}

	return sender, walletRegistry, nil
}

// chainDataForConfig resolves the configured chain, falling back to the hosted chain
// registry for names outside the known set.
func chainDataForConfig(ctx context.Context, cfg *config.Config, logger *log.Logger) (*chains.ChainData, error) {
	registryClient := registry.NewChainRegistryClient(logger, transfer.DefaultChainRegistryBaseUrl, 3, 500*time.Millisecond)
	return transfer.ResolveChainData(ctx, cfg.ChainName, registryClient, logger)
}
