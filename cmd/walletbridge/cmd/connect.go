package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessellated-io/walletbridge/coding"
)

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect [wallet]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Connect a wallet and show its chain address",
		Long: `Connect a wallet and derive the configured chain's bech32 address from its
public key. With no argument, the config's wallet is used.`,
		Example: `# Connect the configured wallet
walletbridge connect

# Connect phantom explicitly
walletbridge connect phantom`,
		RunE: runConnect,
	}
}

func runConnect(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	walletName := cfg.Wallet
	if len(args) == 1 {
		walletName = args[0]
	}

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	chainData, err := chainDataForConfig(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	provider, err := registry.Detect(walletName)
	if err != nil {
		return err
	}

	session, err := provider.Connect(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("wallet:     %s\n", session.Wallet)
	fmt.Printf("chain:      %s (%s)\n", chainData.ChainName, chainData.ChainID)
	fmt.Printf("address:    %s\n", provider.GetAddress(chainData.AccountPrefix))
	fmt.Printf("public key: %s\n", coding.NormalizeBytesToHex(provider.GetPublicKey().Bytes()))

	return nil
}
