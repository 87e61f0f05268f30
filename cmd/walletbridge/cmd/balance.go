package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [wallet]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Show a wallet's native token balance",
		Long: `Connect a wallet and query its native token balance on the configured chain.
With no argument, the config's wallet is used.`,
		Example: `# Balance of the configured wallet
walletbridge balance

# Balance of metamask's address
walletbridge balance metamask`,
		RunE: runBalance,
	}
}

func runBalance(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	walletName := cfg.Wallet
	if len(args) == 1 {
		walletName = args[0]
	}

	sender, registry, err := buildSender(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	provider, err := registry.Detect(walletName)
	if err != nil {
		return err
	}
	if _, err = provider.Connect(cmd.Context()); err != nil {
		return err
	}

	balance, metadata, err := sender.Balance(cmd.Context(), walletName)
	if err != nil {
		return err
	}

	fmt.Printf("balance: %s\n", balance.String())
	if metadata != nil && metadata.Display != "" {
		fmt.Printf("display: %s\n", metadata.Display)
	}

	return nil
}
