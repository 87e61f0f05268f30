package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func walletsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallets",
		Short: "List installed wallets",
		Long:  `List the wallets the current config can back with key material.`,
		RunE:  runWallets,
	}
}

func runWallets(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}

	for _, name := range registry.InstalledWallets() {
		marker := " "
		if name == cfg.Wallet {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, name)
	}

	return nil
}
