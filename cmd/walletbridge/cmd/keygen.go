package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessellated-io/walletbridge/chains"
	"github.com/tessellated-io/walletbridge/crypto"
	"github.com/tessellated-io/walletbridge/wallet"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a mnemonic for the local wallet",
		Long: `Generate a 24 word BIP-39 mnemonic for the local wallet and print the
addresses it derives on the known chains. Put the mnemonic in the config's
'mnemonic' field to install the local wallet.`,
		RunE: runKeygen,
	}
}

func runKeygen(cmd *cobra.Command, args []string) error {
	mnemonic, err := wallet.GenerateMnemonic()
	if err != nil {
		return err
	}

	fmt.Printf("mnemonic: %s\n\n", mnemonic)

	keyPair := crypto.NewCosmosKeyPairFromMnemonic(mnemonic)
	seen := map[string]bool{}
	for _, chainData := range chains.NewOfflineChainRegistry().ChainNameToData {
		if seen[chainData.AccountPrefix] {
			continue
		}
		seen[chainData.AccountPrefix] = true
		fmt.Printf("%s address: %s\n", chainData.AccountPrefix, keyPair.GetAddress(chainData.AccountPrefix))
	}

	return nil
}
