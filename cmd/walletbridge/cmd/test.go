package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Probe the configured node without sending anything",
		Long:  `Query the node's abci_info endpoint to verify connectivity before sending.`,
		RunE:  runTest,
	}
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	sender, _, err := buildSender(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	nodeInfo, err := sender.TestTransaction(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("network:           %s\n", nodeInfo.Data)
	fmt.Printf("version:           %s\n", nodeInfo.Version)
	fmt.Printf("last block height: %s\n", nodeInfo.LastBlockHeight)

	return nil
}
