package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tessellated-io/walletbridge/config"
	"github.com/tessellated-io/walletbridge/log"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented starter config",
		Long: `Write a commented starter config to the config path.

Existing config files are never overwritten.`,
		Example: `# Write the default config to ~/.walletbridge/config.yml
walletbridge init

# Write to a custom location
walletbridge init --config /tmp/walletbridge.yml`,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := log.Default()
	return config.WriteDefaultConfig(defaultConfigDirectory, configFile, logger)
}
