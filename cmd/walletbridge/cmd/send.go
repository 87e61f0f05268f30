package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	sendWallet    string
	sendBatchSize int
)

func sendCmd() *cobra.Command {
	send := &cobra.Command{
		Use:   "send [amount] [recipient...]",
		Args:  cobra.MinimumNArgs(2),
		Short: "Send a bank transfer signed by a wallet",
		Long: `Send a bank transfer of the given amount to one or more recipients.

The amount is a coin string in base units, e.g. 2500unls. With multiple
recipients, messages are batched into envelopes of --batch-size sends each.
Each envelope is one attempt; nothing is retried.`,
		Example: `# Send 2500unls with the configured wallet
walletbridge send 2500unls nolus1w4cqh0d9c8tz9r2u3hq7x5s0t3e8n5yjxls7q4

# Airdrop 10untrn to three addresses with metamask, two sends per envelope
walletbridge send 10untrn neutron1... neutron1... neutron1... --wallet metamask --batch-size 2`,
		RunE: runSend,
	}

	send.Flags().StringVar(&sendWallet, "wallet", "", "wallet to sign with, overriding the config")
	send.Flags().IntVar(&sendBatchSize, "batch-size", 1, "maximum sends per transaction envelope")

	return send
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	amount, err := sdk.ParseCoinNormalized(args[0])
	if err != nil {
		return fmt.Errorf("bad amount %q: %w", args[0], err)
	}
	recipients := args[1:]

	walletName := cfg.Wallet
	if sendWallet != "" {
		walletName = sendWallet
	}

	sender, registry, err := buildSender(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	// Connect before signing, mirroring the extension flow.
	provider, err := registry.Detect(walletName)
	if err != nil {
		return err
	}
	if _, err = provider.Connect(cmd.Context()); err != nil {
		return err
	}

	results, err := sender.SendToMany(cmd.Context(), walletName, recipients, amount, sendBatchSize)
	if err != nil {
		return err
	}

	failures := 0
	for i, result := range results {
		switch {
		case result.Err != nil:
			failures++
			fmt.Printf("envelope %d: error: %v\n", i+1, result.Err)
		case !result.Success:
			failures++
			fmt.Printf("envelope %d: rejected: codespace=%s code=%d log=%q\n", i+1, result.Codespace, result.Code, result.RawLog)
		default:
			fmt.Printf("envelope %d: broadcast, tx hash %s\n", i+1, result.TxHash)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d envelopes failed", failures, len(results))
	}
	return nil
}
