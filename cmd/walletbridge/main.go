package main

import (
	"os"

	"github.com/tessellated-io/walletbridge/cmd/walletbridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
