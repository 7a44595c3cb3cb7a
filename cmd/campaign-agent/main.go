package main

import (
	"os"

	"github.com/dekleptocracy/campaign-agent/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
