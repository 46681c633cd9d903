package main

import (
	"os"

	"github.com/bnema/world-saver-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
