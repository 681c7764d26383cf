package main

import (
	"os"

	"github.com/SscSPs/bookkeeping_core/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
