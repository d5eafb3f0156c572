package main

import (
	"os"

	"github.com/rune-lang/rune/cmd/rune/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
