package main

import (
	"os"

	"github.com/rustyeddy/fxcashflow/cmd/fxcashflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
