// Command dextr is the Dextr CLI entry point.
package main

import (
	"os"

	"github.com/dextr-labs/dextr-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
