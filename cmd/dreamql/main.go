// Command dreamql runs the DreamQL playground.
package main

import (
	"os"

	"github.com/leapstack-labs/dreamql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
