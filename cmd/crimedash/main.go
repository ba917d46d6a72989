// Command crimedash serves the India crime statistics dashboard.
package main

import (
	"os"

	"github.com/ShlokRathi29/India-crime-analysis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
