package main

import (
	"fmt"
	"os"

	"github.com/pricenotify/pricenotify/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.FromConfig).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
