package main

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/gocmac/cli"
)

func main() {
	rootCommand := cli.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
