// Package main is the entry point for the basket CLI.
package main

import (
	"os"

	"service-basket/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
