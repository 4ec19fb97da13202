package main

import (
	"context"
	"os"

	"restorelog/internal/cli"
)

// main delegates to the CLI package so the whole flow stays testable.
func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
