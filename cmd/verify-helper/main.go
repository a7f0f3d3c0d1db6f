// Package main is the entry point for the verify-helper CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/verifyhelper/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
