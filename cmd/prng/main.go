// Package main implements the prng command line tool.
package main

import (
	"github.com/oasisprotocol/prng-suite/cmd/prng/cmd"
)

func main() {
	cmd.Execute()
}
