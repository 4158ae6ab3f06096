// Package main provides the entry point for imulsim.
// imulsim is a cycle-accurate simulator of an iterative integer multiplier.
//
// For the full CLI, use: go run ./cmd/imulsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("imulsim - Iterative Integer Multiplier Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: imulsim [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -model     Multiplier model: rtl or fl")
	fmt.Println("  -case      Run only the named case")
	fmt.Println("  -vectors   Path to a test vector file")
	fmt.Println("  -config    Path to timing configuration JSON file")
	fmt.Println("  -trace     Print a line trace per cycle")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/imulsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/imulsim' instead.")
	}
}
