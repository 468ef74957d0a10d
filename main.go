// Package main provides the entry point for regbanksim.
// regbanksim is a memory-mapped register bank simulator built on Akita.
//
// For the full CLI, use: go run ./cmd/regsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("regbanksim - MMIO Register Bank Simulator")
	fmt.Println("Built on the Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: regsim [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -vectors   Path to a stimulus vector JSON file")
	fmt.Println("  -config    Path to a system configuration JSON file")
	fmt.Println("  -switch    Fixed switch input value (0-255)")
	fmt.Println("  -v         Verbose per-cycle trace")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/regsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/regsim' instead.")
	}
}
