// Package main provides the entry point for regsim.
// regsim drives stimulus vectors through the register bank system and
// checks the observed bus outputs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hwsim/regbanksim/regbank"
	"github.com/hwsim/regbanksim/system"
	"github.com/hwsim/regbanksim/testbench"
)

var (
	vectorPath = flag.String("vectors", "", "Path to a stimulus vector JSON file (default: built-in reference sequence)")
	configPath = flag.String("config", "", "Path to a system configuration JSON file")
	switchVal  = flag.Int("switch", -1, "Fixed switch input value 0-255 (default: per-vector external input)")
	verbose    = flag.Bool("v", false, "Verbose per-cycle trace")
)

func main() {
	flag.Parse()

	// Assemble the stimulus.
	vectors := testbench.ReferenceSequence()
	if *vectorPath != "" {
		var err error
		vectors, err = testbench.Load(*vectorPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading vectors: %v\n", err)
			os.Exit(1)
		}
	}

	// Assemble the system.
	opts := []system.Option{}
	if *configPath != "" {
		config, err := system.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, system.WithConfig(config))
	}
	if *switchVal >= 0 {
		if *switchVal > 0xFF {
			fmt.Fprintf(os.Stderr, "Error: -switch value %d out of range 0-255\n", *switchVal)
			os.Exit(1)
		}
		opts = append(opts, system.WithSwitchSource(system.FixedSwitch(*switchVal)))
	}
	if *verbose {
		opts = append(opts, system.WithLEDObserver(func(v uint8) {
			fmt.Printf("LED output -> 0x%02X\n", v)
		}))
	}

	sys, err := system.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building system: %v\n", err)
		os.Exit(1)
	}

	results, runErr := testbench.Run(sys, vectors)

	if *verbose {
		printTrace(results)
	}

	printSummary(sys, len(results), len(vectors))

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", runErr)
		os.Exit(1)
	}
	fmt.Println("PASS")
}

// printTrace prints one line per completed cycle.
func printTrace(results []testbench.Result) {
	fmt.Println("Cycle trace:")
	for i, r := range results {
		v := r.Vector
		switch v.Op {
		case testbench.OpWrite:
			fmt.Printf("  %3d  write %-8s <= 0x%02X  led=0x%02X\n",
				i, regbank.RegisterName(v.Address), v.Data, r.Output.LEDOutput)
		case testbench.OpRead:
			fmt.Printf("  %3d  read  %-8s => 0x%02X  led=0x%02X\n",
				i, regbank.RegisterName(v.Address), r.Output.ReadData, r.Output.LEDOutput)
		default:
			fmt.Printf("  %3d  %-5s %-8s          led=0x%02X\n",
				i, v.Op, "-", r.Output.LEDOutput)
		}
	}
	fmt.Println("")
}

// printSummary prints the final register snapshot.
func printSummary(sys *system.System, completed, total int) {
	state := sys.Bank().Snapshot()
	fmt.Printf("Cycles completed: %d/%d\n", completed, total)
	fmt.Printf("Final registers:\n")
	fmt.Printf("  LED:     0x%02X\n", state.LEDOut)
	fmt.Printf("  STATUS:  0x%02X\n", state.Status)
	fmt.Printf("  CONTROL: 0x%02X\n", state.Control)
}
