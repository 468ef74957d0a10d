// Package testbench provides stimulus-vector infrastructure for driving the
// register bank cycle by cycle and checking its observable outputs.
package testbench

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hwsim/regbanksim/regbank"
)

// ErrMismatch is returned (wrapped) when an observed output differs from a
// vector's expectation.
var ErrMismatch = errors.New("output mismatch")

// Op identifies what a stimulus vector does on its cycle.
type Op string

// Vector operations.
const (
	// OpResetAssert raises the reset level, then runs one idle bus cycle.
	OpResetAssert Op = "reset_assert"

	// OpResetRelease lowers the reset level, then runs one idle bus cycle.
	OpResetRelease Op = "reset_release"

	// OpWrite drives one cycle with write enable high.
	OpWrite Op = "write"

	// OpRead drives one cycle with read enable high.
	OpRead Op = "read"

	// OpIdle drives one cycle with both enables low.
	OpIdle Op = "idle"
)

// Device is the bus-facing surface a vector sequence drives. It is
// implemented by regbank.Bank and system.System.
type Device interface {
	Reset(assert bool)
	Cycle(in regbank.Input) regbank.Output
}

// Vector is one cycle of stimulus plus optional output expectations.
type Vector struct {
	// Op selects the cycle's bus activity.
	Op Op `json:"op"`

	// Address is the register address driven on the bus.
	Address uint8 `json:"address,omitempty"`

	// Data is the write data for OpWrite cycles.
	Data uint8 `json:"data,omitempty"`

	// ExternalInput is the switch value injected for this cycle.
	ExternalInput uint8 `json:"external_input,omitempty"`

	// ExpectData, when set, is checked against the cycle's read data.
	ExpectData *uint8 `json:"expect_data,omitempty"`

	// ExpectLED, when set, is checked against the cycle's LED output.
	ExpectLED *uint8 `json:"expect_led,omitempty"`
}

// Result pairs a vector with the output it produced.
type Result struct {
	Vector Vector
	Output regbank.Output
}

// ReferenceSequence returns the fixed bus harness sequence: assert and
// release reset, write 0xF0 to the LED register, read it back, then read
// the switch register with 0xA5 on the external input.
func ReferenceSequence() []Vector {
	return []Vector{
		{Op: OpResetAssert, ExpectLED: u8(0x00)},
		{Op: OpResetRelease},
		{Op: OpWrite, Address: regbank.AddrLED, Data: 0xF0, ExpectLED: u8(0xF0)},
		{Op: OpRead, Address: regbank.AddrLED, ExpectData: u8(0xF0), ExpectLED: u8(0xF0)},
		{
			Op:            OpRead,
			Address:       regbank.AddrSwitch,
			ExternalInput: 0xA5,
			ExpectData:    u8(0xA5),
			ExpectLED:     u8(0xF0),
		},
	}
}

// Run drives the vectors against the device one cycle at a time. It returns
// a result per completed cycle and stops at the first expectation failure
// with an error wrapping ErrMismatch.
func Run(dev Device, vectors []Vector) ([]Result, error) {
	results := make([]Result, 0, len(vectors))

	for i, v := range vectors {
		in, err := v.input()
		if err != nil {
			return results, fmt.Errorf("vector %d: %w", i, err)
		}

		switch v.Op {
		case OpResetAssert:
			dev.Reset(true)
		case OpResetRelease:
			dev.Reset(false)
		}

		out := dev.Cycle(in)
		results = append(results, Result{Vector: v, Output: out})

		if v.ExpectData != nil && out.ReadData != *v.ExpectData {
			return results, fmt.Errorf(
				"vector %d (%s %s): read data 0x%02X, want 0x%02X: %w",
				i, v.Op, regbank.RegisterName(v.Address),
				out.ReadData, *v.ExpectData, ErrMismatch)
		}
		if v.ExpectLED != nil && out.LEDOutput != *v.ExpectLED {
			return results, fmt.Errorf(
				"vector %d (%s %s): led output 0x%02X, want 0x%02X: %w",
				i, v.Op, regbank.RegisterName(v.Address),
				out.LEDOutput, *v.ExpectLED, ErrMismatch)
		}
	}

	return results, nil
}

// input translates the vector into one cycle of bus signals.
func (v Vector) input() (regbank.Input, error) {
	in := regbank.Input{
		Address:       v.Address,
		ExternalInput: v.ExternalInput,
	}

	switch v.Op {
	case OpWrite:
		in.WriteData = v.Data
		in.WriteEnable = true
	case OpRead:
		in.ReadEnable = true
	case OpResetAssert, OpResetRelease, OpIdle:
		// Idle bus: both enables low.
	default:
		return regbank.Input{}, fmt.Errorf("unknown vector op %q", v.Op)
	}

	return in, nil
}

// Load reads a vector sequence from a JSON file.
func Load(path string) ([]Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector file: %w", err)
	}

	var vectors []Vector
	if err := json.Unmarshal(data, &vectors); err != nil {
		return nil, fmt.Errorf("failed to parse vector file: %w", err)
	}

	return vectors, nil
}

// Save writes a vector sequence to a JSON file.
func Save(path string, vectors []Vector) error {
	data, err := json.MarshalIndent(vectors, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize vectors: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write vector file: %w", err)
	}

	return nil
}

func u8(v uint8) *uint8 {
	return &v
}
