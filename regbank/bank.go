// Package regbank models a memory-mapped register bank controller.
package regbank

// Bank is the register bank controller. It decodes an 8-bit address into
// three stored registers plus a live switch input, with synchronous writes
// and a combinational read path.
//
// Writes commit on Step (the clock edge); reads are pure functions of the
// current state. A read and a write issued in the same cycle therefore
// observe the pre-write register value, matching
// synchronous-write/combinational-read hardware semantics.
type Bank struct {
	state   State
	inReset bool
}

// NewBank creates a register bank in the reset state: all stored registers
// zero, reset de-asserted.
func NewBank() *Bank {
	return &Bank{}
}

// Reset drives the reset level. Asserting it zeroes all stored registers
// immediately and blocks writes until it is released. Asserting an already
// asserted reset has no further effect.
func (b *Bank) Reset(assert bool) {
	b.inReset = assert
	if assert {
		b.state = State{}
	}
}

// InReset reports whether reset is currently asserted.
func (b *Bank) InReset() bool {
	return b.inReset
}

// Step performs the synchronous update for one rising clock edge.
// With writeEnable high and reset released, the addressed register latches
// writeData. Writes to AddrSwitch or any unmapped address are dropped.
// At most one register changes per call.
func (b *Bank) Step(writeEnable bool, address, writeData uint8) {
	if b.inReset || !writeEnable {
		return
	}

	next := b.state
	switch address {
	case AddrLED:
		next.LEDOut = writeData
	case AddrStatus:
		next.Status = writeData
	case AddrControl:
		next.Control = writeData
	default:
		// Read-only or reserved address: no state change.
	}
	b.state = next
}

// Read evaluates the combinational read path against the current state.
// With readEnable low it returns 0 regardless of address. AddrSwitch
// passes externalInput through live; unmapped addresses read as 0.
func (b *Bank) Read(readEnable bool, address, externalInput uint8) uint8 {
	if !readEnable || !mapped(address) {
		return 0x00
	}

	switch address {
	case AddrSwitch:
		return externalInput
	case AddrLED:
		return b.state.LEDOut
	case AddrStatus:
		return b.state.Status
	case AddrControl:
		return b.state.Control
	}
	return 0x00
}

// Cycle runs one full clock cycle in the fixed evaluation order: the read
// path is evaluated against the pre-write state, then the write commits.
// The returned LEDOutput reflects the post-commit LED register, which is
// what the output pins show once the edge has passed.
func (b *Bank) Cycle(in Input) Output {
	readData := b.Read(in.ReadEnable, in.Address, in.ExternalInput)
	b.Step(in.WriteEnable, in.Address, in.WriteData)

	return Output{
		ReadData:  readData,
		LEDOutput: b.state.LEDOut,
	}
}

// LEDOutput returns the stored LED register, mirroring the LED pins.
func (b *Bank) LEDOutput() uint8 {
	return b.state.LEDOut
}

// Snapshot returns a copy of the current state vector.
func (b *Bank) Snapshot() State {
	return b.state
}
