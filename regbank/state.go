// Package regbank models a memory-mapped register bank controller.
package regbank

// Register addresses decoded by the bank.
// All other 8-bit addresses are reserved: they read as 0 and drop writes.
const (
	// AddrSwitch is the switch input register. Read-only; reads sample the
	// external input live rather than any stored value.
	AddrSwitch uint8 = 0x00

	// AddrLED is the LED output register. Read-write; the stored value is
	// mirrored continuously on the LED output pins.
	AddrLED uint8 = 0x04

	// AddrStatus is the status register. Read-write scratch storage.
	AddrStatus uint8 = 0x08

	// AddrControl is the control register. Read-write scratch storage.
	AddrControl uint8 = 0x0C
)

// State is the bank's flat state vector: the three stored 8-bit registers.
// Each register is independently addressable and independently writable.
// The zero value is the reset state.
type State struct {
	// LEDOut drives the LED output pins.
	LEDOut uint8

	// Status holds externally observable scratch state.
	Status uint8

	// Control holds externally observable scratch state.
	Control uint8
}

// Input carries one cycle's worth of bus signals into the bank.
type Input struct {
	// Address selects the register for both the read and write paths.
	Address uint8

	// WriteData is latched into the addressed register when WriteEnable
	// is high.
	WriteData uint8

	// WriteEnable gates the synchronous write path.
	WriteEnable bool

	// ReadEnable gates the combinational read path.
	ReadEnable bool

	// ExternalInput is the live switch peripheral value. It is sampled,
	// never stored.
	ExternalInput uint8
}

// Output carries the bank's observable signals for one cycle.
type Output struct {
	// ReadData is the combinational read result. It is 0 whenever
	// ReadEnable was low or the address was unmapped.
	ReadData uint8

	// LEDOutput mirrors the stored LED register after the cycle's write
	// has committed.
	LEDOutput uint8
}

// mapped reports whether addr decodes to one of the four registers.
func mapped(addr uint8) bool {
	switch addr {
	case AddrSwitch, AddrLED, AddrStatus, AddrControl:
		return true
	default:
		return false
	}
}

// RegisterName returns a human-readable name for a register address.
// Unmapped addresses return "reserved".
func RegisterName(addr uint8) string {
	switch addr {
	case AddrSwitch:
		return "SWITCH"
	case AddrLED:
		return "LED"
	case AddrStatus:
		return "STATUS"
	case AddrControl:
		return "CONTROL"
	default:
		return "reserved"
	}
}
