package system

// Local abstraction layer for external collaborators. The system package
// depends on these interfaces only, so tests can substitute them without
// importing external packages.

// Storage models the minimal byte-storage operations the RAM region uses.
// It is implemented by mem.Storage from the Akita simulation framework.
type Storage interface {
	Read(address uint64, length uint64) ([]byte, error)
	Write(address uint64, data []byte) error
}

// SwitchSource supplies the live value of the switch peripheral. The value
// is sampled on every read of the switch register, never stored.
type SwitchSource interface {
	Sample() uint8
}

// FixedSwitch is a SwitchSource that always reads the same value.
type FixedSwitch uint8

// Sample returns the fixed switch value.
func (f FixedSwitch) Sample() uint8 {
	return uint8(f)
}

// SwitchFunc adapts a function to the SwitchSource interface.
type SwitchFunc func() uint8

// Sample calls the wrapped function.
func (f SwitchFunc) Sample() uint8 {
	return f()
}

// LEDObserver is called with the new value whenever the stored LED
// register changes, modeling the externally visible LED pins.
type LEDObserver func(value uint8)
