// Package system models a small bus fabric around the register bank: a RAM
// region backed by Akita storage and a memory-mapped register bank window,
// the way the device would sit next to memory on an SoC bus.
package system

import (
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"

	"github.com/hwsim/regbanksim/regbank"
)

// System is a byte-addressable bus with two decoded regions: RAM at
// [0, RAMSize) and the register bank window at [MMIOBase,
// MMIOBase+MMIOWindowSize). Accesses outside both regions follow the bank's
// reserved-address policy: reads return 0, writes are dropped.
type System struct {
	config Config
	ram    Storage
	bank   *regbank.Bank

	sw    SwitchSource
	onLED LEDObserver

	// lastLED tracks the most recently observed LED value so the
	// observer fires only on changes.
	lastLED uint8
}

// Option is a functional option for configuring the System.
type Option func(*System)

// WithConfig sets the address map configuration.
func WithConfig(config Config) Option {
	return func(s *System) {
		s.config = config
	}
}

// WithStorage sets a custom RAM backing store.
func WithStorage(storage Storage) Option {
	return func(s *System) {
		s.ram = storage
	}
}

// WithSwitchSource sets the switch peripheral source. When set, it
// overrides the ExternalInput field of bus cycles driven through Cycle.
func WithSwitchSource(source SwitchSource) Option {
	return func(s *System) {
		s.sw = source
	}
}

// WithLEDObserver registers a callback for LED register changes.
func WithLEDObserver(observer LEDObserver) Option {
	return func(s *System) {
		s.onLED = observer
	}
}

// New creates a System with a fresh register bank. Unless WithStorage is
// given, the RAM region is backed by an Akita mem.Storage of RAMSize bytes.
func New(opts ...Option) (*System, error) {
	s := &System{
		config: DefaultConfig(),
		bank:   regbank.NewBank(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid system config: %w", err)
	}

	if s.ram == nil {
		s.ram = mem.NewStorage(s.config.RAMSize)
	}

	return s, nil
}

// Config returns the system's address map configuration.
func (s *System) Config() Config {
	return s.config
}

// Bank returns the register bank behind the MMIO window.
func (s *System) Bank() *regbank.Bank {
	return s.bank
}

// Reset drives the reset level of the register bank. RAM contents are
// unaffected.
func (s *System) Reset(assert bool) {
	s.bank.Reset(assert)
	s.notifyLED()
}

// inWindow reports whether addr falls in the register bank window.
func (s *System) inWindow(addr uint64) bool {
	return addr >= s.config.MMIOBase && addr < s.config.MMIOBase+MMIOWindowSize
}

// Read8 reads one byte from the bus. Register bank window reads sample the
// switch source live; RAM reads go to the backing store; reads outside both
// regions return 0.
func (s *System) Read8(addr uint64) uint8 {
	if s.inWindow(addr) {
		return s.bank.Read(true, uint8(addr-s.config.MMIOBase), s.sampleSwitch())
	}

	if addr < s.config.RAMSize {
		data, err := s.ram.Read(addr, 1)
		if err != nil || len(data) == 0 {
			return 0x00
		}
		return data[0]
	}

	return 0x00
}

// Write8 writes one byte to the bus. Register bank window writes latch on
// the bank's clock edge; RAM writes go to the backing store; writes outside
// both regions are dropped.
func (s *System) Write8(addr uint64, value uint8) {
	if s.inWindow(addr) {
		s.bank.Step(true, uint8(addr-s.config.MMIOBase), value)
		s.notifyLED()
		return
	}

	if addr < s.config.RAMSize {
		// The store only fails past capacity, which the bound above rules out.
		_ = s.ram.Write(addr, []byte{value})
	}
}

// Cycle drives one full bus cycle on the register bank. When a switch
// source is configured it supplies the external input; otherwise the
// caller-provided value is used.
func (s *System) Cycle(in regbank.Input) regbank.Output {
	if s.sw != nil {
		in.ExternalInput = s.sw.Sample()
	}

	out := s.bank.Cycle(in)
	s.notifyLED()
	return out
}

func (s *System) sampleSwitch() uint8 {
	if s.sw == nil {
		return 0x00
	}
	return s.sw.Sample()
}

func (s *System) notifyLED() {
	led := s.bank.LEDOutput()
	if led == s.lastLED {
		return
	}
	s.lastLED = led
	if s.onLED != nil {
		s.onLED(led)
	}
}
