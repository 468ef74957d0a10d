package regbank_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hwsim/regbanksim/regbank"
)

var _ = Describe("Bank", func() {
	var bank *regbank.Bank

	BeforeEach(func() {
		bank = regbank.NewBank()
	})

	Describe("NewBank", func() {
		It("should start with all stored registers at zero", func() {
			Expect(bank.Snapshot()).To(BeZero())
			Expect(bank.InReset()).To(BeFalse())
		})
	})

	Describe("Step", func() {
		It("should latch write data into the addressed register", func() {
			bank.Step(true, regbank.AddrLED, 0x3C)
			Expect(bank.Snapshot().LEDOut).To(Equal(uint8(0x3C)))

			bank.Step(true, regbank.AddrStatus, 0x55)
			Expect(bank.Snapshot().Status).To(Equal(uint8(0x55)))

			bank.Step(true, regbank.AddrControl, 0xAA)
			Expect(bank.Snapshot().Control).To(Equal(uint8(0xAA)))
		})

		It("should change at most the addressed register", func() {
			bank.Step(true, regbank.AddrStatus, 0x11)

			state := bank.Snapshot()
			Expect(state.Status).To(Equal(uint8(0x11)))
			Expect(state.LEDOut).To(BeZero())
			Expect(state.Control).To(BeZero())
		})

		It("should do nothing when write enable is low", func() {
			bank.Step(false, regbank.AddrLED, 0xFF)
			Expect(bank.Snapshot()).To(BeZero())
		})

		It("should drop writes to the switch input address", func() {
			bank.Step(true, regbank.AddrSwitch, 0xFF)
			Expect(bank.Snapshot()).To(BeZero())
			Expect(bank.Read(true, regbank.AddrSwitch, 0x00)).To(Equal(uint8(0x00)))
		})

		It("should drop writes to every unmapped address", func() {
			for addr := 0; addr <= 0xFF; addr++ {
				a := uint8(addr)
				if a == regbank.AddrLED || a == regbank.AddrStatus ||
					a == regbank.AddrControl || a == regbank.AddrSwitch {
					continue
				}
				bank.Step(true, a, 0xEE)
				Expect(bank.Snapshot()).To(BeZero(),
					"write to 0x%02X must not change state", a)
			}
		})

		It("should keep last-write-wins semantics per register", func() {
			bank.Step(true, regbank.AddrControl, 0x01)
			bank.Step(true, regbank.AddrControl, 0x02)
			bank.Step(true, regbank.AddrControl, 0x03)
			Expect(bank.Snapshot().Control).To(Equal(uint8(0x03)))
		})
	})

	Describe("Read", func() {
		It("should round-trip every value through each stored register", func() {
			for v := 0; v <= 0xFF; v++ {
				value := uint8(v)
				for _, addr := range []uint8{
					regbank.AddrLED, regbank.AddrStatus, regbank.AddrControl,
				} {
					bank.Step(true, addr, value)
					Expect(bank.Read(true, addr, 0x00)).To(Equal(value))
				}
			}
		})

		It("should pass the external input through on the switch address", func() {
			for v := 0; v <= 0xFF; v++ {
				Expect(bank.Read(true, regbank.AddrSwitch, uint8(v))).To(Equal(uint8(v)))
			}
		})

		It("should pass the external input through regardless of write history", func() {
			bank.Step(true, regbank.AddrLED, 0x12)
			bank.Step(true, regbank.AddrStatus, 0x34)
			bank.Step(true, regbank.AddrControl, 0x56)

			Expect(bank.Read(true, regbank.AddrSwitch, 0x78)).To(Equal(uint8(0x78)))
		})

		It("should return zero when read enable is low", func() {
			bank.Step(true, regbank.AddrLED, 0xF0)

			Expect(bank.Read(false, regbank.AddrLED, 0x00)).To(Equal(uint8(0x00)))
			Expect(bank.Read(false, regbank.AddrSwitch, 0xA5)).To(Equal(uint8(0x00)))
		})

		It("should return zero for every unmapped address", func() {
			bank.Step(true, regbank.AddrLED, 0xFF)
			bank.Step(true, regbank.AddrStatus, 0xFF)
			bank.Step(true, regbank.AddrControl, 0xFF)

			for addr := 0; addr <= 0xFF; addr++ {
				a := uint8(addr)
				if a == regbank.AddrSwitch || a == regbank.AddrLED ||
					a == regbank.AddrStatus || a == regbank.AddrControl {
					continue
				}
				Expect(bank.Read(true, a, 0xA5)).To(Equal(uint8(0x00)),
					"read of 0x%02X must return zero", a)
			}
		})
	})

	Describe("Reset", func() {
		It("should zero all stored registers", func() {
			bank.Step(true, regbank.AddrLED, 0x01)
			bank.Step(true, regbank.AddrStatus, 0x02)
			bank.Step(true, regbank.AddrControl, 0x03)

			bank.Reset(true)
			Expect(bank.Snapshot()).To(BeZero())
		})

		It("should block writes while asserted", func() {
			bank.Reset(true)
			bank.Step(true, regbank.AddrLED, 0xF0)
			Expect(bank.Snapshot().LEDOut).To(Equal(uint8(0x00)))

			bank.Reset(false)
			bank.Step(true, regbank.AddrLED, 0xF0)
			Expect(bank.Snapshot().LEDOut).To(Equal(uint8(0xF0)))
		})

		It("should be idempotent", func() {
			bank.Step(true, regbank.AddrStatus, 0x99)

			bank.Reset(true)
			single := bank.Snapshot()

			bank.Reset(true)
			bank.Reset(true)
			Expect(bank.Snapshot()).To(Equal(single))
			Expect(bank.Snapshot()).To(BeZero())
		})

		It("should override an in-flight write immediately", func() {
			bank.Reset(true)
			out := bank.Cycle(regbank.Input{
				Address:     regbank.AddrLED,
				WriteData:   0xF0,
				WriteEnable: true,
			})
			Expect(out.LEDOutput).To(Equal(uint8(0x00)))
			Expect(bank.Snapshot().LEDOut).To(Equal(uint8(0x00)))
		})
	})

	Describe("Cycle", func() {
		It("should observe the pre-write value on a simultaneous read and write", func() {
			bank.Step(true, regbank.AddrLED, 0x10)

			out := bank.Cycle(regbank.Input{
				Address:     regbank.AddrLED,
				WriteData:   0x20,
				WriteEnable: true,
				ReadEnable:  true,
			})

			// The read sees the old value; the write lands for the next cycle.
			Expect(out.ReadData).To(Equal(uint8(0x10)))
			Expect(bank.Snapshot().LEDOut).To(Equal(uint8(0x20)))
		})

		It("should expose the committed write on the following cycle", func() {
			bank.Cycle(regbank.Input{
				Address:     regbank.AddrStatus,
				WriteData:   0x42,
				WriteEnable: true,
				ReadEnable:  true,
			})

			out := bank.Cycle(regbank.Input{
				Address:    regbank.AddrStatus,
				ReadEnable: true,
			})
			Expect(out.ReadData).To(Equal(uint8(0x42)))
		})

		It("should mirror the LED register on the LED output", func() {
			out := bank.Cycle(regbank.Input{
				Address:     regbank.AddrLED,
				WriteData:   0xF0,
				WriteEnable: true,
			})
			Expect(out.LEDOutput).To(Equal(uint8(0xF0)))
			Expect(bank.LEDOutput()).To(Equal(uint8(0xF0)))

			// Unrelated cycles keep mirroring the stored value.
			out = bank.Cycle(regbank.Input{Address: regbank.AddrStatus, ReadEnable: true})
			Expect(out.LEDOutput).To(Equal(uint8(0xF0)))
		})
	})

	Describe("reference sequence", func() {
		It("should satisfy the bus harness sequence bit-exactly", func() {
			bank.Reset(true)
			bank.Reset(false)

			// Write 0xF0 to the LED register.
			bank.Cycle(regbank.Input{
				Address:     regbank.AddrLED,
				WriteData:   0xF0,
				WriteEnable: true,
			})

			// Read it back with write enable low.
			out := bank.Cycle(regbank.Input{
				Address:    regbank.AddrLED,
				ReadEnable: true,
			})
			Expect(out.ReadData).To(Equal(uint8(0xF0)))

			// Read the switch input with 0xA5 injected.
			out = bank.Cycle(regbank.Input{
				Address:       regbank.AddrSwitch,
				ReadEnable:    true,
				ExternalInput: 0xA5,
			})
			Expect(out.ReadData).To(Equal(uint8(0xA5)))
			Expect(out.LEDOutput).To(Equal(uint8(0xF0)))
		})
	})
})
