package system

import (
	"encoding/json"
	"fmt"
	"os"
)

// MMIOWindowSize is the number of bus addresses decoded by the register
// bank window. The low 8 bits of the bus address select the register.
const MMIOWindowSize uint64 = 0x100

// Config holds the system address map parameters.
type Config struct {
	// RAMSize is the size of the RAM region in bytes. RAM occupies
	// addresses [0, RAMSize).
	RAMSize uint64 `json:"ram_size"`

	// MMIOBase is the base bus address of the register bank window.
	// The window spans [MMIOBase, MMIOBase+MMIOWindowSize).
	MMIOBase uint64 `json:"mmio_base"`
}

// DefaultConfig returns a Config with 64KB of RAM and the register bank
// window at 0x1000_0000.
func DefaultConfig() Config {
	return Config{
		RAMSize:  64 * 1024,
		MMIOBase: 0x10000000,
	}
}

// LoadConfig loads a Config from a JSON file. Fields absent from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read system config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse system config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize system config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write system config file: %w", err)
	}

	return nil
}

// Validate checks that the address map is well formed: a non-empty RAM
// region and a register bank window that neither overlaps RAM nor wraps
// the address space.
func (c Config) Validate() error {
	if c.RAMSize == 0 {
		return fmt.Errorf("ram_size must be > 0")
	}
	if c.MMIOBase < c.RAMSize {
		return fmt.Errorf("mmio_base 0x%X overlaps the RAM region [0, 0x%X)",
			c.MMIOBase, c.RAMSize)
	}
	if c.MMIOBase > ^uint64(0)-MMIOWindowSize {
		return fmt.Errorf("mmio_base 0x%X wraps the address space", c.MMIOBase)
	}
	return nil
}
