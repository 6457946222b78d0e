package chipset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChipset(t *testing.T) {
	tests := []struct {
		name  string
		major uint
		minor uint
	}{
		{"gfx900", 9, 0x00},
		{"gfx906", 9, 0x06},
		{"gfx908", 9, 0x08},
		{"gfx90a", 9, 0x0a},
		{"gfx940", 9, 0x40},
		{"gfx1010", 10, 0x10},
		{"gfx1030", 10, 0x30},
		{"gfx1100", 11, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chip, err := Parse(tt.name)
			assert.NoError(t, err)
			assert.Equal(t, Chipset{tt.major, tt.minor}, chip)
			// Identifiers are canonical, hence survive a round trip
			assert.Equal(t, tt.name, chip.String())
		})
	}
}

func TestParseInvalidChipset(t *testing.T) {
	names := []string{"", "gfx", "gfx9", "908", "mi300", "rdna3", "gfx90x", "gfx10xy", "gfxabc", "Gfx908"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(name)
			assert.EqualError(t, err, fmt.Sprintf("invalid chipset name \"%s\"", name))
		})
	}
}

func TestOutOfBoundsSelect(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		// Only RDNA encodes out-of-bounds behaviour in the descriptor
		{"gfx900", false},
		{"gfx90a", false},
		{"gfx1010", true},
		{"gfx1030", true},
		{"gfx1100", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chip, err := Parse(tt.name)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, chip.SupportsOutOfBoundsSelect())
		})
	}
}
