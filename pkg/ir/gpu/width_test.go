package gpu

import (
	"testing"

	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireTypePassthrough(t *testing.T) {
	tests := []ir.Type{
		ir.I8,
		ir.I32,
		ir.F16,
		ir.F32,
		ir.F64,
		ir.NewVectorType(2, ir.I32),
		ir.NewVectorType(4, ir.F32),
		ir.NewVectorType(2, ir.F64),
	}

	for _, typ := range tests {
		t.Run(typ.String(), func(t *testing.T) {
			wire, err := wireType(typ)
			require.NoError(t, err)
			assert.True(t, ir.Equal(typ, wire), "got %s, expected %s", wire, typ)
		})
	}
}

func TestWireTypeRepacking(t *testing.T) {
	tests := []struct {
		wanted ir.Type
		wire   ir.Type
	}{
		// Sub-word vectors filling one word travel as a single integer
		{ir.NewVectorType(2, ir.F16), ir.I32},
		{ir.NewVectorType(2, ir.BF16), ir.I32},
		{ir.NewVectorType(4, ir.I8), ir.I32},
		{ir.NewVectorType(2, ir.I8), ir.I16},
		{ir.NewVectorType(3, ir.I8), &ir.IntType{Bits: 24}},
		// Wider ones travel as vectors of words
		{ir.NewVectorType(4, ir.F16), ir.NewVectorType(2, ir.I32)},
		{ir.NewVectorType(6, ir.F16), ir.NewVectorType(3, ir.I32)},
		{ir.NewVectorType(8, ir.F16), ir.NewVectorType(4, ir.I32)},
		{ir.NewVectorType(8, ir.I16), ir.NewVectorType(4, ir.I32)},
	}

	for _, tt := range tests {
		t.Run(tt.wanted.String(), func(t *testing.T) {
			wire, err := wireType(tt.wanted)
			require.NoError(t, err)
			assert.True(t, ir.Equal(tt.wire, wire), "got %s, expected %s", wire, tt.wire)
		})
	}
}

func TestWireTypeOversized(t *testing.T) {
	tests := []struct {
		wanted ir.Type
		bits   uint
	}{
		{ir.NewVectorType(5, ir.F32), 160},
		{ir.NewVectorType(4, ir.F64), 256},
		{ir.NewVectorType(16, ir.F16), 256},
	}

	for _, tt := range tests {
		t.Run(tt.wanted.String(), func(t *testing.T) {
			var oversized *OversizedAccessError

			_, err := wireType(tt.wanted)
			require.ErrorAs(t, err, &oversized)
			assert.Equal(t, tt.bits, oversized.Bits)
		})
	}
}

func TestWireTypeMisaligned(t *testing.T) {
	tests := []ir.Type{
		ir.NewVectorType(3, ir.F16),
		ir.NewVectorType(7, ir.I16),
		ir.NewVectorType(5, ir.I8),
		ir.NewVectorType(13, ir.I8),
	}

	for _, typ := range tests {
		t.Run(typ.String(), func(t *testing.T) {
			var misaligned *MisalignedPackedWidthError

			_, err := wireType(typ)
			require.ErrorAs(t, err, &misaligned)
			assert.EqualError(t, err, "load or store of more than 32 bits that doesn't fit into words")
		})
	}
}
