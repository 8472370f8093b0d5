package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistersPairAccess(t *testing.T) {
	r := NewRegisters()
	r.SetBC(0x1234)
	assert.Equal(t, uint8(0x12), r.B())
	assert.Equal(t, uint8(0x34), r.C())
	assert.Equal(t, uint16(0x1234), r.BC())
}

func TestRegistersIXIYPatchRedirectsHL(t *testing.T) {
	r := NewRegisters()
	r.SetHL(0x1111)
	r.SetIX(0x2222)

	r.PatchIX()
	assert.Equal(t, uint16(0x2222), r.R16SP(RPHl))
	r.SetR8(R8H, 0x99)
	assert.Equal(t, uint16(0x9922), r.IXw())
	assert.Equal(t, uint8(0x11), r.H()) // real H untouched
	assert.True(t, r.Patched())

	r.Unpatch()
	assert.False(t, r.Patched())
	assert.Equal(t, uint16(0x1111), r.R16SP(RPHl))
}

func TestRegistersR8iBypassesPatch(t *testing.T) {
	r := NewRegisters()
	r.SetH(0x55)
	r.PatchIX()
	assert.Equal(t, uint8(0x55), r.R8i(R8H))
	r.Unpatch()
}

func TestRegistersSwap(t *testing.T) {
	r := NewRegisters()
	r.SetAF(0x1234)
	r.SetAFx(0x5678)
	r.Swap(AF, AFx)
	assert.Equal(t, uint16(0x5678), r.AF())
	assert.Equal(t, uint16(0x1234), r.AFx())
}

func TestRegistersIncRPreservesBit7(t *testing.T) {
	r := NewRegisters()
	r.R = 0x7F
	r.IncR()
	assert.Equal(t, uint8(0x00), r.R)

	r.R = 0xFF
	r.IncR()
	assert.Equal(t, uint8(0x80), r.R)
}

func TestRegistersResetClearsOnlyDefinedFields(t *testing.T) {
	r := NewRegisters()
	r.SetBC(0xABCD)
	r.SetPC(0x1000)
	r.I = 0x12
	r.Reset()
	assert.Equal(t, uint16(0), r.PC())
	assert.Equal(t, uint8(0), r.I)
	assert.Equal(t, uint16(0xABCD), r.BC()) // survives reset, per real hardware
}
