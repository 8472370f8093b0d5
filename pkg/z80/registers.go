// Package z80 implements a cycle-counting emulator for the Zilog Z80 CPU
// and its companion PIO/CTC peripheral chips, wired together through an
// interrupt daisy-chain.
package z80

import "fmt"

// Flat register-file indices. Mirrors how the real chip exposes 8-bit
// halves of 16-bit pairs: BC/DE/HL/AF/IX/IY/SP plus the shadow set and the
// internal WZ (MEMPTR) register and its shadow.
const (
	rB = iota
	rC
	rD
	rE
	rH
	rL
	rA
	rF
	rIXH
	rIXL
	rIYH
	rIYL
	rSPH
	rSPL
	rWZH
	rWZL
	rBx
	rCx
	rDx
	rEx
	rHx
	rLx
	rAx
	rFx
	rWZHx
	rWZLx
	numRegs
)

// 16-bit pair start indices into the flat register file.
const (
	BC = rB
	DE = rD
	HL = rH
	AF = rA
	IX = rIXH
	IY = rIYH
	SP = rSPH
	WZ = rWZH

	BCx = rBx
	DEx = rDx
	HLx = rHx
	AFx = rAx
	WZx = rWZHx
)

// 8-bit register indices used by opcode r/r' fields (B,C,D,E,H,L,[(HL)],A).
const (
	R8B = 0
	R8C = 1
	R8D = 2
	R8E = 3
	R8H = 4
	R8L = 5
	R8F = 6 // never addressed directly by r8/set_r8; (HL) is special-cased
	R8A = 7
)

// rp/rp2 pair indices used by 2-bit opcode fields.
const (
	RPBc = 0
	RPDe = 1
	RPHl = 2
	RPSp = 3 // rp table uses SP in slot 3
	RPAf = 3 // rp2 table uses AF in slot 3
)

// Registers is the Z80 register file: the 8-bit pairs, their shadows, the
// index registers, stack pointer, interrupt vector/refresh/mode, and the
// internal WZ (MEMPTR) register plus its shadow.
//
// Access is dual: direct 16-bit pair accessors by name, and indexed access
// through three small remap tables driven by 3-bit and 2-bit opcode
// fields. The "patched" table (mR, mSP, mAF) is what DD/FD prefixes flip to
// redirect H/L (and the rp/rp2 slot that holds HL) to IX or IY; mR2 is the
// table instructions that always address H/L bypass.
type Registers struct {
	reg [numRegs]uint8

	pc uint16

	I  uint8
	R  uint8
	IM uint8

	mR  [8]int
	mR2 [8]int
	mSP [4]int
	mAF [4]int
}

// NewRegisters returns a register file in its power-on state.
func NewRegisters() *Registers {
	r := &Registers{}
	r.resetTables()
	return r
}

func (r *Registers) resetTables() {
	r.mR = [8]int{rB, rC, rD, rE, rH, rL, rF, rA}
	r.mR2 = [8]int{rB, rC, rD, rE, rH, rL, rF, rA}
	r.mSP = [4]int{BC, DE, HL, SP}
	r.mAF = [4]int{BC, DE, HL, AF}
}

// Reset restores the registers to their post-power-on state. Most register
// content survives a Z80 reset in real hardware; only PC, WZ, IM, I and R
// are defined to clear.
func (r *Registers) Reset() {
	r.pc = 0
	r.SetWZ(0)
	r.IM = 0
	r.I = 0
	r.R = 0
	r.resetTables()
}

// --- 8-bit named accessors ---

func (r *Registers) A() uint8 { return r.reg[rA] }
func (r *Registers) F() uint8 { return r.reg[rF] }
func (r *Registers) B() uint8 { return r.reg[rB] }
func (r *Registers) C() uint8 { return r.reg[rC] }
func (r *Registers) D() uint8 { return r.reg[rD] }
func (r *Registers) E() uint8 { return r.reg[rE] }
func (r *Registers) H() uint8 { return r.reg[rH] }
func (r *Registers) L() uint8 { return r.reg[rL] }

func (r *Registers) SetA(v uint8) { r.reg[rA] = v }
func (r *Registers) SetF(v uint8) { r.reg[rF] = v }
func (r *Registers) SetB(v uint8) { r.reg[rB] = v }
func (r *Registers) SetC(v uint8) { r.reg[rC] = v }
func (r *Registers) SetD(v uint8) { r.reg[rD] = v }
func (r *Registers) SetE(v uint8) { r.reg[rE] = v }
func (r *Registers) SetH(v uint8) { r.reg[rH] = v }
func (r *Registers) SetL(v uint8) { r.reg[rL] = v }

// --- 16-bit direct-index accessors ---

// R16 reads a 16-bit register pair by its flat start index (BC, DE, HL, ...).
func (r *Registers) R16(i int) uint16 {
	return uint16(r.reg[i])<<8 | uint16(r.reg[i+1])
}

// SetR16 writes a 16-bit register pair by its flat start index.
func (r *Registers) SetR16(i int, v uint16) {
	r.reg[i] = uint8(v >> 8)
	r.reg[i+1] = uint8(v)
}

func (r *Registers) AF() uint16   { return r.R16(AF) }
func (r *Registers) BC() uint16   { return r.R16(BC) }
func (r *Registers) DE() uint16   { return r.R16(DE) }
func (r *Registers) HL() uint16   { return r.R16(HL) }
func (r *Registers) IXw() uint16  { return r.R16(IX) }
func (r *Registers) IYw() uint16  { return r.R16(IY) }
func (r *Registers) SPw() uint16  { return r.R16(SP) }
func (r *Registers) WZw() uint16  { return r.R16(WZ) }
func (r *Registers) AFx() uint16  { return r.R16(AFx) }
func (r *Registers) BCx() uint16  { return r.R16(BCx) }
func (r *Registers) DEx() uint16  { return r.R16(DEx) }
func (r *Registers) HLx() uint16  { return r.R16(HLx) }
func (r *Registers) WZxw() uint16 { return r.R16(WZx) }

func (r *Registers) SetAF(v uint16)  { r.SetR16(AF, v) }
func (r *Registers) SetBC(v uint16)  { r.SetR16(BC, v) }
func (r *Registers) SetDE(v uint16)  { r.SetR16(DE, v) }
func (r *Registers) SetHL(v uint16)  { r.SetR16(HL, v) }
func (r *Registers) SetIX(v uint16)  { r.SetR16(IX, v) }
func (r *Registers) SetIY(v uint16)  { r.SetR16(IY, v) }
func (r *Registers) SetSP(v uint16)  { r.SetR16(SP, v) }
func (r *Registers) SetWZ(v uint16)  { r.SetR16(WZ, v) }
func (r *Registers) SetAFx(v uint16) { r.SetR16(AFx, v) }
func (r *Registers) SetBCx(v uint16) { r.SetR16(BCx, v) }
func (r *Registers) SetDEx(v uint16) { r.SetR16(DEx, v) }
func (r *Registers) SetHLx(v uint16) { r.SetR16(HLx, v) }
func (r *Registers) SetWZx(v uint16) { r.SetR16(WZx, v) }

// PC returns the program counter.
func (r *Registers) PC() uint16 { return r.pc }

// SetPC sets the program counter.
func (r *Registers) SetPC(v uint16) { r.pc = v }

// IncPC advances PC by inc, wrapping modulo 2^16.
func (r *Registers) IncPC(inc uint16) { r.pc += inc }

// DecPC moves PC back by dec, wrapping modulo 2^16.
func (r *Registers) DecPC(dec uint16) { r.pc -= dec }

// --- opcode-indexed 8-bit access, patched (DD/FD-aware) ---

// R8 reads an 8-bit register by 3-bit opcode field, through the patched
// table (H/L become IXH/IXL or IYH/IYL under a DD/FD prefix).
func (r *Registers) R8(i int) uint8 { return r.reg[r.mR[i]] }

// SetR8 writes an 8-bit register by 3-bit opcode field, patched variant.
func (r *Registers) SetR8(i int, v uint8) { r.reg[r.mR[i]] = v }

// R8i reads an 8-bit register by 3-bit opcode field, always H/L — used by
// the handful of instructions defined to ignore the DD/FD prefix for their
// register operand (e.g. LD (IX+d),H stores H, not IXH).
func (r *Registers) R8i(i int) uint8 { return r.reg[r.mR2[i]] }

// SetR8i writes an 8-bit register by 3-bit opcode field, unpatched variant.
func (r *Registers) SetR8i(i int, v uint8) { r.reg[r.mR2[i]] = v }

// R16SP reads a 16-bit register by 2-bit rp field (BC,DE,HL|IX|IY,SP).
func (r *Registers) R16SP(i int) uint16 { return r.R16(r.mSP[i]) }

// SetR16SP writes a 16-bit register by 2-bit rp field.
func (r *Registers) SetR16SP(i int, v uint16) { r.SetR16(r.mSP[i], v) }

// R16AF reads a 16-bit register by 2-bit rp2 field (BC,DE,HL|IX|IY,AF).
func (r *Registers) R16AF(i int) uint16 { return r.R16(r.mAF[i]) }

// SetR16AF writes a 16-bit register by 2-bit rp2 field.
func (r *Registers) SetR16AF(i int, v uint16) { r.SetR16(r.mAF[i], v) }

// Swap exchanges two 16-bit registers given their flat start indices.
func (r *Registers) Swap(i, ix int) {
	v := r.R16(i)
	vx := r.R16(ix)
	r.SetR16(i, vx)
	r.SetR16(ix, v)
}

// PatchIX redirects H/L (and the HL slot of the rp/rp2 tables) to IX.
// Scoped to a single instruction; the caller must Unpatch afterwards.
func (r *Registers) PatchIX() {
	r.mR[R8H] = rIXH
	r.mR[R8L] = rIXL
	r.mSP[RPHl] = IX
	r.mAF[RPHl] = IX
}

// PatchIY redirects H/L (and the HL slot of the rp/rp2 tables) to IY.
func (r *Registers) PatchIY() {
	r.mR[R8H] = rIYH
	r.mR[R8L] = rIYL
	r.mSP[RPHl] = IY
	r.mAF[RPHl] = IY
}

// Unpatch restores the remap tables to their HL defaults.
func (r *Registers) Unpatch() {
	r.mR[R8H] = rH
	r.mR[R8L] = rL
	r.mSP[RPHl] = HL
	r.mAF[RPHl] = HL
}

// Patched reports whether the remap tables currently differ from their HL
// defaults — used by invariant checks after DD/FD-prefixed instructions.
func (r *Registers) Patched() bool {
	return r.mR[R8H] != rH || r.mR[R8L] != rL || r.mSP[RPHl] != HL || r.mAF[RPHl] != HL
}

// IncR advances the refresh counter's low 7 bits by one opcode fetch,
// preserving bit 7.
func (r *Registers) IncR() {
	r.R = (r.R & 0x80) | ((r.R + 1) & 0x7F)
}

// DumpString renders every register in the conventional debugger layout,
// for a run's final-state report or a TUI's live view.
func (r *Registers) DumpString() string {
	return fmt.Sprintf(
		"PC=%04X SP=%04X\nAF=%04X BC=%04X DE=%04X HL=%04X\nIX=%04X IY=%04X\nAF'=%04X BC'=%04X DE'=%04X HL'=%04X\nI=%02X R=%02X IM=%d WZ=%04X",
		r.PC(), r.SPw(),
		r.AF(), r.BC(), r.DE(), r.HL(),
		r.IXw(), r.IYw(),
		r.AFx(), r.BCx(), r.DEx(), r.HLx(),
		r.I, r.R, r.IM, r.WZw(),
	)
}
