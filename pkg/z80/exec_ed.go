package z80

// imTable maps IM's y field (0-7) to the resulting interrupt mode; Zilog
// only documents three distinct modes, duplicated across the 8 encodings.
var imTable = [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}

// execED executes an ED-prefixed instruction, fetching its own opcode
// byte. Register operands always address the true 8080-style register
// set (R8i, not the DD/FD-patched R8) — on real silicon a DD or FD byte
// immediately followed by ED is simply wasted, the ED instruction runs
// exactly as it would unprefixed.
func (c *CPU) execED(bus Bus) int {
	c.Reg.Unpatch() // a preceding DD/FD has no effect on the HL operands either
	op := c.fetchOp()
	x := int(op >> 6)
	y := int((op >> 3) & 7)
	z := int(op & 7)
	p := y >> 1
	q := y & 1

	switch x {
	case 1:
		return c.execEDx1(bus, y, z, p, q)
	case 2:
		if y >= 4 && z <= 3 {
			return c.execEDBlock(bus, y, z)
		}
		c.InvalidOp = true
		return 8
	default:
		c.InvalidOp = true
		return 8
	}
}

func (c *CPU) execEDx1(bus Bus, y, z, p, q int) int {
	switch z {
	case 0: // IN r[y],(C)
		val := bus.CPUInp(c.Reg.BC())
		c.Reg.SetWZ(c.Reg.BC() + 1)
		c.Reg.SetF(flagsSZP(val) | c.Reg.F()&CF)
		if y != 6 {
			c.Reg.SetR8i(y, val)
		}
		return 12
	case 1: // OUT (C),r[y]
		val := uint8(0)
		if y != 6 {
			val = c.Reg.R8i(y)
		}
		bus.CPUOutp(c.Reg.BC(), val)
		c.Reg.SetWZ(c.Reg.BC() + 1)
		return 12
	case 2:
		if q == 0 { // SBC HL,rp[p]
			res := c.sbc16(c.Reg.HL(), c.Reg.R16SP(p))
			c.Reg.SetHL(res)
		} else { // ADC HL,rp[p]
			res := c.adc16(c.Reg.HL(), c.Reg.R16SP(p))
			c.Reg.SetHL(res)
		}
		return 15
	case 3:
		a := c.imm16()
		c.Reg.SetWZ(a + 1)
		if q == 0 { // LD (nn),rp[p]
			c.Mem.W16(a, c.Reg.R16SP(p))
		} else { // LD rp[p],(nn)
			c.Reg.SetR16SP(p, c.Mem.R16(a))
		}
		return 20
	case 4: // NEG
		c.neg8()
		return 8
	case 5:
		if y == 1 {
			bus.IRQReti()
		}
		c.IFF1 = c.IFF2
		wz := c.Mem.R16(c.Reg.SPw())
		c.Reg.SetWZ(wz)
		c.Reg.SetPC(wz)
		c.Reg.SetSP(c.Reg.SPw() + 2)
		return 14
	case 6: // IM y
		c.Reg.IM = imTable[y]
		return 8
	default:
		switch y {
		case 0: // LD I,A
			c.Reg.I = c.Reg.A()
		case 1: // LD R,A
			c.Reg.R = c.Reg.A()
		case 2: // LD A,I
			c.Reg.SetA(c.Reg.I)
			c.ldair(c.Reg.I)
		case 3: // LD A,R
			c.Reg.SetA(c.Reg.R)
			c.ldair(c.Reg.R)
		case 4: // RRD
			c.rrd()
			return 18
		case 5: // RLD
			c.rld()
			return 18
		default:
			return 8
		}
		return 9
	}
}

// ldair sets the flags for LD A,I / LD A,R: S/Z/5/3 from the loaded
// value, H and N cleared, P/V from IFF2, C preserved.
func (c *CPU) ldair(val uint8) {
	f := c.Reg.F() & CF
	f |= val & (SF | XF | YF)
	if val == 0 {
		f |= ZF
	}
	if c.IFF2 {
		f |= PF
	}
	c.Reg.SetF(f)
}

func (c *CPU) rrd() {
	hl := c.Reg.R16SP(RPHl)
	mem := c.Mem.R8(hl)
	a := c.Reg.A()
	newA := (a & 0xF0) | (mem & 0x0F)
	newMem := (a << 4) | (mem >> 4)
	c.Reg.SetA(newA)
	c.Mem.W8(hl, newMem)
	c.Reg.SetWZ(hl + 1)
	c.Reg.SetF(flagsSZP(newA) | c.Reg.F()&CF)
}

func (c *CPU) rld() {
	hl := c.Reg.R16SP(RPHl)
	mem := c.Mem.R8(hl)
	a := c.Reg.A()
	newA := (a & 0xF0) | (mem >> 4)
	newMem := (mem << 4) | (a & 0x0F)
	c.Reg.SetA(newA)
	c.Mem.W8(hl, newMem)
	c.Reg.SetWZ(hl + 1)
	c.Reg.SetF(flagsSZP(newA) | c.Reg.F()&CF)
}

// execEDBlock executes one of the 16 LDxx/CPxx/INxx/OUTxx block
// instructions. Their repeating forms (y==6 or y==7) rewind PC by 2 and
// cost 21 cycles while the count (BC, or B for the I/O forms) is still
// nonzero (and, for CPIR/CPDR, while the comparison hasn't matched);
// otherwise they run once for 16 cycles.
func (c *CPU) execEDBlock(bus Bus, y, z int) int {
	repeat := y >= 6
	switch z {
	case 0:
		dir := int16(1)
		if y == 5 || y == 7 {
			dir = -1
		}
		return c.blockLD(dir, repeat)
	case 1:
		dir := int16(1)
		if y == 5 || y == 7 {
			dir = -1
		}
		return c.blockCP(dir, repeat)
	case 2:
		dir := int16(1)
		if y == 5 || y == 7 {
			dir = -1
		}
		return c.blockIN(bus, dir, repeat)
	default:
		dir := int16(1)
		if y == 5 || y == 7 {
			dir = -1
		}
		return c.blockOUT(bus, dir, repeat)
	}
}

func (c *CPU) blockLD(dir int16, repeat bool) int {
	hl := c.Reg.HL()
	de := c.Reg.DE()
	val := c.Mem.R8(hl)
	c.Mem.W8(de, val)
	c.Reg.SetHL(uint16(int32(hl) + int32(dir)))
	c.Reg.SetDE(uint16(int32(de) + int32(dir)))
	bc := c.Reg.BC() - 1
	c.Reg.SetBC(bc)

	n := val + c.Reg.A()
	f := c.Reg.F() & (SF | ZF | CF)
	f |= n & XF
	if n&0x02 != 0 {
		f |= YF
	}
	if bc != 0 {
		f |= PF
	}
	c.Reg.SetF(f)

	if repeat && bc != 0 {
		c.Reg.DecPC(2)
		c.Reg.SetWZ(c.Reg.PC() + 1)
		return 21
	}
	return 16
}

func (c *CPU) blockCP(dir int16, repeat bool) int {
	hl := c.Reg.HL()
	val := c.Mem.R8(hl)
	a := c.Reg.A()
	res := int(a) - int(val)
	c.Reg.SetHL(uint16(int32(hl) + int32(dir)))
	bc := c.Reg.BC() - 1
	c.Reg.SetBC(bc)

	hf := (a ^ val ^ uint8(res)) & HF
	n := uint8(res)
	if hf != 0 {
		n--
	}
	f := NF | c.Reg.F()&CF
	f |= hf
	if res&0xFF == 0 {
		f |= ZF
	} else {
		f |= uint8(res) & SF
	}
	if n&0x02 != 0 {
		f |= YF
	}
	f |= n & XF
	if bc != 0 {
		f |= PF
	}
	c.Reg.SetF(f)

	if dir > 0 {
		c.Reg.SetWZ(c.Reg.WZw() + 1)
	} else {
		c.Reg.SetWZ(c.Reg.WZw() - 1)
	}

	if repeat && bc != 0 && res&0xFF != 0 {
		c.Reg.DecPC(2)
		c.Reg.SetWZ(c.Reg.PC() + 1)
		return 21
	}
	return 16
}

// blockIOFlags computes the shared S/Z/5/3/H/P/N flag portion of
// INI/IND/OUTI/OUTD, per the standard documented "k = val + adjust"
// construction.
func blockIOFlags(newB, val uint8, k int) uint8 {
	f := uint8(0)
	if newB == 0 {
		f |= ZF
	} else {
		f |= newB & SF
	}
	f |= newB & (XF | YF)
	if val&0x80 != 0 {
		f |= NF
	}
	if k > 0xFF {
		f |= HF | CF
	}
	if szpTable[uint8(k&7)^newB]&PF != 0 {
		f |= PF
	}
	return f
}

func (c *CPU) blockIN(bus Bus, dir int16, repeat bool) int {
	bc := c.Reg.BC()
	val := bus.CPUInp(bc)
	hl := c.Reg.HL()
	c.Mem.W8(hl, val)
	c.Reg.SetHL(uint16(int32(hl) + int32(dir)))
	newB := c.Reg.B() - 1
	c.Reg.SetB(newB)

	if dir > 0 {
		c.Reg.SetWZ(bc + 1)
	} else {
		c.Reg.SetWZ(bc - 1)
	}

	cAdj := uint8(int32(c.Reg.C()) + int32(dir))
	k := int(val) + int(cAdj)
	c.Reg.SetF(blockIOFlags(newB, val, k))

	if repeat && newB != 0 {
		c.Reg.DecPC(2)
		c.Reg.SetWZ(c.Reg.PC() + 1)
		return 21
	}
	return 16
}

func (c *CPU) blockOUT(bus Bus, dir int16, repeat bool) int {
	hl := c.Reg.HL()
	val := c.Mem.R8(hl)
	c.Reg.SetHL(uint16(int32(hl) + int32(dir)))
	newB := c.Reg.B() - 1
	c.Reg.SetB(newB)
	bc := uint16(newB)<<8 | uint16(c.Reg.C())
	bus.CPUOutp(bc, val)

	if dir > 0 {
		c.Reg.SetWZ(bc + 1)
	} else {
		c.Reg.SetWZ(bc - 1)
	}

	k := int(val) + int(c.Reg.L())
	c.Reg.SetF(blockIOFlags(newB, val, k))

	if repeat && newB != 0 {
		c.Reg.DecPC(2)
		c.Reg.SetWZ(c.Reg.PC() + 1)
		return 21
	}
	return 16
}
