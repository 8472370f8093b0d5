package z80

// doOp executes one instruction starting at the current PC (or, when
// opOverride is non-nil, treats that byte as the opcode instead of
// fetching one — used by interrupt mode 0's "the bus hands us an
// instruction" acknowledge path). ext is true while DD/FD's H/L-to-IX/IY
// patch is in effect. Returns the instruction's T-state cost.
func (c *CPU) doOp(bus Bus, ext bool, opOverride *uint8) int {
	var op uint8
	if opOverride != nil {
		op = *opOverride
	} else {
		op = c.fetchOp()
	}

	switch op {
	case 0xCB:
		return c.execCB(bus)
	case 0xED:
		return c.execED(bus)
	case 0xDD:
		return c.execPrefixed(bus, true)
	case 0xFD:
		return c.execPrefixed(bus, false)
	}
	return c.mainOp(bus, ext, op)
}

// execPrefixed handles a DD (useIX=true) or FD (useIX=false) prefix byte:
// patch the register tables, dispatch the following byte (which may
// itself be CB, forming the DDCB/FDCB displacement form, or another
// prefix byte, which simply repeats with the last prefix winning), and
// unpatch afterwards.
func (c *CPU) execPrefixed(bus Bus, useIX bool) int {
	if useIX {
		c.Reg.PatchIX()
	} else {
		c.Reg.PatchIY()
	}
	op2 := c.fetchOp()
	if op2 == 0xCB {
		d := c.Mem.RS8(c.Reg.PC())
		c.Reg.IncPC(1)
		eff := uint16(int32(c.Reg.R16SP(RPHl)) + int32(d))
		c.Reg.SetWZ(eff)
		opByte := c.Mem.R8(c.Reg.PC())
		c.Reg.IncPC(1)
		cyc := c.execCBIndexed(bus, eff, opByte)
		c.Reg.Unpatch()
		return 4 + cyc
	}
	cyc := c.doOp(bus, true, &op2)
	c.Reg.Unpatch()
	return 4 + cyc
}

// mainOp decodes and executes an unprefixed (x,y,z,p,q) instruction.
func (c *CPU) mainOp(bus Bus, ext bool, op uint8) int {
	x := int(op >> 6)
	y := int((op >> 3) & 7)
	z := int(op & 7)
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return c.mainOpX0(ext, y, z, p, q)
	case 1:
		return c.mainOpX1(ext, y, z)
	case 2:
		return c.mainOpX2(ext, y, z)
	default:
		return c.mainOpX3(bus, ext, y, z, p, q)
	}
}

func (c *CPU) mainOpX0(ext bool, y, z, p, q int) int {
	switch z {
	case 0:
		switch {
		case y == 0: // NOP
			return 4
		case y == 1: // EX AF,AF'
			c.Reg.Swap(AF, AFx)
			return 4
		case y == 2: // DJNZ d
			return c.djnz()
		case y == 3: // JR d
			d := c.Mem.RS8(c.Reg.PC())
			c.Reg.IncPC(1)
			wz := uint16(int32(c.Reg.PC()) + int32(d))
			c.Reg.SetWZ(wz)
			c.Reg.SetPC(wz)
			return 12
		default: // JR cc,d
			d := c.Mem.RS8(c.Reg.PC())
			c.Reg.IncPC(1)
			if c.cc(y - 4) {
				wz := uint16(int32(c.Reg.PC()) + int32(d))
				c.Reg.SetWZ(wz)
				c.Reg.SetPC(wz)
				return 12
			}
			return 7
		}
	case 1:
		if q == 0 { // LD rp[p],nn
			c.Reg.SetR16SP(p, c.imm16())
			return 10
		}
		// ADD HL,rp[p]
		res := c.add16(c.Reg.R16SP(RPHl), c.Reg.R16SP(p))
		c.Reg.SetR16SP(RPHl, res)
		return 11
	case 2:
		switch {
		case q == 0 && p == 0: // LD (BC),A
			c.Mem.W8(c.Reg.BC(), c.Reg.A())
			c.Reg.SetWZ(uint16(c.Reg.A())<<8 | (c.Reg.BC()+1)&0xFF)
			return 7
		case q == 0 && p == 1: // LD (DE),A
			c.Mem.W8(c.Reg.DE(), c.Reg.A())
			c.Reg.SetWZ(uint16(c.Reg.A())<<8 | (c.Reg.DE()+1)&0xFF)
			return 7
		case q == 0 && p == 2: // LD (nn),HL
			a := c.imm16()
			c.Mem.W16(a, c.Reg.R16SP(RPHl))
			c.Reg.SetWZ(a + 1)
			return 16
		case q == 0: // LD (nn),A
			a := c.imm16()
			c.Mem.W8(a, c.Reg.A())
			c.Reg.SetWZ(uint16(c.Reg.A())<<8 | (a+1)&0xFF)
			return 13
		case p == 0: // LD A,(BC)
			c.Reg.SetWZ(c.Reg.BC() + 1)
			c.Reg.SetA(c.Mem.R8(c.Reg.BC()))
			return 7
		case p == 1: // LD A,(DE)
			c.Reg.SetWZ(c.Reg.DE() + 1)
			c.Reg.SetA(c.Mem.R8(c.Reg.DE()))
			return 7
		case p == 2: // LD HL,(nn)
			a := c.imm16()
			c.Reg.SetR16SP(RPHl, c.Mem.R16(a))
			c.Reg.SetWZ(a + 1)
			return 16
		default: // LD A,(nn)
			a := c.imm16()
			c.Reg.SetWZ(a + 1)
			c.Reg.SetA(c.Mem.R8(a))
			return 13
		}
	case 3:
		if q == 0 {
			c.Reg.SetR16SP(p, c.Reg.R16SP(p)+1) // INC rp
		} else {
			c.Reg.SetR16SP(p, c.Reg.R16SP(p)-1) // DEC rp
		}
		return 6
	case 4: // INC r[y]
		if y == 6 {
			a := c.addr(ext)
			c.Mem.W8(a, c.inc8(c.Mem.R8(a)))
			return 11 + extraExt(ext)
		}
		c.Reg.SetR8(y, c.inc8(c.Reg.R8(y)))
		return 4
	case 5: // DEC r[y]
		if y == 6 {
			a := c.addr(ext)
			c.Mem.W8(a, c.dec8(c.Mem.R8(a)))
			return 11 + extraExt(ext)
		}
		c.Reg.SetR8(y, c.dec8(c.Reg.R8(y)))
		return 4
	case 6: // LD r[y],n
		if y == 6 {
			a := c.addr(ext)
			v := c.imm8()
			c.Mem.W8(a, v)
			if ext {
				return 15
			}
			return 10
		}
		c.Reg.SetR8(y, c.imm8())
		return 7
	default: // z == 7
		switch y {
		case 0:
			c.rlca8()
		case 1:
			c.rrca8()
		case 2:
			c.rla8()
		case 3:
			c.rra8()
		case 4:
			c.daa()
		case 5:
			c.cpl()
		case 6:
			c.scf()
		case 7:
			c.ccf()
		}
		return 4
	}
}

func (c *CPU) mainOpX1(ext bool, y, z int) int {
	if y == 6 && z == 6 {
		c.haltOp()
		return 4
	}
	switch {
	case z == 6: // LD r[y],(HL)/(IX+d)/(IY+d)
		a := c.addr(ext)
		c.Reg.SetR8i(y, c.Mem.R8(a))
		return 7 + extraExt(ext)
	case y == 6: // LD (HL)/(IX+d)/(IY+d),r[z]
		a := c.addr(ext)
		c.Mem.W8(a, c.Reg.R8i(z))
		return 7 + extraExt(ext)
	default: // LD r[y],r[z]
		c.Reg.SetR8(y, c.Reg.R8(z))
		return 4
	}
}

func (c *CPU) mainOpX2(ext bool, y, z int) int {
	if z == 6 {
		a := c.addr(ext)
		c.alu8(y, c.Mem.R8(a))
		return 7 + extraExt(ext)
	}
	c.alu8(y, c.Reg.R8(z))
	return 4
}

func (c *CPU) mainOpX3(bus Bus, ext bool, y, z, p, q int) int {
	switch z {
	case 0: // RET cc[y]
		return c.retcc(y)
	case 1:
		switch {
		case q == 0: // POP rp2[p]
			c.Reg.SetR16AF(p, c.pop())
			return 10
		case p == 0: // RET
			return c.ret()
		case p == 1: // EXX
			c.Reg.Swap(BC, BCx)
			c.Reg.Swap(DE, DEx)
			c.Reg.Swap(HL, HLx)
			c.Reg.Swap(WZ, WZx)
			return 4
		case p == 2: // JP (HL)/(IX)/(IY)
			c.Reg.SetPC(c.Reg.R16SP(RPHl))
			return 4
		default: // LD SP,HL/IX/IY
			c.Reg.SetSP(c.Reg.R16SP(RPHl))
			return 6
		}
	case 2: // JP cc[y],nn
		a := c.imm16()
		c.Reg.SetWZ(a)
		if c.cc(y) {
			c.Reg.SetPC(a)
		}
		return 10
	case 3:
		switch y {
		case 0: // JP nn
			a := c.imm16()
			c.Reg.SetWZ(a)
			c.Reg.SetPC(a)
			return 10
		case 1: // CB prefix handled in doOp
			return 0
		case 2: // OUT (n),A
			n := c.imm8()
			port := uint16(c.Reg.A())<<8 | uint16(n)
			bus.CPUOutp(port, c.Reg.A())
			c.Reg.SetWZ(uint16(c.Reg.A())<<8 | (uint16(n)+1)&0xFF)
			return 11
		case 3: // IN A,(n)
			n := c.imm8()
			port := uint16(c.Reg.A())<<8 | uint16(n)
			c.Reg.SetA(bus.CPUInp(port))
			c.Reg.SetWZ(port + 1)
			return 11
		case 4: // EX (SP),HL/IX/IY
			sp := c.Reg.SPw()
			v := c.Mem.R16(sp)
			c.Mem.W16(sp, c.Reg.R16SP(RPHl))
			c.Reg.SetR16SP(RPHl, v)
			c.Reg.SetWZ(v)
			return 19
		case 5: // EX DE,HL
			c.Reg.Swap(DE, HL)
			return 4
		case 6: // DI
			c.IFF1 = false
			c.IFF2 = false
			return 4
		default: // EI
			c.enableInterrupt = true
			return 4
		}
	case 4: // CALL cc[y],nn
		return c.callcc(y)
	case 5:
		switch {
		case q == 0: // PUSH rp2[p]
			c.push(c.Reg.R16AF(p))
			return 11
		case p == 0: // CALL nn
			return c.call()
		default: // DD/ED/FD prefix handled in doOp
			return 0
		}
	case 6: // ALU n
		c.alu8(y, c.imm8())
		return 7
	default: // RST y*8
		c.rst(uint16(y) * 8)
		return 11
	}
}

// extraExt accounts for the extra displacement-byte read that (IX+d)/(IY+d)
// addressing costs over plain (HL) addressing, on top of the flat prefix
// overhead already applied by execPrefixed.
func extraExt(ext bool) int {
	if ext {
		return 8
	}
	return 0
}
