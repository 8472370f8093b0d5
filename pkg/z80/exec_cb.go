package z80

// cbApply performs the CB group's x-selected rotate/shift/BIT/RES/SET
// operation on val and returns the new value (unused for BIT, which
// doesn't mutate its operand) and a flag telling the caller whether to
// write it back.
func (c *CPU) cbApply(x, y int, val uint8, fromMemory bool) (res uint8, writeBack bool) {
	switch x {
	case 0:
		switch y {
		case 0:
			return c.rlc8(val), true
		case 1:
			return c.rrc8(val), true
		case 2:
			return c.rl8(val), true
		case 3:
			return c.rr8(val), true
		case 4:
			return c.sla8(val), true
		case 5:
			return c.sra8(val), true
		case 6:
			return c.sll8(val), true
		default:
			return c.srl8(val), true
		}
	case 1:
		mask := uint8(1) << uint(y)
		if fromMemory {
			c.ibit(val, mask)
		} else {
			c.bit(val, mask)
		}
		return val, false
	case 2:
		return val &^ (uint8(1) << uint(y)), true
	default:
		return val | (uint8(1) << uint(y)), true
	}
}

// execCB executes a bare (not DD/FD-indexed) CB-prefixed instruction,
// fetching its own opcode byte. (HL) operands always address real HL:
// a bare CB is never reached while DD/FD's patch is in effect (that
// combination forms the DDCB/FDCB encoding instead, handled by
// execCBIndexed).
func (c *CPU) execCB(bus Bus) int {
	op := c.fetchOp()
	x := int(op >> 6)
	y := int((op >> 3) & 7)
	z := int(op & 7)

	if z == 6 {
		addr := c.Reg.HL()
		val := c.Mem.R8(addr)
		res, wb := c.cbApply(x, y, val, true)
		if wb {
			c.Mem.W8(addr, res)
		}
		if x == 1 {
			return 12
		}
		return 15
	}

	val := c.Reg.R8i(z)
	res, wb := c.cbApply(x, y, val, false)
	if wb {
		c.Reg.SetR8i(z, res)
	}
	return 8
}

// execCBIndexed executes the DDCB/FDCB form: op's operand is always the
// byte at addr (an already-computed (IX+d)/(IY+d) address), and — except
// for BIT, and except when z selects (HL) itself (z==6) — the result is
// also copied into the register named by z, matching real silicon's
// "undocumented" DDCB/FDCB register side effect.
func (c *CPU) execCBIndexed(bus Bus, addr uint16, op uint8) int {
	x := int(op >> 6)
	y := int((op >> 3) & 7)
	z := int(op & 7)

	val := c.Mem.R8(addr)
	res, wb := c.cbApply(x, y, val, true)
	if wb {
		c.Mem.W8(addr, res)
		if z != 6 {
			c.Reg.SetR8i(z, res)
		}
	}
	if x == 1 {
		return 16
	}
	return 19
}
