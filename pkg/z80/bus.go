package z80

// Bus is the capability surface the core requires from its host. A host
// that only cares about memory-mapped I/O can embed NoopBus and override
// the handful of methods it needs.
//
// The CPU takes a Bus argument at each entry point (Step, interrupt
// acceptance) rather than storing one, so the host, CPU and peripherals
// never hold long-lived references to each other — breaking the
// CPU->Bus->PIO/CTC->Bus->CPU reference cycle described in the design
// notes.
type Bus interface {
	// CPUInp satisfies an IN instruction. port's high byte is B, low byte
	// is the immediate operand or C depending on addressing form.
	CPUInp(port uint16) uint8
	// CPUOutp satisfies an OUT instruction.
	CPUOutp(port uint16, val uint8)

	// IRQ is called by a peripheral (via the host) to request an
	// interrupt on the daisychain controller ctrlID, carrying vector vec.
	IRQ(ctrlID int, vec uint8)
	// IRQAck is called by the CPU during the mode-0 and mode-2 acknowledge
	// sequences; it returns the interrupt vector byte (mode 2) or the
	// opcode the CPU executes (mode 0).
	IRQAck() uint8
	// IRQReti is called by the CPU when it executes RETI.
	IRQReti()

	// PIOOutp delivers a byte a PIO channel latched from the Z80 side.
	PIOOutp(pioID, channel int, data uint8)
	// PIOInp asks the host for the current value of a PIO channel's
	// external input line.
	PIOInp(pioID, channel int) uint8
	// PIORdy notifies the host that a PIO channel's RDY line changed.
	PIORdy(pioID, channel int, rdy bool)
	// PIOIRQ forwards a PIO channel's interrupt request (ctrlID,vec) to
	// the daisychain.
	PIOIRQ(pioID, channel int, vec uint8)

	// CTCWrite notifies the host that a CTC channel accepted a new
	// control word or time constant.
	CTCWrite(channel int, ctc *CTC)
	// CTCZero notifies the host that a CTC channel's down-counter
	// reached zero.
	CTCZero(channel int, ctc *CTC)
	// CTCIRQ forwards a CTC channel's interrupt request to the
	// daisychain.
	CTCIRQ(ctcID, channel int, vec uint8)
}

// NoopBus implements Bus with harmless defaults (0 on reads, nothing on
// writes/notifications). Hosts can embed it and override only the methods
// their machine needs.
type NoopBus struct{}

func (NoopBus) CPUInp(port uint16) uint8        { return 0 }
func (NoopBus) CPUOutp(port uint16, val uint8)  {}
func (NoopBus) IRQ(ctrlID int, vec uint8)       {}
func (NoopBus) IRQAck() uint8                   { return 0 }
func (NoopBus) IRQReti()                        {}
func (NoopBus) PIOOutp(pioID, ch int, v uint8)  {}
func (NoopBus) PIOInp(pioID, ch int) uint8      { return 0 }
func (NoopBus) PIORdy(pioID, ch int, rdy bool)  {}
func (NoopBus) PIOIRQ(pioID, ch int, vec uint8) {}
func (NoopBus) CTCWrite(ch int, ctc *CTC)       {}
func (NoopBus) CTCZero(ch int, ctc *CTC)        {}
func (NoopBus) CTCIRQ(id, ch int, vec uint8)    {}
