// Package machine wires a CPU, two PIOs, a CTC and an interrupt
// daisychain into one Bus implementation, the System struct shape a
// home-computer emulator builds around these four components.
// Port addresses below are this demo host's own convention, not part of
// the core: a real machine's I/O map is host-specific.
package machine

import (
	"fmt"
	"os"

	"github.com/oisee/z80core/pkg/z80"
)

const (
	ctrlPIO1 = 0
	ctrlPIO2 = 1
	ctrlCTC  = 2
)

// System is a minimal home-computer-shaped host: full RAM with a ROM
// image overlaid read-only at a configurable address, two PIOs and a CTC
// on the low I/O ports, all three wired into one interrupt daisychain in
// PIO1 > PIO2 > CTC priority order.
type System struct {
	z80.NoopBus

	Mem   *z80.Memory
	CPU   *z80.CPU
	PIO1  *z80.PIO
	PIO2  *z80.PIO
	CTC   *z80.CTC
	Daisy *z80.Daisychain
}

// New loads romPath into memory at loadAddr (read-only, overlaying RAM)
// and sets the initial program counter to startAddr.
func New(romPath string, loadAddr, startAddr uint16) (*System, error) {
	data, err := os.ReadFile(romPath)
	if err != nil {
		return nil, fmt.Errorf("machine: reading ROM: %w", err)
	}
	if int(loadAddr)&0x3FF != 0 {
		return nil, fmt.Errorf("machine: load address %#04x is not 1 KiB-aligned", loadAddr)
	}

	mem := z80.NewMemory()
	mem.Map(1, 0, 0, true, 0x10000) // RAM: full address space, layer 1

	padded := make([]byte, roundUpPage(len(data)))
	copy(padded, data)
	mem.MapBytes(0, 0x10000, int(loadAddr), false, padded) // ROM: layer 0, read-only, overrides RAM

	cpu := z80.NewCPU()
	cpu.Mem = mem
	cpu.Reg.SetPC(startAddr)

	sys := &System{
		Mem:   mem,
		CPU:   cpu,
		PIO1:  z80.NewPIO(0),
		PIO2:  z80.NewPIO(1),
		CTC:   z80.NewCTC(0),
		Daisy: z80.NewDaisychain(3),
	}
	return sys, nil
}

func roundUpPage(n int) int {
	const pageSize = 1024
	return (n + pageSize - 1) &^ (pageSize - 1)
}

// Run executes steps instructions (servicing any pending interrupt first,
// per z80.CPU.Step) and advances the CTC's timers by each instruction's
// cost. Returns the total T-states consumed.
func (s *System) Run(steps int) int {
	total := 0
	for i := 0; i < steps; i++ {
		cyc := s.CPU.Step(s)
		s.CTC.UpdateTimers(s, cyc)
		total += cyc
	}
	return total
}

// --- z80.Bus ---

// CPUInp/CPUOutp route the low I/O ports to the two PIOs (data+control,
// channel A then B) and the four CTC channels; everything else floats
// high (0xFF on input, dropped on output).
func (s *System) CPUInp(port uint16) uint8 {
	switch port & 0xFF {
	case 0x00:
		return s.PIO1.ReadData(s, z80.PIOChannelA)
	case 0x01:
		return s.PIO1.ReadData(s, z80.PIOChannelB)
	case 0x02:
		return s.PIO1.ReadControl()
	case 0x04:
		return s.PIO2.ReadData(s, z80.PIOChannelA)
	case 0x05:
		return s.PIO2.ReadData(s, z80.PIOChannelB)
	case 0x06:
		return s.PIO2.ReadControl()
	case 0x08, 0x09, 0x0A, 0x0B:
		return uint8(s.CTC.Read(int(port&0xFF) - 0x08))
	}
	return 0xFF
}

func (s *System) CPUOutp(port uint16, val uint8) {
	switch port & 0xFF {
	case 0x00:
		s.PIO1.WriteData(s, z80.PIOChannelA, val)
	case 0x01:
		s.PIO1.WriteData(s, z80.PIOChannelB, val)
	case 0x02:
		s.PIO1.WriteControl(z80.PIOChannelA, val)
	case 0x03:
		s.PIO1.WriteControl(z80.PIOChannelB, val)
	case 0x04:
		s.PIO2.WriteData(s, z80.PIOChannelA, val)
	case 0x05:
		s.PIO2.WriteData(s, z80.PIOChannelB, val)
	case 0x06:
		s.PIO2.WriteControl(z80.PIOChannelA, val)
	case 0x07:
		s.PIO2.WriteControl(z80.PIOChannelB, val)
	case 0x08, 0x09, 0x0A, 0x0B:
		s.CTC.Write(s, int(port&0xFF)-0x08, val)
	}
}

// IRQ forwards a peripheral's interrupt request into the daisychain and
// notifies the CPU that an acknowledge cycle will be needed at the next
// instruction boundary.
func (s *System) IRQ(ctrlID int, vec uint8) {
	s.Daisy.IRQ(ctrlID, vec)
	s.CPU.RequestInterrupt()
}

func (s *System) IRQAck() uint8 { return s.Daisy.IRQAck() }
func (s *System) IRQReti()      { s.Daisy.IRQReti() }

func (s *System) PIOIRQ(pioID, channel int, vec uint8) {
	if pioID == s.PIO1.ID() {
		s.IRQ(ctrlPIO1, vec)
	} else {
		s.IRQ(ctrlPIO2, vec)
	}
}

func (s *System) CTCIRQ(ctcID, channel int, vec uint8) {
	s.IRQ(ctrlCTC, vec)
}
