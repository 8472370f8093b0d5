package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingBus struct {
	NoopBus
	irqs []uint8
}

func (b *recordingBus) PIOIRQ(pioID, channel int, vec uint8) {
	b.irqs = append(b.irqs, vec)
}

func TestPIOResetIsInputModeMaskAllOnes(t *testing.T) {
	p := NewPIO(0)
	p.Reset()
	assert.Equal(t, PIOModeInput, p.chn[PIOChannelA].mode)
	assert.Equal(t, uint8(0xFF), p.chn[PIOChannelA].intMask)
}

func TestPIOWriteControlSetsMode(t *testing.T) {
	p := NewPIO(0)
	p.WriteControl(PIOChannelA, 0xCF) // mode=3 (bit control) in bits 7:6, low nibble 0xF
	assert.Equal(t, PIOModeBitControl, p.chn[PIOChannelA].mode)
	// bit-control mode expects an IO-select byte next
	p.WriteControl(PIOChannelA, 0x0F)
	assert.Equal(t, uint8(0x0F), p.chn[PIOChannelA].ioSelect)
}

func TestPIOBidirectionalOnChannelBPanics(t *testing.T) {
	p := NewPIO(0)
	assert.Panics(t, func() {
		p.WriteControl(PIOChannelB, 0x8F) // mode=2 (bidirectional)
	})
}

func TestPIOOutputWriteReadRoundtrip(t *testing.T) {
	p := NewPIO(0)
	p.WriteControl(PIOChannelA, 0x0F) // mode=0 (output)
	bus := &recordingBus{}
	p.WriteData(bus, PIOChannelA, 0x77)
	assert.Equal(t, uint8(0x77), p.ReadData(bus, PIOChannelA))
}

func TestPIOBitControlEdgeFiresInterrupt(t *testing.T) {
	p := NewPIO(0)
	p.WriteControl(PIOChannelA, 0xCF) // bit-control mode
	p.WriteControl(PIOChannelA, 0xFF) // all bits are inputs
	// interrupt control (low nibble 0x7): enabled, AND, HIGH, mask follows
	p.WriteControl(PIOChannelA, PIOIntCtrlEnable|PIOIntCtrlAndOr|PIOIntCtrlHighLow|PIOIntCtrlMaskFollows|0x07)
	p.WriteControl(PIOChannelA, 0x00) // mask: every bit participates (unmasked)

	bus := &recordingBus{}
	p.chn[PIOChannelA].intVector = 0x55
	p.Write(bus, PIOChannelA, 0xFF) // AND+HIGH requires val == mask to fire
	assert.Equal(t, []uint8{0x55}, bus.irqs)

	p.Write(bus, PIOChannelA, 0xFF) // no edge (already matched) — no new interrupt
	assert.Len(t, bus.irqs, 1)
}
