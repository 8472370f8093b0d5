package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaisychainResetEnablesAll(t *testing.T) {
	d := NewDaisychain(3)
	for i := 0; i < 3; i++ {
		assert.True(t, d.ctrl[i].enabled)
		assert.False(t, d.ctrl[i].requested)
		assert.False(t, d.ctrl[i].pending)
	}
}

// Three controllers; controller 1 requests. The request should disable
// controller 2 (downstream) and leave controller 0 (upstream) enabled;
// acknowledging it marks it pending; RETI should re-enable everything and
// clear the pending flag.
func TestDaisychainPriorityAndReti(t *testing.T) {
	d := NewDaisychain(3)

	d.IRQ(1, 0x40)
	assert.True(t, d.ctrl[0].enabled)
	assert.False(t, d.ctrl[1].enabled)
	assert.False(t, d.ctrl[2].enabled)

	vec := d.IRQAck()
	assert.Equal(t, uint8(0x40), vec)
	assert.True(t, d.ctrl[1].pending)
	assert.False(t, d.ctrl[1].requested)

	d.IRQReti()
	for i := 0; i < 3; i++ {
		assert.True(t, d.ctrl[i].enabled)
		assert.False(t, d.ctrl[i].pending)
	}
}

func TestDaisychainUpstreamPreemptsDownstream(t *testing.T) {
	d := NewDaisychain(3)

	d.IRQ(1, 0x10) // disables 1, 2
	d.IRQ(2, 0x20) // controller 2 already disabled, request ignored
	assert.False(t, d.ctrl[2].requested)

	vec := d.IRQAck()
	assert.Equal(t, uint8(0x10), vec) // only controller 1's request was live
}

func TestDaisychainIRQAckPanicsWithoutPending(t *testing.T) {
	d := NewDaisychain(1)
	assert.Panics(t, func() { d.IRQAck() })
}

func TestDaisychainHasPendingInterrupt(t *testing.T) {
	d := NewDaisychain(1)
	assert.False(t, d.HasPendingInterrupt())
	d.IRQ(0, 0x08)
	assert.True(t, d.HasPendingInterrupt())
	d.IRQAck()
	assert.False(t, d.HasPendingInterrupt())
}
