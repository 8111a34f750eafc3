package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ping struct{ N int }
type pong struct{ S string }

func TestBus_DeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(p ping) { got = append(got, p.N) })

	Emit(b, ping{N: 1})
	Emit(b, ping{N: 2})
	assert.Zero(t, b.DispatchAll(), "nothing is readable before the swap")

	b.SwapBuffers()
	assert.Equal(t, 2, b.DispatchAll())
	assert.Equal(t, []int{1, 2}, got)

	b.SwapBuffers()
	assert.Zero(t, b.DispatchAll())
	assert.Equal(t, []int{1, 2}, got)
}

func TestBus_TypesAreIsolated(t *testing.T) {
	b := NewBus()
	var pings, pongs int
	Subscribe(b, func(ping) { pings++ })
	Subscribe(b, func(pong) { pongs++ })
	Subscribe(b, func(pong) { pongs++ })

	Emit(b, pong{S: "x"})
	Emit(b, ping{})
	b.SwapBuffers()
	assert.Equal(t, 2, b.DispatchAll())
	assert.Equal(t, 1, pings)
	assert.Equal(t, 2, pongs)
}
