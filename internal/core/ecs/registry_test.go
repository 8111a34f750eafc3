package ecs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	Slot
	name string
}

func newProbes(names ...string) []*probe {
	out := make([]*probe, len(names))
	for i, n := range names {
		out[i] = &probe{name: n}
	}
	return out
}

func names(r *Registry[*probe]) []string {
	var out []string
	for _, p := range r.Instances() {
		out = append(out, p.name)
	}
	return out
}

// requireConsistent checks density and self-index correctness against the
// expected live set.
func requireConsistent(t *testing.T, r *Registry[*probe], live map[*probe]bool) {
	t.Helper()
	require.Equal(t, len(live), r.Len())
	seen := make(map[*probe]bool, r.Len())
	for i := 0; i < r.Len(); i++ {
		p, ok := r.At(i)
		require.True(t, ok, "gap at %d", i)
		require.True(t, live[p], "index %d holds a dead instance", i)
		require.False(t, seen[p], "instance %s appears twice", p.name)
		seen[p] = true
	}
	for p := range live {
		got, ok := r.At(p.SlotIndex())
		require.True(t, ok)
		require.Same(t, p, got, "self index of %s is stale", p.name)
	}
}

func TestRegistry_RegisterAssignsTailIndex(t *testing.T) {
	r := NewRegistry[*probe](Options{Checks: true})
	ps := newProbes("a", "b", "c", "d")
	for i, p := range ps {
		r.Register(p)
		assert.Equal(t, i, p.SlotIndex())
		assert.True(t, p.Registered())
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(r))
}

func TestRegistry_SwapCorrectionScenario(t *testing.T) {
	r := NewRegistry[*probe](Options{Checks: true})
	ps := newProbes("A", "B", "C", "D")
	toks := make([]*Token[*probe], len(ps))
	for i, p := range ps {
		toks[i] = r.Register(p)
	}
	a, b, c, d := ps[0], ps[1], ps[2], ps[3]

	toks[1].Release()
	assert.Equal(t, []string{"A", "D", "C"}, names(r))
	assert.Equal(t, 1, d.SlotIndex())
	assert.False(t, b.Registered())
	assert.Equal(t, -1, b.SlotIndex())

	toks[0].Release()
	assert.Equal(t, []string{"C", "D"}, names(r))
	assert.Equal(t, 0, c.SlotIndex())
	assert.Equal(t, 1, d.SlotIndex())
	assert.Equal(t, 2, r.Len())
	assert.False(t, a.Registered())
}

func TestRegistry_RemovingLastRelocatesNothing(t *testing.T) {
	r := NewRegistry[*probe](Options{Checks: true})
	ps := newProbes("a", "b", "c")
	for _, p := range ps {
		r.Register(p)
	}
	r.Unregister(ps[2])
	assert.Equal(t, 0, ps[0].SlotIndex())
	assert.Equal(t, 1, ps[1].SlotIndex())
	assert.Equal(t, []string{"a", "b"}, names(r))
}

func TestRegistry_RemovalOrderIndependence(t *testing.T) {
	orders := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, order := range orders {
		r := NewRegistry[*probe](Options{Checks: true})
		ps := newProbes("A", "B", "C")
		live := make(map[*probe]bool)
		for _, p := range ps {
			r.Register(p)
			live[p] = true
		}
		for _, i := range order {
			r.Unregister(ps[i])
			delete(live, ps[i])
			requireConsistent(t, r, live)
		}
		assert.Zero(t, r.Len(), "order %v", order)
	}
}

func TestRegistry_RandomInterleavings(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := NewRegistry[*probe](Options{Checks: true})
	live := make(map[*probe]bool)
	var alive []*probe

	for step := 0; step < 5000; step++ {
		if len(alive) == 0 || rng.Intn(3) > 0 {
			p := &probe{name: "p"}
			r.Register(p)
			live[p] = true
			alive = append(alive, p)
		} else {
			k := rng.Intn(len(alive))
			p := alive[k]
			alive[k] = alive[len(alive)-1]
			alive = alive[:len(alive)-1]
			r.Unregister(p)
			delete(live, p)
		}
		if step%50 == 0 {
			requireConsistent(t, r, live)
		}
	}
	requireConsistent(t, r, live)
}

func TestRegistry_At(t *testing.T) {
	r := NewRegistry[*probe](Options{})
	_, ok := r.At(0)
	assert.False(t, ok)

	p := &probe{name: "x"}
	r.Register(p)
	got, ok := r.At(0)
	require.True(t, ok)
	assert.Same(t, p, got)

	_, ok = r.At(1)
	assert.False(t, ok)
	_, ok = r.At(-1)
	assert.False(t, ok, "negative index without checks is absent")
}

func TestRegistry_FirstOther(t *testing.T) {
	r := NewRegistry[*probe](Options{Checks: true})
	x, y := &probe{name: "x"}, &probe{name: "y"}

	_, ok := r.FirstOther(nil)
	assert.False(t, ok, "empty registry")

	r.Register(x)
	_, ok = r.FirstOther(x)
	assert.False(t, ok, "only the excluded instance")
	got, ok := r.FirstOther(nil)
	require.True(t, ok)
	assert.Same(t, x, got)

	r.Register(y)
	got, ok = r.FirstOther(x)
	require.True(t, ok)
	assert.Same(t, y, got)

	// Put x behind y and ask again.
	r.Unregister(x)
	r.Register(x)
	got, ok = r.FirstOther(x)
	require.True(t, ok)
	assert.Same(t, y, got)

	got, ok = r.FirstOther(y)
	require.True(t, ok)
	assert.Same(t, x, got)
}

func TestRegistry_FirstOtherPicksLowestIndex(t *testing.T) {
	r := NewRegistry[*probe](Options{})
	ps := newProbes("a", "b", "c")
	for _, p := range ps {
		r.Register(p)
	}
	got, ok := r.FirstOther(ps[0])
	require.True(t, ok)
	assert.Same(t, ps[1], got)
}

func TestRegistry_DrainAndRefill(t *testing.T) {
	r := NewRegistry[*probe](Options{Checks: true})
	first := newProbes("a", "b", "c")
	for _, p := range first {
		r.Register(p)
	}
	for _, p := range first {
		r.Unregister(p)
	}
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Instances())

	fresh := NewRegistry[*probe](Options{Checks: true})
	second := newProbes("d", "e")
	for _, p := range second {
		r.Register(p)
	}
	for _, p := range newProbes("d", "e") {
		fresh.Register(p)
	}
	assert.Equal(t, names(fresh), names(r))
	assert.Equal(t, 0, second[0].SlotIndex())
	assert.Equal(t, 1, second[1].SlotIndex())
}

func TestRegistry_InstancesViewIsClipped(t *testing.T) {
	r := NewRegistry[*probe](Options{Capacity: 8})
	a, b := &probe{name: "a"}, &probe{name: "b"}
	r.Register(a)
	r.Register(b)
	r.Unregister(b)

	view := r.Instances()
	require.Len(t, view, 1)
	assert.Equal(t, 1, cap(view))
	grown := append(view, b)
	assert.Len(t, grown, 2)
	assert.Equal(t, 1, r.Len())
	_, ok := r.At(1)
	assert.False(t, ok)
}

func TestRegistry_ContainsAndIndex(t *testing.T) {
	r := NewRegistry[*probe](Options{})
	other := NewRegistry[*probe](Options{})
	a, b := &probe{name: "a"}, &probe{name: "b"}
	r.Register(a)
	other.Register(b)

	assert.True(t, r.Contains(a))
	assert.False(t, r.Contains(b))
	assert.False(t, r.Contains(nil))

	i, ok := r.Index(a)
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	_, ok = r.Index(b)
	assert.False(t, ok)
}

func TestRegistry_Each(t *testing.T) {
	r := NewRegistry[*probe](Options{})
	for _, p := range newProbes("a", "b", "c") {
		r.Register(p)
	}
	var got []string
	r.Each(func(i int, p *probe) {
		assert.Equal(t, i, p.SlotIndex())
		got = append(got, p.name)
	})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestRegistry_ChecksPanicOnMisuse(t *testing.T) {
	r := NewRegistry[*probe](Options{Checks: true})
	p := &probe{name: "p"}

	assert.Panics(t, func() { r.Register(nil) })
	assert.Panics(t, func() { r.Unregister(p) }, "never registered")

	tok := r.Register(p)
	assert.Panics(t, func() { r.Register(p) }, "registered twice")
	assert.Panics(t, func() { r.At(-1) })

	tok.Release()
	assert.True(t, tok.Released())
	assert.Panics(t, func() { tok.Release() }, "double release")
}

func TestRegistry_ChecksCatchStaleIndex(t *testing.T) {
	r := NewRegistry[*probe](Options{Checks: true})
	a, b := &probe{name: "a"}, &probe{name: "b"}
	r.Register(a)
	r.Register(b)
	b.index = 0
	assert.Panics(t, func() { r.Unregister(b) })
}

func TestToken_ReleaseWithoutChecksIsIdempotent(t *testing.T) {
	r := NewRegistry[*probe](Options{})
	a, b := &probe{name: "a"}, &probe{name: "b"}
	ta := r.Register(a)
	r.Register(b)

	ta.Release()
	ta.Release()
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 0, b.SlotIndex())
	assert.Same(t, a, ta.Instance())
}

func TestToken_DeferredRelease(t *testing.T) {
	r := NewRegistry[*probe](Options{Checks: true})
	func() {
		p := &probe{name: "scoped"}
		defer r.Register(p).Release()
		assert.Equal(t, 1, r.Len())
	}()
	assert.Zero(t, r.Len())
}
