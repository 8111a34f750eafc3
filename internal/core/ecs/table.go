package ecs

import (
	"reflect"

	"go.uber.org/zap"
)

// sized is the type-erased view of a Registry the Table keeps.
type sized interface {
	Name() string
	Len() int
	close()
}

// TypeStats is a point-in-time count for one registry.
type TypeStats struct {
	Type  string
	Count int
}

// Table owns one Registry per element type, created lazily on first use.
// The owner decides its lifetime and closes it with Reset at shutdown.
// Like Registry, a Table is not safe for concurrent use.
type Table struct {
	opts  Options
	regs  map[reflect.Type]sized
	order []reflect.Type
}

func NewTable(opts Options) *Table {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Table{
		opts: opts,
		regs: make(map[reflect.Type]sized, 16),
	}
}

// For returns the registry for T, creating it on first use.
func For[T Member](tb *Table) *Registry[T] {
	t := typeOf[T]()
	if r, ok := tb.regs[t]; ok {
		return r.(*Registry[T])
	}
	r := NewRegistry[T](tb.opts)
	tb.regs[t] = r
	tb.order = append(tb.order, t)
	tb.opts.Log.Debug("registry created", zap.String("type", r.Name()))
	return r
}

// Types returns the number of registries created so far.
func (tb *Table) Types() int { return len(tb.order) }

// Stats returns per-type counts in registry creation order.
func (tb *Table) Stats() []TypeStats {
	out := make([]TypeStats, 0, len(tb.order))
	for _, t := range tb.order {
		r := tb.regs[t]
		out = append(out, TypeStats{Type: r.Name(), Count: r.Len()})
	}
	return out
}

// Reset closes every registry and forgets them. Outstanding tokens become
// no-ops and later For calls start from empty registries.
func (tb *Table) Reset() {
	for _, t := range tb.order {
		tb.regs[t].close()
	}
	clear(tb.regs)
	tb.order = tb.order[:0]
}
