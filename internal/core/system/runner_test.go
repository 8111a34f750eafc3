package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }

func (r recorder) Update(time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunner_PhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"cleanup", PhaseCleanup, &log})
	r.Register(recorder{"render", PhaseUpdate, &log})
	r.Register(recorder{"input", PhaseInput, &log})
	r.Register(recorder{"physics", PhaseUpdate, &log})

	assert.Equal(t, uint64(1), r.Tick(time.Millisecond))
	assert.Equal(t, []string{"input", "render", "physics", "cleanup"}, log)

	r.Tick(time.Millisecond)
	assert.Equal(t, uint64(2), r.Ticks())
	assert.Len(t, log, 8)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "update", PhaseUpdate.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
