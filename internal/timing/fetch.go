package timing

import (
	"github.com/mbellamy/vmips/internal/isa"
	"github.com/mbellamy/vmips/internal/register"
	"github.com/mbellamy/vmips/internal/trace"
)

// Fetch is the timing core's fetch stage: a cursor over the resolved
// trace produced by the functional run. It presents one instruction per
// cycle to decode, except MTCL, which it holds back until the rest of
// the pipeline has fully drained (spec.md §4.3) — MTCL changes the
// vector length every later instruction's latency depends on, and the
// timing core has no way to unwind a compute or data engine that is
// already mid-flight with the old length.
type Fetch struct {
	entries []trace.Entry
	idx     int
	done    bool
	vl      int
}

// NewFetch builds a fetch stage over a resolved trace. The vector length
// starts at the maximum vector length, matching the functional core's
// reset state (spec.md §3).
func NewFetch(entries []trace.Entry) *Fetch {
	return &Fetch{entries: entries, vl: register.MVL}
}

// Completed reports whether every entry has been presented to decode.
func (f *Fetch) Completed() bool {
	return f.done
}

// Tick presents the next instruction, unless it is MTCL and drained is
// false, in which case fetch stalls and returns nil. drained must report
// whether decode's queues and every engine are empty this cycle.
func (f *Fetch) Tick(drained bool) *Decoded {
	if f.done {
		return nil
	}

	if f.idx >= len(f.entries) {
		f.done = true
		return nil
	}

	entry := f.entries[f.idx]

	if entry.In.Op == isa.MTCL && !drained {
		return nil
	}

	f.idx++

	d := Classify(entry, f.vl)

	if entry.In.Op == isa.MTCL {
		f.vl = int(entry.In.Operands[0].Imm)
	}

	if f.idx >= len(f.entries) {
		f.done = true
	}

	return &d
}
