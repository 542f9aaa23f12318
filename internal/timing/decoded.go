// Package timing implements the cycle-driven timing simulator: a
// four-stage pipeline (fetch, decode+scoreboard, compute, data) that
// replays a resolved trace and counts the cycles it takes to retire,
// honoring structural hazards on the three compute pipelines and the
// banked vector memory, and data hazards via a scoreboard. Grounded on
// the teacher's single-threaded, cycle-stepped CPU loop
// (internal/vm/exec.go), generalized from one instruction per step to
// a multi-stage, multi-instruction-in-flight pipeline — the shape the
// domain calls for and that sarchlab's cycle-level simulators use.
package timing

import (
	"github.com/mbellamy/vmips/internal/isa"
	"github.com/mbellamy/vmips/internal/trace"
)

// Decoded is the timing-side decoded instruction record (spec.md §3): an
// opcode, its class and pipeline, its destination/source register IDs,
// and — for vector memory ops — the address list the functional run
// already resolved.
type Decoded struct {
	Op       isa.Opcode
	Class    isa.Class
	Pipeline isa.Pipeline

	SDest int // -1 if none
	VDest int // -1 if none

	SSrc []int
	VSrc []int

	Addrs []int
	VL    int // vector length in effect when this instruction was fetched
}

// Classify builds a Decoded record from a resolved trace entry and the
// vector length in effect at fetch time, reproducing the opcode ->
// operand-role map from internal/isa exactly.
func Classify(e trace.Entry, vl int) Decoded {
	roles := isa.Roles(e.In)

	return Decoded{
		Op:       e.In.Op,
		Class:    isa.ClassOf(e.In.Op),
		Pipeline: isa.PipelineOf(e.In.Op),
		SDest:    roles.DestScalar,
		VDest:    roles.DestVector,
		SSrc:     roles.SourceScalars,
		VSrc:     roles.SourceVectors,
		Addrs:    e.Addrs,
		VL:       vl,
	}
}
