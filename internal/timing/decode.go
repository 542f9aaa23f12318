package timing

import "github.com/mbellamy/vmips/internal/isa"

// Decode is the decode+issue stage: a scoreboard, an unbounded priority
// queue of instructions that have cleared fetch but not yet a hazard
// check, and the three class queues (compute, data, scalar) that feed
// the execution engines. It implements the four-step issue rule of
// spec.md §4.4 verbatim: pop a ready compute instruction if its pipeline
// is free, pop a ready data instruction if the data engine is free, pop
// a scalar instruction unconditionally, then admit at most one
// dispatchable entry from the priority queue, scanning from the head
// and promoting the first one whose hazards are clear and whose class
// queue has room — even if an earlier, still-blocked entry is skipped
// over in the process.
type Decode struct {
	sb Scoreboard

	priority []Decoded
	compute  []Decoded
	data     []Decoded
	scalar   []Decoded

	computeDepth int
	dataDepth    int
}

// NewDecode builds a decode stage with the given bounded class-queue
// depths (spec.md's computeQueueDepth and dataQueueDepth).
func NewDecode(computeDepth, dataDepth int) *Decode {
	return &Decode{computeDepth: computeDepth, dataDepth: dataDepth}
}

// QueuesEmpty reports whether every queue decode owns is empty. Combined
// with the compute and data engines' own idle checks, this is the drain
// condition fetch waits on before releasing a stalled MTCL.
func (d *Decode) QueuesEmpty() bool {
	return len(d.priority) == 0 && len(d.compute) == 0 && len(d.data) == 0 && len(d.scalar) == 0
}

// Tick runs one cycle of the issue rule. computeFree reports whether the
// named compute pipeline can accept work this cycle; dataFree reports
// the same for the data engine. fetched is the instruction fetch
// presented this cycle, or nil if fetch stalled or has nothing left.
// Tick returns the instruction (if any) newly dispatched to the compute
// and data engines.
func (d *Decode) Tick(fetched *Decoded, computeFree func(isa.Pipeline) bool, dataFree bool) (toCompute, toData *Decoded) {
	if len(d.compute) > 0 && computeFree(d.compute[0].Pipeline) {
		head := d.compute[0]
		d.compute = d.compute[1:]
		toCompute = &head
	}

	if len(d.data) > 0 && dataFree {
		head := d.data[0]
		d.data = d.data[1:]
		toData = &head
	}

	if len(d.scalar) > 0 {
		head := d.scalar[0]
		d.scalar = d.scalar[1:]
		d.sb.Release(head)
	}

	if fetched != nil {
		d.priority = append(d.priority, *fetched)
	}

	for i, cand := range d.priority {
		if !d.sb.Ready(cand) || !d.hasRoom(cand.Class) {
			continue
		}

		d.sb.Reserve(cand)
		d.enqueue(cand)
		d.priority = append(d.priority[:i], d.priority[i+1:]...)

		break
	}

	return toCompute, toData
}

// Release clears d's destination register in the scoreboard, called
// once d retires out of the compute or data engine.
func (d *Decode) Release(dec Decoded) {
	d.sb.Release(dec)
}

func (d *Decode) hasRoom(c isa.Class) bool {
	switch c {
	case isa.ClassCompute:
		return len(d.compute) < d.computeDepth
	case isa.ClassData:
		return len(d.data) < d.dataDepth
	default:
		return true
	}
}

func (d *Decode) enqueue(dec Decoded) {
	switch dec.Class {
	case isa.ClassCompute:
		d.compute = append(d.compute, dec)
	case isa.ClassData:
		d.data = append(d.data, dec)
	default:
		d.scalar = append(d.scalar, dec)
	}
}
