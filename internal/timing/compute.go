package timing

import "github.com/mbellamy/vmips/internal/isa"

// ComputeEngine models the three independent vector functional-unit
// pipelines (add/sub, multiply, divide). Each pipeline processes at most
// one instruction at a time; its occupancy is lane-scaled per spec.md
// §4.5: remaining = depth + ceil(VL/lanes) - 1 cycles from the cycle it
// is dispatched.
type ComputeEngine struct {
	lanes  int
	depths [3]int
	busy   [3]*Decoded
	remain [3]int

	// justDispatched marks a pipeline that was occupied this cycle, so
	// Tick skips its decrement: an instruction never completes in the
	// same cycle it is dispatched.
	justDispatched [3]bool
}

// NewComputeEngine builds a compute engine with the configured per-pipeline
// depths (add, mul, div) and lane count.
func NewComputeEngine(depthAdd, depthMul, depthDiv, lanes int) *ComputeEngine {
	return &ComputeEngine{
		lanes:  lanes,
		depths: [3]int{int(isa.PipelineAdd): depthAdd, int(isa.PipelineMul): depthMul, int(isa.PipelineDiv): depthDiv},
	}
}

// Free reports whether pipeline p can accept a new instruction this cycle.
func (c *ComputeEngine) Free(p isa.Pipeline) bool {
	return c.busy[p] == nil
}

// Dispatch occupies pipeline d.Pipeline with d, starting its lane-scaled
// countdown.
func (c *ComputeEngine) Dispatch(d Decoded) {
	p := d.Pipeline
	c.busy[p] = &d
	c.remain[p] = c.depths[p] + ceilDiv(d.VL, c.lanes) - 1

	if c.remain[p] < 0 {
		c.remain[p] = 0
	}

	c.justDispatched[p] = true
}

// Tick advances every occupied pipeline that wasn't dispatched this same
// cycle by one cycle, and returns the instructions that complete (return
// to FREE) this cycle, in pipeline order (add, mul, div).
func (c *ComputeEngine) Tick() []Decoded {
	var done []Decoded

	for i := 0; i < 3; i++ {
		if c.busy[i] == nil {
			continue
		}

		if c.justDispatched[i] {
			c.justDispatched[i] = false
			continue
		}

		if c.remain[i] > 0 {
			c.remain[i]--
		}

		if c.remain[i] == 0 {
			done = append(done, *c.busy[i])
			c.busy[i] = nil
		}
	}

	return done
}

// Idle reports whether every pipeline is free.
func (c *ComputeEngine) Idle() bool {
	return c.busy[0] == nil && c.busy[1] == nil && c.busy[2] == nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}

	return (a + b - 1) / b
}
