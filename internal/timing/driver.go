package timing

import (
	"context"

	"github.com/mbellamy/vmips/internal/config"
	"github.com/mbellamy/vmips/internal/log"
	"github.com/mbellamy/vmips/internal/trace"
)

// Driver runs the timing core's cycle loop: fetch, then decode/issue,
// then tick the compute engine, then tick the data engine, once per
// cycle, grounded on the teacher's single cycle-stepped Run loop
// (internal/vm/exec.go) generalized to the four concurrently-advancing
// stages of spec.md §4. Each cycle's engine ticks see the instruction
// decode dispatched that same cycle. ComputeEngine skips ticking a
// pipeline on the cycle it is freshly dispatched, so a compute
// instruction never completes in its dispatch cycle; DataEngine does not
// skip, and starts admitting addresses in the dispatch cycle itself.
type Driver struct {
	fetch   *Fetch
	decode  *Decode
	compute *ComputeEngine
	data    *DataEngine

	Cycles uint64

	log *log.Logger
}

// NewDriver builds a driver over a resolved trace, sized per cfg.
func NewDriver(entries []trace.Entry, cfg config.Config) *Driver {
	return &Driver{
		fetch:   NewFetch(entries),
		decode:  NewDecode(cfg.ComputeQueueDepth, cfg.DataQueueDepth),
		compute: NewComputeEngine(cfg.PipelineDepthAdd, cfg.PipelineDepthMul, cfg.PipelineDepthDiv, cfg.NumLanes),
		data:    NewDataEngine(cfg.VDMNumBanks, cfg.VLSPipelineDepth),
		log:     log.DefaultLogger(),
	}
}

// Run replays the resolved trace to completion, returning the number of
// cycles it took: fetch has presented every entry and decode's queues
// and both engines are idle. ctx cancellation is checked once per cycle.
func (dr *Driver) Run(ctx context.Context) (uint64, error) {
	for {
		select {
		case <-ctx.Done():
			return dr.Cycles, ctx.Err()
		default:
		}

		drained := dr.decode.QueuesEmpty() && dr.compute.Idle() && dr.data.Idle()

		if dr.fetch.Completed() && drained {
			dr.log.Info("TIMING DONE", "CYCLES", dr.Cycles)
			return dr.Cycles, nil
		}

		fetched := dr.fetch.Tick(drained)

		toCompute, toData := dr.decode.Tick(fetched, dr.compute.Free, dr.data.Free())

		if toCompute != nil {
			dr.compute.Dispatch(*toCompute)
		}

		if toData != nil {
			dr.data.Dispatch(*toData)
		}

		for _, done := range dr.compute.Tick() {
			dr.decode.Release(done)
		}

		if done := dr.data.Tick(); done != nil {
			dr.decode.Release(*done)
		}

		dr.Cycles++

		dr.log.Debug("tick", log.Cycle(dr.Cycles))
	}
}
