package timing_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mbellamy/vmips/internal/config"
	"github.com/mbellamy/vmips/internal/isa"
	"github.com/mbellamy/vmips/internal/timing"
	"github.com/mbellamy/vmips/internal/trace"
)

func addvv(dest, a, b int) isa.Instruction {
	return isa.Instruction{Op: isa.ADDVV, Operands: []isa.Operand{
		{Kind: isa.KindVector, Reg: dest},
		{Kind: isa.KindVector, Reg: a},
		{Kind: isa.KindVector, Reg: b},
	}}
}

func mulvv(dest, a, b int) isa.Instruction {
	return isa.Instruction{Op: isa.MULVV, Operands: []isa.Operand{
		{Kind: isa.KindVector, Reg: dest},
		{Kind: isa.KindVector, Reg: a},
		{Kind: isa.KindVector, Reg: b},
	}}
}

func lv(dest, base int, addrs []int) trace.Entry {
	in := isa.Instruction{Op: isa.LV, Operands: []isa.Operand{
		{Kind: isa.KindVector, Reg: dest},
		{Kind: isa.KindScalar, Reg: base},
	}}
	return trace.Entry{In: in, Addrs: addrs}
}

var _ = Describe("Scoreboard", func() {
	It("blocks an instruction whose source overlaps an in-flight destination", func() {
		var sb timing.Scoreboard

		producer := timing.Classify(trace.Entry{In: mulvv(1, 2, 3)}, 64)
		consumer := timing.Classify(trace.Entry{In: addvv(4, 1, 5)}, 64)

		Expect(sb.Ready(producer)).To(BeTrue())
		sb.Reserve(producer)

		Expect(sb.Ready(consumer)).To(BeFalse())

		sb.Release(producer)
		Expect(sb.Ready(consumer)).To(BeTrue())
	})

	It("admits independent instructions concurrently", func() {
		var sb timing.Scoreboard

		a := timing.Classify(trace.Entry{In: mulvv(1, 2, 3)}, 64)
		b := timing.Classify(trace.Entry{In: addvv(4, 5, 6)}, 64)

		sb.Reserve(a)
		Expect(sb.Ready(b)).To(BeTrue())
	})
})

var _ = Describe("ComputeEngine", func() {
	It("occupies a pipeline for depth + ceil(VL/lanes) - 1 cycles after the dispatch cycle", func() {
		ce := timing.NewComputeEngine(2, 8, 20, 4)
		d := timing.Classify(trace.Entry{In: addvv(1, 2, 3)}, 10) // ceil(10/4) = 3

		Expect(ce.Free(isa.PipelineAdd)).To(BeTrue())
		ce.Dispatch(d)
		Expect(ce.Free(isa.PipelineAdd)).To(BeFalse())

		// The dispatch cycle's own Tick is a no-op, then depth(2) +
		// ceil(10/4)(3) - 1 = 4 more ticks to free: 5 total.
		for i := 0; i < 4; i++ {
			done := ce.Tick()
			Expect(done).To(BeEmpty())
		}

		done := ce.Tick()
		Expect(done).To(HaveLen(1))
		Expect(ce.Free(isa.PipelineAdd)).To(BeTrue())
	})

	It("runs independent pipelines concurrently", func() {
		ce := timing.NewComputeEngine(1, 1, 1, 64)

		ce.Dispatch(timing.Classify(trace.Entry{In: addvv(1, 2, 3)}, 64))
		ce.Dispatch(timing.Classify(trace.Entry{In: mulvv(4, 5, 6)}, 64))

		Expect(ce.Free(isa.PipelineAdd)).To(BeFalse())
		Expect(ce.Free(isa.PipelineMul)).To(BeFalse())
	})
})

var _ = Describe("DataEngine", func() {
	It("serializes same-bank addresses but overlaps different banks", func() {
		oneBank := timing.NewDataEngine(1, 1)
		oneBank.Dispatch(timing.Classify(lv(1, 2, []int{0, 1, 2, 3}), 64))

		cycles := 0
		for !oneBank.Idle() {
			oneBank.Tick()
			cycles++

			Expect(cycles).To(BeNumerically("<", 100))
		}

		fourBanks := timing.NewDataEngine(4, 1)
		fourBanks.Dispatch(timing.Classify(lv(1, 2, []int{0, 1, 2, 3}), 64))

		fasterCycles := 0
		for !fourBanks.Idle() {
			fourBanks.Tick()
			fasterCycles++

			Expect(fasterCycles).To(BeNumerically("<", 100))
		}

		Expect(fasterCycles).To(BeNumerically("<", cycles))
	})

	It("reports completion only once every address has cleared its bank", func() {
		de := timing.NewDataEngine(2, 2)
		de.Dispatch(timing.Classify(lv(1, 2, []int{0, 2, 4}), 64))

		Expect(de.Free()).To(BeFalse())

		var done *timing.Decoded

		for i := 0; i < 50 && done == nil; i++ {
			done = de.Tick()
		}

		Expect(done).NotTo(BeNil())
		Expect(de.Idle()).To(BeTrue())
	})
})

var _ = Describe("Driver", func() {
	It("runs a resolved trace to completion and counts cycles", func() {
		entries := []trace.Entry{
			{In: addvv(1, 2, 3)},
			{In: mulvv(4, 5, 6)},
		}

		cfg := config.Config{
			DataQueueDepth: 4, ComputeQueueDepth: 4,
			VDMNumBanks: 4, VLSPipelineDepth: 2,
			NumLanes: 64, PipelineDepthAdd: 2, PipelineDepthMul: 8, PipelineDepthDiv: 20,
		}

		dr := timing.NewDriver(entries, cfg)
		cycles, err := dr.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(cycles).To(BeNumerically(">", 0))
	})

	It("takes fewer cycles with more vector memory banks (bank-conflict scenario)", func() {
		entries := []trace.Entry{lv(1, 2, []int{0, 1, 2, 3, 4, 5, 6, 7})}

		base := config.Config{
			DataQueueDepth: 4, ComputeQueueDepth: 4,
			VLSPipelineDepth: 1, NumLanes: 64,
			PipelineDepthAdd: 2, PipelineDepthMul: 8, PipelineDepthDiv: 20,
		}

		narrow := base
		narrow.VDMNumBanks = 1

		wide := base
		wide.VDMNumBanks = 8

		narrowCycles, err := timing.NewDriver(entries, narrow).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		wideCycles, err := timing.NewDriver(entries, wide).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(wideCycles).To(BeNumerically("<", narrowCycles))
	})
})
