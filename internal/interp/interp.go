// Package interp implements the functional core: an interpreter that runs
// a decoded instruction stream to completion, maintaining the register
// file and memories, and emitting a resolved trace entry per retired
// instruction. It is grounded on the teacher's fetch/decode/execute
// dispatch loop (internal/vm/exec.go's Run/Step), generalized from a
// single stepped CPU cycle to the untimed, synchronous semantics of
// spec.md §4.2: one instruction fully completes before the next begins.
package interp

import (
	"context"
	"fmt"

	"github.com/mbellamy/vmips/internal/isa"
	"github.com/mbellamy/vmips/internal/log"
	"github.com/mbellamy/vmips/internal/mem"
	"github.com/mbellamy/vmips/internal/register"
	"github.com/mbellamy/vmips/internal/trace"
)

// Machine holds every piece of architectural state the functional core
// operates on: the unified register file (scalar, vector, mask, vector
// length) and the two data memories.
type Machine struct {
	SRF register.ScalarFile
	VRF register.VectorFile
	VMR register.Mask
	VLR register.VLR

	SDMEM *mem.Data
	VDMEM *mem.Data
	IMEM  *mem.Instructions

	PC    int
	Trace []trace.Entry

	log *log.Logger
}

// NewMachine allocates a machine with the given memories and program.
// VLR starts at MVL and VMR starts all-ones, per spec.md §3.
func NewMachine(imem *mem.Instructions, sdmem, vdmem *mem.Data) *Machine {
	m := &Machine{
		IMEM:  imem,
		SDMEM: sdmem,
		VDMEM: vdmem,
		VLR:   register.VLR(register.MVL),
		log:   log.DefaultLogger(),
	}
	m.VMR.SetAll()

	return m
}

// Run executes the loaded program to HALT or to a fatal error. ctx
// cancellation is checked once per instruction, matching the teacher's
// Run loop shape.
func (m *Machine) Run(ctx context.Context) error {
	m.log.Info("START", "PC", m.PC)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		halted, err := m.Step()
		if err != nil {
			m.log.Error("HALTED (fatal)", "ERR", err, "PC", m.PC)
			return err
		}

		if halted {
			m.log.Info("HALTED (HALT)", "PC", m.PC)
			return nil
		}
	}
}

// Step decodes and executes the instruction at PC, advances PC, and
// appends a resolved trace entry (unless the instruction was HALT, which
// produces no trace entry since the timing core never replays it). It
// reports halted=true when HALT was just executed.
func (m *Machine) Step() (halted bool, err error) {
	pc := m.PC

	in, ferr := m.IMEM.Fetch(pc)
	if ferr != nil {
		return false, controlError(pc, fmt.Errorf("ran off end of program without HALT: %w", ferr))
	}

	if in.Op == isa.HALT {
		return true, nil
	}

	nextPC := pc + 1

	addrs, err := m.execute(in, &nextPC)
	if err != nil {
		return false, err
	}

	m.Trace = append(m.Trace, trace.Entry{In: resolve(in, m.VLR), Addrs: addrs})

	if nextPC == pc {
		return false, controlError(pc, fmt.Errorf("PC unchanged after dispatch"))
	}

	m.PC = nextPC

	m.log.Debug("executed", "IN", in.String(), "PC", pc, "NEXTPC", nextPC)

	return false, nil
}
