package isa

// Class is the timing core's dispatch class: which of the three issue
// queues (and, for compute, which functional pipeline) an instruction uses.
type Class uint8

const (
	ClassScalar Class = iota
	ClassCompute
	ClassData
)

func (c Class) String() string {
	switch c {
	case ClassCompute:
		return "compute"
	case ClassData:
		return "data"
	default:
		return "scalar"
	}
}

// Pipeline identifies which of the three compute pipelines a compute-class
// instruction occupies.
type Pipeline uint8

const (
	PipelineAdd Pipeline = iota
	PipelineMul
	PipelineDiv
)

func (p Pipeline) String() string {
	switch p {
	case PipelineMul:
		return "mul"
	case PipelineDiv:
		return "div"
	default:
		return "add"
	}
}

// ClassOf maps an opcode to its timing class, per §4.4: data is the six
// vector load/store opcodes, compute is vector arithmetic and vector
// comparisons, and everything else is scalar.
func ClassOf(op Opcode) Class {
	if op.IsVectorMemory() {
		return ClassData
	}

	if isComputeOpcode(op) {
		return ClassCompute
	}

	return ClassScalar
}

func isComputeOpcode(op Opcode) bool {
	switch op {
	case ADDVV, SUBVV, MULVV, DIVVV,
		ADDVS, SUBVS, MULVS, DIVVS,
		SEQVV, SNEVV, SGTVV, SLTVV, SGEVV, SLEVV,
		SEQVS, SNEVS, SGTVS, SLTVS, SGEVS, SLEVS:
		return true
	default:
		return false
	}
}

// PipelineOf maps a compute-class opcode to its functional pipeline. It is
// meaningless for non-compute opcodes.
func PipelineOf(op Opcode) Pipeline {
	switch op {
	case MULVV, MULVS:
		return PipelineMul
	case DIVVV, DIVVS:
		return PipelineDiv
	default:
		return PipelineAdd
	}
}

// RegisterSet names the scalar and vector registers an instruction reads or
// writes, by register index. It is the timing operand analyzer's output,
// used by the decode stage's scoreboard (§4.4) and is deliberately blind to
// the vector mask register: resolved-trace addresses already bake in mask
// and VL effects from the functional run, so the timing core never needs to
// read VMR.
type RegisterSet struct {
	DestScalar    int  // -1 if none
	DestVector    int  // -1 if none
	SourceScalars []int
	SourceVectors []int
}

// Roles extracts the destination and source register sets for a decoded
// instruction, reproducing the opcode -> operand-role map from §4.4
// exactly: *VS forms carry their scalar in the source list, and LVI/SVI
// source both the base scalar and the index vector.
func Roles(in Instruction) RegisterSet {
	rs := RegisterSet{DestScalar: -1, DestVector: -1}

	ops := in.Operands
	scalar := func(i int) { rs.SourceScalars = append(rs.SourceScalars, ops[i].Reg) }
	vector := func(i int) { rs.SourceVectors = append(rs.SourceVectors, ops[i].Reg) }

	switch in.Op {
	case ADDVV, SUBVV, MULVV, DIVVV:
		rs.DestVector = ops[0].Reg
		vector(1)
		vector(2)
	case ADDVS, SUBVS, MULVS, DIVVS:
		rs.DestVector = ops[0].Reg
		vector(1)
		scalar(2)
	case SEQVV, SNEVV, SGTVV, SLTVV, SGEVV, SLEVV:
		vector(0)
		vector(1)
	case SEQVS, SNEVS, SGTVS, SLTVS, SGEVS, SLEVS:
		vector(0)
		scalar(1)
	case CVM:
		// No register operands.
	case POP:
		rs.DestScalar = ops[0].Reg
	case MTCL:
		// No registered role: fetch's drain-stall rule (spec §4.3) never
		// presents MTCL to decode until every prior instruction has fully
		// retired, so MTCL can never actually race a scoreboard hazard.
		// Its resolved-trace operand also isn't a register by the time it
		// reaches the timing core (see interp.resolve), so there's no
		// SRn left to name here regardless.
	case MFCL:
		rs.DestScalar = ops[0].Reg
	case LV:
		rs.DestVector = ops[0].Reg
		scalar(1)
	case SV:
		vector(0)
		scalar(1)
	case LVWS:
		rs.DestVector = ops[0].Reg
		scalar(1)
		scalar(2)
	case SVWS:
		vector(0)
		scalar(1)
		scalar(2)
	case LVI:
		rs.DestVector = ops[0].Reg
		scalar(1)
		vector(2)
	case SVI:
		vector(0)
		scalar(1)
		vector(2)
	case LS:
		rs.DestScalar = ops[0].Reg
		scalar(1)
	case SS:
		scalar(0)
		scalar(1)
	case ADD, SUB, AND, OR, XOR, SLL, SRL, SRA:
		rs.DestScalar = ops[0].Reg
		scalar(1)

		if len(ops) > 2 && ops[2].Kind == KindScalar {
			scalar(2)
		}
	case BEQ, BNE, BGT, BLT, BGE, BLE:
		scalar(0)
		scalar(1)
	case HALT:
		// No register operands.
	}

	return rs
}
