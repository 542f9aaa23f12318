package interp

import (
	"fmt"

	"github.com/mbellamy/vmips/internal/isa"
	"github.com/mbellamy/vmips/internal/register"
	"github.com/mbellamy/vmips/internal/word"
)

// execute runs one decoded instruction's semantics, returning the
// effective addresses it touched (for the resolved trace) and advancing
// *nextPC for branches. Non-branch instructions leave nextPC untouched
// (already set to pc+1 by the caller).
func (m *Machine) execute(in isa.Instruction, nextPC *int) ([]int, error) {
	switch in.Op {
	case isa.ADDVV, isa.SUBVV, isa.MULVV, isa.DIVVV:
		return nil, m.vectorVectorArith(in)
	case isa.ADDVS, isa.SUBVS, isa.MULVS, isa.DIVVS:
		return nil, m.vectorScalarArith(in)
	case isa.SEQVV, isa.SNEVV, isa.SGTVV, isa.SLTVV, isa.SGEVV, isa.SLEVV:
		m.vectorVectorCompare(in)
		return nil, nil
	case isa.SEQVS, isa.SNEVS, isa.SGTVS, isa.SLTVS, isa.SGEVS, isa.SLEVS:
		m.vectorScalarCompare(in)
		return nil, nil
	case isa.CVM:
		m.VMR.SetAll()
		return nil, nil
	case isa.POP:
		m.SRF[in.Operands[0].Reg] = m.VMR.PopCount()
		return nil, nil
	case isa.MTCL:
		m.VLR = register.VLR(m.SRF[in.Operands[0].Reg]).Clamp()
		return nil, nil
	case isa.MFCL:
		m.SRF[in.Operands[0].Reg] = word.Word(m.VLR)
		return nil, nil
	case isa.LV:
		return m.loadVector(in, 1)
	case isa.SV:
		return m.storeVector(in, 1)
	case isa.LVWS:
		return m.loadVectorStrided(in)
	case isa.SVWS:
		return m.storeVectorStrided(in)
	case isa.LVI:
		return m.loadVectorIndexed(in)
	case isa.SVI:
		return m.storeVectorIndexed(in)
	case isa.LS:
		return m.loadScalar(in)
	case isa.SS:
		return m.storeScalar(in)
	case isa.ADD, isa.SUB, isa.AND, isa.OR, isa.XOR, isa.SLL, isa.SRL, isa.SRA:
		m.scalarALU(in)
		return nil, nil
	case isa.BEQ, isa.BNE, isa.BGT, isa.BLT, isa.BGE, isa.BLE:
		m.branch(in, nextPC)
		return nil, nil
	default:
		return nil, fmt.Errorf("interp: unimplemented opcode %s", in.Op)
	}
}

// resolve rewrites an instruction for the resolved trace. Every opcode
// keeps its original operand tokens except MTCL: the timing core has no
// register file of its own and so cannot read SRn back out the way it
// replays addresses, so MTCL's resolved form carries the literal,
// already-clamped vector length as an immediate in place of the scalar
// register operand (the same "resolve runtime state to a literal" move
// vector memory ops make for their addresses).
func resolve(in isa.Instruction, vlr register.VLR) isa.Instruction {
	if in.Op != isa.MTCL {
		return in
	}

	out := in
	out.Operands = []isa.Operand{{Kind: isa.KindImmediate, Imm: int32(vlr)}}

	return out
}
