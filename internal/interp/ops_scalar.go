package interp

import (
	"github.com/mbellamy/vmips/internal/isa"
	"github.com/mbellamy/vmips/internal/word"
)

// operand2 resolves a scalar ALU's third operand, which may be a register
// or an immediate (§4.1's signature table allows either).
func (m *Machine) operand2(o isa.Operand) word.Word {
	if o.Kind == isa.KindImmediate {
		return word.FromSigned(o.Imm)
	}

	return m.SRF[o.Reg]
}

func (m *Machine) scalarALU(in isa.Instruction) {
	dest, a, b := in.Operands[0].Reg, m.SRF[in.Operands[1].Reg], m.operand2(in.Operands[2])

	var result word.Word

	switch in.Op {
	case isa.ADD:
		result = a.Add(b)
	case isa.SUB:
		result = a.Sub(b)
	case isa.AND:
		result = a.And(b)
	case isa.OR:
		result = a.Or(b)
	case isa.XOR:
		result = a.Xor(b)
	case isa.SLL:
		result = a.Sll(b)
	case isa.SRL:
		result = a.Srl(b)
	case isa.SRA:
		result = a.Sra(b)
	}

	m.SRF[dest] = result
}

// branch implements the six conditional branches. The mnemonic's natural
// inequality is used: BGT branches when SRx > SRy, and so on; on taken,
// *nextPC is the branch instruction's own PC plus the immediate, not
// pc+1+imm, per spec.md §3's "PC <- PC + IMM".
func (m *Machine) branch(in isa.Instruction, nextPC *int) {
	x, y, imm := m.SRF[in.Operands[0].Reg], m.SRF[in.Operands[1].Reg], in.Operands[2].Imm
	pc := *nextPC - 1

	var taken bool

	switch in.Op {
	case isa.BEQ:
		taken = x == y
	case isa.BNE:
		taken = x != y
	case isa.BGT:
		taken = x.Signed() > y.Signed()
	case isa.BLT:
		taken = x.Signed() < y.Signed()
	case isa.BGE:
		taken = x.Signed() >= y.Signed()
	case isa.BLE:
		taken = x.Signed() <= y.Signed()
	}

	if taken {
		*nextPC = pc + int(imm)
	}
}
