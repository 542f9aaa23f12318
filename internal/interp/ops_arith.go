package interp

import (
	"github.com/mbellamy/vmips/internal/isa"
	"github.com/mbellamy/vmips/internal/register"
	"github.com/mbellamy/vmips/internal/word"
)

// maskedWrite applies the mask & VL write rule (spec.md §3): for i in
// [0,VLR), lane i is overwritten only if VMR[i] is set; for i in
// [VLR,MVL), the destination lane is left at its prior value.
func (m *Machine) maskedWrite(dest int, compute func(i int) word.Word) {
	vlr := int(m.VLR)

	for i := 0; i < vlr; i++ {
		if m.VMR.Enabled(i) {
			m.VRF[dest][i] = compute(i)
		}
	}
}

// arithFn returns the per-lane arithmetic function for op. Division's
// zero-divisor check happens in the caller, over the full operand range,
// before any lane is computed: DIVVV/DIVVS are fatal-on-any-zero, not
// fatal-on-first-use.
func arithFn(op isa.Opcode) func(a, b word.Word) word.Word {
	switch op {
	case isa.ADDVV, isa.ADDVS:
		return word.Word.Add
	case isa.SUBVV, isa.SUBVS:
		return word.Word.Sub
	case isa.MULVV, isa.MULVS:
		return word.Word.Mul
	case isa.DIVVV, isa.DIVVS:
		return word.Word.Div
	}

	return nil
}

func (m *Machine) vectorVectorArith(in isa.Instruction) error {
	dest, a, b := in.Operands[0].Reg, in.Operands[1].Reg, in.Operands[2].Reg
	fn := arithFn(in.Op)

	vlr := int(m.VLR)
	for i := 0; i < vlr; i++ {
		if in.Op == isa.DIVVV && m.VRF[b][i] == 0 {
			return arithmeticError(in.PC, errDivideByZero)
		}
	}

	m.maskedWrite(dest, func(i int) word.Word {
		return fn(m.VRF[a][i], m.VRF[b][i])
	})

	return nil
}

func (m *Machine) vectorScalarArith(in isa.Instruction) error {
	dest, a, s := in.Operands[0].Reg, in.Operands[1].Reg, in.Operands[2].Reg
	scalar := m.SRF[s]
	fn := arithFn(in.Op)

	if in.Op == isa.DIVVS && scalar == 0 {
		return arithmeticError(in.PC, errDivideByZero)
	}

	m.maskedWrite(dest, func(i int) word.Word {
		return fn(m.VRF[a][i], scalar)
	})

	return nil
}

func compareFn(op isa.Opcode) func(a, b word.Word) word.Word {
	switch op {
	case isa.SEQVV, isa.SEQVS:
		return word.Word.Eq
	case isa.SNEVV, isa.SNEVS:
		return word.Word.Ne
	case isa.SGTVV, isa.SGTVS:
		return word.Word.Gt
	case isa.SLTVV, isa.SLTVS:
		return word.Word.Lt
	case isa.SGEVV, isa.SGEVS:
		return word.Word.Ge
	case isa.SLEVV, isa.SLEVS:
		return word.Word.Le
	}

	return nil
}

// vectorVectorCompare and vectorScalarCompare implement the six
// comparison opcodes. These are unmasked: every lane of VMR is
// overwritten, including lanes at or beyond VLR, which are forced to 0
// (spec.md §3).
func (m *Machine) vectorVectorCompare(in isa.Instruction) {
	a, b := in.Operands[0].Reg, in.Operands[1].Reg
	fn := compareFn(in.Op)
	vlr := int(m.VLR)

	for i := 0; i < register.MVL; i++ {
		if i < vlr {
			m.VMR[i] = fn(m.VRF[a][i], m.VRF[b][i])
		} else {
			m.VMR[i] = 0
		}
	}
}

func (m *Machine) vectorScalarCompare(in isa.Instruction) {
	a, s := in.Operands[0].Reg, in.Operands[1].Reg
	scalar := m.SRF[s]
	fn := compareFn(in.Op)
	vlr := int(m.VLR)

	for i := 0; i < register.MVL; i++ {
		if i < vlr {
			m.VMR[i] = fn(m.VRF[a][i], scalar)
		} else {
			m.VMR[i] = 0
		}
	}
}

var errDivideByZero = divideByZeroError{}

type divideByZeroError struct{}

func (divideByZeroError) Error() string { return "division by zero" }
