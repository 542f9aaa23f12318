// Package word implements the 32-bit wrapping integer arithmetic shared by
// every register file, memory cell and ALU operation in the simulator.
package word

import "fmt"

// Word is the base data type on which the machine operates: a 32-bit
// two's-complement integer. Arithmetic wraps modulo 2^32 unless an operation
// explicitly sign-extends.
type Word uint32

func (w Word) String() string {
	return fmt.Sprintf("%#08x", uint32(w))
}

// Signed returns the word reinterpreted as a signed 32-bit integer.
func (w Word) Signed() int32 {
	return int32(w)
}

// FromSigned constructs a Word from a signed 32-bit integer, wrapping modulo
// 2^32.
func FromSigned(i int32) Word {
	return Word(uint32(i))
}

// Add, Sub and Mul wrap modulo 2^32, matching two's-complement hardware
// arithmetic: the bit pattern is the same whether the operands are taken as
// signed or unsigned.
func (w Word) Add(o Word) Word { return w + o }
func (w Word) Sub(o Word) Word { return w - o }
func (w Word) Mul(o Word) Word { return w * o }

// Div performs truncating signed division, as is conventional for this ISA
// family (see spec Open Questions on division precision). The caller is
// responsible for rejecting division by zero before calling Div.
func (w Word) Div(o Word) Word {
	return FromSigned(w.Signed() / o.Signed())
}

func (w Word) And(o Word) Word { return w & o }
func (w Word) Or(o Word) Word  { return w | o }
func (w Word) Xor(o Word) Word { return w ^ o }

// Sll shifts left, masking the result to 32 bits.
func (w Word) Sll(shift Word) Word {
	if shift >= 32 {
		return 0
	}

	return w << shift
}

// Srl shifts right treating the operand as unsigned, per spec.
func (w Word) Srl(shift Word) Word {
	if shift >= 32 {
		return 0
	}

	return w >> shift
}

// Sra shifts right arithmetically, replicating the sign bit.
func (w Word) Sra(shift Word) Word {
	if shift >= 32 {
		if w.Signed() < 0 {
			return Word(0xffffffff)
		}

		return 0
	}

	return FromSigned(w.Signed() >> shift)
}

// Compare predicates used by the vector comparison instructions (SEQ, SNE,
// SGT, SLT, SGE, SLE): each returns 1 or 0, matching the mask-register
// representation described in the data model.
func (w Word) Eq(o Word) Word { return boolWord(w == o) }
func (w Word) Ne(o Word) Word { return boolWord(w != o) }
func (w Word) Gt(o Word) Word { return boolWord(w.Signed() > o.Signed()) }
func (w Word) Lt(o Word) Word { return boolWord(w.Signed() < o.Signed()) }
func (w Word) Ge(o Word) Word { return boolWord(w.Signed() >= o.Signed()) }
func (w Word) Le(o Word) Word { return boolWord(w.Signed() <= o.Signed()) }

func boolWord(b bool) Word {
	if b {
		return 1
	}

	return 0
}
