// Package register implements the architectural register files shared by
// the functional interpreter: scalar registers, vector registers, the
// vector mask register and the vector length register.
//
// Both the scalar and vector files are, at bottom, arrays of fixed-width
// lanes; the scalar file is simply the degenerate case of lane width one.
// [ScalarFile] and [VectorFile] share that shape but are kept as distinct,
// concretely-sized types (rather than one generic array type) because their
// callers need different indexing: a scalar register holds one [word.Word],
// a vector register holds [MVL] of them.
package register

import (
	"fmt"
	"strings"

	"github.com/mbellamy/vmips/internal/log"
	"github.com/mbellamy/vmips/internal/word"
)

const (
	// NumScalar is the number of scalar registers, SR0..SR7.
	NumScalar = 8

	// NumVector is the number of vector registers, VR0..VR7.
	NumVector = 8

	// MVL is the maximum vector length: the fixed number of lanes in every
	// vector register and in the vector mask register.
	MVL = 64
)

// ScalarFile is the bank of 8 scalar registers.
type ScalarFile [NumScalar]word.Word

func (sf ScalarFile) String() string {
	b := strings.Builder{}

	for i := range sf {
		fmt.Fprintf(&b, "SR%d: %s\n", i, sf[i])
	}

	return b.String()
}

func (sf ScalarFile) LogValue() log.Value {
	attrs := make([]log.Attr, NumScalar)
	for i := range sf {
		attrs[i] = log.String(fmt.Sprintf("SR%d", i), sf[i].String())
	}

	return log.GroupValue(attrs...)
}

// VectorRegister is a single vector register: MVL lanes of one word each.
type VectorRegister [MVL]word.Word

func (vr VectorRegister) String() string {
	b := strings.Builder{}

	for i := range vr {
		if i > 0 {
			b.WriteByte(' ')
		}

		fmt.Fprintf(&b, "%s", vr[i])
	}

	return b.String()
}

// VectorFile is the bank of 8 vector registers, each MVL lanes wide.
type VectorFile [NumVector]VectorRegister

func (vf VectorFile) String() string {
	b := strings.Builder{}

	for i := range vf {
		fmt.Fprintf(&b, "VR%d: %s\n", i, vf[i])
	}

	return b.String()
}

// Mask is the vector mask register: MVL predicate lanes, one bit each,
// represented per-lane as a 0/1 word so it can be indexed and dumped
// identically to a vector register.
type Mask [MVL]word.Word

// NewMask returns a mask with every lane set to 1, the machine's initial
// value.
func NewMask() Mask {
	var m Mask
	m.SetAll()

	return m
}

// SetAll sets every lane to 1, implementing the CVM instruction.
func (m *Mask) SetAll() {
	for i := range m {
		m[i] = 1
	}
}

// Enabled reports whether lane i is predicated on (VMR[i] == 1).
func (m Mask) Enabled(i int) bool {
	return m[i] != 0
}

// PopCount returns the number of set lanes, implementing the POP
// instruction.
func (m Mask) PopCount() word.Word {
	var n word.Word

	for _, lane := range m {
		n += lane
	}

	return n
}

func (m Mask) String() string {
	b := strings.Builder{}

	for i := range m {
		if i > 0 {
			b.WriteByte(' ')
		}

		fmt.Fprintf(&b, "%d", m[i])
	}

	return b.String()
}

// VLR is the vector length register. The invariant 0 <= VLR <= MVL is
// maintained by [VLR.Clamp], which every writer of VLR must call: the spec
// flags MTCL's failure to clamp in the reference implementation as a
// divergence to avoid, not to reproduce.
type VLR word.Word

// Clamp bounds v to [0, MVL], the legal range for a vector length.
func (v VLR) Clamp() VLR {
	switch {
	case v.Signed() < 0:
		return 0
	case v > MVL:
		return MVL
	default:
		return v
	}
}

// Signed views the VLR as a signed word, since a write to VLR (from MTCL)
// may carry a negative scalar value before clamping.
func (v VLR) Signed() int32 {
	return word.Word(v).Signed()
}

func (v VLR) String() string {
	return fmt.Sprintf("%d", word.Word(v))
}
