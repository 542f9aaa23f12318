// Package decode implements the functional decoder: it tokenizes one line
// of VMIPS assembly, validates the operand shapes against the opcode's
// signature, and produces an [isa.Instruction]. Any mismatch is a fatal
// [DecodeError] naming the offending program counter, per spec §4.1.
package decode

import (
	"strconv"
	"strings"

	"github.com/mbellamy/vmips/internal/isa"
)

// Line decodes a single source line at program counter pc. Blank lines and
// comment-only lines return (Instruction{}, false, nil): the caller should
// skip them without advancing pc. Comments begin with '#' and run to the
// end of the line.
func Line(pc int, raw string) (isa.Instruction, bool, error) {
	src := stripComment(raw)
	src = strings.TrimSpace(src)

	if src == "" {
		return isa.Instruction{}, false, nil
	}

	fields := tokenize(src)

	op, ok := isa.Lookup(strings.ToUpper(fields[0]))
	if !ok {
		return isa.Instruction{}, false, &DecodeError{PC: pc, Line: raw, Msg: "unknown opcode: " + fields[0]}
	}

	sig, _ := isa.SignatureFor(op)
	opers := fields[1:]

	if len(opers) != len(sig) {
		return isa.Instruction{}, false, &DecodeError{
			PC: pc, Line: raw,
			Msg: "wrong operand count for " + op.String(),
		}
	}

	operands := make([]isa.Operand, len(opers))

	for i, tok := range opers {
		operand, err := parseOperand(tok, sig[i])
		if err != nil {
			return isa.Instruction{}, false, &DecodeError{PC: pc, Line: raw, Msg: err.Error()}
		}

		operands[i] = operand
	}

	return isa.Instruction{Op: op, Operands: operands, PC: pc}, true, nil
}

// stripComment removes everything from the first '#' onward.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}

	return line
}

// tokenize splits a line on whitespace, treating commas as token
// separators too, since the assembly syntax in the spec separates operands
// with commas.
func tokenize(line string) []string {
	line = strings.ReplaceAll(line, ",", " ")
	return strings.Fields(line)
}

// parseOperand parses a single operand token against the set of shapes
// that are legal in its position.
func parseOperand(tok string, allowed []isa.Kind) (isa.Operand, error) {
	switch {
	case hasPrefix(tok, "VR"):
		if !allows(allowed, isa.KindVector) {
			return isa.Operand{}, errShape(tok, "vector register not allowed here")
		}

		reg, err := parseRegIndex(tok[2:])
		if err != nil {
			return isa.Operand{}, err
		}

		return isa.Operand{Kind: isa.KindVector, Reg: reg}, nil

	case hasPrefix(tok, "SR"):
		if !allows(allowed, isa.KindScalar) {
			return isa.Operand{}, errShape(tok, "scalar register not allowed here")
		}

		reg, err := parseRegIndex(tok[2:])
		if err != nil {
			return isa.Operand{}, err
		}

		return isa.Operand{Kind: isa.KindScalar, Reg: reg}, nil

	default:
		if !allows(allowed, isa.KindImmediate) {
			return isa.Operand{}, errShape(tok, "immediate not allowed here")
		}

		n, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return isa.Operand{}, errShape(tok, "not a valid immediate")
		}

		return isa.Operand{Kind: isa.KindImmediate, Imm: int32(n)}, nil
	}
}

func hasPrefix(tok, prefix string) bool {
	return len(tok) > len(prefix) && strings.EqualFold(tok[:len(prefix)], prefix)
}

func parseRegIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errShape(s, "not a valid register index")
	}

	if n < 0 || n >= 8 {
		return 0, errShape(s, "register index out of range [0,8)")
	}

	return n, nil
}

func allows(kinds []isa.Kind, want isa.Kind) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}

	return false
}

func errShape(tok, msg string) error {
	return &DecodeError{Msg: tok + ": " + msg}
}
