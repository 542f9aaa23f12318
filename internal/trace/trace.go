// Package trace implements the resolved trace: the textual record that
// bridges the functional core's output to the timing core's input. Each
// entry is one retired instruction together with the effective addresses
// its functional execution touched, already resolved against the mask and
// vector-length registers in effect at the time — the timing core never
// re-evaluates VMR, it only replays these addresses (see
// internal/isa.RegisterSet).
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mbellamy/vmips/internal/isa"
)

// Entry is one resolved trace record.
type Entry struct {
	In    isa.Instruction
	Addrs []int // effective addresses touched, in access order; empty for non-memory ops
}

// String renders an entry in the "opcode operands (addr0,addr1,...)"
// format. The address tuple is always present, even when empty, so the
// format round-trips unambiguously.
func (e Entry) String() string {
	var b strings.Builder

	b.WriteString(e.In.Op.String())

	for _, o := range e.In.Operands {
		b.WriteByte(' ')
		b.WriteString(o.String())
	}

	b.WriteString(" (")

	for i, a := range e.Addrs {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(strconv.Itoa(a))
	}

	b.WriteByte(')')

	return b.String()
}

// Write serializes entries, one per line, to w.
func Write(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}

	return nil
}

// ParseError reports a malformed resolved-trace line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace: line %d: %s", e.Line, e.Msg)
}

// Read parses a resolved trace previously written by [Write]. The "time"
// command uses it to load Data.txt for the timing core.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		e, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}

		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func parseLine(line string) (Entry, error) {
	open := strings.IndexByte(line, '(')
	close := strings.LastIndexByte(line, ')')

	if open < 0 || close < open {
		return Entry{}, fmt.Errorf("missing address tuple: %q", line)
	}

	head := strings.Fields(line[:open])
	if len(head) == 0 {
		return Entry{}, fmt.Errorf("missing opcode: %q", line)
	}

	op, ok := isa.Lookup(head[0])
	if !ok {
		return Entry{}, fmt.Errorf("unknown opcode: %q", head[0])
	}

	operands := make([]isa.Operand, 0, len(head)-1)

	for _, tok := range head[1:] {
		o, err := parseOperand(tok)
		if err != nil {
			return Entry{}, err
		}

		operands = append(operands, o)
	}

	addrField := strings.TrimSpace(line[open+1 : close])

	var addrs []int

	if addrField != "" {
		for _, tok := range strings.Split(addrField, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return Entry{}, fmt.Errorf("bad address %q: %w", tok, err)
			}

			addrs = append(addrs, n)
		}
	}

	return Entry{In: isa.Instruction{Op: op, Operands: operands}, Addrs: addrs}, nil
}

func parseOperand(tok string) (isa.Operand, error) {
	switch {
	case strings.HasPrefix(tok, "VR"):
		n, err := strconv.Atoi(tok[2:])
		if err != nil {
			return isa.Operand{}, fmt.Errorf("bad vector register %q: %w", tok, err)
		}

		return isa.Operand{Kind: isa.KindVector, Reg: n}, nil
	case strings.HasPrefix(tok, "SR"):
		n, err := strconv.Atoi(tok[2:])
		if err != nil {
			return isa.Operand{}, fmt.Errorf("bad scalar register %q: %w", tok, err)
		}

		return isa.Operand{Kind: isa.KindScalar, Reg: n}, nil
	default:
		n, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return isa.Operand{}, fmt.Errorf("bad immediate %q: %w", tok, err)
		}

		return isa.Operand{Kind: isa.KindImmediate, Imm: int32(n)}, nil
	}
}
