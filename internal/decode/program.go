package decode

import (
	"bufio"
	"io"

	"github.com/mbellamy/vmips/internal/isa"
)

// Program decodes every line of src (one VMIPS assembly line per text
// line) into a dense instruction stream, assigning each non-blank line the
// next sequential PC. Decoding stops at the first [DecodeError], matching
// the functional run's fatal-decode-abort semantics: the instruction
// stream is never used if it's incomplete.
func Program(src io.Reader) ([]isa.Instruction, error) {
	var prog []isa.Instruction

	scanner := bufio.NewScanner(src)
	pc := 0

	for scanner.Scan() {
		in, ok, err := Line(pc, scanner.Text())
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		prog = append(prog, in)
		pc++
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return prog, nil
}
