// Package functional wires the decoder, the interpreter and the two data
// memories into a runnable functional core: it loads a program and its
// seed memory images and returns a Machine ready to run; running it
// (Machine.Run) is left to the caller. This is
// the "thin adapter" wiring named in spec.md §1 — file I/O and output
// formatting live in internal/ioformat and internal/cli, not here.
package functional

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mbellamy/vmips/internal/decode"
	"github.com/mbellamy/vmips/internal/interp"
	"github.com/mbellamy/vmips/internal/mem"
	"github.com/mbellamy/vmips/internal/word"
)

// IOError wraps a failure reading one of the input files.
type IOError struct {
	File string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("io: %s: %v", e.File, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// Load builds a ready-to-run Machine from Code.asm (code), SDMEM.txt
// (sdmemSeed) and VDMEM.txt (vdmemSeed). VDMEM is sized to the larger of
// mem.DefaultVDMEMSize and the seed's length.
func Load(code, sdmemSeed, vdmemSeed io.Reader) (*interp.Machine, error) {
	prog, err := decode.Program(code)
	if err != nil {
		return nil, &IOError{File: "Code.asm", Err: err}
	}

	imem, err := mem.NewInstructions(prog)
	if err != nil {
		return nil, &IOError{File: "Code.asm", Err: err}
	}

	sdWords, err := readWords(sdmemSeed)
	if err != nil {
		return nil, &IOError{File: "SDMEM.txt", Err: err}
	}

	vdWords, err := readWords(vdmemSeed)
	if err != nil {
		return nil, &IOError{File: "VDMEM.txt", Err: err}
	}

	sdmem := mem.NewData("SDMEM", sizeAtLeast(mem.DefaultSDMEMSize, len(sdWords)))
	if err := sdmem.Load(sdWords); err != nil {
		return nil, &IOError{File: "SDMEM.txt", Err: err}
	}

	vdmem := mem.NewData("VDMEM", sizeAtLeast(mem.DefaultVDMEMSize, len(vdWords)))
	if err := vdmem.Load(vdWords); err != nil {
		return nil, &IOError{File: "VDMEM.txt", Err: err}
	}

	return interp.NewMachine(imem, sdmem, vdmem), nil
}

func sizeAtLeast(def, n int) int {
	if n > def {
		return n
	}

	return def
}

// readWords parses one signed decimal integer per line, skipping blank
// lines, matching SDMEM.txt/VDMEM.txt's format.
func readWords(r io.Reader) ([]word.Word, error) {
	var words []word.Word

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		n, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", line, err)
		}

		words = append(words, word.FromSigned(int32(n)))
	}

	return words, scanner.Err()
}
