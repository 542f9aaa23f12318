// Package mem implements the simulator's three word-addressable memories:
// scalar data memory (SDMEM), vector data memory (VDMEM), and instruction
// memory (IMEM). Each is a flat array of [word.Word] with bounds-checked
// access, grounded on the teacher's memory-controller idiom of wrapping a
// plain backing array with a named error that carries the offending
// address.
package mem

import (
	"errors"
	"fmt"

	"github.com/mbellamy/vmips/internal/isa"
	"github.com/mbellamy/vmips/internal/word"
)

// Default sizes, per spec.md §3: SDMEM holds 2^13 words, IMEM holds at
// most 2^16 entries. VDMEM defaults to 2^17 words; functional.Load grows
// either data memory to fit a longer seed file.
const (
	DefaultSDMEMSize = 1 << 13
	DefaultVDMEMSize = 1 << 17
	DefaultIMEMSize  = 1 << 16
)

// ErrOutOfBounds is the sentinel wrapped by every [MemoryError].
var ErrOutOfBounds = errors.New("memory: address out of bounds")

// MemoryError names the memory and address involved in a failed access.
type MemoryError struct {
	Memory string
	Addr   int
	Size   int
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("%s: address %d out of bounds [0,%d)", e.Memory, e.Addr, e.Size)
}

func (e *MemoryError) Unwrap() error { return ErrOutOfBounds }

// Data is a flat, word-addressable memory used for SDMEM and VDMEM.
type Data struct {
	name string
	cell []word.Word
}

// NewData allocates a Data memory of the given size, named for error
// messages (e.g. "SDMEM", "VDMEM").
func NewData(name string, size int) *Data {
	return &Data{name: name, cell: make([]word.Word, size)}
}

// Size returns the number of addressable words.
func (d *Data) Size() int { return len(d.cell) }

// Fetch loads the word at addr.
func (d *Data) Fetch(addr int) (word.Word, error) {
	if addr < 0 || addr >= len(d.cell) {
		return 0, &MemoryError{Memory: d.name, Addr: addr, Size: len(d.cell)}
	}

	return d.cell[addr], nil
}

// Store writes v at addr.
func (d *Data) Store(addr int, v word.Word) error {
	if addr < 0 || addr >= len(d.cell) {
		return &MemoryError{Memory: d.name, Addr: addr, Size: len(d.cell)}
	}

	d.cell[addr] = v

	return nil
}

// View returns a copy of every cell, for dumping to SDMEMOP.txt/
// VDMEMOP.txt.
func (d *Data) View() []word.Word {
	view := make([]word.Word, len(d.cell))
	copy(view, d.cell)

	return view
}

// Load replaces the contents of the memory starting at address 0, used to
// seed SDMEM/VDMEM from SDMEM.txt/VDMEM.txt at startup. It returns an error if values
// would overflow the backing array.
func (d *Data) Load(values []word.Word) error {
	if len(values) > len(d.cell) {
		return &MemoryError{Memory: d.name, Addr: len(values) - 1, Size: len(d.cell)}
	}

	copy(d.cell, values)

	return nil
}

// Instructions is IMEM: a dense, word-addressable array of decoded
// instructions, indexed by program counter.
type Instructions struct {
	cell []isa.Instruction
}

// NewInstructions wraps a decoded instruction stream as IMEM. It is an
// error for prog to exceed [DefaultIMEMSize] entries.
func NewInstructions(prog []isa.Instruction) (*Instructions, error) {
	if len(prog) > DefaultIMEMSize {
		return nil, &MemoryError{Memory: "IMEM", Addr: len(prog) - 1, Size: DefaultIMEMSize}
	}

	return &Instructions{cell: prog}, nil
}

// Size returns the number of instructions loaded.
func (im *Instructions) Size() int { return len(im.cell) }

// Fetch returns the instruction at pc.
func (im *Instructions) Fetch(pc int) (isa.Instruction, error) {
	if pc < 0 || pc >= len(im.cell) {
		return isa.Instruction{}, &MemoryError{Memory: "IMEM", Addr: pc, Size: len(im.cell)}
	}

	return im.cell[pc], nil
}
