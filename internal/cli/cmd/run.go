package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mbellamy/vmips/internal/cli"
	"github.com/mbellamy/vmips/internal/functional"
	"github.com/mbellamy/vmips/internal/interp"
	"github.com/mbellamy/vmips/internal/ioformat"
	"github.com/mbellamy/vmips/internal/log"
)

// Run builds the "run" sub-command, which drives the functional core:
// it decodes Code.asm, seeds SDMEM/VDMEM, executes to HALT or a fatal
// error, and writes every functional-run output file.
func Run() cli.Command {
	return &runner{log: log.DefaultLogger()}
}

type runner struct {
	logLevel slog.Level
	dir      string
	log      *log.Logger
}

func (runner) Description() string {
	return "run a vector program on the functional core"
}

func (runner) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `run [-dir io-directory]

Decodes Code.asm, seeds SDMEM/VDMEM from SDMEM.txt/VDMEM.txt, and runs the
functional core to HALT or a fatal error. Writes SRF.txt, VRF.txt, VMR.txt,
VLR.txt, SDMEMOP.txt, VDMEMOP.txt and resolvedData.txt to the same
directory.`)

	return err
}

func (r *runner) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.StringVar(&r.dir, "dir", ".", "I/O `directory` holding Code.asm/SDMEM.txt/VDMEM.txt")
	fs.Func("loglevel", "set log `level`", func(s string) error {
		return r.logLevel.UnmarshalText([]byte(s))
	})

	return fs
}

// Run loads and executes the program, flushing whatever output files it
// can even when the run ends in a fatal error, per spec.md §7 ("no
// partial output dumps are mandated... but implementations may still
// flush already-computed state").
func (r *runner) Run(ctx context.Context, _ []string, stdout io.Writer, logger *log.Logger) int {
	log.LogLevel.Set(r.logLevel)

	machine, err := r.load()
	if err != nil {
		logger.Error("Error loading program", "err", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	runErr := machine.Run(ctx)

	if err := r.writeOutputs(machine); err != nil {
		logger.Error("Error writing output files", "err", err)
		return 1
	}

	if runErr != nil {
		logger.Error("Program terminated with a fatal error", "err", runErr)
		fmt.Fprintln(stdout, "FAILED")

		return 1
	}

	fmt.Fprintln(stdout, "OK")

	return 0
}

func (r *runner) load() (*interp.Machine, error) {
	code, err := os.Open(filepath.Join(r.dir, "Code.asm"))
	if err != nil {
		return nil, &functional.IOError{File: "Code.asm", Err: err}
	}
	defer code.Close()

	sdmemSeed, err := os.Open(filepath.Join(r.dir, "SDMEM.txt"))
	if err != nil {
		return nil, &functional.IOError{File: "SDMEM.txt", Err: err}
	}
	defer sdmemSeed.Close()

	vdmemSeed, err := os.Open(filepath.Join(r.dir, "VDMEM.txt"))
	if err != nil {
		return nil, &functional.IOError{File: "VDMEM.txt", Err: err}
	}
	defer vdmemSeed.Close()

	return functional.Load(code, sdmemSeed, vdmemSeed)
}

func (r *runner) writeOutputs(m *interp.Machine) error {
	writers := []struct {
		name string
		fn   func(io.Writer) error
	}{
		{"SRF.txt", func(w io.Writer) error { return ioformat.WriteScalarFile(w, m.SRF) }},
		{"VRF.txt", func(w io.Writer) error { return ioformat.WriteVectorFile(w, m.VRF) }},
		{"VMR.txt", func(w io.Writer) error { return ioformat.WriteMask(w, m.VMR) }},
		{"VLR.txt", func(w io.Writer) error { return ioformat.WriteVLR(w, m.VLR) }},
		{"SDMEMOP.txt", func(w io.Writer) error { return ioformat.WriteWords(w, m.SDMEM.View()) }},
		{"VDMEMOP.txt", func(w io.Writer) error { return ioformat.WriteWords(w, m.VDMEM.View()) }},
		{"resolvedData.txt", func(w io.Writer) error { return ioformat.WriteResolvedTrace(w, m.Trace) }},
	}

	for _, wr := range writers {
		if err := r.writeFile(wr.name, wr.fn); err != nil {
			return err
		}
	}

	return nil
}

func (r *runner) writeFile(name string, fn func(io.Writer) error) error {
	f, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	return fn(f)
}
