// Package ioformat writes the simulator's output files: the tabular
// register-file dumps, the raw memory dumps, the resolved trace, and the
// timing core's per-run and summary reports. Every writer takes an
// io.Writer rather than a path, mirroring the teacher's preference for
// keeping file-opening at the command layer and formatting logic
// filesystem-agnostic (internal/vm/disp.go's Display takes a Writer for
// the same reason).
package ioformat

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mbellamy/vmips/internal/register"
	"github.com/mbellamy/vmips/internal/trace"
	"github.com/mbellamy/vmips/internal/word"
)

// WriteScalarFile writes SRF.txt: one column per scalar register, one
// data row.
func WriteScalarFile(w io.Writer, sf register.ScalarFile) error {
	row := make([]string, len(sf))
	for i := range sf {
		row[i] = strconv.Itoa(int(sf[i].Signed()))
	}

	return writeTable(w, columnHeader(len(sf)), [][]string{row})
}

// WriteVectorFile writes VRF.txt: one column per lane (0..MVL-1), one
// data row per vector register.
func WriteVectorFile(w io.Writer, vf register.VectorFile) error {
	rows := make([][]string, len(vf))

	for i := range vf {
		row := make([]string, len(vf[i]))
		for j := range vf[i] {
			row[j] = strconv.Itoa(int(vf[i][j].Signed()))
		}

		rows[i] = row
	}

	return writeTable(w, columnHeader(register.MVL), rows)
}

// WriteMask writes VMR.txt: one column per lane, a single data row of
// 0/1 predicate bits.
func WriteMask(w io.Writer, m register.Mask) error {
	row := make([]string, len(m))
	for i := range m {
		row[i] = strconv.Itoa(int(m[i]))
	}

	return writeTable(w, columnHeader(register.MVL), [][]string{row})
}

// WriteVLR writes VLR.txt: a one-column table in the same layout as the
// other register dumps, whose single data row is the current vector length.
func WriteVLR(w io.Writer, vlr register.VLR) error {
	return writeTable(w, columnHeader(1), [][]string{{strconv.Itoa(int(vlr))}})
}

// WriteWords writes SDMEMOP.txt/VDMEMOP.txt: one signed decimal word per
// line, matching the SDMEM.txt/VDMEM.txt input format.
func WriteWords(w io.Writer, words []word.Word) error {
	for _, v := range words {
		if _, err := fmt.Fprintf(w, "%d\n", v.Signed()); err != nil {
			return err
		}
	}

	return nil
}

// WriteResolvedTrace writes resolvedData.txt: one resolved instruction
// per line, delegating to the trace package's own text encoding.
func WriteResolvedTrace(w io.Writer, entries []trace.Entry) error {
	return trace.Write(w, entries)
}

// WriteOutput writes OutputN.txt: the timing run's cycle count and the
// wall-clock time the simulation itself took to run.
func WriteOutput(w io.Writer, cycles uint64, elapsed time.Duration) error {
	_, err := fmt.Fprintf(w, "Clock Cycles: %d\nElapsed Time: %s\n", cycles, elapsed)
	return err
}

// AppendSummary appends one line to Summary.txt recording a single
// config run's index and cycle count, so a harness that sweeps a
// directory of Config*.txt files accumulates one line per run rather
// than overwriting a single-config assumption.
func AppendSummary(w io.Writer, index int, cycles uint64) error {
	_, err := fmt.Fprintf(w, "Config %d: %d cycles\n", index, cycles)
	return err
}

// columnHeader builds the "0 1 2 ... n-1" header row.
func columnHeader(n int) []string {
	h := make([]string, n)
	for i := range h {
		h[i] = strconv.Itoa(i)
	}

	return h
}

// writeTable renders header, a dash rule sized to the widest column, and
// each row, every column space-padded to the widest value it holds.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))

	for i, h := range header {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if err := writeRow(w, header, widths); err != nil {
		return err
	}

	rule := make([]string, len(widths))
	for i, width := range widths {
		rule[i] = strings.Repeat("-", width)
	}

	if err := writeRow(w, rule, widths); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
	}

	return nil
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = fmt.Sprintf("%*s", widths[i], cell)
	}

	_, err := fmt.Fprintln(w, strings.Join(padded, " "))

	return err
}
