package ioformat_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbellamy/vmips/internal/ioformat"
	"github.com/mbellamy/vmips/internal/register"
	"github.com/mbellamy/vmips/internal/trace"
	"github.com/mbellamy/vmips/internal/word"
)

func TestWriteScalarFile(t *testing.T) {
	var sf register.ScalarFile
	sf[0] = word.FromSigned(-1)
	sf[7] = word.FromSigned(42)

	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteScalarFile(&buf, sf))

	lines := splitLines(buf.String())
	require.Len(t, lines, 3) // header, rule, one data row

	assert.Contains(t, lines[0], "7")
	assert.Contains(t, lines[2], "-1")
	assert.Contains(t, lines[2], "42")
}

func TestWriteVectorFile(t *testing.T) {
	var vf register.VectorFile
	vf[2][5] = word.FromSigned(7)

	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteVectorFile(&buf, vf))

	lines := splitLines(buf.String())
	// header + rule + 8 vector register rows
	require.Len(t, lines, register.NumVector+2)
}

func TestWriteMask(t *testing.T) {
	m := register.NewMask()
	m[3] = 0

	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteMask(&buf, m))

	lines := splitLines(buf.String())
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "0")
}

func TestWriteVLR(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteVLR(&buf, register.VLR(32)))
	assert.Equal(t, " 0\n--\n32\n", buf.String())
}

func TestWriteWords(t *testing.T) {
	var buf bytes.Buffer
	words := []word.Word{word.FromSigned(1), word.FromSigned(-2), word.FromSigned(3)}
	require.NoError(t, ioformat.WriteWords(&buf, words))

	assert.Equal(t, "1\n-2\n3\n", buf.String())
}

func TestWriteResolvedTrace(t *testing.T) {
	entries := []trace.Entry{{Addrs: []int{1, 2}}}

	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteResolvedTrace(&buf, entries))
	assert.NotEmpty(t, buf.String())
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ioformat.WriteOutput(&buf, 42, 5*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "Clock Cycles: 42")
	assert.Contains(t, out, "Elapsed Time:")
}

func TestAppendSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ioformat.AppendSummary(&buf, 1, 100))
	require.NoError(t, ioformat.AppendSummary(&buf, 2, 200))

	lines := splitLines(buf.String())
	require.Len(t, lines, 2)
	assert.Equal(t, "Config 1: 100 cycles", lines[0])
	assert.Equal(t, "Config 2: 200 cycles", lines[1])
}

func splitLines(s string) []string {
	var lines []string

	for _, line := range bytes.Split([]byte(s), []byte("\n")) {
		if len(line) == 0 {
			continue
		}

		lines = append(lines, string(line))
	}

	return lines
}
