package functional_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbellamy/vmips/internal/functional"
	"github.com/mbellamy/vmips/internal/word"
)

func TestLoadAndRun(t *testing.T) {
	code := strings.NewReader("LS SR0, SR1, 0\nSS SR0, SR1, 4\nHALT\n")
	sdmem := strings.NewReader("7\n0\n0\n0\n0\n")
	vdmem := strings.NewReader("")

	m, err := functional.Load(code, sdmem, vdmem)
	require.NoError(t, err)

	require.NoError(t, m.Run(context.Background()))

	v, err := m.SDMEM.Fetch(4)
	require.NoError(t, err)
	assert.Equal(t, word.Word(7), v)
}

func TestLoadRejectsMalformedSeed(t *testing.T) {
	code := strings.NewReader("HALT\n")
	sdmem := strings.NewReader("not-a-number\n")
	vdmem := strings.NewReader("")

	_, err := functional.Load(code, sdmem, vdmem)
	require.Error(t, err)

	var ioerr *functional.IOError
	require.ErrorAs(t, err, &ioerr)
	assert.Equal(t, "SDMEM.txt", ioerr.File)
}
