package decode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbellamy/vmips/internal/decode"
	"github.com/mbellamy/vmips/internal/isa"
)

func TestLineBlankAndComment(t *testing.T) {
	_, ok, err := decode.Line(0, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = decode.Line(0, "   # a comment, nothing else")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLineVectorVector(t *testing.T) {
	in, ok, err := decode.Line(3, "ADDVV VR3, VR1, VR2")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, isa.ADDVV, in.Op)
	assert.Equal(t, 3, in.PC)
	require.Len(t, in.Operands, 3)
	assert.Equal(t, isa.Operand{Kind: isa.KindVector, Reg: 3}, in.Operands[0])
	assert.Equal(t, isa.Operand{Kind: isa.KindVector, Reg: 1}, in.Operands[1])
	assert.Equal(t, isa.Operand{Kind: isa.KindVector, Reg: 2}, in.Operands[2])
}

func TestLineScalarImmediateForm(t *testing.T) {
	in, ok, err := decode.Line(0, "ADD SR1, SR2, 4")
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, in.Operands, 3)
	assert.Equal(t, isa.KindImmediate, in.Operands[2].Kind)
	assert.EqualValues(t, 4, in.Operands[2].Imm)
}

func TestLineScalarRegisterForm(t *testing.T) {
	in, ok, err := decode.Line(0, "ADD SR1, SR2, SR3")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, isa.KindScalar, in.Operands[2].Kind)
	assert.Equal(t, 3, in.Operands[2].Reg)
}

func TestLineUnknownOpcode(t *testing.T) {
	_, _, err := decode.Line(5, "FROBNICATE VR1")
	require.Error(t, err)

	var derr *decode.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 5, derr.PC)
}

func TestLineWrongOperandCount(t *testing.T) {
	_, _, err := decode.Line(0, "ADDVV VR1, VR2")
	require.Error(t, err)
}

func TestLineWrongOperandShape(t *testing.T) {
	_, _, err := decode.Line(0, "ADDVV VR1, SR2, VR3")
	require.Error(t, err)
}

func TestLineRegisterIndexOutOfRange(t *testing.T) {
	_, _, err := decode.Line(0, "CVM")
	require.NoError(t, err)

	_, _, err = decode.Line(0, "POP SR9")
	require.Error(t, err)
}

func TestProgramStopsAtFirstError(t *testing.T) {
	src := strings.NewReader("ADDVV VR1, VR2, VR3\nNOPE\nHALT\n")

	_, err := decode.Program(src)
	require.Error(t, err)
}

func TestProgramAssignsSequentialPCs(t *testing.T) {
	src := strings.NewReader("CVM\n# a comment\nPOP SR1\nHALT\n")

	prog, err := decode.Program(src)
	require.NoError(t, err)
	require.Len(t, prog, 3)

	assert.Equal(t, 0, prog[0].PC)
	assert.Equal(t, 1, prog[1].PC)
	assert.Equal(t, 2, prog[2].PC)
}
