package isa

import "testing"

func TestClassOf(t *testing.T) {
	cases := []struct {
		op   Opcode
		want Class
	}{
		{ADDVV, ClassCompute},
		{SGTVS, ClassCompute},
		{LV, ClassData},
		{SVI, ClassData},
		{ADD, ClassScalar},
		{MTCL, ClassScalar},
		{HALT, ClassScalar},
	}

	for _, c := range cases {
		if got := ClassOf(c.op); got != c.want {
			t.Errorf("ClassOf(%s) = %s, want %s", c.op, got, c.want)
		}
	}
}

func TestPipelineOf(t *testing.T) {
	cases := []struct {
		op   Opcode
		want Pipeline
	}{
		{ADDVV, PipelineAdd},
		{MULVS, PipelineMul},
		{DIVVV, PipelineDiv},
	}

	for _, c := range cases {
		if got := PipelineOf(c.op); got != c.want {
			t.Errorf("PipelineOf(%s) = %s, want %s", c.op, got, c.want)
		}
	}
}

func TestRolesADDVS(t *testing.T) {
	in := Instruction{
		Op: ADDVS,
		Operands: []Operand{
			{Kind: KindVector, Reg: 3},
			{Kind: KindVector, Reg: 1},
			{Kind: KindScalar, Reg: 2},
		},
	}

	rs := Roles(in)

	if rs.DestVector != 3 {
		t.Errorf("DestVector = %d, want 3", rs.DestVector)
	}

	if len(rs.SourceVectors) != 1 || rs.SourceVectors[0] != 1 {
		t.Errorf("SourceVectors = %v, want [1]", rs.SourceVectors)
	}

	if len(rs.SourceScalars) != 1 || rs.SourceScalars[0] != 2 {
		t.Errorf("SourceScalars = %v, want [2]", rs.SourceScalars)
	}
}

func TestRolesLVI(t *testing.T) {
	in := Instruction{
		Op: LVI,
		Operands: []Operand{
			{Kind: KindVector, Reg: 0},
			{Kind: KindScalar, Reg: 1},
			{Kind: KindVector, Reg: 2},
		},
	}

	rs := Roles(in)

	if rs.DestVector != 0 {
		t.Errorf("DestVector = %d, want 0", rs.DestVector)
	}

	if len(rs.SourceScalars) != 1 || rs.SourceScalars[0] != 1 {
		t.Errorf("SourceScalars = %v, want [1]", rs.SourceScalars)
	}

	if len(rs.SourceVectors) != 1 || rs.SourceVectors[0] != 2 {
		t.Errorf("SourceVectors = %v, want [2]", rs.SourceVectors)
	}
}
