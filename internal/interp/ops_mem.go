package interp

import (
	"github.com/mbellamy/vmips/internal/isa"
)

// lanes returns the indices of every lane that actually touches memory:
// masked-off lanes, and lanes at or beyond VLR, never issue a memory
// access, so they never appear in the resolved trace's address tuple.
func (m *Machine) lanes() []int {
	vlr := int(m.VLR)

	idx := make([]int, 0, vlr)

	for i := 0; i < vlr; i++ {
		if m.VMR.Enabled(i) {
			idx = append(idx, i)
		}
	}

	return idx
}

func (m *Machine) loadVector(in isa.Instruction, stride int) ([]int, error) {
	dest, base := in.Operands[0].Reg, in.Operands[1].Reg
	start := int(m.SRF[base].Signed())

	var addrs []int

	for _, i := range m.lanes() {
		addr := start + i*stride

		v, err := m.VDMEM.Fetch(addr)
		if err != nil {
			return nil, boundsError(in.PC, err)
		}

		m.VRF[dest][i] = v
		addrs = append(addrs, addr)
	}

	return addrs, nil
}

func (m *Machine) storeVector(in isa.Instruction, stride int) ([]int, error) {
	src, base := in.Operands[0].Reg, in.Operands[1].Reg
	start := int(m.SRF[base].Signed())

	var addrs []int

	for _, i := range m.lanes() {
		addr := start + i*stride

		if err := m.VDMEM.Store(addr, m.VRF[src][i]); err != nil {
			return nil, boundsError(in.PC, err)
		}

		addrs = append(addrs, addr)
	}

	return addrs, nil
}

func (m *Machine) loadVectorStrided(in isa.Instruction) ([]int, error) {
	dest, base, strideReg := in.Operands[0].Reg, in.Operands[1].Reg, in.Operands[2].Reg
	start := int(m.SRF[base].Signed())
	stride := int(m.SRF[strideReg].Signed())

	var addrs []int

	for _, i := range m.lanes() {
		addr := start + i*stride

		v, err := m.VDMEM.Fetch(addr)
		if err != nil {
			return nil, boundsError(in.PC, err)
		}

		m.VRF[dest][i] = v
		addrs = append(addrs, addr)
	}

	return addrs, nil
}

func (m *Machine) storeVectorStrided(in isa.Instruction) ([]int, error) {
	src, base, strideReg := in.Operands[0].Reg, in.Operands[1].Reg, in.Operands[2].Reg
	start := int(m.SRF[base].Signed())
	stride := int(m.SRF[strideReg].Signed())

	var addrs []int

	for _, i := range m.lanes() {
		addr := start + i*stride

		if err := m.VDMEM.Store(addr, m.VRF[src][i]); err != nil {
			return nil, boundsError(in.PC, err)
		}

		addrs = append(addrs, addr)
	}

	return addrs, nil
}

func (m *Machine) loadVectorIndexed(in isa.Instruction) ([]int, error) {
	dest, base, idx := in.Operands[0].Reg, in.Operands[1].Reg, in.Operands[2].Reg
	start := int(m.SRF[base].Signed())

	var addrs []int

	for _, i := range m.lanes() {
		addr := start + int(m.VRF[idx][i].Signed())

		v, err := m.VDMEM.Fetch(addr)
		if err != nil {
			return nil, boundsError(in.PC, err)
		}

		m.VRF[dest][i] = v
		addrs = append(addrs, addr)
	}

	return addrs, nil
}

func (m *Machine) storeVectorIndexed(in isa.Instruction) ([]int, error) {
	src, base, idx := in.Operands[0].Reg, in.Operands[1].Reg, in.Operands[2].Reg
	start := int(m.SRF[base].Signed())

	var addrs []int

	for _, i := range m.lanes() {
		addr := start + int(m.VRF[idx][i].Signed())

		if err := m.VDMEM.Store(addr, m.VRF[src][i]); err != nil {
			return nil, boundsError(in.PC, err)
		}

		addrs = append(addrs, addr)
	}

	return addrs, nil
}

func (m *Machine) loadScalar(in isa.Instruction) ([]int, error) {
	dest, base, imm := in.Operands[0].Reg, in.Operands[1].Reg, in.Operands[2]
	addr := int(m.SRF[base].Signed()) + int(imm.Imm)

	v, err := m.SDMEM.Fetch(addr)
	if err != nil {
		return nil, boundsError(in.PC, err)
	}

	m.SRF[dest] = v

	return []int{addr}, nil
}

func (m *Machine) storeScalar(in isa.Instruction) ([]int, error) {
	src, base, imm := in.Operands[0].Reg, in.Operands[1].Reg, in.Operands[2]
	addr := int(m.SRF[base].Signed()) + int(imm.Imm)

	if err := m.SDMEM.Store(addr, m.SRF[src]); err != nil {
		return nil, boundsError(in.PC, err)
	}

	return []int{addr}, nil
}
