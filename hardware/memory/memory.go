// This file is part of ZXCore.
//
// ZXCore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ZXCore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ZXCore.  If not, see <https://www.gnu.org/licenses/>.

package memory

import (
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/hardware/variant"
)

// the RAM pages shown by the ULA
const (
	normalScreen = 5
	shadowScreen = 7
)

// Memory is the memory banking unit and the pages it maps.
type Memory struct {
	env    *environment.Environment
	layout variant.PagingLayout

	rom [][]uint8
	ram [][]uint8

	Banks BankSet
}

// NewMemory is the preferred method of initialisation for the Memory type. The
// firmware slice contains the data for each ROM page. Missing ROM pages are
// left blank. The caller is responsible for checking the size of the firmware.
func NewMemory(env *environment.Environment, desc variant.Descriptor, firmware [][]uint8) *Memory {
	mem := &Memory{
		env:    env,
		layout: desc.Paging,
		rom:    make([][]uint8, desc.ROMPages),
		ram:    make([][]uint8, desc.RAMPages),
	}

	for i := range mem.rom {
		mem.rom[i] = make([]uint8, PageSize)
		if i < len(firmware) {
			copy(mem.rom[i], firmware[i])
		}
	}

	for i := range mem.ram {
		mem.ram[i] = make([]uint8, PageSize)
	}

	mem.Reset()

	return mem
}

// Reset installs a fresh BankSet and clears RAM. RAM is filled with random
// values if the RandomState preference is set.
func (mem *Memory) Reset() {
	mem.Banks = BankSet{}

	for _, p := range mem.ram {
		if mem.env.Prefs.RandomState.Get().(bool) {
			mem.env.Random.Fill(p)
		} else {
			clear(p)
		}
	}
}

// IsPagingPort returns true if the port is decoded as a paging port.
func (mem *Memory) IsPagingPort(port uint16) bool {
	if mem.layout.Fixed {
		return false
	}
	if mem.layout.Port.Matches(port) {
		return true
	}
	return mem.layout.Secondary && mem.layout.SecondaryPort.Matches(port)
}

// DecodePagingWrite updates the BankSet from a write to a paging port. Returns
// false if the port is not a paging port. Writes to a paging port while the
// BankSet is locked are decoded but have no effect.
func (mem *Memory) DecodePagingWrite(port uint16, value uint8) bool {
	if !mem.IsPagingPort(port) {
		return false
	}

	if mem.Banks.Locked {
		return true
	}

	l := mem.layout

	if l.Port.Matches(port) {
		mem.Banks.RAM = int(value & l.RAMBits)
		mem.Banks.Shadow = value&l.Shadow == l.Shadow
		mem.Banks.Locked = value&l.Lock == l.Lock
		mem.Banks.ROM = 0
		if value&l.ROM == l.ROM {
			mem.Banks.ROM = 1
		}
	} else {
		mem.Banks.Special = value&l.SpecialMode == l.SpecialMode
		mem.Banks.SpecialConfig = int((value & l.SpecialConfig) >> l.SpecialConfigPos)
		mem.Banks.ROMHigh = value&l.ROMHigh == l.ROMHigh
		mem.Banks.ROM &= 0x01
	}

	if mem.Banks.ROMHigh {
		mem.Banks.ROM |= 0x02
	}

	return true
}

// ResolveAddress returns the page mapped at the address and the offset into
// that page. It has no side effects.
func (mem *Memory) ResolveAddress(address uint16) (PageKind, int, uint16) {
	window := int(address / PageSize)
	offset := address % PageSize

	if mem.Banks.Special {
		return RAM, mem.layout.SpecialPages[mem.Banks.SpecialConfig][window], offset
	}

	switch window {
	case 0:
		return ROM, mem.Banks.ROM, offset
	case 1:
		return RAM, 5, offset
	case 2:
		return RAM, 2, offset
	}

	return RAM, mem.Banks.RAM, offset
}

// Read the value at the address.
func (mem *Memory) Read(address uint16) uint8 {
	kind, page, offset := mem.ResolveAddress(address)
	if kind == ROM {
		return mem.rom[page][offset]
	}
	return mem.ram[page][offset]
}

// Write the value to the address. Returns false if the address resolves to
// ROM, in which case the write has no effect.
func (mem *Memory) Write(address uint16, value uint8) bool {
	kind, page, offset := mem.ResolveAddress(address)
	if kind == ROM {
		return false
	}
	mem.ram[page][offset] = value
	return true
}

func (mem *Memory) page(kind PageKind, page int, offset uint16) ([]uint8, error) {
	pages := mem.ram
	if kind == ROM {
		pages = mem.rom
	}
	if page < 0 || page >= len(pages) {
		return nil, curated.Errorf("memory: no %v page %d", kind, page)
	}
	if offset >= PageSize {
		return nil, curated.Errorf("memory: offset %#04x out of range", offset)
	}
	return pages[page], nil
}

// Peek returns the value in a physical page without going through the
// BankSet. ROM pages can be peeked.
func (mem *Memory) Peek(kind PageKind, page int, offset uint16) (uint8, error) {
	p, err := mem.page(kind, page, offset)
	if err != nil {
		return 0, err
	}
	return p[offset], nil
}

// Poke a value into a physical page. Unlike Write(), ROM pages can be poked.
func (mem *Memory) Poke(kind PageKind, page int, offset uint16, value uint8) error {
	p, err := mem.page(kind, page, offset)
	if err != nil {
		return err
	}
	p[offset] = value
	return nil
}

// ScreenBank returns the RAM page displayed by the ULA.
func (mem *Memory) ScreenBank() int {
	if mem.Banks.Shadow && !mem.layout.Fixed {
		return shadowScreen
	}
	return normalScreen
}

// ScreenMemory returns the RAM page displayed by the ULA. The returned slice
// should not be altered.
func (mem *Memory) ScreenMemory() []uint8 {
	return mem.ram[mem.ScreenBank()]
}

// SaveState writes the BankSet and the contents of RAM. ROM is not part of the
// state because it can only be changed through Poke().
func (mem *Memory) SaveState(w *savestate.Writer) {
	w.Section("memory")
	w.Int(mem.Banks.ROM)
	w.Int(mem.Banks.RAM)
	w.Bool(mem.Banks.Shadow)
	w.Bool(mem.Banks.Locked)
	w.Bool(mem.Banks.Special)
	w.Int(mem.Banks.SpecialConfig)
	w.Bool(mem.Banks.ROMHigh)
	w.Int(len(mem.ram))
	for _, p := range mem.ram {
		w.Bytes(p)
	}
}

// LoadState restores the BankSet and the contents of RAM.
func (mem *Memory) LoadState(r *savestate.Reader) {
	r.Section("memory")

	var b BankSet
	b.ROM = r.Int()
	b.RAM = r.Int()
	b.Shadow = r.Bool()
	b.Locked = r.Bool()
	b.Special = r.Bool()
	b.SpecialConfig = r.Int()
	b.ROMHigh = r.Bool()

	if b.ROM < 0 || b.ROM >= len(mem.rom) || b.RAM < 0 || b.RAM >= len(mem.ram) || b.SpecialConfig < 0 || b.SpecialConfig > 3 {
		r.Fail(curated.Errorf("memory: invalid bank set (%v)", b))
		return
	}

	if n := r.Int(); n != len(mem.ram) {
		r.Fail(curated.Errorf("memory: state has %d RAM pages but memory has %d", n, len(mem.ram)))
		return
	}
	for _, p := range mem.ram {
		r.BytesInto(p)
	}

	mem.Banks = b
}
