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

package memory_test

import (
	"math/rand"
	"testing"

	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/memory"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/hardware/variant"
	"github.com/zxcore/zxcore/test"
)

func newMemory(t *testing.T, id variant.ID) *memory.Memory {
	t.Helper()
	env, err := environment.NewTestEnvironment(environment.MainEmulation)
	test.DemandSuccess(t, err)
	desc, err := variant.Lookup(id)
	test.DemandSuccess(t, err)

	rom := make([][]uint8, desc.ROMPages)
	for i := range rom {
		rom[i] = make([]uint8, memory.PageSize)
		for j := range rom[i] {
			rom[i][j] = uint8(0xa0 + i)
		}
	}

	return memory.NewMemory(env, desc, rom)
}

func TestFixedMap(t *testing.T) {
	mem := newMemory(t, variant.Spectrum48K)

	kind, page, offset := mem.ResolveAddress(0x0010)
	test.ExpectEquality(t, kind, memory.ROM)
	test.ExpectEquality(t, page, 0)
	test.ExpectEquality(t, offset, uint16(0x0010))

	for _, v := range []struct {
		address uint16
		page    int
	}{
		{0x4000, 5}, {0x8001, 2}, {0xffff, 0},
	} {
		kind, page, _ = mem.ResolveAddress(v.address)
		test.ExpectEquality(t, kind, memory.RAM, v.address)
		test.ExpectEquality(t, page, v.page, v.address)
	}

	// the 48K has no paging port
	test.ExpectEquality(t, mem.DecodePagingWrite(0x7ffd, 0x17), false)
	_, page, _ = mem.ResolveAddress(0xc000)
	test.ExpectEquality(t, page, 0)
	test.ExpectEquality(t, mem.ScreenBank(), 5)
}

func TestROMWrite(t *testing.T) {
	mem := newMemory(t, variant.Spectrum128K)
	test.ExpectEquality(t, mem.Write(0x0100, 0x55), false)
	test.ExpectEquality(t, mem.Read(0x0100), uint8(0xa0))
	test.ExpectEquality(t, mem.Write(0x4100, 0x55), true)
	test.ExpectEquality(t, mem.Read(0x4100), uint8(0x55))
}

func TestPagingDecode(t *testing.T) {
	mem := newMemory(t, variant.Spectrum128K)
	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		// never set the lock bit
		v := uint8(rnd.Intn(256)) &^ 0x20
		test.ExpectEquality(t, mem.DecodePagingWrite(0x7ffd, v), true)

		test.ExpectEquality(t, mem.Banks.RAM, int(v&0x07))
		test.ExpectEquality(t, mem.Banks.Shadow, v&0x08 == 0x08)
		test.ExpectEquality(t, mem.Banks.ROM, int(v&0x10)>>4)
		test.ExpectEquality(t, mem.Banks.Locked, false)

		_, page, _ := mem.ResolveAddress(0xc000)
		test.ExpectEquality(t, page, int(v&0x07))
	}

	// partially decoded port
	test.ExpectEquality(t, mem.DecodePagingWrite(0x3ffd, 0x03), true)
	test.ExpectEquality(t, mem.Banks.RAM, 3)

	// ports outside the decode are ignored
	test.ExpectEquality(t, mem.DecodePagingWrite(0xfffd, 0x04), false)
	test.ExpectEquality(t, mem.DecodePagingWrite(0x7fff, 0x04), false)
	test.ExpectEquality(t, mem.Banks.RAM, 3)
}

func TestPagingLock(t *testing.T) {
	mem := newMemory(t, variant.Spectrum128K)

	test.ExpectEquality(t, mem.DecodePagingWrite(0x7ffd, 0x20|0x10|0x04), true)
	test.ExpectEquality(t, mem.Banks.Locked, true)
	locked := mem.Banks

	for v := 0; v < 256; v++ {
		mem.DecodePagingWrite(0x7ffd, uint8(v))
		test.ExpectEquality(t, mem.Banks, locked)
	}

	mem.Reset()
	test.ExpectEquality(t, mem.Banks, memory.BankSet{})
}

func TestShadowScreen(t *testing.T) {
	mem := newMemory(t, variant.Spectrum128K)
	test.ExpectSuccess(t, mem.Poke(memory.RAM, 7, 0, 0x77))
	test.ExpectSuccess(t, mem.Poke(memory.RAM, 5, 0, 0x55))

	test.ExpectEquality(t, mem.ScreenMemory()[0], uint8(0x55))
	mem.DecodePagingWrite(0x7ffd, 0x08)
	test.ExpectEquality(t, mem.ScreenBank(), 7)
	test.ExpectEquality(t, mem.ScreenMemory()[0], uint8(0x77))

	// the shadow screen does not change what is visible at 0x4000
	test.ExpectEquality(t, mem.Read(0x4000), uint8(0x55))
}

func TestSpecialPaging(t *testing.T) {
	mem := newMemory(t, variant.SpectrumPlus2A)

	// primary port is decoded differently on the +2A
	test.ExpectEquality(t, mem.DecodePagingWrite(0x7ffd, 0x11), true)
	test.ExpectEquality(t, mem.Banks.ROM, 1)
	test.ExpectEquality(t, mem.DecodePagingWrite(0x3ffd, 0x01), false)

	// ROM high bit selects ROMs 2 and 3
	test.ExpectEquality(t, mem.DecodePagingWrite(0x1ffd, 0x04), true)
	test.ExpectEquality(t, mem.Banks.ROM, 3)
	test.ExpectEquality(t, mem.Read(0x0000), uint8(0xa3))

	// special mode, configuration 3: 4, 7, 6, 3
	test.ExpectEquality(t, mem.DecodePagingWrite(0x1ffd, 0x07), true)
	test.ExpectEquality(t, mem.Banks.Special, true)
	for i, expected := range []int{4, 7, 6, 3} {
		kind, page, _ := mem.ResolveAddress(uint16(i * memory.PageSize))
		test.ExpectEquality(t, kind, memory.RAM)
		test.ExpectEquality(t, page, expected)
	}

	// writes to the bottom window succeed in special mode
	test.ExpectEquality(t, mem.Write(0x0000, 0x12), true)
	v, err := mem.Peek(memory.RAM, 4, 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x12))

	// the lock applies to the secondary port too
	mem.DecodePagingWrite(0x7ffd, 0x20)
	mem.DecodePagingWrite(0x1ffd, 0x00)
	test.ExpectEquality(t, mem.Banks.Special, true)
}

func TestPeekPoke(t *testing.T) {
	mem := newMemory(t, variant.Spectrum128K)
	test.ExpectSuccess(t, mem.Poke(memory.ROM, 1, 0x10, 0x99))
	v, err := mem.Peek(memory.ROM, 1, 0x10)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x99))

	_, err = mem.Peek(memory.RAM, 8, 0)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, mem.Poke(memory.ROM, 0, memory.PageSize, 0))
}

func TestState(t *testing.T) {
	mem := newMemory(t, variant.Spectrum128K)
	mem.DecodePagingWrite(0x7ffd, 0x1b)
	mem.Write(0xc123, 0x42)

	w := savestate.NewWriter()
	mem.SaveState(w)
	data, err := w.Data()
	test.DemandSuccess(t, err)

	other := newMemory(t, variant.Spectrum128K)
	r := savestate.NewReader(data)
	other.LoadState(r)
	test.ExpectSuccess(t, r.Finish())

	test.ExpectEquality(t, other.Banks, mem.Banks)
	test.ExpectEquality(t, other.Read(0xc123), uint8(0x42))
}
