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

// Package contention implements the CPU timing monitor. The ULA and the CPU
// share the data bus of the contended RAM pages. While the ULA is fetching
// display data the CPU is held for a number of cycles that depends on where in
// the fetch sequence the access falls.
//
// The monitor is advisory. It reports the number of wait cycles for an access
// and the caller is responsible for applying them to the CPU.
package contention

import (
	"github.com/zxcore/zxcore/hardware/memory"
	"github.com/zxcore/zxcore/hardware/variant"
)

// Monitor calculates the wait cycles for memory and port accesses.
type Monitor struct {
	table variant.ContentionTable
	mem   *memory.Memory
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(table variant.ContentionTable, mem *memory.Memory) *Monitor {
	return &Monitor{
		table: table,
		mem:   mem,
	}
}

// Contended returns true if the address resolves to a contended RAM page.
func (mon *Monitor) Contended(address uint16) bool {
	kind, page, _ := mon.mem.ResolveAddress(address)
	return kind == memory.RAM && page < len(mon.table.Banks) && mon.table.Banks[page]
}

// ExtraWaitCycles returns the number of wait cycles for a memory access to the
// address at the cycle within the frame.
func (mon *Monitor) ExtraWaitCycles(address uint16, cycle int) int {
	if !mon.Contended(address) {
		return 0
	}
	return mon.table.Delay(cycle)
}

// PortWaitCycles returns the number of wait cycles for an I/O access to the
// port at the cycle within the frame.
//
// The pattern of the access depends on whether the high byte of the port
// would address contended memory and on whether the ULA responds to the port
// (bit 0 is low). In the following N is an uncontended cycle and C is a
// contended cycle.
//
//	high byte    ULA port    pattern
//	normal       no          N:4
//	normal       yes         N:1 C:3
//	contended    yes         C:1 C:3
//	contended    no          C:1 C:1 C:1 C:1
func (mon *Monitor) PortWaitCycles(port uint16, cycle int) int {
	if !mon.table.IOContention {
		return 0
	}

	high := mon.Contended(port)
	ula := port&0x0001 == 0x0000

	switch {
	case !high && !ula:
		return 0
	case !high && ula:
		return mon.table.Delay(cycle + 1)
	case high && ula:
		w := mon.table.Delay(cycle)
		return w + mon.table.Delay(cycle+w+1)
	}

	var w int
	c := cycle
	for i := 0; i < 4; i++ {
		d := mon.table.Delay(c)
		w += d
		c += d + 1
	}
	return w
}
