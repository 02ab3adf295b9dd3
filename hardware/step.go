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

package hardware

import (
	"github.com/zxcore/zxcore/hardware/bus"
)

// Step the CPU by one instruction and then step the rest of the machine until
// it has caught up with the CPU. Returns the audio for the frame if a frame
// boundary was crossed, otherwise nil.
//
// Unlike the CPU, the rest of the machine only ever moves forward one cycle
// at a time. The CPU calls back into the machine for every bus access and the
// time of the access is worked out from the number of cycles the CPU is ahead.
func (m *Machine) Step() ([]int16, error) {
	err := m.cpu.Step()
	if err != nil {
		return nil, err
	}

	var frame []int16
	for m.synced < m.cpu.Cycles() {
		if f := m.StepOneCycle(); f != nil {
			frame = f
		}
	}

	return frame, nil
}

// StepOneCycle advances the machine by one cycle. Devices are ticked and then
// the audio mixer is stepped. At the end of a frame the per-frame devices are
// ticked and the audio for the frame is returned. Otherwise the return value
// is nil.
func (m *Machine) StepOneCycle() []int16 {
	m.Bus.Tick(bus.Time{
		Frame: m.frame.Count,
		Cycle: m.frame.Cycle,
		Total: m.frame.Total,
	})
	m.Mixer.StepCycle()

	m.frame.Cycle++
	m.frame.Total++
	m.synced++

	if m.frame.Cycle < m.frame.Length {
		return nil
	}

	m.frame.Cycle = 0
	m.frame.Count++
	m.Bus.TickFrame(bus.Time{
		Frame: m.frame.Count,
		Total: m.frame.Total,
	})

	return m.Mixer.FlushFrame()
}

// the cycle in the frame of an access by the CPU
func (m *Machine) accessCycle() int {
	return m.Now().Cycle
}

// ReadMemory is called by the CPU for every memory read. Contention is added
// to the CPU's wait cycles.
func (m *Machine) ReadMemory(addr uint16) uint8 {
	m.cpu.AddWaitCycles(m.Contention.ExtraWaitCycles(addr, m.accessCycle()))
	return m.Mem.Read(addr)
}

// WriteMemory is called by the CPU for every memory write. Writes to ROM are
// discarded.
func (m *Machine) WriteMemory(addr uint16, data uint8) {
	m.cpu.AddWaitCycles(m.Contention.ExtraWaitCycles(addr, m.accessCycle()))
	if !m.Mem.Write(addr, data) {
		m.trace(TraceROMWrite, addr, data, bus.Write)
	} else if m.watches[addr] > 0 {
		m.trace(TraceWatchedWrite, addr, data, bus.Write)
	}
}

// ReadPort is called by the CPU for every port read. Ports not decoded by any
// device return the idle value of the bus.
func (m *Machine) ReadPort(port uint16) uint8 {
	m.cpu.AddWaitCycles(m.Contention.PortWaitCycles(port, m.accessCycle()))
	v, ok := m.Bus.DispatchPort(port, bus.Read, 0)
	if !ok {
		m.trace(TraceUnmappedPort, port, v, bus.Read)
	}
	return v
}

// WritePort is called by the CPU for every port write. Paging ports are
// decoded by the memory before the device bus is tried.
func (m *Machine) WritePort(port uint16, data uint8) {
	m.cpu.AddWaitCycles(m.Contention.PortWaitCycles(port, m.accessCycle()))

	locked := m.Mem.Banks.Locked
	if m.Mem.DecodePagingWrite(port, data) {
		if locked {
			m.trace(TracePagingLocked, port, data, bus.Write)
		}
		return
	}

	if _, ok := m.Bus.DispatchPort(port, bus.Write, data); !ok {
		m.trace(TraceUnmappedPort, port, data, bus.Write)
	}
}
