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

// Package hardware is the base package for the ZX Spectrum emulation. The
// Machine type ties together the memory banking unit, the device bus and its
// devices, the contention monitor, the audio mixer and the tape deck.
//
// The CPU is not part of the package. Any type implementing the cpu.CPU
// interface can drive the machine by calling the ReadMemory(), WriteMemory(),
// ReadPort() and WritePort() functions for its bus accesses. The Step()
// function runs one CPU instruction and brings the rest of the machine up to
// date with the CPU's cycle counter.
//
//	env, _ := environment.NewEnvironment(nil, nil)
//	mc := trace.NewCPU(program)
//	m, err := hardware.NewMachine(env, mc, hardware.Config{Variant: variant.Spectrum128K})
//	mc.Plumb(m)
//
//	for {
//		frame, err := m.Step()
//		...
//	}
//
// The audio returned by Step() and StepOneCycle() is one sample per CPU cycle
// and one frame at a time. Frontends resample it with audio.Resample().
package hardware
