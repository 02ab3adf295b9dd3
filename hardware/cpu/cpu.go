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

// Package cpu defines the interfaces between the machine and a CPU
// implementation. The machine does not interpret instructions itself. The CPU
// calls back into the machine for every memory and port access and the
// machine uses the CPU's cycle counter to keep the rest of the hardware in
// step.
//
// The trace sub-package contains a CPU that replays a fixed program of bus
// accesses. It is used for testing and by tools that need a machine without a
// real instruction set.
package cpu

import "github.com/zxcore/zxcore/hardware/savestate"

// CPU is the minimal interface required by the machine.
type CPU interface {
	// the number of cycles executed since the CPU was created. the count
	// must never go backwards except when the CPU is restored from a saved
	// state
	Cycles() uint64

	// extend the current instruction by the number of cycles. used by the
	// machine to add the cycles lost to contention
	AddWaitCycles(n int)

	// execute a single instruction
	Step() error
}

// Interrupter is implemented by CPU implementations that respond to the
// maskable interrupt line.
type Interrupter interface {
	SetInterrupt(asserted bool)
}

// Stateful is implemented by CPU implementations that can save and restore
// their state. The machine state does not include the CPU so anything that
// restores the machine to an earlier point (rewind for example) requires it.
type Stateful interface {
	SaveState(w *savestate.Writer)
	LoadState(r *savestate.Reader)
}
