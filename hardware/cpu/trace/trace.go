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

// Package trace implements a CPU that replays a program of bus accesses. Each
// instruction in the program is a list of operations (fetch, read, write, in,
// out or internal) with the number of cycles each operation takes.
//
// The machine's contention is applied to the operation that caused it, so the
// cycle count after each instruction is exactly what a real CPU would report
// for the same accesses.
//
//	prog := trace.Program{
//		trace.NewInstruction("ld a,(4000)", trace.Fetch(0x8000), trace.Read(0x4000)),
//		trace.NewInstruction("out (fe),a", trace.Fetch(0x8001), trace.Out(0x00fe, 0x07)),
//	}
//	mc := trace.NewCPU(prog)
//	mc.Plumb(machine)
package trace

import (
	"fmt"
	"strings"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/savestate"
)

// EndOfProgram is returned by Step() when there are no more instructions and
// the CPU is not looping.
const EndOfProgram = "trace: end of program"

// the number of cycles taken to acknowledge an interrupt
const interruptCycles = 13

// Bus is the machine the CPU is attached to.
type Bus interface {
	ReadMemory(addr uint16) uint8
	WriteMemory(addr uint16, data uint8)
	ReadPort(port uint16) uint8
	WritePort(port uint16, data uint8)
}

// OpKind is the type of an Op.
type OpKind int

// List of valid OpKind values.
const (
	OpFetch OpKind = iota
	OpRead
	OpWrite
	OpIn
	OpOut
	OpInternal
)

func (k OpKind) String() string {
	switch k {
	case OpFetch:
		return "fetch"
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpIn:
		return "in"
	case OpOut:
		return "out"
	case OpInternal:
		return "internal"
	}
	return "unknown op"
}

// Op is a single step of an instruction.
type Op struct {
	Kind   OpKind
	Addr   uint16
	Data   uint8
	Cycles int
}

func (op Op) String() string {
	switch op.Kind {
	case OpWrite, OpOut:
		return fmt.Sprintf("%s %04x=%02x (%d)", op.Kind, op.Addr, op.Data, op.Cycles)
	case OpInternal:
		return fmt.Sprintf("%s (%d)", op.Kind, op.Cycles)
	}
	return fmt.Sprintf("%s %04x (%d)", op.Kind, op.Addr, op.Cycles)
}

// Fetch is an opcode fetch. Four cycles.
func Fetch(addr uint16) Op {
	return Op{Kind: OpFetch, Addr: addr, Cycles: 4}
}

// Read is a memory read. Three cycles.
func Read(addr uint16) Op {
	return Op{Kind: OpRead, Addr: addr, Cycles: 3}
}

// Write is a memory write. Three cycles.
func Write(addr uint16, data uint8) Op {
	return Op{Kind: OpWrite, Addr: addr, Data: data, Cycles: 3}
}

// In is a port read. Four cycles.
func In(port uint16) Op {
	return Op{Kind: OpIn, Addr: port, Cycles: 4}
}

// Out is a port write. Four cycles.
func Out(port uint16, data uint8) Op {
	return Op{Kind: OpOut, Addr: port, Data: data, Cycles: 4}
}

// Internal is an operation that does not access the bus.
func Internal(cycles int) Op {
	return Op{Kind: OpInternal, Cycles: cycles}
}

// Instruction is a labelled sequence of operations.
type Instruction struct {
	Label string
	Ops   []Op
}

// NewInstruction is the preferred method of initialisation for the
// Instruction type.
func NewInstruction(label string, ops ...Op) Instruction {
	return Instruction{Label: label, Ops: ops}
}

func (ins Instruction) String() string {
	s := make([]string, len(ins.Ops))
	for i, op := range ins.Ops {
		s[i] = op.String()
	}
	return fmt.Sprintf("%s [%s]", ins.Label, strings.Join(s, "; "))
}

// Cycles returns the number of cycles taken by the instruction without any
// contention.
func (ins Instruction) Cycles() int {
	var n int
	for _, op := range ins.Ops {
		n += op.Cycles
	}
	return n
}

// Program is a list of instructions.
type Program []Instruction

// State is the saved state of the CPU. The program is not part of the state.
type State struct {
	PC         int
	Cycles     uint64
	Wait       int
	Interrupt  bool
	Acked      bool
	Interrupts int
	Last       uint8
}

// CPU replays a Program.
type CPU struct {
	bus     Bus
	program Program

	pc        int
	cycles    uint64
	wait      int
	interrupt bool
	acked     bool

	// the number of interrupts acknowledged
	interrupts int

	// the value of the most recent read or in operation
	last uint8

	// restart the program when the end is reached
	Loop bool

	// the interrupt line is ignored while this is true. the equivalent of
	// running with interrupts disabled
	DisableInterrupts bool

	// called after every operation with the value read or written
	OnOp func(op Op, data uint8, cycle uint64)
}

// NewCPU is the preferred method of initialisation for the CPU type. The CPU
// must be plumbed into a Bus before Step() is called.
func NewCPU(program Program) *CPU {
	return &CPU{program: program}
}

// Plumb the CPU into a Bus.
func (mc *CPU) Plumb(bus Bus) {
	mc.bus = bus
}

func (mc *CPU) String() string {
	return fmt.Sprintf("pc=%d cycles=%d", mc.pc, mc.cycles)
}

// Cycles implements the cpu.CPU interface.
func (mc *CPU) Cycles() uint64 {
	return mc.cycles
}

// AddWaitCycles implements the cpu.CPU interface. Wait cycles are added to the
// cycle count when the current operation completes.
func (mc *CPU) AddWaitCycles(n int) {
	if n > 0 {
		mc.wait += n
	}
}

// SetInterrupt implements the cpu.Interrupter interface. An interrupt is
// acknowledged once for every assertion of the line.
func (mc *CPU) SetInterrupt(asserted bool) {
	mc.interrupt = asserted
	if !asserted {
		mc.acked = false
	}
}

// Interrupts returns the number of interrupts acknowledged.
func (mc *CPU) Interrupts() int {
	return mc.interrupts
}

// Last returns the value of the most recent read or in operation.
func (mc *CPU) Last() uint8 {
	return mc.last
}

// PC returns the index of the next instruction.
func (mc *CPU) PC() int {
	return mc.pc
}

// Step implements the cpu.CPU interface.
func (mc *CPU) Step() error {
	if mc.bus == nil {
		return curated.Errorf("trace: cpu has not been plumbed into a bus")
	}

	if mc.interrupt && !mc.acked && !mc.DisableInterrupts {
		mc.acked = true
		mc.interrupts++
		mc.cycles += interruptCycles
		return nil
	}

	if mc.pc >= len(mc.program) {
		if !mc.Loop || len(mc.program) == 0 {
			return curated.Errorf(EndOfProgram)
		}
		mc.pc = 0
	}

	ins := mc.program[mc.pc]
	mc.pc++

	for _, op := range ins.Ops {
		var data uint8

		switch op.Kind {
		case OpFetch, OpRead:
			data = mc.bus.ReadMemory(op.Addr)
			mc.last = data
		case OpWrite:
			data = op.Data
			mc.bus.WriteMemory(op.Addr, data)
		case OpIn:
			data = mc.bus.ReadPort(op.Addr)
			mc.last = data
		case OpOut:
			data = op.Data
			mc.bus.WritePort(op.Addr, data)
		case OpInternal:
		default:
			return curated.Errorf("trace: unknown op (%d) in %s", op.Kind, ins.Label)
		}

		mc.cycles += uint64(op.Cycles + mc.wait)
		mc.wait = 0

		if mc.OnOp != nil {
			mc.OnOp(op, data, mc.cycles)
		}
	}

	return nil
}

// Save the state of the CPU.
func (mc *CPU) Save() State {
	return State{
		PC:         mc.pc,
		Cycles:     mc.cycles,
		Wait:       mc.wait,
		Interrupt:  mc.interrupt,
		Acked:      mc.acked,
		Interrupts: mc.interrupts,
		Last:       mc.last,
	}
}

// Restore a previously saved state.
func (mc *CPU) Restore(s State) {
	mc.pc = s.PC
	mc.cycles = s.Cycles
	mc.wait = s.Wait
	mc.interrupt = s.Interrupt
	mc.acked = s.Acked
	mc.interrupts = s.Interrupts
	mc.last = s.Last
}

// SaveState implements the cpu.Stateful interface.
func (mc *CPU) SaveState(w *savestate.Writer) {
	w.Section("trace")
	w.Int(mc.pc)
	w.U64(mc.cycles)
	w.Int(mc.wait)
	w.Bool(mc.interrupt)
	w.Bool(mc.acked)
	w.Int(mc.interrupts)
	w.U8(mc.last)
}

// LoadState implements the cpu.Stateful interface.
func (mc *CPU) LoadState(r *savestate.Reader) {
	r.Section("trace")
	s := State{
		PC:         r.Int(),
		Cycles:     r.U64(),
		Wait:       r.Int(),
		Interrupt:  r.Bool(),
		Acked:      r.Bool(),
		Interrupts: r.Int(),
		Last:       r.U8(),
	}
	if r.Err() != nil {
		return
	}
	if s.PC < 0 || s.PC > len(mc.program) {
		r.Fail(curated.Errorf("trace: pc out of range (%d)", s.PC))
		return
	}
	mc.Restore(s)
}
