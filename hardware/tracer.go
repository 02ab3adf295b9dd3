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
	"fmt"

	"github.com/zxcore/zxcore/hardware/bus"
)

// TraceKind identifies the type of TraceEvent.
type TraceKind int

// List of valid TraceKind values.
const (
	// a write to a paging port while the paging is locked
	TracePagingLocked TraceKind = iota

	// a write to an address that resolves to ROM
	TraceROMWrite

	// an access to a port that no device decodes
	TraceUnmappedPort

	// a write to a watched address. see Watch()
	TraceWatchedWrite
)

func (k TraceKind) String() string {
	switch k {
	case TracePagingLocked:
		return "paging locked"
	case TraceROMWrite:
		return "rom write"
	case TraceUnmappedPort:
		return "unmapped port"
	case TraceWatchedWrite:
		return "watched write"
	}
	return "unknown trace"
}

// TraceEvent describes a bus access that the hardware ignores or an access to
// a watched address.
type TraceEvent struct {
	Kind TraceKind
	Time bus.Time
	Addr uint16
	Data uint8
	Dir  bus.Direction
}

func (ev TraceEvent) String() string {
	return fmt.Sprintf("%s: %s %04x=%02x (frame %d, cycle %d)", ev.Kind, ev.Dir, ev.Addr, ev.Data, ev.Time.Frame, ev.Time.Cycle)
}

// Tracer receives TraceEvents. It has no effect on the emulation.
type Tracer interface {
	Trace(ev TraceEvent)
}

// SetTracer attaches a Tracer to the machine. A nil value detaches the
// current Tracer. The previous Tracer is returned.
func (m *Machine) SetTracer(tr Tracer) Tracer {
	prev := m.tracer
	m.tracer = tr
	return prev
}

// Watch adds the address to the set of addresses for which writes are traced.
// Writes to ROM are traced as TraceROMWrite and not as TraceWatchedWrite.
//
// Watches are counted. An address stays watched until Unwatch() has been
// called as many times as Watch().
func (m *Machine) Watch(addr uint16) {
	if m.watches == nil {
		m.watches = make(map[uint16]int)
	}
	m.watches[addr]++
}

// Unwatch removes one watch from the address.
func (m *Machine) Unwatch(addr uint16) {
	if m.watches[addr] <= 1 {
		delete(m.watches, addr)
		return
	}
	m.watches[addr]--
}

// Watched returns true if writes to the address are being traced.
func (m *Machine) Watched(addr uint16) bool {
	return m.watches[addr] > 0
}

func (m *Machine) trace(kind TraceKind, addr uint16, data uint8, dir bus.Direction) {
	if m.tracer == nil {
		return
	}
	m.tracer.Trace(TraceEvent{
		Kind: kind,
		Time: m.Now(),
		Addr: addr,
		Data: data,
		Dir:  dir,
	})
}
