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

// Package ula implements the ULA device. The ULA decodes port 0xfe, which
// carries the keyboard, the border colour and the EAR and MIC signals. It
// raises the CPU interrupt at the start of every frame and samples the tape
// deck every cycle.
//
// The display itself is not rendered. The Screen() function returns the RAM
// page the ULA is reading from and the Border() function the current border
// colour. It is for the frontend to turn these into pixels.
package ula

import (
	"fmt"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/hardware/variant"
)

// bits of the value written to port 0xfe
const (
	borderBits = 0x07
	micBit     = 0x08
	earBit     = 0x10
)

// the EAR input bit of the value read from port 0xfe
const earInBit = 0x40

// Screen is the memory displayed by the ULA.
type Screen interface {
	ScreenMemory() []uint8
}

// Keyboard is read through port 0xfe.
type Keyboard interface {
	Read(high uint8) uint8
}

// Level is a one bit signal. Implemented by the beepers.
type Level interface {
	SetLevel(level bool)
}

// Deck is the tape deck.
type Deck interface {
	SampleBit(cycle uint64) bool
	RecordEdge(cycle uint64, level bool)
}

// Attachments are the other parts of the machine the ULA is connected to. The
// Interrupter can be nil.
type Attachments struct {
	Screen      Screen
	Keyboard    Keyboard
	Deck        Deck
	Beeper      Level
	TapeBeeper  Level
	Interrupter cpu.Interrupter
	Clock       bus.Clock
}

// ULA is the video and I/O chip.
type ULA struct {
	env  *environment.Environment
	desc variant.Descriptor
	att  Attachments

	border BorderType

	borderColour uint8
	ear          bool
	mic          bool

	// the level of the signal from the tape deck
	earIn bool

	interrupt bool
}

// NewULA is the preferred method of initialisation for the ULA type.
func NewULA(env *environment.Environment, desc variant.Descriptor, border BorderType, att Attachments) *ULA {
	return &ULA{
		env:    env,
		desc:   desc,
		att:    att,
		border: border,
	}
}

func (ula *ULA) String() string {
	return fmt.Sprintf("border=%d ear=%v mic=%v int=%v", ula.borderColour, ula.ear, ula.mic, ula.interrupt)
}

// Kind implements the bus.Device interface.
func (ula *ULA) Kind() bus.Kind {
	return bus.ULA
}

// Label implements the bus.Device interface.
func (ula *ULA) Label() string {
	return "ULA"
}

// Init implements the bus.Device interface.
func (ula *ULA) Init(_ int, frameLength int) error {
	if frameLength != ula.desc.FrameLength {
		return curated.Errorf("ula: frame length (%d) does not match %s", frameLength, ula.desc.Name)
	}
	return nil
}

// Reset implements the bus.Device interface.
func (ula *ULA) Reset() {
	ula.borderColour = 0
	ula.ear = false
	ula.mic = false
	ula.earIn = false
	ula.setInterrupt(false)
}

// Cadence implements the bus.Device interface.
func (ula *ULA) Cadence() bus.Cadence {
	return bus.PerCycle
}

// Mask returns the port decoding of the ULA. Any even port.
func (ula *ULA) Mask() bus.Mask {
	return bus.Mask{Mask: 0x0001, Match: 0x0000}
}

func (ula *ULA) setInterrupt(asserted bool) {
	if ula.interrupt == asserted {
		return
	}
	ula.interrupt = asserted
	if ula.att.Interrupter != nil {
		ula.att.Interrupter.SetInterrupt(asserted)
	}
}

// Tick implements the bus.Device interface.
func (ula *ULA) Tick(t bus.Time) {
	ula.setInterrupt(t.Cycle < ula.desc.InterruptLength)

	ula.earIn = ula.att.Deck.SampleBit(t.Total)
	ula.att.TapeBeeper.SetLevel(ula.earIn)
}

// HandlePort is the port handler for the ULA.
func (ula *ULA) HandlePort(port uint16, dir bus.Direction, data uint8) (uint8, bool) {
	if dir == bus.Write {
		ula.borderColour = data & borderBits
		ula.ear = data&earBit == earBit
		ula.att.Beeper.SetLevel(ula.ear)

		mic := data&micBit == micBit
		if mic != ula.mic {
			ula.mic = mic
			ula.att.Deck.RecordEdge(ula.att.Clock.Now().Total, mic)
		}
		return 0, true
	}

	v := ula.att.Keyboard.Read(uint8(port>>8))&0x1f | 0xa0
	if ula.earIn {
		v |= earInBit
	}
	return v, true
}

// FloatingValue is the value left on the data bus by the ULA for reads of
// unmapped ports. While the ULA is fetching display data the value is the
// display byte being fetched. Otherwise it is 0xff.
func (ula *ULA) FloatingValue() uint8 {
	if !ula.desc.FloatingBus || !ula.env.Prefs.FloatingBus.Get().(bool) {
		return 0xff
	}

	c := ula.desc.Contention
	cycle := ula.att.Clock.Now().Cycle - c.FirstCycle
	if cycle < 0 {
		return 0xff
	}

	line := cycle / c.LineLength
	pos := cycle % c.LineLength
	if line >= DisplayHeight || pos >= c.BusyCycles {
		return 0xff
	}

	// the ULA fetches a pixel byte and an attribute byte for two adjacent
	// columns in the first four cycles of every eight
	col := (pos / 8) * 2
	mem := ula.att.Screen.ScreenMemory()
	switch pos % 8 {
	case 0:
		return mem[pixelAddress(line, col)]
	case 1:
		return mem[attributeAddress(line, col)]
	case 2:
		return mem[pixelAddress(line, col+1)]
	case 3:
		return mem[attributeAddress(line, col+1)]
	}
	return 0xff
}

// offset into the screen page of the pixel byte for the line and column
func pixelAddress(line int, col int) int {
	return (line&0xc0)<<5 | (line&0x07)<<8 | (line&0x38)<<2 | col
}

// offset into the screen page of the attribute byte for the line and column
func attributeAddress(line int, col int) int {
	return 0x1800 + (line/8)*32 + col
}

// Border returns the current border colour.
func (ula *ULA) Border() uint8 {
	return ula.borderColour
}

// BorderType returns the border selected at construction.
func (ula *ULA) BorderType() BorderType {
	return ula.border
}

// Screen returns the RAM page the ULA is displaying. The returned slice
// should not be altered.
func (ula *ULA) Screen() []uint8 {
	return ula.att.Screen.ScreenMemory()
}

// Interrupt returns true while the interrupt line is asserted.
func (ula *ULA) Interrupt() bool {
	return ula.interrupt
}

// SaveState implements the bus.Device interface.
func (ula *ULA) SaveState(w *savestate.Writer) {
	w.U8(ula.borderColour)
	w.Bool(ula.ear)
	w.Bool(ula.mic)
	w.Bool(ula.earIn)
	w.Bool(ula.interrupt)
}

// LoadState implements the bus.Device interface.
func (ula *ULA) LoadState(r *savestate.Reader) {
	ula.borderColour = r.U8() & borderBits
	ula.ear = r.Bool()
	ula.mic = r.Bool()
	ula.earIn = r.Bool()

	// force the interrupter to see the restored line
	asserted := r.Bool()
	ula.interrupt = !asserted
	ula.setInterrupt(asserted)
}
