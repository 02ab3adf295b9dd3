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

package ula_test

import (
	"testing"

	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/keyboard"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/hardware/ula"
	"github.com/zxcore/zxcore/hardware/variant"
	"github.com/zxcore/zxcore/test"
)

type screen struct {
	mem []uint8
}

func (s *screen) ScreenMemory() []uint8 {
	return s.mem
}

type level struct {
	level bool
}

func (l *level) SetLevel(v bool) {
	l.level = v
}

type edge struct {
	cycle uint64
	level bool
}

type deck struct {
	level bool
	edges []edge
}

func (d *deck) SampleBit(_ uint64) bool {
	return d.level
}

func (d *deck) RecordEdge(cycle uint64, level bool) {
	d.edges = append(d.edges, edge{cycle: cycle, level: level})
}

type interrupter struct {
	asserted bool
	changes  int
}

func (i *interrupter) SetInterrupt(asserted bool) {
	i.asserted = asserted
	i.changes++
}

type clock struct {
	now bus.Time
}

func (c *clock) Now() bus.Time {
	return c.now
}

type fixture struct {
	env    *environment.Environment
	ula    *ula.ULA
	screen *screen
	kb     *keyboard.Keyboard
	deck   *deck
	beeper *level
	tape   *level
	intr   *interrupter
	clock  *clock
}

func newFixture(t *testing.T, id variant.ID) *fixture {
	t.Helper()

	env, err := environment.NewTestEnvironment("ula test")
	test.DemandSuccess(t, err)

	desc, err := variant.Lookup(id)
	test.DemandSuccess(t, err)

	f := &fixture{
		env:    env,
		screen: &screen{mem: make([]uint8, 0x4000)},
		kb:     keyboard.NewKeyboard(),
		deck:   &deck{},
		beeper: &level{},
		tape:   &level{},
		intr:   &interrupter{},
		clock:  &clock{},
	}

	f.ula = ula.NewULA(env, desc, ula.BorderFull, ula.Attachments{
		Screen:      f.screen,
		Keyboard:    f.kb,
		Deck:        f.deck,
		Beeper:      f.beeper,
		TapeBeeper:  f.tape,
		Interrupter: f.intr,
		Clock:       f.clock,
	})
	test.DemandSuccess(t, f.ula.Init(44100, desc.FrameLength))

	return f
}

func TestInit(t *testing.T) {
	f := newFixture(t, variant.Spectrum48K)
	test.ExpectFailure(t, f.ula.Init(44100, 70908))
	test.ExpectEquality(t, f.ula.Mask().Matches(0x00fe), true)
	test.ExpectEquality(t, f.ula.Mask().Matches(0x00ff), false)
}

func TestPortWrite(t *testing.T) {
	f := newFixture(t, variant.Spectrum48K)

	_, ok := f.ula.HandlePort(0x00fe, bus.Write, 0x15)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, f.ula.Border(), uint8(0x05))
	test.ExpectEquality(t, f.beeper.level, true)
	test.ExpectEquality(t, len(f.deck.edges), 0)

	// a change of the MIC bit is an edge for the tape deck
	f.clock.now = bus.Time{Total: 1234}
	f.ula.HandlePort(0x00fe, bus.Write, 0x08)
	test.ExpectEquality(t, f.beeper.level, false)
	test.DemandEquality(t, len(f.deck.edges), 1)
	test.ExpectEquality(t, f.deck.edges[0], edge{cycle: 1234, level: true})

	// writing the same MIC level again is not an edge
	f.ula.HandlePort(0x00fe, bus.Write, 0x0f)
	test.ExpectEquality(t, len(f.deck.edges), 1)
}

func TestPortRead(t *testing.T) {
	f := newFixture(t, variant.Spectrum48K)

	v, ok := f.ula.HandlePort(0xfefe, bus.Read, 0)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0xbf))

	// caps shift is on half-row 0, selected by bit 8 of the port
	f.kb.Press(keyboard.KeyCapsShift)
	v, _ = f.ula.HandlePort(0xfefe, bus.Read, 0)
	test.ExpectEquality(t, v, uint8(0xbe))
	v, _ = f.ula.HandlePort(0x7ffe, bus.Read, 0)
	test.ExpectEquality(t, v, uint8(0xbf))

	// the EAR input reflects the tape signal sampled on the last tick
	f.deck.level = true
	f.ula.Tick(bus.Time{Cycle: 100, Total: 100})
	test.ExpectEquality(t, f.tape.level, true)
	v, _ = f.ula.HandlePort(0x7ffe, bus.Read, 0)
	test.ExpectEquality(t, v, uint8(0xff))
}

func TestInterrupt(t *testing.T) {
	f := newFixture(t, variant.Spectrum128K)

	f.ula.Tick(bus.Time{Cycle: 0})
	test.ExpectEquality(t, f.intr.asserted, true)
	f.ula.Tick(bus.Time{Cycle: 35})
	test.ExpectEquality(t, f.intr.asserted, true)
	f.ula.Tick(bus.Time{Cycle: 36})
	test.ExpectEquality(t, f.intr.asserted, false)
	f.ula.Tick(bus.Time{Cycle: 37})

	// the interrupter is only told about changes to the line
	test.ExpectEquality(t, f.intr.changes, 2)
}

func TestFloatingBus(t *testing.T) {
	f := newFixture(t, variant.Spectrum48K)
	f.screen.mem[0x0000] = 0x11
	f.screen.mem[0x1800] = 0x22
	f.screen.mem[0x0001] = 0x33
	f.screen.mem[0x1801] = 0x44
	f.screen.mem[0x0100] = 0x55

	// disabled by preference
	f.clock.now = bus.Time{Cycle: 14335}
	test.ExpectEquality(t, f.ula.FloatingValue(), uint8(0xff))

	test.DemandSuccess(t, f.env.Prefs.FloatingBus.Set(true))
	test.ExpectEquality(t, f.ula.FloatingValue(), uint8(0x11))

	f.clock.now.Cycle = 14336
	test.ExpectEquality(t, f.ula.FloatingValue(), uint8(0x22))
	f.clock.now.Cycle = 14337
	test.ExpectEquality(t, f.ula.FloatingValue(), uint8(0x33))
	f.clock.now.Cycle = 14338
	test.ExpectEquality(t, f.ula.FloatingValue(), uint8(0x44))
	f.clock.now.Cycle = 14339
	test.ExpectEquality(t, f.ula.FloatingValue(), uint8(0xff))

	// second pixel line of the first character row
	f.clock.now.Cycle = 14335 + 224
	test.ExpectEquality(t, f.ula.FloatingValue(), uint8(0x55))

	// right border
	f.clock.now.Cycle = 14335 + 128
	test.ExpectEquality(t, f.ula.FloatingValue(), uint8(0xff))

	// top border
	f.clock.now.Cycle = 100
	test.ExpectEquality(t, f.ula.FloatingValue(), uint8(0xff))

	// the +2A does not have a floating bus
	g := newFixture(t, variant.SpectrumPlus2A)
	test.DemandSuccess(t, g.env.Prefs.FloatingBus.Set(true))
	g.clock.now = bus.Time{Cycle: 14361}
	test.ExpectEquality(t, g.ula.FloatingValue(), uint8(0xff))
}

func TestState(t *testing.T) {
	f := newFixture(t, variant.Spectrum48K)
	f.ula.HandlePort(0x00fe, bus.Write, 0x1b)
	f.ula.Tick(bus.Time{Cycle: 0})

	w := savestate.NewWriter()
	f.ula.SaveState(w)
	data, err := w.Data()
	test.DemandSuccess(t, err)

	g := newFixture(t, variant.Spectrum48K)
	r := savestate.NewReader(data)
	g.ula.LoadState(r)
	test.DemandSuccess(t, r.Finish())

	test.ExpectEquality(t, g.ula.Border(), uint8(0x03))
	test.ExpectEquality(t, g.ula.Interrupt(), true)
	test.ExpectEquality(t, g.intr.asserted, true)
	test.ExpectEquality(t, g.ula.String(), f.ula.String())
}

func TestBorder(t *testing.T) {
	b, err := ula.ParseBorder("Medium")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, ula.BorderMedium)
	test.ExpectEquality(t, b.Geometry().Width(), 304)

	_, err = ula.ParseBorder("huge")
	test.ExpectFailure(t, err)

	test.ExpectEquality(t, ula.BorderNone.Geometry().Height(), ula.DisplayHeight)
}
