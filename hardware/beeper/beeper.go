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

// Package beeper implements the one-bit sound output of the Spectrum. The
// same type serves as the system beeper (driven by the EAR bit of the ULA
// port) and as the tape monitor (driven by the signal from the tape deck).
//
// The speaker cone is modelled by a one-pole filter so that the output moves
// toward the new level over a few cycles instead of jumping.
package beeper

import (
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/savestate"
)

// the output level when the signal is high
const amplitude = 8000

// the larger the value the slower the output responds to a change in level
const filterShift = 3

// Beeper is a one-bit oscillator.
type Beeper struct {
	kind  bus.Kind
	label string

	level bool
	out   int32
}

// NewBeeper is the preferred method of initialisation for the Beeper type.
// The kind should be bus.Beeper or bus.TapeBeeper.
func NewBeeper(kind bus.Kind) *Beeper {
	b := &Beeper{kind: kind}
	if kind == bus.TapeBeeper {
		b.label = "tape beeper"
	} else {
		b.label = "beeper"
	}
	return b
}

// Kind implements the bus.Device interface.
func (b *Beeper) Kind() bus.Kind {
	return b.kind
}

// Label implements the bus.Device interface.
func (b *Beeper) Label() string {
	return b.label
}

// Init implements the bus.Device interface.
func (b *Beeper) Init(sampleRate int, frameLength int) error {
	if sampleRate <= 0 {
		return curated.Errorf("%s: invalid sample rate (%d)", b.label, sampleRate)
	}
	if frameLength <= 0 {
		return curated.Errorf("%s: invalid frame length (%d)", b.label, frameLength)
	}
	return nil
}

// Reset implements the bus.Device interface.
func (b *Beeper) Reset() {
	b.level = false
	b.out = 0
}

// Cadence implements the bus.Device interface.
func (b *Beeper) Cadence() bus.Cadence {
	return bus.NoTick
}

// Tick implements the bus.Device interface.
func (b *Beeper) Tick(_ bus.Time) {
}

// SetLevel of the signal driving the beeper.
func (b *Beeper) SetLevel(level bool) {
	b.level = level
}

// Level of the signal driving the beeper.
func (b *Beeper) Level() bool {
	return b.level
}

// StepCycle implements the audio.Oscillator interface.
func (b *Beeper) StepCycle() {
	var target int32
	if b.level {
		target = amplitude
	}
	b.out += (target - b.out) >> filterShift
}

// Output implements the audio.Oscillator interface.
func (b *Beeper) Output() int16 {
	return int16(b.out)
}

// SaveState implements the bus.Device interface.
func (b *Beeper) SaveState(w *savestate.Writer) {
	w.Bool(b.level)
	w.Int(int(b.out))
}

// LoadState implements the bus.Device interface.
func (b *Beeper) LoadState(r *savestate.Reader) {
	b.level = r.Bool()
	b.out = int32(r.Int())
}
