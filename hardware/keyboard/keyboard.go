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

package keyboard

import (
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/savestate"
)

// the number of frames a typed chord is held down and then released for
const (
	holdFrames = 3
	gapFrames  = 3
)

// Keyboard is the key matrix.
type Keyboard struct {
	// one entry per half-row. a set bit is a pressed key
	matrix [8]uint8

	// chords waiting to be typed
	typing  [][]Key
	counter int
	holding bool
}

// NewKeyboard is the preferred method of initialisation for the Keyboard type.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Kind implements the bus.Device interface.
func (kb *Keyboard) Kind() bus.Kind {
	return bus.Keyboard
}

// Label implements the bus.Device interface.
func (kb *Keyboard) Label() string {
	return "keyboard"
}

// Init implements the bus.Device interface.
func (kb *Keyboard) Init(_ int, _ int) error {
	return nil
}

// Reset implements the bus.Device interface. Every key is released and any
// typing is abandoned.
func (kb *Keyboard) Reset() {
	*kb = Keyboard{}
}

// Cadence implements the bus.Device interface.
func (kb *Keyboard) Cadence() bus.Cadence {
	return bus.PerFrame
}

// Tick implements the bus.Device interface. Advances the typing of queued
// chords.
func (kb *Keyboard) Tick(_ bus.Time) {
	if len(kb.typing) == 0 {
		return
	}

	if kb.counter == 0 {
		if kb.holding {
			for _, k := range kb.typing[0] {
				kb.Release(k)
			}
			kb.typing = kb.typing[1:]
			kb.holding = false
			kb.counter = gapFrames
		} else {
			for _, k := range kb.typing[0] {
				kb.Press(k)
			}
			kb.holding = true
			kb.counter = holdFrames
		}
	}

	kb.counter--
}

// Press a key.
func (kb *Keyboard) Press(k Key) {
	kb.matrix[k.Row&0x07] |= 0x01 << (k.Bit % 5)
}

// Release a key.
func (kb *Keyboard) Release(k Key) {
	kb.matrix[k.Row&0x07] &^= 0x01 << (k.Bit % 5)
}

// IsPressed returns true if the key is pressed.
func (kb *Keyboard) IsPressed(k Key) bool {
	return kb.matrix[k.Row&0x07]&(0x01<<(k.Bit%5)) != 0x00
}

// Type queues chords to be pressed in turn. Each chord is a list of keys
// pressed at the same time.
func (kb *Keyboard) Type(chords ...[]Key) {
	kb.typing = append(kb.typing, chords...)
}

// Typing returns true while there are chords waiting to be typed.
func (kb *Keyboard) Typing() bool {
	return len(kb.typing) > 0
}

// Read returns the state of the half-rows selected by the high byte of the
// port address. Bits 0 to 4 are the keys, active low. Bits 5 to 7 are set.
func (kb *Keyboard) Read(high uint8) uint8 {
	v := uint8(0x1f)
	for row := range kb.matrix {
		if high&(0x01<<row) == 0x00 {
			v &^= kb.matrix[row]
		}
	}
	return v | 0xe0
}

// SaveState implements the bus.Device interface.
func (kb *Keyboard) SaveState(w *savestate.Writer) {
	w.Bytes(kb.matrix[:])
	w.Int(len(kb.typing))
	for _, c := range kb.typing {
		w.Int(len(c))
		for _, k := range c {
			w.U8(uint8(k.Row))
			w.U8(uint8(k.Bit))
		}
	}
	w.Int(kb.counter)
	w.Bool(kb.holding)
}

// LoadState implements the bus.Device interface.
func (kb *Keyboard) LoadState(r *savestate.Reader) {
	r.BytesInto(kb.matrix[:])
	n := r.Int()
	if n < 0 || n > 1024 {
		r.Fail(curated.Errorf("keyboard: invalid typing queue length (%d)", n))
		return
	}
	kb.typing = nil
	for i := 0; i < n && r.Err() == nil; i++ {
		c := make([]Key, r.Int()&0xff)
		for j := range c {
			c[j] = Key{Row: int(r.U8() & 0x07), Bit: int(r.U8() % 5)}
		}
		kb.typing = append(kb.typing, c)
	}
	kb.counter = r.Int()
	kb.holding = r.Bool()
}
