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

// Package joystick implements the joystick interfaces of the Spectrum.
//
// The Kempston interface has its own port. Reading port 0x1f returns the
// state of the joystick with a set bit for each active direction or button.
//
// The Sinclair and Cursor joysticks are wired to the keyboard matrix. Moving
// the joystick presses the mapped key.
//
//	          left  right  down  up  fire
//	Sinclair 1   6      7     8   9     0
//	Sinclair 2   1      2     3   4     5
//	Cursor       5      8     6   7     0
package joystick

import (
	"strings"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/keyboard"
	"github.com/zxcore/zxcore/hardware/savestate"
)

// Type of joystick interface.
type Type int

// List of valid Type values.
const (
	Kempston Type = iota
	Sinclair1
	Sinclair2
	Cursor
)

func (t Type) String() string {
	switch t {
	case Kempston:
		return "Kempston"
	case Sinclair1:
		return "Sinclair1"
	case Sinclair2:
		return "Sinclair2"
	case Cursor:
		return "Cursor"
	}
	return "unknown joystick"
}

// UnknownType is returned by ParseType() when the name is not recognised.
const UnknownType = "joystick: unknown type (%s)"

// ParseType returns the joystick type with the name. The name is not case
// sensitive.
func ParseType(name string) (Type, error) {
	for _, t := range []Type{Kempston, Sinclair1, Sinclair2, Cursor} {
		if strings.EqualFold(t.String(), strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return Kempston, curated.Errorf(UnknownType, name)
}

// Button is a direction or the fire button.
type Button int

// List of valid Button values. The value is the bit in the Kempston port.
const (
	Right Button = iota
	Left
	Down
	Up
	Fire
	numButtons
)

// keys for Right, Left, Down, Up, Fire in Button order
var keyMap = map[Type][numButtons]keyboard.Key{
	Sinclair1: {keyboard.Key7, keyboard.Key6, keyboard.Key8, keyboard.Key9, keyboard.Key0},
	Sinclair2: {keyboard.Key2, keyboard.Key1, keyboard.Key3, keyboard.Key4, keyboard.Key5},
	Cursor:    {keyboard.Key8, keyboard.Key5, keyboard.Key6, keyboard.Key7, keyboard.Key0},
}

// Joystick is a single joystick.
type Joystick struct {
	typ   Type
	label string
	kb    *keyboard.Keyboard

	// one bit per Button
	state uint8
}

// NewJoystick is the preferred method of initialisation for the Joystick
// type. The keyboard is used by the joystick types that are wired to the key
// matrix.
func NewJoystick(typ Type, kb *keyboard.Keyboard) *Joystick {
	return &Joystick{
		typ:   typ,
		label: strings.ToLower(typ.String()),
		kb:    kb,
	}
}

// Type returns the joystick interface type.
func (j *Joystick) Type() Type {
	return j.typ
}

// Kind implements the bus.Device interface.
func (j *Joystick) Kind() bus.Kind {
	return bus.Joystick
}

// Label implements the bus.Device interface.
func (j *Joystick) Label() string {
	return j.label
}

// Init implements the bus.Device interface.
func (j *Joystick) Init(_ int, _ int) error {
	if j.typ < Kempston || j.typ > Cursor {
		return curated.Errorf("joystick: unknown joystick type (%d)", int(j.typ))
	}
	if j.typ != Kempston && j.kb == nil {
		return curated.Errorf("joystick: %s joystick requires a keyboard", j.typ)
	}
	return nil
}

// Reset implements the bus.Device interface.
func (j *Joystick) Reset() {
	j.state = 0
}

// Cadence implements the bus.Device interface.
func (j *Joystick) Cadence() bus.Cadence {
	return bus.NoTick
}

// Tick implements the bus.Device interface.
func (j *Joystick) Tick(_ bus.Time) {
}

// Mask returns the port decoded by the joystick. Only the Kempston joystick
// has a port. The boolean is false for the other types.
func (j *Joystick) Mask() (bus.Mask, bool) {
	if j.typ != Kempston {
		return bus.Mask{}, false
	}
	return bus.Mask{Mask: 0x00ff, Match: 0x001f}, true
}

// HandlePort implements the bus.Handler function type.
func (j *Joystick) HandlePort(_ uint16, dir bus.Direction, _ uint8) (uint8, bool) {
	if dir == bus.Read {
		return j.state, true
	}
	return 0, false
}

// Set the state of a button.
func (j *Joystick) Set(b Button, pressed bool) {
	if b < 0 || b >= numButtons {
		return
	}

	if pressed {
		j.state |= 0x01 << b
	} else {
		j.state &^= 0x01 << b
	}

	if j.typ == Kempston {
		return
	}

	k := keyMap[j.typ][b]
	if pressed {
		j.kb.Press(k)
	} else {
		j.kb.Release(k)
	}
}

// State returns the bits of the pressed buttons.
func (j *Joystick) State() uint8 {
	return j.state
}

// SaveState implements the bus.Device interface. The keys pressed by a
// keyboard joystick are part of the keyboard state.
func (j *Joystick) SaveState(w *savestate.Writer) {
	w.U8(j.state)
}

// LoadState implements the bus.Device interface.
func (j *Joystick) LoadState(r *savestate.Reader) {
	j.state = r.U8() & 0x1f
}
