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

package bus

import (
	"github.com/zxcore/zxcore/hardware/savestate"
)

// Kind identifies the type of a device. The set of kinds is closed.
type Kind int

// List of valid Kind values.
const (
	ULA Kind = iota
	Beeper
	TapeBeeper
	PSG
	Keyboard
	Joystick
	TapeDeck
)

func (k Kind) String() string {
	switch k {
	case ULA:
		return "ULA"
	case Beeper:
		return "Beeper"
	case TapeBeeper:
		return "TapeBeeper"
	case PSG:
		return "PSG"
	case Keyboard:
		return "Keyboard"
	case Joystick:
		return "Joystick"
	case TapeDeck:
		return "TapeDeck"
	}
	return "unknown device"
}

// Cadence defines how often a device is ticked.
type Cadence int

// List of valid Cadence values.
const (
	NoTick Cadence = iota
	PerCycle
	PerFrame
)

// Time is the machine time passed to a device when it is ticked or when it
// asks the Clock for the current time.
type Time struct {
	// number of completed frames
	Frame int

	// cycle within the current frame
	Cycle int

	// total number of cycles since construction or reset
	Total uint64
}

// Clock is implemented by the machine and is given to devices that need to
// know the time of a port access.
type Clock interface {
	Now() Time
}

// Device is implemented by every peripheral on the bus.
type Device interface {
	Kind() Kind
	Label() string

	// Init is called once, after all devices have been registered. An error
	// indicates that the device can not work with the parameters
	Init(sampleRate int, frameLength int) error

	// Reset the device to its power-on state
	Reset()

	Cadence() Cadence

	// Tick is called once per cycle or once per frame depending on the
	// cadence. Not called for NoTick devices
	Tick(t Time)

	SaveState(w *savestate.Writer)
	LoadState(r *savestate.Reader)
}
