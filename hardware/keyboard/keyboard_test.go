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

package keyboard_test

import (
	"testing"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/keyboard"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/test"
)

func TestMatrix(t *testing.T) {
	kb := keyboard.NewKeyboard()

	// nothing pressed
	test.ExpectEquality(t, kb.Read(0x00), uint8(0xff))

	kb.Press(keyboard.KeyA)
	test.ExpectEquality(t, kb.Read(0xfd), uint8(0xfe))
	test.ExpectEquality(t, kb.Read(0xfe), uint8(0xff))

	// more than one half-row selected
	kb.Press(keyboard.KeyV)
	test.ExpectEquality(t, kb.Read(0xfc), uint8(0xee))
	test.ExpectEquality(t, kb.Read(0x00), uint8(0xee))

	kb.Release(keyboard.KeyA)
	test.ExpectEquality(t, kb.IsPressed(keyboard.KeyA), false)
	test.ExpectEquality(t, kb.Read(0xfd), uint8(0xff))

	kb.Reset()
	test.ExpectEquality(t, kb.Read(0x00), uint8(0xff))
}

func TestKeyByName(t *testing.T) {
	k, err := keyboard.KeyByName("enter")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, keyboard.KeyEnter)
	test.ExpectEquality(t, k.String(), "ENTER")

	_, err = keyboard.KeyByName("F1")
	test.ExpectEquality(t, curated.Is(err, keyboard.UnknownKey), true)
}

func TestTyping(t *testing.T) {
	kb := keyboard.NewKeyboard()
	kb.Type(keyboard.Text("a b")...)
	test.ExpectEquality(t, kb.Typing(), true)

	// first chord is pressed on the first frame and held for three frames
	kb.Tick(bus.Time{})
	test.ExpectEquality(t, kb.IsPressed(keyboard.KeyA), true)
	kb.Tick(bus.Time{})
	kb.Tick(bus.Time{})
	test.ExpectEquality(t, kb.IsPressed(keyboard.KeyA), true)
	kb.Tick(bus.Time{})
	test.ExpectEquality(t, kb.IsPressed(keyboard.KeyA), false)

	for i := 0; i < 20; i++ {
		kb.Tick(bus.Time{})
	}
	test.ExpectEquality(t, kb.Typing(), false)
	test.ExpectEquality(t, kb.Read(0x00), uint8(0xff))
}

func TestState(t *testing.T) {
	a := keyboard.NewKeyboard()
	a.Press(keyboard.KeySpace)
	a.Type(keyboard.LoadCommand()...)
	a.Tick(bus.Time{})

	w := savestate.NewWriter()
	a.SaveState(w)
	data, err := w.Data()
	test.DemandSuccess(t, err)

	b := keyboard.NewKeyboard()
	r := savestate.NewReader(data)
	b.LoadState(r)
	test.ExpectSuccess(t, r.Finish())

	for i := 0; i < 30; i++ {
		test.ExpectEquality(t, b.Read(0x00), a.Read(0x00))
		a.Tick(bus.Time{})
		b.Tick(bus.Time{})
	}
}
