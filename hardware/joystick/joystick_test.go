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

package joystick_test

import (
	"testing"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/joystick"
	"github.com/zxcore/zxcore/hardware/keyboard"
	"github.com/zxcore/zxcore/test"
)

func TestKempston(t *testing.T) {
	j := joystick.NewJoystick(joystick.Kempston, nil)
	test.ExpectSuccess(t, j.Init(44100, 69888))

	mask, ok := j.Mask()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, mask.Matches(0x001f), true)
	test.ExpectEquality(t, mask.Matches(0xff1f), true)
	test.ExpectEquality(t, mask.Matches(0x00fe), false)

	j.Set(joystick.Up, true)
	j.Set(joystick.Fire, true)
	v, ok := j.HandlePort(0x001f, bus.Read, 0)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v, uint8(0x18))

	j.Set(joystick.Up, false)
	v, _ = j.HandlePort(0x001f, bus.Read, 0)
	test.ExpectEquality(t, v, uint8(0x10))

	j.Reset()
	test.ExpectEquality(t, j.State(), uint8(0))
}

func TestKeyboardJoysticks(t *testing.T) {
	for _, v := range []struct {
		typ  joystick.Type
		left keyboard.Key
		fire keyboard.Key
	}{
		{joystick.Sinclair1, keyboard.Key6, keyboard.Key0},
		{joystick.Sinclair2, keyboard.Key1, keyboard.Key5},
		{joystick.Cursor, keyboard.Key5, keyboard.Key0},
	} {
		kb := keyboard.NewKeyboard()
		j := joystick.NewJoystick(v.typ, kb)
		test.ExpectSuccess(t, j.Init(44100, 69888))

		_, ok := j.Mask()
		test.ExpectEquality(t, ok, false)

		j.Set(joystick.Left, true)
		j.Set(joystick.Fire, true)
		test.ExpectEquality(t, kb.IsPressed(v.left), true, v.typ)
		test.ExpectEquality(t, kb.IsPressed(v.fire), true, v.typ)

		j.Set(joystick.Left, false)
		test.ExpectEquality(t, kb.IsPressed(v.left), false, v.typ)
	}

	// keyboard joysticks must have a keyboard
	j := joystick.NewJoystick(joystick.Cursor, nil)
	test.ExpectFailure(t, j.Init(44100, 69888))
}

func TestParseType(t *testing.T) {
	typ, err := joystick.ParseType("sinclair2")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, typ, joystick.Sinclair2)

	_, err = joystick.ParseType("fuller")
	test.ExpectEquality(t, curated.Is(err, joystick.UnknownType), true)
}
