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
	"strings"

	"github.com/zxcore/zxcore/curated"
)

// Key identifies a key by its half-row and its bit within the half-row.
type Key struct {
	Row int
	Bit int
}

// List of keys.
var (
	KeyCapsShift = Key{0, 0}
	KeyZ         = Key{0, 1}
	KeyX         = Key{0, 2}
	KeyC         = Key{0, 3}
	KeyV         = Key{0, 4}

	KeyA = Key{1, 0}
	KeyS = Key{1, 1}
	KeyD = Key{1, 2}
	KeyF = Key{1, 3}
	KeyG = Key{1, 4}

	KeyQ = Key{2, 0}
	KeyW = Key{2, 1}
	KeyE = Key{2, 2}
	KeyR = Key{2, 3}
	KeyT = Key{2, 4}

	Key1 = Key{3, 0}
	Key2 = Key{3, 1}
	Key3 = Key{3, 2}
	Key4 = Key{3, 3}
	Key5 = Key{3, 4}

	Key0 = Key{4, 0}
	Key9 = Key{4, 1}
	Key8 = Key{4, 2}
	Key7 = Key{4, 3}
	Key6 = Key{4, 4}

	KeyP = Key{5, 0}
	KeyO = Key{5, 1}
	KeyI = Key{5, 2}
	KeyU = Key{5, 3}
	KeyY = Key{5, 4}

	KeyEnter = Key{6, 0}
	KeyL     = Key{6, 1}
	KeyK     = Key{6, 2}
	KeyJ     = Key{6, 3}
	KeyH     = Key{6, 4}

	KeySpace    = Key{7, 0}
	KeySymShift = Key{7, 1}
	KeyM        = Key{7, 2}
	KeyN        = Key{7, 3}
	KeyB        = Key{7, 4}
)

// the labels of each key in matrix order
var keyNames = [8][5]string{
	{"CAPS", "Z", "X", "C", "V"},
	{"A", "S", "D", "F", "G"},
	{"Q", "W", "E", "R", "T"},
	{"1", "2", "3", "4", "5"},
	{"0", "9", "8", "7", "6"},
	{"P", "O", "I", "U", "Y"},
	{"ENTER", "L", "K", "J", "H"},
	{"SPACE", "SYM", "M", "N", "B"},
}

func (k Key) String() string {
	if k.Row < 0 || k.Row >= len(keyNames) || k.Bit < 0 || k.Bit >= len(keyNames[0]) {
		return "invalid key"
	}
	return keyNames[k.Row][k.Bit]
}

// UnknownKey is returned by KeyByName() when the name is not recognised.
const UnknownKey = "keyboard: unknown key (%s)"

// KeyByName returns the key with the name. The name is not case sensitive.
func KeyByName(name string) (Key, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for r, row := range keyNames {
		for b, n := range row {
			if n == name {
				return Key{Row: r, Bit: b}, nil
			}
		}
	}
	return Key{}, curated.Errorf(UnknownKey, name)
}
