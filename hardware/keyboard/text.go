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

// Text converts a string into chords. Letters and digits map to their keys,
// space and newline map to SPACE and ENTER and the double quote is typed with
// symbol shift. Other characters are ignored.
func Text(s string) [][]Key {
	var chords [][]Key
	for _, r := range s {
		switch {
		case r == '"':
			chords = append(chords, []Key{KeySymShift, KeyP})
		case r == ' ':
			chords = append(chords, []Key{KeySpace})
		case r == '\n':
			chords = append(chords, []Key{KeyEnter})
		default:
			k, err := KeyByName(string(r))
			if err == nil {
				chords = append(chords, []Key{k})
			}
		}
	}
	return chords
}

// LoadCommand is the sequence that loads the first program on a tape in 48
// BASIC. The J key types the LOAD keyword.
func LoadCommand() [][]Key {
	return [][]Key{
		{KeyJ},
		{KeySymShift, KeyP},
		{KeySymShift, KeyP},
		{KeyEnter},
	}
}
