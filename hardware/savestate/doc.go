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

// Package savestate implements the binary encoding used to capture the state
// of a machine. Components write their fields in a fixed order with a Writer
// and read them back in the same order with a Reader.
//
// Both the Writer and the Reader have a sticky error. Once an error has
// occurred all further calls are ignored and the error is reported by the
// Bytes() or Finish() function. Components therefore do not need to check for
// errors after every field.
//
// Sections are named markers that help detect a state that was written by a
// different arrangement of components.
//
// WriteFile() and ReadFile() add a magic number, a version and gzip
// compression to the raw state.
package savestate
