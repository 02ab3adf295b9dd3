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

// Package prefs holds typed preference values and saves them to disk.
//
// Values are declared as fields of a preferences type (see the
// hardware/preferences package) and registered with a Disk under a key. The
// Disk writes one "key :: value" line per preference, sorted by key, and
// leaves entries it does not know about untouched. More than one Disk can
// share a file.
//
// Bool, Int, Float and String are safe to read from more than one goroutine.
// Each type supports hooks that run immediately before and after a new value
// is stored. A pre-hook that returns an error prevents the value from
// changing.
//
// Preferences can also be supplied on the command line. A group of
// "key::value" pairs, separated by semicolons, is pushed onto a stack with
// PushCommandLineStack(). Values in the top group override the value loaded
// from disk the next time Load() is called.
package prefs
