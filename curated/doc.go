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

// Package curated wraps the plain Go error type so that errors can be tested
// by the pattern they were created with, rather than by the message they
// produce.
//
// Curated errors are created with Errorf(). The first argument is a pattern in
// the same form as a fmt format string. The pattern identifies the error and
// should normally be an exported constant in the package that raises it:
//
//	const OutOfRangeError = "tape: block %d out of range (%d blocks)"
//
//	err := curated.Errorf(OutOfRangeError, 10, 4)
//
//	if curated.Is(err, OutOfRangeError) {
//		...
//	}
//
// Has() looks for the pattern anywhere in the chain of wrapped errors, where a
// chain is formed by passing one error as a value to another call to Errorf():
//
//	e := curated.Errorf("machine: %v", err)
//	curated.Has(e, OutOfRangeError) // true
//	curated.Is(e, OutOfRangeError)  // false
//
// Chains are built from parts separated by ": ". The Error() function removes
// a duplicated leading part so that wrapping an error with the same prefix
// twice does not produce messages like "tape: tape: block 10 out of range".
//
// Curated errors implement Unwrap() so that they also work with the Is() and
// As() functions of the standard errors package.
package curated
