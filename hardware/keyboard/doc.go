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

// Package keyboard implements the 40 key matrix of the Spectrum keyboard.
//
// The keys are arranged in eight half-rows of five keys. A half-row is
// selected by a low bit in the high byte of the ULA port address. More than
// one half-row can be selected at once. Pressed keys read as zero.
//
// The keyboard can also type a sequence of key chords on behalf of the user.
// Each chord is held for a number of frames and then released.
package keyboard
