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

// Package tape implements the tape deck. A tape is a sequence of blocks and
// each block is a sequence of pulses. A pulse is a signal level held for a
// number of CPU cycles.
//
// The deck is a state machine with three states: Stopped, Playing and
// Recording. While playing, the deck is sampled by the ULA with SampleBit().
// The cursor is advanced by the number of cycles since the previous sample so
// the time spent in each block is the sum of its pulse lengths however often
// the deck is sampled. Reaching the end of the last block stops the deck.
//
// Tapes are decoded from TAP, TZX, WAV and MP3 files by Load(). TAP and TZX
// files describe the pulses directly. WAV and MP3 files are converted to
// pulses by detecting where the signal crosses zero.
package tape
