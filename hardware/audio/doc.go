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

// Package audio implements the audio mixer. Every sound generating device is
// an Oscillator. The mixer steps each oscillator once per CPU cycle and stores
// one sample per cycle. At the end of each frame the machine flushes the
// accumulated samples.
//
// The flushed frame is at the CPU clock rate. Resample() converts a frame to
// an output rate for the Output implementations in the wavwriter, otoaudio
// and digest packages.
package audio
