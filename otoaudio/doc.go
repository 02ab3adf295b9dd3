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

// Package otoaudio plays the audio output of the machine through the host's
// sound device. The oto library is used for the device itself. Frames are
// resampled to the sample rate of the device and placed in a queue that the
// device reads from.
//
// Building with the headless tag removes the dependency on the sound device.
// In that case New() always returns an error.
package otoaudio
