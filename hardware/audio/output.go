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

package audio

// Output is implemented by anything that consumes flushed frames.
type Output interface {
	// SetAudio is called with every flushed frame. The frame is at the clock
	// rate of the machine and must not be altered
	SetAudio(frame []int16) error

	// EndMixing is called when no more frames will be sent
	EndMixing() error
}
