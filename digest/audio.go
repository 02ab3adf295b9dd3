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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

// Audio implements the audio.Output interface. The digest is chained: the
// hash of every frame includes the hash of the previous frame.
type Audio struct {
	digest [sha1.Size]byte
	buffer []byte
	frames int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

func (dig *Audio) String() string {
	return fmt.Sprintf("%s (%d frames)", dig.Hash(), dig.frames)
}

// Hash implements the Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
}

// SetAudio implements the audio.Output interface.
func (dig *Audio) SetAudio(frame []int16) error {
	dig.buffer = append(dig.buffer[:0], dig.digest[:]...)
	for _, s := range frame {
		dig.buffer = binary.LittleEndian.AppendUint16(dig.buffer, uint16(s))
	}
	dig.digest = sha1.Sum(dig.buffer)
	dig.frames++
	return nil
}

// EndMixing implements the audio.Output interface.
func (dig *Audio) EndMixing() error {
	return nil
}
