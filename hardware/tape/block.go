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

package tape

import (
	"fmt"
)

// Pulse is a signal level held for a number of CPU cycles.
type Pulse struct {
	Length uint32
	Level  bool
}

// Block is a sequence of pulses.
type Block struct {
	Description string
	Pulses      []Pulse

	// the deck stops after playing the block
	Stop bool
}

func (b Block) String() string {
	return fmt.Sprintf("%s (%d pulses, %d cycles)", b.Description, len(b.Pulses), b.Length())
}

// Length returns the sum of the pulse lengths.
func (b Block) Length() uint64 {
	var l uint64
	for _, p := range b.Pulses {
		l += uint64(p.Length)
	}
	return l
}

// standard timings used by the ROM loader, in cycles
const (
	pilotLength     = 2168
	pilotHeader     = 8063
	pilotData       = 3223
	sync1Length     = 667
	sync2Length     = 735
	zeroLength      = 855
	oneLength       = 1710
	standardPauseMs = 1000
)

// builder creates the pulses of a tape. The level of each pulse is the
// inverse of the level of the previous pulse except after a pause, which is
// always low.
type builder struct {
	clock  int
	level  bool
	blocks []Block
	next   string
}

func newBuilder(clock int) *builder {
	return &builder{clock: clock}
}

func (bld *builder) block(description string) *Block {
	if bld.next != "" {
		description = fmt.Sprintf("%s: %s", bld.next, description)
		bld.next = ""
	}
	bld.blocks = append(bld.blocks, Block{Description: description})
	return &bld.blocks[len(bld.blocks)-1]
}

func (bld *builder) pulse(b *Block, length int) {
	bld.level = !bld.level
	b.Pulses = append(b.Pulses, Pulse{Length: uint32(length), Level: bld.level})
}

func (bld *builder) tone(b *Block, length int, count int) {
	for i := 0; i < count; i++ {
		bld.pulse(b, length)
	}
}

// data encodes bytes with two pulses per bit. usedBits is the number of bits
// used in the last byte, counting from the most significant bit.
func (bld *builder) data(b *Block, data []byte, zero int, one int, usedBits int) {
	for i, v := range data {
		bits := 8
		if i == len(data)-1 && usedBits > 0 && usedBits < 8 {
			bits = usedBits
		}
		for j := 0; j < bits; j++ {
			l := zero
			if v&(0x80>>j) != 0 {
				l = one
			}
			bld.pulse(b, l)
			bld.pulse(b, l)
		}
	}
}

func (bld *builder) pause(b *Block, ms int) {
	if ms <= 0 {
		return
	}
	b.Pulses = append(b.Pulses, Pulse{Length: uint32(ms * (bld.clock / 1000)), Level: false})
	bld.level = false
}

// standard adds a block with the standard ROM timings.
func (bld *builder) standard(data []byte, pauseMs int) {
	pilot := pilotData
	desc := "data"
	if len(data) > 0 && data[0] < 0x80 {
		pilot = pilotHeader
		desc = "header"
		if len(data) >= 12 {
			desc = fmt.Sprintf("header %q", string(data[2:12]))
		}
	}

	b := bld.block(desc)
	bld.tone(b, pilotLength, pilot)
	bld.pulse(b, sync1Length)
	bld.pulse(b, sync2Length)
	bld.data(b, data, zeroLength, oneLength, 8)
	bld.pause(b, pauseMs)
}
