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

	"github.com/zxcore/zxcore/curated"
)

const tzxSignature = "ZXTape!\x1a"

// size of the TZX header, including the signature and version
const tzxHeaderLen = 10

// tzxReader reads little endian values from the TZX data with a sticky error.
type tzxReader struct {
	data []byte
	pos  int
	err  error
}

func (r *tzxReader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos+n > len(r.data) {
		r.err = curated.Errorf("tzx: truncated block at offset %#x", r.pos)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *tzxReader) u8() int {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return int(b[0])
}

func (r *tzxReader) u16() int {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return int(b[0]) | int(b[1])<<8
}

func (r *tzxReader) u24() int {
	b := r.bytes(3)
	if b == nil {
		return 0
	}
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16
}

// decodeTZX decodes the TZX blocks that describe pulses and skips the blocks
// that only carry information.
func decodeTZX(data []byte, clock int) ([]Block, error) {
	if len(data) < tzxHeaderLen {
		return nil, curated.Errorf("tzx: truncated header")
	}

	bld := newBuilder(clock)
	r := &tzxReader{data: data, pos: tzxHeaderLen}

	for r.pos < len(r.data) && r.err == nil {
		id := r.u8()

		switch id {
		case 0x10:
			// standard speed data
			pause := r.u16()
			d := r.bytes(r.u16())
			if r.err == nil {
				bld.standard(d, pause)
			}

		case 0x11:
			// turbo speed data
			pilot := r.u16()
			sync1 := r.u16()
			sync2 := r.u16()
			zero := r.u16()
			one := r.u16()
			pilotCount := r.u16()
			usedBits := r.u8()
			pause := r.u16()
			d := r.bytes(r.u24())
			if r.err == nil {
				b := bld.block("turbo data")
				bld.tone(b, pilot, pilotCount)
				bld.pulse(b, sync1)
				bld.pulse(b, sync2)
				bld.data(b, d, zero, one, usedBits)
				bld.pause(b, pause)
			}

		case 0x12:
			// pure tone
			length := r.u16()
			count := r.u16()
			if r.err == nil {
				b := bld.block("pure tone")
				bld.tone(b, length, count)
			}

		case 0x13:
			// sequence of pulses of various lengths
			n := r.u8()
			lengths := make([]int, n)
			for i := range lengths {
				lengths[i] = r.u16()
			}
			if r.err == nil {
				b := bld.block("pulse sequence")
				for _, l := range lengths {
					bld.pulse(b, l)
				}
			}

		case 0x14:
			// pure data
			zero := r.u16()
			one := r.u16()
			usedBits := r.u8()
			pause := r.u16()
			d := r.bytes(r.u24())
			if r.err == nil {
				b := bld.block("pure data")
				bld.data(b, d, zero, one, usedBits)
				bld.pause(b, pause)
			}

		case 0x20:
			// pause or stop the tape
			pause := r.u16()
			if r.err == nil {
				if pause == 0 {
					b := bld.block("stop the tape")
					b.Stop = true
				} else {
					b := bld.block(fmt.Sprintf("pause %dms", pause))
					bld.pause(b, pause)
				}
			}

		case 0x21:
			// group start
			bld.next = string(r.bytes(r.u8()))

		case 0x22:
			// group end

		case 0x30:
			// text description
			bld.next = string(r.bytes(r.u8()))

		case 0x32:
			// archive info
			r.bytes(r.u16())

		default:
			return nil, curated.Errorf("tzx: unsupported block type (%#02x) at offset %#x", id, r.pos-1)
		}
	}

	if r.err != nil {
		return nil, r.err
	}

	return bld.blocks, nil
}
