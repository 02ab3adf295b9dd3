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

package rewind

import (
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware"
	"github.com/zxcore/zxcore/hardware/tape"
)

// Timeline provides a summary of the recent history of the emulation. Every
// frame is included in the timeline regardless of the snapshot frequency.
//
// Useful for presenting the range of frame numbers that are available in the
// rewind history.
type Timeline struct {
	FrameNum    []int
	Border      []uint8
	TapePlaying []bool

	// the earliest and latest frames that are available in the rewind
	// history. the earliest information in the Timeline array fields may be
	// different
	AvailableStart int
	AvailableEnd   int
}

const timelineLength = 1000

func newTimeline() Timeline {
	return Timeline{
		FrameNum:    make([]int, 0),
		Border:      make([]uint8, 0),
		TapePlaying: make([]bool, 0),
	}
}

func (tl *Timeline) add(frame int, m *hardware.Machine) {
	tl.FrameNum = append(tl.FrameNum, frame)
	tl.Border = append(tl.Border, m.ULA.Border())
	tl.TapePlaying = append(tl.TapePlaying, m.Deck.State() == tape.Playing)
	if len(tl.FrameNum) > timelineLength {
		tl.FrameNum = tl.FrameNum[1:]
		tl.Border = tl.Border[1:]
		tl.TapePlaying = tl.TapePlaying[1:]
	}
}

// splice removes the frame and every frame after it.
func (tl *Timeline) splice(frame int) {
	for i := range tl.FrameNum {
		if tl.FrameNum[i] >= frame {
			tl.FrameNum = tl.FrameNum[:i]
			tl.Border = tl.Border[:i]
			tl.TapePlaying = tl.TapePlaying[:i]
			return
		}
	}
}

func (tl *Timeline) checkIntegrity() error {
	if len(tl.FrameNum) != len(tl.Border) || len(tl.FrameNum) != len(tl.TapePlaying) {
		return curated.Errorf("rewind: timeline arrays are different lengths")
	}

	for i := 1; i < len(tl.FrameNum); i++ {
		if tl.FrameNum[i] != tl.FrameNum[i-1]+1 {
			return curated.Errorf("rewind: frame numbers in timeline are not consecutive")
		}
	}

	return nil
}

// GetTimeline returns a copy of the current timeline.
func (r *Rewind) GetTimeline() Timeline {
	if err := r.timeline.checkIntegrity(); err != nil {
		panic(err)
	}

	tl := Timeline{
		FrameNum:       append([]int{}, r.timeline.FrameNum...),
		Border:         append([]uint8{}, r.timeline.Border...),
		TapePlaying:    append([]bool{}, r.timeline.TapePlaying...),
		AvailableStart: r.entry(0).Frame,
		AvailableEnd:   r.entry(r.count - 1).Frame,
	}

	return tl
}
