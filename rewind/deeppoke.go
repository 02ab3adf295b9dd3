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
)

// PokeHook is applied to the machine by RunPoke().
type PokeHook func(m *hardware.Machine) error

// RunPoke plumbs in the history entry for the from State, applies the
// PokeHook and then runs the emulation to the frame of the to State. The
// history after the from State is replaced by the new frames.
func (r *Rewind) RunPoke(from *State, to *State, poke PokeHook) error {
	if from == nil || to == nil {
		return curated.Errorf("rewind: poke: %v", "no state")
	}

	idx := r.findFrameIndex(from.Frame).nearestIdx

	err := r.plumb(r.entry(idx))
	if err != nil {
		return curated.Errorf("rewind: poke: %v", err)
	}

	if poke != nil {
		err = poke(r.m)
		if err != nil {
			return curated.Errorf("rewind: poke: %v", err)
		}
	}

	// the poked state replaces the entry
	s, err := r.snapshot(r.entry(idx).level)
	if err != nil {
		return curated.Errorf("rewind: poke: %v", err)
	}
	r.entries[(r.start+idx)%len(r.entries)] = s
	r.splice(idx)
	r.timeline.splice(s.Frame + 1)

	for r.m.FrameTiming().Count < to.Frame {
		f, err := r.m.Step()
		if err != nil {
			return curated.Errorf("rewind: poke: %v", err)
		}
		if f != nil {
			err = r.RecordFrame()
			if err != nil {
				return curated.Errorf("rewind: poke: %v", err)
			}
		}
	}

	return nil
}
