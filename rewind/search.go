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
	"sort"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware"
)

type findResult struct {
	// the logical index of the latest entry with a frame number not greater
	// than the requested frame. zero if the requested frame is earlier than
	// the start of the history
	nearestIdx int

	// the entry at nearestIdx is for the requested frame
	exact bool
}

// findFrameIndex searches the history for the frame.
func (r *Rewind) findFrameIndex(frame int) findResult {
	// index of the first entry after the frame
	i := sort.Search(r.count, func(i int) bool {
		return r.entry(i).Frame > frame
	})
	if i == 0 {
		return findResult{}
	}
	return findResult{
		nearestIdx: i - 1,
		exact:      r.entry(i-1).Frame == frame,
	}
}

// searchTracer collects watched writes during a search.
type searchTracer struct {
	addr  uint16
	hit   bool
	value uint8
}

func (tr *searchTracer) Trace(ev hardware.TraceEvent) {
	if ev.Kind == hardware.TraceWatchedWrite && ev.Addr == tr.addr {
		tr.hit = true
		tr.value = ev.Data
	}
}

// SearchMemoryWrite runs the emulation between two states looking for the
// instance when the address is written to with the value (valueMask is applied
// to mask specific bits).
//
// The supplied target state is the upper limit of the search. The lower limit
// of the search is the entry in the history before the target.
//
// Returns the most recent State at which the memory write was found. If a more
// recent write to the address is found but not with the correct value, then
// no state is returned. The state of the emulation is unchanged by the search.
func (r *Rewind) SearchMemoryWrite(tgt *State, addr uint16, value uint8, valueMask uint8) (*State, error) {
	if tgt == nil {
		return nil, curated.Errorf("rewind: search: %v", "no target state")
	}

	origin, err := r.snapshot(levelAdhoc)
	if err != nil {
		return nil, curated.Errorf("rewind: search: %v", err)
	}

	defer func() {
		if err := r.plumb(origin); err != nil {
			panic(err)
		}
	}()

	res := r.findFrameIndex(tgt.Frame - 1)
	from := r.entry(res.nearestIdx)
	if from.Total >= tgt.Total {
		return nil, nil
	}

	err = r.plumb(from)
	if err != nil {
		return nil, curated.Errorf("rewind: search: %v", err)
	}

	tr := &searchTracer{addr: addr}
	prev := r.m.SetTracer(tr)
	defer r.m.SetTracer(prev)
	r.m.Watch(addr)
	defer r.m.Unwatch(addr)

	var match *State

	for r.m.FrameTiming().Total < tgt.Total {
		tr.hit = false

		_, err := r.m.Step()
		if err != nil {
			return nil, curated.Errorf("rewind: search: %v", err)
		}

		if tr.hit {
			if tr.value&valueMask == value&valueMask {
				match, err = r.snapshot(levelAdhoc)
				if err != nil {
					return nil, curated.Errorf("rewind: search: %v", err)
				}
			} else {
				match = nil
			}
		}
	}

	return match, nil
}
