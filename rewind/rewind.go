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

// Package rewind keeps a history of machine states, one for every frame (or
// every Nth frame depending on the preferences). The emulation can be moved
// to any frame in the history. Moving to a frame between snapshots runs the
// emulation forward from the nearest earlier snapshot.
//
// The CPU is not part of the machine state and so the rewind system also
// requires a CPU that implements the cpu.Stateful interface.
//
// RecordFrame() should be called at the end of every frame. Frames recorded
// after the emulation has been moved back in time replace the history that
// followed the current position.
package rewind

import (
	"fmt"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware"
	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/logger"
)

// snapshotLevel indicates the level of snapshot.
type snapshotLevel int

// List of valid snapshotLevel values.
const (
	levelReset snapshotLevel = iota
	levelFrame
	levelAdhoc
)

// State is a snapshot of the machine and CPU.
type State struct {
	level snapshotLevel

	// frame count and total cycle count at the time of the snapshot
	Frame int
	Total uint64

	cpu     []byte
	machine []byte
}

func (s *State) String() string {
	if s.level == levelAdhoc {
		return fmt.Sprintf("%d (%d) adhoc", s.Frame, s.Total)
	}
	return fmt.Sprintf("%d (%d)", s.Frame, s.Total)
}

// Rewind contains a history of machine states for the emulation.
type Rewind struct {
	m  *hardware.Machine
	mc cpu.Stateful

	// prefs for the rewind system
	Prefs *Preferences

	// circular array of snapshotted entries
	entries []*State
	start   int
	count   int

	// the logical index (from start) of the entry that was most recently
	// recorded or plumbed in
	curr int

	comparison       *State
	comparisonLocked bool

	timeline Timeline
}

// NewRewind is the preferred method of initialisation for the Rewind type. The
// CPU must be the one that is driving the machine.
func NewRewind(m *hardware.Machine, mc cpu.Stateful, prefs *Preferences) (*Rewind, error) {
	if m == nil || mc == nil || prefs == nil {
		return nil, curated.Errorf("rewind: %v", "machine, cpu and preferences are required")
	}

	r := &Rewind{
		m:     m,
		mc:    mc,
		Prefs: prefs,
	}
	prefs.r = r

	err := r.allocate()
	if err != nil {
		return nil, err
	}

	return r, nil
}

// allocate the circular array and reset the history.
func (r *Rewind) allocate() error {
	r.entries = make([]*State, r.Prefs.MaxEntries.Get().(int))
	return r.Reset()
}

// Reset removes all entries and takes a snapshot of the current state. This
// should be called whenever the machine is reset.
func (r *Rewind) Reset() error {
	clear(r.entries)
	r.start = 0
	r.count = 0
	r.curr = 0
	r.timeline = newTimeline()

	s, err := r.snapshot(levelReset)
	if err != nil {
		return err
	}
	r.append(s)

	// first comparison is to the snapshot of the reset machine
	r.comparison = s

	return nil
}

// snapshot the current state of the machine and CPU.
func (r *Rewind) snapshot(level snapshotLevel) (*State, error) {
	w := savestate.NewWriter()
	r.mc.SaveState(w)
	c, err := w.Data()
	if err != nil {
		return nil, curated.Errorf("rewind: %v", err)
	}

	d, err := r.m.Serialise()
	if err != nil {
		return nil, curated.Errorf("rewind: %v", err)
	}

	ft := r.m.FrameTiming()

	return &State{
		level:   level,
		Frame:   ft.Count,
		Total:   ft.Total,
		cpu:     c,
		machine: d,
	}, nil
}

// entry returns the entry at the logical index.
func (r *Rewind) entry(i int) *State {
	return r.entries[(r.start+i)%len(r.entries)]
}

func (r *Rewind) append(s *State) {
	if r.count == len(r.entries) {
		r.start = (r.start + 1) % len(r.entries)
		r.count--
	}
	r.entries[(r.start+r.count)%len(r.entries)] = s
	r.count++
	r.curr = r.count - 1
}

// splice removes every entry after the logical index.
func (r *Rewind) splice(i int) {
	for j := i + 1; j < r.count; j++ {
		r.entries[(r.start+j)%len(r.entries)] = nil
	}
	r.count = i + 1
	r.curr = i
}

// RecordFrame should be called at the end of every frame. A snapshot is taken
// if the frame number is a multiple of the snapshot frequency. If the
// emulation has been moved back in time then the history after the current
// position is discarded.
func (r *Rewind) RecordFrame() error {
	if r.curr < r.count-1 {
		r.splice(r.curr)
	}

	ft := r.m.FrameTiming()

	// the timeline records every frame regardless of the snapshot frequency
	r.timeline.splice(ft.Count)
	r.timeline.add(ft.Count, r.m)

	// a frame that has already been recorded
	if ft.Count <= r.entry(r.curr).Frame {
		return nil
	}

	if ft.Count%r.Prefs.Freq.Get().(int) != 0 {
		return nil
	}

	s, err := r.snapshot(levelFrame)
	if err != nil {
		return err
	}
	r.append(s)

	return nil
}

// plumb the state into the machine and CPU. If the state can not be restored
// the machine and CPU are left unchanged.
func (r *Rewind) plumb(s *State) error {
	w := savestate.NewWriter()
	r.mc.SaveState(w)
	backup, err := w.Data()
	if err != nil {
		return curated.Errorf("rewind: %v", err)
	}

	rd := savestate.NewReader(s.cpu)
	r.mc.LoadState(rd)
	err = rd.Finish()
	if err != nil {
		r.restoreCPU(backup)
		return curated.Errorf("rewind: %v", err)
	}

	err = r.m.Deserialise(s.machine)
	if err != nil {
		r.restoreCPU(backup)
		return curated.Errorf("rewind: %v", err)
	}

	return nil
}

func (r *Rewind) restoreCPU(backup []byte) {
	rd := savestate.NewReader(backup)
	r.mc.LoadState(rd)
	if err := rd.Finish(); err != nil {
		panic(curated.Errorf("rewind: cannot restore cpu: %v", err))
	}
}

// catchUp runs the emulation until the frame count reaches the target.
func (r *Rewind) catchUp(frame int) error {
	for r.m.FrameTiming().Count < frame {
		_, err := r.m.Step()
		if err != nil {
			return curated.Errorf("rewind: %v", err)
		}
	}
	return nil
}

// Frames of the current state of the rewind system.
type Frames struct {
	Start   int
	End     int
	Current int
}

func (f Frames) String() string {
	return fmt.Sprintf("%d to %d [%d]", f.Start, f.End, f.Current)
}

// GetFrames returns the earliest and latest frames in the history and the
// current frame of the machine.
func (r *Rewind) GetFrames() Frames {
	return Frames{
		Start:   r.entry(0).Frame,
		End:     r.entry(r.count - 1).Frame,
		Current: r.m.FrameTiming().Count,
	}
}

// GotoLast sets the position to the last entry in the history.
func (r *Rewind) GotoLast() error {
	err := r.plumb(r.entry(r.count - 1))
	if err != nil {
		return err
	}
	r.curr = r.count - 1
	return nil
}

// GotoFrame moves the emulation to the frame. If the frame is outside of the
// history then the nearest frame is used. Returns the frame that the
// emulation was moved to.
func (r *Rewind) GotoFrame(frame int) (int, error) {
	res := r.findFrameIndex(frame)

	err := r.plumb(r.entry(res.nearestIdx))
	if err != nil {
		return r.m.FrameTiming().Count, err
	}
	r.curr = res.nearestIdx

	if !res.exact {
		frame = min(frame, r.entry(r.count-1).Frame)
		err = r.catchUp(frame)
		if err != nil {
			return r.m.FrameTiming().Count, err
		}
	}

	logger.Logf(r.m.Env(), "rewind", "moved to frame %d", r.m.FrameTiming().Count)

	return r.m.FrameTiming().Count, nil
}

// GetCurrentState creates a snapshot of the current state of the machine.
func (r *Rewind) GetCurrentState() (*State, error) {
	return r.snapshot(levelAdhoc)
}

// GetState returns the entry in the history nearest to (but not after) the
// frame.
func (r *Rewind) GetState(frame int) *State {
	return r.entry(r.findFrameIndex(frame).nearestIdx)
}

// Plumb the state into the machine. The state can be an entry in the history
// or one created by GetCurrentState() or a search.
func (r *Rewind) Plumb(s *State) error {
	if s == nil {
		return curated.Errorf("rewind: %v", "no state")
	}
	err := r.plumb(s)
	if err != nil {
		return err
	}
	r.curr = r.findFrameIndex(s.Frame).nearestIdx
	return nil
}
