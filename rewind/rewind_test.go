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

package rewind_test

import (
	"slices"
	"testing"

	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/cpu/trace"
	"github.com/zxcore/zxcore/hardware/variant"
	"github.com/zxcore/zxcore/rewind"
	"github.com/zxcore/zxcore/test"
)

// counter increments a byte of screen memory every loop and makes a sound
var counter = trace.Program{
	trace.NewInstruction("read", trace.Fetch(0x8000), trace.Read(0x4000)),
	trace.NewInstruction("on", trace.Fetch(0x8001), trace.Out(0x00fe, 0x10), trace.Internal(300)),
	trace.NewInstruction("write", trace.Fetch(0x8002), trace.Write(0x4000, 0x00)),
	trace.NewInstruction("off", trace.Fetch(0x8003), trace.Out(0x00fe, 0x00), trace.Internal(300)),
}

func newRewind(t *testing.T, maxEntries int, freq int) (*rewind.Rewind, *hardware.Machine) {
	t.Helper()

	env, err := environment.NewTestEnvironment("rewind test")
	test.DemandSuccess(t, err)

	mc := trace.NewCPU(counter)
	mc.Loop = true
	m, err := hardware.NewMachine(env, mc, hardware.Config{Variant: variant.Spectrum128K})
	test.DemandSuccess(t, err)
	mc.Plumb(m)

	prefs, err := rewind.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, prefs.MaxEntries.Set(maxEntries))
	test.DemandSuccess(t, prefs.Freq.Set(freq))

	r, err := rewind.NewRewind(m, mc, prefs)
	test.DemandSuccess(t, err)

	return r, m
}

// runFrames runs the machine for the number of frames, recording each frame
// with the rewind system.
func runFrames(t *testing.T, r *rewind.Rewind, m *hardware.Machine, n int) [][]int16 {
	t.Helper()
	var frames [][]int16
	for len(frames) < n {
		f, err := m.Step()
		test.DemandSuccess(t, err)
		if f != nil {
			frames = append(frames, slices.Clone(f))
			test.DemandSuccess(t, r.RecordFrame())
		}
	}
	return frames
}

func equalFrames(t *testing.T, a [][]int16, b [][]int16) {
	t.Helper()
	test.DemandEquality(t, len(a), len(b))
	for i := range a {
		test.ExpectSuccess(t, slices.Equal(a[i], b[i]), i)
	}
}

func TestNewRewind(t *testing.T) {
	_, err := rewind.NewRewind(nil, nil, nil)
	test.ExpectFailure(t, err)

	r, m := newRewind(t, 10, 1)
	f := r.GetFrames()
	test.ExpectEquality(t, f.Start, 0)
	test.ExpectEquality(t, f.End, 0)
	test.ExpectEquality(t, f.Current, m.FrameTiming().Count)
}

func TestPreferences(t *testing.T) {
	prefs, err := rewind.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, prefs.MaxEntries.Set(1))
	test.ExpectFailure(t, prefs.Freq.Set(0))
	test.ExpectEquality(t, prefs.MaxEntries.Get().(int), 100)
	test.ExpectEquality(t, prefs.Freq.Get().(int), 1)
}

func TestGotoFrame(t *testing.T) {
	r, m := newRewind(t, 20, 1)
	frames := runFrames(t, r, m, 10)

	f := r.GetFrames()
	test.ExpectEquality(t, f.Start, 0)
	test.ExpectEquality(t, f.End, 10)
	test.ExpectEquality(t, f.Current, 10)

	fn, err := r.GotoFrame(4)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fn, 4)
	test.ExpectEquality(t, m.FrameTiming().Count, 4)

	// running from the rewound position reproduces the same audio
	equalFrames(t, runFrames(t, r, m, 6), frames[4:])

	// history after the rewound position has been replaced but is the same
	test.ExpectEquality(t, r.GetFrames().End, 10)

	// out of range requests are clamped
	fn, err = r.GotoFrame(100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fn, 10)
	fn, err = r.GotoFrame(-1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fn, 0)

	test.DemandSuccess(t, r.GotoLast())
	test.ExpectEquality(t, m.FrameTiming().Count, 10)
}

func TestFrequency(t *testing.T) {
	r, m := newRewind(t, 20, 3)
	frames := runFrames(t, r, m, 10)

	// frames between snapshots are reached by running the emulation
	fn, err := r.GotoFrame(5)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fn, 5)
	equalFrames(t, runFrames(t, r, m, 5), frames[5:])

	tl := r.GetTimeline()
	test.ExpectEquality(t, tl.AvailableStart, 0)
	test.ExpectEquality(t, tl.AvailableEnd, 9)
	test.DemandEquality(t, len(tl.FrameNum), 10)
	test.ExpectEquality(t, tl.FrameNum[0], 1)
	test.ExpectEquality(t, tl.FrameNum[9], 10)
}

func TestWrap(t *testing.T) {
	r, m := newRewind(t, 4, 1)
	runFrames(t, r, m, 10)

	f := r.GetFrames()
	test.ExpectEquality(t, f.Start, 7)
	test.ExpectEquality(t, f.End, 10)

	fn, err := r.GotoFrame(2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fn, 7)

	// changing the number of entries discards the history
	test.DemandSuccess(t, r.Prefs.MaxEntries.Set(8))
	f = r.GetFrames()
	test.ExpectEquality(t, f.Start, 7)
	test.ExpectEquality(t, f.End, 7)
}

func TestComparison(t *testing.T) {
	r, m := newRewind(t, 20, 1)
	test.ExpectEquality(t, r.GetComparisonState().State.Frame, 0)

	runFrames(t, r, m, 5)
	test.DemandSuccess(t, r.UpdateComparison())
	test.ExpectEquality(t, r.GetComparisonState().State.Frame, 5)

	r.LockComparison(true)
	runFrames(t, r, m, 2)
	test.DemandSuccess(t, r.UpdateComparison())
	test.ExpectEquality(t, r.GetComparisonState().State.Frame, 5)
	test.ExpectSuccess(t, r.GetComparisonState().Locked)

	r.SetComparison(3)
	test.ExpectEquality(t, r.GetComparisonState().State.Frame, 3)
}

func TestSearchMemoryWrite(t *testing.T) {
	r, m := newRewind(t, 20, 1)
	runFrames(t, r, m, 5)
	before, err := r.GetCurrentState()
	test.DemandSuccess(t, err)

	tgt := r.GetState(4)
	test.DemandEquality(t, tgt.Frame, 4)

	s, err := r.SearchMemoryWrite(tgt, 0x4000, 0x00, 0xff)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, s != nil)
	test.ExpectSuccess(t, s.Total > r.GetState(3).Total)
	test.ExpectSuccess(t, s.Total <= tgt.Total)

	// a value that is never written
	s, err = r.SearchMemoryWrite(tgt, 0x4000, 0x01, 0xff)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, s == nil)

	// a watch made outside of the search survives the search
	m.Watch(0x4000)
	_, err = r.SearchMemoryWrite(tgt, 0x4000, 0x00, 0xff)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, m.Watched(0x4000))
	m.Unwatch(0x4000)
	test.ExpectFailure(t, m.Watched(0x4000))

	// the search does not disturb the emulation
	after, err := r.GetCurrentState()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, after.String(), before.String())
	test.ExpectEquality(t, m.FrameTiming().Count, 5)
}

func TestRunPoke(t *testing.T) {
	r, m := newRewind(t, 20, 1)
	runFrames(t, r, m, 6)

	from := r.GetState(2)
	to := r.GetState(6)

	err := r.RunPoke(from, to, func(m *hardware.Machine) error {
		m.ULA.HandlePort(0x00fe, bus.Write, 0x02)
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.FrameTiming().Count, 6)
	test.ExpectEquality(t, r.GetFrames().End, 6)
	test.ExpectEquality(t, r.GetFrames().Start, 0)
}
