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

import (
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/savestate"
)

// Oscillator is implemented by every sound generating device.
type Oscillator interface {
	// advance the oscillator by one CPU cycle
	StepCycle()

	// the current output level of the oscillator
	Output() int16
}

type channel struct {
	label  string
	osc    Oscillator
	volume func() int

	// volume in the range 0 to 100. updated at the start of each frame
	vol int32
}

// Mixer accumulates one sample per CPU cycle.
type Mixer struct {
	frameLength int
	channels    []channel

	buffer []int16
	pos    int
}

// NewMixer is the preferred method of initialisation for the Mixer type.
func NewMixer(frameLength int) *Mixer {
	return &Mixer{
		frameLength: frameLength,
		buffer:      make([]int16, frameLength),
	}
}

// Add an oscillator to the mixer. The volume function is called once per
// frame and should return a value between 0 and 100.
func (m *Mixer) Add(label string, osc Oscillator, volume func() int) {
	m.channels = append(m.channels, channel{
		label:  label,
		osc:    osc,
		volume: volume,
	})
	m.updateVolumes()
}

func (m *Mixer) updateVolumes() {
	for i := range m.channels {
		m.channels[i].vol = int32(max(0, min(100, m.channels[i].volume())))
	}
}

// FrameLength returns the number of samples in each flushed frame.
func (m *Mixer) FrameLength() int {
	return m.frameLength
}

// StepCycle advances every oscillator by one cycle and stores the mixed
// sample.
func (m *Mixer) StepCycle() {
	var s int32
	for i := range m.channels {
		c := &m.channels[i]
		c.osc.StepCycle()
		s += int32(c.osc.Output()) * c.vol / 100
	}

	if m.pos < len(m.buffer) {
		m.buffer[m.pos] = int16(max(-32768, min(32767, s)))
		m.pos++
	}
}

// FlushFrame returns a copy of the accumulated samples. The returned slice is
// always FrameLength() samples long. Samples that were not accumulated are
// zero.
func (m *Mixer) FlushFrame() []int16 {
	frame := make([]int16, m.frameLength)
	copy(frame, m.buffer[:m.pos])
	m.pos = 0
	m.updateVolumes()
	return frame
}

// Reset discards the accumulated samples.
func (m *Mixer) Reset() {
	m.pos = 0
	clear(m.buffer)
	m.updateVolumes()
}

// SaveState writes the samples accumulated so far in the current frame.
func (m *Mixer) SaveState(w *savestate.Writer) {
	w.Section("mixer")
	w.Int16s(m.buffer[:m.pos])
	for _, c := range m.channels {
		w.Int(int(c.vol))
	}
}

// LoadState restores the samples accumulated in the current frame.
func (m *Mixer) LoadState(r *savestate.Reader) {
	r.Section("mixer")
	s := r.Int16s()
	if len(s) > len(m.buffer) {
		r.Fail(curated.Errorf("mixer: too many samples (%d)", len(s)))
		return
	}
	vols := make([]int32, len(m.channels))
	for i := range vols {
		vols[i] = int32(r.Int())
	}
	if r.Err() != nil {
		return
	}
	m.pos = copy(m.buffer, s)
	for i := range vols {
		m.channels[i].vol = vols[i]
	}
}
