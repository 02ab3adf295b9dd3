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

package tape_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/hardware/tape"
	"github.com/zxcore/zxcore/test"
)

const clock = 3500000

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewTestEnvironment("tape test")
	test.DemandSuccess(t, err)
	return env
}

// tapBlock wraps data with the length prefix and checksum of a TAP block
func tapBlock(flag byte, data ...byte) []byte {
	d := append([]byte{flag}, data...)
	var sum byte
	for _, v := range d {
		sum ^= v
	}
	d = append(d, sum)
	return append([]byte{byte(len(d)), byte(len(d) >> 8)}, d...)
}

func tzx(blocks ...byte) []byte {
	return append([]byte("ZXTape!\x1a\x01\x14"), blocks...)
}

func TestTAP(t *testing.T) {
	header := []byte{0x00}
	header = append(header, []byte("program   ")...)
	header = append(header, 3, 0, 0, 0, 0, 0x80)
	test.DemandEquality(t, len(header), 17)

	var data []byte
	data = append(data, tapBlock(0x00, header...)...)
	data = append(data, tapBlock(0xff, 1, 2, 3)...)

	blocks, err := tape.Load(data, "test.tap", clock)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(blocks), 2)

	// pilot, two sync pulses, two pulses per bit and the pause
	test.ExpectEquality(t, len(blocks[0].Pulses), 8063+2+19*16+1)
	test.ExpectEquality(t, len(blocks[1].Pulses), 3223+2+5*16+1)
	test.ExpectEquality(t, blocks[0].Description, `header "program   "`)
	test.ExpectEquality(t, blocks[1].Description, "data")

	// every pilot pulse is the same length and the pause is one second
	test.ExpectEquality(t, blocks[0].Pulses[0].Length, uint32(2168))
	test.ExpectEquality(t, blocks[0].Pulses[8062].Length, uint32(2168))
	last := blocks[1].Pulses[len(blocks[1].Pulses)-1]
	test.ExpectEquality(t, last.Length, uint32(clock))
	test.ExpectEquality(t, last.Level, false)

	// a block length that runs past the end of the data
	_, err = tape.Load([]byte{0x10, 0x00, 0xff}, "test.tap", clock)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, tape.FormatError))
}

func TestTZX(t *testing.T) {
	data := tzx(
		0x12, 0xe8, 0x03, 0x04, 0x00, // pure tone: 4 pulses of 1000 cycles
		0x20, 0x00, 0x00, // stop the tape
		0x30, 0x04, 'n', 'e', 'x', 't', // text description
		0x13, 0x02, 0xf4, 0x01, 0x58, 0x02, // pulse sequence: 500, 600
	)

	blocks, err := tape.Load(data, "test.tzx", clock)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(blocks), 3)

	test.ExpectEquality(t, blocks[0].Length(), uint64(4000))
	test.ExpectEquality(t, blocks[1].Stop, true)
	test.ExpectEquality(t, len(blocks[1].Pulses), 0)
	test.ExpectEquality(t, blocks[2].Description, "next: pulse sequence")
	test.ExpectEquality(t, blocks[2].Length(), uint64(1100))

	// the format is detected by signature regardless of the name
	_, err = tape.Load(data, "test.bin", clock)
	test.ExpectSuccess(t, err)

	// block type 0x15 (direct recording) is not supported
	_, err = tape.Load(tzx(0x15, 0x00), "test.tzx", clock)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, tape.FormatError))

	// truncated block
	_, err = tape.Load(tzx(0x12, 0xe8), "test.tzx", clock)
	test.ExpectFailure(t, err)
}

func TestUnrecognised(t *testing.T) {
	_, err := tape.Load([]byte{1, 2, 3}, "test.xyz", clock)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, tape.FormatError))
}

func TestWAV(t *testing.T) {
	const rate = 44100

	// a square wave of 100 samples high and 100 samples low, repeated
	var samples []int
	for i := 0; i < 4; i++ {
		for j := 0; j < 200; j++ {
			if j < 100 {
				samples = append(samples, 20000)
			} else {
				samples = append(samples, -20000)
			}
		}
	}

	fn := filepath.Join(t.TempDir(), "square.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: 16,
	})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, enc.Close())
	test.DemandSuccess(t, f.Close())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	blocks, err := tape.Load(data, "square.wav", clock)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(blocks), 1)
	test.ExpectEquality(t, len(blocks[0].Pulses), 8)
	test.ExpectEquality(t, blocks[0].Pulses[0].Level, true)
	test.ExpectEquality(t, blocks[0].Pulses[1].Level, false)

	// total length is the duration of the audio in cycles
	test.ExpectEquality(t, blocks[0].Length(), uint64(800*clock/rate))
}

func toneBlocks(t *testing.T) []tape.Block {
	t.Helper()
	blocks, err := tape.Load(tzx(0x12, 0xe8, 0x03, 0x04, 0x00), "tone.tzx", clock)
	test.DemandSuccess(t, err)
	return blocks
}

func TestSampleFidelity(t *testing.T) {
	dk := tape.NewDeck(newEnv(t), toneBlocks(t), true)
	test.DemandEquality(t, dk.State(), tape.Playing)

	// the first sample syncs the deck with the machine
	const start = 100
	test.ExpectEquality(t, dk.SampleBit(start), true)

	// sampling at irregular intervals produces the same level as sampling
	// every cycle
	steps := []uint64{1, 7, 333, 658, 1, 999, 1000, 2, 500, 498}
	cycle := uint64(start)
	for _, s := range steps {
		cycle += s
		elapsed := cycle - start
		level := dk.SampleBit(cycle)
		test.ExpectEquality(t, level, (elapsed/1000)%2 == 0, elapsed)
		test.ExpectEquality(t, dk.Position().Offset, elapsed, elapsed)
		test.ExpectEquality(t, dk.Position().Elapsed, elapsed%1000, elapsed)
	}

	// past the end of the tape
	test.ExpectEquality(t, dk.SampleBit(start+4000), false)
	test.ExpectEquality(t, dk.State(), tape.Stopped)
}

func TestStopBlock(t *testing.T) {
	blocks, err := tape.Load(tzx(
		0x12, 0xe8, 0x03, 0x02, 0x00,
		0x20, 0x00, 0x00,
		0x12, 0xf4, 0x01, 0x02, 0x00,
	), "stop.tzx", clock)
	test.DemandSuccess(t, err)

	dk := tape.NewDeck(newEnv(t), blocks, true)
	dk.SampleBit(0)
	dk.SampleBit(2000)
	test.ExpectEquality(t, dk.State(), tape.Stopped)
	test.ExpectEquality(t, dk.Position().Block, 2)

	// time passes while stopped without moving the tape
	test.ExpectEquality(t, dk.SampleBit(4000), false)

	dk.Play()
	test.ExpectEquality(t, dk.SampleBit(5000), true)
	test.ExpectEquality(t, dk.SampleBit(5499), true)
	test.ExpectEquality(t, dk.SampleBit(5500), false)
}

func TestSeek(t *testing.T) {
	dk := tape.NewDeck(newEnv(t), toneBlocks(t), false)
	test.ExpectEquality(t, dk.State(), tape.Stopped)
	test.ExpectEquality(t, dk.AutoLoad(), false)

	test.ExpectSuccess(t, dk.Seek(0))
	err := dk.Seek(1)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, tape.OutOfRangeError))
	test.ExpectFailure(t, dk.Seek(-1))

	// an empty tape has nothing to seek to
	empty := tape.NewDeck(newEnv(t), nil, true)
	test.ExpectFailure(t, empty.Seek(0))
	test.ExpectEquality(t, empty.State(), tape.Playing)
	test.ExpectEquality(t, empty.SampleBit(0), false)
	test.ExpectEquality(t, empty.State(), tape.Stopped)
}

func TestRecord(t *testing.T) {
	dk := tape.NewDeck(newEnv(t), toneBlocks(t), false)
	dk.Record()
	test.DemandEquality(t, dk.State(), tape.Recording)

	dk.RecordEdge(100, false)
	dk.RecordEdge(150, false)
	dk.RecordEdge(300, true)
	dk.RecordEdge(700, false)
	dk.RecordEdge(800, true)
	dk.Stop()

	test.DemandEquality(t, len(dk.Blocks()), 2)
	rec := dk.Blocks()[1]
	test.DemandEquality(t, len(rec.Pulses), 3)
	test.ExpectEquality(t, rec.Pulses[0], tape.Pulse{Length: 200, Level: false})
	test.ExpectEquality(t, rec.Pulses[1], tape.Pulse{Length: 400, Level: true})
	test.ExpectEquality(t, rec.Pulses[2], tape.Pulse{Length: 100, Level: false})

	// the recording can be played back
	test.ExpectSuccess(t, dk.Seek(1))
	dk.Play()
	test.ExpectEquality(t, dk.SampleBit(0), false)
	test.ExpectEquality(t, dk.SampleBit(250), true)

	// a recording survives a reset of the deck
	dk.Reset()
	test.ExpectEquality(t, len(dk.Blocks()), 2)
}

func TestDeckState(t *testing.T) {
	env := newEnv(t)
	blocks := toneBlocks(t)

	dk := tape.NewDeck(env, blocks, false)
	dk.Record()
	dk.RecordEdge(0, true)
	dk.RecordEdge(10, false)
	dk.Stop()
	dk.Play()
	dk.SampleBit(50)
	dk.SampleBit(1250)

	w := savestate.NewWriter()
	dk.SaveState(w)
	data, err := w.Data()
	test.DemandSuccess(t, err)

	cp := tape.NewDeck(env, blocks, false)
	r := savestate.NewReader(data)
	cp.LoadState(r)
	test.DemandSuccess(t, r.Finish())

	test.ExpectEquality(t, cp.State(), dk.State())
	test.ExpectEquality(t, cp.Position(), dk.Position())
	test.ExpectEquality(t, len(cp.Blocks()), 2)

	// both decks continue identically
	for c := uint64(1300); c < 4500; c += 97 {
		test.ExpectEquality(t, cp.SampleBit(c), dk.SampleBit(c), c)
	}

	// state from a deck with a different tape is rejected
	other := tape.NewDeck(env, nil, false)
	r = savestate.NewReader(data)
	other.LoadState(r)
	test.ExpectFailure(t, r.Err())
	test.ExpectEquality(t, len(other.Blocks()), 0)
}

func TestDeckStateCursor(t *testing.T) {
	env := newEnv(t)
	blocks := toneBlocks(t)

	dk := tape.NewDeck(env, blocks, false)
	dk.Play()
	dk.SampleBit(50)
	dk.SampleBit(1250)

	w := savestate.NewWriter()
	dk.SaveState(w)
	data, err := w.Data()
	test.DemandSuccess(t, err)

	// offsets of the cursor fields in the state
	const block = 8
	const pulse = 16
	const elapsed = 24

	patch := func(offset int, v int) []byte {
		d := slices.Clone(data)
		binary.LittleEndian.PutUint64(d[offset:], uint64(int64(v)))
		return d
	}

	for _, d := range [][]byte{
		patch(pulse, -1),
		patch(pulse, len(blocks[0].Pulses)+1),
		patch(elapsed, 1<<40),
		patch(block, len(blocks)+1),
		patch(block, -1),
	} {
		cp := tape.NewDeck(env, blocks, false)
		r := savestate.NewReader(d)
		cp.LoadState(r)
		test.ExpectFailure(t, r.Err())
		test.ExpectEquality(t, cp.State(), tape.Stopped)
		test.ExpectEquality(t, cp.Position(), tape.Cursor{})
	}

	// the end of the tape is a valid position only at the start of the
	// non-existent block
	d := patch(block, len(blocks))
	binary.LittleEndian.PutUint64(d[pulse:], 0)
	binary.LittleEndian.PutUint64(d[elapsed:], 0)
	cp := tape.NewDeck(env, blocks, false)
	r := savestate.NewReader(d)
	cp.LoadState(r)
	test.ExpectSuccess(t, r.Err())
	test.ExpectEquality(t, cp.Position().Block, len(blocks))

	binary.LittleEndian.PutUint64(d[pulse:], 1)
	cp = tape.NewDeck(env, blocks, false)
	r = savestate.NewReader(d)
	cp.LoadState(r)
	test.ExpectFailure(t, r.Err())
}
