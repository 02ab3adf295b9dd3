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
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/logger"
)

// OutOfRangeError is returned by Seek() when the block does not exist.
const OutOfRangeError = "tape: block %d out of range (%d blocks)"

// State of the deck.
type State int

// List of valid State values.
const (
	Stopped State = iota
	Playing
	Recording
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Recording:
		return "recording"
	}
	return "unknown state"
}

// Cursor is the position of the deck on the tape.
type Cursor struct {
	Block int
	Pulse int

	// cycles into the current pulse
	Elapsed uint64

	// cycles into the current block
	Offset uint64
}

func (c Cursor) String() string {
	return fmt.Sprintf("block %d, pulse %d (+%d)", c.Block, c.Pulse, c.Elapsed)
}

// Deck is the tape deck.
type Deck struct {
	env *environment.Environment

	blocks []Block

	// the number of blocks loaded from the media. blocks after this have
	// been recorded
	loaded int

	autoLoad bool

	state  State
	cursor Cursor
	level  bool

	// the cycle of the most recent sample. synced is false until the first
	// sample after the deck starts playing
	lastCycle uint64
	synced    bool

	// recording in progress
	recPulses  []Pulse
	recLevel   bool
	recLast    uint64
	recStarted bool
}

// NewDeck is the preferred method of initialisation for the Deck type. The
// deck starts playing immediately if autoLoad is true.
func NewDeck(env *environment.Environment, blocks []Block, autoLoad bool) *Deck {
	dk := &Deck{
		env:      env,
		blocks:   blocks[:len(blocks):len(blocks)],
		loaded:   len(blocks),
		autoLoad: autoLoad,
	}
	dk.Reset()
	return dk
}

func (dk *Deck) String() string {
	return fmt.Sprintf("%s: %s of %d blocks", dk.state, dk.cursor, len(dk.blocks))
}

// Kind implements the bus.Device interface.
func (dk *Deck) Kind() bus.Kind {
	return bus.TapeDeck
}

// Label implements the bus.Device interface.
func (dk *Deck) Label() string {
	return "tape deck"
}

// Init implements the bus.Device interface.
func (dk *Deck) Init(_ int, _ int) error {
	return nil
}

// Reset implements the bus.Device interface. The tape is rewound to the first
// block and any recording in progress is abandoned. The deck starts playing if
// it was created with autoLoad.
func (dk *Deck) Reset() {
	dk.state = Stopped
	dk.cursor = Cursor{}
	dk.level = false
	dk.synced = false
	dk.recPulses = nil
	dk.recStarted = false
	if dk.autoLoad {
		dk.state = Playing
	}
}

// Cadence implements the bus.Device interface.
func (dk *Deck) Cadence() bus.Cadence {
	return bus.NoTick
}

// Tick implements the bus.Device interface.
func (dk *Deck) Tick(_ bus.Time) {
}

// State returns the current state of the deck.
func (dk *Deck) State() State {
	return dk.state
}

// Position returns the current position of the deck.
func (dk *Deck) Position() Cursor {
	return dk.cursor
}

// AutoLoad returns true if the deck plays automatically after reset.
func (dk *Deck) AutoLoad() bool {
	return dk.autoLoad
}

// Blocks returns the blocks on the tape. The returned slice should not be
// altered.
func (dk *Deck) Blocks() []Block {
	return dk.blocks
}

// Play the tape from the current position. Has no effect if the deck is
// recording.
func (dk *Deck) Play() {
	if dk.state != Stopped {
		return
	}
	dk.state = Playing
	dk.synced = false
	logger.Logf(dk.env, "tape", "playing from %s", dk.cursor)
}

// Stop the deck. Stopping a recording adds the recorded block to the end of
// the tape.
func (dk *Deck) Stop() {
	switch dk.state {
	case Recording:
		if len(dk.recPulses) > 0 {
			dk.blocks = append(dk.blocks, Block{
				Description: fmt.Sprintf("recording %d", len(dk.blocks)-dk.loaded+1),
				Pulses:      dk.recPulses,
			})
		}
		dk.recPulses = nil
		dk.recStarted = false
		logger.Logf(dk.env, "tape", "recording stopped (%d blocks)", len(dk.blocks))
	case Playing:
		logger.Logf(dk.env, "tape", "stopped at %s", dk.cursor)
	}
	dk.state = Stopped
	dk.level = false
}

// Record starts recording. Has no effect unless the deck is stopped.
func (dk *Deck) Record() {
	if dk.state != Stopped {
		return
	}
	dk.state = Recording
	dk.recPulses = nil
	dk.recStarted = false
	logger.Log(dk.env, "tape", "recording")
}

// RecordEdge is called with the level of the output signal at the cycle. Only
// a change of level creates a pulse.
func (dk *Deck) RecordEdge(cycle uint64, level bool) {
	if dk.state != Recording {
		return
	}
	if !dk.recStarted {
		dk.recStarted = true
		dk.recLast = cycle
		dk.recLevel = level
		return
	}
	if level == dk.recLevel {
		return
	}
	dk.recPulses = append(dk.recPulses, Pulse{Length: uint32(cycle - dk.recLast), Level: dk.recLevel})
	dk.recLast = cycle
	dk.recLevel = level
}

// Seek moves the cursor to the start of the block.
func (dk *Deck) Seek(block int) error {
	if block < 0 || block >= len(dk.blocks) {
		return curated.Errorf(OutOfRangeError, block, len(dk.blocks))
	}
	dk.cursor = Cursor{Block: block}
	dk.synced = false
	dk.level = false
	return nil
}

// SampleBit returns the signal level at the cycle. The cycle is the total
// number of cycles since the machine was reset and must not go backwards.
func (dk *Deck) SampleBit(cycle uint64) bool {
	if dk.state != Playing {
		return false
	}

	if !dk.synced {
		dk.synced = true
		dk.lastCycle = cycle
		dk.normalise()
		return dk.level
	}

	if cycle > dk.lastCycle {
		dk.advance(cycle - dk.lastCycle)
	}
	dk.lastCycle = cycle

	return dk.level
}

// move the cursor past finished blocks and update the level
func (dk *Deck) normalise() {
	for dk.state == Playing {
		if dk.cursor.Block >= len(dk.blocks) {
			dk.Stop()
			logger.Log(dk.env, "tape", "end of tape")
			return
		}

		b := dk.blocks[dk.cursor.Block]
		if dk.cursor.Pulse < len(b.Pulses) {
			dk.level = b.Pulses[dk.cursor.Pulse].Level
			return
		}

		dk.cursor = Cursor{Block: dk.cursor.Block + 1}
		if b.Stop {
			dk.Stop()
			return
		}
	}
}

func (dk *Deck) advance(delta uint64) {
	for delta > 0 && dk.state == Playing {
		dk.normalise()
		if dk.state != Playing {
			return
		}

		p := dk.blocks[dk.cursor.Block].Pulses[dk.cursor.Pulse]
		remain := uint64(p.Length) - dk.cursor.Elapsed

		if delta < remain {
			dk.cursor.Elapsed += delta
			dk.cursor.Offset += delta
			return
		}

		delta -= remain
		dk.cursor.Offset += remain
		dk.cursor.Elapsed = 0
		dk.cursor.Pulse++
	}

	dk.normalise()
}

// SaveState implements the bus.Device interface. Blocks loaded from the
// media are not saved. Blocks that have been recorded are.
func (dk *Deck) SaveState(w *savestate.Writer) {
	w.Int(int(dk.state))
	w.Int(dk.cursor.Block)
	w.Int(dk.cursor.Pulse)
	w.U64(dk.cursor.Elapsed)
	w.U64(dk.cursor.Offset)
	w.Bool(dk.level)
	w.U64(dk.lastCycle)
	w.Bool(dk.synced)

	w.Int(dk.loaded)
	w.Int(len(dk.blocks) - dk.loaded)
	for _, b := range dk.blocks[dk.loaded:] {
		w.String(b.Description)
		w.Bool(b.Stop)
		savePulses(w, b.Pulses)
	}

	savePulses(w, dk.recPulses)
	w.Bool(dk.recLevel)
	w.U64(dk.recLast)
	w.Bool(dk.recStarted)
}

func savePulses(w *savestate.Writer, pulses []Pulse) {
	w.Int(len(pulses))
	for _, p := range pulses {
		w.U32(p.Length)
		w.Bool(p.Level)
	}
}

func loadPulses(r *savestate.Reader) []Pulse {
	n := r.Int()
	if n < 0 {
		r.Fail(curated.Errorf("tape: invalid pulse count (%d)", n))
		return nil
	}
	var pulses []Pulse
	for i := 0; i < n && r.Err() == nil; i++ {
		pulses = append(pulses, Pulse{Length: r.U32(), Level: r.Bool()})
	}
	return pulses
}

// the cursor can rest on any pulse of a block or just past the last pulse. the
// end of the tape is block zero of the non-existent block after the last one
func validCursor(c Cursor, blocks []Block) bool {
	if c.Block < 0 || c.Block > len(blocks) || c.Pulse < 0 {
		return false
	}
	if c.Block == len(blocks) {
		return c.Pulse == 0 && c.Elapsed == 0
	}
	pulses := blocks[c.Block].Pulses
	if c.Pulse == len(pulses) {
		return c.Elapsed == 0
	}
	if c.Pulse > len(pulses) {
		return false
	}
	return c.Elapsed == 0 || c.Elapsed < uint64(pulses[c.Pulse].Length)
}

// LoadState implements the bus.Device interface.
func (dk *Deck) LoadState(r *savestate.Reader) {
	state := State(r.Int())
	cursor := Cursor{
		Block:   r.Int(),
		Pulse:   r.Int(),
		Elapsed: r.U64(),
		Offset:  r.U64(),
	}
	level := r.Bool()
	lastCycle := r.U64()
	synced := r.Bool()

	if loaded := r.Int(); loaded != dk.loaded {
		r.Fail(curated.Errorf("tape: state was saved with a different tape"))
		return
	}

	blocks := dk.blocks[:dk.loaded:dk.loaded]
	n := r.Int()
	for i := 0; i < n && r.Err() == nil; i++ {
		b := Block{
			Description: r.String(),
			Stop:        r.Bool(),
		}
		b.Pulses = loadPulses(r)
		blocks = append(blocks, b)
	}

	recPulses := loadPulses(r)
	recLevel := r.Bool()
	recLast := r.U64()
	recStarted := r.Bool()

	if r.Err() != nil {
		return
	}

	if state < Stopped || state > Recording {
		r.Fail(curated.Errorf("tape: invalid deck state"))
		return
	}

	if !validCursor(cursor, blocks) {
		r.Fail(curated.Errorf("tape: invalid cursor (%s)", cursor))
		return
	}

	dk.state = state
	dk.cursor = cursor
	dk.level = level
	dk.lastCycle = lastCycle
	dk.synced = synced
	dk.blocks = blocks
	dk.recPulses = recPulses
	dk.recLevel = recLevel
	dk.recLast = recLast
	dk.recStarted = recStarted
}
