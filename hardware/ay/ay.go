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

package ay

import (
	"fmt"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/savestate"
)

type tone struct {
	counter int
	output  bool
}

// AY is the programmable sound generator.
type AY struct {
	registers [numRegisters]uint8
	selected  uint8

	// counts CPU cycles to the next update
	prescale int

	tone [3]tone

	noiseCounter int
	noiseShift   uint32
	noiseOutput  bool

	// the noise generator runs at half the rate of the tone generators
	noiseToggle bool

	envCounter int
	envPos     int
	envAttack  bool
	envHolding bool

	out int16
}

// NewAY is the preferred method of initialisation for the AY type.
func NewAY() *AY {
	ay := &AY{}
	ay.Reset()
	return ay
}

func (ay *AY) String() string {
	return fmt.Sprintf("AY: tone %d %d %d, noise %d, mixer %02x", ay.tonePeriod(0), ay.tonePeriod(1), ay.tonePeriod(2),
		ay.noisePeriod(), ay.registers[regMixer])
}

// Kind implements the bus.Device interface.
func (ay *AY) Kind() bus.Kind {
	return bus.PSG
}

// Label implements the bus.Device interface.
func (ay *AY) Label() string {
	return "AY-3-8912"
}

// Init implements the bus.Device interface.
func (ay *AY) Init(sampleRate int, frameLength int) error {
	if sampleRate <= 0 {
		return curated.Errorf("ay: invalid sample rate (%d)", sampleRate)
	}
	if frameLength < cyclesPerUpdate {
		return curated.Errorf("ay: frame length too short (%d)", frameLength)
	}
	return nil
}

// Reset implements the bus.Device interface.
func (ay *AY) Reset() {
	*ay = AY{
		noiseShift: 1,
	}
	ay.registers[regMixer] = 0xff
}

// Cadence implements the bus.Device interface.
func (ay *AY) Cadence() bus.Cadence {
	return bus.NoTick
}

// Tick implements the bus.Device interface.
func (ay *AY) Tick(_ bus.Time) {
}

// Mask returns the ports decoded by the AY.
func (ay *AY) Mask() bus.Mask {
	return bus.Mask{Mask: 0x8002, Match: 0x8000}
}

// HandlePort implements the bus.Handler function type.
func (ay *AY) HandlePort(port uint16, dir bus.Direction, data uint8) (uint8, bool) {
	switch port & portMask {
	case portSelect:
		if dir == bus.Write {
			ay.selected = data & 0x0f
			return 0, true
		}
		return ay.registers[ay.selected], true
	case portWrite:
		if dir == bus.Write {
			ay.WriteRegister(ay.selected, data)
			return 0, true
		}
	}
	return 0, false
}

// Selected returns the currently selected register.
func (ay *AY) Selected() uint8 {
	return ay.selected
}

// ReadRegister returns the value of a register.
func (ay *AY) ReadRegister(reg uint8) uint8 {
	return ay.registers[reg&0x0f]
}

// WriteRegister sets the value of a register. Unimplemented bits are ignored.
func (ay *AY) WriteRegister(reg uint8, value uint8) {
	reg &= 0x0f
	ay.registers[reg] = value & registerMask[reg]

	if reg == regEnvelopeShape {
		ay.envCounter = 0
		ay.envPos = 0
		ay.envHolding = false
		ay.envAttack = ay.registers[regEnvelopeShape]&envAttack == envAttack
	}
}

func (ay *AY) tonePeriod(ch int) int {
	p := int(ay.registers[regToneFineA+ch*2]) | int(ay.registers[regToneCoarseA+ch*2])<<8
	return max(p, 1)
}

func (ay *AY) noisePeriod() int {
	return max(int(ay.registers[regNoisePeriod]), 1)
}

func (ay *AY) envelopePeriod() int {
	p := int(ay.registers[regEnvelopeFine]) | int(ay.registers[regEnvelopeCoarse])<<8
	return max(p, 1)
}

// StepCycle implements the audio.Oscillator interface.
func (ay *AY) StepCycle() {
	ay.prescale++
	if ay.prescale < cyclesPerUpdate {
		return
	}
	ay.prescale = 0
	ay.update()
}

func (ay *AY) update() {
	for ch := range ay.tone {
		t := &ay.tone[ch]
		t.counter++
		if t.counter >= ay.tonePeriod(ch) {
			t.counter = 0
			t.output = !t.output
		}
	}

	ay.noiseToggle = !ay.noiseToggle
	if ay.noiseToggle {
		ay.noiseCounter++
		if ay.noiseCounter >= ay.noisePeriod() {
			ay.noiseCounter = 0

			// 17 bit LFSR with taps at bits 0 and 3
			bit := (ay.noiseShift ^ (ay.noiseShift >> 3)) & 0x01
			ay.noiseShift = (ay.noiseShift >> 1) | (bit << 16)
			ay.noiseOutput = ay.noiseShift&0x01 == 0x01
		}
	}

	// the envelope steps at half the rate of the tone generators
	ay.envCounter++
	if ay.envCounter >= ay.envelopePeriod()*2 {
		ay.envCounter = 0
		ay.stepEnvelope()
	}

	ay.mix()
}

func (ay *AY) stepEnvelope() {
	if ay.envHolding {
		return
	}

	ay.envPos++
	if ay.envPos <= 15 {
		return
	}

	shape := ay.registers[regEnvelopeShape]

	// shapes without the continue bit fall to zero and stay there
	if shape&envContinue == 0x00 {
		ay.envHolding = true
		ay.envPos = 15
		ay.envAttack = false
		return
	}

	// the held level is high if exactly one of attack and alternate is set
	if shape&envHold == envHold {
		ay.envHolding = true
		ay.envPos = 15
		ay.envAttack = (shape&envAttack == envAttack) != (shape&envAlternate == envAlternate)
		return
	}

	if shape&envAlternate == envAlternate {
		ay.envAttack = !ay.envAttack
	}
	ay.envPos = 0
}

// EnvelopeLevel returns the current level of the envelope generator.
func (ay *AY) EnvelopeLevel() int {
	if ay.envAttack {
		return ay.envPos
	}
	return 15 - ay.envPos
}

func (ay *AY) mix() {
	mixer := ay.registers[regMixer]
	var s int64

	for ch := range ay.tone {
		toneOff := mixer&(0x01<<ch) != 0x00
		noiseOff := mixer&(0x08<<ch) != 0x00

		if (ay.tone[ch].output || toneOff) && (ay.noiseOutput || noiseOff) {
			vol := ay.registers[regVolumeA+ch]
			level := int(vol & 0x0f)
			if vol&0x10 == 0x10 {
				level = ay.EnvelopeLevel()
			}
			s += volumeTable[level]
		}
	}

	// three channels at full volume fill the positive range
	ay.out = int16(s * 32767 / (3 * 65535))
}

// Output implements the audio.Oscillator interface.
func (ay *AY) Output() int16 {
	return ay.out
}

// SaveState implements the bus.Device interface.
func (ay *AY) SaveState(w *savestate.Writer) {
	w.Bytes(ay.registers[:])
	w.U8(ay.selected)
	w.Int(ay.prescale)
	for _, t := range ay.tone {
		w.Int(t.counter)
		w.Bool(t.output)
	}
	w.Int(ay.noiseCounter)
	w.U32(ay.noiseShift)
	w.Bool(ay.noiseOutput)
	w.Bool(ay.noiseToggle)
	w.Int(ay.envCounter)
	w.Int(ay.envPos)
	w.Bool(ay.envAttack)
	w.Bool(ay.envHolding)
	w.I16(ay.out)
}

// LoadState implements the bus.Device interface. The generator is unchanged
// if the state is invalid.
func (ay *AY) LoadState(r *savestate.Reader) {
	var st AY
	r.BytesInto(st.registers[:])
	st.selected = r.U8() & 0x0f
	st.prescale = r.Int()
	for i := range st.tone {
		st.tone[i].counter = r.Int()
		st.tone[i].output = r.Bool()
	}
	st.noiseCounter = r.Int()
	st.noiseShift = r.U32()
	st.noiseOutput = r.Bool()
	st.noiseToggle = r.Bool()
	st.envCounter = r.Int()
	st.envPos = r.Int()
	st.envAttack = r.Bool()
	st.envHolding = r.Bool()
	st.out = r.I16()

	if r.Err() != nil {
		return
	}

	if st.prescale < 0 || st.prescale >= cyclesPerUpdate {
		r.Fail(curated.Errorf("ay: invalid prescale (%d)", st.prescale))
		return
	}

	// the envelope position indexes the volume table
	if st.envPos < 0 || st.envPos > 15 {
		r.Fail(curated.Errorf("ay: invalid envelope position (%d)", st.envPos))
		return
	}

	if st.noiseCounter < 0 || st.envCounter < 0 {
		r.Fail(curated.Errorf("ay: invalid generator counters"))
		return
	}
	for i := range st.tone {
		if st.tone[i].counter < 0 {
			r.Fail(curated.Errorf("ay: invalid tone counter for channel %d", i))
			return
		}
	}

	for i := range st.registers {
		st.registers[i] &= registerMask[i]
	}

	*ay = st
}
