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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock reports the current machine time.
type Clock interface {
	// the number of completed frames and the cycle within the current frame
	MachineTime() (frame int, cycle int)
}

// the longest frame of any machine variant. used to flatten the machine time
// into a single value
const maxFrameLength = 70908

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	clock Clock

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type. The
// clock can be nil and supplied later with Plumb().
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
	}
}

// Plumb a new clock into the Random instance.
func (rnd *Random) Plumb(clock Clock) {
	rnd.clock = clock
}

func (rnd *Random) timeSum() int64 {
	if rnd.clock == nil {
		return 0
	}
	frame, cycle := rnd.clock.MachineTime()
	return int64(frame)*maxFrameLength + int64(cycle)
}

// Rewindable returns a random number in the range [0,n) that depends only on
// the machine time (and the base seed if ZeroSeed is false).
func (rnd *Random) Rewindable(n int) int {
	var seed int64
	if !rnd.ZeroSeed {
		seed = baseSeed
	}
	return rand.New(rand.NewSource(seed + rnd.timeSum())).Intn(n)
}

// NoRewind returns a random number in the range [0,n) that is independent of
// the machine time.
func (rnd *Random) NoRewind(n int) int {
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(rnd.timeSum())).Intn(n)
	}
	return rand.Intn(n)
}

// Fill the byte slice with random values. Uses a single generator seeded in
// the same way as Rewindable().
func (rnd *Random) Fill(b []byte) {
	var seed int64
	if !rnd.ZeroSeed {
		seed = baseSeed
	}
	src := rand.New(rand.NewSource(seed + rnd.timeSum()))
	for i := range b {
		b[i] = uint8(src.Intn(256))
	}
}
