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

// register numbers
const (
	regToneFineA = iota
	regToneCoarseA
	regToneFineB
	regToneCoarseB
	regToneFineC
	regToneCoarseC
	regNoisePeriod
	regMixer
	regVolumeA
	regVolumeB
	regVolumeC
	regEnvelopeFine
	regEnvelopeCoarse
	regEnvelopeShape
	regIOA
	regIOB
	numRegisters
)

// the bits of each register that are implemented
var registerMask = [numRegisters]uint8{
	0xff, 0x0f, 0xff, 0x0f, 0xff, 0x0f,
	0x1f, 0xff,
	0x1f, 0x1f, 0x1f,
	0xff, 0xff, 0x0f,
	0xff, 0xff,
}

// envelope shape bits
const (
	envHold      = 0x01
	envAlternate = 0x02
	envAttack    = 0x04
	envContinue  = 0x08
)

// logarithmic output level for each of the sixteen volume steps
var volumeTable = [16]int64{
	0, 836, 1212, 1773, 2619, 3875, 5397, 8823,
	10392, 16706, 23339, 29292, 36969, 46421, 55195, 65535,
}

// number of CPU cycles for each update of the generators
const cyclesPerUpdate = 16

// port decoding
const (
	portMask   = 0xc002
	portSelect = 0xc000
	portWrite  = 0x8000
)
