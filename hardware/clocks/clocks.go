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

// Package clocks defines the constant values that define the speed of the main
// clock in each of the Spectrum models.
//
// The AY sound chip in the 128K models is clocked at half the CPU rate.
package clocks

// CPU clock rates in Hz.
const (
	Spectrum48K  = 3500000
	Spectrum128K = 3546900
)

// AY returns the clock rate of the AY sound chip for the CPU clock rate.
func AY(cpu int) int {
	return cpu / 2
}
