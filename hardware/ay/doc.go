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

// Package ay implements the AY-3-8912 programmable sound generator of the 128K
// models. The chip has three square wave tone channels, a noise generator and
// an envelope generator.
//
// The chip is clocked at half the CPU rate and its generators advance once
// every eight of its own cycles. The oscillator is therefore updated once
// every sixteen CPU cycles.
//
// Register selection and register reads use port 0xfffd. Register writes use
// port 0xbffd.
package ay
