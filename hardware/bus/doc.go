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

// Package bus implements the device bus. The bus owns the peripheral devices
// of a machine, routes port accesses to them and ticks them in the order in
// which they were registered.
//
// Devices are registered during machine construction. Once the bus has been
// sealed no further registrations are accepted.
//
// A device must not call back into the bus from inside its Tick() function.
// The machine never dispatches a port access while the bus is ticking so the
// rule is not enforced with a lock.
package bus
