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

// Package memory implements the memory banking unit. The 64k address space of
// the CPU is divided into four 16k windows. Each window is mapped to a ROM or a
// RAM page according to the current BankSet.
//
// Writes to the paging ports are decoded by DecodePagingWrite(). Once the lock
// bit has been written the BankSet can only be changed by Reset().
//
// The 48K model has no paging ports and a fixed map:
//
//	0x0000 ROM 0
//	0x4000 RAM 5
//	0x8000 RAM 2
//	0xc000 RAM 0
//
// The 128K family pages ROM 0/1 at 0x0000 and any RAM page at 0xc000. The +2A
// adds two more ROM pages and a special mode that maps RAM into every window.
package memory
