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

package memory

import (
	"fmt"
)

// PageSize is the size of each ROM and RAM page and of each address window.
const PageSize = 0x4000

// PageKind indicates whether an address resolves to ROM or RAM.
type PageKind int

// List of valid PageKind values.
const (
	ROM PageKind = iota
	RAM
)

func (k PageKind) String() string {
	if k == ROM {
		return "ROM"
	}
	return "RAM"
}

// BankSet is the current state of the paging registers.
type BankSet struct {
	ROM    int
	RAM    int
	Shadow bool
	Locked bool

	// +2A family only
	Special       bool
	SpecialConfig int
	ROMHigh       bool
}

func (b BankSet) String() string {
	s := fmt.Sprintf("ROM%d RAM%d", b.ROM, b.RAM)
	if b.Special {
		s = fmt.Sprintf("special config %d", b.SpecialConfig)
	}
	if b.Shadow {
		s = fmt.Sprintf("%s shadow", s)
	}
	if b.Locked {
		s = fmt.Sprintf("%s locked", s)
	}
	return s
}
