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

package ula

import (
	"strings"

	"github.com/zxcore/zxcore/curated"
)

// BorderType selects how much of the border surrounds the display area of
// the screen presented to the frontend.
type BorderType int

// List of valid BorderType values.
const (
	BorderFull BorderType = iota
	BorderWidescreen
	BorderMedium
	BorderSmall
	BorderNone
)

func (b BorderType) String() string {
	switch b {
	case BorderFull:
		return "full"
	case BorderWidescreen:
		return "widescreen"
	case BorderMedium:
		return "medium"
	case BorderSmall:
		return "small"
	case BorderNone:
		return "none"
	}
	return "unknown border"
}

// UnknownBorder is returned by ParseBorder() when the name is not recognised.
const UnknownBorder = "ula: unknown border type (%s)"

// ParseBorder returns the BorderType with the name.
func ParseBorder(name string) (BorderType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for b := BorderFull; b <= BorderNone; b++ {
		if b.String() == name {
			return b, nil
		}
	}
	return BorderFull, curated.Errorf(UnknownBorder, name)
}

// the size of the display area in pixels
const (
	DisplayWidth  = 256
	DisplayHeight = 192
)

// Geometry is the size of the visible screen in pixels.
type Geometry struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Width of the visible screen including the border.
func (g Geometry) Width() int {
	return g.Left + DisplayWidth + g.Right
}

// Height of the visible screen including the border.
func (g Geometry) Height() int {
	return g.Top + DisplayHeight + g.Bottom
}

// Geometry returns the size of the border on each side of the display.
func (b BorderType) Geometry() Geometry {
	switch b {
	case BorderWidescreen:
		return Geometry{Left: 48, Right: 48, Top: 24, Bottom: 24}
	case BorderMedium:
		return Geometry{Left: 24, Right: 24, Top: 24, Bottom: 24}
	case BorderSmall:
		return Geometry{Left: 10, Right: 10, Top: 10, Bottom: 10}
	case BorderNone:
		return Geometry{}
	}
	return Geometry{Left: 48, Right: 48, Top: 48, Bottom: 56}
}
