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

// Package variant contains the descriptors for each supported model of the
// Spectrum family. A descriptor is plain data. Differences between models are
// expressed by the values in the descriptor and not by separate code paths.
package variant

import (
	"fmt"
	"strings"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/clocks"
)

// ID identifies a machine variant.
type ID string

// List of supported variants.
const (
	Spectrum48K    ID = "48K"
	Spectrum128K   ID = "128K"
	SpectrumPlus2  ID = "+2"
	SpectrumPlus2A ID = "+2A"
)

// PagingLayout describes how writes to the paging ports are decoded.
type PagingLayout struct {
	// a fixed layout has no paging ports
	Fixed bool

	// the primary paging port (0x7ffd)
	Port    bus.Mask
	RAMBits uint8
	Shadow  uint8
	ROM     uint8
	Lock    uint8

	// the secondary paging port (0x1ffd) of the +2A family
	Secondary        bool
	SecondaryPort    bus.Mask
	SpecialMode      uint8
	SpecialConfig    uint8
	SpecialConfigPos uint8
	ROMHigh          uint8

	// RAM pages for each 16k window in each special configuration
	SpecialPages [4][4]int
}

// ContentionTable describes when accesses to memory are delayed by the ULA.
type ContentionTable struct {
	// cycle of the first contended access in the frame
	FirstCycle int

	// the ULA fetches display data for the first BusyCycles of each of the
	// DisplayLines lines
	LineLength   int
	DisplayLines int
	BusyCycles   int

	// wait cycles indexed by the position within an eight cycle group
	Pattern [8]int

	// RAM pages that are subject to contention
	Banks [8]bool

	// whether port accesses are subject to contention
	IOContention bool
}

// Delay returns the number of wait cycles for a contended access at the cycle
// within the frame.
func (t ContentionTable) Delay(cycle int) int {
	if cycle < t.FirstCycle {
		return 0
	}
	c := cycle - t.FirstCycle
	if c/t.LineLength >= t.DisplayLines {
		return 0
	}
	c %= t.LineLength
	if c >= t.BusyCycles {
		return 0
	}
	return t.Pattern[c%len(t.Pattern)]
}

// Firmware describes a ROM slot.
type Firmware struct {
	Filename    string
	Description string
}

// Descriptor contains everything that differs between machine variants.
type Descriptor struct {
	ID   ID
	Name string

	// CPU clock rate in Hz
	ClockRate int

	// timings in CPU cycles
	FrameLength     int
	LineLength      int
	InterruptLength int

	// number of 16k pages
	ROMPages int
	RAMPages int

	Paging     PagingLayout
	Contention ContentionTable

	// the permitted number of media items
	MinMedia int
	MaxMedia int

	// devices in registration order. the Joystick entry is the position in
	// the order at which the configured joysticks are registered
	Devices []bus.Kind

	// one entry for each ROM page
	Firmware []Firmware

	// whether the ULA leaks display data onto the data bus of unmapped port
	// reads
	FloatingBus bool
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%d ROM, %d RAM pages, %d cycles per frame)", d.Name, d.ROMPages, d.RAMPages, d.FrameLength)
}

// UnknownVariant is returned by Lookup() when the ID is not recognised.
const UnknownVariant = "variant: unknown variant (%s)"

// Lookup returns the descriptor for the ID. The ID is not case sensitive.
func Lookup(id ID) (Descriptor, error) {
	for _, d := range descriptors {
		if strings.EqualFold(string(d.ID), string(id)) {
			return d, nil
		}
	}
	return Descriptor{}, curated.Errorf(UnknownVariant, id)
}

// List of all variant IDs in order of introduction.
func List() []ID {
	l := make([]ID, len(descriptors))
	for i, d := range descriptors {
		l[i] = d.ID
	}
	return l
}

var spectrum48KDevices = []bus.Kind{bus.ULA, bus.Beeper, bus.TapeBeeper, bus.Keyboard, bus.Joystick, bus.TapeDeck}
var spectrum128KDevices = []bus.Kind{bus.ULA, bus.Beeper, bus.TapeBeeper, bus.PSG, bus.Keyboard, bus.Joystick, bus.TapeDeck}

var ulaContention = [8]int{6, 5, 4, 3, 2, 1, 0, 0}

var pagingLayout128K = PagingLayout{
	Port:    bus.Mask{Mask: 0x8002, Match: 0x0000},
	RAMBits: 0x07,
	Shadow:  0x08,
	ROM:     0x10,
	Lock:    0x20,
}

var descriptors = []Descriptor{
	{
		ID:              Spectrum48K,
		Name:            "ZX Spectrum 48K",
		ClockRate:       clocks.Spectrum48K,
		FrameLength:     69888,
		LineLength:      224,
		InterruptLength: 32,
		ROMPages:        1,
		RAMPages:        8,
		Paging:          PagingLayout{Fixed: true},
		Contention: ContentionTable{
			FirstCycle:   14335,
			LineLength:   224,
			DisplayLines: 192,
			BusyCycles:   128,
			Pattern:      ulaContention,
			Banks:        [8]bool{5: true},
			IOContention: true,
		},
		MinMedia: 0,
		MaxMedia: 1,
		Devices:  spectrum48KDevices,
		Firmware: []Firmware{
			{Filename: "48.rom", Description: "Standard Sinclair ZX Spectrum 48K ROM"},
		},
		FloatingBus: true,
	},
	{
		ID:              Spectrum128K,
		Name:            "ZX Spectrum 128K",
		ClockRate:       clocks.Spectrum128K,
		FrameLength:     70908,
		LineLength:      228,
		InterruptLength: 36,
		ROMPages:        2,
		RAMPages:        8,
		Paging:          pagingLayout128K,
		Contention: ContentionTable{
			FirstCycle:   14361,
			LineLength:   228,
			DisplayLines: 192,
			BusyCycles:   128,
			Pattern:      ulaContention,
			Banks:        [8]bool{1: true, 3: true, 5: true, 7: true},
			IOContention: true,
		},
		MinMedia: 0,
		MaxMedia: 1,
		Devices:  spectrum128KDevices,
		Firmware: []Firmware{
			{Filename: "128-0.rom", Description: "Standard Sinclair ZX Spectrum 128K ROM 0 (128 editor)"},
			{Filename: "128-1.rom", Description: "Standard Sinclair ZX Spectrum 128K ROM 1 (48 BASIC)"},
		},
		FloatingBus: true,
	},
	{
		ID:              SpectrumPlus2,
		Name:            "ZX Spectrum +2",
		ClockRate:       clocks.Spectrum128K,
		FrameLength:     70908,
		LineLength:      228,
		InterruptLength: 36,
		ROMPages:        2,
		RAMPages:        8,
		Paging:          pagingLayout128K,
		Contention: ContentionTable{
			FirstCycle:   14361,
			LineLength:   228,
			DisplayLines: 192,
			BusyCycles:   128,
			Pattern:      ulaContention,
			Banks:        [8]bool{1: true, 3: true, 5: true, 7: true},
			IOContention: true,
		},
		MinMedia: 0,
		MaxMedia: 1,
		Devices:  spectrum128KDevices,
		Firmware: []Firmware{
			{Filename: "plus2-0.rom", Description: "Amstrad ZX Spectrum +2 ROM 0 (128 editor)"},
			{Filename: "plus2-1.rom", Description: "Amstrad ZX Spectrum +2 ROM 1 (48 BASIC)"},
		},
		FloatingBus: true,
	},
	{
		ID:              SpectrumPlus2A,
		Name:            "ZX Spectrum +2A",
		ClockRate:       clocks.Spectrum128K,
		FrameLength:     70908,
		LineLength:      228,
		InterruptLength: 32,
		ROMPages:        4,
		RAMPages:        8,
		Paging: PagingLayout{
			Port:             bus.Mask{Mask: 0xc002, Match: 0x4000},
			RAMBits:          0x07,
			Shadow:           0x08,
			ROM:              0x10,
			Lock:             0x20,
			Secondary:        true,
			SecondaryPort:    bus.Mask{Mask: 0xf002, Match: 0x1000},
			SpecialMode:      0x01,
			SpecialConfig:    0x06,
			SpecialConfigPos: 1,
			ROMHigh:          0x04,
			SpecialPages: [4][4]int{
				{0, 1, 2, 3},
				{4, 5, 6, 7},
				{4, 5, 6, 3},
				{4, 7, 6, 3},
			},
		},
		Contention: ContentionTable{
			FirstCycle:   14361,
			LineLength:   228,
			DisplayLines: 192,
			BusyCycles:   128,
			Pattern:      [8]int{1, 0, 7, 6, 5, 4, 3, 2},
			Banks:        [8]bool{4: true, 5: true, 6: true, 7: true},
			IOContention: false,
		},
		MinMedia: 0,
		MaxMedia: 1,
		Devices:  spectrum128KDevices,
		Firmware: []Firmware{
			{Filename: "plus2a-0.rom", Description: "Amstrad ZX Spectrum +2A ROM 0 (128 editor)"},
			{Filename: "plus2a-1.rom", Description: "Amstrad ZX Spectrum +2A ROM 1 (syntax checker)"},
			{Filename: "plus2a-2.rom", Description: "Amstrad ZX Spectrum +2A ROM 2 (+3DOS)"},
			{Filename: "plus2a-3.rom", Description: "Amstrad ZX Spectrum +2A ROM 3 (48 BASIC)"},
		},
		FloatingBus: false,
	},
}
