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

package bus

import (
	"fmt"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/savestate"
)

// RegistrationError is returned by Register() when the bus has been sealed.
const RegistrationError = "bus: cannot register %s: %v"

// Direction of a port access.
type Direction int

// List of valid Direction values.
const (
	Read Direction = iota
	Write
)

func (d Direction) String() string {
	if d == Write {
		return "write"
	}
	return "read"
}

// Mask selects the ports a handler responds to. A port matches when
// port&Mask == Match.
type Mask struct {
	Mask  uint16
	Match uint16
}

// Matches returns true if the port is selected by the mask.
func (m Mask) Matches(port uint16) bool {
	return port&m.Mask == m.Match
}

func (m Mask) String() string {
	return fmt.Sprintf("%04x/%04x", m.Mask, m.Match)
}

// Handler responds to a port access. For reads the returned value is the
// value on the data bus. The boolean is false if the handler does not drive
// the data bus.
type Handler func(port uint16, dir Direction, data uint8) (uint8, bool)

type portEntry struct {
	mask    Mask
	handler Handler
	device  Device
}

// Bus owns the devices of a machine.
type Bus struct {
	devices  []Device
	perCycle []Device
	perFrame []Device
	ports    []portEntry

	sealed bool

	// the value read from an unmapped port
	idle func() uint8
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{
		idle: func() uint8 { return 0xff },
	}
}

// Register a device with the bus. The handler can be nil if the device does
// not respond to port accesses. A device can be registered more than once
// with different masks but it will only be ticked once per cycle or frame.
func (b *Bus) Register(dev Device, mask Mask, handler Handler) error {
	if b.sealed {
		return curated.Errorf(RegistrationError, dev.Label(), "bus is sealed")
	}

	known := false
	for _, d := range b.devices {
		if d == dev {
			known = true
			break
		}
	}

	if !known {
		b.devices = append(b.devices, dev)
		switch dev.Cadence() {
		case PerCycle:
			b.perCycle = append(b.perCycle, dev)
		case PerFrame:
			b.perFrame = append(b.perFrame, dev)
		}
	}

	if handler != nil {
		b.ports = append(b.ports, portEntry{
			mask:    mask,
			handler: handler,
			device:  dev,
		})
	}

	return nil
}

// Seal the bus. No more devices can be registered after this.
func (b *Bus) Seal() {
	b.sealed = true
}

// SetIdle specifies the function that supplies the value of reads from
// unmapped ports.
func (b *Bus) SetIdle(idle func() uint8) {
	b.idle = idle
}

// Init calls the Init() function of every device in registration order. The
// first error is returned along with the device that caused it.
func (b *Bus) Init(sampleRate int, frameLength int) (Device, error) {
	for _, d := range b.devices {
		if err := d.Init(sampleRate, frameLength); err != nil {
			return d, err
		}
	}
	return nil, nil
}

// Reset every device in registration order.
func (b *Bus) Reset() {
	for _, d := range b.devices {
		d.Reset()
	}
}

// Tick every per-cycle device in registration order.
func (b *Bus) Tick(t Time) {
	for _, d := range b.perCycle {
		d.Tick(t)
	}
}

// TickFrame ticks every per-frame device in registration order.
func (b *Bus) TickFrame(t Time) {
	for _, d := range b.perFrame {
		d.Tick(t)
	}
}

// DispatchPort routes the port access to the first handler whose mask
// matches. The boolean return value is false if no handler matched. Reads
// from unmapped ports return the idle value.
func (b *Bus) DispatchPort(port uint16, dir Direction, data uint8) (uint8, bool) {
	for _, p := range b.ports {
		if p.mask.Matches(port) {
			v, ok := p.handler(port, dir, data)
			if !ok && dir == Read {
				v = b.idle()
			}
			return v, true
		}
	}

	if dir == Read {
		return b.idle(), false
	}
	return 0, false
}

// Devices returns the registered devices in registration order. The returned
// slice should not be altered.
func (b *Bus) Devices() []Device {
	return b.devices
}

// Find returns the first device of the specified kind.
func (b *Bus) Find(kind Kind) (Device, bool) {
	for _, d := range b.devices {
		if d.Kind() == kind {
			return d, true
		}
	}
	return nil, false
}

// SaveState of every device in registration order.
func (b *Bus) SaveState(w *savestate.Writer) {
	w.Section("bus")
	w.Int(len(b.devices))
	for _, d := range b.devices {
		w.Section(d.Label())
		d.SaveState(w)
	}
}

// LoadState of every device in registration order.
func (b *Bus) LoadState(r *savestate.Reader) {
	r.Section("bus")
	if n := r.Int(); n != len(b.devices) {
		r.Fail(curated.Errorf("bus: state has %d devices but bus has %d", n, len(b.devices)))
		return
	}
	for _, d := range b.devices {
		r.Section(d.Label())
		d.LoadState(r)
	}
}
