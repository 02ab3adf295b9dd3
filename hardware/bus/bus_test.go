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

package bus_test

import (
	"fmt"
	"testing"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/test"
)

type device struct {
	kind    bus.Kind
	label   string
	cadence bus.Cadence
	log     *[]string
	initErr error
	value   uint8
}

func (d *device) Kind() bus.Kind { return d.kind }
func (d *device) Label() string { return d.label }
func (d *device) Cadence() bus.Cadence { return d.cadence }
func (d *device) Reset() { d.value = 0 }
func (d *device) Init(_ int, _ int) error { return d.initErr }
func (d *device) SaveState(w *savestate.Writer) { w.U8(d.value) }
func (d *device) LoadState(r *savestate.Reader) { d.value = r.U8() }

func (d *device) Tick(t bus.Time) {
	*d.log = append(*d.log, fmt.Sprintf("%s@%d", d.label, t.Cycle))
}

func (d *device) handler(port uint16, dir bus.Direction, data uint8) (uint8, bool) {
	if dir == bus.Write {
		d.value = data
		return 0, true
	}
	return d.value, true
}

func TestTickOrder(t *testing.T) {
	var log []string
	b := bus.NewBus()
	a := &device{kind: bus.ULA, label: "a", cadence: bus.PerCycle, log: &log}
	c := &device{kind: bus.Beeper, label: "c", cadence: bus.NoTick, log: &log}
	d := &device{kind: bus.Keyboard, label: "d", cadence: bus.PerFrame, log: &log}
	e := &device{kind: bus.PSG, label: "e", cadence: bus.PerCycle, log: &log}

	for _, dev := range []*device{a, c, d, e} {
		test.ExpectSuccess(t, b.Register(dev, bus.Mask{}, nil))
	}

	b.Tick(bus.Time{Cycle: 1})
	b.TickFrame(bus.Time{Cycle: 0})
	b.Tick(bus.Time{Cycle: 2})

	test.ExpectEquality(t, fmt.Sprint(log), "[a@1 e@1 d@0 a@2 e@2]")
	test.ExpectEquality(t, len(b.Devices()), 4)

	dev, ok := b.Find(bus.PSG)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, dev.Label(), "e")
}

func TestSeal(t *testing.T) {
	var log []string
	b := bus.NewBus()
	test.ExpectSuccess(t, b.Register(&device{label: "a", log: &log}, bus.Mask{}, nil))
	b.Seal()

	err := b.Register(&device{label: "b", log: &log}, bus.Mask{}, nil)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, bus.RegistrationError), true)
	test.ExpectEquality(t, len(b.Devices()), 1)
}

func TestDispatch(t *testing.T) {
	var log []string
	b := bus.NewBus()
	first := &device{label: "first", log: &log, value: 0x11}
	second := &device{label: "second", log: &log, value: 0x22}

	// both devices respond to port 0x00fe but only the first is reached
	test.ExpectSuccess(t, b.Register(first, bus.Mask{Mask: 0x0001, Match: 0x0000}, first.handler))
	test.ExpectSuccess(t, b.Register(second, bus.Mask{Mask: 0x00ff, Match: 0x00fe}, second.handler))

	v, ok := b.DispatchPort(0x00fe, bus.Read, 0)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v, uint8(0x11))

	_, ok = b.DispatchPort(0x00fe, bus.Write, 0x33)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, first.value, uint8(0x33))
	test.ExpectEquality(t, second.value, uint8(0x22))

	// unmapped port
	v, ok = b.DispatchPort(0x00ff, bus.Read, 0)
	test.ExpectEquality(t, ok, false)
	test.ExpectEquality(t, v, uint8(0xff))

	b.SetIdle(func() uint8 { return 0x47 })
	v, _ = b.DispatchPort(0x00ff, bus.Read, 0)
	test.ExpectEquality(t, v, uint8(0x47))
}

func TestInitAndState(t *testing.T) {
	var log []string
	b := bus.NewBus()
	a := &device{label: "a", log: &log, value: 1}
	c := &device{label: "c", log: &log, value: 2, initErr: fmt.Errorf("bad rate")}
	test.ExpectSuccess(t, b.Register(a, bus.Mask{}, nil))
	test.ExpectSuccess(t, b.Register(c, bus.Mask{}, nil))

	dev, err := b.Init(44100, 69888)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, dev.Label(), "c")

	w := savestate.NewWriter()
	b.SaveState(w)
	data, err := w.Data()
	test.DemandSuccess(t, err)

	b.Reset()
	test.ExpectEquality(t, a.value, uint8(0))

	r := savestate.NewReader(data)
	b.LoadState(r)
	test.ExpectSuccess(t, r.Finish())
	test.ExpectEquality(t, a.value, uint8(1))
	test.ExpectEquality(t, c.value, uint8(2))
}
