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

package hardware

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/audio"
	"github.com/zxcore/zxcore/hardware/ay"
	"github.com/zxcore/zxcore/hardware/beeper"
	"github.com/zxcore/zxcore/hardware/bus"
	"github.com/zxcore/zxcore/hardware/contention"
	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/hardware/joystick"
	"github.com/zxcore/zxcore/hardware/keyboard"
	"github.com/zxcore/zxcore/hardware/memory"
	"github.com/zxcore/zxcore/hardware/tape"
	"github.com/zxcore/zxcore/hardware/ula"
	"github.com/zxcore/zxcore/hardware/variant"
	"github.com/zxcore/zxcore/logger"
)

// FrameTiming is the position of the machine in the current frame.
type FrameTiming struct {
	// cycle within the current frame
	Cycle int

	// number of cycles in a frame
	Length int

	// number of completed frames since reset
	Count int

	// number of cycles since reset
	Total uint64
}

func (ft FrameTiming) String() string {
	return fmt.Sprintf("frame %d, cycle %d/%d", ft.Count, ft.Cycle, ft.Length)
}

// Machine is the ZX Spectrum. The CPU is referenced by the Machine but is not
// owned by it.
type Machine struct {
	env  *environment.Environment
	desc variant.Descriptor
	cpu  cpu.CPU

	Mem        *memory.Memory
	Bus        *bus.Bus
	Contention *contention.Monitor
	Mixer      *audio.Mixer

	ULA        *ula.ULA
	Beeper     *beeper.Beeper
	TapeBeeper *beeper.Beeper
	Keyboard   *keyboard.Keyboard
	Joysticks  []*joystick.Joystick
	Deck       *tape.Deck

	// nil for variants without a sound chip
	AY *ay.AY

	frame FrameTiming

	// the value of cpu.Cycles() the rest of the machine has caught up with
	synced uint64

	firmware []FirmwareInfo
	tracer   Tracer
	watches  map[uint16]int
}

// NewMachine creates a machine for the configuration. The CPU must not be nil.
// If the CPU implements the cpu.Interrupter interface it will receive the
// interrupt signal from the ULA.
//
// Errors are ConfigurationError or DeviceInitError. No Machine is returned
// with an error.
func NewMachine(env *environment.Environment, mc cpu.CPU, cfg Config) (*Machine, error) {
	if env == nil {
		return nil, curated.Errorf(ConfigurationError, "no environment")
	}
	if mc == nil {
		return nil, curated.Errorf(ConfigurationError, "no CPU")
	}

	desc, err := variant.Lookup(cfg.Variant)
	if err != nil {
		return nil, curated.Errorf(ConfigurationError, err)
	}

	err = cfg.validate(desc)
	if err != nil {
		return nil, err
	}

	var blocks []tape.Block
	for _, md := range cfg.Media {
		b, err := tape.Load(md.Data, md.Name, desc.ClockRate)
		if err != nil {
			return nil, curated.Errorf(ConfigurationError, err)
		}
		blocks = append(blocks, b...)
	}

	var firmware [][]uint8
	for _, f := range cfg.Firmware {
		firmware = append(firmware, f.Data)
	}

	m := &Machine{
		env:        env,
		desc:       desc,
		cpu:        mc,
		Mem:        memory.NewMemory(env, desc, firmware),
		Bus:        bus.NewBus(),
		Mixer:      audio.NewMixer(desc.FrameLength),
		Beeper:     beeper.NewBeeper(bus.Beeper),
		TapeBeeper: beeper.NewBeeper(bus.TapeBeeper),
		Keyboard:   keyboard.NewKeyboard(),
		Deck:       tape.NewDeck(env, blocks, cfg.AutoLoad),
		frame:      FrameTiming{Length: desc.FrameLength},
		firmware:   firmwareInfo(desc, cfg.Firmware),
	}

	m.Contention = contention.NewMonitor(desc.Contention, m.Mem)

	intr, _ := mc.(cpu.Interrupter)
	m.ULA = ula.NewULA(env, desc, cfg.Border, ula.Attachments{
		Screen:      m.Mem,
		Keyboard:    m.Keyboard,
		Deck:        m.Deck,
		Beeper:      m.Beeper,
		TapeBeeper:  m.TapeBeeper,
		Interrupter: intr,
		Clock:       m,
	})

	for _, typ := range cfg.Joysticks {
		m.Joysticks = append(m.Joysticks, joystick.NewJoystick(typ, m.Keyboard))
	}

	err = m.registerDevices()
	if err != nil {
		return nil, curated.Errorf(ConfigurationError, err)
	}

	m.Mixer.Add(m.Beeper.Label(), m.Beeper, func() int {
		return env.Prefs.BeeperVolume.Get().(int)
	})
	m.Mixer.Add(m.TapeBeeper.Label(), m.TapeBeeper, func() int {
		return env.Prefs.TapeVolume.Get().(int)
	})
	if m.AY != nil {
		m.Mixer.Add(m.AY.Label(), m.AY, func() int {
			return env.Prefs.AYVolume.Get().(int)
		})
	}

	dev, err := m.Bus.Init(env.Prefs.SampleRate.Get().(int), desc.FrameLength)
	if err != nil {
		return nil, curated.Errorf(DeviceInitError, dev.Label(), err)
	}

	env.Random.Plumb(m)
	m.Reset()

	logger.Logf(env, "machine", "created %s with %d tape blocks", desc.Name, len(blocks))

	return m, nil
}

// registerDevices adds the devices to the bus in the order given by the
// variant descriptor.
func (m *Machine) registerDevices() error {
	for _, kind := range m.desc.Devices {
		var err error

		switch kind {
		case bus.ULA:
			err = m.Bus.Register(m.ULA, m.ULA.Mask(), m.ULA.HandlePort)
		case bus.Beeper:
			err = m.Bus.Register(m.Beeper, bus.Mask{}, nil)
		case bus.TapeBeeper:
			err = m.Bus.Register(m.TapeBeeper, bus.Mask{}, nil)
		case bus.PSG:
			m.AY = ay.NewAY()
			err = m.Bus.Register(m.AY, m.AY.Mask(), m.AY.HandlePort)
		case bus.Keyboard:
			err = m.Bus.Register(m.Keyboard, bus.Mask{}, nil)
		case bus.Joystick:
			for _, j := range m.Joysticks {
				if mask, ok := j.Mask(); ok {
					err = m.Bus.Register(j, mask, j.HandlePort)
				} else {
					err = m.Bus.Register(j, bus.Mask{}, nil)
				}
				if err != nil {
					break
				}
			}
		case bus.TapeDeck:
			err = m.Bus.Register(m.Deck, bus.Mask{}, nil)
		default:
			err = curated.Errorf("unsupported device kind (%s)", kind)
		}

		if err != nil {
			return err
		}
	}

	m.Bus.Seal()
	m.Bus.SetIdle(m.ULA.FloatingValue)

	return nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s: %s, %s", m.desc.Name, m.Mem.Banks, m.frame)
}

// Variant returns the descriptor of the machine variant.
func (m *Machine) Variant() variant.Descriptor {
	return m.desc
}

// Env returns the environment the machine was created with.
func (m *Machine) Env() *environment.Environment {
	return m.env
}

// FrameTiming returns the current frame timing.
func (m *Machine) FrameTiming() FrameTiming {
	return m.frame
}

// Reset the machine in place. The BankSet is replaced (clearing the paging
// lock) and every device is reset. The CPU is not reset.
func (m *Machine) Reset() {
	m.frame = FrameTiming{Length: m.desc.FrameLength}
	m.synced = m.cpu.Cycles()
	m.Mem.Reset()
	m.Bus.Reset()
	m.Mixer.Reset()
	logger.Logf(m.env, "machine", "reset (tape %s)", m.Deck.State())
}

// the number of cycles the CPU is ahead of the rest of the machine
func (m *Machine) pending() uint64 {
	c := m.cpu.Cycles()
	if c <= m.synced {
		return 0
	}
	return c - m.synced
}

// Now implements the bus.Clock interface. The time includes the cycles
// executed by the CPU that the rest of the machine has not yet caught up
// with. Accurate during the CPU's bus accesses.
func (m *Machine) Now() bus.Time {
	p := m.pending()
	c := m.frame.Cycle + int(p)
	return bus.Time{
		Frame: m.frame.Count + c/m.frame.Length,
		Cycle: c % m.frame.Length,
		Total: m.frame.Total + p,
	}
}

// MachineTime implements the random.Clock interface.
func (m *Machine) MachineTime() (int, int) {
	return m.frame.Count, m.frame.Cycle
}

// memvizView is the subset of the machine shown by Memviz()
type memvizView struct {
	Variant   string
	Banks     memory.BankSet
	Frame     FrameTiming
	Tape      string
	Cursor    tape.Cursor
	Devices   []string
	Firmware  []FirmwareInfo
	Joysticks []string
}

// Memviz writes a graphviz description of the machine state to w.
func (m *Machine) Memviz(w io.Writer) {
	v := &memvizView{
		Variant:  m.desc.Name,
		Banks:    m.Mem.Banks,
		Frame:    m.frame,
		Tape:     m.Deck.State().String(),
		Cursor:   m.Deck.Position(),
		Firmware: m.Firmware(),
	}
	for _, d := range m.Bus.Devices() {
		v.Devices = append(v.Devices, fmt.Sprintf("%s (%s)", d.Label(), d.Kind()))
	}
	for _, j := range m.Joysticks {
		v.Joysticks = append(v.Joysticks, j.Type().String())
	}
	memviz.Map(w, v)
}
