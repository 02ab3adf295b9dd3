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
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/logger"
)

// Serialise the state of the machine. The state includes the BankSet and
// RAM, every device on the bus (including the tape deck), the partial audio
// frame and the frame timing. The CPU is not included.
func (m *Machine) Serialise() ([]byte, error) {
	w := savestate.NewWriter()
	w.Section("machine")
	w.String(string(m.desc.ID))

	m.Mem.SaveState(w)
	m.Bus.SaveState(w)
	m.Mixer.SaveState(w)

	w.Section("frame")
	w.Int(m.frame.Cycle)
	w.Int(m.frame.Count)
	w.U64(m.frame.Total)
	w.U64(m.pending())

	return w.Data()
}

// Deserialise restores state created by Serialise(). The state must have been
// created by a machine with the same variant and the same tape. If the state
// can not be restored the machine is left unchanged.
//
// The CPU should be restored to the state it was in at the time of the
// Serialise() before calling this function.
func (m *Machine) Deserialise(data []byte) error {
	backup, err := m.Serialise()
	if err != nil {
		return err
	}

	err = m.deserialise(data)
	if err != nil {
		// restoring the backup can only fail if Serialise() and deserialise()
		// disagree about the format
		if rerr := m.deserialise(backup); rerr != nil {
			panic(curated.Errorf("machine: cannot restore backup state: %v", rerr))
		}
		logger.Log(m.env, "machine", err)
		return err
	}

	return nil
}

func (m *Machine) deserialise(data []byte) error {
	r := savestate.NewReader(data)
	r.Section("machine")
	if id := r.String(); r.Err() == nil && id != string(m.desc.ID) {
		return curated.Errorf(savestate.FormatError, curated.Errorf("state is for %s not %s", id, m.desc.ID))
	}

	m.Mem.LoadState(r)
	m.Bus.LoadState(r)
	m.Mixer.LoadState(r)

	r.Section("frame")
	ft := FrameTiming{
		Cycle:  r.Int(),
		Length: m.desc.FrameLength,
		Count:  r.Int(),
		Total:  r.U64(),
	}
	pending := r.U64()

	err := r.Finish()
	if err != nil {
		return err
	}

	if ft.Cycle < 0 || ft.Cycle >= ft.Length || ft.Count < 0 {
		return curated.Errorf(savestate.FormatError, curated.Errorf("invalid frame timing (%s)", ft))
	}

	m.frame = ft
	m.synced = m.cpu.Cycles() - min(pending, m.cpu.Cycles())

	return nil
}
