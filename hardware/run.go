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
	"github.com/zxcore/zxcore/govern"
)

// While the continueCheck() function only runs at the end of a CPU
// instruction, it can still be expensive to do a full continue check every
// time.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible. The audio for every
// completed frame is given to the frame function, which can be nil.
func (m *Machine) Run(continueCheck func() (govern.State, error), frame func([]int16) error) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for !state.Stopped() {
		switch state {
		case govern.Running:
			f, err := m.Step()
			if err != nil {
				return err
			}
			if f != nil && frame != nil {
				if err := frame(f); err != nil {
					return err
				}
			}
		case govern.Paused, govern.Rewinding:
		default:
			return curated.Errorf("machine: unsupported emulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount sets the emulation running for the specified number of
// frames. Useful for performance and regression tests. The continueCheck
// function is called at the end of every frame with the audio for the frame.
func (m *Machine) RunForFrameCount(numFrames int, continueCheck func(frame int, audio []int16) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(_ int, _ []int16) (govern.State, error) { return govern.Running, nil }
	}

	targetFrame := m.frame.Count + numFrames

	state := govern.Running
	for m.frame.Count < targetFrame && state != govern.Ending {
		f, err := m.Step()
		if err != nil {
			return err
		}

		if f != nil {
			state, err = continueCheck(m.frame.Count, f)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
