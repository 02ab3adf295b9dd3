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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/zxcore/zxcore/govern"
	"github.com/zxcore/zxcore/hardware"
	"github.com/zxcore/zxcore/hardware/variant"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the time allowed for the frame rate to settle before measurement begins
const leadTime = 2 * time.Second

// CalcFPS takes the the number of frames and duration (in seconds) and returns
// the frames-per-second and the accuracy of that value as a percentage of the
// real frame rate of the machine.
func CalcFPS(desc variant.Descriptor, numFrames int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFrames) / duration
	rate := float64(desc.ClockRate) / float64(desc.FrameLength)
	accuracy = 100 * fps / rate
	return fps, accuracy
}

// Check the performance of the emulator by running the machine as quickly as
// possible for the specified duration.
//
// A cpu profile, a memory profile and a trace (or a combination of those) are
// created as defined by the Profile argument.
func Check(output io.Writer, profile Profile, m *hardware.Machine, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	startFrame := m.FrameTiming().Count

	runner := func() error {
		// signals false when the lead time has elapsed and true when the
		// measurement period has elapsed
		timerChan := make(chan bool, 1)

		time.AfterFunc(leadTime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		// only check for end of measurement period every PerformanceBrake CPU
		// instructions. checking the timerChan is relatively expensive
		performanceBrake := 0

		return m.Run(func() (govern.State, error) {
			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0

				select {
				case v := <-timerChan:
					if v {
						return govern.Ending, timedOut
					}
					startFrame = m.FrameTiming().Count
				default:
				}
			}
			return govern.Running, nil
		}, nil)
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	numFrames := m.FrameTiming().Count - startFrame
	fps, accuracy := CalcFPS(m.Variant(), numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
