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

package audio

// Resample converts a frame of samples at the clock rate into samples at the
// output rate. Each output sample is the mean of the input samples it covers.
// The position of output samples is calculated from the start of the frame so
// consecutive frames may produce one sample more or less than each other.
func Resample(frame []int16, clock int, rate int) []int16 {
	if clock <= 0 || rate <= 0 {
		return nil
	}

	n := int(int64(len(frame)) * int64(rate) / int64(clock))
	out := make([]int16, n)

	for i := range out {
		start := int(int64(i) * int64(clock) / int64(rate))
		end := int(int64(i+1) * int64(clock) / int64(rate))
		end = min(end, len(frame))
		if end <= start {
			end = start + 1
		}

		var sum int64
		for _, s := range frame[start:end] {
			sum += int64(s)
		}
		out[i] = int16(sum / int64(end-start))
	}

	return out
}
