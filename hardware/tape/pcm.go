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

package tape

import (
	"bytes"
	"io"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/zxcore/zxcore/curated"
)

// the signal must move further than this fraction of the peak amplitude from
// zero before a change of level is detected
const hysteresis = 0.1

// decodeWAV decodes the first channel of a WAV file.
func decodeWAV(data []byte, clock int) ([]Block, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if dec == nil || !dec.IsValidFile() {
		return nil, curated.Errorf("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf("wav: %v", err)
	}

	chans := int(dec.NumChans)
	if chans < 1 {
		return nil, curated.Errorf("wav: no audio channels")
	}

	samples := make([]int, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		samples = append(samples, buf.Data[i])
	}

	return pcmBlocks(samples, int(dec.SampleRate), clock, "wav audio")
}

// decodeMP3 decodes the left channel of an MP3 file.
func decodeMP3(data []byte, clock int) ([]Block, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, curated.Errorf("mp3: %v", err)
	}

	// the decoded stream is always 16bit little endian stereo
	var samples []int
	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+1 < n; i += 4 {
			samples = append(samples, int(int16(uint16(chunk[i])|uint16(chunk[i+1])<<8)))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, curated.Errorf("mp3: %v", err)
		}
	}

	return pcmBlocks(samples, dec.SampleRate(), clock, "mp3 audio")
}

// pcmBlocks converts samples to a single block of pulses.
func pcmBlocks(samples []int, sampleRate int, clock int, description string) ([]Block, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf("invalid sample rate (%d)", sampleRate)
	}
	if len(samples) == 0 {
		return nil, curated.Errorf("no audio data")
	}

	var peak int
	for _, s := range samples {
		peak = max(peak, s, -s)
	}
	threshold := int(float64(peak) * hysteresis)

	// cycle at which each sample starts
	cycle := func(i int) uint64 {
		return uint64(i) * uint64(clock) / uint64(sampleRate)
	}

	b := Block{Description: description}

	level := samples[0] > threshold
	start := 0
	for i, s := range samples {
		var l bool
		switch {
		case s > threshold:
			l = true
		case s < -threshold:
			l = false
		default:
			continue
		}
		if l != level {
			b.Pulses = append(b.Pulses, Pulse{Length: uint32(cycle(i) - cycle(start)), Level: level})
			level = l
			start = i
		}
	}
	b.Pulses = append(b.Pulses, Pulse{Length: uint32(cycle(len(samples)) - cycle(start)), Level: level})

	return []Block{b}, nil
}
