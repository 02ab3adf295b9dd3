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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// on program end. It is therefore probably only suitable for testing purposes.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/zxcore/zxcore/curated"
	zxaudio "github.com/zxcore/zxcore/hardware/audio"
	"github.com/zxcore/zxcore/logger"
)

// WavWriter implements the audio.Output interface.
type WavWriter struct {
	filename string
	clock    int
	rate     int
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type. The
// clock argument is the rate at which frames are produced by the machine and
// the rate argument is the sample rate of the WAV file.
func New(filename string, clock int, rate int) (*WavWriter, error) {
	if clock <= 0 || rate <= 0 {
		return nil, curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}
	return &WavWriter{
		filename: filename,
		clock:    clock,
		rate:     rate,
		buffer:   make([]int, 0),
	}, nil
}

// SetAudio implements the audio.Output interface.
func (aw *WavWriter) SetAudio(frame []int16) error {
	for _, s := range zxaudio.Resample(frame, aw.clock, aw.rate) {
		aw.buffer = append(aw.buffer, int(s))
	}
	return nil
}

// EndMixing implements the audio.Output interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.rate, 16, 1, 1)

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: aw.rate},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	})
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	err = enc.Close()
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
