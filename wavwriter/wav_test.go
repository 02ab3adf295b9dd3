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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/audio"
	"github.com/zxcore/zxcore/test"
	"github.com/zxcore/zxcore/wavwriter"
)

func TestBadParameters(t *testing.T) {
	_, err := wavwriter.New("out.wav", 0, 44100)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.IsAny(err))
}

func TestWrite(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.wav")

	aw, err := wavwriter.New(fn, 3500000, 35000)
	test.DemandSuccess(t, err)
	var _ audio.Output = aw

	// two frames of 1000 cycles produce ten samples each
	frame := make([]int16, 1000)
	for i := range frame {
		frame[i] = 1000
	}
	test.ExpectSuccess(t, aw.SetAudio(frame))
	test.ExpectSuccess(t, aw.SetAudio(frame))
	test.ExpectSuccess(t, aw.EndMixing())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.ExpectSuccess(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, buf.Format.SampleRate, 35000)
	test.DemandEquality(t, len(buf.Data), 20)
	test.ExpectEquality(t, buf.Data[0], 1000)
	test.ExpectEquality(t, buf.Data[19], 1000)
}
