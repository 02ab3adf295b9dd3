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

package digest_test

import (
	"testing"

	"github.com/zxcore/zxcore/digest"
	"github.com/zxcore/zxcore/hardware/audio"
	"github.com/zxcore/zxcore/test"
)

func TestAudio(t *testing.T) {
	var _ audio.Output = digest.NewAudio()
	var _ digest.Digest = digest.NewAudio()

	a := digest.NewAudio()
	b := digest.NewAudio()
	empty := a.Hash()

	test.ExpectSuccess(t, a.SetAudio([]int16{1, 2, 3}))
	test.ExpectSuccess(t, b.SetAudio([]int16{1, 2, 3}))
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectInequality(t, a.Hash(), empty)

	// the digest depends on the order of the frames
	test.ExpectSuccess(t, a.SetAudio([]int16{4}))
	test.ExpectSuccess(t, a.SetAudio([]int16{5}))
	test.ExpectSuccess(t, b.SetAudio([]int16{5}))
	test.ExpectSuccess(t, b.SetAudio([]int16{4}))
	test.ExpectInequality(t, a.Hash(), b.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), empty)
	test.ExpectSuccess(t, a.EndMixing())
}
