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

package preferences_test

import (
	"testing"

	"github.com/zxcore/zxcore/hardware/preferences"
	"github.com/zxcore/zxcore/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.AutoLoadTape.Get().(bool), false)
	test.ExpectEquality(t, p.SampleRate.Get().(int), 44100)
	test.ExpectEquality(t, p.BeeperVolume.Get().(int), 50)
	test.ExpectEquality(t, p.TapeVolume.Get().(int), 50)
	test.ExpectEquality(t, p.AYVolume.Get().(int), 75)

	// saving a disk-less preferences instance does nothing
	test.ExpectSuccess(t, p.Save())
}

func TestVolumeRange(t *testing.T) {
	p, err := preferences.NewPreferencesNoDisk()
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.AYVolume.Set(101))
	test.ExpectFailure(t, p.BeeperVolume.Set(-1))
	test.ExpectEquality(t, p.BeeperVolume.Get().(int), 50)
	test.ExpectSuccess(t, p.TapeVolume.Set(0))

	test.ExpectFailure(t, p.SampleRate.Set(0))
	test.ExpectSuccess(t, p.SampleRate.Set(48000))

	p.SetDefaults()
	test.ExpectEquality(t, p.SampleRate.Get().(int), 44100)
}
