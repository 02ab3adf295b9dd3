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

// Package preferences holds the preference values that affect the emulated
// hardware. Values are shared by every machine created with the same
// Preferences instance.
package preferences

import (
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/paths"
	"github.com/zxcore/zxcore/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// start the tape deck playing after construction and reset
	AutoLoadTape prefs.Bool

	// the output sample rate given to every device during initialisation
	SampleRate prefs.Int

	// mixing volumes in the range 0 to 100
	BeeperVolume prefs.Int
	TapeVolume   prefs.Int
	AYVolume     prefs.Int

	// initialise RAM to random values after reset
	RandomState prefs.Bool

	// reads from unmapped ports return the byte the ULA is fetching
	FloatingBus prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(pth)
}

// NewPreferencesNoDisk creates a Preferences instance that is never saved to
// or loaded from disk. Used by tests and by any emulation that should not
// disturb the user's settings.
func NewPreferencesNoDisk() (*Preferences, error) {
	return newPreferences("")
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, v := range []struct {
		key string
		p   prefs.Pref
	}{
		{"tape.autoload", &p.AutoLoadTape},
		{"audio.samplerate", &p.SampleRate},
		{"audio.beeper", &p.BeeperVolume},
		{"audio.tape", &p.TapeVolume},
		{"audio.ay", &p.AYVolume},
		{"hardware.randstate", &p.RandomState},
		{"hardware.floatingbus", &p.FloatingBus},
	} {
		if err := p.dsk.Add(v.key, v.p); err != nil {
			return nil, err
		}
	}

	for _, v := range []*prefs.Int{&p.BeeperVolume, &p.TapeVolume, &p.AYVolume} {
		v.SetHookPre(func(value prefs.Value) error {
			if vol := value.(int); vol < 0 || vol > 100 {
				return curated.Errorf("preferences: volume out of range (%d)", vol)
			}
			return nil
		})
	}

	p.SampleRate.SetHookPre(func(value prefs.Value) error {
		if value.(int) <= 0 {
			return curated.Errorf("preferences: sample rate must be positive")
		}
		return nil
	})

	err = p.dsk.Load(true)
	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.AutoLoadTape.Set(false)
	p.SampleRate.Set(44100)
	p.BeeperVolume.Set(50)
	p.TapeVolume.Set(50)
	p.AYVolume.Set(75)
	p.RandomState.Set(false)
	p.FloatingBus.Set(false)
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
