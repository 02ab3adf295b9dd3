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

package rewind

import (
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/paths"
	"github.com/zxcore/zxcore/prefs"
)

// Preferences for the rewind system.
type Preferences struct {
	r   *Rewind
	dsk *prefs.Disk

	// the maximum number of entries to store before the earliest entries are
	// forgotten
	MaxEntries prefs.Int

	// how often a frame snapshot is taken. a value of one means a snapshot is
	// taken every frame. larger values save memory but make GotoFrame()
	// slower because the emulation has to catch up to the requested frame
	Freq prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

const (
	defaultMaxEntries = 100
	defaultFreq       = 1
)

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from and saved to the default
// preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(pth)
}

// NewPreferencesNoDisk creates a Preferences instance that is never saved to
// or loaded from disk.
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

	err = p.dsk.Add("rewind.maxEntries", &p.MaxEntries)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("rewind.snapshotFreq", &p.Freq)
	if err != nil {
		return nil, err
	}

	p.MaxEntries.SetHookPre(func(value prefs.Value) error {
		if value.(int) < 2 {
			return curated.Errorf("rewind: max entries must be at least 2")
		}
		return nil
	})
	p.Freq.SetHookPre(func(value prefs.Value) error {
		if value.(int) < 1 {
			return curated.Errorf("rewind: snapshot frequency must be at least 1")
		}
		return nil
	})

	// changing the number of entries discards the history
	p.MaxEntries.SetHookPost(func(_ prefs.Value) error {
		if p.r != nil {
			return p.r.allocate()
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
	p.MaxEntries.Set(defaultMaxEntries)
	p.Freq.Set(defaultFreq)
}

// Load rewind preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current rewind preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
