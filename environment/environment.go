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

// Package environment provides the context for a single machine instance. It
// carries the instance's label, its preferences and its random number source.
package environment

import (
	"github.com/zxcore/zxcore/hardware/preferences"
	"github.com/zxcore/zxcore/random"
)

// Label is used to name the environment
type Label string

// MainEmulation is the label used by the main emulation
const MainEmulation = Label("")

// Environment is used to provide context for an emulation. Particularly useful
// when using multiple emulations
type Environment struct {
	Label Label

	// any randomisation required by the emulation should be retreived through
	// this structure
	Random *random.Random

	// the emulation preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the Environment type.
//
// The clock argument can be nil. The machine plumbs itself into the random
// number source during construction. In the case of the prefs field a nil
// value causes a new Preferences instance to be created. Providing a non-nil
// value allows the preferences of more than one machine to be synchronised.
func NewEnvironment(clock random.Clock, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label:  MainEmulation,
		Random: random.NewRandom(clock),
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// NewTestEnvironment creates an environment with preferences that are not
// read from or written to disk, normalised so that every instance behaves
// identically.
func NewTestEnvironment(label Label) (*Environment, error) {
	prefs, err := preferences.NewPreferencesNoDisk()
	if err != nil {
		return nil, err
	}
	env, err := NewEnvironment(nil, prefs)
	if err != nil {
		return nil, err
	}
	env.Label = label
	env.Normalise()
	return env, nil
}

// Normalise ensures the environment is in an known default state. Useful for
// testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Prefs.SetDefaults()
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation is allowed to write to the central log.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}
