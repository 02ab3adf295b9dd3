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

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/joystick"
	"github.com/zxcore/zxcore/hardware/ula"
	"github.com/zxcore/zxcore/hardware/variant"
	"github.com/zxcore/zxcore/modalflag"
	"github.com/zxcore/zxcore/test"
)

func parse(t *testing.T, args ...string) *machineFlags {
	t.Helper()
	md := &modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs(args)
	mf := addMachineFlags(md)
	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p, modalflag.ParseContinue)
	return mf
}

func TestConfig(t *testing.T) {
	mf := parse(t, "-variant", "+2a", "-border", "small", "-joystick", "kempston", "-joystick", "cursor")
	cfg, err := mf.config("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Variant, variant.SpectrumPlus2A)
	test.ExpectEquality(t, cfg.Border, ula.BorderSmall)
	test.DemandEquality(t, len(cfg.Joysticks), 2)
	test.ExpectEquality(t, cfg.Joysticks[1], joystick.Cursor)
	test.ExpectEquality(t, len(cfg.Media), 0)

	mf = parse(t, "-joystick", "trackball")
	_, err = mf.config("")
	test.ExpectFailure(t, err)

	mf = parse(t)
	_, err = mf.config(filepath.Join(t.TempDir(), "missing.tap"))
	test.ExpectFailure(t, err)
}

func TestStateFile(t *testing.T) {
	env, err := environment.NewTestEnvironment("state file")
	test.DemandSuccess(t, err)

	mf := parse(t, "-variant", "128k")
	m, mc, err := mf.newMachine(env, "")
	test.DemandSuccess(t, err)

	for m.FrameTiming().Count < 3 {
		_, err := m.Step()
		test.DemandSuccess(t, err)
	}

	fn := filepath.Join(t.TempDir(), "test.state")
	test.DemandSuccess(t, writeState(fn, m, mc))
	saved := m.FrameTiming()
	cpu := mc.Save()

	for m.FrameTiming().Count < 5 {
		_, err := m.Step()
		test.DemandSuccess(t, err)
	}
	test.ExpectInequality(t, m.FrameTiming(), saved)

	test.DemandSuccess(t, restoreState(fn, m, mc))
	test.ExpectEquality(t, m.FrameTiming(), saved)
	test.ExpectEquality(t, mc.Save(), cpu)

	// a 48K machine can not restore a 128K state
	env, err = environment.NewTestEnvironment("state file")
	test.DemandSuccess(t, err)
	m48, mc48, err := parse(t).newMachine(env, "")
	test.DemandSuccess(t, err)
	before := m48.FrameTiming()
	test.ExpectFailure(t, restoreState(fn, m48, mc48))
	test.ExpectEquality(t, m48.FrameTiming(), before)
}

func TestWriteInfo(t *testing.T) {
	env, err := environment.NewTestEnvironment("info")
	test.DemandSuccess(t, err)

	m, _, err := parse(t, "-variant", "48k").newMachine(env, "")
	test.DemandSuccess(t, err)

	w := &test.Writer{}
	writeInfo(w, m)
	test.ExpectSuccess(t, strings.Contains(w.String(), "firmware:"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "devices:"))
	test.ExpectFailure(t, strings.Contains(w.String(), "tape:"))
}

func TestModeArguments(t *testing.T) {
	md := &modalflag.Modes{Output: &test.Writer{}}

	md.NewArgs([]string{"a.tap", "b.tap"})
	test.ExpectFailure(t, info(md))

	md.NewArgs([]string{})
	test.ExpectFailure(t, state(md))

	md.NewArgs([]string{"a.state", "b.state"})
	test.ExpectFailure(t, state(md))
}
