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

// Package modalflag wraps the flag package of the standard library for
// programs that are run in one of several modes, each with its own flags and
// positional arguments.
//
// Arguments are given once with NewArgs(). The first Parse() handles the
// top-level flags and selects the mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("run", "info", "state")
//	_, _ = md.Parse()
//
// The first mode is the default. If the first argument after the flags names
// one of the modes then it is consumed. Mode comparisons are case insensitive
// and Mode() is always upper case.
//
// NewMode() then starts the flags and arguments for the selected mode. The
// number of positional arguments is checked by Parse():
//
//	switch md.Mode() {
//	case "STATE":
//		md.NewMode()
//		memviz := md.AddString("memviz", "", "write a graph of the machine")
//		md.AddArgs(1, 1, "save-state file")
//		p, err := md.Parse()
//		if err != nil || p != modalflag.ParseContinue {
//			return err
//		}
//		return state(md.GetArg(0), *memviz)
//	}
package modalflag
