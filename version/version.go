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

// Package version reports the version of the application. The version number
// is set at link time by the makefile:
//
//	go build -ldflags "-X github.com/zxcore/zxcore/version.number=v0.1.0"
//
// Otherwise the version is derived from the build information embedded by
// the Go toolchain.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// The name to use when referring to the application
const ApplicationName = "ZXCore"

// set by the linker. empty if the project was not built with the makefile
var number string

// the vcs revision. suffixed with "+dirty" if the working tree had
// uncommitted changes at build time
var revision string

// "unreleased" if the project was built without a version number but with
// vcs information. "local" if there is neither, which happens with "go run ."
var version string

// the version of the Go toolchain used to build the application
var goVersion string

// Version returns the version string, the revision string and whether this is a
// numbered release. for release versions the revision is of secondary interest.
func Version() (string, string, bool) {
	return version, revision, version == number
}

// String returns a one line summary of the version information suitable for
// displaying to the user.
func String() string {
	v, r, release := Version()
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s %s", ApplicationName, v))
	if !release {
		s.WriteString(fmt.Sprintf(" (%s)", r))
	}
	if goVersion != "" {
		s.WriteString(fmt.Sprintf(" built with %s", goVersion))
	}
	return s.String()
}

func init() {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	info, ok := debug.ReadBuildInfo()
	if ok {
		goVersion = info.GoVersion
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if vcsRevision == "" {
		revision = "no revision information"
	} else {
		revision = vcsRevision
		if vcsModified {
			revision = fmt.Sprintf("%s+dirty", revision)
		}
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
