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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// helpWriter collects the output of the flag package so that it can be
// amended before being shown to the user.
type helpWriter struct {
	strings.Builder
}

func (hw *helpWriter) Help(output io.Writer, mode string, modes []string, args string, additionalHelp string) {
	if output == nil {
		return
	}

	// the flag package writes a "Usage" line followed by one or more lines
	// per flag
	usage, flags, _ := strings.Cut(hw.String(), "\n")

	if flags == "" && len(modes) == 0 && args == "" {
		if mode != "" {
			fmt.Fprintf(output, "No help available for %s mode\n", mode)
		} else {
			fmt.Fprintln(output, "No help available")
		}
		return
	}

	// the flag package names the flag set in the Usage line
	usage, _, _ = strings.Cut(usage, " of ")
	if mode != "" {
		fmt.Fprintf(output, "%s for %s mode\n", strings.TrimSuffix(usage, ":"), mode)
	} else {
		fmt.Fprintln(output, usage)
	}

	io.WriteString(output, flags)

	if len(modes) > 0 {
		if flags != "" {
			fmt.Fprintln(output)
		}
		fmt.Fprintf(output, "  modes: %s\n", strings.Join(modes, ", "))
		fmt.Fprintf(output, "    default: %s\n", modes[0])
	}

	if args != "" {
		if flags != "" {
			fmt.Fprintln(output)
		}
		fmt.Fprintf(output, "  arguments: %s\n", args)
	}

	if additionalHelp != "" {
		fmt.Fprintf(output, "\n%s\n", additionalHelp)
	}
}
