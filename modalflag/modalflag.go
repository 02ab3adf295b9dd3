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
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Modes handles the command line of a program with a top-level set of flags,
// a choice of modes and a set of flags and positional arguments for each
// mode. The Output field should be specified before calling Parse() or help
// messages will not be seen.
type Modes struct {
	// where to print help messages
	Output io.Writer

	// the argument list given to NewArgs() and the index of the next argument
	// to be parsed
	args    []string
	argsIdx int

	// the flags, modes and positional arguments for the next call to Parse().
	// reset by NewMode()
	flags          *flag.FlagSet
	subModes       []string
	positional     positional
	additionalHelp string

	// the mode selected by Parse(). not reset by NewMode()
	mode string
}

// the permitted number of positional arguments for a mode
type positional struct {
	min   int
	max   int
	usage string
}

func (p positional) check(n int) error {
	switch {
	case n < p.min:
		return fmt.Errorf("%s required", p.usage)
	case p.max >= 0 && n > p.max:
		return fmt.Errorf("too many arguments (expecting %s)", p.usage)
	}
	return nil
}

// String returns the selected mode.
func (md *Modes) String() string {
	return md.mode
}

// Mode returns the mode selected by Parse(). Modes are always upper case. The
// empty string is returned if no modes have been added.
func (md *Modes) Mode() string {
	return md.mode
}

// NewArgs with a string of arguments (from the command line for example).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.mode = ""
	md.NewMode()
}

// NewMode indicates that the remaining arguments belong to the mode selected
// by the previous call to Parse().
func (md *Modes) NewMode() {
	md.flags = flag.NewFlagSet(md.mode, flag.ContinueOnError)
	md.subModes = md.subModes[:0]
	md.positional = positional{max: -1}
	md.additionalHelp = ""
}

// AdditionalHelp adds text to be displayed after the help on flags.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// Continue with command line processing. If modes were added then Mode()
	// says which one was selected.
	ParseContinue ParseResult = iota

	// Help was requested and has been printed.
	ParseHelp

	// An error has occurred and is returned as the second return value.
	ParseError
)

// Parse the flags, the mode and the positional arguments. Help messages are
// printed automatically. ParseHelp should be treated like an error but
// without the need to display anything further to the user.
func (md *Modes) Parse() (ParseResult, error) {
	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			hw.Help(md.Output, md.mode, md.subModes, md.positional.usage, md.additionalHelp)
			return ParseHelp, nil
		}
		return ParseError, err
	}

	// flags have been consumed. the remaining args begin after them
	md.argsIdx = len(md.args) - md.flags.NArg()

	// the first mode is the default and is used if the next argument is not
	// one of the listed modes. positional arguments are not checked because
	// the remaining arguments belong to the selected mode
	if len(md.subModes) > 0 {
		md.mode = md.subModes[0]
		arg := strings.ToUpper(md.flags.Arg(0))
		if slices.Contains(md.subModes, arg) {
			md.mode = arg
			md.argsIdx++
		}
		return ParseContinue, nil
	}

	err = md.positional.check(len(md.RemainingArgs()))
	if err != nil {
		return ParseError, err
	}

	return ParseContinue, nil
}

// RemainingArgs after a call to Parse() ie. arguments that aren't flags or a
// listed mode.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// GetArg returns the numbered argument that isn't a flag or listed mode.
// Returns the empty string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddSubModes to the list of modes for the next call to Parse(). The first
// mode in the list is the default. Mode comparisons are case insensitive.
func (md *Modes) AddSubModes(modes ...string) {
	for _, s := range modes {
		md.subModes = append(md.subModes, strings.ToUpper(s))
	}
}

// AddArgs sets the number of positional arguments accepted by the next call
// to Parse(). A negative value for most means there is no upper limit. The
// usage string names the arguments in help and error messages.
//
// Positional arguments are not checked if modes have also been added.
func (md *Modes) AddArgs(least int, most int, usage string) {
	md.positional = positional{min: least, max: most, usage: usage}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddChoice adds a string flag that must be one of the listed choices. The
// comparison is case insensitive and the value is normalised to the case
// used in the choices list.
func (md *Modes) AddChoice(name string, value string, choices []string, usage string) *string {
	v := value
	usage = fmt.Sprintf("%s [%s] (default %s)", usage, strings.Join(choices, ", "), value)
	md.flags.Func(name, usage, func(s string) error {
		for _, c := range choices {
			if strings.EqualFold(c, s) {
				v = c
				return nil
			}
		}
		return fmt.Errorf("%q is not one of: %s", s, strings.Join(choices, ", "))
	})
	return &v
}

// AddList adds a string flag that can be specified more than once. The values
// are returned in the order they were specified.
func (md *Modes) AddList(name string, usage string) *[]string {
	v := []string{}
	md.flags.Func(name, usage, func(s string) error {
		v = append(v, s)
		return nil
	})
	return &v
}
