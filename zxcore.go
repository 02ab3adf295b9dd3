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
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/zxcore/zxcore/digest"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/govern"
	"github.com/zxcore/zxcore/hardware"
	"github.com/zxcore/zxcore/hardware/audio"
	"github.com/zxcore/zxcore/hardware/cpu/trace"
	"github.com/zxcore/zxcore/hardware/joystick"
	"github.com/zxcore/zxcore/hardware/keyboard"
	"github.com/zxcore/zxcore/hardware/savestate"
	"github.com/zxcore/zxcore/hardware/ula"
	"github.com/zxcore/zxcore/hardware/variant"
	"github.com/zxcore/zxcore/logger"
	"github.com/zxcore/zxcore/medialoader"
	"github.com/zxcore/zxcore/modalflag"
	"github.com/zxcore/zxcore/otoaudio"
	"github.com/zxcore/zxcore/paths"
	"github.com/zxcore/zxcore/performance"
	"github.com/zxcore/zxcore/performance/limiter"
	"github.com/zxcore/zxcore/prefs"
	"github.com/zxcore/zxcore/rewind"
	"github.com/zxcore/zxcore/statsview"
	"github.com/zxcore/zxcore/version"
	"github.com/zxcore/zxcore/wavwriter"
	"golang.org/x/term"
)

// the machine is driven by a CPU that is permanently halted. the halted CPU
// fetches from the same address and acknowledges every interrupt, which is
// enough to keep the ULA, the tape deck and the sound devices running
func haltedCPU() *trace.CPU {
	mc := trace.NewCPU(trace.Program{
		trace.NewInstruction("halt", trace.Fetch(0x0000)),
	})
	mc.Loop = true
	return mc
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "INFO", "STATE", "PERFORMANCE", "VERSION")

p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "INFO":
		err = info(md)
	case "STATE":
		err = state(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		fmt.Fprintln(md.Output, version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// setEcho sends the log to stdout. the output is colourised if stdout is a
// terminal.
func setEcho(echo bool) {
	if !echo {
		logger.SetEcho(nil, false)
		return
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		logger.SetEcho(logger.NewColorizer(os.Stdout), false)
	} else {
		logger.SetEcho(os.Stdout, false)
	}
}

// machineFlags are the flags common to every mode that creates a machine.
type machineFlags struct {
	variant   *string
	border    *string
	firmware  *[]string
	joysticks *[]string
	autoload  *bool
	prefs     *string
	log       *bool
}

func addMachineFlags(md *modalflag.Modes) *machineFlags {
	var variants []string
	for _, id := range variant.List() {
		variants = append(variants, string(id))
	}

	var borders []string
	for b := ula.BorderFull; b <= ula.BorderNone; b++ {
		borders = append(borders, b.String())
	}

	return &machineFlags{
		variant:   md.AddChoice("variant", string(variant.Spectrum48K), variants, "machine variant"),
		border:    md.AddChoice("border", ula.BorderFull.String(), borders, "border size"),
		firmware:  md.AddList("rom", "firmware image for the next ROM slot (repeatable)"),
		joysticks: md.AddList("joystick", "add a joystick: Kempston, Sinclair1, Sinclair2, Cursor (repeatable)"),
		autoload:  md.AddBool("autoload", false, "start the tape playing and type the LOAD command"),
		prefs:     md.AddString("prefs", "", "preferences for this session (key::value; key::value)"),
		log:       md.AddBool("log", false, "echo debugging log to stdout"),
	}
}

// config builds the machine configuration from the flags and the tape file.
// The tape file can be empty.
func (mf *machineFlags) config(tapeFile string) (hardware.Config, error) {
	cfg := hardware.Config{
		Variant:  variant.ID(*mf.variant),
		AutoLoad: *mf.autoload,
	}

	var err error

	cfg.Border, err = ula.ParseBorder(*mf.border)
	if err != nil {
		return cfg, err
	}

	for _, j := range *mf.joysticks {
		t, err := joystick.ParseType(j)
		if err != nil {
			return cfg, err
		}
		cfg.Joysticks = append(cfg.Joysticks, t)
	}

	for _, fn := range *mf.firmware {
		ld := medialoader.NewLoader(fn)
		f, err := ld.Media()
		if err != nil {
			return cfg, err
		}
		cfg.Firmware = append(cfg.Firmware, f)
	}

	if tapeFile != "" {
		ld := medialoader.NewLoader(tapeFile)
		if !ld.Recognised() {
			logger.Logf(logger.Allow, "zxcore", "unrecognised file extension (%s)", tapeFile)
		}
		t, err := ld.Media()
		if err != nil {
			return cfg, err
		}
		cfg.Media = append(cfg.Media, t)
	}

	return cfg, nil
}

// newMachine creates the CPU and machine. The environment is created if env
// is nil.
func (mf *machineFlags) newMachine(env *environment.Environment, tapeFile string) (*hardware.Machine, *trace.CPU, error) {
	setEcho(*mf.log)

	if *mf.prefs != "" {
		prefs.PushCommandLineStack(*mf.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "zxcore", "unused preferences: %s", unused)
			}
		}()
	}

	cfg, err := mf.config(tapeFile)
	if err != nil {
		return nil, nil, err
	}

	if env == nil {
		env, err = environment.NewEnvironment(nil, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	mc := haltedCPU()
	m, err := hardware.NewMachine(env, mc, cfg)
	if err != nil {
		return nil, nil, err
	}
	mc.Plumb(m)

	// the LOAD command is only needed for the 48K machine. the other
	// variants start the tape loader from the menu
	if cfg.AutoLoad && cfg.Variant == variant.Spectrum48K {
		m.Keyboard.Type(keyboard.LoadCommand()...)
	}

	return m, mc, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	frames := md.AddInt("frames", 0, "number of frames to run. zero runs until interrupted")
	wav := md.AddString("wav", "", "record audio to wav file")
	play := md.AddBool("play", false, "play audio through the sound device")
	dig := md.AddBool("digest", false, "print the digest of the audio on completion")
	typeText := md.AddString("type", "", "text to type on the keyboard")
	load := md.AddString("load", "", "restore machine from save-state file before running")
	save := md.AddBool("save", false, "write a save-state file on completion")
	rewindTo := md.AddInt("rewind", -1, "rewind to the frame on completion. the nearest frame in the rewind history is used")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	md.AdditionalHelp(`The machine is driven by a halted CPU. The ULA, the tape deck and the sound
devices run as normal so a tape can be played to the sound device or to a WAV file.`)

	md.AddArgs(0, 1, "tape file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	tapeFile := md.GetArg(0)

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(os.Stdout)
	}

	m, mc, err := mf.newMachine(nil, tapeFile)
	if err != nil {
		return err
	}

	if *load != "" {
		err = restoreState(*load, m, mc)
		if err != nil {
			return err
		}
	}

	if *typeText != "" {
		m.Keyboard.Type(keyboard.Text(*typeText)...)
	}

	var rw *rewind.Rewind
	if *rewindTo >= 0 {
		rp, err := rewind.NewPreferences()
		if err != nil {
			return err
		}
		rw, err = rewind.NewRewind(m, mc, rp)
		if err != nil {
			return err
		}
	}

	desc := m.Variant()

	var outputs []audio.Output

	var dg *digest.Audio
	if *dig {
		dg = digest.NewAudio()
		outputs = append(outputs, dg)
	}

	if *wav != "" {
		aw, err := wavwriter.New(*wav, desc.ClockRate, m.Env().Prefs.SampleRate.Get().(int))
		if err != nil {
			return err
		}
		outputs = append(outputs, aw)
	}

	var lim *limiter.Limiter
	if *play {
		pl, err := otoaudio.New(desc.ClockRate, m.Env().Prefs.SampleRate.Get().(int))
		if err != nil {
			return err
		}
		outputs = append(outputs, pl)
		lim = limiter.NewFrameLimiter(desc.ClockRate, desc.FrameLength)
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Reset(os.Interrupt)

	target := m.FrameTiming().Count + *frames
	ending := false
	performanceFilter := 0

	continueCheck := func() (govern.State, error) {
		if ending {
			return govern.Ending, nil
		}
		performanceFilter++
		if performanceFilter >= hardware.PerformanceBrake {
			performanceFilter = 0
			select {
			case <-intChan:
				fmt.Print("\r")
				return govern.Ending, nil
			default:
			}
		}
		return govern.Running, nil
	}

	frame := func(f []int16) error {
		for _, o := range outputs {
			if err := o.SetAudio(f); err != nil {
				return err
			}
		}
		if rw != nil {
			if err := rw.RecordFrame(); err != nil {
				return err
			}
		}
		if *frames > 0 && m.FrameTiming().Count >= target {
			ending = true
		}
		if lim != nil {
			lim.Wait()
		}
		return nil
	}

	err = m.Run(continueCheck, frame)

	for _, o := range outputs {
		if eerr := o.EndMixing(); eerr != nil && err == nil {
			err = eerr
		}
	}

	if err != nil {
		return err
	}

	if dg != nil {
		fmt.Fprintln(md.Output, dg)
	}

	if rw != nil {
		fn, err := rw.GotoFrame(*rewindTo)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "! rewound to frame %d (history %s)\n", fn, rw.GetFrames())
	}

	if *save {
		fn := fmt.Sprintf("%s.state", paths.UniqueFilename("zxcore", tapeFile))
		err = writeState(fn, m, mc)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "! state saved to %s\n", fn)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	duration := md.AddString("duration", "5s", "run duration (after a two second lead time)")
	profile := md.AddString("profile", "none", "create profile for emulator: CPU, MEM, TRACE or ALL (comma separated)")

	md.AddArgs(0, 1, "tape file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	pf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	tapeFile := md.GetArg(0)

	m, _, err := mf.newMachine(nil, tapeFile)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, pf, m, *duration)
}

func info(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)

	md.AddArgs(0, 1, "tape file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	tapeFile := md.GetArg(0)

	m, _, err := mf.newMachine(nil, tapeFile)
	if err != nil {
		return err
	}

	writeInfo(md.Output, m)

	return nil
}

// writeInfo describes the machine.
func writeInfo(w io.Writer, m *hardware.Machine) {
	fmt.Fprintln(w, m.Variant())

	fmt.Fprintln(w, "firmware:")
	for _, fw := range m.Firmware() {
		fmt.Fprintf(w, "  %s\n", fw)
	}

	fmt.Fprintln(w, "devices:")
	for _, d := range m.Bus.Devices() {
		fmt.Fprintf(w, "  %s\n", d.Label())
	}

	blocks := m.Deck.Blocks()
	if len(blocks) > 0 {
		fmt.Fprintln(w, "tape:")
		for i, b := range blocks {
			fmt.Fprintf(w, "  %3d %s\n", i, b)
		}
	}
}

func state(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	tapeFile := md.AddString("tape", "", "tape the state was saved with")
	memviz := md.AddString("memviz", "", "write a graph of the machine to the file (graphviz dot format)")

	md.AddArgs(1, 1, "save-state file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fn := md.GetArg(0)

	// the variant is taken from the save-state file
	id, _, err := savestate.ReadFile(fn)
	if err != nil {
		return err
	}
	*mf.variant = id

	m, mc, err := mf.newMachine(nil, *tapeFile)
	if err != nil {
		return err
	}

	err = restoreState(fn, m, mc)
	if err != nil {
		return err
	}

	writeInfo(md.Output, m)
	fmt.Fprintf(md.Output, "frame: %s\n", m.FrameTiming())
	fmt.Fprintf(md.Output, "paging: %s\n", m.Mem.Banks)
	fmt.Fprintf(md.Output, "border: %d\n", m.ULA.Border())
	fmt.Fprintf(md.Output, "tape: %s %s\n", m.Deck.State(), m.Deck.Position())

	if *memviz != "" {
		f, err := os.Create(*memviz)
		if err != nil {
			return err
		}
		defer f.Close()
		m.Memviz(f)
	}

	return nil
}

// writeState saves the CPU and machine state to a save-state file.
func writeState(filename string, m *hardware.Machine, mc *trace.CPU) error {
	data, err := m.Serialise()
	if err != nil {
		return err
	}

	w := savestate.NewWriter()
	mc.SaveState(w)
	w.Bytes(data)
	data, err = w.Data()
	if err != nil {
		return err
	}

	return savestate.WriteFile(filename, string(m.Variant().ID), data)
}

// restoreState loads a file created by writeState(). The machine and CPU are
// unchanged if the file can not be restored.
func restoreState(filename string, m *hardware.Machine, mc *trace.CPU) error {
	id, data, err := savestate.ReadFile(filename)
	if err != nil {
		return err
	}
	if !strings.EqualFold(id, string(m.Variant().ID)) {
		return fmt.Errorf("state file is for the %s variant", id)
	}

	backup := mc.Save()

	r := savestate.NewReader(data)
	mc.LoadState(r)
	data = r.Bytes()
	err = r.Finish()
	if err != nil {
		mc.Restore(backup)
		return err
	}

	err = m.Deserialise(data)
	if err != nil {
		mc.Restore(backup)
		return err
	}

	return nil
}
