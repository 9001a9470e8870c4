// This file is part of armv2dbg.
//
// armv2dbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// armv2dbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with armv2dbg.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/debugger"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/debugger/terminal/colorterm"
	"github.com/jetsetilly/armv2dbg/debugger/terminal/plainterm"
	"github.com/jetsetilly/armv2dbg/disassembly"
	"github.com/jetsetilly/armv2dbg/hardware"
	"github.com/jetsetilly/armv2dbg/hardware/armv2"
	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/hardware/peripherals"
	"github.com/jetsetilly/armv2dbg/hardware/peripherals/console"
	"github.com/jetsetilly/armv2dbg/hardware/peripherals/keyboard"
	"github.com/jetsetilly/armv2dbg/logger"
	"github.com/jetsetilly/armv2dbg/modalflag"
	"github.com/jetsetilly/armv2dbg/prefs"
	"github.com/jetsetilly/armv2dbg/statsview"
	"golang.org/x/term"
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch the program with the command line arguments. returns the value to
// be used with os.Exit()
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("DEBUG", "DISASM", "RUN")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "DEBUG":
		err = debug(md, output)
	case "DISASM":
		err = disasm(md, output)
	case "RUN":
		err = run(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// the boot image is the only argument in every mode
func bootImage(md *modalflag.Modes) ([]byte, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("boot image required for %s mode", md)
	case 1:
		b, err := os.ReadFile(md.GetArg(0))
		if err != nil {
			return nil, err
		}
		if len(b) < armv2.MinimumBootSize {
			return nil, curated.Errorf(armv2.BootTooSmall, len(b))
		}
		return b, nil
	}
	return nil, fmt.Errorf("too many arguments for %s mode", md)
}

// the console and keyboard are mapped to the top two pages of memory
func newMachine(memsize uint32, boot []byte, output io.Writer) (*hardware.Machine, error) {
	arm, err := armv2.NewARMv2(memsize, boot)
	if err != nil {
		return nil, err
	}

	m := hardware.NewMachine(arm)

	top := memsize &^ peripherals.PageMask
	if top < 3*peripherals.PageSize {
		return m, nil
	}

	con := console.NewConsole(output)
	if err := m.AddDevice(con); err != nil {
		m.Close()
		return nil, err
	}
	if err := m.MapDevice(console.ID, top-peripherals.PageSize, top-1); err != nil {
		m.Close()
		return nil, err
	}

	kb := keyboard.NewKeyboard()
	if err := m.AddDevice(kb); err != nil {
		m.Close()
		return nil, err
	}
	if err := m.MapDevice(keyboard.ID, top-2*peripherals.PageSize, top-peripherals.PageSize-1); err != nil {
		m.Close()
		return nil, err
	}

	return m, nil
}

func debug(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	termType := md.AddString("term", "COLOR", "terminal type to use: COLOR, PLAIN")
	cmdPrefs := md.AddString("prefs", "", "preferences to apply for this session (key::value; key::value)")
	stats := md.AddBool("statsview", false, "run statsview server")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(output)
	}

	if *cmdPrefs != "" {
		prefs.PushCommandLineStack(*cmdPrefs)
	}

	boot, err := bootImage(md)
	if err != nil {
		return err
	}

	prf, err := debugger.NewPreferences()
	if err != nil {
		return err
	}

	var trm terminal.Terminal
	switch strings.ToUpper(*termType) {
	default:
		fmt.Fprintf(output, "! unknown terminal type (%s) defaulting to plain\n", *termType)
		fallthrough
	case "PLAIN":
		trm = plainterm.NewPlainTerminal(nil, nil)
	case "COLOR":
		// the colour terminal requires a real terminal for input
		if term.IsTerminal(int(os.Stdin.Fd())) {
			trm = &colorterm.ColorTerminal{}
		} else {
			trm = plainterm.NewPlainTerminal(nil, nil)
		}
	}

	// console output is redirected to the debugger once it has been created
	m, err := newMachine(uint32(prf.MemSize.Get().(int)), boot, io.Discard)
	if err != nil {
		return err
	}
	defer m.Close()

	eng := debugger.NewEngine(m)
	dbg := debugger.NewDebugger(eng, trm, prf)

	for _, d := range m.Devices() {
		if con, ok := d.(*console.Console); ok {
			con.SetOutput(dbg.MachineOutput())
		}
	}

	// ctrl-c is handled by the debugger
	return dbg.Start(context.Background())
}

func disasm(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	origin := md.AddUint32("origin", 0, "address of the first byte of the image")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	boot, err := bootImage(md)
	if err != nil {
		return err
	}

	img := image{origin: *origin, data: boot}
	seq, err := disassembly.Disassemble(img, nil, *origin, *origin+uint32(len(boot)&^0x03))
	if err != nil {
		return err
	}

	return seq.Write(output)
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	steps := md.AddInt("steps", 0, "number of instructions to execute (0 runs until a breakpoint)")
	cmdPrefs := md.AddString("prefs", "", "preferences to apply for this session (key::value; key::value)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *cmdPrefs != "" {
		prefs.PushCommandLineStack(*cmdPrefs)
	}

	boot, err := bootImage(md)
	if err != nil {
		return err
	}

	prf, err := debugger.NewPreferences()
	if err != nil {
		return err
	}

	m, err := newMachine(uint32(prf.MemSize.Get().(int)), boot, output)
	if err != nil {
		return err
	}
	defer m.Close()

	eng := debugger.NewEngine(m)
	eng.SetCycle(prf.Steps.Get().(int))

	// ctrl-c stops execution and the registers are printed as normal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var res debugger.Result
	if *steps > 0 {
		res, err = eng.StepCount(ctx, *steps)
	} else {
		res, err = eng.Continue(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(output, res.String())
	writeRegisters(output, m.Registers(), m.PSR())

	return nil
}

func writeRegisters(output io.Writer, regs [core.NumRegisters]uint32, psr uint32) {
	for i, v := range regs {
		fmt.Fprintf(output, "%-3s %08x", core.RegisterName(i), v)
		if i%4 == 3 {
			fmt.Fprintln(output)
		} else {
			fmt.Fprint(output, "  ")
		}
	}
	fmt.Fprintf(output, "mode %s  flags %s\n", core.Mode(psr&0x03), core.PSRString(psr))
}

// image implements the disassembly.WordReader interface for a boot image
// that has not been loaded into a machine.
type image struct {
	origin uint32
	data   []byte
}

func (img image) ReadWord(address uint32) (uint32, error) {
	if address < img.origin || uint64(address-img.origin)+4 > uint64(len(img.data)) {
		return 0, fmt.Errorf("address %#08x is outside the image", address)
	}
	return binary.LittleEndian.Uint32(img.data[address-img.origin:]), nil
}
