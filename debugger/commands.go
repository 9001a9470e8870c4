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

package debugger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/davecgh/go-spew/spew"
	"github.com/jetsetilly/armv2dbg/curated"
	"github.com/jetsetilly/armv2dbg/debugger/script"
	"github.com/jetsetilly/armv2dbg/debugger/terminal"
	"github.com/jetsetilly/armv2dbg/hardware/core"
	"github.com/jetsetilly/armv2dbg/logger"
	"github.com/jetsetilly/armv2dbg/paths"
	shellwords "github.com/mattn/go-shellwords"
)

// Sentinel errors returned by commands.
const (
	UnknownCommand   = "debugger: unknown command (%s)"
	CommandArguments = "debugger: wrong number of arguments (%s)"
	CommandError     = "debugger: %v"
	InvalidNumber    = "debugger: invalid number (%s)"
	InvalidRegister  = "debugger: invalid register (%s)"
	NoKeyboard       = "debugger: no keyboard device"
)

// check the number of arguments for the command.
func checkArgs(cmd string, args []string, min int, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return usageError(cmd)
	}
	return nil
}

func usageError(cmd string) error {
	usage, _, _ := strings.Cut(help[cmd], "\n")
	return curated.Errorf(CommandArguments, usage)
}

// parseNumber accepts decimal numbers and hexadecimal numbers with a 0x
// prefix.
func parseNumber(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, curated.Errorf(InvalidNumber, s)
	}
	return uint32(n), nil
}

func parseCount(s string) (int, error) {
	n, err := parseNumber(s)
	if err != nil || n == 0 {
		return 0, curated.Errorf(InvalidNumber, s)
	}
	return int(n), nil
}

func parseRegister(s string) (int, error) {
	switch strings.ToUpper(s) {
	case "SP":
		return core.SP, nil
	case "LR":
		return core.LR, nil
	case "PC":
		return core.PC, nil
	}
	if len(s) > 1 && (s[0] == 'R' || s[0] == 'r') {
		n, err := strconv.Atoi(s[1:])
		if err == nil && n >= 0 && n < core.NumRegisters {
			return n, nil
		}
	}
	return 0, curated.Errorf(InvalidRegister, s)
}

// parseCommand tokenises the input and acts upon the command. Empty input is
// ignored.
func (dbg *Debugger) parseCommand(ctx context.Context, input string) error {
	tokens, err := shellwords.Parse(input)
	if err != nil {
		return curated.Errorf(CommandError, err)
	}
	if len(tokens) == 0 {
		return nil
	}

	cmd := strings.ToUpper(tokens[0])
	args := tokens[1:]

	if _, ok := help[cmd]; !ok {
		return curated.Errorf(UnknownCommand, tokens[0])
	}

	switch cmd {
	case cmdStep:
		if err := checkArgs(cmd, args, 0, 1); err != nil {
			return err
		}
		n := 1
		if len(args) == 1 {
			n, err = parseCount(args[0])
			if err != nil {
				return err
			}
		}
		res, err := dbg.step(ctx, n)
		if err != nil {
			return err
		}
		dbg.printResult(res)

	case cmdContinue:
		if err := checkArgs(cmd, args, 0, 1); err != nil {
			return err
		}
		if len(args) == 1 {
			if strings.ToUpper(args[0]) != "BG" {
				return usageError(cmd)
			}
			return dbg.contBackground(ctx)
		}
		res, err := dbg.cont(ctx)
		if err != nil {
			return err
		}
		dbg.printResult(res)

	case cmdStop:
		if err := checkArgs(cmd, args, 0, 0); err != nil {
			return err
		}
		if !dbg.running() {
			dbg.printLine(terminal.StyleFeedback, "engine is not running")
			return nil
		}
		dbg.stop()

	case cmdReset:
		if err := checkArgs(cmd, args, 0, 0); err != nil {
			return err
		}
		if err := dbg.reset(); err != nil {
			return err
		}
		dbg.printInstruction(dbg.eng.Machine().Register(core.PC))

	case cmdBreak, cmdClear, cmdToggle:
		if err := checkArgs(cmd, args, 1, 1); err != nil {
			return err
		}
		return dbg.breakpointCommand(cmd, args[0])

	case cmdList:
		if err := checkArgs(cmd, args, 0, 0); err != nil {
			return err
		}
		bps := dbg.eng.Breakpoints()
		if len(bps) == 0 {
			dbg.printLine(terminal.StyleFeedback, "no breakpoints")
			return nil
		}
		for _, a := range bps {
			dbg.printInstruction(a)
		}

	case cmdRegs:
		if err := checkArgs(cmd, args, 0, 0); err != nil {
			return err
		}
		dbg.printRegisters()

	case cmdSet:
		if err := checkArgs(cmd, args, 2, 2); err != nil {
			return err
		}
		if dbg.running() {
			return curated.Errorf(EngineRunning)
		}
		r, err := parseRegister(args[0])
		if err != nil {
			return err
		}
		v, err := parseNumber(args[1])
		if err != nil {
			return err
		}
		dbg.eng.Machine().SetRegister(r, v)
		dbg.printLine(terminal.StyleFeedback, "%s = %#08x", core.RegisterName(r), v)

	case cmdMem:
		if err := checkArgs(cmd, args, 1, 2); err != nil {
			return err
		}
		address, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		lines := dbg.prefs.MemLines.Get().(int)
		if len(args) == 2 {
			lines, err = parseCount(args[1])
			if err != nil {
				return err
			}
		}
		return dbg.printMemory(address, lines)

	case cmdPoke:
		if err := checkArgs(cmd, args, 2, 2); err != nil {
			return err
		}
		address, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		v, err := parseNumber(args[1])
		if err != nil {
			return err
		}
		if dbg.eng.HasBreakpoint(address &^ 0x03) {
			return curated.Errorf(CommandError, "cannot poke an address with a breakpoint")
		}
		if err := dbg.eng.Machine().WriteWord(address, v); err != nil {
			return err
		}
		dbg.printInstruction(address)

	case cmdDisasm:
		if err := checkArgs(cmd, args, 0, 2); err != nil {
			return err
		}
		address := dbg.eng.Machine().Register(core.PC)
		count := dbg.prefs.CodeLines.Get().(int)
		if len(args) >= 1 {
			address, err = parseNumber(args[0])
			if err != nil {
				return err
			}
		}
		if len(args) == 2 {
			count, err = parseCount(args[1])
			if err != nil {
				return err
			}
		}
		seq, err := dbg.eng.Disassemble(address, address+uint32(count)*4)
		if err != nil {
			return err
		}
		return seq.Write(dbg.printStyle(terminal.StyleCode))

	case cmdType:
		if err := checkArgs(cmd, args, 1, -1); err != nil {
			return err
		}
		return dbg.typeText(strings.Join(args, " ") + "\n")

	case cmdScript:
		if err := checkArgs(cmd, args, 1, 2); err != nil {
			return err
		}
		return dbg.scriptCommand(ctx, args)

	case cmdDump:
		if err := checkArgs(cmd, args, 0, 0); err != nil {
			return err
		}
		cfg := spew.ConfigState{Indent: "  ", SortKeys: true}
		cfg.Fdump(dbg.printStyle(terminal.StyleFeedback), dbg.snapshot())

	case cmdGraph:
		if err := checkArgs(cmd, args, 0, 1); err != nil {
			return err
		}
		fn := paths.UniqueFilename("graph", "", "dot")
		if len(args) == 1 {
			fn = args[0]
		}
		f, err := os.Create(fn)
		if err != nil {
			return curated.Errorf(CommandError, err)
		}
		memviz.Map(f, dbg.snapshot())
		if err := f.Close(); err != nil {
			return curated.Errorf(CommandError, err)
		}
		dbg.printLine(terminal.StyleFeedback, "graph written to %s", fn)

	case cmdLog:
		if err := checkArgs(cmd, args, 0, 1); err != nil {
			return err
		}
		w := dbg.printStyle(terminal.StyleFeedback)
		if len(args) == 0 {
			logger.Write(w)
			return nil
		}
		if strings.ToUpper(args[0]) == "CLEAR" {
			logger.Clear()
			return nil
		}
		n, err := parseCount(args[0])
		if err != nil {
			return err
		}
		logger.Tail(w, n)

	case cmdPrefs:
		return dbg.prefsCommand(args)

	case cmdView:
		if err := checkArgs(cmd, args, 0, 0); err != nil {
			return err
		}
		dbg.newViewSet().render()

	case cmdKeys:
		if err := checkArgs(cmd, args, 0, 0); err != nil {
			return err
		}
		return dbg.keys(ctx)

	case cmdHelp:
		if err := checkArgs(cmd, args, 0, 1); err != nil {
			return err
		}
		if len(args) == 0 {
			for _, c := range commandList {
				usage, _, _ := strings.Cut(help[c], "\n")
				dbg.printLine(terminal.StyleHelp, usage)
			}
			return nil
		}
		txt, ok := help[strings.ToUpper(args[0])]
		if !ok {
			return curated.Errorf(UnknownCommand, args[0])
		}
		dbg.printLine(terminal.StyleHelp, txt)

	case cmdQuit:
		if err := checkArgs(cmd, args, 0, 0); err != nil {
			return err
		}
		dbg.out.rollback()
		dbg.quit = true
	}

	return nil
}

func (dbg *Debugger) breakpointCommand(cmd string, arg string) error {
	if cmd == cmdClear && strings.ToUpper(arg) == "ALL" {
		for _, a := range dbg.eng.Breakpoints() {
			if err := dbg.eng.RemoveBreakpoint(a); err != nil {
				return err
			}
		}
		dbg.printLine(terminal.StyleFeedback, "breakpoints cleared")
		return nil
	}

	address, err := parseNumber(arg)
	if err != nil {
		return err
	}

	switch cmd {
	case cmdBreak:
		err = dbg.eng.AddBreakpoint(address)
	case cmdClear:
		err = dbg.eng.RemoveBreakpoint(address)
	case cmdToggle:
		err = dbg.eng.ToggleBreakpoint(address)
	}
	if err != nil {
		return err
	}

	if dbg.eng.HasBreakpoint(address) {
		dbg.printLine(terminal.StyleFeedback, "breakpoint at %#08x", address)
	} else {
		dbg.printLine(terminal.StyleFeedback, "no breakpoint at %#08x", address)
	}
	return nil
}

func (dbg *Debugger) printRegisters() {
	m := dbg.eng.Machine()
	regs := m.Registers()

	s := strings.Builder{}
	for i, v := range regs {
		fmt.Fprintf(&s, "%-3s %08x", core.RegisterName(i), v)
		if i%4 == 3 {
			s.WriteString("\n")
		} else {
			s.WriteString("  ")
		}
	}
	fmt.Fprintf(&s, "mode %s  flags %s", m.Mode(), core.PSRString(m.PSR()))
	dbg.printLine(terminal.StyleFeedback, s.String())
}

func (dbg *Debugger) printMemory(address uint32, lines int) error {
	m := dbg.eng.Machine()
	for i := 0; i < lines; i++ {
		a := address + uint32(i*16)
		data, err := m.ReadBytes(a, 16)
		if len(data) == 0 && err != nil {
			if i == 0 {
				return err
			}
			return nil
		}

		s := strings.Builder{}
		fmt.Fprintf(&s, "%08x:", a)
		for j := 0; j < 16; j++ {
			if j < len(data) {
				fmt.Fprintf(&s, " %02x", data[j])
			} else {
				s.WriteString(" ??")
			}
		}
		dbg.printLine(terminal.StyleFeedback, s.String())

		if err != nil {
			return nil
		}
	}
	return nil
}

// push text to any device that accepts key presses.
func (dbg *Debugger) typeText(text string) error {
	type keyboard interface {
		Push(key byte)
	}

	var found bool
	for _, d := range dbg.eng.Machine().Devices() {
		if kb, ok := d.(keyboard); ok {
			found = true
			for i := 0; i < len(text); i++ {
				kb.Push(text[i])
			}
		}
	}
	if !found {
		return curated.Errorf(NoKeyboard)
	}
	return nil
}

func (dbg *Debugger) scriptCommand(ctx context.Context, args []string) error {
	switch strings.ToUpper(args[0]) {
	case "RECORD":
		if len(args) != 2 {
			return usageError(cmdScript)
		}
		if err := dbg.out.startRecording(args[1]); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "recording to %s", args[1])
		return nil
	case "END":
		fn, err := dbg.out.endRecording()
		if err != nil {
			return err
		}
		if fn == "" {
			dbg.printLine(terminal.StyleFeedback, "not recording")
		} else {
			dbg.printLine(terminal.StyleFeedback, "recording ended (%s)", fn)
		}
		return nil
	}

	if len(args) != 1 {
		return usageError(cmdScript)
	}
	fn := args[0]

	if strings.ToLower(filepath.Ext(fn)) == ".lua" {
		f, err := os.Open(fn)
		if err != nil {
			return curated.Errorf(CommandError, err)
		}
		defer f.Close()

		sd := scriptDebugger{Machine: dbg.eng.Machine(), dbg: dbg}
		return script.RunLua(ctx, sd, dbg.printStyle(terminal.StyleFeedback), fn, f)
	}

	rsc, err := script.RescribeScript(fn)
	if err != nil {
		return err
	}

	dbg.out.startPlayback()
	defer dbg.out.endPlayback()

	return dbg.inputLoop(ctx, rsc)
}

func (dbg *Debugger) prefsCommand(args []string) error {
	if len(args) == 0 {
		dbg.printLine(terminal.StyleFeedback, dbg.prefs.String())
		return nil
	}

	switch strings.ToUpper(args[0]) {
	case "SET":
		if len(args) != 3 {
			return usageError(cmdPrefs)
		}
		if err := dbg.prefs.Set(args[1], args[2]); err != nil {
			return curated.Errorf(CommandError, err)
		}
	case "SAVE":
		if err := dbg.prefs.Save(); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "preferences saved")
	case "LOAD":
		if err := dbg.prefs.Load(); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "preferences loaded")
	default:
		return usageError(cmdPrefs)
	}
	return nil
}

// snapshot is the state of the machine and the engine used by the DUMP and
// GRAPH commands.
type snapshot struct {
	Registers   [core.NumRegisters]uint32
	PSR         uint32
	Mode        core.Mode
	Breakpoints map[uint32]uint32
	Executed    uint64
	Devices     []uint32
}

func (dbg *Debugger) snapshot() *snapshot {
	m := dbg.eng.Machine()
	s := &snapshot{
		Registers:   m.Registers(),
		PSR:         m.PSR(),
		Mode:        m.Mode(),
		Breakpoints: make(map[uint32]uint32),
		Executed:    m.Executed(),
	}
	for _, a := range dbg.eng.Breakpoints() {
		s.Breakpoints[a], _ = dbg.eng.Shadowed(a)
	}
	for _, d := range m.Devices() {
		s.Devices = append(s.Devices, d.ID())
	}
	return s
}
