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

const (
	cmdStep     = "STEP"
	cmdContinue = "CONTINUE"
	cmdStop     = "STOP"
	cmdReset    = "RESET"

	cmdBreak  = "BREAK"
	cmdClear  = "CLEAR"
	cmdToggle = "TOGGLE"
	cmdList   = "LIST"

	cmdRegs   = "REGS"
	cmdSet    = "SET"
	cmdMem    = "MEM"
	cmdPoke   = "POKE"
	cmdDisasm = "DISASM"
	cmdType   = "TYPE"

	cmdScript = "SCRIPT"
	cmdDump   = "DUMP"
	cmdGraph  = "GRAPH"
	cmdLog    = "LOG"
	cmdPrefs  = "PREFS"

	cmdView = "VIEW"
	cmdKeys = "KEYS"

	cmdHelp = "HELP"
	cmdQuit = "QUIT"
)

// the order in which commands are listed by the HELP command
var commandList = []string{
	cmdStep, cmdContinue, cmdStop, cmdReset,
	cmdBreak, cmdClear, cmdToggle, cmdList,
	cmdRegs, cmdSet, cmdMem, cmdPoke, cmdDisasm, cmdType,
	cmdScript, cmdDump, cmdGraph, cmdLog, cmdPrefs,
	cmdView, cmdKeys,
	cmdHelp, cmdQuit,
}

// help contains the help text for the debugger's commands.
var help = map[string]string{
	cmdStep:     "STEP [n]\nExecute n instructions (default 1). A breakpoint at the current address is stepped over",
	cmdContinue: "CONTINUE [BG]\nRun until a breakpoint is hit. Interrupt with Ctrl-C. With BG the machine runs in the background until STOP",
	cmdStop:     "STOP\nStop a CONTINUE running in the background",
	cmdReset:    "RESET\nReset the core. Memory and breakpoints are preserved",

	cmdBreak:  "BREAK addr\nAdd a breakpoint. The address must be word aligned",
	cmdClear:  "CLEAR addr|ALL\nRemove a breakpoint or all breakpoints",
	cmdToggle: "TOGGLE addr\nAdd a breakpoint if there is none at the address, otherwise remove it",
	cmdList:   "LIST\nList breakpoints",

	cmdRegs:   "REGS\nDisplay the registers, the processor mode and the flags",
	cmdSet:    "SET reg value\nSet a register. Registers are R0 to R15, SP, LR and PC",
	cmdMem:    "MEM addr [lines]\nDisplay memory. Sixteen bytes are shown on each line",
	cmdPoke:   "POKE addr value\nWrite a word to memory. The address must be word aligned",
	cmdDisasm: "DISASM [addr [count]]\nDisassemble count instructions from addr. Defaults to the current address",
	cmdType:   "TYPE text\nPush the text to the keyboard device",

	cmdScript: "SCRIPT file|RECORD file|END\nRun a Lua (.lua) or command script. RECORD starts recording commands to a new command script and END stops recording",
	cmdDump:   "DUMP\nDump the state of the machine",
	cmdGraph:  "GRAPH [file]\nWrite a graph of the debugger state to a dot file",
	cmdLog:    "LOG [n|CLEAR]\nDisplay the most recent n log entries (default all) or clear the log",
	cmdPrefs:  "PREFS [SET key value|SAVE|LOAD]\nDisplay or change preferences",

	cmdView: "VIEW\nDisplay the code, state, memory and help views",
	cmdKeys: "KEYS\nControl the debugger with single key presses. Press q to return to the command line",

	cmdHelp: "HELP [command]\nList commands or display help for a command",
	cmdQuit: "QUIT\nExit the debugger",
}
