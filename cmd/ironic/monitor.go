/*
 Interactive monitor console

 Copyright 2026, ironic-sub000 contributors

 Permission is hereby granted, free of charge, to any person obtaining a
 copy of this software and associated documentation files (the "Software"),
 to deal in the Software without restriction, including without limitation
 the rights to use, copy, modify, merge, publish, distribute, sublicense,
 and/or sell copies of the Software, and to permit persons to whom the
 Software is furnished to do so, subject to the following conditions:

 The above copyright notice and this permission notice shall be included in
 all copies or substantial portions of the Software.

 THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN
 ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/peterh/liner"

	"github.com/eigenform/ironic-sub000/emu/core"
	"github.com/eigenform/ironic-sub000/emu/cpu"
)

var monitorCommands = []string{"start", "stop", "status", "quit", "help"}

// runMonitor reads commands from an interactive liner console until the
// user quits or aborts.
func runMonitor(rn *core.Runner) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		var out []string
		for _, c := range monitorCommands {
			if strings.HasPrefix(c, partial) {
				out = append(out, c)
			}
		}
		return out
	})

	started := false
	for {
		input, err := line.Prompt("ironic> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("monitor: error reading line", "err", err)
			return
		}
		line.AppendHistory(input)

		switch strings.TrimSpace(input) {
		case "start":
			if started {
				fmt.Println("already running")
				continue
			}
			rn.Start()
			started = true
		case "stop":
			if !started {
				fmt.Println("not running")
				continue
			}
			rn.Stop()
			started = false
		case "status":
			fmt.Printf("boot stage: %s, pc: %#08x\n", rn.Cpu.Boot, rn.Cpu.Regs.Read(cpu.Pc))
		case "quit", "exit":
			if started {
				rn.Stop()
			}
			return
		case "help", "":
			fmt.Println("commands: start stop status quit")
		default:
			fmt.Printf("unknown command %q\n", input)
		}
	}
}
