/*
 ironic-sub000 - Main process

 Copyright 2026, ironic-sub000 contributors

 Permission is hereby granted, free of charge, to any person obtaining a copy
 of this software and associated documentation files (the "Software"), to deal
 in the Software without restriction, including without limitation the rights
 to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 copies of the Software, and to permit persons to whom the Software is
 furnished to do so, subject to the following conditions:

 The above copyright notice and this permission notice shall be included in
 all copies or substantial portions of the Software.

 THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 SOFTWARE.

*/

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	configparser "github.com/eigenform/ironic-sub000/config/configparser"
	"github.com/eigenform/ironic-sub000/emu/bus"
	"github.com/eigenform/ironic-sub000/emu/core"
	"github.com/eigenform/ironic-sub000/emu/cpu"
	"github.com/eigenform/ironic-sub000/emu/device"
	logger "github.com/eigenform/ironic-sub000/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optRom := getopt.StringLong("rom", 'r', "", "Boot mask ROM image")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Mirror all log levels to stderr")
	optSteps := getopt.StringLong("steps", 's', "0", "Watchdog step bound (0 = unbounded)")
	optPatch := getopt.BoolLong("patch", 'p', "Enable the optional boot-progress hot-patch")
	optMonitor := getopt.BoolLong("monitor", 'm', "Start an interactive monitor console instead of running immediately")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile *os.File
	if *optLogFile != "" {
		var err error
		logFile, err = os.Create(*optLogFile)
		if err != nil {
			slog.Error("opening log file", "err", err)
			os.Exit(1)
		}
	}
	level := new(slog.LevelVar)
	level.Set(slog.LevelDebug)
	handler := logger.NewHandler(logFile, &slog.HandlerOptions{Level: level}, *optDebug)
	slog.SetDefault(slog.New(handler))

	slog.Info("ironic-sub000 starting")

	var cfg *configparser.Config
	if *optConfig != "" {
		var err error
		cfg, err = configparser.Load(*optConfig)
		if err != nil {
			slog.Error("loading configuration file", "err", err)
			os.Exit(1)
		}
	} else {
		cfg = &configparser.Config{}
	}

	romPath := cfg.String("rom", *optRom)

	systemBus, err := bus.New(romPath)
	if err != nil {
		slog.Error("constructing system bus", "err", err)
		os.Exit(1)
	}

	hlwd := device.NewHollywood()
	systemBus.AttachDevice("hlwd", hlwd)
	systemBus.AttachDevice("nand", device.NewNand())
	systemBus.AttachDevice("aes", device.NewAes())
	systemBus.AttachDevice("sha", device.NewSha())
	systemBus.AttachDevice("di", device.NewDi())
	systemBus.AttachDevice("si", device.NewSi())
	systemBus.AttachDevice("exi", device.NewExi())
	systemBus.AttachDevice("ahb", device.NewAhb())
	systemBus.AttachDevice("mi", device.NewMi())
	systemBus.AttachDevice("ddr", device.NewDdr())

	c := cpu.New(systemBus)

	runner := core.NewRunner(c, systemBus, hlwd)
	stepsDefault, err := strconv.ParseUint(*optSteps, 0, 64)
	if err != nil {
		slog.Error("parsing -steps", "err", err)
		os.Exit(1)
	}
	steps, err := cfg.Uint64("max-steps", stepsDefault)
	if err != nil {
		slog.Error("parsing max-steps", "err", err)
		os.Exit(1)
	}
	runner.MaxSteps = steps
	runner.Trace = cfg.String("trace", "") == "on"

	patchEnabled := *optPatch || cfg.String("hot-patch", "") != ""
	if patchEnabled {
		targets, err := cfg.Uint32List("hot-patch")
		if err != nil {
			slog.Error("parsing hot-patch target list", "err", err)
			os.Exit(1)
		}
		core.HotPatchTargets = targets
	}

	if *optMonitor {
		runMonitor(runner)
		slog.Info("ironic-sub000 exiting")
		return
	}

	runner.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down")
	runner.Stop()
	slog.Info("ironic-sub000 exiting")
}
