// cmd/trainer/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// initializes the system and then either runs the radar scope or one of
// the command-line modes.

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/mmp/atctrainer/log"
	"github.com/mmp/atctrainer/nav"
	"github.com/mmp/atctrainer/sim"

	"github.com/apenwarr/fixconsole"
	"github.com/gdamore/tcell/v2"
	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

var (
	logLevel         = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir           = flag.String("logdir", "", "log file directory")
	simRate          = flag.Float64("rate", 0, "sim rate multiplier: 0.5, 1, 2, or 5 (default: saved setting)")
	scopeRange       = flag.Float64("range", 0, "scope range in nm: 20 or 50 (default: saved setting)")
	scenarioFilename = flag.String("scenario", "", "filename of JSON file with a scenario definition")
	seed             = flag.Int64("seed", 0, "random seed for generated callsigns and traffic (0: scenario seed or time)")
	runSim           = flag.Int("runsim", 0, "run headless for the given number of simulated seconds and print a summary")
	runSimTraffic    = flag.Int("runsim-traffic", 8, "number of random arrivals to spawn for -runsim when there's no scenario")
	recordFilename   = flag.String("record", "", "write a flight recording to the given file")
	replayFilename   = flag.String("replay", "", "print the contents of a flight recording")
	replayEvery      = flag.Int("replay-every", 15, "print every nth frame of a flight recording")
	navLog           = flag.Bool("navlog", false, "enable navigation logging (requires the navlog build tag)")
	navLogCategories = flag.String("navlog-categories", "all", "navigation log categories (comma-separated: state,altitude,speed,heading,approach,command)")
	navLogCallsign   = flag.String("navlog-callsign", "", "filter navigation logs to only show this callsign (empty = show all)")
	resetConfig      = flag.Bool("resetconfig", false, "discard the saved configuration")
	dump             = flag.Bool("dump", false, "dump the configuration and initial simulation state and exit")
)

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		// Not sure this will actually appear, but what else are we going
		// to do...
		fmt.Printf("FixConsole: %v\n", err)
	}

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	nav.InitNavLog(*navLog, *navLogCategories, *navLogCallsign)

	if *replayFilename != "" {
		if err := replay(*replayFilename, *replayEvery); err != nil {
			lg.Errorf("%s: %v", *replayFilename, err)
			fmt.Fprintf(os.Stderr, "%s: %v\n", *replayFilename, err)
			os.Exit(1)
		}
		return
	}

	config, configErr := LoadOrMakeDefaultConfig(lg)
	if configErr != nil {
		lg.Errorf("Configuration file error: %v", configErr)
	}
	if *resetConfig {
		config = getDefaultConfig()
	}
	if *simRate != 0 {
		config.SimRate = *simRate
	}
	if *scopeRange != 0 {
		if !slices.Contains(ScopeRanges, *scopeRange) {
			fmt.Fprintf(os.Stderr, "%g: invalid scope range; must be one of %v\n", *scopeRange, ScopeRanges)
			os.Exit(1)
		}
		config.ScopeRange = *scopeRange
	}
	if *scenarioFilename != "" {
		config.ScenarioFile = *scenarioFilename
	}

	var scenario *sim.Scenario
	if config.ScenarioFile != "" {
		var err error
		if scenario, err = sim.LoadScenarioFile(config.ScenarioFile); err != nil {
			lg.Errorf("%v", err)
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		lg.Infof("%s: loaded scenario %q with %d aircraft", config.ScenarioFile, scenario.Name,
			len(scenario.Aircraft))
	}

	es := sim.NewEventStream(lg)
	defer es.Destroy()

	s, err := sim.NewSim(sim.NewSimConfig{
		Scenario: scenario,
		SimRate:  config.SimRate,
		Seed:     *seed,
	}, es, lg)
	if err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *recordFilename != "" {
		f, err := os.Create(*recordFilename)
		if err != nil {
			lg.Errorf("%v", err)
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		rec, err := sim.NewRecorder(f)
		if err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				lg.Errorf("%s: %v", *recordFilename, err)
			}
			lg.Infof("%s: recorded %d frames", *recordFilename, rec.Frames())
		}()
		s.SetRecorder(rec)
	}

	if *dump {
		godump.Dump(config)
		if scenario != nil {
			godump.Dump(scenario)
		}
		s.Dump(os.Stdout)
	} else if *runSim > 0 {
		sub := es.Subscribe()
		defer sub.Unsubscribe()

		if scenario == nil {
			spawnRandomArrivals(s, *runSimTraffic, *seed)
		}

		startTime := time.Now()
		summary := runHeadless(s, sub, time.Duration(*runSim)*time.Second)
		elapsed := time.Since(startTime)
		summary.Set("wallclock_seconds", elapsed.Seconds())

		if err := printSummary(os.Stdout, summary, s.GetState().Aircraft); err != nil {
			lg.Errorf("%v", err)
		}
	} else {
		if err := runScope(s, es, config, lg); err != nil {
			lg.Errorf("%v", err)
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}

		if err := config.Save(lg); err != nil {
			lg.Errorf("Error saving configuration: %v", err)
		}
	}
}

// runScope runs the interactive scope in the terminal while the
// simulation ticks in the background; it returns when the user quits.
func runScope(s *sim.Sim, es *sim.EventStream, config *Config, lg *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorReset).
		Foreground(tcell.ColorReset))
	screen.EnableMouse()

	scope := NewScope(s, es.Subscribe(), config, lg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer lg.CatchAndReportCrash()
		return s.Run(ctx)
	})
	eg.Go(func() error {
		defer lg.CatchAndReportCrash()
		defer cancel()
		return scope.Run(ctx, screen)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
