// sim/parse_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
	"testing"

	"github.com/mmp/atctrainer/nav"
)

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		message string
		err     error
	}{
		{name: "Heading", cmd: "JAL123 H90"},
		{name: "LowerCase", cmd: "jal123 h360 a50"},
		{name: "Approach", cmd: "JAL123 C"},
		{name: "Several", cmd: "JAL123 H270 A40 C"},
		{name: "Delete", cmd: "JAL123 X"},
		{name: "Spawn", cmd: "SPAWN 20 180"},
		{name: "SpawnHeading", cmd: "spawn 20 180 360"},
		{name: "Measure", cmd: "MEASURE 10 90 10 270", message: "20.0nm 270"},
		{name: "MeasureNorth", cmd: "MEASURE 0 0 5 0", message: "5.0nm 360"},
		{name: "Rate", cmd: "RATE 2"},
		{name: "Pause", cmd: "P"},
		{name: "Reset", cmd: "RESET"},
		{name: "Empty", cmd: "   ", err: ErrInvalidCommand},
		{name: "NoCommand", cmd: "JAL123", err: ErrInvalidCommand},
		{name: "UnknownCommand", cmd: "JAL123 Q", err: ErrInvalidCommand},
		{name: "BadHeading", cmd: "JAL123 HXYZ", err: ErrInvalidCommand},
		{name: "BadAltitude", cmd: "JAL123 A999", err: nav.ErrInvalidAltitude},
		{name: "UnknownAircraft", cmd: "ANA999 H90", err: ErrNoMatchingAircraft},
		{name: "BadRate", cmd: "RATE 3", err: ErrInvalidSimRate},
		{name: "RateNaN", cmd: "RATE NAN", err: ErrInvalidCommand},
		{name: "SpawnArgs", cmd: "SPAWN 20", err: ErrInvalidCommand},
		{name: "SpawnInf", cmd: "SPAWN INF 20", err: ErrInvalidCommand},
		{name: "MeasureArgs", cmd: "MEASURE 1 2 3", err: ErrInvalidCommand},
		{name: "PauseArgs", cmd: "P 1", err: ErrInvalidCommand},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _ := makeTestSim(t, NewSimConfig{})
			mustSpawn(t, s, SpawnRequest{RangeNm: 20, BearingDeg: 90, Callsign: "JAL123"})

			msg, err := s.RunCommand(test.cmd)
			if !errors.Is(err, test.err) {
				t.Errorf("got error %v, expected %v", err, test.err)
			}
			if test.message != "" && msg != test.message {
				t.Errorf("got message %q, expected %q", msg, test.message)
			}
		})
	}
}

func TestRunCommandEffects(t *testing.T) {
	s, _ := makeTestSim(t, NewSimConfig{})
	mustSpawn(t, s, SpawnRequest{RangeNm: 20, BearingDeg: 90, Callsign: "JAL123"})

	if _, err := s.RunCommand("jal123 h0 a40 c"); err != nil {
		t.Fatal(err)
	}
	ac, _ := s.Aircraft("JAL123")
	if ac.Command.Heading == nil || *ac.Command.Heading != 0 || ac.Command.Altitude == nil ||
		*ac.Command.Altitude != 40 || !ac.Approaching {
		t.Errorf("commands not applied: %s", ac.Summary())
	}

	h := s.GetState().History
	if len(h) != 4 || h[2].Action != "HDG 360" || h[1].Action != "ALT 040" || h[0].Action != "APPROACH" {
		t.Errorf("unexpected history %+v", h)
	}

	cs, err := s.RunCommand("SPAWN 15 45")
	if err != nil {
		t.Fatal(err)
	}
	if ac, ok := s.Aircraft(cs); !ok || ac.Heading != 45 {
		t.Errorf("SPAWN returned %q; aircraft %s", cs, ac.Summary())
	}

	if _, err := s.RunCommand("RATE 0.5"); err != nil || s.GetState().SimRate != 0.5 {
		t.Errorf("RATE 0.5 failed: %v", err)
	}
	if _, err := s.RunCommand("P"); err != nil || !s.GetState().Paused {
		t.Errorf("P didn't pause: %v", err)
	}

	// Execution stops at the first failing command.
	if _, err := s.RunCommand("JAL123 H90 Q A60"); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("got %v, expected ErrInvalidCommand", err)
	}
	ac, _ = s.Aircraft("JAL123")
	if *ac.Command.Heading != 90 || *ac.Command.Altitude != 40 {
		t.Errorf("unexpected commands after partial failure: %s", ac.Summary())
	}
}
