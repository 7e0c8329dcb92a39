// cmd/trainer/report_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/mmp/atctrainer/math"
	"github.com/mmp/atctrainer/nav"
	"github.com/mmp/atctrainer/sim"
	"github.com/mmp/atctrainer/util"
)

func TestRunHeadless(t *testing.T) {
	s, es := makeTestSim(t)
	sub := es.Subscribe()

	cs, err := s.Spawn(sim.SpawnRequest{RangeNm: 6, BearingDeg: 180, Heading: util.Ptr(360.)})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.IssueApproachClearance(cs); err != nil {
		t.Fatal(err)
	}
	other, err := s.Spawn(sim.SpawnRequest{RangeNm: 15, BearingDeg: 90, Heading: util.Ptr(90.)})
	if err != nil {
		t.Fatal(err)
	}

	summary := runHeadless(s, sub, 5*time.Minute)

	if v, _ := summary.Get("ticks"); v != 75 {
		t.Errorf("got %v ticks, expected 75", v)
	}
	if v, _ := summary.Get("end_time"); v != "2025-06-01T12:05:00Z" {
		t.Errorf("got end time %v", v)
	}
	if v, _ := summary.Get("landed"); !slices.Equal(v.([]string), []string{cs}) {
		t.Errorf("got landed %v, expected [%s]", v, cs)
	}
	if v, _ := summary.Get("remaining"); !slices.Equal(v.([]string), []string{other}) {
		t.Errorf("got remaining %v, expected [%s]", v, other)
	}

	var buf bytes.Buffer
	if err := printSummary(&buf, summary, s.GetState().Aircraft); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	// The JSON comes first with keys in insertion order.
	var decoded map[string]any
	end := strings.Index(out, "\n}\n") + 2
	if err := json.Unmarshal([]byte(out[:end]), &decoded); err != nil {
		t.Fatalf("unable to decode summary %q: %v", out, err)
	}
	if strings.Index(out, `"start_time"`) > strings.Index(out, `"events"`) {
		t.Errorf("summary keys out of order:\n%s", out)
	}
	if !strings.Contains(out[end:], other) {
		t.Errorf("remaining aircraft %s missing from the table:\n%s", other, out[end:])
	}
}

func TestSpawnRandomArrivals(t *testing.T) {
	s, _ := makeTestSim(t)
	spawnRandomArrivals(s, 6, 42)

	acs := s.GetState().Aircraft
	if len(acs) != 6 {
		t.Fatalf("got %d aircraft, expected 6", len(acs))
	}
	for _, ac := range acs {
		if !ac.Approaching {
			t.Errorf("%s not cleared for the approach", ac.Callsign)
		}
		if ac.Position.BearingDeg < 150 || ac.Position.BearingDeg > 210 {
			t.Errorf("%s spawned at %s, expected south of the airport", ac.Callsign, ac.Position)
		}
		if ac.Position.RangeNm < 12 || ac.Position.RangeNm > 30 {
			t.Errorf("%s spawned at %s, expected 12-30nm out", ac.Callsign, ac.Position)
		}
		// Every arrival is pointed at the extended centerline.
		toward := util.Select(ac.Position.LateralOffset() > 0, 270., 90.)
		if ac.Heading != toward {
			t.Errorf("%s heading %s, expected %s", ac.Callsign, math.FormatHeading(ac.Heading),
				math.FormatHeading(toward))
		}
	}
}

func TestRenderAircraftRow(t *testing.T) {
	ac := nav.Aircraft{
		Callsign: "JAL123",
		Type:     "B738",
		Squawk:   "042",
		Position: math.Polar{RangeNm: 12.34, BearingDeg: 180},
		Heading:  360,
		IAS:      180,
		Altitude: 30,
	}
	row := renderAircraftRow(ac, nav.DefaultModel())
	for _, s := range []string{"JAL123", "B738", "042", "12.3", "180", "360", "030", "NotCleared"} {
		if !strings.Contains(row, s) {
			t.Errorf("%q missing from row %q", s, row)
		}
	}
}

func TestRenderReplay(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ac := nav.Aircraft{Callsign: "UAL1", Type: "A320", Position: math.Polar{RangeNm: 10, BearingDeg: 90}}

	var frames []sim.Frame
	for i := range 5 {
		frames = append(frames, sim.Frame{
			SimTime:  start.Add(time.Duration(i*sim.TickSeconds) * time.Second),
			Aircraft: []nav.Aircraft{ac},
		})
	}

	for _, tc := range []struct {
		every    int
		expected int
	}{
		{every: 1, expected: 5},
		{every: 2, expected: 3}, // 0, 2, 4
		{every: 3, expected: 3}, // 0, 3, and the last
		{every: 0, expected: 5},
		{every: 100, expected: 2},
	} {
		out := renderReplay(frames, tc.every)
		if n := strings.Count(out, "frame "); n != tc.expected {
			t.Errorf("every %d: got %d frames, expected %d", tc.every, n, tc.expected)
		}
	}

	if out := renderReplay(nil, 1); out != "" {
		t.Errorf("empty recording rendered %q", out)
	}
	if out := renderAircraftTable(nil); !strings.Contains(out, "no aircraft") {
		t.Errorf("empty table rendered %q", out)
	}
}
