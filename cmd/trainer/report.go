// cmd/trainer/report.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mmp/atctrainer/math"
	"github.com/mmp/atctrainer/nav"
	"github.com/mmp/atctrainer/rand"
	"github.com/mmp/atctrainer/sim"
	"github.com/mmp/atctrainer/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/iancoleman/orderedmap"
)

var (
	reportHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	reportRowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	reportDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	reportGoodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

// spawnRandomArrivals adds n arrivals south of the airport, each flying
// toward the extended centerline and cleared for the approach.
func spawnRandomArrivals(s *sim.Sim, n int, seed int64) {
	r := util.Select(seed != 0, rand.MakeSeeded(seed), rand.Make())

	for range n {
		brg := 150 + 60*r.Float64()
		req := sim.SpawnRequest{
			RangeNm:    12 + 18*r.Float64(),
			BearingDeg: brg,
			Heading:    util.Ptr(util.Select(brg < 180, 270., 90.)),
		}
		cs, err := s.Spawn(req)
		if err != nil {
			continue
		}
		s.IssueApproachClearance(cs)
	}
}

// runHeadless ticks the simulation through d of simulated time as fast
// as possible and returns a summary of what happened.
func runHeadless(s *sim.Sim, sub *sim.EventsSubscription, d time.Duration) *orderedmap.OrderedMap {
	start := s.GetState()
	ticks := int(d / (sim.TickSeconds * time.Second))

	var landed []string
	counts := make(map[string]int)
	for range ticks {
		s.Tick()
		for _, ev := range sub.Get() {
			counts[ev.Type.String()]++
			if ev.Type == sim.LandedEvent {
				landed = append(landed, ev.Callsign)
			}
		}
	}
	end := s.GetState()

	events := orderedmap.New()
	for _, k := range util.SortedMapKeys(counts) {
		events.Set(k, counts[k])
	}

	summary := orderedmap.New()
	summary.Set("session", end.Session)
	summary.Set("start_time", start.SimTime.Format(time.RFC3339))
	summary.Set("end_time", end.SimTime.Format(time.RFC3339))
	summary.Set("ticks", ticks)
	summary.Set("initial_aircraft", len(start.Aircraft))
	summary.Set("landed", util.Select(landed == nil, []string{}, landed))
	summary.Set("remaining", util.MapSlice(end.Aircraft, func(ac nav.Aircraft) string { return ac.Callsign }))
	summary.Set("events", events)
	return summary
}

// printSummary writes the JSON summary followed by a table of the
// aircraft still in the air.
func printSummary(w io.Writer, summary *orderedmap.OrderedMap, acs []nav.Aircraft) error {
	summary.SetEscapeHTML(false)
	b, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, string(b)); err != nil {
		return err
	}

	_, err = fmt.Fprint(w, renderAircraftTable(acs))
	return err
}

const aircraftTableHeader = "CALLSIGN  TYPE  SQ   RANGE  BRG  HDG  IAS  ALT  STATE"

func renderAircraftRow(ac nav.Aircraft, m *nav.Model) string {
	return fmt.Sprintf("%-8s  %-4s  %-3s  %5.1f  %s  %s  %3.0f  %03d  %s",
		ac.Callsign, ac.Type, ac.Squawk, ac.Position.RangeNm, math.FormatHeading(ac.Position.BearingDeg),
		math.FormatHeading(ac.Heading), ac.IAS, ac.Altitude, m.InterceptState(ac))
}

func renderAircraftTable(acs []nav.Aircraft) string {
	var sb strings.Builder
	sb.WriteString(reportHeaderStyle.Render(aircraftTableHeader) + "\n")
	if len(acs) == 0 {
		sb.WriteString(reportDimStyle.Render("no aircraft") + "\n")
		return sb.String()
	}

	m := nav.DefaultModel()
	for _, ac := range acs {
		style := util.Select(m.InterceptState(ac) == nav.Established, reportGoodStyle, reportRowStyle)
		sb.WriteString(style.Render(renderAircraftRow(ac, m)) + "\n")
	}
	return sb.String()
}

// renderReplay formats every nth frame of a recording, plus the final
// one, for printing.
func renderReplay(frames []sim.Frame, every int) string {
	every = max(every, 1)

	var sb strings.Builder
	for i, f := range frames {
		if i%every != 0 && i != len(frames)-1 {
			continue
		}
		sb.WriteString(reportDimStyle.Render(fmt.Sprintf("frame %d  %s", i, f.SimTime.Format(time.TimeOnly))) + "\n")
		sb.WriteString(renderAircraftTable(f.Aircraft))
	}
	return sb.String()
}

func replay(fn string, every int) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	frames, err := sim.ReadRecording(f)
	if err != nil {
		return err
	}
	fmt.Print(renderReplay(frames, every))
	return nil
}
