// nav/nav.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmp/atctrainer/math"

	"github.com/brunoga/deep"
)

// Aircraft is the complete navigational state of a single aircraft on the
// scope. It is a plain value: Advance returns an updated copy rather than
// modifying the one it is given.
type Aircraft struct {
	Callsign string
	Type     string
	Squawk   string

	Position math.Polar
	Heading  float64 // true heading, always in [0,360)
	IAS      float64 // most recent result of the speed law, in knots
	Altitude int     // hundreds of feet

	Command     NavCommand
	Approaching bool
}

// NavCommand holds the controller's pending clearances. Pointers are used
// for optional values; nil -> unset/unspecified.
type NavCommand struct {
	Heading *float64
	// TurnDelay is the number of seconds that must elapse before the
	// aircraft starts turning toward Heading.
	TurnDelay *float64
	Altitude  *int
}

func (ac Aircraft) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("callsign", ac.Callsign),
		slog.Float64("range", ac.Position.RangeNm),
		slog.Float64("bearing", ac.Position.BearingDeg),
		slog.Float64("heading", ac.Heading),
		slog.Float64("ias", ac.IAS),
		slog.Int("altitude", ac.Altitude),
		slog.Bool("approaching", ac.Approaching),
	}
	if ac.Command.Heading != nil {
		attrs = append(attrs, slog.Float64("assigned_heading", *ac.Command.Heading))
	}
	if ac.Command.TurnDelay != nil {
		attrs = append(attrs, slog.Float64("turn_delay", *ac.Command.TurnDelay))
	}
	if ac.Command.Altitude != nil {
		attrs = append(attrs, slog.Int("assigned_altitude", *ac.Command.Altitude))
	}
	return slog.GroupValue(attrs...)
}

// Summary returns a single-line description of the aircraft's state,
// e.g. "JAL123 12.3nm/180 HDG 360 220kt 025 APP".
func (ac Aircraft) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s HDG %s %.0fkt %03d", ac.Callsign, ac.Position, math.FormatHeading(ac.Heading),
		ac.IAS, ac.Altitude)
	if ac.Command.Heading != nil {
		sb.WriteString(" >" + math.FormatHeading(*ac.Command.Heading))
	}
	if ac.Command.Altitude != nil {
		fmt.Fprintf(&sb, " >%03d", *ac.Command.Altitude)
	}
	if ac.Approaching {
		sb.WriteString(" APP")
	}
	return sb.String()
}

// DisplayHeading returns the heading to show in the aircraft's data
// block: the assigned heading if there is one, otherwise the current one.
func (ac Aircraft) DisplayHeading() float64 {
	if ac.Command.Heading != nil {
		return *ac.Command.Heading
	}
	return ac.Heading
}

///////////////////////////////////////////////////////////////////////////
// Model

// Model collects the tuning parameters of the flight model. Most were
// chosen to match observed trainer behavior rather than derived, so they
// are kept together here where they can be adjusted.
type Model struct {
	TurnRate          float64 // degrees per second
	TurnDelay         float64 // seconds before a newly-assigned turn begins
	TurnRadiusDivisor float64 // turn radius in nm is IAS / TurnRadiusDivisor

	FinalCourse           float64
	EstablishedTolerance  float64    // heading within this of FinalCourse is established
	FinalHeadingTolerance float64    // speed law: heading window for being on final
	FinalBearingWindow    [2]float64 // speed law: exclusive bearing window for being on final

	SectorBearingWindow [2]float64 // inclusive
	SectorForceRange    float64
	SectorForceSpeed    float64
	SectorCapRange      float64
	SectorCapSpeed      float64

	LandedRange float64
}

func DefaultModel() *Model {
	return &Model{
		TurnRate:          StandardTurnRate,
		TurnDelay:         1,
		TurnRadiusDivisor: 188.5,

		FinalCourse:           360,
		EstablishedTolerance:  1,
		FinalHeadingTolerance: 10,
		FinalBearingWindow:    [2]float64{160, 200},

		SectorBearingWindow: [2]float64{150, 210},
		SectorForceRange:    20,
		SectorForceSpeed:    220,
		SectorCapRange:      25,
		SectorCapSpeed:      240,

		LandedRange: 2,
	}
}

const StandardTurnRate = 3

var defaultModel = DefaultModel()

// Advance returns the state of the aircraft dt seconds after the given
// one, using the default flight model.
func Advance(ac Aircraft, dt float64) Aircraft {
	return defaultModel.Advance(ac, dt)
}

func (m *Model) Advance(ac Aircraft, dt float64) Aircraft {
	return m.AdvanceAt(ac, dt, time.Time{})
}

// AdvanceAt is the same as Advance; the provided simulation time is only
// used to annotate nav log output.
func (m *Model) AdvanceAt(ac Aircraft, dt float64, simTime time.Time) Aircraft {
	// The pending clearances are stored via pointers; copy so that the
	// caller's aircraft is left untouched.
	next := deep.MustCopy(ac)

	NavLog(next.Callsign, simTime, NavLogState, "%s", next.Summary())

	m.updateApproach(&next, simTime)
	m.updateHeading(&next, dt, simTime)
	m.updateAltitude(&next, simTime)

	// Speed depends on the post-turn heading, so it must be computed
	// after the commands have been resolved.
	next.IAS = m.TargetSpeed(next)
	NavLog(next.Callsign, simTime, NavLogSpeed, "ias=%.1f final=%v", next.IAS, m.OnFinal(next))

	m.updatePosition(&next, dt)

	return next
}

// Landed reports whether the aircraft has completed its approach and
// should be removed from the scope.
func (m *Model) Landed(ac Aircraft) bool {
	return ac.Approaching && ac.Position.RangeNm <= m.LandedRange
}

func (m *Model) turningToFinal(ac Aircraft) bool {
	return ac.Command.Heading != nil && math.HeadingDifference(*ac.Command.Heading, m.FinalCourse) < 1e-6
}
