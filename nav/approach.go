// nav/approach.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	gomath "math"
	"time"

	"github.com/mmp/atctrainer/math"
	"github.com/mmp/atctrainer/util"
)

type InterceptState int

const (
	NotCleared InterceptState = iota
	CruisingToIntercept
	TurnCommanded
	Established
)

func (s InterceptState) String() string {
	return [...]string{"NotCleared", "CruisingToIntercept", "TurnCommanded", "Established"}[s]
}

// InterceptState classifies where the aircraft is in the process of
// joining the final approach course.
func (m *Model) InterceptState(ac Aircraft) InterceptState {
	switch {
	case !ac.Approaching:
		return NotCleared
	case m.established(ac):
		return Established
	case m.turningToFinal(ac):
		return TurnCommanded
	default:
		return CruisingToIntercept
	}
}

func (m *Model) established(ac Aircraft) bool {
	return math.HeadingDifference(ac.Heading, m.FinalCourse) < m.EstablishedTolerance
}

// updateApproach issues the turn onto the final approach course once the
// aircraft is within the turn's lead distance of the extended centerline.
func (m *Model) updateApproach(ac *Aircraft, simTime time.Time) {
	if m.InterceptState(*ac) != CruisingToIntercept {
		return
	}

	// The lead distance is sized using the speed the aircraft would fly
	// this tick were it not to turn.
	radius := m.TargetSpeed(*ac) / m.TurnRadiusDivisor
	intercept := math.HeadingSignedTurn(ac.Heading, m.FinalCourse)
	lead := radius * math.Abs(gomath.Sin(math.Radians(intercept)))
	lateral := ac.Position.LateralOffset()

	NavLog(ac.Callsign, simTime, NavLogApproach, "lateral=%.2f lead=%.2f radius=%.2f intercept=%.1f",
		lateral, lead, radius, intercept)

	if math.Abs(lateral) <= lead {
		ac.Command.Heading = util.Ptr(math.NormalizeHeading(m.FinalCourse))
		ac.Command.TurnDelay = util.Ptr(m.TurnDelay)
		NavLog(ac.Callsign, simTime, NavLogApproach, "turning to final course %s", math.FormatHeading(m.FinalCourse))
	}
}
