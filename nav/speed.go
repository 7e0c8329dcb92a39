// nav/speed.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/mmp/atctrainer/math"
)

// TargetSpeed returns the speed in knots that the aircraft should fly
// given its current position, heading, and approach clearance.
func (m *Model) TargetSpeed(ac Aircraft) float64 {
	r := ac.Position.RangeNm
	if m.OnFinal(ac) {
		return ApproachSpeed(r)
	}

	spd := CruiseSpeed(r)
	if math.IsHeadingBetween(ac.Position.BearingDeg, m.SectorBearingWindow[0], m.SectorBearingWindow[1]) {
		if r <= m.SectorForceRange {
			spd = m.SectorForceSpeed
		} else if r <= m.SectorCapRange {
			spd = min(spd, m.SectorCapSpeed)
		}
	}
	return spd
}

// OnFinal reports whether the aircraft is cleared for the approach,
// south of the origin, and pointed along (or turning to) the final
// approach course.
func (m *Model) OnFinal(ac Aircraft) bool {
	if !ac.Approaching {
		return false
	}
	if math.HeadingDifference(ac.Heading, m.FinalCourse) > m.FinalHeadingTolerance && !m.turningToFinal(ac) {
		return false
	}
	b := ac.Position.BearingDeg
	return b > m.FinalBearingWindow[0] && b < m.FinalBearingWindow[1]
}

// ApproachSpeed gives the deceleration profile along final as a function
// of the range to the origin.
func ApproachSpeed(r float64) float64 {
	switch {
	case r > 16:
		return 220
	case r > 10:
		return math.LerpRange(r, 16, 10, 220, 200)
	case r > 8:
		return math.LerpRange(r, 10, 8, 200, 170)
	default:
		return math.LerpRange(r, 8, 0, 170, 130)
	}
}

// CruiseSpeed gives the speed for aircraft that aren't on final, by range
// tier.
func CruiseSpeed(r float64) float64 {
	switch {
	case r > 50:
		return 300
	case r > 40:
		return 280
	case r > 30:
		return 270
	case r > 20:
		return math.LerpRange(r, 30, 20, 260, 240)
	default:
		return 240
	}
}
