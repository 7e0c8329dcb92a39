// nav/commands.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/mmp/atctrainer/math"
	"github.com/mmp/atctrainer/util"
)

// AssignHeading validates the given heading and, if it is acceptable,
// records it as the aircraft's assigned heading. The turn starts after
// turnDelay seconds. Headings are normalized, so both 0 and 360 mean
// north.
func (ac *Aircraft) AssignHeading(hdg float64, turnDelay float64) error {
	if !math.IsFinite(hdg) {
		return ErrInvalidHeading
	}
	ac.Command.Heading = util.Ptr(math.NormalizeHeading(hdg))
	ac.Command.TurnDelay = util.Ptr(turnDelay)
	return nil
}

// AssignAltitude validates the given altitude (in hundreds of feet) and
// records it as the aircraft's assigned altitude.
func (ac *Aircraft) AssignAltitude(alt int) error {
	if alt < 0 || alt > MaxAltitude {
		return ErrInvalidAltitude
	}
	ac.Command.Altitude = util.Ptr(alt)
	return nil
}

// ClearForApproach clears the aircraft for the approach. It returns false
// if it was already cleared, in which case nothing changes.
func (ac *Aircraft) ClearForApproach() bool {
	if ac.Approaching {
		return false
	}
	ac.Approaching = true
	return true
}
