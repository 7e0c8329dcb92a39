// nav/alt.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"time"
)

// MaxAltitude is the highest altitude, in hundreds of feet, that may be
// assigned.
const MaxAltitude = 600

// updateAltitude moves the aircraft one hundred feet toward its assigned
// altitude.
func (m *Model) updateAltitude(ac *Aircraft, simTime time.Time) {
	if ac.Command.Altitude == nil {
		return
	}
	target := *ac.Command.Altitude

	if ac.Altitude < target {
		ac.Altitude++
	} else if ac.Altitude > target {
		ac.Altitude--
	}

	NavLog(ac.Callsign, simTime, NavLogAltitude, "current=%03d target=%03d", ac.Altitude, target)

	if ac.Altitude == target {
		ac.Command.Altitude = nil
	}
}
