// nav/lateral.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"time"

	"github.com/mmp/atctrainer/math"
	"github.com/mmp/atctrainer/util"
)

// headingSnapTolerance absorbs floating-point error when comparing the
// remaining turn to the turn budget.
const headingSnapTolerance = 1e-6

func (m *Model) updateHeading(ac *Aircraft, dt float64, simTime time.Time) {
	if ac.Command.Heading == nil {
		return
	}
	target := *ac.Command.Heading

	var delay float64
	if ac.Command.TurnDelay != nil {
		delay = *ac.Command.TurnDelay
	}
	maxTurn := m.TurnRate * max(0, dt-delay)
	ac.Command.TurnDelay = util.Ptr(max(0, delay-dt))

	turn := math.HeadingSignedTurn(ac.Heading, target)

	NavLog(ac.Callsign, simTime, NavLogHeading, "current=%.1f target=%.1f turn=%.1f max=%.1f delay=%.1f",
		ac.Heading, target, turn, maxTurn, delay)

	if math.Abs(turn) <= maxTurn+headingSnapTolerance {
		ac.Heading = math.NormalizeHeading(target)
		ac.Command.Heading = nil
		ac.Command.TurnDelay = nil
		NavLog(ac.Callsign, simTime, NavLogHeading, "reached heading %s", math.FormatHeading(target))
		return
	}

	turn = math.Clamp(turn, -maxTurn, maxTurn)
	ac.Heading = math.NormalizeHeading(ac.Heading + turn)
}

func (m *Model) updatePosition(ac *Aircraft, dt float64) {
	dist := ac.IAS * dt / 3600
	ac.Position = ac.Position.Offset(ac.Heading, dist)
}
