// sim/parse.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmp/atctrainer/math"
	"github.com/mmp/atctrainer/util"
)

// RunCommand executes a line typed by the controller and returns a
// message to show in response, if any. Supported commands are:
//
//	CALLSIGN H<hdg> A<alt> C X   heading, altitude, approach clearance, delete
//	SPAWN <range> <bearing> [<heading>]
//	MEASURE <range> <bearing> <range> <bearing>
//	RATE <multiplier>
//	P                            toggle pause
//	RESET
//
// Multiple aircraft commands may be given in a single line; execution
// stops at the first one that fails.
func (s *Sim) RunCommand(line string) (string, error) {
	fields := strings.Fields(strings.ToUpper(line))
	if len(fields) == 0 {
		return "", ErrInvalidCommand
	}

	switch fields[0] {
	case "P":
		if len(fields) != 1 {
			return "", ErrInvalidCommand
		}
		s.TogglePause()
		return "", nil

	case "RESET":
		if len(fields) != 1 {
			return "", ErrInvalidCommand
		}
		s.Reset()
		return "", nil

	case "RATE":
		v, err := parseFloats(fields[1:], 1, 1)
		if err != nil {
			return "", err
		}
		return "", s.SetSimRate(v[0])

	case "SPAWN":
		v, err := parseFloats(fields[1:], 2, 3)
		if err != nil {
			return "", err
		}
		req := SpawnRequest{RangeNm: v[0], BearingDeg: v[1]}
		if len(v) == 3 {
			req.Heading = util.Ptr(v[2])
		}
		return s.Spawn(req)

	case "MEASURE":
		v, err := parseFloats(fields[1:], 4, 4)
		if err != nil {
			return "", err
		}
		rb := math.RangeBearing(math.Polar{RangeNm: v[0], BearingDeg: v[1]},
			math.Polar{RangeNm: v[2], BearingDeg: v[3]})
		return fmt.Sprintf("%.1fnm %s", rb.RangeNm, math.FormatHeading(rb.BearingDeg)), nil

	default:
		callsign, cmds := fields[0], fields[1:]
		if len(cmds) == 0 {
			return "", ErrInvalidCommand
		}
		for _, cmd := range cmds {
			if err := s.runAircraftCommand(callsign, cmd); err != nil {
				return "", fmt.Errorf("%s: %w", cmd, err)
			}
		}
		return "", nil
	}
}

func (s *Sim) runAircraftCommand(callsign, cmd string) error {
	switch {
	case cmd == "C":
		return s.IssueApproachClearance(callsign)

	case cmd == "X":
		return s.Delete(callsign)

	case len(cmd) > 1 && cmd[0] == 'H':
		hdg, err := strconv.Atoi(cmd[1:])
		if err != nil {
			return ErrInvalidCommand
		}
		return s.IssueHeading(callsign, float64(hdg))

	case len(cmd) > 1 && cmd[0] == 'A':
		alt, err := strconv.Atoi(cmd[1:])
		if err != nil {
			return ErrInvalidCommand
		}
		return s.IssueAltitude(callsign, alt)

	default:
		return ErrInvalidCommand
	}
}

func parseFloats(fields []string, minCount, maxCount int) ([]float64, error) {
	if len(fields) < minCount || len(fields) > maxCount {
		return nil, ErrInvalidCommand
	}
	v := make([]float64, len(fields))
	for i, f := range fields {
		var err error
		if v[i], err = strconv.ParseFloat(f, 64); err != nil || !math.IsFinite(v[i]) {
			return nil, ErrInvalidCommand
		}
	}
	return v, nil
}
