// sim/commands.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"log/slog"
	gomath "math"

	"github.com/mmp/atctrainer/math"
	"github.com/mmp/atctrainer/nav"
	"github.com/mmp/atctrainer/rand"
)

// DefaultSpawnAltitude is the altitude of newly-spawned aircraft, in
// hundreds of feet.
const DefaultSpawnAltitude = 25

// dispatchCommand applies cmd to a copy of the named aircraft and stores
// the result only if it succeeds, so a rejected command leaves the
// aircraft as it was. cmd returns the history entry to log, if any.
func (s *Sim) dispatchCommand(callsign string, cmd func(ac *nav.Aircraft) (string, error)) error {
	idx := s.lookup(callsign)
	if idx == -1 {
		return s.reject(callsign, ErrNoMatchingAircraft)
	}

	ac := s.aircraft[idx]
	action, err := cmd(&ac)
	if err != nil {
		return s.reject(ac.Callsign, err)
	}
	s.aircraft[idx] = ac

	if action != "" {
		s.addHistory(ac.Callsign, action)
		s.eventStream.Post(Event{Type: CommandEvent, Callsign: ac.Callsign, Text: action})
		nav.NavLog(ac.Callsign, s.simTime, nav.NavLogCommand, "%s", action)
	}
	return nil
}

func (s *Sim) reject(callsign string, err error) error {
	s.lg.Info("command rejected", slog.String("callsign", callsign), slog.Any("error", err))
	s.eventStream.Post(Event{Type: CommandRejectedEvent, Callsign: callsign, Text: err.Error()})
	return err
}

// IssueHeading assigns a heading to the aircraft; 0 and 360 both mean
// north.
func (s *Sim) IssueHeading(callsign string, hdg float64) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	return s.dispatchCommand(callsign, func(ac *nav.Aircraft) (string, error) {
		if err := ac.AssignHeading(hdg, s.model.TurnDelay); err != nil {
			return "", err
		}
		return "HDG " + math.FormatHeading(hdg), nil
	})
}

// IssueAltitude assigns an altitude, in hundreds of feet.
func (s *Sim) IssueAltitude(callsign string, alt int) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	return s.dispatchCommand(callsign, func(ac *nav.Aircraft) (string, error) {
		if err := ac.AssignAltitude(alt); err != nil {
			return "", err
		}
		return fmt.Sprintf("ALT %03d", alt), nil
	})
}

// IssueApproachClearance clears the aircraft for the approach. Clearing
// an aircraft that is already cleared is not an error but is otherwise
// ignored.
func (s *Sim) IssueApproachClearance(callsign string) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	return s.dispatchCommand(callsign, func(ac *nav.Aircraft) (string, error) {
		if !ac.ClearForApproach() {
			return "", nil
		}
		return "APPROACH", nil
	})
}

// Delete removes the aircraft from the scope.
func (s *Sim) Delete(callsign string) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	idx := s.lookup(callsign)
	if idx == -1 {
		return s.reject(callsign, ErrNoMatchingAircraft)
	}

	ac := s.aircraft[idx]
	s.aircraft = append(s.aircraft[:idx], s.aircraft[idx+1:]...)
	s.addHistory(ac.Callsign, "DELETE")
	s.eventStream.Post(Event{Type: DeletedEvent, Callsign: ac.Callsign})
	return nil
}

type SpawnRequest struct {
	RangeNm    float64
	BearingDeg float64
	Heading    *float64 // nil -> the bearing of the spawn position
	Callsign   string   // empty -> generated
	Altitude   *int     // nil -> DefaultSpawnAltitude
}

// Spawn creates a new aircraft with no pending clearances and returns
// its callsign.
func (s *Sim) Spawn(req SpawnRequest) (string, error) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ac, err := s.makeAircraft(req)
	if err != nil {
		return "", s.reject(req.Callsign, err)
	}

	s.aircraft = append([]nav.Aircraft{ac}, s.aircraft...)

	action := fmt.Sprintf("SPAWN r=%.1fnm brg=%d hdg=%s", ac.Position.RangeNm,
		int(gomath.Round(req.BearingDeg)), math.FormatHeading(ac.Heading))
	s.addHistory(ac.Callsign, action)
	s.eventStream.Post(Event{Type: SpawnEvent, Callsign: ac.Callsign, Text: action})
	s.lg.Info("spawned", slog.Any("aircraft", ac))

	return ac.Callsign, nil
}

func (s *Sim) makeAircraft(req SpawnRequest) (nav.Aircraft, error) {
	if !math.IsFinite(req.RangeNm) || req.RangeNm < 0 {
		return nav.Aircraft{}, ErrInvalidRange
	}
	if !math.IsFinite(req.BearingDeg) {
		return nav.Aircraft{}, ErrInvalidBearing
	}

	ac := nav.Aircraft{
		Type:     rand.SampleSlice(s.rand, aircraftTypes),
		Squawk:   fmt.Sprintf("%03d", s.rand.Intn(1000)),
		Position: math.Polar{RangeNm: req.RangeNm, BearingDeg: math.NormalizeHeading(req.BearingDeg)},
		Altitude: DefaultSpawnAltitude,
	}

	ac.Heading = ac.Position.BearingDeg
	if req.Heading != nil {
		if !math.IsFinite(*req.Heading) {
			return nav.Aircraft{}, nav.ErrInvalidHeading
		}
		ac.Heading = math.NormalizeHeading(*req.Heading)
	}

	if req.Altitude != nil {
		if *req.Altitude < 0 || *req.Altitude > nav.MaxAltitude {
			return nav.Aircraft{}, nav.ErrInvalidAltitude
		}
		ac.Altitude = *req.Altitude
	}

	if req.Callsign != "" {
		cs, err := normalizeCallsign(req.Callsign)
		if err != nil {
			return nav.Aircraft{}, err
		}
		if s.lookup(cs) != -1 {
			return nav.Aircraft{}, ErrDuplicateCallsign
		}
		ac.Callsign = cs
	} else {
		ac.Callsign = s.generateCallsign()
	}

	ac.IAS = s.model.TargetSpeed(ac)

	return ac, nil
}
