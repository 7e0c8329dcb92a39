// sim/scenario.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"io"
	"os"

	"github.com/mmp/atctrainer/math"
	"github.com/mmp/atctrainer/nav"
	"github.com/mmp/atctrainer/util"
)

// Scenario describes the traffic on the scope when the sim starts or is
// reset.
type Scenario struct {
	Name     string             `json:"name"`
	Seed     int64              `json:"seed"`
	Aircraft []ScenarioAircraft `json:"aircraft"`
}

type ScenarioAircraft struct {
	Callsign    string   `json:"callsign"`
	Type        string   `json:"type"`
	Squawk      string   `json:"squawk"`
	Range       float64  `json:"range"`
	Bearing     float64  `json:"bearing"`
	Heading     *float64 `json:"heading"`
	Altitude    *int     `json:"altitude"`
	Approaching bool     `json:"approaching"`
}

func LoadScenario(r io.Reader) (*Scenario, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := util.DecodeJSONStrict(b, &sc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	// Check it now so that errors are reported at load time rather than
	// when the sim is created.
	if _, err := sc.MakeAircraft(nav.DefaultModel()); err != nil {
		return nil, err
	}
	return &sc, nil
}

func LoadScenarioFile(fn string) (*Scenario, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := LoadScenario(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	if sc.Name == "" {
		sc.Name = fn
	}
	return sc, nil
}

// MakeAircraft returns the scenario's aircraft, in the order they are
// listed.
func (sc *Scenario) MakeAircraft(model *nav.Model) ([]nav.Aircraft, error) {
	var acs []nav.Aircraft
	seen := make(map[string]bool)

	for i, sa := range sc.Aircraft {
		cs, err := normalizeCallsign(sa.Callsign)
		if err != nil {
			return nil, fmt.Errorf("%w: aircraft %d: %q: %w", ErrInvalidScenario, i, sa.Callsign, err)
		}
		if seen[cs] {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, cs, ErrDuplicateCallsign)
		}
		seen[cs] = true

		if !math.IsFinite(sa.Range) || sa.Range < 0 {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, cs, ErrInvalidRange)
		}
		if !math.IsFinite(sa.Bearing) {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, cs, ErrInvalidBearing)
		}

		ac := nav.Aircraft{
			Callsign:    cs,
			Type:        sa.Type,
			Squawk:      sa.Squawk,
			Position:    math.Polar{RangeNm: sa.Range, BearingDeg: math.NormalizeHeading(sa.Bearing)},
			Altitude:    DefaultSpawnAltitude,
			Approaching: sa.Approaching,
		}
		ac.Heading = ac.Position.BearingDeg
		if sa.Heading != nil {
			if !math.IsFinite(*sa.Heading) {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, cs, nav.ErrInvalidHeading)
			}
			ac.Heading = math.NormalizeHeading(*sa.Heading)
		}
		if sa.Altitude != nil {
			if *sa.Altitude < 0 || *sa.Altitude > nav.MaxAltitude {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, cs, nav.ErrInvalidAltitude)
			}
			ac.Altitude = *sa.Altitude
		}
		ac.IAS = model.TargetSpeed(ac)

		acs = append(acs, ac)
	}
	return acs, nil
}
