// sim/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
)

var (
	ErrDuplicateCallsign  = errors.New("Duplicate callsign")
	ErrIllegalCallsign    = errors.New("Illegal callsign")
	ErrInvalidBearing     = errors.New("Invalid bearing")
	ErrInvalidCommand     = errors.New("Invalid command")
	ErrInvalidRange       = errors.New("Invalid range")
	ErrInvalidScenario    = errors.New("Invalid scenario")
	ErrInvalidSimRate     = errors.New("Invalid sim rate")
	ErrNoMatchingAircraft = errors.New("No matching aircraft")
)
