// nav/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import "errors"

// Errors used by the nav package
var (
	ErrInvalidAltitude = errors.New("Invalid altitude")
	ErrInvalidHeading  = errors.New("Invalid heading")
)
