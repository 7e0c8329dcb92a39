// math/heading.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

///////////////////////////////////////////////////////////////////////////
// headings and directions

// NormalizeHeading reduces h to [0,360).
func NormalizeHeading(h float64) float64 {
	h = gomath.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		// e.g., -1e-15 + 360 rounds to 360.
		h = 0
	}
	return h
}

// HeadingSignedTurn returns the signed minimal rotation in degrees that
// takes the heading |from| to the heading |to|; positive values are
// clockwise turns. The result is in the range (-180,180], so it can be
// used across the 0/360 wrap.
func HeadingSignedTurn(from, to float64) float64 {
	d := NormalizeHeading(to) - NormalizeHeading(from)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float64, b float64) float64 {
	return Abs(HeadingSignedTurn(a, b))
}

func OppositeHeading(h float64) float64 {
	return NormalizeHeading(h + 180)
}

// IsHeadingBetween reports whether the heading h lies in the closed
// clockwise sector that starts at h1 and ends at h2.
func IsHeadingBetween(h, h1, h2 float64) bool {
	h, h1, h2 = NormalizeHeading(h), NormalizeHeading(h1), NormalizeHeading(h2)
	if h1 <= h2 {
		return h >= h1 && h <= h2
	}
	// wraps around north
	return h >= h1 || h <= h2
}

// FormatHeading returns the heading rounded to the nearest degree as a
// three-digit string. North is always reported as "360", never "000".
func FormatHeading(h float64) string {
	v := int(gomath.Round(h)) % 360
	if v < 0 {
		v += 360
	}
	if v == 0 {
		v = 360
	}
	return fmt.Sprintf("%03d", v)
}

// ShortCompass converts a heading expressed in degrees into an abbreviated
// string corresponding to the closest compass direction.
func ShortCompass(heading float64) string {
	h := NormalizeHeading(heading + 22.5) // now [0,45] is north, etc...
	idx := int(h / 45)
	return [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}[idx]
}
