// math/polar.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

// Polar is a position relative to the scope origin: a range in nautical
// miles and a bearing in degrees, measured clockwise from north.
type Polar struct {
	RangeNm    float64
	BearingDeg float64
}

func (p Polar) String() string {
	return fmt.Sprintf("%.1fnm/%s", p.RangeNm, FormatHeading(p.BearingDeg))
}

// PolarToCartesian returns the offset of p from the origin in nm, with +x
// pointing east and +y pointing north.
func PolarToCartesian(p Polar) [2]float64 {
	v := SinCos(p.BearingDeg)
	return [2]float64{p.RangeNm * v[0], p.RangeNm * v[1]}
}

// CartesianToPolar is the inverse of PolarToCartesian. The bearing is
// reported as 0 at the origin.
func CartesianToPolar(v [2]float64) Polar {
	// Note that atan2() normally measures w.r.t. the +x axis and angles
	// are positive for counter-clockwise. We want to measure w.r.t. +y and
	// to have positive angles be clockwise. Happily, swapping the order of
	// values passed to atan2()--passing (x,y), gives what we want.
	return Polar{
		RangeNm:    gomath.Hypot(v[0], v[1]),
		BearingDeg: NormalizeHeading(Degrees(gomath.Atan2(v[0], v[1]))),
	}
}

// Offset returns the position reached by moving distNm from p along the
// given true heading.
func (p Polar) Offset(heading, distNm float64) Polar {
	c := PolarToCartesian(p)
	d := SinCos(heading)
	return CartesianToPolar([2]float64{c[0] + distNm*d[0], c[1] + distNm*d[1]})
}

// LateralOffset returns the signed east/west distance of p from the
// north-south line through the origin; east is positive.
func (p Polar) LateralOffset() float64 {
	return p.RangeNm * gomath.Sin(Radians(p.BearingDeg))
}

// RangeBearing returns the range and bearing of the point |to| as seen
// from the point |from|.
func RangeBearing(from, to Polar) Polar {
	a, b := PolarToCartesian(from), PolarToCartesian(to)
	return CartesianToPolar([2]float64{b[0] - a[0], b[1] - a[1]})
}
