// math/core.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Degrees converts an angle expressed in radians to degrees
func Degrees(r float64) float64 {
	return r * 180 / gomath.Pi
}

// Radians converts an angle expressed in degrees to radians
func Radians(d float64) float64 {
	return d / 180 * gomath.Pi
}

// SinCos returns the sine and cosine of the given angle, which is
// specified in degrees.
func SinCos(deg float64) [2]float64 {
	s, c := gomath.Sincos(Radians(deg))
	return [2]float64{s, c}
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// Linearly interpolate x of the way between a and b. x==0 corresponds to
// a, x==1 corresponds to b, etc.
func Lerp[F constraints.Float](x, a, b F) F {
	return (1-x)*a + x*b
}

// LerpRange maps x from the interval [x1,x0] to [y1,y0], where x0 > x1.
// Values of x outside of the interval are clamped to the corresponding
// endpoint so the result is never extrapolated: y0 is returned for
// x > x0 and y1 for x < x1.
func LerpRange(x, x0, x1, y0, y1 float64) float64 {
	if x > x0 {
		return y0
	} else if x < x1 {
		return y1
	}
	return Lerp((x0-x)/(x0-x1), y0, y1)
}

// IsFinite reports whether v is neither infinite nor NaN.
func IsFinite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}
