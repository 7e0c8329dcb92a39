// math/math_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"math"
	"testing"
)

func TestLerpRange(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"above x0", 20, 220},
		{"at x0", 16, 220},
		{"midpoint", 13, 210},
		{"at x1", 10, 200},
		{"below x1", 3, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LerpRange(tt.x, 16, 10, 220, 200); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("LerpRange(%v) = %v, expected %v", tt.x, got, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-5, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Errorf("Clamp mismatch")
	}
	if Clamp(-7.5, -6.0, 6.0) != -6 {
		t.Errorf("Clamp(-7.5, -6, 6) = %v", Clamp(-7.5, -6.0, 6.0))
	}
}

func TestPolarRoundTrip(t *testing.T) {
	for r := 0.5; r < 80; r += 3.7 {
		for b := 0.0; b < 360; b += 13 {
			p := CartesianToPolar(PolarToCartesian(Polar{RangeNm: r, BearingDeg: b}))
			if math.Abs(p.RangeNm-r) > 1e-9 {
				t.Errorf("range %v/%v: got %v", r, b, p.RangeNm)
			}
			if HeadingDifference(p.BearingDeg, b) > 1e-9 {
				t.Errorf("bearing %v/%v: got %v", r, b, p.BearingDeg)
			}
		}
	}

	// Bearing is underdetermined at the origin and reported as zero.
	if p := CartesianToPolar(PolarToCartesian(Polar{RangeNm: 0, BearingDeg: 123})); p.RangeNm != 0 || p.BearingDeg != 0 {
		t.Errorf("origin: got %+v", p)
	}
}

func TestPolarToCartesianAxes(t *testing.T) {
	for _, tc := range []struct {
		p    Polar
		want [2]float64
	}{
		{Polar{10, 0}, [2]float64{0, 10}},
		{Polar{10, 90}, [2]float64{10, 0}},
		{Polar{10, 180}, [2]float64{0, -10}},
		{Polar{10, 270}, [2]float64{-10, 0}},
	} {
		got := PolarToCartesian(tc.p)
		if math.Abs(got[0]-tc.want[0]) > 1e-9 || math.Abs(got[1]-tc.want[1]) > 1e-9 {
			t.Errorf("PolarToCartesian(%v) = %v, expected %v", tc.p, got, tc.want)
		}
	}
}

func TestOffsetAndRangeBearing(t *testing.T) {
	// 10nm south of the origin, flying north for 4nm.
	p := Polar{RangeNm: 10, BearingDeg: 180}.Offset(360, 4)
	if math.Abs(p.RangeNm-6) > 1e-9 || HeadingDifference(p.BearingDeg, 180) > 1e-9 {
		t.Errorf("Offset: got %v", p)
	}

	rb := RangeBearing(Polar{RangeNm: 10, BearingDeg: 270}, Polar{RangeNm: 10, BearingDeg: 90})
	if math.Abs(rb.RangeNm-20) > 1e-9 || HeadingDifference(rb.BearingDeg, 90) > 1e-9 {
		t.Errorf("RangeBearing: got %v", rb)
	}

	if lat := (Polar{RangeNm: 10, BearingDeg: 270}).LateralOffset(); math.Abs(lat+10) > 1e-9 {
		t.Errorf("LateralOffset: got %v", lat)
	}
}
