// math/heading_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"math"
	"testing"
)

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		name     string
		h        float64
		expected float64
	}{
		{"zero", 0, 0},
		{"in range", 123.5, 123.5},
		{"360 wraps", 360, 0},
		{"above 360", 725, 5},
		{"negative", -10, 350},
		{"negative multiple", -370, 350},
		{"tiny negative", -1e-15, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeading(tt.h); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("NormalizeHeading(%v) = %v, expected %v", tt.h, got, tt.expected)
			}
		})
	}
}

func TestNormalizeHeadingIdempotent(t *testing.T) {
	for h := -1000.0; h <= 1000; h += 0.37 {
		n := NormalizeHeading(h)
		if n < 0 || n >= 360 {
			t.Errorf("NormalizeHeading(%v) = %v: out of [0,360)", h, n)
		}
		if nn := NormalizeHeading(n); nn != n {
			t.Errorf("NormalizeHeading not idempotent for %v: %v then %v", h, n, nn)
		}
	}
}

func TestHeadingSignedTurn(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		expected float64
	}{
		{"same", 90, 90, 0},
		{"right", 90, 120, 30},
		{"left", 120, 90, -30},
		{"right across north", 350, 10, 20},
		{"left across north", 10, 350, -20},
		{"north as 360", 355, 360, 5},
		{"north as 0", 5, 0, -5},
		{"reciprocal", 0, 180, 180},
		{"reciprocal reversed", 180, 0, 180},
		{"unnormalized inputs", -90, 450, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeadingSignedTurn(tt.from, tt.to); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("HeadingSignedTurn(%v, %v) = %v, expected %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestHeadingSignedTurnRange(t *testing.T) {
	for a := 0.0; a < 360; a += 7.5 {
		for b := -360.0; b < 720; b += 11.25 {
			d := HeadingSignedTurn(a, b)
			if d <= -180 || d > 180 {
				t.Errorf("HeadingSignedTurn(%v, %v) = %v: out of (-180,180]", a, b, d)
			}
			if HeadingSignedTurn(b, b) != 0 {
				t.Errorf("HeadingSignedTurn(%v, %v) != 0", b, b)
			}
			// Turning by d must land on the target.
			if HeadingDifference(NormalizeHeading(a+d), b) > 1e-9 {
				t.Errorf("%v + %v does not reach %v", a, d, b)
			}
		}
	}
}

func TestIsHeadingBetween(t *testing.T) {
	tests := []struct {
		name     string
		h        float64
		h1       float64
		h2       float64
		expected bool
	}{
		{"middle of range", 45, 0, 90, true},
		{"at start", 0, 0, 90, true},
		{"at end", 90, 0, 90, true},
		{"before range", 350, 0, 90, false},
		{"after range", 100, 0, 90, false},
		{"wraparound middle", 10, 350, 20, true},
		{"wraparound at 360", 360, 350, 20, true},
		{"wraparound outside", 100, 350, 20, false},
		{"southern sector", 180, 150, 210, true},
		{"southern sector edge", 210, 150, 210, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHeadingBetween(tt.h, tt.h1, tt.h2); got != tt.expected {
				t.Errorf("IsHeadingBetween(%v, %v, %v) = %v, expected %v", tt.h, tt.h1, tt.h2, got, tt.expected)
			}
		})
	}
}

func TestFormatHeading(t *testing.T) {
	for _, tc := range []struct {
		h    float64
		want string
	}{
		{0, "360"},
		{360, "360"},
		{359.6, "360"},
		{0.4, "360"},
		{5, "005"},
		{90, "090"},
		{-90, "270"},
		{271.2, "271"},
	} {
		if got := FormatHeading(tc.h); got != tc.want {
			t.Errorf("FormatHeading(%v) = %q, expected %q", tc.h, got, tc.want)
		}
	}
}

func TestShortCompass(t *testing.T) {
	for _, tc := range []struct {
		h    float64
		want string
	}{
		{0, "N"}, {20, "N"}, {25, "NE"}, {90, "E"}, {180, "S"}, {269, "W"}, {350, "N"},
	} {
		if got := ShortCompass(tc.h); got != tc.want {
			t.Errorf("ShortCompass(%v) = %q, expected %q", tc.h, got, tc.want)
		}
	}
}
