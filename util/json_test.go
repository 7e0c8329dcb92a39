// util/json_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFindDuplicateJSONKeys(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected []DuplicateJSONKey
	}{
		{
			name:     "no duplicates",
			json:     `{"a": 1, "b": 2, "c": 3}`,
			expected: nil,
		},
		{
			name: "simple duplicate at root",
			json: `{"a": 1, "b": 2, "a": 3}`,
			expected: []DuplicateJSONKey{
				{Path: "", Key: "a"},
			},
		},
		{
			name: "duplicate in nested object",
			json: `{"outer": {"inner": 1, "inner": 2}}`,
			expected: []DuplicateJSONKey{
				{Path: "outer", Key: "inner"},
			},
		},
		{
			name: "multiple duplicates at different levels",
			json: `{"a": 1, "a": 2, "nested": {"b": 1, "b": 2}}`,
			expected: []DuplicateJSONKey{
				{Path: "", Key: "a"},
				{Path: "nested", Key: "b"},
			},
		},
		{
			name:     "same key in different array elements",
			json:     `{"aircraft": [{"callsign": "JAL1"}, {"callsign": "UAL2"}]}`,
			expected: nil,
		},
		{
			name: "duplicate inside array element",
			json: `{"aircraft": [{"range": 10, "heading": 90, "range": 12}]}`,
			expected: []DuplicateJSONKey{
				{Path: "aircraft", Key: "range"},
			},
		},
		{
			name:     "truncated",
			json:     `{"aircraft": [{"range": 10`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindDuplicateJSONKeys([]byte(tt.json))

			if len(result) != len(tt.expected) {
				t.Errorf("expected %d duplicates, got %d", len(tt.expected), len(result))
				return
			}

			for i, exp := range tt.expected {
				if result[i] != exp {
					t.Errorf("duplicate %d: expected %+v, got %+v", i, exp, result[i])
				}
			}
		})
	}
}

func TestDecodeJSONStrict(t *testing.T) {
	type aircraft struct {
		Callsign string  `json:"callsign"`
		Range    float64 `json:"range"`
	}

	var ac aircraft
	if err := DecodeJSONStrict([]byte(`{"callsign": "JAL1", "range": 12.5}`), &ac); err != nil {
		t.Fatal(err)
	}
	if ac.Callsign != "JAL1" || ac.Range != 12.5 {
		t.Errorf("got %+v", ac)
	}

	for _, tc := range []struct {
		name, json, msg string
	}{
		{name: "duplicate", json: `{"range": 1, "range": 2}`, msg: `duplicate key "range"`},
		{name: "unknown", json: `{"speed": 250}`, msg: `unknown field "speed"`},
		{name: "type", json: "{\n  \"range\": \"far\"}", msg: "line 2, character"},
		{name: "syntax", json: "{\n\n  \"range\": 1,, }", msg: "line 3, character"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var ac aircraft
			err := DecodeJSONStrict([]byte(tc.json), &ac)
			if err == nil || !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("got error %v, expected one containing %q", err, tc.msg)
			}
		})
	}

	if err := DecodeJSONStrict([]byte(``), &ac); !errors.Is(err, io.EOF) {
		t.Errorf("empty input: got %v, expected EOF", err)
	}
}
