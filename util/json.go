// util/json.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// JSON

// DuplicateJSONKey represents a key that appears more than once in the
// same JSON object.
type DuplicateJSONKey struct {
	Path string // JSON path to the object (e.g., "aircraft")
	Key  string // The duplicate key name
}

// FindDuplicateJSONKeys scans JSON content and returns all duplicate keys
// found. Elements of arrays are reported with the path of the array.
// Scanning stops at the first syntax error.
func FindDuplicateJSONKeys(data []byte) []DuplicateJSONKey {
	dec := json.NewDecoder(bytes.NewReader(data))
	var duplicates []DuplicateJSONKey

	var walk func(path string) error
	walk = func(path string) error {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		switch tok {
		case json.Delim('{'):
			seen := make(map[string]bool)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return err
				}
				key, ok := kt.(string)
				if !ok {
					return fmt.Errorf("unexpected object key %v", kt)
				}
				if seen[key] {
					duplicates = append(duplicates, DuplicateJSONKey{Path: path, Key: key})
				}
				seen[key] = true

				if err := walk(strings.TrimPrefix(path+"."+key, ".")); err != nil {
					return err
				}
			}
			_, err = dec.Token() // '}'
			return err

		case json.Delim('['):
			for dec.More() {
				if err := walk(path); err != nil {
					return err
				}
			}
			_, err = dec.Token() // ']'
			return err
		}
		return nil
	}

	walk("")
	return duplicates
}

// DecodeJSONStrict unmarshals b into out, rejecting unknown fields and
// duplicate keys. Errors that can be tied to a location in the input
// report its line and character.
func DecodeJSONStrict[T any](b []byte, out *T) error {
	if dups := FindDuplicateJSONKeys(b); len(dups) > 0 {
		d := dups[0]
		if d.Path == "" {
			return fmt.Errorf("duplicate key %q", d.Key)
		}
		return fmt.Errorf("duplicate key %q in %q", d.Key, d.Path)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	err := dec.Decode(out)
	if err == nil {
		return nil
	}

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &serr):
		line, char := jsonOffsetPosition(b, serr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %w", line, char, err)

	case errors.As(err, &terr):
		line, char := jsonOffsetPosition(b, terr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %s value for %s invalid for type %s: %w",
			line, char, terr.Value, terr.Field, terr.Type.String(), err)

	default:
		return err
	}
}

func jsonOffsetPosition(b []byte, offset int64) (line, char int) {
	line, char = 1, 1
	for i := 0; i < int(offset) && i < len(b); i++ {
		if b[i] == '\n' {
			line++
			char = 1
		} else {
			char++
		}
	}
	return
}
