// util/generic_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"slices"
	"testing"

	"github.com/mmp/atctrainer/log"
)

func TestSelect(t *testing.T) {
	if Select(true, 1, 2) != 1 || Select(false, 1, 2) != 2 {
		t.Errorf("Select mismatch")
	}
}

func TestMapFilterSlice(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	if sq := MapSlice(s, func(v int) int { return v * v }); !slices.Equal(sq, []int{1, 4, 9, 16, 25}) {
		t.Errorf("MapSlice: got %v", sq)
	}
	if odd := FilterSlice(s, func(v int) bool { return v%2 == 1 }); !slices.Equal(odd, []int{1, 3, 5}) {
		t.Errorf("FilterSlice: got %v", odd)
	}
	if e := MapSlice([]int(nil), func(v int) int { return v }); len(e) != 0 {
		t.Errorf("MapSlice of nil: got %v", e)
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"UAL1": 1, "ANA2": 2, "JAL3": 3}
	if k := SortedMapKeys(m); !slices.Equal(k, []string{"ANA2", "JAL3", "UAL1"}) {
		t.Errorf("SortedMapKeys: got %v", k)
	}
}

func TestPtr(t *testing.T) {
	p := Ptr(3.5)
	q := Ptr(3.5)
	if *p != 3.5 || p == q {
		t.Errorf("Ptr should return distinct pointers to copies")
	}
}

func TestLoggingMutex(t *testing.T) {
	var mu LoggingMutex
	var lg *log.Logger

	mu.Lock(lg)
	done := make(chan struct{})
	go func() {
		mu.Lock(lg)
		mu.Unlock(lg)
		close(done)
	}()
	mu.Unlock(lg)
	<-done

	heldMutexesMutex.Lock()
	defer heldMutexesMutex.Unlock()
	if _, ok := heldMutexes[&mu]; ok {
		t.Errorf("mutex still recorded as held")
	}
}
