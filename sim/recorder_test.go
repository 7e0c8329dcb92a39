// sim/recorder_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/mmp/atctrainer/util"
)

func TestRecorder(t *testing.T) {
	s, _ := makeTestSim(t, NewSimConfig{})
	mustSpawn(t, s, SpawnRequest{RangeNm: 12, BearingDeg: 180, Heading: util.Ptr(0.0), Callsign: "JAL123"})
	mustSpawn(t, s, SpawnRequest{RangeNm: 30, BearingDeg: 90, Callsign: "ANA456"})
	s.IssueApproachClearance("JAL123")
	s.IssueHeading("ANA456", 180)
	s.IssueAltitude("ANA456", 40)

	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	if err != nil {
		t.Fatal(err)
	}
	s.SetRecorder(rec)

	for range 10 {
		s.Tick()
	}
	live := s.GetState()
	s.SetRecorder(nil)
	s.Tick() // not recorded

	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.Frames() != 10 {
		t.Errorf("recorded %d frames, expected 10", rec.Frames())
	}

	frames, err := ReadRecording(&buf)
	if err != nil {
		t.Fatalf("ReadRecording: %v", err)
	}
	if len(frames) != 10 {
		t.Fatalf("read %d frames, expected 10", len(frames))
	}
	for i, f := range frames {
		if !f.SimTime.Equal(testStartTime.Add(time.Duration(i+1) * TickSeconds * time.Second)) {
			t.Errorf("frame %d: sim time %v", i, f.SimTime)
		}
		if len(f.Aircraft) != 2 {
			t.Errorf("frame %d: %d aircraft", i, len(f.Aircraft))
		}
	}

	last := frames[len(frames)-1]
	if !reflect.DeepEqual(last.Aircraft, live.Aircraft) {
		t.Errorf("last frame doesn't match the state after the final recorded tick:\n%v\n%v",
			last.Aircraft, live.Aircraft)
	}
	if ac := last.Aircraft[0]; ac.Callsign != "ANA456" || ac.Altitude != 35 || *ac.Command.Altitude != 40 {
		t.Errorf("unexpected aircraft state %s", ac.Summary())
	}
}

func TestReadRecordingEmpty(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	frames, err := ReadRecording(&buf)
	if err != nil || len(frames) != 0 {
		t.Errorf("got %d frames, error %v; expected none", len(frames), err)
	}
}
