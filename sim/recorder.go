// sim/recorder.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mmp/atctrainer/nav"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Frame is the state of all aircraft after a tick.
type Frame struct {
	SimTime  time.Time      `msgpack:"t"`
	Aircraft []nav.Aircraft `msgpack:"ac"`
}

// Recorder writes a flight recording: a sequence of msgpack-encoded
// Frames, compressed with zstd. It is meant for after-action review; it
// isn't possible to resume a session from a recording.
type Recorder struct {
	zw    *zstd.Encoder
	enc   *msgpack.Encoder
	count int
}

func NewRecorder(w io.Writer) (*Recorder, error) {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	return &Recorder{zw: zw, enc: msgpack.NewEncoder(zw)}, nil
}

func (r *Recorder) Record(f Frame) error {
	if err := r.enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	r.count++
	return nil
}

// Frames returns the number of frames recorded so far.
func (r *Recorder) Frames() int {
	return r.count
}

// Close flushes the recording; the underlying writer is not closed.
func (r *Recorder) Close() error {
	if err := r.zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// ReadRecording returns all of the frames in a recording written by a
// Recorder.
func ReadRecording(r io.Reader) ([]Frame, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var frames []Frame
	dec := msgpack.NewDecoder(zr)
	for {
		var f Frame
		if err := dec.Decode(&f); errors.Is(err, io.EOF) {
			return frames, nil
		} else if err != nil {
			return frames, fmt.Errorf("failed to decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
}
