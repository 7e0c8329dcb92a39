// sim/sim.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/mmp/atctrainer/log"
	"github.com/mmp/atctrainer/nav"
	"github.com/mmp/atctrainer/rand"
	"github.com/mmp/atctrainer/util"

	"github.com/brunoga/deep"
	"github.com/goforj/godump"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// TickSeconds is the amount of simulated time covered by each tick,
	// independent of the sim rate.
	TickSeconds = 4

	// MaxHistory is the number of history entries that are kept.
	MaxHistory = 200

	// ParallelThreshold is the number of aircraft above which a tick's
	// aircraft are advanced concurrently.
	ParallelThreshold = 32
)

// SimRates are the supported multipliers of wall-clock time.
var SimRates = []float64{0.5, 1, 2, 5}

type HistoryItem struct {
	Time     time.Time
	Callsign string
	Action   string
}

// State is a snapshot of the simulation for display.
type State struct {
	Session  string // identifies the run since the sim was created or last reset
	SimTime  time.Time
	SimRate  float64
	Paused   bool
	Aircraft []nav.Aircraft // newest spawn first
	History  []HistoryItem  // newest first
}

type Sim struct {
	mu util.LoggingMutex

	model *nav.Model

	aircraft []nav.Aircraft // newest spawn first
	initial  []nav.Aircraft
	history  []HistoryItem

	session   string
	simTime   time.Time
	startTime time.Time
	simRate   float64
	paused    bool

	// rateChanged is signaled when the wall-clock interval between ticks
	// changes so that Run can reset its ticker.
	rateChanged    chan struct{}
	updateTimeSlop time.Duration
	lastUpdateTime time.Time
	now            func() time.Time

	seq  int
	seed int64
	rand *rand.Rand

	eventStream  *EventStream
	recorder     *Recorder
	hitchLimiter *rate.Limiter

	lg *log.Logger
}

type NewSimConfig struct {
	Scenario  *Scenario // optional initial traffic
	Model     *nav.Model
	SimRate   float64
	Seed      int64 // 0 -> seed from the scenario or the current time
	StartTime time.Time
}

func NewSim(config NewSimConfig, es *EventStream, lg *log.Logger) (*Sim, error) {
	s := &Sim{
		model:        config.Model,
		simRate:      config.SimRate,
		seed:         config.Seed,
		startTime:    config.StartTime,
		rateChanged:  make(chan struct{}, 1),
		now:          time.Now,
		eventStream:  es,
		hitchLimiter: rate.NewLimiter(rate.Every(time.Minute), 1),
		lg:           lg,
	}

	if s.model == nil {
		s.model = nav.DefaultModel()
	}
	if s.simRate == 0 {
		s.simRate = 1
	}
	if !slices.Contains(SimRates, s.simRate) {
		return nil, fmt.Errorf("%v: %w", s.simRate, ErrInvalidSimRate)
	}
	if s.startTime.IsZero() {
		s.startTime = time.Now().UTC().Truncate(time.Second)
	}

	if sc := config.Scenario; sc != nil {
		if s.seed == 0 {
			s.seed = sc.Seed
		}
		ac, err := sc.MakeAircraft(s.model)
		if err != nil {
			return nil, err
		}
		s.initial = ac
	}
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}

	s.reset()

	lg.Info("created sim", slog.String("session", s.session), slog.Int64("seed", s.seed), slog.Float64("rate", s.simRate),
		slog.Int("aircraft", len(s.aircraft)))

	return s, nil
}

func (s *Sim) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", s.session),
		slog.Time("sim_time", s.simTime),
		slog.Float64("sim_rate", s.simRate),
		slog.Bool("paused", s.paused),
		slog.Int("aircraft", len(s.aircraft)),
		slog.Int("history", len(s.history)),
		slog.Duration("slop", s.updateTimeSlop))
}

// Model returns the flight model used to advance aircraft.
func (s *Sim) Model() *nav.Model {
	return s.model
}

// Reset restores the initial traffic, clears the history, and rewinds
// the sim clock.
func (s *Sim) Reset() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	s.reset()
	s.lg.Info("sim reset")
	s.eventStream.Post(Event{Type: ResetEvent})
	s.signalRateChange()
}

func (s *Sim) reset() {
	s.session = uuid.NewString()
	s.aircraft = deep.MustCopy(s.initial)
	s.history = nil
	s.simTime = s.startTime
	s.seq = 1
	s.rand = rand.MakeSeeded(s.seed)
	s.updateTimeSlop = 0
	s.lastUpdateTime = s.now()
}

// GetState returns a copy of the current simulation state; the caller
// may hold on to it without regard to subsequent updates.
func (s *Sim) GetState() State {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	return deep.MustCopy(State{
		Session:  s.session,
		SimTime:  s.simTime,
		SimRate:  s.simRate,
		Paused:   s.paused,
		Aircraft: s.aircraft,
		History:  s.history,
	})
}

// Aircraft returns a copy of the aircraft with the given callsign.
func (s *Sim) Aircraft(callsign string) (nav.Aircraft, bool) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if idx := s.lookup(callsign); idx != -1 {
		return deep.MustCopy(s.aircraft[idx]), true
	}
	return nav.Aircraft{}, false
}

// Dump writes a human-readable dump of the simulation state to w.
func (s *Sim) Dump(w io.Writer) {
	godump.Fdump(w, s.GetState())
}

func (s *Sim) lookup(callsign string) int {
	callsign = strings.ToUpper(strings.TrimSpace(callsign))
	return slices.IndexFunc(s.aircraft, func(ac nav.Aircraft) bool { return ac.Callsign == callsign })
}

func (s *Sim) addHistory(callsign, action string) {
	s.history = slices.Insert(s.history, 0, HistoryItem{
		Time:     s.simTime,
		Callsign: callsign,
		Action:   action,
	})
	if len(s.history) > MaxHistory {
		s.history = s.history[:MaxHistory]
	}
}

// SetRecorder starts recording every subsequent tick to r; passing nil
// stops recording.
func (s *Sim) SetRecorder(r *Recorder) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	s.recorder = r
}

///////////////////////////////////////////////////////////////////////////
// Cadence

func (s *Sim) TogglePause() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	s.paused = !s.paused
	s.lastUpdateTime = s.now() // ignore time passage...
	s.eventStream.Post(Event{Type: StatusMessageEvent, Text: util.Select(s.paused, "Paused", "Resumed")})
}

func (s *Sim) SetSimRate(r float64) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if !slices.Contains(SimRates, r) {
		return fmt.Errorf("%v: %w", r, ErrInvalidSimRate)
	}

	s.simRate = r
	s.lg.Infof("sim rate set to %v", s.simRate)
	s.eventStream.Post(Event{Type: StatusMessageEvent, Text: fmt.Sprintf("Sim rate %vx", r)})
	s.signalRateChange()
	return nil
}

func (s *Sim) signalRateChange() {
	select {
	case s.rateChanged <- struct{}{}:
	default:
	}
}

// TickInterval returns the wall-clock time between ticks at the current
// sim rate.
func (s *Sim) TickInterval() time.Duration {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	return s.tickInterval()
}

func (s *Sim) tickInterval() time.Duration {
	return time.Duration(float64(TickSeconds*time.Second) / s.simRate)
}

// Run ticks the simulation at the wall-clock cadence given by the sim
// rate until the context is canceled. A tick that has started always
// runs to completion.
func (s *Sim) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.rateChanged:
			ticker.Reset(s.TickInterval())

		case <-ticker.C:
			s.mu.Lock(s.lg)
			if !s.paused {
				s.tick()
			}
			s.mu.Unlock(s.lg)
		}
	}
}

// Update advances the simulation by the wall-clock time that has passed
// since the last call, scaled by the sim rate.
func (s *Sim) Update() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if !util.DebuggerIsRunning() {
		startUpdate := time.Now()
		defer func() {
			if d := time.Since(startUpdate); d > 200*time.Millisecond {
				s.lg.Warn("unexpectedly long Sim Update() call", slog.Duration("duration", d),
					slog.Any("sim", s))
			}
		}()
	}

	now := s.now()
	if s.paused {
		s.lastUpdateTime = now
		return
	}

	// Figure out how much time has passed since the last update: wallclock
	// time is scaled by the sim rate, then we add in any time from the
	// last update that wasn't accounted for.
	elapsed := now.Sub(s.lastUpdateTime)
	elapsed = time.Duration(s.simRate * float64(elapsed))
	s.step(elapsed)
	s.lastUpdateTime = now
}

// Step advances the simulation by the given amount of simulated time,
// running as many whole ticks as fit; the remainder is carried over to
// the next call. It returns the number of ticks that were run.
func (s *Sim) Step(elapsed time.Duration) int {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	return s.step(elapsed)
}

func (s *Sim) step(elapsed time.Duration) int {
	elapsed += s.updateTimeSlop

	tick := TickSeconds * time.Second
	n := int(elapsed / tick)
	if n > 10 && s.hitchLimiter.Allow() {
		s.lg.Warn("unexpected hitch in update rate", slog.Duration("elapsed", elapsed),
			slog.Int("ticks", n), slog.Duration("slop", s.updateTimeSlop))
	}
	for range n {
		s.tick()
	}

	s.updateTimeSlop = elapsed - time.Duration(n)*tick

	return n
}

// Tick advances every aircraft by one tick.
func (s *Sim) Tick() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	s.tick()
}

func (s *Sim) tick() {
	s.aircraft = s.advanceAll(s.aircraft)
	s.simTime = s.simTime.Add(TickSeconds * time.Second)

	s.aircraft = slices.DeleteFunc(s.aircraft, func(ac nav.Aircraft) bool {
		if !s.model.Landed(ac) {
			return false
		}
		s.lg.Info("landed", slog.Any("aircraft", ac))
		s.eventStream.Post(Event{Type: LandedEvent, Callsign: ac.Callsign})
		return true
	})

	if s.recorder != nil {
		if err := s.recorder.Record(Frame{SimTime: s.simTime, Aircraft: s.aircraft}); err != nil {
			s.lg.Errorf("recording: %v", err)
			s.recorder = nil
		}
	}
}

// advanceAll returns the aircraft advanced by one tick. Aircraft don't
// interact, so large collections are split across goroutines; each one
// writes only its own slots of the result.
func (s *Sim) advanceAll(acs []nav.Aircraft) []nav.Aircraft {
	next := make([]nav.Aircraft, len(acs))
	advance := func(start, end int) {
		for i := start; i < end; i++ {
			next[i] = s.model.AdvanceAt(acs[i], TickSeconds, s.simTime)
		}
	}

	if len(acs) <= ParallelThreshold {
		advance(0, len(acs))
		return next
	}

	var eg errgroup.Group
	nw := runtime.NumCPU()
	eg.SetLimit(nw)
	chunk := (len(acs) + nw - 1) / nw
	for start := 0; start < len(acs); start += chunk {
		end := min(start+chunk, len(acs))
		eg.Go(func() error {
			advance(start, end)
			return nil
		})
	}
	eg.Wait()

	return next
}
