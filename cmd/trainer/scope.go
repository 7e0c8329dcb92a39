// cmd/trainer/scope.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"fmt"
	gomath "math"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/mmp/atctrainer/log"
	"github.com/mmp/atctrainer/math"
	"github.com/mmp/atctrainer/nav"
	"github.com/mmp/atctrainer/sim"
	"github.com/mmp/atctrainer/util"

	"github.com/gdamore/tcell/v2"
)

// ScopeMode determines what a click on the scope does.
type ScopeMode int

const (
	SelectMode ScopeMode = iota
	SpawnMode
	MeasureMode
	NumScopeModes
)

func (m ScopeMode) String() string {
	return [...]string{"SELECT", "SPAWN", "MEASURE"}[m]
}

const (
	panelWidth     = 44
	redrawInterval = 250 * time.Millisecond
	// Clicks within this many cells of a blip select it.
	selectRadius = 2
)

var (
	styleDefault  = tcell.StyleDefault
	styleRing     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCourse   = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleBlip     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHeader   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

///////////////////////////////////////////////////////////////////////////
// viewport

// viewport maps between scope coordinates and terminal cells. The
// airport is at the center; terminal cells are roughly twice as tall as
// they are wide, so horizontal distances are doubled.
type viewport struct {
	cx, cy int
	scale  float64 // cells per nm, vertically
}

func makeViewport(width, height int, rangeNm float64) viewport {
	radius := min(float64(height/2-1), float64(width/2-1)/2)
	return viewport{
		cx:    width / 2,
		cy:    height / 2,
		scale: max(radius, 1) / rangeNm,
	}
}

func (v viewport) toScreen(p math.Polar) (int, int) {
	c := math.PolarToCartesian(p)
	return v.cx + int(gomath.Round(2*c[0]*v.scale)), v.cy - int(gomath.Round(c[1]*v.scale))
}

func (v viewport) toScope(x, y int) math.Polar {
	return math.CartesianToPolar([2]float64{
		float64(x-v.cx) / (2 * v.scale),
		float64(v.cy-y) / v.scale,
	})
}

///////////////////////////////////////////////////////////////////////////
// Scope

type Scope struct {
	sim    *sim.Sim
	sub    *sim.EventsSubscription
	config *Config
	lg     *log.Logger

	mode         ScopeMode
	selected     string
	input        string
	message      string
	messageError bool
	measureFrom  *math.Polar

	mouseDown  bool
	vp         viewport
	scopeWidth int
}

func NewScope(s *sim.Sim, sub *sim.EventsSubscription, config *Config, lg *log.Logger) *Scope {
	return &Scope{sim: s, sub: sub, config: config, lg: lg}
}

// Run draws the scope and handles input until the user quits or ctx is
// canceled.
func (sc *Scope) Run(ctx context.Context, screen tcell.Screen) error {
	defer sc.sub.Unsubscribe()

	// PollEvent blocks, so wake it up periodically so that aircraft
	// motion is drawn even without input.
	go func() {
		ticker := time.NewTicker(redrawInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				screen.PostEvent(tcell.NewEventInterrupt(nil))
				return
			case <-ticker.C:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		sc.processEvents()
		sc.render(screen)
		screen.Show()

		ev := screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := sc.handleEvent(screen, ev); quit {
			sc.config.SimRate = sc.sim.GetState().SimRate
			return nil
		}
	}
}

func (sc *Scope) setMessage(msg string, isError bool) {
	sc.message, sc.messageError = msg, isError
}

func (sc *Scope) processEvents() {
	for _, ev := range sc.sub.Get() {
		switch ev.Type {
		case sim.CommandRejectedEvent:
			sc.setMessage(util.Select(ev.Callsign != "", ev.Callsign+": ", "")+ev.Text, true)
		case sim.LandedEvent:
			sc.setMessage(ev.Callsign+" landed", false)
			if ev.Callsign == sc.selected {
				sc.selected = ""
			}
		case sim.DeletedEvent:
			if ev.Callsign == sc.selected {
				sc.selected = ""
			}
		case sim.ResetEvent:
			sc.selected = ""
			sc.measureFrom = nil
		case sim.StatusMessageEvent:
			sc.setMessage(ev.Text, false)
		}
	}
}

func (sc *Scope) handleEvent(screen tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !sc.mouseDown {
			sc.click(ev.Position())
		}
		sc.mouseDown = down

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyCtrlQ:
			return true

		case tcell.KeyEscape:
			if sc.input != "" {
				sc.input = ""
			} else {
				sc.selected = ""
				sc.measureFrom = nil
			}
			sc.setMessage("", false)

		case tcell.KeyEnter:
			sc.runInput()

		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(sc.input) > 0 {
				sc.input = sc.input[:len(sc.input)-1]
			}

		case tcell.KeyTab:
			sc.mode = (sc.mode + 1) % NumScopeModes
			sc.measureFrom = nil

		case tcell.KeyF2:
			idx := slices.Index(ScopeRanges, sc.config.ScopeRange)
			sc.config.ScopeRange = ScopeRanges[(idx+1)%len(ScopeRanges)]

		case tcell.KeyF3:
			sc.config.ShowHistory = !sc.config.ShowHistory

		case tcell.KeyRune:
			if r := ev.Rune(); r < 0x80 {
				sc.input += string(r)
			}
		}
	}
	return false
}

var aircraftCommandRe = regexp.MustCompile(`^([HA][0-9.]+|C|X)$`)

// commandLine returns the command line to run for the given input,
// prefixing the selected aircraft's callsign when the input starts with
// an aircraft command.
func commandLine(input, selected string) string {
	fields := strings.Fields(strings.ToUpper(input))
	if selected != "" && len(fields) > 0 && aircraftCommandRe.MatchString(fields[0]) {
		return selected + " " + strings.Join(fields, " ")
	}
	return strings.Join(fields, " ")
}

func (sc *Scope) runInput() {
	line := commandLine(sc.input, sc.selected)
	if line == "" {
		return
	}

	result, err := sc.sim.RunCommand(line)
	if err != nil {
		sc.setMessage(fmt.Sprintf("%s: %v", line, err), true)
		return
	}
	sc.input = ""
	sc.setMessage(result, false)
	if strings.HasPrefix(line, "SPAWN") && result != "" {
		sc.selected = result
	}
}

func (sc *Scope) click(x, y int) {
	if x >= sc.scopeWidth {
		// panel
		return
	}
	p := sc.vp.toScope(x, y)

	switch sc.mode {
	case SelectMode:
		sc.selected = sc.pick(x, y)

	case SpawnMode:
		cs, err := sc.sim.Spawn(sim.SpawnRequest{RangeNm: p.RangeNm, BearingDeg: p.BearingDeg})
		if err == nil {
			sc.selected = cs
			sc.setMessage("spawned "+cs, false)
		}

	case MeasureMode:
		if sc.measureFrom == nil {
			sc.measureFrom = &p
			sc.setMessage("measuring from "+p.String(), false)
		} else {
			rb := math.RangeBearing(*sc.measureFrom, p)
			sc.setMessage(fmt.Sprintf("%.1fnm %s", rb.RangeNm, math.FormatHeading(rb.BearingDeg)), false)
			sc.measureFrom = nil
		}
	}
}

// pick returns the callsign of the aircraft closest to the given cell,
// or the empty string if none is close enough.
func (sc *Scope) pick(x, y int) string {
	best, bestDist := "", selectRadius+1
	for _, ac := range sc.sim.GetState().Aircraft {
		ax, ay := sc.vp.toScreen(ac.Position)
		// Cells are narrow, so horizontal distance counts for half.
		if d := max(math.Abs(ax-x)/2, math.Abs(ay-y)); d < bestDist {
			best, bestDist = ac.Callsign, d
		}
	}
	return best
}

///////////////////////////////////////////////////////////////////////////
// Drawing

func (sc *Scope) render(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	scopeWidth := max(width-panelWidth, 10)
	scopeHeight := max(height-2, 4)

	sc.vp = makeViewport(scopeWidth, scopeHeight, sc.config.ScopeRange)
	sc.scopeWidth = scopeWidth
	state := sc.sim.GetState()

	sc.drawRings(screen, scopeWidth, scopeHeight)
	sc.drawFinalCourse(screen, scopeWidth, scopeHeight)
	for _, ac := range slices.Backward(state.Aircraft) {
		sc.drawAircraft(screen, ac, scopeWidth, scopeHeight)
	}
	sc.drawPanel(screen, state, scopeWidth, width-scopeWidth, scopeHeight)

	drawText(screen, 0, height-2, width, styleDefault, "> "+sc.input+"_")
	drawText(screen, 0, height-1, width, util.Select(sc.messageError, styleError, styleDim), sc.message)
}

func setCell(screen tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
	if x >= 0 && x < w && y >= 0 && y < h {
		screen.SetContent(x, y, r, nil, style)
	}
}

func (sc *Scope) drawRings(screen tcell.Screen, w, h int) {
	spacing := util.Select(sc.config.ScopeRange > 20, 10., 5.)
	for r := spacing; r <= sc.config.ScopeRange; r += spacing {
		for brg := 0.; brg < 360; brg += 2 {
			x, y := sc.vp.toScreen(math.Polar{RangeNm: r, BearingDeg: brg})
			setCell(screen, x, y, w, h, '.', styleRing)
		}
	}
	setCell(screen, sc.vp.cx, sc.vp.cy, w, h, '+', styleHeader)
}

// drawFinalCourse draws the extended runway centerline, which runs
// south from the airport.
func (sc *Scope) drawFinalCourse(screen tcell.Screen, w, h int) {
	model := sc.sim.Model()
	brg := math.OppositeHeading(model.FinalCourse)
	step := 1 / sc.vp.scale
	for r := step; r <= sc.config.ScopeRange; r += step {
		x, y := sc.vp.toScreen(math.Polar{RangeNm: r, BearingDeg: brg})
		setCell(screen, x, y, w, h, ':', styleCourse)
	}
}

func dataBlock(ac nav.Aircraft) []string {
	return []string{
		ac.Callsign,
		"HDG " + math.FormatHeading(ac.DisplayHeading()),
		fmt.Sprintf("%03d %02d", ac.Altitude, int(ac.IAS/10)),
	}
}

func (sc *Scope) drawAircraft(screen tcell.Screen, ac nav.Aircraft, w, h int) {
	style := util.Select(ac.Callsign == sc.selected, styleSelected, styleBlip)
	x, y := sc.vp.toScreen(ac.Position)

	// One-minute leader line.
	lx, ly := sc.vp.toScreen(ac.Position.Offset(ac.Heading, ac.IAS/60))
	setCell(screen, lx, ly, w, h, '\'', style)

	setCell(screen, x, y, w, h, '*', style)
	for i, line := range dataBlock(ac) {
		for j, r := range line {
			setCell(screen, x+2+j, y-1+i, w, h, r, style)
		}
	}
}

func (sc *Scope) drawPanel(screen tcell.Screen, state sim.State, x, width, height int) {
	y := 0
	line := func(style tcell.Style, s string) {
		if y < height {
			drawText(screen, x, y, width, style, s)
			y++
		}
	}

	status := fmt.Sprintf("%s  x%g", state.SimTime.Format(time.TimeOnly), state.SimRate)
	if state.Paused {
		status += "  PAUSED"
	}
	line(styleHeader, status)
	line(styleDim, fmt.Sprintf("%s  %gnm  %d aircraft", sc.mode, sc.config.ScopeRange, len(state.Aircraft)))
	line(styleDim, "tab mode  F2 range  F3 history  ^C quit")
	line(styleDefault, "")

	if ac, ok := sc.sim.Aircraft(sc.selected); ok {
		line(styleSelected, ac.Summary())
		line(styleDim, fmt.Sprintf("%s %.1fnm %s  %s", ac.Type, ac.Position.RangeNm,
			math.ShortCompass(ac.Position.BearingDeg), sc.sim.Model().InterceptState(ac)))
		line(styleDefault, "")
	}

	if sc.config.ShowHistory {
		for _, item := range state.History {
			line(styleDefault, fmt.Sprintf("%s %-8s %s", item.Time.Format(time.TimeOnly), item.Callsign, item.Action))
		}
	}
}

func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		if col >= maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
	// Fill remaining space
	for col < maxWidth {
		screen.SetContent(x+col, y, ' ', nil, style)
		col++
	}
}
