// Package bricksculpt is an interactive brick sculpting session: a modal
// state machine that turns pointer and key input into add, remove, split,
// merge and paint edits on a brick grid.
package bricksculpt

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/gekko3d/bricksculpt/config"
	"github.com/gekko3d/bricksculpt/undo"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/bricks"
	"github.com/gekko3d/bricksculpt/voxelrt/rt/editor"
)

type point struct {
	X, Y float64
}

// farPointer guarantees the first sample of a stroke exceeds every threshold.
var farPointer = point{-1000, -1000}

// Options wires a session to its grid and host collaborators. Grid and
// Picker are required.
type Options struct {
	Grid     *bricks.Grid
	Picker   editor.Picker
	Redrawer Redrawer
	Window   Window
	History  History
	Config   *config.Config
	Logger   Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
	Mode  Mode
}

// Session is one modal sculpt invocation. It is driven by a single
// goroutine through Handle or Run.
type Session struct {
	ID string

	grid    *bricks.Grid
	picker  editor.Picker
	redraw  Redrawer
	window  Window
	history History
	cfg     *config.Config
	keymap  Keymap
	log     Logger
	now     func() time.Time

	state              State
	nextState          State
	stateTransitioning bool
	mode               Mode
	status             Status

	pointer     point
	lastPointer point
	moved       float64
	mods        Modifiers
	hovering    bool
	hovered     bricks.Key
	hit         editor.Hit
	cursor      Cursor
	header      string
	material    string
	releasedAt  time.Time
	lastResult  Result

	added            keySet
	mergeCandidates  keySet
	deletedByCascade keySet
	targeted         keySet
	touched          keySet
	// commitMerge collects what draw and paint edits left behind for the
	// commit-time merge. Splits never enter it.
	commitMerge      keySet

	solo soloLayer
}

func NewSession(opts Options) (*Session, error) {
	if opts.Grid == nil {
		return nil, ErrNoGrid
	}
	if opts.Picker == nil {
		return nil, ErrNoPicker
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	km, err := ParseKeymap(cfg.Keymap)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		ID:       uuid.NewString(),
		grid:     opts.Grid,
		picker:   opts.Picker,
		redraw:   opts.Redrawer,
		window:   opts.Window,
		history:  opts.History,
		cfg:      cfg,
		keymap:   km,
		log:      opts.Logger,
		now:      opts.Clock,
		mode:     opts.Mode,
		material: cfg.Model.Material,
	}
	if s.redraw == nil {
		s.redraw = NewBrickScene(s.grid)
	}
	if s.window == nil {
		s.window = nopWindow{}
	}
	if s.history == nil {
		s.history = undo.NewStack(s.grid, 0)
	}
	if s.log == nil {
		s.log = NewNopLogger()
	}
	s.log = With(s.log, "session", s.ID)
	if s.now == nil {
		s.now = time.Now
	}
	if cp, ok := s.history.(checkpointer); ok {
		cp.PushClean("bricksculpt " + s.mode.String())
	}

	s.log.Infof("started in %s mode on %s", s.mode, s.grid.Source)
	s.state = StateMain
	s.callPhase(s.state, enter, Event{}, Actions{})
	for s.stateTransitioning {
		s.stateTransitioning = false
		s.executeChangeState(s.nextState, Event{}, Actions{})
	}
	return s, nil
}

func (s *Session) State() State         { return s.state }
func (s *Session) Mode() Mode           { return s.mode }
func (s *Session) Status() Status       { return s.status }
func (s *Session) Grid() *bricks.Grid   { return s.grid }
func (s *Session) LastResult() Result   { return s.lastResult }
func (s *Session) Material() string     { return s.material }
func (s *Session) SetMaterial(m string) { s.material = m }

// Touched lists every key changed since the session began, in order.
func (s *Session) Touched() []bricks.Key { return s.touched.Keys() }

// Handle processes one event and returns the resulting status. Events
// after the session ended are ignored. A panic while handling cancels the
// session.
func (s *Session) Handle(ev Event) (status Status) {
	if s.status != StatusRunning {
		return s.status
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("%s while handling %s: %v", s.state, ev, r)
			s.cancel()
			status = s.status
		}
	}()

	if ev.Type != EventTimer {
		s.pointer = point{ev.X, ev.Y}
		s.mods = ev.Mods
	} else {
		ev.X, ev.Y, ev.Mods = s.pointer.X, s.pointer.Y, s.mods
	}
	acts := s.keymap.Resolve(ev)

	if s.handleSolo(ev) {
		return s.status
	}
	// undo is owned by the session until it ends
	if ev.Type == EventPress && ev.Key == KeyZ && ev.Mods.Ctrl {
		return s.status
	}
	if ev.Type == EventRelease && (ev.Key.IsAlt() || ev.Key.IsShift()) &&
		(s.state == StateMergeSplitWait || s.state == StateSplitting) {
		s.redraw.DeselectAll()
	}

	s.step(ev, acts)
	return s.status
}

// Run drives the session from events until it finishes, is cancelled or
// ctx is done. Timer events are injected every tick interval; configs
// received on reloads are applied between events.
func (s *Session) Run(ctx context.Context, events <-chan Event, reloads <-chan *config.Config) (Status, error) {
	if s.status != StatusRunning {
		return s.status, ErrSessionClosed
	}
	ticker := time.NewTicker(s.cfg.Thresholds.TickInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.cancel()
			return s.status, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				s.cancel()
				return s.status, ErrEventsClosed
			}
			if st := s.Handle(ev); st != StatusRunning {
				return st, nil
			}
		case <-ticker.C:
			if st := s.Handle(Event{Type: EventTimer}); st != StatusRunning {
				return st, nil
			}
		case cfg := <-reloads:
			if err := s.Reconfigure(cfg); err != nil {
				s.log.Warnf("keeping previous config: %v", err)
				continue
			}
			ticker.Reset(s.cfg.Thresholds.TickInterval.Duration)
		}
	}
}

// Reconfigure swaps thresholds, keymap and logging settings. The grid and
// the current stroke are unaffected.
func (s *Session) Reconfigure(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("reconfigure: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}
	km, err := ParseKeymap(cfg.Keymap)
	if err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}
	s.cfg = cfg
	s.keymap = km
	if cfg.Model.Material != "" {
		s.material = cfg.Model.Material
	}
	s.log.SetDebug(cfg.Logging.Debug)
	s.log.Infof("configuration reloaded")
	return nil
}

func (s *Session) travel() float64 {
	return math.Abs(s.pointer.X-s.lastPointer.X) + math.Abs(s.pointer.Y-s.lastPointer.Y)
}

// updateHover picks under the pointer. A hit records the travel since the
// previous hit in moved and re-anchors there. allowSolo enables the Ctrl
// solo trigger, which only applies between strokes.
func (s *Session) updateHover(allowSolo bool) {
	hit, ok := s.picker.Pick(s.pointer.X, s.pointer.Y, s.grid.Source)
	var root bricks.Key
	if ok {
		k := hit.Key
		if hit.ObjectName != "" {
			if kk, found := s.grid.KeyFromName(hit.ObjectName); found {
				k = kk
			}
		}
		root, ok = s.grid.Root(k)
	}
	if !ok {
		s.hovering = false
		s.moved = 0
		s.setCursor(CursorDefault)
		s.setHeader("")
		return
	}

	s.moved = s.travel()
	s.lastPointer = s.pointer
	s.hovering = true
	s.hovered = root
	s.hit = hit
	if s.mode == ModePaint {
		s.setCursor(CursorPaintBrush)
	}
	s.setHeader(s.grid.Describe(root))

	if allowSolo {
		s.maybeSolo()
	}
}

func (s *Session) setCursor(c Cursor) {
	if c == s.cursor {
		return
	}
	s.cursor = c
	s.window.SetCursor(c)
}

func (s *Session) setHeader(text string) {
	if text == s.header {
		return
	}
	s.header = text
	s.window.SetHeaderText(text)
}

// dispatch records the outcome of an edit operation.
func (s *Session) dispatch(r Result) {
	s.lastResult = r
	if r.OK {
		return
	}
	switch r.Kind {
	case ReportError:
		s.log.Errorf("%s", r.Message)
	case ReportWarning:
		s.log.Warnf("%s", r.Message)
	default:
		s.log.Infof("%s", r.Message)
	}
}
