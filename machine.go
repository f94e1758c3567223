package bricksculpt

import "fmt"

// State is a node of the sculpt state machine.
type State int

const (
	StateMain State = iota
	StateDrawWait
	StateAdding
	StateRemoving
	StateMergeSplitWait
	StateMerging
	StateSplitting
	StatePaintWait
	StatePainting
)

var stateNames = map[State]string{
	StateMain:           "main",
	StateDrawWait:       "draw/wait",
	StateAdding:         "draw/adding",
	StateRemoving:       "draw/removing",
	StateMergeSplitWait: "merge_split/wait",
	StateMerging:        "merge_split/merging",
	StateSplitting:      "merge_split/splitting",
	StatePaintWait:      "paint/wait",
	StatePainting:       "paint/painting",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Active reports whether s is a stroke state entered by a primary-action press.
func (s State) Active() bool {
	switch s {
	case StateAdding, StateRemoving, StateMerging, StateSplitting, StatePainting:
		return true
	}
	return false
}

type Mode int

const (
	ModeDraw Mode = iota
	ModeMergeSplit
	ModePaint
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "DRAW"
	case ModeMergeSplit:
		return "MERGE/SPLIT"
	case ModePaint:
		return "PAINT"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) waitState() State {
	switch m {
	case ModeMergeSplit:
		return StateMergeSplitWait
	case ModePaint:
		return StatePaintWait
	}
	return StateDrawWait
}

type statePhase int

const (
	enter   statePhase = 0
	execute statePhase = 1
	exit    statePhase = 2
)

type phaseFn func(s *Session, ev Event, acts Actions)

type stateSchedule map[State]map[statePhase][]phaseFn

func (sched stateSchedule) on(state State, phase statePhase, fns ...phaseFn) stateSchedule {
	phases, ok := sched[state]
	if !ok {
		phases = make(map[statePhase][]phaseFn)
		sched[state] = phases
	}
	phases[phase] = append(phases[phase], fns...)
	return sched
}

var schedule = buildSchedule()

func buildSchedule() stateSchedule {
	sched := make(stateSchedule)
	sched.on(StateMain, enter, (*Session).dispatchMode)

	sched.on(StateDrawWait, enter, (*Session).enterWait)
	sched.on(StateDrawWait, execute, (*Session).executeDrawWait)
	sched.on(StateMergeSplitWait, enter, (*Session).enterWait)
	sched.on(StateMergeSplitWait, execute, (*Session).executeMergeSplitWait)
	sched.on(StatePaintWait, enter, (*Session).enterWait)
	sched.on(StatePaintWait, execute, (*Session).executePaintWait)

	for _, st := range []State{StateAdding, StateRemoving, StateMerging, StateSplitting, StatePainting} {
		sched.on(st, enter, (*Session).enterActive)
		sched.on(st, exit, (*Session).exitActive)
	}
	sched.on(StateAdding, execute, (*Session).executeAdding)
	sched.on(StateRemoving, execute, (*Session).executeRemoving)
	sched.on(StateMerging, execute, (*Session).executeMerging)
	sched.on(StateSplitting, execute, (*Session).executeSplitting)
	sched.on(StatePainting, enter, (*Session).enterPainting)
	sched.on(StatePainting, execute, (*Session).executePainting)
	return sched
}

func (s *Session) callPhase(state State, phase statePhase, ev Event, acts Actions) {
	for _, fn := range schedule[state][phase] {
		fn(s, ev, acts)
	}
}

func (s *Session) changeState(newState State) {
	s.nextState = newState
	s.stateTransitioning = true
}

func (s *Session) executeChangeState(newState State, ev Event, acts Actions) {
	s.log.Debugf("%s -> %s", s.state, newState)
	s.callPhase(s.state, exit, ev, acts)
	s.state = newState
	s.callPhase(s.state, enter, ev, acts)
}

// step runs the execute phase of the current state and then every
// transition it requested, including ones requested by enter phases.
func (s *Session) step(ev Event, acts Actions) {
	s.callPhase(s.state, execute, ev, acts)
	for s.stateTransitioning && s.status == StatusRunning {
		s.stateTransitioning = false
		s.executeChangeState(s.nextState, ev, acts)
	}
}

func (s *Session) dispatchMode(Event, Actions) {
	s.changeState(s.mode.waitState())
}

// waitCommon handles the bindings every wait state shares and reports
// whether the event was consumed.
func (s *Session) waitCommon(acts Actions) bool {
	p := acts.Pressed
	switch {
	case p.Has(ActionCommit):
		s.commit()
	case p.Has(ActionCancel):
		s.cancel()
	case p.Has(ActionSwitchDraw) && s.mode != ModeDraw:
		s.switchMode(ModeDraw)
	case p.Has(ActionSwitchMergeSplit) && s.mode != ModeMergeSplit:
		s.switchMode(ModeMergeSplit)
	case p.Has(ActionSwitchPaint) && s.mode != ModePaint:
		s.switchMode(ModePaint)
	default:
		return false
	}
	return true
}

func (s *Session) switchMode(m Mode) {
	s.mode = m
	s.changeState(StateMain)
}

func (s *Session) enterWait(Event, Actions) {
	s.added.Reset()
	s.header = ""
	s.window.SetHeaderText("")
}

func (s *Session) executeDrawWait(ev Event, acts Actions) {
	s.updateHover(true)
	if s.waitCommon(acts) {
		return
	}
	switch {
	case acts.Pressed.Has(ActionAddBrick):
		s.changeState(StateAdding)
	case acts.Pressed.Has(ActionRemoveBrick):
		s.changeState(StateRemoving)
	}
}

func (s *Session) executeMergeSplitWait(ev Event, acts Actions) {
	s.updateHover(true)
	if s.waitCommon(acts) {
		return
	}
	switch {
	case acts.Pressed.Has(ActionMerge):
		s.changeState(StateMerging)
	case acts.Pressed.Has(ActionSplit):
		s.changeState(StateSplitting)
	}
}

func (s *Session) executePaintWait(ev Event, acts Actions) {
	s.updateHover(true)
	if s.waitCommon(acts) {
		return
	}
	if acts.Pressed.Has(ActionPaint) {
		s.changeState(StatePainting)
	}
}

func (s *Session) enterActive(Event, Actions) {
	s.lastPointer = farPointer
}

func (s *Session) enterPainting(Event, Actions) {
	s.setCursor(CursorPaintBrush)
}

func (s *Session) exitActive(Event, Actions) {
	s.normalizeRelease()
	s.releasedAt = s.now()
	s.deletedByCascade.Reset()
}

// The Active execute phases resample the hover, dispatch their operation
// when the pointer moved far enough since the previous sample and end the
// stroke when the action that started it is released.

func (s *Session) executeAdding(ev Event, acts Actions) {
	s.updateHover(false)
	if s.hovering {
		switch {
		case ev.Mods.Alt:
			if s.moved > s.cfg.Thresholds.RemovePixels && s.added.Has(s.hovered) {
				s.dispatch(s.removeBrick(ev.Mods))
			}
		case s.moved > s.cfg.Thresholds.DragPixels && !s.added.Has(s.hovered):
			s.dispatch(s.addBrick())
		}
	}
	if acts.Released.Has(ActionAddBrick) {
		s.changeState(StateDrawWait)
	}
}

func (s *Session) executeRemoving(ev Event, acts Actions) {
	s.updateHover(false)
	if s.hovering && s.moved > s.cfg.Thresholds.RemovePixels {
		s.dispatch(s.removeBrick(ev.Mods))
	}
	if acts.Released.Has(ActionRemoveBrick) {
		s.changeState(StateDrawWait)
	}
}

func (s *Session) executeMerging(ev Event, acts Actions) {
	s.updateHover(false)
	if s.hovering && s.moved > s.cfg.Thresholds.DragPixels && !s.added.Has(s.hovered) {
		s.dispatch(s.mergeDrag())
	}
	if acts.Released.Has(ActionMerge) {
		s.changeState(StateMergeSplitWait)
	}
}

func (s *Session) executeSplitting(ev Event, acts Actions) {
	s.updateHover(false)
	if s.hovering && s.moved > s.cfg.Thresholds.DragPixels && !s.added.Has(s.hovered) {
		s.dispatch(s.split(ev.Mods))
	}
	if acts.Released.Has(ActionSplit) {
		s.changeState(StateMergeSplitWait)
	}
}

func (s *Session) executePainting(ev Event, acts Actions) {
	s.updateHover(false)
	if s.hovering && s.moved > s.cfg.Thresholds.DragPixels && s.paintable(s.hovered) {
		s.dispatch(s.paint())
	}
	if acts.Released.Has(ActionPaint) {
		s.changeState(StatePaintWait)
	}
}
