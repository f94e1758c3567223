package bricksculpt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gekko3d/bricksculpt/config"
)

// Action is a named user intent resolved from raw input through the keymap.
type Action int

const (
	ActionSwitchDraw Action = iota
	ActionSwitchMergeSplit
	ActionSwitchPaint
	ActionAddBrick
	ActionRemoveBrick
	ActionSplit
	ActionMerge
	ActionPaint
	ActionCommit
	ActionCancel
	numActions
)

var actionNames = [numActions]string{
	ActionSwitchDraw:       "switch_mode draw",
	ActionSwitchMergeSplit: "switch_mode merge_split",
	ActionSwitchPaint:      "switch_mode paint",
	ActionAddBrick:         "add brick",
	ActionRemoveBrick:      "remove brick",
	ActionSplit:            "split",
	ActionMerge:            "merge",
	ActionPaint:            "paint",
	ActionCommit:           "commit",
	ActionCancel:           "cancel",
}

func (a Action) String() string {
	if a >= 0 && a < numActions {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Binding is a key with the exact modifier set it must be pressed with.
type Binding struct {
	Key  Key
	Mods Modifiers
}

func (b Binding) String() string {
	if mods := b.Mods.String(); mods != "" {
		return mods + "+" + b.Key.String()
	}
	return b.Key.String()
}

// ParseBinding parses "LEFTMOUSE", "ALT+LEFTMOUSE", "CTRL+SHIFT+Z" and so on.
func ParseBinding(s string) (Binding, error) {
	parts := strings.Split(s, "+")
	var b Binding
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToUpper(strings.TrimSpace(p)) {
		case "ALT":
			b.Mods.Alt = true
		case "SHIFT":
			b.Mods.Shift = true
		case "CTRL", "CONTROL":
			b.Mods.Ctrl = true
		default:
			return Binding{}, fmt.Errorf("binding %q: unknown modifier %q", s, p)
		}
	}
	k, err := ParseKeyName(parts[len(parts)-1])
	if err != nil {
		return Binding{}, fmt.Errorf("binding %q: %w", s, err)
	}
	b.Key = k
	return b, nil
}

// Keymap maps each action to the bindings that trigger it.
type Keymap map[Action][]Binding

// ParseKeymap converts action-name to binding-string lists as found in config.
func ParseKeymap(m map[string][]string) (Keymap, error) {
	km := make(Keymap, len(m))
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, s := range m[name] {
			b, err := ParseBinding(s)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", name, err)
			}
			km[a] = append(km[a], b)
		}
	}
	return km, nil
}

func DefaultKeymap() Keymap {
	km, err := ParseKeymap(config.DefaultKeymap())
	if err != nil {
		panic(err)
	}
	return km
}

// ActionSet is a bit set of actions.
type ActionSet uint32

func (s ActionSet) Has(a Action) bool { return s&(1<<uint(a)) != 0 }

func (s *ActionSet) add(a Action) { *s |= 1 << uint(a) }

func (s ActionSet) String() string {
	var names []string
	for a := Action(0); a < numActions; a++ {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Actions are the actions an event presses and releases.
type Actions struct {
	Pressed  ActionSet
	Released ActionSet
}

// Resolve matches ev against the keymap. A press must carry exactly the
// bound modifiers; a release matches on the key alone so that letting go
// of a modifier first still ends the stroke.
func (km Keymap) Resolve(ev Event) Actions {
	var acts Actions
	if ev.Type != EventPress && ev.Type != EventRelease {
		return acts
	}
	for a, bindings := range km {
		for _, b := range bindings {
			if b.Key != ev.Key {
				continue
			}
			if ev.Type == EventRelease {
				acts.Released.add(a)
			} else if b.Mods == ev.Mods {
				acts.Pressed.add(a)
			}
		}
	}
	return acts
}
