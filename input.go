package bricksculpt

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key or mouse button.
type Key int

const (
	KeyNone Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

var keyNames = map[Key]string{
	KeySpace:          "SPACE",
	KeyEnter:          "RET",
	KeyEscape:         "ESC",
	KeyTab:            "TAB",
	KeyBackspace:      "BACK_SPACE",
	KeyDelete:         "DEL",
	KeyLeftShift:      "LEFT_SHIFT",
	KeyRightShift:     "RIGHT_SHIFT",
	KeyLeftControl:    "LEFT_CTRL",
	KeyRightControl:   "RIGHT_CTRL",
	KeyLeftAlt:        "LEFT_ALT",
	KeyRightAlt:       "RIGHT_ALT",
	MouseButtonLeft:   "LEFTMOUSE",
	MouseButtonRight:  "RIGHTMOUSE",
	MouseButtonMiddle: "MIDDLEMOUSE",
}

var keysByName = map[string]Key{
	"ENTER":  KeyEnter,
	"RETURN": KeyEnter,
	"ESCAPE": KeyEscape,
}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + int(k-Key0)))
	}
	for k, name := range keyNames {
		keysByName[name] = k
	}
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// ParseKeyName accepts names such as "D", "RET", "ESC" or "LEFTMOUSE".
func ParseKeyName(name string) (Key, error) {
	if k, ok := keysByName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return KeyNone, fmt.Errorf("unknown key %q", name)
}

func (k Key) IsCtrl() bool  { return k == KeyLeftControl || k == KeyRightControl }
func (k Key) IsAlt() bool   { return k == KeyLeftAlt || k == KeyRightAlt }
func (k Key) IsShift() bool { return k == KeyLeftShift || k == KeyRightShift }

type EventType int

const (
	EventMove EventType = iota
	EventPress
	EventRelease
	// EventTimer is the periodic tick delivered while the session runs.
	EventTimer
)

func (t EventType) String() string {
	switch t {
	case EventMove:
		return "MOVE"
	case EventPress:
		return "PRESS"
	case EventRelease:
		return "RELEASE"
	case EventTimer:
		return "TIMER"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Modifiers is the modifier state at the time of an event.
type Modifiers struct {
	Alt   bool
	Shift bool
	Ctrl  bool
}

func (m Modifiers) String() string {
	var parts []string
	if m.Ctrl {
		parts = append(parts, "CTRL")
	}
	if m.Alt {
		parts = append(parts, "ALT")
	}
	if m.Shift {
		parts = append(parts, "SHIFT")
	}
	return strings.Join(parts, "+")
}

// Event is one input sample. X and Y are window pixel coordinates of the
// pointer, set on every event type.
type Event struct {
	Type EventType
	Key  Key
	Mods Modifiers
	X, Y float64
}

func (e Event) String() string {
	switch e.Type {
	case EventPress, EventRelease:
		if mods := e.Mods.String(); mods != "" {
			return fmt.Sprintf("%s %s+%s @%.0f,%.0f", e.Type, mods, e.Key, e.X, e.Y)
		}
		return fmt.Sprintf("%s %s @%.0f,%.0f", e.Type, e.Key, e.X, e.Y)
	}
	return fmt.Sprintf("%s @%.0f,%.0f", e.Type, e.X, e.Y)
}
