package bricksculpt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyName(t *testing.T) {
	cases := map[string]Key{
		"D":         KeyD,
		"z":         KeyZ,
		"7":         Key7,
		"RET":       KeyEnter,
		"enter":     KeyEnter,
		"ESC":       KeyEscape,
		"LEFTMOUSE": MouseButtonLeft,
		"LEFT_CTRL": KeyLeftControl,
	}
	for name, want := range cases {
		k, err := ParseKeyName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, k, name)
	}

	_, err := ParseKeyName("HYPER")
	assert.Error(t, err)
	assert.Equal(t, "LEFTMOUSE", MouseButtonLeft.String())
	assert.Equal(t, "Q", KeyQ.String())
}

func TestParseBinding(t *testing.T) {
	b, err := ParseBinding("ALT+LEFTMOUSE")
	require.NoError(t, err)
	assert.Equal(t, Binding{Key: MouseButtonLeft, Mods: Modifiers{Alt: true}}, b)
	assert.Equal(t, "ALT+LEFTMOUSE", b.String())

	b, err = ParseBinding("ctrl+shift+Z")
	require.NoError(t, err)
	assert.Equal(t, Binding{Key: KeyZ, Mods: Modifiers{Ctrl: true, Shift: true}}, b)

	_, err = ParseBinding("META+Z")
	assert.Error(t, err)
	_, err = ParseBinding("ALT+")
	assert.Error(t, err)
}

func TestParseKeymap(t *testing.T) {
	_, err := ParseKeymap(map[string][]string{"explode": {"X"}})
	assert.ErrorContains(t, err, "unknown action")

	_, err = ParseKeymap(map[string][]string{"commit": {"NOPE"}})
	assert.ErrorContains(t, err, "commit")

	km := DefaultKeymap()
	assert.Len(t, km, int(numActions))
}

func TestKeymap_Resolve(t *testing.T) {
	km := DefaultKeymap()

	acts := km.Resolve(Event{Type: EventPress, Key: MouseButtonLeft})
	assert.True(t, acts.Pressed.Has(ActionAddBrick))
	assert.True(t, acts.Pressed.Has(ActionMerge))
	assert.True(t, acts.Pressed.Has(ActionPaint))
	assert.False(t, acts.Pressed.Has(ActionRemoveBrick))

	acts = km.Resolve(Event{Type: EventPress, Key: MouseButtonLeft, Mods: Modifiers{Shift: true}})
	assert.True(t, acts.Pressed.Has(ActionRemoveBrick))
	assert.True(t, acts.Pressed.Has(ActionSplit))
	assert.False(t, acts.Pressed.Has(ActionAddBrick))

	// both modifiers match neither binding exactly
	acts = km.Resolve(Event{Type: EventPress, Key: MouseButtonLeft, Mods: Modifiers{Alt: true, Shift: true}})
	assert.Zero(t, acts.Pressed)

	// releases ignore modifiers
	acts = km.Resolve(Event{Type: EventRelease, Key: MouseButtonLeft, Mods: Modifiers{Alt: true}})
	assert.True(t, acts.Released.Has(ActionAddBrick))
	assert.True(t, acts.Released.Has(ActionRemoveBrick))
	assert.Zero(t, acts.Pressed)

	assert.Zero(t, km.Resolve(Event{Type: EventMove}))
	assert.Equal(t, "[commit]", km.Resolve(Event{Type: EventPress, Key: KeyEnter}).Pressed.String())
}

func TestEventString(t *testing.T) {
	ev := Event{Type: EventPress, Key: MouseButtonLeft, Mods: Modifiers{Alt: true}, X: 10, Y: 20}
	assert.Equal(t, "PRESS ALT+LEFTMOUSE @10,20", ev.String())
	assert.Equal(t, "MOVE @3,4", Event{Type: EventMove, X: 3, Y: 4}.String())
}

func TestDefaultLogger(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLogger(&out, &errOut, "sculpt", false)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, out.String())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	l.Infof("info")
	l.Warnf("careful")
	assert.Contains(t, out.String(), "[sculpt] DEBUG: shown 2")
	assert.Contains(t, out.String(), "[sculpt] INFO: info")
	assert.Contains(t, errOut.String(), "[sculpt] WARN: careful")
}

func TestWithTagsLines(t *testing.T) {
	var out, errOut bytes.Buffer
	base := NewLogger(&out, &errOut, "", false)
	l := With(With(base, "session", "abc"), "mode", "DRAW")

	l.Debugf("hidden")
	assert.Empty(t, out.String())

	l.SetDebug(true)
	assert.True(t, base.DebugEnabled())
	l.Debugf("step %d", 3)
	l.Errorf("broke: %s", "100%")
	assert.Contains(t, out.String(), "DEBUG: session=abc mode=DRAW step 3")
	assert.Contains(t, errOut.String(), "ERROR: session=abc mode=DRAW broke: 100%")
}

func TestSessionLogsCarryID(t *testing.T) {
	var out bytes.Buffer
	s, err := NewSession(Options{
		Grid:   newTestGrid(),
		Picker: panicPicker{},
		Logger: NewLogger(&out, &out, "", false),
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "INFO: session="+s.ID+" started in DRAW mode on Cube")
}
