// Package glfwinput feeds a sculpt session from a GLFW window.
//
// GLFW calls must happen on the main thread, so the Poller is driven from
// the main loop and everything the session asks of the window is queued
// until the next Poll.
package glfwinput

import (
	"context"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/bricksculpt"
)

// Poller samples a window once per frame and reports key, button and
// pointer changes as events.
type Poller struct {
	window  *glfw.Window
	pressed map[bricksculpt.Key]bool
	mouseX  float64
	mouseY  float64
	sampled bool

	mu      sync.Mutex
	title   string
	cursor  bricksculpt.Cursor
	dirty   bool
	cursors map[bricksculpt.Cursor]*glfw.Cursor
	base    string
}

func NewPoller(window *glfw.Window, title string) *Poller {
	return &Poller{
		window:  window,
		pressed: make(map[bricksculpt.Key]bool),
		base:    title,
		cursors: map[bricksculpt.Cursor]*glfw.Cursor{
			bricksculpt.CursorDefault:    nil,
			bricksculpt.CursorPaintBrush: glfw.CreateStandardCursor(glfw.CrosshairCursor),
		},
	}
}

// Poll processes pending window events and emits what changed since the
// previous call.
func (p *Poller) Poll(emit func(bricksculpt.Event)) {
	glfw.PollEvents()
	p.apply()

	mods := p.modifiers()
	mx, my := p.window.GetCursorPos()
	if !p.sampled || mx != p.mouseX || my != p.mouseY {
		p.mouseX, p.mouseY = mx, my
		p.sampled = true
		emit(bricksculpt.Event{Type: bricksculpt.EventMove, Mods: mods, X: mx, Y: my})
	}

	for key, glfwKey := range keyToGlfw {
		p.update(key, p.window.GetKey(glfwKey) == glfw.Press, mods, emit)
	}
	for btn, glfwBtn := range buttonToGlfw {
		p.update(btn, p.window.GetMouseButton(glfwBtn) == glfw.Press, mods, emit)
	}
}

func (p *Poller) update(key bricksculpt.Key, down bool, mods bricksculpt.Modifiers, emit func(bricksculpt.Event)) {
	was := p.pressed[key]
	p.pressed[key] = down
	switch {
	case down && !was:
		emit(bricksculpt.Event{Type: bricksculpt.EventPress, Key: key, Mods: mods, X: p.mouseX, Y: p.mouseY})
	case !down && was:
		emit(bricksculpt.Event{Type: bricksculpt.EventRelease, Key: key, Mods: mods, X: p.mouseX, Y: p.mouseY})
	}
}

func (p *Poller) modifiers() bricksculpt.Modifiers {
	down := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if p.window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	return bricksculpt.Modifiers{
		Alt:   down(glfw.KeyLeftAlt, glfw.KeyRightAlt),
		Shift: down(glfw.KeyLeftShift, glfw.KeyRightShift),
		Ctrl:  down(glfw.KeyLeftControl, glfw.KeyRightControl),
	}
}

// Run polls every interval until ctx is done or the window is closed,
// sending events to events. It must be called on the main thread.
func (p *Poller) Run(ctx context.Context, events chan<- bricksculpt.Event, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	emit := func(ev bricksculpt.Event) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}
	for !p.window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Poll(emit)
		}
	}
	return nil
}

// SetCursor and SetHeaderText implement bricksculpt.Window; they may be
// called from any goroutine and take effect on the next Poll.
func (p *Poller) SetCursor(c bricksculpt.Cursor) {
	p.mu.Lock()
	p.cursor = c
	p.dirty = true
	p.mu.Unlock()
}

func (p *Poller) SetHeaderText(text string) {
	p.mu.Lock()
	p.title = text
	p.dirty = true
	p.mu.Unlock()
}

func (p *Poller) apply() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dirty {
		return
	}
	p.dirty = false
	p.window.SetCursor(p.cursors[p.cursor])
	if p.title == "" {
		p.window.SetTitle(p.base)
	} else {
		p.window.SetTitle(p.base + " - " + p.title)
	}
}

// Size is the framebuffer-independent window size used for picking regions.
func (p *Poller) Size() (int, int) {
	return p.window.GetSize()
}

var buttonToGlfw = map[bricksculpt.Key]glfw.MouseButton{
	bricksculpt.MouseButtonLeft:   glfw.MouseButtonLeft,
	bricksculpt.MouseButtonRight:  glfw.MouseButtonRight,
	bricksculpt.MouseButtonMiddle: glfw.MouseButtonMiddle,
}

var keyToGlfw = map[bricksculpt.Key]glfw.Key{
	bricksculpt.KeyA:            glfw.KeyA,
	bricksculpt.KeyB:            glfw.KeyB,
	bricksculpt.KeyC:            glfw.KeyC,
	bricksculpt.KeyD:            glfw.KeyD,
	bricksculpt.KeyE:            glfw.KeyE,
	bricksculpt.KeyF:            glfw.KeyF,
	bricksculpt.KeyG:            glfw.KeyG,
	bricksculpt.KeyH:            glfw.KeyH,
	bricksculpt.KeyI:            glfw.KeyI,
	bricksculpt.KeyJ:            glfw.KeyJ,
	bricksculpt.KeyK:            glfw.KeyK,
	bricksculpt.KeyL:            glfw.KeyL,
	bricksculpt.KeyM:            glfw.KeyM,
	bricksculpt.KeyN:            glfw.KeyN,
	bricksculpt.KeyO:            glfw.KeyO,
	bricksculpt.KeyP:            glfw.KeyP,
	bricksculpt.KeyQ:            glfw.KeyQ,
	bricksculpt.KeyR:            glfw.KeyR,
	bricksculpt.KeyS:            glfw.KeyS,
	bricksculpt.KeyT:            glfw.KeyT,
	bricksculpt.KeyU:            glfw.KeyU,
	bricksculpt.KeyV:            glfw.KeyV,
	bricksculpt.KeyW:            glfw.KeyW,
	bricksculpt.KeyX:            glfw.KeyX,
	bricksculpt.KeyY:            glfw.KeyY,
	bricksculpt.KeyZ:            glfw.KeyZ,
	bricksculpt.Key0:            glfw.Key0,
	bricksculpt.Key1:            glfw.Key1,
	bricksculpt.Key2:            glfw.Key2,
	bricksculpt.Key3:            glfw.Key3,
	bricksculpt.Key4:            glfw.Key4,
	bricksculpt.Key5:            glfw.Key5,
	bricksculpt.Key6:            glfw.Key6,
	bricksculpt.Key7:            glfw.Key7,
	bricksculpt.Key8:            glfw.Key8,
	bricksculpt.Key9:            glfw.Key9,
	bricksculpt.KeySpace:        glfw.KeySpace,
	bricksculpt.KeyEnter:        glfw.KeyEnter,
	bricksculpt.KeyEscape:       glfw.KeyEscape,
	bricksculpt.KeyTab:          glfw.KeyTab,
	bricksculpt.KeyBackspace:    glfw.KeyBackspace,
	bricksculpt.KeyDelete:       glfw.KeyDelete,
	bricksculpt.KeyLeftShift:    glfw.KeyLeftShift,
	bricksculpt.KeyRightShift:   glfw.KeyRightShift,
	bricksculpt.KeyLeftControl:  glfw.KeyLeftControl,
	bricksculpt.KeyRightControl: glfw.KeyRightControl,
	bricksculpt.KeyLeftAlt:      glfw.KeyLeftAlt,
	bricksculpt.KeyRightAlt:     glfw.KeyRightAlt,
}
