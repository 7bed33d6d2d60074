// Package input translates SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Kind identifies an action.
type Kind int

const (
	KindNone Kind = iota
	KindQuit
	KindResize
	KindMove      // Movement key pressed or released
	KindLevelUp   // More terrain detail
	KindLevelDown // Less terrain detail
	KindZoomIn
	KindZoomOut
	KindDrag    // Rotation button pressed or released
	KindPointer // Pointer moved
	KindScreenshot
)

// Direction names a held movement key.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Action is a single viewer command derived from one SDL event. Only the
// fields relevant to Kind are set.
type Action struct {
	Kind      Kind
	Direction Direction
	Pressed   bool
	X, Y      int
	Width     int
	Height    int
}

var moveKeys = map[sdl.Scancode]Direction{
	sdl.SCANCODE_W: Forward,
	sdl.SCANCODE_S: Backward,
	sdl.SCANCODE_A: Left,
	sdl.SCANCODE_D: Right,
}

// Input polls SDL and buffers the resulting actions.
type Input struct {
	actions []Action
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		actions: make([]Action, 0, 16),
	}
}

// Poll drains the SDL event queue and returns the actions it produced. The
// returned slice is reused by the next Poll.
func (i *Input) Poll() []Action {
	i.actions = i.actions[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if a, ok := Translate(event); ok {
			i.actions = append(i.actions, a)
		}
	}
	return i.actions
}

// Translate maps one SDL event to an action. Events the viewer does not
// handle report false.
func Translate(event sdl.Event) (Action, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Action{Kind: KindQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Action{Kind: KindResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		return translateKey(e)

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_LEFT {
			return Action{
				Kind:    KindDrag,
				Pressed: e.Type == sdl.MOUSEBUTTONDOWN,
				X:       int(e.X),
				Y:       int(e.Y),
			}, true
		}

	case *sdl.MouseMotionEvent:
		return Action{Kind: KindPointer, X: int(e.X), Y: int(e.Y)}, true
	}
	return Action{}, false
}

func translateKey(e *sdl.KeyboardEvent) (Action, bool) {
	pressed := e.Type == sdl.KEYDOWN
	code := e.Keysym.Scancode

	if dir, ok := moveKeys[code]; ok {
		return Action{Kind: KindMove, Direction: dir, Pressed: pressed}, true
	}

	// Remaining keys act once per press.
	if !pressed || e.Repeat != 0 {
		return Action{}, false
	}
	switch code {
	case sdl.SCANCODE_ESCAPE:
		return Action{Kind: KindQuit}, true
	case sdl.SCANCODE_T:
		return Action{Kind: KindLevelUp}, true
	case sdl.SCANCODE_G:
		return Action{Kind: KindLevelDown}, true
	case sdl.SCANCODE_P:
		return Action{Kind: KindZoomIn}, true
	case sdl.SCANCODE_O:
		return Action{Kind: KindZoomOut}, true
	case sdl.SCANCODE_F12:
		return Action{Kind: KindScreenshot}, true
	}
	return Action{}, false
}
