package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/dockgui"
)

// GLFWInputAdapter feeds GLFW events into a dockgui.InputState.
// Callbacks only record raw state; edges and timers are derived by
// Context.NewFrame.
type GLFWInputAdapter struct {
	window  *glfw.Window
	input   *dockgui.InputState
	cursors map[dockgui.MouseCursor]*glfw.Cursor
	cursor  dockgui.MouseCursor
}

// NewGLFWInputAdapter creates a new GLFW input adapter.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	a := &GLFWInputAdapter{
		window: window,
		input:  dockgui.NewInputState(),
		cursors: map[dockgui.MouseCursor]*glfw.Cursor{
			dockgui.MouseCursorArrow:    glfw.CreateStandardCursor(glfw.ArrowCursor),
			dockgui.MouseCursorResizeEW: glfw.CreateStandardCursor(glfw.HResizeCursor),
			dockgui.MouseCursorResizeNS: glfw.CreateStandardCursor(glfw.VResizeCursor),
		},
	}

	window.SetKeyCallback(a.keyCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)

	return a
}

// Update samples the cursor and modifiers. Call once per frame before
// Context.NewFrame.
func (a *GLFWInputAdapter) Update() *dockgui.InputState {
	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))

	a.input.ModCtrl = a.keyPressed(glfw.KeyLeftControl, glfw.KeyRightControl)
	a.input.ModShift = a.keyPressed(glfw.KeyLeftShift, glfw.KeyRightShift)
	a.input.ModAlt = a.keyPressed(glfw.KeyLeftAlt, glfw.KeyRightAlt)
	a.input.ModSuper = a.keyPressed(glfw.KeyLeftSuper, glfw.KeyRightSuper)

	return a.input
}

func (a *GLFWInputAdapter) keyPressed(keys ...glfw.Key) bool {
	for _, k := range keys {
		if a.window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *dockgui.InputState {
	return a.input
}

// SetMouseCursor switches the OS cursor shape when it changes.
func (a *GLFWInputAdapter) SetMouseCursor(c dockgui.MouseCursor) {
	if c == a.cursor {
		return
	}
	a.cursor = c
	a.window.SetCursor(a.cursors[c])
}

// WorkArea implements dockgui.Platform with the work area of the primary
// monitor, in window coordinates.
func (a *GLFWInputAdapter) WorkArea(dockgui.ID) dockgui.Rect {
	w, h := a.window.GetSize()
	full := dockgui.Rect{Max: dockgui.Vec2{X: float32(w), Y: float32(h)}}
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return full
	}
	_, _, mw, mh := monitor.GetWorkarea()
	wx, wy := a.window.GetPos()
	mx, my, _, _ := monitor.GetWorkarea()
	work := dockgui.Rect{
		Min: dockgui.Vec2{X: float32(mx - wx), Y: float32(my - wy)},
		Max: dockgui.Vec2{X: float32(mx - wx + mw), Y: float32(my - wy + mh)},
	}
	if work.IsInverted() || work.Size().X <= 0 || work.Size().Y <= 0 {
		return full
	}
	return work
}

func (a *GLFWInputAdapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := glfwKeyToKey(key)
	if k == dockgui.KeyNone {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b := glfwMouseButton(button)
	if b < 0 {
		return
	}
	switch action {
	case glfw.Press:
		a.input.SetMouseButton(b, true)
	case glfw.Release:
		a.input.SetMouseButton(b, false)
	}
}

func (a *GLFWInputAdapter) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

func glfwKeyToKey(key glfw.Key) dockgui.Key {
	switch key {
	case glfw.KeyTab:
		return dockgui.KeyTab
	case glfw.KeyLeft:
		return dockgui.KeyLeft
	case glfw.KeyRight:
		return dockgui.KeyRight
	case glfw.KeyUp:
		return dockgui.KeyUp
	case glfw.KeyDown:
		return dockgui.KeyDown
	case glfw.KeySpace:
		return dockgui.KeySpace
	case glfw.KeyEnter:
		return dockgui.KeyEnter
	case glfw.KeyEscape:
		return dockgui.KeyEscape
	default:
		return dockgui.KeyNone
	}
}

func glfwMouseButton(button glfw.MouseButton) dockgui.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return dockgui.MouseButtonLeft
	case glfw.MouseButtonRight:
		return dockgui.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return dockgui.MouseButtonMiddle
	default:
		return -1
	}
}
