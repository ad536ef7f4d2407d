package dockgui

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEnter
	KeyEscape
	KeyCount
)

// Default input timing constants.
const (
	DefaultKeyRepeatDelay          float32 = 0.275 // Initial delay before repeat starts (seconds)
	DefaultKeyRepeatRate           float32 = 0.050 // Repeat interval once repeating (seconds)
	DefaultMouseDoubleClickTime    float32 = 0.30
	DefaultMouseDoubleClickMaxDist float32 = 6.0
	DefaultMouseDragThreshold      float32 = 6.0
)

// InputState holds input state for the current frame.
// The host writes raw state (position, buttons, keys) between frames;
// Update derives the per-frame edges and timers exactly once per frame.
type InputState struct {
	// Mouse position
	MousePos     Vec2
	MousePosPrev Vec2

	mouseDown             [MouseButtonCount]bool
	mouseDownPrev         [MouseButtonCount]bool
	mouseClicked          [MouseButtonCount]bool // True on the frame button was pressed
	mouseReleased         [MouseButtonCount]bool // True on the frame button was released
	mouseDoubleClicked    [MouseButtonCount]bool
	mouseClickedCount     [MouseButtonCount]int
	mouseClickedTime      [MouseButtonCount]float64
	mouseClickedPos       [MouseButtonCount]Vec2
	mouseDownDuration     [MouseButtonCount]float32 // -1 when not held
	mouseDownDurationPrev [MouseButtonCount]float32
	mouseDragMaxDistSqr   [MouseButtonCount]float32

	keyDown             [KeyCount]bool
	keyDownPrev         [KeyCount]bool
	keyDownDuration     [KeyCount]float32
	keyDownDurationPrev [KeyCount]float32

	// Modifiers
	ModCtrl  bool
	ModShift bool
	ModAlt   bool
	ModSuper bool

	// Timing configuration
	KeyRepeatDelay          float32
	KeyRepeatRate           float32
	MouseDoubleClickTime    float32
	MouseDoubleClickMaxDist float32
	MouseDragThreshold      float32

	Time      float64
	DeltaTime float32
}

// NewInputState creates a new InputState with default timings.
func NewInputState() *InputState {
	s := &InputState{
		KeyRepeatDelay:          DefaultKeyRepeatDelay,
		KeyRepeatRate:           DefaultKeyRepeatRate,
		MouseDoubleClickTime:    DefaultMouseDoubleClickTime,
		MouseDoubleClickMaxDist: DefaultMouseDoubleClickMaxDist,
		MouseDragThreshold:      DefaultMouseDragThreshold,
	}
	for i := range s.mouseDownDuration {
		s.mouseDownDuration[i] = -1
		s.mouseDownDurationPrev[i] = -1
	}
	for i := range s.keyDownDuration {
		s.keyDownDuration[i] = -1
		s.keyDownDurationPrev[i] = -1
	}
	return s
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MousePos = Vec2{X: x, Y: y}
}

// SetMouseButton sets the raw mouse button state.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}
	s.mouseDown[button] = down
}

// SetKey sets the raw key state.
func (s *InputState) SetKey(key Key, down bool) {
	if key <= KeyNone || key >= KeyCount {
		return
	}
	s.keyDown[key] = down
}

// Update advances timers and derives click/release edges.
// Call this once per frame with the frame's delta time.
func (s *InputState) Update(dt float32) {
	s.DeltaTime = dt
	s.Time += float64(dt)

	for b := MouseButton(0); b < MouseButtonCount; b++ {
		down := s.mouseDown[b]
		s.mouseClicked[b] = down && !s.mouseDownPrev[b]
		s.mouseReleased[b] = !down && s.mouseDownPrev[b]
		s.mouseDoubleClicked[b] = false
		s.mouseDownDurationPrev[b] = s.mouseDownDuration[b]
		switch {
		case !down:
			s.mouseDownDuration[b] = -1
		case s.mouseDownDuration[b] < 0:
			s.mouseDownDuration[b] = 0
		default:
			s.mouseDownDuration[b] += dt
		}

		if s.mouseClicked[b] {
			delta := s.MousePos.Sub(s.mouseClickedPos[b])
			maxDist := s.MouseDoubleClickMaxDist
			if float32(s.Time-s.mouseClickedTime[b]) < s.MouseDoubleClickTime && delta.LengthSqr() < maxDist*maxDist {
				s.mouseClickedCount[b]++
			} else {
				s.mouseClickedCount[b] = 1
			}
			s.mouseDoubleClicked[b] = s.mouseClickedCount[b] == 2
			s.mouseClickedTime[b] = s.Time
			s.mouseClickedPos[b] = s.MousePos
			s.mouseDragMaxDistSqr[b] = 0
		} else if down {
			d := s.MousePos.Sub(s.mouseClickedPos[b]).LengthSqr()
			s.mouseDragMaxDistSqr[b] = maxf(s.mouseDragMaxDistSqr[b], d)
		}
		s.mouseDownPrev[b] = down
	}

	for k := Key(0); k < KeyCount; k++ {
		s.keyDownDurationPrev[k] = s.keyDownDuration[k]
		switch {
		case !s.keyDown[k]:
			s.keyDownDuration[k] = -1
		case s.keyDownDuration[k] < 0:
			s.keyDownDuration[k] = 0
		default:
			s.keyDownDuration[k] += dt
		}
		s.keyDownPrev[k] = s.keyDown[k]
	}
}

// EndFrame records the mouse position so the next frame can compute deltas.
func (s *InputState) EndFrame() {
	s.MousePosPrev = s.MousePos
}

// MouseDelta returns the mouse movement since the previous frame.
func (s *InputState) MouseDelta() Vec2 {
	return s.MousePos.Sub(s.MousePosPrev)
}

func validButton(button MouseButton) bool {
	return button >= 0 && button < MouseButtonCount
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	return validButton(button) && s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was pressed this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	return validButton(button) && s.mouseClicked[button]
}

// MouseReleased returns true if a mouse button was released this frame.
func (s *InputState) MouseReleased(button MouseButton) bool {
	return validButton(button) && s.mouseReleased[button]
}

// MouseDoubleClicked returns true on the second click of a double click.
func (s *InputState) MouseDoubleClicked(button MouseButton) bool {
	return validButton(button) && s.mouseDoubleClicked[button]
}

// MouseClickedCount returns the consecutive click count of the last press.
func (s *InputState) MouseClickedCount(button MouseButton) int {
	if !validButton(button) {
		return 0
	}
	return s.mouseClickedCount[button]
}

// MouseDownDuration returns how long the button has been held, or -1.
func (s *InputState) MouseDownDuration(button MouseButton) float32 {
	if !validButton(button) {
		return -1
	}
	return s.mouseDownDuration[button]
}

// MouseClickedPos returns the mouse position at the last press of button.
func (s *InputState) MouseClickedPos(button MouseButton) Vec2 {
	if !validButton(button) {
		return Vec2{}
	}
	return s.mouseClickedPos[button]
}

// MouseDragPastThreshold reports whether the mouse moved farther than
// threshold since button went down. A negative threshold uses the default.
func (s *InputState) MouseDragPastThreshold(button MouseButton, threshold float32) bool {
	if !s.MouseDown(button) {
		return false
	}
	if threshold < 0 {
		threshold = s.MouseDragThreshold
	}
	return s.mouseDragMaxDistSqr[button] >= threshold*threshold
}

// MouseRepeated returns how many repeat ticks the held button produced this frame.
func (s *InputState) MouseRepeated(button MouseButton) bool {
	if !s.MouseDown(button) {
		return false
	}
	t := s.mouseDownDuration[button]
	return t > 0 && CalcTypematicRepeatAmount(t-s.DeltaTime, t, s.KeyRepeatDelay, s.KeyRepeatRate) > 0
}

// KeyDown returns true if a key is currently held.
func (s *InputState) KeyDown(key Key) bool {
	return key > KeyNone && key < KeyCount && s.keyDown[key]
}

// KeyPressed returns true if a key was pressed this frame.
func (s *InputState) KeyPressed(key Key) bool {
	return s.KeyDown(key) && s.keyDownDuration[key] == 0
}

// KeyReleased returns true if a key was released this frame.
func (s *InputState) KeyReleased(key Key) bool {
	return key > KeyNone && key < KeyCount && !s.keyDown[key] && s.keyDownDurationPrev[key] >= 0
}

// KeyRepeated returns true if a key should trigger this frame: on the initial
// press, then after KeyRepeatDelay, then every KeyRepeatRate.
func (s *InputState) KeyRepeated(key Key) bool {
	if !s.KeyDown(key) {
		return false
	}
	t := s.keyDownDuration[key]
	return CalcTypematicRepeatAmount(t-s.DeltaTime, t, s.KeyRepeatDelay, s.KeyRepeatRate) > 0
}

// AnyModifier reports whether any modifier key is held.
func (s *InputState) AnyModifier() bool {
	return s.ModCtrl || s.ModShift || s.ModAlt || s.ModSuper
}

// CalcTypematicRepeatAmount returns the number of repeat ticks between t0 and t1
// for a key or button held since time 0. t1 == 0 is the initial press.
func CalcTypematicRepeatAmount(t0, t1, repeatDelay, repeatRate float32) int {
	if t1 == 0 {
		return 1
	}
	if t0 >= t1 {
		return 0
	}
	if repeatRate <= 0 {
		if t0 < repeatDelay && t1 >= repeatDelay {
			return 1
		}
		return 0
	}
	countT0 := -1
	if t0 >= repeatDelay {
		countT0 = int((t0 - repeatDelay) / repeatRate)
	}
	countT1 := -1
	if t1 >= repeatDelay {
		countT1 = int((t1 - repeatDelay) / repeatRate)
	}
	return countT1 - countT0
}
