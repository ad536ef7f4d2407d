package dockgui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDT = float32(1.0 / 60.0)

var testDisplay = Vec2{X: 800, Y: 600}

// testContext returns a context that panics on violated invariants.
func testContext(t *testing.T, opts ...ContextOption) (*Context, *InputState) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DebugAsserts = true
	ctx := NewContext(append([]ContextOption{WithConfig(cfg)}, opts...)...)
	t.Cleanup(ctx.Shutdown)
	return ctx, NewInputState()
}

// frame runs one frame with dt and calls body between NewFrame and EndFrame.
func frame(ctx *Context, in *InputState, dt float32, body func()) {
	ctx.NewFrame(in, testDisplay, dt)
	if body != nil {
		body()
	}
	ctx.EndFrame()
}

type buttonResult struct {
	pressed, hovered, held bool
}

func button(ctx *Context, bb Rect, id ID, flags ButtonFlags) buttonResult {
	p, h, held := ctx.ButtonBehavior(bb, id, flags)
	return buttonResult{p, h, held}
}

var (
	boxA = Rect{Min: Vec2{X: 10, Y: 10}, Max: Vec2{X: 50, Y: 30}}
	boxB = Rect{Min: Vec2{X: 100, Y: 10}, Max: Vec2{X: 140, Y: 30}}
	idA  = HashString(0, "A")
	idB  = HashString(0, "B")
)

func TestButtonClickRelease(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)

	var r buttonResult
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonFlagsNone) })
	assert.Equal(t, buttonResult{false, true, false}, r)

	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, func() {
		r = button(ctx, boxA, idA, ButtonFlagsNone)
		assert.Equal(t, idA, ctx.ActiveID())
		assert.Equal(t, InputSourceMouse, ctx.ActiveIDSource())
		assert.Equal(t, Vec2{X: 10, Y: 10}, ctx.ActiveIDClickOffset())
	})
	assert.Equal(t, buttonResult{false, true, true}, r, "click only claims the active id")

	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonFlagsNone) })
	assert.Equal(t, buttonResult{false, true, true}, r)
	assert.Greater(t, ctx.ActiveIDTimer(), float32(0))

	in.SetMouseButton(MouseButtonLeft, false)
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonFlagsNone) })
	assert.Equal(t, buttonResult{true, true, false}, r, "release inside presses")
	assert.Zero(t, ctx.ActiveID())
}

func TestButtonReleaseOutside(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, func() { button(ctx, boxA, idA, ButtonFlagsNone) })
	require.Equal(t, idA, ctx.ActiveID())

	// Held while outside: still owns the mouse, not hovered.
	in.SetMousePos(300, 300)
	var r buttonResult
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonFlagsNone) })
	assert.Equal(t, buttonResult{false, false, true}, r)

	in.SetMouseButton(MouseButtonLeft, false)
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonFlagsNone) })
	assert.False(t, r.pressed)
	assert.Zero(t, ctx.ActiveID())
}

func TestButtonReleaseAnywhere(t *testing.T) {
	ctx, in := testContext(t)
	flags := ButtonPressedOnClickReleaseAnywhere
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, func() { button(ctx, boxA, idA, flags) })

	in.SetMousePos(300, 300)
	in.SetMouseButton(MouseButtonLeft, false)
	var r buttonResult
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, flags) })
	assert.True(t, r.pressed)
	assert.Zero(t, ctx.ActiveID())
}

func TestButtonPressedOnClick(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	var r buttonResult
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonPressedOnClick) })
	assert.True(t, r.pressed)
	assert.True(t, r.held)

	in.SetMouseButton(MouseButtonLeft, false)
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonPressedOnClick) })
	assert.False(t, r.pressed, "no second press on release")
}

func TestButtonNoHoldingActiveID(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	var r buttonResult
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonPressedOnClick|ButtonNoHoldingActiveID) })
	assert.True(t, r.pressed)
	assert.False(t, r.held)
	assert.Zero(t, ctx.ActiveID())
}

func TestButtonPressedOnRelease(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	var r buttonResult
	// Pressed elsewhere, released over the item.
	frame(ctx, in, testDT, nil)
	in.SetMouseButton(MouseButtonLeft, false)
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonPressedOnRelease) })
	assert.True(t, r.pressed)
}

func TestButtonRightMouse(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, func() { button(ctx, boxA, idA, ButtonMouseButtonRight) })
	assert.Zero(t, ctx.ActiveID(), "left click ignored")

	in.SetMouseButton(MouseButtonLeft, false)
	frame(ctx, in, testDT, nil)
	in.SetMouseButton(MouseButtonRight, true)
	frame(ctx, in, testDT, func() { button(ctx, boxA, idA, ButtonMouseButtonRight) })
	assert.Equal(t, idA, ctx.ActiveID())
	assert.Equal(t, MouseButtonRight, ctx.ActiveIDMouseButton())
}

func TestButtonNoKeyModifiers(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	in.ModCtrl = true
	frame(ctx, in, testDT, func() { button(ctx, boxA, idA, ButtonPressedOnClick|ButtonNoKeyModifiers) })
	assert.Zero(t, ctx.ActiveID())
}

func TestButtonDoubleClick(t *testing.T) {
	ctx, in := testContext(t)
	flags := ButtonPressedOnDoubleClick
	in.SetMousePos(20, 20)

	var presses []bool
	for _, down := range []bool{true, false, true, false} {
		in.SetMouseButton(MouseButtonLeft, down)
		frame(ctx, in, testDT, func() { presses = append(presses, button(ctx, boxA, idA, flags).pressed) })
	}
	assert.Equal(t, []bool{false, false, true, false}, presses)
	assert.Zero(t, ctx.ActiveID())
}

func TestDoubleClickDetection(t *testing.T) {
	in := NewInputState()
	click := func(dt float32) {
		in.SetMouseButton(MouseButtonLeft, true)
		in.Update(dt)
		in.SetMouseButton(MouseButtonLeft, false)
	}

	click(testDT)
	assert.False(t, in.MouseDoubleClicked(MouseButtonLeft))
	in.Update(testDT)
	click(testDT)
	assert.True(t, in.MouseDoubleClicked(MouseButtonLeft), "second click within the time limit")
	assert.Equal(t, 2, in.MouseClickedCount(MouseButtonLeft))

	in.Update(testDT)
	click(0.5)
	assert.False(t, in.MouseDoubleClicked(MouseButtonLeft), "too slow")
	assert.Equal(t, 1, in.MouseClickedCount(MouseButtonLeft))

	in.Update(testDT)
	in.SetMousePos(in.MousePos.X+10, in.MousePos.Y)
	click(testDT)
	assert.False(t, in.MouseDoubleClicked(MouseButtonLeft), "too far")
}

func TestButtonRepeat(t *testing.T) {
	ctx, in := testContext(t)
	flags := ButtonPressedOnClick | ButtonRepeat
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)

	// Held for 0, 0.1, 0.2, 0.3 and 0.4 seconds: initial press, nothing
	// until the repeat delay, then a press per frame at this rate.
	var presses []bool
	for range 5 {
		frame(ctx, in, 0.1, func() { presses = append(presses, button(ctx, boxA, idA, flags).pressed) })
	}
	assert.Equal(t, []bool{true, false, false, true, true}, presses)
}

func TestButtonNavActivation(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(500, 500)
	ctx.SetNavID(idA)

	in.SetKey(KeySpace, true)
	var r buttonResult
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonFlagsNone) })
	assert.True(t, r.pressed)
	assert.Equal(t, InputSourceNav, ctx.ActiveIDSource())

	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonFlagsNone) })
	assert.False(t, r.pressed)
	assert.True(t, r.held)

	in.SetKey(KeySpace, false)
	frame(ctx, in, testDT, func() { r = button(ctx, boxA, idA, ButtonFlagsNone) })
	assert.False(t, r.held)
	assert.Zero(t, ctx.ActiveID())
}

func TestActiveIDIsExclusive(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, func() {
		button(ctx, boxA, idA, ButtonFlagsNone)
		button(ctx, boxB, idB, ButtonFlagsNone)
	})
	require.Equal(t, idA, ctx.ActiveID())

	// Dragging over B while A owns the mouse neither hovers nor activates B.
	in.SetMousePos(120, 20)
	var rb buttonResult
	frame(ctx, in, testDT, func() {
		button(ctx, boxA, idA, ButtonFlagsNone)
		rb = button(ctx, boxB, idB, ButtonFlagsNone)
	})
	assert.Equal(t, buttonResult{}, rb)
	assert.Equal(t, idA, ctx.ActiveID())

	in.SetMouseButton(MouseButtonLeft, false)
	frame(ctx, in, testDT, func() {
		assert.False(t, button(ctx, boxA, idA, ButtonFlagsNone).pressed)
		rb = button(ctx, boxB, idB, ButtonFlagsNone)
	})
	assert.False(t, rb.pressed, "release over B does not press B")
}

func TestHoveredIDFirstWins(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)
	overlap := Rect{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 60, Y: 60}}
	var ra, rb buttonResult
	frame(ctx, in, testDT, func() {
		ra = button(ctx, boxA, idA, ButtonFlagsNone)
		rb = button(ctx, overlap, idB, ButtonFlagsNone)
	})
	assert.True(t, ra.hovered)
	assert.False(t, rb.hovered)
	assert.Equal(t, idA, ctx.HoveredIDPreviousFrame())
}

func TestDeadActiveIDIsCleared(t *testing.T) {
	ctx, in := testContext(t)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, func() { button(ctx, boxA, idA, ButtonFlagsNone) })
	require.Equal(t, idA, ctx.ActiveID())

	// A frame without the item: the id survives until the next NewFrame.
	frame(ctx, in, testDT, nil)
	assert.Equal(t, idA, ctx.ActiveID())

	ctx.NewFrame(in, testDisplay, testDT)
	assert.Zero(t, ctx.ActiveID())
	ctx.EndFrame()
}

func TestCalcTypematicRepeatAmount(t *testing.T) {
	tests := []struct {
		t0, t1, delay, rate float32
		want                int
	}{
		{0, 0, 0.275, 0.05, 1},
		{0.1, 0.2, 0.275, 0.05, 0},
		{0.2, 0.3, 0.275, 0.05, 1},
		{0.3, 0.4, 0.275, 0.05, 2},
		{0.4, 0.4, 0.275, 0.05, 0},
		{0.2, 0.3, 0.275, 0, 1},
		{0.3, 0.4, 0.275, 0, 0},
	}
	for _, tt := range tests {
		got := CalcTypematicRepeatAmount(tt.t0, tt.t1, tt.delay, tt.rate)
		assert.Equal(t, tt.want, got, "t0=%v t1=%v delay=%v rate=%v", tt.t0, tt.t1, tt.delay, tt.rate)
	}
}

func TestKeyRepeated(t *testing.T) {
	in := NewInputState()
	in.SetKey(KeyEnter, true)
	var repeats []bool
	for range 5 {
		in.Update(0.1)
		repeats = append(repeats, in.KeyRepeated(KeyEnter))
	}
	assert.Equal(t, []bool{true, false, false, true, true}, repeats)
	assert.True(t, in.KeyDown(KeyEnter))

	in.SetKey(KeyEnter, false)
	in.Update(0.1)
	assert.True(t, in.KeyReleased(KeyEnter))
	assert.False(t, in.KeyRepeated(KeyEnter))
}

func TestSplitterBehaviorClampsToMinSize(t *testing.T) {
	ctx, in := testContext(t)
	bb := Rect{Min: Vec2{X: 100, Y: 0}, Max: Vec2{X: 102, Y: 200}}
	id := HashString(0, "splitter")
	size1, size2 := float32(100), float32(200)
	drag := func(x float32) bool {
		in.SetMousePos(x, 50)
		var held bool
		frame(ctx, in, testDT, func() {
			held = ctx.SplitterBehavior(bb, id, AxisX, &size1, &size2, 32, 32, 4, 0)
		})
		return held
	}

	in.SetMouseButton(MouseButtonLeft, true)
	require.True(t, drag(101))
	assert.Equal(t, float32(100), size1, "grabbing does not move the splitter")

	require.True(t, drag(141))
	assert.Equal(t, float32(140), size1)
	assert.Equal(t, float32(160), size2)
	assert.Equal(t, MouseCursorResizeEW, ctx.mouseCursor)

	require.True(t, drag(500))
	assert.Equal(t, float32(268), size1)
	assert.Equal(t, float32(32), size2, "second side stops at its minimum")
	assert.Equal(t, float32(300), size1+size2)

	in.SetMouseButton(MouseButtonLeft, false)
	assert.False(t, drag(500))
}

func TestButtonPressedOnDragDropHold(t *testing.T) {
	ctx, in := testContext(t)
	payload := ctx.CreateWindow("Payload", WindowFlagsNone)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, nil)
	ctx.beginDragDropPayloadWindow(payload)
	require.True(t, ctx.DragDropActive())

	// Steps of a quarter second cross the 0.70s hold delay on the fourth frame.
	const dt = float32(0.25)
	var presses []bool
	for range 6 {
		frame(ctx, in, dt, func() {
			r := button(ctx, boxA, idA, ButtonPressedOnDragDropHold)
			assert.True(t, r.hovered)
			presses = append(presses, r.pressed)
		})
	}
	assert.Equal(t, []bool{false, false, false, true, false, false}, presses)
	assert.Equal(t, idA, ctx.dragDrop.holdJustPressedID)
	assert.True(t, ctx.DragDropActive(), "holding does not drop the payload")
}

func TestButtonDragDropHoldIgnoresSource(t *testing.T) {
	ctx, in := testContext(t)
	payload := ctx.CreateWindow("Payload", WindowFlagsNone)
	in.SetMousePos(20, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, nil)
	ctx.beginDragDropPayloadWindow(payload)

	for range 6 {
		frame(ctx, in, 0.25, func() {
			r := button(ctx, boxA, payload.moveID, ButtonPressedOnDragDropHold)
			assert.False(t, r.pressed, "the dragged item never opens itself")
		})
	}
}

func TestButtonAllowItemOverlap(t *testing.T) {
	ctx, in := testContext(t)
	under := Rect{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 200, Y: 100}}
	var a, b buttonResult
	submit := func() {
		a = button(ctx, under, idA, ButtonAllowItemOverlap)
		b = button(ctx, boxA, idB, ButtonFlagsNone)
	}

	in.SetMousePos(20, 20)
	frame(ctx, in, testDT, submit)
	assert.True(t, b.hovered, "a later item may take the hover from an overlappable one")
	frame(ctx, in, testDT, submit)
	assert.False(t, a.hovered, "the item hovered last frame keeps priority")
	assert.True(t, b.hovered)

	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, submit)
	assert.Equal(t, idB, ctx.ActiveID())
	in.SetMouseButton(MouseButtonLeft, false)
	frame(ctx, in, testDT, submit)
	assert.True(t, b.pressed)
	assert.False(t, a.pressed)

	// Leaving the top item hands the hover back one frame later.
	in.SetMousePos(150, 50)
	frame(ctx, in, testDT, submit)
	assert.False(t, a.hovered)
	frame(ctx, in, testDT, submit)
	assert.True(t, a.hovered)
}
