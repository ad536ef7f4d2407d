package dockgui

// ButtonFlags configures ButtonBehavior.
type ButtonFlags uint32

const (
	ButtonFlagsNone         ButtonFlags = 0
	ButtonMouseButtonLeft   ButtonFlags = 1 << 0
	ButtonMouseButtonRight  ButtonFlags = 1 << 1
	ButtonMouseButtonMiddle ButtonFlags = 1 << 2

	ButtonPressedOnClickRelease         ButtonFlags = 1 << 4 // Press on click, report on release while still hovered (default)
	ButtonPressedOnClickReleaseAnywhere ButtonFlags = 1 << 5 // Report on release even outside the box
	ButtonPressedOnClick                ButtonFlags = 1 << 6 // Report on click
	ButtonPressedOnRelease              ButtonFlags = 1 << 7 // Report on release without a prior click on the item
	ButtonPressedOnDoubleClick          ButtonFlags = 1 << 8
	ButtonPressedOnDragDropHold         ButtonFlags = 1 << 9 // Report when held hovered during a drag-drop

	ButtonRepeat            ButtonFlags = 1 << 10
	ButtonFlattenChildren   ButtonFlags = 1 << 11
	ButtonAllowItemOverlap  ButtonFlags = 1 << 12
	ButtonDontClosePopups   ButtonFlags = 1 << 13
	ButtonNoKeyModifiers    ButtonFlags = 1 << 14
	ButtonNoHoldingActiveID ButtonFlags = 1 << 15
	ButtonNoNavFocus        ButtonFlags = 1 << 16
	ButtonNoHoveredOnFocus  ButtonFlags = 1 << 17
	ButtonNoSetKeyOwner     ButtonFlags = 1 << 18
	ButtonNoTestKeyOwner    ButtonFlags = 1 << 19
)

const (
	ButtonMouseButtonMask = ButtonMouseButtonLeft | ButtonMouseButtonRight | ButtonMouseButtonMiddle
	ButtonPressedOnMask   = ButtonPressedOnClick | ButtonPressedOnClickRelease | ButtonPressedOnClickReleaseAnywhere |
		ButtonPressedOnRelease | ButtonPressedOnDoubleClick | ButtonPressedOnDragDropHold
)

func buttonFlagForMouse(b MouseButton) ButtonFlags {
	return ButtonMouseButtonLeft << ButtonFlags(b)
}

// ButtonBehavior turns the input snapshot, a bounding box and an id into
// pressed/hovered/held, claiming or releasing the active id as a side effect.
func (ctx *Context) ButtonBehavior(bb Rect, id ID, flags ButtonFlags) (pressed, hovered, held bool) {
	in := ctx.Input
	if in == nil {
		return false, false, false
	}
	window := ctx.currentWindow

	if flags&ButtonMouseButtonMask == 0 {
		flags |= ButtonMouseButtonLeft
	}
	if flags&ButtonPressedOnMask == 0 {
		flags |= ButtonPressedOnClickRelease
	}
	if ctx.activeID == id {
		ctx.KeepAliveID(id)
	}

	backupHoveredWindow := ctx.hoveredWindow
	if flags&ButtonFlattenChildren != 0 && ctx.hoveredWindow != nil && window != nil &&
		ctx.hitTestWindow(ctx.hoveredWindow) == ctx.hitTestWindow(window) {
		ctx.hoveredWindow = window
	}
	hovered = ctx.ItemHoverable(bb, id)

	// A dragged item does not hover itself.
	if ctx.dragDrop.active && ctx.dragDrop.sourceID == id && flags&ButtonPressedOnDragDropHold == 0 {
		hovered = false
	}

	// Holding a payload over the item long enough presses it.
	if ctx.dragDrop.active && flags&ButtonPressedOnDragDropHold != 0 && ctx.dragDrop.sourceID != id {
		if ctx.isMouseHoveringRect(bb) && ctx.isWindowContentHoverable(window) {
			hovered = true
			ctx.SetHoveredID(id)
			t := ctx.hoveredIDTimer
			if t-ctx.DeltaTime <= ctx.Config.DragDropHoldToOpenTimer && t >= ctx.Config.DragDropHoldToOpenTimer {
				pressed = true
				ctx.dragDrop.holdJustPressedID = id
				ctx.FocusWindow(window)
			}
		}
	}
	ctx.hoveredWindow = backupHoveredWindow

	// A later overlapping item only wins if it already was hovered last frame.
	if flags&ButtonAllowItemOverlap != 0 {
		if hovered {
			ctx.hoveredIDAllowOverlap = true
		}
		if ctx.hoveredIDPreviousFrame != id && ctx.hoveredIDPreviousFrame != 0 {
			hovered = false
		}
	}

	// Mouse handling
	if hovered && (flags&ButtonNoKeyModifiers == 0 || !in.AnyModifier()) {
		clicked, released := MouseButton(-1), MouseButton(-1)
		for b := MouseButton(0); b < MouseButtonCount; b++ {
			if flags&buttonFlagForMouse(b) == 0 {
				continue
			}
			if clicked < 0 && in.MouseClicked(b) {
				clicked = b
			}
			if released < 0 && in.MouseReleased(b) {
				released = b
			}
		}

		if clicked >= 0 && ctx.activeID != id {
			if flags&(ButtonPressedOnClickRelease|ButtonPressedOnClickReleaseAnywhere) != 0 {
				ctx.FocusWindow(window)
				ctx.SetActiveID(id, window)
				ctx.activeIDMouseButton = clicked
				if flags&ButtonNoNavFocus == 0 {
					ctx.SetFocusID(id)
				}
			}
			if flags&ButtonPressedOnClick != 0 || (flags&ButtonPressedOnDoubleClick != 0 && in.MouseClickedCount(clicked) == 2) {
				pressed = true
				ctx.FocusWindow(window)
				if flags&ButtonNoHoldingActiveID != 0 {
					ctx.ClearActiveID()
				} else {
					ctx.SetActiveID(id, window)
					ctx.activeIDMouseButton = clicked
				}
				if flags&ButtonNoNavFocus == 0 {
					ctx.SetFocusID(id)
				}
			}
		}
		if flags&ButtonPressedOnRelease != 0 && released >= 0 {
			// Repeat mode trumps on-release.
			repeated := flags&ButtonRepeat != 0 && in.mouseDownDurationPrev[released] >= in.KeyRepeatDelay
			if !repeated {
				pressed = true
			}
			if ctx.activeID == id {
				ctx.ClearActiveID()
			}
		}

		if ctx.activeID == id && flags&ButtonRepeat != 0 {
			if in.MouseDownDuration(ctx.activeIDMouseButton) > 0 && in.MouseRepeated(ctx.activeIDMouseButton) {
				pressed = true
			}
		}
	}

	// Keyboard activation
	if ctx.navID == id && flags&ButtonNoNavFocus == 0 {
		byInputs := ctx.navActivatePressedID == id
		if !byInputs && flags&ButtonRepeat != 0 && ctx.navActivateDownID == id {
			byInputs = in.KeyRepeated(KeySpace) || in.KeyRepeated(KeyEnter)
		}
		if ctx.navActivateID == id || byInputs {
			pressed = true
			ctx.SetActiveID(id, window)
			ctx.activeIDSource = InputSourceNav
		}
	}

	// Held and deferred release
	if ctx.activeID == id {
		switch ctx.activeIDSource {
		case InputSourceMouse:
			if ctx.activeIDIsJustActivated {
				ctx.activeIDClickOffset = in.MousePos.Sub(bb.Min)
			}
			b := ctx.activeIDMouseButton
			if in.MouseDown(b) {
				held = true
			} else {
				releaseIn := hovered && flags&ButtonPressedOnClickRelease != 0
				releaseAnywhere := flags&ButtonPressedOnClickReleaseAnywhere != 0
				if (releaseIn || releaseAnywhere) && !ctx.dragDrop.active {
					doubleClickRelease := flags&ButtonPressedOnDoubleClick != 0 && in.MouseReleased(b) && in.MouseClickedCount(b) == 2
					repeating := flags&ButtonRepeat != 0 && in.mouseDownDurationPrev[b] >= in.KeyRepeatDelay
					if !doubleClickRelease && !repeating {
						pressed = true
					}
				}
				ctx.ClearActiveID()
			}
		case InputSourceNav:
			// Held until the activation key goes up.
			if ctx.navActivateDownID == id {
				held = true
			} else {
				ctx.ClearActiveID()
			}
		}
		if pressed {
			ctx.activeIDHasBeenPressedBefore = true
		}
	}

	ctx.lastItemID = id
	ctx.lastItemRect = bb
	return pressed, hovered, held
}

// ItemHoverable reports whether the mouse hovers bb and no other item owns
// the hovered or active id. It claims the hovered id on success.
func (ctx *Context) ItemHoverable(bb Rect, id ID) bool {
	if ctx.hoveredID != 0 && ctx.hoveredID != id && !ctx.hoveredIDAllowOverlap {
		return false
	}
	if ctx.activeID != 0 && ctx.activeID != id {
		return false
	}
	if !ctx.isWindowContentHoverable(ctx.currentWindow) {
		return false
	}
	if !ctx.isMouseHoveringRect(bb) {
		return false
	}
	if id != 0 {
		ctx.SetHoveredID(id)
	}
	return true
}

func (ctx *Context) isMouseHoveringRect(bb Rect) bool {
	return ctx.Input != nil && bb.Contains(ctx.Input.MousePos)
}

// isWindowContentHoverable reports whether items of w can receive the mouse.
// Items submitted outside any window are hoverable when no window covers the mouse.
func (ctx *Context) isWindowContentHoverable(w *Window) bool {
	if w == nil {
		return ctx.hoveredWindow == nil
	}
	return ctx.hoveredWindow != nil && ctx.hitTestWindow(ctx.hoveredWindow) == ctx.hitTestWindow(w)
}

// hitTestWindow returns the window mouse hit-testing resolves w to: docked
// windows are tested through the host window of their root node.
func (ctx *Context) hitTestWindow(w *Window) *Window {
	if w == nil || w.DockNodeID == 0 {
		return w
	}
	node := ctx.dock.Nodes[w.DockNodeID]
	if node == nil {
		return w
	}
	if host := ctx.FindWindowByID(ctx.DockNodeGetRootNode(node).HostWindowID); host != nil && w.DockNodeIsVisible {
		return host
	}
	return w
}

// SetActiveID gives id ownership of the mouse. Passing 0 releases it.
func (ctx *Context) SetActiveID(id ID, w *Window) {
	ctx.activeIDIsJustActivated = ctx.activeID != id
	if ctx.activeIDIsJustActivated {
		ctx.activeIDTimer = 0
		ctx.activeIDHasBeenPressedBefore = false
		ctx.activeIDNoClearOnFocusLoss = false
		if id != 0 {
			ctx.logger.Debug("active id set", "id", id, "previous", ctx.activeID)
		}
	}
	ctx.activeID = id
	ctx.activeIDWindow = w
	ctx.activeIDSource = InputSourceNone
	if id != 0 {
		ctx.activeIDSource = InputSourceMouse
		ctx.activeIDIsAlive = id
	}
}

// ClearActiveID releases the active id.
func (ctx *Context) ClearActiveID() {
	ctx.SetActiveID(0, nil)
}

// SetHoveredID records id as hovered this frame. The hover timer restarts
// when the id differs from last frame's.
func (ctx *Context) SetHoveredID(id ID) {
	ctx.hoveredID = id
	ctx.hoveredIDAllowOverlap = false
	if id != 0 && ctx.hoveredIDPreviousFrame != id {
		ctx.hoveredIDTimer = 0
	}
}

// KeepAliveID marks the active id as submitted this frame so it survives the next NewFrame.
func (ctx *Context) KeepAliveID(id ID) {
	if ctx.activeID == id {
		ctx.activeIDIsAlive = id
	}
}

// SetFocusID moves keyboard focus to id.
func (ctx *Context) SetFocusID(id ID) {
	ctx.navID = id
}

// ActiveID returns the id of the item owning the mouse, or 0.
func (ctx *Context) ActiveID() ID { return ctx.activeID }

// ActiveIDSource returns what claimed the active id.
func (ctx *Context) ActiveIDSource() InputSource { return ctx.activeIDSource }

// ActiveIDMouseButton returns the button that claimed the active id.
func (ctx *Context) ActiveIDMouseButton() MouseButton { return ctx.activeIDMouseButton }

// ActiveIDClickOffset returns the mouse offset from the item origin at activation.
func (ctx *Context) ActiveIDClickOffset() Vec2 { return ctx.activeIDClickOffset }

// ActiveIDTimer returns how long the active id has been held.
func (ctx *Context) ActiveIDTimer() float32 { return ctx.activeIDTimer }

// HoveredID returns the id hovered so far this frame.
func (ctx *Context) HoveredID() ID { return ctx.hoveredID }

// HoveredIDPreviousFrame returns last frame's hovered id.
func (ctx *Context) HoveredIDPreviousFrame() ID { return ctx.hoveredIDPreviousFrame }

// HoveredIDTimer returns how long the hovered id has stayed hovered.
func (ctx *Context) HoveredIDTimer() float32 { return ctx.hoveredIDTimer }

// LastItemID returns the id of the last item passed to ButtonBehavior.
func (ctx *Context) LastItemID() ID { return ctx.lastItemID }
