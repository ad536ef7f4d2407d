package dockgui

// dragDropState tracks the window being dragged as a docking payload and the
// drop target resolved for it this frame.
type dragDropState struct {
	active            bool
	sourceID          ID
	payloadWindow     *Window
	mouseButton       MouseButton
	holdJustPressedID ID

	// Resolved by updateDockingDragDrop
	targetWindow *Window
	targetNode   *DockNode
	preview      DockPreviewData
	hasPreview   bool
}

func (d *dragDropState) reset() {
	*d = dragDropState{}
}

// beginDragDropPayloadWindow starts carrying w as a docking payload.
func (ctx *Context) beginDragDropPayloadWindow(w *Window) {
	if ctx.dragDrop.active && ctx.dragDrop.payloadWindow == w {
		return
	}
	ctx.dragDrop.reset()
	ctx.dragDrop.active = true
	ctx.dragDrop.sourceID = w.moveID
	ctx.dragDrop.payloadWindow = w
	ctx.dragDrop.mouseButton = MouseButtonLeft
	ctx.logger.Debug("drag payload", "window", w.String())
}

// endDragDrop drops the payload without docking it.
func (ctx *Context) endDragDrop() {
	ctx.dragDrop.reset()
}

// DragDropActive reports whether a window is being dragged as a docking payload.
func (ctx *Context) DragDropActive() bool { return ctx.dragDrop.active }

// DragDropPayloadSourceID returns the id of the item that started the drag, or 0.
func (ctx *Context) DragDropPayloadSourceID() ID { return ctx.dragDrop.sourceID }

// DragDropPayloadWindow returns the window being dragged, or nil.
func (ctx *Context) DragDropPayloadWindow() *Window { return ctx.dragDrop.payloadWindow }

// DragDropPreview returns the drop preview computed at the last EndFrame.
func (ctx *Context) DragDropPreview() (DockPreviewData, bool) {
	return ctx.dragDrop.preview, ctx.dragDrop.hasPreview
}
