package dockgui

// MouseCursor is the cursor shape requested for the current frame.
type MouseCursor int

const (
	MouseCursorArrow MouseCursor = iota
	MouseCursorResizeEW
	MouseCursorResizeNS
)

// splitterHoverPadding extends the splitter hit area on both sides of its axis.
const splitterHoverPadding float32 = 4

// MouseCursor returns the cursor requested by widgets this frame.
func (ctx *Context) MouseCursor() MouseCursor { return ctx.mouseCursor }

// SplitterBehavior handles a draggable separator between two panes along
// axis. size1 and size2 are updated in place, never shrinking below their
// minimums. Returns true while the splitter is held.
func (ctx *Context) SplitterBehavior(bb Rect, id ID, axis Axis, size1, size2 *float32, minSize1, minSize2, hoverExtend, hoverVisibilityDelay float32) bool {
	interact := bb
	if axis == AxisY {
		interact.Min.Y -= hoverExtend
		interact.Max.Y += hoverExtend
	} else {
		interact.Min.X -= hoverExtend
		interact.Max.X += hoverExtend
	}
	_, hovered, held := ctx.ButtonBehavior(interact, id, ButtonFlattenChildren)

	showHover := hovered && ctx.hoveredIDPreviousFrame == id && ctx.hoveredIDTimer >= hoverVisibilityDelay
	if held || showHover {
		if axis == AxisY {
			ctx.mouseCursor = MouseCursorResizeNS
		} else {
			ctx.mouseCursor = MouseCursorResizeEW
		}
	}

	render := bb
	if held {
		delta := ctx.Input.MousePos.Sub(ctx.activeIDClickOffset).Sub(interact.Min).Axis(axis)
		max1 := maxf(0, *size1-minSize1)
		max2 := maxf(0, *size2-minSize2)
		delta = clampf(delta, -max1, max2)
		if delta != 0 {
			*size1 = maxf(*size1+delta, minSize1)
			*size2 = maxf(*size2-delta, minSize2)
			offset := Vec2{}.SetAxis(axis, delta)
			render = Rect{Min: render.Min.Add(offset), Max: render.Max.Add(offset)}
		}
	}

	if ctx.DrawList != nil {
		color := ctx.Style.Separator
		switch {
		case held:
			color = ctx.Style.SeparatorActive
		case hovered && ctx.hoveredIDTimer >= hoverVisibilityDelay:
			color = ctx.Style.SeparatorHovered
		}
		ctx.DrawList.AddRect(render, color)
	}
	return held
}

// DockNodeTreeUpdateSplitter processes the splitter between the children of
// node, then recurses into visible children. Dragging resizes both sides and
// locks the sizes of nodes further away from the splitter.
func (ctx *Context) DockNodeTreeUpdateSplitter(node *DockNode) {
	c0, c1 := ctx.dockNodeChildren(node)
	if c0 == nil || c1 == nil {
		return
	}
	if c0.IsVisible && c1.IsVisible {
		axis := node.SplitAxis
		bb := Rect{Min: c0.Pos, Max: c1.Pos}
		bb.Min = bb.Min.SetAxis(axis, bb.Min.Axis(axis)+c0.Size.Axis(axis))
		bb.Max = bb.Max.SetAxis(axis.Other(), bb.Max.Axis(axis.Other())+c1.Size.Axis(axis.Other()))

		if !nodeResizeAllowed(c0.MergedFlags|c1.MergedFlags, axis) {
			if ctx.DrawList != nil {
				ctx.DrawList.AddRect(bb, ctx.Style.Separator)
			}
		} else {
			ctx.dockNodeUpdateSplitterDrag(node, c0, c1, axis, bb)
		}
	}
	if c0.IsVisible {
		ctx.DockNodeTreeUpdateSplitter(c0)
	}
	if c1.IsVisible {
		ctx.DockNodeTreeUpdateSplitter(c1)
	}
}

func (ctx *Context) dockNodeUpdateSplitterDrag(node, c0, c1 *DockNode, axis Axis, bb Rect) {
	id := HashString(node.ID, "##Splitter")
	minSize := ctx.Config.WindowMinSize.Axis(axis)
	limit0 := c0.Pos.Axis(axis) + minSize
	limit1 := c1.Pos.Axis(axis) + c1.Size.Axis(axis) - minSize

	// Nodes on both sides of the line bound how far it may travel.
	var touching [2][]*DockNode
	if ctx.activeID == id {
		touching[0] = ctx.dockNodeFindTouchingNodes(c0, axis, 1, nil)
		touching[1] = ctx.dockNodeFindTouchingNodes(c1, axis, 0, nil)
		for _, t := range touching[0] {
			limit0 = maxf(limit0, t.Pos.Axis(axis)+minSize)
		}
		for _, t := range touching[1] {
			limit1 = minf(limit1, t.Pos.Axis(axis)+t.Size.Axis(axis)-minSize)
		}
	}

	size0 := c0.Size.Axis(axis)
	size1 := c1.Size.Axis(axis)
	min0 := limit0 - c0.Pos.Axis(axis)
	min1 := c1.Pos.Axis(axis) + c1.Size.Axis(axis) - limit1
	if !ctx.SplitterBehavior(bb, id, axis, &size0, &size1, min0, min1, splitterHoverPadding, ctx.Config.SplitterHoverVisibilityDelay) {
		return
	}
	if len(touching[0]) == 0 || len(touching[1]) == 0 {
		return
	}

	c0.Size = c0.Size.SetAxis(axis, size0)
	c0.SizeRef = c0.SizeRef.SetAxis(axis, size0)
	c1.Pos = c1.Pos.SetAxis(axis, c1.Pos.Axis(axis)-(size1-c1.Size.Axis(axis)))
	c1.Size = c1.Size.SetAxis(axis, size1)
	c1.SizeRef = c1.SizeRef.SetAxis(axis, size1)

	// Same-axis siblings of touching nodes keep their size during the relayout.
	for side := 0; side < 2; side++ {
		for _, t := range touching[side] {
			for t.ParentID != node.ID {
				parent := ctx.dock.Nodes[t.ParentID]
				if parent == nil {
					break
				}
				if parent.SplitAxis == axis {
					if keep := ctx.dock.Nodes[parent.ChildIDs[side]]; keep != nil {
						keep.WantLockSizeOnce = true
					}
				}
				t = parent
			}
		}
	}
	ctx.DockNodeTreeUpdatePosSize(c0, c0.Pos, c0.Size, nil)
	ctx.DockNodeTreeUpdatePosSize(c1, c1.Pos, c1.Size, nil)
	ctx.MarkIniSettingsDirty()
}

// dockNodeFindTouchingNodes collects the visible leaves of node adjacent to
// its side along axis (0 = near edge, 1 = far edge).
func (ctx *Context) dockNodeFindTouchingNodes(node *DockNode, axis Axis, side int, out []*DockNode) []*DockNode {
	c0, c1 := ctx.dockNodeChildren(node)
	if c0 == nil || c1 == nil {
		return append(out, node)
	}
	if c0.IsVisible && (node.SplitAxis != axis || side == 0 || !c1.IsVisible) {
		out = ctx.dockNodeFindTouchingNodes(c0, axis, side, out)
	}
	if c1.IsVisible && (node.SplitAxis != axis || side == 1 || !c0.IsVisible) {
		out = ctx.dockNodeFindTouchingNodes(c1, axis, side, out)
	}
	return out
}
