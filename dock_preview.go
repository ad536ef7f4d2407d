package dockgui

import "math"

// DockPreviewNode is the tentative shape of the node a drop would produce.
type DockPreviewNode struct {
	Pos                 Vec2
	Size                Vec2
	HasCloseButton      bool
	HasWindowMenuButton bool
}

// Rect returns the tentative node rectangle.
func (n DockPreviewNode) Rect() Rect { return RectFromPosSize(n.Pos, n.Size) }

// DockPreviewData is the result of evaluating a drop target for a payload.
// DropRectsDraw is indexed by dir+1 so that DirNone (center) is slot 0;
// slots whose marker is not shown hold an inverted rectangle.
type DockPreviewData struct {
	FutureNode         DockPreviewNode
	IsDropAllowed      bool
	IsCenterAvailable  bool
	IsSidesAvailable   bool
	IsSplitDirExplicit bool
	SplitNode          *DockNode
	SplitDir           Dir
	SplitRatio         float32 // Payload's share of the split axis
	DropRectsDraw      [5]Rect
}

var invertedRect = Rect{
	Min: Vec2{X: math.MaxFloat32, Y: math.MaxFloat32},
	Max: Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32},
}

// IsInverted reports whether Min lies past Max on either axis.
func (r Rect) IsInverted() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

func newDockPreviewData() DockPreviewData {
	d := DockPreviewData{SplitDir: DirNone}
	for i := range d.DropRectsDraw {
		d.DropRectsDraw[i] = invertedRect
	}
	return d
}

// dirQuadrantFromDelta returns the cardinal direction closest to (dx, dy).
func dirQuadrantFromDelta(dx, dy float32) Dir {
	if absf(dx) > absf(dy) {
		if dx > 0 {
			return DirRight
		}
		return DirLeft
	}
	if dy > 0 {
		return DirDown
	}
	return DirUp
}

// DockNodeCalcDropRectsAndTestMousePos returns the drop marker rectangle for
// dir over parent and whether mouse selects it. Inner markers use a radial
// test around the center so moving diagonally between markers does not flicker.
func (ctx *Context) DockNodeCalcDropRectsAndTestMousePos(parent Rect, dir Dir, outerDocking bool, mouse *Vec2) (Rect, bool) {
	unit := ctx.Config.TabBarHeight
	smaller := minf(parent.Width(), parent.Height())
	hsCentral := minf(unit*1.5, maxf(unit*0.5, smaller/8))

	var hsW, hsH float32
	var off Vec2
	if outerDocking {
		hsW = floorf(hsCentral * 1.5)
		hsH = floorf(hsCentral * 0.8)
		off = Vec2{X: parent.Width()*0.5 - hsH, Y: parent.Height()*0.5 - hsH}.Floor()
	} else {
		hsW = floorf(hsCentral)
		hsH = floorf(hsCentral * 0.9)
		off = Vec2{X: hsW * 2.4, Y: hsW * 2.4}.Floor()
	}

	c := parent.Center().Floor()
	var r Rect
	switch dir {
	case DirNone:
		r = Rect{Min: Vec2{X: c.X - hsW, Y: c.Y - hsW}, Max: Vec2{X: c.X + hsW, Y: c.Y + hsW}}
	case DirUp:
		r = Rect{Min: Vec2{X: c.X - hsW, Y: c.Y - off.Y - hsH}, Max: Vec2{X: c.X + hsW, Y: c.Y - off.Y + hsH}}
	case DirDown:
		r = Rect{Min: Vec2{X: c.X - hsW, Y: c.Y + off.Y - hsH}, Max: Vec2{X: c.X + hsW, Y: c.Y + off.Y + hsH}}
	case DirLeft:
		r = Rect{Min: Vec2{X: c.X - off.X - hsH, Y: c.Y - hsW}, Max: Vec2{X: c.X - off.X + hsH, Y: c.Y + hsW}}
	case DirRight:
		r = Rect{Min: Vec2{X: c.X + off.X - hsH, Y: c.Y - hsW}, Max: Vec2{X: c.X + off.X + hsH, Y: c.Y + hsW}}
	}
	if mouse == nil {
		return r, false
	}

	hit := r
	if !outerDocking {
		hit = hit.Expand(floorf(hsW * 0.3))
		delta := mouse.Sub(c)
		lenSqr := delta.LengthSqr()
		center := hsW * 1.4
		sides := hsW * (1.4 + 1.2)
		if lenSqr < center*center {
			return r, dir == DirNone
		}
		if lenSqr < sides*sides {
			return r, dir == dirQuadrantFromDelta(delta.X, delta.Y)
		}
	}
	return r, hit.Contains(*mouse)
}

// DockNodeCalcSplitRects splits the old rectangle along dir, giving the new
// side the payload's desired size when it fits within ratio of the space.
func (ctx *Context) DockNodeCalcSplitRects(posOld, sizeOld Vec2, dir Dir, desired Vec2, ratio float32) (pOld, sOld, pNew, sNew Vec2) {
	axis := dir.Axis()
	other := axis.Other()
	spacing := ctx.Config.SplitterThickness
	pOld, sOld = posOld, sizeOld
	pNew = pNew.SetAxis(other, posOld.Axis(other))
	sNew = sNew.SetAxis(other, sizeOld.Axis(other))

	avail := sizeOld.Axis(axis) - spacing
	want := desired.Axis(axis)
	if want > 0 && want <= avail*ratio {
		sNew = sNew.SetAxis(axis, want)
	} else {
		sNew = sNew.SetAxis(axis, floorf(avail*ratio))
	}
	sOld = sOld.SetAxis(axis, floorf(avail-sNew.Axis(axis)))

	if dir.IsPositive() {
		pNew = pNew.SetAxis(axis, posOld.Axis(axis)+sOld.Axis(axis)+spacing)
	} else {
		pNew = pNew.SetAxis(axis, posOld.Axis(axis))
		pOld = pOld.SetAxis(axis, pNew.Axis(axis)+sNew.Axis(axis)+spacing)
	}
	return pOld, sOld, pNew, sNew
}

// dockNodeIsDropAllowedOne applies the window class filter to one payload window.
func (ctx *Context) dockNodeIsDropAllowedOne(payload, host *Window) bool {
	hostClass := host.WindowClass
	if hn := ctx.dock.Nodes[host.DockNodeAsHostID]; hn != nil {
		hostClass = hn.WindowClass
	}
	pc := payload.WindowClass
	if hostClass.ClassID == pc.ClassID {
		return true
	}
	if hostClass.ClassID != 0 && hostClass.DockingAllowUnclassed && pc.ClassID == 0 {
		return true
	}
	return pc.ClassID != 0 && pc.DockingAllowUnclassed && hostClass.ClassID == 0
}

// DockNodeIsDropAllowed reports whether payload may dock anywhere into host.
// A payload hosting several windows passes when any of them passes.
func (ctx *Context) DockNodeIsDropAllowed(host, payload *Window) bool {
	if host == nil || payload == nil {
		return false
	}
	pn := ctx.dock.Nodes[payload.DockNodeAsHostID]
	if pn == nil {
		return ctx.dockNodeIsDropAllowedOne(payload, host)
	}
	if pn.IsSplitNode() {
		return true
	}
	for _, w := range pn.Windows {
		if ctx.dockNodeIsDropAllowedOne(w, host) {
			return true
		}
	}
	return false
}

// DockNodePreviewDockSetup evaluates dropping payload onto hostNode (or onto
// the bare host window when hostNode is nil) for the current mouse position.
func (ctx *Context) DockNodePreviewDockSetup(host *Window, hostNode *DockNode, payload *Window, payloadNode *DockNode, data *DockPreviewData, isExplicitTarget, isOuterDocking bool) {
	if payloadNode == nil {
		payloadNode = ctx.dock.Nodes[payload.DockNodeAsHostID]
	}
	// Inactive leaves have no geometry yet; measure against their root.
	refNode := hostNode
	if hostNode != nil && !hostNode.IsVisible {
		refNode = ctx.DockNodeGetRootNode(hostNode)
	}

	srcFlags := payload.WindowClass.DockNodeFlagsOverrideSet
	if payloadNode != nil {
		srcFlags = payloadNode.MergedFlags
	}
	dstFlags := host.WindowClass.DockNodeFlagsOverrideSet
	hostCentral, hostEmpty := false, false
	if hostNode != nil {
		dstFlags = hostNode.MergedFlags
		hostCentral = hostNode.IsCentralNode()
		hostEmpty = hostNode.IsEmpty()
	}

	data.IsCenterAvailable = !isOuterDocking && nodeAllowsCenterDrop(dstFlags, srcFlags, hostCentral, hostEmpty)
	if data.IsCenterAvailable && !hostEmpty && payloadNode != nil && payloadNode.IsSplitNode() && payloadNode.OnlyNodeWithWindowsID == 0 {
		// A visibly split payload cannot become tabs.
		data.IsCenterAvailable = false
	}
	data.IsSidesAvailable = nodeAllowsSplitDrop(dstFlags, srcFlags, ctx.Config.DockingNoSplit)
	if !isOuterDocking && hostNode != nil && hostNode.ParentID == 0 && hostCentral {
		data.IsSidesAvailable = false
	}

	data.FutureNode.HasCloseButton = payload.HasCloseButton()
	if hostNode != nil {
		data.FutureNode.HasCloseButton = data.FutureNode.HasCloseButton || hostNode.HasCloseButton
		data.FutureNode.HasWindowMenuButton = true
	} else {
		data.FutureNode.HasCloseButton = data.FutureNode.HasCloseButton || host.HasCloseButton()
		data.FutureNode.HasWindowMenuButton = host.Flags&WindowNoCollapse == 0
	}
	if refNode != nil {
		data.FutureNode.Pos, data.FutureNode.Size = refNode.Pos, refNode.Size
	} else {
		data.FutureNode.Pos, data.FutureNode.Size = host.Pos, host.Size
	}

	data.SplitNode = hostNode
	data.SplitDir = DirNone
	data.IsSplitDirExplicit = false
	if !host.Collapsed && ctx.Input != nil {
		mouse := ctx.Input.MousePos
		for dir := DirNone; dir <= DirDown; dir++ {
			if dir == DirNone && !data.IsCenterAvailable {
				continue
			}
			if dir != DirNone && !data.IsSidesAvailable {
				continue
			}
			r, hit := ctx.DockNodeCalcDropRectsAndTestMousePos(data.FutureNode.Rect(), dir, isOuterDocking, &mouse)
			data.DropRectsDraw[dir+1] = r
			if hit {
				data.SplitDir = dir
				data.IsSplitDirExplicit = true
			}
		}
	}

	// Off the markers, dropping needs the title bar (or the shift modifier).
	data.IsDropAllowed = data.SplitDir != DirNone || data.IsCenterAvailable
	if !isExplicitTarget && !data.IsSplitDirExplicit && !ctx.Config.DockingWithShift {
		data.IsDropAllowed = false
	}

	data.SplitRatio = 0
	if data.SplitDir != DirNone {
		ratio := ctx.Config.DockingSplitRatio
		if isOuterDocking {
			ratio = ctx.Config.DockingOuterSplitRatio
		}
		axis := data.SplitDir.Axis()
		_, _, pNew, sNew := ctx.DockNodeCalcSplitRects(data.FutureNode.Pos, data.FutureNode.Size, data.SplitDir, payload.Size, ratio)
		if full := data.FutureNode.Size.Axis(axis); full > 0 {
			data.SplitRatio = clampf(sNew.Axis(axis)/full, 0, 1)
		}
		data.FutureNode.Pos = pNew
		data.FutureNode.Size = sNew
	}
}

// DockNodePreviewDockRender draws the drop overlay and markers for data into
// the foreground draw list.
func (ctx *Context) DockNodePreviewDockRender(host *Window, hostNode *DockNode, payload *Window, data *DockPreviewData) {
	dl := ctx.ForegroundDrawList
	if dl == nil {
		return
	}
	mainAlpha, dropAlpha, hoverAlpha := float32(0.40), float32(0.70), float32(1.0)
	if ctx.Config.DockingTransparentPayload {
		mainAlpha, dropAlpha, hoverAlpha = 0.60, 0.90, 1.0
	}
	colMain := scaleAlpha(ctx.Style.DockingPreview, mainAlpha)
	colDrop := scaleAlpha(ctx.Style.DockingPreview, dropAlpha)
	colHover := scaleAlpha(ctx.Style.DockingPreview, hoverAlpha)
	colLines := scaleAlpha(ctx.Style.DockingDropTarget, 0.6)

	canPreviewTabs := true
	if pn := ctx.dock.Nodes[payload.DockNodeAsHostID]; pn != nil {
		canPreviewTabs = len(pn.Windows) > 0
	}
	if data.IsDropAllowed && (data.SplitDir != DirNone || data.IsCenterAvailable) {
		overlay := data.FutureNode.Rect()
		if data.SplitDir == DirNone && canPreviewTabs {
			overlay.Min.Y += ctx.Config.TabBarHeight
		}
		dl.AddRect(overlay, colMain)
	}
	if data.IsDropAllowed && canPreviewTabs && data.SplitDir == DirNone && data.IsCenterAvailable {
		tab := RectFromPosSize(data.FutureNode.Pos, Vec2{X: minf(ctx.Config.TabWidth, data.FutureNode.Size.X), Y: ctx.Config.TabBarHeight})
		dl.AddRect(tab, ctx.Style.TabActive)
	}

	noSplit := ctx.Config.DockingNoSplit || (hostNode != nil && hostNode.MergedFlags.Has(DockNodeNoDockingSplit))
	for dir := DirNone; dir <= DirDown; dir++ {
		r := data.DropRectsDraw[dir+1]
		if !r.IsInverted() {
			in := r.Expand(-2)
			color := colDrop
			if data.SplitDir == dir && data.IsSplitDirExplicit {
				color = colHover
			}
			center := in.Center().Floor()
			dl.AddRect(r, color)
			dl.AddRectOutline(in, colLines, 1)
			switch dir {
			case DirLeft, DirRight:
				dl.AddLine(Vec2{X: center.X, Y: in.Min.Y}, Vec2{X: center.X, Y: in.Max.Y}, colLines, 1)
			case DirUp, DirDown:
				dl.AddLine(Vec2{X: in.Min.X, Y: center.Y}, Vec2{X: in.Max.X, Y: center.Y}, colLines, 1)
			}
		}
		if noSplit {
			return
		}
	}
}

// scaleAlpha multiplies the alpha channel of a packed color.
func scaleAlpha(color uint32, s float32) uint32 {
	a := clampf(float32(color>>24)*s, 0, 255)
	return color&0x00FFFFFF | uint32(a)<<24
}

// BeginDockableDragDropSource makes w, while it is being moved, the docking
// payload. Windows excluded from docking never become payloads.
func (ctx *Context) BeginDockableDragDropSource(w *Window) {
	if w.Flags&WindowNoDocking != 0 {
		return
	}
	ctx.beginDragDropPayloadWindow(w)
}

// BeginDockableDragDropTarget evaluates host as a drop target for the
// current payload, renders the preview and, on delivery, queues the dock.
func (ctx *Context) BeginDockableDragDropTarget(host *Window, delivery bool) {
	d := &ctx.dragDrop
	payload := d.payloadWindow
	if host.Flags&WindowNoDocking != 0 && host.DockNodeAsHostID == 0 {
		return
	}
	if !ctx.DockNodeIsDropAllowed(host, payload) {
		return
	}
	mouse := ctx.Input.MousePos

	var node *DockNode
	intoFloating := false
	if hn := ctx.dock.Nodes[host.DockNodeAsHostID]; hn != nil {
		node = ctx.DockNodeTreeFindVisibleNodeByPos(hn, mouse)
		// A dockspace with only inactive nodes still accepts drops into a leaf.
		if node != nil && node.IsDockSpace() && node.IsRootNode() {
			if central := ctx.dock.Nodes[node.CentralNodeID]; central != nil && node.IsLeafNode() {
				node = central
			} else {
				node = ctx.dockNodeTreeFindFallbackLeafNode(node)
			}
		}
	} else if host.DockNodeID != 0 {
		node = ctx.dock.Nodes[host.DockNodeID]
	} else {
		intoFloating = true
	}
	if node == nil && !intoFloating {
		return
	}

	explicitRect := host.TitleBarRect(ctx.Config.TabBarHeight)
	if node != nil && node.TabBar != nil && !node.IsHiddenTabBar() && !node.IsNoTabBar() {
		explicitRect = node.TabBar.BarRect
	}
	isExplicit := ctx.Config.DockingWithShift || explicitRect.Contains(mouse)

	inner, outer := newDockPreviewData(), newDockPreviewData()
	split := &inner
	if node != nil && (node.ParentID != 0 || node.IsCentralNode() || !node.IsLeafNode()) {
		root := ctx.DockNodeGetRootNode(node)
		ctx.DockNodePreviewDockSetup(host, root, payload, nil, &outer, isExplicit, true)
		if outer.IsSplitDirExplicit {
			split = &outer
		}
	}
	if node == nil || node.IsLeafNode() {
		ctx.DockNodePreviewDockSetup(host, node, payload, nil, &inner, isExplicit, false)
	}
	if split == &outer {
		inner.IsDropAllowed = false
	}
	ctx.DockNodePreviewDockRender(host, node, payload, &inner)
	ctx.DockNodePreviewDockRender(host, node, payload, &outer)

	d.targetWindow = host
	d.targetNode = node
	d.preview = *split
	d.hasPreview = true

	if split.IsDropAllowed && delivery {
		ctx.logger.Debug("dock: drop delivered", "payload", payload.String(), "target", host.String(),
			"dir", split.SplitDir, "outer", split == &outer)
		ctx.DockContextQueueDock(host, split.SplitNode, payload, split.SplitDir, split.SplitRatio, split == &outer)
	}
}

// updateDockingDragDrop resolves the drop target under the mouse for the
// current payload. Releasing the mouse delivers the payload and ends the drag.
func (ctx *Context) updateDockingDragDrop() {
	d := &ctx.dragDrop
	d.targetWindow, d.targetNode, d.hasPreview = nil, nil, false
	if !d.active || ctx.Input == nil {
		return
	}
	payload := d.payloadWindow
	if payload == nil || ctx.FindWindowByID(payload.ID) != payload {
		ctx.endDragDrop()
		return
	}
	delivery := !ctx.Input.MouseDown(d.mouseButton)
	wantDock := !ctx.Config.DockingWithShift || ctx.Input.ModShift
	if wantDock {
		if target := ctx.findHoveredWindow(payload); target != nil && target != payload {
			ctx.BeginDockableDragDropTarget(target, delivery)
		}
	}
	if delivery {
		ctx.endDragDrop()
	}
}
