package dockgui

import "fmt"

func dockNodeHostWindowName(id ID) string {
	return fmt.Sprintf("##DockNode_%08X", uint32(id))
}

func (ctx *Context) dockNodeAddTabBar(node *DockNode) {
	ctx.assert(node.TabBar == nil, "node already has a tab bar", "node", node.ID)
	node.TabBar = NewTabBar(node.ID)
}

func (ctx *Context) dockNodeRemoveTabBar(node *DockNode) {
	node.TabBar = nil
}

// DockNodeAddWindow docks w into node, undocking it from its previous node first.
func (ctx *Context) DockNodeAddWindow(node *DockNode, w *Window, addToTabBar bool) {
	if w.DockNodeID != 0 {
		if w.DockNodeID == node.ID {
			return
		}
		if old := ctx.dock.Nodes[w.DockNodeID]; old != nil {
			ctx.DockNodeRemoveWindow(old, w, 0)
		}
	}
	ctx.assert(w.DockNodeAsHostID != node.ID, "docking a host window into its own node", "node", node.ID)

	node.Windows = append(node.Windows, w)
	node.WantHiddenTabBarUpdate = true
	w.DockNodeID = node.ID
	w.DockID = node.ID
	w.DockIsActive = len(node.Windows) > 1
	w.DockTabWantClose = false

	// A sizeless floating node takes the geometry of its first window.
	if node.HostWindowID == 0 && node.IsFloatingNode() && len(node.Windows) == 1 && node.Size == (Vec2{}) {
		node.Pos = w.Pos
		node.Size = w.SizeFull
		node.SizeRef = w.SizeFull
		node.AuthorityForPos = false
		node.AuthorityForSize = false
	}

	if addToTabBar {
		if node.TabBar == nil {
			ctx.dockNodeAddTabBar(node)
			node.TabBar.SelectedTabID = node.SelectedTabID
			node.TabBar.NextSelectedTabID = node.SelectedTabID
			for _, other := range node.Windows[:len(node.Windows)-1] {
				node.TabBar.AddTab(other.TabID, other)
			}
		}
		node.TabBar.AddTab(w.TabID, w)
	}
	ctx.DockNodeUpdateVisibleFlag(node)
	ctx.dockNodeUpdateLocalFlagsInWindows(node)
}

// dockNodeDetachWindow removes w from node's window list and tab bar only.
func (ctx *Context) dockNodeDetachWindow(node *DockNode, w *Window) bool {
	found := false
	for i, other := range node.Windows {
		if other == w {
			node.Windows = append(node.Windows[:i], node.Windows[i+1:]...)
			found = true
			break
		}
	}
	if node.VisibleWindowID == w.ID {
		node.VisibleWindowID = 0
	}
	if node.TabBar != nil {
		node.TabBar.RemoveTab(w.TabID)
	}
	return found
}

// DockNodeRemoveWindow undocks w from node. saveDockID is what w keeps as
// DockID afterwards: 0 forgets the node, node.ID keeps it as a home.
//
// An emptied node deletes itself unless it is central, a dockspace, or
// still referenced by the window as its home.
func (ctx *Context) DockNodeRemoveWindow(node *DockNode, w *Window, saveDockID ID) {
	ctx.assert(w.DockNodeID == node.ID, "window is not docked in node", "window", w.String(), "node", node.ID)
	ctx.assert(saveDockID == 0 || saveDockID == node.ID, "invalid saved dock id", "node", node.ID, "save", saveDockID)
	ctx.logger.Debug("dock: remove window", "window", w.String(), "node", node.ID, "save_dock_id", saveDockID)

	w.DockNodeID = 0
	w.DockIsActive = false
	w.DockNodeIsVisible = false
	w.DockTabIsVisible = false
	w.DockTabWantClose = false
	w.DockID = saveDockID

	if !ctx.dockNodeDetachWindow(node, w) {
		ctx.assert(false, "window missing from its node", "window", w.String(), "node", node.ID)
	}
	node.WantHiddenTabBarUpdate = true
	if node.TabBar != nil && len(node.Windows) < nodeTabBarRemovalThreshold(node.IsCentralNode()) {
		ctx.dockNodeRemoveTabBar(node)
	}

	if len(node.Windows) == 0 && !node.IsCentralNode() && !node.IsDockSpace() && w.DockID != node.ID {
		ctx.DockContextRemoveNode(node, true)
		return
	}
	if len(node.Windows) == 1 && !node.IsCentralNode() {
		if host := ctx.FindWindowByID(node.HostWindowID); host != nil {
			node.Windows[0].Collapsed = host.Collapsed
		}
	}
	ctx.dockNodeUpdateLocalFlagsInWindows(node)
}

func (ctx *Context) dockNodeUpdateLocalFlagsInWindows(node *DockNode) {
	node.LocalFlagsInWindows = 0
	for _, w := range node.Windows {
		node.LocalFlagsInWindows |= w.WindowClass.DockNodeFlagsOverrideSet
	}
	node.UpdateMergedFlags()
}

// DockNodeUpdateVisibleFlag recomputes node.IsVisible from its own contents
// and its children's current flags.
func (ctx *Context) DockNodeUpdateVisibleFlag(node *DockNode) {
	visible := node.IsCentralNode()
	if node.ParentID == 0 {
		visible = node.IsDockSpace()
	}
	visible = visible || len(node.Windows) > 0
	c0, c1 := ctx.dockNodeChildren(node)
	visible = visible || (c0 != nil && c0.IsVisible) || (c1 != nil && c1.IsVisible)
	node.IsVisible = visible
}

func (ctx *Context) dockNodeUpdateVisibleFlagRecursive(node *DockNode) {
	c0, c1 := ctx.dockNodeChildren(node)
	if c0 != nil {
		ctx.dockNodeUpdateVisibleFlagRecursive(c0)
	}
	if c1 != nil {
		ctx.dockNodeUpdateVisibleFlagRecursive(c1)
	}
	ctx.DockNodeUpdateVisibleFlag(node)
}

// DockNodeHideHostWindow releases the generated host window of node.
func (ctx *Context) DockNodeHideHostWindow(node *DockNode) {
	host := ctx.FindWindowByID(node.HostWindowID)
	node.HostWindowID = 0
	if host == nil || host.DockNodeAsHostID != node.ID {
		return
	}
	host.DockNodeAsHostID = 0
	if host.Flags&WindowDockNodeHost != 0 {
		if ctx.navWindow == host && len(node.Windows) > 0 {
			ctx.FocusWindow(node.Windows[0])
		}
		ctx.DestroyWindow(host)
	}
}

// DockNodeUpdateFlagsAndCollapse inherits shared flags, removes closed and
// inactive windows, and applies tab bar visibility toggles, children first.
// Nodes may be merged away while this runs.
func (ctx *Context) DockNodeUpdateFlagsAndCollapse(node *DockNode) {
	if parent := ctx.dock.Nodes[node.ParentID]; parent != nil {
		node.SharedFlags = parent.SharedFlags & DockNodeSharedFlagsInheritMask
		node.UpdateMergedFlags()
	}

	// A child emptying itself merges its sibling into node, so re-resolve each slot.
	node.HasCentralNodeChild = false
	if c0 := ctx.dock.Nodes[node.ChildIDs[0]]; c0 != nil {
		ctx.DockNodeUpdateFlagsAndCollapse(c0)
	}
	if ctx.dock.Nodes[node.ID] != node {
		return
	}
	if c1 := ctx.dock.Nodes[node.ChildIDs[1]]; c1 != nil {
		ctx.DockNodeUpdateFlagsAndCollapse(c1)
	}
	if ctx.dock.Nodes[node.ID] != node {
		return
	}

	nodeWasActive := node.LastFrameActive+1 == ctx.FrameCount
	for i := 0; i < len(node.Windows); i++ {
		w := node.Windows[i]
		closing := nodeWasActive && (node.WantCloseAll || node.WantCloseTabID == w.TabID) &&
			w.HasCloseButton() && w.Flags&WindowUnsavedDocument == 0
		inactive := nodeWasActive && w.LastFrameActive+1 < ctx.FrameCount
		if !closing && !inactive && !w.DockTabWantClose {
			continue
		}
		w.DockTabWantClose = false
		// Closed tabs forget the node; windows that merely stopped being
		// submitted keep it as their home.
		save := node.ID
		if closing {
			save = 0
			w.Open = false
		}
		if len(node.Windows) == 1 && !node.IsCentralNode() {
			ctx.DockNodeHideHostWindow(node)
			node.State = DockNodeStateHostWindowHiddenBecauseSingleWindow
			ctx.DockNodeRemoveWindow(node, w, save)
			return
		}
		ctx.DockNodeRemoveWindow(node, w, save)
		if ctx.dock.Nodes[node.ID] != node {
			return
		}
		i--
	}
	if node.WantCloseTabID != 0 || node.WantCloseAll {
		node.WantCloseTabID = 0
		node.WantCloseAll = false
	}
	ctx.dockNodeUpdateLocalFlagsInWindows(node)

	// Tab bar auto-hide toggles apply here only.
	flags := node.MergedFlags
	if node.WantHiddenTabBarUpdate && len(node.Windows) == 1 && flags.Has(DockNodeAutoHideTabBar) && !node.IsHiddenTabBar() {
		node.WantHiddenTabBarToggle = true
	}
	node.WantHiddenTabBarUpdate = false
	if node.WantHiddenTabBarToggle {
		if vw := ctx.FindWindowByID(node.VisibleWindowID); vw != nil && vw.WindowClass.DockNodeFlagsOverrideSet.Has(DockNodeHiddenTabBar) {
			node.WantHiddenTabBarToggle = false
		}
	}
	if len(node.Windows) > 1 {
		node.SetLocalFlags(node.LocalFlags &^ DockNodeHiddenTabBar)
	} else if node.WantHiddenTabBarToggle {
		node.SetLocalFlags(node.LocalFlags ^ DockNodeHiddenTabBar)
	}
	node.WantHiddenTabBarToggle = false

	ctx.DockNodeUpdateVisibleFlag(node)
}

// dockNodeUpdateForRootNode refreshes the derived root-only fields.
func (ctx *Context) dockNodeUpdateForRootNode(node *DockNode) {
	ctx.DockNodeUpdateFlagsAndCollapse(node)
	if ctx.dock.Nodes[node.ID] != node {
		return
	}
	var info dockNodeTreeInfo
	ctx.dockNodeFindInfo(node, &info)
	node.CentralNodeID = 0
	if info.CentralNode != nil {
		node.CentralNodeID = info.CentralNode.ID
	}
	node.OnlyNodeWithWindowsID = 0
	if info.CountNodesWithWindows == 1 {
		node.OnlyNodeWithWindowsID = info.FirstNodeWithWindows.ID
	}
	node.CountNodeWithWindows = info.CountNodesWithWindows
	if node.LastFocusedNodeID == 0 && info.FirstNodeWithWindows != nil {
		node.LastFocusedNodeID = info.FirstNodeWithWindows.ID
	}

	// The most constrained class of the first node with windows filters drops.
	if first := info.FirstNodeWithWindows; first != nil {
		node.WindowClass = first.Windows[0].WindowClass
		for _, w := range first.Windows[1:] {
			if !w.WindowClass.DockingAllowUnclassed {
				node.WindowClass = w.WindowClass
				break
			}
		}
	}
	ctx.DockNodeUpdateHasCentralNodeChild(node)
}

// DockNodeUpdate runs the per-frame update of node: root bookkeeping, host
// window binding, layout, splitters, tab bar, then its children.
func (ctx *Context) DockNodeUpdate(node *DockNode) {
	if node.LastFrameActive == ctx.FrameCount {
		return
	}
	node.LastFrameAlive = ctx.FrameCount
	node.IsBgDrawnThisFrame = false

	if node.IsRootNode() {
		ctx.dockNodeUpdateForRootNode(node)
		if ctx.dock.Nodes[node.ID] != node {
			return
		}
	}
	if node.TabBar != nil && node.IsNoTabBar() {
		ctx.dockNodeRemoveTabBar(node)
	}

	// Floating nodes holding a single window let that window act on its own.
	hideHost := false
	if node.IsFloatingNode() {
		if len(node.Windows) <= 1 && node.IsLeafNode() {
			hideHost = true
		}
		if node.CountNodeWithWindows == 0 {
			hideHost = true
		}
	}
	if hideHost {
		if len(node.Windows) == 1 {
			single := node.Windows[0]
			node.Pos = single.Pos
			node.Size = single.SizeFull
			node.AuthorityForPos = false
			node.AuthorityForSize = false
			single.DockIsActive = false
		}
		ctx.DockNodeHideHostWindow(node)
		node.State = DockNodeStateHostWindowHiddenBecauseSingleWindow
		node.WantCloseAll = false
		node.WantCloseTabID = 0
		node.HasCloseButton = false
		node.HasWindowMenuButton = false
		node.LastFrameActive = ctx.FrameCount
		if node.WantMouseMove && len(node.Windows) == 1 {
			ctx.dockNodeStartMouseMovingWindow(node, node.Windows[0])
		}
		return
	}

	flags := node.MergedFlags
	node.HasWindowMenuButton = len(node.Windows) > 0 && nodeWantsWindowMenu(flags)
	anyClosable := false
	for _, w := range node.Windows {
		anyClosable = anyClosable || w.HasCloseButton()
		w.DockIsActive = len(node.Windows) > 1
	}
	node.HasCloseButton = nodeWantsCloseButton(flags, anyClosable)

	// Bind or create the host window.
	var host *Window
	switch {
	case node.IsDockSpace():
		host = ctx.FindWindowByID(node.HostWindowID)
		if !ctx.assert(host != nil, "dockspace node without host window", "node", node.ID) {
			return
		}
	case !node.IsRootNode():
		if parent := ctx.dock.Nodes[node.ParentID]; parent != nil {
			node.HostWindowID = parent.HostWindowID
		}
		host = ctx.FindWindowByID(node.HostWindowID)
	default:
		host = ctx.dockNodeBindFloatingHost(node)
	}
	if host != nil {
		node.State = DockNodeStateHostWindowVisible
	}
	if node.WantMouseMove && host != nil {
		ctx.dockNodeStartMouseMovingWindow(node, host)
	}
	node.RefViewportID = 0

	backupWindow := ctx.currentWindow
	ctx.currentWindow = host
	defer func() { ctx.currentWindow = backupWindow }()

	if node.IsRootNode() && ctx.navWindow != nil && ctx.navWindow.DockNodeID != 0 {
		if navNode := ctx.dock.Nodes[ctx.navWindow.DockNodeID]; navNode != nil && ctx.DockNodeGetRootNode(navNode) == node {
			node.LastFocusedNodeID = navNode.ID
		}
	}

	central := ctx.dock.Nodes[node.CentralNodeID]
	centralHole := node.IsRootNode() && host != nil && flags.Has(DockNodePassthruCentralNode) && central != nil && central.IsEmpty()

	// Layout and splitters
	if node.IsRootNode() && host != nil {
		ctx.dockNodeUpdateVisibleFlagRecursive(node)
		ctx.DockNodeTreeUpdatePosSize(node, host.Pos, host.Size, nil)
		ctx.DockNodeTreeUpdateSplitter(node)
	}

	// Holes are registered after layout so they match this frame's central node.
	if centralHole {
		registerHole := true
		if ctx.dragDrop.active && ctx.DockNodeIsDropAllowed(host, ctx.dragDrop.payloadWindow) {
			registerHole = false
		}
		if registerHole && central.Size.X > 0 && central.Size.Y > 0 {
			ctx.hitTestHoles[host.ID] = central.Rect()
			if host.ParentWindowID != 0 {
				ctx.hitTestHoles[host.ParentWindowID] = central.Rect()
			}
		}
	}

	if node.IsRootNode() && host != nil && node.IsVisible && ctx.DrawList != nil {
		switch {
		case node.IsFloatingNode() && host.Flags&WindowNoBackground == 0:
			ctx.DrawList.AddRect(node.Rect(), ctx.Style.WindowBg)
		case flags.Has(DockNodePassthruCentralNode):
			if centralHole {
				ctx.addRectWithHole(node.Rect(), central.Rect(), ctx.Style.WindowBg)
			} else {
				ctx.DrawList.AddRect(node.Rect(), ctx.Style.WindowBg)
			}
		}
	}

	if host != nil && node.IsEmpty() && node.IsVisible {
		node.LastBgColor = ctx.Style.DockingEmptyBg
		if flags.Has(DockNodePassthruCentralNode) {
			node.LastBgColor = 0
		}
		if node.LastBgColor != 0 && ctx.DrawList != nil {
			ctx.DrawList.AddRect(node.Rect(), node.LastBgColor)
		}
		node.IsBgDrawnThisFrame = true
	}

	if host != nil && len(node.Windows) > 0 {
		ctx.DockNodeUpdateTabBar(node, host)
	} else {
		node.WantCloseAll = false
		node.WantCloseTabID = 0
		node.IsFocused = false
	}
	if node.TabBar != nil && node.TabBar.SelectedTabID != 0 {
		node.SelectedTabID = node.TabBar.SelectedTabID
	} else if len(node.Windows) > 0 {
		node.SelectedTabID = node.Windows[0].TabID
	}

	node.LastFrameActive = ctx.FrameCount

	if host != nil {
		if c0 := ctx.dock.Nodes[node.ChildIDs[0]]; c0 != nil {
			ctx.DockNodeUpdate(c0)
		}
		if c1 := ctx.dock.Nodes[node.ChildIDs[1]]; c1 != nil {
			ctx.DockNodeUpdate(c1)
		}
	}
}

// dockNodeBindFloatingHost creates or reuses the generated host window of a
// floating root node and reconciles their geometry.
func (ctx *Context) dockNodeBindFloatingHost(node *DockNode) *Window {
	name := dockNodeHostWindowName(node.ID)
	host := ctx.FindWindowByName(name)
	appearing := host == nil
	if appearing {
		host = ctx.CreateWindow(name, WindowDockNodeHost|WindowNoSavedSettings|WindowNoTitleBar|WindowNoCollapse|WindowNoDocking)
	}
	host.Flags |= WindowDockNodeHost
	host.DockNodeAsHostID = node.ID
	host.Hidden = false
	host.Open = true
	node.HostWindowID = host.ID

	if appearing || node.AuthorityForPos {
		host.Pos = node.Pos
	} else {
		node.Pos = host.Pos
	}
	if appearing || node.AuthorityForSize {
		host.Size = node.Size
		host.SizeFull = node.Size
	} else {
		node.Size = host.Size
	}
	node.AuthorityForPos = false
	node.AuthorityForSize = false
	host.LastFrameActive = ctx.FrameCount
	if appearing {
		ctx.bringWindowToFront(host)
	}
	return host
}

// dockNodeStartMouseMovingWindow starts dragging w on behalf of a freshly
// undocked node, keeping the grab point relative to the node.
func (ctx *Context) dockNodeStartMouseMovingWindow(node *DockNode, w *Window) {
	node.WantMouseMove = false
	if ctx.Input == nil || !ctx.Input.MouseDown(MouseButtonLeft) {
		return
	}
	offset := ctx.Input.MouseClickedPos(MouseButtonLeft).Sub(node.Pos)
	offset.X = clampf(offset.X, 0, maxf(node.Size.X-1, 0))
	offset.Y = clampf(offset.Y, 0, ctx.Config.TabBarHeight)
	w.Pos = ctx.Input.MousePos.Sub(offset)
	node.Pos = w.Pos
	ctx.StartMouseMovingWindow(w)
	ctx.movingClickOffset = offset
}

// addRectWithHole fills outer minus hole with up to four rectangles.
func (ctx *Context) addRectWithHole(outer, hole Rect, color uint32) {
	hole = hole.ClipWith(outer)
	dl := ctx.DrawList
	dl.AddRect(Rect{Min: outer.Min, Max: Vec2{X: outer.Max.X, Y: hole.Min.Y}}, color)
	dl.AddRect(Rect{Min: Vec2{X: outer.Min.X, Y: hole.Max.Y}, Max: outer.Max}, color)
	dl.AddRect(Rect{Min: Vec2{X: outer.Min.X, Y: hole.Min.Y}, Max: Vec2{X: hole.Min.X, Y: hole.Max.Y}}, color)
	dl.AddRect(Rect{Min: Vec2{X: hole.Max.X, Y: hole.Min.Y}, Max: Vec2{X: outer.Max.X, Y: hole.Max.Y}}, color)
}

// hitTestHoleContains reports whether pos lies in the pass-through hole of host w.
func (ctx *Context) hitTestHoleContains(w *Window, pos Vec2) bool {
	hole, ok := ctx.hitTestHoles[w.ID]
	return ok && hole.Contains(pos)
}

// dockNodeTabBarRect returns the title bar area of a leaf node.
func (ctx *Context) dockNodeTabBarRect(node *DockNode) Rect {
	h := minf(ctx.Config.TabBarHeight, node.Size.Y)
	return RectFromPosSize(node.Pos, Vec2{X: node.Size.X, Y: h})
}

// dockNodeContentRect returns the area below the tab bar, if one is shown.
func (ctx *Context) dockNodeContentRect(node *DockNode) Rect {
	r := node.Rect()
	if !node.IsHiddenTabBar() && !node.IsNoTabBar() {
		r.Min.Y = minf(r.Min.Y+ctx.Config.TabBarHeight, r.Max.Y)
	}
	return r
}

// DockNodeUpdateTabBar submits the node's title bar: window menu button,
// tabs with their close buttons, the node close button and the draggable
// background that moves or undocks the whole node.
func (ctx *Context) DockNodeUpdateTabBar(node *DockNode, host *Window) {
	root := ctx.DockNodeGetRootNode(node)
	isFocused := ctx.navWindow != nil && ctx.navWindow.DockNodeID == node.ID
	nodeWasActive := node.LastFrameActive+1 == ctx.FrameCount

	if node.IsHiddenTabBar() || node.IsNoTabBar() {
		node.VisibleWindowID = node.Windows[0].ID
		node.IsFocused = isFocused
		if isFocused {
			node.LastFrameFocused = ctx.FrameCount
		}
		if isFocused || root.VisibleWindowID == 0 {
			root.VisibleWindowID = node.VisibleWindowID
		}
		if node.TabBar != nil {
			node.TabBar.VisibleTabID = node.Windows[0].TabID
		}
		return
	}

	ctx.PushOverrideID(node.ID)
	defer ctx.PopID()

	recreated := node.TabBar == nil
	if recreated {
		ctx.dockNodeAddTabBar(node)
	}
	tb := node.TabBar
	var focusTabID ID
	node.IsFocused = isFocused
	if isFocused {
		node.LastFrameFocused = ctx.FrameCount
	}

	titleRect := ctx.dockNodeTabBarRect(node)
	tabsRect := titleRect
	btn := titleRect.Height()

	countOld := tb.TabCount()
	var lastAdded ID
	for _, w := range node.Windows {
		if tb.FindTabByID(w.TabID) == nil {
			tb.AddTab(w.TabID, w)
			lastAdded = w.TabID
		}
	}

	if ctx.DrawList != nil {
		color := ctx.Style.TitleBg
		if isFocused {
			color = ctx.Style.TitleBgActive
		}
		ctx.DrawList.AddRect(titleRect, color)
	}

	if node.HasWindowMenuButton {
		menuRect := RectFromPosSize(titleRect.Min, Vec2{X: btn, Y: btn})
		tabsRect.Min.X += btn
		if pressed, _, held := ctx.ButtonBehavior(menuRect, ctx.GetID("#COLLAPSE"), ButtonPressedOnClick); pressed {
			if ctx.windowMenuNodeID == node.ID {
				ctx.windowMenuNodeID = 0
			} else {
				ctx.windowMenuNodeID = node.ID
			}
		} else if held {
			focusTabID = tb.SelectedTabID
		}
		ctx.DrawList.AddRectOutline(menuRect.Expand(-btn*0.3), ctx.Style.Separator, 1)
		if ctx.windowMenuNodeID == node.ID {
			nextBefore := tb.NextSelectedTabID
			ctx.DockNodeUpdateWindowMenu(node, menuRect)
			if tb.NextSelectedTabID != 0 && tb.NextSelectedTabID != nextBefore {
				focusTabID = tb.NextSelectedTabID
			}
		}
	}
	var closeRect Rect
	if node.HasCloseButton {
		closeRect = RectFromPosSize(Vec2{X: titleRect.Max.X - btn, Y: titleRect.Min.Y}, Vec2{X: btn, Y: btn})
		tabsRect.Max.X -= btn
	}

	// Focused docked windows pull their tab forward.
	if ctx.navWindow != nil && ctx.navWindow.DockNodeID == node.ID {
		tb.SelectedTabID = ctx.navWindow.TabID
	}
	switch {
	case recreated && tb.FindTabByID(node.SelectedTabID) != nil:
		tb.SelectedTabID = node.SelectedTabID
		tb.NextSelectedTabID = node.SelectedTabID
	case tb.TabCount() > countOld && lastAdded != 0:
		tb.SelectedTabID = lastAdded
		tb.NextSelectedTabID = lastAdded
	}
	tb.Update()
	if tb.WantLayout || tb.BarRect != tabsRect {
		tb.Layout(tabsRect, ctx.Config.TabWidth)
	}

	node.VisibleWindowID = 0
	tabs := tb.Tabs()
	for i := range tabs {
		tab := &tabs[i]
		w := tab.Window
		if w == nil {
			continue
		}
		if (node.WantCloseAll || node.WantCloseTabID == w.TabID) && w.HasCloseButton() && w.Flags&WindowUnsavedDocument == 0 {
			continue
		}
		if w.LastFrameActive+1 < ctx.FrameCount && nodeWasActive {
			continue
		}
		tabRect := tb.TabRect(tab)
		tab.LastFrameActive = ctx.FrameCount

		// The close button is submitted first so it wins the hover over its tab.
		if w.HasCloseButton() {
			cb := Rect{Min: Vec2{X: tabRect.Max.X - btn, Y: tabRect.Min.Y}, Max: tabRect.Max}.Expand(-btn * 0.2)
			if pressed, _, _ := ctx.ButtonBehavior(cb, HashString(w.TabID, "#CLOSE"), ButtonFlagsNone); pressed {
				node.WantCloseTabID = w.TabID
			}
		}
		pressed, hovered, held := ctx.ButtonBehavior(tabRect, w.TabID, ButtonPressedOnClick|ButtonAllowItemOverlap)
		if pressed {
			tb.NextSelectedTabID = w.TabID
		}
		if held && ctx.Input.MouseDragPastThreshold(MouseButtonLeft, -1) && !tb.BarRect.Expand(ctx.Config.MouseDragThreshold).Contains(ctx.Input.MousePos) {
			ctx.StartMouseMovingWindowOrNode(w, node, false)
		}
		if tb.VisibleTabID == w.TabID {
			node.VisibleWindowID = w.ID
		}
		if ctx.DrawList != nil {
			color := ctx.Style.Tab
			switch {
			case tb.SelectedTabID == w.TabID && isFocused:
				color = ctx.Style.TabActive
			case tb.SelectedTabID == w.TabID:
				color = ctx.Style.TabUnfocused
			case hovered:
				color = ctx.Style.TabHovered
			}
			ctx.DrawList.AddRect(tabRect.Expand(-1), color)
		}
	}
	if node.VisibleWindowID != 0 && (isFocused || root.VisibleWindowID == 0) {
		root.VisibleWindowID = node.VisibleWindowID
	}

	if node.HasCloseButton {
		enabled := false
		if vw := ctx.FindWindowByID(node.VisibleWindowID); vw != nil {
			enabled = vw.HasCloseButton()
		}
		if pressed, _, _ := ctx.ButtonBehavior(closeRect, ctx.GetID("#CLOSE"), ButtonFlagsNone); pressed && enabled {
			node.WantCloseAll = true
		}
	}

	// Clicking or dragging the empty part of the bar acts on the whole node.
	titleID := ctx.GetID("#TITLEBAR")
	if ctx.hoveredID == 0 || ctx.hoveredID == titleID || ctx.activeID == titleID {
		ctx.KeepAliveID(titleID)
		_, _, held := ctx.ButtonBehavior(titleRect, titleID, ButtonAllowItemOverlap)
		if held {
			if ctx.Input.MouseClicked(MouseButtonLeft) {
				focusTabID = tb.SelectedTabID
			}
			if ctx.Input.MouseDragPastThreshold(MouseButtonLeft, -1) {
				target := host
				if t := tb.FindTabByID(tb.SelectedTabID); t != nil && t.Window != nil {
					target = t.Window
				}
				ctx.StartMouseMovingWindowOrNode(target, node, true)
			}
		}
	}

	if tb.NextSelectedTabID != 0 {
		focusTabID = tb.NextSelectedTabID
	}
	if focusTabID != 0 {
		if t := tb.FindTabByID(focusTabID); t != nil && t.Window != nil {
			ctx.FocusWindow(t.Window)
		}
	}
}

// DockNodeUpdateWindowMenu handles the window list opened from the node's
// menu button: one entry per hosted window, clicking one selects its tab.
func (ctx *Context) DockNodeUpdateWindowMenu(node *DockNode, button Rect) {
	tb := node.TabBar
	if tb == nil || ctx.Input == nil {
		return
	}
	entry := Vec2{X: ctx.Config.TabWidth * 1.5, Y: ctx.Config.TabBarHeight}
	clickedEntry := false
	for i, tab := range tb.Tabs() {
		r := RectFromPosSize(Vec2{X: button.Min.X, Y: button.Max.Y + float32(i)*entry.Y}, entry)
		hovered := r.Contains(ctx.Input.MousePos)
		if ctx.ForegroundDrawList != nil {
			color := ctx.Style.TitleBg
			if hovered {
				color = ctx.Style.TabHovered
			} else if tab.ID == tb.SelectedTabID {
				color = ctx.Style.TabActive
			}
			ctx.ForegroundDrawList.AddRect(r, color)
		}
		if hovered && ctx.Input.MouseClicked(MouseButtonLeft) {
			tb.NextSelectedTabID = tab.ID
			clickedEntry = true
		}
	}
	if clickedEntry || (ctx.Input.MouseClicked(MouseButtonLeft) && !button.Contains(ctx.Input.MousePos)) {
		ctx.windowMenuNodeID = 0
	}
}

// BeginDocked binds a submitted window to its dock node. A window whose
// DockID names a node that no longer exists reverts to floating.
func (ctx *Context) BeginDocked(w *Window) {
	node := ctx.dock.Nodes[w.DockNodeID]
	if node == nil && w.DockNodeID != 0 {
		w.DockNodeID = 0
	}
	if node == nil && w.DockID != 0 {
		node = ctx.dock.Nodes[w.DockID]
		if node == nil {
			ctx.logger.Debug("dock: window lost its node", "window", w.String(), "dock_id", w.DockID)
			w.DockID = 0
			return
		}
		if !ctx.dockContextBindNodeToWindow(w, node) {
			return
		}
	}
	w.DockNodeIsVisible = false
	w.DockTabIsVisible = false
	if node == nil {
		return
	}

	if node.IsCentralNode() && node.MergedFlags.Has(DockNodeNoDockingOverCentralNode) {
		ctx.DockContextProcessUndockWindow(w, true)
		return
	}

	// A dockspace that was not submitted this frame orphans its windows.
	if node.LastFrameAlive < ctx.FrameCount {
		if ctx.DockNodeGetRootNode(node).LastFrameAlive < ctx.FrameCount {
			ctx.DockContextProcessUndockWindow(w, false)
		} else {
			w.DockIsActive = true
		}
		return
	}

	// Kept-alive dockspaces hold on to their windows without showing them.
	if node.MergedFlags.Has(DockNodeKeepAliveOnly) {
		w.DockIsActive = true
		w.DockNodeIsVisible = true
		return
	}

	host := ctx.FindWindowByID(node.HostWindowID)
	if host == nil {
		// Single floating window, no host.
		return
	}
	node.State = DockNodeStateHostWindowVisible
	w.Pos = node.Pos
	w.Size = node.Size
	w.DockIsActive = true
	w.DockNodeIsVisible = true
	if node.VisibleWindowID == w.ID {
		w.DockTabIsVisible = true
	}
	if node.TabBar != nil && w.wasActive {
		for i, t := range node.TabBar.Tabs() {
			if t.ID == w.TabID {
				w.DockOrder = i
				break
			}
		}
	}
	if node.WantCloseAll || node.WantCloseTabID == w.TabID {
		w.Open = false
	}
}

// dockContextBindNodeToWindow docks a returning window into its home node.
func (ctx *Context) dockContextBindNodeToWindow(w *Window, node *DockNode) bool {
	if node.IsSplitNode() {
		ctx.DockContextProcessUndockWindow(w, true)
		return false
	}
	// A node turning visible inside a hierarchy needs a size before its first update.
	if !node.IsVisible {
		ancestor := node
		for ancestor.ParentID != 0 && !ancestor.IsVisible {
			ancestor = ctx.dock.Nodes[ancestor.ParentID]
		}
		if ancestor != node && ancestor.Size.X > 0 && ancestor.Size.Y > 0 {
			ctx.DockNodeTreeUpdatePosSize(ancestor, ancestor.Pos, ancestor.Size, node)
		}
	}
	wasVisible := node.IsVisible
	ctx.DockNodeAddWindow(node, w, true)
	node.IsVisible = wasVisible
	return true
}
