package dockgui

import (
	"fmt"
	"slices"
)

// WindowFlags configures a window submitted through BeginWindow.
type WindowFlags uint32

const (
	WindowFlagsNone        WindowFlags = 0
	WindowNoTitleBar       WindowFlags = 1 << 0
	WindowNoResize         WindowFlags = 1 << 1
	WindowNoMove           WindowFlags = 1 << 2
	WindowNoCollapse       WindowFlags = 1 << 3
	WindowNoDocking        WindowFlags = 1 << 4
	WindowNoCloseButton    WindowFlags = 1 << 5
	WindowNoFocusOnAppear  WindowFlags = 1 << 6
	WindowNoBringToFront   WindowFlags = 1 << 7
	WindowUnsavedDocument  WindowFlags = 1 << 8
	WindowNoSavedSettings  WindowFlags = 1 << 9
	WindowDockNodeHost     WindowFlags = 1 << 20
	WindowNoBackground     WindowFlags = 1 << 21
	WindowNoSavedLayoutPos WindowFlags = 1 << 22
)

// WindowClass groups windows that may dock together and carries
// per-class dock node flag overrides.
type WindowClass struct {
	ClassID                  ID
	DockNodeFlagsOverrideSet DockNodeFlags
	DockingAllowUnclassed    bool
}

// Window is the docking-relevant view of a window.
type Window struct {
	ID    ID
	Name  string
	Flags WindowFlags

	Pos       Vec2
	Size      Vec2
	SizeFull  Vec2 // Floating size, restored when undocking
	Collapsed bool
	Hidden    bool
	Open      bool

	ViewportID  ID
	WindowClass WindowClass

	// Docking
	DockNodeID        ID  // Node the window is docked into, 0 when floating
	DockID            ID  // Last known node id, survives undocking
	DockOrder         int // Tab order within the node, -1 when unknown
	DockIsActive      bool
	DockNodeIsVisible bool // Drawn inside a visible host window this frame
	DockTabIsVisible  bool
	DockTabWantClose  bool
	TabID             ID

	// Host window of a dock node (WindowDockNodeHost), 0 otherwise
	DockNodeAsHostID ID
	ParentWindowID   ID // Window a dockspace host was submitted from

	setWindowDockAllowFlags Cond

	LastFrameActive int
	wasActive       bool
	moveID          ID
	settingsDirty   bool
}

// HasCloseButton reports whether the window can be closed from its tab.
func (w *Window) HasCloseButton() bool {
	return w.Flags&WindowNoCloseButton == 0
}

// Rect returns the window's outer rectangle.
func (w *Window) Rect() Rect {
	return RectFromPosSize(w.Pos, w.Size)
}

// TitleBarRect returns the rectangle used to drag the window.
func (w *Window) TitleBarRect(height float32) Rect {
	return Rect{Min: w.Pos, Max: Vec2{X: w.Pos.X + w.Size.X, Y: w.Pos.Y + height}}
}

func (w *Window) String() string {
	return fmt.Sprintf("%q(0x%08X)", w.Name, uint32(w.ID))
}

// FindWindowByID returns the window with id, or nil.
func (ctx *Context) FindWindowByID(id ID) *Window {
	return ctx.windowsByID[id]
}

// FindWindowByName returns the window with name, or nil.
func (ctx *Context) FindWindowByName(name string) *Window {
	return ctx.windowsByID[HashString(0, name)]
}

// Windows returns the windows in display order (front-most last).
func (ctx *Context) Windows() []*Window {
	return ctx.windows
}

// CreateWindow registers a new window. Persisted settings for the same name,
// if any, seed its position, size and dock id.
func (ctx *Context) CreateWindow(name string, flags WindowFlags) *Window {
	id := HashString(0, name)
	if w := ctx.windowsByID[id]; w != nil {
		return w
	}
	w := &Window{
		ID:              id,
		Name:            name,
		Flags:           flags,
		Pos:             Vec2{X: 60, Y: 60},
		Size:            Vec2{X: 400, Y: 300},
		Open:            true,
		DockOrder:       -1,
		TabID:           HashString(id, "#TAB"),
		moveID:          HashString(id, "#MOVE"),
		LastFrameActive: -1,

		setWindowDockAllowFlags: CondAlways | CondOnce | CondFirstUseEver | CondAppearing,
	}
	w.SizeFull = w.Size
	if ws := ctx.settings.findWindow(id); ws != nil && flags&WindowNoSavedSettings == 0 {
		ctx.applyWindowSettings(w, ws)
	}
	ctx.windows = append(ctx.windows, w)
	ctx.windowsByID[id] = w
	ctx.logger.Debug("window created", "window", w.String(), "dock_id", w.DockID)
	return w
}

// DestroyWindow forgets a window entirely, undocking it first.
func (ctx *Context) DestroyWindow(w *Window) {
	if w == nil {
		return
	}
	if node := ctx.dock.Nodes[w.DockNodeID]; node != nil {
		ctx.DockNodeRemoveWindow(node, w, 0)
	}
	for i, other := range ctx.windows {
		if other == w {
			ctx.windows = append(ctx.windows[:i], ctx.windows[i+1:]...)
			break
		}
	}
	delete(ctx.windowsByID, w.ID)
	if ctx.navWindow == w {
		ctx.navWindow = nil
	}
	if ctx.movingWindow == w {
		ctx.movingWindow = nil
	}
}

// FocusWindow makes w the navigation window and brings it to the front.
// Focusing steals the active id from any other window immediately. Windows
// sharing a dock tree count as one, so selecting a tab keeps the tab held.
func (ctx *Context) FocusWindow(w *Window) {
	if ctx.navWindow != w {
		ctx.navWindow = w
		if ctx.activeID != 0 && ctx.activeIDWindow != nil && !ctx.activeIDNoClearOnFocusLoss &&
			ctx.dockTreeRootWindow(ctx.activeIDWindow) != ctx.dockTreeRootWindow(w) {
			ctx.ClearActiveID()
		}
	}
	if w == nil {
		return
	}
	if node := ctx.dock.Nodes[w.DockNodeID]; node != nil {
		root := ctx.DockNodeGetRootNode(node)
		root.LastFocusedNodeID = node.ID
		node.TabBarSelect(w.TabID)
		if host := ctx.FindWindowByID(root.HostWindowID); host != nil && host != w {
			if front := ctx.displayRootWindow(host); front.Flags&WindowNoBringToFront == 0 {
				ctx.bringWindowToFront(front)
			}
		}
		return
	}
	if front := ctx.displayRootWindow(w); front.Flags&WindowNoBringToFront == 0 {
		ctx.bringWindowToFront(front)
	}
}

// dockTreeRootWindow returns the host window of the dock tree w is docked
// into, or w itself.
func (ctx *Context) dockTreeRootWindow(w *Window) *Window {
	if w == nil {
		return nil
	}
	if node := ctx.dock.Nodes[w.DockNodeID]; node != nil {
		if host := ctx.FindWindowByID(ctx.DockNodeGetRootNode(node).HostWindowID); host != nil {
			return host
		}
	}
	return w
}

// displayRootWindow walks up dockspace host parents to the window that owns
// the display order.
func (ctx *Context) displayRootWindow(w *Window) *Window {
	for w.ParentWindowID != 0 {
		parent := ctx.FindWindowByID(w.ParentWindowID)
		if parent == nil {
			break
		}
		w = parent
	}
	return w
}

// bringWindowToFront moves w to the end of the display order, followed by
// the dockspace hosts it owns.
func (ctx *Context) bringWindowToFront(w *Window) {
	ctx.moveWindowToFront(w)
	for _, child := range slices.Clone(ctx.windows) {
		if child.ParentWindowID == w.ID && child != w {
			ctx.bringWindowToFront(child)
		}
	}
}

func (ctx *Context) moveWindowToFront(w *Window) {
	n := len(ctx.windows)
	if n == 0 || ctx.windows[n-1] == w {
		return
	}
	for i := range ctx.windows {
		if ctx.windows[i] == w {
			copy(ctx.windows[i:], ctx.windows[i+1:])
			ctx.windows[n-1] = w
			return
		}
	}
}

// placeWindowAbove moves w right in front of below in the display order.
func (ctx *Context) placeWindowAbove(w, below *Window) {
	i := slices.Index(ctx.windows, w)
	j := slices.Index(ctx.windows, below)
	if i < 0 || j < 0 || i == j+1 {
		return
	}
	ctx.windows = slices.Delete(ctx.windows, i, i+1)
	j = slices.Index(ctx.windows, below)
	ctx.windows = slices.Insert(ctx.windows, j+1, w)
}

// bringWindowToBack moves w to the start of the display order.
func (ctx *Context) bringWindowToBack(w *Window) {
	i := slices.Index(ctx.windows, w)
	if i <= 0 {
		return
	}
	ctx.windows = slices.Delete(ctx.windows, i, i+1)
	ctx.windows = slices.Insert(ctx.windows, 0, w)
}

// NavWindow returns the focused window.
func (ctx *Context) NavWindow() *Window {
	return ctx.navWindow
}

// HoveredWindow returns the front-most visible window under the mouse.
func (ctx *Context) HoveredWindow() *Window {
	return ctx.hoveredWindow
}

func (ctx *Context) findHoveredWindow(exclude *Window) *Window {
	if ctx.Input == nil {
		return nil
	}
	for i := len(ctx.windows) - 1; i >= 0; i-- {
		w := ctx.windows[i]
		if w == exclude || w.Hidden || !ctx.isWindowActiveThisFrame(w) {
			continue
		}
		// Docked windows are hit-tested through their host window.
		if w.DockNodeIsVisible {
			continue
		}
		if w.Flags&WindowNoBackground != 0 {
			if ctx.hitTestHoleContains(w, ctx.Input.MousePos) {
				continue
			}
		}
		if w.Rect().Contains(ctx.Input.MousePos) {
			return w
		}
	}
	return nil
}

func (ctx *Context) isWindowActiveThisFrame(w *Window) bool {
	return w.LastFrameActive >= ctx.FrameCount-1
}

// SetNextWindowDockID sets the dock id the next BeginWindow call will dock
// into. A zero cond behaves like CondAlways.
func (ctx *Context) SetNextWindowDockID(dockID ID, cond Cond) {
	if cond == 0 {
		cond = CondAlways
	}
	ctx.nextWindow.dockID = dockID
	ctx.nextWindow.dockCond = cond
	ctx.nextWindow.hasDockID = true
}

// SetNextWindowClass sets the window class for the next BeginWindow call.
func (ctx *Context) SetNextWindowClass(class WindowClass) {
	ctx.nextWindow.class = class
	ctx.nextWindow.hasClass = true
}

// SetNextWindowPos sets the floating position for the next BeginWindow call.
func (ctx *Context) SetNextWindowPos(pos Vec2) {
	ctx.nextWindow.pos = pos
	ctx.nextWindow.hasPos = true
}

// SetNextWindowSize sets the floating size for the next BeginWindow call.
func (ctx *Context) SetNextWindowSize(size Vec2) {
	ctx.nextWindow.size = size
	ctx.nextWindow.hasSize = true
}

// SetWindowDock assigns w to dockID, undocking it first if needed. cond
// limits how often the assignment applies; zero means CondAlways.
func (ctx *Context) SetWindowDock(w *Window, dockID ID, cond Cond) {
	if cond != 0 && w.setWindowDockAllowFlags&cond == 0 {
		return
	}
	w.setWindowDockAllowFlags &^= CondOnce | CondFirstUseEver | CondAppearing
	if w.DockID == dockID && w.DockNodeID == dockID {
		return
	}
	if node := ctx.dock.Nodes[dockID]; node != nil && node.IsSplitNode() {
		// A split node holds no windows: use the central node or the last focused leaf.
		root := ctx.DockNodeGetRootNode(node)
		if central := ctx.dock.Nodes[root.CentralNodeID]; central != nil {
			dockID = central.ID
		} else if leaf := ctx.dock.Nodes[root.LastFocusedNodeID]; leaf != nil && leaf.IsLeafNode() {
			dockID = leaf.ID
		} else if leaf := ctx.dockNodeTreeFindFallbackLeafNode(node); leaf != nil {
			dockID = leaf.ID
		}
	}
	if node := ctx.dock.Nodes[w.DockNodeID]; node != nil && node.ID != dockID {
		ctx.DockNodeRemoveWindow(node, w, 0)
	}
	w.DockID = dockID
}

// BeginWindow submits a window for the current frame and returns false when
// it is collapsed, hidden behind another tab, or closed.
func (ctx *Context) BeginWindow(name string, flags WindowFlags) bool {
	w := ctx.FindWindowByName(name)
	firstUse := w == nil
	if firstUse {
		w = ctx.CreateWindow(name, flags)
	}
	w.Flags = flags
	w.wasActive = w.LastFrameActive >= 0
	if w.LastFrameActive < ctx.FrameCount-1 {
		// Reappearing windows pick their node back up through DockID.
		w.Open = true
		w.setWindowDockAllowFlags |= CondAppearing
	}
	w.LastFrameActive = ctx.FrameCount
	ctx.windowStack = append(ctx.windowStack, w)
	ctx.currentWindow = w

	nw := ctx.nextWindow
	ctx.nextWindow = nextWindowData{}
	if nw.hasClass {
		w.WindowClass = nw.class
	}
	if nw.hasDockID {
		ctx.SetWindowDock(w, nw.dockID, nw.dockCond)
	}
	if nw.hasPos && !w.DockNodeIsVisible {
		w.Pos = nw.pos
	}
	if nw.hasSize && !w.DockNodeIsVisible {
		w.Size = nw.size
		w.SizeFull = nw.size
	}
	if firstUse && flags&WindowNoFocusOnAppear == 0 {
		ctx.FocusWindow(w)
	}

	if flags&WindowNoDocking == 0 {
		ctx.BeginDocked(w)
	}
	ctx.PushOverrideID(w.ID)

	if w.DockNodeID == 0 {
		w.DockIsActive = false
		w.DockNodeIsVisible = false
		w.DockTabIsVisible = false
	}
	if !w.DockNodeIsVisible {
		ctx.updateWindowTitleBar(w)
	}
	w.Hidden = w.DockNodeIsVisible && !w.DockTabIsVisible
	return w.Open && !w.Collapsed && !w.Hidden
}

// EndWindow closes the window opened by the matching BeginWindow.
func (ctx *Context) EndWindow() {
	if !ctx.assert(len(ctx.windowStack) > 0, "EndWindow without BeginWindow") {
		return
	}
	w := ctx.windowStack[len(ctx.windowStack)-1]
	ctx.windowStack = ctx.windowStack[:len(ctx.windowStack)-1]
	ctx.PopID()
	switch {
	case w.Flags&WindowDockNodeHost != 0:
	case w.DockNodeIsVisible:
		if node := ctx.dock.Nodes[w.DockNodeID]; node != nil && w.DockTabIsVisible && ctx.DrawList != nil {
			ctx.DrawList.AddRect(ctx.dockNodeContentRect(node), ctx.Style.WindowBg)
			node.IsBgDrawnThisFrame = true
		}
	default:
		ctx.addWindowDrawCommands(w)
	}
	ctx.currentWindow = nil
	if n := len(ctx.windowStack); n > 0 {
		ctx.currentWindow = ctx.windowStack[n-1]
	}
}

// CurrentWindow returns the window between BeginWindow and EndWindow.
func (ctx *Context) CurrentWindow() *Window {
	return ctx.currentWindow
}

// updateWindowTitleBar handles click-to-focus and drag-to-move for a floating window.
func (ctx *Context) updateWindowTitleBar(w *Window) {
	if w.Flags&WindowNoTitleBar != 0 {
		return
	}
	bb := w.TitleBarRect(ctx.Config.TabBarHeight)
	_, _, held := ctx.ButtonBehavior(bb, w.moveID, ButtonPressedOnClick|ButtonFlattenChildren)
	if ctx.Input != nil && ctx.activeID == w.moveID && ctx.Input.MouseClicked(MouseButtonLeft) {
		ctx.FocusWindow(w)
	}
	if held && w.Flags&WindowNoMove == 0 && ctx.movingWindow == nil && ctx.Input.MouseDragPastThreshold(MouseButtonLeft, -1) {
		ctx.StartMouseMovingWindow(w)
	}
}

// StartMouseMovingWindow begins dragging w with the mouse. The window becomes
// the drag-and-drop payload for docking.
func (ctx *Context) StartMouseMovingWindow(w *Window) {
	ctx.FocusWindow(w)
	ctx.movingWindow = w
	ctx.movingClickOffset = ctx.Input.MouseClickedPos(MouseButtonLeft).Sub(w.Pos)
	ctx.SetActiveID(w.moveID, w)
	ctx.activeIDNoClearOnFocusLoss = true
	ctx.activeIDMouseButton = MouseButtonLeft
	ctx.BeginDockableDragDropSource(w)
}

// StartMouseMovingWindowOrNode starts moving a docked window. Dragging a tab
// undocks the window alone and forgets its DockID, so it stays floating
// instead of returning to the node. Dragging the node title undocks the
// whole node.
func (ctx *Context) StartMouseMovingWindowOrNode(w *Window, node *DockNode, undockWholeNode bool) {
	canUndock := node != nil && !node.MergedFlags.Has(DockNodeNoUndocking)
	if canUndock && undockWholeNode {
		root := ctx.DockNodeGetRootNode(node)
		if root == node && root.IsFloatingNode() {
			// A floating root is moved through its host window, not undocked.
			if host := ctx.FindWindowByID(root.HostWindowID); host != nil {
				ctx.StartMouseMovingWindow(host)
				return
			}
		}
		// The undocked node's host starts moving once it exists.
		ctx.DockContextQueueUndockNode(node)
		return
	}
	if canUndock {
		ctx.DockContextQueueUndockWindow(w, true)
		ctx.undockPendingMove = w
		return
	}
	if w.DockNodeID == 0 {
		ctx.StartMouseMovingWindow(w)
	}
}

// updateMouseMovingWindow moves the dragged window, or ends the drag on release.
func (ctx *Context) updateMouseMovingWindow() {
	if w := ctx.undockPendingMove; w != nil {
		ctx.undockPendingMove = nil
		if w.DockNodeID == 0 && ctx.Input.MouseDown(MouseButtonLeft) {
			w.Pos = ctx.Input.MousePos.Sub(Vec2{X: w.Size.X * 0.5, Y: ctx.Config.TabBarHeight * 0.5})
			ctx.StartMouseMovingWindow(w)
			ctx.movingClickOffset = ctx.Input.MousePos.Sub(w.Pos)
		}
	}
	w := ctx.movingWindow
	if w == nil {
		return
	}
	if ctx.Input.MouseDown(MouseButtonLeft) {
		pos := ctx.Input.MousePos.Sub(ctx.movingClickOffset)
		if w.Pos != pos {
			w.Pos = pos
			ctx.markWindowSettingsDirty(w)
			if w.DockNodeAsHostID != 0 {
				if node := ctx.dock.Nodes[w.DockNodeAsHostID]; node != nil {
					node.Pos = pos
				}
			}
		}
		ctx.FocusWindow(w)
		return
	}
	ctx.movingWindow = nil
	ctx.ClearActiveID()
}

// MovingWindow returns the window being dragged, or nil.
func (ctx *Context) MovingWindow() *Window {
	return ctx.movingWindow
}

func (ctx *Context) addWindowDrawCommands(w *Window) {
	if ctx.DrawList == nil || w.Hidden || !w.Open {
		return
	}
	if w.Flags&WindowNoBackground == 0 {
		ctx.DrawList.AddRect(w.Rect(), ctx.Style.WindowBg)
	}
	if w.Flags&WindowNoTitleBar == 0 {
		color := ctx.Style.TitleBg
		if ctx.navWindow == w {
			color = ctx.Style.TitleBgActive
		}
		ctx.DrawList.AddRect(w.TitleBarRect(ctx.Config.TabBarHeight), color)
	}
}
