package dockgui

import (
	"slices"
)

// DockRequestType is the kind of a deferred dock tree mutation.
type DockRequestType int

const (
	DockRequestNone DockRequestType = iota
	DockRequestDock
	DockRequestUndock
	DockRequestSplit // Split without payload, from the builder API
)

func (t DockRequestType) String() string {
	switch t {
	case DockRequestDock:
		return "dock"
	case DockRequestUndock:
		return "undock"
	case DockRequestSplit:
		return "split"
	default:
		return "none"
	}
}

// DockRequest is a dock or undock operation queued during the frame and
// applied at the start of the next one. A request whose target node is
// removed first becomes DockRequestNone.
type DockRequest struct {
	Type DockRequestType

	DockTargetWindow *Window // Window to dock into when DockTargetNodeID is 0
	DockTargetNodeID ID
	DockPayload      *Window // Window or host window of a node being docked
	DockSplitDir     Dir
	DockSplitRatio   float32 // Share of the split given to the payload side
	DockSplitOuter   bool

	UndockTargetWindow *Window
	UndockTargetNodeID ID
	UndockClearDockID  bool
}

// DockContext owns the node arena and the request queue.
type DockContext struct {
	Nodes           map[ID]*DockNode
	Requests        []DockRequest
	WantFullRebuild bool
}

// DockContextInitialize prepares an empty node arena.
func (ctx *Context) DockContextInitialize() {
	ctx.dock = DockContext{Nodes: make(map[ID]*DockNode)}
}

// DockContextShutdown detaches every window and drops all nodes.
func (ctx *Context) DockContextShutdown() {
	for _, w := range ctx.windows {
		w.DockNodeID = 0
		w.DockNodeAsHostID = 0
		w.DockIsActive = false
	}
	ctx.dock.Nodes = make(map[ID]*DockNode)
	ctx.dock.Requests = nil
}

// DockContextFindNodeByID returns the node with id, or nil.
func (ctx *Context) DockContextFindNodeByID(id ID) *DockNode {
	if id == 0 {
		return nil
	}
	return ctx.dock.Nodes[id]
}

// DockNodes returns the ids of all live nodes in ascending order.
func (ctx *Context) DockNodes() []ID {
	ids := make([]ID, 0, len(ctx.dock.Nodes))
	for id := range ctx.dock.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// DockContextGenNodeID returns the lowest unused node id.
func (ctx *Context) DockContextGenNodeID() ID {
	id := ID(1)
	for ctx.dock.Nodes[id] != nil {
		id++
	}
	return id
}

// DockContextAddNode creates a node. A zero id allocates a fresh one.
func (ctx *Context) DockContextAddNode(id ID) *DockNode {
	if id == 0 {
		id = ctx.DockContextGenNodeID()
	} else if existing := ctx.dock.Nodes[id]; existing != nil {
		ctx.assert(false, "dock node id already in use", "node", id)
		return existing
	}
	node := newDockNode(id)
	ctx.dock.Nodes[id] = node
	ctx.logger.Debug("dock: add node", "node", id)
	return node
}

// DockContextRemoveNode deletes node. With mergeSiblingIntoParent the
// sibling's contents replace the parent's split, deleting both children.
func (ctx *Context) DockContextRemoveNode(node *DockNode, mergeSiblingIntoParent bool) {
	ctx.logger.Debug("dock: remove node", "node", node.ID, "merge", mergeSiblingIntoParent)
	ctx.assert(len(node.Windows) == 0, "removing a node that still hosts windows", "node", node.ID)
	ctx.DockContextQueueNotifyRemovedNode(node)

	parent := ctx.dock.Nodes[node.ParentID]
	if mergeSiblingIntoParent && parent != nil {
		sibling := ctx.dock.Nodes[parent.ChildIDs[0]]
		if parent.ChildIDs[0] == node.ID {
			sibling = ctx.dock.Nodes[parent.ChildIDs[1]]
		}
		ctx.DockNodeTreeMerge(parent, sibling)
		return
	}
	if parent != nil {
		for n := range parent.ChildIDs {
			if parent.ChildIDs[n] == node.ID {
				parent.ChildIDs[n] = 0
			}
		}
	}
	if host := ctx.FindWindowByID(node.HostWindowID); host != nil && host.DockNodeAsHostID == node.ID {
		host.DockNodeAsHostID = 0
		if host.Flags&WindowDockNodeHost != 0 {
			ctx.DestroyWindow(host)
		}
	}
	delete(ctx.dock.Nodes, node.ID)
}

// DockContextQueueDock queues docking payload into target (a node, or a bare window).
func (ctx *Context) DockContextQueueDock(target *Window, targetNode *DockNode, payload *Window, splitDir Dir, splitRatio float32, splitOuter bool) {
	req := DockRequest{
		Type:             DockRequestDock,
		DockTargetWindow: target,
		DockPayload:      payload,
		DockSplitDir:     splitDir,
		DockSplitRatio:   splitRatio,
		DockSplitOuter:   splitOuter,
	}
	if targetNode != nil {
		req.DockTargetNodeID = targetNode.ID
	}
	ctx.dock.Requests = append(ctx.dock.Requests, req)
}

// DockContextQueueUndockWindow queues undocking w. See
// DockContextProcessUndockWindow for clearDockID.
func (ctx *Context) DockContextQueueUndockWindow(w *Window, clearDockID bool) {
	ctx.dock.Requests = append(ctx.dock.Requests, DockRequest{
		Type:               DockRequestUndock,
		UndockTargetWindow: w,
		UndockClearDockID:  clearDockID,
	})
}

// DockContextQueueUndockNode queues pulling node out of its hierarchy.
func (ctx *Context) DockContextQueueUndockNode(node *DockNode) {
	ctx.dock.Requests = append(ctx.dock.Requests, DockRequest{
		Type:               DockRequestUndock,
		UndockTargetNodeID: node.ID,
	})
}

// DockContextQueueNotifyRemovedNode cancels queued requests targeting node.
func (ctx *Context) DockContextQueueNotifyRemovedNode(node *DockNode) {
	for i := range ctx.dock.Requests {
		req := &ctx.dock.Requests[i]
		if req.DockTargetNodeID == node.ID || req.UndockTargetNodeID == node.ID {
			req.Type = DockRequestNone
		}
	}
}

// DockContextNewFrameUpdateUndocking is the first dock phase of a frame:
// it applies pending rebuilds and every queued undock request.
func (ctx *Context) DockContextNewFrameUpdateUndocking() {
	if ctx.dock.WantFullRebuild {
		ctx.DockContextRebuildNodes()
		ctx.dock.WantFullRebuild = false
	}
	for i := range ctx.dock.Requests {
		req := &ctx.dock.Requests[i]
		if req.Type != DockRequestUndock {
			continue
		}
		if node := ctx.dock.Nodes[req.UndockTargetNodeID]; node != nil {
			ctx.DockContextProcessUndockNode(node)
		} else if req.UndockTargetWindow != nil {
			ctx.DockContextProcessUndockWindow(req.UndockTargetWindow, req.UndockClearDockID)
		}
		req.Type = DockRequestNone
	}
}

// DockContextNewFrameUpdateDocking is the second and third dock phase:
// it applies queued dock requests, then updates every floating root node.
func (ctx *Context) DockContextNewFrameUpdateDocking() {
	for i := range ctx.dock.Requests {
		req := ctx.dock.Requests[i]
		if req.Type == DockRequestDock {
			ctx.DockContextProcessDock(&req)
		}
	}
	ctx.dock.Requests = ctx.dock.Requests[:0]

	// Updating may delete nodes, so walk a snapshot.
	for _, id := range ctx.DockNodes() {
		node := ctx.dock.Nodes[id]
		if node == nil || !node.IsFloatingNode() {
			continue
		}
		if node.IsEmpty() && !ctx.dockNodeIsReferenced(node.ID) {
			ctx.logger.Debug("dock: drop unreferenced floating node", "node", node.ID)
			ctx.DockContextRemoveNode(node, false)
			continue
		}
		ctx.DockNodeUpdate(node)
	}
}

// dockNodeIsReferenced reports whether a window or window record remembers id.
func (ctx *Context) dockNodeIsReferenced(id ID) bool {
	for _, w := range ctx.windows {
		if w.DockID == id {
			return true
		}
	}
	for _, ws := range ctx.settings.Windows {
		if ws.DockID == id {
			return true
		}
	}
	return false
}

// DockContextEndFrame paints the background of visible leaves that no window covered.
func (ctx *Context) DockContextEndFrame() {
	if ctx.DrawList == nil {
		return
	}
	for _, id := range ctx.DockNodes() {
		node := ctx.dock.Nodes[id]
		if node.LastFrameActive == ctx.FrameCount && node.IsVisible && node.HostWindowID != 0 && node.IsLeafNode() && !node.IsBgDrawnThisFrame {
			if node.IsCentralNode() && node.MergedFlags.Has(DockNodePassthruCentralNode) {
				continue
			}
			ctx.DrawList.AddRect(node.Rect(), ctx.Style.DockingEmptyBg)
			node.LastBgColor = ctx.Style.DockingEmptyBg
		}
	}
}

// DockContextProcessDock applies one dock request.
func (ctx *Context) DockContextProcessDock(req *DockRequest) {
	payloadWindow := req.DockPayload
	targetWindow := req.DockTargetWindow
	node := ctx.dock.Nodes[req.DockTargetNodeID]
	if req.DockTargetNodeID != 0 && node == nil {
		return
	}
	if node == nil && targetWindow == nil {
		ctx.assert(false, "dock request without target")
		return
	}

	ctx.logger.Debug("dock: process dock",
		"target_node", req.DockTargetNodeID, "split", req.DockSplitDir, "ratio", req.DockSplitRatio)

	// Pick the tab selected at the end of the operation.
	var nextSelectedID ID
	var payloadNode *DockNode
	if payloadWindow != nil {
		payloadNode = ctx.dock.Nodes[payloadWindow.DockNodeAsHostID]
		if payloadNode != nil {
			payloadWindow.DockNodeAsHostID = 0
			if h := ctx.FindWindowByID(payloadNode.HostWindowID); h == payloadWindow {
				payloadNode.HostWindowID = 0
			}
			if payloadNode.IsLeafNode() && payloadNode.TabBar != nil {
				nextSelectedID = payloadNode.TabBar.NextSelectedTabID
				if nextSelectedID == 0 {
					nextSelectedID = payloadNode.TabBar.SelectedTabID
				}
			}
		} else {
			nextSelectedID = payloadWindow.TabID
		}
	}

	// Wrap a bare target window in a new node.
	if node == nil {
		node = ctx.DockContextAddNode(0)
		node.Pos = targetWindow.Pos
		node.Size = targetWindow.Size
		node.SizeRef = targetWindow.Size
		if targetWindow.DockNodeAsHostID == 0 {
			ctx.DockNodeAddWindow(node, targetWindow, true)
		}
	}

	if req.DockSplitDir != DirNone {
		// Existing contents move to the side opposite the split direction.
		axis := req.DockSplitDir.Axis()
		inheritor := 0
		ratio0 := 1 - req.DockSplitRatio
		if !req.DockSplitDir.IsPositive() {
			inheritor = 1
			ratio0 = req.DockSplitRatio
		}
		ctx.DockNodeTreeSplit(node, axis, inheritor, ratio0, payloadNode)
		newNode := ctx.dock.Nodes[node.ChildIDs[inheritor^1]]
		newNode.HostWindowID = node.HostWindowID
		node = newNode
	}
	node.SetLocalFlags(node.LocalFlags &^ DockNodeHiddenTabBar)

	if node != payloadNode {
		if len(node.Windows) > 0 && node.TabBar == nil {
			ctx.dockNodeAddTabBar(node)
			for _, w := range node.Windows {
				node.TabBar.AddTab(w.TabID, w)
			}
		}
		switch {
		case payloadNode != nil && payloadNode.IsSplitNode():
			if len(node.Windows) > 0 {
				// Only a payload tree with a single node holding windows can
				// land on a node with windows: the target windows join it.
				visible := ctx.dock.Nodes[payloadNode.OnlyNodeWithWindowsID]
				if !ctx.assert(visible != nil, "split payload with several nodes holding windows", "payload", payloadNode.ID) {
					return
				}
				ctx.DockNodeMoveWindows(visible, node)
				ctx.DockSettingsRenameNodeReferences(node.ID, visible.ID)
			}
			if node.IsCentralNode() {
				// The central flag moves to the payload's last focused leaf.
				lastFocused := ctx.dock.Nodes[payloadNode.LastFocusedNodeID]
				if lastFocused == nil || lastFocused.IsSplitNode() {
					lastFocused = ctx.dockNodeTreeFindFallbackLeafNode(payloadNode)
				}
				if lastFocused != nil {
					lastFocused.SetLocalFlags(lastFocused.LocalFlags | DockNodeCentralNode)
					node.SetLocalFlags(node.LocalFlags &^ DockNodeCentralNode)
				}
			}
			ctx.assert(len(node.Windows) == 0, "split payload target still hosts windows", "node", node.ID)
			ctx.DockNodeMoveChildNodes(node, payloadNode)
			ctx.DockContextRemoveNode(payloadNode, false)
		case payloadNode != nil:
			payloadDockID := payloadNode.ID
			ctx.DockNodeMoveWindows(node, payloadNode)
			ctx.DockSettingsRenameNodeReferences(payloadDockID, node.ID)
			ctx.DockContextRemoveNode(payloadNode, true)
		case payloadWindow != nil:
			payloadDockID := payloadWindow.DockID
			node.VisibleWindowID = payloadWindow.ID
			ctx.DockNodeAddWindow(node, payloadWindow, true)
			if payloadDockID != 0 && payloadDockID != node.ID {
				ctx.DockSettingsRenameNodeReferences(payloadDockID, node.ID)
			}
		}
	} else {
		node.WantHiddenTabBarUpdate = true
	}

	if node.TabBar != nil && nextSelectedID != 0 {
		node.TabBar.NextSelectedTabID = nextSelectedID
		node.SelectedTabID = nextSelectedID
	}
	// The payload's floating host has nothing left to host.
	if payloadNode != nil && payloadWindow.Flags&WindowDockNodeHost != 0 && payloadWindow.DockNodeAsHostID == 0 {
		ctx.DestroyWindow(payloadWindow)
	}
	ctx.MarkIniSettingsDirty()
}

// fixLargeWindowsWhenUndocking clamps size to 90% of the work area.
func (ctx *Context) fixLargeWindowsWhenUndocking(size Vec2, ref *Window) Vec2 {
	if !ctx.Config.FixLargeWindowsWhenUndocking {
		return size
	}
	work := ctx.WorkArea(ref).Size()
	if work.X <= 0 || work.Y <= 0 {
		return size
	}
	maxSize := work.Mul(ctx.Config.UndockMaxWorkAreaRatio).Floor()
	return Vec2{X: minf(size.X, maxSize.X), Y: minf(size.Y, maxSize.Y)}
}

// DockContextProcessUndockWindow detaches w from its node and restores its floating size.
//
// Pass clearDockID for user undocks (a tab dragged out) and for targets the
// window can never dock into; the window then forgets its DockID. Without it
// the window keeps DockID as its home and BeginDocked docks it back once the
// node is alive again, as for windows of a dockspace that was not submitted
// this frame.
func (ctx *Context) DockContextProcessUndockWindow(w *Window, clearDockID bool) {
	ctx.logger.Debug("dock: undock window", "window", w.String(), "clear_dock_id", clearDockID)
	if node := ctx.dock.Nodes[w.DockNodeID]; node != nil {
		var save ID
		if !clearDockID {
			save = w.DockID
		}
		ctx.DockNodeRemoveWindow(node, w, save)
	} else {
		w.DockNodeID = 0
		w.DockID = 0
	}
	w.Collapsed = false
	w.DockIsActive = false
	w.DockTabIsVisible = false
	w.SizeFull = ctx.fixLargeWindowsWhenUndocking(w.SizeFull, w)
	w.Size = w.SizeFull
	ctx.MarkIniSettingsDirty()
}

// DockContextProcessUndockNode pulls node out of its hierarchy into a new
// floating root. Root and central nodes stay in place and hand their windows
// over to a new node instead.
func (ctx *Context) DockContextProcessUndockNode(node *DockNode) {
	ctx.logger.Debug("dock: undock node", "node", node.ID)
	if !ctx.assert(node.IsLeafNode() && len(node.Windows) > 0, "undocking a split or empty node", "node", node.ID) {
		return
	}
	if node.IsRootNode() || node.IsCentralNode() {
		newNode := ctx.DockContextAddNode(0)
		newNode.Pos = node.Pos
		newNode.Size = node.Size
		newNode.SizeRef = node.SizeRef
		ctx.DockNodeMoveWindows(newNode, node)
		ctx.DockSettingsRenameNodeReferences(node.ID, newNode.ID)
		node = newNode
	} else {
		parent := ctx.dock.Nodes[node.ParentID]
		idx := 0
		if parent.ChildIDs[1] == node.ID {
			idx = 1
		}
		parent.ChildIDs[idx] = 0
		ctx.DockNodeTreeMerge(parent, ctx.dock.Nodes[parent.ChildIDs[idx^1]])
		node.ParentID = 0
		node.SharedFlags = 0
		node.UpdateMergedFlags()
		node.HostWindowID = 0
	}
	node.AuthorityForPos = true
	node.AuthorityForSize = true
	var ref *Window
	if len(node.Windows) > 0 {
		ref = node.Windows[0]
	}
	node.Size = ctx.fixLargeWindowsWhenUndocking(node.Size, ref)
	node.SizeRef = node.Size
	node.WantMouseMove = true
	ctx.MarkIniSettingsDirty()
}

// DockContextClearNodes removes every node of the hierarchy rooted at
// rootID (all nodes when 0). clearSettingsRefs also forgets window dock ids.
func (ctx *Context) DockContextClearNodes(rootID ID, clearSettingsRefs bool) {
	inScope := func(nodeID ID) bool {
		if rootID == 0 {
			return true
		}
		n := ctx.dock.Nodes[nodeID]
		return n != nil && ctx.DockNodeGetRootNode(n).ID == rootID
	}

	if clearSettingsRefs {
		for i := range ctx.settings.Windows {
			if ws := &ctx.settings.Windows[i]; ws.DockID != 0 && (rootID == 0 || inScope(ws.DockID)) {
				ws.DockID = 0
			}
		}
	}
	for _, w := range ctx.windows {
		if w.DockNodeID != 0 && inScope(w.DockNodeID) {
			if node := ctx.dock.Nodes[w.DockNodeID]; node != nil {
				ctx.dockNodeDetachWindow(node, w)
			}
			w.DockNodeID = 0
			w.DockIsActive = false
			w.DockTabIsVisible = false
			if clearSettingsRefs {
				w.DockID = 0
			}
		}
	}

	var remove []*DockNode
	for _, id := range ctx.DockNodes() {
		if inScope(id) {
			remove = append(remove, ctx.dock.Nodes[id])
		}
	}
	for _, node := range remove {
		ctx.DockContextRemoveNode(node, false)
	}
}

// DockContextRebuildNodes snapshots the tree into settings and rebuilds it.
func (ctx *Context) DockContextRebuildNodes() {
	ctx.logger.Debug("dock: rebuild nodes")
	ctx.settings.Nodes = ctx.dockSettingsCollectNodes()
	ctx.saveWindowSettings()
	ctx.DockContextClearNodes(0, false)
	ctx.DockContextBuildNodesFromSettings(ctx.settings.Nodes)
	ctx.DockContextBuildAddWindowsToNodes(0)
}
