package dockgui

// DockNodeGetRootNode walks up to the root of node's hierarchy.
func (ctx *Context) DockNodeGetRootNode(node *DockNode) *DockNode {
	for node != nil && node.ParentID != 0 {
		parent := ctx.dock.Nodes[node.ParentID]
		if parent == nil {
			break
		}
		node = parent
	}
	return node
}

// DockNodeIsInHierarchyOf reports whether node is parent or a descendant of it.
func (ctx *Context) DockNodeIsInHierarchyOf(node, parent *DockNode) bool {
	if parent == nil {
		return false
	}
	for node != nil {
		if node == parent {
			return true
		}
		node = ctx.dock.Nodes[node.ParentID]
	}
	return false
}

func (ctx *Context) dockNodeChildren(node *DockNode) (*DockNode, *DockNode) {
	return ctx.dock.Nodes[node.ChildIDs[0]], ctx.dock.Nodes[node.ChildIDs[1]]
}

// dockNodeTreeInfo summarizes a hierarchy.
type dockNodeTreeInfo struct {
	CentralNode           *DockNode
	FirstNodeWithWindows  *DockNode
	CountNodesWithWindows int
}

func (ctx *Context) dockNodeFindInfo(node *DockNode, info *dockNodeTreeInfo) {
	if len(node.Windows) > 0 {
		if info.FirstNodeWithWindows == nil {
			info.FirstNodeWithWindows = node
		}
		info.CountNodesWithWindows++
	}
	if node.IsCentralNode() {
		ctx.assert(info.CentralNode == nil, "more than one central node in hierarchy", "node", node.ID)
		ctx.assert(node.IsLeafNode(), "central node must be a leaf", "node", node.ID)
		info.CentralNode = node
	}
	if info.CountNodesWithWindows > 1 && info.CentralNode != nil {
		return
	}
	c0, c1 := ctx.dockNodeChildren(node)
	if c0 != nil {
		ctx.dockNodeFindInfo(c0, info)
	}
	if c1 != nil {
		ctx.dockNodeFindInfo(c1, info)
	}
}

// dockNodeTreeFindFallbackLeafNode returns the central node under node if
// there is one, else the first leaf.
func (ctx *Context) dockNodeTreeFindFallbackLeafNode(node *DockNode) *DockNode {
	var info dockNodeTreeInfo
	ctx.dockNodeFindInfo(node, &info)
	if info.CentralNode != nil {
		return info.CentralNode
	}
	return ctx.dockNodeTreeFindFirstLeaf(node)
}

func (ctx *Context) dockNodeTreeFindFirstLeaf(node *DockNode) *DockNode {
	if node == nil || node.IsLeafNode() {
		return node
	}
	c0, c1 := ctx.dockNodeChildren(node)
	if leaf := ctx.dockNodeTreeFindFirstLeaf(c0); leaf != nil {
		return leaf
	}
	return ctx.dockNodeTreeFindFirstLeaf(c1)
}

// DockNodeTreeFindVisibleNodeByPos returns the deepest visible node under pos.
// A split node is returned when pos lies on the gap between its children.
func (ctx *Context) DockNodeTreeFindVisibleNodeByPos(node *DockNode, pos Vec2) *DockNode {
	if node == nil || !node.IsVisible || !node.Rect().Contains(pos) {
		return nil
	}
	if node.IsLeafNode() {
		return node
	}
	c0, c1 := ctx.dockNodeChildren(node)
	if hovered := ctx.DockNodeTreeFindVisibleNodeByPos(c0, pos); hovered != nil {
		return hovered
	}
	if hovered := ctx.DockNodeTreeFindVisibleNodeByPos(c1, pos); hovered != nil {
		return hovered
	}
	return node
}

// DockNodeUpdateHasCentralNodeChild marks node and its ancestors-within-subtree
// that contain the central node.
func (ctx *Context) DockNodeUpdateHasCentralNodeChild(node *DockNode) bool {
	has := node.IsCentralNode()
	c0, c1 := ctx.dockNodeChildren(node)
	if c0 != nil && ctx.DockNodeUpdateHasCentralNodeChild(c0) {
		has = true
	}
	if c1 != nil && ctx.DockNodeUpdateHasCentralNodeChild(c1) {
		has = true
	}
	node.HasCentralNodeChild = has
	return has
}

// DockNodeMoveChildNodes transfers src's children and split to dst.
func (ctx *Context) DockNodeMoveChildNodes(dst, src *DockNode) {
	ctx.assert(len(dst.Windows) == 0, "moving child nodes into a node with windows", "node", dst.ID)
	dst.ChildIDs = src.ChildIDs
	for _, id := range dst.ChildIDs {
		if child := ctx.dock.Nodes[id]; child != nil {
			child.ParentID = dst.ID
		}
	}
	dst.SplitAxis = src.SplitAxis
	dst.SizeRef = src.SizeRef
	src.ChildIDs = [2]ID{}
	src.SplitAxis = AxisNone
}

// DockNodeMoveWindows moves every window of src into dst. dst takes over
// src's tab bar when it has none, which keeps the selection.
func (ctx *Context) DockNodeMoveWindows(dst, src *DockNode) {
	if !ctx.assert(dst != nil && src != nil && dst != src, "invalid window move") {
		return
	}
	moveTabBar := src.TabBar != nil && dst.TabBar == nil
	if moveTabBar {
		dst.TabBar = src.TabBar
		dst.TabBar.ID = dst.ID
		src.TabBar = nil
	}
	windows := src.Windows
	src.Windows = nil
	for _, w := range windows {
		w.DockNodeID = 0
		w.DockIsActive = false
		ctx.DockNodeAddWindow(dst, w, !moveTabBar)
	}
	if !moveTabBar && src.TabBar != nil {
		if dst.TabBar != nil {
			dst.TabBar.NextSelectedTabID = src.TabBar.SelectedTabID
		}
		ctx.dockNodeRemoveTabBar(src)
	}
	if src.VisibleWindowID != 0 && dst.VisibleWindowID == 0 {
		dst.VisibleWindowID = src.VisibleWindowID
	}
	src.VisibleWindowID = 0
}

// DockNodeApplyPosSizeToWindows snaps hosted windows to the node rectangle.
func (ctx *Context) DockNodeApplyPosSizeToWindows(node *DockNode) {
	for _, w := range node.Windows {
		w.Pos = node.Pos
		w.Size = node.Size
	}
}

// DockNodeTreeSplit turns the leaf parent into a split along axis. Current
// windows and children move to the child at inheritor; ratio is the share of
// the first child. existing, when non-nil, becomes the other child.
func (ctx *Context) DockNodeTreeSplit(parent *DockNode, axis Axis, inheritor int, ratio float32, existing *DockNode) {
	if !ctx.assert(axis != AxisNone, "split without axis", "node", parent.ID) {
		return
	}
	var child0, child1 *DockNode
	if existing != nil && inheritor != 0 {
		child0 = existing
	} else {
		child0 = ctx.DockContextAddNode(0)
	}
	child0.ParentID = parent.ID
	if existing != nil && inheritor != 1 {
		child1 = existing
	} else {
		child1 = ctx.DockContextAddNode(0)
	}
	child1.ParentID = parent.ID
	heir := child0
	if inheritor == 1 {
		heir = child1
	}
	ctx.logger.Debug("dock: split", "node", parent.ID, "axis", axis, "ratio", ratio, "heir", heir.ID)

	ctx.DockNodeMoveChildNodes(heir, parent)
	parent.ChildIDs = [2]ID{child0.ID, child1.ID}
	heir.VisibleWindowID = parent.VisibleWindowID
	parent.SplitAxis = axis
	parent.VisibleWindowID = 0
	parent.AuthorityForPos = true
	parent.AuthorityForSize = true

	minSize := ctx.Config.WindowMinSize.Axis(axis)
	avail := maxf(parent.Size.Axis(axis)-ctx.Config.SplitterThickness, minSize*2)
	size0 := floorf(avail * clampf(ratio, 0, 1))
	size0 = clampf(size0, minSize, avail-minSize)
	child0.SizeRef = parent.Size
	child1.SizeRef = parent.Size
	child0.SizeRef = child0.SizeRef.SetAxis(axis, size0)
	child1.SizeRef = child1.SizeRef.SetAxis(axis, floorf(avail-size0))

	ctx.DockNodeMoveWindows(heir, parent)
	ctx.DockSettingsRenameNodeReferences(parent.ID, heir.ID)

	// Local flags such as CentralNode move to the heir.
	child0.SharedFlags = parent.SharedFlags & DockNodeSharedFlagsInheritMask
	child1.SharedFlags = parent.SharedFlags & DockNodeSharedFlagsInheritMask
	heir.LocalFlags = parent.LocalFlags & DockNodeLocalFlagsTransferMask
	parent.LocalFlags &^= DockNodeLocalFlagsTransferMask
	parent.LocalFlagsInWindows = 0
	child0.UpdateMergedFlags()
	child1.UpdateMergedFlags()
	parent.UpdateMergedFlags()
	root := ctx.DockNodeGetRootNode(parent)
	if heir.IsCentralNode() {
		root.CentralNodeID = heir.ID
	}
	ctx.DockNodeUpdateHasCentralNodeChild(root)
	ctx.dockNodeUpdateVisibleFlagRecursive(root)
	ctx.DockNodeTreeUpdatePosSize(parent, parent.Pos, parent.Size, nil)
}

// DockNodeTreeMerge collapses parent's split back into a leaf: windows of
// both children and the children of lead move into parent, and both child
// nodes are deleted. A child slot may already be empty.
func (ctx *Context) DockNodeTreeMerge(parent, lead *DockNode) {
	child0, child1 := ctx.dockNodeChildren(parent)
	if !ctx.assert(child0 != nil || child1 != nil, "merging a leaf", "node", parent.ID) {
		return
	}
	if lead == nil {
		lead = child0
		if lead == nil {
			lead = child1
		}
	}
	if !ctx.assert(lead == child0 || lead == child1, "merge lead is not a child", "node", parent.ID) {
		return
	}
	if child0 != nil && child1 != nil && len(child0.Windows) > 0 && len(child1.Windows) > 0 {
		ctx.assert(false, "both merged children host windows", "node", parent.ID)
	}
	ctx.logger.Debug("dock: merge", "node", parent.ID, "lead", lead.ID)

	backupSizeRef := parent.SizeRef
	ctx.DockNodeMoveChildNodes(parent, lead)
	for _, child := range []*DockNode{child0, child1} {
		if child == nil {
			continue
		}
		ctx.DockNodeMoveWindows(parent, child)
		ctx.DockSettingsRenameNodeReferences(child.ID, parent.ID)
	}
	ctx.DockNodeApplyPosSizeToWindows(parent)
	parent.AuthorityForPos = true
	parent.AuthorityForSize = true
	parent.VisibleWindowID = lead.VisibleWindowID
	parent.SizeRef = backupSizeRef

	// DockSpace is preserved on the parent.
	parent.LocalFlags &^= DockNodeLocalFlagsTransferMask
	parent.LocalFlagsInWindows = 0
	for _, child := range []*DockNode{child0, child1} {
		if child == nil {
			continue
		}
		parent.LocalFlags |= child.LocalFlags & DockNodeLocalFlagsTransferMask
		parent.LocalFlagsInWindows |= child.LocalFlagsInWindows
	}
	parent.UpdateMergedFlags()
	if parent.IsCentralNode() {
		ctx.DockNodeGetRootNode(parent).CentralNodeID = parent.ID
	}

	for _, child := range []*DockNode{child0, child1} {
		if child == nil {
			continue
		}
		ctx.DockContextQueueNotifyRemovedNode(child)
		delete(ctx.dock.Nodes, child.ID)
	}
	ctx.DockNodeUpdateHasCentralNodeChild(ctx.DockNodeGetRootNode(parent))
}

// DockNodeTreeUpdatePosSize lays out node and its visible descendants
// top-down. When single is non-nil only the path toward it is written,
// which sizes a node that is about to become visible.
func (ctx *Context) DockNodeTreeUpdatePosSize(node *DockNode, pos, size Vec2, single *DockNode) {
	writeToNode := single == nil || single == node
	if writeToNode {
		node.Pos = pos
		node.Size = size
	}
	if node.IsLeafNode() {
		return
	}
	child0, child1 := ctx.dockNodeChildren(node)
	if child0 == nil || child1 == nil {
		ctx.assert(false, "split node with a missing child", "node", node.ID)
		return
	}
	pos0, pos1 := pos, pos
	size0, size1 := size, size

	toward0 := single != nil && ctx.DockNodeIsInHierarchyOf(single, child0)
	toward1 := single != nil && ctx.DockNodeIsInHierarchyOf(single, child1)
	visible0 := child0.IsVisible || toward0
	visible1 := child1.IsVisible || toward1

	if visible0 && visible1 {
		spacing := ctx.Config.SplitterThickness
		axis := node.SplitAxis
		avail := maxf(size.Axis(axis)-spacing, 0)
		minEach := floorf(minf(avail, ctx.Config.WindowMinSize.Axis(axis)*2) * 0.5)
		minCentral := minf(avail, ctx.Config.WindowMinSize.Axis(axis)*2)

		var s0, s1 float32
		switch {
		case child0.WantLockSizeOnce && !child1.WantLockSizeOnce:
			s0 = minf(avail-1, child0.Size.Axis(axis))
			s1 = avail - s0
			child0.SizeRef = child0.SizeRef.SetAxis(axis, s0)
			child1.SizeRef = child1.SizeRef.SetAxis(axis, s1)
		case child1.WantLockSizeOnce && !child0.WantLockSizeOnce:
			s1 = minf(avail-1, child1.Size.Axis(axis))
			s0 = avail - s1
			child0.SizeRef = child0.SizeRef.SetAxis(axis, s0)
			child1.SizeRef = child1.SizeRef.SetAxis(axis, s1)
		case child0.WantLockSizeOnce && child1.WantLockSizeOnce:
			// Both sizes can't be honored; keep their ratio.
			ratio := splitRatioOf(child0.Size.Axis(axis), child1.Size.Axis(axis))
			s0 = floorf(avail * ratio)
			s1 = avail - s0
			child0.SizeRef = child0.SizeRef.SetAxis(axis, s0)
			child1.SizeRef = child1.SizeRef.SetAxis(axis, s1)
		case child0.SizeRef.Axis(axis) != 0 && child1.HasCentralNodeChild:
			// The central side absorbs the remainder and keeps two minimum widths.
			s0 = maxf(minf(avail-minCentral, child0.SizeRef.Axis(axis)), 0)
			s1 = avail - s0
		case child1.SizeRef.Axis(axis) != 0 && child0.HasCentralNodeChild:
			s1 = maxf(minf(avail-minCentral, child1.SizeRef.Axis(axis)), 0)
			s0 = avail - s1
		default:
			ratio := splitRatioOf(child0.SizeRef.Axis(axis), child1.SizeRef.Axis(axis))
			s0 = clampf(floorf(avail*ratio+0.5), minEach, maxf(avail-minEach, minEach))
			s1 = avail - s0
		}
		size0 = size0.SetAxis(axis, s0)
		size1 = size1.SetAxis(axis, s1)
		pos1 = pos1.SetAxis(axis, pos1.Axis(axis)+spacing+s0)
	}

	if single == nil {
		child0.WantLockSizeOnce = false
		child1.WantLockSizeOnce = false
	}
	recurse0, recurse1 := toward0, toward1
	if writeToNode {
		recurse0, recurse1 = visible0, visible1
	}
	if recurse0 {
		ctx.DockNodeTreeUpdatePosSize(child0, pos0, size0, single)
	}
	if recurse1 {
		ctx.DockNodeTreeUpdatePosSize(child1, pos1, size1, single)
	}
}

func splitRatioOf(a, b float32) float32 {
	if a+b <= 0 {
		return 0.5
	}
	return a / (a + b)
}
