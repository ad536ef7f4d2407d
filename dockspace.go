package dockgui

import (
	"fmt"
	"slices"
)

// Cond restricts how often a setter applies.
type Cond int

const (
	CondAlways       Cond = 1 << 0
	CondOnce         Cond = 1 << 1 // Once per runtime session
	CondFirstUseEver Cond = 1 << 2 // Only when the window has no persisted state
	CondAppearing    Cond = 1 << 3 // When the window reappears after being hidden
)

// dockSpaceMinSize is the smallest size a dockspace shrinks to when sized
// relative to the available region.
const dockSpaceMinSize float32 = 4

// DockSpace submits a dockspace node with id inside the current window.
// A size component <= 0 means "available space minus that amount". Must be
// called before the windows docked into it are submitted, every frame.
func (ctx *Context) DockSpace(id ID, size Vec2, flags DockNodeFlags, class *WindowClass) ID {
	if !ctx.assert(id != 0, "DockSpace with zero id") {
		return 0
	}
	ctx.assert(flags&DockNodeDockSpace == 0, "DockSpace flags must not include DockNodeDockSpace", "node", id)

	parent := ctx.currentWindow
	if parent != nil && (parent.Collapsed || parent.Hidden) {
		flags |= DockNodeKeepAliveOnly
	}

	node := ctx.dock.Nodes[id]
	if node == nil {
		ctx.logger.Debug("dockspace created", "node", id)
		node = ctx.DockContextAddNode(id)
		node.SetLocalFlags(DockNodeCentralNode)
	}
	if class != nil && class.ClassID != node.WindowClass.ClassID {
		ctx.logger.Debug("dockspace window class changed", "node", id, "from", node.WindowClass.ClassID, "to", class.ClassID)
	}
	node.SharedFlags = flags
	node.WindowClass = WindowClass{}
	if class != nil {
		node.WindowClass = *class
	}

	// A docked window submitted earlier this frame may already have claimed the node.
	if node.LastFrameActive == ctx.FrameCount && flags&DockNodeKeepAliveOnly == 0 {
		ctx.assert(!node.IsDockSpace(), "DockSpace submitted twice in a frame", "node", id)
		node.SetLocalFlags(node.LocalFlags | DockNodeDockSpace)
		return id
	}
	node.SetLocalFlags(node.LocalFlags | DockNodeDockSpace)

	if flags&DockNodeKeepAliveOnly != 0 {
		node.LastFrameAlive = ctx.FrameCount
		return id
	}

	pos, avail := ctx.contentRegion(parent)
	size = size.Floor()
	if size.X <= 0 {
		size.X = maxf(avail.X+size.X, dockSpaceMinSize)
	}
	if size.Y <= 0 {
		size.Y = maxf(avail.Y+size.Y, dockSpaceMinSize)
	}
	node.Pos = pos
	node.Size = size
	node.SizeRef = size

	title := fmt.Sprintf("DockSpace_%08X", uint32(id))
	if parent != nil {
		title = parent.Name + "/" + title
	}
	hostFlags := WindowDockNodeHost | WindowNoSavedSettings | WindowNoResize | WindowNoCollapse |
		WindowNoTitleBar | WindowNoBackground | WindowNoDocking | WindowNoMove |
		WindowNoFocusOnAppear | WindowNoBringToFront
	ctx.SetNextWindowPos(node.Pos)
	ctx.SetNextWindowSize(node.Size)
	ctx.BeginWindow(title, hostFlags)
	host := ctx.currentWindow
	if parent != nil {
		host.ParentWindowID = parent.ID
		host.ViewportID = parent.ViewportID
		ctx.placeWindowAbove(host, parent)
	}
	host.DockNodeAsHostID = node.ID
	node.HostWindowID = host.ID
	node.OnlyNodeWithWindowsID = 0

	ctx.assert(node.IsRootNode(), "dockspace node is not a root", "node", id)
	// A builder-made node may lack the central flag; a lone leaf gets it back.
	if node.IsLeafNode() && !node.IsCentralNode() {
		node.SetLocalFlags(node.LocalFlags | DockNodeCentralNode)
	}

	ctx.DockNodeUpdate(node)
	ctx.EndWindow()
	return id
}

// contentRegion returns the origin and size of the area below w's title bar,
// or the main work area when w is nil.
func (ctx *Context) contentRegion(w *Window) (Vec2, Vec2) {
	if w == nil {
		work := ctx.platform.WorkArea(0)
		return work.Min, work.Size()
	}
	pos, size := w.Pos, w.Size
	if w.Flags&WindowNoTitleBar == 0 && !w.DockNodeIsVisible {
		pos.Y += ctx.Config.TabBarHeight
		size.Y -= ctx.Config.TabBarHeight
	}
	if w.DockNodeIsVisible {
		if node := ctx.dock.Nodes[w.DockNodeID]; node != nil {
			r := ctx.dockNodeContentRect(node)
			return r.Min, r.Size()
		}
	}
	return pos, Vec2{X: maxf(size.X, 0), Y: maxf(size.Y, 0)}
}

// DockSpaceOverViewport covers the work area of viewportID with a background
// window hosting a dockspace. A zero dockspaceID derives one from the window.
func (ctx *Context) DockSpaceOverViewport(dockspaceID, viewportID ID, flags DockNodeFlags, class *WindowClass) ID {
	work := ctx.platform.WorkArea(viewportID)
	ctx.SetNextWindowPos(work.Min)
	ctx.SetNextWindowSize(work.Size())

	hostFlags := WindowNoTitleBar | WindowNoCollapse | WindowNoResize | WindowNoMove |
		WindowNoDocking | WindowNoBringToFront | WindowNoFocusOnAppear | WindowNoSavedSettings
	if flags.Has(DockNodePassthruCentralNode) {
		hostFlags |= WindowNoBackground
	}
	label := fmt.Sprintf("DockSpaceViewport_%08X", uint32(viewportID))
	firstUse := ctx.FindWindowByName(label) == nil
	ctx.BeginWindow(label, hostFlags)
	w := ctx.currentWindow
	w.ViewportID = viewportID
	if firstUse {
		ctx.bringWindowToBack(w)
	}
	if dockspaceID == 0 {
		dockspaceID = ctx.GetID("DockSpace")
	}
	ctx.DockSpace(dockspaceID, Vec2{}, flags, class)
	ctx.EndWindow()
	return dockspaceID
}

// IsWindowDocked reports whether w is currently shown as part of a dock node.
func (ctx *Context) IsWindowDocked(w *Window) bool {
	return w != nil && w.DockIsActive
}

// GetWindowDockID returns the last dock id of w, 0 when it never docked.
func (ctx *Context) GetWindowDockID(w *Window) ID {
	if w == nil {
		return 0
	}
	return w.DockID
}

// DockBuilderDockWindow docks the window named windowName into nodeID. The
// window does not need to exist yet: its settings record is updated instead.
func (ctx *Context) DockBuilderDockWindow(windowName string, nodeID ID) {
	ctx.logger.Debug("builder: dock window", "window", windowName, "node", nodeID)
	id := HashString(0, windowName)
	if w := ctx.FindWindowByID(id); w != nil {
		prev := w.DockID
		ctx.SetWindowDock(w, nodeID, CondAlways)
		if w.DockID != prev {
			w.DockOrder = -1
		}
		return
	}
	ws := ctx.settings.findWindow(id)
	if ws == nil {
		ctx.settings.Windows = append(ctx.settings.Windows, WindowSettings{ID: id, Name: windowName, DockOrder: -1})
		ws = &ctx.settings.Windows[len(ctx.settings.Windows)-1]
	}
	if ws.DockID != nodeID {
		ws.DockOrder = -1
	}
	ws.DockID = nodeID
}

// DockBuilderGetNode returns the node with id, or nil.
func (ctx *Context) DockBuilderGetNode(id ID) *DockNode {
	return ctx.dock.Nodes[id]
}

// DockBuilderGetCentralNode returns the central node of the hierarchy
// containing id, or nil.
func (ctx *Context) DockBuilderGetCentralNode(id ID) *DockNode {
	node := ctx.dock.Nodes[id]
	if node == nil {
		return nil
	}
	var info dockNodeTreeInfo
	ctx.dockNodeFindInfo(ctx.DockNodeGetRootNode(node), &info)
	return info.CentralNode
}

// DockBuilderAddNode creates a node, replacing any existing node with the
// same id. A zero id generates one. DockNodeDockSpace in flags creates a
// kept-alive dockspace.
func (ctx *Context) DockBuilderAddNode(id ID, flags DockNodeFlags) ID {
	if id != 0 {
		ctx.DockBuilderRemoveNode(id)
	}
	var node *DockNode
	if flags&DockNodeDockSpace != 0 {
		ctx.DockSpace(id, Vec2{}, flags&^DockNodeDockSpace|DockNodeKeepAliveOnly, nil)
		node = ctx.dock.Nodes[id]
	} else {
		node = ctx.DockContextAddNode(id)
		node.SetLocalFlags(flags)
	}
	if node == nil {
		return 0
	}
	// Alive this frame so windows bound to it are not undocked right away.
	node.LastFrameAlive = ctx.FrameCount
	return node.ID
}

// DockBuilderRemoveNode removes the node with id, its children and the
// windows docked into them.
func (ctx *Context) DockBuilderRemoveNode(id ID) {
	if ctx.dock.Nodes[id] == nil {
		return
	}
	ctx.DockBuilderRemoveNodeDockedWindows(id, true)
	ctx.DockBuilderRemoveNodeChildNodes(id)
	// Merges may have removed the node already.
	node := ctx.dock.Nodes[id]
	if node == nil {
		return
	}
	if node.IsCentralNode() {
		if parent := ctx.dock.Nodes[node.ParentID]; parent != nil {
			parent.SetLocalFlags(parent.LocalFlags | DockNodeCentralNode)
		}
	}
	ctx.DockContextRemoveNode(node, true)
}

// DockBuilderRemoveNodeChildNodes collapses the hierarchy under rootID into
// rootID itself, moving every docked window into it. A zero rootID clears
// every node.
func (ctx *Context) DockBuilderRemoveNodeChildNodes(rootID ID) {
	root := ctx.dock.Nodes[rootID]
	if rootID != 0 && root == nil {
		return
	}

	var authorityPos, authoritySize bool
	if root != nil {
		authorityPos, authoritySize = root.AuthorityForPos, root.AuthorityForSize
	}

	hasCentral := false
	var remove []*DockNode
	for _, id := range ctx.DockNodes() {
		node := ctx.dock.Nodes[id]
		if rootID != 0 && (node.ID == rootID || ctx.DockNodeGetRootNode(node).ID != rootID) {
			continue
		}
		if node.IsCentralNode() {
			hasCentral = true
		}
		if root != nil {
			ctx.DockNodeMoveWindows(root, node)
			ctx.DockSettingsRenameNodeReferences(node.ID, root.ID)
		}
		remove = append(remove, node)
	}
	if root != nil {
		root.AuthorityForPos, root.AuthorityForSize = authorityPos, authoritySize
	}

	removed := make(map[ID]bool, len(remove))
	for _, node := range remove {
		removed[node.ID] = true
	}
	for i := range ctx.settings.Windows {
		if ws := &ctx.settings.Windows[i]; removed[ws.DockID] {
			ws.DockID = rootID
		}
	}

	// Deepest nodes first so parent slots are cleared bottom-up.
	depth := func(n *DockNode) int {
		d := 0
		for n.ParentID != 0 {
			n = ctx.dock.Nodes[n.ParentID]
			d++
		}
		return d
	}
	slices.SortStableFunc(remove, func(a, b *DockNode) int { return depth(b) - depth(a) })
	for _, node := range remove {
		ctx.DockContextRemoveNode(node, false)
	}

	if rootID == 0 {
		clear(ctx.dock.Nodes)
		ctx.dock.Requests = ctx.dock.Requests[:0]
		return
	}
	root.ChildIDs = [2]ID{}
	root.SplitAxis = AxisNone
	if hasCentral {
		root.CentralNodeID = root.ID
		root.SetLocalFlags(root.LocalFlags | DockNodeCentralNode)
	}
}

// DockBuilderRemoveNodeDockedWindows undocks every window of the hierarchy
// rooted at rootID (all hierarchies when 0). clearSettingsRefs also drops the
// persisted dock ids pointing into it.
func (ctx *Context) DockBuilderRemoveNodeDockedWindows(rootID ID, clearSettingsRefs bool) {
	inHierarchy := func(nodeID ID) bool {
		if rootID == 0 || nodeID == rootID {
			return true
		}
		node := ctx.dock.Nodes[nodeID]
		return node != nil && ctx.DockNodeGetRootNode(node).ID == rootID
	}
	if clearSettingsRefs {
		for i := range ctx.settings.Windows {
			if ws := &ctx.settings.Windows[i]; ws.DockID != 0 && inHierarchy(ws.DockID) {
				ws.DockID = 0
			}
		}
	}
	for _, w := range slices.Clone(ctx.windows) {
		if w.DockNodeID == 0 || !inHierarchy(w.DockNodeID) {
			continue
		}
		backup := w.DockID
		ctx.DockContextProcessUndockWindow(w, clearSettingsRefs)
		if !clearSettingsRefs {
			ctx.assert(w.DockID == backup, "undock changed the dock id", "window", w.String())
		}
	}
}

// DockBuilderSetNodePos moves node id; the node becomes the authority for its position.
func (ctx *Context) DockBuilderSetNodePos(id ID, pos Vec2) {
	node := ctx.dock.Nodes[id]
	if node == nil {
		return
	}
	node.Pos = pos
	node.AuthorityForPos = true
}

// DockBuilderSetNodeSize resizes node id; the node becomes the authority for its size.
func (ctx *Context) DockBuilderSetNodeSize(id ID, size Vec2) {
	node := ctx.dock.Nodes[id]
	if node == nil {
		return
	}
	if !ctx.assert(size.X > 0 && size.Y > 0, "DockBuilderSetNodeSize with empty size", "node", id) {
		return
	}
	node.Size = size
	node.SizeRef = size
	node.AuthorityForSize = true
}

// DockBuilderSplitNode splits leaf node id along dir. ratio is the share of
// the new node on the dir side. Returns the ids of the node on the dir side
// and of the node on the opposite side.
func (ctx *Context) DockBuilderSplitNode(id ID, dir Dir, ratio float32) (atDir, opposite ID) {
	if !ctx.assert(dir != DirNone, "DockBuilderSplitNode without direction") {
		return 0, 0
	}
	ctx.logger.Debug("builder: split node", "node", id, "dir", dir, "ratio", ratio)
	node := ctx.dock.Nodes[id]
	if !ctx.assert(node != nil, "DockBuilderSplitNode on unknown node", "node", id) {
		return 0, 0
	}
	if !ctx.assert(!node.IsSplitNode(), "DockBuilderSplitNode on a split node", "node", id) {
		return 0, 0
	}
	ctx.DockContextProcessDock(&DockRequest{
		Type:             DockRequestSplit,
		DockTargetNodeID: id,
		DockSplitDir:     dir,
		DockSplitRatio:   clampf(ratio, 0, 1),
	})
	first, second := node.ChildIDs[0], node.ChildIDs[1]
	if dir.IsPositive() {
		return second, first
	}
	return first, second
}

// DockBuilderCopyNode duplicates the hierarchy under srcID as dstID, which is
// removed first. Returns the (source, destination) id pairs of the copy.
func (ctx *Context) DockBuilderCopyNode(srcID, dstID ID) [][2]ID {
	ctx.assert(srcID != 0 && dstID != 0, "DockBuilderCopyNode with zero id")
	ctx.DockBuilderRemoveNode(dstID)
	src := ctx.dock.Nodes[srcID]
	if !ctx.assert(src != nil, "DockBuilderCopyNode on unknown node", "node", srcID) {
		return nil
	}
	var pairs [][2]ID
	ctx.dockBuilderCopyNodeRec(src, dstID, &pairs)
	return pairs
}

func (ctx *Context) dockBuilderCopyNodeRec(src *DockNode, dstID ID, pairs *[][2]ID) *DockNode {
	dst := ctx.DockContextAddNode(dstID)
	dst.SharedFlags = src.SharedFlags
	dst.LocalFlags = src.LocalFlags
	dst.LocalFlagsInWindows = DockNodeFlagsNone
	dst.Pos = src.Pos
	dst.Size = src.Size
	dst.SizeRef = src.SizeRef
	dst.SplitAxis = src.SplitAxis
	dst.UpdateMergedFlags()
	*pairs = append(*pairs, [2]ID{src.ID, dst.ID})
	for n, childID := range src.ChildIDs {
		if child := ctx.dock.Nodes[childID]; child != nil {
			copied := ctx.dockBuilderCopyNodeRec(child, 0, pairs)
			copied.ParentID = dst.ID
			dst.ChildIDs[n] = copied.ID
		}
	}
	ctx.logger.Debug("builder: fork node", "from", src.ID, "to", dst.ID)
	return dst
}

// DockBuilderCopyWindowSettings copies position, size and collapse state of
// window srcName onto dstName, live or persisted.
func (ctx *Context) DockBuilderCopyWindowSettings(srcName, dstName string) {
	src := ctx.FindWindowByName(srcName)
	if src == nil {
		return
	}
	if dst := ctx.FindWindowByName(dstName); dst != nil {
		dst.Pos = src.Pos
		dst.Size = src.Size
		dst.SizeFull = src.SizeFull
		dst.Collapsed = src.Collapsed
		return
	}
	id := HashString(0, dstName)
	ws := ctx.settings.findWindow(id)
	if ws == nil {
		ctx.settings.Windows = append(ctx.settings.Windows, WindowSettings{ID: id, Name: dstName, DockOrder: -1})
		ws = &ctx.settings.Windows[len(ctx.settings.Windows)-1]
	}
	ws.Pos = src.Pos.Floor()
	ws.ViewportID = src.ViewportID
	ws.Size = src.SizeFull.Floor()
	ws.Collapsed = src.Collapsed
}

// DockBuilderCopyDockSpace duplicates dockspace srcID as dstID. windowPairs
// maps source window names to the names docked into the copy; source windows
// left out of the map follow into the copied node as well.
func (ctx *Context) DockBuilderCopyDockSpace(srcID, dstID ID, windowPairs [][2]string) {
	nodePairs := ctx.DockBuilderCopyNode(srcID, dstID)
	remap := make(map[ID]ID, len(nodePairs))
	for _, p := range nodePairs {
		remap[p[0]] = p[1]
	}

	mapped := make(map[ID]bool, len(windowPairs))
	for _, p := range windowPairs {
		srcWindowID := HashString(0, p[0])
		mapped[srcWindowID] = true
		var srcDockID ID
		if w := ctx.FindWindowByID(srcWindowID); w != nil {
			srcDockID = w.DockID
		} else if ws := ctx.settings.findWindow(srcWindowID); ws != nil {
			srcDockID = ws.DockID
		}
		if dstDockID, ok := remap[srcDockID]; ok && srcDockID != 0 {
			ctx.logger.Debug("builder: remap window", "from", p[0], "to", p[1], "node", dstDockID)
			ctx.DockBuilderDockWindow(p[1], dstDockID)
		} else {
			ctx.DockBuilderCopyWindowSettings(p[0], p[1])
		}
	}

	// Redock the rest after the loop: undocking would invalidate source nodes.
	type task struct {
		name   string
		dockID ID
	}
	var tasks []task
	for _, p := range nodePairs {
		node := ctx.dock.Nodes[p[0]]
		if node == nil {
			continue
		}
		for _, w := range node.Windows {
			if !mapped[w.ID] {
				tasks = append(tasks, task{w.Name, p[1]})
			}
		}
	}
	for _, t := range tasks {
		ctx.DockBuilderDockWindow(t.name, t.dockID)
	}
}

// DockBuilderFinish binds the windows referencing nodes of rootID (all
// roots when 0) to those nodes.
func (ctx *Context) DockBuilderFinish(rootID ID) {
	ctx.DockContextBuildAddWindowsToNodes(rootID)
}
