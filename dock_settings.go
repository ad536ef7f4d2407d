package dockgui

import (
	"cmp"
	"fmt"
	"slices"
)

// DockNodeSettings is the persisted record of one dock node.
type DockNodeSettings struct {
	ID             ID
	ParentNodeID   ID
	ParentWindowID ID // Window hosting the dockspace, 0 for floating hierarchies
	SelectedTabID  ID
	SplitAxis      Axis
	Depth          int
	Flags          DockNodeFlags // Masked by DockNodeSavedFlagsMask
	Pos            Vec2
	Size           Vec2
	SizeRef        Vec2
}

// WindowSettings is the persisted record of one window.
type WindowSettings struct {
	ID          ID
	Name        string
	Pos         Vec2
	Size        Vec2
	ViewportPos Vec2
	ViewportID  ID
	DockID      ID
	ClassID     ID
	DockOrder   int // -1 when unknown
	Collapsed   bool
}

// Settings aggregates every persisted record of a layout.
type Settings struct {
	Windows []WindowSettings
	Nodes   []DockNodeSettings
}

func (s *Settings) findWindow(id ID) *WindowSettings {
	for i := range s.Windows {
		if s.Windows[i].ID == id {
			return &s.Windows[i]
		}
	}
	return nil
}

func (s *Settings) findNode(id ID) *DockNodeSettings {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i]
		}
	}
	return nil
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	return &Settings{
		Windows: slices.Clone(s.Windows),
		Nodes:   slices.Clone(s.Nodes),
	}
}

// Validate checks that the node records form a forest: unique non-zero ids,
// existing parents listed before their children and at most two children each.
func (s *Settings) Validate() error {
	seen := make(map[ID]int, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.ID == 0 {
			return fmt.Errorf("node record %d: zero id: %w", i, ErrInvalidRecord)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("node 0x%08X: duplicate id: %w", uint32(n.ID), ErrInvalidRecord)
		}
		if n.ParentNodeID != 0 {
			count, ok := seen[n.ParentNodeID]
			if !ok {
				return fmt.Errorf("node 0x%08X: parent 0x%08X not listed before it: %w", uint32(n.ID), uint32(n.ParentNodeID), ErrInvalidRecord)
			}
			if count == 2 {
				return fmt.Errorf("node 0x%08X: parent 0x%08X already has two children: %w", uint32(n.ID), uint32(n.ParentNodeID), ErrInvalidRecord)
			}
			seen[n.ParentNodeID] = count + 1
		}
		seen[n.ID] = 0
	}
	return nil
}

// DockSettingsFindNodeSettings returns the persisted record of node id, or nil.
func (ctx *Context) DockSettingsFindNodeSettings(id ID) *DockNodeSettings {
	return ctx.settings.findNode(id)
}

// DockSettingsRenameNodeReferences points window records and undocked
// windows that remember oldID at newID.
func (ctx *Context) DockSettingsRenameNodeReferences(oldID, newID ID) {
	ctx.logger.Debug("dock: rename node references", "old", oldID, "new", newID)
	for i := range ctx.settings.Windows {
		if ctx.settings.Windows[i].DockID == oldID {
			ctx.settings.Windows[i].DockID = newID
		}
	}
	for _, w := range ctx.windows {
		if w.DockNodeID == 0 && w.DockID == oldID {
			w.DockID = newID
		}
	}
}

// DockSettingsRemoveNodeReferences forgets ids in every window record.
func (ctx *Context) DockSettingsRemoveNodeReferences(ids ...ID) {
	for i := range ctx.settings.Windows {
		if ws := &ctx.settings.Windows[i]; slices.Contains(ids, ws.DockID) {
			ws.DockID = 0
		}
	}
}

type pruneNodeData struct {
	countWindows      int
	countChildWindows int
	countChildNodes   int
	rootID            ID
}

// DockContextPruneUnusedSettings drops node records that would only produce
// empty or single-window floating hierarchies.
func (ctx *Context) DockContextPruneUnusedSettings() {
	if len(ctx.settings.Nodes) == 0 {
		return
	}
	pool := make(map[ID]*pruneNodeData, len(ctx.settings.Nodes))
	get := func(id ID) *pruneNodeData {
		d := pool[id]
		if d == nil {
			d = &pruneNodeData{}
			pool[id] = d
		}
		return d
	}
	for _, ns := range ctx.settings.Nodes {
		var parent *pruneNodeData
		if ns.ParentNodeID != 0 {
			parent = pool[ns.ParentNodeID]
		}
		d := get(ns.ID)
		d.rootID = ns.ID
		if parent != nil {
			d.rootID = parent.rootID
		}
		if ns.ParentNodeID != 0 {
			get(ns.ParentNodeID).countChildNodes++
		}
	}

	// Dockspaces hosted in a docked window keep that window's node alive.
	for _, ns := range ctx.settings.Nodes {
		if ns.ParentWindowID == 0 {
			continue
		}
		if ws := ctx.settings.findWindow(ns.ParentWindowID); ws != nil && ws.DockID != 0 {
			if d := pool[ws.DockID]; d != nil {
				d.countChildNodes++
			}
		}
	}
	for _, ws := range ctx.settings.Windows {
		if ws.DockID == 0 {
			continue
		}
		d := pool[ws.DockID]
		if d == nil {
			continue
		}
		d.countWindows++
		if root := pool[d.rootID]; root != nil {
			root.countChildWindows++
		}
	}

	kept := ctx.settings.Nodes[:0]
	var removed []ID
	for _, ns := range ctx.settings.Nodes {
		d := pool[ns.ID]
		root := pool[d.rootID]
		if root == nil {
			root = d
		}
		remove := false
		if d.countWindows <= 1 {
			floatingRoot := ns.ParentNodeID == 0 && d.countChildNodes == 0
			remove = remove || (d.countWindows == 1 && floatingRoot && !ns.Flags.Has(DockNodeCentralNode))
			remove = remove || (d.countWindows == 0 && floatingRoot)
			remove = remove || root.countChildWindows == 0
		}
		if remove {
			removed = append(removed, ns.ID)
			continue
		}
		kept = append(kept, ns)
	}
	ctx.settings.Nodes = kept
	if len(removed) > 0 {
		ctx.DockSettingsRemoveNodeReferences(removed...)
		ctx.logger.Debug("dock: pruned node settings", "count", len(removed))
	}
}

// DockContextBuildNodesFromSettings creates live nodes from records ordered
// parents first. Records that cannot be attached are dropped.
func (ctx *Context) DockContextBuildNodesFromSettings(records []DockNodeSettings) {
	for _, ns := range records {
		if ns.ID == 0 || ctx.dock.Nodes[ns.ID] != nil {
			ctx.logger.Warn("dock: skip node record", "id", ns.ID)
			continue
		}
		node := ctx.DockContextAddNode(ns.ID)
		if parent := ctx.dock.Nodes[ns.ParentNodeID]; parent != nil {
			switch {
			case parent.ChildIDs[0] == 0:
				parent.ChildIDs[0] = node.ID
				node.ParentID = parent.ID
			case parent.ChildIDs[1] == 0:
				parent.ChildIDs[1] = node.ID
				node.ParentID = parent.ID
			}
		}
		node.Pos = ns.Pos
		node.Size = ns.Size
		node.SizeRef = ns.SizeRef
		node.AuthorityForPos = true
		node.AuthorityForSize = true
		node.SelectedTabID = ns.SelectedTabID
		node.SplitAxis = ns.SplitAxis
		node.SetLocalFlags(ns.Flags & DockNodeSavedFlagsMask)

		// A rebuild may find the generated host window still around.
		root := ctx.DockNodeGetRootNode(node)
		if host := ctx.FindWindowByName(dockNodeHostWindowName(root.ID)); host != nil {
			node.HostWindowID = host.ID
		}
	}
	// A split whose second child never arrived degrades to a leaf.
	for _, ns := range records {
		node := ctx.dock.Nodes[ns.ID]
		if node != nil && node.ChildIDs[0] != 0 && node.ChildIDs[1] == 0 {
			ctx.logger.Warn("dock: split node record with one child", "id", node.ID)
			ctx.DockNodeTreeMerge(node, ctx.dock.Nodes[node.ChildIDs[0]])
		}
	}
}

// DockContextBuildAddWindowsToNodes docks every live window into the node
// its DockID names, restricted to the hierarchy of rootID when non-zero.
func (ctx *Context) DockContextBuildAddWindowsToNodes(rootID ID) {
	for _, w := range ctx.windows {
		if w.DockID == 0 || w.LastFrameActive < ctx.FrameCount-1 || w.DockNodeID != 0 {
			continue
		}
		node := ctx.dock.Nodes[w.DockID]
		if node == nil || node.IsSplitNode() {
			continue
		}
		if rootID == 0 || ctx.DockNodeGetRootNode(node).ID == rootID {
			ctx.DockNodeAddWindow(node, w, true)
		}
	}
}

// dockSettingsCollectNodes writes the live tree as records, each root
// followed depth-first by its descendants.
func (ctx *Context) dockSettingsCollectNodes() []DockNodeSettings {
	records := make([]DockNodeSettings, 0, len(ctx.dock.Nodes))
	var walk func(node *DockNode, depth int)
	walk = func(node *DockNode, depth int) {
		ns := DockNodeSettings{
			ID:            node.ID,
			ParentNodeID:  node.ParentID,
			SelectedTabID: node.SelectedTabID,
			SplitAxis:     AxisNone,
			Depth:         depth,
			Flags:         node.LocalFlags & DockNodeSavedFlagsMask,
			Pos:           node.Pos.Floor(),
			Size:          node.Size.Floor(),
			SizeRef:       node.SizeRef.Floor(),
		}
		if node.IsSplitNode() {
			ns.SplitAxis = node.SplitAxis
		}
		if node.IsDockSpace() {
			if host := ctx.FindWindowByID(node.HostWindowID); host != nil && host.Flags&WindowDockNodeHost == 0 {
				ns.ParentWindowID = host.ID
			}
		}
		records = append(records, ns)
		c0, c1 := ctx.dockNodeChildren(node)
		if c0 != nil {
			walk(c0, depth+1)
		}
		if c1 != nil {
			walk(c1, depth+1)
		}
	}
	for _, id := range ctx.DockNodes() {
		if node := ctx.dock.Nodes[id]; node.IsRootNode() {
			walk(node, 0)
		}
	}
	return records
}

// saveWindowSettings refreshes the window records from live windows.
func (ctx *Context) saveWindowSettings() {
	for _, w := range ctx.windows {
		if w.Flags&(WindowNoSavedSettings|WindowDockNodeHost) != 0 {
			continue
		}
		ws := ctx.settings.findWindow(w.ID)
		if ws == nil {
			ctx.settings.Windows = append(ctx.settings.Windows, WindowSettings{ID: w.ID, Name: w.Name})
			ws = &ctx.settings.Windows[len(ctx.settings.Windows)-1]
		}
		ws.Name = w.Name
		ws.Pos = w.Pos.Floor()
		ws.Size = w.SizeFull.Floor()
		ws.ViewportID = w.ViewportID
		ws.DockID = w.DockID
		ws.ClassID = w.WindowClass.ClassID
		ws.DockOrder = w.DockOrder
		ws.Collapsed = w.Collapsed
		w.settingsDirty = false
	}
}

func (ctx *Context) applyWindowSettings(w *Window, ws *WindowSettings) {
	w.Pos = ws.Pos
	if ws.Size.X > 0 && ws.Size.Y > 0 {
		w.Size = ws.Size
		w.SizeFull = ws.Size
	}
	w.ViewportID = ws.ViewportID
	w.DockID = ws.DockID
	w.DockOrder = ws.DockOrder
	w.Collapsed = ws.Collapsed
}

// MarkIniSettingsDirty starts the save debounce unless it is already running.
func (ctx *Context) MarkIniSettingsDirty() {
	if ctx.settingsDirtyTimer <= 0 {
		ctx.settingsDirtyTimer = ctx.Config.IniSavingRate
	}
}

func (ctx *Context) markWindowSettingsDirty(w *Window) {
	if w.Flags&WindowNoSavedSettings != 0 {
		return
	}
	w.settingsDirty = true
	ctx.MarkIniSettingsDirty()
}

// updateSettings drives the debounce: once the timer runs out the settings
// go to the registered saver, or WantSaveIniSettings is raised.
func (ctx *Context) updateSettings(dt float32) {
	if ctx.settingsDirtyTimer <= 0 {
		return
	}
	ctx.settingsDirtyTimer -= dt
	if ctx.settingsDirtyTimer > 0 {
		return
	}
	ctx.settingsDirtyTimer = 0
	if ctx.onSaveSettings != nil {
		ctx.onSaveSettings(ctx.SaveSettings())
		return
	}
	ctx.wantSaveIniSettings = true
}

// WantSaveIniSettings reports whether settings are due for saving and no
// saver callback was registered.
func (ctx *Context) WantSaveIniSettings() bool { return ctx.wantSaveIniSettings }

// ClearWantSaveIniSettings acknowledges a save performed by the caller.
func (ctx *Context) ClearWantSaveIniSettings() { ctx.wantSaveIniSettings = false }

// SaveSettings snapshots the live layout into a new Settings value.
func (ctx *Context) SaveSettings() *Settings {
	ctx.saveWindowSettings()
	ctx.settings.Nodes = ctx.dockSettingsCollectNodes()
	ctx.wantSaveIniSettings = false
	return ctx.settings.Clone()
}

// LoadSettings replaces the layout with s. Live nodes are discarded, live
// windows take their records and are docked into the rebuilt tree. Before
// any window exists, records that cannot produce a useful layout are pruned.
func (ctx *Context) LoadSettings(s *Settings) {
	ctx.DockContextClearNodes(0, true)
	loaded := s.Clone()
	slices.SortStableFunc(loaded.Nodes, func(a, b DockNodeSettings) int { return cmp.Compare(a.Depth, b.Depth) })
	ctx.settings = *loaded

	for _, w := range ctx.windows {
		if w.Flags&WindowNoSavedSettings != 0 {
			continue
		}
		if ws := ctx.settings.findWindow(w.ID); ws != nil {
			ctx.applyWindowSettings(w, ws)
		}
	}
	if len(ctx.windows) == 0 {
		ctx.DockContextPruneUnusedSettings()
	}
	ctx.DockContextBuildNodesFromSettings(ctx.settings.Nodes)
	ctx.DockContextBuildAddWindowsToNodes(0)
	ctx.settingsLoaded = true
	ctx.logger.Debug("settings loaded", "windows", len(ctx.settings.Windows), "nodes", len(ctx.settings.Nodes))
}
