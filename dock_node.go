package dockgui

import (
	"fmt"
	"slices"
	"strings"
)

// DockNodeFlags configures a dock node. The low bits are public and may be
// passed to DockSpace; the high bits are internal.
type DockNodeFlags uint32

const (
	DockNodeFlagsNone                DockNodeFlags = 0
	DockNodeKeepAliveOnly            DockNodeFlags = 1 << 0 // Don't display the dockspace node but keep it alive
	DockNodeNoDockingOverCentralNode DockNodeFlags = 1 << 2
	DockNodePassthruCentralNode      DockNodeFlags = 1 << 3 // Central node is transparent and lets inputs through
	DockNodeNoDockingSplit           DockNodeFlags = 1 << 4
	DockNodeNoResize                 DockNodeFlags = 1 << 5
	DockNodeAutoHideTabBar           DockNodeFlags = 1 << 6
	DockNodeNoUndocking              DockNodeFlags = 1 << 7

	DockNodeDockSpace                 DockNodeFlags = 1 << 10
	DockNodeCentralNode               DockNodeFlags = 1 << 11
	DockNodeNoTabBar                  DockNodeFlags = 1 << 12
	DockNodeHiddenTabBar              DockNodeFlags = 1 << 13
	DockNodeNoWindowMenuButton        DockNodeFlags = 1 << 14
	DockNodeNoCloseButton             DockNodeFlags = 1 << 15
	DockNodeNoResizeX                 DockNodeFlags = 1 << 16
	DockNodeNoResizeY                 DockNodeFlags = 1 << 17
	DockNodeDockedWindowsInFocusRoute DockNodeFlags = 1 << 18
	DockNodeNoDockingSplitOther       DockNodeFlags = 1 << 19 // Disable this node from splitting other windows/nodes
	DockNodeNoDockingOverMe           DockNodeFlags = 1 << 20 // Disable other windows/nodes from being docked over this node
	DockNodeNoDockingOverOther        DockNodeFlags = 1 << 21 // Disable this node from being docked over another window or node
	DockNodeNoDockingOverEmpty        DockNodeFlags = 1 << 22
)

// Flag masks governing inheritance, transfer on split/merge and persistence.
const (
	DockNodeNoResizeFlagsMask = DockNodeNoResize | DockNodeNoResizeX | DockNodeNoResizeY

	DockNodeNoDockingMask = DockNodeNoDockingSplit | DockNodeNoDockingSplitOther |
		DockNodeNoDockingOverMe | DockNodeNoDockingOverOther | DockNodeNoDockingOverEmpty

	DockNodeLocalFlagsMask = DockNodeNoTabBar | DockNodeNoWindowMenuButton | DockNodeNoCloseButton |
		DockNodeNoResizeFlagsMask | DockNodeNoDockingMask | DockNodeAutoHideTabBar | DockNodeNoUndocking |
		DockNodeDockSpace | DockNodeCentralNode | DockNodeHiddenTabBar | DockNodeDockedWindowsInFocusRoute

	// When splitting, these local flags are moved to the inheriting child, never duplicated.
	DockNodeLocalFlagsTransferMask = DockNodeLocalFlagsMask &^ DockNodeDockSpace

	DockNodeSavedFlagsMask = DockNodeNoResizeFlagsMask | DockNodeDockSpace | DockNodeCentralNode |
		DockNodeNoTabBar | DockNodeHiddenTabBar | DockNodeNoWindowMenuButton | DockNodeNoCloseButton

	// Shared flags propagated from the root to every node of a hierarchy.
	DockNodeSharedFlagsInheritMask = ^DockNodeFlags(0) &^ DockNodeLocalFlagsMask
)

// Has reports whether every bit of f2 is set.
func (f DockNodeFlags) Has(f2 DockNodeFlags) bool {
	return f&f2 == f2
}

// Any reports whether any bit of f2 is set.
func (f DockNodeFlags) Any(f2 DockNodeFlags) bool {
	return f&f2 != 0
}

type dockNodeFlagName struct {
	flag DockNodeFlags
	name string
}

var dockNodeFlagNames = []dockNodeFlagName{
	{DockNodeDockSpace, "DockSpace"},
	{DockNodeCentralNode, "CentralNode"},
	{DockNodeNoTabBar, "NoTabBar"},
	{DockNodeHiddenTabBar, "HiddenTabBar"},
	{DockNodeNoWindowMenuButton, "NoWindowMenuButton"},
	{DockNodeNoCloseButton, "NoCloseButton"},
	{DockNodeNoResize, "NoResize"},
	{DockNodeNoResizeX, "NoResizeX"},
	{DockNodeNoResizeY, "NoResizeY"},
	{DockNodePassthruCentralNode, "PassthruCentralNode"},
	{DockNodeAutoHideTabBar, "AutoHideTabBar"},
	{DockNodeNoUndocking, "NoUndocking"},
	{DockNodeNoDockingSplit, "NoDockingSplit"},
	{DockNodeKeepAliveOnly, "KeepAliveOnly"},
	{DockNodeNoDockingOverCentralNode, "NoDockingOverCentralNode"},
	{DockNodeNoDockingSplitOther, "NoDockingSplitOther"},
	{DockNodeNoDockingOverMe, "NoDockingOverMe"},
	{DockNodeNoDockingOverOther, "NoDockingOverOther"},
	{DockNodeNoDockingOverEmpty, "NoDockingOverEmpty"},
}

// ParseDockNodeFlags converts flag names as printed by String back into flags.
func ParseDockNodeFlags(names ...string) (DockNodeFlags, error) {
	var f DockNodeFlags
	for _, name := range names {
		i := slices.IndexFunc(dockNodeFlagNames, func(fn dockNodeFlagName) bool { return fn.name == name })
		if i < 0 {
			return 0, fmt.Errorf("unknown dock node flag %q", name)
		}
		f |= dockNodeFlagNames[i].flag
	}
	return f, nil
}

func (f DockNodeFlags) String() string {
	var parts []string
	for _, fn := range dockNodeFlagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// DockNodeState records why a node's host window is in its current state.
type DockNodeState int

const (
	DockNodeStateUnknown DockNodeState = iota
	DockNodeStateHostWindowHiddenBecauseSingleWindow
	DockNodeStateHostWindowHiddenBecauseWindowsAreResizing
	DockNodeStateHostWindowVisible
)

// DockNode is a node of the binary dock tree. A node is either a leaf hosting
// windows through a tab bar, or a split with exactly two children.
// Parent and child links are node ids resolved through the DockContext.
type DockNode struct {
	ID        ID
	ParentID  ID
	ChildIDs  [2]ID
	SplitAxis Axis
	State     DockNodeState

	// Hosted windows; order is not significant, tab order lives in the tab bar.
	Windows []*Window
	TabBar  *TabBar

	Pos     Vec2
	Size    Vec2
	SizeRef Vec2 // Last explicitly written size, basis for proportional splits

	SharedFlags         DockNodeFlags // Inherited from the root
	LocalFlags          DockNodeFlags
	LocalFlagsInWindows DockNodeFlags // Overrides aggregated from hosted windows' classes
	MergedFlags         DockNodeFlags // Union of the three layers above

	WindowClass WindowClass
	LastBgColor uint32

	// Root-only derived fields, refreshed by dockNodeUpdateForRootNode
	CentralNodeID         ID
	OnlyNodeWithWindowsID ID
	CountNodeWithWindows  int
	LastFocusedNodeID     ID

	HostWindowID    ID
	VisibleWindowID ID
	SelectedTabID   ID
	WantCloseTabID  ID
	RefViewportID   ID

	LastFrameAlive   int
	LastFrameActive  int
	LastFrameFocused int

	IsVisible              bool
	IsFocused              bool
	IsBgDrawnThisFrame     bool
	HasCloseButton         bool
	HasWindowMenuButton    bool
	HasCentralNodeChild    bool
	WantCloseAll           bool
	WantLockSizeOnce       bool
	WantMouseMove          bool
	WantHiddenTabBarUpdate bool
	WantHiddenTabBarToggle bool
	AuthorityForPos        bool
	AuthorityForSize       bool
}

func newDockNode(id ID) *DockNode {
	return &DockNode{
		ID:               id,
		SplitAxis:        AxisNone,
		LastFrameAlive:   -1,
		LastFrameActive:  -1,
		LastFrameFocused: -1,
		AuthorityForPos:  true,
		AuthorityForSize: true,
	}
}

// IsRootNode reports whether the node has no parent.
func (n *DockNode) IsRootNode() bool { return n.ParentID == 0 }

// IsDockSpace reports whether the node was created explicitly by DockSpace.
func (n *DockNode) IsDockSpace() bool { return n.MergedFlags.Has(DockNodeDockSpace) }

// IsFloatingNode reports whether the node is a root that is not a dockspace.
func (n *DockNode) IsFloatingNode() bool { return n.ParentID == 0 && !n.IsDockSpace() }

// IsCentralNode reports whether the node is its hierarchy's central node.
func (n *DockNode) IsCentralNode() bool { return n.MergedFlags.Has(DockNodeCentralNode) }

// IsHiddenTabBar reports whether the tab bar is hidden but can be restored.
func (n *DockNode) IsHiddenTabBar() bool { return n.MergedFlags.Has(DockNodeHiddenTabBar) }

// IsNoTabBar reports whether the node never shows a tab bar.
func (n *DockNode) IsNoTabBar() bool { return n.MergedFlags.Has(DockNodeNoTabBar) }

// IsSplitNode reports whether the node has children.
func (n *DockNode) IsSplitNode() bool { return n.ChildIDs[0] != 0 }

// IsLeafNode reports whether the node has no children.
func (n *DockNode) IsLeafNode() bool { return n.ChildIDs[0] == 0 }

// IsEmpty reports whether the node is a leaf without windows.
func (n *DockNode) IsEmpty() bool { return n.ChildIDs[0] == 0 && len(n.Windows) == 0 }

// Rect returns the node's rectangle.
func (n *DockNode) Rect() Rect { return RectFromPosSize(n.Pos, n.Size) }

// SetLocalFlags replaces the node's own flags and refreshes MergedFlags.
func (n *DockNode) SetLocalFlags(flags DockNodeFlags) {
	n.LocalFlags = flags
	n.UpdateMergedFlags()
}

// UpdateMergedFlags recomputes MergedFlags from the three flag layers.
// Every write to a flag layer must be followed by this call.
func (n *DockNode) UpdateMergedFlags() {
	n.MergedFlags = n.SharedFlags | n.LocalFlags | n.LocalFlagsInWindows
}

// hasWindow reports whether w is hosted by the node.
func (n *DockNode) hasWindow(w *Window) bool {
	for _, other := range n.Windows {
		if other == w {
			return true
		}
	}
	return false
}

// TabBarSelect selects tabID in the node's tab bar, if the node has one.
func (n *DockNode) TabBarSelect(tabID ID) {
	if n.TabBar != nil && n.TabBar.FindTabByID(tabID) != nil {
		n.TabBar.NextSelectedTabID = tabID
	}
	n.SelectedTabID = tabID
}

// The following pure functions centralize flag-driven decisions so that
// node update and drop preview logic can be tested in isolation.

// nodeWantsTabBar decides whether a leaf should display a tab bar.
func nodeWantsTabBar(flags DockNodeFlags, windowCount int, central bool) bool {
	if flags.Has(DockNodeNoTabBar) || flags.Has(DockNodeHiddenTabBar) {
		return false
	}
	if flags.Has(DockNodeAutoHideTabBar) && windowCount <= 1 {
		return false
	}
	return windowCount > 0 || central
}

// nodeTabBarRemovalThreshold is the window count under which a node drops its tab bar.
func nodeTabBarRemovalThreshold(central bool) int {
	if central {
		return 1
	}
	return 2
}

// nodeWantsCloseButton decides whether the node shows a close button.
func nodeWantsCloseButton(flags DockNodeFlags, anyWindowClosable bool) bool {
	return anyWindowClosable && !flags.Has(DockNodeNoCloseButton)
}

// nodeWantsWindowMenu decides whether the node shows its window list button.
func nodeWantsWindowMenu(flags DockNodeFlags) bool {
	return !flags.Has(DockNodeNoWindowMenuButton)
}

// nodeAllowsSplitDrop decides whether a payload may split the target node.
func nodeAllowsSplitDrop(hostFlags, payloadFlags DockNodeFlags, noSplitConfig bool) bool {
	if noSplitConfig {
		return false
	}
	return !hostFlags.Has(DockNodeNoDockingSplit) && !payloadFlags.Has(DockNodeNoDockingSplitOther)
}

// nodeAllowsCenterDrop decides whether a payload may be tabbed into the target node.
func nodeAllowsCenterDrop(hostFlags, payloadFlags DockNodeFlags, hostCentral, hostEmpty bool) bool {
	if hostFlags.Has(DockNodeNoDockingOverMe) {
		return false
	}
	if hostCentral && hostFlags.Has(DockNodeNoDockingOverCentralNode) {
		return false
	}
	if !hostEmpty && payloadFlags.Has(DockNodeNoDockingOverOther) {
		return false
	}
	if hostEmpty && payloadFlags.Has(DockNodeNoDockingOverEmpty) {
		return false
	}
	return true
}

// nodeResizeAllowed decides whether the splitter between children may move.
func nodeResizeAllowed(flags DockNodeFlags, axis Axis) bool {
	if flags.Has(DockNodeNoResize) {
		return false
	}
	if axis == AxisX && flags.Has(DockNodeNoResizeX) {
		return false
	}
	if axis == AxisY && flags.Has(DockNodeNoResizeY) {
		return false
	}
	return true
}
