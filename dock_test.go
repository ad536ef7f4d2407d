package dockgui

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floatingNode docks new windows named names into a fresh floating node.
func floatingNode(ctx *Context, names ...string) (*DockNode, []*Window) {
	node := ctx.DockContextAddNode(0)
	windows := make([]*Window, 0, len(names))
	for _, name := range names {
		w := ctx.CreateWindow(name, WindowFlagsNone)
		ctx.DockNodeAddWindow(node, w, true)
		windows = append(windows, w)
	}
	return node, windows
}

// requireTreeShape checks that every node has zero or two children and
// that MergedFlags is the union of the three flag layers.
func requireTreeShape(t *testing.T, ctx *Context) {
	t.Helper()
	for _, id := range ctx.DockNodes() {
		node := ctx.DockBuilderGetNode(id)
		require.Equal(t, node.ChildIDs[0] == 0, node.ChildIDs[1] == 0, "node 0x%08X has a single child", uint32(id))
		require.Equal(t, node.SharedFlags|node.LocalFlags|node.LocalFlagsInWindows, node.MergedFlags, "node 0x%08X merged flags", uint32(id))
		for _, childID := range node.ChildIDs {
			if childID != 0 {
				require.Equal(t, id, ctx.DockBuilderGetNode(childID).ParentID)
			}
		}
	}
}

// treeShape describes the hierarchy under id with window names per leaf.
func treeShape(ctx *Context, id ID) string {
	node := ctx.DockBuilderGetNode(id)
	if node == nil {
		return "nil"
	}
	if node.IsSplitNode() {
		return fmt.Sprintf("%s(%s %s)", node.SplitAxis, treeShape(ctx, node.ChildIDs[0]), treeShape(ctx, node.ChildIDs[1]))
	}
	names := make([]string, 0, len(node.Windows))
	for _, w := range node.Windows {
		names = append(names, w.Name)
	}
	slices.Sort(names)
	return "[" + strings.Join(names, ",") + "]"
}

func windowNames(windows []*Window) []string {
	names := make([]string, 0, len(windows))
	for _, w := range windows {
		names = append(names, w.Name)
	}
	return names
}

// drainDockRequests applies queued dock requests the way the dock phase of
// NewFrame does, without the per-node update that follows it.
func drainDockRequests(ctx *Context) {
	for i := range ctx.dock.Requests {
		if ctx.dock.Requests[i].Type == DockRequestDock {
			ctx.DockContextProcessDock(&ctx.dock.Requests[i])
		}
	}
	ctx.dock.Requests = ctx.dock.Requests[:0]
}

func TestSplitMergeRoundTrip(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY} {
		for inheritor := range 2 {
			t.Run(fmt.Sprintf("%s/%d", axis, inheritor), func(t *testing.T) {
				ctx, _ := testContext(t)
				node, windows := floatingNode(ctx, "A", "B")
				node.Pos = Vec2{X: 10, Y: 20}
				node.Size = Vec2{X: 500, Y: 300}
				node.SizeRef = node.Size

				ctx.DockNodeTreeSplit(node, axis, inheritor, 0.5, nil)
				requireTreeShape(t, ctx)
				require.True(t, node.IsSplitNode())
				assert.Equal(t, axis, node.SplitAxis)
				assert.Empty(t, node.Windows)
				heir := ctx.DockBuilderGetNode(node.ChildIDs[inheritor])
				other := ctx.DockBuilderGetNode(node.ChildIDs[inheritor^1])
				assert.ElementsMatch(t, windows, heir.Windows)
				assert.Empty(t, other.Windows)
				for _, w := range windows {
					assert.Equal(t, heir.ID, w.DockNodeID)
				}

				ctx.DockNodeTreeMerge(node, heir)
				requireTreeShape(t, ctx)
				require.True(t, node.IsLeafNode())
				assert.ElementsMatch(t, []string{"A", "B"}, windowNames(node.Windows))
				assert.InDelta(t, 500, node.Size.X, 1)
				assert.InDelta(t, 300, node.Size.Y, 1)
				assert.Equal(t, []ID{node.ID}, ctx.DockNodes(), "both children are deleted")
				require.NotNil(t, node.TabBar)
				assert.Equal(t, 2, node.TabBar.TabCount())
				for _, w := range windows {
					assert.Equal(t, node.ID, w.DockNodeID)
					assert.Equal(t, node.ID, w.DockID)
				}
			})
		}
	}
}

func TestSplitTransfersFlags(t *testing.T) {
	ctx, _ := testContext(t)
	node := ctx.DockContextAddNode(0)
	node.Size = Vec2{X: 600, Y: 400}
	node.SharedFlags = DockNodePassthruCentralNode
	node.SetLocalFlags(DockNodeDockSpace | DockNodeCentralNode | DockNodeNoCloseButton)

	ctx.DockNodeTreeSplit(node, AxisX, 1, 0.3, nil)
	requireTreeShape(t, ctx)

	heir := ctx.DockBuilderGetNode(node.ChildIDs[1])
	other := ctx.DockBuilderGetNode(node.ChildIDs[0])
	assert.Equal(t, DockNodeDockSpace, node.LocalFlags, "dockspace stays on the split node")
	assert.Equal(t, DockNodeCentralNode|DockNodeNoCloseButton, heir.LocalFlags)
	assert.Zero(t, other.LocalFlags)
	assert.True(t, heir.MergedFlags.Has(DockNodePassthruCentralNode), "shared flags reach children")
	assert.True(t, other.MergedFlags.Has(DockNodePassthruCentralNode))
	assert.Equal(t, heir.ID, node.CentralNodeID)
	assert.True(t, node.HasCentralNodeChild)
	assert.Same(t, heir, ctx.DockBuilderGetCentralNode(other.ID))

	ctx.DockNodeTreeMerge(node, other)
	requireTreeShape(t, ctx)
	assert.Equal(t, DockNodeDockSpace|DockNodeCentralNode|DockNodeNoCloseButton, node.LocalFlags)
	assert.Equal(t, node.ID, node.CentralNodeID)
}

func TestSplitHonorsMinSize(t *testing.T) {
	ctx, _ := testContext(t)
	node, _ := floatingNode(ctx, "A")
	node.Size = Vec2{X: 100, Y: 100}

	ctx.DockNodeTreeSplit(node, AxisX, 0, 0.01, nil)
	c0, c1 := ctx.dockNodeChildren(node)
	assert.Equal(t, float32(32), c0.SizeRef.X, "clamped to the minimum window size")
	assert.Equal(t, float32(66), c1.SizeRef.X)
	assert.Equal(t, float32(100), c0.SizeRef.Y, "other axis keeps the parent size")
}

func TestUpdatePosSizeConservesSize(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY} {
		for _, ratio := range []float32{0.1, 0.25, 0.5, 0.7, 0.9} {
			t.Run(fmt.Sprintf("%s/%g", axis, ratio), func(t *testing.T) {
				ctx, _ := testContext(t)
				node, _ := floatingNode(ctx, "A")
				node.Pos = Vec2{X: 5, Y: 7}
				node.Size = Vec2{X: 1000, Y: 600}
				ctx.DockNodeTreeSplit(node, axis, 0, ratio, nil)
				c0, c1 := ctx.dockNodeChildren(node)
				ctx.DockNodeAddWindow(c1, ctx.CreateWindow("B", WindowFlagsNone), true)

				ctx.DockNodeTreeUpdatePosSize(node, node.Pos, node.Size, nil)

				thickness := ctx.Config.SplitterThickness
				assert.Equal(t, node.Size.Axis(axis), c0.Size.Axis(axis)+c1.Size.Axis(axis)+thickness)
				assert.Equal(t, node.Size.Axis(axis.Other()), c0.Size.Axis(axis.Other()))
				assert.Equal(t, node.Size.Axis(axis.Other()), c1.Size.Axis(axis.Other()))
				assert.Equal(t, node.Pos, c0.Pos)
				assert.Equal(t, c0.Pos.Axis(axis)+c0.Size.Axis(axis)+thickness, c1.Pos.Axis(axis))
				assert.InDelta(t, (node.Size.Axis(axis)-thickness)*ratio, c0.Size.Axis(axis), 1)
			})
		}
	}
}

func TestUpdatePosSizeCentralAbsorbsRemainder(t *testing.T) {
	ctx, _ := testContext(t)
	inspector := ctx.CreateWindow("Inspector", WindowFlagsNone)
	root := HashString(0, "Main")
	ctx.DockBuilderAddNode(root, DockNodeDockSpace)
	ctx.DockBuilderSetNodeSize(root, Vec2{X: 1000, Y: 600})
	left, rest := ctx.DockBuilderSplitNode(root, DirLeft, 0.25)
	ctx.DockBuilderDockWindow("Inspector", left)
	ctx.DockBuilderFinish(root)
	require.Equal(t, left, inspector.DockNodeID)

	node := ctx.DockBuilderGetNode(root)
	leftNode, restNode := ctx.DockBuilderGetNode(left), ctx.DockBuilderGetNode(rest)
	require.True(t, restNode.IsCentralNode())

	ctx.DockNodeTreeUpdatePosSize(node, Vec2{}, Vec2{X: 1000, Y: 600}, nil)
	assert.Equal(t, float32(249), leftNode.Size.X)
	assert.Equal(t, float32(749), restNode.Size.X)

	ctx.DockNodeTreeUpdatePosSize(node, Vec2{}, Vec2{X: 1400, Y: 600}, nil)
	assert.Equal(t, float32(249), leftNode.Size.X, "explicit side keeps its size")
	assert.Equal(t, float32(1149), restNode.Size.X)
	assert.Equal(t, float32(251), restNode.Pos.X)
}

func TestUpdatePosSizeLockedChild(t *testing.T) {
	ctx, _ := testContext(t)
	node, _ := floatingNode(ctx, "A")
	node.Size = Vec2{X: 400, Y: 300}
	ctx.DockNodeTreeSplit(node, AxisY, 0, 0.5, nil)
	c0, c1 := ctx.dockNodeChildren(node)
	ctx.DockNodeAddWindow(c1, ctx.CreateWindow("B", WindowFlagsNone), true)
	ctx.DockNodeTreeUpdatePosSize(node, Vec2{}, node.Size, nil)
	require.Equal(t, float32(149), c0.Size.Y)

	c0.Size.Y = 100
	c0.WantLockSizeOnce = true
	ctx.DockNodeTreeUpdatePosSize(node, Vec2{}, Vec2{X: 400, Y: 500}, nil)
	assert.Equal(t, float32(100), c0.Size.Y)
	assert.Equal(t, float32(398), c1.Size.Y)
	assert.False(t, c0.WantLockSizeOnce, "lock lasts a single pass")
}

func TestUpdatePosSizeCentralKeepsMinimum(t *testing.T) {
	ctx, _ := testContext(t)
	ctx.CreateWindow("Inspector", WindowFlagsNone)
	root := HashString(0, "Main")
	ctx.DockBuilderAddNode(root, DockNodeDockSpace)
	ctx.DockBuilderSetNodeSize(root, Vec2{X: 1000, Y: 600})
	left, rest := ctx.DockBuilderSplitNode(root, DirLeft, 0.25)
	ctx.DockBuilderDockWindow("Inspector", left)
	ctx.DockBuilderFinish(root)

	node := ctx.DockBuilderGetNode(root)
	leftNode, restNode := ctx.DockBuilderGetNode(left), ctx.DockBuilderGetNode(rest)
	require.True(t, restNode.IsCentralNode())
	leftNode.SizeRef.X = 180

	ctx.DockNodeTreeUpdatePosSize(node, Vec2{}, Vec2{X: 200, Y: 600}, nil)
	assert.Equal(t, float32(134), leftNode.Size.X)
	assert.Equal(t, 2*ctx.Config.WindowMinSize.X, restNode.Size.X, "central side keeps two minimum widths")
}

func TestSplitterDragLocksFarNodes(t *testing.T) {
	ctx, in := testContext(t)
	root, _ := floatingNode(ctx, "A")
	root.Pos = Vec2{}
	root.Size = Vec2{X: 400, Y: 200}
	ctx.DockNodeTreeSplit(root, AxisX, 0, 0.5, nil)
	left, right := ctx.dockNodeChildren(root)
	ctx.DockNodeAddWindow(right, ctx.CreateWindow("B", WindowFlagsNone), true)
	ctx.DockNodeTreeSplit(left, AxisX, 0, 0.5, nil)
	far, near := ctx.dockNodeChildren(left)
	ctx.DockNodeAddWindow(near, ctx.CreateWindow("C", WindowFlagsNone), true)
	left.SizeRef.X, right.SizeRef.X = 199, 199
	far.SizeRef.X, near.SizeRef.X = 98, 99

	drag := func(x float32) {
		in.SetMousePos(x, 100)
		frame(ctx, in, testDT, func() {
			for _, name := range []string{"A", "B", "C"} {
				ctx.BeginWindow(name, WindowFlagsNone)
				ctx.EndWindow()
			}
		})
	}
	drag(200)
	require.Equal(t, float32(199), left.Size.X)
	require.Equal(t, float32(201), right.Pos.X)
	require.Equal(t, float32(98), far.Size.X)
	require.Equal(t, float32(100), near.Pos.X)

	in.SetMouseButton(MouseButtonLeft, true)
	drag(200)
	require.Equal(t, HashString(root.ID, "##Splitter"), ctx.ActiveID())

	drag(240)
	assert.Equal(t, float32(239), left.Size.X)
	assert.Equal(t, float32(241), right.Pos.X)
	assert.Equal(t, float32(159), right.Size.X)
	assert.Equal(t, float32(98), far.Size.X, "node away from the splitter keeps its size")
	assert.Equal(t, float32(139), near.Size.X)
	assert.False(t, far.WantLockSizeOnce, "lock lasts a single pass")

	drag(0)
	assert.Equal(t, float32(132), left.Size.X, "limited by the leaf touching the splitter")
	assert.Equal(t, float32(98), far.Size.X)
	assert.Equal(t, ctx.Config.WindowMinSize.X, near.Size.X)
	assert.Equal(t, float32(400), left.Size.X+right.Size.X+ctx.Config.SplitterThickness)
}

func TestDockSplitRight(t *testing.T) {
	ctx, in := testContext(t)
	nodeA, windowsA := floatingNode(ctx, "A")
	nodeB, windowsB := floatingNode(ctx, "B")
	a, b := windowsA[0], windowsB[0]
	require.Equal(t, Vec2{X: 400, Y: 300}, nodeA.Size)
	require.Equal(t, Vec2{X: 400, Y: 300}, nodeB.Size)

	ctx.DockContextQueueDock(nil, nodeB, a, DirRight, 0.3, false)
	frame(ctx, in, testDT, nil)
	requireTreeShape(t, ctx)
	assert.NotZero(t, nodeB.HostWindowID, "the split node gets a host window")

	require.True(t, nodeB.IsSplitNode())
	assert.Equal(t, AxisX, nodeB.SplitAxis)
	left, right := ctx.dockNodeChildren(nodeB)
	assert.Equal(t, []*Window{b}, left.Windows)
	assert.Equal(t, []*Window{a}, right.Windows)
	assert.InDelta(t, 0.3*400, right.Size.X, 2)
	assert.Equal(t, float32(400), left.Size.X+right.Size.X+ctx.Config.SplitterThickness, "total width unchanged")
	assert.Nil(t, ctx.DockContextFindNodeByID(nodeA.ID), "emptied payload node is deleted")
	assert.Equal(t, right.ID, a.DockID)
	assert.Equal(t, left.ID, b.DockID)
}

// dragTitleBarOnto submits floating windows "A" and "B", drags A by its title
// bar and releases it at drop. The preview is the one resolved on the last
// frame before the release.
func dragTitleBarOnto(t *testing.T, ctx *Context, in *InputState, drop Vec2) (a, b *Window, preview DockPreviewData) {
	t.Helper()
	submit := func() {
		ctx.BeginWindow("A", WindowFlagsNone)
		ctx.EndWindow()
		ctx.BeginWindow("B", WindowFlagsNone)
		ctx.EndWindow()
	}
	frame(ctx, in, testDT, func() {
		ctx.SetNextWindowPos(Vec2{X: 0, Y: 0})
		ctx.SetNextWindowSize(Vec2{X: 300, Y: 200})
		ctx.BeginWindow("A", WindowFlagsNone)
		ctx.EndWindow()
		ctx.SetNextWindowPos(Vec2{X: 400, Y: 300})
		ctx.SetNextWindowSize(Vec2{X: 300, Y: 200})
		ctx.BeginWindow("B", WindowFlagsNone)
		ctx.EndWindow()
	})
	a, b = ctx.FindWindowByName("A"), ctx.FindWindowByName("B")

	in.SetMousePos(50, 10)
	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, submit)
	in.SetMousePos(70, 10)
	frame(ctx, in, testDT, submit)
	require.Equal(t, a, ctx.MovingWindow())
	require.Equal(t, a, ctx.DragDropPayloadWindow())

	in.SetMousePos(drop.X, drop.Y)
	frame(ctx, in, testDT, submit)
	var ok bool
	preview, ok = ctx.DragDropPreview()
	require.True(t, ok, "B is resolved as the drop target")

	in.SetMouseButton(MouseButtonLeft, false)
	frame(ctx, in, testDT, submit)
	assert.False(t, ctx.DragDropActive())
	assert.Nil(t, ctx.MovingWindow())
	frame(ctx, in, testDT, submit)
	return a, b, preview
}

func TestDragTitleBarDocksIntoCenter(t *testing.T) {
	ctx, in := testContext(t)
	a, b, preview := dragTitleBarOnto(t, ctx, in, Vec2{X: 550, Y: 400})
	assert.True(t, preview.IsDropAllowed)
	assert.True(t, preview.IsCenterAvailable)
	assert.True(t, preview.IsSplitDirExplicit)
	assert.Equal(t, DirNone, preview.SplitDir)
	assert.False(t, preview.DropRectsDraw[0].IsInverted(), "center marker is shown")

	requireTreeShape(t, ctx)
	require.NotZero(t, b.DockNodeID)
	assert.Equal(t, b.DockNodeID, a.DockNodeID)
	node := ctx.DockBuilderGetNode(a.DockNodeID)
	assert.Equal(t, "[A,B]", treeShape(ctx, node.ID))
	assert.Equal(t, Vec2{X: 400, Y: 300}, node.Pos, "the node takes the target's place")
	require.NotNil(t, node.TabBar)
	assert.Equal(t, 2, node.TabBar.TabCount())
	assert.Equal(t, a.TabID, node.SelectedTabID, "the dropped window is selected")
	assert.NotZero(t, node.HostWindowID)
	assert.True(t, a.DockNodeIsVisible)
}

func TestDragTitleBarSplitsTarget(t *testing.T) {
	ctx, in := testContext(t)
	a, b, preview := dragTitleBarOnto(t, ctx, in, Vec2{X: 600, Y: 400})
	assert.True(t, preview.IsDropAllowed)
	assert.Equal(t, DirRight, preview.SplitDir)
	assert.InDelta(t, 0.5, preview.SplitRatio, 0.01)
	assert.Equal(t, Vec2{X: 551, Y: 300}, preview.FutureNode.Pos)
	assert.Equal(t, Vec2{X: 149, Y: 200}, preview.FutureNode.Size)

	requireTreeShape(t, ctx)
	left, right := ctx.DockBuilderGetNode(b.DockNodeID), ctx.DockBuilderGetNode(a.DockNodeID)
	require.NotNil(t, left)
	require.NotNil(t, right)
	require.Equal(t, left.ParentID, right.ParentID)
	root := ctx.DockBuilderGetNode(left.ParentID)
	require.NotNil(t, root)
	assert.Equal(t, "X([B] [A])", treeShape(ctx, root.ID))
	assert.Less(t, left.Pos.X, right.Pos.X)
	assert.Equal(t, float32(300), left.Size.X+right.Size.X+ctx.Config.SplitterThickness)
	assert.NotZero(t, root.HostWindowID)
}

func TestDragTitleBarOffMarkersNeedsTitleBar(t *testing.T) {
	ctx, in := testContext(t)
	// Inside B, away from every marker and from its title bar.
	a, b, preview := dragTitleBarOnto(t, ctx, in, Vec2{X: 420, Y: 480})
	assert.False(t, preview.IsSplitDirExplicit)
	assert.False(t, preview.IsDropAllowed)
	assert.Zero(t, a.DockNodeID)
	assert.Zero(t, b.DockNodeID)
}

func TestTabDragUndocksWindow(t *testing.T) {
	ctx, in := testContext(t)
	node, windows := floatingNode(ctx, "A", "B")
	a, b := windows[0], windows[1]
	submit := func() {
		ctx.BeginWindow("A", WindowFlagsNone)
		ctx.EndWindow()
		ctx.BeginWindow("B", WindowFlagsNone)
		ctx.EndWindow()
	}
	frame(ctx, in, testDT, submit)
	require.NotZero(t, node.HostWindowID)
	require.NotNil(t, node.TabBar)
	tab := node.TabBar.FindTabByID(b.TabID)
	require.NotNil(t, tab)
	grab := node.TabBar.TabRect(tab).Center()

	in.SetMousePos(grab.X, grab.Y)
	in.SetMouseButton(MouseButtonLeft, true)
	frame(ctx, in, testDT, submit)
	require.Equal(t, b.TabID, ctx.ActiveID(), "selecting the tab keeps it held")

	in.SetMousePos(grab.X, grab.Y+80)
	for range 3 {
		frame(ctx, in, testDT, submit)
	}
	assert.Zero(t, b.DockNodeID, "dragged tab leaves its node")
	assert.Zero(t, b.DockID, "and forgets it")
	assert.Equal(t, b, ctx.MovingWindow())
	assert.Equal(t, b, ctx.DragDropPayloadWindow())
	assert.Equal(t, []*Window{a}, node.Windows)
	assert.Equal(t, node.ID, a.DockNodeID)
}

func TestDockIntoCenterCreatesTabBar(t *testing.T) {
	ctx, _ := testContext(t)
	target := ctx.CreateWindow("Target", WindowFlagsNone)
	payload := ctx.CreateWindow("Payload", WindowFlagsNone)

	ctx.DockContextQueueDock(target, nil, payload, DirNone, 0, false)
	drainDockRequests(ctx)
	requireTreeShape(t, ctx)

	require.NotZero(t, target.DockNodeID)
	node := ctx.DockBuilderGetNode(target.DockNodeID)
	assert.Equal(t, node.ID, payload.DockNodeID)
	require.NotNil(t, node.TabBar)
	assert.Equal(t, 2, node.TabBar.TabCount())
	assert.Equal(t, payload.TabID, node.SelectedTabID, "the payload tab is selected")
	assert.True(t, payload.DockIsActive)
}

func TestCloseTabUndocksWindow(t *testing.T) {
	ctx, _ := testContext(t)
	node, windows := floatingNode(ctx, "One", "Two", "Three")
	ctx.FrameCount = 5
	node.LastFrameActive = 4
	for _, w := range windows {
		w.LastFrameActive = 5
	}
	w2 := windows[1]
	require.NotNil(t, node.TabBar)
	node.WantCloseTabID = w2.TabID

	ctx.DockNodeUpdateFlagsAndCollapse(node)

	assert.Zero(t, w2.DockNodeID)
	assert.Zero(t, w2.DockID, "closing forgets the persisted node")
	assert.False(t, w2.Open)
	assert.Equal(t, []*Window{windows[0], windows[2]}, node.Windows)
	require.NotNil(t, node.TabBar, "two windows keep the tab bar")
	assert.Nil(t, node.TabBar.FindTabByID(w2.TabID))
	assert.Equal(t, 2, node.TabBar.TabCount())
	assert.Zero(t, node.WantCloseTabID)
	for _, w := range []*Window{windows[0], windows[2]} {
		assert.Equal(t, node.ID, w.DockNodeID)
	}
}

func TestInactiveWindowKeepsHome(t *testing.T) {
	ctx, _ := testContext(t)
	node, windows := floatingNode(ctx, "One", "Two")
	ctx.FrameCount = 5
	node.LastFrameActive = 4
	windows[0].LastFrameActive = 5
	windows[1].LastFrameActive = 2

	ctx.DockNodeUpdateFlagsAndCollapse(node)

	assert.Zero(t, windows[1].DockNodeID)
	assert.Equal(t, node.ID, windows[1].DockID, "a window that stopped submitting remembers its node")
	assert.True(t, windows[1].Open)
	assert.Equal(t, []*Window{windows[0]}, node.Windows)
	assert.Nil(t, node.TabBar, "a single window drops the tab bar")
}

func TestRemoveWindowDeletesEmptyNode(t *testing.T) {
	ctx, _ := testContext(t)
	node, windows := floatingNode(ctx, "Only")
	ctx.DockNodeRemoveWindow(node, windows[0], 0)
	assert.Nil(t, ctx.DockContextFindNodeByID(node.ID))

	node, windows = floatingNode(ctx, "Home")
	ctx.DockNodeRemoveWindow(node, windows[0], node.ID)
	assert.NotNil(t, ctx.DockContextFindNodeByID(node.ID), "kept while the window calls it home")

	central := ctx.DockContextAddNode(0)
	central.SetLocalFlags(DockNodeCentralNode)
	w := ctx.CreateWindow("Central", WindowFlagsNone)
	ctx.DockNodeAddWindow(central, w, true)
	ctx.DockNodeRemoveWindow(central, w, 0)
	assert.NotNil(t, ctx.DockContextFindNodeByID(central.ID), "central nodes survive empty")
	assert.Nil(t, central.TabBar)
}

func TestRemovedNodeCancelsRequests(t *testing.T) {
	ctx, _ := testContext(t)
	empty := ctx.DockContextAddNode(0)
	payload := ctx.CreateWindow("Payload", WindowFlagsNone)
	ctx.DockContextQueueDock(nil, empty, payload, DirNone, 0, false)
	ctx.DockContextRemoveNode(empty, false)

	require.Len(t, ctx.dock.Requests, 1)
	assert.Equal(t, DockRequestNone, ctx.dock.Requests[0].Type)
	drainDockRequests(ctx)
	assert.Zero(t, payload.DockNodeID, "cancelled request is a no-op")

	node, _ := floatingNode(ctx, "A")
	node.Size = Vec2{X: 400, Y: 300}
	ctx.DockNodeTreeSplit(node, AxisX, 0, 0.5, nil)
	c0, c1 := ctx.dockNodeChildren(node)
	ctx.DockContextQueueUndockNode(c0)
	ctx.DockContextQueueDock(nil, c1, ctx.CreateWindow("B", WindowFlagsNone), DirNone, 0, false)
	ctx.DockNodeTreeMerge(node, c0)
	for _, req := range ctx.dock.Requests {
		assert.Equal(t, DockRequestNone, req.Type, "merged children cancel their requests")
	}
	ctx.DockContextNewFrameUpdateUndocking()
	assert.True(t, node.IsLeafNode())
}

func TestProcessDockMissingTargetNode(t *testing.T) {
	ctx, _ := testContext(t)
	payload := ctx.CreateWindow("Payload", WindowFlagsNone)
	ctx.DockContextProcessDock(&DockRequest{Type: DockRequestDock, DockTargetNodeID: 0x1234, DockPayload: payload})
	assert.Empty(t, ctx.DockNodes())
	assert.Zero(t, payload.DockNodeID)
}

func TestUndockCentralNodeKeepsSlot(t *testing.T) {
	ctx, _ := testContext(t)
	root := HashString(0, "Main")
	ctx.DockBuilderAddNode(root, DockNodeDockSpace)
	ctx.DockBuilderSetNodeSize(root, Vec2{X: 600, Y: 400})
	w := ctx.CreateWindow("Doc", WindowFlagsNone)
	ctx.DockBuilderDockWindow("Doc", root)
	ctx.DockBuilderFinish(root)
	central := ctx.DockBuilderGetNode(root)
	require.Equal(t, root, w.DockNodeID)

	ctx.DockContextProcessUndockNode(central)

	assert.NotNil(t, ctx.DockBuilderGetNode(root), "central slot is never destroyed")
	assert.Empty(t, central.Windows)
	moved := ctx.DockBuilderGetNode(w.DockNodeID)
	require.NotNil(t, moved)
	assert.NotEqual(t, root, moved.ID)
	assert.True(t, moved.IsFloatingNode())
	assert.True(t, moved.WantMouseMove)
}

func TestUndockWindowWithoutClamp(t *testing.T) {
	ctx, _ := testContext(t)
	ctx.Config.FixLargeWindowsWhenUndocking = false
	ctx.DisplaySize = Vec2{X: 800, Y: 600}
	node, windows := floatingNode(ctx, "Big", "Other")
	w := windows[0]
	w.SizeFull = Vec2{X: 2000, Y: 1000}

	ctx.DockContextProcessUndockWindow(w, true)
	assert.Equal(t, Vec2{X: 2000, Y: 1000}, w.Size)
	assert.Zero(t, w.DockID)
	assert.Equal(t, []*Window{windows[1]}, node.Windows)
}

func TestSettingsRoundTrip(t *testing.T) {
	names := []string{"Inspector", "Console", "Scene", "Tools"}
	root := HashString(0, "Main")

	ctx, _ := testContext(t)
	for _, name := range names {
		ctx.CreateWindow(name, WindowFlagsNone)
	}
	ctx.DockBuilderAddNode(root, DockNodeDockSpace)
	ctx.DockBuilderSetNodeSize(root, Vec2{X: 1280, Y: 720})
	left, rest := ctx.DockBuilderSplitNode(root, DirLeft, 0.25)
	bottom, center := ctx.DockBuilderSplitNode(rest, DirDown, 0.3)
	ctx.DockBuilderDockWindow("Inspector", left)
	ctx.DockBuilderDockWindow("Tools", left)
	ctx.DockBuilderDockWindow("Console", bottom)
	ctx.DockBuilderDockWindow("Scene", center)
	ctx.DockBuilderFinish(root)
	requireTreeShape(t, ctx)
	want := treeShape(ctx, root)
	require.Equal(t, "X([Inspector,Tools] Y([Scene] [Console]))", want)

	s := ctx.SaveSettings()
	require.NoError(t, s.Validate())
	assert.Len(t, s.Nodes, 5)

	loaded, _ := testContext(t)
	for _, name := range names {
		loaded.CreateWindow(name, WindowFlagsNone)
	}
	loaded.LoadSettings(s)
	requireTreeShape(t, loaded)
	assert.Equal(t, ctx.DockNodes(), loaded.DockNodes())
	assert.Equal(t, want, treeShape(loaded, root))
	assert.Equal(t, center, loaded.DockBuilderGetCentralNode(root).ID)
	assert.True(t, loaded.DockBuilderGetNode(root).IsDockSpace())
	for _, name := range names {
		assert.Equal(t, ctx.FindWindowByName(name).DockNodeID, loaded.FindWindowByName(name).DockNodeID, name)
	}
}

func TestLoadSettingsPrunesUnusedNodes(t *testing.T) {
	w1, w2, w3 := HashString(0, "W1"), HashString(0, "W2"), HashString(0, "W3")
	s := &Settings{
		Windows: []WindowSettings{
			{ID: w1, Name: "W1", DockID: 2, DockOrder: -1},
			{ID: w2, Name: "W2", DockID: 3, DockOrder: -1},
			{ID: w3, Name: "W3", DockID: 0x20, DockOrder: -1},
		},
		Nodes: []DockNodeSettings{
			{ID: 1, SplitAxis: AxisX, Flags: DockNodeDockSpace, Size: Vec2{X: 800, Y: 600}, SizeRef: Vec2{X: 800, Y: 600}},
			{ID: 2, ParentNodeID: 1, Depth: 1, SizeRef: Vec2{X: 200, Y: 600}},
			{ID: 3, ParentNodeID: 1, Depth: 1, Flags: DockNodeCentralNode, SizeRef: Vec2{X: 598, Y: 600}},
			{ID: 0x10, Pos: Vec2{X: 40, Y: 40}, Size: Vec2{X: 300, Y: 200}},
			{ID: 0x20, Pos: Vec2{X: 80, Y: 80}, Size: Vec2{X: 300, Y: 200}},
		},
	}

	ctx, _ := testContext(t)
	ctx.LoadSettings(s)
	requireTreeShape(t, ctx)

	assert.Equal(t, []ID{1, 2, 3}, ctx.DockNodes())
	saved := ctx.SaveSettings()
	assert.Zero(t, saved.findWindow(w3).DockID, "references to pruned nodes are dropped")
	assert.Equal(t, ID(2), saved.findWindow(w1).DockID)
	assert.Len(t, s.Nodes, 5, "input is not modified")
}

func TestBuildNodesFromSettingsDegradesHalfSplit(t *testing.T) {
	ctx, _ := testContext(t)
	ctx.DockContextBuildNodesFromSettings([]DockNodeSettings{
		{ID: 1, SplitAxis: AxisY, Size: Vec2{X: 100, Y: 100}},
		{ID: 2, ParentNodeID: 1, Depth: 1},
		{ID: 3, ParentNodeID: 0x99, Depth: 1},
	})
	requireTreeShape(t, ctx)
	assert.Equal(t, []ID{1, 3}, ctx.DockNodes())
	assert.True(t, ctx.DockBuilderGetNode(1).IsLeafNode())
	assert.True(t, ctx.DockBuilderGetNode(3).IsRootNode(), "unknown parent makes a new root")
}

func TestSettingsValidate(t *testing.T) {
	tests := map[string][]DockNodeSettings{
		"zero id":        {{ID: 0}},
		"duplicate":      {{ID: 1}, {ID: 1}},
		"parent later":   {{ID: 2, ParentNodeID: 1}, {ID: 1}},
		"three children": {{ID: 1}, {ID: 2, ParentNodeID: 1}, {ID: 3, ParentNodeID: 1}, {ID: 4, ParentNodeID: 1}},
	}
	for name, nodes := range tests {
		t.Run(name, func(t *testing.T) {
			err := (&Settings{Nodes: nodes}).Validate()
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
	assert.NoError(t, (&Settings{Nodes: []DockNodeSettings{{ID: 1}, {ID: 2, ParentNodeID: 1}, {ID: 3, ParentNodeID: 1}}}).Validate())
}

func TestDockBuilderCopyDockSpace(t *testing.T) {
	ctx, _ := testContext(t)
	src, dst := HashString(0, "Src"), HashString(0, "Dst")
	ctx.DockBuilderAddNode(src, DockNodeDockSpace)
	ctx.DockBuilderSetNodeSize(src, Vec2{X: 800, Y: 600})
	left, _ := ctx.DockBuilderSplitNode(src, DirLeft, 0.5)
	ctx.DockBuilderDockWindow("Props", left)

	ctx.DockBuilderCopyDockSpace(src, dst, [][2]string{{"Props", "Props2"}})
	requireTreeShape(t, ctx)

	copied := ctx.DockBuilderGetNode(dst)
	require.NotNil(t, copied)
	require.True(t, copied.IsSplitNode())
	assert.Equal(t, AxisX, copied.SplitAxis)
	ws := ctx.settings.findWindow(HashString(0, "Props2"))
	require.NotNil(t, ws)
	assert.Equal(t, copied.ChildIDs[0], ws.DockID, "copied window follows the copied node")
	assert.Equal(t, left, ctx.settings.findWindow(HashString(0, "Props")).DockID)
}

func TestDockBuilderRemoveNode(t *testing.T) {
	ctx, _ := testContext(t)
	root := HashString(0, "Main")
	w := ctx.CreateWindow("Panel", WindowFlagsNone)
	ctx.DockBuilderAddNode(root, DockNodeDockSpace)
	ctx.DockBuilderSetNodeSize(root, Vec2{X: 800, Y: 600})
	left, _ := ctx.DockBuilderSplitNode(root, DirLeft, 0.5)
	ctx.DockBuilderDockWindow("Panel", left)
	ctx.DockBuilderFinish(root)
	require.Equal(t, left, w.DockNodeID)

	ctx.DockBuilderRemoveNode(root)
	assert.Empty(t, ctx.DockNodes())
	assert.Zero(t, w.DockNodeID)
	assert.False(t, ctx.IsWindowDocked(w))
}

func TestDockSpaceSubmission(t *testing.T) {
	ctx, in := testContext(t)
	id := HashString(0, "Space")
	var got ID
	frame(ctx, in, testDT, func() {
		ctx.BeginWindow("Host", WindowFlagsNone)
		got = ctx.DockSpace(id, Vec2{X: 300, Y: 200}, DockNodeFlagsNone, nil)
		ctx.EndWindow()
	})
	require.Equal(t, id, got)

	node := ctx.DockBuilderGetNode(id)
	require.NotNil(t, node)
	assert.True(t, node.IsDockSpace())
	assert.True(t, node.IsCentralNode(), "a lone dockspace leaf is central")
	assert.Equal(t, Vec2{X: 300, Y: 200}, node.Size)
	host := ctx.FindWindowByID(node.HostWindowID)
	require.NotNil(t, host)
	assert.Equal(t, fmt.Sprintf("Host/DockSpace_%08X", uint32(id)), host.Name)
	assert.Equal(t, node.ID, host.DockNodeAsHostID)
	assert.Equal(t, ctx.FrameCount, node.LastFrameActive)
}

func TestParseDockNodeFlags(t *testing.T) {
	f, err := ParseDockNodeFlags("NoTabBar", "CentralNode")
	require.NoError(t, err)
	assert.Equal(t, DockNodeNoTabBar|DockNodeCentralNode, f)
	assert.Contains(t, f.String(), "NoTabBar")

	_, err = ParseDockNodeFlags("Bogus")
	assert.Error(t, err)
}

func TestFlagDecisions(t *testing.T) {
	assert.True(t, nodeWantsTabBar(DockNodeFlagsNone, 1, false))
	assert.False(t, nodeWantsTabBar(DockNodeAutoHideTabBar, 1, false))
	assert.True(t, nodeWantsTabBar(DockNodeAutoHideTabBar, 2, false))
	assert.True(t, nodeWantsTabBar(DockNodeFlagsNone, 0, true))
	assert.False(t, nodeWantsTabBar(DockNodeHiddenTabBar, 3, false))

	assert.Equal(t, 2, nodeTabBarRemovalThreshold(false))
	assert.Equal(t, 1, nodeTabBarRemovalThreshold(true))

	assert.False(t, nodeAllowsSplitDrop(DockNodeNoDockingSplit, 0, false))
	assert.False(t, nodeAllowsSplitDrop(0, DockNodeNoDockingSplitOther, false))
	assert.False(t, nodeAllowsSplitDrop(0, 0, true))
	assert.True(t, nodeAllowsSplitDrop(0, 0, false))

	assert.False(t, nodeAllowsCenterDrop(DockNodeNoDockingOverMe, 0, false, false))
	assert.False(t, nodeAllowsCenterDrop(DockNodeNoDockingOverCentralNode, 0, true, true))
	assert.False(t, nodeAllowsCenterDrop(0, DockNodeNoDockingOverEmpty, false, true))
	assert.True(t, nodeAllowsCenterDrop(0, DockNodeNoDockingOverOther, false, true))

	assert.False(t, nodeResizeAllowed(DockNodeNoResizeX, AxisX))
	assert.True(t, nodeResizeAllowed(DockNodeNoResizeX, AxisY))
}
