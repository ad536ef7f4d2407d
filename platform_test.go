package dockgui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/go-theft-auto/dockgui"
	"github.com/go-theft-auto/dockgui/internal/mocks"
)

func newContext(t *testing.T, opts ...dockgui.ContextOption) *dockgui.Context {
	t.Helper()
	cfg := dockgui.DefaultConfig()
	cfg.DebugAsserts = true
	ctx := dockgui.NewContext(append([]dockgui.ContextOption{dockgui.WithConfig(cfg)}, opts...)...)
	t.Cleanup(ctx.Shutdown)
	return ctx
}

func TestUndockClampsToWorkArea(t *testing.T) {
	ctrl := gomock.NewController(t)
	platform := mocks.NewMockPlatform(ctrl)
	platform.EXPECT().
		WorkArea(dockgui.ID(0)).
		Return(dockgui.Rect{Max: dockgui.Vec2{X: 1000, Y: 500}}).
		Times(1)

	ctx := newContext(t, dockgui.WithPlatform(platform))
	node := ctx.DockContextAddNode(0)
	big := ctx.CreateWindow("Big", dockgui.WindowFlagsNone)
	ctx.DockNodeAddWindow(node, big, true)
	big.SizeFull = dockgui.Vec2{X: 1600, Y: 300}

	ctx.DockContextProcessUndockWindow(big, false)

	assert.Equal(t, dockgui.Vec2{X: 900, Y: 300}, big.Size, "width clamped to 90% of the work area")
	assert.Equal(t, big.Size, big.SizeFull)
	assert.False(t, ctx.IsWindowDocked(big))
	assert.Equal(t, node.ID, ctx.GetWindowDockID(big), "undocking without clearing keeps the home node")
}

func TestUndockNodeMergesSibling(t *testing.T) {
	ctrl := gomock.NewController(t)
	platform := mocks.NewMockPlatform(ctrl)
	platform.EXPECT().
		WorkArea(gomock.Any()).
		Return(dockgui.Rect{Max: dockgui.Vec2{X: 400, Y: 400}}).
		Times(1)

	ctx := newContext(t, dockgui.WithPlatform(platform))
	inspector := ctx.CreateWindow("Inspector", dockgui.WindowFlagsNone)
	scene := ctx.CreateWindow("Scene", dockgui.WindowFlagsNone)
	root := dockgui.HashString(0, "Main")
	ctx.DockBuilderAddNode(root, dockgui.DockNodeDockSpace)
	ctx.DockBuilderSetNodeSize(root, dockgui.Vec2{X: 1000, Y: 600})
	left, rest := ctx.DockBuilderSplitNode(root, dockgui.DirLeft, 0.5)
	ctx.DockBuilderDockWindow("Inspector", left)
	ctx.DockBuilderDockWindow("Scene", rest)
	ctx.DockBuilderFinish(root)
	rootNode := ctx.DockBuilderGetNode(root)
	ctx.DockNodeTreeUpdatePosSize(rootNode, rootNode.Pos, rootNode.Size, nil)

	leftNode := ctx.DockBuilderGetNode(left)
	require.Equal(t, float32(499), leftNode.Size.X)
	ctx.DockContextProcessUndockNode(leftNode)

	assert.True(t, rootNode.IsLeafNode(), "sibling merged into the vacated parent")
	assert.True(t, rootNode.IsCentralNode())
	assert.Equal(t, root, scene.DockNodeID)
	assert.Nil(t, ctx.DockBuilderGetNode(rest))

	assert.True(t, leftNode.IsFloatingNode())
	assert.Equal(t, left, inspector.DockNodeID)
	assert.Equal(t, dockgui.Vec2{X: 360, Y: 360}, leftNode.Size)
	assert.True(t, leftNode.WantMouseMove)
}

func TestUndockClampDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: the work area must not be queried.
	platform := mocks.NewMockPlatform(ctrl)

	cfg := dockgui.DefaultConfig()
	cfg.FixLargeWindowsWhenUndocking = false
	ctx := dockgui.NewContext(dockgui.WithConfig(cfg), dockgui.WithPlatform(platform))
	defer ctx.Shutdown()

	node := ctx.DockContextAddNode(0)
	w := ctx.CreateWindow("Big", dockgui.WindowFlagsNone)
	ctx.DockNodeAddWindow(node, w, true)
	w.SizeFull = dockgui.Vec2{X: 5000, Y: 5000}
	ctx.DockContextProcessUndockWindow(w, true)
	assert.Equal(t, dockgui.Vec2{X: 5000, Y: 5000}, w.Size)
	assert.Zero(t, ctx.GetWindowDockID(w))
}

func TestGUIRendersFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)

	g := dockgui.New(renderer)
	defer g.Shutdown()

	ctx := g.Begin(dockgui.NewInputState(), dockgui.Vec2{X: 800, Y: 600}, 1.0/60)
	require.NotNil(t, ctx.DrawList)
	renderer.EXPECT().Render(ctx.DrawList).Return(nil).Times(1)
	require.NoError(t, g.End())

	renderer.EXPECT().Resize(1024, 768).Times(1)
	g.Resize(1024, 768)
}

func TestGUIRenderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	boom := errors.New("device lost")
	renderer.EXPECT().Render(gomock.Any()).Return(boom).Times(1)

	g := dockgui.New(renderer)
	defer g.Shutdown()
	g.Begin(nil, dockgui.Vec2{X: 800, Y: 600}, 1.0/60)
	assert.ErrorIs(t, g.End(), boom)
}
