package layoutstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/dockgui"
)

func sampleSettings() *dockgui.Settings {
	return &dockgui.Settings{
		Windows: []dockgui.WindowSettings{
			{ID: dockgui.HashString(0, "Console"), Name: "Console", Pos: dockgui.Vec2{X: 1, Y: 2}, Size: dockgui.Vec2{X: 300, Y: 200}, DockID: 2, DockOrder: 0},
		},
		Nodes: []dockgui.DockNodeSettings{
			{ID: 1, SplitAxis: dockgui.AxisY, Flags: dockgui.DockNodeDockSpace, Size: dockgui.Vec2{X: 800, Y: 600}, SizeRef: dockgui.Vec2{X: 800, Y: 600}},
			{ID: 2, ParentNodeID: 1, Depth: 1, SplitAxis: dockgui.AxisNone, SizeRef: dockgui.Vec2{X: 800, Y: 200}},
			{ID: 3, ParentNodeID: 1, Depth: 1, SplitAxis: dockgui.AxisNone, Flags: dockgui.DockNodeCentralNode, SizeRef: dockgui.Vec2{X: 800, Y: 400}},
		},
	}
}

func exerciseStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	_, err := st.Load(ctx, "missing")
	assert.True(t, errors.Is(err, dockgui.ErrLayoutNotFound))

	want := sampleSettings()
	require.NoError(t, st.Save(ctx, "default", want))
	require.NoError(t, st.Save(ctx, "alt", want))

	got, err := st.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	names, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alt", "default"}, names)

	// Saving again replaces the layout.
	want.Windows[0].Pos = dockgui.Vec2{X: 9, Y: 9}
	require.NoError(t, st.Save(ctx, "default", want))
	got, err = st.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, dockgui.Vec2{X: 9, Y: 9}, got.Windows[0].Pos)

	require.NoError(t, st.Delete(ctx, "alt"))
	assert.True(t, errors.Is(st.Delete(ctx, "alt"), dockgui.ErrLayoutNotFound))

	assert.Error(t, st.Save(ctx, "../escape", want))
}

func TestDirStore(t *testing.T) {
	st, err := NewDirStore(filepath.Join(t.TempDir(), "layouts"))
	require.NoError(t, err)
	defer st.Close()
	exerciseStore(t, st)
}

func TestSQLiteStore(t *testing.T) {
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "layouts.db"))
	require.NoError(t, err)
	defer st.Close()
	exerciseStore(t, st)
}
