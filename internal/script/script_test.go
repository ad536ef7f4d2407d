package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/dockgui"
)

const layout = `
root = dockspace("Main", size=(1000, 600), flags=["PassthruCentralNode"])
left, rest = split(root, "left", 0.25)
bottom, center = split(rest, "down", 0.3)
dock("Inspector", left)
dock("Assets", left)
dock("Console", bottom)
dock("Scene", center)
finish(root)
print("built", len([left, bottom, center]), "leaves")
print(central(root) == center)
`

func windowDockID(s *dockgui.Settings, name string) dockgui.ID {
	for _, ws := range s.Windows {
		if ws.Name == name {
			return ws.DockID
		}
	}
	return 0
}

func TestRunBuildsTree(t *testing.T) {
	dc := dockgui.NewContext()
	var printed []string
	env := New(dc)
	env.SetPrint(func(msg string) { printed = append(printed, msg) })
	require.NoError(t, env.Exec(context.Background(), "layout.star", layout))
	assert.Equal(t, []string{"built 3 leaves", "True"}, printed)

	rootID := dockgui.HashString(0, "Main")
	root := dc.DockBuilderGetNode(rootID)
	require.NotNil(t, root)
	assert.True(t, root.IsDockSpace())
	assert.True(t, root.IsSplitNode())
	assert.Equal(t, dockgui.AxisX, root.SplitAxis)
	assert.True(t, root.MergedFlags.Has(dockgui.DockNodePassthruCentralNode))

	left := dc.DockBuilderGetNode(root.ChildIDs[0])
	rest := dc.DockBuilderGetNode(root.ChildIDs[1])
	require.NotNil(t, left)
	require.NotNil(t, rest)
	assert.True(t, left.IsLeafNode())
	assert.Equal(t, dockgui.AxisY, rest.SplitAxis)
	assert.InDelta(t, 249, left.SizeRef.X, 1)
	assert.InDelta(t, 749, rest.SizeRef.X, 1)

	center := dc.DockBuilderGetCentralNode(rootID)
	require.NotNil(t, center)
	assert.Equal(t, rest.ChildIDs[0], center.ID)

	s := dc.SaveSettings()
	assert.Equal(t, left.ID, windowDockID(s, "Inspector"))
	assert.Equal(t, left.ID, windowDockID(s, "Assets"))
	assert.Equal(t, rest.ChildIDs[1], windowDockID(s, "Console"))
	assert.Equal(t, center.ID, windowDockID(s, "Scene"))
	require.NoError(t, s.Validate())
}

func TestRunReportsPosition(t *testing.T) {
	dc := dockgui.NewContext()
	err := Run(context.Background(), dc, "bad.star", "x = 1\nsplit(\"missing\", \"left\", 0.5)\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.star:2")
	assert.Contains(t, err.Error(), dockgui.ErrNodeNotFound.Error())
}

func TestRunRejectsBadArguments(t *testing.T) {
	for name, src := range map[string]string{
		"direction": `r = dockspace("A", size=(100, 100))` + "\n" + `split(r, "sideways", 0.5)`,
		"ratio":     `r = dockspace("A", size=(100, 100))` + "\n" + `split(r, "left", 1.5)`,
		"flag":      `dockspace("A", flags=["Bogus"])`,
		"size":      `dockspace("A", size=(0, 10))`,
		"vector":    `r = dockspace("A")` + "\n" + `set_pos(r, (1, 2, 3))`,
		"resplit":   `r = dockspace("A", size=(100, 100))` + "\n" + `split(r, "left", 0.5)` + "\n" + `split(r, "up", 0.5)`,
	} {
		t.Run(name, func(t *testing.T) {
			err := Run(context.Background(), dockgui.NewContext(), "args.star", src)
			assert.Error(t, err)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dc := dockgui.NewContext()
	err := Run(ctx, dc, "cancel.star", `dockspace("Main", size=(100, 100))`)
	require.Error(t, err)
	assert.Nil(t, dc.DockBuilderGetNode(dockgui.HashString(0, "Main")))
}

func TestHashMatchesWindowIDs(t *testing.T) {
	dc := dockgui.NewContext()
	var printed []string
	env := New(dc)
	env.SetPrint(func(msg string) { printed = append(printed, msg) })
	require.NoError(t, env.Exec(context.Background(), "hash.star", `print(hash("Scene"))`))
	require.Len(t, printed, 1)
	assert.Equal(t, fmtID(dockgui.HashString(0, "Scene")), printed[0])
}

func TestCopyDockSpace(t *testing.T) {
	dc := dockgui.NewContext()
	src := `
a = dockspace("A", size=(400, 300))
l, r = split(a, "left", 0.5)
dock("One", l)
dock("Two", r)
copy_dockspace(a, "B", windows={"One": "OneCopy"})
`
	require.NoError(t, Run(context.Background(), dc, "copy.star", src))
	b := dc.DockBuilderGetNode(dockgui.HashString(0, "B"))
	require.NotNil(t, b)
	assert.True(t, b.IsSplitNode())
	s := dc.SaveSettings()
	copied := windowDockID(s, "OneCopy")
	assert.Equal(t, b.ChildIDs[0], copied)
}

func TestBuiltins(t *testing.T) {
	names := New(dockgui.NewContext()).Builtins()
	assert.Contains(t, names, "split")
	assert.Contains(t, names, "dockspace")
	assert.IsIncreasing(t, names)
}

func fmtID(id dockgui.ID) string {
	return idValue(id).String()
}
