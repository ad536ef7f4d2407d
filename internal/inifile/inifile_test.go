package inifile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/dockgui"
)

const sample = `[Window][Inspector]
Pos=10,20
Size=300,400
Collapsed=0
DockId=0x00000002,1
ClassId=0x0000BEEF
Unknown=whatever

[Window][Floating]
Pos=500,80
Size=200,100
Collapsed=1

[Table][0x1234]
Column 0 Weight=1.0

[Docking][Data]
DockSpace     ID=0x8B93E3BD Window=0xA787BDB4 Pos=0,0 Size=1280,720 Split=X Future=7
  DockNode    ID=0x00000001 Parent=0x8B93E3BD SizeRef=320,720 Selected=0x3A1B2C4D NoResize=1
  DockNode    ID=0x00000002 Parent=0x8B93E3BD SizeRef=958,720 CentralNode=1
DockNode      ID=0x00000010 Pos=40,40 Size=300,200
Garbage line that is not a node
`

func TestReadSample(t *testing.T) {
	s, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, s.Windows, 2)
	insp := s.Windows[0]
	assert.Equal(t, "Inspector", insp.Name)
	assert.Equal(t, dockgui.HashString(0, "Inspector"), insp.ID)
	assert.Equal(t, dockgui.Vec2{X: 10, Y: 20}, insp.Pos)
	assert.Equal(t, dockgui.Vec2{X: 300, Y: 400}, insp.Size)
	assert.Equal(t, dockgui.ID(2), insp.DockID)
	assert.Equal(t, 1, insp.DockOrder)
	assert.Equal(t, dockgui.ID(0xBEEF), insp.ClassID)

	floating := s.Windows[1]
	assert.True(t, floating.Collapsed)
	assert.Equal(t, -1, floating.DockOrder, "absent order reads as -1")

	require.Len(t, s.Nodes, 4)
	root := s.Nodes[0]
	assert.Equal(t, dockgui.ID(0x8B93E3BD), root.ID)
	assert.Equal(t, dockgui.ID(0xA787BDB4), root.ParentWindowID)
	assert.Equal(t, dockgui.AxisX, root.SplitAxis)
	assert.True(t, root.Flags&dockgui.DockNodeDockSpace != 0)
	assert.Equal(t, root.Size, root.SizeRef)
	assert.Equal(t, 0, root.Depth)

	left := s.Nodes[1]
	assert.Equal(t, 1, left.Depth)
	assert.Equal(t, dockgui.ID(0x3A1B2C4D), left.SelectedTabID)
	assert.True(t, left.Flags&dockgui.DockNodeNoResize != 0)
	assert.Equal(t, dockgui.AxisNone, left.SplitAxis)

	assert.True(t, s.Nodes[2].Flags&dockgui.DockNodeCentralNode != 0)
	assert.Equal(t, dockgui.Vec2{X: 40, Y: 40}, s.Nodes[3].Pos)
}

func TestRoundTrip(t *testing.T) {
	s, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))
	again, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestReadKeepsOrphanAsRoot(t *testing.T) {
	s, issues, err := Parse(strings.NewReader("[Docking][Data]\nDockNode ID=0x2 Parent=0x1 SizeRef=120,80\n"))
	require.NoError(t, err)

	require.Len(t, s.Nodes, 1)
	n := s.Nodes[0]
	assert.Equal(t, dockgui.ID(2), n.ID)
	assert.Zero(t, n.ParentNodeID)
	assert.Equal(t, 0, n.Depth)
	assert.Equal(t, dockgui.Vec2{X: 120, Y: 80}, n.SizeRef)
	assert.Equal(t, n.SizeRef, n.Size, "the root takes its size from SizeRef")

	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Line)
	assert.True(t, errors.Is(issues[0], dockgui.ErrInvalidRecord))
	assert.NoError(t, s.Validate())
}

func TestReadDetachesThirdChild(t *testing.T) {
	input := `[Docking][Data]
DockNode ID=0x1 Pos=0,0 Size=200,100 Split=X
  DockNode ID=0x2 Parent=0x1 SizeRef=100,100
  DockNode ID=0x3 Parent=0x1 SizeRef=100,100
  DockNode ID=0x4 Parent=0x1 SizeRef=50,100
    DockNode ID=0x5 Parent=0x4 SizeRef=50,50
DockNode ID=0x2 Pos=9,9 Size=9,9
`
	s, issues, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, s.Nodes, 5, "the repeated id is dropped")
	assert.Zero(t, s.Nodes[3].ParentNodeID)
	assert.Equal(t, 0, s.Nodes[3].Depth)
	assert.Equal(t, dockgui.ID(4), s.Nodes[4].ParentNodeID, "children of a detached node follow it")
	assert.Equal(t, 1, s.Nodes[4].Depth)
	assert.NoError(t, s.Validate())

	require.Len(t, issues, 2)
	assert.Equal(t, 5, issues[0].Line)
	assert.Equal(t, 7, issues[1].Line)
}

func TestReadSkipsMalformedValues(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		verify func(t *testing.T, s *dockgui.Settings)
	}{
		{
			name:  "bad id",
			input: "[Docking][Data]\nDockNode ID=0xZZ\nDockNode ID=0x7 Pos=0,0 Size=5,5\n",
			line:  2,
			verify: func(t *testing.T, s *dockgui.Settings) {
				require.Len(t, s.Nodes, 1)
				assert.Equal(t, dockgui.ID(7), s.Nodes[0].ID)
			},
		},
		{
			name:  "bad pos",
			input: "[Window][A]\nPos=1\nSize=30,40\n",
			line:  2,
			verify: func(t *testing.T, s *dockgui.Settings) {
				require.Len(t, s.Windows, 1)
				assert.Zero(t, s.Windows[0].Pos)
				assert.Equal(t, dockgui.Vec2{X: 30, Y: 40}, s.Windows[0].Size)
			},
		},
		{
			name:  "bad split",
			input: "[Docking][Data]\nDockNode ID=0x1 Split=Z Pos=3,4\n",
			line:  2,
			verify: func(t *testing.T, s *dockgui.Settings) {
				require.Len(t, s.Nodes, 1)
				assert.Equal(t, dockgui.AxisNone, s.Nodes[0].SplitAxis)
				assert.Equal(t, dockgui.Vec2{X: 3, Y: 4}, s.Nodes[0].Pos)
			},
		},
		{
			name:  "bad bool",
			input: "[Window][A]\nCollapsed=yes\n",
			line:  2,
			verify: func(t *testing.T, s *dockgui.Settings) {
				require.Len(t, s.Windows, 1)
				assert.False(t, s.Windows[0].Collapsed)
			},
		},
		{
			name:  "bad dock order",
			input: "[Window][A]\nDockId=0x00000002,x\n",
			line:  2,
			verify: func(t *testing.T, s *dockgui.Settings) {
				require.Len(t, s.Windows, 1)
				assert.Equal(t, dockgui.ID(2), s.Windows[0].DockID)
				assert.Equal(t, -1, s.Windows[0].DockOrder)
			},
		},
		{
			name:  "header",
			input: "[Window\nPos=1,1\n[Window][B]\nPos=2,2\n",
			line:  1,
			verify: func(t *testing.T, s *dockgui.Settings) {
				require.Len(t, s.Windows, 1)
				assert.Equal(t, "B", s.Windows[0].Name)
				assert.Equal(t, dockgui.Vec2{X: 2, Y: 2}, s.Windows[0].Pos)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, issues, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, issues, 1)
			assert.Equal(t, tt.line, issues[0].Line)
			tt.verify(t, s)

			_, err = Read(strings.NewReader(tt.input))
			assert.NoError(t, err)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestReadFailsOnReaderError(t *testing.T) {
	_, err := Read(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestSaveLoad(t *testing.T) {
	s, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "layout.ini")
	require.NoError(t, Save(path, s))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
