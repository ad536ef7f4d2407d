// Package inifile reads and writes dock layouts in the line-oriented text
// format used for persisted settings:
//
//	[Window][Inspector]
//	Pos=60,60
//	Size=400,300
//	Collapsed=0
//	DockId=0x00000002,1
//
//	[Docking][Data]
//	DockSpace   ID=0x8B93E3BD Window=0xA787BDB4 Pos=0,0 Size=1280,720 Split=X
//	  DockNode  ID=0x00000001 Parent=0x8B93E3BD SizeRef=320,720 Selected=0x3A1B2C4D
//	  DockNode  ID=0x00000002 Parent=0x8B93E3BD SizeRef=958,720 CentralNode=1
//
// Unknown sections and keys are skipped so files written by newer versions
// still load. Damaged records are skipped or repaired with a warning instead
// of failing the whole file.
package inifile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-theft-auto/dockgui"
)

// flagKeys maps the boolean node keys to the flags they persist.
var flagKeys = []struct {
	key  string
	flag dockgui.DockNodeFlags
}{
	{"NoResize", dockgui.DockNodeNoResize},
	{"NoResizeX", dockgui.DockNodeNoResizeX},
	{"NoResizeY", dockgui.DockNodeNoResizeY},
	{"CentralNode", dockgui.DockNodeCentralNode},
	{"NoTabBar", dockgui.DockNodeNoTabBar},
	{"HiddenTabBar", dockgui.DockNodeHiddenTabBar},
	{"NoWindowMenuButton", dockgui.DockNodeNoWindowMenuButton},
	{"NoCloseButton", dockgui.DockNodeNoCloseButton},
}

// Load reads the layout file at path, logging the records Read skips.
func Load(path string) (*dockgui.Settings, error) {
	s, issues, err := ParseFile(path)
	logIssues(issues, "path", path)
	return s, err
}

// ParseFile is Load without the logging: the skipped records are returned.
func ParseFile(path string) (*dockgui.Settings, []Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	s, issues, err := Parse(f)
	if err != nil {
		return nil, issues, fmt.Errorf("%s: %w", path, err)
	}
	return s, issues, nil
}

// Save writes s to path, replacing the file atomically.
func Save(path string, s *dockgui.Settings) error {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp layout: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write layout: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close layout: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace layout: %w", err)
	}
	return nil
}

// Issue is a line Parse skipped or repaired.
type Issue struct {
	Line int
	Err  error
}

func (i Issue) Error() string { return fmt.Sprintf("line %d: %v", i.Line, i.Err) }

func (i Issue) Unwrap() error { return i.Err }

// Read parses a layout, logging every line it had to skip or repair. See
// Parse.
func Read(r io.Reader) (*dockgui.Settings, error) {
	s, issues, err := Parse(r)
	logIssues(issues)
	return s, err
}

func logIssues(issues []Issue, args ...any) {
	for _, is := range issues {
		attrs := append([]any{"line", is.Line, "err", is.Err}, args...)
		slog.Warn("layout record skipped", attrs...)
	}
}

// Parse reads a layout and returns the lines it worked around. Only a failing
// reader fails the layout. A malformed section header drops the lines up to
// the next header, a malformed value leaves its key at the default, and node
// records without a usable ID, or repeating one, are dropped. Node depths are
// derived from the parent links: a node whose parent is not listed before it,
// or whose parent already has two children, is read as a root.
func Parse(r io.Reader) (*dockgui.Settings, []Issue, error) {
	s := &dockgui.Settings{}
	depth := make(map[dockgui.ID]int)
	children := make(map[dockgui.ID]int)
	var issues []Issue

	var section, name string
	var window *dockgui.WindowSettings
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	lineNo := 0
	skip := func(err error) {
		issues = append(issues, Issue{Line: lineNo, Err: err})
	}
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == ';' {
			continue
		}
		if line[0] == '[' {
			var ok bool
			section, name, ok = parseHeader(line)
			window = nil
			if !ok {
				skip(fmt.Errorf("%w: section header %q", errMalformed, line))
				continue
			}
			if section == "Window" {
				s.Windows = append(s.Windows, dockgui.WindowSettings{
					ID:        dockgui.HashString(0, name),
					Name:      name,
					DockOrder: -1,
				})
				window = &s.Windows[len(s.Windows)-1]
			}
			continue
		}

		switch {
		case section == "Window" && window != nil:
			if err := readWindowLine(window, line); err != nil {
				skip(err)
			}
		case section == "Docking" && name == "Data":
			node, ok, err := readNodeLine(line)
			if err != nil {
				skip(err)
			}
			if !ok {
				continue
			}
			if _, dup := depth[node.ID]; dup {
				skip(fmt.Errorf("node 0x%08X listed twice: %w", uint32(node.ID), dockgui.ErrInvalidRecord))
				continue
			}
			if node.ParentNodeID != 0 {
				d, known := depth[node.ParentNodeID]
				switch {
				case !known:
					skip(fmt.Errorf("node 0x%08X: parent 0x%08X not listed before it, read as a root: %w",
						uint32(node.ID), uint32(node.ParentNodeID), dockgui.ErrInvalidRecord))
					orphan(&node)
				case children[node.ParentNodeID] >= 2:
					skip(fmt.Errorf("node 0x%08X: parent 0x%08X already has two children, read as a root: %w",
						uint32(node.ID), uint32(node.ParentNodeID), dockgui.ErrInvalidRecord))
					orphan(&node)
				default:
					children[node.ParentNodeID]++
					node.Depth = d + 1
				}
			}
			depth[node.ID] = node.Depth
			s.Nodes = append(s.Nodes, node)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, issues, fmt.Errorf("read layout: %w", err)
	}
	return s, issues, nil
}

// orphan turns a child record into a root. Only SizeRef was persisted for it.
func orphan(node *dockgui.DockNodeSettings) {
	node.ParentNodeID = 0
	node.Depth = 0
	if node.Size == (dockgui.Vec2{}) {
		node.Size = node.SizeRef
	}
}

// parseHeader splits "[Type][Name]".
func parseHeader(line string) (section, name string, ok bool) {
	if !strings.HasSuffix(line, "]") {
		return "", "", false
	}
	end := strings.IndexByte(line, ']')
	section = line[1:end]
	rest := line[end+1:]
	if len(rest) < 2 || rest[0] != '[' {
		return "", "", false
	}
	return section, rest[1 : len(rest)-1], true
}

func readWindowLine(ws *dockgui.WindowSettings, line string) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return nil
	}
	var err error
	switch key {
	case "Pos":
		ws.Pos, err = parseVec2(value)
	case "Size":
		ws.Size, err = parseVec2(value)
	case "ViewportPos":
		ws.ViewportPos, err = parseVec2(value)
	case "ViewportId":
		ws.ViewportID, err = parseID(value)
	case "ClassId":
		ws.ClassID, err = parseID(value)
	case "Collapsed":
		ws.Collapsed, err = parseBool(value)
	case "DockId":
		id, order, hasOrder := strings.Cut(value, ",")
		if ws.DockID, err = parseID(id); err == nil && hasOrder {
			var n int
			if n, err = strconv.Atoi(order); err == nil {
				ws.DockOrder = n
			}
		}
	}
	if err != nil {
		return fmt.Errorf("window %q key %s: %w", ws.Name, key, err)
	}
	return nil
}

// readNodeLine parses one [Docking][Data] line. ok is false for lines that
// are not usable node records. Malformed keys are reported in err and keep
// their defaults.
func readNodeLine(line string) (dockgui.DockNodeSettings, bool, error) {
	node := dockgui.DockNodeSettings{SplitAxis: dockgui.AxisNone}
	var errs []error
	fields := strings.Fields(line)
	switch fields[0] {
	case "DockNode":
	case "DockSpace":
		node.Flags |= dockgui.DockNodeDockSpace
	default:
		return node, false, nil
	}

	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		var err error
		switch key {
		case "ID":
			node.ID, err = parseID(value)
		case "Parent":
			node.ParentNodeID, err = parseID(value)
		case "Window":
			node.ParentWindowID, err = parseID(value)
		case "Selected":
			node.SelectedTabID, err = parseID(value)
		case "Pos":
			node.Pos, err = parseVec2(value)
		case "Size":
			node.Size, err = parseVec2(value)
		case "SizeRef":
			node.SizeRef, err = parseVec2(value)
		case "Split":
			switch value {
			case "X":
				node.SplitAxis = dockgui.AxisX
			case "Y":
				node.SplitAxis = dockgui.AxisY
			default:
				err = fmt.Errorf("unknown split axis %q", value)
			}
		default:
			for _, fk := range flagKeys {
				if fk.key == key && value == "1" {
					node.Flags |= fk.flag
				}
			}
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("node key %s: %w", key, err))
		}
	}
	if node.ID == 0 {
		errs = append(errs, fmt.Errorf("node without ID: %w", dockgui.ErrInvalidRecord))
		return node, false, errors.Join(errs...)
	}
	// Roots persist their rectangle; SizeRef defaults to it.
	if node.ParentNodeID == 0 && node.SizeRef == (dockgui.Vec2{}) {
		node.SizeRef = node.Size
	}
	return node, true, errors.Join(errs...)
}

// Write serializes s. Window records come first, then the node forest in
// record order, indented by depth.
func Write(w io.Writer, s *dockgui.Settings) error {
	bw := bufio.NewWriter(w)
	for _, ws := range s.Windows {
		if ws.Name == "" {
			continue
		}
		fmt.Fprintf(bw, "[Window][%s]\n", ws.Name)
		if ws.ViewportID != 0 {
			fmt.Fprintf(bw, "ViewportPos=%s\n", formatVec2(ws.ViewportPos))
			fmt.Fprintf(bw, "ViewportId=0x%08X\n", uint32(ws.ViewportID))
		}
		fmt.Fprintf(bw, "Pos=%s\n", formatVec2(ws.Pos))
		fmt.Fprintf(bw, "Size=%s\n", formatVec2(ws.Size))
		fmt.Fprintf(bw, "Collapsed=%d\n", boolInt(ws.Collapsed))
		if ws.DockID != 0 {
			if ws.DockOrder >= 0 {
				fmt.Fprintf(bw, "DockId=0x%08X,%d\n", uint32(ws.DockID), ws.DockOrder)
			} else {
				fmt.Fprintf(bw, "DockId=0x%08X\n", uint32(ws.DockID))
			}
			if ws.ClassID != 0 {
				fmt.Fprintf(bw, "ClassId=0x%08X\n", uint32(ws.ClassID))
			}
		}
		bw.WriteString("\n")
	}

	if len(s.Nodes) > 0 {
		bw.WriteString("[Docking][Data]\n")
		for _, n := range s.Nodes {
			writeNode(bw, n)
		}
		bw.WriteString("\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

func writeNode(bw *bufio.Writer, n dockgui.DockNodeSettings) {
	kind := "DockNode"
	if n.Flags&dockgui.DockNodeDockSpace != 0 {
		kind = "DockSpace"
	}
	line := strings.Repeat("  ", n.Depth) + kind
	line += strings.Repeat(" ", max(1, 14-len(line)))
	fmt.Fprintf(bw, "%sID=0x%08X", line, uint32(n.ID))
	if n.ParentNodeID != 0 {
		fmt.Fprintf(bw, " Parent=0x%08X SizeRef=%s", uint32(n.ParentNodeID), formatVec2(n.SizeRef))
	} else {
		if n.ParentWindowID != 0 {
			fmt.Fprintf(bw, " Window=0x%08X", uint32(n.ParentWindowID))
		}
		fmt.Fprintf(bw, " Pos=%s Size=%s", formatVec2(n.Pos), formatVec2(n.Size))
	}
	switch n.SplitAxis {
	case dockgui.AxisX:
		bw.WriteString(" Split=X")
	case dockgui.AxisY:
		bw.WriteString(" Split=Y")
	}
	for _, fk := range flagKeys {
		if n.Flags&fk.flag != 0 {
			fmt.Fprintf(bw, " %s=1", fk.key)
		}
	}
	if n.SelectedTabID != 0 {
		fmt.Fprintf(bw, " Selected=0x%08X", uint32(n.SelectedTabID))
	}
	bw.WriteString("\n")
}

var errMalformed = errors.New("malformed value")

func parseID(s string) (dockgui.ID, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", errMalformed, s)
	}
	return dockgui.ID(v), nil
}

func parseVec2(s string) (dockgui.Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return dockgui.Vec2{}, fmt.Errorf("%w: pair %q", errMalformed, s)
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return dockgui.Vec2{}, fmt.Errorf("%w: pair %q", errMalformed, s)
	}
	return dockgui.Vec2{X: float32(x), Y: float32(y)}, nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("%w: bool %q", errMalformed, s)
}

func formatVec2(v dockgui.Vec2) string {
	return strconv.Itoa(int(v.X)) + "," + strconv.Itoa(int(v.Y))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
