package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/dockgui"
)

var (
	rootStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	splitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	leafStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	windowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	flagStyle   = lipgloss.NewStyle().Faint(true)
)

func (c *CLI) newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <layout.ini|name>",
		Short: "Print the dock node hierarchy of a layout",
		Long: `Print the dock node hierarchy of a layout, with the windows docked in each
leaf. The layout is loaded the way an application would load it, so records
that cannot be used are dropped from the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.readLayout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			dc := c.newContext()
			dc.LoadSettings(s)
			fmt.Fprintln(cmd.OutOrStdout(), renderTree(dc, dc.SaveSettings()))
			return nil
		},
	}
}

// renderTree draws every root node of dc; window names come from the
// window records of s.
func renderTree(dc *dockgui.Context, s *dockgui.Settings) string {
	docked := make(map[dockgui.ID][]dockgui.WindowSettings)
	for _, ws := range s.Windows {
		if ws.DockID != 0 {
			docked[ws.DockID] = append(docked[ws.DockID], ws)
		}
	}
	for _, list := range docked {
		slices.SortStableFunc(list, func(a, b dockgui.WindowSettings) int { return cmp.Compare(a.DockOrder, b.DockOrder) })
	}

	var out []string
	for _, id := range dc.DockNodes() {
		node := dc.DockBuilderGetNode(id)
		if !node.IsRootNode() {
			continue
		}
		t := nodeTree(dc, node, docked).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(splitStyle)
		out = append(out, t.String())
	}
	if len(out) == 0 {
		return "(no dock nodes)"
	}
	return strings.Join(out, "\n\n")
}

func nodeTree(dc *dockgui.Context, node *dockgui.DockNode, docked map[dockgui.ID][]dockgui.WindowSettings) *tree.Tree {
	t := tree.Root(nodeLabel(node))
	if node.IsSplitNode() {
		for _, childID := range node.ChildIDs {
			if child := dc.DockBuilderGetNode(childID); child != nil {
				t.Child(nodeTree(dc, child, docked))
			}
		}
		return t
	}
	for _, ws := range docked[node.ID] {
		t.Child(windowStyle.Render(ws.Name))
	}
	return t
}

func nodeLabel(node *dockgui.DockNode) string {
	kind := "DockNode"
	style := leafStyle
	switch {
	case node.IsRootNode() && node.IsDockSpace():
		kind, style = "DockSpace", rootStyle
	case node.IsRootNode():
		kind, style = "Floating", rootStyle
	case node.IsSplitNode():
		style = splitStyle
	}
	label := fmt.Sprintf("%s 0x%08X", kind, uint32(node.ID))
	size := node.Size
	if size.X == 0 && size.Y == 0 {
		size = node.SizeRef
	}
	label += fmt.Sprintf(" %gx%g", size.X, size.Y)
	if node.IsSplitNode() {
		label += " split=" + node.SplitAxis.String()
	}
	label = style.Render(label)
	if f := node.MergedFlags & dockgui.DockNodeSavedFlagsMask &^ dockgui.DockNodeDockSpace; f != 0 {
		label += " " + flagStyle.Render(f.String())
	}
	return label
}
