/*
Package dockgui provides the docking layer of an immediate-mode GUI: windows
can be merged into tab bars, split into resizable regions, undocked into
floating hosts, and re-created from saved layout settings across runs.

# Overview

Docked windows live in a binary tree of dock nodes. Leaf nodes hold windows
(shown as tabs when there is more than one), interior nodes hold exactly two
children split along an axis. A tree is either floating, hosted by its own
window, or a dockspace embedded in an application window. One leaf of a
dockspace may be the central node, which absorbs resizes and stays in place
when everything else is undocked.

All tree mutations requested during a frame (drops, tab drags, builder calls)
are queued and applied by the next NewFrame, so widget code never observes
the tree changing underneath it.

# Quick Start

	renderer, _ := opengl.NewRenderer(1280, 720)
	ui := dockgui.New(renderer)

	for !window.ShouldClose() {
	    ctx := ui.Begin(input.Update(), dockgui.Vec2{X: 1280, Y: 720}, deltaTime)

	    dockspace := ctx.DockSpaceOverViewport(0, 0, dockgui.DockNodeFlagsNone, nil)
	    if firstRun {
	        left, rest := ctx.DockBuilderSplitNode(dockspace, dockgui.DirLeft, 0.25)
	        ctx.DockBuilderDockWindow("Inspector", left)
	        ctx.DockBuilderDockWindow("Scene", rest)
	        ctx.DockBuilderFinish(dockspace)
	    }

	    ctx.BeginWindow("Inspector", dockgui.WindowFlagsNone)
	    ctx.EndWindow()
	    ctx.BeginWindow("Scene", dockgui.WindowFlagsNone)
	    ctx.EndWindow()

	    ui.End()
	    window.SwapBuffers()
	}

# Persistence

Layouts round-trip through Settings. Context.SaveSettings snapshots every
live node and window placement, and Context.LoadSettings rebuilds the tree,
dropping nodes no window refers to. The internal/inifile package reads and
writes the text format:

	[Window][Scene]
	DockId=0x00000002,0

	[Docking][Data]
	DockSpace   ID=0x8B93E3BD Window=0xA787BDB4 Pos=0,0 Size=1280,720 Split=X
	  DockNode  ID=0x00000001 Parent=0x8B93E3BD SizeRef=320,720
	  DockNode  ID=0x00000002 Parent=0x8B93E3BD SizeRef=958,720 CentralNode=1

# Interaction

	Drag a title bar or tab      Move the window; hover another node to preview a drop
	Drop on a preview arrow      Split the target node and dock on that side
	Drop on the center target    Merge into the target's tab bar
	Drag a tab out of the bar    Undock the window into a floating node
	Drag a splitter              Resize the two halves, respecting the minimum size
	Hold Shift while dragging    Enable docking (with Config.DockingWithShift)
	Click a tab's close button   Close the tab; the window is undocked next frame

# Configuration

Config controls docking behavior and can be decoded from TOML with
LoadConfigTOML. Set Config.DebugAsserts in tests to turn misuse of the API
into panics instead of logged errors.
*/
package dockgui
