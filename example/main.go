// Example demonstrates a dockspace covering the main window with four
// dockable windows. The layout is built on first run and persisted to
// dockgui.ini next to the working directory.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/dockgui"
	"github.com/go-theft-auto/dockgui/backend/opengl"
	"github.com/go-theft-auto/dockgui/internal/inifile"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	windowTitle  = "dockgui example"
	iniPath      = "dockgui.ini"
)

var panels = []string{"Scene", "Inspector", "Console", "Assets"}

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	input := opengl.NewGLFWInputAdapter(window)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		renderer.Resize(w, h)
	})

	ui := dockgui.New(&cursorRenderer{Renderer: renderer, input: input},
		dockgui.WithContextOptions(
			dockgui.WithPlatform(input),
			dockgui.WithSettingsSaver(func(s *dockgui.Settings) {
				if err := inifile.Save(iniPath, s); err != nil {
					slog.Error("save layout", "err", err)
				}
			}),
		))
	defer ui.Shutdown()

	ctx := ui.Context()
	haveLayout := false
	if s, err := inifile.Load(iniPath); err == nil {
		ctx.LoadSettings(s)
		haveLayout = len(s.Nodes) > 0
	} else if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load layout", "path", iniPath, "err", err)
	}

	last := glfw.GetTime()
	for !window.ShouldClose() {
		glfw.PollEvents()
		now := glfw.GetTime()
		dt := float32(now - last)
		last = now

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		ctx := ui.Begin(input.Update(), dockgui.Vec2{X: float32(w), Y: float32(h)}, dt)

		dockspace := ctx.DockSpaceOverViewport(0, 0, dockgui.DockNodePassthruCentralNode, nil)
		if !haveLayout {
			buildDefaultLayout(ctx, dockspace, dockgui.Vec2{X: float32(w), Y: float32(h)})
			haveLayout = true
		}
		for _, name := range panels {
			ctx.BeginWindow(name, dockgui.WindowFlagsNone)
			ctx.EndWindow()
		}

		if err := ui.End(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		window.SwapBuffers()
	}

	return inifile.Save(iniPath, ctx.SaveSettings())
}

// buildDefaultLayout splits the dockspace into a left column, a bottom strip
// and a central scene area.
func buildDefaultLayout(ctx *dockgui.Context, dockspace dockgui.ID, size dockgui.Vec2) {
	ctx.DockBuilderRemoveNode(dockspace)
	ctx.DockBuilderAddNode(dockspace, dockgui.DockNodeDockSpace|dockgui.DockNodePassthruCentralNode)
	ctx.DockBuilderSetNodeSize(dockspace, size)

	left, rest := ctx.DockBuilderSplitNode(dockspace, dockgui.DirLeft, 0.25)
	bottom, center := ctx.DockBuilderSplitNode(rest, dockgui.DirDown, 0.30)
	ctx.DockBuilderDockWindow("Inspector", left)
	ctx.DockBuilderDockWindow("Assets", left)
	ctx.DockBuilderDockWindow("Console", bottom)
	ctx.DockBuilderDockWindow("Scene", center)
	ctx.DockBuilderFinish(dockspace)
}

// cursorRenderer forwards cursor shape changes to the GLFW adapter.
type cursorRenderer struct {
	*opengl.Renderer
	input *opengl.GLFWInputAdapter
}

func (r *cursorRenderer) SetMouseCursor(c dockgui.MouseCursor) {
	r.input.SetMouseCursor(c)
}
