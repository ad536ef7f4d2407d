// Command gen renders a few canned dock layouts with the OpenGL backend,
// captures framebuffer pixels, and saves JPEG screenshots to doc/imgs/.
// Layouts are described in the same Starlark dialect dockctl build accepts.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/dockgui"
	"github.com/go-theft-auto/dockgui/backend/opengl"
	"github.com/go-theft-auto/dockgui/internal/script"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single layout screenshot to capture.
type screenshot struct {
	name    string   // filename without extension
	width   int      // viewport width
	height  int      // viewport height
	layout  string   // Starlark layout, must build the "Main" dockspace
	windows []string // windows submitted every frame
	frames  int      // frames to render (0 = default 3)
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
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Only update the renderer projection. GLFW applies window resizes
	// asynchronously, and the hidden window is already larger than every shot.
	renderer.Resize(s.width, s.height)

	// Fresh GUI per screenshot so no layout leaks between captures.
	ui := dockgui.New(renderer)
	defer ui.Shutdown()

	displaySize := dockgui.Vec2{X: float32(s.width), Y: float32(s.height)}
	ctx := ui.Context()
	if err := script.Run(context.Background(), ctx, s.name+".star", s.layout); err != nil {
		return err
	}
	dockspace := dockgui.HashString(0, "Main")

	frames := 3
	if s.frames > 0 {
		frames = s.frames
	}
	for i := 0; i < frames; i++ {
		gl.Viewport(0, 0, int32(s.width), int32(s.height))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		ctx := ui.Begin(dockgui.NewInputState(), displaySize, 1.0/60.0)
		ctx.DockSpaceOverViewport(dockspace, 0, dockgui.DockNodeFlagsNone, nil)
		for _, name := range s.windows {
			ctx.BeginWindow(name, dockgui.WindowFlagsNone)
			ctx.EndWindow()
		}
		if err := ui.End(); err != nil {
			return err
		}
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the layouts to render.
func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name:    "dock_split",
			width:   640,
			height:  400,
			windows: []string{"Inspector", "Scene"},
			layout: `
root = dockspace("Main", size=(640, 400))
left, rest = split(root, "left", 0.3)
dock("Inspector", left)
dock("Scene", rest)
finish(root)
`,
		},
		{
			name:    "dock_editor",
			width:   800,
			height:  500,
			windows: []string{"Scene", "Inspector", "Assets", "Console"},
			layout: `
root = dockspace("Main", size=(800, 500))
left, rest = split(root, "left", 0.25)
bottom, center = split(rest, "down", 0.3)
dock("Inspector", left)
dock("Assets", left)
dock("Console", bottom)
dock("Scene", center)
finish(root)
`,
		},
		{
			name:    "dock_tabs",
			width:   480,
			height:  320,
			windows: []string{"Log", "Errors", "Output"},
			layout: `
root = dockspace("Main", size=(480, 320))
dock("Log", root)
dock("Errors", root)
dock("Output", root)
finish(root)
`,
		},
	}
}
