package dockgui

// Renderer is the interface for rendering docking draw data.
type Renderer interface {
	Render(dl *DrawList) error
	Resize(width, height int)
}

// CursorSetter is implemented by renderers or backends that can change the
// OS mouse cursor shape.
type CursorSetter interface {
	SetMouseCursor(c MouseCursor)
}

// GUI drives a Context frame by frame and hands its draw lists to a Renderer.
type GUI struct {
	renderer Renderer
	ctx      *Context
	ctxOpts  []ContextOption
}

// GUIOption configures a GUI instance.
type GUIOption func(*GUI)

// WithContextOptions forwards options to the Context created by New.
func WithContextOptions(opts ...ContextOption) GUIOption {
	return func(g *GUI) { g.ctxOpts = append(g.ctxOpts, opts...) }
}

// New creates a new GUI instance.
func New(renderer Renderer, opts ...GUIOption) *GUI {
	g := &GUI{renderer: renderer}
	for _, opt := range opts {
		opt(g)
	}
	g.ctx = NewContext(g.ctxOpts...)
	return g
}

// Begin starts a new frame and returns the docking context.
// Dock requests queued during the previous frame are applied here.
func (g *GUI) Begin(input *InputState, displaySize Vec2, deltaTime float32) *Context {
	g.ctx.NewFrame(input, displaySize, deltaTime)
	return g.ctx
}

// End finishes the frame and renders it.
func (g *GUI) End() error {
	ctx := g.ctx
	ctx.EndFrame()
	if cs, ok := g.renderer.(CursorSetter); ok {
		cs.SetMouseCursor(ctx.MouseCursor())
	}
	if ctx.DrawList == nil {
		return nil
	}
	if err := g.renderer.Render(ctx.DrawList); err != nil {
		return err
	}
	// Foreground: window menus and the docking overlay.
	if ctx.ForegroundDrawList != nil && len(ctx.ForegroundDrawList.CmdBuffer) > 0 {
		return g.renderer.Render(ctx.ForegroundDrawList)
	}
	return nil
}

// Context returns the docking context.
func (g *GUI) Context() *Context {
	return g.ctx
}

// Resize notifies the GUI of a display size change.
func (g *GUI) Resize(width, height int) {
	g.renderer.Resize(width, height)
}

// Shutdown releases the context.
func (g *GUI) Shutdown() {
	g.ctx.Shutdown()
}
