package dockgui

import "log/slog"

//go:generate go run go.uber.org/mock/mockgen -destination=internal/mocks/mock_dockgui.go -package=mocks . Platform,Renderer

// Platform answers viewport queries the docking core cannot resolve itself.
type Platform interface {
	// WorkArea returns the usable area of the viewport or monitor with the given id.
	WorkArea(viewportID ID) Rect
}

// displayPlatform treats the whole display as the only viewport.
type displayPlatform struct {
	ctx *Context
}

func (p displayPlatform) WorkArea(ID) Rect {
	return Rect{Max: p.ctx.DisplaySize}
}

// InputSource identifies what claimed the active id.
type InputSource int

const (
	InputSourceNone InputSource = iota
	InputSourceMouse
	InputSourceNav
)

type nextWindowData struct {
	dockID    ID
	dockCond  Cond
	hasDockID bool
	class     WindowClass
	hasClass  bool
	pos       Vec2
	hasPos    bool
	size      Vec2
	hasSize   bool
}

// Context holds all state of the docking runtime: the node arena (through
// DockContext), the window table, the interaction ids and the input snapshot.
// This is NOT context.Context. All access must happen on the UI thread
// between NewFrame and EndFrame.
type Context struct {
	Config Config
	Style  Style

	// Input (read-only during frame)
	Input *InputState

	// Drawing output
	DrawList           *DrawList
	ForegroundDrawList *DrawList

	DisplaySize Vec2
	FrameCount  int
	Time        float64
	DeltaTime   float32

	platform Platform
	logger   *slog.Logger

	// IDs
	idStack []ID

	// Windows, front-most last
	windows       []*Window
	windowsByID   map[ID]*Window
	windowStack   []*Window
	currentWindow *Window
	navWindow     *Window
	hoveredWindow *Window
	nextWindow    nextWindowData

	movingWindow      *Window
	movingClickOffset Vec2
	undockPendingMove *Window
	windowMenuNodeID  ID
	mouseCursor       MouseCursor

	// Interaction ids. At most one widget owns the active id at a time.
	activeID                     ID
	activeIDIsAlive              ID
	activeIDPreviousFrame        ID
	activeIDWindow               *Window
	activeIDSource               InputSource
	activeIDMouseButton          MouseButton
	activeIDTimer                float32
	activeIDIsJustActivated      bool
	activeIDClickOffset          Vec2
	activeIDNoClearOnFocusLoss   bool
	activeIDHasBeenPressedBefore bool

	hoveredID              ID
	hoveredIDPreviousFrame ID
	hoveredIDTimer         float32
	hoveredIDAllowOverlap  bool

	navID                ID
	navActivateID        ID
	navActivateDownID    ID
	navActivatePressedID ID

	lastItemID   ID
	lastItemRect Rect

	dragDrop dragDropState

	dock DockContext

	// Persistence
	settings            Settings
	settingsLoaded      bool
	settingsDirtyTimer  float32
	wantSaveIniSettings bool
	onSaveSettings      func(*Settings)

	// Per-frame hit-test holes of pass-through central nodes, by host window id
	hitTestHoles map[ID]Rect
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithConfig sets the runtime configuration.
func WithConfig(cfg Config) ContextOption {
	return func(ctx *Context) { ctx.Config = cfg }
}

// WithStyle sets the color palette.
func WithStyle(style Style) ContextOption {
	return func(ctx *Context) { ctx.Style = style }
}

// WithPlatform sets the viewport/monitor query backend.
func WithPlatform(p Platform) ContextOption {
	return func(ctx *Context) { ctx.platform = p }
}

// WithLogger sets the logger used for docking diagnostics.
func WithLogger(l *slog.Logger) ContextOption {
	return func(ctx *Context) { ctx.logger = l }
}

// WithSettingsSaver registers a callback invoked when debounced settings are due.
func WithSettingsSaver(fn func(*Settings)) ContextOption {
	return func(ctx *Context) { ctx.onSaveSettings = fn }
}

// NewContext creates a new docking context with default settings.
func NewContext(opts ...ContextOption) *Context {
	ctx := &Context{
		Config:       DefaultConfig(),
		Style:        DefaultStyle(),
		logger:       defaultLogger,
		idStack:      make([]ID, 0, 32),
		windowsByID:  make(map[ID]*Window),
		hitTestHoles: make(map[ID]Rect),
	}
	ctx.platform = displayPlatform{ctx: ctx}
	for _, opt := range opts {
		opt(ctx)
	}
	ctx.logger = ctx.logger.With("component", "dock")
	ctx.DockContextInitialize()
	return ctx
}

// Shutdown releases all nodes, windows and settings.
func (ctx *Context) Shutdown() {
	ctx.DockContextShutdown()
	ctx.windows = nil
	clear(ctx.windowsByID)
	ctx.settings = Settings{}
	ctx.releaseDrawLists()
}

// Logger returns the context logger.
func (ctx *Context) Logger() *slog.Logger {
	return ctx.logger
}

// NewFrame starts a frame. Mutations of the dock tree happen here, in three
// ordered phases: undocking, docking, then per-node update of floating roots.
func (ctx *Context) NewFrame(input *InputState, displaySize Vec2, deltaTime float32) {
	if input == nil {
		input = NewInputState()
	}
	ctx.Input = input
	ctx.FrameCount++
	ctx.DeltaTime = deltaTime
	ctx.Time += float64(deltaTime)
	ctx.DisplaySize = displaySize

	input.KeyRepeatDelay = ctx.Config.KeyRepeatDelay
	input.KeyRepeatRate = ctx.Config.KeyRepeatRate
	input.MouseDoubleClickTime = ctx.Config.MouseDoubleClickTime
	input.MouseDoubleClickMaxDist = ctx.Config.MouseDoubleClickMaxDist
	input.MouseDragThreshold = ctx.Config.MouseDragThreshold
	input.Update(deltaTime)

	ctx.releaseDrawLists()
	ctx.DrawList = AcquireDrawList()
	ctx.ForegroundDrawList = AcquireDrawList()

	ctx.idStack = ctx.idStack[:0]
	ctx.windowStack = ctx.windowStack[:0]
	ctx.currentWindow = nil
	ctx.mouseCursor = MouseCursorArrow

	// Hovered id is rebuilt by widgets every frame.
	if ctx.hoveredID != 0 {
		ctx.hoveredIDTimer += deltaTime
	}
	ctx.hoveredIDPreviousFrame = ctx.hoveredID
	ctx.hoveredID = 0
	ctx.hoveredIDAllowOverlap = false

	// An active id that was not kept alive during the last frame is released.
	if ctx.activeID != 0 && ctx.activeIDIsAlive != ctx.activeID && ctx.activeIDPreviousFrame == ctx.activeID {
		ctx.logger.Debug("active id lost", "id", ctx.activeID)
		ctx.ClearActiveID()
	}
	if ctx.activeID != 0 {
		ctx.activeIDTimer += deltaTime
	}
	ctx.activeIDPreviousFrame = ctx.activeID
	ctx.activeIDIsAlive = 0
	ctx.activeIDIsJustActivated = false

	ctx.updateNav()

	if !ctx.settingsLoaded {
		ctx.settingsLoaded = true
		ctx.DockContextPruneUnusedSettings()
		ctx.DockContextBuildNodesFromSettings(ctx.settings.Nodes)
	}

	ctx.DockContextNewFrameUpdateUndocking()
	ctx.hoveredWindow = ctx.findHoveredWindow(ctx.movingWindow)
	ctx.updateMouseMovingWindow()
	// Last frame's holes served hovering; nodes register fresh ones below.
	clear(ctx.hitTestHoles)
	ctx.DockContextNewFrameUpdateDocking()
}

// EndFrame finishes the frame: resolves drag-to-dock drops into queued
// requests for the next frame and drives the settings debounce.
func (ctx *Context) EndFrame() {
	if len(ctx.windowStack) > 0 {
		ctx.assert(false, "EndFrame with unbalanced BeginWindow", "depth", len(ctx.windowStack))
		ctx.windowStack = ctx.windowStack[:0]
	}
	ctx.updateDockingDragDrop()
	ctx.DockContextEndFrame()
	ctx.updateSettings(ctx.DeltaTime)
	if ctx.Input != nil {
		ctx.Input.EndFrame()
	}
}

func (ctx *Context) releaseDrawLists() {
	if ctx.DrawList != nil {
		ReleaseDrawList(ctx.DrawList)
		ctx.DrawList = nil
	}
	if ctx.ForegroundDrawList != nil {
		ReleaseDrawList(ctx.ForegroundDrawList)
		ctx.ForegroundDrawList = nil
	}
}

// updateNav derives keyboard activation of the nav-focused widget.
func (ctx *Context) updateNav() {
	ctx.navActivateID = 0
	ctx.navActivateDownID = 0
	ctx.navActivatePressedID = 0
	if ctx.navID == 0 || ctx.Input == nil {
		return
	}
	if ctx.Input.KeyDown(KeySpace) || ctx.Input.KeyDown(KeyEnter) {
		ctx.navActivateDownID = ctx.navID
	}
	if ctx.Input.KeyPressed(KeySpace) || ctx.Input.KeyPressed(KeyEnter) {
		ctx.navActivateID = ctx.navID
		ctx.navActivatePressedID = ctx.navID
	}
	if ctx.Input.KeyPressed(KeyEscape) && ctx.activeIDSource == InputSourceNav {
		ctx.ClearActiveID()
	}
}

// SetNavID gives keyboard focus to a widget id so it can be activated with Space or Enter.
func (ctx *Context) SetNavID(id ID) {
	ctx.navID = id
}

// NavID returns the keyboard-focused widget id.
func (ctx *Context) NavID() ID {
	return ctx.navID
}

// WorkArea returns the work area of the viewport hosting w.
func (ctx *Context) WorkArea(w *Window) Rect {
	var viewportID ID
	if w != nil {
		viewportID = w.ViewportID
	}
	return ctx.platform.WorkArea(viewportID)
}
