package dockgui

import (
	"math"
	"sync"
)

// Vertex is a single colored vertex of a draw list.
type Vertex struct {
	Pos   [2]float32
	Color uint32
}

// DrawCmd is a batch of indices sharing one clip rectangle.
type DrawCmd struct {
	ElemCount    uint32
	ClipRect     Rect
	VertexOffset uint32
	IndexOffset  uint32
}

// drawListPool provides reuse of DrawList buffers across frames.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 512),
			IdxBuffer: make([]uint16, 0, 1024),
			CmdBuffer: make([]DrawCmd, 0, 8),
			clipStack: make([]Rect, 0, 4),
		}
	},
}

// AcquireDrawList gets a DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawList accumulates solid-color primitives for a frame: window and node
// backgrounds, tab bars, splitters and the docking overlay.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []uint16

	clipStack    []Rect
	currentClip  Rect
	cmdOffset    uint32 // Vertex offset for current command
	idxCmdOffset uint32 // Index offset for current command
}

var noClip = Rect{Min: Vec2{X: -1e9, Y: -1e9}, Max: Vec2{X: 1e9, Y: 1e9}}

// Clear resets the DrawList for a new frame.
// Retains allocated capacity to avoid reallocations.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = noClip
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
}

// PushClipRect pushes a new clip rectangle onto the stack.
func (dl *DrawList) PushClipRect(r Rect) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	dl.currentClip = r
	dl.splitDraw()
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.splitDraw()
	}
}

// splitDraw finalizes the current command and starts a new one.
func (dl *DrawList) splitDraw() {
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

// addQuad appends four vertices and the two triangles joining them.
func (dl *DrawList) addQuad(a, b, c, d Vec2, color uint32) {
	if len(dl.CmdBuffer) == 0 || len(dl.VtxBuffer)-int(dl.cmdOffset) > math.MaxUint16-4 {
		dl.splitDraw()
	}
	idx := uint16(len(dl.VtxBuffer) - int(dl.cmdOffset))
	dl.VtxBuffer = append(dl.VtxBuffer,
		Vertex{Pos: [2]float32{a.X, a.Y}, Color: color},
		Vertex{Pos: [2]float32{b.X, b.Y}, Color: color},
		Vertex{Pos: [2]float32{c.X, c.Y}, Color: color},
		Vertex{Pos: [2]float32{d.X, d.Y}, Color: color},
	)
	dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddRect draws a filled rectangle. Fully transparent colors are skipped.
func (dl *DrawList) AddRect(r Rect, color uint32) {
	if color&0xFF000000 == 0 || r.Width() <= 0 || r.Height() <= 0 {
		return
	}
	dl.addQuad(r.Min, Vec2{X: r.Max.X, Y: r.Min.Y}, r.Max, Vec2{X: r.Min.X, Y: r.Max.Y}, color)
}

// AddRectOutline draws a rectangle outline of the given thickness.
func (dl *DrawList) AddRectOutline(r Rect, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	x, y, w, h := r.Min.X, r.Min.Y, r.Width(), r.Height()
	dl.AddRect(RectFromPosSize(Vec2{X: x, Y: y}, Vec2{X: w, Y: thickness}), color)
	dl.AddRect(RectFromPosSize(Vec2{X: x, Y: y + h - thickness}, Vec2{X: w, Y: thickness}), color)
	dl.AddRect(RectFromPosSize(Vec2{X: x, Y: y + thickness}, Vec2{X: thickness, Y: h - 2*thickness}), color)
	dl.AddRect(RectFromPosSize(Vec2{X: x + w - thickness, Y: y + thickness}, Vec2{X: thickness, Y: h - 2*thickness}), color)
}

// AddLine draws a line between two points as a quad of the given thickness.
func (dl *DrawList) AddLine(p1, p2 Vec2, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	d := p2.Sub(p1)
	inv := float32(1)
	if l := d.LengthSqr(); l > 0 {
		inv = 1 / float32(math.Sqrt(float64(l)))
	}
	n := Vec2{X: -d.Y * inv * thickness * 0.5, Y: d.X * inv * thickness * 0.5}
	dl.addQuad(p1.Add(n), p2.Add(n), p2.Sub(n), p1.Sub(n), color)
}

// Finalize closes the last command and drops empty ones.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}

// Empty reports whether no primitive was added.
func (dl *DrawList) Empty() bool {
	return len(dl.IdxBuffer) == 0
}
