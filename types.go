package dockgui

import "math"

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Axis returns the component along axis.
func (v Vec2) Axis(axis Axis) float32 {
	if axis == AxisY {
		return v.Y
	}
	return v.X
}

// SetAxis returns a copy of v with the component along axis replaced.
func (v Vec2) SetAxis(axis Axis, value float32) Vec2 {
	if axis == AxisY {
		v.Y = value
	} else {
		v.X = value
	}
	return v
}

// Floor rounds both components down.
func (v Vec2) Floor() Vec2 {
	return Vec2{X: floorf(v.X), Y: floorf(v.Y)}
}

// LengthSqr returns the squared length.
func (v Vec2) LengthSqr() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Rect represents an axis-aligned rectangle by its two corners.
type Rect struct {
	Min, Max Vec2
}

// RectFromPosSize builds a rectangle from a top-left position and a size.
func RectFromPosSize(pos, size Vec2) Rect {
	return Rect{Min: pos, Max: pos.Add(size)}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Size returns width and height.
func (r Rect) Size() Vec2 { return r.Max.Sub(r.Min) }

// Center returns the midpoint.
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) * 0.5, Y: (r.Min.Y + r.Max.Y) * 0.5}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ContainsRect returns true if other lies fully inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Min.X >= r.Min.X && other.Min.Y >= r.Min.Y &&
		other.Max.X <= r.Max.X && other.Max.Y <= r.Max.Y
}

// Overlaps returns true if two rectangles overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.Min.X < other.Max.X && r.Max.X > other.Min.X &&
		r.Min.Y < other.Max.Y && r.Max.Y > other.Min.Y
}

// ClipWith returns r clipped to clip.
func (r Rect) ClipWith(clip Rect) Rect {
	return Rect{
		Min: Vec2{X: maxf(r.Min.X, clip.Min.X), Y: maxf(r.Min.Y, clip.Min.Y)},
		Max: Vec2{X: minf(r.Max.X, clip.Max.X), Y: minf(r.Max.Y, clip.Max.Y)},
	}
}

// Expand grows the rectangle by amount on every side.
func (r Rect) Expand(amount float32) Rect {
	return Rect{
		Min: Vec2{X: r.Min.X - amount, Y: r.Min.Y - amount},
		Max: Vec2{X: r.Max.X + amount, Y: r.Max.Y + amount},
	}
}

// Floor rounds both corners down.
func (r Rect) Floor() Rect {
	return Rect{Min: r.Min.Floor(), Max: r.Max.Floor()}
}

// Axis identifies a split direction of a dock node.
type Axis int8

const (
	AxisNone Axis = -1
	AxisX    Axis = 0
	AxisY    Axis = 1
)

// String returns "X", "Y" or "".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	}
	return ""
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// Dir is a cardinal direction used for docking splits.
type Dir int8

const (
	DirNone  Dir = -1
	DirLeft  Dir = 0
	DirRight Dir = 1
	DirUp    Dir = 2
	DirDown  Dir = 3
)

// Axis returns the split axis for the direction.
func (d Dir) Axis() Axis {
	switch d {
	case DirLeft, DirRight:
		return AxisX
	case DirUp, DirDown:
		return AxisY
	}
	return AxisNone
}

// IsPositive reports whether the direction points towards increasing coordinates.
func (d Dir) IsPositive() bool {
	return d == DirRight || d == DirDown
}

// String returns a readable direction name.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	}
	return "None"
}

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// minf returns the minimum of two float32 values.
func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
