package stage

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Tool identifies an interaction tool of the host application
// (for example "select", "brush", "stage").
type Tool string

// ToolProvider exposes the currently active tool.
type ToolProvider interface {
	ActiveTool() Tool
}

// ToolFunc adapts a plain function to ToolProvider.
type ToolFunc func() Tool

// ActiveTool calls f.
func (f ToolFunc) ActiveTool() Tool { return f() }

// ChangeType identifies which observable field of a stage object changed.
type ChangeType uint8

const (
	ChangeX       ChangeType = iota // position x written
	ChangeY                         // position y written
	ChangeWidth                     // size width written
	ChangeHeight                    // size height written
	ChangeTags                      // tag sequence mutated
	ChangePins                      // a pin flag was assigned
	ChangeZIndex                    // z-order index assigned
	ChangeAdded                     // object added to the overlay
	ChangeRemoved                   // object removed from the overlay
)

var changeTypeNames = [...]string{
	ChangeX:       "x",
	ChangeY:       "y",
	ChangeWidth:   "width",
	ChangeHeight:  "height",
	ChangeTags:    "tags",
	ChangePins:    "pins",
	ChangeZIndex:  "zIndex",
	ChangeAdded:   "added",
	ChangeRemoved: "removed",
}

func (c ChangeType) String() string {
	if int(c) < len(changeTypeNames) {
		return changeTypeNames[c]
	}
	return "unknown"
}

// ChangeEvent is published by an Overlay for every observable write on one of
// its stage objects. Value holds the written value: float64 for coordinates
// and sizes, []string for tags, Pins for pin flags, int for z-index, and nil
// for added/removed.
type ChangeEvent struct {
	Type     ChangeType
	ObjectID string
	Value    any
}

// EntityStore is the interface for optional ECS integration.
// When set on an Overlay, change events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event ChangeEvent)
}
