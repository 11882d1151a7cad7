package stage

// Pins is a snapshot of the four edge-anchoring flags, in left, right, top,
// bottom order. Any combination is valid; pinning both edges of an axis
// stretches the object along that axis.
type Pins struct {
	Left, Right, Top, Bottom bool
}

// Any reports whether at least one edge is pinned.
func (p Pins) Any() bool {
	return p.Left || p.Right || p.Top || p.Bottom
}

// Stretch reports whether both edges of an axis are pinned, per axis.
func (p Pins) Stretch() (horizontal, vertical bool) {
	return p.Left && p.Right, p.Top && p.Bottom
}

// PinState holds the pin flags of one stage object. Every setter stores the
// new value and then calls the callback with the full snapshot, even when the
// value did not change. The callback is fixed at construction.
type PinState struct {
	left, right, top, bottom bool
	onChange                 func(Pins)
}

// NewPinState creates a PinState with all flags cleared. onChange may be nil.
func NewPinState(onChange func(Pins)) *PinState {
	return &PinState{onChange: onChange}
}

// Left reports whether the left edge is pinned.
func (p *PinState) Left() bool { return p.left }

// Right reports whether the right edge is pinned.
func (p *PinState) Right() bool { return p.right }

// Top reports whether the top edge is pinned.
func (p *PinState) Top() bool { return p.top }

// Bottom reports whether the bottom edge is pinned.
func (p *PinState) Bottom() bool { return p.bottom }

// Pins returns the current snapshot.
func (p *PinState) Pins() Pins {
	return Pins{Left: p.left, Right: p.right, Top: p.top, Bottom: p.bottom}
}

// SetLeft assigns the left flag and fires the callback.
func (p *PinState) SetLeft(v bool) {
	p.left = v
	p.changed()
}

// SetRight assigns the right flag and fires the callback.
func (p *PinState) SetRight(v bool) {
	p.right = v
	p.changed()
}

// SetTop assigns the top flag and fires the callback.
func (p *PinState) SetTop(v bool) {
	p.top = v
	p.changed()
}

// SetBottom assigns the bottom flag and fires the callback.
func (p *PinState) SetBottom(v bool) {
	p.bottom = v
	p.changed()
}

func (p *PinState) changed() {
	if p.onChange != nil {
		p.onChange(p.Pins())
	}
}

// Anchor records how far an object's edges sit from its container's edges,
// as of the last pin assignment or position/size write.
type Anchor struct {
	Pins                     Pins
	Left, Right, Top, Bottom float64
}

// CaptureAnchor measures obj against container for the given pins.
func CaptureAnchor(pins Pins, obj, container Rect) Anchor {
	return Anchor{
		Pins:   pins,
		Left:   obj.X - container.X,
		Right:  container.Right() - obj.Right(),
		Top:    obj.Y - container.Y,
		Bottom: container.Bottom() - obj.Bottom(),
	}
}

// Apply returns obj repositioned inside container so the pinned edges keep
// their recorded distances. Unpinned axes are left untouched.
func (a Anchor) Apply(obj, container Rect) Rect {
	obj.X, obj.Width = anchorAxis(a.Pins.Left, a.Pins.Right, a.Left, a.Right,
		obj.X, obj.Width, container.X, container.Width)
	obj.Y, obj.Height = anchorAxis(a.Pins.Top, a.Pins.Bottom, a.Top, a.Bottom,
		obj.Y, obj.Height, container.Y, container.Height)
	return obj
}

func anchorAxis(near, far bool, nearOff, farOff, pos, extent, cPos, cExtent float64) (float64, float64) {
	switch {
	case near && far:
		return cPos + nearOff, max(0, cExtent-nearOff-farOff)
	case near:
		return cPos + nearOff, extent
	case far:
		return cPos + cExtent - farOff - extent, extent
	default:
		return pos, extent
	}
}
