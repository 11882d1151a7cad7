package stage

import (
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Channels bundles the notification channels a stage object publishes on.
// Any of them may be nil. The object does not own them; several objects may
// share one channel.
type Channels struct {
	X, Y          Channel[float64]
	Width, Height Channel[float64]
	Tags          Channel[[]string]
	Pins          Channel[Pins]
	ZIndex        Channel[int]
}

// StageObject is a positioned, sized, orderable element placed on the
// overlay. Position, Size, and Tags are observable: write them through their
// setters and every write is published.
type StageObject struct {
	// Identity
	ID   string
	Name string

	// Observable state
	Position *ObservablePoint
	Size     *ObservableSize
	Tags     *ObservableSequence[string]

	// Pin is nil for objects that do not support edge anchoring.
	Pin *PinState

	Rotation float64
	Visible  bool

	// ClickThrough makes the object ignore pointer hits unless SelectTool is
	// the active tool.
	ClickThrough bool
	SelectTool   Tool

	// Image is the rendered texture, stretched to Size. Nil draws nothing, and
	// the object's local space is then Size itself. The object never
	// deallocates it.
	Image *ebiten.Image

	// OnDestroy runs once, from Destroy. Its error is returned by Destroy.
	OnDestroy func(o *StageObject) error

	zIndex    int
	zCh       Channel[int]
	pinCh     Channel[Pins]
	anchor    Anchor
	container func() Rect
	// reanchoring suppresses anchor capture while reanchor writes.
	reanchoring bool
	destroyed   bool
}

// NewStageObject creates a visible stage object with a fresh UUID, zero
// position and size, no tags, and an anchoring-capable PinState.
func NewStageObject(name string, ch Channels) *StageObject {
	o := &StageObject{
		ID:      uuid.NewString(),
		Name:    name,
		Tags:    NewObservableSequence[string](nil, ch.Tags),
		Visible: true,
		zCh:     ch.ZIndex,
		pinCh:   ch.Pins,
	}
	o.Position = NewObservablePoint(0, 0, o.geometry(ch.X), o.geometry(ch.Y))
	o.Size = NewObservableSize(0, 0, o.geometry(ch.Width), o.geometry(ch.Height))
	o.Pin = NewPinState(o.pinsChanged)
	return o
}

// geometry wraps a position or size channel so that every write re-measures
// the anchor before it is published.
func (o *StageObject) geometry(ch Channel[float64]) Channel[float64] {
	return ChannelFunc[float64](func(v float64) {
		o.geometryChanged()
		publish(ch, v)
	})
}

// geometryChanged re-captures the anchor after a position or size write made
// outside reanchor, so the next resize keeps the written edges.
func (o *StageObject) geometryChanged() {
	if o.reanchoring || o.container == nil || o.Pin == nil {
		return
	}
	o.anchor = CaptureAnchor(o.Pin.Pins(), o.Rect(), o.container())
}

// ZIndex returns the object's z-order index. Higher values draw on top.
func (o *StageObject) ZIndex() int { return o.zIndex }

// SetZIndex assigns the z-order index and publishes it.
func (o *StageObject) SetZIndex(z int) {
	if globalDebug {
		debugCheckDestroyed(o, "SetZIndex")
	}
	o.zIndex = z
	publish(o.zCh, z)
}

// Rect returns the unrotated position and size as a rectangle.
func (o *StageObject) Rect() Rect {
	return Rect{
		X: o.Position.X(), Y: o.Position.Y(),
		Width: o.Size.Width(), Height: o.Size.Height(),
	}
}

// Anchor returns the anchor captured at the last pin assignment or
// position/size write.
func (o *StageObject) Anchor() Anchor { return o.anchor }

// StageObject returns o. It lets a StageObject act as its own HitNode.
func (o *StageObject) StageObject() *StageObject { return o }

// pinsChanged is the PinState callback. It measures the object against its
// container (when attached) so later resizes keep the pinned edges in place.
func (o *StageObject) pinsChanged(p Pins) {
	if o.container != nil {
		o.anchor = CaptureAnchor(p, o.Rect(), o.container())
	} else {
		o.anchor = Anchor{Pins: p}
	}
	publish(o.pinCh, p)
}

// attach binds the object to a container bounds provider and measures the
// current anchor.
func (o *StageObject) attach(container func() Rect) {
	o.container = container
	if o.Pin != nil && container != nil {
		o.anchor = CaptureAnchor(o.Pin.Pins(), o.Rect(), container())
	}
}

// reanchor moves the object so its pinned edges keep their distances to
// container. Only fields whose value changes are written.
func (o *StageObject) reanchor(container Rect) {
	if o.Pin == nil || !o.anchor.Pins.Any() {
		return
	}
	o.reanchoring = true
	defer func() { o.reanchoring = false }()
	cur := o.Rect()
	next := o.anchor.Apply(cur, container)
	if next.X != cur.X {
		o.Position.SetX(next.X)
	}
	if next.Y != cur.Y {
		o.Position.SetY(next.Y)
	}
	if next.Width != cur.Width {
		o.Size.SetWidth(next.Width)
	}
	if next.Height != cur.Height {
		o.Size.SetHeight(next.Height)
	}
}

// textureScale is the scale from texture pixels to the object's size.
func (o *StageObject) textureScale() (sx, sy float64) {
	iw, ih := o.imageSize()
	if iw == 0 || ih == 0 {
		return 1, 1
	}
	return o.Size.Width() / iw, o.Size.Height() / ih
}

// localSize is the extent of the object's local space.
func (o *StageObject) localSize() (w, h float64) {
	iw, ih := o.imageSize()
	if iw == 0 || ih == 0 {
		return o.Size.Width(), o.Size.Height()
	}
	return iw, ih
}

func (o *StageObject) imageSize() (w, h float64) {
	if o.Image == nil {
		return 0, 0
	}
	b := o.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// --- Destruction ---

// Destroy marks the object destroyed, runs OnDestroy, and drops the image
// reference without deallocating it.
// Calling Destroy on a destroyed object is a no-op.
func (o *StageObject) Destroy() error {
	if o.destroyed {
		return nil
	}
	o.destroyed = true
	var err error
	if o.OnDestroy != nil {
		err = o.OnDestroy(o)
		o.OnDestroy = nil
	}
	// Image belongs to the caller and may be shared; drop the reference only.
	o.Image = nil
	o.container = nil
	return err
}

// IsDestroyed reports whether Destroy has been called.
func (o *StageObject) IsDestroyed() bool {
	return o.destroyed
}
