package stage

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay is the top-level object that owns the stage objects, the viewport
// they anchor to, the active tool, and pointer state. Every observable write
// on one of its objects is republished as a ChangeEvent.
type Overlay struct {
	cfg      Config
	objects  *Collection
	viewport Rect
	tool     Tool
	store    EntityStore
	debug    bool

	changes  *Bus[ChangeEvent]
	selected *Bus[*StageObject]

	hit     HitTester
	surface PixelSurface

	// Input state
	pointer     pointerState
	drag        *Throttle[Vec2]
	injectQueue []syntheticPointerEvent
}

// NewOverlay creates an empty overlay. cfg is expected to be valid; use
// ParseConfig or Config.Validate for untrusted input.
func NewOverlay(cfg Config) *Overlay {
	ov := &Overlay{
		cfg:      cfg,
		objects:  NewCollection(),
		viewport: cfg.Viewport,
		changes:  NewBus[ChangeEvent](),
		selected: NewBus[*StageObject](),
	}
	ov.objects.removed = ov.objectRemoved
	ov.hit = HitTester{
		Tools:   ov,
		Surface: func() PixelSurface { return ov.surface },
	}
	ov.drag = NewThrottle(ov.moveSelection, cfg.DragThrottle)
	ov.SetDebugMode(cfg.Debug)
	return ov
}

// Config returns the overlay's configuration.
func (ov *Overlay) Config() Config { return ov.cfg }

// Objects returns the overlay's collection. Removing through the collection
// behaves like Overlay.Remove.
func (ov *Overlay) Objects() *Collection { return ov.objects }

// Viewport returns the container rectangle pinned objects anchor to.
func (ov *Overlay) Viewport() Rect { return ov.viewport }

// ActiveTool returns the current tool. Overlay implements ToolProvider.
func (ov *Overlay) ActiveTool() Tool { return ov.tool }

// SetActiveTool switches the current tool.
func (ov *Overlay) SetActiveTool(t Tool) {
	debugf("tool %q -> %q", ov.tool, t)
	ov.tool = t
}

// SetEntityStore sets the optional ECS bridge.
func (ov *Overlay) SetEntityStore(store EntityStore) {
	ov.store = store
}

// SetSurface overrides the pixel surface used for hit testing. By default the
// overlay has no surface until its first Draw, after which ImageSurface is
// used.
func (ov *Overlay) SetSurface(s PixelSurface) {
	ov.surface = s
}

// SetClock replaces the time source of the drag throttle.
func (ov *Overlay) SetClock(c Clock) {
	ov.drag.SetClock(c)
}

// SetDebugMode enables or disables debug mode. When enabled, use of destroyed
// objects panics and diagnostics are written to stderr.
func (ov *Overlay) SetDebugMode(enabled bool) {
	ov.debug = enabled
	globalDebug = enabled
}

// OnChange registers a callback for every change event.
func (ov *Overlay) OnChange(fn func(ChangeEvent)) Subscription {
	return ov.changes.Subscribe(fn)
}

// OnSelect registers a callback fired when a pointer press selects an object.
func (ov *Overlay) OnSelect(fn func(*StageObject)) Subscription {
	return ov.selected.Subscribe(fn)
}

// --- Objects ---

// NewObject creates a stage object whose writes are republished by this
// overlay. The object is not added; call Add.
func (ov *Overlay) NewObject(name string) *StageObject {
	var o *StageObject
	coord := func(t ChangeType) Channel[float64] {
		return ChannelFunc[float64](func(v float64) { ov.emit(t, o, v) })
	}
	o = NewStageObject(name, Channels{
		X:      coord(ChangeX),
		Y:      coord(ChangeY),
		Width:  coord(ChangeWidth),
		Height: coord(ChangeHeight),
		Tags:   ChannelFunc[[]string](func(v []string) { ov.emit(ChangeTags, o, v) }),
		Pins:   ChannelFunc[Pins](func(v Pins) { ov.emit(ChangePins, o, v) }),
		ZIndex: ChannelFunc[int](func(v int) { ov.emit(ChangeZIndex, o, v) }),
	})
	return o
}

// Add stores obj under its ID and anchors it to the viewport.
// Panics if obj is nil or destroyed.
func (ov *Overlay) Add(obj *StageObject) {
	if obj == nil {
		panic("stage: cannot add nil stage object")
	}
	if obj.IsDestroyed() {
		panic("stage: cannot add destroyed stage object")
	}
	ov.objects.Set(obj.ID, obj)
	obj.attach(ov.Viewport)
	ov.emit(ChangeAdded, obj, nil)
	if ov.debug {
		debugCheckObjectCount(ov.objects)
	}
}

// Remove removes and destroys the object with the given ID. See
// Collection.Remove for the result contract.
func (ov *Overlay) Remove(id string) (bool, error) {
	return ov.objects.Remove(id)
}

// objectRemoved runs for every object leaving the collection.
func (ov *Overlay) objectRemoved(o *StageObject) {
	ov.forget(o)
	ov.emit(ChangeRemoved, o, nil)
}

// Resize sets a new viewport and moves every pinned object so its pinned
// edges keep their distance to the viewport's edges.
func (ov *Overlay) Resize(viewport Rect) {
	debugf("resize %v -> %v", ov.viewport, viewport)
	ov.viewport = viewport
	for _, o := range ov.objects.All() {
		o.reanchor(viewport)
	}
}

// BringToFront raises the selected objects above all others. It does nothing
// and returns false unless the active tool is a select tool.
func (ov *Overlay) BringToFront() bool {
	if !ov.cfg.IsSelectTool(ov.tool) {
		return false
	}
	return ov.objects.BringSelectedToFront() > 0
}

// SendToBack lowers the selected objects below all others. It does nothing
// and returns false unless the active tool is a select tool.
func (ov *Overlay) SendToBack() bool {
	if !ov.cfg.IsSelectTool(ov.tool) {
		return false
	}
	return ov.objects.SendSelectedToBack() > 0
}

// ObjectAt returns the topmost visible object hit at (wx, wy), or nil.
func (ov *Overlay) ObjectAt(wx, wy float64) *StageObject {
	sorted := ov.objects.Sorted()
	for i := len(sorted) - 1; i >= 0; i-- {
		o := sorted[i]
		if !o.Visible {
			continue
		}
		if ov.hit.Test(BoundsHit, o, wx, wy) {
			return o
		}
	}
	return nil
}

func (ov *Overlay) emit(t ChangeType, o *StageObject, v any) {
	ev := ChangeEvent{Type: t, ObjectID: o.ID, Value: v}
	ov.changes.Publish(ev)
	if ov.store != nil {
		ov.store.EmitEvent(ev)
	}
}

// --- Frame ---

// Update processes pointer input. Call once per tick.
func (ov *Overlay) Update() {
	ov.processInput()
}

// Draw renders the visible objects in z order with the same transform the
// hit tester inverts.
func (ov *Overlay) Draw(screen *ebiten.Image) {
	if ov.surface == nil {
		ov.surface = ImageSurface{}
	}
	for _, o := range ov.objects.Sorted() {
		if !o.Visible || o.Image == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM = geoM(objectTransform(o))
		screen.DrawImage(o.Image, op)
	}
}
