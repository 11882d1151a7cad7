package stage

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func newTestOverlay() *Overlay {
	cfg := DefaultConfig()
	cfg.Viewport = Rect{Width: 800, Height: 600}
	ov := NewOverlay(cfg)
	ov.SetActiveTool("select")
	return ov
}

// addBox adds an opaque w x h object at (x, y) and registers its pixels on surf.
func addBox(ov *Overlay, surf RGBASurface, name string, x, y, w, h float64) *StageObject {
	o := ov.NewObject(name)
	o.Position.Set(x, y)
	o.Size.Set(w, h)
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{G: 200, A: 255}), image.Point{}, draw.Src)
	surf[o.ID] = img
	ov.Add(o)
	return o
}

func TestOverlayRepublishesWrites(t *testing.T) {
	ov := newTestOverlay()
	var events []ChangeEvent
	ov.OnChange(func(e ChangeEvent) { events = append(events, e) })

	o := ov.NewObject("token")
	ov.Add(o)
	o.Position.SetX(12)
	o.Size.SetWidth(30)
	o.Tags.Push("hud")
	o.Pin.SetTop(true)
	o.SetZIndex(4)

	want := []struct {
		typ   ChangeType
		value any
	}{
		{ChangeAdded, nil},
		{ChangeX, 12.0},
		{ChangeWidth, 30.0},
		{ChangeTags, nil},
		{ChangePins, Pins{Top: true}},
		{ChangeZIndex, 4},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %d (%v), want %d", len(events), events, len(want))
	}
	for i, w := range want {
		e := events[i]
		if e.Type != w.typ || e.ObjectID != o.ID {
			t.Errorf("event %d = %v/%s, want %v/%s", i, e.Type, e.ObjectID, w.typ, o.ID)
		}
		if w.typ == ChangeTags {
			tags, ok := e.Value.([]string)
			if !ok || len(tags) != 1 || tags[0] != "hud" {
				t.Errorf("tags event value = %v", e.Value)
			}
			continue
		}
		if e.Value != w.value {
			t.Errorf("event %d value = %v, want %v", i, e.Value, w.value)
		}
	}
}

func TestOverlayResizeAnchorsPinnedObjects(t *testing.T) {
	ov := newTestOverlay()
	right := ov.NewObject("right")
	right.Position.Set(700, 10)
	right.Size.Set(80, 20)
	ov.Add(right)
	right.Pin.SetRight(true)

	stretch := ov.NewObject("bar")
	stretch.Position.Set(20, 560)
	stretch.Size.Set(760, 30)
	ov.Add(stretch)
	stretch.Pin.SetLeft(true)
	stretch.Pin.SetRight(true)
	stretch.Pin.SetBottom(true)

	free := ov.NewObject("free")
	free.Position.Set(100, 100)
	ov.Add(free)

	var moved []ChangeType
	ov.OnChange(func(e ChangeEvent) {
		if e.ObjectID == free.ID {
			t.Errorf("unpinned object received %v", e.Type)
		}
		moved = append(moved, e.Type)
	})

	ov.Resize(Rect{Width: 1000, Height: 700})

	if right.Position.X() != 900 || right.Position.Y() != 10 {
		t.Errorf("right-pinned position = %v, want {900 10}", right.Position.Vec2())
	}
	if got := stretch.Rect(); got != (Rect{20, 660, 960, 30}) {
		t.Errorf("stretched rect = %+v, want {20 660 960 30}", got)
	}
	if free.Position.Vec2() != (Vec2{100, 100}) {
		t.Errorf("free object moved to %v", free.Position.Vec2())
	}
	if ov.Viewport() != (Rect{Width: 1000, Height: 700}) {
		t.Errorf("Viewport = %+v", ov.Viewport())
	}
	// right: x; bar: y, width.
	if len(moved) != 3 {
		t.Errorf("change events = %v, want 3", moved)
	}
}

func TestOverlayPinCapturedAgainstCurrentViewport(t *testing.T) {
	ov := newTestOverlay()
	o := ov.NewObject("o")
	o.Size.Set(10, 10)
	ov.Add(o)

	ov.Resize(Rect{Width: 400, Height: 300})
	o.Position.Set(380, 0)
	o.Pin.SetRight(true)
	ov.Resize(Rect{Width: 500, Height: 300})

	if o.Position.X() != 480 {
		t.Errorf("X = %v, want 480", o.Position.X())
	}
}

func TestOverlayOrderingRequiresSelectTool(t *testing.T) {
	ov := newTestOverlay()
	surf := RGBASurface{}
	a := addBox(ov, surf, "a", 0, 0, 10, 10)
	b := addBox(ov, surf, "b", 0, 0, 10, 10)
	a.SetZIndex(0)
	b.SetZIndex(1)
	ov.Objects().Select(a.ID)

	ov.SetActiveTool("brush")
	if ov.BringToFront() {
		t.Error("BringToFront should refuse outside select tools")
	}
	if a.ZIndex() != 0 {
		t.Errorf("a z = %d, want unchanged 0", a.ZIndex())
	}

	ov.SetActiveTool("select")
	if !ov.BringToFront() {
		t.Error("BringToFront should run under the select tool")
	}
	if a.ZIndex() <= b.ZIndex() {
		t.Errorf("a z = %d, want above b z = %d", a.ZIndex(), b.ZIndex())
	}
	if !ov.SendToBack() || a.ZIndex() >= b.ZIndex() {
		t.Errorf("SendToBack: a z = %d, b z = %d", a.ZIndex(), b.ZIndex())
	}
}

func TestOverlayRemove(t *testing.T) {
	ov := newTestOverlay()
	o := ov.NewObject("o")
	ov.Add(o)

	var removedEvents int
	ov.OnChange(func(e ChangeEvent) {
		if e.Type == ChangeRemoved {
			removedEvents++
		}
	})

	removed, err := ov.Remove(o.ID)
	if !removed || err != nil {
		t.Fatalf("Remove = (%v, %v)", removed, err)
	}
	if !o.IsDestroyed() {
		t.Error("removed object should be destroyed")
	}
	removed, err = ov.Remove(o.ID)
	if removed || err != nil {
		t.Errorf("second Remove = (%v, %v), want (false, nil)", removed, err)
	}
	if removedEvents != 1 {
		t.Errorf("removed events = %d, want 1", removedEvents)
	}
}

func TestOverlayRemovePropagatesDestroyError(t *testing.T) {
	ov := newTestOverlay()
	o := ov.NewObject("o")
	boom := errors.New("boom")
	o.OnDestroy = func(*StageObject) error { return boom }
	ov.Add(o)

	removed, err := ov.Remove(o.ID)
	if !removed || !errors.Is(err, boom) {
		t.Errorf("Remove = (%v, %v), want (true, boom)", removed, err)
	}
}

func TestOverlayAddPanics(t *testing.T) {
	ov := newTestOverlay()
	t.Run("nil", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Add(nil) should panic")
			}
		}()
		ov.Add(nil)
	})
	t.Run("destroyed", func(t *testing.T) {
		o := ov.NewObject("gone")
		_ = o.Destroy()
		defer func() {
			if recover() == nil {
				t.Error("Add(destroyed) should panic")
			}
		}()
		ov.Add(o)
	})
}

func TestOverlayObjectAtTopmost(t *testing.T) {
	ov := newTestOverlay()
	surf := RGBASurface{}
	ov.SetSurface(surf)
	low := addBox(ov, surf, "low", 0, 0, 100, 100)
	high := addBox(ov, surf, "high", 50, 50, 100, 100)
	low.SetZIndex(0)
	high.SetZIndex(1)

	if got := ov.ObjectAt(75, 75); got != high {
		t.Errorf("ObjectAt overlap = %v, want high", got)
	}
	if got := ov.ObjectAt(10, 10); got != low {
		t.Errorf("ObjectAt low-only = %v, want low", got)
	}
	high.Visible = false
	if got := ov.ObjectAt(75, 75); got != low {
		t.Errorf("ObjectAt with hidden high = %v, want low", got)
	}
	if got := ov.ObjectAt(500, 500); got != nil {
		t.Errorf("ObjectAt empty = %v, want nil", got)
	}
}

func TestOverlayObjectAtWithoutSurface(t *testing.T) {
	ov := newTestOverlay()
	addBox(ov, RGBASurface{}, "box", 0, 0, 100, 100)
	if got := ov.ObjectAt(10, 10); got != nil {
		t.Errorf("ObjectAt before any surface = %v, want nil", got)
	}
}

func TestOverlayPressSkipsClickThrough(t *testing.T) {
	ov := newTestOverlay()
	surf := RGBASurface{}
	ov.SetSurface(surf)
	under := addBox(ov, surf, "under", 0, 0, 100, 100)
	over := addBox(ov, surf, "over", 0, 0, 100, 100)
	over.SetZIndex(5)
	over.ClickThrough = true
	over.SelectTool = "brush"

	var picked []*StageObject
	ov.OnSelect(func(o *StageObject) { picked = append(picked, o) })

	ov.InjectClick(50, 50)
	ov.Update()
	ov.Update()

	if len(picked) != 1 || picked[0] != under {
		t.Fatalf("picked = %v, want [under]", picked)
	}
	if !ov.Objects().IsSelected(under.ID) || ov.Objects().IsSelected(over.ID) {
		t.Error("only the object under the click-through one should be selected")
	}
}

func TestOverlayPressOnEmptyClearsSelection(t *testing.T) {
	ov := newTestOverlay()
	surf := RGBASurface{}
	ov.SetSurface(surf)
	o := addBox(ov, surf, "o", 0, 0, 10, 10)
	ov.Objects().Select(o.ID)

	ov.InjectClick(300, 300)
	for ov.PendingInjected() > 0 {
		ov.Update()
	}

	if ov.Objects().IsSelected(o.ID) {
		t.Error("press on empty space should clear the selection")
	}
}

func TestOverlayPressIgnoredOutsideSelectTool(t *testing.T) {
	ov := newTestOverlay()
	surf := RGBASurface{}
	ov.SetSurface(surf)
	o := addBox(ov, surf, "o", 0, 0, 10, 10)
	ov.SetActiveTool("brush")

	ov.InjectDrag(5, 5, 50, 50, 4)
	for ov.PendingInjected() > 0 {
		ov.Update()
	}

	if ov.Objects().IsSelected(o.ID) {
		t.Error("object should not be selected under a non-select tool")
	}
	if o.Position.Vec2() != (Vec2{0, 0}) {
		t.Errorf("object moved to %v under a non-select tool", o.Position.Vec2())
	}
}

func TestOverlayDragThrottledAndLandsOnRelease(t *testing.T) {
	ov := newTestOverlay()
	clock := newFakeClock()
	ov.SetClock(clock.Now)
	surf := RGBASurface{}
	ov.SetSurface(surf)
	o := addBox(ov, surf, "o", 0, 0, 100, 100)

	var xs []float64
	ov.OnChange(func(e ChangeEvent) {
		if e.Type == ChangeX {
			xs = append(xs, e.Value.(float64))
		}
	})

	ov.InjectPress(30, 50)
	ov.InjectMove(32, 50) // inside the dead zone
	ov.InjectMove(40, 50) // drag starts, first throttled call runs
	ov.InjectMove(45, 50) // same instant: dropped
	ov.InjectRelease(60, 50)
	for ov.PendingInjected() > 0 {
		ov.Update()
	}

	if o.Position.Vec2() != (Vec2{30, 0}) {
		t.Errorf("final position = %v, want {30 0}", o.Position.Vec2())
	}
	want := []float64{10, 30}
	if len(xs) != len(want) || xs[0] != want[0] || xs[1] != want[1] {
		t.Errorf("x writes = %v, want %v", xs, want)
	}
}

func TestOverlayDragMovesWholeSelection(t *testing.T) {
	ov := newTestOverlay()
	ov.SetClock(newFakeClock().Now)
	surf := RGBASurface{}
	ov.SetSurface(surf)
	a := addBox(ov, surf, "a", 0, 0, 50, 50)
	b := addBox(ov, surf, "b", 200, 200, 50, 50)
	ov.Objects().Select(a.ID)
	ov.Objects().Select(b.ID)

	ov.InjectDrag(10, 10, 30, 40, 3)
	for ov.PendingInjected() > 0 {
		ov.Update()
	}

	if a.Position.Vec2() != (Vec2{20, 30}) || b.Position.Vec2() != (Vec2{220, 230}) {
		t.Errorf("positions a=%v b=%v, want {20 30} and {220 230}", a.Position.Vec2(), b.Position.Vec2())
	}
}

func TestOverlayRemoveDuringDrag(t *testing.T) {
	ov := newTestOverlay()
	ov.SetClock(newFakeClock().Now)
	surf := RGBASurface{}
	ov.SetSurface(surf)
	o := addBox(ov, surf, "o", 0, 0, 50, 50)

	ov.InjectPress(10, 10)
	ov.InjectMove(30, 10)
	ov.Update()
	ov.Update()
	if _, err := ov.Remove(o.ID); err != nil {
		t.Fatal(err)
	}
	ov.InjectRelease(40, 10)
	ov.Update() // should not panic or touch the destroyed object
}

func TestOverlayResizeKeepsWritesAfterPinning(t *testing.T) {
	ov := newTestOverlay()
	o := ov.NewObject("right")
	o.Position.Set(700, 10)
	o.Size.Set(80, 20)
	ov.Add(o)
	o.Pin.SetRight(true)

	o.Position.SetX(500)
	ov.Resize(Rect{Width: 1000, Height: 600})

	if o.Position.X() != 700 {
		t.Errorf("X = %v, want 700", o.Position.X())
	}

	ov.Resize(Rect{Width: 800, Height: 600})
	if o.Position.X() != 500 {
		t.Errorf("X after shrinking back = %v, want 500", o.Position.X())
	}
}

func TestOverlayResizeKeepsWrittenStretchWidth(t *testing.T) {
	ov := newTestOverlay()
	o := ov.NewObject("bar")
	o.Position.Set(20, 560)
	o.Size.Set(760, 30)
	ov.Add(o)
	o.Pin.SetLeft(true)
	o.Pin.SetRight(true)

	o.Size.SetWidth(500)
	ov.Resize(Rect{Width: 1000, Height: 600})

	if got := o.Rect(); got != (Rect{20, 560, 700, 30}) {
		t.Errorf("rect = %+v, want {20 560 700 30}", got)
	}
}

func TestOverlayResizeAfterDrag(t *testing.T) {
	ov := newTestOverlay()
	ov.SetClock(newFakeClock().Now)
	surf := RGBASurface{}
	ov.SetSurface(surf)
	o := addBox(ov, surf, "o", 700, 10, 80, 20)
	o.Pin.SetRight(true)

	ov.InjectDrag(710, 15, 610, 15, 3)
	for ov.PendingInjected() > 0 {
		ov.Update()
	}
	if o.Position.X() != 600 {
		t.Fatalf("X after drag = %v, want 600", o.Position.X())
	}

	ov.Resize(Rect{Width: 1000, Height: 600})
	if o.Position.X() != 800 {
		t.Errorf("X after resize = %v, want 800", o.Position.X())
	}
}

func TestOverlayDragMovesInSelectionOrder(t *testing.T) {
	ov := newTestOverlay()
	ov.SetClock(newFakeClock().Now)
	surf := RGBASurface{}
	ov.SetSurface(surf)
	a := addBox(ov, surf, "a", 0, 0, 50, 50)
	b := addBox(ov, surf, "b", 200, 200, 50, 50)
	c := addBox(ov, surf, "c", 400, 0, 50, 50)
	for _, o := range []*StageObject{c, a, b} {
		ov.Objects().Select(o.ID)
	}

	var ids []string
	ov.OnChange(func(e ChangeEvent) {
		if e.Type == ChangeX {
			ids = append(ids, e.ObjectID)
		}
	})

	ov.InjectDrag(10, 10, 30, 40, 3)
	for ov.PendingInjected() > 0 {
		ov.Update()
	}

	want := []string{a.ID, b.ID, c.ID, a.ID, b.ID, c.ID}
	if len(ids) != len(want) {
		t.Fatalf("x writes = %d, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("write %d on %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestOverlayCollectionRemoveResetsPointer(t *testing.T) {
	ov := newTestOverlay()
	ov.SetClock(newFakeClock().Now)
	surf := RGBASurface{}
	ov.SetSurface(surf)
	a := addBox(ov, surf, "a", 0, 0, 50, 50)
	b := addBox(ov, surf, "b", 200, 200, 50, 50)
	ov.Objects().Select(a.ID)
	ov.Objects().Select(b.ID)

	var removed []string
	ov.OnChange(func(e ChangeEvent) {
		if e.Type == ChangeRemoved {
			removed = append(removed, e.ObjectID)
		}
	})

	ov.InjectPress(10, 10)
	ov.InjectMove(30, 10)
	ov.Update()
	ov.Update()
	if !ov.pointer.dragging || len(ov.pointer.origins) != 2 {
		t.Fatalf("drag not started: %+v", ov.pointer)
	}

	if _, err := ov.Objects().Remove(b.ID); err != nil {
		t.Fatal(err)
	}
	if len(ov.pointer.origins) != 1 || ov.pointer.origins[0].obj != a {
		t.Errorf("origins after removing b = %+v, want only a", ov.pointer.origins)
	}

	if _, err := ov.Objects().Remove(a.ID); err != nil {
		t.Fatal(err)
	}
	if ov.pointer.target != nil || ov.pointer.origins != nil || ov.pointer.down {
		t.Errorf("pointer still references removed target: %+v", ov.pointer)
	}
	if len(removed) != 2 || removed[0] != b.ID || removed[1] != a.ID {
		t.Errorf("removed events = %v, want [b a]", removed)
	}
}

func TestOverlayRemoveKeepsSharedImage(t *testing.T) {
	ov := newTestOverlay()
	shared := ebiten.NewImage(8, 8)
	a := ov.NewObject("a")
	b := ov.NewObject("b")
	a.Image = shared
	b.Image = shared
	ov.Add(a)
	ov.Add(b)

	if _, err := ov.Remove(a.ID); err != nil {
		t.Fatal(err)
	}
	if a.Image != nil {
		t.Error("removed object should drop its image reference")
	}
	if b.Image != shared {
		t.Error("remaining object lost its image")
	}
	if b.Image.Bounds().Dx() != 8 {
		t.Errorf("shared image width = %d, want 8", b.Image.Bounds().Dx())
	}
}
