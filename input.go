package stage

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// pointerState tracks the single mouse pointer across frames.
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	target   *StageObject
	dragging bool
	origins  []dragOrigin // selection in Selected order
}

// dragOrigin is where a dragged object was when the drag started.
type dragOrigin struct {
	obj *StageObject
	pos Vec2
}

// processInput is called from Update. Injected events take priority over the
// real cursor, one per frame.
func (ov *Overlay) processInput() {
	if ov.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	ov.processPointer(float64(mx), float64(my), pressed)
}

// processPointer runs the press/drag/release state machine. Pointer
// coordinates are overlay (world) coordinates.
func (ov *Overlay) processPointer(wx, wy float64, pressed bool) {
	ps := &ov.pointer

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.dragging = false
		ps.target = ov.pick(wx, wy)

	case pressed && ps.down:
		if wx == ps.lastX && wy == ps.lastY {
			return
		}
		ps.lastX, ps.lastY = wx, wy
		if ps.target == nil {
			return
		}
		if !ps.dragging {
			dx, dy := wx-ps.startX, wy-ps.startY
			if math.Sqrt(dx*dx+dy*dy) <= ov.cfg.DragDeadZone {
				return
			}
			ov.beginDrag()
		}
		ov.drag.Call(Vec2{wx - ps.startX, wy - ps.startY})

	case !pressed && ps.down:
		if ps.dragging {
			// Land exactly where the pointer was released, even when the last
			// move was throttled away.
			ov.moveSelection(Vec2{wx - ps.startX, wy - ps.startY})
		}
		ov.pointer = pointerState{lastX: wx, lastY: wy}

	default:
		ps.lastX, ps.lastY = wx, wy
	}
}

// pick selects the topmost object under the pointer when a select tool is
// active. A press on empty space clears the selection.
func (ov *Overlay) pick(wx, wy float64) *StageObject {
	if !ov.cfg.IsSelectTool(ov.tool) {
		return nil
	}
	target := ov.ObjectAt(wx, wy)
	if target == nil {
		ov.objects.ClearSelection()
		return nil
	}
	if !ov.objects.IsSelected(target.ID) {
		ov.objects.ClearSelection()
		ov.objects.Select(target.ID)
	}
	ov.selected.Publish(target)
	return target
}

// beginDrag records where every selected object started.
func (ov *Overlay) beginDrag() {
	ps := &ov.pointer
	ps.dragging = true
	sel := ov.objects.Selected()
	ps.origins = make([]dragOrigin, 0, len(sel))
	for _, o := range sel {
		ps.origins = append(ps.origins, dragOrigin{obj: o, pos: o.Position.Vec2()})
	}
	ov.drag.Reset()
}

// moveSelection offsets every dragged object from its drag-start position, in
// selection order.
func (ov *Overlay) moveSelection(delta Vec2) {
	for _, d := range ov.pointer.origins {
		if d.obj.IsDestroyed() {
			continue
		}
		d.obj.Position.Set(d.pos.X+delta.X, d.pos.Y+delta.Y)
	}
}

// forget drops o from the pointer state: a removed object is neither the
// press target nor dragged any further.
func (ov *Overlay) forget(o *StageObject) {
	ps := &ov.pointer
	if ps.target == o {
		ov.pointer = pointerState{lastX: ps.lastX, lastY: ps.lastY}
		return
	}
	ps.origins = slices.DeleteFunc(ps.origins, func(d dragOrigin) bool { return d.obj == o })
}
