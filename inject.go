package stage

// syntheticPointerEvent represents a single injected pointer event in overlay
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a pointer press at (x, y). The event is consumed on the
// next Update.
func (ov *Overlay) InjectPress(x, y float64) {
	ov.injectQueue = append(ov.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move at (x, y) with the button held down. Use
// this between InjectPress and InjectRelease to simulate a drag.
func (ov *Overlay) InjectMove(x, y float64) {
	ov.injectQueue = append(ov.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at (x, y).
func (ov *Overlay) InjectRelease(x, y float64) {
	ov.injectQueue = append(ov.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (ov *Overlay) InjectClick(x, y float64) {
	ov.InjectPress(x, y)
	ov.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2.
func (ov *Overlay) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	ov.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		ov.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	ov.InjectRelease(toX, toY)
}

// PendingInjected returns the number of queued synthetic events.
func (ov *Overlay) PendingInjected() int {
	return len(ov.injectQueue)
}

// processInjectedInput pops one event from the queue and feeds it through
// processPointer. Returns true if an event was consumed.
func (ov *Overlay) processInjectedInput() bool {
	if len(ov.injectQueue) == 0 {
		return false
	}
	evt := ov.injectQueue[0]
	copy(ov.injectQueue, ov.injectQueue[1:])
	ov.injectQueue = ov.injectQueue[:len(ov.injectQueue)-1]

	ov.processPointer(evt.x, evt.y, evt.pressed)
	return true
}
