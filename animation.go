package stage

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to two observable fields of a StageObject at once.
// Values are written through the observable setters, so every frame of the
// animation is published like any other write. If the target object is
// destroyed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	apply  [2]func(float64)
	count  int
	target *StageObject
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values. If the
// target has been destroyed, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDestroyed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.apply[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that moves obj to (toX, toY) over
// duration seconds using the easing function.
func TweenPosition(obj *StageObject, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: obj}
	g.tweens[0] = gween.New(float32(obj.Position.X()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(obj.Position.Y()), float32(toY), duration, fn)
	g.apply[0] = obj.Position.SetX
	g.apply[1] = obj.Position.SetY
	return g
}

// TweenSize creates a TweenGroup that resizes obj to (toW, toH) over duration
// seconds using the easing function.
func TweenSize(obj *StageObject, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: obj}
	g.tweens[0] = gween.New(float32(obj.Size.Width()), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(obj.Size.Height()), float32(toH), duration, fn)
	g.apply[0] = obj.Size.SetWidth
	g.apply[1] = obj.Size.SetHeight
	return g
}
