package stage

import (
	"image/color"
	"math"
)

// HitNode is a rendered node the pointer can be tested against. Bounds and
// WorldToLocal must use the exact transform the renderer draws the node
// with, or hits will disagree with what is on screen.
type HitNode interface {
	// StageObject returns the stage object the node renders, or nil for nodes
	// that do not belong to the overlay.
	StageObject() *StageObject
	WorldBounds() Rect
	WorldToLocal(wx, wy float64) (lx, ly float64)
}

// HitFunc is a hit-test predicate. The renderer's default predicate is passed
// to HitTester.Test and used for nodes without a stage object.
type HitFunc func(node HitNode, wx, wy float64) bool

// PixelSurface extracts a single rendered pixel of a node in its local
// coordinate space.
type PixelSurface interface {
	PixelAt(node HitNode, lx, ly int) color.Color
}

// HitTester decides whether a pointer position hits a rendered node. Stage
// objects hit only on opaque pixels, and click-through objects only while
// their own select tool is active.
type HitTester struct {
	// Tools reports the active tool. Nil means no tool is active.
	Tools ToolProvider
	// Surface returns the active rendering surface, or nil when none is
	// available.
	Surface func() PixelSurface
}

// Test runs the layered hit test for (wx, wy) against node:
//
//  1. nodes without a stage object are decided by fallback
//  2. click-through objects miss unless their select tool is active
//  3. points outside the world bounding box miss, as do collapsed objects
//  4. otherwise the hit is the alpha of the 1x1 pixel under the point
func (h *HitTester) Test(fallback HitFunc, node HitNode, wx, wy float64) bool {
	obj := node.StageObject()
	if obj == nil {
		if fallback == nil {
			return false
		}
		return fallback(node, wx, wy)
	}
	if obj.ClickThrough && h.activeTool() != obj.SelectTool {
		return false
	}
	if !node.WorldBounds().Contains(wx, wy) {
		return false
	}
	if obj.collapsed() {
		return false
	}
	return h.opaqueAt(node, wx, wy)
}

func (h *HitTester) activeTool() Tool {
	if h.Tools == nil {
		return ""
	}
	return h.Tools.ActiveTool()
}

// opaqueAt samples the pixel under (wx, wy). A missing surface is a miss.
func (h *HitTester) opaqueAt(node HitNode, wx, wy float64) bool {
	if h.Surface == nil {
		return false
	}
	surf := h.Surface()
	if surf == nil {
		return false
	}
	lx, ly := node.WorldToLocal(wx, wy)
	px := surf.PixelAt(node, int(math.Floor(lx)), int(math.Floor(ly)))
	if px == nil {
		return false
	}
	_, _, _, a := px.RGBA()
	return a != 0
}

// BoundsHit is the plain bounding-box predicate, usable as a fallback.
func BoundsHit(node HitNode, wx, wy float64) bool {
	return node.WorldBounds().Contains(wx, wy)
}
