package stage

import (
	"cmp"
	"slices"
)

// Sorted returns every object ordered by z-index ascending. Objects with
// equal z keep insertion order.
func (c *Collection) Sorted() []*StageObject {
	out := make([]*StageObject, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.entries[k])
	}
	sortByZ(out)
	return out
}

// BringSelectedToFront moves every selected object above all other objects.
// The selected objects keep their relative order. Returns the number moved.
func (c *Collection) BringSelectedToFront() int {
	sel := c.Selected()
	if len(sel) == 0 {
		return 0
	}
	sortByZ(sel)
	for _, o := range sel {
		c.bringToFront(o)
	}
	return len(sel)
}

// SendSelectedToBack moves every selected object below all other objects.
// The selected objects keep their relative order. Returns the number moved.
func (c *Collection) SendSelectedToBack() int {
	sel := c.Selected()
	if len(sel) == 0 {
		return 0
	}
	sortByZ(sel)
	// Highest first: each lands under the previous one.
	for i := len(sel) - 1; i >= 0; i-- {
		c.sendToBack(sel[i])
	}
	return len(sel)
}

// bringToFront gives o a z-index one above the current maximum.
func (c *Collection) bringToFront(o *StageObject) {
	hi, ok := c.zBounds(o, true)
	if !ok {
		return
	}
	o.SetZIndex(hi + 1)
}

// sendToBack gives o a z-index one below the current minimum.
func (c *Collection) sendToBack(o *StageObject) {
	lo, ok := c.zBounds(o, false)
	if !ok {
		return
	}
	o.SetZIndex(lo - 1)
}

// zBounds returns the max (front) or min z-index among objects other than
// skip. ok is false when skip is the only object.
func (c *Collection) zBounds(skip *StageObject, front bool) (z int, ok bool) {
	for _, k := range c.keys {
		o := c.entries[k]
		if o == skip {
			continue
		}
		if !ok || (front && o.zIndex > z) || (!front && o.zIndex < z) {
			z, ok = o.zIndex, true
		}
	}
	return z, ok
}

func sortByZ(objs []*StageObject) {
	slices.SortStableFunc(objs, func(a, b *StageObject) int {
		return cmp.Compare(a.zIndex, b.zIndex)
	})
}
