package stage

import (
	"fmt"
	"iter"
	"slices"
)

// Collection is a keyed, insertion-ordered set of stage objects. Removing an
// entry destroys it: an object never leaves a Collection still live.
type Collection struct {
	keys     []string
	entries  map[string]*StageObject
	selected map[string]struct{}

	// removed runs after every successful removal, destroy error or not.
	removed func(o *StageObject)
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		entries:  make(map[string]*StageObject),
		selected: make(map[string]struct{}),
	}
}

// Get returns the object stored under key.
func (c *Collection) Get(key string) (*StageObject, bool) {
	o, ok := c.entries[key]
	return o, ok
}

// Set stores obj under key. A new key is appended to the iteration order;
// replacing an existing key keeps its position. The replaced object is not
// destroyed.
// Panics if obj is nil.
func (c *Collection) Set(key string, obj *StageObject) {
	if obj == nil {
		panic("stage: cannot set nil stage object")
	}
	if globalDebug {
		debugCheckDestroyed(obj, "Collection.Set")
	}
	if _, ok := c.entries[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = obj
}

// Has reports whether key is present.
func (c *Collection) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.keys)
}

// Keys returns the keys in insertion order.
func (c *Collection) Keys() []string {
	return slices.Clone(c.keys)
}

// All iterates entries in insertion order.
func (c *Collection) All() iter.Seq2[string, *StageObject] {
	return func(yield func(string, *StageObject) bool) {
		for _, k := range slices.Clone(c.keys) {
			o, ok := c.entries[k]
			if !ok {
				continue
			}
			if !yield(k, o) {
				return
			}
		}
	}
}

// Remove deletes key and destroys the removed object unless it is already
// destroyed. removed reports whether an entry existed, independent of whether
// a destroy ran. A failing destroy is returned after the entry is gone.
func (c *Collection) Remove(key string) (removed bool, err error) {
	o, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	delete(c.entries, key)
	delete(c.selected, key)
	if i := slices.Index(c.keys, key); i >= 0 {
		c.keys = slices.Delete(c.keys, i, i+1)
	}
	if o != nil && !o.IsDestroyed() {
		if derr := o.Destroy(); derr != nil {
			err = fmt.Errorf("destroy %q: %w", key, derr)
		}
	}
	if c.removed != nil && o != nil {
		c.removed(o)
	}
	return true, err
}

// Clear removes every entry through Remove. The first destroy error is
// returned; removal continues past it.
func (c *Collection) Clear() error {
	var first error
	for _, k := range slices.Clone(c.keys) {
		if _, err := c.Remove(k); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// --- Selection ---

// Select adds key to the selected subset. Unknown keys are ignored.
func (c *Collection) Select(key string) {
	if c.Has(key) {
		c.selected[key] = struct{}{}
	}
}

// Deselect removes key from the selected subset.
func (c *Collection) Deselect(key string) {
	delete(c.selected, key)
}

// ClearSelection empties the selected subset.
func (c *Collection) ClearSelection() {
	clear(c.selected)
}

// IsSelected reports whether key is selected.
func (c *Collection) IsSelected(key string) bool {
	_, ok := c.selected[key]
	return ok
}

// Selected returns the selected objects in insertion order.
func (c *Collection) Selected() []*StageObject {
	out := make([]*StageObject, 0, len(c.selected))
	for _, k := range c.keys {
		if _, ok := c.selected[k]; ok {
			out = append(out, c.entries[k])
		}
	}
	return out
}
