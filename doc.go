// Package stage manages overlay objects ("stage objects") placed on top of a
// rendered [Ebitengine] scene: positioning, resizing, edge anchoring, z-order,
// and pointer hit testing.
//
// # Quick start
//
//	ov := stage.NewOverlay(stage.DefaultConfig())
//	ov.Resize(stage.Rect{Width: 1280, Height: 720})
//
//	logo := ov.NewObject("logo")
//	logo.Image = logoImage
//	logo.Size.Set(128, 64)
//	logo.Position.Set(1280-128-16, 16)
//	logo.Pin.SetRight(true)
//	logo.Pin.SetTop(true)
//	ov.Add(logo)
//
// Call [Overlay.Update] and [Overlay.Draw] from your [ebiten.Game].
//
// # Observable state
//
// A stage object's Position, Size, and Tags publish every write. Position and
// Size publish each field on its own channel; Tags publishes a snapshot of the
// whole sequence after each structural mutation. Writes are applied before the
// notification, and the notification is delivered before the setter returns.
// An [Overlay] republishes all of them as [ChangeEvent] values
// ([Overlay.OnChange]) and, when an [EntityStore] is set, to the ECS
// (see stage/ecs).
//
// # Anchoring
//
// [PinState] holds four independent flags. Each assignment fires the
// object's callback, which measures the object's distance to the viewport
// edges; [Overlay.Resize] then keeps pinned edges at those distances. Pinning
// both edges of an axis stretches the object along it.
//
// # Hit testing
//
// [HitTester] rejects click-through objects whose select tool is not active,
// then rejects points outside the bounding box, then samples the 1x1 pixel
// under the pointer and reports a hit only on non-zero alpha.
//
// # Lifecycle
//
// [Collection.Remove] destroys what it removes, exactly once.
//
// [Ebitengine]: https://ebitengine.org
package stage
