package ecs

import (
	"github.com/phanxgames/stage"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ChangeEventType is the Donburi event type for stage change events. Each
// event names the stage object by ObjectID (its UUID) and carries the written
// value: float64 for x, y, width and height, []string for the full tag list,
// stage.Pins for pin flags, int for z-index, and nil for added/removed.
var ChangeEventType = events.NewEventType[stage.ChangeEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Every observable write on an overlay's objects is queued on
// ChangeEventType in write order; systems receive them when the world's
// events are processed (events.ProcessAllEvents).
func NewDonburiStore(world donburi.World) stage.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event stage.ChangeEvent) {
	ChangeEventType.Publish(s.world, event)
}
