// Package ecs provides ECS adapters for stage change events.
//
// The primary adapter is [NewDonburiStore], which bridges stage change
// events (position, size, tags, pins, z-order, add/remove) into a [Donburi]
// world as typed events. Subscribe to [ChangeEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	overlay.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
