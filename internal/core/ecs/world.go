package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the parent/child hierarchy and a deferred command queue that is
// flushed at every phase barrier.
type World struct {
	pool     *EntityPool
	registry *Registry
	commands []command
	children map[EntityID][]EntityID
	parents  map[EntityID]EntityID

	onDespawn []func(EntityID)
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
		commands: make([]command, 0, 64),
		children: make(map[EntityID][]EntityID),
		parents:  make(map[EntityID]EntityID),
	}
}

// Register creates a component store for T and registers it with w so that
// despawned entities are removed from it.
func Register[T any](w *World) *Store[T] {
	s := NewStore[T]()
	w.registry.Register(s)
	return s
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities, including ids reserved by a
// pending Spawn.
func (w *World) Len() int { return w.pool.Len() }

// OnDespawn registers fn to run for every entity destroyed by Flush, before
// its components are removed.
func (w *World) OnDespawn(fn func(EntityID)) {
	w.onDespawn = append(w.onDespawn, fn)
}

// Children returns the direct children of id.
func (w *World) Children(id EntityID) []EntityID {
	return w.children[id]
}

// Parent returns the parent of id, if any.
func (w *World) Parent(id EntityID) (EntityID, bool) {
	p, ok := w.parents[id]
	return p, ok
}

// Pending returns the number of queued commands.
func (w *World) Pending() int { return len(w.commands) }
