package ecs

type commandKind uint8

const (
	cmdSpawn commandKind = iota
	cmdApply
	cmdAttach
	cmdDespawn
)

type command struct {
	kind   commandKind
	id     EntityID
	parent EntityID
	fn     func(EntityID)
}

// FlushStats summarises one Flush.
type FlushStats struct {
	Spawned   int
	Despawned int
}

// Spawn reserves a new entity id and queues build to attach its components
// at the next Flush. Until then the entity matches no query.
func (w *World) Spawn(build func(EntityID)) EntityID {
	id := w.pool.Create()
	w.commands = append(w.commands, command{kind: cmdSpawn, id: id, fn: build})
	return id
}

// Apply queues fn to run against id at the next Flush. It is dropped if id
// is no longer alive by then.
func (w *World) Apply(id EntityID, fn func(EntityID)) {
	w.commands = append(w.commands, command{kind: cmdApply, id: id, fn: fn})
}

// Attach queues child to be parented under parent at the next Flush.
func (w *World) Attach(parent, child EntityID) {
	w.commands = append(w.commands, command{kind: cmdAttach, id: child, parent: parent})
}

// Despawn queues id, and recursively its children, for destruction at the
// next Flush. Despawning an id that is already gone is a no-op.
func (w *World) Despawn(id EntityID) {
	w.commands = append(w.commands, command{kind: cmdDespawn, id: id})
}

// Flush applies every queued command in the order it was issued.
func (w *World) Flush() FlushStats {
	var stats FlushStats
	// Commands queued by the callbacks below land in the same slice and are
	// processed in this loop as well.
	for i := 0; i < len(w.commands); i++ {
		c := w.commands[i]
		switch c.kind {
		case cmdSpawn:
			if !w.pool.Alive(c.id) {
				continue
			}
			if c.fn != nil {
				c.fn(c.id)
			}
			stats.Spawned++
		case cmdApply:
			if w.pool.Alive(c.id) {
				c.fn(c.id)
			}
		case cmdAttach:
			if w.pool.Alive(c.id) && w.pool.Alive(c.parent) {
				w.parents[c.id] = c.parent
				w.children[c.parent] = append(w.children[c.parent], c.id)
			}
		case cmdDespawn:
			stats.Despawned += w.destroyRecursive(c.id)
		}
	}
	w.commands = w.commands[:0]
	return stats
}

func (w *World) destroyRecursive(id EntityID) int {
	if !w.pool.Alive(id) {
		return 0
	}
	n := 0
	kids := append([]EntityID(nil), w.children[id]...)
	for _, child := range kids {
		n += w.destroyRecursive(child)
	}
	delete(w.children, id)
	if p, ok := w.parents[id]; ok {
		w.detach(p, id)
	}

	for _, fn := range w.onDespawn {
		fn(id)
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
	return n + 1
}

func (w *World) detach(parent, child EntityID) {
	delete(w.parents, child)
	kids := w.children[parent]
	for i, k := range kids {
		if k == child {
			w.children[parent] = append(kids[:i], kids[i+1:]...)
			break
		}
	}
}
