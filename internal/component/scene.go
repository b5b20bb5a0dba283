package component

// Visual references the renderer-side asset for an entity. The handle is
// opaque to the simulation.
type Visual struct {
	Handle string
}

// StateScoped entities are torn down when a round ends.
type StateScoped struct{}
