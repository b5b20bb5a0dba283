package component

// Health is removed from play once Value <= 0.
type Health struct {
	Value float32
}

// Depleted reports whether the entity is eligible for removal.
func (h *Health) Depleted() bool { return h.Value <= 0 }

// CollisionDamage is subtracted from the health of whatever this entity hits.
type CollisionDamage struct {
	Amount float32
}

// Shield is toggled by the player. It has no gameplay effect yet.
type Shield struct{}
