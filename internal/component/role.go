package component

// Role is the single gameplay role every simulated entity carries. It marks
// which systems act on the entity and excludes same-role collisions.
type Role uint8

const (
	RoleNone Role = iota
	RolePlayerCraft
	RoleHazard
	RoleProjectile
)

func (r Role) String() string {
	switch r {
	case RolePlayerCraft:
		return "player_craft"
	case RoleHazard:
		return "hazard"
	case RoleProjectile:
		return "projectile"
	}
	return "none"
}

// Tag stores the entity's Role.
type Tag struct {
	Role Role
}
