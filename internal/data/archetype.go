package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Vec3 is a YAML-friendly vector.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

func (v Vec3) Mgl() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

// Range is a half-open [Min, Max) interval.
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// SpaceshipTemplate describes the player craft.
type SpaceshipTemplate struct {
	Visual           string  `yaml:"visual"`
	Radius           float32 `yaml:"radius"`
	Health           float32 `yaml:"health"`
	CollisionDamage  float32 `yaml:"collision_damage"`
	Spawn            Vec3    `yaml:"spawn"`
	TranslationSpeed float32 `yaml:"translation_speed"`
	RotationSpeed    float32 `yaml:"rotation_speed"` // rad/s about world Y
	RollSpeed        float32 `yaml:"roll_speed"`     // rad/s about local Z
}

// MissileTemplate describes a craft projectile.
type MissileTemplate struct {
	Visual            string  `yaml:"visual"`
	Radius            float32 `yaml:"radius"`
	Health            float32 `yaml:"health"`
	CollisionDamage   float32 `yaml:"collision_damage"`
	Speed             float32 `yaml:"speed"`
	ForwardSpawnRange float32 `yaml:"forward_spawn_range"`
}

// AsteroidTemplate describes a spawned hazard.
type AsteroidTemplate struct {
	Visual             string  `yaml:"visual"`
	Radius             float32 `yaml:"radius"`
	Health             float32 `yaml:"health"`
	CollisionDamage    float32 `yaml:"collision_damage"`
	VelocityScalar     float32 `yaml:"velocity_scalar"`
	AccelerationScalar float32 `yaml:"acceleration_scalar"`
	RotateSpeed        float32 `yaml:"rotate_speed"`
	SpawnInterval      float32 `yaml:"spawn_interval"` // seconds
	SpawnRangeX        Range   `yaml:"spawn_range_x"`
	SpawnRangeZ        Range   `yaml:"spawn_range_z"`
}

// Archetypes is the full set of entity templates.
type Archetypes struct {
	DespawnDistance float32           `yaml:"despawn_distance"`
	Spaceship       SpaceshipTemplate `yaml:"spaceship"`
	Missile         MissileTemplate   `yaml:"missile"`
	Asteroid        AsteroidTemplate  `yaml:"asteroid"`
}

// DefaultArchetypes returns the built-in tuning.
func DefaultArchetypes() *Archetypes {
	return &Archetypes{
		DespawnDistance: 100,
		Spaceship: SpaceshipTemplate{
			Visual:           "Spaceship.glb#Scene0",
			Radius:           3,
			Health:           100,
			CollisionDamage:  100,
			Spawn:            Vec3{X: 0, Y: 0, Z: -20},
			TranslationSpeed: 25,
			RotationSpeed:    2.5,
			RollSpeed:        2.5,
		},
		Missile: MissileTemplate{
			Visual:            "Missiles.glb#Scene0",
			Radius:            1,
			Health:            1,
			CollisionDamage:   10,
			Speed:             50,
			ForwardSpawnRange: 10,
		},
		Asteroid: AsteroidTemplate{
			Visual:             "Asteroid.glb#Scene0",
			Radius:             2.5,
			Health:             80,
			CollisionDamage:    35,
			VelocityScalar:     5,
			AccelerationScalar: 1,
			RotateSpeed:        2.5,
			SpawnInterval:      1,
			SpawnRangeX:        Range{Min: -25, Max: 25},
			SpawnRangeZ:        Range{Min: 0, Max: 25},
		},
	}
}

// LoadArchetypes reads an archetype YAML file. Keys missing from the file keep
// their DefaultArchetypes value.
func LoadArchetypes(path string) (*Archetypes, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetypes: %w", err)
	}
	a := DefaultArchetypes()
	if err := yaml.Unmarshal(raw, a); err != nil {
		return nil, fmt.Errorf("parse archetypes: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("archetypes %s: %w", path, err)
	}
	return a, nil
}

// Validate rejects tuning the simulation cannot run with.
func (a *Archetypes) Validate() error {
	var errs []error
	positive := func(name string, v float32) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positive("despawn_distance", a.DespawnDistance)
	positive("spaceship.radius", a.Spaceship.Radius)
	positive("missile.radius", a.Missile.Radius)
	positive("asteroid.radius", a.Asteroid.Radius)
	positive("asteroid.spawn_interval", a.Asteroid.SpawnInterval)
	if a.Asteroid.SpawnRangeX.Max < a.Asteroid.SpawnRangeX.Min {
		errs = append(errs, errors.New("asteroid.spawn_range_x: max below min"))
	}
	if a.Asteroid.SpawnRangeZ.Max < a.Asteroid.SpawnRangeZ.Min {
		errs = append(errs, errors.New("asteroid.spawn_range_z: max below min"))
	}
	return errors.Join(errs...)
}
