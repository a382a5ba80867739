package ai

import (
	"github.com/lab1702/skirmish-web/game"
)

// SelfState is the deciding ship's own snapshot within a DecisionContext
type SelfState struct {
	Pos         game.Vec2
	Vel         game.Vec2
	Heading     float64 // Radians
	Hull        float64 // Fraction 0..1
	Shield      float64 // Fraction 0..1
	Heat        float64 // Laser heat fraction 0..1
	Missiles    int
	MissileFrac float64 // Missiles as a fraction of the class load
	SpeedFrac   float64 // Current speed as a fraction of max
	InCombat    bool
}

// EnemyState is the snapshot of the currently-engaged enemy ship
type EnemyState struct {
	Pos         game.Vec2
	Vel         game.Vec2
	Hull        float64
	Shield      float64
	Heat        float64
	Missiles    int
	MissileFrac float64
}

// DecisionContext is an immutable per-tick snapshot of everything the AI
// is allowed to know about the world. The sensing layer builds one fresh
// context per ship per tick; behaviors and the state machine only read it.
//
// When HasEnemy is false every relational field is zeroed and every
// enemy-dependent utility term falls back to its documented baseline.
type DecisionContext struct {
	Self SelfState

	HasEnemy bool
	Enemy    EnemyState

	// Relational fields, valid only when HasEnemy is true
	ToEnemy      game.Vec2 // Enemy position minus self position
	Range        float64   // Length of ToEnemy
	RelVel       game.Vec2 // Enemy velocity minus self velocity
	ClosingSpeed float64   // Positive when the gap is shrinking
	EnemyFacing  float64   // Cosine of the enemy's bearing toward self
	LineOfSight  bool

	// Environment
	NearbyEnemies   int
	NearbyFriends   int
	NearestThreat   float64 // Distance to the closest hostile contact
	IncomingMissile bool
	LaserSpeed      float64 // Projectile speed constant for intercept math
}

// NetThreat returns nearby enemy count minus nearby friendly count
func (c *DecisionContext) NetThreat() int {
	return c.NearbyEnemies - c.NearbyFriends
}
