package ai

import (
	"math/rand"

	"github.com/lab1702/skirmish-web/game"
)

// patrolEdgeMargin keeps wander points away from the arena walls so the
// steering never fights the wall repulsion for the last few units
const patrolEdgeMargin = 10.0

// PatrolBehavior wanders between random points while no enemy is engaged
type PatrolBehavior struct {
	cfg *Config
	nav *Navigator
	rng *rand.Rand
}

// NewPatrolBehavior creates the patrol behavior
func NewPatrolBehavior(cfg *Config, nav *Navigator, rng *rand.Rand) *PatrolBehavior {
	return &PatrolBehavior{cfg: cfg, nav: nav, rng: rng}
}

func (b *PatrolBehavior) Kind() Kind { return KindPatrol }

func (b *PatrolBehavior) Enter(ctx *DecisionContext) {}

// Tick picks a fresh wander point whenever there is no current waypoint or
// the ship has arrived at the previous one, then navigates there with
// avoidance enabled.
func (b *PatrolBehavior) Tick(ctx *DecisionContext, dt float64) {
	if b.nav.HasGoal() && !b.nav.Arrived(ctx.Self.Pos) {
		return
	}
	b.nav.SetGoal(b.pickWanderPoint(ctx.Self.Pos), true)
}

func (b *PatrolBehavior) Exit() {
	b.nav.ClearGoal()
}

// Utility is all-or-nothing: patrol is the thing to do exactly when there
// is no active enemy.
func (b *PatrolBehavior) Utility(ctx *DecisionContext) float64 {
	if ctx.HasEnemy {
		return 0
	}
	return 1
}

// pickWanderPoint returns a random point within the patrol radius of the
// ship, clamped inside the arena with a margin (the same edge-reset trick
// the ship would otherwise need when a point lands on a wall).
func (b *PatrolBehavior) pickWanderPoint(from game.Vec2) game.Vec2 {
	offset := game.RandomUnit(b.rng).Scale(b.rng.Float64() * b.cfg.Patrol.Radius)
	p := from.Add(offset)
	p.X = game.Clamp(p.X, patrolEdgeMargin, game.ArenaWidth-patrolEdgeMargin)
	p.Y = game.Clamp(p.Y, patrolEdgeMargin, game.ArenaHeight-patrolEdgeMargin)
	return p
}
