package ai

import (
	"math/rand"

	"github.com/lab1702/skirmish-web/game"
)

// closingSpeedScale converts a closing speed in units per second into a
// utility contribution before clamping
const closingSpeedScale = 0.01

// EvadeBehavior runs away: it picks a flee point on the far side of the
// ship from the enemy and refreshes it periodically. Weapons stay cold
// while evading.
type EvadeBehavior struct {
	cfg *Config
	nav *Navigator
	gun *Gunner
	rng *rand.Rand

	// Cached flee point and the time since it was computed
	fleePoint game.Vec2
	hasFlee   bool
	sinceFlee float64
}

// NewEvadeBehavior creates the evade behavior
func NewEvadeBehavior(cfg *Config, nav *Navigator, gun *Gunner, rng *rand.Rand) *EvadeBehavior {
	return &EvadeBehavior{cfg: cfg, nav: nav, gun: gun, rng: rng}
}

func (b *EvadeBehavior) Kind() Kind { return KindEvade }

func (b *EvadeBehavior) Enter(ctx *DecisionContext) {
	b.gun.ClearTarget()
	b.computeFleePoint(ctx)
}

func (b *EvadeBehavior) Tick(ctx *DecisionContext, dt float64) {
	b.sinceFlee += dt
	if !b.hasFlee || b.sinceFlee >= b.cfg.Evade.RecomputeInterval || b.nav.Arrived(ctx.Self.Pos) {
		b.computeFleePoint(ctx)
	}
}

func (b *EvadeBehavior) Exit() {
	b.nav.ClearGoal()
	b.hasFlee = false
}

// computeFleePoint picks a point directly away from the enemy (random
// direction when there is none) at the configured flee distance and
// navigates there with avoidance enabled
func (b *EvadeBehavior) computeFleePoint(ctx *DecisionContext) {
	away := game.RandomUnit(b.rng)
	if ctx.HasEnemy {
		away = ctx.ToEnemy.Scale(-1).NormalizedOr(away)
	}
	b.fleePoint = ctx.Self.Pos.Add(away.Scale(b.cfg.Evade.FleeDistance))
	b.hasFlee = true
	b.sinceFlee = 0
	b.nav.SetGoal(b.fleePoint, true)
}

// Utility scores the urge to disengage: low hull or shield, being
// outnumbered, an enemy that sees us, closes on us or faces us, hot
// lasers, and above all an incoming missile. Pressed up against an enemy
// with line of sight, plain fleeing loses some appeal (jinking covers
// that case better).
func (b *EvadeBehavior) Utility(ctx *DecisionContext) float64 {
	u := 0.3
	u += b.cfg.Fear(ctx.Self.Hull, 0.4)
	u += b.cfg.Fear(ctx.Self.Shield, 0.3)

	if ctx.NetThreat() > 1 {
		u += 0.2
	}
	if ctx.IncomingMissile {
		u += 0.5
	}
	u += b.cfg.Desire(ctx.Self.Heat, 0.1)

	if ctx.HasEnemy {
		if ctx.LineOfSight {
			u += 0.2
		}
		u += game.Clamp(ctx.ClosingSpeed*closingSpeedScale, -0.2, 0.2)
		u += game.Clamp(ctx.EnemyFacing*0.2, -0.2, 0.2)
		u += b.cfg.Desire(1-ctx.Enemy.MissileFrac, 0.1)
		if ctx.Range < 7 && ctx.LineOfSight {
			u -= 0.2
		}
	}

	if u < 0 {
		return 0
	}
	return u
}
