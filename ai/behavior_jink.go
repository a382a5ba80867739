package ai

import (
	"math/rand"

	"github.com/lab1702/skirmish-web/game"
)

// JinkEvadeBehavior is the emergency dodge: flee from the enemy while
// side-stepping on alternating sides at a fixed interval, the classic
// missile-shaking pattern. The ship faces along the flee axis rather than
// the enemy so the main thrusters carry the escape.
type JinkEvadeBehavior struct {
	cfg *Config
	nav *Navigator
	gun *Gunner
	rng *rand.Rand

	side      float64 // +1 or -1, flipped every jink interval
	sinceFlip float64
	fleeDir   game.Vec2 // Held flee direction when no enemy provides one
}

// NewJinkEvadeBehavior creates the jink-evade behavior
func NewJinkEvadeBehavior(cfg *Config, nav *Navigator, gun *Gunner, rng *rand.Rand) *JinkEvadeBehavior {
	return &JinkEvadeBehavior{cfg: cfg, nav: nav, gun: gun, rng: rng, side: 1}
}

func (b *JinkEvadeBehavior) Kind() Kind { return KindJinkEvade }

func (b *JinkEvadeBehavior) Enter(ctx *DecisionContext) {
	b.gun.ClearTarget()
	b.sinceFlip = 0
	if b.rng.Intn(2) == 0 {
		b.side = 1
	} else {
		b.side = -1
	}
	b.fleeDir = game.RandomUnit(b.rng)
}

func (b *JinkEvadeBehavior) Tick(ctx *DecisionContext, dt float64) {
	b.sinceFlip += dt
	if b.sinceFlip >= b.cfg.Jink.Interval {
		b.side = -b.side
		b.sinceFlip = 0
	}

	flee := b.fleeDir
	if ctx.HasEnemy {
		flee = ctx.ToEnemy.Scale(-1).NormalizedOr(flee)
	}

	amplitude := b.cfg.Jink.Amplitude
	if ctx.IncomingMissile {
		amplitude *= b.cfg.Jink.MissileBoost
	}

	side := flee.Perp().Scale(b.side * amplitude)
	target := ctx.Self.Pos.Add(flee.Scale(b.cfg.Jink.FleeDistance)).Add(side)
	b.nav.SetGoal(target, true)

	// Face the flee axis, not the enemy: acceleration beats aim here
	b.nav.SetFacing(flee)
}

func (b *JinkEvadeBehavior) Exit() {
	b.nav.ClearGoal()
	b.nav.ClearFacing()
}

// Utility is a weighted sum of missile threat, own condition, proximity
// and enemy attention, scaled down to 0.3x when neither an enemy nor a
// missile threat is present, and clamped to [0,1].
func (b *JinkEvadeBehavior) Utility(ctx *DecisionContext) float64 {
	u := 0.0
	if ctx.IncomingMissile {
		u += 0.7
	}
	u += b.cfg.Fear(ctx.Self.Hull, 0.25)
	u += b.cfg.Fear(ctx.Self.Shield, 0.25)

	if ctx.HasEnemy {
		if ctx.Range < 10 {
			u += 0.2
		}
		if ctx.LineOfSight {
			u += 0.15
		}
		u += game.Clamp(ctx.ClosingSpeed*closingSpeedScale, 0, 0.15)
		u += game.Clamp(ctx.EnemyFacing*0.1, 0, 0.1)
	}

	if !ctx.HasEnemy && !ctx.IncomingMissile {
		u *= 0.3
	}

	return game.Clamp(u, 0, 1)
}
