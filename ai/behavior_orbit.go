package ai

import (
	"math"
	"math/rand"
)

// OrbitBehavior kites: it circles the enemy at a preferred radius while
// keeping the Gunner on the predicted intercept point, occasionally
// reversing its rotation sense so the pattern stays unpredictable.
type OrbitBehavior struct {
	cfg *Config
	nav *Navigator
	gun *Gunner
	rng *rand.Rand

	clockwise bool
	inState   float64 // Seconds since entering the behavior
}

// NewOrbitBehavior creates the orbit behavior
func NewOrbitBehavior(cfg *Config, nav *Navigator, gun *Gunner, rng *rand.Rand) *OrbitBehavior {
	return &OrbitBehavior{cfg: cfg, nav: nav, gun: gun, rng: rng}
}

func (b *OrbitBehavior) Kind() Kind { return KindOrbit }

// Enter chooses the rotation sense from the current relative motion: the
// sign of the cross of relative velocity against the enemy direction says
// which way around the circle the ship is already traveling. Near-zero
// cross (flying straight at the enemy) picks a side at random.
func (b *OrbitBehavior) Enter(ctx *DecisionContext) {
	b.inState = 0
	cross := ctx.RelVel.Cross(ctx.ToEnemy)
	if math.Abs(cross) < 1e-3 {
		b.clockwise = b.rng.Intn(2) == 0
	} else {
		b.clockwise = cross > 0
	}
}

func (b *OrbitBehavior) Tick(ctx *DecisionContext, dt float64) {
	b.inState += dt
	if !ctx.HasEnemy {
		b.gun.ClearTarget()
		b.nav.ClearGoal()
		b.nav.ClearFacing()
		return
	}

	// Low per-second chance of reversing the orbit, but never before the
	// ship has settled into the circle
	if b.inState >= b.cfg.Orbit.MinFlipTime && b.rng.Float64() < b.cfg.Orbit.FlipChance*dt {
		b.clockwise = !b.clockwise
		b.inState = 0
	}

	lead := PredictIntercept(ctx.Self.Pos, ctx.Self.Vel, ctx.Enemy.Pos, ctx.Enemy.Vel, ctx.LaserSpeed)
	b.gun.SetTarget(lead)

	radius := (b.cfg.Orbit.MinRadius + b.cfg.Orbit.MaxRadius) / 2
	wp := b.nav.ComputeOrbitPoint(ctx.Enemy.Pos, ctx.Self.Pos, ctx.Self.Vel, b.clockwise, radius, b.cfg.Orbit.LeadTime)
	b.nav.SetMovingGoal(wp, ctx.Enemy.Vel, true)
	b.nav.SetFacing(lead.Sub(ctx.Self.Pos))
}

func (b *OrbitBehavior) Exit() {
	b.nav.ClearGoal()
	b.nav.ClearFacing()
}

// Utility scores kiting: healthy enough to stay in the fight but not so
// healthy that a straight attack is better, already near the orbit band,
// with sight of the enemy and weapons ready. Critically low hull or an
// outnumbered fight push the score down hard.
func (b *OrbitBehavior) Utility(ctx *DecisionContext) float64 {
	u := 0.4

	condition := (ctx.Self.Hull + ctx.Self.Shield) / 2
	if condition > 0.3 && condition < 0.9 {
		u += 0.2
	}

	if ctx.HasEnemy {
		switch {
		case ctx.Range >= b.cfg.Orbit.MinRadius && ctx.Range <= b.cfg.Orbit.MaxRadius:
			u += 0.3
		case ctx.Range > b.cfg.Orbit.MaxRadius*2:
			u -= 0.2
		}
		if ctx.LineOfSight {
			u += 0.2
		}
	}

	u += b.cfg.Fear(ctx.Self.Heat, 0.1)
	u += b.cfg.Desire(ctx.Self.MissileFrac, 0.1)

	if ctx.NetThreat() > 2 {
		u -= 0.3
	}
	if ctx.Self.Hull < 0.25 {
		u -= 0.4
	}

	if u < 0 {
		return 0
	}
	return u
}
