package ai

import "math"

// IdleBehavior coasts: no navigation goal, no weapon aim. It is the
// fallback when nothing else scores and the first behavior the machine
// enters on its initial tick.
type IdleBehavior struct {
	cfg *Config
	nav *Navigator
	gun *Gunner
}

// NewIdleBehavior creates the idle behavior
func NewIdleBehavior(cfg *Config, nav *Navigator, gun *Gunner) *IdleBehavior {
	return &IdleBehavior{cfg: cfg, nav: nav, gun: gun}
}

func (b *IdleBehavior) Kind() Kind { return KindIdle }

func (b *IdleBehavior) Enter(ctx *DecisionContext) {
	b.nav.ClearGoal()
	b.gun.ClearTarget()
}

func (b *IdleBehavior) Tick(ctx *DecisionContext, dt float64) {}

func (b *IdleBehavior) Exit() {}

// Utility scores idling: a small base, a bonus for a quiet neighborhood,
// and a fear bonus when too beaten up to want anything more active.
func (b *IdleBehavior) Utility(ctx *DecisionContext) float64 {
	u := 0.1
	if ctx.NearbyEnemies == 0 {
		u += 0.3
	}
	u += b.cfg.Fear(math.Min(ctx.Self.Hull, ctx.Self.Shield), 0.3)
	return u
}
