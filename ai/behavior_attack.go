package ai

// AttackBehavior pursues the enemy and keeps the Gunner aimed at the
// predicted intercept point
type AttackBehavior struct {
	cfg *Config
	nav *Navigator
	gun *Gunner
}

// NewAttackBehavior creates the attack behavior
func NewAttackBehavior(cfg *Config, nav *Navigator, gun *Gunner) *AttackBehavior {
	return &AttackBehavior{cfg: cfg, nav: nav, gun: gun}
}

func (b *AttackBehavior) Kind() Kind { return KindAttack }

func (b *AttackBehavior) Enter(ctx *DecisionContext) {}

// Tick recomputes the intercept solution every tick (never cached), aims
// the Gunner at it, and chases the enemy with a velocity lead. At knife
// range or when closing fast the ship faces the lead point so the lasers
// bear; otherwise heading is left to the steering output.
func (b *AttackBehavior) Tick(ctx *DecisionContext, dt float64) {
	if !ctx.HasEnemy {
		b.gun.ClearTarget()
		b.nav.ClearGoal()
		b.nav.ClearFacing()
		return
	}

	lead := PredictIntercept(ctx.Self.Pos, ctx.Self.Vel, ctx.Enemy.Pos, ctx.Enemy.Vel, ctx.LaserSpeed)
	b.gun.SetTarget(lead)

	// Negative dot of relative velocity against the enemy direction means
	// the gap is closing
	closingFast := ctx.RelVel.Dot(ctx.ToEnemy) < -b.cfg.Attack.ClosingThreshold
	if ctx.Range < b.cfg.Attack.CloseRange || closingFast {
		b.nav.SetFacing(lead.Sub(ctx.Self.Pos))
	} else {
		b.nav.ClearFacing()
	}

	goal := ctx.Enemy.Pos.Add(ctx.Enemy.Vel.Scale(b.cfg.Attack.LeadTime))
	b.nav.SetMovingGoal(goal, ctx.Enemy.Vel, true)
}

func (b *AttackBehavior) Exit() {
	b.nav.ClearGoal()
	b.nav.ClearFacing()
}

// Utility scores the urge to fight: own condition, enemy weakness, a
// sweet-spot range band, and weapon readiness, discounted when the local
// fight is outnumbered. Without an enemy there is nothing to attack.
func (b *AttackBehavior) Utility(ctx *DecisionContext) float64 {
	if !ctx.HasEnemy {
		return 0
	}

	u := 0.5
	u += b.cfg.Desire(ctx.Self.Hull, 0.15)
	u += b.cfg.Desire(ctx.Self.Shield, 0.15)

	// A weakened enemy is the strongest draw
	enemyCondition := (ctx.Enemy.Hull + ctx.Enemy.Shield) / 2
	u += b.cfg.Fear(enemyCondition, 0.5)

	// Enemy weapon state
	u += b.cfg.Desire(ctx.Enemy.Heat, 0.1)
	u += b.cfg.Desire(ctx.Enemy.MissileFrac, 0.05)

	if ctx.Range > 6 && ctx.Range < 40 {
		u += 0.3
	}
	if ctx.LineOfSight {
		u += 0.1
	}

	// Own weapon state
	u += b.cfg.Fear(ctx.Self.Heat, 0.15)
	u += b.cfg.Desire(ctx.Self.MissileFrac, 0.1)

	if ctx.NetThreat() > 2 {
		u -= 0.3
	}

	if u < 0 {
		return 0
	}
	return u
}
