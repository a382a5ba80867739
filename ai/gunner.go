package ai

import (
	"math"

	"github.com/lab1702/skirmish-web/game"
)

// Gunner holds the current weapon aim point for one ship. Behaviors write
// the aim point; the external weapon system reads it. The intercept math
// itself is a pure function so it can be exercised without a Gunner.
type Gunner struct {
	aim    game.Vec2
	hasAim bool
}

// SetTarget sets the externally-read aim point
func (g *Gunner) SetTarget(point game.Vec2) {
	g.aim = point
	g.hasAim = true
}

// ClearTarget removes the aim point so the weapon system holds fire
func (g *Gunner) ClearTarget() {
	g.aim = game.Vec2{}
	g.hasAim = false
}

// AimPoint returns the current aim point, if any
func (g *Gunner) AimPoint() (game.Vec2, bool) {
	return g.aim, g.hasAim
}

// TargetEnemy aims directly at the enemy's current position without lead
// prediction. A context without an enemy clears the aim instead.
func (g *Gunner) TargetEnemy(ctx *DecisionContext) {
	if !ctx.HasEnemy {
		g.ClearTarget()
		return
	}
	g.SetTarget(ctx.Enemy.Pos)
}

// PredictIntercept calculates where a projectile fired now at projSpeed
// will meet a moving target. The projectile inherits the shooter's frame,
// so the solve runs on the target's velocity relative to the shooter:
//
//	|targetPos + relVel*t - shooterPos| = projSpeed*t
//
// which expands to a quadratic in t. The smallest non-negative root wins.
// When no such root exists (the target is outrunning the projectile while
// opening distance) the target's current position is returned as a
// fallback so callers always get a finite aim point.
func PredictIntercept(shooterPos, shooterVel, targetPos, targetVel game.Vec2, projSpeed float64) game.Vec2 {
	if projSpeed <= 0 {
		return targetPos
	}

	rel := targetPos.Sub(shooterPos)
	relVel := targetVel.Sub(shooterVel)

	distSq := rel.LenSq()
	if distSq < 1e-9 {
		// Target is essentially on top of the shooter
		return targetPos
	}

	velSq := relVel.LenSq()
	if velSq < 1e-9 {
		// Stationary target - aim directly at it
		return targetPos
	}

	// a*t² + b*t + c = 0
	a := velSq - projSpeed*projSpeed
	b := 2 * rel.Dot(relVel)
	c := distSq

	var t float64
	if math.Abs(a) < 1e-9 {
		// Projectile and target share a speed; the quadratic degenerates
		// to the linear b*t + c = 0
		if math.Abs(b) < 1e-9 {
			return targetPos
		}
		t = -c / b
		if t < 0 {
			return targetPos
		}
	} else {
		discriminant := b*b - 4*a*c
		if discriminant < 0 {
			// Target too fast to intercept
			return targetPos
		}
		sqrtD := math.Sqrt(discriminant)
		t1 := (-b + sqrtD) / (2 * a)
		t2 := (-b - sqrtD) / (2 * a)

		// Smallest non-negative time
		switch {
		case t1 >= 0 && t2 >= 0:
			t = math.Min(t1, t2)
		case t1 >= 0:
			t = t1
		case t2 >= 0:
			t = t2
		default:
			return targetPos
		}
	}

	return targetPos.Add(targetVel.Scale(t))
}
