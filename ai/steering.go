package ai

import (
	"math"

	"github.com/lab1702/skirmish-web/game"
)

// Obstacle is anything steering must not fly through: an asteroid, a
// wreck, another ship. The caller pre-filters the list to nearby entries.
type Obstacle struct {
	Pos    game.Vec2
	Vel    game.Vec2
	Radius float64
}

// SteerParams are the tuning constants of the control mapper. The three
// acceleration constants are divisors and must be positive; Validate
// rejects anything else at startup.
type SteerParams struct {
	MaxSpeed      float64 `yaml:"max_speed"`
	ArrivalRadius float64 `yaml:"arrival_radius"`
	LookAhead     float64 `yaml:"look_ahead"`  // Seconds of forward extrapolation for avoidance
	Margin        float64 `yaml:"margin"`      // Extra clearance beyond summed radii
	SelfRadius    float64 `yaml:"self_radius"` // Collision radius of the steered ship
	AccelForward  float64 `yaml:"accel_forward"`
	AccelReverse  float64 `yaml:"accel_reverse"`
	AccelStrafe   float64 `yaml:"accel_strafe"`
	DeadZone      float64 `yaml:"dead_zone"` // Velocity error below this maps to zero commands
}

// Control is one tick of normalized actuation output
type Control struct {
	Thrust     float64 // -1..1 along the ship's heading
	Strafe     float64 // -1..1 along the ship's right axis
	HeadingDeg float64 // Commanded heading in plane-space degrees
}

// ComputeControl is the pure steering/control mapper: it turns the current
// kinematic state, the active navigation goal and a pre-filtered obstacle
// list into normalized actuation commands. It holds no state, so identical
// inputs always produce identical output.
func ComputeControl(p SteerParams, pos, vel game.Vec2, heading float64, goal NavGoal, obstacles []Obstacle) Control {
	if !goal.Active {
		// No goal: coast, keep the current heading
		return Control{HeadingDeg: game.Deg(game.NormalizeAngleSigned(heading))}
	}

	toGoal := goal.Point.Sub(pos)
	dist := toGoal.Len()

	// Seek with a linear arrival ramp: full speed outside the arrival
	// radius, proportional inside it, zero at the goal
	desiredSpeed := p.MaxSpeed * game.Clamp01(dist/p.ArrivalRadius)
	desired := toGoal.NormalizedOr(game.Vec2{}).Scale(desiredSpeed)

	// A moving goal drags the desired velocity with it
	desired = desired.Add(goal.TargetVel)

	if goal.Avoid && len(obstacles) > 0 {
		desired = desired.Add(avoidance(p, pos, vel, obstacles))
	}

	// Velocity error projected onto the ship's own axes
	err := desired.Sub(vel)
	var thrust, strafe float64
	if err.Len() >= p.DeadZone {
		fwd := game.FromAngle(heading)
		right := game.FromAngle(heading - math.Pi/2)

		fwdErr := err.Dot(fwd)
		if fwdErr >= 0 {
			thrust = game.Clamp(fwdErr/p.AccelForward, -1, 1)
		} else {
			thrust = game.Clamp(fwdErr/p.AccelReverse, -1, 1)
		}
		strafe = game.Clamp(err.Dot(right)/p.AccelStrafe, -1, 1)
	}

	// Heading follows the desired velocity; a ship already matching it
	// faces the remaining vector to the goal instead
	headingDir := desired
	if headingDir.Len() < 1e-3 {
		headingDir = toGoal
	}
	headingTarget := heading
	if headingDir.Len() >= 1e-9 {
		headingTarget = headingDir.Angle()
	}

	return Control{
		Thrust:     thrust,
		Strafe:     strafe,
		HeadingDeg: game.Deg(game.NormalizeAngleSigned(headingTarget)),
	}
}

// avoidance accumulates repulsion away from every obstacle whose predicted
// closest approach to the ship's short look-ahead path falls inside the
// combined collision radius plus margin. Repulsion is weighted by inverse
// squared closest-approach distance, averaged, and scaled to max speed.
func avoidance(p SteerParams, pos, vel game.Vec2, obstacles []Obstacle) game.Vec2 {
	segEnd := pos.Add(vel.Scale(p.LookAhead))

	var repel game.Vec2
	contributors := 0
	for _, obs := range obstacles {
		futureObs := obs.Pos.Add(obs.Vel.Scale(p.LookAhead))
		closest := closestPointOnSegment(pos, segEnd, futureObs)
		gap := closest.Dist(futureObs)

		threshold := p.SelfRadius + obs.Radius + p.Margin
		if gap >= threshold {
			continue
		}

		away := closest.Sub(futureObs).NormalizedOr(vel.Perp().NormalizedOr(game.Vec2{X: 1}))
		weight := 1.0 / math.Max(gap*gap, 1e-4)
		repel = repel.Add(away.Scale(weight))
		contributors++
	}

	if contributors == 0 {
		return game.Vec2{}
	}
	return repel.Scale(1 / float64(contributors)).NormalizedOr(game.Vec2{}).Scale(p.MaxSpeed)
}

// closestPointOnSegment returns the point on segment [a,b] nearest to q
func closestPointOnSegment(a, b, q game.Vec2) game.Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq < 1e-12 {
		return a
	}
	t := game.Clamp01(q.Sub(a).Dot(ab) / lenSq)
	return a.Add(ab.Scale(t))
}
