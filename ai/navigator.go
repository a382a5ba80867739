package ai

import (
	"math"

	"github.com/lab1702/skirmish-web/game"
)

// NavGoal is the active navigation target. TargetVel carries the goal's
// own motion so steering can lead a moving target; Avoid enables obstacle
// avoidance on the way there.
type NavGoal struct {
	Point     game.Vec2
	TargetVel game.Vec2
	Avoid     bool
	Active    bool
}

// Navigator holds the current navigation goal and facing override for one
// ship. Whichever behavior is active overwrites the goal; its Exit clears
// it again, so a stale goal can never leak across a behavior switch.
type Navigator struct {
	goal          NavGoal
	facing        game.Vec2
	hasFacing     bool
	arrivalRadius float64
}

// NewNavigator creates a navigator with the given arrival radius
func NewNavigator(arrivalRadius float64) *Navigator {
	return &Navigator{arrivalRadius: arrivalRadius}
}

// SetGoal requests navigation to a stationary point
func (n *Navigator) SetGoal(point game.Vec2, avoid bool) {
	n.goal = NavGoal{Point: point, Avoid: avoid, Active: true}
}

// SetMovingGoal requests navigation to a point that is itself moving
func (n *Navigator) SetMovingGoal(point, targetVel game.Vec2, avoid bool) {
	n.goal = NavGoal{Point: point, TargetVel: targetVel, Avoid: avoid, Active: true}
}

// ClearGoal removes the navigation goal; the ship coasts
func (n *Navigator) ClearGoal() {
	n.goal = NavGoal{}
}

// Goal returns the current navigation goal
func (n *Navigator) Goal() NavGoal {
	return n.goal
}

// HasGoal reports whether a navigation goal is active
func (n *Navigator) HasGoal() bool {
	return n.goal.Active
}

// Arrived reports whether pos is within the arrival radius of the goal.
// Without an active goal it reports true so callers pick a fresh one.
func (n *Navigator) Arrived(pos game.Vec2) bool {
	if !n.goal.Active {
		return true
	}
	return pos.Dist(n.goal.Point) <= n.arrivalRadius
}

// SetFacing overrides the steering heading with an explicit direction
func (n *Navigator) SetFacing(dir game.Vec2) {
	d := dir.Normalized()
	if d == (game.Vec2{}) {
		return
	}
	n.facing = d
	n.hasFacing = true
}

// ClearFacing returns heading control to the steering output
func (n *Navigator) ClearFacing() {
	n.facing = game.Vec2{}
	n.hasFacing = false
}

// Facing returns the facing override direction, if one is set
func (n *Navigator) Facing() (game.Vec2, bool) {
	return n.facing, n.hasFacing
}

// minOrbitLeadSpeed keeps the orbit waypoint ahead of a ship that has
// momentarily stalled, so it always has somewhere to accelerate toward
const minOrbitLeadSpeed = 2.0

// ComputeOrbitPoint returns a waypoint on the circle of radius around
// center, advanced along the orbit tangent by the distance the ship's own
// tangential speed covers in leadTime. Chasing a point slightly ahead on
// the circle compensates for travel lag while circling a moving center.
// The result lies at exactly radius from center for any leadTime.
func (n *Navigator) ComputeOrbitPoint(center, selfPos, selfVel game.Vec2, clockwise bool, radius, leadTime float64) game.Vec2 {
	if radius < 1e-6 {
		return center
	}

	// Radial direction from center to ship; a ship sitting exactly on the
	// center gets an arbitrary fixed direction rather than NaN
	radial := selfPos.Sub(center).NormalizedOr(game.Vec2{X: 1})

	// Tangent in the direction of travel around the circle
	tangent := radial.Perp()
	sign := 1.0
	if clockwise {
		tangent = tangent.Scale(-1)
		sign = -1
	}

	tangSpeed := math.Abs(selfVel.Dot(tangent))
	if tangSpeed < minOrbitLeadSpeed {
		tangSpeed = minOrbitLeadSpeed
	}

	// Advance by the lead arc and re-project onto the circle
	leadAngle := tangSpeed * leadTime / radius
	angle := radial.Angle() + sign*leadAngle
	return center.Add(game.FromAngle(angle).Scale(radius))
}
