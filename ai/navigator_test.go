package ai

import (
	"math"
	"testing"

	"github.com/lab1702/skirmish-web/game"
)

func TestNavigatorGoalLifecycle(t *testing.T) {
	nav := NewNavigator(5)

	if nav.HasGoal() {
		t.Error("fresh navigator should have no goal")
	}
	if !nav.Arrived(game.Vec2{X: 100, Y: 100}) {
		t.Error("navigator without a goal should report arrived")
	}

	nav.SetGoal(game.Vec2{X: 20, Y: 0}, true)
	if !nav.HasGoal() {
		t.Error("goal should be active after SetGoal")
	}
	if !nav.Goal().Avoid {
		t.Error("avoidance flag should be carried on the goal")
	}
	if nav.Arrived(game.Vec2{}) {
		t.Error("20 units out with arrival radius 5 is not arrived")
	}
	if !nav.Arrived(game.Vec2{X: 17, Y: 0}) {
		t.Error("3 units out with arrival radius 5 is arrived")
	}

	nav.ClearGoal()
	if nav.HasGoal() {
		t.Error("goal should be cleared")
	}
}

func TestNavigatorFacingOverride(t *testing.T) {
	nav := NewNavigator(5)

	if _, ok := nav.Facing(); ok {
		t.Error("fresh navigator should have no facing override")
	}

	nav.SetFacing(game.Vec2{X: 3, Y: 4})
	dir, ok := nav.Facing()
	if !ok {
		t.Fatal("facing override should be set")
	}
	if math.Abs(dir.Len()-1) > 1e-9 {
		t.Errorf("facing override should be normalized, got length %g", dir.Len())
	}

	// A zero direction cannot carry a facing; the old override stays
	nav.SetFacing(game.Vec2{})
	if _, ok := nav.Facing(); !ok {
		t.Error("zero-vector SetFacing should not clear an existing override")
	}

	nav.ClearFacing()
	if _, ok := nav.Facing(); ok {
		t.Error("facing override should be cleared")
	}
}

// TestComputeOrbitPointRadius verifies the radius invariant: the waypoint
// sits at exactly the orbit radius from the center for any lead time.
func TestComputeOrbitPointRadius(t *testing.T) {
	nav := NewNavigator(5)
	center := game.Vec2{X: 50, Y: 50}
	selfPos := game.Vec2{X: 70, Y: 50}
	selfVel := game.Vec2{X: 0, Y: 14}

	for _, leadTime := range []float64{0, 0.1, 0.5, 1, 2.5, 10} {
		for _, clockwise := range []bool{false, true} {
			wp := nav.ComputeOrbitPoint(center, selfPos, selfVel, clockwise, 15, leadTime)
			r := wp.Dist(center)
			if math.Abs(r-15) > 1e-9 {
				t.Errorf("leadTime=%g clockwise=%v: radius %g, want 15", leadTime, clockwise, r)
			}
		}
	}
}

// TestComputeOrbitPointLeadDirection verifies the waypoint is advanced
// along the tangent in the direction of travel.
func TestComputeOrbitPointLeadDirection(t *testing.T) {
	nav := NewNavigator(5)
	center := game.Vec2{}
	selfPos := game.Vec2{X: 15, Y: 0}
	selfVel := game.Vec2{X: 0, Y: 10} // Traveling counter-clockwise

	ccw := nav.ComputeOrbitPoint(center, selfPos, selfVel, false, 15, 0.5)
	if ccw.Y <= 0 {
		t.Errorf("counter-clockwise lead should advance +Y, got %+v", ccw)
	}

	cw := nav.ComputeOrbitPoint(center, selfPos, selfVel, true, 15, 0.5)
	if cw.Y >= 0 {
		t.Errorf("clockwise lead should advance -Y, got %+v", cw)
	}
}

// TestComputeOrbitPointDegenerate covers a ship sitting exactly on the
// orbit center: the waypoint must still land on the circle, never NaN.
func TestComputeOrbitPointDegenerate(t *testing.T) {
	nav := NewNavigator(5)
	wp := nav.ComputeOrbitPoint(game.Vec2{X: 5, Y: 5}, game.Vec2{X: 5, Y: 5}, game.Vec2{}, false, 12, 1)

	if math.IsNaN(wp.X) || math.IsNaN(wp.Y) {
		t.Fatalf("waypoint is NaN: %+v", wp)
	}
	if math.Abs(wp.Dist(game.Vec2{X: 5, Y: 5})-12) > 1e-9 {
		t.Errorf("degenerate orbit point radius %g, want 12", wp.Dist(game.Vec2{X: 5, Y: 5}))
	}
}
