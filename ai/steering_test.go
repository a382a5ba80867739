package ai

import (
	"math"
	"testing"

	"github.com/lab1702/skirmish-web/game"
)

func testSteerParams() SteerParams {
	return SteerParams{
		MaxSpeed:      18,
		ArrivalRadius: 5,
		LookAhead:     1.2,
		Margin:        1.5,
		SelfRadius:    1.2,
		AccelForward:  22,
		AccelReverse:  11,
		AccelStrafe:   14,
		DeadZone:      0.4,
	}
}

// TestComputeControlScenarioA: at rest, goal 20 units dead ahead, no
// obstacles: positive thrust, no strafe, heading straight at the goal.
func TestComputeControlScenarioA(t *testing.T) {
	p := testSteerParams()
	goal := NavGoal{Point: game.Vec2{X: 20, Y: 0}, Active: true}

	ctrl := ComputeControl(p, game.Vec2{}, game.Vec2{}, 0, goal, nil)

	if ctrl.Thrust <= 0 {
		t.Errorf("thrust = %g, want > 0", ctrl.Thrust)
	}
	if math.Abs(ctrl.Strafe) > 1e-9 {
		t.Errorf("strafe = %g, want 0", ctrl.Strafe)
	}
	if math.Abs(ctrl.HeadingDeg) > 0.5 {
		t.Errorf("headingTarget = %g deg, want ~0 (bearing to goal)", ctrl.HeadingDeg)
	}
}

// TestComputeControlPure: identical inputs must yield identical outputs,
// any number of times.
func TestComputeControlPure(t *testing.T) {
	p := testSteerParams()
	pos := game.Vec2{X: 3, Y: -7}
	vel := game.Vec2{X: 4, Y: 2}
	goal := NavGoal{Point: game.Vec2{X: 40, Y: 25}, TargetVel: game.Vec2{X: -2, Y: 1}, Avoid: true, Active: true}
	obstacles := []Obstacle{
		{Pos: game.Vec2{X: 15, Y: 5}, Vel: game.Vec2{X: 1, Y: 0}, Radius: 3},
		{Pos: game.Vec2{X: 25, Y: 12}, Radius: 2},
	}

	first := ComputeControl(p, pos, vel, 0.3, goal, obstacles)
	for i := 0; i < 10; i++ {
		again := ComputeControl(p, pos, vel, 0.3, goal, obstacles)
		if again != first {
			t.Fatalf("call %d: %+v != %+v", i, again, first)
		}
	}
}

func TestComputeControlClamped(t *testing.T) {
	p := testSteerParams()
	// Huge velocity error in every direction
	positions := []game.Vec2{
		{X: 1000, Y: 0}, {X: -1000, Y: 0}, {X: 0, Y: 1000}, {X: 500, Y: -800},
	}
	for _, goalPoint := range positions {
		goal := NavGoal{Point: goalPoint, Active: true}
		ctrl := ComputeControl(p, game.Vec2{}, game.Vec2{X: -40, Y: 30}, 1.1, goal, nil)
		if ctrl.Thrust < -1 || ctrl.Thrust > 1 {
			t.Errorf("goal %+v: thrust %g outside [-1,1]", goalPoint, ctrl.Thrust)
		}
		if ctrl.Strafe < -1 || ctrl.Strafe > 1 {
			t.Errorf("goal %+v: strafe %g outside [-1,1]", goalPoint, ctrl.Strafe)
		}
	}
}

func TestComputeControlDeadZone(t *testing.T) {
	p := testSteerParams()
	// Sitting just inside the arrival radius moving at almost the desired
	// velocity: error below the dead zone zeroes both commands
	goal := NavGoal{Point: game.Vec2{X: 0.05, Y: 0}, Active: true}
	ctrl := ComputeControl(p, game.Vec2{}, game.Vec2{X: 0.1, Y: 0}, 0, goal, nil)

	if ctrl.Thrust != 0 || ctrl.Strafe != 0 {
		t.Errorf("inside dead zone: thrust=%g strafe=%g, want 0,0", ctrl.Thrust, ctrl.Strafe)
	}
}

func TestComputeControlNoGoal(t *testing.T) {
	p := testSteerParams()
	ctrl := ComputeControl(p, game.Vec2{X: 5, Y: 5}, game.Vec2{X: 3, Y: 0}, math.Pi/2, NavGoal{}, nil)

	if ctrl.Thrust != 0 || ctrl.Strafe != 0 {
		t.Errorf("no goal: thrust=%g strafe=%g, want coast", ctrl.Thrust, ctrl.Strafe)
	}
	if math.Abs(ctrl.HeadingDeg-90) > 1e-6 {
		t.Errorf("no goal: heading %g deg, want current heading 90", ctrl.HeadingDeg)
	}
}

// TestComputeControlAvoidance puts an obstacle squarely on the path and
// checks the commanded velocity bends off the direct line.
func TestComputeControlAvoidance(t *testing.T) {
	p := testSteerParams()
	goal := NavGoal{Point: game.Vec2{X: 30, Y: 0}, Avoid: true, Active: true}
	vel := game.Vec2{X: 10, Y: 0}
	blocker := []Obstacle{{Pos: game.Vec2{X: 8, Y: 0.2}, Radius: 2}}

	clear := ComputeControl(p, game.Vec2{}, vel, 0, goal, nil)
	blocked := ComputeControl(p, game.Vec2{}, vel, 0, goal, blocker)

	if clear == blocked {
		t.Fatal("obstacle on the path should change the control output")
	}
	// The repulsion pushes away from the obstacle's side of the path
	if math.Abs(blocked.Strafe) <= math.Abs(clear.Strafe) {
		t.Errorf("expected lateral command against the obstacle: clear=%g blocked=%g",
			clear.Strafe, blocked.Strafe)
	}
}

// TestComputeControlAvoidanceIgnoredWhenOff: the avoidance flag on the
// goal gates the whole obstacle pass.
func TestComputeControlAvoidanceIgnoredWhenOff(t *testing.T) {
	p := testSteerParams()
	goal := NavGoal{Point: game.Vec2{X: 30, Y: 0}, Active: true}
	vel := game.Vec2{X: 10, Y: 0}
	blocker := []Obstacle{{Pos: game.Vec2{X: 8, Y: 0.2}, Radius: 2}}

	withObs := ComputeControl(p, game.Vec2{}, vel, 0, goal, blocker)
	without := ComputeControl(p, game.Vec2{}, vel, 0, goal, nil)

	if withObs != without {
		t.Error("obstacles must be ignored when the goal's avoid flag is off")
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	tests := []struct {
		name    string
		a, b, q game.Vec2
		want    game.Vec2
	}{
		{"Midpoint", game.Vec2{}, game.Vec2{X: 10, Y: 0}, game.Vec2{X: 5, Y: 3}, game.Vec2{X: 5, Y: 0}},
		{"ClampToStart", game.Vec2{}, game.Vec2{X: 10, Y: 0}, game.Vec2{X: -4, Y: 1}, game.Vec2{}},
		{"ClampToEnd", game.Vec2{}, game.Vec2{X: 10, Y: 0}, game.Vec2{X: 14, Y: -2}, game.Vec2{X: 10, Y: 0}},
		{"DegenerateSegment", game.Vec2{X: 2, Y: 2}, game.Vec2{X: 2, Y: 2}, game.Vec2{X: 9, Y: 9}, game.Vec2{X: 2, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := closestPointOnSegment(tt.a, tt.b, tt.q)
			if got.Dist(tt.want) > 1e-9 {
				t.Errorf("closestPointOnSegment = %+v, want %+v", got, tt.want)
			}
		})
	}
}
