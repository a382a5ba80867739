package ai

import (
	"math"
	"testing"

	"github.com/lab1702/skirmish-web/game"
)

const distTolerance = 1e-6

func TestPredictIntercept(t *testing.T) {
	tests := []struct {
		name       string
		shooterPos game.Vec2
		shooterVel game.Vec2
		targetPos  game.Vec2
		targetVel  game.Vec2
		projSpeed  float64
		wantExact  *game.Vec2 // Exact expected aim point, when known
	}{
		{
			name:      "StationaryTarget",
			targetPos: game.Vec2{X: 30, Y: 0},
			projSpeed: 80,
			wantExact: &game.Vec2{X: 30, Y: 0},
		},
		{
			name:      "StationaryTargetDiagonal",
			targetPos: game.Vec2{X: 10, Y: -20},
			projSpeed: 80,
			wantExact: &game.Vec2{X: 10, Y: -20},
		},
		{
			name:      "OutrunningTarget",
			targetPos: game.Vec2{X: 30, Y: 0},
			targetVel: game.Vec2{X: 100, Y: 0}, // Faster than the projectile, opening
			projSpeed: 80,
			wantExact: &game.Vec2{X: 30, Y: 0}, // Fallback to current position
		},
		{
			name:      "CoLocatedTarget",
			targetPos: game.Vec2{},
			targetVel: game.Vec2{X: 5, Y: 5},
			projSpeed: 80,
			wantExact: &game.Vec2{},
		},
		{
			name:      "ZeroProjectileSpeed",
			targetPos: game.Vec2{X: 12, Y: 7},
			targetVel: game.Vec2{X: 1, Y: 0},
			projSpeed: 0,
			wantExact: &game.Vec2{X: 12, Y: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictIntercept(tt.shooterPos, tt.shooterVel, tt.targetPos, tt.targetVel, tt.projSpeed)
			if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsInf(got.X, 0) || math.IsInf(got.Y, 0) {
				t.Fatalf("intercept point is not finite: %+v", got)
			}
			if tt.wantExact != nil {
				if got.Dist(*tt.wantExact) > distTolerance {
					t.Errorf("aim point = %+v, want %+v", got, *tt.wantExact)
				}
			}
		})
	}
}

// TestPredictInterceptCrossing verifies the quadratic solution on a
// crossing target: the projectile's flight time to the aim point must
// equal the target's travel time to that same point.
func TestPredictInterceptCrossing(t *testing.T) {
	shooterPos := game.Vec2{}
	targetPos := game.Vec2{X: 40, Y: 0}
	targetVel := game.Vec2{X: 0, Y: 12}
	projSpeed := 80.0

	aim := PredictIntercept(shooterPos, game.Vec2{}, targetPos, targetVel, projSpeed)

	// Recover t from the target's displacement
	tTarget := aim.Sub(targetPos).Len() / targetVel.Len()
	tProj := aim.Sub(shooterPos).Len() / projSpeed
	if math.Abs(tTarget-tProj) > 1e-6 {
		t.Errorf("flight times disagree: target %g, projectile %g", tTarget, tProj)
	}
	if tTarget < 0 {
		t.Errorf("intercept time is negative: %g", tTarget)
	}
}

// TestPredictInterceptShooterFrame verifies the projectile inherits the
// shooter's velocity: a shooter pacing its target needs no lead at all.
func TestPredictInterceptShooterFrame(t *testing.T) {
	vel := game.Vec2{X: 15, Y: 0}
	aim := PredictIntercept(game.Vec2{}, vel, game.Vec2{X: 0, Y: 30}, vel, 80)

	// Relative to the shooter the target is stationary, so the aim point
	// is the target's current position
	want := game.Vec2{X: 0, Y: 30}
	if aim.Dist(want) > distTolerance {
		t.Errorf("aim point = %+v, want %+v", aim, want)
	}
}

func TestGunnerAimLifecycle(t *testing.T) {
	g := &Gunner{}

	if _, ok := g.AimPoint(); ok {
		t.Error("fresh gunner should have no aim point")
	}

	g.SetTarget(game.Vec2{X: 5, Y: 6})
	if aim, ok := g.AimPoint(); !ok || aim != (game.Vec2{X: 5, Y: 6}) {
		t.Errorf("aim point = %+v ok=%v, want {5 6} true", aim, ok)
	}

	g.ClearTarget()
	if _, ok := g.AimPoint(); ok {
		t.Error("cleared gunner should have no aim point")
	}
}

func TestTargetEnemy(t *testing.T) {
	g := &Gunner{}

	ctx := &DecisionContext{HasEnemy: true}
	ctx.Enemy.Pos = game.Vec2{X: 9, Y: -3}
	g.TargetEnemy(ctx)
	if aim, ok := g.AimPoint(); !ok || aim != ctx.Enemy.Pos {
		t.Errorf("TargetEnemy aim = %+v ok=%v, want enemy position", aim, ok)
	}

	// No enemy clears the aim instead of faulting
	g.TargetEnemy(&DecisionContext{})
	if _, ok := g.AimPoint(); ok {
		t.Error("TargetEnemy without enemy should clear the aim")
	}
}
