package server

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lab1702/skirmish-web/ai"
	"github.com/lab1702/skirmish-web/game"
)

func testWeaponsAgent(t *testing.T, s *Server) *ai.Agent {
	t.Helper()
	agent, err := ai.NewAgent(s.cfg, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	return agent
}

func TestFireWeaponsSpawnsBoltAndHeats(t *testing.T) {
	s := newTestServer(t)
	sh := spawnTestShip(t, s, game.TeamRed, game.Vec2{X: 100, Y: 100})
	enemy := spawnTestShip(t, s, game.TeamBlue, game.Vec2{X: 120, Y: 100})

	agent := testWeaponsAgent(t, s)
	agent.Gun.SetTarget(enemy.Pos)
	ctx := s.buildContext(sh)

	s.fireWeapons(sh, agent, ctx)

	if len(s.state.Bolts) != 1 {
		t.Fatalf("bolt count = %d, want 1", len(s.state.Bolts))
	}
	if sh.Heat <= 0 {
		t.Error("firing a laser must add heat")
	}
	if sh.LaserCooldown == 0 {
		t.Error("firing a laser must start the cooldown")
	}
	// The bolt flies toward the aim point, plus the shooter's frame
	if s.state.Bolts[0].Vel.X <= 0 {
		t.Errorf("bolt velocity %+v should point at the enemy at +X", s.state.Bolts[0].Vel)
	}
}

func TestFireWeaponsRespectsHeatAndCooldown(t *testing.T) {
	s := newTestServer(t)
	sh := spawnTestShip(t, s, game.TeamRed, game.Vec2{X: 100, Y: 100})
	enemy := spawnTestShip(t, s, game.TeamBlue, game.Vec2{X: 120, Y: 100})

	agent := testWeaponsAgent(t, s)
	agent.Gun.SetTarget(enemy.Pos)
	ctx := s.buildContext(sh)

	sh.Heat = 0.99 // One more shot would exceed the limit
	sh.Missiles = 0
	s.fireWeapons(sh, agent, ctx)
	if len(s.state.Bolts) != 0 {
		t.Error("an overheated laser must not fire")
	}

	sh.Heat = 0
	sh.LaserCooldown = 3
	s.fireWeapons(sh, agent, ctx)
	if len(s.state.Bolts) != 0 {
		t.Error("the laser must not fire during its cooldown")
	}
}

func TestFireWeaponsLaunchesMissileInRange(t *testing.T) {
	s := newTestServer(t)
	sh := spawnTestShip(t, s, game.TeamRed, game.Vec2{X: 100, Y: 100})
	enemy := spawnTestShip(t, s, game.TeamBlue, game.Vec2{X: 120, Y: 100})

	agent := testWeaponsAgent(t, s)
	agent.Gun.SetTarget(enemy.Pos)
	ctx := s.buildContext(sh)

	before := sh.Missiles
	s.fireWeapons(sh, agent, ctx)

	if len(s.state.Missiles) != 1 {
		t.Fatalf("missile count = %d, want 1", len(s.state.Missiles))
	}
	if sh.Missiles != before-1 {
		t.Errorf("missiles = %d, want %d", sh.Missiles, before-1)
	}
	if s.state.Missiles[0].Target != enemy.ID {
		t.Errorf("missile locked on %d, want %d", s.state.Missiles[0].Target, enemy.ID)
	}
}

func TestBoltExpiresAtMaxRange(t *testing.T) {
	s := newTestServer(t)
	b := &game.LaserBolt{
		Pos:   game.Vec2{X: 50, Y: 120},
		Vel:   game.Vec2{X: game.LaserSpeed},
		Alive: true,
	}
	s.state.Bolts = append(s.state.Bolts, b)

	dt := 1.0 / game.TickRate
	ticks := int(game.LaserRange/(game.LaserSpeed*dt)) + 2
	for i := 0; i < ticks; i++ {
		s.updateBolts(dt)
	}

	if len(s.state.Bolts) != 0 {
		t.Error("a bolt past max range must be pruned")
	}
}

func TestMissileHomesTowardTarget(t *testing.T) {
	s := newTestServer(t)
	target := spawnTestShip(t, s, game.TeamBlue, game.Vec2{X: 100, Y: 130})

	m := &game.Missile{
		Owner:  -1,
		Target: target.ID,
		Pos:    game.Vec2{X: 100, Y: 100},
		Vel:    game.Vec2{X: game.MissileSpeed}, // Launched at right angles to the target
		Damage: missileDamage,
		Alive:  true,
	}
	s.state.Missiles = append(s.state.Missiles, m)

	dt := 1.0 / game.TickRate
	s.updateMissiles(dt)

	// One tick of homing bends the velocity toward +Y, but no further than
	// the missile turn rate allows
	if m.Vel.Y <= 0 {
		t.Errorf("missile velocity %+v should bend toward the target at +Y", m.Vel)
	}
	turned := math.Abs(game.NormalizeAngleSigned(m.Vel.Angle()))
	if turned > missileTurnRate*dt+1e-9 {
		t.Errorf("missile turned %g rad in one tick, limit is %g", turned, missileTurnRate*dt)
	}

	// Given time it must connect and detonate
	shield := target.Shield
	for i := 0; i < 10*game.TickRate && len(s.state.Missiles) > 0; i++ {
		s.updateMissiles(dt)
	}
	if len(s.state.Missiles) != 0 {
		t.Fatal("missile never resolved")
	}
	if target.Shield >= shield {
		t.Error("missile detonation must damage the target")
	}
}
