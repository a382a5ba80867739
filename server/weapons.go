package server

import (
	"fmt"
	"math"

	"github.com/lab1702/skirmish-web/ai"
	"github.com/lab1702/skirmish-web/game"
)

const (
	laserCooldownTicks   = 6
	missileCooldownTicks = 3 * game.TickRate
	combatWindowTicks    = 4 * game.TickRate

	missileDamage    = 18.0
	missileTurnRate  = 3.0 // Radians per second
	missileHitRadius = 1.5
	missileFireRange = 35.0
)

// fireWeapons lets one ship's agent shoot: a laser bolt at the gunner's aim
// point when heat allows, and a homing missile at medium range. Caller holds
// s.mu.
func (s *Server) fireWeapons(sh *game.Ship, agent *ai.Agent, ctx *ai.DecisionContext) {
	aim, ok := agent.AimPoint()
	if !ok || !ctx.HasEnemy || !ctx.LineOfSight {
		return
	}
	stats := game.ClassData[sh.Class]

	if sh.LaserCooldown == 0 && sh.Heat+stats.LaserHeat <= 1 && sh.Pos.Dist(aim) <= game.LaserRange {
		s.spawnBolt(sh, aim, stats.LaserDamage)
		sh.Heat += stats.LaserHeat
		sh.LaserCooldown = laserCooldownTicks
		sh.CombatTicks = combatWindowTicks
		sh.InCombat = true
	}

	if sh.MissileCooldown == 0 && sh.Missiles > 0 && ctx.Range <= missileFireRange {
		if target := s.shipAt(ctx.Enemy.Pos); target != nil {
			s.spawnMissile(sh, target)
			sh.Missiles--
			sh.MissileCooldown = missileCooldownTicks
			sh.CombatTicks = combatWindowTicks
			sh.InCombat = true
		}
	}
}

// shipAt finds the living ship at a sensed position. Caller holds s.mu.
func (s *Server) shipAt(pos game.Vec2) *game.Ship {
	for _, sh := range s.state.Ships {
		if sh.Status == game.StatusAlive && sh.Pos == pos {
			return sh
		}
	}
	return nil
}

// spawnBolt launches a laser bolt toward the aim point. The bolt inherits
// the shooter's velocity, matching the frame the intercept solver assumes.
func (s *Server) spawnBolt(sh *game.Ship, aim game.Vec2, damage float64) {
	dir := aim.Sub(sh.Pos).NormalizedOr(game.FromAngle(sh.Heading))
	bolt := &game.LaserBolt{
		ID:     s.nextBoltID,
		Owner:  sh.ID,
		Team:   sh.Team,
		Pos:    sh.Pos.Add(dir.Scale(game.ShipRadius * 1.5)),
		Vel:    dir.Scale(game.LaserSpeed).Add(sh.Vel),
		Damage: damage,
		Alive:  true,
	}
	s.nextBoltID++
	s.state.Bolts = append(s.state.Bolts, bolt)
}

// spawnMissile launches a homing missile locked to a target ship
func (s *Server) spawnMissile(sh *game.Ship, target *game.Ship) {
	dir := target.Pos.Sub(sh.Pos).NormalizedOr(game.FromAngle(sh.Heading))
	m := &game.Missile{
		ID:     s.nextMissileID,
		Owner:  sh.ID,
		Team:   sh.Team,
		Target: target.ID,
		Pos:    sh.Pos.Add(dir.Scale(game.ShipRadius * 1.5)),
		Vel:    dir.Scale(game.MissileSpeed),
		Damage: missileDamage,
		Alive:  true,
	}
	s.nextMissileID++
	s.state.Missiles = append(s.state.Missiles, m)
}

// updateBolts advances every laser bolt and resolves hits against ships and
// asteroids. Caller holds s.mu.
func (s *Server) updateBolts(dt float64) {
	for _, b := range s.state.Bolts {
		if !b.Alive {
			continue
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Traveled += game.LaserSpeed * dt
		if b.Traveled > game.LaserRange || outOfArena(b.Pos) {
			b.Alive = false
			continue
		}

		for _, sh := range s.state.Ships {
			if sh.Status != game.StatusAlive || sh.Team == b.Team {
				continue
			}
			if b.Pos.Dist(sh.Pos) <= game.ShipRadius {
				b.Alive = false
				s.hitShip(sh, b.Damage, b.Owner)
				break
			}
		}
		if !b.Alive {
			continue
		}
		for _, a := range s.state.Asteroids {
			if a.Alive && b.Pos.Dist(a.Pos) <= a.Radius {
				b.Alive = false
				s.damageAsteroid(a, b.Damage)
				break
			}
		}
	}
	s.state.Bolts = pruneBolts(s.state.Bolts)
}

// updateMissiles advances every missile: steer toward the locked target at a
// limited turn rate, detonate on proximity, expire at max range. Caller
// holds s.mu.
func (s *Server) updateMissiles(dt float64) {
	for _, m := range s.state.Missiles {
		if !m.Alive {
			continue
		}

		var target *game.Ship
		if m.Target >= 0 && m.Target < len(s.state.Ships) {
			if t := s.state.Ships[m.Target]; t.Status == game.StatusAlive {
				target = t
			}
		}

		if target != nil {
			want := target.Pos.Sub(m.Pos).Angle()
			have := m.Vel.Angle()
			diff := game.NormalizeAngleSigned(want - have)
			step := missileTurnRate * dt
			if math.Abs(diff) > step {
				diff = math.Copysign(step, diff)
			}
			m.Vel = game.FromAngle(have + diff).Scale(game.MissileSpeed)
		}

		m.Pos = m.Pos.Add(m.Vel.Scale(dt))
		m.Traveled += game.MissileSpeed * dt
		if m.Traveled > game.MissileRange || outOfArena(m.Pos) {
			m.Alive = false
			continue
		}

		if target != nil && m.Pos.Dist(target.Pos) <= missileHitRadius+game.ShipRadius {
			m.Alive = false
			s.hitShip(target, m.Damage, m.Owner)
			continue
		}
		for _, a := range s.state.Asteroids {
			if a.Alive && m.Pos.Dist(a.Pos) <= a.Radius {
				m.Alive = false
				s.damageAsteroid(a, m.Damage)
				break
			}
		}
	}
	s.state.Missiles = pruneMissiles(s.state.Missiles)
}

// hitShip applies damage, marks the victim in combat, and handles the kill
func (s *Server) hitShip(victim *game.Ship, damage float64, ownerID int) {
	victim.CombatTicks = combatWindowTicks
	victim.InCombat = true
	if !game.ApplyDamage(victim, damage) {
		return
	}

	victim.Status = game.StatusExplode
	victim.RespawnTicks = game.RespawnTicks
	victim.Deaths++
	victim.Vel = game.Vec2{}

	killerName := "an asteroid"
	if ownerID >= 0 && ownerID < len(s.state.Ships) {
		killer := s.state.Ships[ownerID]
		if killer.Status != game.StatusFree {
			killer.Kills++
			killerName = killer.Name
		}
	}
	s.broadcast <- ServerMessage{
		Type: MsgTypeInfo,
		Data: map[string]interface{}{
			"text": fmt.Sprintf("%s was destroyed by %s", victim.Name, killerName),
			"ship": victim.ID,
		},
	}
}

// updateRespawns counts down destroyed ships and puts them back at their
// team spawn. Caller holds s.mu.
func (s *Server) updateRespawns() {
	for _, sh := range s.state.Ships {
		if sh.Status != game.StatusExplode && sh.Status != game.StatusDead {
			continue
		}
		sh.RespawnTicks--
		// Brief explosion phase for the clients, then an empty husk
		if sh.Status == game.StatusExplode && sh.RespawnTicks <= game.RespawnTicks-game.TickRate/2 {
			sh.Status = game.StatusDead
		}
		if sh.RespawnTicks <= 0 {
			s.respawnShip(sh)
		}
	}
}

// respawnShip restores a destroyed ship to full strength at its spawn point
func (s *Server) respawnShip(sh *game.Ship) {
	stats := game.ClassData[sh.Class]
	sh.Status = game.StatusAlive
	sh.Hull = stats.MaxHull
	sh.Shield = stats.MaxShield
	sh.Heat = 0
	sh.Missiles = stats.MissileAmmo
	sh.Thrust = 0
	sh.Strafe = 0
	sh.InCombat = false
	sh.CombatTicks = 0
	sh.LaserCooldown = 0
	sh.MissileCooldown = 0
	s.placeAtSpawn(sh)
}

func outOfArena(p game.Vec2) bool {
	return p.X < 0 || p.X > game.ArenaWidth || p.Y < 0 || p.Y > game.ArenaHeight
}

func pruneBolts(bolts []*game.LaserBolt) []*game.LaserBolt {
	out := bolts[:0]
	for _, b := range bolts {
		if b.Alive {
			out = append(out, b)
		}
	}
	return out
}

func pruneMissiles(missiles []*game.Missile) []*game.Missile {
	out := missiles[:0]
	for _, m := range missiles {
		if m.Alive {
			out = append(out, m)
		}
	}
	return out
}
