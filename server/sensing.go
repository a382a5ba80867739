package server

import (
	"math"

	"github.com/lab1702/skirmish-web/ai"
	"github.com/lab1702/skirmish-web/game"
)

// buildContext assembles the per-tick world snapshot one ship's agent is
// allowed to see: its own state, the nearest living enemy inside sensor
// range, and the local threat picture. Caller holds s.mu.
func (s *Server) buildContext(sh *game.Ship) *ai.DecisionContext {
	ctx := &ai.DecisionContext{LaserSpeed: game.LaserSpeed}
	ctx.Self = ai.SelfState{
		Pos:         sh.Pos,
		Vel:         sh.Vel,
		Heading:     sh.Heading,
		Hull:        sh.HullFrac(),
		Shield:      sh.ShieldFrac(),
		Heat:        sh.Heat,
		Missiles:    sh.Missiles,
		MissileFrac: sh.MissileFrac(),
		SpeedFrac:   sh.SpeedFrac(),
		InCombat:    sh.InCombat,
	}

	var enemy *game.Ship
	nearestEnemy := math.Inf(1)
	for _, other := range s.state.Ships {
		if other == sh || other.Status != game.StatusAlive {
			continue
		}
		dist := sh.Pos.Dist(other.Pos)
		if dist > game.SensorRange {
			continue
		}
		if other.Team != sh.Team {
			if dist < nearestEnemy {
				nearestEnemy = dist
				enemy = other
			}
			if dist <= game.NearbyRange {
				ctx.NearbyEnemies++
			}
		} else if dist <= game.NearbyRange {
			ctx.NearbyFriends++
		}
	}

	if enemy != nil {
		ctx.HasEnemy = true
		ctx.Enemy = ai.EnemyState{
			Pos:         enemy.Pos,
			Vel:         enemy.Vel,
			Hull:        enemy.HullFrac(),
			Shield:      enemy.ShieldFrac(),
			Heat:        enemy.Heat,
			Missiles:    enemy.Missiles,
			MissileFrac: enemy.MissileFrac(),
		}
		ctx.ToEnemy = enemy.Pos.Sub(sh.Pos)
		ctx.Range = nearestEnemy
		ctx.RelVel = enemy.Vel.Sub(sh.Vel)
		if ctx.Range > 1e-9 {
			// Positive when the gap is shrinking
			ctx.ClosingSpeed = -ctx.ToEnemy.Dot(ctx.RelVel) / ctx.Range
			toSelf := ctx.ToEnemy.Scale(-1 / ctx.Range)
			ctx.EnemyFacing = game.FromAngle(enemy.Heading).Dot(toSelf)
		}
		ctx.LineOfSight = s.lineOfSight(sh.Pos, enemy.Pos)
		ctx.NearestThreat = nearestEnemy
	}

	for _, m := range s.state.Missiles {
		if m.Alive && m.Target == sh.ID && m.Pos.Dist(sh.Pos) <= game.MissileWarnDist {
			ctx.IncomingMissile = true
			break
		}
	}

	return ctx
}

// lineOfSight tests the segment between two points against every living
// asteroid. Caller holds s.mu.
func (s *Server) lineOfSight(from, to game.Vec2) bool {
	for _, a := range s.state.Asteroids {
		if !a.Alive {
			continue
		}
		if segmentDist(from, to, a.Pos) < a.Radius {
			return false
		}
	}
	return true
}

// obstaclesFor lists the nearby asteroids and ships the steering layer must
// route around. Caller holds s.mu.
func (s *Server) obstaclesFor(sh *game.Ship) []ai.Obstacle {
	var out []ai.Obstacle
	for _, a := range s.state.Asteroids {
		if a.Alive && sh.Pos.Dist(a.Pos) <= game.ObstacleRange {
			out = append(out, ai.Obstacle{Pos: a.Pos, Vel: a.Vel, Radius: a.Radius})
		}
	}
	for _, other := range s.state.Ships {
		if other == sh || other.Status != game.StatusAlive {
			continue
		}
		if sh.Pos.Dist(other.Pos) <= game.ObstacleRange {
			out = append(out, ai.Obstacle{Pos: other.Pos, Vel: other.Vel, Radius: game.ShipRadius})
		}
	}
	return out
}

// segmentDist returns the distance from point q to segment [a,b]
func segmentDist(a, b, q game.Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq < 1e-12 {
		return a.Dist(q)
	}
	t := game.Clamp01(q.Sub(a).Dot(ab) / lenSq)
	return a.Add(ab.Scale(t)).Dist(q)
}
