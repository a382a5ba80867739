package server

import (
	"github.com/lab1702/skirmish-web/game"
)

const (
	asteroidMinRadius   = 2.0
	asteroidMaxRadius   = 4.5
	asteroidSplitRadius = 2.8 // Rocks at least this large split once when destroyed
	asteroidMaxSpeed    = 2.5
	asteroidHullPerUnit = 10.0 // Hull points per unit of radius
)

// spawnAsteroids seeds the arena with drifting rocks, kept away from the
// team spawn zones. Caller holds s.mu (or runs before the loops start).
func (s *Server) spawnAsteroids(n int) {
	for i := 0; i < n && len(s.state.Asteroids) < game.MaxAsteroids; i++ {
		pos := game.Vec2{
			X: game.ArenaWidth * (0.25 + 0.5*s.rng.Float64()),
			Y: game.ArenaHeight * (0.1 + 0.8*s.rng.Float64()),
		}
		radius := asteroidMinRadius + s.rng.Float64()*(asteroidMaxRadius-asteroidMinRadius)
		s.addAsteroid(pos, game.RandomUnit(s.rng).Scale(s.rng.Float64()*asteroidMaxSpeed), radius)
	}
}

func (s *Server) addAsteroid(pos, vel game.Vec2, radius float64) {
	a := &game.Asteroid{
		ID:     s.nextAsteroidID,
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Hull:   radius * asteroidHullPerUnit,
		Alive:  true,
	}
	s.nextAsteroidID++
	s.state.Asteroids = append(s.state.Asteroids, a)
}

// updateAsteroids drifts the rocks and bounces them off the arena walls.
// Caller holds s.mu.
func (s *Server) updateAsteroids(dt float64) {
	for _, a := range s.state.Asteroids {
		if !a.Alive {
			continue
		}
		a.Pos = a.Pos.Add(a.Vel.Scale(dt))

		if a.Pos.X < a.Radius {
			a.Pos.X = a.Radius
			a.Vel.X = -a.Vel.X
		} else if a.Pos.X > game.ArenaWidth-a.Radius {
			a.Pos.X = game.ArenaWidth - a.Radius
			a.Vel.X = -a.Vel.X
		}
		if a.Pos.Y < a.Radius {
			a.Pos.Y = a.Radius
			a.Vel.Y = -a.Vel.Y
		} else if a.Pos.Y > game.ArenaHeight-a.Radius {
			a.Pos.Y = game.ArenaHeight - a.Radius
			a.Vel.Y = -a.Vel.Y
		}
	}
}

// damageAsteroid chips away at a rock. A large rock splits into two smaller
// fragments when destroyed; fragments never split again.
func (s *Server) damageAsteroid(a *game.Asteroid, damage float64) {
	a.Hull -= damage
	if a.Hull > 0 {
		return
	}
	a.Alive = false

	if a.Radius < asteroidSplitRadius || len(s.state.Asteroids)+2 > game.MaxAsteroids {
		return
	}
	side := game.RandomUnit(s.rng)
	childRadius := a.Radius * 0.55
	childVel := a.Vel.Add(side.Scale(asteroidMaxSpeed / 2))
	s.addAsteroid(a.Pos.Add(side.Scale(childRadius)), childVel, childRadius)
	s.addAsteroid(a.Pos.Sub(side.Scale(childRadius)), a.Vel.Sub(side.Scale(asteroidMaxSpeed/2)), childRadius)
}
