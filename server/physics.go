package server

import (
	"math"

	"github.com/lab1702/skirmish-web/game"
)

// wallPush is the soft repulsion acceleration inside the wall margin
const wallPush = 40.0

// updateShipPhysics advances one ship's kinematics for a tick: rotate
// toward the commanded heading at the class turn rate, apply thrust and
// strafe accelerations along the hull axes, then drag, the speed clamp and
// the arena walls.
func (s *Server) updateShipPhysics(sh *game.Ship, dt float64) {
	if sh.Status != game.StatusAlive {
		return
	}
	stats := game.ClassData[sh.Class]

	// Turn rate limit toward the commanded heading, shortest way around
	diff := game.NormalizeAngleSigned(sh.HeadingDes - sh.Heading)
	step := stats.TurnRate * dt
	if math.Abs(diff) <= step {
		sh.Heading = sh.HeadingDes
	} else {
		sh.Heading += math.Copysign(step, diff)
	}
	sh.Heading = game.NormalizeAngleSigned(sh.Heading)

	// Thrust along the heading, strafe along the right axis. Reverse thrust
	// uses the weaker reverse acceleration.
	fwd := game.FromAngle(sh.Heading)
	right := game.FromAngle(sh.Heading - math.Pi/2)

	fwdAccel := sh.Thrust * stats.AccelForward
	if sh.Thrust < 0 {
		fwdAccel = sh.Thrust * stats.AccelReverse
	}
	sh.Vel = sh.Vel.Add(fwd.Scale(fwdAccel * dt))
	sh.Vel = sh.Vel.Add(right.Scale(sh.Strafe * stats.AccelStrafe * dt))

	// Drag and the class speed ceiling
	sh.Vel = sh.Vel.Scale(math.Max(0, 1-stats.Drag*dt))
	if speed := sh.Vel.Len(); speed > stats.MaxSpeed {
		sh.Vel = sh.Vel.Scale(stats.MaxSpeed / speed)
	}

	sh.Pos = sh.Pos.Add(sh.Vel.Scale(dt))

	s.applyWalls(sh, dt)
}

// applyWalls pushes a ship back inside the arena: a soft inward acceleration
// inside the margin zone, and a hard clamp that kills the outward velocity
// component at the boundary itself.
func (s *Server) applyWalls(sh *game.Ship, dt float64) {
	if sh.Pos.X < game.WallMargin {
		sh.Vel.X += wallPush * (1 - sh.Pos.X/game.WallMargin) * dt
	} else if sh.Pos.X > game.ArenaWidth-game.WallMargin {
		sh.Vel.X -= wallPush * (1 - (game.ArenaWidth-sh.Pos.X)/game.WallMargin) * dt
	}
	if sh.Pos.Y < game.WallMargin {
		sh.Vel.Y += wallPush * (1 - sh.Pos.Y/game.WallMargin) * dt
	} else if sh.Pos.Y > game.ArenaHeight-game.WallMargin {
		sh.Vel.Y -= wallPush * (1 - (game.ArenaHeight-sh.Pos.Y)/game.WallMargin) * dt
	}

	if sh.Pos.X < game.ShipRadius {
		sh.Pos.X = game.ShipRadius
		if sh.Vel.X < 0 {
			sh.Vel.X = 0
		}
	} else if sh.Pos.X > game.ArenaWidth-game.ShipRadius {
		sh.Pos.X = game.ArenaWidth - game.ShipRadius
		if sh.Vel.X > 0 {
			sh.Vel.X = 0
		}
	}
	if sh.Pos.Y < game.ShipRadius {
		sh.Pos.Y = game.ShipRadius
		if sh.Vel.Y < 0 {
			sh.Vel.Y = 0
		}
	} else if sh.Pos.Y > game.ArenaHeight-game.ShipRadius {
		sh.Pos.Y = game.ArenaHeight - game.ShipRadius
		if sh.Vel.Y > 0 {
			sh.Vel.Y = 0
		}
	}
}

// updateShipSystems runs per-tick housekeeping: laser cooling, out-of-combat
// shield regeneration and the weapon cooldown timers.
func (s *Server) updateShipSystems(sh *game.Ship, dt float64) {
	if sh.Status != game.StatusAlive {
		return
	}
	stats := game.ClassData[sh.Class]

	sh.Heat = math.Max(0, sh.Heat-stats.LaserCool*dt)

	if sh.CombatTicks > 0 {
		sh.CombatTicks--
	}
	sh.InCombat = sh.CombatTicks > 0
	if !sh.InCombat && sh.Shield < stats.MaxShield {
		sh.Shield = math.Min(stats.MaxShield, sh.Shield+stats.ShieldRegen*dt)
	}

	if sh.LaserCooldown > 0 {
		sh.LaserCooldown--
	}
	if sh.MissileCooldown > 0 {
		sh.MissileCooldown--
	}
}
