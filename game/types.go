package game

import (
	"time"
)

// Arena constants
const (
	MaxShips     = 16
	MaxAsteroids = 24
	MaxMissiles  = 32
	MaxBolts     = 128

	// Arena dimensions in world units
	ArenaWidth  = 240.0
	ArenaHeight = 240.0

	// Distance constants
	ShipRadius      = 1.2  // Collision radius of every ship hull
	LaserRange      = 45.0 // Maximum travel distance of a laser bolt
	MissileRange    = 90.0 // Missiles self-destruct beyond this travel distance
	SensorRange     = 60.0 // Ships only consider contacts inside this radius
	NearbyRange     = 30.0 // Radius for nearby-enemy / nearby-friend counts
	WallMargin      = 8.0  // Soft repulsion zone along arena walls
	ObstacleRange   = 25.0 // Obstacles beyond this are ignored by steering
	MissileWarnDist = 20.0 // Incoming missile flag triggers inside this range

	// Projectile speeds in units per second
	LaserSpeed   = 80.0
	MissileSpeed = 32.0

	// Game timing
	TickRate       = 20
	UpdateInterval = time.Second / TickRate

	// Respawn delay in ticks
	RespawnTicks = 3 * TickRate
)

// Team IDs
const (
	TeamNone = 0
	TeamRed  = 1
	TeamBlue = 2
)

// Ship status
const (
	StatusFree    = 0
	StatusAlive   = 1
	StatusExplode = 2
	StatusDead    = 3
)

// ShipClass identifies a hull configuration
type ShipClass int

const (
	ClassInterceptor ShipClass = iota
	ClassCorvette
	ClassGunship
)

// ClassStats holds the specifications for each ship class
type ClassStats struct {
	Name         string
	MaxSpeed     float64 // Units per second
	AccelForward float64 // Units per second squared
	AccelReverse float64
	AccelStrafe  float64
	TurnRate     float64 // Radians per second toward the commanded heading
	MaxHull      float64
	MaxShield    float64
	ShieldRegen  float64 // Shield points per second while out of combat
	LaserDamage  float64
	LaserHeat    float64 // Heat fraction added per laser shot
	LaserCool    float64 // Heat fraction shed per second
	MissileAmmo  int
	Drag         float64 // Fractional velocity loss per second
}

var ClassData = map[ShipClass]ClassStats{
	ClassInterceptor: {
		Name:         "Interceptor",
		MaxSpeed:     22,
		AccelForward: 30,
		AccelReverse: 14,
		AccelStrafe:  18,
		TurnRate:     5.0,
		MaxHull:      70,
		MaxShield:    50,
		ShieldRegen:  6,
		LaserDamage:  7,
		LaserHeat:    0.09,
		LaserCool:    0.28,
		MissileAmmo:  4,
		Drag:         0.6,
	},
	ClassCorvette: {
		Name:         "Corvette",
		MaxSpeed:     18,
		AccelForward: 22,
		AccelReverse: 11,
		AccelStrafe:  14,
		TurnRate:     3.6,
		MaxHull:      100,
		MaxShield:    80,
		ShieldRegen:  5,
		LaserDamage:  9,
		LaserHeat:    0.08,
		LaserCool:    0.25,
		MissileAmmo:  6,
		Drag:         0.6,
	},
	ClassGunship: {
		Name:         "Gunship",
		MaxSpeed:     14,
		AccelForward: 16,
		AccelReverse: 8,
		AccelStrafe:  10,
		TurnRate:     2.8,
		MaxHull:      140,
		MaxShield:    110,
		ShieldRegen:  4,
		LaserDamage:  12,
		LaserHeat:    0.07,
		LaserCool:    0.22,
		MissileAmmo:  8,
		Drag:         0.6,
	},
}

// Ship is the full state of one combat ship
type Ship struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Team    int       `json:"team"`
	Class   ShipClass `json:"class"`
	Status  int       `json:"status"`
	IsBot   bool      `json:"isBot"`
	Pos     Vec2      `json:"pos"`
	Vel     Vec2      `json:"vel"`
	Heading float64   `json:"heading"` // Radians, 0 = +X

	Hull     float64 `json:"hull"`
	Shield   float64 `json:"shield"`
	Heat     float64 `json:"heat"` // Laser heat fraction 0..1
	Missiles int     `json:"missiles"`

	// Actuation commands, written once per tick
	Thrust     float64 `json:"-"` // -1..1 along heading
	Strafe     float64 `json:"-"` // -1..1 perpendicular to heading
	HeadingDes float64 `json:"-"` // Commanded heading in radians

	InCombat     bool `json:"-"` // Damaged or firing recently
	CombatTicks  int  `json:"-"` // Ticks remaining on the in-combat window
	RespawnTicks int  `json:"-"`

	// Weapon cooldowns in ticks
	LaserCooldown   int `json:"-"`
	MissileCooldown int `json:"-"`
	Kills        int  `json:"kills"`
	Deaths       int  `json:"deaths"`
}

// Asteroid is a drifting circular obstacle
type Asteroid struct {
	ID     int     `json:"id"`
	Pos    Vec2    `json:"pos"`
	Vel    Vec2    `json:"vel"`
	Radius float64 `json:"radius"`
	Hull   float64 `json:"hull"`
	Alive  bool    `json:"alive"`
}

// LaserBolt is a constant-speed projectile
type LaserBolt struct {
	ID       int     `json:"id"`
	Owner    int     `json:"owner"`
	Team     int     `json:"team"`
	Pos      Vec2    `json:"pos"`
	Vel      Vec2    `json:"vel"`
	Traveled float64 `json:"-"`
	Damage   float64 `json:"-"`
	Alive    bool    `json:"alive"`
}

// Missile is a finite-supply homing projectile
type Missile struct {
	ID       int     `json:"id"`
	Owner    int     `json:"owner"`
	Team     int     `json:"team"`
	Target   int     `json:"target"`
	Pos      Vec2    `json:"pos"`
	Vel      Vec2    `json:"vel"`
	Traveled float64 `json:"-"`
	Damage   float64 `json:"-"`
	Alive    bool    `json:"alive"`
}

// GameState is the complete simulation state
type GameState struct {
	Ships     []*Ship
	Asteroids []*Asteroid
	Bolts     []*LaserBolt
	Missiles  []*Missile
	Tick      uint64
}

// NewGameState creates an empty arena with all ship slots free
func NewGameState() *GameState {
	gs := &GameState{
		Ships: make([]*Ship, MaxShips),
	}
	for i := range gs.Ships {
		gs.Ships[i] = &Ship{ID: i, Status: StatusFree}
	}
	return gs
}

// ApplyDamage applies damage to a ship, draining shields before hull.
// Returns true if the hit was fatal.
func ApplyDamage(s *Ship, damage float64) bool {
	if s.Shield > 0 {
		if damage <= s.Shield {
			s.Shield -= damage
			return false
		}
		damage -= s.Shield
		s.Shield = 0
	}
	s.Hull -= damage
	return s.Hull <= 0
}

// HullFrac returns the ship's hull as a fraction of its class maximum
func (s *Ship) HullFrac() float64 {
	return Clamp01(s.Hull / ClassData[s.Class].MaxHull)
}

// ShieldFrac returns the ship's shield as a fraction of its class maximum
func (s *Ship) ShieldFrac() float64 {
	return Clamp01(s.Shield / ClassData[s.Class].MaxShield)
}

// SpeedFrac returns current speed as a fraction of the class maximum
func (s *Ship) SpeedFrac() float64 {
	return Clamp01(s.Vel.Len() / ClassData[s.Class].MaxSpeed)
}

// MissileFrac returns remaining missile ammo as a fraction of the class load
func (s *Ship) MissileFrac() float64 {
	max := ClassData[s.Class].MissileAmmo
	if max == 0 {
		return 0
	}
	return Clamp01(float64(s.Missiles) / float64(max))
}
