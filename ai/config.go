package ai

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MachineConfig tunes the hysteresis of the behavior state machine
type MachineConfig struct {
	MinDwell        float64 `yaml:"min_dwell"`        // Seconds a behavior must stay active
	SwitchThreshold float64 `yaml:"switch_threshold"` // Required utility gap in deterministic mode
	Stickiness      float64 `yaml:"stickiness"`       // Bonus granted to the active behavior
	StickinessFade  float64 `yaml:"stickiness_fade"`  // Seconds for the bonus to fade to zero
	Smoothing       float64 `yaml:"smoothing"`        // EMA factor, 1 = no smoothing
	Probabilistic   bool    `yaml:"probabilistic"`    // Softmax sampling instead of argmax
	Temperature     float64 `yaml:"temperature"`      // Softmax temperature
}

// Weights are the per-behavior-kind utility multipliers
type Weights struct {
	Idle      float64 `yaml:"idle"`
	Patrol    float64 `yaml:"patrol"`
	Attack    float64 `yaml:"attack"`
	Evade     float64 `yaml:"evade"`
	JinkEvade float64 `yaml:"jink_evade"`
	Orbit     float64 `yaml:"orbit"`
}

// For returns the weight multiplier for a behavior kind
func (w Weights) For(k Kind) float64 {
	switch k {
	case KindIdle:
		return w.Idle
	case KindPatrol:
		return w.Patrol
	case KindAttack:
		return w.Attack
	case KindEvade:
		return w.Evade
	case KindJinkEvade:
		return w.JinkEvade
	case KindOrbit:
		return w.Orbit
	default:
		return 1
	}
}

// PatrolConfig tunes the Patrol behavior
type PatrolConfig struct {
	Radius float64 `yaml:"radius"` // Wander points are picked inside this radius
}

// AttackConfig tunes the Attack behavior
type AttackConfig struct {
	CloseRange       float64 `yaml:"close_range"`       // Face the lead point inside this range
	ClosingThreshold float64 `yaml:"closing_threshold"` // Face the lead point when closing faster than this
	LeadTime         float64 `yaml:"lead_time"`         // Seconds of enemy velocity lead on the nav goal
}

// EvadeConfig tunes the Evade behavior
type EvadeConfig struct {
	FleeDistance      float64 `yaml:"flee_distance"`
	RecomputeInterval float64 `yaml:"recompute_interval"` // Seconds between flee point refreshes
}

// JinkConfig tunes the JinkEvade behavior
type JinkConfig struct {
	Interval     float64 `yaml:"interval"`      // Seconds between side flips
	Amplitude    float64 `yaml:"amplitude"`     // Side-step distance in world units
	MissileBoost float64 `yaml:"missile_boost"` // Amplitude multiplier while a missile is inbound
	FleeDistance float64 `yaml:"flee_distance"`
}

// OrbitConfig tunes the Orbit behavior
type OrbitConfig struct {
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	LeadTime    float64 `yaml:"lead_time"`     // Tangent lead on the orbit waypoint
	FlipChance  float64 `yaml:"flip_chance"`   // Per-second probability of reversing the orbit
	MinFlipTime float64 `yaml:"min_flip_time"` // Seconds in state before a flip is allowed
}

// Config is the externally-settable tuning surface of the AI core.
// Everything here is policy, not algorithm; Validate rejects values that
// would turn a policy knob into a runtime fault (division by zero in the
// control mapper, a degenerate softmax).
type Config struct {
	Machine  MachineConfig `yaml:"machine"`
	Weights  Weights       `yaml:"weights"`
	Steering SteerParams   `yaml:"steering"`
	Patrol   PatrolConfig  `yaml:"patrol"`
	Attack   AttackConfig  `yaml:"attack"`
	Evade    EvadeConfig   `yaml:"evade"`
	Jink     JinkConfig    `yaml:"jink"`
	Orbit    OrbitConfig   `yaml:"orbit"`

	// Replaceable utility curve shapes, linear when nil
	DesireCurve Curve `yaml:"-"`
	FearCurve   Curve `yaml:"-"`
}

// DefaultConfig returns the tuning used by the stock arena bots
func DefaultConfig() *Config {
	return &Config{
		Machine: MachineConfig{
			MinDwell:        0.6,
			SwitchThreshold: 0.1,
			Stickiness:      0.15,
			StickinessFade:  2.0,
			Smoothing:       0.35,
			Probabilistic:   false,
			Temperature:     0.25,
		},
		Weights: Weights{
			Idle:      1,
			Patrol:    1,
			Attack:    1,
			Evade:     1,
			JinkEvade: 1,
			Orbit:     1,
		},
		Steering: SteerParams{
			MaxSpeed:      18,
			ArrivalRadius: 5,
			LookAhead:     1.2,
			Margin:        1.5,
			SelfRadius:    1.2,
			AccelForward:  22,
			AccelReverse:  11,
			AccelStrafe:   14,
			DeadZone:      0.4,
		},
		Patrol: PatrolConfig{Radius: 50},
		Attack: AttackConfig{
			CloseRange:       6,
			ClosingThreshold: 1,
			LeadTime:         0.5,
		},
		Evade: EvadeConfig{
			FleeDistance:      25,
			RecomputeInterval: 1.5,
		},
		Jink: JinkConfig{
			Interval:     0.45,
			Amplitude:    8,
			MissileBoost: 1.8,
			FleeDistance: 18,
		},
		Orbit: OrbitConfig{
			MinRadius:   12,
			MaxRadius:   22,
			LeadTime:    0.6,
			FlipChance:  0.15,
			MinFlipTime: 2.5,
		},
	}
}

// LoadConfig reads a YAML tuning file over the defaults. Fields absent
// from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that would fault at runtime rather than
// merely steer badly
func (c *Config) Validate() error {
	s := c.Steering
	if s.AccelForward <= 0 || s.AccelReverse <= 0 || s.AccelStrafe <= 0 {
		return fmt.Errorf("steering acceleration constants must be positive (forward=%g reverse=%g strafe=%g)",
			s.AccelForward, s.AccelReverse, s.AccelStrafe)
	}
	if s.MaxSpeed <= 0 {
		return fmt.Errorf("steering max_speed must be positive, got %g", s.MaxSpeed)
	}
	if s.ArrivalRadius <= 0 {
		return fmt.Errorf("steering arrival_radius must be positive, got %g", s.ArrivalRadius)
	}
	if s.DeadZone < 0 {
		return fmt.Errorf("steering dead_zone must not be negative, got %g", s.DeadZone)
	}
	m := c.Machine
	if m.Smoothing <= 0 || m.Smoothing > 1 {
		return fmt.Errorf("machine smoothing must be in (0,1], got %g", m.Smoothing)
	}
	if m.Probabilistic && m.Temperature <= 0 {
		return fmt.Errorf("machine temperature must be positive in probabilistic mode, got %g", m.Temperature)
	}
	if m.MinDwell < 0 {
		return fmt.Errorf("machine min_dwell must not be negative, got %g", m.MinDwell)
	}
	if m.StickinessFade <= 0 {
		return fmt.Errorf("machine stickiness_fade must be positive, got %g", m.StickinessFade)
	}
	if c.Orbit.MinRadius <= 0 || c.Orbit.MaxRadius < c.Orbit.MinRadius {
		return fmt.Errorf("orbit radii must satisfy 0 < min <= max, got min=%g max=%g",
			c.Orbit.MinRadius, c.Orbit.MaxRadius)
	}
	if c.Jink.Interval <= 0 {
		return fmt.Errorf("jink interval must be positive, got %g", c.Jink.Interval)
	}
	if c.Evade.RecomputeInterval <= 0 {
		return fmt.Errorf("evade recompute_interval must be positive, got %g", c.Evade.RecomputeInterval)
	}
	return nil
}
