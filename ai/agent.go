package ai

import (
	"math/rand"

	"github.com/lab1702/skirmish-web/game"
)

// Agent bundles one ship's decision pipeline: the state machine, its
// navigator and gunner, and the steering configuration. All state is
// owned by the agent's own instances, so many agents can run side by side
// without locking as long as the outer scheduler ticks them sequentially.
type Agent struct {
	Machine *Machine
	Nav     *Navigator
	Gun     *Gunner

	cfg *Config
}

// NewAgent wires up a complete agent with the standard behavior set. The
// configuration is validated once here; a bad config is a startup error,
// not a runtime fault.
func NewAgent(cfg *Config, rng *rand.Rand) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nav := NewNavigator(cfg.Steering.ArrivalRadius)
	gun := &Gunner{}
	machine := NewMachine(cfg, rng,
		NewIdleBehavior(cfg, nav, gun),
		NewPatrolBehavior(cfg, nav, rng),
		NewAttackBehavior(cfg, nav, gun),
		NewEvadeBehavior(cfg, nav, gun, rng),
		NewJinkEvadeBehavior(cfg, nav, gun, rng),
		NewOrbitBehavior(cfg, nav, gun, rng),
	)

	return &Agent{Machine: machine, Nav: nav, Gun: gun, cfg: cfg}, nil
}

// Update runs one full decision tick: behavior selection and ticking,
// then the pure control mapping from the resulting navigation goal and
// the supplied obstacle list. A facing override from the active behavior
// replaces the steering's heading target. now is the simulation clock in
// seconds.
func (a *Agent) Update(ctx *DecisionContext, now, dt float64, obstacles []Obstacle) Control {
	a.Machine.Update(ctx, now, dt)

	ctrl := ComputeControl(a.cfg.Steering, ctx.Self.Pos, ctx.Self.Vel, ctx.Self.Heading, a.Nav.Goal(), obstacles)
	if dir, ok := a.Nav.Facing(); ok {
		ctrl.HeadingDeg = game.Deg(game.NormalizeAngleSigned(dir.Angle()))
	}
	return ctrl
}

// AimPoint returns the gunner's current aim point for the weapon system
func (a *Agent) AimPoint() (game.Vec2, bool) {
	return a.Gun.AimPoint()
}
