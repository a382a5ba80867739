package ai

// Kind is the tagged identifier of a behavior variant. Weight multipliers
// and the smoothed-utility cache are keyed by Kind, never by behavior
// instance, so both survive behavior recreation.
type Kind int

const (
	KindIdle Kind = iota
	KindPatrol
	KindAttack
	KindEvade
	KindJinkEvade
	KindOrbit

	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindPatrol:
		return "patrol"
	case KindAttack:
		return "attack"
	case KindEvade:
		return "evade"
	case KindJinkEvade:
		return "jink"
	case KindOrbit:
		return "orbit"
	default:
		return "unknown"
	}
}

// Behavior is one selectable mode of the state machine. Enter and Exit
// bracket the behavior's ownership of the Navigator and Gunner: whatever
// goals or overrides a behavior writes, its Exit must clear. Utility must
// be a pure function of the context and configuration.
type Behavior interface {
	Kind() Kind
	Enter(ctx *DecisionContext)
	Tick(ctx *DecisionContext, dt float64)
	Exit()
	Utility(ctx *DecisionContext) float64
}
