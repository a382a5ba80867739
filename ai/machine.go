package ai

import (
	"math"
	"math/rand"
)

// Machine owns the behavior set and decides which behavior runs. Every
// tick it ticks the active behavior, re-scores all of them, and switches
// only when the hysteresis gate passes: a minimum dwell time, and in
// deterministic mode a utility gap above the switch threshold. Exit always
// runs on the outgoing behavior before Enter on the incoming one.
type Machine struct {
	cfg       *Config
	rng       *rand.Rand
	behaviors []Behavior

	current        Behavior
	started        bool
	lastTransition float64

	// Smoothed utilities keyed by Kind so the cache survives behavior
	// instance recreation
	smoothed [numKinds]float64
}

// NewMachine creates a state machine over an ordered, fixed behavior set.
// The first registered behavior is entered unconditionally on the first
// tick.
func NewMachine(cfg *Config, rng *rand.Rand, behaviors ...Behavior) *Machine {
	return &Machine{cfg: cfg, rng: rng, behaviors: behaviors}
}

// Current returns the kind of the active behavior, or KindIdle before the
// first tick
func (m *Machine) Current() Kind {
	if m.current == nil {
		return KindIdle
	}
	return m.current.Kind()
}

// SmoothedUtility returns the last smoothed utility recorded for a kind
func (m *Machine) SmoothedUtility(k Kind) float64 {
	return m.smoothed[k]
}

// Update runs one decision tick: tick the active behavior, refresh every
// behavior's smoothed utility, pick a candidate and transition if the
// hysteresis gate passes. now is the simulation clock in seconds.
func (m *Machine) Update(ctx *DecisionContext, now, dt float64) {
	if len(m.behaviors) == 0 {
		return
	}

	if !m.started {
		m.current = m.behaviors[0]
		m.current.Enter(ctx)
		m.lastTransition = now
		m.started = true
	}

	m.current.Tick(ctx, dt)

	best := m.current
	bestValue := math.Inf(-1)
	for _, b := range m.behaviors {
		k := b.Kind()
		raw := b.Utility(ctx) * m.cfg.Weights.For(k)

		// Stickiness: the active behavior keeps a bonus that fades
		// linearly to zero over the fade window after a transition
		if b == m.current && m.cfg.Machine.Stickiness > 0 {
			fade := 1 - (now-m.lastTransition)/m.cfg.Machine.StickinessFade
			if fade > 0 {
				raw += m.cfg.Machine.Stickiness * fade
			}
		}

		// Exponential moving average against the previous smoothed value;
		// a factor of 1 means no smoothing
		s := m.cfg.Machine.Smoothing
		m.smoothed[k] = s*raw + (1-s)*m.smoothed[k]

		if m.smoothed[k] > bestValue {
			bestValue = m.smoothed[k]
			best = b
		}
	}

	candidate := best
	if m.cfg.Machine.Probabilistic {
		candidate = m.sample()
	}

	if candidate == m.current {
		return
	}

	// Transition gate: dwell time always, utility gap only in
	// deterministic mode
	if now-m.lastTransition < m.cfg.Machine.MinDwell {
		return
	}
	if !m.cfg.Machine.Probabilistic {
		gap := m.smoothed[candidate.Kind()] - m.smoothed[m.current.Kind()]
		if gap <= m.cfg.Machine.SwitchThreshold {
			return
		}
	}

	m.current.Exit()
	candidate.Enter(ctx)
	m.current = candidate
	m.lastTransition = now
}

// sample draws one behavior from the softmax distribution over the
// smoothed utilities at the configured temperature
func (m *Machine) sample() Behavior {
	probs := m.softmax()
	r := m.rng.Float64()
	cum := 0.0
	for i, b := range m.behaviors {
		cum += probs[i]
		if r <= cum {
			return b
		}
	}
	// Floating point slack can leave r just above the final cumulative sum
	return m.behaviors[len(m.behaviors)-1]
}

// softmax returns sampling probabilities over the registered behaviors.
// The maximum tempered utility is subtracted before exponentiating for
// numerical stability.
func (m *Machine) softmax() []float64 {
	temp := m.cfg.Machine.Temperature
	if temp < 1e-9 {
		temp = 1e-9
	}

	tempered := make([]float64, len(m.behaviors))
	maxV := math.Inf(-1)
	for i, b := range m.behaviors {
		tempered[i] = m.smoothed[b.Kind()] / temp
		if tempered[i] > maxV {
			maxV = tempered[i]
		}
	}

	sum := 0.0
	probs := make([]float64, len(tempered))
	for i, v := range tempered {
		probs[i] = math.Exp(v - maxV)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
