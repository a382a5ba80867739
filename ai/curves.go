// Package ai implements the decision-and-control pipeline for autonomous
// combat ships: a utility-scored behavior state machine, predictive
// ballistic targeting, obstacle-aware steering, and the pure mapping from
// navigation goals to normalized actuation commands. The package performs
// no I/O and owns no world state; the surrounding simulation feeds it one
// DecisionContext per ship per tick and reads back a Control and an aim
// point.
package ai

import (
	"github.com/lab1702/skirmish-web/game"
)

// Curve shapes a utility input fraction in [0,1] to a response in [0,1].
// Only the boundary values (0 at 0, 1 at 1) and monotonicity are relied
// on by the behaviors; the default is linear.
type Curve func(v float64) float64

// Linear is the identity curve
func Linear(v float64) float64 {
	return v
}

// Desire returns a bonus that grows toward maxBonus as value rises toward 1.
// The input is clamped to [0,1].
func Desire(value, maxBonus float64) float64 {
	return Linear(game.Clamp01(value)) * maxBonus
}

// Fear returns a bonus that grows toward maxBonus as value falls toward 0.
// The input is clamped to [0,1].
func Fear(value, maxBonus float64) float64 {
	return Linear(1-game.Clamp01(value)) * maxBonus
}

// Desire applies the configured desire curve, falling back to linear
func (c *Config) Desire(value, maxBonus float64) float64 {
	curve := c.DesireCurve
	if curve == nil {
		curve = Linear
	}
	return curve(game.Clamp01(value)) * maxBonus
}

// Fear applies the configured fear curve, falling back to linear
func (c *Config) Fear(value, maxBonus float64) float64 {
	curve := c.FearCurve
	if curve == nil {
		curve = Linear
	}
	return curve(1-game.Clamp01(value)) * maxBonus
}
